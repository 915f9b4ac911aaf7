package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"time"

	"github.com/corpsgeek/MetaQuantNig/pkg/metaquant/config"
	"github.com/corpsgeek/MetaQuantNig/pkg/metaquant/store"
	"github.com/corpsgeek/MetaQuantNig/pkg/metaquant/store/sqlite"
)

func main() {
	var (
		latest       = flag.Int("latest", 0, "Show the N most recent filings")
		sinceStr     = flag.String("since", "", "Show filings on/after this date, YYYY-MM-DD")
		tickers      = flag.Bool("tickers", false, "List known tickers")
		settingsPath = flag.String("settings", "", "Settings YAML file (optional)")
	)
	flag.Parse()

	settings, err := config.Load(*settingsPath)
	if err != nil {
		log.Fatal("Failed to load settings:", err)
	}

	ctx := context.Background()

	st, err := sqlite.Open(ctx, settings.DBPath)
	if err != nil {
		log.Fatal("Failed to open database:", err)
	}
	defer st.Close()

	switch {
	case *tickers:
		list, err := st.ListTickers(ctx)
		if err != nil {
			log.Fatal("List tickers:", err)
		}
		for _, t := range list {
			fmt.Println(t)
		}

	case *sinceStr != "":
		since, err := time.Parse("2006-01-02", *sinceStr)
		if err != nil {
			log.Fatalf("invalid date %q, expected YYYY-MM-DD", *sinceStr)
		}
		filings, err := st.FetchFilingsSince(ctx, since)
		if err != nil {
			log.Fatal("Fetch filings:", err)
		}
		printFilings(filings)

	default:
		n := *latest
		if n <= 0 {
			n = 50
		}
		filings, err := st.FetchLatestFilings(ctx, n)
		if err != nil {
			log.Fatal("Fetch filings:", err)
		}
		printFilings(filings)
	}
}

func printFilings(filings []store.Filing) {
	for _, f := range filings {
		date := "----------"
		if !f.Date.IsZero() {
			date = f.Date.Format("2006-01-02")
		}
		fmt.Printf("%s  %-20s  %s\n", date, f.CompanyName, f.Title)
	}
}
