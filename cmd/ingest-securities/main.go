package main

import (
	"context"
	"flag"
	"log"

	"github.com/corpsgeek/MetaQuantNig/pkg/metaquant/config"
	"github.com/corpsgeek/MetaQuantNig/pkg/metaquant/etl"
	"github.com/corpsgeek/MetaQuantNig/pkg/metaquant/store/sqlite"
)

func main() {
	settingsPath := flag.String("settings", "", "Settings YAML file (optional)")
	flag.Parse()

	if flag.NArg() != 1 {
		log.Fatal("usage: ingest-securities [flags] <master-list.csv|.xlsx>")
	}

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

	pipeline := &etl.SecuritiesPipeline{Store: st}
	n, err := pipeline.Run(ctx, flag.Arg(0))
	if err != nil {
		log.Fatal("Ingestion failed:", err)
	}

	log.Printf("✓ Ingested %d securities", n)
}
