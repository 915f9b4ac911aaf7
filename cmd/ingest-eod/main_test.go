package main

import (
	"testing"
	"time"
)

func TestDefaultTradingDateKeepsLocalCalendarDay(t *testing.T) {
	lagos := time.FixedZone("WAT", 1*60*60)
	honolulu := time.FixedZone("HST", -10*60*60)

	cases := []struct {
		now  time.Time
		want string
	}{
		{time.Date(2024, 3, 15, 0, 30, 0, 0, lagos), "2024-03-15"},
		{time.Date(2024, 3, 15, 23, 30, 0, 0, lagos), "2024-03-15"},
		{time.Date(2024, 3, 15, 20, 0, 0, 0, honolulu), "2024-03-15"},
		{time.Date(2024, 3, 15, 12, 0, 0, 0, time.UTC), "2024-03-15"},
	}
	for _, c := range cases {
		got := defaultTradingDate(c.now)
		if got.Format("2006-01-02") != c.want {
			t.Errorf("defaultTradingDate(%v) = %v, want %s", c.now, got, c.want)
		}
		if got.Location() != time.UTC || !got.Equal(got.Truncate(24*time.Hour)) {
			t.Errorf("defaultTradingDate(%v) = %v, want midnight UTC", c.now, got)
		}
	}
}
