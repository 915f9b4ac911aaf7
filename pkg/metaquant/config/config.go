package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/corpsgeek/MetaQuantNig/pkg/metaquant/internalerr"
)

// Settings holds every external location the ingestion pipelines touch.
// It is constructed once in main and passed by reference; no package reads
// ambient global state.
type Settings struct {
	// Path to the SQLite database file
	DBPath string `yaml:"db_path"`

	// Where raw NGX EOD price files live (CSV/XLSX)
	EODDataDir string `yaml:"eod_data_dir"`

	// NGX corporate disclosures page
	DisclosuresURL string `yaml:"disclosures_url"`

	// Where downloaded disclosure PDFs are stored
	DisclosuresDataDir string `yaml:"disclosures_data_dir"`

	// Page-render timeout for the headless browser
	BrowserTimeout time.Duration `yaml:"browser_timeout"`
}

// Default returns the compiled-in settings.
func Default() *Settings {
	return &Settings{
		DBPath:             "metaquant_ngx.db",
		EODDataDir:         "data/raw/ngx_eod",
		DisclosuresURL:     "https://ngxgroup.com/exchange/data/corporate-disclosures/",
		DisclosuresDataDir: "data/raw/ngx_disclosures",
		BrowserTimeout:     60 * time.Second,
	}
}

// Load builds Settings from defaults, an optional YAML file, and MQ_* environment
// variables, in that order of increasing precedence. An empty path skips the file.
func Load(path string) (*Settings, error) {
	s := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read settings file %s: %w", path, err)
		}
		if err := yaml.Unmarshal(data, s); err != nil {
			return nil, fmt.Errorf("parse settings file %s: %w", path, err)
		}
	}

	applyEnv(s)

	if s.DBPath == "" {
		return nil, fmt.Errorf("%w: db_path must not be empty", internalerr.ErrInvalidConfig)
	}
	if s.DisclosuresURL == "" {
		return nil, fmt.Errorf("%w: disclosures_url must not be empty", internalerr.ErrInvalidConfig)
	}
	return s, nil
}

func applyEnv(s *Settings) {
	if v := os.Getenv("MQ_DB_PATH"); v != "" {
		s.DBPath = v
	}
	if v := os.Getenv("MQ_EOD_DATA_DIR"); v != "" {
		s.EODDataDir = v
	}
	if v := os.Getenv("MQ_DISCLOSURES_URL"); v != "" {
		s.DisclosuresURL = v
	}
	if v := os.Getenv("MQ_DISCLOSURES_DATA_DIR"); v != "" {
		s.DisclosuresDataDir = v
	}
	if v := os.Getenv("MQ_BROWSER_TIMEOUT"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			s.BrowserTimeout = d
		}
	}
}
