package main

import (
	"context"
	"flag"
	"fmt"
	"log"

	"bet-dashboard/internal/app"
	"bet-dashboard/internal/config"
	"bet-dashboard/internal/data"
)

// snapshot copies the picks history from any supported source (typically the
// postgres table) into the JSON file the dashboard reads by default.
func main() {
	var (
		cfgPath    = flag.String("config", "", "Path to YAML config (optional)")
		from       = flag.String("from", "", "Source to read (JSON path or postgres DSN, default from config)")
		outputPath = flag.String("output", data.DefaultRecordsPath, "Output JSON path")
	)
	flag.Parse()

	cfg, err := config.Load(*cfgPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	if *from != "" {
		cfg.Data.Source = *from
	}
	if cfg.Data.Source == *outputPath {
		log.Fatalf("Source and output are the same file: %s", *outputPath)
	}

	fmt.Printf("Reading records from %s\n", cfg.Data.Source)
	ds, err := app.LoadDataset(context.Background(), cfg)
	if err != nil {
		log.Fatalf("Failed to load records: %v", err)
	}

	if err := data.SaveRecordsJSON(ds.Records, *outputPath); err != nil {
		log.Fatalf("Failed to save records: %v", err)
	}
	fmt.Printf("Saved %d records to %s (fingerprint %s)\n", ds.Len(), *outputPath, ds.Fingerprint)
}
