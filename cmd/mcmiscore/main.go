// mcmiscore scores one MCMI-II answer sheet against a set of normative
// tables and writes the resulting report to stdout as JSON — the same
// opaque payload the portal persists per submission.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"log"
	"os"
	"time"

	"github.com/payam1698/aistudio-final/internal/config"
	"github.com/payam1698/aistudio-final/internal/db"
	"github.com/payam1698/aistudio-final/internal/mcmi"
	"github.com/payam1698/aistudio-final/internal/norms"
	"github.com/payam1698/aistudio-final/internal/sheet"
)

func main() {
	var (
		answersPath = flag.String("answers", "", "answer sheet file (yaml or json)")
		normsPath   = flag.String("norms", "", "norms document (overrides NORMS_FILE and the norms DB)")
		compact     = flag.Bool("compact", false, "emit the report without indentation")
	)
	flag.Parse()
	if *answersPath == "" {
		log.Fatal("mcmiscore: -answers is required")
	}

	cfg := config.FromEnv()
	if *normsPath != "" {
		cfg.NormsFile = *normsPath
	}

	provider, err := loadProvider(cfg)
	if err != nil {
		log.Fatalf("load norms: %v", err)
	}

	var opts []mcmi.Option
	if cfg.Rounding != "" {
		opts = append(opts, mcmi.WithRounding(mcmi.RoundingMode(cfg.Rounding)))
	}
	scorer, err := mcmi.New(provider, opts...)
	if err != nil {
		log.Fatalf("scorer: %v", err)
	}

	answers, rc, err := sheet.Load(*answersPath)
	if err != nil {
		log.Fatalf("answer sheet: %v", err)
	}

	report, err := scorer.Score(answers, rc)
	if err != nil {
		log.Fatalf("score: %v", err)
	}

	enc := json.NewEncoder(os.Stdout)
	if !*compact {
		enc.SetIndent("", "  ")
	}
	if err := enc.Encode(report); err != nil {
		log.Fatalf("encode report: %v", err)
	}
}

func loadProvider(cfg config.Config) (mcmi.Provider, error) {
	if cfg.NormsFile != "" {
		return norms.LoadFile(cfg.NormsFile)
	}
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	dbh, err := db.Open(ctx, db.Driver(cfg.DBDriver), cfg.DBDSN)
	if err != nil {
		return nil, err
	}
	defer dbh.Close()
	return norms.LoadDB(ctx, dbh)
}
