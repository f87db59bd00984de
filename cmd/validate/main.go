// Command validate runs a spreadsheet through the dashboard pipeline offline
// and prints the JSON risk report. It exits non-zero when the file cannot be
// read or lacks a required column, so it can gate data drops in CI.
//
// Usage:
//
//	go run ./cmd/validate -file posts.xlsx
package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/couchcryptid/flood-risk-dashboard/internal/observability"
	"github.com/couchcryptid/flood-risk-dashboard/internal/pipeline"
	"github.com/couchcryptid/flood-risk-dashboard/internal/report"
)

func main() {
	if err := run(os.Stdout); err != nil {
		log.Fatal(err)
	}
}

func run(w io.Writer) error {
	file := flag.String("file", "", "spreadsheet to validate (.xlsx or .csv)")
	strict := flag.Bool("strict", false, "also fail when no row has both coordinates")
	flag.Parse()

	if *file == "" {
		flag.Usage()
		return errors.New("missing required flag: -file")
	}

	data, err := os.ReadFile(*file)
	if err != nil {
		return fmt.Errorf("read %s: %w", *file, err)
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))
	p := pipeline.New(nil, nil, pipeline.Options{
		Map:     report.MapOptions{Zoom: 13, FallbackLat: 37.4979, FallbackLon: 127.0276, PopupPreviewLength: 60},
		Summary: report.SummaryOptions{TopN: 5, PreviewRows: 20, PreviewLength: 60},
	}, logger, observability.NewMetricsForTesting())

	res, err := p.Process(context.Background(), pipeline.Upload{FileName: filepath.Base(*file), Data: data})
	if err != nil {
		return fmt.Errorf("%s: %w", *file, err)
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(res.Report()); err != nil {
		return err
	}
	if *strict && res.Warning != nil {
		return res.Warning
	}
	return nil
}
