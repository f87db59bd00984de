// Command template writes the example upload workbook, the same file the
// dashboard serves at /template.xlsx.
//
// Usage:
//
//	go run ./cmd/template -out gangnam_flood_example.xlsx
package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/couchcryptid/flood-risk-dashboard/internal/spreadsheet"
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	out := flag.String("out", spreadsheet.ExampleFileName, "output path for the example workbook")
	flag.Parse()

	if *out == "" {
		flag.Usage()
		return fmt.Errorf("missing required flag: -out")
	}

	data, err := spreadsheet.ExampleWorkbook()
	if err != nil {
		return err
	}
	if err := os.WriteFile(*out, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", *out, err)
	}
	fmt.Printf("wrote %s (%d bytes)\n", *out, len(data))
	return nil
}
