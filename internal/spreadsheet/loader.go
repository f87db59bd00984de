// Package spreadsheet turns uploaded workbooks into domain posts.
package spreadsheet

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/couchcryptid/flood-risk-dashboard/internal/domain"
	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
	"github.com/xuri/excelize/v2"
)

// Format identifies how an upload is decoded.
type Format string

const (
	FormatXLSX Format = "xlsx"
	FormatCSV  Format = "csv"
)

var (
	zipMagic = []byte("PK\x03\x04")
	utf8BOM  = []byte("\xef\xbb\xbf")

	errNoSheets = errors.New("workbook has no sheets")
	errNoHeader = errors.New("no header row")
)

// Table is a header-normalized view of the first sheet of an upload.
type Table struct {
	// Headers are the sheet's headers after trimming, in sheet order.
	Headers []string

	frame      dataframe.DataFrame
	rowNumbers []int             // 1-based data row per frame row, header excluded
	columns    map[string]string // canonical name -> frame column
}

// Load decodes an upload. The format is chosen by file extension and, for
// unknown extensions, by sniffing for a ZIP (xlsx) container. Any failure to
// read the file is returned as *domain.ParseError.
func Load(name string, data []byte) (*Table, error) {
	format, err := detectFormat(name, data)
	if err != nil {
		return nil, &domain.ParseError{Err: err}
	}

	var records [][]string
	switch format {
	case FormatXLSX:
		records, err = readXLSX(data)
	case FormatCSV:
		records, err = readCSV(data)
	}
	if err != nil {
		return nil, &domain.ParseError{Err: err}
	}

	t, err := newTable(records)
	if err != nil {
		return nil, &domain.ParseError{Err: err}
	}
	return t, nil
}

func detectFormat(name string, data []byte) (Format, error) {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".xlsx", ".xlsm":
		return FormatXLSX, nil
	case ".csv":
		return FormatCSV, nil
	case ".xls":
		return "", errors.New("legacy .xls workbooks are not supported, save as .xlsx")
	}
	if bytes.HasPrefix(data, zipMagic) {
		return FormatXLSX, nil
	}
	return "", fmt.Errorf("unsupported file type %q", filepath.Ext(name))
}

func readXLSX(data []byte) ([][]string, error) {
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("open workbook: %w", err)
	}
	defer func() { _ = f.Close() }()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, errNoSheets
	}
	// Raw values keep full precision; display formats would round coordinates
	// and scores.
	rows, err := f.GetRows(sheets[0], excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, fmt.Errorf("read sheet %q: %w", sheets[0], err)
	}
	return rows, nil
}

func readCSV(data []byte) ([][]string, error) {
	r := csv.NewReader(bytes.NewReader(bytes.TrimPrefix(data, utf8BOM)))
	r.FieldsPerRecord = -1
	records, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read csv: %w", err)
	}
	return records, nil
}

// newTable builds a Table from raw records whose first non-blank row is the
// header. Rows are padded to the header width and fully blank rows skipped.
func newTable(records [][]string) (*Table, error) {
	headerAt := -1
	for i, rec := range records {
		if !blankRow(rec) {
			headerAt = i
			break
		}
	}
	if headerAt < 0 {
		return nil, errNoHeader
	}

	headers := uniqueHeaders(records[headerAt])
	width := len(headers)

	body := [][]string{headers}
	var rowNumbers []int
	for i, rec := range records[headerAt+1:] {
		if blankRow(rec) {
			continue
		}
		row := make([]string, width)
		copy(row, rec)
		body = append(body, row)
		rowNumbers = append(rowNumbers, i+1)
	}

	t := &Table{
		Headers:    headers,
		rowNumbers: rowNumbers,
		columns:    make(map[string]string),
	}
	for _, h := range headers {
		if c, ok := canonicalColumn(h); ok {
			if _, seen := t.columns[c]; !seen {
				t.columns[c] = h
			}
		}
	}

	if len(rowNumbers) == 0 {
		return t, nil
	}

	t.frame = dataframe.LoadRecords(body,
		dataframe.HasHeader(true),
		dataframe.DetectTypes(false),
		dataframe.DefaultType(series.String),
	)
	if t.frame.Err != nil {
		return nil, fmt.Errorf("build table: %w", t.frame.Err)
	}
	return t, nil
}

// uniqueHeaders trims headers, names blank ones unnamed_<n> and suffixes
// duplicates with _<n> so every frame column is addressable.
func uniqueHeaders(raw []string) []string {
	headers := make([]string, len(raw))
	seen := make(map[string]int, len(raw))
	for i, h := range raw {
		h = strings.TrimSpace(h)
		if h == "" {
			h = fmt.Sprintf("unnamed_%d", i)
		}
		if n := seen[h]; n > 0 {
			seen[h] = n + 1
			h = fmt.Sprintf("%s_%d", h, n)
		} else {
			seen[h] = 1
		}
		headers[i] = h
	}
	return headers
}

func blankRow(rec []string) bool {
	for _, v := range rec {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}

// Len returns the number of data rows.
func (t *Table) Len() int {
	return len(t.rowNumbers)
}

// HasColumn reports whether a canonical column was matched.
func (t *Table) HasColumn(canonical string) bool {
	_, ok := t.columns[canonical]
	return ok
}

// Validate returns *domain.MissingColumnError when any required column is
// absent, naming the missing canonical columns in RequiredColumns order.
func (t *Table) Validate() error {
	var missing []string
	for _, c := range RequiredColumns {
		if !t.HasColumn(c) {
			missing = append(missing, c)
		}
	}
	if len(missing) > 0 {
		return &domain.MissingColumnError{Columns: missing}
	}
	return nil
}

// column returns the cell values of a canonical column, or nil when the
// column is absent or the table has no rows.
func (t *Table) column(canonical string) []string {
	name, ok := t.columns[canonical]
	if !ok || t.Len() == 0 {
		return nil
	}
	return t.frame.Col(name).Records()
}
