package reference

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/minio/minio-go/v7"
	"github.com/xuri/excelize/v2"

	"catalog-exporter/core/storage"
)

// SchemaError indicates the reference dataset is unusable: the file cannot
// be read or a required column is absent. There is no safe partial mode, so
// this error aborts the run.
type SchemaError struct {
	Path    string
	Missing []string
	Err     error
}

func (e *SchemaError) Error() string {
	if len(e.Missing) > 0 {
		return fmt.Sprintf("reference dataset %s: missing required columns: %s", e.Path, strings.Join(e.Missing, ", "))
	}
	return fmt.Sprintf("reference dataset %s: %v", e.Path, e.Err)
}

func (e *SchemaError) Unwrap() error {
	return e.Err
}

// Table is the indexed reference dataset, held in memory for the run.
// Record order mirrors the file's row order; the matcher's first-match
// tie-break depends on it.
type Table struct {
	Records []Record
}

// Load reads and indexes the reference dataset at cfg.Path. The format is
// chosen by extension: .xlsx (and .xlsm) via excelize, anything else as CSV.
func Load(cfg Config) (*Table, error) {
	f, err := os.Open(cfg.Path)
	if err != nil {
		return nil, &SchemaError{Path: cfg.Path, Err: err}
	}
	defer f.Close()

	return LoadReader(f, cfg.Path, cfg)
}

// FromStorage downloads and indexes the reference dataset named by
// cfg.Object from the given bucket. Format detection follows the object
// name, like Load does for local paths.
func FromStorage(ctx context.Context, store storage.Client, bucket string, cfg Config) (*Table, error) {
	obj, err := store.GetObject(ctx, bucket, cfg.Object, minio.GetObjectOptions{})
	if err != nil {
		return nil, &SchemaError{Path: cfg.Object, Err: err}
	}
	defer obj.Close()

	return LoadReader(obj, cfg.Object, cfg)
}

// LoadReader reads and indexes a reference dataset from a stream. The name
// is used for format detection and error reporting; it allows datasets to
// come from object storage as well as local disk.
func LoadReader(r io.Reader, name string, cfg Config) (*Table, error) {
	var rows [][]string
	var err error

	switch strings.ToLower(filepath.Ext(name)) {
	case ".xlsx", ".xlsm":
		rows, err = readSpreadsheet(r, cfg.Sheet)
	default:
		rows, err = readCSV(r)
	}
	if err != nil {
		return nil, &SchemaError{Path: name, Err: err}
	}

	return index(rows, name, cfg)
}

func readSpreadsheet(r io.Reader, sheet string) ([][]string, error) {
	book, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("open spreadsheet: %w", err)
	}
	defer book.Close()

	if sheet == "" {
		sheet = book.GetSheetName(0)
	}
	rows, err := book.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("read sheet %s: %w", sheet, err)
	}
	return rows, nil
}

func readCSV(r io.Reader) ([][]string, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1 // ragged rows tolerated; columns resolved by header
	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read csv: %w", err)
	}
	return rows, nil
}

// index resolves the required columns from the header row and derives the
// matchable fields for every data row.
func index(rows [][]string, name string, cfg Config) (*Table, error) {
	if len(rows) == 0 {
		return nil, &SchemaError{Path: name, Missing: cfg.requiredColumns()}
	}

	header := make(map[string]int, len(rows[0]))
	for i, h := range rows[0] {
		header[strings.ToLower(strings.TrimSpace(h))] = i
	}

	indices := make([]int, 0, 4)
	var missing []string
	for _, col := range cfg.requiredColumns() {
		idx, ok := header[strings.ToLower(strings.TrimSpace(col))]
		if !ok {
			missing = append(missing, col)
			continue
		}
		indices = append(indices, idx)
	}
	if len(missing) > 0 {
		return nil, &SchemaError{Path: name, Missing: missing}
	}

	cell := func(row []string, idx int) string {
		if idx >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[idx])
	}

	table := &Table{Records: make([]Record, 0, len(rows)-1)}
	for _, row := range rows[1:] {
		rec := Record{
			ItemNumber:         cell(row, indices[0]),
			ItemName:           cell(row, indices[1]),
			BaseColorWords:     ColorWords(cell(row, indices[2])),
			NormalizedMaterial: NormalizeCode(cell(row, indices[3])),
		}
		table.Records = append(table.Records, rec)
	}
	return table, nil
}
