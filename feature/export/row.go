package export

import (
	"strconv"

	"catalog-exporter/feature/combination"
)

// Row is one export record: one (product, frame, combination).
type Row struct {
	Product string
	// ItemNumber is the resolved inventory identifier; empty string, never
	// a null marker, when unmatched.
	ItemNumber string
	Frame      int
	Size       int
	ImageURL   string
	// Features maps feature code to the chosen option code; featureOrder
	// preserves the combination's axis order for column discovery.
	Features     map[string]string
	featureOrder []string
}

// NewRow builds a row from one combination and its matcher result.
func NewRow(product string, frame, size int, imageURL, itemNumber string, combo combination.Combination) Row {
	features := make(map[string]string, len(combo))
	order := make([]string, 0, len(combo))
	for _, opt := range combo {
		features[opt.Feature] = opt.Code
		order = append(order, opt.Feature)
	}
	return Row{
		Product:      product,
		ItemNumber:   itemNumber,
		Frame:        frame,
		Size:         size,
		ImageURL:     imageURL,
		Features:     features,
		featureOrder: order,
	}
}

// fixedColumns are the leading output columns; the item number sits
// immediately after the product identifier.
var fixedColumns = []string{"Product", "ItemNumber", "Frame", "Size", "ImageURL"}

// RowSet accumulates rows and tracks feature columns in first-seen order,
// so heterogeneous products can share one output table.
type RowSet struct {
	rows         []Row
	featureOrder []string
	seen         map[string]bool
}

// NewRowSet creates an empty row set.
func NewRowSet() *RowSet {
	return &RowSet{seen: make(map[string]bool)}
}

// Add appends a row and registers any new feature columns.
func (s *RowSet) Add(row Row) {
	for _, code := range row.featureOrder {
		if !s.seen[code] {
			s.seen[code] = true
			s.featureOrder = append(s.featureOrder, code)
		}
	}
	s.rows = append(s.rows, row)
}

// Len returns the number of rows.
func (s *RowSet) Len() int {
	return len(s.rows)
}

// Header returns the full column list: fixed columns then feature codes.
func (s *RowSet) Header() []string {
	header := make([]string, 0, len(fixedColumns)+len(s.featureOrder))
	header = append(header, fixedColumns...)
	header = append(header, s.featureOrder...)
	return header
}

// Records renders every row against the full header; feature cells a row
// does not carry are empty strings.
func (s *RowSet) Records() [][]string {
	records := make([][]string, 0, len(s.rows))
	for _, row := range s.rows {
		record := make([]string, 0, len(fixedColumns)+len(s.featureOrder))
		record = append(record,
			row.Product,
			row.ItemNumber,
			strconv.Itoa(row.Frame),
			strconv.Itoa(row.Size),
			row.ImageURL,
		)
		for _, code := range s.featureOrder {
			record = append(record, row.Features[code])
		}
		records = append(records, record)
	}
	return records
}
