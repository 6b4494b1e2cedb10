package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
)

// WriteCSV renders the row set as a semicolon separated file.
func WriteCSV(w io.Writer, set *RowSet) error {
	writer := csv.NewWriter(w)
	writer.Comma = ';'

	if err := writer.Write(set.Header()); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	for _, record := range set.Records() {
		if err := writer.Write(record); err != nil {
			return fmt.Errorf("write record: %w", err)
		}
	}

	writer.Flush()
	return writer.Error()
}

// WriteCSVFile writes the row set to path, creating or truncating the file.
func WriteCSVFile(path string, set *RowSet) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()

	if err := WriteCSV(f, set); err != nil {
		return err
	}
	return f.Close()
}
