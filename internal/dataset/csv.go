package dataset

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

var utf8Bom = []byte{0xEF, 0xBB, 0xBF}

// Load reads a dataset written by Save or by an older version of the
// harvester. A missing file is an empty dataset. Columns are matched by
// header name, so reordered files load fine, columns that are missing are
// backfilled with "" and unknown columns are ignored.
func Load(path string) ([]CaseRecord, error) {
	contents, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read dataset: %w", err)
	}
	return Parse(bytes.NewReader(contents))
}

// Parse is Load over an arbitrary reader.
func Parse(r io.Reader) ([]CaseRecord, error) {
	contents, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read dataset: %w", err)
	}
	contents = bytes.TrimPrefix(contents, utf8Bom)

	reader := csv.NewReader(bytes.NewReader(contents))
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err == io.EOF {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("parse dataset header: %w", err)
	}

	positions := make(map[string]int, len(header))
	for i, name := range header {
		name = strings.TrimSpace(name)
		if _, exists := positions[name]; exists {
			continue
		}
		positions[name] = i
	}

	var records []CaseRecord
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("parse dataset row %d: %w", len(records)+2, err)
		}
		records = append(records, recordFromColumns(func(column string) string {
			i, ok := positions[column]
			if !ok || i >= len(row) {
				return ""
			}
			return row[i]
		}))
	}

	return records, nil
}

// Write renders records as csv with the Columns header.
func Write(w io.Writer, records []CaseRecord) error {
	writer := csv.NewWriter(w)
	if err := writer.Write(Columns[:]); err != nil {
		return err
	}
	for _, r := range records {
		if err := writer.Write(r.Row()); err != nil {
			return err
		}
	}
	writer.Flush()
	return writer.Error()
}

// Save replaces the dataset at path. The file is written next to its
// destination and renamed into place so a failed write never leaves a
// truncated dataset behind.
func Save(path string, records []CaseRecord) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create dataset dir: %w", err)
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*")
	if err != nil {
		return fmt.Errorf("create temp dataset: %w", err)
	}
	defer os.Remove(tmp.Name())

	if err := Write(tmp, records); err != nil {
		tmp.Close()
		return fmt.Errorf("write dataset: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close dataset: %w", err)
	}
	if err := os.Chmod(tmp.Name(), 0o644); err != nil {
		return fmt.Errorf("chmod dataset: %w", err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("replace dataset: %w", err)
	}
	return nil
}
