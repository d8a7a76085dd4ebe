package index

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

func encode(w io.Writer, value any, indent bool) error {
	encoder := json.NewEncoder(w)
	encoder.SetEscapeHTML(false)
	if indent {
		encoder.SetIndent("", "  ")
	}
	return encoder.Encode(value)
}

func (e Entry) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	var err error
	if len(e) == 1 {
		err = encode(&buf, e[0], false)
	} else {
		err = encode(&buf, []Record(e), false)
	}
	if err != nil {
		return nil, err
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}

func (e *Entry) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '[' {
		var records []Record
		if err := json.Unmarshal(data, &records); err != nil {
			return err
		}
		*e = records
		return nil
	}

	var single Record
	if err := json.Unmarshal(data, &single); err != nil {
		return err
	}
	*e = Entry{single}
	return nil
}

// Encode writes the index as indented JSON, keys are sorted and non-ascii
// characters are kept as is.
func Encode(w io.Writer, idx Index) error {
	return encode(w, idx, true)
}

// Decode reads an index in either entry shape.
func Decode(r io.Reader) (Index, error) {
	var idx Index
	if err := json.NewDecoder(r).Decode(&idx); err != nil {
		return nil, err
	}
	if idx == nil {
		idx = Index{}
	}
	return idx, nil
}

// Write replaces the index file at path.
func Write(path string, idx Index) error {
	var buf bytes.Buffer
	if err := Encode(&buf, idx); err != nil {
		return fmt.Errorf("encode index: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create index dir: %w", err)
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("write index: %w", err)
	}
	return nil
}

// Read loads the index file at path.
func Read(path string) (Index, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	idx, err := Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decode index %s: %w", path, err)
	}
	return idx, nil
}
