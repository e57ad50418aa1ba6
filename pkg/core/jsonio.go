package core

import (
	"encoding/json"
	"io"
)

// MarshalReport pretty-prints a tree report as JSON for humans or pipelines.
func MarshalReport(w io.Writer, r *TreeReport) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(r)
}

// UnmarshalReport decodes report JSON, useful for ingestion tests.
func UnmarshalReport(r io.Reader) (*TreeReport, error) {
	var tr TreeReport
	if err := json.NewDecoder(r).Decode(&tr); err != nil {
		return nil, err
	}
	return &tr, nil
}
