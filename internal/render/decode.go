package render

import (
	"errors"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"github.com/Cyclone1070/shellfs/internal/adapter"
	"github.com/Cyclone1070/shellfs/internal/models"
)

// Decode reads entries written by the json or yaml format. JSON is read as
// YAML, so either works. Empty input yields no entries.
func Decode(r io.Reader) ([]models.PathEntry, error) {
	var records []adapter.Record
	if err := yaml.NewDecoder(r).Decode(&records); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to decode listing: %w", err)
	}

	entries := make([]models.PathEntry, 0, len(records))
	for i, rec := range records {
		entry, err := adapter.FromRecord(rec)
		if err != nil {
			return nil, fmt.Errorf("entry %d: %w", i, err)
		}
		entries = append(entries, entry)
	}
	return entries, nil
}
