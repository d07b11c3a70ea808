package adapter

import (
	"github.com/mitchellh/mapstructure"

	"github.com/Cyclone1070/shellfs/internal/models"
)

// Record is the framework-facing form of an entry, with the keys
// "name", "size", "type" and "islink".
type Record map[string]any

type recordFields struct {
	Name   string `mapstructure:"name"`
	Size   int64  `mapstructure:"size"`
	Type   string `mapstructure:"type"`
	IsLink bool   `mapstructure:"islink"`
}

// ToRecord converts an entry to its record form. The type is the
// lower-case PathType name.
func ToRecord(e models.PathEntry) Record {
	return Record{
		"name":   e.Name,
		"size":   e.Size,
		"type":   e.Type.String(),
		"islink": e.IsLink,
	}
}

// FromRecord decodes a record produced by ToRecord or by a framework.
// Numeric and boolean fields are weakly typed; the type name is matched
// case-insensitively.
func FromRecord(r Record) (models.PathEntry, error) {
	var fields recordFields
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           &fields,
		WeaklyTypedInput: true,
	})
	if err != nil {
		return models.PathEntry{}, &InvalidRecordError{Cause: err}
	}
	if err := decoder.Decode(map[string]any(r)); err != nil {
		return models.PathEntry{}, &InvalidRecordError{Cause: err}
	}

	t, err := models.PathTypeFromString(fields.Type)
	if err != nil {
		return models.PathEntry{}, &InvalidRecordError{Cause: err}
	}
	return models.PathEntry{Name: fields.Name, Type: t, Size: fields.Size, IsLink: fields.IsLink}, nil
}

// TypeIs compares a PathType with a framework-supplied type string,
// ignoring case.
func TypeIs(t models.PathType, s string) bool {
	parsed, err := models.PathTypeFromString(s)
	return err == nil && parsed == t
}
