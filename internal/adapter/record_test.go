package adapter

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Cyclone1070/shellfs/internal/models"
)

func TestToRecord(t *testing.T) {
	record := ToRecord(models.PathEntry{Name: "some_directory", Type: models.Directory, Size: 4096})

	assert.Equal(t, Record{"name": "some_directory", "size": int64(4096), "type": "directory", "islink": false}, record)
}

func TestFromRecord(t *testing.T) {
	t.Run("From ToRecord", func(t *testing.T) {
		entry := models.PathEntry{Name: "current", Type: models.Symlink, Size: 7, IsLink: true}
		got, err := FromRecord(ToRecord(entry))
		require.NoError(t, err)
		assert.Equal(t, entry, got)
	})

	t.Run("Weakly typed framework values", func(t *testing.T) {
		got, err := FromRecord(Record{"name": "a.txt", "size": float64(12), "type": "FILE", "islink": "false"})
		require.NoError(t, err)
		assert.Equal(t, models.PathEntry{Name: "a.txt", Type: models.File, Size: 12}, got)
	})

	t.Run("Unknown keys are ignored", func(t *testing.T) {
		got, err := FromRecord(Record{"name": "a", "type": "file", "mode": "0644"})
		require.NoError(t, err)
		assert.Equal(t, "a", got.Name)
	})

	t.Run("Unknown type", func(t *testing.T) {
		_, err := FromRecord(Record{"name": "p", "type": "fifo"})
		var invalid *InvalidRecordError
		require.True(t, errors.As(err, &invalid))
		var unknown *models.UnknownPathTypeError
		assert.True(t, errors.As(err, &unknown))
	})

	t.Run("Wrong value type", func(t *testing.T) {
		_, err := FromRecord(Record{"name": "p", "type": "file", "size": []int{1}})
		var invalid *InvalidRecordError
		assert.True(t, errors.As(err, &invalid))
	})
}

func TestTypeIs(t *testing.T) {
	assert.True(t, TypeIs(models.File, "file"))
	assert.True(t, TypeIs(models.File, "FILE"))
	assert.True(t, TypeIs(models.Directory, "Directory"))
	assert.False(t, TypeIs(models.File, "directory"))
	assert.False(t, TypeIs(models.File, "fifo"))
}
