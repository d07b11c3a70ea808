package models

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPathType_StringRoundTrip(t *testing.T) {
	for _, pt := range []PathType{NotFound, Directory, File, Symlink} {
		t.Run(pt.String(), func(t *testing.T) {
			got, err := PathTypeFromString(pt.String())
			require.NoError(t, err)
			assert.Equal(t, pt, got)
		})
	}
}

func TestPathTypeFromString_CaseInsensitive(t *testing.T) {
	tests := []struct {
		input string
		want  PathType
	}{
		{"FILE", File},
		{"File", File},
		{"directory", Directory},
		{"DIRECTORY", Directory},
		{"Dir", Directory},
		{"SymLink", Symlink},
		{"NOT_FOUND", NotFound},
		{" file ", File},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := PathTypeFromString(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestPathTypeFromString_Unknown(t *testing.T) {
	_, err := PathTypeFromString("fifo")

	var unknown *UnknownPathTypeError
	require.True(t, errors.As(err, &unknown))
	assert.Equal(t, "fifo", unknown.Value)
	assert.True(t, unknown.InvalidInput())
}

func TestPathType_Identity(t *testing.T) {
	types := []PathType{NotFound, Directory, File, Symlink}
	for i, a := range types {
		for j, b := range types {
			assert.Equal(t, i == j, a == b, "%s vs %s", a, b)
		}
	}
}

func TestNotFoundEntry(t *testing.T) {
	entry := NotFoundEntry("UNKNOWN_FILE.txt")

	assert.Equal(t, PathEntry{Name: "UNKNOWN_FILE.txt", Type: NotFound, Size: 0}, entry)
	assert.False(t, entry.Exists())
	assert.True(t, entry.IsNotFound())
	assert.False(t, entry.IsFile())
	assert.False(t, entry.IsDir())
}

func TestPathEntry_Equality(t *testing.T) {
	a := PathEntry{Name: "some_file.txt", Type: File, Size: 4001}
	b := PathEntry{Name: "some_file.txt", Type: File, Size: 4001}
	c := PathEntry{Name: "some_file.txt", Type: File, Size: 4001, IsLink: true}

	assert.True(t, a == b)
	assert.False(t, a == c)
}

func TestPathEntry_Classification(t *testing.T) {
	assert.True(t, PathEntry{Type: Directory}.IsDir())
	assert.True(t, PathEntry{Type: File}.IsFile())
	assert.True(t, PathEntry{Type: Symlink}.IsSymlink())
	assert.True(t, PathEntry{Type: Symlink}.Exists())
}
