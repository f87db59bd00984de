package domain

import (
	"errors"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
)

func TestTruncate(t *testing.T) {
	tests := []struct {
		name     string
		in       string
		n        int
		expected string
	}{
		{"short", "flooded", 60, "flooded"},
		{"exact", "abcde", 5, "abcde"},
		{"cut", "abcdef", 5, "abcde..."},
		{"hangul", "강남역 물이 너무 많이 찼어요", 3, "강남역..."},
		{"no dangling space", "강남역 물이 너무", 4, "강남역..."},
		{"trims", "  road closed  ", 60, "road closed"},
		{"zero", "anything", 0, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Truncate(tt.in, tt.n)
			assert.Equal(t, tt.expected, got)
			assert.True(t, utf8.ValidString(got))
		})
	}
}

func TestDisplayPlace(t *testing.T) {
	assert.Equal(t, PlacePlaceholderName, DisplayPlace(Post{}))
	assert.Equal(t, PlacePlaceholderName, DisplayPlace(Post{PlaceName: "   "}))
	assert.Equal(t, "강남역", DisplayPlace(Post{PlaceName: "강남역"}))
}

func TestErrors(t *testing.T) {
	missing := &MissingColumnError{Columns: []string{"longitude"}}
	assert.Equal(t, "missing required columns: longitude", missing.Error())

	cause := errors.New("zip: not a valid zip file")
	var parseErr error = &ParseError{Err: cause}
	assert.ErrorIs(t, parseErr, cause)
	assert.Contains(t, parseErr.Error(), "zip")

	empty := &EmptyResultError{Rows: 4}
	assert.Contains(t, empty.Error(), "4 rows")
}
