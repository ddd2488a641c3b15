package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCanonicalCategory(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
		ok    bool
	}{
		{name: "exact match", input: "Pop", want: "Pop", ok: true},
		{name: "lowercase", input: "pop", want: "Pop", ok: true},
		{name: "trailing whitespace", input: "pop ", want: "Pop", ok: true},
		{name: "inner whitespace collapsed", input: "hip   hop", want: "Hip Hop", ok: true},
		{name: "mixed case multiword", input: " HIP HOP ", want: "Hip Hop", ok: true},
		{name: "unknown", input: "Polka", ok: false},
		{name: "empty", input: "", ok: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := CanonicalCategory(tt.input)
			assert.Equal(t, tt.ok, ok)
			if tt.ok {
				assert.Equal(t, tt.want, got)
			}
		})
	}
}

func TestNormalizeCategoryKey_CollapsesVariants(t *testing.T) {
	assert.Equal(t, NormalizeCategoryKey("Pop"), NormalizeCategoryKey("pop "))
	assert.NotEqual(t, NormalizeCategoryKey("Pop"), NormalizeCategoryKey("Jazz"))
}
