package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseQuantity(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  int
	}{
		{name: "plain number", input: "3", want: 3},
		{name: "zero", input: "0", want: 0},
		{name: "empty counts as zero", input: "", want: 0},
		{name: "whitespace trimmed", input: " 12 ", want: 12},
		{name: "unparseable counts as zero", input: "abc", want: 0},
		{name: "mixed counts as zero", input: "1a", want: 0},
		{name: "negative clamped to zero", input: "-4", want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseQuantity(tt.input))
		})
	}
}

func TestNewLineItem(t *testing.T) {
	a := NewLineItem()
	b := NewLineItem()

	assert.NotEmpty(t, a.ID)
	assert.NotEqual(t, a.ID, b.ID)
	assert.Empty(t, a.PhotoNumber)
	assert.Empty(t, a.Qty4x6)
	assert.Empty(t, a.Qty5x7)
	assert.Empty(t, a.Qty8x10)
}
