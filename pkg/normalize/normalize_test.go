package normalize_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/stork-search/stork/pkg/normalize"
)

func TestSplit(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []normalize.Word
	}{
		{
			name:  "simple sentence",
			input: "Give me liberty, or give me death!",
			want: []normalize.Word{
				{Text: "give", ByteOffset: 0},
				{Text: "me", ByteOffset: 5},
				{Text: "liberty", ByteOffset: 8},
				{Text: "or", ByteOffset: 17},
				{Text: "give", ByteOffset: 20},
				{Text: "me", ByteOffset: 25},
				{Text: "death", ByteOffset: 28},
			},
		},
		{
			name:  "hyphens split into separate words",
			input: "state-of-the-art",
			want: []normalize.Word{
				{Text: "state", ByteOffset: 0},
				{Text: "of", ByteOffset: 6},
				{Text: "the", ByteOffset: 9},
				{Text: "art", ByteOffset: 13},
			},
		},
		{
			name:  "interior apostrophe is preserved",
			input: "don't stop",
			want: []normalize.Word{
				{Text: "don't", ByteOffset: 0},
				{Text: "stop", ByteOffset: 6},
			},
		},
		{
			name:  "empty string",
			input: "",
			want:  nil,
		},
		{
			name:  "only punctuation collapses to nothing",
			input: "... !!! ,,,",
			want:  nil,
		},
		{
			name:  "whitespace-only",
			input: "   \t\n  ",
			want:  nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, normalize.Split(tt.input))
		})
	}
}

func TestTrimPunctuation(t *testing.T) {
	tests := []struct{ input, want string }{
		{"hello", "hello"},
		{"\"hello\"", "hello"},
		{"don't", "don't"},
		{"...", ""},
		{"(parenthetical)", "parenthetical"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, normalize.TrimPunctuation(tt.input))
	}
}

func TestIsCJKIdeographic(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  bool
	}{
		{"empty string is not ideographic", "", false},
		{"ascii word", "liberty", false},
		{"chinese word", "自由", true},
		{"mixed ascii and cjk", "自由a", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, normalize.IsCJKIdeographic(tt.input))
		})
	}
}
