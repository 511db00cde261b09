package words

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/silvncr/watchword-bot/internal/errs"
)

func TestNormalize(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in, want string
	}{
		{"sky!!", "SKY"},
		{"  Cat ", "CAT"},
		{"don't", "DONT"},
		{"café", "CAF"},
		{"straße", "STRASSE"},
		{"1234", ""},
		{"", ""},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got := Normalize(tt.in)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, got, Normalize(got), "normalize must be idempotent")
		})
	}
}

func TestValidate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		word   string
		reason string
	}{
		{"two letters", "AB", ""},
		{"forty letters", strings.Repeat("A", 40), ""},
		{"one letter", "A", ReasonLength},
		{"empty", "", ReasonLength},
		{"forty-one letters", strings.Repeat("A", 41), ReasonLength},
		{"lowercase", "abc", ReasonLettersOnly},
		{"digits", "AB1", ReasonLettersOnly},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			err := Validate(tt.word)
			if tt.reason == "" {
				require.NoError(t, err)
				return
			}
			var inv *errs.InvalidInputError
			require.ErrorAs(t, err, &inv)
			assert.Equal(t, tt.reason, inv.Reason)
			assert.Equal(t, tt.word, inv.Word)
		})
	}
}

func TestFlags(t *testing.T) {
	t.Parallel()

	f := NewFlags("clean", "bad")
	assert.Equal(t, []string{"bad", "clean"}, f.Sorted())
	assert.Equal(t, "bad, clean", f.String())
	assert.Equal(t, "(none)", NewFlags().String())

	var empty Flags
	u := empty.Union(NewFlags("bad"))
	assert.Equal(t, NewFlags("bad"), u)
	assert.Empty(t, empty, "union must not mutate the receiver")
}

func TestWordlistsFull(t *testing.T) {
	t.Parallel()

	ws := Wordlists{
		"1.0": {"CAT": NewFlags(), "DOG": NewFlags()},
		"2.0": {"DOG": NewFlags("bad"), "EMU": NewFlags()},
	}
	full := ws.Full()
	assert.Len(t, full, 3)
	for _, w := range []string{"CAT", "DOG", "EMU"} {
		assert.Contains(t, full, w)
	}
}
