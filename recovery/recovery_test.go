package recovery

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGeneratePhrase(t *testing.T) {
	phrase, err := GeneratePhrase()
	require.NoError(t, err)

	assert.Len(t, strings.Fields(phrase), PhraseWords)
	assert.True(t, ValidatePhrase(phrase))

	other, err := GeneratePhrase()
	require.NoError(t, err)
	assert.NotEqual(t, phrase, other, "two generated phrases should differ")
}

func TestValidatePhrase(t *testing.T) {
	phrase, err := GeneratePhrase()
	require.NoError(t, err)

	cases := []struct {
		name   string
		phrase string
		valid  bool
	}{
		{name: "generated", phrase: phrase, valid: true},
		{name: "extra whitespace", phrase: "  " + strings.ReplaceAll(phrase, " ", "   ") + " ", valid: true},
		{name: "uppercase", phrase: strings.ToUpper(phrase), valid: true},
		{name: "empty", phrase: "", valid: false},
		{name: "gibberish", phrase: "not a real mnemonic at all sorry", valid: false},
		{name: "truncated", phrase: strings.Join(strings.Fields(phrase)[:11], " "), valid: false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.valid, ValidatePhrase(tc.phrase))
		})
	}
}

func TestSeedFromPhraseDeterministic(t *testing.T) {
	phrase, err := GeneratePhrase()
	require.NoError(t, err)

	seed1, err := SeedFromPhrase(phrase)
	require.NoError(t, err)
	seed2, err := SeedFromPhrase("  " + strings.ToUpper(phrase) + "  ")
	require.NoError(t, err)

	assert.Equal(t, seed1, seed2, "normalization must not change the seed")
	assert.Len(t, seed1, 64)
}

func TestSeedFromPhraseInvalid(t *testing.T) {
	_, err := SeedFromPhrase("definitely not twelve valid words")
	assert.ErrorIs(t, err, ErrInvalidPhrase)
}
