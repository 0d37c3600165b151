package aba_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/ltl2nba/aba"
)

// TestAlphabet_Powerset checks letter order, rendering and membership.
func TestAlphabet_Powerset(t *testing.T) {
	a, err := aba.NewAlphabet([]string{"q", "p", "q", "r"})
	require.NoError(t, err)

	assert.Equal(t, []string{"p", "q", "r"}, a.Props())
	assert.Equal(t, 8, a.Size())
	assert.Equal(t,
		[]string{"", "p", "q", "p,q", "r", "p,r", "q,r", "p,q,r"},
		a.Strings())

	l, err := a.LetterOf("r", "p")
	require.NoError(t, err)
	assert.True(t, a.Has(l, "p"))
	assert.False(t, a.Has(l, "q"))
	assert.True(t, a.Has(l, "r"))
	assert.False(t, a.Has(l, "unknown"))
	assert.Equal(t, []string{"p", "r"}, a.Members(l))
	assert.Equal(t, "p,r", a.Format(l))
	assert.True(t, a.Contains(l))
	assert.False(t, a.Contains(aba.Letter(8)))
}

// TestAlphabet_Parse reads letters back from their rendering.
func TestAlphabet_Parse(t *testing.T) {
	a, err := aba.NewAlphabet([]string{"p", "q"})
	require.NoError(t, err)
	for _, l := range a.Letters() {
		got, err := a.Parse(a.Format(l))
		require.NoError(t, err)
		assert.Equal(t, l, got)
	}
	got, err := a.Parse(" q , p ")
	require.NoError(t, err)
	assert.Equal(t, "p,q", a.Format(got))

	_, err = a.Parse("p,x")
	assert.True(t, errors.Is(err, aba.ErrUnknownLetter))
}

// TestAlphabet_Empty covers the single empty letter.
func TestAlphabet_Empty(t *testing.T) {
	a, err := aba.NewAlphabet(nil)
	require.NoError(t, err)
	assert.Equal(t, 1, a.Size())
	assert.Equal(t, []aba.Letter{0}, a.Letters())
	assert.Equal(t, []string{""}, a.Strings())
	assert.Empty(t, a.Props())
}

// TestAlphabet_Invalid rejects names that are not identifiers: they could
// collide with the letter format or render like a compound formula.
func TestAlphabet_Invalid(t *testing.T) {
	for _, name := range []string{"", "a,b", "a;b", "x U y", "~ p", "(p)", "1p", "G", "true"} {
		_, err := aba.NewAlphabet([]string{"ok", name})
		assert.True(t, errors.Is(err, aba.ErrInvalidProposition), "%q: %v", name, err)
	}
}
