package domain

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestValidatePair(t *testing.T) {
	t.Parallel()
	cases := map[string]bool{
		"USD/JPY": true,
		"GBP/EUR": true,
		"USD/USD": false,
		"USD/MXN": false,
		"usd/jpy": false,
		"USDJPY":  false,
	}
	for in, want := range cases {
		require.Equal(t, want, ValidatePair(in), in)
	}
}

func TestTargetOptions_ExcludeSource(t *testing.T) {
	t.Parallel()
	for _, from := range Currencies {
		opts := TargetOptions(from)
		require.Len(t, opts, len(Currencies)-1)
		require.NotContains(t, opts, from)
		// stable across repeated renders
		require.Equal(t, opts, TargetOptions(from))
	}
	require.Equal(t, []Currency{JPY, EUR, GBP}, TargetOptions(USD))
}

func TestResolveTarget(t *testing.T) {
	t.Parallel()
	to, err := ResolveTarget(USD, "")
	require.NoError(t, err)
	require.Equal(t, JPY, to)

	to, err = ResolveTarget(JPY, JPY)
	require.NoError(t, err)
	require.Equal(t, USD, to)

	to, err = ResolveTarget(EUR, GBP)
	require.NoError(t, err)
	require.Equal(t, GBP, to)

	_, err = ResolveTarget("CHF", USD)
	require.ErrorIs(t, err, ErrUnsupportedCurrency)
	_, err = ResolveTarget(USD, "CHF")
	require.ErrorIs(t, err, ErrUnsupportedCurrency)
}

func TestParseCurrency(t *testing.T) {
	t.Parallel()
	c, err := ParseCurrency(" eur ")
	require.NoError(t, err)
	require.Equal(t, EUR, c)
	_, err = ParseCurrency("MXN")
	require.ErrorIs(t, err, ErrUnsupportedCurrency)
}

func TestPairParts(t *testing.T) {
	t.Parallel()
	p := NewPair(GBP, JPY)
	require.Equal(t, "GBP/JPY", p.Label())
	require.Equal(t, GBP, p.Base())
	require.Equal(t, JPY, p.Quote())
}
