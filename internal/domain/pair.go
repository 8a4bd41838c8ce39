package domain

import (
	"regexp"
	"strings"
)

type Currency string

const (
	JPY Currency = "JPY"
	USD Currency = "USD"
	EUR Currency = "EUR"
	GBP Currency = "GBP"
)

// Currencies is the fixed, ordered set offered by the selectors.
var Currencies = []Currency{JPY, USD, EUR, GBP}

var SupportedCurrency = map[Currency]bool{
	JPY: true,
	USD: true,
	EUR: true,
	GBP: true,
}

// DefaultFrom is the source currency preselected for new sessions.
const DefaultFrom = USD

type Pair string

var pairRe = regexp.MustCompile(`^[A-Z]{3}/[A-Z]{3}$`)

func NewPair(base, quote Currency) Pair {
	return Pair(string(base) + "/" + string(quote))
}

func SplitPair(p string) (Currency, Currency, bool) {
	if !pairRe.MatchString(p) {
		return "", "", false
	}
	return Currency(p[:3]), Currency(p[4:]), true
}

func ValidatePair(p string) bool {
	base, quote, ok := SplitPair(p)
	if !ok {
		return false
	}
	return SupportedCurrency[base] && SupportedCurrency[quote] && base != quote
}

func (p Pair) Base() Currency {
	b, _, _ := SplitPair(string(p))
	return b
}

func (p Pair) Quote() Currency {
	_, q, _ := SplitPair(string(p))
	return q
}

// Label is the "USD/JPY" form used to key prompt templates.
func (p Pair) Label() string { return string(p) }

// ParseCurrency normalizes a user supplied code.
func ParseCurrency(s string) (Currency, error) {
	c := Currency(strings.ToUpper(strings.TrimSpace(s)))
	if !SupportedCurrency[c] {
		return "", ErrUnsupportedCurrency
	}
	return c, nil
}

// TargetOptions lists the currencies selectable as target for from.
// The source currency is never among them.
func TargetOptions(from Currency) []Currency {
	out := make([]Currency, 0, len(Currencies)-1)
	for _, c := range Currencies {
		if c != from {
			out = append(out, c)
		}
	}
	return out
}

// ResolveTarget keeps to when it is still a valid option for from and
// otherwise falls back to the first option, like a select box whose
// current value disappeared.
func ResolveTarget(from, to Currency) (Currency, error) {
	if !SupportedCurrency[from] {
		return "", ErrUnsupportedCurrency
	}
	if to == "" || to == from {
		return TargetOptions(from)[0], nil
	}
	if !SupportedCurrency[to] {
		return "", ErrUnsupportedCurrency
	}
	return to, nil
}
