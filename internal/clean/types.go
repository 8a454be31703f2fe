// Package clean implements the CSV cleaning and type-inference engine.
//
// A raw upload flows through four stages: delimiter sanitizing, tabular
// parsing, null filling, and per-column classification. The output is a
// rectangular table of typed columns whose values are serialized as plain
// strings, ready for persistence as one comma-joined row per column.
package clean

import "fmt"

// ColumnDataType is the semantic type assigned to a column after inference.
type ColumnDataType string

const (
	Boolean ColumnDataType = "BOOLEAN"
	Number  ColumnDataType = "NUMBER"
	String  ColumnDataType = "STRING"
)

// ParseColumnDataType validates a stored dtype tag.
func ParseColumnDataType(s string) (ColumnDataType, error) {
	switch ColumnDataType(s) {
	case Boolean, Number, String:
		return ColumnDataType(s), nil
	}
	return "", fmt.Errorf("unknown column data type %q", s)
}

// CurrencySymbol is a recognized monetary prefix stripped from NUMBER
// columns during classification. The empty string means "no currency".
type CurrencySymbol string

// CurrencySymbols lists the recognized prefixes in match order.
var CurrencySymbols = []CurrencySymbol{"$", "€", "£", "¥", "₹", "₩"}

// FillStrategy selects how missing cells are replaced before type inference.
type FillStrategy string

const (
	FillForward  FillStrategy = "forward"
	FillBackward FillStrategy = "backward"
	FillMin      FillStrategy = "min"
	FillMax      FillStrategy = "max"
	FillMean     FillStrategy = "mean"
	FillZero     FillStrategy = "zero"
	FillOne      FillStrategy = "one"
)

// ParseFillStrategy validates a client-supplied strategy name.
func ParseFillStrategy(s string) (FillStrategy, error) {
	switch FillStrategy(s) {
	case FillForward, FillBackward, FillMin, FillMax, FillMean, FillZero, FillOne:
		return FillStrategy(s), nil
	}
	return "", fmt.Errorf("unknown fill strategy %q", s)
}

// CountThreshold is the fraction of rows that must match a heuristic for a
// column to be classified by it. Shared across the boolean, currency, and
// gender checks; biased toward leaving ambiguous columns as plain text.
var CountThreshold = 0.8

// SimilarityThreshold is the minimum similarity ratio for two values to be
// considered spelling variants of each other.
var SimilarityThreshold = 0.8

// Membership sets for the boolean heuristic. Values are matched after
// lowercasing and trimming.
var (
	booleanTrueValues = map[string]struct{}{
		"true": {}, "yes": {}, "y": {}, "on": {}, "t": {}, "yeah": {},
		"yep": {}, "ye": {}, "ok": {}, "okay": {}, "affirmative": {},
		"certainly": {}, "positive": {},
	}
	booleanFalseValues = map[string]struct{}{
		"false": {}, "no": {}, "n": {}, "off": {}, "f": {}, "nah": {},
		"na": {}, "nop": {}, "nope": {}, "negative": {}, "absent": {},
		"none": {},
	}
)

// Membership sets for the gender heuristic.
var (
	genderMaleValues = map[string]struct{}{
		"male": {}, "m": {}, "man": {}, "boy": {}, "gentleman": {},
		"masculine": {}, "he": {}, "his": {}, "him": {}, "guy": {},
		"dude": {}, "bro": {}, "sir": {}, "king": {},
	}
	genderFemaleValues = map[string]struct{}{
		"female": {}, "f": {}, "woman": {}, "girl": {}, "lady": {},
		"feminine": {}, "she": {}, "her": {}, "hers": {}, "gal": {},
		"chick": {}, "miss": {}, "madam": {}, "ma'am": {}, "queen": {},
	}
)
