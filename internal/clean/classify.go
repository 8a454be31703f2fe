package clean

import (
	"context"
	"strconv"
	"strings"
)

// Column is one classified column of a cleaned table. Rows holds the
// serialized form of every cell under the declared Dtype; Currency is set
// only on NUMBER columns whose values carried a recognized prefix.
type Column struct {
	Label    string
	Dtype    ColumnDataType
	Currency CurrencySymbol
	Rows     []string
}

// ruleResult is a definitive classification produced by a matching rule.
type ruleResult struct {
	dtype    ColumnDataType
	currency CurrencySymbol
	rows     []string
}

// textRules are the classifier predicates for original-text columns, in
// priority order. The first rule that matches wins; a column matching none
// of them is plain text and goes through spelling correction instead.
var textRules = []func(values []string) (ruleResult, bool){
	classifyBoolean,
	classifyCurrency,
	classifyGender,
}

// classifyColumn normalizes a parsed column (lowercase, trim) and assigns
// its semantic type. Non-text kinds pass through directly; text kinds walk
// the rule chain. Classification never fails on data, only on cancellation
// during the spelling pass.
func classifyColumn(ctx context.Context, col rawColumn) (Column, error) {
	values := make([]string, len(col.cells))
	for i, c := range col.cells {
		values[i] = strings.ToLower(strings.TrimSpace(c))
	}

	out := Column{Label: col.name}
	switch col.kind {
	case kindBool:
		out.Dtype = Boolean
		out.Rows = values
	case kindNumber:
		out.Dtype = Number
		out.Rows = values
	default:
		for _, rule := range textRules {
			if res, ok := rule(values); ok {
				out.Dtype = res.dtype
				out.Currency = res.currency
				out.Rows = res.rows
				return out, nil
			}
		}
		corrected, err := correctAll(ctx, values)
		if err != nil {
			return Column{}, err
		}
		out.Dtype = String
		out.Rows = corrected
	}
	return out, nil
}

// classifyBoolean matches columns whose values are overwhelmingly drawn from
// the true/false membership sets. Every row is rewritten to its truth
// membership in the true set; unrecognized values become "false". An empty
// column matches vacuously.
func classifyBoolean(values []string) (ruleResult, bool) {
	matched := 0
	for _, v := range values {
		if _, ok := booleanTrueValues[v]; ok {
			matched++
		} else if _, ok := booleanFalseValues[v]; ok {
			matched++
		}
	}
	if len(values) > 0 && float64(matched) <= float64(len(values))*CountThreshold {
		return ruleResult{}, false
	}

	rows := make([]string, len(values))
	for i, v := range values {
		_, isTrue := booleanTrueValues[v]
		rows[i] = strconv.FormatBool(isTrue)
	}
	return ruleResult{dtype: Boolean, rows: rows}, true
}

// classifyCurrency matches columns whose non-empty values agree on exactly
// one currency prefix followed by a parseable number. The prefix is stripped
// from every value on match. Mixed symbols or a malformed amount disqualify
// the whole column.
func classifyCurrency(values []string) (ruleResult, bool) {
	var symbol CurrencySymbol
	found := 0
	for _, v := range values {
		if v == "" {
			continue
		}
		for _, sym := range CurrencySymbols {
			rest, ok := strings.CutPrefix(v, string(sym))
			if !ok {
				continue
			}
			if symbol == "" {
				symbol = sym
			} else if symbol != sym {
				// Many different symbols in the column; not worth converting.
				return ruleResult{}, false
			}
			if _, err := strconv.ParseFloat(rest, 64); err != nil {
				return ruleResult{}, false
			}
			found++
			break
		}
	}
	if symbol == "" || float64(found) <= float64(len(values))*CountThreshold {
		return ruleResult{}, false
	}

	rows := make([]string, len(values))
	for i, v := range values {
		rest, ok := strings.CutPrefix(v, string(symbol))
		if !ok {
			rows[i] = v
			continue
		}
		// The rule only matches when every prefixed amount parses, so
		// this renders the numeric form ("20.50" becomes "20.5").
		f, err := strconv.ParseFloat(rest, 64)
		if err != nil {
			rows[i] = rest
			continue
		}
		rows[i] = formatNumber(f)
	}
	return ruleResult{dtype: Number, currency: symbol, rows: rows}, true
}

// classifyGender matches columns dominated by gendered terms and rewrites
// each recognized value to the canonical male/female token. Unrecognized
// values pass through unchanged. An empty column matches vacuously (though
// the boolean rule claims it first).
func classifyGender(values []string) (ruleResult, bool) {
	matched := 0
	for _, v := range values {
		if _, ok := genderMaleValues[v]; ok {
			matched++
		} else if _, ok := genderFemaleValues[v]; ok {
			matched++
		}
	}
	if len(values) > 0 && float64(matched) <= float64(len(values))*CountThreshold {
		return ruleResult{}, false
	}

	rows := make([]string, len(values))
	for i, v := range values {
		switch {
		case memberOf(genderMaleValues, v):
			rows[i] = "male"
		case memberOf(genderFemaleValues, v):
			rows[i] = "female"
		default:
			rows[i] = v
		}
	}
	return ruleResult{dtype: String, rows: rows}, true
}

func memberOf(set map[string]struct{}, v string) bool {
	_, ok := set[v]
	return ok
}

// correctAll runs spelling correction over every value of a free-text
// column, checking for cancellation between values since the scan is
// quadratic in column length.
func correctAll(ctx context.Context, values []string) ([]string, error) {
	out := make([]string, len(values))
	for i, v := range values {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		out[i] = correct(v, values)
	}
	return out, nil
}
