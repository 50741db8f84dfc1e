package sheet

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Row is one normalized record of a tabular feed: cleaned uppercase column
// headers mapped to trimmed cell values.
type Row map[string]string

// CleanKey is the canonical header form used for every lookup: internal
// whitespace runs collapsed to one space, trimmed, uppercased.
func CleanKey(k string) string {
	return strings.ToUpper(strings.Join(strings.Fields(k), " "))
}

// NormalizeRow cleans every key of a raw source record and trims its values.
func NormalizeRow(raw map[string]string) Row {
	out := make(Row, len(raw))
	for k, v := range raw {
		out[CleanKey(k)] = strings.TrimSpace(v)
	}
	return out
}

// Get returns the first non-empty cell among the given header aliases.
func (r Row) Get(keys ...string) string {
	for _, k := range keys {
		if v := r[k]; v != "" {
			return v
		}
	}
	return ""
}

// ParseAmount parses a locale-formatted amount: thousands separators are
// stripped and a parenthesized value reads as negative. Empty or non-numeric
// input yields zero; absent financial data is zero, not an error. This is a
// total function over arbitrary input.
func ParseAmount(raw string) decimal.Decimal {
	s := strings.TrimSpace(strings.ReplaceAll(raw, ",", ""))
	if open := strings.Index(s, "("); open >= 0 {
		if close := strings.LastIndex(s, ")"); close > open {
			s = "-" + s[open+1:close]
		}
	}
	s = strings.TrimSpace(s)
	if s == "" {
		return decimal.Zero
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero
	}
	return d
}

// ParseDate converts a source M/D/YYYY calendar date to ISO YYYY-MM-DD.
// Already-ISO input passes through; anything unparseable is returned as-is
// and left to the calendar sort.
func ParseDate(raw string) string {
	s := strings.TrimSpace(raw)
	if s == "" {
		return ""
	}
	if t, err := time.Parse("2006-01-02", s); err == nil {
		return t.Format("2006-01-02")
	}
	if t, err := time.Parse("1/2/2006", s); err == nil {
		return t.Format("2006-01-02")
	}
	return s
}
