package normalize

import (
	"strings"
	"time"

	"github.com/araddon/dateparse"
)

const isoDate = "2006-01-02"

// xs:date with and without a zone suffix; the calendar date is kept as written
var schemaDateLayouts = []string{"2006-01-02Z07:00", isoDate}

// Text trims s and returns nil for empty, "NA" and "N/A" (any case).
// Anything else is returned trimmed with its casing untouched.
func Text(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" || strings.EqualFold(s, "NA") || strings.EqualFold(s, "N/A") {
		return nil
	}
	return &s
}

// FirstText returns Text of the first candidate that survives normalization
func FirstText(candidates ...string) *string {
	for _, c := range candidates {
		if v := Text(c); v != nil {
			return v
		}
	}
	return nil
}

// Date parses a schema date and renders the calendar date as YYYY-MM-DD.
// Unparseable input yields nil.
func Date(s string) *string {
	v := Text(s)
	if v == nil {
		return nil
	}
	for _, layout := range schemaDateLayouts {
		if t, err := time.Parse(layout, *v); err == nil {
			out := t.Format(isoDate)
			return &out
		}
	}
	t, err := dateparse.ParseAny(*v)
	if err != nil {
		return nil
	}
	out := t.Format(isoDate)
	return &out
}

// Currency trims and upper-cases a currency code
func Currency(s string) *string {
	v := Text(s)
	if v == nil {
		return nil
	}
	out := strings.ToUpper(*v)
	return &out
}
