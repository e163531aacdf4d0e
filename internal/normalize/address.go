package normalize

import (
	"strings"

	"github.com/rezonia/ubl-processor/internal/model"
)

// AddressText renders an address as up to three lines:
// street and additional street, postal zone and city, subdivision and country.
// Empty lines are dropped; nil is returned when nothing is left.
func AddressText(a *model.Address) *string {
	if a == nil {
		return nil
	}
	var lines []string
	for _, parts := range [][]string{
		{a.Street, a.AdditionalStreet},
		{a.PostalZone, a.City},
		{a.CountrySubentity, a.CountryCode},
	} {
		if line := joinNonEmpty(parts...); line != "" {
			lines = append(lines, line)
		}
	}
	if len(lines) == 0 {
		return nil
	}
	out := strings.Join(lines, "\n")
	return &out
}

// AddressStructured reshapes an address into the record fields. Line2 is
// always nil.
func AddressStructured(a *model.Address) *model.StructuredAddress {
	if a == nil {
		return nil
	}
	s := model.StructuredAddress{
		Line1:      Text(joinNonEmpty(a.Street, a.AdditionalStreet)),
		City:       Text(a.City),
		State:      Text(a.CountrySubentity),
		PostalCode: Text(a.PostalZone),
		Country:    Text(a.CountryCode),
	}
	if s.Line1 == nil && s.City == nil && s.State == nil && s.PostalCode == nil && s.Country == nil {
		return nil
	}
	return &s
}

func joinNonEmpty(parts ...string) string {
	kept := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			kept = append(kept, p)
		}
	}
	return strings.Join(kept, " ")
}
