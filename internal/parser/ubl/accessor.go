package ubl

import (
	"strings"

	"github.com/beevik/etree"
	"github.com/shopspring/decimal"

	dec "github.com/rezonia/ubl-processor/internal/decimal"
)

// UBL 2.1 namespaces
const (
	NamespaceCBC        = "urn:oasis:names:specification:ubl:schema:xsd:CommonBasicComponents-2"
	NamespaceCAC        = "urn:oasis:names:specification:ubl:schema:xsd:CommonAggregateComponents-2"
	NamespaceExt        = "urn:oasis:names:specification:ubl:schema:xsd:CommonExtensionComponents-2"
	NamespaceInvoice    = "urn:oasis:names:specification:ubl:schema:xsd:Invoice-2"
	NamespaceCreditNote = "urn:oasis:names:specification:ubl:schema:xsd:CreditNote-2"
	NamespaceXMLDSig    = "http://www.w3.org/2000/09/xmldsig#"
)

// Name is a namespace-qualified element name
type Name struct {
	Space string
	Local string
}

// CBC names a Basic Components element
func CBC(local string) Name {
	return Name{Space: NamespaceCBC, Local: local}
}

// CAC names an Aggregate Components element
func CAC(local string) Name {
	return Name{Space: NamespaceCAC, Local: local}
}

// Child returns the first direct child of e matching n, or nil.
// Nested aggregates below the children are never considered.
func Child(e *etree.Element, n Name) *etree.Element {
	if e == nil {
		return nil
	}
	for _, c := range e.ChildElements() {
		if matches(c, n) {
			return c
		}
	}
	return nil
}

// Children returns every direct child of e matching n, in document order
func Children(e *etree.Element, n Name) []*etree.Element {
	if e == nil {
		return nil
	}
	var out []*etree.Element
	for _, c := range e.ChildElements() {
		if matches(c, n) {
			out = append(out, c)
		}
	}
	return out
}

// ChildPath follows a chain of direct-child lookups, returning nil as soon
// as one step is missing
func ChildPath(e *etree.Element, path ...Name) *etree.Element {
	for _, n := range path {
		e = Child(e, n)
		if e == nil {
			return nil
		}
	}
	return e
}

// Descendant returns the first element matching n anywhere below e in
// document order, or nil. e itself is not considered.
func Descendant(e *etree.Element, n Name) *etree.Element {
	if e == nil {
		return nil
	}
	for _, c := range e.ChildElements() {
		if matches(c, n) {
			return c
		}
		if found := Descendant(c, n); found != nil {
			return found
		}
	}
	return nil
}

// Text returns the trimmed text content of e including nested text, or ""
func Text(e *etree.Element) string {
	if e == nil {
		return ""
	}
	var b strings.Builder
	collectText(e, &b)
	return strings.TrimSpace(b.String())
}

// ChildText is Text(Child(e, n))
func ChildText(e *etree.Element, n Name) string {
	return Text(Child(e, n))
}

// DescendantText is Text(Descendant(e, n))
func DescendantText(e *etree.Element, n Name) string {
	return Text(Descendant(e, n))
}

// ChildNumber reads a direct child as a number, defaulting to zero when the
// element is absent or not numeric
func ChildNumber(e *etree.Element, n Name) decimal.Decimal {
	return dec.OrZero(ChildText(e, n))
}

// ChildOptionalNumber reads a direct child as a number that is invalid when
// the element is absent or not numeric
func ChildOptionalNumber(e *etree.Element, n Name) decimal.NullDecimal {
	return dec.Nullable(ChildText(e, n))
}

// ChildBool reads a direct child flag: only "true" and "1" are true
func ChildBool(e *etree.Element, n Name) bool {
	switch strings.ToLower(ChildText(e, n)) {
	case "true", "1":
		return true
	default:
		return false
	}
}

// Attr returns a trimmed attribute value of e, or ""
func Attr(e *etree.Element, key string) string {
	if e == nil {
		return ""
	}
	return strings.TrimSpace(e.SelectAttrValue(key, ""))
}

func matches(e *etree.Element, n Name) bool {
	return e.Tag == n.Local && e.NamespaceURI() == n.Space
}

func collectText(e *etree.Element, b *strings.Builder) {
	for _, tok := range e.Child {
		switch t := tok.(type) {
		case *etree.CharData:
			b.WriteString(t.Data)
		case *etree.Element:
			collectText(t, b)
		}
	}
}
