// Package validate reconciles the amounts of a parsed UBL document and
// reports missing header data. Findings never stop normalization; they are
// surfaced by the validate command and endpoint.
package validate

import (
	"fmt"

	"github.com/shopspring/decimal"

	dec "github.com/rezonia/ubl-processor/internal/decimal"
	"github.com/rezonia/ubl-processor/internal/model"
	"github.com/rezonia/ubl-processor/internal/normalize"
)

// DefaultTolerance is the largest difference accepted between a stated
// amount and the amount recomputed from its parts
var DefaultTolerance = decimal.New(1, -2)

// Rule names
const (
	RuleRequired          = "required"
	RuleDateFormat        = "date_format"
	RuleParty             = "party"
	RuleLines             = "lines"
	RuleLineExtensionSum  = "line_extension_sum"
	RuleTaxExclusive      = "tax_exclusive_amount"
	RuleTaxInclusive      = "tax_inclusive_amount"
	RulePayable           = "payable_amount"
	RuleLineAmount        = "line_amount"
	RuleLineTaxPercentage = "line_tax_percent"
)

// Report holds the findings for one document
type Report struct {
	DocumentID string                   `json:"document_id"`
	Valid      bool                     `json:"valid"`
	Errors     []*model.ValidationError `json:"errors"`
	Warnings   []*model.ValidationError `json:"warnings"`
}

func (r *Report) add(v *model.ValidationError) {
	if v.Severity == model.SeverityError {
		r.Errors = append(r.Errors, v)
		r.Valid = false
		return
	}
	r.Warnings = append(r.Warnings, v)
}

// Option configures a check
type Option func(*checker)

// WithTolerance overrides DefaultTolerance
func WithTolerance(t decimal.Decimal) Option {
	return func(c *checker) {
		c.tolerance = t.Abs()
	}
}

// Strict reports every warning as an error
func Strict() Option {
	return func(c *checker) {
		c.strict = true
	}
}

type checker struct {
	tolerance decimal.Decimal
	strict    bool
	report    *Report
}

// Check runs every rule against doc
func Check(doc *model.Document, opts ...Option) *Report {
	c := &checker{
		tolerance: DefaultTolerance,
		report: &Report{
			Valid:    true,
			Errors:   []*model.ValidationError{},
			Warnings: []*model.ValidationError{},
		},
	}
	for _, opt := range opts {
		opt(c)
	}

	if doc == nil {
		c.fail("document", nil, RuleRequired, "no document")
		return c.report
	}
	c.report.DocumentID = doc.ID

	c.checkHeader(doc)
	c.checkTotals(doc)
	for i, line := range doc.Lines {
		c.checkLine(i, line)
	}

	return c.report
}

func (c *checker) fail(field string, value interface{}, rule, message string) {
	c.report.add(model.NewValidationError(field, value, rule, message))
}

func (c *checker) warn(field string, value interface{}, rule, message string) {
	if c.strict {
		c.fail(field, value, rule, message)
		return
	}
	c.report.add(model.NewValidationWarning(field, value, rule, message))
}

func (c *checker) checkHeader(doc *model.Document) {
	if doc.ID == "" {
		c.fail("id", nil, RuleRequired, "missing document ID")
	}

	switch {
	case doc.IssueDate == "":
		c.fail("issue_date", nil, RuleRequired, "missing issue date")
	case normalize.Date(doc.IssueDate) == nil:
		c.warn("issue_date", doc.IssueDate, RuleDateFormat, "issue date is not a calendar date")
	}

	if doc.DueDate != "" && normalize.Date(doc.DueDate) == nil {
		c.warn("due_date", doc.DueDate, RuleDateFormat, "due date is not a calendar date")
	}

	if normalize.Currency(doc.CurrencyCode) == nil {
		c.warn("currency", nil, RuleRequired, "missing document currency code")
	}

	if normalize.FirstText(doc.Seller.Name, doc.Seller.RegistrationName) == nil || doc.Seller == model.UnknownParty() {
		c.warn("seller", nil, RuleParty, "seller party is missing or unnamed")
	}
	if normalize.FirstText(doc.Buyer.Name, doc.Buyer.RegistrationName) == nil || doc.Buyer == model.UnknownParty() {
		c.warn("buyer", nil, RuleParty, "buyer party is missing or unnamed")
	}

	if len(doc.Lines) == 0 {
		c.warn("lines", nil, RuleLines, "document has no lines")
	}
}

func (c *checker) checkTotals(doc *model.Document) {
	t := doc.Totals

	if len(doc.Lines) > 0 {
		amounts := make([]decimal.Decimal, 0, len(doc.Lines))
		for _, l := range doc.Lines {
			amounts = append(amounts, l.LineExtensionAmount)
		}
		c.compare("line_extension_amount", RuleLineExtensionSum, "sum of line amounts", dec.Sum(amounts), t.LineExtensionAmount)
	}

	allowances, charges := headerAllowanceCharges(doc)
	expectedExclusive := t.LineExtensionAmount.
		Sub(dec.First(t.AllowanceTotal, dec.Known(allowances)).Decimal).
		Add(dec.First(t.ChargeTotal, dec.Known(charges)).Decimal)
	c.compare("tax_exclusive_amount", RuleTaxExclusive, "line amount - allowances + charges", expectedExclusive, t.TaxExclusiveAmount)

	if len(doc.TaxSubtotals) > 0 {
		taxes := make([]decimal.Decimal, 0, len(doc.TaxSubtotals))
		for _, st := range doc.TaxSubtotals {
			taxes = append(taxes, st.TaxAmount)
		}
		c.compare("tax_inclusive_amount", RuleTaxInclusive, "tax exclusive amount + tax", t.TaxExclusiveAmount.Add(dec.Sum(taxes)), t.TaxInclusiveAmount)
	}

	expectedPayable := t.TaxInclusiveAmount.
		Sub(t.PrepaidAmount.Decimal).
		Add(t.RoundingAmount.Decimal)
	c.compare("payable_amount", RulePayable, "tax inclusive amount - prepaid + rounding", expectedPayable, t.PayableAmount)
}

func (c *checker) checkLine(i int, l model.Line) {
	field := fmt.Sprintf("lines[%d]", i)

	if l.UnitPrice.IsZero() {
		return
	}

	expected := l.Quantity.Mul(l.UnitPrice).
		Sub(l.DiscountAmount.Decimal).
		Add(l.ChargeAmount.Decimal)
	if !dec.Equal(expected, l.LineExtensionAmount, c.tolerance) {
		c.warn(field+".line_extension_amount", l.LineExtensionAmount.String(), RuleLineAmount,
			fmt.Sprintf("quantity x price - allowances + charges = %s, but line amount is %s", expected, l.LineExtensionAmount))
	}

	if l.TaxPercent.Valid && l.TaxAmount.Valid && len(l.TaxSubtotals) == 0 {
		computed := dec.PercentOf(l.LineExtensionAmount, l.TaxPercent.Decimal)
		if !dec.Equal(computed, l.TaxAmount.Decimal, c.tolerance) {
			c.warn(field+".tax_amount", l.TaxAmount.Decimal.String(), RuleLineTaxPercentage,
				fmt.Sprintf("%s%% of %s is %s, but line tax is %s", l.TaxPercent.Decimal, l.LineExtensionAmount, computed, l.TaxAmount.Decimal))
		}
	}
}

func (c *checker) compare(field, rule, formula string, expected, actual decimal.Decimal) {
	if dec.Equal(expected, actual, c.tolerance) {
		return
	}
	c.fail(field, actual.String(), rule, fmt.Sprintf("%s = %s, but %s is %s", formula, expected, field, actual))
}

func headerAllowanceCharges(doc *model.Document) (allowances, charges decimal.Decimal) {
	var a, ch []decimal.Decimal
	for _, ac := range doc.AllowanceCharges {
		if ac.ChargeIndicator {
			ch = append(ch, ac.Amount)
		} else {
			a = append(a, ac.Amount)
		}
	}
	return dec.SumAbs(a), dec.SumAbs(ch)
}
