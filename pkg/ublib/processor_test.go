package ublib_test

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rezonia/ubl-processor/pkg/ublib"
)

const noLinesInvoice = `<?xml version="1.0" encoding="UTF-8"?>
<Invoice xmlns="urn:oasis:names:specification:ubl:schema:xsd:Invoice-2"
	xmlns:cac="urn:oasis:names:specification:ubl:schema:xsd:CommonAggregateComponents-2"
	xmlns:cbc="urn:oasis:names:specification:ubl:schema:xsd:CommonBasicComponents-2">
	<cbc:ID>NL-1</cbc:ID>
	<cbc:IssueDate>2026-01-15</cbc:IssueDate>
	<cbc:DocumentCurrencyCode>EUR</cbc:DocumentCurrencyCode>
	<cac:AccountingSupplierParty>
		<cac:Party><cac:PartyName><cbc:Name>Seller</cbc:Name></cac:PartyName></cac:Party>
	</cac:AccountingSupplierParty>
	<cac:AccountingCustomerParty>
		<cac:Party><cac:PartyName><cbc:Name>Buyer</cbc:Name></cac:PartyName></cac:Party>
	</cac:AccountingCustomerParty>
</Invoice>`

func fixture(t testing.TB, name string) []byte {
	t.Helper()
	data, err := os.ReadFile(filepath.Join("..", "..", "internal", "parser", "ubl", "testdata", name))
	require.NoError(t, err)
	return data
}

func TestNewProcessor(t *testing.T) {
	proc := ublib.NewProcessor(ublib.Options{})
	require.NotNil(t, proc)
}

func TestNewDefaultProcessor(t *testing.T) {
	proc := ublib.NewDefaultProcessor()
	require.NotNil(t, proc)
}

func TestDefaultOptions(t *testing.T) {
	opts := ublib.DefaultOptions()

	assert.Equal(t, 4, opts.Workers)
	assert.True(t, opts.Validate)
	assert.False(t, opts.Strict)
	assert.True(t, opts.Tolerance.Equal(decimal.RequireFromString("0.01")))
	assert.Nil(t, opts.Logger)
}

func TestProcessorExtract(t *testing.T) {
	proc := ublib.NewDefaultProcessor()

	result, err := proc.Extract(context.Background(), fixture(t, "invoice_full.xml"), "doc-1", "text/xml")
	require.NoError(t, err)
	require.NotNil(t, result)

	assert.Equal(t, "doc-1", result.Record.DocumentID)
	require.NotNil(t, result.Record.Invoice.InvoiceNumber)
	assert.Equal(t, "INV-2024-001", *result.Record.Invoice.InvoiceNumber)
	assert.True(t, result.Record.Invoice.Total.Valid)
	assert.Equal(t, "618.75", result.Record.Invoice.Total.Decimal.StringFixed(2))
	assert.Len(t, result.Record.LineItems, 2)
	assert.Equal(t, "text/xml", result.Raw.MimeType)
	assert.Nil(t, result.ProviderJobID)
}

func TestProcessorExtract_Defaults(t *testing.T) {
	proc := ublib.NewDefaultProcessor()

	result, err := proc.Extract(context.Background(), fixture(t, "creditnote.xml"), "", "")
	require.NoError(t, err)

	_, err = uuid.Parse(result.Record.DocumentID)
	assert.NoError(t, err)
	assert.Equal(t, "application/xml", result.Raw.MimeType)
	assert.Equal(t, ublib.KindCreditNote, result.Raw.Invoice.Kind)
}

func TestProcessorProcess(t *testing.T) {
	proc := ublib.NewDefaultProcessor()

	result, err := proc.Process(context.Background(), bytes.NewReader(fixture(t, "invoice_full.xml")), "doc-2")
	require.NoError(t, err)
	assert.Equal(t, "doc-2", result.Record.DocumentID)
}

func TestProcessorExtract_InvalidXML(t *testing.T) {
	proc := ublib.NewDefaultProcessor()

	_, err := proc.Extract(context.Background(), []byte("not xml"), "doc-3", "")
	require.Error(t, err)
	assert.ErrorIs(t, err, ublib.ErrInvalidUBL)
}

func TestProcessorParse(t *testing.T) {
	proc := ublib.NewDefaultProcessor()

	doc, err := proc.Parse(fixture(t, "invoice_full.xml"))
	require.NoError(t, err)
	assert.Equal(t, ublib.KindInvoice, doc.Kind)
	assert.Equal(t, "INV-2024-001", doc.ID)

	_, err = proc.Parse([]byte(`<Order/>`))
	require.Error(t, err)

	var parseErr *ublib.ParseError
	require.True(t, errors.As(err, &parseErr))
	assert.Equal(t, "root", parseErr.Field)
	assert.ErrorIs(t, err, ublib.ErrInvalidUBL)
}

func TestProcessorValidate(t *testing.T) {
	proc := ublib.NewDefaultProcessor()

	doc, err := proc.Parse([]byte(noLinesInvoice))
	require.NoError(t, err)

	report := proc.Validate(doc)
	assert.True(t, report.Valid)
	assert.Empty(t, report.Errors)
	require.Len(t, report.Warnings, 1)
	assert.Equal(t, "lines", report.Warnings[0].Field)

	strict := ublib.DefaultOptions()
	strict.Strict = true
	report = ublib.NewProcessor(strict).Validate(doc)
	assert.False(t, report.Valid)
	require.Len(t, report.Errors, 1)
	assert.Equal(t, "lines", report.Errors[0].Field)
}

func TestProcessorProcessBatch(t *testing.T) {
	proc := ublib.NewDefaultProcessor()

	inputs := []ublib.Input{
		{Name: "invoice.xml", DocumentID: "a", Data: fixture(t, "invoice_full.xml")},
		{Name: "broken.xml", DocumentID: "b", Data: []byte("<Invoice>")},
		{Name: "creditnote.xml", Data: fixture(t, "creditnote.xml"), MimeType: "text/xml"},
	}

	results, err := proc.ProcessBatch(context.Background(), inputs)
	require.NoError(t, err)
	require.Len(t, results, 3)

	assert.Equal(t, "invoice.xml", results[0].Name)
	assert.Equal(t, "a", results[0].DocumentID)
	require.NoError(t, results[0].Err)
	require.NotNil(t, results[0].Result)
	assert.Equal(t, "INV-2024-001", *results[0].Result.Record.Invoice.InvoiceNumber)
	require.NotNil(t, results[0].Report)
	assert.True(t, results[0].Report.Valid)

	assert.Equal(t, "b", results[1].DocumentID)
	assert.ErrorIs(t, results[1].Err, ublib.ErrInvalidUBL)
	assert.Equal(t, "invalid UBL document", results[1].Error)
	assert.Nil(t, results[1].Result)
	assert.Nil(t, results[1].Report)

	require.NoError(t, results[2].Err)
	assert.NotEmpty(t, results[2].DocumentID)
	assert.Equal(t, results[2].DocumentID, results[2].Result.Record.DocumentID)
	assert.Equal(t, "text/xml", results[2].Result.Raw.MimeType)
}

func TestProcessorProcessBatch_KeepsOrder(t *testing.T) {
	opts := ublib.DefaultOptions()
	opts.Workers = 2
	opts.Validate = false
	proc := ublib.NewProcessor(opts)

	data := fixture(t, "invoice_full.xml")
	inputs := make([]ublib.Input, 20)
	for i := range inputs {
		inputs[i] = ublib.Input{DocumentID: fmt.Sprintf("doc-%02d", i), Data: data}
	}

	results, err := proc.ProcessBatch(context.Background(), inputs)
	require.NoError(t, err)
	require.Len(t, results, len(inputs))
	for i, r := range results {
		require.NoError(t, r.Err)
		assert.Equal(t, inputs[i].DocumentID, r.Result.Record.DocumentID)
		assert.Nil(t, r.Report)
	}
}

func TestProcessorProcessBatch_Empty(t *testing.T) {
	results, err := ublib.NewDefaultProcessor().ProcessBatch(context.Background(), nil)
	require.NoError(t, err)
	assert.Empty(t, results)
}

func TestProcessorProcessBatch_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	inputs := []ublib.Input{{Data: fixture(t, "invoice_full.xml")}}
	_, err := ublib.NewDefaultProcessor().ProcessBatch(ctx, inputs)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestReExportedTypes(t *testing.T) {
	var doc ublib.Document
	doc.ID = "12345"
	assert.Equal(t, "12345", doc.ID)

	var party ublib.Party
	party.Name = "Acme"
	assert.Equal(t, "Acme", party.Name)

	assert.Equal(t, ublib.DocumentKind("Invoice"), ublib.KindInvoice)
	assert.Equal(t, ublib.DocumentKind("CreditNote"), ublib.KindCreditNote)
}

func BenchmarkProcessBatch(b *testing.B) {
	proc := ublib.NewDefaultProcessor()
	data := fixture(b, "invoice_full.xml")
	inputs := make([]ublib.Input, 16)
	for i := range inputs {
		inputs[i] = ublib.Input{DocumentID: fmt.Sprintf("doc-%d", i), Data: data}
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = proc.ProcessBatch(context.Background(), inputs)
	}
}
