package processor_test

import (
	"context"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rezonia/ubl-processor/internal/model"
	"github.com/rezonia/ubl-processor/internal/processor"
)

const minimalInvoice = `<?xml version="1.0" encoding="UTF-8"?>
<Invoice xmlns="urn:oasis:names:specification:ubl:schema:xsd:Invoice-2"
	xmlns:cac="urn:oasis:names:specification:ubl:schema:xsd:CommonAggregateComponents-2"
	xmlns:cbc="urn:oasis:names:specification:ubl:schema:xsd:CommonBasicComponents-2">
	<cbc:ID>0000001</cbc:ID>
	<cbc:IssueDate>2026-01-15</cbc:IssueDate>
	<cbc:DocumentCurrencyCode>EUR</cbc:DocumentCurrencyCode>
	<cac:AdditionalDocumentReference>
		<cbc:ID>ATT-1</cbc:ID>
		<cac:Attachment>
			<cbc:EmbeddedDocumentBinaryObject mimeCode="text/plain" filename="a.txt">SGVsbG8=</cbc:EmbeddedDocumentBinaryObject>
		</cac:Attachment>
	</cac:AdditionalDocumentReference>
	<cac:AccountingSupplierParty>
		<cac:Party><cac:PartyName><cbc:Name>ABC Company</cbc:Name></cac:PartyName></cac:Party>
	</cac:AccountingSupplierParty>
	<cac:LegalMonetaryTotal>
		<cbc:TaxExclusiveAmount>100</cbc:TaxExclusiveAmount>
		<cbc:TaxInclusiveAmount>110</cbc:TaxInclusiveAmount>
		<cbc:PayableAmount>110</cbc:PayableAmount>
	</cac:LegalMonetaryTotal>
</Invoice>`

func TestNewPipeline(t *testing.T) {
	p := processor.NewPipeline()
	require.NotNil(t, p)
}

func TestNewPipeline_WithOptions(t *testing.T) {
	p := processor.NewPipeline(
		processor.WithLogger(nil),
	)
	require.NotNil(t, p)
}

func TestDecodeBytes(t *testing.T) {
	tests := []struct {
		name     string
		data     []byte
		expected string
	}{
		{"plain", []byte("<a/>"), "<a/>"},
		{"leading BOM stripped", []byte("\xEF\xBB\xBF<a/>"), "<a/>"},
		{"only one BOM stripped", []byte("\xEF\xBB\xBF\xEF\xBB\xBF<a/>"), "\uFEFF<a/>"},
		{"empty", []byte{}, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := processor.DecodeBytes(tt.data)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, out)
		})
	}
}

func TestDecodeBytes_InvalidUTF8(t *testing.T) {
	for _, data := range [][]byte{
		[]byte("<a>\xff\xfe</a>"),
		[]byte("\xEF\xBB\xBF<a>\xc3</a>"),
	} {
		out, err := processor.DecodeBytes(data)
		require.Error(t, err)
		assert.ErrorIs(t, err, processor.ErrNotUTF8)
		assert.Empty(t, out)
	}
}

func TestParse_InvalidUTF8(t *testing.T) {
	p := processor.NewPipeline()

	doc, err := p.Parse([]byte("\xEF\xBB\xBF" + minimalInvoice + "\xff"))
	assert.Nil(t, doc)
	require.Error(t, err)
	assert.ErrorIs(t, err, model.ErrInvalidUBL)
	assert.ErrorIs(t, err, processor.ErrNotUTF8)

	var parseErr *model.ParseError
	require.ErrorAs(t, err, &parseErr)
	assert.Equal(t, "encoding", parseErr.Field)
}

func TestParse(t *testing.T) {
	p := processor.NewPipeline()

	doc, err := p.Parse([]byte("\xEF\xBB\xBF" + minimalInvoice))
	require.NoError(t, err)
	require.NotNil(t, doc)
	assert.Equal(t, "0000001", doc.ID)
	assert.Equal(t, model.KindInvoice, doc.Kind)
}

func TestParse_Invalid(t *testing.T) {
	p := processor.NewPipeline()

	doc, err := p.Parse([]byte("not xml"))
	assert.Nil(t, doc)
	require.Error(t, err)
	assert.ErrorIs(t, err, model.ErrInvalidUBL)
}

func TestExtract(t *testing.T) {
	p := processor.NewPipeline()

	result, err := p.Extract(context.Background(), []byte(minimalInvoice), "doc-1", "application/xml")
	require.NoError(t, err)
	require.NotNil(t, result)

	assert.Nil(t, result.ProviderJobID)
	assert.Equal(t, "doc-1", result.Record.DocumentID)
	assert.Equal(t, model.ProviderUBL, result.Record.Provider)
	require.NotNil(t, result.Record.Invoice.InvoiceNumber)
	assert.Equal(t, "0000001", *result.Record.Invoice.InvoiceNumber)
	require.NotNil(t, result.Record.Invoice.VendorName)
	assert.Equal(t, "ABC Company", *result.Record.Invoice.VendorName)
	assert.Equal(t, "10", result.Record.Invoice.TaxTotal.Decimal.String())

	assert.Equal(t, model.RawFormatUBL, result.Raw.Format)
	assert.Equal(t, "application/xml", result.Raw.MimeType)
	require.Len(t, result.Raw.Invoice.Attachments, 1)
	assert.Equal(t, 5, result.Raw.Invoice.Attachments[0].SizeBytes)
}

func TestExtract_MimeTypePassedThrough(t *testing.T) {
	p := processor.NewPipeline()

	result, err := p.Extract(context.Background(), []byte(minimalInvoice), "doc-1", "Text/Whatever; x=1")
	require.NoError(t, err)
	assert.Equal(t, "Text/Whatever; x=1", result.Raw.MimeType)
}

// Scenario D: invalid input fails with the fixed error at the normalize boundary
func TestExtract_Invalid(t *testing.T) {
	logger, hook := test.NewNullLogger()
	logger.SetLevel(logrus.DebugLevel)
	p := processor.NewPipeline(processor.WithLogger(logrus.NewEntry(logger)))

	result, err := p.Extract(context.Background(), []byte("<Invoice><broken"), "doc-2", "application/xml")
	assert.Nil(t, result)
	require.Error(t, err)
	assert.Equal(t, model.ErrInvalidUBL, err)
	assert.Equal(t, "invalid UBL document", err.Error())

	require.NotNil(t, hook.LastEntry())
	assert.Equal(t, "UBL parse failed", hook.LastEntry().Message)
	assert.Equal(t, "doc-2", hook.LastEntry().Data["document_id"])
}

func TestExtract_CancelledContext(t *testing.T) {
	p := processor.NewPipeline()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := p.Extract(ctx, []byte(minimalInvoice), "doc-3", "application/xml")
	assert.ErrorIs(t, err, context.Canceled)
}

func TestNormalizeText(t *testing.T) {
	p := processor.NewPipeline()

	result, err := p.NormalizeText(minimalInvoice, "doc-4")
	require.NoError(t, err)
	assert.Equal(t, processor.DefaultMimeType, result.Raw.MimeType)

	_, err = p.NormalizeText("<CreditNote/>", "doc-5")
	assert.Equal(t, model.ErrInvalidUBL, err)
}

func TestNormalize_Document(t *testing.T) {
	p := processor.NewPipeline()
	doc, err := p.ParseText(minimalInvoice)
	require.NoError(t, err)

	first, err := p.Normalize(doc, "doc-6")
	require.NoError(t, err)
	second, err := p.Normalize(doc, "doc-6")
	require.NoError(t, err)
	assert.Equal(t, first, second)

	_, err = p.Normalize(nil, "doc-7")
	assert.Equal(t, model.ErrInvalidUBL, err)
}

func TestBuild_EchoesMimeType(t *testing.T) {
	p := processor.NewPipeline()
	doc, err := p.ParseText(minimalInvoice)
	require.NoError(t, err)

	result, err := p.Build(doc, "doc-8", "text/xml; charset=utf-8")
	require.NoError(t, err)
	assert.Equal(t, "doc-8", result.Record.DocumentID)
	assert.Equal(t, "text/xml; charset=utf-8", result.Raw.MimeType)
	assert.Equal(t, model.RawFormatUBL, result.Raw.Format)
}

func TestDetectFormat(t *testing.T) {
	tests := []struct {
		name     string
		data     []byte
		expected processor.Format
	}{
		{
			name:     "XML with declaration",
			data:     []byte(`<?xml version="1.0"?><Invoice/>`),
			expected: processor.FormatXML,
		},
		{
			name:     "XML without declaration",
			data:     []byte(`<Invoice><Number>1</Number></Invoice>`),
			expected: processor.FormatXML,
		},
		{
			name:     "XML with BOM",
			data:     append([]byte("\xEF\xBB\xBF"), []byte(`<Invoice/>`)...),
			expected: processor.FormatXML,
		},
		{
			name:     "PDF",
			data:     []byte("%PDF-1.4\n%some content"),
			expected: processor.FormatPDF,
		},
		{
			name:     "PNG image",
			data:     []byte{0x89, 0x50, 0x4E, 0x47, 0x0D, 0x0A, 0x1A, 0x0A},
			expected: processor.FormatImage,
		},
		{
			name:     "JPEG image",
			data:     []byte{0xFF, 0xD8, 0xFF, 0xE0, 0x00, 0x10, 0x4A, 0x46},
			expected: processor.FormatImage,
		},
		{
			name:     "Unknown format",
			data:     []byte("some random text"),
			expected: processor.FormatUnknown,
		},
		{
			name:     "Empty data",
			data:     []byte{},
			expected: processor.FormatUnknown,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			format := processor.DetectFormat(tt.data)
			assert.Equal(t, tt.expected, format)
		})
	}
}

func TestFormatString(t *testing.T) {
	tests := []struct {
		format   processor.Format
		expected string
	}{
		{processor.FormatXML, "xml"},
		{processor.FormatPDF, "pdf"},
		{processor.FormatImage, "image"},
		{processor.FormatUnknown, "unknown"},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.format.String())
		})
	}
}

func TestDetectMimeType(t *testing.T) {
	assert.Contains(t, processor.DetectMimeType([]byte(minimalInvoice)), "xml")
	assert.Equal(t, "application/pdf", processor.DetectMimeType([]byte("%PDF-1.4\n")))
}

// Benchmark tests

func BenchmarkDetectFormat_XML(b *testing.B) {
	data := []byte(minimalInvoice)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		processor.DetectFormat(data)
	}
}

func BenchmarkExtract(b *testing.B) {
	ctx := context.Background()
	p := processor.NewPipeline()
	data := []byte(minimalInvoice)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = p.Extract(ctx, data, "bench", "application/xml")
	}
}
