package ublib

import (
	"context"
	"fmt"
	"io"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"github.com/rezonia/ubl-processor/internal/processor"
	"github.com/rezonia/ubl-processor/internal/validate"
)

// Options configures a Processor
type Options struct {
	// Workers bounds how many documents ProcessBatch handles at once.
	Workers int
	// Validate attaches a reconciliation report to every batch result.
	Validate bool
	// Strict promotes validation warnings to errors.
	Strict bool
	// Tolerance is the allowed difference when reconciling amounts.
	Tolerance decimal.Decimal
	// Logger receives parse failures and batch progress. Nil discards.
	Logger *logrus.Entry
}

// DefaultOptions returns the default processor options
func DefaultOptions() Options {
	return Options{
		Workers:   4,
		Validate:  true,
		Tolerance: validate.DefaultTolerance,
	}
}

// Processor is the main entry point. It is safe for concurrent use.
type Processor struct {
	pipeline *processor.Pipeline
	opts     Options
	log      *logrus.Entry
}

// NewProcessor creates a new processor with the given options
func NewProcessor(opts Options) *Processor {
	if opts.Workers < 1 {
		opts.Workers = 1
	}

	log := opts.Logger
	if log == nil {
		discard := logrus.New()
		discard.SetOutput(io.Discard)
		log = logrus.NewEntry(discard)
	}

	return &Processor{
		pipeline: processor.NewPipeline(processor.WithLogger(log)),
		opts:     opts,
		log:      log,
	}
}

// NewDefaultProcessor creates a processor with default options
func NewDefaultProcessor() *Processor {
	return NewProcessor(DefaultOptions())
}

// Parse reads data into the document model. Failures are *ParseError and
// match ErrInvalidUBL.
func (p *Processor) Parse(data []byte) (*Document, error) {
	return p.pipeline.Parse(data)
}

// Extract parses and normalizes one document. An empty documentID is
// replaced by a random UUID; an empty mimeType by application/xml.
func (p *Processor) Extract(ctx context.Context, data []byte, documentID, mimeType string) (*Result, error) {
	if documentID == "" {
		documentID = uuid.NewString()
	}
	if mimeType == "" {
		mimeType = processor.DefaultMimeType
	}
	return p.pipeline.Extract(ctx, data, documentID, mimeType)
}

// Process reads the whole of r and extracts it
func (p *Processor) Process(ctx context.Context, r io.Reader, documentID string) (*Result, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read input: %w", err)
	}
	return p.Extract(ctx, data, documentID, "")
}

// Validate reconciles the totals and checks the header of doc
func (p *Processor) Validate(doc *Document) *Report {
	return validate.Check(doc, p.validateOptions()...)
}

func (p *Processor) validateOptions() []validate.Option {
	var opts []validate.Option
	if !p.opts.Tolerance.IsZero() {
		opts = append(opts, validate.WithTolerance(p.opts.Tolerance))
	}
	if p.opts.Strict {
		opts = append(opts, validate.Strict())
	}
	return opts
}
