package ublib

import (
	"context"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/rezonia/ubl-processor/internal/model"
	"github.com/rezonia/ubl-processor/internal/processor"
)

// Input is one document of a batch
type Input struct {
	// Name identifies the input to the caller, usually a file path.
	Name       string
	DocumentID string
	MimeType   string
	Data       []byte
}

// BatchResult is the outcome for one Input. Exactly one of Result and Err
// is set.
type BatchResult struct {
	Name       string  `json:"name"`
	DocumentID string  `json:"document_id"`
	Result     *Result `json:"result,omitempty"`
	Report     *Report `json:"validation,omitempty"`
	Err        error   `json:"-"`
	Error      string  `json:"error,omitempty"`
}

// ProcessBatch extracts every input with at most Options.Workers documents
// in flight. Results are in input order. A document that fails to parse
// only fails its own result; the returned error is non-nil only when ctx
// ends before the batch completes.
func (p *Processor) ProcessBatch(ctx context.Context, inputs []Input) ([]BatchResult, error) {
	results := make([]BatchResult, len(inputs))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(p.opts.Workers)

	for i, in := range inputs {
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			results[i] = p.processOne(gctx, in)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return results, err
	}
	if err := ctx.Err(); err != nil {
		return results, err
	}

	p.log.WithFields(logrus.Fields{
		"documents": len(inputs),
		"workers":   p.opts.Workers,
	}).Debug("batch processed")

	return results, nil
}

func (p *Processor) processOne(ctx context.Context, in Input) BatchResult {
	out := BatchResult{Name: in.Name, DocumentID: in.DocumentID}
	if out.DocumentID == "" {
		out.DocumentID = uuid.NewString()
	}
	mimeType := in.MimeType
	if mimeType == "" {
		mimeType = processor.DefaultMimeType
	}

	doc, err := p.pipeline.Parse(in.Data)
	if err != nil {
		p.log.WithError(err).WithFields(logrus.Fields{
			"name":        in.Name,
			"document_id": out.DocumentID,
		}).Debug("UBL parse failed")
		return out.fail(model.ErrInvalidUBL)
	}

	if err := ctx.Err(); err != nil {
		return out.fail(err)
	}

	result, err := p.pipeline.Build(doc, out.DocumentID, mimeType)
	if err != nil {
		return out.fail(err)
	}
	out.Result = result

	if p.opts.Validate {
		out.Report = p.Validate(doc)
	}
	return out
}

func (r BatchResult) fail(err error) BatchResult {
	r.Err = err
	r.Error = err.Error()
	return r
}
