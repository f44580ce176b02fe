package intake

import (
	"bytes"
	"context"
	"time"

	"github.com/VendleServices/vendle-backend/internal/logger"
	"github.com/VendleServices/vendle-backend/internal/storage"
	"github.com/VendleServices/vendle-backend/pkg/apperrors"
)

// UploadedFile is one successfully stored attachment.
type UploadedFile struct {
	Path         string
	OriginalName string
	Size         int64
}

// ClaimInput is everything the pipeline hands to the claim creator.
type ClaimInput struct {
	OwnerID    string
	Draft      DraftClaim
	ImagePaths []UploadedFile
	PDFPaths   []UploadedFile
}

// CreateFunc persists the assembled claim. Injected so the pipeline can be
// tested without a database.
type CreateFunc func(ctx context.Context, input ClaimInput) (claimID string, err error)

// Buckets names the logical storage destinations for intake uploads.
type Buckets struct {
	Images    string
	Estimates string
}

// Pipeline turns a completed wizard into a persisted claim: it re-validates
// every step, uploads staged files, then calls the creator exactly once.
type Pipeline struct {
	storage storage.Storage
	buckets Buckets
	now     func() time.Time
}

func NewPipeline(store storage.Storage, buckets Buckets) *Pipeline {
	return &Pipeline{
		storage: store,
		buckets: buckets,
		now:     time.Now,
	}
}

// Submit runs the full submission flow. The wizard is left untouched on
// failure so the homeowner can fix the draft and retry. Image uploads are
// best-effort: a failed photo is logged and skipped. A failed estimate upload
// aborts the submission, since the estimate drives contractor pricing.
func (p *Pipeline) Submit(ctx context.Context, w *Wizard, create CreateFunc) (string, error) {
	if invalid := w.invalidSteps(); len(invalid) > 0 {
		return "", apperrors.ErrStepIncomplete(map[string]interface{}{
			"invalid_steps": invalid,
		})
	}

	draft := w.Draft()
	clampCosts(&draft)

	input := ClaimInput{
		OwnerID: w.OwnerID,
		Draft:   draft,
	}

	for _, img := range w.Attachments().Images() {
		uploaded, err := p.upload(ctx, p.buckets.Images, img)
		if err != nil {
			// Skip the photo; the claim is still viable without it.
			continue
		}
		input.ImagePaths = append(input.ImagePaths, uploaded)
	}

	if pdf := w.Attachments().PDF(); pdf != nil {
		uploaded, err := p.upload(ctx, p.buckets.Estimates, *pdf)
		if err != nil {
			return "", apperrors.Wrap(err, apperrors.CodeInternalError, "intake",
				"Failed to store the insurance estimate", 500)
		}
		input.PDFPaths = append(input.PDFPaths, uploaded)
	}

	claimID, err := create(ctx, input)
	if err != nil {
		return "", err
	}
	return claimID, nil
}

func (p *Pipeline) upload(ctx context.Context, bucket string, f StagedFile) (UploadedFile, error) {
	key := ObjectKey(bucket, f.Name, p.now())

	start := time.Now()
	err := p.storage.Save(ctx, key, bytes.NewReader(f.Data), f.ContentType)
	logger.UploadLog(bucket, key, f.Size, time.Since(start), err)
	if err != nil {
		return UploadedFile{}, err
	}

	return UploadedFile{
		Path:         key,
		OriginalName: f.Name,
		Size:         f.Size,
	}, nil
}

// clampCosts coerces negative cost fields to zero before persistence.
func clampCosts(d *DraftClaim) {
	for _, v := range []*float64{
		&d.TotalJobValue,
		&d.OverheadProfit,
		&d.Materials,
		&d.SalesTax,
		&d.Depreciation,
	} {
		if *v < 0 {
			*v = 0
		}
	}
}
