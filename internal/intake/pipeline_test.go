package intake

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/VendleServices/vendle-backend/pkg/apperrors"
)

func testTime() time.Time {
	return time.Unix(1700000000, 0)
}

// fakeStorage records saves and fails paths listed in failPaths.
type fakeStorage struct {
	saved     map[string][]byte
	failPaths map[string]bool
}

func newFakeStorage() *fakeStorage {
	return &fakeStorage{
		saved:     make(map[string][]byte),
		failPaths: make(map[string]bool),
	}
}

func (f *fakeStorage) Save(_ context.Context, path string, reader io.Reader, _ string) error {
	for fail := range f.failPaths {
		if strings.Contains(path, fail) {
			return errors.New("upstream unavailable")
		}
	}
	data, _ := io.ReadAll(reader)
	f.saved[path] = data
	return nil
}

func (f *fakeStorage) Get(_ context.Context, path string) (io.ReadCloser, error) {
	data, ok := f.saved[path]
	if !ok {
		return nil, errors.New("not found")
	}
	return io.NopCloser(strings.NewReader(string(data))), nil
}

func (f *fakeStorage) Delete(_ context.Context, path string) error {
	delete(f.saved, path)
	return nil
}

func (f *fakeStorage) Exists(_ context.Context, path string) (bool, error) {
	_, ok := f.saved[path]
	return ok, nil
}

func (f *fakeStorage) GetURL(_ context.Context, path string) (string, error) {
	return "http://files.test/" + path, nil
}

func (f *fakeStorage) GetSignedURL(_ context.Context, path string, _ time.Duration) (string, error) {
	return "http://files.test/" + path + "?signed=1", nil
}

func (f *fakeStorage) GetSize(_ context.Context, path string) (int64, error) {
	return int64(len(f.saved[path])), nil
}

func testPipeline(store *fakeStorage) *Pipeline {
	p := NewPipeline(store, Buckets{Images: "images", Estimates: "vendle-estimates"})
	p.now = testTime
	return p
}

func completedWizard(t *testing.T) *Wizard {
	t.Helper()
	w := NewWizard("owner-1", DefaultMaxPDFSize)
	completeDraft(w)
	return w
}

func TestSubmitRejectsIncompleteDraft(t *testing.T) {
	w := NewWizard("owner-1", DefaultMaxPDFSize)
	w.ApplyStep(&StepPayload{Street: strptr("12 Oak Ln")})

	p := testPipeline(newFakeStorage())
	created := 0
	_, err := p.Submit(context.Background(), w, func(context.Context, ClaimInput) (string, error) {
		created++
		return "", nil
	})

	require.Error(t, err)
	var appErr *apperrors.AppError
	require.True(t, apperrors.As(err, &appErr))
	assert.Equal(t, apperrors.CodeStepIncomplete, appErr.Code)
	assert.Zero(t, created, "creator must not run for an incomplete draft")
}

func TestSubmitUploadsAndCreatesOnce(t *testing.T) {
	w := completedWizard(t)
	w.Attachments().StageImage(StagedFile{Name: "roof.jpg", ContentType: "image/jpeg", Size: 3, Data: []byte("abc")})
	require.NoError(t, w.Attachments().StagePDF(StagedFile{
		Name: "estimate.pdf", ContentType: "application/pdf", Size: 4, Data: []byte("%PDF"),
	}))

	store := newFakeStorage()
	p := testPipeline(store)

	var got ClaimInput
	calls := 0
	claimID, err := p.Submit(context.Background(), w, func(_ context.Context, in ClaimInput) (string, error) {
		calls++
		got = in
		return "claim-123", nil
	})
	require.NoError(t, err)

	assert.Equal(t, "claim-123", claimID)
	assert.Equal(t, 1, calls)
	assert.Equal(t, "owner-1", got.OwnerID)
	require.Len(t, got.ImagePaths, 1)
	require.Len(t, got.PDFPaths, 1)
	assert.Equal(t, "images/public/roof.jpg_1700000000", got.ImagePaths[0].Path)
	assert.Equal(t, "vendle-estimates/public/estimate.pdf_1700000000", got.PDFPaths[0].Path)
	assert.Contains(t, store.saved, got.ImagePaths[0].Path)
	assert.Contains(t, store.saved, got.PDFPaths[0].Path)
}

func TestSubmitSkipsFailedImageUploads(t *testing.T) {
	w := completedWizard(t)
	w.Attachments().StageImage(StagedFile{Name: "good.jpg", ContentType: "image/jpeg", Data: []byte("ok")})
	w.Attachments().StageImage(StagedFile{Name: "bad.jpg", ContentType: "image/jpeg", Data: []byte("no")})

	store := newFakeStorage()
	store.failPaths["bad.jpg"] = true
	p := testPipeline(store)

	calls := 0
	var got ClaimInput
	_, err := p.Submit(context.Background(), w, func(_ context.Context, in ClaimInput) (string, error) {
		calls++
		got = in
		return "claim-123", nil
	})
	require.NoError(t, err, "a failed photo must not abort the submission")

	assert.Equal(t, 1, calls)
	require.Len(t, got.ImagePaths, 1)
	assert.Equal(t, "good.jpg", got.ImagePaths[0].OriginalName)
}

func TestSubmitAbortsOnEstimateUploadFailure(t *testing.T) {
	w := completedWizard(t)
	require.NoError(t, w.Attachments().StagePDF(StagedFile{
		Name: "estimate.pdf", ContentType: "application/pdf", Data: []byte("%PDF"),
	}))

	store := newFakeStorage()
	store.failPaths["estimate.pdf"] = true
	p := testPipeline(store)

	calls := 0
	_, err := p.Submit(context.Background(), w, func(context.Context, ClaimInput) (string, error) {
		calls++
		return "", nil
	})
	require.Error(t, err)
	assert.Zero(t, calls, "creator must not run when the estimate upload fails")
}

func TestSubmitClampsNegativeCosts(t *testing.T) {
	w := completedWizard(t)
	w.ApplyStep(&StepPayload{
		OverheadProfit: f64ptr(-500),
		Depreciation:   f64ptr(-1),
	})

	p := testPipeline(newFakeStorage())
	var got ClaimInput
	_, err := p.Submit(context.Background(), w, func(_ context.Context, in ClaimInput) (string, error) {
		got = in
		return "claim-123", nil
	})
	require.NoError(t, err)

	assert.Zero(t, got.Draft.OverheadProfit)
	assert.Zero(t, got.Draft.Depreciation)
	assert.Equal(t, float64(48000), got.Draft.TotalJobValue)
}

func TestSubmitLeavesWizardIntactOnCreateFailure(t *testing.T) {
	w := completedWizard(t)
	p := testPipeline(newFakeStorage())

	_, err := p.Submit(context.Background(), w, func(context.Context, ClaimInput) (string, error) {
		return "", errors.New("db down")
	})
	require.Error(t, err)

	// The draft is untouched and can be resubmitted.
	assert.Equal(t, "Tulsa", w.Draft().City)
	_, err = p.Submit(context.Background(), w, func(context.Context, ClaimInput) (string, error) {
		return "claim-456", nil
	})
	assert.NoError(t, err)
}
