package intake

import (
	"sync"

	"github.com/VendleServices/vendle-backend/pkg/apperrors"
)

// DefaultMaxPDFSize caps estimate PDFs at 10 MiB.
const DefaultMaxPDFSize = 10 * 1024 * 1024

const pdfContentType = "application/pdf"

// StagedFile is a user-selected file held in memory, not yet uploaded to
// persistent storage.
type StagedFile struct {
	Name        string
	ContentType string
	Size        int64
	Data        []byte
}

// Attachments stages files for the current wizard flow. No network I/O
// happens here; uploads are deferred to the submission pipeline.
type Attachments struct {
	mu         sync.Mutex
	images     []StagedFile
	pdf        *StagedFile
	maxPDFSize int64
}

// StageImage accepts any file as a damage photo and returns its index.
func (a *Attachments) StageImage(f StagedFile) int {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.images = append(a.images, f)
	return len(a.images) - 1
}

// StagePDF validates and stages the single insurance-estimate slot. A
// successful staging replaces the previous PDF; a failed one leaves it
// untouched.
func (a *Attachments) StagePDF(f StagedFile) error {
	if f.ContentType != pdfContentType {
		return apperrors.ErrInvalidFileType
	}

	max := a.maxPDFSize
	if max <= 0 {
		max = DefaultMaxPDFSize
	}
	if f.Size > max {
		return apperrors.ErrFileTooLarge
	}

	a.mu.Lock()
	defer a.mu.Unlock()
	a.pdf = &f
	return nil
}

// UnstageImage removes a staged image by index.
func (a *Attachments) UnstageImage(index int) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	if index < 0 || index >= len(a.images) {
		return apperrors.NewBadRequestError("No staged image at that index")
	}
	a.images = append(a.images[:index], a.images[index+1:]...)
	return nil
}

// UnstagePDF clears the estimate slot.
func (a *Attachments) UnstagePDF() {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.pdf = nil
}

// Images returns a snapshot of the staged images.
func (a *Attachments) Images() []StagedFile {
	a.mu.Lock()
	defer a.mu.Unlock()
	out := make([]StagedFile, len(a.images))
	copy(out, a.images)
	return out
}

// PDF returns the staged estimate, or nil.
func (a *Attachments) PDF() *StagedFile {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.pdf == nil {
		return nil
	}
	f := *a.pdf
	return &f
}
