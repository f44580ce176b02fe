package intake

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/VendleServices/vendle-backend/pkg/apperrors"
)

func TestStageImageAcceptsAnyType(t *testing.T) {
	var a Attachments

	idx := a.StageImage(StagedFile{Name: "roof.heic", ContentType: "image/heic", Size: 1024})
	assert.Equal(t, 0, idx)

	// Non-image types are allowed in the photo slots too.
	idx = a.StageImage(StagedFile{Name: "notes.txt", ContentType: "text/plain", Size: 64})
	assert.Equal(t, 1, idx)

	assert.Len(t, a.Images(), 2)
}

func TestStagePDFRejectsWrongType(t *testing.T) {
	var a Attachments

	err := a.StagePDF(StagedFile{Name: "estimate.docx", ContentType: "application/msword", Size: 1024})
	require.Error(t, err)
	assert.True(t, apperrors.Is(err, apperrors.ErrInvalidFileType))
	assert.Nil(t, a.PDF())
}

func TestStagePDFRejectsOversize(t *testing.T) {
	a := Attachments{maxPDFSize: 100}

	err := a.StagePDF(StagedFile{Name: "estimate.pdf", ContentType: "application/pdf", Size: 101})
	require.Error(t, err)
	assert.True(t, apperrors.Is(err, apperrors.ErrFileTooLarge))
}

func TestStagePDFReplaceOnlyOnSuccess(t *testing.T) {
	var a Attachments

	require.NoError(t, a.StagePDF(StagedFile{Name: "first.pdf", ContentType: "application/pdf", Size: 512}))

	// A failed staging must not disturb the existing slot.
	err := a.StagePDF(StagedFile{Name: "huge.pdf", ContentType: "application/pdf", Size: DefaultMaxPDFSize + 1})
	require.Error(t, err)
	require.NotNil(t, a.PDF())
	assert.Equal(t, "first.pdf", a.PDF().Name)

	// A successful one replaces it.
	require.NoError(t, a.StagePDF(StagedFile{Name: "second.pdf", ContentType: "application/pdf", Size: 1024}))
	assert.Equal(t, "second.pdf", a.PDF().Name)
}

func TestUnstageImage(t *testing.T) {
	var a Attachments
	a.StageImage(StagedFile{Name: "one.jpg"})
	a.StageImage(StagedFile{Name: "two.jpg"})

	require.NoError(t, a.UnstageImage(0))
	images := a.Images()
	require.Len(t, images, 1)
	assert.Equal(t, "two.jpg", images[0].Name)

	assert.Error(t, a.UnstageImage(5))
	assert.Error(t, a.UnstageImage(-1))
}

func TestUnstagePDF(t *testing.T) {
	var a Attachments
	require.NoError(t, a.StagePDF(StagedFile{Name: "estimate.pdf", ContentType: "application/pdf", Size: 10}))
	a.UnstagePDF()
	assert.Nil(t, a.PDF())
}

func TestObjectKey(t *testing.T) {
	key := ObjectKey("images", "my roof (front).jpg", testTime())
	assert.Equal(t, "images/public/my-roof--front-.jpg_1700000000", key)

	key = ObjectKey("vendle-estimates", "", testTime())
	assert.Equal(t, "vendle-estimates/public/file_1700000000", key)
}
