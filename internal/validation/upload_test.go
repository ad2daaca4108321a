package validation

import (
	"bytes"
	"image"
	"image/png"
	"testing"

	"github.com/stretchr/testify/assert"
)

func pngBytes(t *testing.T, w, h int) []byte {
	t.Helper()
	var buf bytes.Buffer
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	assert.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func TestValidateFileUpload(t *testing.T) {
	v := New()
	opts := DefaultUploadOptions()

	content := pngBytes(t, 10, 10)
	file := FileUpload{
		Filename:    "logo.png",
		Size:        int64(len(content)),
		ContentType: "image/png",
		Content:     content,
	}

	assert.True(t, v.ValidateFileUpload(file, opts).Valid())
}

func TestValidateFileUploadRejectsMismatchedContent(t *testing.T) {
	v := New()
	opts := DefaultUploadOptions()

	// conteúdo PNG com extensão .jpg: o sniff não pode confiar no nome
	content := pngBytes(t, 4, 4)
	file := FileUpload{
		Filename:    "foto.jpg",
		Size:        int64(len(content)),
		ContentType: "image/jpeg",
		Content:     content,
	}

	errs := v.ValidateFileUpload(file, opts)
	assert.False(t, errs.Valid())
	assert.NotEmpty(t, errs["file"])
}

func TestValidateFileUploadLimits(t *testing.T) {
	v := New()

	content := pngBytes(t, 20, 8)
	base := FileUpload{
		Filename:    "banner.png",
		Size:        int64(len(content)),
		ContentType: "image/png",
		Content:     content,
	}

	tooSmall := UploadOptions{MaxSize: 1, AllowedExtensions: []string{"png"}}
	assert.False(t, v.ValidateFileUpload(base, tooSmall).Valid())

	badExt := UploadOptions{MaxSize: 1 << 20, AllowedExtensions: []string{"pdf"}}
	assert.False(t, v.ValidateFileUpload(base, badExt).Valid())

	narrow := UploadOptions{MaxSize: 1 << 20, AllowedExtensions: []string{"png"}, MaxWidth: 16, MaxHeight: 16}
	errs := v.ValidateFileUpload(base, narrow)
	assert.False(t, errs.Valid())
	assert.Contains(t, errs.First("file"), "width")

	empty := FileUpload{Filename: "x.png", Size: 0, ContentType: "image/png"}
	assert.False(t, v.ValidateFileUpload(empty, DefaultUploadOptions()).Valid())
}
