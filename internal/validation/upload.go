package validation

import (
	"bytes"
	"fmt"
	"image"
	"net/http"
	"path/filepath"
	"strings"

	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
)

// FileUpload descreve um arquivo recebido. ContentType é o tipo declarado
// pelo cliente e não é confiável: o conteúdo é sempre re-sniffado.
type FileUpload struct {
	Filename    string
	Size        int64
	ContentType string
	Content     []byte
}

type UploadOptions struct {
	MaxSize           int64
	AllowedExtensions []string
	MaxWidth          int
	MaxHeight         int
}

func DefaultUploadOptions() UploadOptions {
	return UploadOptions{
		MaxSize:           5 * 1024 * 1024,
		AllowedExtensions: []string{"jpg", "jpeg", "png", "gif", "webp", "pdf"},
		MaxWidth:          4096,
		MaxHeight:         4096,
	}
}

// MIME esperado por extensão. O tipo declarado e o sniffado precisam bater
// com o esperado da extensão.
var extensionMIME = map[string]string{
	"jpg":  "image/jpeg",
	"jpeg": "image/jpeg",
	"png":  "image/png",
	"gif":  "image/gif",
	"webp": "image/webp",
	"pdf":  "application/pdf",
	"txt":  "text/plain",
}

var imageMIMEs = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
	"image/gif":  true,
	"image/webp": true,
}

// ValidateFileUpload valida tamanho, extensão, MIME (sniffado do conteúdo,
// nunca confiado do cliente) e, para imagens, as dimensões decodificadas.
func (v *Validator) ValidateFileUpload(file FileUpload, opts UploadOptions) Result {
	errs := Result{}

	if opts.MaxSize <= 0 {
		opts.MaxSize = DefaultUploadOptions().MaxSize
	}
	if len(opts.AllowedExtensions) == 0 {
		opts.AllowedExtensions = DefaultUploadOptions().AllowedExtensions
	}

	if file.Filename == "" {
		errs.Add("file", "filename is required")
		return errs
	}
	if file.Size > opts.MaxSize {
		errs.Add("file", fmt.Sprintf("file exceeds maximum size of %d bytes", opts.MaxSize))
	}

	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(file.Filename), "."))
	allowed := false
	for _, e := range opts.AllowedExtensions {
		if ext == strings.ToLower(e) {
			allowed = true
			break
		}
	}
	if !allowed {
		errs.Add("file", fmt.Sprintf("extension %q is not allowed", ext))
		return errs
	}

	expectedMIME := extensionMIME[ext]
	if expectedMIME == "" {
		errs.Add("file", fmt.Sprintf("no known media type for extension %q", ext))
		return errs
	}

	if len(file.Content) == 0 {
		errs.Add("file", "file is empty")
		return errs
	}

	sniffed := http.DetectContentType(file.Content)
	if !strings.HasPrefix(sniffed, expectedMIME) {
		errs.Add("file", fmt.Sprintf("content type %s does not match extension %q", sniffed, ext))
	}
	if file.ContentType != "" && !strings.HasPrefix(file.ContentType, expectedMIME) {
		errs.Add("file", fmt.Sprintf("declared content type %s does not match extension %q", file.ContentType, ext))
	}

	if imageMIMEs[expectedMIME] && (opts.MaxWidth > 0 || opts.MaxHeight > 0) {
		cfg, _, err := image.DecodeConfig(bytes.NewReader(file.Content))
		if err == nil {
			// webp não tem decoder registrado, aí o check de dimensão é pulado
			if opts.MaxWidth > 0 && cfg.Width > opts.MaxWidth {
				errs.Add("file", fmt.Sprintf("image width %d exceeds maximum of %d", cfg.Width, opts.MaxWidth))
			}
			if opts.MaxHeight > 0 && cfg.Height > opts.MaxHeight {
				errs.Add("file", fmt.Sprintf("image height %d exceeds maximum of %d", cfg.Height, opts.MaxHeight))
			}
		}
	}

	return errs
}
