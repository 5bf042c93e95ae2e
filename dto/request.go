package dto

import (
	"fmt"
	"mime/multipart"
)

// ExtractRequest represents the incoming extraction request. Either
// Text or File may be set; when both are present the uploaded file wins.
type ExtractRequest struct {
	Text string
	File *multipart.FileHeader
}

// Validate performs basic validation on the request.
func (r *ExtractRequest) Validate(maxFileSize int64) error {
	if r.File != nil && r.File.Size > maxFileSize {
		return fmt.Errorf("file %s exceeds maximum size of %d bytes", r.File.Filename, maxFileSize)
	}
	return nil
}
