package stability

import (
	"bytes"
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
)

// Request holds the form parameters and optional file attachments for one
// generation call. Attachment files are opened immediately before encoding
// and closed before the request body is returned, on every exit path.
type Request struct {
	Params    map[string]string
	ImagePath string
	MaskPath  string
}

// encode renders the request as a multipart/form-data body. If the request
// carries no attachments, an empty placeholder part keeps the body valid
// multipart form data.
func (r *Request) encode() (*bytes.Buffer, string, error) {
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)

	for name, value := range r.Params {
		if err := writer.WriteField(name, value); err != nil {
			return nil, "", fmt.Errorf("failed to write form field %s: %w", name, err)
		}
	}

	attached := false
	if r.ImagePath != "" {
		if err := attachFile(writer, "image", r.ImagePath); err != nil {
			return nil, "", err
		}
		attached = true
	}
	if r.MaskPath != "" {
		if err := attachFile(writer, "mask", r.MaskPath); err != nil {
			return nil, "", err
		}
		attached = true
	}
	if !attached {
		if err := writer.WriteField("none", ""); err != nil {
			return nil, "", fmt.Errorf("failed to write placeholder field: %w", err)
		}
	}

	if err := writer.Close(); err != nil {
		return nil, "", fmt.Errorf("failed to finalize multipart body: %w", err)
	}

	return body, writer.FormDataContentType(), nil
}

func attachFile(writer *multipart.Writer, field, path string) error {
	file, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("failed to open %s file: %w", field, err)
	}
	defer file.Close()

	part, err := writer.CreateFormFile(field, filepath.Base(path))
	if err != nil {
		return fmt.Errorf("failed to create %s form part: %w", field, err)
	}
	if _, err := io.Copy(part, file); err != nil {
		return fmt.Errorf("failed to copy %s file into request: %w", field, err)
	}

	return nil
}
