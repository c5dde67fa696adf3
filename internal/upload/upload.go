// Package upload checks files before they are forwarded to the backend.
// The backend stays the authority on what it accepts.
package upload

import (
	"errors"
	"fmt"
	"io"
	"mime/multipart"

	"github.com/gabriel-vasile/mimetype"

	"tracer-web/internal/metrics"
)

const MB = 1 << 20

var (
	ErrEmpty    = errors.New("file is empty")
	ErrTooLarge = errors.New("file too large")
	ErrType     = errors.New("file type not allowed")
)

// Policy is an allow-list of sniffed MIME types plus a size limit.
type Policy struct {
	MaxBytes int64
	Allowed  []string
	// Hint is shown to users next to the file input.
	Hint string
}

var (
	ReportMedia = Policy{
		MaxBytes: 8 * MB,
		Allowed:  []string{"image/jpeg", "image/png", "video/mp4", "video/quicktime"},
		Hint:     "JPG, PNG, MP4, MOV. Maksimal 8 MB per file.",
	}
	AssetImage = Policy{
		MaxBytes: 8 * MB,
		Allowed:  []string{"image/jpeg", "image/png"},
		Hint:     "JPG atau PNG. Maksimal 8 MB.",
	}
	AssetManual = Policy{
		MaxBytes: 10 * MB,
		Allowed:  []string{"application/pdf"},
		Hint:     "PDF. Maksimal 10 MB.",
	}
)

// MaxReportFiles bounds the media attached to one report.
const MaxReportFiles = 10

// FileError names the offending file.
type FileError struct {
	File string
	Err  error
	// Detected is the sniffed MIME type for ErrType.
	Detected string
}

func (e *FileError) Error() string {
	if e.Detected != "" {
		return fmt.Sprintf("%s: %v (%s)", e.File, e.Err, e.Detected)
	}
	return fmt.Sprintf("%s: %v", e.File, e.Err)
}

func (e *FileError) Unwrap() error { return e.Err }

// Message is the user-facing text for the failure.
func (e *FileError) Message(p Policy) string {
	switch {
	case errors.Is(e.Err, ErrTooLarge):
		return fmt.Sprintf("File %q melebihi batas %d MB.", e.File, p.MaxBytes/MB)
	case errors.Is(e.Err, ErrType):
		return fmt.Sprintf("Tipe file %q tidak didukung. %s", e.File, p.Hint)
	case errors.Is(e.Err, ErrEmpty):
		return fmt.Sprintf("File %q kosong.", e.File)
	default:
		return fmt.Sprintf("File %q tidak dapat dibaca.", e.File)
	}
}

// Check validates a file given its size and leading bytes.
func (p Policy) Check(name string, size int64, head []byte) error {
	if size <= 0 {
		return reject(&FileError{File: name, Err: ErrEmpty}, "empty")
	}
	if size > p.MaxBytes {
		return reject(&FileError{File: name, Err: ErrTooLarge}, "size")
	}
	mt := mimetype.Detect(head)
	for _, allowed := range p.Allowed {
		if mt.Is(allowed) {
			return nil
		}
	}
	return reject(&FileError{File: name, Err: ErrType, Detected: mt.String()}, "type")
}

// Validate sniffs a multipart file.
func (p Policy) Validate(fh *multipart.FileHeader) error {
	f, err := fh.Open()
	if err != nil {
		return &FileError{File: fh.Filename, Err: err}
	}
	defer f.Close()

	head := make([]byte, 3072)
	n, err := io.ReadFull(f, head)
	if err != nil && !errors.Is(err, io.ErrUnexpectedEOF) && !errors.Is(err, io.EOF) {
		return &FileError{File: fh.Filename, Err: err}
	}
	return p.Check(fh.Filename, fh.Size, head[:n])
}

// ValidateAll stops at the first rejected file.
func (p Policy) ValidateAll(files []*multipart.FileHeader) error {
	for _, fh := range files {
		if err := p.Validate(fh); err != nil {
			return err
		}
	}
	return nil
}

func reject(err *FileError, reason string) error {
	metrics.UploadRejectionsTotal.WithLabelValues(reason).Inc()
	return err
}
