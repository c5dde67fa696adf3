package upload

import (
	"bytes"
	"errors"
	"mime/multipart"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	jpegHead = []byte{0xFF, 0xD8, 0xFF, 0xE0, 0x00, 0x10, 'J', 'F', 'I', 'F', 0x00}
	pngHead  = []byte{0x89, 'P', 'N', 'G', 0x0D, 0x0A, 0x1A, 0x0A, 0x00, 0x00, 0x00, 0x0D, 'I', 'H', 'D', 'R'}
	mp4Head  = append([]byte{0x00, 0x00, 0x00, 0x18}, []byte("ftypisom\x00\x00\x02\x00isomiso2avc1mp41")...)
	movHead  = append([]byte{0x00, 0x00, 0x00, 0x14}, []byte("ftypqt  \x00\x00\x02\x00qt  ")...)
	textHead = []byte("kerusakan AC di lantai 2\n")
)

func TestReportMediaAcceptsAllowedTypes(t *testing.T) {
	cases := map[string][]byte{
		"foto.jpg":  jpegHead,
		"foto.png":  pngHead,
		"video.mp4": mp4Head,
		"video.mov": movHead,
	}
	for name, head := range cases {
		assert.NoError(t, ReportMedia.Check(name, 8*MB, head), name)
		assert.NoError(t, ReportMedia.Check(name, 1024, head), name)
	}
}

func TestReportMediaRejectsOversizedJPEG(t *testing.T) {
	err := ReportMedia.Check("besar.jpg", 9*MB, jpegHead)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrTooLarge))

	var fe *FileError
	require.True(t, errors.As(err, &fe))
	assert.Contains(t, fe.Message(ReportMedia), "8 MB")
}

func TestReportMediaRejectsText(t *testing.T) {
	err := ReportMedia.Check("catatan.txt", int64(len(textHead)), textHead)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrType))

	var fe *FileError
	require.True(t, errors.As(err, &fe))
	assert.Contains(t, fe.Detected, "text/plain")
}

func TestReportMediaRejectsEmpty(t *testing.T) {
	assert.ErrorIs(t, ReportMedia.Check("kosong.jpg", 0, nil), ErrEmpty)
}

func TestAssetManualOnlyPDF(t *testing.T) {
	pdf := []byte("%PDF-1.7\n%\xe2\xe3\xcf\xd3\n")
	assert.NoError(t, AssetManual.Check("manual.pdf", 2*MB, pdf))
	assert.ErrorIs(t, AssetManual.Check("manual.jpg", 2*MB, jpegHead), ErrType)
	assert.ErrorIs(t, AssetManual.Check("manual.pdf", 11*MB, pdf), ErrTooLarge)
}

func TestValidateMultipartFiles(t *testing.T) {
	var body bytes.Buffer
	w := multipart.NewWriter(&body)
	fw, err := w.CreateFormFile("media[]", "foto.jpg")
	require.NoError(t, err)
	_, _ = fw.Write(append(jpegHead, bytes.Repeat([]byte{0}, 4096)...))
	fw, err = w.CreateFormFile("media[]", "catatan.txt")
	require.NoError(t, err)
	_, _ = fw.Write(textHead)
	require.NoError(t, w.Close())

	req := httptest.NewRequest("POST", "/", &body)
	req.Header.Set("Content-Type", w.FormDataContentType())
	require.NoError(t, req.ParseMultipartForm(32*MB))
	files := req.MultipartForm.File["media[]"]
	require.Len(t, files, 2)

	assert.NoError(t, ReportMedia.Validate(files[0]))
	err = ReportMedia.ValidateAll(files)
	var fe *FileError
	require.True(t, errors.As(err, &fe))
	assert.Equal(t, "catatan.txt", fe.File)
}
