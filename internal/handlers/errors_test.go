package handlers

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFoldFieldErrors(t *testing.T) {
	fields := foldFieldErrors(map[string]string{
		"media.1":     "File kedua terlalu besar.",
		"media.0":     "File pertama bukan gambar.",
		"description": "Deskripsi wajib diisi.",
	}, "media")

	assert.Equal(t, map[string]string{
		"media":       "File pertama bukan gambar.",
		"description": "Deskripsi wajib diisi.",
	}, fields)
}

func TestFoldFieldErrorsKeepsExistingMessage(t *testing.T) {
	fields := foldFieldErrors(map[string]string{"media": "Maksimal 10 file.", "media.3": "x"}, "media")
	assert.Equal(t, map[string]string{"media": "Maksimal 10 file."}, fields)
}

func TestFoldFieldErrorsNil(t *testing.T) {
	assert.Nil(t, foldFieldErrors(nil, "media"))
}
