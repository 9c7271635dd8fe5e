package uploads

import (
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSaveAndServe(t *testing.T) {
	storage, err := NewStorage(t.TempDir(), 1<<20)
	require.NoError(t, err)

	url, err := storage.Save(strings.NewReader("%PDF-1.4 fake"), "certificate.PDF", KindPDF, "certificates")
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(url, "/uploads/certificates/"))
	require.True(t, strings.HasSuffix(url, ".pdf"))

	req := httptest.NewRequest(http.MethodGet, url, nil)
	res := httptest.NewRecorder()
	storage.Handler().ServeHTTP(res, req)
	require.Equal(t, http.StatusOK, res.Code)
	require.Equal(t, "application/pdf", res.Header().Get("Content-Type"))
	require.Contains(t, res.Header().Get("Content-Disposition"), "inline")
}

func TestSaveRejectsUnsupportedType(t *testing.T) {
	storage, err := NewStorage(t.TempDir(), 1<<20)
	require.NoError(t, err)

	_, err = storage.Save(strings.NewReader("MZ"), "malware.exe", KindImage, "covers")
	require.ErrorIs(t, err, ErrUnsupportedType)

	_, err = storage.Save(strings.NewReader("x"), "notes.txt", KindAttachment, "contact-attachments")
	require.ErrorIs(t, err, ErrUnsupportedType)
}

func TestSaveRejectsOversizedFile(t *testing.T) {
	dir := t.TempDir()
	storage, err := NewStorage(dir, 8)
	require.NoError(t, err)

	_, err = storage.Save(strings.NewReader("way more than eight bytes"), "big.png", KindImage, "covers")
	require.ErrorIs(t, err, ErrTooLarge)

	entries, err := os.ReadDir(filepath.Join(dir, "covers"))
	require.NoError(t, err)
	require.Empty(t, entries)
}
