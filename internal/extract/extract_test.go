package extract

import (
	"archive/zip"
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/go-pdf/fpdf"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func makePDF(t *testing.T, pages ...string) []byte {
	t.Helper()
	doc := fpdf.New("P", "mm", "A4", "")
	doc.SetCompression(false)
	doc.SetFont("Helvetica", "", 12)
	for _, p := range pages {
		doc.AddPage()
		doc.Cell(0, 10, p)
	}
	var buf bytes.Buffer
	require.NoError(t, doc.Output(&buf))
	return buf.Bytes()
}

func makeDocx(t *testing.T, body string) []byte {
	t.Helper()
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	w, err := zw.Create("[Content_Types].xml")
	require.NoError(t, err)
	_, err = w.Write([]byte(`<?xml version="1.0"?><Types xmlns="http://schemas.openxmlformats.org/package/2006/content-types"/>`))
	require.NoError(t, err)
	w, err = zw.Create(docxBody)
	require.NoError(t, err)
	_, err = w.Write([]byte(`<?xml version="1.0" encoding="UTF-8"?>` +
		`<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main"><w:body>` +
		body + `</w:body></w:document>`))
	require.NoError(t, err)
	require.NoError(t, zw.Close())
	return buf.Bytes()
}

func TestFormatOf(t *testing.T) {
	tests := []struct {
		name    string
		want    Format
		wantErr error
	}{
		{"notes.pdf", FormatPDF, nil},
		{"NOTES.PDF", FormatPDF, nil},
		{"chapter.docx", FormatWord, nil},
		{"old.doc", FormatWord, nil},
		{"plain.txt", FormatText, nil},
		{"slides.pptx", "", ErrUnsupported},
		{"README", "", ErrUnsupported},
		{"", "", ErrNoFile},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := FormatOf(tt.name)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestBytes_Text(t *testing.T) {
	got, err := Bytes("notes.txt", []byte("\ufeffCells are the basic unit of life.\n"))
	require.NoError(t, err)
	assert.Equal(t, "Cells are the basic unit of life.\n", got)
}

func TestBytes_Docx(t *testing.T) {
	data := makeDocx(t,
		`<w:p><w:r><w:t>Photosynthesis converts </w:t></w:r><w:r><w:t>light energy.</w:t></w:r></w:p>`+
			`<w:p><w:r><w:t>Step</w:t><w:tab/><w:t>one</w:t><w:br/><w:t>two</w:t></w:r></w:p>`)

	got, err := Bytes("bio.docx", data)
	require.NoError(t, err)
	assert.Equal(t, "Photosynthesis converts light energy.\nStep\tone\ntwo\n", got)
}

func TestBytes_PDF(t *testing.T) {
	data := makePDF(t, "Mitochondria produce ATP", "Ribosomes build proteins")

	got, err := Bytes("cells.pdf", data)
	require.NoError(t, err)
	assert.Contains(t, got, "Mitochondria produce ATP")
	assert.Contains(t, got, "Ribosomes build proteins")
}

func TestBytes_Errors(t *testing.T) {
	tests := []struct {
		name     string
		file     string
		data     []byte
		wantErr  error
		wantExtr bool
	}{
		{"empty content", "a.txt", nil, ErrNoFile, false},
		{"unsupported", "a.png", []byte("x"), ErrUnsupported, false},
		{"pdf that is text", "a.pdf", []byte("just some words"), nil, true},
		{"corrupt pdf", "a.pdf", []byte("%PDF-1.4\nnot really a pdf"), nil, true},
		{"docx that is text", "a.docx", []byte("just some words"), nil, true},
		{"zip without body", "a.docx", zipWith(t, "other.xml"), nil, true},
		{"binary text file", "a.txt", []byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1a, '\n', 0, 0, 0}, nil, true},
		{"whitespace only", "a.txt", []byte("   \n\t "), ErrNoText, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Bytes(tt.file, tt.data)
			require.Error(t, err)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			}
			var ee *ExtractionError
			assert.Equal(t, tt.wantExtr, errors.As(err, &ee))
			if tt.wantExtr {
				assert.Equal(t, tt.file, ee.Name)
			}
		})
	}
}

func TestFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "notes.txt")
	require.NoError(t, os.WriteFile(path, []byte("Water boils at 100 degrees."), 0o644))

	got, err := File(path)
	require.NoError(t, err)
	assert.Equal(t, "Water boils at 100 degrees.", got)

	_, err = File(filepath.Join(dir, "missing.txt"))
	assert.ErrorIs(t, err, ErrNoFile)

	_, err = File(filepath.Join(dir, "missing.key"))
	assert.ErrorIs(t, err, ErrUnsupported)
}

func zipWith(t *testing.T, name string) []byte {
	t.Helper()
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	w, err := zw.Create(name)
	require.NoError(t, err)
	_, err = w.Write([]byte("<x/>"))
	require.NoError(t, err)
	require.NoError(t, zw.Close())
	return buf.Bytes()
}
