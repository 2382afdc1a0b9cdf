// Package extract turns uploaded study notes (PDF, Word or plain text)
// into plain text.
package extract

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/gabriel-vasile/mimetype"
)

// Format is a supported notes file format.
type Format string

const (
	FormatPDF  Format = "pdf"
	FormatWord Format = "word"
	FormatText Format = "text"
)

var (
	// ErrNoFile is returned when no file was given or it has no content.
	ErrNoFile = errors.New("please select a file first")

	// ErrUnsupported is returned for extensions other than .pdf, .docx,
	// .doc and .txt.
	ErrUnsupported = errors.New("unsupported file format, please upload a PDF, Word or text file")

	// ErrNoText is wrapped in an ExtractionError when a readable file
	// contains no text, such as a scanned PDF.
	ErrNoText = errors.New("no text found in file")
)

// ExtractionError reports a file that has a supported extension but whose
// content could not be read.
type ExtractionError struct {
	Name string
	Err  error
}

func (e *ExtractionError) Error() string {
	return fmt.Sprintf("failed to read %s: %v", e.Name, e.Err)
}

func (e *ExtractionError) Unwrap() error {
	return e.Err
}

// FormatOf maps a file name to its format by extension.
func FormatOf(name string) (Format, error) {
	if strings.TrimSpace(name) == "" {
		return "", ErrNoFile
	}
	switch strings.ToLower(filepath.Ext(name)) {
	case ".pdf":
		return FormatPDF, nil
	case ".docx", ".doc":
		return FormatWord, nil
	case ".txt":
		return FormatText, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnsupported, filepath.Ext(name))
}

// File reads and extracts the file at path.
func File(path string) (string, error) {
	if _, err := FormatOf(path); err != nil {
		return "", err
	}
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return "", fmt.Errorf("%w: %s", ErrNoFile, path)
	}
	if err != nil {
		return "", &ExtractionError{Name: filepath.Base(path), Err: err}
	}
	return Bytes(filepath.Base(path), data)
}

// Bytes extracts text from data, choosing the parser from name's
// extension. The content is sniffed first so that, for example, a renamed
// image is reported as an ExtractionError rather than parsed as garbage.
func Bytes(name string, data []byte) (string, error) {
	format, err := FormatOf(name)
	if err != nil {
		return "", err
	}
	if len(data) == 0 {
		return "", ErrNoFile
	}

	if err := checkContent(format, data); err != nil {
		return "", &ExtractionError{Name: name, Err: err}
	}

	var text string
	switch format {
	case FormatPDF:
		text, err = pdfText(data)
	case FormatWord:
		text, err = docxText(data)
	case FormatText:
		text = plainText(data)
	}
	if err != nil {
		return "", &ExtractionError{Name: name, Err: err}
	}
	if strings.TrimSpace(text) == "" {
		return "", &ExtractionError{Name: name, Err: ErrNoText}
	}
	return text, nil
}

func checkContent(format Format, data []byte) error {
	m := mimetype.Detect(data)
	switch format {
	case FormatPDF:
		if !m.Is("application/pdf") {
			return fmt.Errorf("content is %s, not a PDF", m.String())
		}
	case FormatWord:
		if m.Is("application/msword") || m.Is("application/x-ole-storage") {
			return errors.New("legacy .doc files are not supported, save the document as .docx")
		}
		if !isZip(m) {
			return fmt.Errorf("content is %s, not a Word document", m.String())
		}
	case FormatText:
		if !isText(m) {
			return fmt.Errorf("content is %s, not text", m.String())
		}
	}
	return nil
}

func isZip(m *mimetype.MIME) bool {
	for ; m != nil; m = m.Parent() {
		if m.Is("application/zip") {
			return true
		}
	}
	return false
}

func isText(m *mimetype.MIME) bool {
	for ; m != nil; m = m.Parent() {
		if strings.HasPrefix(m.String(), "text/") {
			return true
		}
	}
	return false
}

// plainText decodes a text file the way browsers do: a UTF-8 BOM is dropped
// and invalid sequences become U+FFFD.
func plainText(data []byte) string {
	s := strings.TrimPrefix(string(data), "\ufeff")
	if !utf8.ValidString(s) {
		s = strings.ToValidUTF8(s, "\ufffd")
	}
	return s
}
