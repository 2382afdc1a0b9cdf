// Package report renders a scored practice round as a PDF, an XLSX workbook
// or plain text.
package report

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/abhisek/studybuddy/internal/quiz"
)

// Format is an export file format.
type Format string

const (
	FormatPDF  Format = "pdf"
	FormatXLSX Format = "xlsx"
	FormatText Format = "txt"
)

// Formats lists the supported export formats.
var Formats = []Format{FormatPDF, FormatXLSX, FormatText}

// ParseFormat accepts a format name or a file name with a known extension.
func ParseFormat(s string) (Format, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if ext := filepath.Ext(s); ext != "" {
		s = ext[1:]
	}
	switch Format(s) {
	case FormatPDF, FormatXLSX, FormatText:
		return Format(s), nil
	case "text":
		return FormatText, nil
	}
	return "", fmt.Errorf("unsupported report format %q (want pdf, xlsx or txt)", s)
}

// FileName is the default download name, e.g.
// StudyBuddy_Results_2026-10-15.pdf.
func FileName(f Format, now time.Time) string {
	return fmt.Sprintf("StudyBuddy_Results_%s.%s", now.Format(time.DateOnly), f)
}

// Write renders s in format f. now is printed in the PDF footer.
func Write(w io.Writer, f Format, s quiz.Summary, now time.Time) error {
	switch f {
	case FormatPDF:
		return PDF(w, s, now)
	case FormatXLSX:
		return XLSX(w, s)
	case FormatText:
		_, err := io.WriteString(w, s.Text())
		return err
	}
	return fmt.Errorf("unsupported report format %q", f)
}

// SaveFile writes s into dir under its default file name and returns the
// path.
func SaveFile(dir string, f Format, s quiz.Summary, now time.Time) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create export dir: %w", err)
	}
	path := filepath.Join(dir, FileName(f, now))

	out, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("create %s: %w", path, err)
	}
	if err := Write(out, f, s, now); err != nil {
		out.Close()
		return "", err
	}
	if err := out.Close(); err != nil {
		return "", fmt.Errorf("close %s: %w", path, err)
	}
	return path, nil
}
