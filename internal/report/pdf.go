package report

import (
	"fmt"
	"io"
	"time"

	"github.com/go-pdf/fpdf"

	"github.com/abhisek/studybuddy/internal/quiz"
)

// Title heads every PDF report.
const Title = "Study Buddy - Practice Results"

type rgb struct{ r, g, b int }

var (
	colorTitle     = rgb{66, 133, 244}
	colorText      = rgb{51, 51, 51}
	colorCorrect   = rgb{52, 168, 83}
	colorIncorrect = rgb{234, 67, 53}
	colorRule      = rgb{200, 200, 200}
)

// Page layout in millimetres on A4.
const (
	marginLeft   = 20.0
	answerIndent = 25.0
	pageCenter   = 105.0
	pageBreakY   = 270.0
	footerY      = 290.0
	lineStep     = 7.0
	wrapStep     = 5.0
	itemGap      = 5.0
	answerWidth  = 190.0 - answerIndent
)

// PDF writes the review as an A4 PDF.
func PDF(w io.Writer, s quiz.Summary, now time.Time) error {
	return writePDF(w, s, now, true)
}

func writePDF(w io.Writer, s quiz.Summary, now time.Time, compress bool) error {
	doc := fpdf.New("P", "mm", "A4", "")
	doc.SetCompression(compress)
	doc.SetTitle(Title, true)
	doc.SetCreator("Study Buddy", true)
	doc.SetAutoPageBreak(false, 0)

	// Core fonts are cp1252; translate so accented notes survive.
	tr := doc.UnicodeTranslatorFromDescriptor("")
	text := func(x, y float64, c rgb, s string) {
		doc.SetTextColor(c.r, c.g, c.b)
		doc.Text(x, y, tr(s))
	}
	centered := func(y float64, c rgb, s string) {
		doc.SetTextColor(c.r, c.g, c.b)
		width := doc.GetStringWidth(tr(s))
		doc.Text(pageCenter-width/2, y, tr(s))
	}

	doc.AddPage()

	doc.SetFont("Helvetica", "B", 18)
	centered(20, colorTitle, Title)

	doc.SetFont("Helvetica", "", 12)
	text(marginLeft, 35, colorText, "Practice Mode: "+quiz.ModeLabel(s.Mode))
	text(marginLeft, 43, colorText, "Difficulty Level: "+quiz.DifficultyLabel(s.Difficulty))
	text(marginLeft, 51, colorText, "Score: "+s.ScoreLine())

	doc.SetDrawColor(colorRule.r, colorRule.g, colorRule.b)
	doc.Line(marginLeft, 58, 190, 58)

	doc.SetFont("Helvetica", "B", 12)
	text(marginLeft, 68, colorText, "Questions Review:")

	y := 78.0
	for _, it := range s.Items {
		if y > pageBreakY {
			doc.AddPage()
			y = 20
		}

		doc.SetFont("Helvetica", "B", 10)
		text(marginLeft, y, colorText, it.Heading())
		y += lineStep

		doc.SetFont("Helvetica", "", 10)
		for _, field := range []string{"Your Answer: " + it.UserAnswer, "Correct Answer: " + it.CorrectAnswer} {
			lines := wrapLines(doc, tr(field), answerWidth)
			for i, line := range lines {
				if i > 0 {
					y += wrapStep
					if y > pageBreakY {
						doc.AddPage()
						y = 20
					}
				}
				doc.SetTextColor(colorText.r, colorText.g, colorText.b)
				doc.Text(answerIndent, y, line)
			}
			y += lineStep
		}

		result := colorIncorrect
		if it.Correct {
			result = colorCorrect
		}
		text(answerIndent, y, result, "Result: "+it.ResultLabel())
		y += lineStep + itemGap
	}

	doc.SetFont("Helvetica", "I", 9)
	centered(footerY, colorText, fmt.Sprintf("Generated on %s", now.Format("January 2, 2006 at 3:04 PM")))

	if err := doc.Output(w); err != nil {
		return fmt.Errorf("render pdf: %w", err)
	}
	return nil
}

// wrapLines splits s into lines no wider than width in the current font.
func wrapLines(doc *fpdf.Fpdf, s string, width float64) []string {
	lines := doc.SplitText(s, width)
	if len(lines) == 0 {
		return []string{s}
	}
	return lines
}
