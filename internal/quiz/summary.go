package quiz

import (
	"fmt"
	"math"
	"strings"
)

// PromptWidth bounds question text in reports and review lists.
const PromptWidth = 80

// ReviewItem is the evaluated outcome of one question.
type ReviewItem struct {
	Number        int    `json:"number"`
	Type          Type   `json:"type"`
	Prompt        string `json:"question"`
	UserAnswer    string `json:"userAnswer"`
	CorrectAnswer string `json:"correctAnswer"`
	Correct       bool   `json:"isCorrect"`
}

// Summary is the scored review of a finished practice round.
type Summary struct {
	Mode         string       `json:"mode"`
	Difficulty   string       `json:"difficulty"`
	CorrectCount int          `json:"correctCount"`
	Total        int          `json:"totalQuestions"`
	Score        int          `json:"score"`
	Items        []ReviewItem `json:"perQuestion"`
}

// Summarize evaluates every question against its answer slot. It is a pure
// function of its inputs. Missing answer slots count as unanswered.
func Summarize(questions []Question, answers []Answer, mode, difficulty string) Summary {
	s := Summary{
		Mode:       mode,
		Difficulty: difficulty,
		Total:      len(questions),
		Items:      make([]ReviewItem, 0, len(questions)),
	}

	for i, q := range questions {
		var a Answer
		if i < len(answers) {
			a = answers[i]
		}
		correct := IsCorrect(q, a)
		if correct {
			s.CorrectCount++
		}
		s.Items = append(s.Items, ReviewItem{
			Number:        i + 1,
			Type:          q.Type,
			Prompt:        q.Prompt,
			UserAnswer:    FormatUserAnswer(q, a),
			CorrectAnswer: FormatCorrectAnswer(q),
			Correct:       correct,
		})
	}

	s.Score = Score(s.CorrectCount, s.Total)
	return s
}

// Score returns the rounded percentage of correct answers, 0 when total
// is 0. Halves round up.
func Score(correct, total int) int {
	if total <= 0 {
		return 0
	}
	return int(math.Floor(float64(correct)*100/float64(total) + 0.5))
}

// ScoreLine renders the score as "80% (4/5)".
func (s Summary) ScoreLine() string {
	return fmt.Sprintf("%d%% (%d/%d)", s.Score, s.CorrectCount, s.Total)
}

// ResultLabel is "Correct" or "Incorrect".
func (it ReviewItem) ResultLabel() string {
	if it.Correct {
		return "Correct"
	}
	return "Incorrect"
}

// Heading renders "Question N: <prompt>" with the prompt truncated.
func (it ReviewItem) Heading() string {
	return fmt.Sprintf("Question %d: %s", it.Number, TruncatePrompt(it.Prompt, PromptWidth))
}

// Text renders the whole review as plain text. Every consumer that shows
// results as text goes through here, so two renders of the same summary are
// byte-identical.
func (s Summary) Text() string {
	var b strings.Builder

	fmt.Fprintf(&b, "Practice Mode: %s\n", ModeLabel(s.Mode))
	fmt.Fprintf(&b, "Difficulty Level: %s\n", DifficultyLabel(s.Difficulty))
	fmt.Fprintf(&b, "Score: %s\n", s.ScoreLine())

	for _, it := range s.Items {
		b.WriteString("\n")
		b.WriteString(it.Heading())
		b.WriteString("\n")
		fmt.Fprintf(&b, "Your Answer: %s\n", it.UserAnswer)
		fmt.Fprintf(&b, "Correct Answer: %s\n", it.CorrectAnswer)
		fmt.Fprintf(&b, "Result: %s\n", it.ResultLabel())
	}

	return b.String()
}
