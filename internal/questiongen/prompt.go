package questiongen

import (
	"fmt"
	"strings"

	"github.com/abhisek/studybuddy/internal/quiz"
)

const structuredSystemPrompt = `You are an expert educator writing practice questions from a student's notes.

Rules:
- Every question must be answerable from the notes alone.
- Match the requested difficulty: beginner recalls facts, intermediate connects ideas, expert applies them.
- multiple-choice: exactly 4 options with one correct option; correct_index is its 0-based position. Distractors should be plausible.
- true-false: a single statement; answer is "true" or "false".
- fill-blank: one sentence with the missing word or phrase replaced by _____; answer is the missing text.
- short-answer: a question needing a brief explanation; key_terms lists 3 to 5 words or short phrases a good answer would use.
- Leave fields that do not belong to a question's type empty (options [], correct_index 0, answer "", key_terms []).
- Do not repeat a question.`

// structuredUserMessage asks for count questions as JSON.
func structuredUserMessage(req Request, notes string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Difficulty: %s\n", req.Difficulty)
	if t, ok := typeFor(req.Mode); ok {
		fmt.Fprintf(&b, "Question type: %s (all questions)\n", t)
	} else {
		b.WriteString("Question type: mix multiple-choice, true-false, fill-blank and short-answer\n")
	}
	fmt.Fprintf(&b, "Number of questions: %d\n", req.Count)
	b.WriteString("\nNotes:\n")
	b.WriteString(notes)
	return b.String()
}

// textPrompt builds the plain-text prompt for models without structured
// output. The reply format is what ParseBlocks understands.
func textPrompt(req Request, notes string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "You are an expert educator. Generate %d %s level questions based on these notes:\n\n%s\n\n",
		req.Count, req.Difficulty, notes)

	switch quiz.Type(req.Mode) {
	case quiz.MultipleChoice:
		fmt.Fprintf(&b, `Generate EXACTLY %d multiple choice questions with 4 options (A, B, C, D).
Format each question EXACTLY like this:
Question: [question text]
A) [option A]
B) [option B]
C) [option C]
D) [option D]
Answer: [correct letter]

Every question needs all 4 options and an answer.
`, req.Count)
	case quiz.TrueFalse:
		fmt.Fprintf(&b, `Generate EXACTLY %d true/false questions.
Format each question EXACTLY like this:
Question: [statement]
Answer: [True/False]
`, req.Count)
	case quiz.FillBlank:
		fmt.Fprintf(&b, `Generate EXACTLY %d fill-in-the-blank questions.
Format each question EXACTLY like this:
Question: [sentence with _____ for the blank]
Answer: [word or phrase that goes in the blank]
`, req.Count)
	case quiz.ShortAnswer:
		fmt.Fprintf(&b, `Generate EXACTLY %d short-answer questions.
Format each question EXACTLY like this:
Question: [question requiring explanation]
Key Terms: [key term 1], [key term 2], [key term 3]

Include at least 3 key terms for every question.
`, req.Count)
	default:
		fmt.Fprintf(&b, `Generate EXACTLY %d mixed questions: multiple choice, true/false, fill-in-the-blank and short answer.
Start each question with its kind on its own line, then use the matching format:

**Multiple Choice Question**
Question: ...
A) ...
B) ...
C) ...
D) ...
Answer: B

**True/False Question**
Question: ...
Answer: True

**Fill-in-the-Blank Question**
Question: The main cause of this issue is _____.
Answer: stress

**Short Answer Question**
Question: ...
Key Terms: term one, term two, term three

Separate questions with a line of three equal signs:
===
`, req.Count)
	}
	return b.String()
}

// ProbePrompt is the one-question prompt used to check that a provider
// answers at all.
const ProbePrompt = `You are a quiz-generation assistant.
Generate 1 multiple-choice question (with A-D) about photosynthesis:
Photosynthesis converts light into chemical energy in plants.`
