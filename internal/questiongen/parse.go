package questiongen

import (
	"regexp"
	"strings"
	"unicode"

	"github.com/abhisek/studybuddy/internal/quiz"
)

var (
	separatorLine = regexp.MustCompile(`^\s*(={3,}|-{3,})\s*$`)
	labelLine     = regexp.MustCompile(`(?i)^[\s*#_]*(multiple[ -]choice|true/false|true or false|fill[ -]in[ -]the[ -]blank|fill[ -]in[ -]blank|short[ -]answer)(\s+question)?[\s*#_:]*$`)
	questionLine  = regexp.MustCompile(`(?i)^[\s*]*(?:\d+[.)]\s*)?(?:\*\*)?question(?:\s*\d+)?(?:\*\*)?\s*:\s*(?:\*\*)?\s*(.*)$`)
	optionLine    = regexp.MustCompile(`^\s*\(?([A-Da-d])[.)]\s+(.*)$`)
	answerLine    = regexp.MustCompile(`(?i)^[\s*]*(?:correct\s+)?answer(?:\*\*)?\s*:\s*(?:\*\*)?\s*(.*)$`)
	keyTermsLine  = regexp.MustCompile(`(?i)^[\s*]*(?:key\s*terms|keywords)(?:\*\*)?\s*:\s*(?:\*\*)?\s*(.*)$`)
	blankPattern  = regexp.MustCompile(`_{2,}|\[BLANK\]|\bBLANK\b`)
	termSeparator = regexp.MustCompile(`[,;]`)
)

// block is one question as written by the model, before typing.
type block struct {
	label    quiz.Type // from a "**True/False Question**" style heading
	question []string
	options  [4]string
	nOptions int
	answer   string
	keyTerms string
	hasTerms bool

	field  *string // where continuation lines go
	closed bool    // set once the answer is read; later prose is dropped
}

// ParseBlocks reads questions written in the plain-text reply format:
//
//	Question: ...
//	A) ... through D) ...
//	Answer: B
//
// with "Answer: True|False", "Answer: <text>" and "Key Terms: a, b" for the
// other types. Questions may be separated by === lines and preceded by a
// heading naming their type, as random mode asks for. A question without a
// heading takes the type of mode; in random mode the type is inferred from
// its shape. Malformed questions are skipped. At most count questions are
// returned.
func ParseBlocks(text, mode string, count int) []quiz.Question {
	var (
		out     []quiz.Question
		cur     *block
		pending quiz.Type
		seen    = make(map[string]bool)
	)

	flush := func() {
		if cur == nil {
			return
		}
		if q, ok := cur.build(mode); ok && !seen[promptKey(q)] {
			seen[promptKey(q)] = true
			out = append(out, q)
		}
		cur = nil
	}

	for _, line := range strings.Split(strings.ReplaceAll(text, "\r\n", "\n"), "\n") {
		if count > 0 && len(out) >= count {
			break
		}
		switch {
		case separatorLine.MatchString(line):
			flush()
		case labelLine.MatchString(line):
			flush()
			pending = labelType(labelLine.FindStringSubmatch(line)[1])
		case questionLine.MatchString(line):
			flush()
			cur = &block{label: pending}
			pending = ""
			cur.question = append(cur.question, questionLine.FindStringSubmatch(line)[1])
		case cur == nil:
			// Preamble before the first question.
		case optionLine.MatchString(line):
			m := optionLine.FindStringSubmatch(line)
			i := int(unicode.ToUpper(rune(m[1][0])) - 'A')
			cur.options[i] = m[2]
			cur.nOptions++
			cur.field = &cur.options[i]
		case answerLine.MatchString(line):
			cur.answer = answerLine.FindStringSubmatch(line)[1]
			cur.field, cur.closed = nil, true
		case keyTermsLine.MatchString(line):
			cur.keyTerms = keyTermsLine.FindStringSubmatch(line)[1]
			cur.hasTerms = true
			cur.field, cur.closed = nil, true
		case strings.TrimSpace(line) == "", cur.closed:
		default:
			if cur.field != nil {
				*cur.field += " " + strings.TrimSpace(line)
			} else {
				cur.question = append(cur.question, line)
			}
		}
	}
	flush()

	if count > 0 && len(out) > count {
		out = out[:count]
	}
	return out
}

func labelType(label string) quiz.Type {
	l := strings.ToLower(label)
	switch {
	case strings.HasPrefix(l, "multiple"):
		return quiz.MultipleChoice
	case strings.HasPrefix(l, "true"):
		return quiz.TrueFalse
	case strings.HasPrefix(l, "fill"):
		return quiz.FillBlank
	}
	return quiz.ShortAnswer
}

// kind picks the block's question type.
func (b *block) kind(mode string) quiz.Type {
	if b.label != "" {
		return b.label
	}
	if t, ok := typeFor(mode); ok {
		return t
	}
	switch {
	case b.nOptions >= 4:
		return quiz.MultipleChoice
	case b.hasTerms:
		return quiz.ShortAnswer
	}
	if _, ok := parseBool(b.answer); ok {
		return quiz.TrueFalse
	}
	return quiz.FillBlank
}

func (b *block) build(mode string) (quiz.Question, bool) {
	prompt := strings.TrimSpace(strings.Join(trimAll(b.question), " "))
	if prompt == "" {
		return quiz.Question{}, false
	}
	answer := strings.Trim(strings.TrimSpace(b.answer), "*")
	answer = strings.TrimSpace(answer)

	switch b.kind(mode) {
	case quiz.MultipleChoice:
		opts := trimAll(b.options[:])
		for _, o := range opts {
			if o == "" {
				return quiz.Question{}, false
			}
		}
		idx, ok := answerIndex(answer, opts)
		if !ok {
			return quiz.Question{}, false
		}
		return quiz.NewMultipleChoice(prompt, opts, idx), true

	case quiz.TrueFalse:
		v, ok := parseBool(answer)
		if !ok {
			return quiz.Question{}, false
		}
		return quiz.NewTrueFalse(trueOrFalsePrefix(prompt), v), true

	case quiz.FillBlank:
		if answer == "" {
			return quiz.Question{}, false
		}
		prompt, ok := withBlank(prompt, answer)
		if !ok {
			return quiz.Question{}, false
		}
		return quiz.NewFillBlank(prompt, answer), true

	default:
		terms := cleanTerms(termSeparator.Split(b.keyTerms, -1))
		if len(terms) == 0 {
			terms = Keywords(prompt)
		}
		return quiz.NewShortAnswer(prompt, terms...), true
	}
}

// answerIndex reads "B", "(b)", "B) Mitochondria" or the option text itself.
func answerIndex(answer string, opts []string) (int, bool) {
	a := strings.TrimLeft(answer, "( ")
	if a != "" {
		r := unicode.ToUpper(rune(a[0]))
		if r >= 'A' && r <= 'D' && (len(a) == 1 || !unicode.IsLetter(rune(a[1]))) {
			return int(r - 'A'), true
		}
	}
	want := quiz.Normalize(answer)
	for i, o := range opts {
		if want != "" && quiz.Normalize(o) == want {
			return i, true
		}
	}
	return 0, false
}

func parseBool(answer string) (bool, bool) {
	a := strings.ToLower(strings.TrimSpace(answer))
	switch {
	case strings.HasPrefix(a, "true"):
		return true, true
	case strings.HasPrefix(a, "false"):
		return false, true
	}
	return false, false
}

// trueOrFalsePrefix makes a statement read as a true/false question.
func trueOrFalsePrefix(prompt string) string {
	if strings.HasPrefix(strings.ToLower(prompt), "true or false") {
		return prompt
	}
	return "True or False: " + prompt
}

// withBlank normalizes the blank marker to _____. A sentence without a
// blank gets one where the answer appears.
func withBlank(prompt, answer string) (string, bool) {
	if blankPattern.MatchString(prompt) {
		return blankPattern.ReplaceAllStringFunc(prompt, func(m string) string {
			if strings.HasPrefix(m, "_") {
				return m
			}
			return "_____"
		}), true
	}
	loc := regexp.MustCompile(`(?i)` + regexp.QuoteMeta(answer)).FindStringIndex(prompt)
	if loc == nil {
		return prompt, false
	}
	return prompt[:loc[0]] + "_____" + prompt[loc[1]:], true
}

func trimAll(ss []string) []string {
	out := make([]string, len(ss))
	for i, s := range ss {
		out[i] = strings.TrimSpace(s)
	}
	return out
}
