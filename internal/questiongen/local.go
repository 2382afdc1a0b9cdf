package questiongen

import (
	"context"
	"math/rand/v2"
	"regexp"
	"slices"
	"strings"
	"sync"
	"unicode"

	"github.com/abhisek/studybuddy/internal/quiz"
)

// LocalGenerator builds questions from the sentences of the notes without
// calling a model. It is the fallback when a provider is unavailable and
// the filler when a model returns fewer questions than asked for.
type LocalGenerator struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// NewLocalGenerator creates a LocalGenerator. A nil src seeds randomly.
func NewLocalGenerator(src rand.Source) *LocalGenerator {
	if src == nil {
		src = rand.NewPCG(rand.Uint64(), rand.Uint64())
	}
	return &LocalGenerator{rng: rand.New(src)}
}

var sentenceEnd = regexp.MustCompile(`[.!?]`)

// Generate always returns exactly req.Count questions for a valid request.
func (g *LocalGenerator) Generate(_ context.Context, req Request) ([]quiz.Question, error) {
	req = req.Defaults()
	if err := req.Validate(); err != nil {
		return nil, &GenerationError{Stage: StageRequest, Err: err}
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	sentences := noteSentences(req.Notes)
	order := g.rng.Perm(max(len(sentences), 1))

	out := make([]quiz.Question, 0, req.Count)
	for i := range req.Count {
		t, ok := typeFor(req.Mode)
		if !ok {
			t = quiz.Types[g.rng.IntN(len(quiz.Types))]
		}
		if len(sentences) == 0 {
			out = append(out, genericQuestion(t))
			continue
		}
		s := sentences[order[i%len(order)]]
		out = append(out, g.fromSentence(t, s, req.Difficulty))
	}
	return out, nil
}

// noteSentences returns the sentences of paragraphs with some substance.
func noteSentences(notes string) []string {
	var out []string
	for _, para := range strings.Split(strings.ReplaceAll(notes, "\r\n", "\n"), "\n\n") {
		if len(strings.TrimSpace(para)) < 30 {
			continue
		}
		for _, s := range sentenceEnd.Split(para, -1) {
			s = strings.Join(strings.Fields(s), " ")
			if len(s) > 20 {
				out = append(out, s)
			}
		}
	}
	return out
}

func (g *LocalGenerator) fromSentence(t quiz.Type, s, difficulty string) quiz.Question {
	switch t {
	case quiz.TrueFalse:
		return g.trueFalse(s)
	case quiz.FillBlank:
		return g.fillBlank(s)
	case quiz.ShortAnswer:
		return shortAnswer(s, difficulty)
	}
	return g.multipleChoice(s, difficulty)
}

func (g *LocalGenerator) multipleChoice(s, difficulty string) quiz.Question {
	words := strings.Fields(s)

	var prompt, correct string
	if len(words) > 10 {
		start := g.rng.IntN(len(words) - 4)
		end := min(start+5, len(words))
		prompt = "What comes next in this sequence: '" + strings.Join(words[start:end], " ") + "...'?"
		if end < len(words) {
			correct = strings.Join(words[end:min(end+3, len(words))], " ")
		} else {
			correct = "the end of the text"
		}
	} else {
		prompt = "Which statement best describes the following: '" + s + "'?"
		correct = "This statement is accurate"
	}

	var distractors []string
	switch difficulty {
	case quiz.Expert:
		distractors = []string{
			"This is misleading because " + wordAt(words, 0) + " doesn't " + span(words, 1, 3),
			"While " + span(words, 0, 3) + ", the rest is incorrect",
			"Only " + span(words, len(words)-3, len(words)) + " is accurate",
		}
	case quiz.Intermediate:
		rev := slices.Clone(words[:min(10, len(words))])
		slices.Reverse(rev)
		distractors = []string{
			"The opposite is true: " + strings.Join(rev, " "),
			"A different approach is described: " + negate(s),
			"This statement relates to a different topic",
		}
	default:
		distractors = []string{
			"This statement is inaccurate",
			"This statement is only partly correct",
			"None of the above",
		}
	}

	options := append([]string{correct}, distractors...)
	g.rng.Shuffle(len(options), func(i, j int) { options[i], options[j] = options[j], options[i] })
	return quiz.NewMultipleChoice(prompt, options, slices.Index(options, correct))
}

var auxiliaries = map[string]bool{
	"is": true, "are": true, "was": true, "were": true, "has": true,
	"have": true, "will": true, "can": true, "should": true,
}

func (g *LocalGenerator) trueFalse(s string) quiz.Question {
	if g.rng.Float64() > 0.3 {
		return quiz.NewTrueFalse("True or False: "+s, true)
	}

	words := strings.Fields(s)
	if len(words) <= 5 {
		return quiz.NewTrueFalse("True or False: The opposite of '"+s+"' is correct", false)
	}

	var statement string
	switch g.rng.IntN(3) {
	case 0:
		if n := negate(s); n != s {
			statement = n
			break
		}
		fallthrough
	case 1:
		statement = "It is not the case that " + s
	default:
		statement = s + ", which is never the case"
	}
	return quiz.NewTrueFalse("True or False: "+statement, false)
}

// negate flips the first auxiliary verb ("is" becomes "is not" and "is not"
// becomes "is") or, failing that, drops the first "not". It returns s
// unchanged when neither applies.
func negate(s string) string {
	words := strings.Fields(s)
	for i, w := range words {
		lw := strings.ToLower(w)
		if auxiliaries[lw] {
			if i+1 < len(words) && strings.EqualFold(words[i+1], "not") {
				return strings.Join(slices.Delete(words, i+1, i+2), " ")
			}
			words[i] = w + " not"
			return strings.Join(words, " ")
		}
		if lw == "not" {
			return strings.Join(slices.Delete(words, i, i+1), " ")
		}
	}
	return s
}

func (g *LocalGenerator) fillBlank(s string) quiz.Question {
	words := strings.Fields(s)

	var candidates []int
	for i, w := range words {
		c := core(w)
		if len(c) > 4 && !commonWords[strings.ToLower(c)] {
			candidates = append(candidates, i)
		}
	}
	if len(candidates) == 0 {
		for i, w := range words {
			if len(core(w)) > 3 {
				candidates = append(candidates, i)
			}
		}
	}
	if len(candidates) == 0 {
		return genericQuestion(quiz.FillBlank)
	}

	i := candidates[g.rng.IntN(len(candidates))]
	answer := core(words[i])
	words[i] = strings.Replace(words[i], answer, "_____", 1)
	return quiz.NewFillBlank(strings.Join(words, " "), answer)
}

func shortAnswer(s, difficulty string) quiz.Question {
	prompt := "Describe the concept mentioned in: '" + s + "'"
	if len(s) > 50 {
		prompt = "Explain the meaning and implications of: '" + s + "'"
	}

	want := 3
	switch difficulty {
	case quiz.Intermediate:
		want = 4
	case quiz.Expert:
		want = 5
	}

	terms := keywords(s, -1)
	slices.SortStableFunc(terms, func(a, b string) int { return len(b) - len(a) })
	if len(terms) > want {
		terms = terms[:want]
	}
	for _, generic := range []string{"concept", "analysis", "process", "function", "implementation"} {
		if len(terms) >= want {
			break
		}
		if !slices.Contains(terms, generic) {
			terms = append(terms, generic)
		}
	}
	return quiz.NewShortAnswer(prompt, terms...)
}

// genericQuestion is used when the notes have no usable sentence.
func genericQuestion(t quiz.Type) quiz.Question {
	switch t {
	case quiz.TrueFalse:
		return quiz.NewTrueFalse("True or False: Testing yourself on material helps you remember it longer than rereading it.", true)
	case quiz.FillBlank:
		return quiz.NewFillBlank("Reviewing material in several short sessions over time is called _____ practice.", "spaced")
	case quiz.ShortAnswer:
		return quiz.NewShortAnswer("Explain how you would summarize the main ideas of your notes.", "main ideas", "summary", "examples")
	}
	return quiz.NewMultipleChoice("Which of these is an active study technique?",
		[]string{"Practice testing", "Rereading only", "Highlighting only", "Skimming"}, 0)
}

// core strips leading and trailing punctuation from a word.
func core(w string) string {
	return strings.TrimFunc(w, func(r rune) bool { return !unicode.IsLetter(r) && !unicode.IsDigit(r) })
}

func wordAt(words []string, i int) string {
	if i < 0 || i >= len(words) {
		return ""
	}
	return words[i]
}

// span joins words[from:to], clamped to the slice.
func span(words []string, from, to int) string {
	from = max(from, 0)
	to = min(to, len(words))
	if from >= to {
		return ""
	}
	return strings.Join(words[from:to], " ")
}
