package quiz

// ModeRandom mixes all question types in one practice round.
const ModeRandom = "random"

// Difficulty levels understood by the generators.
const (
	Beginner     = "beginner"
	Intermediate = "intermediate"
	Expert       = "expert"
)

// Modes lists the practice modes in menu order.
var Modes = []string{
	string(MultipleChoice),
	string(TrueFalse),
	string(FillBlank),
	string(ShortAnswer),
	ModeRandom,
}

// Difficulties lists the difficulty levels in menu order.
var Difficulties = []string{Beginner, Intermediate, Expert}

// ValidMode reports whether mode is a known practice mode.
func ValidMode(mode string) bool {
	for _, m := range Modes {
		if m == mode {
			return true
		}
	}
	return false
}

// ValidDifficulty reports whether level is a known difficulty.
func ValidDifficulty(level string) bool {
	for _, d := range Difficulties {
		if d == level {
			return true
		}
	}
	return false
}
