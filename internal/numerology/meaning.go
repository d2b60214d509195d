package numerology

var meanings = map[int]string{
	1:  "Independent, pioneering, leadership energy.",
	2:  "Diplomatic, cooperative, harmony-seeking.",
	3:  "Creative, expressive, optimistic.",
	4:  "Practical, organized, builder mindset.",
	5:  "Adventurous, adaptable, freedom-loving.",
	6:  "Nurturing, responsible, community-focused.",
	7:  "Analytical, introspective, spiritual seeker.",
	8:  "Ambitious, empowered, materially adept.",
	9:  "Compassionate, humanitarian, big-picture.",
	11: "Intuitive, inspiring, visionary (master number).",
	22: "Master builder, practical visionary (master number).",
	33: "Compassionate teacher, uplifting service (master number).",
}

// DefaultMeaning is returned for numbers without an interpretation (only 0 in
// practice).
const DefaultMeaning = "Unique path."

// Meaning returns the interpretation of a reduced number.
func Meaning(n int) string {
	if m, ok := meanings[n]; ok {
		return m
	}
	return DefaultMeaning
}

// Entry pairs a number with its interpretation.
type Entry struct {
	Number  int    `json:"number"`
	Meaning string `json:"meaning"`
}

// Reading is Result with interpretations attached.
type Reading struct {
	LifePath   *Entry `json:"lifePath"`
	Expression *Entry `json:"expression"`
	SoulUrge   *Entry `json:"soulUrge"`
}

// Interpret attaches meanings to r. Nil scores stay nil.
func (r Result) Interpret() Reading {
	return Reading{
		LifePath:   entry(r.LifePath),
		Expression: entry(r.Expression),
		SoulUrge:   entry(r.SoulUrge),
	}
}

func entry(n *int) *Entry {
	if n == nil {
		return nil
	}
	return &Entry{Number: *n, Meaning: Meaning(*n)}
}
