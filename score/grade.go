package score

// gradeThresholds maps the minimum overall score to its letter grade,
// descending (§4.E grade table). The threshold check is first-match: walk
// the slice in order and return the first entry whose Min the score clears.
var gradeThresholds = []struct {
	Min   float64
	Grade string
}{
	{90, "A+"},
	{85, "A"},
	{80, "A-"},
	{75, "B+"},
	{70, "B"},
	{65, "B-"},
	{60, "C+"},
	{55, "C"},
	{50, "C-"},
}

// Grade returns the letter grade for an overall score in [0,100].
func Grade(overall float64) string {
	for _, t := range gradeThresholds {
		if overall >= t.Min {
			return t.Grade
		}
	}
	return "F"
}
