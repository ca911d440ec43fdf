package score

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGrade_BoundariesMatchThresholdTable(t *testing.T) {
	cases := []struct {
		overall float64
		want    string
	}{
		{100, "A+"},
		{90, "A+"},
		{89.9, "A"},
		{85, "A"},
		{80, "A-"},
		{75, "B+"},
		{70, "B"},
		{65, "B-"},
		{60, "C+"},
		{55, "C"},
		{50, "C-"},
		{49.9, "F"},
		{0, "F"},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, Grade(c.overall), "overall=%v", c.overall)
	}
}
