package score

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"aeoaudit/model"
)

func TestAnswerability_RichPage_ScoresAcrossAllSubcategories(t *testing.T) {
	pm := &model.PageModel{
		Paragraphs: []model.Paragraph{
			{Text: "a direct answer paragraph", WordCount: 80, HasEmphasis: true},
			{Text: "second", WordCount: 60, HasEmphasis: true},
			{Text: "third", WordCount: 50, HasEmphasis: true},
		},
		AnswerPatterns: []model.AnswerPattern{
			{Kind: model.PatternTLDR},
			{Kind: model.PatternCallout},
		},
		Questions: []model.Question{
			{Text: "What is this?", Source: model.QuestionSourceHeading},
			{Text: "How does it work?", Source: model.QuestionSourceInline},
		},
		Headings: []model.Heading{
			{Level: 1, Text: "Title"},
			{Level: 2, Text: "Section one"},
			{Level: 2, Text: "Section two"},
			{Level: 3, Text: "Subsection"},
		},
		Lists: []model.List{
			{Items: []string{"one", "two", "three"}},
		},
		FAQ: model.FAQSchema{ValidCount: 3},
	}

	cs := Answerability().Score(pm, model.ContentClassification{})

	assert.Greater(t, cs.SubScores["direct_answer_presence"], 0.0)
	assert.Greater(t, cs.SubScores["question_coverage"], 0.0)
	assert.Greater(t, cs.SubScores["conciseness"], 0.0)
	assert.Greater(t, cs.SubScores["formatting"], 0.0)
	assert.LessOrEqual(t, cs.Raw, cs.Max)
}

func TestAnswerability_EmptyPage_ScoresZero(t *testing.T) {
	pm := &model.PageModel{}

	cs := Answerability().Score(pm, model.ContentClassification{})

	assert.Equal(t, 0.0, cs.Raw)
}

func TestAnswerability_QuestionCoverage_CapsAtEight(t *testing.T) {
	questions := make([]model.Question, 20)
	for i := range questions {
		questions[i] = model.Question{Text: "q", Source: model.QuestionSourceInline}
	}
	pm := &model.PageModel{Questions: questions, FAQ: model.FAQSchema{ValidCount: 5}}

	score := questionCoverage(pm)

	assert.Equal(t, 8.0, score)
}
