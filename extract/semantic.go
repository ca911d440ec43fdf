package extract

import (
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"aeoaudit/model"
)

var questionStartRe = regexp.MustCompile(`(?i)^(How|What|Why|When|Where|Who|Which|Can|Is|Does|Do|Will|Should|Are)\b`)

var (
	tldrRe       = regexp.MustCompile(`(?i)^(TL;DR|In short|Quick answer)`)
	calloutRe    = regexp.MustCompile(`(?i)callout`)
	definitionRe = regexp.MustCompile(`(?i)definition|highlight|answer-box`)
)

const maxAnswerChars = 500

// Semantic extracts questions (with captured answers), answer patterns, and
// main-content keywords (§4.C "Semantic").
func Semantic(main *goquery.Selection) (questions []model.Question, patterns []model.AnswerPattern, keywords []string) {
	main.Find("h2, h3, h4").Each(func(_ int, s *goquery.Selection) {
		text := strings.TrimSpace(s.Text())
		if text == "" {
			return
		}
		if !strings.HasSuffix(text, "?") && !questionStartRe.MatchString(text) {
			return
		}
		answer := captureAnswer(s)
		questions = append(questions, model.Question{
			Text:   text,
			Source: model.QuestionSourceHeading,
			Answer: answer,
		})
	})

	main.Find("p").Each(func(_ int, s *goquery.Selection) {
		text := strings.TrimSpace(s.Text())
		if tldrRe.MatchString(text) {
			patterns = append(patterns, model.AnswerPattern{Kind: model.PatternTLDR, Text: text})
		}
	})

	main.Find("div, section, span").Each(func(_ int, s *goquery.Selection) {
		class, _ := s.Attr("class")
		switch {
		case calloutRe.MatchString(class):
			patterns = append(patterns, model.AnswerPattern{
				Kind: model.PatternCallout,
				Text: strings.TrimSpace(s.Text()),
			})
		case definitionRe.MatchString(class):
			patterns = append(patterns, model.AnswerPattern{
				Kind: model.PatternDefinition,
				Text: strings.TrimSpace(s.Text()),
			})
		}
	})

	main.Find("blockquote").Each(func(_ int, s *goquery.Selection) {
		text := strings.TrimSpace(s.Text())
		if text == "" {
			return
		}
		patterns = append(patterns, model.AnswerPattern{Kind: model.PatternBlockquote, Text: text})
	})

	keywords = TopKeywords(main.Text(), 20)

	return questions, patterns, keywords
}

// captureAnswer gathers sibling content following a question heading up to
// the next heading, capped at 500 characters (§4.C "Semantic").
func captureAnswer(heading *goquery.Selection) string {
	var sb strings.Builder
	sib := heading.Next()
	for sib.Length() > 0 {
		name := goquery.NodeName(sib)
		if len(name) == 2 && name[0] == 'h' {
			break
		}
		text := strings.TrimSpace(sib.Text())
		if text != "" {
			if sb.Len() > 0 {
				sb.WriteString(" ")
			}
			sb.WriteString(text)
		}
		if sb.Len() >= maxAnswerChars {
			break
		}
		sib = sib.Next()
	}
	answer := sb.String()
	if len(answer) > maxAnswerChars {
		answer = answer[:maxAnswerChars]
	}
	return answer
}
