package extract

import (
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"aeoaudit/model"
)

// Structural extracts headings, paragraphs, lists, and tables (§4.C
// "Structural"). Pure and side-effect-free: it only reads the cleaned DOM.
func Structural(main *goquery.Selection) (headings []model.Heading, paragraphs []model.Paragraph, lists []model.List, tables []model.Table, codeBlockCount int) {
	main.Find("h1, h2, h3, h4, h5, h6").Each(func(_ int, s *goquery.Selection) {
		level, _ := strconv.Atoi(strings.TrimPrefix(goquery.NodeName(s), "h"))
		id, _ := s.Attr("id")
		headings = append(headings, model.Heading{
			Level: level,
			Text:  strings.TrimSpace(s.Text()),
			ID:    id,
		})
	})

	main.Find("p").Each(func(_ int, s *goquery.Selection) {
		text := strings.TrimSpace(s.Text())
		if len(text) < 20 {
			return
		}
		paragraphs = append(paragraphs, model.Paragraph{
			Text:        text,
			WordCount:   countWords(text),
			HasEmphasis: s.Find("strong, b, em, i").Length() > 0,
		})
	})

	main.Find("ul, ol").Each(func(_ int, s *goquery.Selection) {
		items := []string{}
		s.Find("li").Each(func(_ int, li *goquery.Selection) {
			text := strings.TrimSpace(li.Text())
			if text != "" {
				items = append(items, text)
			}
		})
		if len(items) < 2 {
			return
		}
		lists = append(lists, model.List{
			Ordered:       goquery.NodeName(s) == "ol",
			Items:         items,
			ParentHeading: precedingHeadingText(s),
		})
	})

	main.Find("table").Each(func(_ int, s *goquery.Selection) {
		var headers []string
		s.Find("thead th, tr:first-child th").Each(func(_ int, th *goquery.Selection) {
			headers = append(headers, strings.TrimSpace(th.Text()))
		})

		var rows [][]string
		s.Find("tbody tr, tr").Each(func(i int, tr *goquery.Selection) {
			if tr.Find("th").Length() > 0 && i == 0 {
				return
			}
			var row []string
			tr.Find("td").Each(func(_ int, td *goquery.Selection) {
				row = append(row, strings.TrimSpace(td.Text()))
			})
			if len(row) > 0 {
				rows = append(rows, row)
			}
		})

		if len(rows) < 2 {
			return
		}
		caption := strings.TrimSpace(s.Find("caption").First().Text())
		tables = append(tables, model.Table{Headers: headers, Rows: rows, Caption: caption})
	})

	codeBlockCount = main.Find("pre, code").Length()

	return headings, paragraphs, lists, tables, codeBlockCount
}

func countWords(s string) int {
	return len(strings.Fields(s))
}

// precedingHeadingText walks backward through previous siblings looking for
// the nearest heading, used to associate a list with its section. It does
// not climb to the parent; a list with no heading sibling before it gets "".
func precedingHeadingText(s *goquery.Selection) string {
	prev := s.Prev()
	for prev.Length() > 0 {
		if name := goquery.NodeName(prev); len(name) == 2 && name[0] == 'h' {
			return strings.TrimSpace(prev.Text())
		}
		prev = prev.Prev()
	}
	return ""
}
