package extract

import (
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"aeoaudit/model"
)

const minMediaDimension = 50

var decorativeAltValues = map[string]struct{}{
	"image": {}, "photo": {}, "picture": {},
}

// Media extracts images, skipping tracking pixels and icons below
// minMediaDimension on either axis (§4.C "Media").
func Media(main *goquery.Selection) []model.Image {
	var images []model.Image
	main.Find("img").Each(func(_ int, s *goquery.Selection) {
		width := intAttr(s, "width")
		height := intAttr(s, "height")
		if (width > 0 && width < minMediaDimension) || (height > 0 && height < minMediaDimension) {
			return
		}
		src, _ := s.Attr("src")
		alt, _ := s.Attr("alt")
		alt = strings.TrimSpace(alt)
		hasAlt := alt != ""
		_, isDecorativeWord := decorativeAltValues[strings.ToLower(alt)]
		images = append(images, model.Image{
			Src:        src,
			Alt:        alt,
			Width:      width,
			Height:     height,
			HasAlt:     hasAlt,
			Decorative: !hasAlt || isDecorativeWord,
		})
	})
	return images
}

func intAttr(s *goquery.Selection, name string) int {
	val, ok := s.Attr(name)
	if !ok {
		return 0
	}
	n, err := strconv.Atoi(strings.TrimSpace(val))
	if err != nil {
		return 0
	}
	return n
}
