// Package recipe handles the rich-text recipe description format: an HTML
// unordered list with one step per item.
package recipe

import (
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// ParseDescription extracts the step list from a description's HTML. Markup
// inside each step is preserved. Malformed or empty HTML yields no steps.
func ParseDescription(html string) ([]string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, fmt.Errorf("failed to parse description html: %w", err)
	}

	var steps []string
	doc.Find("ul > li").Each(func(_ int, sel *goquery.Selection) {
		inner, err := sel.Html()
		if err != nil {
			return
		}
		steps = append(steps, inner)
	})
	return steps, nil
}

// BuildDescription rebuilds the description HTML from a step list, the
// inverse of ParseDescription for well-formed input.
func BuildDescription(steps []string) string {
	var sb strings.Builder
	sb.WriteString("<ul>")
	for _, step := range steps {
		sb.WriteString("<li>")
		sb.WriteString(step)
		sb.WriteString("</li>")
	}
	sb.WriteString("</ul>")
	return sb.String()
}
