package parser

import (
	"regexp"
	"strings"

	"kaset_news/internal/models"
)

// ImageExtractor returns a thumbnail URL for the item, or "" when it has none.
type ImageExtractor func(item *models.Item) string

// DefaultImageChain is evaluated in order; the first non-empty URL wins.
var DefaultImageChain = []ImageExtractor{
	ImageFromDescription,
	ImageFromEnclosure,
	ImageFromMediaContent,
}

var imgSrc = regexp.MustCompile(`<img[^>]+src="([^">]+)"`)

// ResolveImage runs the chain against item.
func ResolveImage(item *models.Item, chain []ImageExtractor) string {
	for _, extract := range chain {
		if u := extract(item); u != "" {
			return u
		}
	}
	return ""
}

// ImageFromDescription picks the src of the first <img> in the description HTML.
func ImageFromDescription(item *models.Item) string {
	m := imgSrc.FindStringSubmatch(item.Description())
	if m == nil {
		return ""
	}
	return strings.TrimSpace(m[1])
}

// ImageFromEnclosure uses the first enclosure with an image/* type.
func ImageFromEnclosure(item *models.Item) string {
	for _, enc := range item.Enclosures {
		if isImageType(enc.Type) && enc.URL != "" {
			return strings.TrimSpace(enc.URL)
		}
	}
	return ""
}

// ImageFromMediaContent uses the first media:content (or bare content) with an
// image/* type or image medium, looking inside media:group after the direct
// children.
func ImageFromMediaContent(item *models.Item) string {
	contents := item.Contents
	for _, g := range item.Groups {
		contents = append(contents[:len(contents):len(contents)], g.Contents...)
	}
	for _, c := range contents {
		if !c.IsMedia() || c.URL == "" {
			continue
		}
		if isImageType(c.Type) || strings.EqualFold(strings.TrimSpace(c.Medium), "image") {
			return strings.TrimSpace(c.URL)
		}
	}
	return ""
}

func isImageType(t string) bool {
	return strings.HasPrefix(strings.ToLower(strings.TrimSpace(t)), "image/")
}
