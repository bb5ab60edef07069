// Package parser turns raw RSS documents into articles.
package parser

import (
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"io"

	"kaset_news/internal/models"

	"github.com/mmcdole/gofeed"
	"golang.org/x/net/html/charset"
)

// ErrNotRSS is returned for documents that are not RSS (Atom, JSON Feed,
// HTML error pages, garbage).
var ErrNotRSS = errors.New("document is not an RSS feed")

var utf8BOM = []byte("\xef\xbb\xbf")

// Parser extracts articles from one source's raw feed text.
type Parser struct {
	images []ImageExtractor
}

// New returns a Parser using the given image strategies in order, or
// DefaultImageChain when none are given.
func New(images ...ImageExtractor) *Parser {
	if len(images) == 0 {
		images = DefaultImageChain
	}
	return &Parser{images: images}
}

// Decode parses raw and returns the articles in document order. Any XML error
// discards the whole document; there is no partial recovery. Panics inside the
// decoder are returned as errors.
func (p *Parser) Decode(raw []byte, source string) (articles []models.Article, err error) {
	defer func() {
		if r := recover(); r != nil {
			articles, err = nil, fmt.Errorf("parser panic: %v", r)
		}
	}()

	raw = bytes.TrimPrefix(raw, utf8BOM)
	if kind := gofeed.DetectFeedType(bytes.NewReader(raw)); kind != gofeed.FeedTypeRSS {
		return nil, fmt.Errorf("%w (detected %s)", ErrNotRSS, feedTypeName(kind))
	}

	dec := xml.NewDecoder(bytes.NewReader(raw))
	dec.Entity = xml.HTMLEntity
	dec.CharsetReader = charset.NewReaderLabel

	articles = []models.Article{}
	for {
		tok, err := dec.Token()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("xml parse: %w", err)
		}

		start, ok := tok.(xml.StartElement)
		if !ok || start.Name.Local != "item" {
			continue
		}

		var item models.Item
		if err := dec.DecodeElement(&item, &start); err != nil {
			return nil, fmt.Errorf("xml parse item %d: %w", len(articles)+1, err)
		}
		articles = append(articles, p.article(&item, source))
	}
	return articles, nil
}

func (p *Parser) article(item *models.Item, source string) models.Article {
	published, _ := ParseDate(item.PubDate())

	categories := make([]string, len(item.Categories))
	copy(categories, item.Categories)

	return models.Article{
		Title:           item.Title(),
		PublishedAt:     item.PubDate(),
		Published:       published,
		Link:            item.Link(),
		GUID:            item.GUID(),
		DescriptionHTML: item.Description(),
		Categories:      categories,
		ImageURL:        ResolveImage(item, p.images),
		Source:          source,
	}
}

func feedTypeName(t gofeed.FeedType) string {
	switch t {
	case gofeed.FeedTypeAtom:
		return "atom"
	case gofeed.FeedTypeJSON:
		return "json"
	case gofeed.FeedTypeRSS:
		return "rss"
	default:
		return "unknown"
	}
}
