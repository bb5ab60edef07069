package models

import (
	"encoding/xml"
	"strings"
)

// Item is one <item> element of an RSS document. Scalar tags are kept as
// slices so that the first occurrence can be picked, the way a tag lookup on
// the element would.
type Item struct {
	Titles       []string       `xml:"title"`
	Descriptions []string       `xml:"description"`
	PubDates     []string       `xml:"pubDate"`
	Links        []string       `xml:"link"`
	GUIDs        []string       `xml:"guid"`
	Categories   []string       `xml:"category"`
	Enclosures   []Enclosure    `xml:"enclosure"`
	Contents     []MediaContent `xml:"content"`
	Groups       []MediaGroup   `xml:"group"`
}

// Enclosure is a media resource attached to an item.
type Enclosure struct {
	URL  string `xml:"url,attr"`
	Type string `xml:"type,attr"`
}

// MediaContent matches <media:content> as well as a bare <content> element.
type MediaContent struct {
	XMLName xml.Name
	URL     string `xml:"url,attr"`
	Type    string `xml:"type,attr"`
	Medium  string `xml:"medium,attr"`
}

// MediaGroup is <media:group>, which wraps alternative renditions.
type MediaGroup struct {
	Contents []MediaContent `xml:"content"`
}

// MediaNamespace is the Media RSS namespace URI.
const MediaNamespace = "http://search.yahoo.com/mrss/"

// IsMedia reports whether the element lives in the media namespace or has no
// namespace at all. An undeclared "media:" prefix is kept verbatim by the decoder.
func (m MediaContent) IsMedia() bool {
	switch strings.TrimSuffix(m.XMLName.Space, "/") {
	case "", "media", strings.TrimSuffix(MediaNamespace, "/"):
		return true
	}
	return false
}

// Title, Description, PubDate, Link and GUID return the first occurrence of
// the element, trimmed, or "" when the item has none.
func (it *Item) Title() string       { return first(it.Titles) }
func (it *Item) Description() string { return first(it.Descriptions) }
func (it *Item) PubDate() string     { return first(it.PubDates) }
func (it *Item) Link() string        { return first(it.Links) }
func (it *Item) GUID() string        { return first(it.GUIDs) }

func first(values []string) string {
	if len(values) == 0 {
		return ""
	}
	return strings.TrimSpace(values[0])
}
