package models

import "time"

// FeedSource is a named RSS endpoint, fixed at startup.
type FeedSource struct {
	Name string `json:"name"`
	URL  string `json:"url"`
}

// Article is a single story taken from one feed.
type Article struct {
	Title           string    `json:"title"`
	PublishedAt     string    `json:"pub_date"`
	Published       time.Time `json:"-"`
	Link            string    `json:"link"`
	GUID            string    `json:"guid"`
	DescriptionHTML string    `json:"description"`
	Categories      []string  `json:"categories"`
	ImageURL        string    `json:"image_url,omitempty"`
	Source          string    `json:"source"`
}

// Key identifies the article across feeds. A guid alone is not unique once
// several feeds are merged, so the source name is part of it.
func (a Article) Key() string {
	id := a.GUID
	if id == "" {
		id = a.Link
	}
	return a.Source + "|" + id
}

// HasImage reports whether the fallback chain resolved a thumbnail.
func (a Article) HasImage() bool {
	return a.ImageURL != ""
}
