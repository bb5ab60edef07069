// Package view maps pipeline outcomes to what the pages render: a spinner,
// an error panel or a grid of cards.
package view

import (
	"errors"

	"kaset_news/internal/aggregator"
	"kaset_news/internal/models"
)

type Status string

const (
	StatusIdle    Status = "idle"
	StatusLoading Status = "loading"
	StatusSuccess Status = "success"
	StatusFailure Status = "failure"
)

// User-facing texts.
const (
	LoadingMessage        = "กำลังดึงข้อมูลข่าวสารล่าสุด..."
	ErrorTitle            = "เกิดข้อผิดพลาด"
	FailureMessage        = "ไม่สามารถดึงข้อมูลข่าวสารจากแหล่งข้อมูลใดๆ ได้"
	GenericFailureMessage = "เกิดข้อผิดพลาดในการดึงข้อมูลข่าวสาร"
)

// PlaceholderImage is shown when an article has no resolvable thumbnail.
const PlaceholderImage = "https://images.unsplash.com/photo-1586766418252-446cf6345997?q=80&w=800&auto=format&fit=crop"

// Card is one rendered article.
type Card struct {
	Key        string   `json:"key"`
	Source     string   `json:"source"`
	Date       string   `json:"date"`
	PubDate    string   `json:"pub_date"`
	Title      string   `json:"title"`
	Excerpt    string   `json:"excerpt"`
	ImageURL   string   `json:"image_url"`
	HasImage   bool     `json:"has_image"`
	Link       string   `json:"link"`
	Categories []string `json:"categories"`
}

// State is the renderable outcome of one pipeline invocation.
type State struct {
	Status   Status `json:"status"`
	Articles []Card `json:"articles,omitempty"`
	Message  string `json:"message,omitempty"`
}

// Card renders a single article.
func (p *Presenter) Card(a models.Article) Card {
	img := a.ImageURL
	if img == "" {
		img = PlaceholderImage
	}
	return Card{
		Key:        a.Key(),
		Source:     a.Source,
		Date:       p.FormatDate(a.PublishedAt),
		PubDate:    a.PublishedAt,
		Title:      a.Title,
		Excerpt:    Excerpt(a.DescriptionHTML),
		ImageURL:   img,
		HasImage:   a.HasImage(),
		Link:       a.Link,
		Categories: a.Categories,
	}
}

// Success renders a populated grid.
func (p *Presenter) Success(articles []models.Article) State {
	cards := make([]Card, 0, len(articles))
	for _, a := range articles {
		cards = append(cards, p.Card(a))
	}
	return State{Status: StatusSuccess, Articles: cards}
}

// Failure maps a pipeline error to the single message users get to see.
func Failure(err error) State {
	msg := GenericFailureMessage
	if errors.Is(err, aggregator.ErrNoArticles) {
		msg = FailureMessage
	}
	return State{Status: StatusFailure, Message: msg}
}

// Loading is the state shown while a run is in flight.
func Loading() State {
	return State{Status: StatusLoading, Message: LoadingMessage}
}
