package view

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"kaset_news/internal/parser"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/text/language"
)

var supported = language.NewMatcher([]language.Tag{language.Thai, language.English})

// bangkok is fixed at UTC+7; Thailand has no daylight saving.
var bangkok = time.FixedZone("ICT", 7*60*60)

var thaiMonths = [...]string{
	"ม.ค.", "ก.พ.", "มี.ค.", "เม.ย.", "พ.ค.", "มิ.ย.",
	"ก.ค.", "ส.ค.", "ก.ย.", "ต.ค.", "พ.ย.", "ธ.ค.",
}

// Presenter formats articles for one locale.
type Presenter struct {
	thai bool
	loc  *time.Location
}

// NewPresenter picks Thai or English formatting for locale; anything
// unrecognised falls back to Thai.
func NewPresenter(locale string) *Presenter {
	tag, err := language.Parse(locale)
	if err != nil {
		tag = language.Thai
	}
	_, idx, _ := supported.Match(tag)
	return &Presenter{thai: idx == 0, loc: bangkok}
}

// FormatDate renders a feed date as a short local date, e.g. "3 ม.ค. 2567"
// (Buddhist era) or "Jan 3, 2024". Unparsable input is returned unchanged.
func (p *Presenter) FormatDate(raw string) string {
	t, ok := parser.ParseDate(raw)
	if !ok {
		return raw
	}
	t = t.In(p.loc)
	if p.thai {
		return fmt.Sprintf("%d %s %d", t.Day(), thaiMonths[t.Month()-1], t.Year()+543)
	}
	return t.Format("Jan 2, 2006")
}

var leftoverTag = regexp.MustCompile(`<[^>]*>?`)

// Excerpt returns the text content of an HTML snippet with whitespace
// collapsed. Length is left to the layout.
func Excerpt(html string) string {
	if strings.TrimSpace(html) == "" {
		return ""
	}
	text := html
	if doc, err := goquery.NewDocumentFromReader(strings.NewReader(html)); err == nil {
		text = doc.Text()
	}
	text = leftoverTag.ReplaceAllString(text, "")
	return strings.Join(strings.Fields(text), " ")
}
