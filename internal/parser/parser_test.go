package parser_test

import (
	"testing"
	"time"

	"kaset_news/internal/models"
	"kaset_news/internal/parser"

	"github.com/stretchr/testify/require"
)

const fullFeed = `<?xml version="1.0" encoding="UTF-8"?>
<rss version="2.0" xmlns:media="http://search.yahoo.com/mrss/" xmlns:content="http://purl.org/rss/1.0/modules/content/">
<channel>
	<title>AgTech</title>
	<item>
		<title>Drones over rice fields</title>
		<link>https://example.com/drones</link>
		<guid isPermaLink="false">drones-1</guid>
		<pubDate>Wed, 03 Jan 2024 10:00:00 +0000</pubDate>
		<description><![CDATA[<p>Spraying <img class="x" src="https://img.example/a.jpg" alt=""> at scale</p>]]></description>
		<category>Drones</category>
		<category>Rice</category>
		<category>Drones</category>
		<enclosure url="https://img.example/b.jpg" type="image/jpeg" length="1"/>
		<content:encoded><![CDATA[<p>full text</p>]]></content:encoded>
	</item>
	<item>
		<title>Soil sensors</title>
		<link>https://example.com/soil</link>
		<pubDate>Mon, 01 Jan 2024 08:00:00 +0000</pubDate>
		<description>Moisture &amp; nitrogen</description>
	</item>
</channel>
</rss>`

func TestDecode_FullItem(t *testing.T) {
	articles, err := parser.New().Decode([]byte(fullFeed), "AgFunderNews")
	require.NoError(t, err)
	require.Len(t, articles, 2)

	first := articles[0]
	require.Equal(t, "Drones over rice fields", first.Title)
	require.Equal(t, "https://example.com/drones", first.Link)
	require.Equal(t, "drones-1", first.GUID)
	require.Equal(t, "Wed, 03 Jan 2024 10:00:00 +0000", first.PublishedAt)
	require.True(t, first.Published.Equal(time.Date(2024, 1, 3, 10, 0, 0, 0, time.UTC)))
	require.Equal(t, `<p>Spraying <img class="x" src="https://img.example/a.jpg" alt=""> at scale</p>`, first.DescriptionHTML)
	require.Equal(t, []string{"Drones", "Rice", "Drones"}, first.Categories)
	require.Equal(t, "https://img.example/a.jpg", first.ImageURL)
	require.Equal(t, "AgFunderNews", first.Source)

	second := articles[1]
	require.Equal(t, "Soil sensors", second.Title)
	require.Empty(t, second.GUID, "missing tag becomes an empty string")
	require.Equal(t, "Moisture & nitrogen", second.DescriptionHTML)
	require.Empty(t, second.ImageURL)
	require.NotNil(t, second.Categories)
	require.Empty(t, second.Categories)
}

func TestDecode_ImagePriority(t *testing.T) {
	tests := []struct {
		name  string
		item  string
		image string
	}{
		{
			name: "description image wins over enclosure",
			item: `<description>&lt;img src="A"&gt;</description>
				<enclosure url="B" type="image/jpeg"/>`,
			image: "A",
		},
		{
			name:  "enclosure only",
			item:  `<description>no picture</description><enclosure url="B" type="image/jpeg"/>`,
			image: "B",
		},
		{
			name:  "enclosure that is not an image",
			item:  `<enclosure url="B.mp3" type="audio/mpeg"/><media:content url="C" type="image/png"/>`,
			image: "C",
		},
		{
			name:  "media content",
			item:  `<media:content url="C" type="image/webp" medium="image"/>`,
			image: "C",
		},
		{
			name:  "bare content element",
			item:  `<content url="D" type="image/jpeg"/>`,
			image: "D",
		},
		{
			name:  "media group",
			item:  `<media:group><media:content url="video.mp4" type="video/mp4"/><media:content url="E" type="image/jpeg"/></media:group>`,
			image: "E",
		},
		{
			name:  "media content with image medium and no type",
			item:  `<media:content url="G" medium="image"/>`,
			image: "G",
		},
		{
			name:  "media content without image type",
			item:  `<media:content url="F" type="video/mp4"/>`,
			image: "",
		},
		{
			name:  "nothing",
			item:  `<title>plain</title>`,
			image: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := `<rss version="2.0" xmlns:media="http://search.yahoo.com/mrss/"><channel><item>` + tt.item + `</item></channel></rss>`
			articles, err := parser.New().Decode([]byte(doc), "src")
			require.NoError(t, err)
			require.Len(t, articles, 1)
			require.Equal(t, tt.image, articles[0].ImageURL)
		})
	}
}

func TestDecode_Failures(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{name: "garbage", raw: "this is not xml at all"},
		{name: "html error page", raw: "<html><body><h1>502 Bad Gateway</h1></body></html>"},
		{name: "truncated", raw: `<rss version="2.0"><channel><item><title>cut`},
		{name: "mismatched tags", raw: `<rss><channel><item><title>x</link></item></channel></rss>`},
		{name: "atom", raw: `<feed xmlns="http://www.w3.org/2005/Atom"><entry><title>x</title></entry></feed>`},
		{name: "json feed", raw: `{"version": "https://jsonfeed.org/version/1"}`},
		{name: "empty", raw: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var articles []models.Article
			var err error
			require.NotPanics(t, func() {
				articles, err = parser.New().Decode([]byte(tt.raw), "src")
			})
			require.Error(t, err)
			require.Nil(t, articles)
		})
	}
}

func TestDecode_NotRSS(t *testing.T) {
	_, err := parser.New().Decode([]byte(`<feed xmlns="http://www.w3.org/2005/Atom"></feed>`), "src")
	require.ErrorIs(t, err, parser.ErrNotRSS)
}

func TestDecode_BrokenLaterItemDiscardsEverything(t *testing.T) {
	raw := `<rss><channel>
		<item><title>good</title></item>
		<item><title>bad</item>
	</channel></rss>`
	articles, err := parser.New().Decode([]byte(raw), "src")
	require.Error(t, err)
	require.Nil(t, articles)
}

func TestDecode_EmptyChannel(t *testing.T) {
	articles, err := parser.New().Decode([]byte(`<rss version="2.0"><channel><title>x</title></channel></rss>`), "src")
	require.NoError(t, err)
	require.Empty(t, articles)
}

func TestDecode_RDFItems(t *testing.T) {
	raw := `<?xml version="1.0"?>
<rdf:RDF xmlns:rdf="http://www.w3.org/1999/02/22-rdf-syntax-ns#" xmlns="http://purl.org/rss/1.0/">
	<channel><title>x</title></channel>
	<item><title>one</title><link>https://example.com/1</link></item>
	<item><title>two</title><link>https://example.com/2</link></item>
</rdf:RDF>`
	articles, err := parser.New().Decode([]byte(raw), "src")
	require.NoError(t, err)
	require.Len(t, articles, 2)
	require.Equal(t, "one", articles[0].Title)
	require.Equal(t, "two", articles[1].Title)
}

func TestDecode_HTMLEntitiesAndBOM(t *testing.T) {
	raw := "\xef\xbb\xbf" + `<rss><channel><item><title>Farm&nbsp;news &mdash; today</title></item></channel></rss>`
	articles, err := parser.New().Decode([]byte(raw), "src")
	require.NoError(t, err)
	require.Len(t, articles, 1)
	require.Equal(t, "Farm\u00a0news — today", articles[0].Title)
}

func TestDecode_Latin1Charset(t *testing.T) {
	raw := append([]byte(`<?xml version="1.0" encoding="ISO-8859-1"?><rss><channel><item><title>Caf`), 0xe9)
	raw = append(raw, []byte(`</title></item></channel></rss>`)...)
	articles, err := parser.New().Decode(raw, "src")
	require.NoError(t, err)
	require.Equal(t, "Café", articles[0].Title)
}

func TestNew_CustomChain(t *testing.T) {
	always := func(*models.Item) string { return "fixed.png" }
	p := parser.New(parser.ImageFromEnclosure, always)

	doc := `<rss><channel><item><description>&lt;img src="A"&gt;</description></item></channel></rss>`
	articles, err := p.Decode([]byte(doc), "src")
	require.NoError(t, err)
	require.Equal(t, "fixed.png", articles[0].ImageURL)
}
