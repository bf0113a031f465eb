package news

import (
	"context"
	"fmt"
	"unicode/utf8"

	"github.com/mmcdole/gofeed"
)

// DefaultFeedURL is the world-news wire the game reads when nothing
// else is configured.
const DefaultFeedURL = "http://feeds.bbci.co.uk/news/world/rss.xml"

const maxDescriptionLen = 200

// Headline is one raw feed item before classification.
type Headline struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

// Fetcher pulls raw headlines from a wire.
type Fetcher interface {
	FetchHeadlines(ctx context.Context, limit int) ([]Headline, error)
}

// FeedFetcher reads an RSS feed.
type FeedFetcher struct {
	url    string
	parser *gofeed.Parser
}

func NewFeedFetcher(url string) *FeedFetcher {
	if url == "" {
		url = DefaultFeedURL
	}
	return &FeedFetcher{url: url, parser: gofeed.NewParser()}
}

func (f *FeedFetcher) FetchHeadlines(ctx context.Context, limit int) ([]Headline, error) {
	feed, err := f.parser.ParseURLWithContext(f.url, ctx)
	if err != nil {
		return nil, fmt.Errorf("fetch feed %s: %w", f.url, err)
	}

	headlines := make([]Headline, 0, limit)
	for _, item := range feed.Items {
		if item.Title == "" {
			continue
		}
		headlines = append(headlines, Headline{Title: item.Title, Description: truncate(item.Description, maxDescriptionLen)})
		if limit > 0 && len(headlines) >= limit {
			break
		}
	}
	return headlines, nil
}

// truncate caps s at max bytes without splitting a rune.
func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	cut := max
	for cut > 0 && !utf8.RuneStart(s[cut]) {
		cut--
	}
	return s[:cut]
}
