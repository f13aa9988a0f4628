package ingest

import (
	"encoding/xml"
	"strings"
	"time"
)

// FeedItem is one candidate topic pulled from a source feed.
type FeedItem struct {
	Title       string
	Link        string
	Summary     string
	PublishedAt time.Time
}

type rssDocument struct {
	XMLName xml.Name `xml:"rss"`
	Channel struct {
		Items []rssItem `xml:"item"`
	} `xml:"channel"`
}

type rssItem struct {
	Title       string `xml:"title"`
	Link        string `xml:"link"`
	Description string `xml:"description"`
	PubDate     string `xml:"pubDate"`
}

type atomDocument struct {
	XMLName xml.Name    `xml:"feed"`
	Entries []atomEntry `xml:"entry"`
}

type atomEntry struct {
	Title   string     `xml:"title"`
	Links   []atomLink `xml:"link"`
	Summary string     `xml:"summary"`
	Content string     `xml:"content"`
	Updated string     `xml:"updated"`
}

type atomLink struct {
	Rel  string `xml:"rel,attr"`
	Href string `xml:"href,attr"`
}

var itemDateLayouts = []string{
	time.RFC1123Z,
	time.RFC1123,
	time.RFC3339,
	"Mon, 2 Jan 2006 15:04:05 -0700",
}

// ParseFeed decodes an RSS or Atom document into feed items. The format is
// detected from the document, not the source type tag, since feeds lie.
func ParseFeed(body []byte) ([]FeedItem, error) {
	var rss rssDocument
	if err := xml.Unmarshal(body, &rss); err == nil && len(rss.Channel.Items) > 0 {
		items := make([]FeedItem, 0, len(rss.Channel.Items))
		for _, item := range rss.Channel.Items {
			items = append(items, FeedItem{
				Title:       strings.TrimSpace(item.Title),
				Link:        strings.TrimSpace(item.Link),
				Summary:     strings.TrimSpace(item.Description),
				PublishedAt: parseItemDate(item.PubDate),
			})
		}
		return items, nil
	}

	var atom atomDocument
	if err := xml.Unmarshal(body, &atom); err != nil {
		return nil, err
	}
	items := make([]FeedItem, 0, len(atom.Entries))
	for _, entry := range atom.Entries {
		summary := entry.Summary
		if summary == "" {
			summary = entry.Content
		}
		items = append(items, FeedItem{
			Title:       strings.TrimSpace(entry.Title),
			Link:        atomEntryLink(entry),
			Summary:     strings.TrimSpace(summary),
			PublishedAt: parseItemDate(entry.Updated),
		})
	}
	return items, nil
}

func atomEntryLink(entry atomEntry) string {
	for _, link := range entry.Links {
		if link.Rel == "" || link.Rel == "alternate" {
			return strings.TrimSpace(link.Href)
		}
	}
	if len(entry.Links) > 0 {
		return strings.TrimSpace(entry.Links[0].Href)
	}
	return ""
}

func parseItemDate(raw string) time.Time {
	raw = strings.TrimSpace(raw)
	for _, layout := range itemDateLayouts {
		if ts, err := time.Parse(layout, raw); err == nil {
			return ts
		}
	}
	return time.Time{}
}
