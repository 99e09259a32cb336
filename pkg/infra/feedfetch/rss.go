package feedfetch

import (
	"encoding/xml"
	"fmt"
	"strings"
	"time"
)

// Entry is a source-format-neutral feed entry.
type Entry struct {
	Title     string
	Link      string
	StableID  string
	Summary   string
	Published *time.Time
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
	GUID        string `xml:"guid"`
	Description string `xml:"description"`
	PubDate     string `xml:"pubDate"`
}

type atomDocument struct {
	XMLName xml.Name    `xml:"feed"`
	Entries []atomEntry `xml:"entry"`
}

type atomEntry struct {
	ID        string     `xml:"id"`
	Title     string     `xml:"title"`
	Links     []atomLink `xml:"link"`
	Summary   string     `xml:"summary"`
	Content   string     `xml:"content"`
	Published string     `xml:"published"`
	Updated   string     `xml:"updated"`
}

type atomLink struct {
	Rel  string `xml:"rel,attr"`
	Href string `xml:"href,attr"`
}

var pubDateLayouts = []string{
	time.RFC1123Z,
	time.RFC1123,
	time.RFC822Z,
	time.RFC822,
	time.RFC3339,
	"2006-01-02T15:04:05Z0700",
}

// Parse decodes an RSS 2.0 or Atom document into entries. The format is
// decided by the root element.
func Parse(body []byte) ([]Entry, error) {
	var rss rssDocument
	if err := xml.Unmarshal(body, &rss); err == nil {
		return fromRSS(rss), nil
	}

	var atom atomDocument
	if err := xml.Unmarshal(body, &atom); err == nil {
		return fromAtom(atom), nil
	}

	return nil, fmt.Errorf("document is neither rss nor atom")
}

func fromRSS(doc rssDocument) []Entry {
	entries := make([]Entry, 0, len(doc.Channel.Items))
	for _, item := range doc.Channel.Items {
		entries = append(entries, Entry{
			Title:     strings.TrimSpace(item.Title),
			Link:      strings.TrimSpace(item.Link),
			StableID:  stableID(item.GUID, item.Link, item.Title),
			Summary:   item.Description,
			Published: parsePubDate(item.PubDate),
		})
	}
	return entries
}

func fromAtom(doc atomDocument) []Entry {
	entries := make([]Entry, 0, len(doc.Entries))
	for _, entry := range doc.Entries {
		summary := entry.Summary
		if summary == "" {
			summary = entry.Content
		}
		published := entry.Published
		if published == "" {
			published = entry.Updated
		}
		entries = append(entries, Entry{
			Title:     strings.TrimSpace(entry.Title),
			Link:      atomAlternateLink(entry.Links),
			StableID:  stableID(entry.ID, atomAlternateLink(entry.Links), entry.Title),
			Summary:   summary,
			Published: parsePubDate(published),
		})
	}
	return entries
}

func atomAlternateLink(links []atomLink) string {
	for _, link := range links {
		if link.Rel == "" || link.Rel == "alternate" {
			return strings.TrimSpace(link.Href)
		}
	}
	if len(links) > 0 {
		return strings.TrimSpace(links[0].Href)
	}
	return ""
}

// stableID picks the first non-empty identity candidate, matching the
// dedup key derivation used at import time.
func stableID(candidates ...string) string {
	for _, c := range candidates {
		if trimmed := strings.TrimSpace(c); trimmed != "" {
			return trimmed
		}
	}
	return ""
}

func parsePubDate(value string) *time.Time {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil
	}
	for _, layout := range pubDateLayouts {
		if ts, err := time.Parse(layout, value); err == nil {
			utc := ts.UTC()
			return &utc
		}
	}
	return nil
}
