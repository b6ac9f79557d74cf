package feed

import (
	"encoding/xml"
	"fmt"
	"hash/fnv"
	"net/url"
	"regexp"
	"strconv"
	"strings"
)

const itunesNS = "http://www.itunes.com/dtds/podcast-1.0.dtd"

// Item is one episode entry extracted from a feed.
type Item struct {
	Title    string
	Duration string
	Filename string
	URL      string
}

// Channel is a parsed feed: the album title plus its items.
type Channel struct {
	Title string
	Items []Item
}

type rssDocument struct {
	Channel rssChannel `xml:"channel"`
}

type rssChannel struct {
	Title string    `xml:"title"`
	Items []rssItem `xml:"item"`
}

type rssItem struct {
	Title       string         `xml:"title"`
	Description string         `xml:"description"`
	Link        string         `xml:"link"`
	Durations   []durationTag  `xml:"duration"`
	Enclosures  []rssEnclosure `xml:"enclosure"`
}

// durationTag keeps the element's namespace so plain <duration> and
// <itunes:duration> can be told apart after unmarshaling.
type durationTag struct {
	XMLName xml.Name
	Value   string `xml:",chardata"`
}

type rssEnclosure struct {
	URL  string `xml:"url,attr"`
	Type string `xml:"type,attr"`
}

var (
	descriptionDuration = regexp.MustCompile(`时长[:：]\s*(\d+[:：]\d+(:\d+)?|\d+)`)
	titleDuration       = regexp.MustCompile(`\[(\d+[:：]\d+(:\d+)?|\d+)\]`)
)

// Parse decodes a podcast RSS document.
func Parse(data []byte) (*Channel, error) {
	var doc rssDocument
	if err := xml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse rss: %w", err)
	}

	channel := &Channel{Title: strings.TrimSpace(doc.Channel.Title)}
	for i, item := range doc.Channel.Items {
		title := strings.TrimSpace(item.Title)
		if title == "" {
			title = fmt.Sprintf("未命名单集_%d", i+1)
		}
		channel.Items = append(channel.Items, Item{
			Title:    title,
			Duration: itemDuration(item),
			Filename: episodeFilename(title, i),
			URL:      itemURL(item),
		})
	}
	return channel, nil
}

// itemDuration walks the duration sources in priority order.
func itemDuration(item rssItem) string {
	var plain, itunes string
	for _, tag := range item.Durations {
		value := strings.TrimSpace(tag.Value)
		if value == "" {
			continue
		}
		switch tag.XMLName.Space {
		case itunesNS:
			if itunes == "" {
				itunes = value
			}
		default:
			if plain == "" {
				plain = value
			}
		}
	}
	if plain != "" {
		return FormatDuration(plain)
	}
	if itunes != "" {
		return FormatDuration(itunes)
	}

	if desc := strings.TrimSpace(item.Description); desc != "" {
		if m := descriptionDuration.FindStringSubmatch(desc); m != nil {
			return FormatDuration(m[1])
		}
	}
	if title := strings.TrimSpace(item.Title); title != "" {
		if m := titleDuration.FindStringSubmatch(title); m != nil {
			return FormatDuration(m[1])
		}
	}
	return ""
}

// FormatDuration normalizes a duration string. Bare seconds become H:MM:SS,
// MM:SS gains a zero hour field, HH:MM:SS is zero-padded. Anything else is
// returned untouched.
func FormatDuration(raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return ""
	}

	if seconds, err := strconv.Atoi(raw); err == nil && seconds >= 0 {
		return fmt.Sprintf("%d:%02d:%02d", seconds/3600, seconds%3600/60, seconds%60)
	}

	parts := strings.Split(raw, ":")
	switch len(parts) {
	case 2:
		minutes, errM := strconv.Atoi(parts[0])
		seconds, errS := strconv.Atoi(parts[1])
		if errM == nil && errS == nil {
			return fmt.Sprintf("00:%02d:%02d", minutes, seconds)
		}
	case 3:
		hours, errH := strconv.Atoi(parts[0])
		minutes, errM := strconv.Atoi(parts[1])
		seconds, errS := strconv.Atoi(parts[2])
		if errH == nil && errM == nil && errS == nil {
			return fmt.Sprintf("%02d:%02d:%02d", hours, minutes, seconds)
		}
	}
	return raw
}

// itemURL prefers an audio enclosure with a full URL, then falls back to the
// item link.
func itemURL(item rssItem) string {
	for _, enc := range item.Enclosures {
		if enc.URL == "" || !strings.HasPrefix(enc.Type, "audio/") {
			continue
		}
		parsed, err := url.Parse(enc.URL)
		if err != nil || parsed.Scheme == "" || parsed.Host == "" {
			continue
		}
		return enc.URL
	}
	return strings.TrimSpace(item.Link)
}

// episodeFilename derives a stable synthetic filename for a feed item. The
// feed carries no filenames, so a title hash keeps the value unique per
// episode while staying reproducible across fetches.
func episodeFilename(title string, index int) string {
	h := fnv.New32a()
	_, _ = h.Write([]byte(title))
	return fmt.Sprintf("episode_%d_%d.mp3", h.Sum32(), index+1)
}
