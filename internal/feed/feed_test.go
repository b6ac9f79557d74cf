package feed_test

import (
	"strings"
	"testing"

	"podtag/internal/feed"
)

const sampleFeed = `<?xml version="1.0" encoding="UTF-8"?>
<rss version="2.0" xmlns:itunes="http://www.itunes.com/dtds/podcast-1.0.dtd">
  <channel>
    <title>中国历史</title>
    <item>
      <title>第一集</title>
      <itunes:duration>3723</itunes:duration>
      <enclosure url="https://cdn.example.com/1.m4a" type="audio/x-m4a"/>
    </item>
    <item>
      <title>第二集</title>
      <duration>12:34</duration>
      <itunes:duration>999</itunes:duration>
      <enclosure url="not-a-url" type="audio/mpeg"/>
      <link>https://example.com/ep2</link>
    </item>
    <item>
      <title>第三集</title>
      <description>本集时长: 45:00，欢迎收听</description>
      <enclosure url="https://cdn.example.com/3.pdf" type="application/pdf"/>
      <link>https://example.com/ep3</link>
    </item>
    <item>
      <title>第四集 [1:30:00]</title>
    </item>
    <item>
      <title>   </title>
    </item>
  </channel>
</rss>`

func TestParse(t *testing.T) {
	channel, err := feed.Parse([]byte(sampleFeed))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if channel.Title != "中国历史" {
		t.Fatalf("channel title = %q", channel.Title)
	}
	if len(channel.Items) != 5 {
		t.Fatalf("item count = %d, want 5", len(channel.Items))
	}

	items := channel.Items
	if items[0].Duration != "1:02:03" {
		t.Errorf("itunes duration = %q, want 1:02:03", items[0].Duration)
	}
	if items[0].URL != "https://cdn.example.com/1.m4a" {
		t.Errorf("enclosure url = %q", items[0].URL)
	}

	// A plain <duration> wins over itunes:duration.
	if items[1].Duration != "00:12:34" {
		t.Errorf("plain duration = %q, want 00:12:34", items[1].Duration)
	}
	// An enclosure without a full URL falls back to the item link.
	if items[1].URL != "https://example.com/ep2" {
		t.Errorf("fallback url = %q", items[1].URL)
	}

	if items[2].Duration != "00:45:00" {
		t.Errorf("description duration = %q, want 00:45:00", items[2].Duration)
	}
	// Non-audio enclosures are ignored.
	if items[2].URL != "https://example.com/ep3" {
		t.Errorf("non-audio enclosure url = %q", items[2].URL)
	}

	if items[3].Duration != "01:30:00" {
		t.Errorf("title duration = %q, want 01:30:00", items[3].Duration)
	}
	if items[3].URL != "" {
		t.Errorf("missing url = %q, want empty", items[3].URL)
	}

	if items[4].Title != "未命名单集_5" {
		t.Errorf("blank title = %q", items[4].Title)
	}

	seen := map[string]bool{}
	for _, item := range items {
		if !strings.HasPrefix(item.Filename, "episode_") {
			t.Errorf("filename = %q, want episode_ prefix", item.Filename)
		}
		if seen[item.Filename] {
			t.Errorf("duplicate filename %q", item.Filename)
		}
		seen[item.Filename] = true
	}
}

func TestParseRejectsBrokenXML(t *testing.T) {
	if _, err := feed.Parse([]byte("<rss><channel>")); err == nil {
		t.Fatal("Parse accepted truncated XML")
	}
}

func TestFormatDuration(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"3723", "1:02:03"},
		{"300", "0:05:00"},
		{"0", "0:00:00"},
		{"12:34", "00:12:34"},
		{"1:2:3", "01:02:03"},
		{"01:02:03", "01:02:03"},
		{"abc", "abc"},
		{"12:xx", "12:xx"},
		{"", ""},
		{"  45:00  ", "00:45:00"},
	}
	for _, tc := range cases {
		if got := feed.FormatDuration(tc.in); got != tc.want {
			t.Errorf("FormatDuration(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}
