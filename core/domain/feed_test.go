package domain

import (
	"testing"
	"unicode/utf8"
)

func TestFeed_Validate(t *testing.T) {
	tests := []struct {
		name    string
		feed    Feed
		wantErr bool
	}{
		{"valid feed", Feed{Name: "BBC", URL: "https://feeds.bbci.co.uk/news/rss.xml"}, false},
		{"empty name", Feed{Name: " ", URL: "https://example.com/rss"}, true},
		{"empty url", Feed{Name: "Example"}, true},
		{"relative url", Feed{Name: "Example", URL: "/rss.xml"}, true},
		{"unsupported scheme", Feed{Name: "Example", URL: "ftp://example.com/rss"}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.feed.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestNormalizeCategory(t *testing.T) {
	tests := map[string]string{
		"":                 "General",
		"   ":              "General",
		"technology":       "Technology",
		"  WORLD   news  ": "World News",
		"économie":         "Économie",
		"ÉCONOMIE":         "Économie",
		"日本":               "日本",
		"ciencia y salud":  "Ciencia Y Salud",
	}

	for in, want := range tests {
		got := NormalizeCategory(in)
		if got != want {
			t.Errorf("NormalizeCategory(%q) = %q, want %q", in, got, want)
		}
		if !utf8.ValidString(got) {
			t.Errorf("NormalizeCategory(%q) returned invalid UTF-8 %q", in, got)
		}
	}
}

func TestNormalizeURL(t *testing.T) {
	if NormalizeURL("https://Example.com/feed/") != NormalizeURL("https://example.com/feed") {
		t.Error("NormalizeURL should ignore case and trailing slash")
	}
}
