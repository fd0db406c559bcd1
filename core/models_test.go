package core

import (
	"testing"
)

func TestIDFromContent(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{name: "plain query", content: "image tools"},
		{name: "empty string", content: ""},
		{name: "multibyte content", content: "画像 生成 ツール"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			id1 := IDFromContent(tt.content)
			id2 := IDFromContent(tt.content)

			if id1 != id2 {
				t.Errorf("IDFromContent() produced different IDs for same content: %d vs %d", id1, id2)
			}
		})
	}
}

func TestIDFromContent_Different(t *testing.T) {
	id1 := IDFromContent("chatgpt")
	id2 := IDFromContent("dall-e")

	if id1 == id2 {
		t.Errorf("IDFromContent() produced same ID for different content")
	}
}

func TestCategory_Valid(t *testing.T) {
	for _, c := range Categories {
		if !c.Valid() {
			t.Errorf("Category(%q).Valid() = false, want true", c)
		}
	}

	for _, c := range []Category{"", "Text", "music", "other "} {
		if c.Valid() {
			t.Errorf("Category(%q).Valid() = true, want false", c)
		}
	}
}

func TestDateBucket_MaxDays(t *testing.T) {
	tests := []struct {
		bucket DateBucket
		want   int
		ok     bool
	}{
		{DateBucketRecent, 7, true},
		{DateBucketLastWeek, 7, true},
		{DateBucketLastMonth, 30, true},
		{DateBucketLastYear, 365, true},
		{DateBucket("yesterday"), 0, false},
		{DateBucket(""), 0, false},
	}

	for _, tt := range tests {
		t.Run(string(tt.bucket), func(t *testing.T) {
			got, ok := tt.bucket.MaxDays()
			if got != tt.want || ok != tt.ok {
				t.Errorf("MaxDays() = (%d, %v), want (%d, %v)", got, ok, tt.want, tt.ok)
			}
			if tt.bucket.Valid() != tt.ok {
				t.Errorf("Valid() = %v, want %v", tt.bucket.Valid(), tt.ok)
			}
		})
	}
}
