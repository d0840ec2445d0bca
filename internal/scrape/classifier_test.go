package scrape

import "testing"

func TestClassify(t *testing.T) {
	t.Parallel()

	c := NewClassifier("https://example.com")

	cases := []struct {
		url  string
		want bool
	}{
		{"https://example.com/news/articles/abcd1234", true},
		{"https://example.com/news/world-europe-12345678", true},
		{"https://example.com/news/world", false},
		{"https://example.com/news/live/abcd", false},
		{"https://example.com/news/av/world-12345678", false},
		{"https://example.com/news/video/clip-12345678", false},
		{"https://example.com/news/topics/politics", false},
		{"https://example.com/news/in_pictures/gallery-12345678", false},
		{"https://example.com/sport/articles/abcd1234", false},
		{"https://example.com/news/articles/ABCD1234", false},
		{"https://example.com/news/world-europe-12345678/extra", false},
		{"https://example.com/news/world-europe", false},
		{"https://other.com/news/articles/abcd1234", false},
		{"", false},
		{"not a url at all", false},
	}

	for _, tc := range cases {
		if got := c.Classify(tc.url); got != tc.want {
			t.Errorf("Classify(%q) = %v, want %v", tc.url, got, tc.want)
		}
	}
}

func TestClassifyDeterministic(t *testing.T) {
	t.Parallel()

	c := NewClassifier("https://example.com")
	url := "https://example.com/news/articles/c62v7n9wzkyo"

	first := c.Classify(url)
	for i := 0; i < 10; i++ {
		if c.Classify(url) != first {
			t.Fatalf("Classify is not deterministic for %q", url)
		}
	}
}

func TestArticleID(t *testing.T) {
	t.Parallel()

	c := NewClassifier("https://example.com")

	cases := []struct {
		url  string
		want string
	}{
		{"https://example.com/news/articles/c62v7n9wzkyo", "c62v7n9wzkyo"},
		{"https://example.com/news/world-europe-12345678", "12345678"},
		{"https://example.com/news/something", "something"},
		{"https://example.com/", "article"},
	}

	for _, tc := range cases {
		if got := c.ArticleID(tc.url); got != tc.want {
			t.Errorf("ArticleID(%q) = %q, want %q", tc.url, got, tc.want)
		}
	}
}
