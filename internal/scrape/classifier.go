package scrape

import (
	"net/url"
	"regexp"
	"strings"
)

// nonArticleSegments mark landing, live, and media pages that must not
// be treated as articles.
var nonArticleSegments = []string{
	"/live/", "/av/", "/video/", "/tv/", "/sounds/", "/topics/", "/in_pictures", "/special/",
}

var (
	opaqueIDExpr = regexp.MustCompile(`^/news/articles/[a-z0-9]+$`)
	legacyIDExpr = regexp.MustCompile(`^/news/[^/]+-(\d+)$`)
)

// Classifier decides whether a URL denotes a single article page on the
// target site, as opposed to a section landing, live, or media page.
type Classifier struct {
	newsPrefix string
}

// NewClassifier builds a classifier for the given site base URL,
// e.g. "https://www.bbc.com".
func NewClassifier(baseURL string) *Classifier {
	return &Classifier{newsPrefix: strings.TrimSuffix(baseURL, "/") + "/news"}
}

// Classify reports whether rawURL looks like a real article page.
// It is a pure, total function: malformed input is rejected, never an error.
//
// Accepted shapes:
//
//	/news/articles/<id>      id = one or more lowercase alphanumerics
//	/news/<slug>-<digits>    legacy convention, slug must end in digits
func (c *Classifier) Classify(rawURL string) bool {
	if !strings.HasPrefix(rawURL, c.newsPrefix) {
		return false
	}

	for _, segment := range nonArticleSegments {
		if strings.Contains(rawURL, segment) {
			return false
		}
	}

	parsed, err := url.Parse(rawURL)
	if err != nil {
		return false
	}
	path := parsed.Path

	if opaqueIDExpr.MatchString(path) {
		return true
	}
	if legacyIDExpr.MatchString(path) {
		return true
	}

	return false
}

// ArticleID derives a stable identifier from an article URL, used to
// address the persisted raw document. For the opaque convention it is
// the trailing id, for the legacy one the digit run; otherwise the last
// path segment.
func (c *Classifier) ArticleID(rawURL string) string {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return "article"
	}
	path := parsed.Path

	if strings.HasPrefix(path, "/news/articles/") {
		if id := strings.Trim(strings.TrimPrefix(path, "/news/articles/"), "/"); id != "" {
			return id
		}
	}

	if m := legacyIDExpr.FindStringSubmatch(path); m != nil {
		return m[1]
	}

	segments := strings.Split(strings.Trim(path, "/"), "/")
	if last := segments[len(segments)-1]; last != "" {
		return last
	}
	return "article"
}
