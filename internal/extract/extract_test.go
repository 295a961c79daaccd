package extract

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func serveHTML(t *testing.T, body string) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		fmt.Fprint(w, body)
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestExtractPrefersSiteSelectors(t *testing.T) {
	srv := serveHTML(t, `<html><body>
		<div class="zfr3Q">First content fragment here</div>
		<div class="zfr3Q">Second content fragment here</div>
		<p>Generic paragraph that should be ignored</p>
	</body></html>`)

	e := New(5 * time.Second)
	got := e.Extract(context.Background(), srv.URL)

	assert.Equal(t, "First content fragment here\n\nSecond content fragment here", got)
}

func TestExtractFiltersShortFragments(t *testing.T) {
	srv := serveHTML(t, `<html><body>
		<p>Hi</p>
		<p>A fragment long enough to keep</p>
	</body></html>`)

	e := New(5 * time.Second)
	got := e.Extract(context.Background(), srv.URL)

	assert.Equal(t, "A fragment long enough to keep", got)
}

func TestExtractCapsFragmentCount(t *testing.T) {
	var b strings.Builder
	b.WriteString("<html><body>")
	for i := 0; i < 30; i++ {
		fmt.Fprintf(&b, "<p>Paragraph number %02d with padding text</p>", i)
	}
	b.WriteString("</body></html>")
	srv := serveHTML(t, b.String())

	e := New(5 * time.Second)
	got := e.Extract(context.Background(), srv.URL)

	fragments := strings.Split(got, "\n\n")
	assert.Len(t, fragments, maxFragments)
	assert.Contains(t, fragments[0], "number 00")
}

func TestExtractFallbackIsBounded(t *testing.T) {
	long := strings.Repeat("lorem ipsum dolor sit amet ", 200)
	srv := serveHTML(t, "<html><body><span>"+long+"</span></body></html>")

	e := New(5 * time.Second)
	got := e.Extract(context.Background(), srv.URL)

	require.NotEmpty(t, got)
	assert.LessOrEqual(t, len(got), maxFallbackChars)
	assert.Contains(t, got, "lorem ipsum")
}

func TestExtractFallbackKeepsRunesIntact(t *testing.T) {
	long := strings.Repeat("日本語の内容 ", 200)
	srv := serveHTML(t, "<html><body><span>"+long+"</span></body></html>")

	e := New(5 * time.Second)
	got := e.Extract(context.Background(), srv.URL)

	assert.LessOrEqual(t, len(got), maxFallbackChars)
	assert.True(t, utf8.ValidString(got), "truncation must not split a rune")
}

func TestExtractNeverEmpty(t *testing.T) {
	srv := serveHTML(t, "<html><body></body></html>")

	e := New(5 * time.Second)
	got := e.Extract(context.Background(), srv.URL)

	assert.NotEmpty(t, got)
	assert.Contains(t, got, srv.URL)
}

func TestExtractRecoversHTTPError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	t.Cleanup(srv.Close)

	e := New(5 * time.Second)
	got := e.Extract(context.Background(), srv.URL)

	assert.Contains(t, got, "Unable to fetch content from "+srv.URL)
	assert.Contains(t, got, "500")
}

func TestExtractRecoversConnectionFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := srv.URL
	srv.Close()

	e := New(2 * time.Second)
	got := e.Extract(context.Background(), url)

	assert.Contains(t, got, "Unable to fetch content from "+url)
}
