package log

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"
)

func TestShorten(t *testing.T) {
	t.Parallel()

	t.Run("short strings pass through", func(t *testing.T) {
		t.Parallel()

		if got := Shorten("short", 58); got != "short" {
			t.Errorf("got %q", got)
		}
	})

	t.Run("long strings keep head and tail", func(t *testing.T) {
		t.Parallel()

		long := "https://www.gumtree.com.au/s-bikes/brisbane/page-17/c18922l3005721?pageSize=96"
		got := Shorten(long, 58)

		if len(got) > 58 {
			t.Errorf("result length %d exceeds limit", len(got))
		}
		if !strings.Contains(got, "...") {
			t.Errorf("expected ellipsis in %q", got)
		}
		if !strings.HasPrefix(got, "https://www.gumtree.com.au") {
			t.Errorf("head lost: %q", got)
		}
		if !strings.HasSuffix(got, "pageSize=96") {
			t.Errorf("tail lost: %q", got)
		}
	})

	t.Run("tiny limits leave the string alone", func(t *testing.T) {
		t.Parallel()

		if got := Shorten("abcdefgh", 4); got != "abcdefgh" {
			t.Errorf("got %q", got)
		}
	})
}

func TestTrimHandler(t *testing.T) {
	t.Parallel()

	longURL := "https://www.gumtree.com.au/s-ad/brisbane/bikes/a-very-long-descriptive-ad-slug-indeed/1310542676"

	t.Run("trims url attributes", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := slog.New(NewTrimHandler(slog.NewTextHandler(&buf, nil), 40))

		logger.Info("fetched", "url", longURL)

		out := buf.String()
		if strings.Contains(out, longURL) {
			t.Errorf("url was not trimmed: %s", out)
		}
		if !strings.Contains(out, "...") {
			t.Errorf("expected ellipsis in output: %s", out)
		}
	})

	t.Run("leaves other attributes untouched", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := slog.New(NewTrimHandler(slog.NewTextHandler(&buf, nil), 40))

		logger.Info("fetched", "message", longURL, "done", 3)

		if !strings.Contains(buf.String(), longURL) {
			t.Errorf("non-url attribute was trimmed: %s", buf.String())
		}
	})

	t.Run("respects level of underlying handler", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := NewProgressLogger(&buf, false)

		logger.Debug("hidden")
		logger.Info("visible")

		out := buf.String()
		if strings.Contains(out, "hidden") {
			t.Error("debug line should be suppressed without verbose")
		}
		if !strings.Contains(out, "visible") {
			t.Error("info line should be emitted")
		}
	})
}
