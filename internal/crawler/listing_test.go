package crawler

import (
	"testing"
)

func TestExtractListingURLs(t *testing.T) {
	t.Parallel()

	t.Run("resolves relative and absolute hrefs in document order", func(t *testing.T) {
		t.Parallel()

		page := []byte(`<html><body>
			<a class="ad-listing__title-link" itemprop="url" href="/s-ad/bikes/giant/111">Giant</a>
			<a class="other-link" href="/not-an-ad">ignored</a>
			<a class="ad-listing__title-link" itemprop="url" href="https://www.gumtree.com.au/s-ad/bikes/trek/222">Trek</a>
			<a class="ad-listing__title-link" href="/missing-itemprop/333">ignored</a>
		</body></html>`)

		urls, err := ExtractListingURLs(page, "https://www.gumtree.com.au/s-bikes/page-3/c18922")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		want := []string{
			"https://www.gumtree.com.au/s-ad/bikes/giant/111",
			"https://www.gumtree.com.au/s-ad/bikes/trek/222",
		}
		if len(urls) != len(want) {
			t.Fatalf("expected %d urls, got %d: %v", len(want), len(urls), urls)
		}
		for i := range want {
			if urls[i] != want[i] {
				t.Errorf("url %d: got %q, want %q", i, urls[i], want[i])
			}
		}
	})

	t.Run("keeps duplicates", func(t *testing.T) {
		t.Parallel()

		page := []byte(`<html><body>
			<a class="ad-listing__title-link" itemprop="url" href="/s-ad/pinned/444">Pinned</a>
			<a class="ad-listing__title-link" itemprop="url" href="/s-ad/pinned/444">Pinned again</a>
		</body></html>`)

		urls, err := ExtractListingURLs(page, "https://www.gumtree.com.au/s-bikes/page-1/c18922")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(urls) != 2 {
			t.Fatalf("duplicates must be preserved, got %d urls", len(urls))
		}
		if urls[0] != urls[1] {
			t.Errorf("expected identical urls, got %q and %q", urls[0], urls[1])
		}
	})

	t.Run("page without listings yields empty result", func(t *testing.T) {
		t.Parallel()

		urls, err := ExtractListingURLs([]byte(`<html><body></body></html>`),
			"https://www.gumtree.com.au/s-bikes/page-1/c18922")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(urls) != 0 {
			t.Errorf("expected no urls, got %v", urls)
		}
	})
}
