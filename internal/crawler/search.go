package crawler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/gumcrawl/gumcrawl/internal/model"
	"github.com/gumcrawl/gumcrawl/internal/pipeline"
)

// Search runs a complete crawl: pagination discovery, concurrent
// listing-page scraping, and concurrent ad extraction.
type Search struct {
	fetcher     *Fetcher
	paginator   *Paginator
	items       *ItemExtractor
	concurrency int
	logger      *slog.Logger
}

// SearchOption configures a Search.
type SearchOption func(*Search)

// WithConcurrency sets the worker-pool width used by both crawl phases.
func WithConcurrency(n int) SearchOption {
	return func(s *Search) {
		if n > 0 {
			s.concurrency = n
		}
	}
}

// WithLogger sets the logger used for phase and progress output.
func WithLogger(logger *slog.Logger) SearchOption {
	return func(s *Search) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithLenientPrice makes a missing price block mean "no listed price"
// instead of "ad removed or sold".
func WithLenientPrice() SearchOption {
	return func(s *Search) {
		s.items.TreatMissingPriceAsUnavailable = false
	}
}

// WithFetcherOptions forwards options to the underlying Fetcher.
func WithFetcherOptions(opts ...FetcherOption) SearchOption {
	return func(s *Search) {
		for _, opt := range opts {
			opt(s.fetcher)
		}
	}
}

// NewSearch creates a Search crawling through the given HTTP client.
func NewSearch(client *http.Client, opts ...SearchOption) *Search {
	s := &Search{
		fetcher:     NewFetcher(client),
		items:       &ItemExtractor{TreatMissingPriceAsUnavailable: true},
		concurrency: pipeline.DefaultWidth,
		logger:      slog.Default(),
	}
	s.paginator = NewPaginator(s.fetcher)

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Run crawls the search rooted at seedURL and returns the full result.
// seedURL must already be in prepared form (see PrepareURL).
//
// Only pagination resolution returns an error: without the page bound
// there is no work list. Every later failure is captured per unit in
// Result.Failures, and the item phase guarantees one output slot
// (item or failure) per submitted ad URL.
func (s *Search) Run(ctx context.Context, seedURL string) (*model.Result, error) {
	started := time.Now()

	pageURLs, err := s.paginator.Resolve(ctx, seedURL)
	if err != nil {
		return nil, err
	}
	s.logger.Info("scraping pages", "found", len(pageURLs))

	result := &model.Result{
		SeedURL:   seedURL,
		Pages:     len(pageURLs),
		StartedAt: started,
	}

	pageOutcomes := pipeline.Run(ctx, pageURLs, s.scrapePage,
		pipeline.WithWidth(s.concurrency),
		pipeline.WithProgress(s.progressFor("page")),
	)

	var itemURLs []string
	for _, o := range pageOutcomes {
		if o.Err != nil {
			result.Failures = append(result.Failures, classifyFailure(o.Unit, o.Err))
			continue
		}
		itemURLs = append(itemURLs, o.Value...)
	}
	s.logger.Info("scraping items", "found", len(itemURLs))

	itemOutcomes := pipeline.Run(ctx, itemURLs, s.scrapeItem,
		pipeline.WithWidth(s.concurrency),
		pipeline.WithProgress(s.progressFor("item")),
	)

	for _, o := range itemOutcomes {
		if o.Err != nil {
			result.Failures = append(result.Failures, classifyFailure(o.Unit, o.Err))
			continue
		}
		result.Items = append(result.Items, o.Value)
	}

	result.Elapsed = time.Since(started)
	s.logger.Info("crawl complete",
		"pages", result.Pages,
		"items", len(result.Items),
		"failures", len(result.Failures),
		"elapsed", result.Elapsed,
	)

	return result, nil
}

// scrapePage is the page-phase worker: fetch one listing page and
// extract the ad URLs it links to.
func (s *Search) scrapePage(ctx context.Context, pageURL string) ([]string, error) {
	body, err := s.fetcher.Fetch(ctx, pageURL)
	if err != nil {
		return nil, err
	}
	return ExtractListingURLs(body, pageURL)
}

// scrapeItem is the item-phase worker: fetch one ad page and parse it
// into an Item.
func (s *Search) scrapeItem(ctx context.Context, itemURL string) (*model.Item, error) {
	body, err := s.fetcher.Fetch(ctx, itemURL)
	if err != nil {
		return nil, err
	}
	return s.items.Extract(body, itemURL)
}

// progressFor returns a progress callback that logs one line per
// completed unit, mirroring the "(n/total)" display of a batch crawl.
func (s *Search) progressFor(phase string) pipeline.ProgressFunc {
	return func(done, total int) {
		s.logger.Info("fetched", "phase", phase, "done", done, "total", total)
	}
}

// classifyFailure converts a captured unit error into the serializable
// failure record for its output slot.
func classifyFailure(unitURL string, err error) *model.Failure {
	f := &model.Failure{
		URL:     unitURL,
		Message: err.Error(),
		Err:     err,
	}

	var transportErr *TransportError
	var unavailableErr *UnavailableAdError
	switch {
	case errors.As(err, &unavailableErr):
		f.Kind = model.FailureUnavailable
	case errors.As(err, &transportErr):
		f.Kind = model.FailureTransport
	default:
		f.Kind = model.FailureParse
	}

	return f
}
