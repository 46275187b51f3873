package scrapersvc

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"bookcatalog/model"
	bookrepo "bookcatalog/repository/book"
	"bookcatalog/util/httpx"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/time/rate"
)

const (
	maxRetries = 3
	retryDelay = 2 * time.Second
)

type Service interface {
	// Run crawls the whole site and bulk-inserts the scraped books.
	// Failures on individual pages are logged and skipped.
	Run(ctx context.Context) (int64, error)
}

type service struct {
	baseURL   string
	br        bookrepo.Repo
	client    *http.Client
	limiter   *rate.Limiter
	retryWait time.Duration
	log       *slog.Logger
}

func New(baseURL string, br bookrepo.Repo, log *slog.Logger) Service {
	return &service{
		baseURL: baseURL,
		br:      br,
		client:  httpx.Client(),
		// one request per second, politeness throttle
		limiter:   rate.NewLimiter(rate.Every(time.Second), 1),
		retryWait: retryDelay,
		log:       log,
	}
}

func (s *service) Run(ctx context.Context) (int64, error) {
	base, err := url.Parse(s.baseURL)
	if err != nil {
		return 0, fmt.Errorf("invalid base url: %w", err)
	}

	catURLs, err := s.categoryURLs(ctx, base)
	if err != nil {
		return 0, err
	}
	s.log.Info("scrape started", "categories", len(catURLs))

	var books []model.Book
	for _, cu := range catURLs {
		bookURLs, err := s.bookURLs(ctx, cu)
		if err != nil {
			s.log.Warn("category skipped", "url", cu.String(), "err", err)
			continue
		}
		for _, bu := range bookURLs {
			b, err := s.scrapeBook(ctx, bu)
			if err != nil {
				s.log.Warn("book skipped", "url", bu.String(), "err", err)
				continue
			}
			books = append(books, *b)
		}
	}

	if len(books) == 0 {
		return 0, nil
	}
	n, err := s.br.InsertBatch(ctx, books)
	if err != nil {
		return 0, err
	}
	s.log.Info("scrape finished", "inserted", n)
	return n, nil
}

func (s *service) categoryURLs(ctx context.Context, base *url.URL) ([]*url.URL, error) {
	doc, err := s.fetch(ctx, base)
	if err != nil {
		return nil, err
	}

	var out []*url.URL
	doc.Find("div.side_categories a").Each(func(_ int, sel *goquery.Selection) {
		href, ok := sel.Attr("href")
		if !ok || !strings.Contains(href, "category") {
			return
		}
		if ref, err := url.Parse(href); err == nil {
			out = append(out, base.ResolveReference(ref))
		}
	})
	return out, nil
}

// bookURLs walks a category including its "next" pagination links.
func (s *service) bookURLs(ctx context.Context, catURL *url.URL) ([]*url.URL, error) {
	var out []*url.URL
	page := catURL
	for page != nil {
		doc, err := s.fetch(ctx, page)
		if err != nil {
			return nil, err
		}

		doc.Find("article.product_pod h3 a").Each(func(_ int, sel *goquery.Selection) {
			href, ok := sel.Attr("href")
			if !ok {
				return
			}
			if ref, err := url.Parse(href); err == nil {
				out = append(out, page.ResolveReference(ref))
			}
		})

		page = nil
		if href, ok := doc.Find("li.next a").Attr("href"); ok {
			if ref, err := url.Parse(href); err == nil {
				page = catURL.ResolveReference(ref)
			}
		}
	}
	return out, nil
}

func (s *service) scrapeBook(ctx context.Context, bookURL *url.URL) (*model.Book, error) {
	doc, err := s.fetch(ctx, bookURL)
	if err != nil {
		return nil, err
	}

	main := doc.Find("div.product_main")
	title := cleanText(main.Find("h1").Text())
	if title == "" {
		return nil, fmt.Errorf("no title on %s", bookURL)
	}

	price, ok := parsePrice(main.Find("p.price_color").Text())
	if !ok {
		return nil, fmt.Errorf("unparseable price on %s", bookURL)
	}

	rating := "Not rated"
	if class, ok := main.Find("p.star-rating").Attr("class"); ok {
		rating = ratingFromClass(class)
	}

	return &model.Book{
		Title:        title,
		Price:        price,
		Availability: normalizeAvailability(main.Find("p.availability").Text()),
		Rating:       rating,
		Category:     categoryFromBreadcrumb(doc),
	}, nil
}

// fetch applies the rate limit and retries transient failures before
// giving up on a URL.
func (s *service) fetch(ctx context.Context, u *url.URL) (*goquery.Document, error) {
	var lastErr error
	for attempt := 1; attempt <= maxRetries; attempt++ {
		if err := s.limiter.Wait(ctx); err != nil {
			return nil, err
		}
		doc, err := s.get(ctx, u)
		if err == nil {
			return doc, nil
		}
		lastErr = err
		s.log.Warn("fetch failed", "url", u.String(), "attempt", attempt, "err", err)

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(s.retryWait):
		}
	}
	return nil, fmt.Errorf("giving up after %d attempts: %w", maxRetries, lastErr)
}

func (s *service) get(ctx context.Context, u *url.URL) (*goquery.Document, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, err
	}
	resp, err := s.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status %d", resp.StatusCode)
	}
	return goquery.NewDocumentFromReader(resp.Body)
}
