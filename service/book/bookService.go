package booksvc

import (
	"context"
	"errors"
	"sort"
	"strings"

	"bookcatalog/model"
	bookrepo "bookcatalog/repository/book"
)

var (
	// ErrNoBooks marks an empty result set. Callers treat this as a
	// distinct condition, never as an empty list.
	ErrNoBooks      = errors.New("no books found")
	ErrBookNotFound = errors.New("book not found")
)

// ratingRank maps the ordinal rating labels to a sortable rank.
// Unknown labels (including "Not rated") rank lowest.
var ratingRank = map[string]int{
	"One":   1,
	"Two":   2,
	"Three": 3,
	"Four":  4,
	"Five":  5,
}

type Service interface {
	List(ctx context.Context) ([]model.Book, error)
	ByID(ctx context.Context, id int64) (*model.Book, error)
	Search(ctx context.Context, title, category string) ([]model.Book, error)
	TopRated(ctx context.Context, limit int) ([]model.Book, error)
	ByPriceRange(ctx context.Context, min, max float64) ([]model.Book, error)
	Categories(ctx context.Context) ([]string, error)
}

type service struct{ r bookrepo.Repo }

func New(r bookrepo.Repo) Service { return &service{r: r} }

func (s *service) List(ctx context.Context) ([]model.Book, error) {
	books, err := s.r.List(ctx)
	if err != nil {
		return nil, err
	}
	if len(books) == 0 {
		return nil, ErrNoBooks
	}
	return books, nil
}

func (s *service) ByID(ctx context.Context, id int64) (*model.Book, error) {
	b, err := s.r.ByID(ctx, id)
	if errors.Is(err, bookrepo.ErrNotFound) {
		return nil, ErrBookNotFound
	}
	if err != nil {
		return nil, err
	}
	return b, nil
}

// Search matches case-insensitive substrings on title and category.
// An empty argument skips that filter.
func (s *service) Search(ctx context.Context, title, category string) ([]model.Book, error) {
	books, err := s.r.List(ctx)
	if err != nil {
		return nil, err
	}

	title = strings.ToLower(title)
	category = strings.ToLower(category)

	var out []model.Book
	for _, b := range books {
		if title != "" && !strings.Contains(strings.ToLower(b.Title), title) {
			continue
		}
		if category != "" && !strings.Contains(strings.ToLower(b.Category), category) {
			continue
		}
		out = append(out, b)
	}
	if len(out) == 0 {
		return nil, ErrNoBooks
	}
	return out, nil
}

// TopRated sorts by rating rank descending. The sort is stable, so
// equally rated books keep their retrieval order.
func (s *service) TopRated(ctx context.Context, limit int) ([]model.Book, error) {
	books, err := s.r.List(ctx)
	if err != nil {
		return nil, err
	}
	if len(books) == 0 {
		return nil, ErrNoBooks
	}

	sort.SliceStable(books, func(i, j int) bool {
		return ratingRank[books[i].Rating] > ratingRank[books[j].Rating]
	})
	if limit > 0 && limit < len(books) {
		books = books[:limit]
	}
	return books, nil
}

// ByPriceRange is inclusive on both bounds. A min greater than max is
// not rejected; it simply matches nothing and surfaces ErrNoBooks.
func (s *service) ByPriceRange(ctx context.Context, min, max float64) ([]model.Book, error) {
	books, err := s.r.List(ctx)
	if err != nil {
		return nil, err
	}

	var out []model.Book
	for _, b := range books {
		if b.Price >= min && b.Price <= max {
			out = append(out, b)
		}
	}
	if len(out) == 0 {
		return nil, ErrNoBooks
	}
	return out, nil
}

func (s *service) Categories(ctx context.Context) ([]string, error) {
	return s.r.Categories(ctx)
}
