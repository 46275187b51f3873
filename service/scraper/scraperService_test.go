package scrapersvc

import (
	"context"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"bookcatalog/model"
	bookrepo "bookcatalog/repository/book"

	"github.com/stretchr/testify/require"
)

type repoMock struct {
	bookrepo.Repo
	inserted []model.Book
}

func (m *repoMock) InsertBatch(ctx context.Context, books []model.Book) (int64, error) {
	m.inserted = append(m.inserted, books...)
	return int64(len(books)), nil
}

// fastForTest drops the politeness throttle and retry backoff so the
// crawl finishes quickly against a local server.
func fastForTest(s Service) {
	sv := s.(*service)
	sv.limiter.SetLimit(1000)
	sv.retryWait = time.Millisecond
}

const indexPage = `
<html><body>
<div class="side_categories">
  <ul><li><a href="index.html">Books</a></li>
  <li><a href="catalogue/category/books/poetry_23/index.html">Poetry</a></li></ul>
</div>
</body></html>`

const categoryPage = `
<html><body>
<article class="product_pod">
  <h3><a href="../../../a-light-in-the-attic_1000/index.html">A Light in the ...</a></h3>
</article>
</body></html>`

const bookPage = `
<html><body>
<ul class="breadcrumb">
  <li><a href="/">Home</a></li>
  <li><a href="/catalogue/category/books_1/index.html">Books</a></li>
  <li><a href="/catalogue/category/books/poetry_23/index.html">Poetry</a></li>
</ul>
<div class="product_main">
  <h1>A Light in the Attic</h1>
  <p class="price_color">£51.77</p>
  <p class="availability">In stock (22 available)</p>
  <p class="star-rating Three">stars</p>
</div>
</body></html>`

func TestRun_CrawlsAndInserts(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(indexPage))
	})
	mux.HandleFunc("/catalogue/category/books/poetry_23/index.html", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(categoryPage))
	})
	mux.HandleFunc("/catalogue/a-light-in-the-attic_1000/index.html", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(bookPage))
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	m := &repoMock{}
	log := slog.New(slog.NewTextHandler(os.Stderr, nil))

	svc := New(srv.URL+"/", m, log)
	fastForTest(svc)
	n, err := svc.Run(context.Background())
	require.NoError(t, err)
	require.Equal(t, int64(1), n)
	require.Len(t, m.inserted, 1)

	b := m.inserted[0]
	require.Equal(t, "A Light in the Attic", b.Title)
	require.Equal(t, 51.77, b.Price)
	require.Equal(t, "In Stock", b.Availability)
	require.Equal(t, "Three", b.Rating)
	require.Equal(t, "Poetry", b.Category)
}

func TestRun_SkipsFailingBookPages(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(indexPage))
	})
	mux.HandleFunc("/catalogue/category/books/poetry_23/index.html", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(categoryPage))
	})
	mux.HandleFunc("/catalogue/a-light-in-the-attic_1000/index.html", func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	m := &repoMock{}
	log := slog.New(slog.NewTextHandler(os.Stderr, nil))

	svc := New(srv.URL+"/", m, log)
	fastForTest(svc)
	n, err := svc.Run(context.Background())
	require.NoError(t, err)
	require.Equal(t, int64(0), n)
	require.Empty(t, m.inserted)
}
