package bookrepo

import (
	"context"
	"errors"

	"bookcatalog/model"
	"bookcatalog/util/database"

	"github.com/jackc/pgx/v5"
)

var ErrNotFound = errors.New("book not found")

type Repo interface {
	InsertBatch(ctx context.Context, books []model.Book) (int64, error)
	List(ctx context.Context) ([]model.Book, error)
	ByID(ctx context.Context, id int64) (*model.Book, error)
	Categories(ctx context.Context) ([]string, error)
	Overview(ctx context.Context) (*model.OverviewStats, error)
	CategoryStats(ctx context.Context) ([]model.CategoryStats, error)
}

type repo struct{ db *database.DB }

func New(db *database.DB) Repo { return &repo{db} }

const bookCols = `id, title, price, availability, rating, category`

func (r *repo) InsertBatch(ctx context.Context, books []model.Book) (int64, error) {
	tx, err := r.db.Pool.Begin(ctx)
	if err != nil {
		return 0, err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback(ctx)
		}
	}()
	const ins = `
INSERT INTO books (title, price, availability, rating, category)
VALUES ($1,$2,$3,$4,$5)`
	for _, b := range books {
		if _, err = tx.Exec(ctx, ins, b.Title, b.Price, b.Availability, b.Rating, b.Category); err != nil {
			return 0, err
		}
	}
	if err = tx.Commit(ctx); err != nil {
		return 0, err
	}
	return int64(len(books)), nil
}

func (r *repo) List(ctx context.Context) ([]model.Book, error) {
	rows, err := r.db.Pool.Query(ctx, `SELECT `+bookCols+` FROM books ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanBooks(rows)
}

func (r *repo) ByID(ctx context.Context, id int64) (*model.Book, error) {
	var b model.Book
	err := r.db.Pool.QueryRow(ctx, `SELECT `+bookCols+` FROM books WHERE id=$1`, id).
		Scan(&b.ID, &b.Title, &b.Price, &b.Availability, &b.Rating, &b.Category)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &b, nil
}

func (r *repo) Categories(ctx context.Context) ([]string, error) {
	rows, err := r.db.Pool.Query(ctx, `SELECT DISTINCT category FROM books ORDER BY category`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []string
	for rows.Next() {
		var c string
		if err := rows.Scan(&c); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func (r *repo) Overview(ctx context.Context) (*model.OverviewStats, error) {
	st := &model.OverviewStats{RatingDistribution: map[string]int64{}}
	err := r.db.Pool.QueryRow(ctx, `
		SELECT COUNT(*), COALESCE(AVG(price),0) FROM books`).
		Scan(&st.TotalBooks, &st.AveragePrice)
	if err != nil {
		return nil, err
	}

	rows, err := r.db.Pool.Query(ctx, `SELECT rating, COUNT(*) FROM books GROUP BY rating`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	for rows.Next() {
		var rating string
		var n int64
		if err := rows.Scan(&rating, &n); err != nil {
			return nil, err
		}
		st.RatingDistribution[rating] = n
	}
	return st, rows.Err()
}

func (r *repo) CategoryStats(ctx context.Context) ([]model.CategoryStats, error) {
	const q = `
SELECT category, COUNT(*), COALESCE(AVG(price),0)
FROM books
GROUP BY category
ORDER BY category`
	rows, err := r.db.Pool.Query(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.CategoryStats
	for rows.Next() {
		var cs model.CategoryStats
		if err := rows.Scan(&cs.Category, &cs.TotalBooks, &cs.AveragePrice); err != nil {
			return nil, err
		}
		out = append(out, cs)
	}
	return out, rows.Err()
}

func scanBooks(rows pgx.Rows) ([]model.Book, error) {
	var out []model.Book
	for rows.Next() {
		var b model.Book
		if err := rows.Scan(&b.ID, &b.Title, &b.Price, &b.Availability, &b.Rating, &b.Category); err != nil {
			return nil, err
		}
		out = append(out, b)
	}
	return out, rows.Err()
}
