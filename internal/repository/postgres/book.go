package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"library-backend/internal/domain"
	"library-backend/internal/repository"
)

type bookRepository struct {
	db DBTX
}

func NewBookRepository(db DBTX) repository.BookRepository {
	return &bookRepository{db: db}
}

const bookColumns = `id, title, author, isbn, publication_date, genre, description, publisher, page_count, available, created_on, updated_on`

func scanBook(row interface{ Scan(...interface{}) error }, b *domain.Book) error {
	return row.Scan(&b.ID, &b.Title, &b.Author, &b.ISBN, &b.PublicationDate, &b.Genre,
		&b.Description, &b.Publisher, &b.PageCount, &b.Available, &b.CreatedOn, &b.UpdatedOn)
}

func (r *bookRepository) Create(ctx context.Context, b *domain.Book) error {
	query := `INSERT INTO books (title, author, isbn, publication_date, genre, description, publisher, page_count, available, created_on)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10) RETURNING id, created_on`
	err := r.db.QueryRowContext(ctx, query, b.Title, b.Author, b.ISBN, b.PublicationDate, b.Genre,
		b.Description, b.Publisher, b.PageCount, b.Available, time.Now()).
		Scan(&b.ID, &b.CreatedOn)
	if err != nil {
		return fmt.Errorf("failed to create book: %w", err)
	}
	return nil
}

func (r *bookRepository) GetByID(ctx context.Context, id int64) (*domain.Book, error) {
	b := &domain.Book{}
	query := `SELECT ` + bookColumns + ` FROM books WHERE id = $1`
	err := scanBook(r.db.QueryRowContext(ctx, query, id), b)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("book %d: %w", id, domain.ErrBookNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get book %d: %w", id, err)
	}
	return b, nil
}

func (r *bookRepository) GetByISBN(ctx context.Context, isbn string) (*domain.Book, error) {
	b := &domain.Book{}
	query := `SELECT ` + bookColumns + ` FROM books WHERE isbn = $1`
	err := scanBook(r.db.QueryRowContext(ctx, query, isbn), b)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("isbn %s: %w", isbn, domain.ErrBookNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get book by isbn: %w", err)
	}
	return b, nil
}

func (r *bookRepository) Exists(ctx context.Context, id int64) (bool, error) {
	var exists bool
	err := r.db.QueryRowContext(ctx, `SELECT EXISTS(SELECT 1 FROM books WHERE id = $1)`, id).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check book %d: %w", id, err)
	}
	return exists, nil
}

func (r *bookRepository) Update(ctx context.Context, b *domain.Book) error {
	query := `UPDATE books SET title=$1, author=$2, isbn=$3, publication_date=$4, genre=$5, description=$6,
	          publisher=$7, page_count=$8, available=$9, updated_on=$10 WHERE id=$11`
	_, err := r.db.ExecContext(ctx, query, b.Title, b.Author, b.ISBN, b.PublicationDate, b.Genre,
		b.Description, b.Publisher, b.PageCount, b.Available, time.Now(), b.ID)
	if err != nil {
		return fmt.Errorf("failed to update book %d: %w", b.ID, err)
	}
	return nil
}

func (r *bookRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM books WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete book %d: %w", id, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("book %d: %w", id, domain.ErrBookNotFound)
	}
	return nil
}

func (r *bookRepository) List(ctx context.Context, page, pageSize int32) ([]domain.Book, int32, error) {
	var count int32
	if err := r.db.QueryRowContext(ctx, `SELECT count(*) FROM books`).Scan(&count); err != nil {
		return nil, 0, fmt.Errorf("failed to count books: %w", err)
	}

	offset := (page - 1) * pageSize
	query := `SELECT ` + bookColumns + ` FROM books ORDER BY title LIMIT $1 OFFSET $2`
	rows, err := r.db.QueryContext(ctx, query, pageSize, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list books: %w", err)
	}
	defer rows.Close()

	var books []domain.Book
	for rows.Next() {
		var b domain.Book
		if err := scanBook(rows, &b); err != nil {
			return nil, 0, err
		}
		books = append(books, b)
	}
	return books, count, rows.Err()
}

func (r *bookRepository) Search(ctx context.Context, query string, page, pageSize int32) ([]domain.Book, int32, error) {
	pattern := "%" + query + "%"
	var count int32
	countSQL := `SELECT count(*) FROM books WHERE title ILIKE $1 OR author ILIKE $1 OR isbn = $2`
	if err := r.db.QueryRowContext(ctx, countSQL, pattern, query).Scan(&count); err != nil {
		return nil, 0, fmt.Errorf("failed to count search results: %w", err)
	}

	offset := (page - 1) * pageSize
	searchSQL := `SELECT ` + bookColumns + ` FROM books WHERE title ILIKE $1 OR author ILIKE $1 OR isbn = $2
	              ORDER BY title LIMIT $3 OFFSET $4`
	rows, err := r.db.QueryContext(ctx, searchSQL, pattern, query, pageSize, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to search books: %w", err)
	}
	defer rows.Close()

	var books []domain.Book
	for rows.Next() {
		var b domain.Book
		if err := scanBook(rows, &b); err != nil {
			return nil, 0, err
		}
		books = append(books, b)
	}
	return books, count, rows.Err()
}
