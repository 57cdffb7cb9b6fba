package postgres

import (
	"context"
	"testing"
	"time"

	"library-backend/internal/domain"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
)

func bookTestColumns() []string {
	return []string{"id", "title", "author", "isbn", "publication_date", "genre", "description", "publisher", "page_count", "available", "created_on", "updated_on"}
}

func TestBookRepository_Create(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("error opening mock database: %v", err)
	}
	defer db.Close()

	repo := NewBookRepository(db)
	ctx := context.Background()

	book := &domain.Book{
		Title:           "Dune",
		Author:          "Frank Herbert",
		ISBN:            "978-0441013593",
		PublicationDate: time.Date(1965, 8, 1, 0, 0, 0, 0, time.UTC),
		Genre:           domain.GenreFiction,
		Publisher:       "Chilton Books",
		PageCount:       412,
		Available:       true,
	}

	mock.ExpectQuery("INSERT INTO books").
		WithArgs(book.Title, book.Author, book.ISBN, book.PublicationDate, book.Genre,
			book.Description, book.Publisher, book.PageCount, book.Available, sqlmock.AnyArg()).
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_on"}).AddRow(10, time.Now()))

	err = repo.Create(ctx, book)
	assert.NoError(t, err)
	assert.Equal(t, int64(10), book.ID)
}

func TestBookRepository_GetByID(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("error opening mock database: %v", err)
	}
	defer db.Close()

	repo := NewBookRepository(db)
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		rows := sqlmock.NewRows(bookTestColumns()).
			AddRow(10, "Dune", "Frank Herbert", "978-0441013593", time.Now(), "FICTION", "", "Chilton Books", 412, true, time.Now(), nil)

		mock.ExpectQuery("SELECT (.+) FROM books WHERE id = \\$1").
			WithArgs(int64(10)).
			WillReturnRows(rows)

		book, err := repo.GetByID(ctx, 10)
		assert.NoError(t, err)
		assert.Equal(t, "Dune", book.Title)
		assert.True(t, book.Available)
	})

	t.Run("Not found", func(t *testing.T) {
		mock.ExpectQuery("SELECT (.+) FROM books WHERE id = \\$1").
			WithArgs(int64(404)).
			WillReturnRows(sqlmock.NewRows(bookTestColumns()))

		_, err := repo.GetByID(ctx, 404)
		assert.ErrorIs(t, err, domain.ErrBookNotFound)
	})
}

func TestBookRepository_Update(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("error opening mock database: %v", err)
	}
	defer db.Close()

	repo := NewBookRepository(db)
	ctx := context.Background()

	book := &domain.Book{
		ID:        10,
		Title:     "Dune",
		Author:    "Frank Herbert",
		ISBN:      "978-0441013593",
		Available: false,
	}

	mock.ExpectExec("UPDATE books SET").
		WithArgs(book.Title, book.Author, book.ISBN, book.PublicationDate, book.Genre,
			book.Description, book.Publisher, book.PageCount, book.Available, sqlmock.AnyArg(), book.ID).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err = repo.Update(ctx, book)
	assert.NoError(t, err)
}

func TestBookRepository_Delete(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("error opening mock database: %v", err)
	}
	defer db.Close()

	repo := NewBookRepository(db)
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		mock.ExpectExec("DELETE FROM books WHERE id = \\$1").
			WithArgs(int64(10)).
			WillReturnResult(sqlmock.NewResult(0, 1))

		assert.NoError(t, repo.Delete(ctx, 10))
	})

	t.Run("Not found", func(t *testing.T) {
		mock.ExpectExec("DELETE FROM books WHERE id = \\$1").
			WithArgs(int64(404)).
			WillReturnResult(sqlmock.NewResult(0, 0))

		assert.ErrorIs(t, repo.Delete(ctx, 404), domain.ErrBookNotFound)
	})
}

func TestBookRepository_List(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("error opening mock database: %v", err)
	}
	defer db.Close()

	repo := NewBookRepository(db)
	ctx := context.Background()

	mock.ExpectQuery("SELECT count\\(\\*\\) FROM books").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(2))

	rows := sqlmock.NewRows(bookTestColumns()).
		AddRow(10, "Dune", "Frank Herbert", "978-0441013593", time.Now(), "FICTION", "", "", 412, true, time.Now(), nil).
		AddRow(11, "Neuromancer", "William Gibson", "978-0441569595", time.Now(), "FICTION", "", "", 271, false, time.Now(), nil)

	mock.ExpectQuery("SELECT (.+) FROM books ORDER BY title LIMIT \\$1 OFFSET \\$2").
		WithArgs(int32(20), int32(0)).
		WillReturnRows(rows)

	books, total, err := repo.List(ctx, 1, 20)
	assert.NoError(t, err)
	assert.Equal(t, int32(2), total)
	assert.Len(t, books, 2)
}

func TestBookRepository_Search(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("error opening mock database: %v", err)
	}
	defer db.Close()

	repo := NewBookRepository(db)
	ctx := context.Background()

	mock.ExpectQuery("SELECT count\\(\\*\\) FROM books WHERE title ILIKE \\$1 OR author ILIKE \\$1 OR isbn = \\$2").
		WithArgs("%dune%", "dune").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))

	rows := sqlmock.NewRows(bookTestColumns()).
		AddRow(10, "Dune", "Frank Herbert", "978-0441013593", time.Now(), "FICTION", "", "", 412, true, time.Now(), nil)

	mock.ExpectQuery("SELECT (.+) FROM books WHERE title ILIKE \\$1 OR author ILIKE \\$1 OR isbn = \\$2").
		WithArgs("%dune%", "dune", int32(20), int32(0)).
		WillReturnRows(rows)

	books, total, err := repo.Search(ctx, "dune", 1, 20)
	assert.NoError(t, err)
	assert.Equal(t, int32(1), total)
	assert.Len(t, books, 1)
	assert.Equal(t, "Dune", books[0].Title)
}
