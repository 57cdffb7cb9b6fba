package service

import (
	"context"
	"testing"

	"library-backend/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func TestAddBook(t *testing.T) {
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		repo := new(MockBookRepo)
		svc := NewBookService(repo)

		repo.On("GetByISBN", ctx, "978-0441013593").Return(nil, domain.ErrBookNotFound)
		repo.On("Create", ctx, mock.MatchedBy(func(b *domain.Book) bool {
			return b.Available
		})).Return(nil)

		book := &domain.Book{Title: "Dune", Author: "Frank Herbert", ISBN: "978-0441013593"}
		err := svc.AddBook(ctx, book)

		assert.NoError(t, err)
		assert.True(t, book.Available, "new catalog entries start available")
	})

	t.Run("Duplicate ISBN", func(t *testing.T) {
		repo := new(MockBookRepo)
		svc := NewBookService(repo)

		repo.On("GetByISBN", ctx, "978-0441013593").Return(&domain.Book{ID: 1, ISBN: "978-0441013593"}, nil)

		err := svc.AddBook(ctx, &domain.Book{Title: "Dune", ISBN: "978-0441013593"})

		assert.ErrorIs(t, err, domain.ErrDuplicateISBN)
		repo.AssertNotCalled(t, "Create", ctx, mock.Anything)
	})
}

func TestUpdateBook(t *testing.T) {
	ctx := context.Background()

	t.Run("Availability flag is carried over", func(t *testing.T) {
		repo := new(MockBookRepo)
		svc := NewBookService(repo)

		current := &domain.Book{ID: 1, Title: "Dune", Available: false}
		repo.On("GetByID", ctx, int64(1)).Return(current, nil)
		repo.On("Update", ctx, mock.MatchedBy(func(b *domain.Book) bool {
			return !b.Available
		})).Return(nil)

		// The caller cannot flip availability through a metadata edit.
		edit := &domain.Book{ID: 1, Title: "Dune (reissue)", Available: true}
		err := svc.UpdateBook(ctx, edit)

		assert.NoError(t, err)
		assert.False(t, edit.Available)
	})

	t.Run("Book not found", func(t *testing.T) {
		repo := new(MockBookRepo)
		svc := NewBookService(repo)

		repo.On("GetByID", ctx, int64(404)).Return(nil, domain.ErrBookNotFound)

		err := svc.UpdateBook(ctx, &domain.Book{ID: 404})
		assert.ErrorIs(t, err, domain.ErrBookNotFound)
	})
}
