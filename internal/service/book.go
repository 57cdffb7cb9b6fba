package service

import (
	"context"
	"errors"

	"library-backend/internal/domain"
	"library-backend/internal/logger"
	"library-backend/internal/repository"
)

type bookService struct {
	bookRepo repository.BookRepository
}

func NewBookService(bookRepo repository.BookRepository) BookService {
	return &bookService{bookRepo: bookRepo}
}

func (s *bookService) AddBook(ctx context.Context, book *domain.Book) error {
	existing, err := s.bookRepo.GetByISBN(ctx, book.ISBN)
	if err != nil && !errors.Is(err, domain.ErrBookNotFound) {
		return err
	}
	if existing != nil {
		return domain.ErrDuplicateISBN
	}

	book.Available = true
	if err := s.bookRepo.Create(ctx, book); err != nil {
		return err
	}
	logger.Info("Book added to catalog", "book_id", book.ID, "title", book.Title, "isbn", book.ISBN)
	return nil
}

func (s *bookService) GetBook(ctx context.Context, id int64) (*domain.Book, error) {
	return s.bookRepo.GetByID(ctx, id)
}

func (s *bookService) GetBookByISBN(ctx context.Context, isbn string) (*domain.Book, error) {
	return s.bookRepo.GetByISBN(ctx, isbn)
}

// UpdateBook edits catalog metadata. The availability flag is owned by the
// borrowing workflow and is carried over unchanged.
func (s *bookService) UpdateBook(ctx context.Context, book *domain.Book) error {
	current, err := s.bookRepo.GetByID(ctx, book.ID)
	if err != nil {
		return err
	}
	book.Available = current.Available
	return s.bookRepo.Update(ctx, book)
}

func (s *bookService) DeleteBook(ctx context.Context, id int64) error {
	if err := s.bookRepo.Delete(ctx, id); err != nil {
		return err
	}
	logger.Info("Book removed from catalog", "book_id", id)
	return nil
}

func (s *bookService) ListBooks(ctx context.Context, page, pageSize int32) ([]domain.Book, int32, error) {
	return s.bookRepo.List(ctx, page, pageSize)
}

func (s *bookService) SearchBooks(ctx context.Context, query string, page, pageSize int32) ([]domain.Book, int32, error) {
	return s.bookRepo.Search(ctx, query, page, pageSize)
}
