package repository

import (
	"context"
	"time"

	"library-backend/internal/domain"
)

type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	GetByID(ctx context.Context, id int64) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	Update(ctx context.Context, user *domain.User) error
}

type BookRepository interface {
	Create(ctx context.Context, book *domain.Book) error
	GetByID(ctx context.Context, id int64) (*domain.Book, error)
	GetByISBN(ctx context.Context, isbn string) (*domain.Book, error)
	Exists(ctx context.Context, id int64) (bool, error)
	Update(ctx context.Context, book *domain.Book) error
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context, page, pageSize int32) ([]domain.Book, int32, error)
	Search(ctx context.Context, query string, page, pageSize int32) ([]domain.Book, int32, error)
}

type LoanRepository interface {
	Create(ctx context.Context, loan *domain.Loan) error
	GetByID(ctx context.Context, id int64) (*domain.Loan, error)
	GetDetailsByID(ctx context.Context, id int64) (*domain.LoanDetails, error)
	// GetActiveByBook returns the non-returned loan referencing the book,
	// or domain.ErrLoanNotFound if the book has no active loan.
	GetActiveByBook(ctx context.Context, bookID int64) (*domain.Loan, error)
	CountByUserAndStatuses(ctx context.Context, userID int64, statuses []domain.LoanStatus) (int, error)
	Update(ctx context.Context, loan *domain.Loan) error
	// PromoteToOverdue flips a loan to OVERDUE only if it is still
	// BORROWED. Returns false when the guard did not match.
	PromoteToOverdue(ctx context.Context, id int64) (bool, error)
	ListByUser(ctx context.Context, userID int64, page, pageSize int32) ([]domain.LoanDetails, int32, error)
	ListByUserAndStatuses(ctx context.Context, userID int64, statuses []domain.LoanStatus, page, pageSize int32) ([]domain.LoanDetails, int32, error)
	ListByStatus(ctx context.Context, status domain.LoanStatus, page, pageSize int32) ([]domain.LoanDetails, int32, error)
	ListAll(ctx context.Context, page, pageSize int32) ([]domain.LoanDetails, int32, error)
	ListAllByStatus(ctx context.Context, status domain.LoanStatus) ([]domain.LoanDetails, error)
	// ListDueBefore returns BORROWED loans whose due date is before today.
	ListDueBefore(ctx context.Context, today time.Time) ([]domain.Loan, error)
}

// Store bundles the repositories with a transaction scope. WithinTx runs fn
// against repositories bound to a single transaction; any error rolls the
// whole unit back so no partial state change is visible.
type Store interface {
	Users() UserRepository
	Books() BookRepository
	Loans() LoanRepository
	WithinTx(ctx context.Context, fn func(Store) error) error
}
