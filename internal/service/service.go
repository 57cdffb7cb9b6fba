package service

import (
	"context"
	"time"

	"library-backend/internal/domain"
)

type BorrowingService interface {
	BorrowBook(ctx context.Context, userID, bookID int64, requestedDueDate *time.Time) (*domain.LoanDetails, error)
	ReturnBook(ctx context.Context, userID, loanID int64) (*domain.LoanDetails, error)
	GetLoan(ctx context.Context, loanID int64) (*domain.LoanDetails, error)
	ListUserLoans(ctx context.Context, userID int64, page, pageSize int32) ([]domain.LoanDetails, int32, error)
	ListUserActiveLoans(ctx context.Context, userID int64, page, pageSize int32) ([]domain.LoanDetails, int32, error)
	ListUserLoanHistory(ctx context.Context, userID int64, page, pageSize int32) ([]domain.LoanDetails, int32, error)
	ListLoansByStatus(ctx context.Context, status domain.LoanStatus, page, pageSize int32) ([]domain.LoanDetails, int32, error)
	ListAllLoans(ctx context.Context, page, pageSize int32) ([]domain.LoanDetails, int32, error)
	ListOverdueLoans(ctx context.Context) ([]domain.LoanDetails, error)
	// MarkOverdueLoans promotes BORROWED loans past their due date to
	// OVERDUE and returns how many were promoted. Idempotent for a given
	// today.
	MarkOverdueLoans(ctx context.Context, today time.Time) (int, error)
}

type BookService interface {
	AddBook(ctx context.Context, book *domain.Book) error
	GetBook(ctx context.Context, id int64) (*domain.Book, error)
	GetBookByISBN(ctx context.Context, isbn string) (*domain.Book, error)
	UpdateBook(ctx context.Context, book *domain.Book) error
	DeleteBook(ctx context.Context, id int64) error
	ListBooks(ctx context.Context, page, pageSize int32) ([]domain.Book, int32, error)
	SearchBooks(ctx context.Context, query string, page, pageSize int32) ([]domain.Book, int32, error)
}

type UserService interface {
	GetUserProfile(ctx context.Context, userID int64) (*domain.User, error)
	UpdateProfile(ctx context.Context, userID int64, firstName, lastName, email, phone, address string) (*domain.User, error)
}

type AuthService interface {
	Register(ctx context.Context, firstName, lastName, email, password, phone, address string, role domain.Role) (*domain.User, error)
	Login(ctx context.Context, email, password string) (string, *domain.User, error)
}

type EmailService interface {
	SendOverdueReminder(ctx context.Context, email, name, bookTitle string, dueDate time.Time) error
}

// AvailabilityNotifier is the publish side of the availability feed.
type AvailabilityNotifier interface {
	Publish(bookID int64, title string, available bool)
}
