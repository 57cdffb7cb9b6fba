package domain

import (
	"errors"
	"fmt"
)

// Business-rule failures surfaced by the borrowing workflow. These are
// rejections, not transient faults; callers must not retry them.
var (
	// ErrBorrowerNotFound is returned when the borrower does not exist.
	ErrBorrowerNotFound = errors.New("borrower not found")

	// ErrBookNotFound is returned when the book does not exist.
	ErrBookNotFound = errors.New("book not found")

	// ErrLoanNotFound is returned when the loan record does not exist.
	ErrLoanNotFound = errors.New("loan not found")

	// ErrRoleNotPermitted is returned when a non-patron tries to borrow.
	ErrRoleNotPermitted = errors.New("only patrons can borrow books")

	// ErrBookNotAvailable is returned when the book is held by an active loan.
	ErrBookNotAvailable = errors.New("book is not available for borrowing")

	// ErrBorrowingLimitExceeded is returned when the borrower already holds
	// the maximum number of active loans.
	ErrBorrowingLimitExceeded = errors.New("borrowing limit exceeded")

	// ErrLoanOwnershipMismatch is returned when a borrower tries to return
	// a loan that belongs to someone else.
	ErrLoanOwnershipMismatch = errors.New("loan does not belong to this borrower")

	// ErrInvalidLoanState is returned when the loan is already returned or
	// otherwise terminal.
	ErrInvalidLoanState = errors.New("loan has already been returned or is in an invalid state")

	// ErrInvalidDueDate is returned when a requested due date is not
	// strictly in the future.
	ErrInvalidDueDate = errors.New("due date must be in the future")

	// ErrDuplicateISBN is returned when creating a book with an ISBN that
	// already exists in the catalog.
	ErrDuplicateISBN = errors.New("a book with this ISBN already exists")

	// ErrDuplicateEmail is returned when registering an email that is
	// already taken.
	ErrDuplicateEmail = errors.New("a user with this email already exists")

	// ErrInvalidCredentials is returned on failed login.
	ErrInvalidCredentials = errors.New("invalid email or password")
)

// BookNotAvailableError carries the loan currently holding the book.
type BookNotAvailableError struct {
	BookID   int64
	LoanID   int64
	HolderID int64
}

func (e *BookNotAvailableError) Error() string {
	return fmt.Sprintf("book %d is not available: held by user %d under loan %d", e.BookID, e.HolderID, e.LoanID)
}

func (e *BookNotAvailableError) Unwrap() error { return ErrBookNotAvailable }

// BorrowingLimitError carries the borrower's active count and the limit.
type BorrowingLimitError struct {
	UserID      int64
	ActiveLoans int
	Limit       int
}

func (e *BorrowingLimitError) Error() string {
	return fmt.Sprintf("user %d has %d active loans, limit is %d", e.UserID, e.ActiveLoans, e.Limit)
}

func (e *BorrowingLimitError) Unwrap() error { return ErrBorrowingLimitExceeded }
