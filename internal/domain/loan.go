package domain

import "time"

type LoanStatus string

const (
	LoanStatusBorrowed LoanStatus = "BORROWED"
	LoanStatusOverdue  LoanStatus = "OVERDUE"
	LoanStatusReturned LoanStatus = "RETURNED"
	LoanStatusLost     LoanStatus = "LOST"
)

// ActiveLoanStatuses are the statuses that count against a borrower's
// loan limit and keep a book unavailable.
var ActiveLoanStatuses = []LoanStatus{LoanStatusBorrowed, LoanStatusOverdue}

// Loan links one book to one borrower for a bounded period. Loan rows are
// append-only history: they are created by borrowing, updated by returning
// and by the overdue sweep, and never deleted.
type Loan struct {
	ID         int64      `json:"id"`
	UserID     int64      `json:"user_id"`
	BookID     int64      `json:"book_id"`
	BorrowDate time.Time  `json:"borrow_date"`
	DueDate    time.Time  `json:"due_date"`
	ReturnDate *time.Time `json:"return_date,omitempty"`
	Status     LoanStatus `json:"status"`
	CreatedOn  time.Time  `json:"created_on"`
	UpdatedOn  *time.Time `json:"updated_on,omitempty"`
}

// IsActive reports whether the loan still holds the book.
func (l *Loan) IsActive() bool {
	return l.Status == LoanStatusBorrowed || l.Status == LoanStatusOverdue
}

// LoanDetails is the display-oriented projection returned by the borrowing
// operations: the loan plus denormalized borrower and book fields.
type LoanDetails struct {
	Loan
	UserName   string `json:"user_name"`
	BookTitle  string `json:"book_title"`
	BookAuthor string `json:"book_author"`
}

// NewLoanDetails builds the projection from already-loaded entities.
func NewLoanDetails(loan *Loan, user *User, book *Book) *LoanDetails {
	return &LoanDetails{
		Loan:       *loan,
		UserName:   user.FullName(),
		BookTitle:  book.Title,
		BookAuthor: book.Author,
	}
}
