package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"library-backend/internal/domain"
	"library-backend/internal/repository"

	"github.com/lib/pq"
)

type loanRepository struct {
	db DBTX
}

func NewLoanRepository(db DBTX) repository.LoanRepository {
	return &loanRepository{db: db}
}

const loanDetailsColumns = `l.id, l.user_id, l.book_id, l.borrow_date, l.due_date, l.return_date, l.status, l.created_on, l.updated_on,
	       u.first_name || ' ' || u.last_name, b.title, b.author`

const loanDetailsFrom = ` FROM loans l JOIN users u ON u.id = l.user_id JOIN books b ON b.id = l.book_id`

func scanLoanDetails(row interface{ Scan(...interface{}) error }, d *domain.LoanDetails) error {
	return row.Scan(&d.ID, &d.UserID, &d.BookID, &d.BorrowDate, &d.DueDate, &d.ReturnDate,
		&d.Status, &d.CreatedOn, &d.UpdatedOn, &d.UserName, &d.BookTitle, &d.BookAuthor)
}

func statusStrings(statuses []domain.LoanStatus) []string {
	out := make([]string, len(statuses))
	for i, s := range statuses {
		out[i] = string(s)
	}
	return out
}

func (r *loanRepository) Create(ctx context.Context, l *domain.Loan) error {
	query := `INSERT INTO loans (user_id, book_id, borrow_date, due_date, status, created_on)
	          VALUES ($1, $2, $3, $4, $5, $6) RETURNING id, created_on`
	err := r.db.QueryRowContext(ctx, query, l.UserID, l.BookID, l.BorrowDate, l.DueDate, l.Status, time.Now()).
		Scan(&l.ID, &l.CreatedOn)
	if err != nil {
		return fmt.Errorf("failed to create loan: %w", err)
	}
	return nil
}

func (r *loanRepository) GetByID(ctx context.Context, id int64) (*domain.Loan, error) {
	l := &domain.Loan{}
	query := `SELECT id, user_id, book_id, borrow_date, due_date, return_date, status, created_on, updated_on
	          FROM loans WHERE id = $1`
	err := r.db.QueryRowContext(ctx, query, id).
		Scan(&l.ID, &l.UserID, &l.BookID, &l.BorrowDate, &l.DueDate, &l.ReturnDate, &l.Status, &l.CreatedOn, &l.UpdatedOn)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("loan %d: %w", id, domain.ErrLoanNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get loan %d: %w", id, err)
	}
	return l, nil
}

func (r *loanRepository) GetDetailsByID(ctx context.Context, id int64) (*domain.LoanDetails, error) {
	d := &domain.LoanDetails{}
	query := `SELECT ` + loanDetailsColumns + loanDetailsFrom + ` WHERE l.id = $1`
	err := scanLoanDetails(r.db.QueryRowContext(ctx, query, id), d)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("loan %d: %w", id, domain.ErrLoanNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get loan details %d: %w", id, err)
	}
	return d, nil
}

func (r *loanRepository) GetActiveByBook(ctx context.Context, bookID int64) (*domain.Loan, error) {
	l := &domain.Loan{}
	query := `SELECT id, user_id, book_id, borrow_date, due_date, return_date, status, created_on, updated_on
	          FROM loans WHERE book_id = $1 AND status <> $2 ORDER BY created_on DESC LIMIT 1`
	err := r.db.QueryRowContext(ctx, query, bookID, domain.LoanStatusReturned).
		Scan(&l.ID, &l.UserID, &l.BookID, &l.BorrowDate, &l.DueDate, &l.ReturnDate, &l.Status, &l.CreatedOn, &l.UpdatedOn)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("no active loan for book %d: %w", bookID, domain.ErrLoanNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get active loan for book %d: %w", bookID, err)
	}
	return l, nil
}

func (r *loanRepository) CountByUserAndStatuses(ctx context.Context, userID int64, statuses []domain.LoanStatus) (int, error) {
	var count int
	query := `SELECT count(*) FROM loans WHERE user_id = $1 AND status = ANY($2)`
	err := r.db.QueryRowContext(ctx, query, userID, pq.Array(statusStrings(statuses))).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count loans for user %d: %w", userID, err)
	}
	return count, nil
}

func (r *loanRepository) Update(ctx context.Context, l *domain.Loan) error {
	query := `UPDATE loans SET status=$1, return_date=$2, updated_on=$3 WHERE id=$4`
	_, err := r.db.ExecContext(ctx, query, l.Status, l.ReturnDate, time.Now(), l.ID)
	if err != nil {
		return fmt.Errorf("failed to update loan %d: %w", l.ID, err)
	}
	return nil
}

func (r *loanRepository) PromoteToOverdue(ctx context.Context, id int64) (bool, error) {
	query := `UPDATE loans SET status=$1, updated_on=$2 WHERE id=$3 AND status=$4`
	res, err := r.db.ExecContext(ctx, query, domain.LoanStatusOverdue, time.Now(), id, domain.LoanStatusBorrowed)
	if err != nil {
		return false, fmt.Errorf("failed to promote loan %d to overdue: %w", id, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func (r *loanRepository) listDetails(ctx context.Context, where string, page, pageSize int32, args ...interface{}) ([]domain.LoanDetails, int32, error) {
	var count int32
	countSQL := `SELECT count(*)` + loanDetailsFrom + where
	if err := r.db.QueryRowContext(ctx, countSQL, args...).Scan(&count); err != nil {
		return nil, 0, fmt.Errorf("failed to count loans: %w", err)
	}

	offset := (page - 1) * pageSize
	listSQL := fmt.Sprintf(`SELECT %s%s%s ORDER BY l.created_on DESC LIMIT $%d OFFSET $%d`,
		loanDetailsColumns, loanDetailsFrom, where, len(args)+1, len(args)+2)
	args = append(args, pageSize, offset)

	rows, err := r.db.QueryContext(ctx, listSQL, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list loans: %w", err)
	}
	defer rows.Close()

	var loans []domain.LoanDetails
	for rows.Next() {
		var d domain.LoanDetails
		if err := scanLoanDetails(rows, &d); err != nil {
			return nil, 0, err
		}
		loans = append(loans, d)
	}
	return loans, count, rows.Err()
}

func (r *loanRepository) ListByUser(ctx context.Context, userID int64, page, pageSize int32) ([]domain.LoanDetails, int32, error) {
	return r.listDetails(ctx, ` WHERE l.user_id = $1`, page, pageSize, userID)
}

func (r *loanRepository) ListByUserAndStatuses(ctx context.Context, userID int64, statuses []domain.LoanStatus, page, pageSize int32) ([]domain.LoanDetails, int32, error) {
	return r.listDetails(ctx, ` WHERE l.user_id = $1 AND l.status = ANY($2)`, page, pageSize, userID, pq.Array(statusStrings(statuses)))
}

func (r *loanRepository) ListByStatus(ctx context.Context, status domain.LoanStatus, page, pageSize int32) ([]domain.LoanDetails, int32, error) {
	return r.listDetails(ctx, ` WHERE l.status = $1`, page, pageSize, status)
}

func (r *loanRepository) ListAll(ctx context.Context, page, pageSize int32) ([]domain.LoanDetails, int32, error) {
	return r.listDetails(ctx, ``, page, pageSize)
}

func (r *loanRepository) ListAllByStatus(ctx context.Context, status domain.LoanStatus) ([]domain.LoanDetails, error) {
	query := `SELECT ` + loanDetailsColumns + loanDetailsFrom + ` WHERE l.status = $1 ORDER BY l.due_date`
	rows, err := r.db.QueryContext(ctx, query, status)
	if err != nil {
		return nil, fmt.Errorf("failed to list loans by status: %w", err)
	}
	defer rows.Close()

	var loans []domain.LoanDetails
	for rows.Next() {
		var d domain.LoanDetails
		if err := scanLoanDetails(rows, &d); err != nil {
			return nil, err
		}
		loans = append(loans, d)
	}
	return loans, rows.Err()
}

func (r *loanRepository) ListDueBefore(ctx context.Context, today time.Time) ([]domain.Loan, error) {
	query := `SELECT id, user_id, book_id, borrow_date, due_date, return_date, status, created_on, updated_on
	          FROM loans WHERE status = $1 AND due_date < $2`
	rows, err := r.db.QueryContext(ctx, query, domain.LoanStatusBorrowed, today)
	if err != nil {
		return nil, fmt.Errorf("failed to list due loans: %w", err)
	}
	defer rows.Close()

	var loans []domain.Loan
	for rows.Next() {
		var l domain.Loan
		if err := rows.Scan(&l.ID, &l.UserID, &l.BookID, &l.BorrowDate, &l.DueDate, &l.ReturnDate, &l.Status, &l.CreatedOn, &l.UpdatedOn); err != nil {
			return nil, err
		}
		loans = append(loans, l)
	}
	return loans, rows.Err()
}
