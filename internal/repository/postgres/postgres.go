package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"library-backend/internal/repository"

	_ "github.com/lib/pq"
)

// DBTX is satisfied by both *sql.DB and *sql.Tx so the same repository code
// runs standalone or inside a transaction.
type DBTX interface {
	ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...interface{}) *sql.Row
}

type Store struct {
	db    *sql.DB
	users repository.UserRepository
	books repository.BookRepository
	loans repository.LoanRepository
}

func NewStore(db *sql.DB) *Store {
	return &Store{
		db:    db,
		users: NewUserRepository(db),
		books: NewBookRepository(db),
		loans: NewLoanRepository(db),
	}
}

func (s *Store) Users() repository.UserRepository { return s.users }
func (s *Store) Books() repository.BookRepository { return s.books }
func (s *Store) Loans() repository.LoanRepository { return s.loans }

// WithinTx runs fn with repositories bound to one transaction. The
// transaction commits only if fn returns nil; otherwise everything rolls
// back, so the caller sees all-or-nothing writes.
func (s *Store) WithinTx(ctx context.Context, fn func(repository.Store) error) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	txStore := &Store{
		db:    s.db,
		users: NewUserRepository(tx),
		books: NewBookRepository(tx),
		loans: NewLoanRepository(tx),
	}

	if err := fn(txStore); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil && rbErr != sql.ErrTxDone {
			return fmt.Errorf("rollback failed: %v (original error: %w)", rbErr, err)
		}
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}
