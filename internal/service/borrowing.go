package service

import (
	"context"
	"errors"
	"time"

	"library-backend/internal/domain"
	"library-backend/internal/logger"
	"library-backend/internal/repository"
)

type borrowingService struct {
	store    repository.Store
	notifier AvailabilityNotifier
	locks    *keyedMutex

	maxActiveLoans    int
	defaultPeriodDays int
}

func NewBorrowingService(store repository.Store, notifier AvailabilityNotifier, maxActiveLoans, defaultPeriodDays int) BorrowingService {
	return &borrowingService{
		store:             store,
		notifier:          notifier,
		locks:             newKeyedMutex(),
		maxActiveLoans:    maxActiveLoans,
		defaultPeriodDays: defaultPeriodDays,
	}
}

// BorrowBook runs the borrow workflow: role gate, availability check with
// the stale-flag repair branch, loan-limit check, then loan creation and
// the availability flip as one transaction. The availability event is
// published only after the transaction commits.
func (s *borrowingService) BorrowBook(ctx context.Context, userID, bookID int64, requestedDueDate *time.Time) (*domain.LoanDetails, error) {
	if requestedDueDate != nil && !requestedDueDate.After(time.Now()) {
		return nil, domain.ErrInvalidDueDate
	}

	unlock := s.locks.lockPair(bookLockKey(bookID), userLockKey(userID))
	defer unlock()

	var details *domain.LoanDetails
	err := s.store.WithinTx(ctx, func(tx repository.Store) error {
		user, err := tx.Users().GetByID(ctx, userID)
		if err != nil {
			return err
		}

		if user.Role != domain.RolePatron {
			logger.Warn("Borrowing rejected, user is not a patron", "user_id", userID, "role", user.Role)
			return domain.ErrRoleNotPermitted
		}

		book, err := tx.Books().GetByID(ctx, bookID)
		if err != nil {
			return err
		}

		if !book.Available {
			active, err := tx.Loans().GetActiveByBook(ctx, bookID)
			if err != nil && !errors.Is(err, domain.ErrLoanNotFound) {
				return err
			}
			if active != nil {
				logger.Warn("Book not available for borrowing",
					"book_id", bookID, "holder_id", active.UserID, "loan_id", active.ID)
				return &domain.BookNotAvailableError{BookID: bookID, LoanID: active.ID, HolderID: active.UserID}
			}
			// The flag says unavailable but no active loan references the
			// book. Treat as stale state and repair it rather than reject.
			logger.Warn("Correcting stale availability flag", "book_id", bookID, "title", book.Title)
			book.Available = true
		}

		activeCount, err := tx.Loans().CountByUserAndStatuses(ctx, userID, domain.ActiveLoanStatuses)
		if err != nil {
			return err
		}
		if activeCount >= s.maxActiveLoans {
			logger.Warn("Borrowing limit exceeded", "user_id", userID, "active_loans", activeCount, "limit", s.maxActiveLoans)
			return &domain.BorrowingLimitError{UserID: userID, ActiveLoans: activeCount, Limit: s.maxActiveLoans}
		}

		borrowDate := time.Now()
		dueDate := borrowDate.AddDate(0, 0, s.defaultPeriodDays)
		if requestedDueDate != nil {
			dueDate = *requestedDueDate
		}

		loan := &domain.Loan{
			UserID:     userID,
			BookID:     bookID,
			BorrowDate: borrowDate,
			DueDate:    dueDate,
			Status:     domain.LoanStatusBorrowed,
		}

		book.Available = false
		if err := tx.Books().Update(ctx, book); err != nil {
			return err
		}
		if err := tx.Loans().Create(ctx, loan); err != nil {
			return err
		}

		details = domain.NewLoanDetails(loan, user, book)
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.notifier.Publish(bookID, details.BookTitle, false)
	logger.Info("Loan created", "loan_id", details.ID, "user_id", userID, "book_id", bookID, "due_date", details.DueDate)
	return details, nil
}

// ReturnBook validates ownership and state, then marks the loan RETURNED
// and the book available as one transaction.
func (s *borrowingService) ReturnBook(ctx context.Context, userID, loanID int64) (*domain.LoanDetails, error) {
	// Peek at the loan outside the lock to learn which entities to
	// serialize on; all checks re-run inside the transaction.
	peek, err := s.store.Loans().GetByID(ctx, loanID)
	if err != nil {
		return nil, err
	}

	unlock := s.locks.lockPair(bookLockKey(peek.BookID), userLockKey(peek.UserID))
	defer unlock()

	var details *domain.LoanDetails
	err = s.store.WithinTx(ctx, func(tx repository.Store) error {
		loan, err := tx.Loans().GetByID(ctx, loanID)
		if err != nil {
			return err
		}

		if loan.UserID != userID {
			logger.Warn("Return rejected, loan belongs to another user",
				"loan_id", loanID, "owner_id", loan.UserID, "caller_id", userID)
			return domain.ErrLoanOwnershipMismatch
		}

		if !loan.IsActive() {
			logger.Warn("Return rejected, loan is not active", "loan_id", loanID, "status", loan.Status)
			return domain.ErrInvalidLoanState
		}

		returnDate := time.Now()
		loan.ReturnDate = &returnDate
		loan.Status = domain.LoanStatusReturned
		if err := tx.Loans().Update(ctx, loan); err != nil {
			return err
		}

		book, err := tx.Books().GetByID(ctx, loan.BookID)
		if err != nil {
			return err
		}
		book.Available = true
		if err := tx.Books().Update(ctx, book); err != nil {
			return err
		}

		user, err := tx.Users().GetByID(ctx, loan.UserID)
		if err != nil {
			return err
		}

		details = domain.NewLoanDetails(loan, user, book)
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.notifier.Publish(details.BookID, details.BookTitle, true)
	logger.Info("Loan returned", "loan_id", loanID, "user_id", userID, "book_id", details.BookID)
	return details, nil
}

func (s *borrowingService) GetLoan(ctx context.Context, loanID int64) (*domain.LoanDetails, error) {
	return s.store.Loans().GetDetailsByID(ctx, loanID)
}

func (s *borrowingService) ListUserLoans(ctx context.Context, userID int64, page, pageSize int32) ([]domain.LoanDetails, int32, error) {
	if _, err := s.store.Users().GetByID(ctx, userID); err != nil {
		return nil, 0, err
	}
	return s.store.Loans().ListByUser(ctx, userID, page, pageSize)
}

func (s *borrowingService) ListUserActiveLoans(ctx context.Context, userID int64, page, pageSize int32) ([]domain.LoanDetails, int32, error) {
	if _, err := s.store.Users().GetByID(ctx, userID); err != nil {
		return nil, 0, err
	}
	return s.store.Loans().ListByUserAndStatuses(ctx, userID, domain.ActiveLoanStatuses, page, pageSize)
}

func (s *borrowingService) ListUserLoanHistory(ctx context.Context, userID int64, page, pageSize int32) ([]domain.LoanDetails, int32, error) {
	if _, err := s.store.Users().GetByID(ctx, userID); err != nil {
		return nil, 0, err
	}
	return s.store.Loans().ListByUserAndStatuses(ctx, userID, []domain.LoanStatus{domain.LoanStatusReturned}, page, pageSize)
}

func (s *borrowingService) ListLoansByStatus(ctx context.Context, status domain.LoanStatus, page, pageSize int32) ([]domain.LoanDetails, int32, error) {
	return s.store.Loans().ListByStatus(ctx, status, page, pageSize)
}

func (s *borrowingService) ListAllLoans(ctx context.Context, page, pageSize int32) ([]domain.LoanDetails, int32, error) {
	return s.store.Loans().ListAll(ctx, page, pageSize)
}

func (s *borrowingService) ListOverdueLoans(ctx context.Context) ([]domain.LoanDetails, error) {
	return s.store.Loans().ListAllByStatus(ctx, domain.LoanStatusOverdue)
}

// MarkOverdueLoans is the recurring sweep. It promotes each BORROWED loan
// past its due date to OVERDUE. Book availability is untouched: an overdue
// book was already unavailable while BORROWED. The write is guarded on the
// BORROWED status so re-runs and concurrent returns are safe.
func (s *borrowingService) MarkOverdueLoans(ctx context.Context, today time.Time) (int, error) {
	due, err := s.store.Loans().ListDueBefore(ctx, today)
	if err != nil {
		return 0, err
	}

	promoted := 0
	for _, loan := range due {
		ok, err := s.store.Loans().PromoteToOverdue(ctx, loan.ID)
		if err != nil {
			return promoted, err
		}
		if ok {
			promoted++
			logger.Debug("Loan promoted to overdue", "loan_id", loan.ID, "user_id", loan.UserID, "due_date", loan.DueDate)
		}
	}

	if promoted > 0 {
		logger.Info("Overdue sweep promoted loans", "count", promoted, "today", today.Format("2006-01-02"))
	} else {
		logger.Info("Overdue sweep found nothing to promote", "today", today.Format("2006-01-02"))
	}
	return promoted, nil
}
