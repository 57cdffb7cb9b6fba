package jobs

import (
	"context"
	"time"

	"library-backend/internal/logger"
)

// MarkOverdueLoans promotes BORROWED loans past their due date to OVERDUE.
func (jr *JobRunner) MarkOverdueLoans() {
	jr.runWithRecovery("MarkOverdueLoans", func() {
		ctx := context.Background()

		count, err := jr.services.Borrowing.MarkOverdueLoans(ctx, time.Now())
		if err != nil {
			logger.Error("Failed to mark overdue loans", "error", err)
			return
		}
		logger.Info("Marked loans as overdue", "count", count)
	})
}

// SendOverdueReminders emails every patron currently holding an OVERDUE loan.
func (jr *JobRunner) SendOverdueReminders() {
	jr.runWithRecovery("SendOverdueReminders", func() {
		ctx := context.Background()

		overdue, err := jr.services.Borrowing.ListOverdueLoans(ctx)
		if err != nil {
			logger.Error("Failed to list overdue loans", "error", err)
			return
		}

		sent := 0
		for _, loan := range overdue {
			user, err := jr.store.Users().GetByID(ctx, loan.UserID)
			if err != nil {
				logger.Error("Failed to load borrower for reminder", "loan_id", loan.ID, "error", err)
				continue
			}
			if err := jr.services.Email.SendOverdueReminder(ctx, user.Email, user.FullName(), loan.BookTitle, loan.DueDate); err != nil {
				logger.Error("Failed to send overdue reminder", "loan_id", loan.ID, "error", err)
				continue
			}
			sent++
		}
		logger.Info("Sent overdue reminders", "count", sent, "overdue_loans", len(overdue))
	})
}
