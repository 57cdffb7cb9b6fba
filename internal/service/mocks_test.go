package service

import (
	"context"
	"sync"
	"time"

	"library-backend/internal/domain"
	"library-backend/internal/repository"

	"github.com/stretchr/testify/mock"
)

// MockUserRepo
type MockUserRepo struct {
	mock.Mock
}

func (m *MockUserRepo) Create(ctx context.Context, user *domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}
func (m *MockUserRepo) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}
func (m *MockUserRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}
func (m *MockUserRepo) Update(ctx context.Context, user *domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

// MockBookRepo
type MockBookRepo struct {
	mock.Mock
}

func (m *MockBookRepo) Create(ctx context.Context, book *domain.Book) error {
	args := m.Called(ctx, book)
	return args.Error(0)
}
func (m *MockBookRepo) GetByID(ctx context.Context, id int64) (*domain.Book, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Book), args.Error(1)
}
func (m *MockBookRepo) GetByISBN(ctx context.Context, isbn string) (*domain.Book, error) {
	args := m.Called(ctx, isbn)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Book), args.Error(1)
}
func (m *MockBookRepo) Exists(ctx context.Context, id int64) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}
func (m *MockBookRepo) Update(ctx context.Context, book *domain.Book) error {
	args := m.Called(ctx, book)
	return args.Error(0)
}
func (m *MockBookRepo) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}
func (m *MockBookRepo) List(ctx context.Context, page, pageSize int32) ([]domain.Book, int32, error) {
	args := m.Called(ctx, page, pageSize)
	return args.Get(0).([]domain.Book), args.Get(1).(int32), args.Error(2)
}
func (m *MockBookRepo) Search(ctx context.Context, query string, page, pageSize int32) ([]domain.Book, int32, error) {
	args := m.Called(ctx, query, page, pageSize)
	return args.Get(0).([]domain.Book), args.Get(1).(int32), args.Error(2)
}

// MockLoanRepo
type MockLoanRepo struct {
	mock.Mock
}

func (m *MockLoanRepo) Create(ctx context.Context, loan *domain.Loan) error {
	args := m.Called(ctx, loan)
	return args.Error(0)
}
func (m *MockLoanRepo) GetByID(ctx context.Context, id int64) (*domain.Loan, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Loan), args.Error(1)
}
func (m *MockLoanRepo) GetDetailsByID(ctx context.Context, id int64) (*domain.LoanDetails, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.LoanDetails), args.Error(1)
}
func (m *MockLoanRepo) GetActiveByBook(ctx context.Context, bookID int64) (*domain.Loan, error) {
	args := m.Called(ctx, bookID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Loan), args.Error(1)
}
func (m *MockLoanRepo) CountByUserAndStatuses(ctx context.Context, userID int64, statuses []domain.LoanStatus) (int, error) {
	args := m.Called(ctx, userID, statuses)
	return args.Int(0), args.Error(1)
}
func (m *MockLoanRepo) Update(ctx context.Context, loan *domain.Loan) error {
	args := m.Called(ctx, loan)
	return args.Error(0)
}
func (m *MockLoanRepo) PromoteToOverdue(ctx context.Context, id int64) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}
func (m *MockLoanRepo) ListByUser(ctx context.Context, userID int64, page, pageSize int32) ([]domain.LoanDetails, int32, error) {
	args := m.Called(ctx, userID, page, pageSize)
	return args.Get(0).([]domain.LoanDetails), args.Get(1).(int32), args.Error(2)
}
func (m *MockLoanRepo) ListByUserAndStatuses(ctx context.Context, userID int64, statuses []domain.LoanStatus, page, pageSize int32) ([]domain.LoanDetails, int32, error) {
	args := m.Called(ctx, userID, statuses, page, pageSize)
	return args.Get(0).([]domain.LoanDetails), args.Get(1).(int32), args.Error(2)
}
func (m *MockLoanRepo) ListByStatus(ctx context.Context, status domain.LoanStatus, page, pageSize int32) ([]domain.LoanDetails, int32, error) {
	args := m.Called(ctx, status, page, pageSize)
	return args.Get(0).([]domain.LoanDetails), args.Get(1).(int32), args.Error(2)
}
func (m *MockLoanRepo) ListAll(ctx context.Context, page, pageSize int32) ([]domain.LoanDetails, int32, error) {
	args := m.Called(ctx, page, pageSize)
	return args.Get(0).([]domain.LoanDetails), args.Get(1).(int32), args.Error(2)
}
func (m *MockLoanRepo) ListAllByStatus(ctx context.Context, status domain.LoanStatus) ([]domain.LoanDetails, error) {
	args := m.Called(ctx, status)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.LoanDetails), args.Error(1)
}
func (m *MockLoanRepo) ListDueBefore(ctx context.Context, today time.Time) ([]domain.Loan, error) {
	args := m.Called(ctx, today)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Loan), args.Error(1)
}

// mockStore hands the same repositories to transactional and
// non-transactional callers; WithinTx just runs fn against itself.
type mockStore struct {
	users *MockUserRepo
	books *MockBookRepo
	loans *MockLoanRepo
}

func newMockStore() *mockStore {
	return &mockStore{
		users: new(MockUserRepo),
		books: new(MockBookRepo),
		loans: new(MockLoanRepo),
	}
}

func (s *mockStore) Users() repository.UserRepository { return s.users }
func (s *mockStore) Books() repository.BookRepository { return s.books }
func (s *mockStore) Loans() repository.LoanRepository { return s.loans }
func (s *mockStore) WithinTx(ctx context.Context, fn func(repository.Store) error) error {
	return fn(s)
}

// recordingNotifier captures published availability events.
type recordingNotifier struct {
	mu     sync.Mutex
	events []domain.BookAvailabilityUpdate
}

func (n *recordingNotifier) Publish(bookID int64, title string, available bool) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.events = append(n.events, domain.BookAvailabilityUpdate{BookID: bookID, Title: title, Available: available})
}

func (n *recordingNotifier) all() []domain.BookAvailabilityUpdate {
	n.mu.Lock()
	defer n.mu.Unlock()
	out := make([]domain.BookAvailabilityUpdate, len(n.events))
	copy(out, n.events)
	return out
}
