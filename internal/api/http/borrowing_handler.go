package http

import (
	"encoding/json"
	"net/http"
	"time"

	"library-backend/internal/domain"
	"library-backend/internal/service"

	"github.com/gorilla/mux"
)

type BorrowingHandler struct {
	borrowingSvc service.BorrowingService
}

func NewBorrowingHandler(borrowingSvc service.BorrowingService) *BorrowingHandler {
	return &BorrowingHandler{borrowingSvc: borrowingSvc}
}

type borrowRequest struct {
	BookID  int64  `json:"book_id"`
	DueDate string `json:"due_date,omitempty"`
}

func (h *BorrowingHandler) Borrow(w http.ResponseWriter, r *http.Request) {
	var req borrowRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}
	if req.BookID == 0 {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "book_id is required"})
		return
	}

	var dueDate *time.Time
	if req.DueDate != "" {
		parsed, err := time.Parse("2006-01-02", req.DueDate)
		if err != nil {
			writeJSON(w, http.StatusBadRequest, errorResponse{Error: "due_date must be YYYY-MM-DD"})
			return
		}
		dueDate = &parsed
	}

	loan, err := h.borrowingSvc.BorrowBook(r.Context(), callerID(r), req.BookID, dueDate)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, loan)
}

func (h *BorrowingHandler) Return(w http.ResponseWriter, r *http.Request) {
	loanID, err := pathID(r, "id")
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid loan id"})
		return
	}

	loan, err := h.borrowingSvc.ReturnBook(r.Context(), callerID(r), loanID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, loan)
}

func (h *BorrowingHandler) Get(w http.ResponseWriter, r *http.Request) {
	loanID, err := pathID(r, "id")
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid loan id"})
		return
	}

	loan, err := h.borrowingSvc.GetLoan(r.Context(), loanID)
	if err != nil {
		writeError(w, err)
		return
	}
	if loan.UserID != callerID(r) && !isLibrarian(r) {
		writeJSON(w, http.StatusForbidden, errorResponse{Error: "not your loan"})
		return
	}
	writeJSON(w, http.StatusOK, loan)
}

func (h *BorrowingHandler) ListMine(w http.ResponseWriter, r *http.Request) {
	page, pageSize := pagination(r)
	loans, total, err := h.borrowingSvc.ListUserLoans(r.Context(), callerID(r), page, pageSize)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, pagedResponse{Items: loans, Total: total, Page: page, PageSize: pageSize})
}

func (h *BorrowingHandler) ListMineActive(w http.ResponseWriter, r *http.Request) {
	page, pageSize := pagination(r)
	loans, total, err := h.borrowingSvc.ListUserActiveLoans(r.Context(), callerID(r), page, pageSize)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, pagedResponse{Items: loans, Total: total, Page: page, PageSize: pageSize})
}

func (h *BorrowingHandler) ListMineHistory(w http.ResponseWriter, r *http.Request) {
	page, pageSize := pagination(r)
	loans, total, err := h.borrowingSvc.ListUserLoanHistory(r.Context(), callerID(r), page, pageSize)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, pagedResponse{Items: loans, Total: total, Page: page, PageSize: pageSize})
}

func (h *BorrowingHandler) ListAll(w http.ResponseWriter, r *http.Request) {
	if !isLibrarian(r) {
		writeJSON(w, http.StatusForbidden, errorResponse{Error: "librarian access required"})
		return
	}

	page, pageSize := pagination(r)
	loans, total, err := h.borrowingSvc.ListAllLoans(r.Context(), page, pageSize)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, pagedResponse{Items: loans, Total: total, Page: page, PageSize: pageSize})
}

func (h *BorrowingHandler) ListByStatus(w http.ResponseWriter, r *http.Request) {
	if !isLibrarian(r) {
		writeJSON(w, http.StatusForbidden, errorResponse{Error: "librarian access required"})
		return
	}

	status := domain.LoanStatus(mux.Vars(r)["status"])
	switch status {
	case domain.LoanStatusBorrowed, domain.LoanStatusOverdue, domain.LoanStatusReturned, domain.LoanStatusLost:
	default:
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "unknown loan status"})
		return
	}

	page, pageSize := pagination(r)
	loans, total, err := h.borrowingSvc.ListLoansByStatus(r.Context(), status, page, pageSize)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, pagedResponse{Items: loans, Total: total, Page: page, PageSize: pageSize})
}

func (h *BorrowingHandler) ListOverdue(w http.ResponseWriter, r *http.Request) {
	if !isLibrarian(r) {
		writeJSON(w, http.StatusForbidden, errorResponse{Error: "librarian access required"})
		return
	}

	loans, err := h.borrowingSvc.ListOverdueLoans(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, loans)
}
