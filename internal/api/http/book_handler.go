package http

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"library-backend/internal/domain"
	"library-backend/internal/service"

	"github.com/gorilla/mux"
)

type BookHandler struct {
	bookSvc service.BookService
}

func NewBookHandler(bookSvc service.BookService) *BookHandler {
	return &BookHandler{bookSvc: bookSvc}
}

type bookRequest struct {
	Title           string `json:"title"`
	Author          string `json:"author"`
	ISBN            string `json:"isbn"`
	PublicationDate string `json:"publication_date"`
	Genre           string `json:"genre"`
	Description     string `json:"description"`
	Publisher       string `json:"publisher"`
	PageCount       int32  `json:"page_count"`
}

func (req *bookRequest) toDomain() (*domain.Book, error) {
	pubDate, err := time.Parse("2006-01-02", req.PublicationDate)
	if err != nil {
		return nil, err
	}
	return &domain.Book{
		Title:           req.Title,
		Author:          req.Author,
		ISBN:            req.ISBN,
		PublicationDate: pubDate,
		Genre:           domain.Genre(req.Genre),
		Description:     req.Description,
		Publisher:       req.Publisher,
		PageCount:       req.PageCount,
	}, nil
}

func (h *BookHandler) Create(w http.ResponseWriter, r *http.Request) {
	if !isLibrarian(r) {
		writeJSON(w, http.StatusForbidden, errorResponse{Error: "only librarians can manage the catalog"})
		return
	}

	var req bookRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}
	book, err := req.toDomain()
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "publication_date must be YYYY-MM-DD"})
		return
	}

	if err := h.bookSvc.AddBook(r.Context(), book); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, book)
}

func (h *BookHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid book id"})
		return
	}

	book, err := h.bookSvc.GetBook(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, book)
}

func (h *BookHandler) GetByISBN(w http.ResponseWriter, r *http.Request) {
	isbn := mux.Vars(r)["isbn"]

	book, err := h.bookSvc.GetBookByISBN(r.Context(), isbn)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, book)
}

func (h *BookHandler) Update(w http.ResponseWriter, r *http.Request) {
	if !isLibrarian(r) {
		writeJSON(w, http.StatusForbidden, errorResponse{Error: "only librarians can manage the catalog"})
		return
	}

	id, err := pathID(r, "id")
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid book id"})
		return
	}

	var req bookRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}
	book, err := req.toDomain()
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "publication_date must be YYYY-MM-DD"})
		return
	}
	book.ID = id

	if err := h.bookSvc.UpdateBook(r.Context(), book); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, book)
}

func (h *BookHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if !isLibrarian(r) {
		writeJSON(w, http.StatusForbidden, errorResponse{Error: "only librarians can manage the catalog"})
		return
	}

	id, err := pathID(r, "id")
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid book id"})
		return
	}

	if err := h.bookSvc.DeleteBook(r.Context(), id); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *BookHandler) List(w http.ResponseWriter, r *http.Request) {
	page, pageSize := pagination(r)

	if query := r.URL.Query().Get("q"); query != "" {
		books, total, err := h.bookSvc.SearchBooks(r.Context(), query, page, pageSize)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, pagedResponse{Items: books, Total: total, Page: page, PageSize: pageSize})
		return
	}

	books, total, err := h.bookSvc.ListBooks(r.Context(), page, pageSize)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, pagedResponse{Items: books, Total: total, Page: page, PageSize: pageSize})
}

type pagedResponse struct {
	Items    interface{} `json:"items"`
	Total    int32       `json:"total"`
	Page     int32       `json:"page"`
	PageSize int32       `json:"page_size"`
}

func pathID(r *http.Request, name string) (int64, error) {
	return strconv.ParseInt(mux.Vars(r)[name], 10, 64)
}

func pagination(r *http.Request) (int32, int32) {
	page := int32(1)
	pageSize := int32(20)
	if v, err := strconv.Atoi(r.URL.Query().Get("page")); err == nil && v > 0 {
		page = int32(v)
	}
	if v, err := strconv.Atoi(r.URL.Query().Get("page_size")); err == nil && v > 0 && v <= 100 {
		pageSize = int32(v)
	}
	return page, pageSize
}
