package http

import (
	"net/http"

	"github.com/gorilla/mux"
)

// Handlers bundles the HTTP handlers wired into the router.
type Handlers struct {
	Auth         *AuthHandler
	Books        *BookHandler
	Borrowings   *BorrowingHandler
	Users        *UserHandler
	Availability *AvailabilityHandler
}

// NewRouter assembles the API routes. Auth endpoints and the availability
// stream are public; everything else requires a bearer token.
func NewRouter(h Handlers, auth *AuthMiddleware) *mux.Router {
	r := mux.NewRouter()

	api := r.PathPrefix("/api").Subrouter()

	api.HandleFunc("/auth/register", h.Auth.Register).Methods(http.MethodPost)
	api.HandleFunc("/auth/login", h.Auth.Login).Methods(http.MethodPost)
	api.HandleFunc("/books/availability/stream", h.Availability.Stream).Methods(http.MethodGet)

	protected := api.NewRoute().Subrouter()
	protected.Use(auth.Handler)

	protected.HandleFunc("/books", h.Books.List).Methods(http.MethodGet)
	protected.HandleFunc("/books", h.Books.Create).Methods(http.MethodPost)
	protected.HandleFunc("/books/isbn/{isbn}", h.Books.GetByISBN).Methods(http.MethodGet)
	protected.HandleFunc("/books/{id:[0-9]+}", h.Books.Get).Methods(http.MethodGet)
	protected.HandleFunc("/books/{id:[0-9]+}", h.Books.Update).Methods(http.MethodPut)
	protected.HandleFunc("/books/{id:[0-9]+}", h.Books.Delete).Methods(http.MethodDelete)

	protected.HandleFunc("/borrowings", h.Borrowings.Borrow).Methods(http.MethodPost)
	protected.HandleFunc("/borrowings/{id:[0-9]+}/return", h.Borrowings.Return).Methods(http.MethodPost)
	protected.HandleFunc("/borrowings/{id:[0-9]+}", h.Borrowings.Get).Methods(http.MethodGet)
	protected.HandleFunc("/borrowings/me", h.Borrowings.ListMine).Methods(http.MethodGet)
	protected.HandleFunc("/borrowings/me/active", h.Borrowings.ListMineActive).Methods(http.MethodGet)
	protected.HandleFunc("/borrowings/me/history", h.Borrowings.ListMineHistory).Methods(http.MethodGet)
	protected.HandleFunc("/borrowings", h.Borrowings.ListAll).Methods(http.MethodGet).Queries("all", "true")
	protected.HandleFunc("/borrowings/status/{status}", h.Borrowings.ListByStatus).Methods(http.MethodGet)
	protected.HandleFunc("/borrowings/overdue", h.Borrowings.ListOverdue).Methods(http.MethodGet)

	protected.HandleFunc("/users/me", h.Users.GetMe).Methods(http.MethodGet)
	protected.HandleFunc("/users/me", h.Users.UpdateMe).Methods(http.MethodPut)

	return r
}
