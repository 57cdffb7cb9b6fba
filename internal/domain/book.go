package domain

import "time"

type Genre string

const (
	GenreFiction    Genre = "FICTION"
	GenreNonFiction Genre = "NON_FICTION"
	GenreScience    Genre = "SCIENCE"
	GenreHistory    Genre = "HISTORY"
	GenreBiography  Genre = "BIOGRAPHY"
	GenreFantasy    Genre = "FANTASY"
	GenreMystery    Genre = "MYSTERY"
	GenreChildren   Genre = "CHILDREN"
	GenreOther      Genre = "OTHER"
)

type Book struct {
	ID              int64      `json:"id"`
	Title           string     `json:"title"`
	Author          string     `json:"author"`
	ISBN            string     `json:"isbn"`
	PublicationDate time.Time  `json:"publication_date"`
	Genre           Genre      `json:"genre"`
	Description     string     `json:"description"`
	Publisher       string     `json:"publisher"`
	PageCount       int32      `json:"page_count"`
	// Available is derived state: true iff no loan referencing this book
	// is currently BORROWED or OVERDUE. Only the borrowing workflow
	// flips it.
	Available bool       `json:"available"`
	CreatedOn time.Time  `json:"created_on"`
	UpdatedOn *time.Time `json:"updated_on,omitempty"`
}
