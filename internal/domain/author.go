package domain

import "encoding/json"

// Author representa um autor do acervo e os livros que ele possui.
type Author struct {
	ID    int64  `json:"id" db:"id"`
	Name  string `json:"name" db:"name"`
	Books []Book `json:"books" db:"-"`
}

// AuthorInput é o payload de criação e atualização de autor.
// Em atualizações, ID deve coincidir com o ID da URL.
type AuthorInput struct {
	ID   int64  `json:"id"`
	Name string `json:"name" example:"Jane Austen"`

	// Livros vindos de um GET reenviado; aceitos e ignorados.
	Books json.RawMessage `json:"books,omitempty" swaggerignore:"true"`
}

// AuthorStatistics resume o acervo de um autor.
// AvailableBooks + LoanedBooks == TotalBooks.
type AuthorStatistics struct {
	ID             int64  `json:"id" db:"id"`
	Name           string `json:"name" db:"name"`
	TotalBooks     int    `json:"totalBooks" db:"total_books"`
	AvailableBooks int    `json:"availableBooks" db:"available_books"`
	LoanedBooks    int    `json:"loanedBooks" db:"loaned_books"`
}

// Limites do nome do autor, aplicados depois do trim.
const (
	AuthorNameMinLength = 2
	AuthorNameMaxLength = 100
)
