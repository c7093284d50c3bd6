package domain

import "encoding/json"

// Book representa um livro do acervo.
type Book struct {
	ID              int64       `json:"id" db:"id"`
	Title           string      `json:"title" db:"title"`
	PublicationYear int         `json:"publicationYear" db:"publication_year"`
	Available       bool        `json:"available" db:"available"`
	AuthorID        int64       `json:"authorId" db:"author_id"`
	Author          *BookAuthor `json:"author,omitempty" db:"-"`
}

// BookAuthor é a visão resumida do autor embutida nas leituras de livro.
type BookAuthor struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// BookInput é o payload de criação e atualização de livro.
// Available ausente equivale a true.
type BookInput struct {
	ID              int64  `json:"id"`
	Title           string `json:"title" example:"Emma"`
	PublicationYear int    `json:"publicationYear" example:"1815"`
	Available       *bool  `json:"available,omitempty"`
	AuthorID        int64  `json:"authorId" example:"1"`

	// Autor embutido de um GET reenviado; só authorId vale.
	Author json.RawMessage `json:"author,omitempty" swaggerignore:"true"`
}

// IsAvailable aplica o default (true) do campo Available.
func (in BookInput) IsAvailable() bool {
	if in.Available == nil {
		return true
	}
	return *in.Available
}
