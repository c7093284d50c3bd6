package domain

import "time"

// Loan representa um empréstimo de livro a um usuário.
// ReturnDate nulo significa empréstimo em aberto.
type Loan struct {
	ID         int64      `json:"id" db:"id"`
	UserID     int64      `json:"userId" db:"user_id"`
	BookID     int64      `json:"bookId" db:"book_id"`
	ReturnDate *time.Time `json:"returnDate" db:"return_date"`
}

