package loanrepo

import (
	"context"
	"time"

	"github.com/jmoiron/sqlx"

	apperror "biblioteca/internal/errors"
	"biblioteca/internal/pkg/logger"
)

// LoanRepository expõe as consultas de empréstimo usadas pelo catálogo.
// O ciclo de vida dos empréstimos é gerido fora desta API.
type LoanRepository struct {
	DB        *sqlx.DB
	DBTimeout time.Duration
	logger    logger.Logger
}

func NewLoanRepository(db *sqlx.DB, dbTimeout time.Duration, logger logger.Logger) *LoanRepository {
	return &LoanRepository{DB: db, DBTimeout: dbTimeout, logger: logger}
}

// HasOpenLoanForBook indica se o livro tem empréstimo sem data de devolução.
func (r *LoanRepository) HasOpenLoanForBook(ctx context.Context, bookID int64) (bool, error) {
	ctxTimeout, cancel := context.WithTimeout(ctx, r.DBTimeout)
	defer cancel()

	query := `SELECT EXISTS(SELECT 1 FROM loans WHERE book_id = $1 AND return_date IS NULL)`

	var open bool
	if err := r.DB.GetContext(ctxTimeout, &open, query, bookID); err != nil {
		r.logger.Error("Falha ao verificar empréstimos ativos no DB.", err)
		return false, apperror.NewDBError("Falha ao verificar empréstimos", err)
	}

	r.logger.Debug("Empréstimos ativos verificados.", map[string]interface{}{"book_id": bookID, "open": open})
	return open, nil
}
