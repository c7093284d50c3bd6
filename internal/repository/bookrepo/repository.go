package bookrepo

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"biblioteca/internal/domain"
	apperror "biblioteca/internal/errors"
	"biblioteca/internal/pkg/cache"
	"biblioteca/internal/pkg/database"
	"biblioteca/internal/pkg/logger"
)

// BookRepository implementa as operações CRUD de livros.
type BookRepository struct {
	DB        *sqlx.DB
	Cache     cache.Client
	DBTimeout time.Duration
	logger    logger.Logger
}

// NewBookRepository cria e retorna uma nova instância do Repositório de Livros.
// O cache é usado apenas para invalidar as estatísticas de autores.
func NewBookRepository(db *sqlx.DB, cacheClient cache.Client, dbTimeout time.Duration, logger logger.Logger) *BookRepository {
	if cacheClient == nil {
		cacheClient = cache.NopClient{}
	}
	return &BookRepository{
		DB:        db,
		Cache:     cacheClient,
		DBTimeout: dbTimeout,
		logger:    logger,
	}
}

// bookRow é a linha do JOIN books x authors.
type bookRow struct {
	domain.Book
	AuthorName sql.NullString `db:"author_name"`
}

func (row bookRow) toDomain() domain.Book {
	b := row.Book
	if row.AuthorName.Valid {
		b.Author = &domain.BookAuthor{ID: b.AuthorID, Name: row.AuthorName.String}
	}
	return b
}

const selectBooks = `
        SELECT b.id, b.title, b.publication_year, b.available, b.author_id, a.name AS author_name
        FROM books b
        LEFT JOIN authors a ON a.id = b.author_id`

// FindAll busca todos os livros com seus autores.
func (r *BookRepository) FindAll(ctx context.Context) ([]domain.Book, error) {
	r.logger.Debug("Iniciando FindAll de livros no repositório.", nil)

	ctxTimeout, cancel := context.WithTimeout(ctx, r.DBTimeout)
	defer cancel()

	var rows []bookRow
	if err := r.DB.SelectContext(ctxTimeout, &rows, selectBooks+` ORDER BY b.id`); err != nil {
		r.logger.Error("Falha ao buscar livros no DB.", err)
		return nil, apperror.NewDBError("Falha ao buscar livros", err)
	}

	books := make([]domain.Book, 0, len(rows))
	for _, row := range rows {
		books = append(books, row.toDomain())
	}

	r.logger.Debug("FindAll de livros concluído.", map[string]interface{}{"total_books": len(books)})
	return books, nil
}

// FindByID busca um livro pelo ID, com o autor.
func (r *BookRepository) FindByID(ctx context.Context, id int64) (domain.Book, error) {
	r.logger.Debug("Iniciando FindByID de livro no repositório.", map[string]interface{}{"id": id})

	ctxTimeout, cancel := context.WithTimeout(ctx, r.DBTimeout)
	defer cancel()

	var row bookRow
	err := r.DB.GetContext(ctxTimeout, &row, selectBooks+` WHERE b.id = $1`, id)
	if errors.Is(err, sql.ErrNoRows) {
		r.logger.Info("Livro não encontrado.", map[string]interface{}{"id": id})
		return domain.Book{}, apperror.NewNotFoundError(fmt.Sprintf("Livro com ID %d não encontrado", id))
	}
	if err != nil {
		r.logger.Error("Falha ao buscar livro no DB.", err)
		return domain.Book{}, apperror.NewDBError("Falha ao buscar livro", err)
	}

	return row.toDomain(), nil
}

// Exists indica se há um livro com o ID informado.
func (r *BookRepository) Exists(ctx context.Context, id int64) (bool, error) {
	ctxTimeout, cancel := context.WithTimeout(ctx, r.DBTimeout)
	defer cancel()

	var exists bool
	if err := r.DB.GetContext(ctxTimeout, &exists, `SELECT EXISTS(SELECT 1 FROM books WHERE id = $1)`, id); err != nil {
		r.logger.Error("Falha ao verificar existência de livro no DB.", err)
		return false, apperror.NewDBError("Falha ao verificar livro", err)
	}
	return exists, nil
}

// Create insere um novo livro e devolve-o com o ID gerado.
func (r *BookRepository) Create(ctx context.Context, book domain.Book) (domain.Book, error) {
	r.logger.Debug("Iniciando Create de livro no repositório.", map[string]interface{}{"title": book.Title, "author_id": book.AuthorID})

	ctxTimeout, cancel := context.WithTimeout(ctx, r.DBTimeout)
	defer cancel()

	query := `
        INSERT INTO books (title, publication_year, available, author_id)
        VALUES ($1, $2, $3, $4)
        RETURNING id`

	err := r.DB.QueryRowxContext(ctxTimeout, query,
		book.Title, book.PublicationYear, book.Available, book.AuthorID,
	).Scan(&book.ID)
	if err != nil {
		if database.IsForeignKeyViolation(err) {
			r.logger.Warn("FK rejeitou livro com autor inexistente.", map[string]interface{}{"author_id": book.AuthorID})
			return domain.Book{}, apperror.NewValidationError(fmt.Sprintf("Autor com ID %d não encontrado", book.AuthorID))
		}
		r.logger.Error("Falha ao inserir livro no DB.", err)
		return domain.Book{}, apperror.NewDBError("Falha ao criar livro", err)
	}

	r.invalidateStatistics(ctx)
	r.logger.Info("Livro inserido com sucesso.", map[string]interface{}{"id": book.ID, "title": book.Title})
	return book, nil
}

// Update substitui título, ano, disponibilidade e autor de um livro existente.
func (r *BookRepository) Update(ctx context.Context, book domain.Book) error {
	r.logger.Debug("Iniciando Update de livro no repositório.", map[string]interface{}{"id": book.ID})

	ctxTimeout, cancel := context.WithTimeout(ctx, r.DBTimeout)
	defer cancel()

	query := `
        UPDATE books
        SET title = $1, publication_year = $2, available = $3, author_id = $4
        WHERE id = $5`

	result, err := r.DB.ExecContext(ctxTimeout, query,
		book.Title, book.PublicationYear, book.Available, book.AuthorID, book.ID,
	)
	if err != nil {
		if database.IsForeignKeyViolation(err) {
			r.logger.Warn("FK rejeitou atualização de livro com autor inexistente.", map[string]interface{}{"id": book.ID, "author_id": book.AuthorID})
			return apperror.NewValidationError(fmt.Sprintf("Autor com ID %d não encontrado", book.AuthorID))
		}
		r.logger.Error("Falha ao atualizar livro no DB.", err)
		return apperror.NewDBError("Falha ao atualizar livro", err)
	}

	if err := r.requireAffected(result, book.ID); err != nil {
		return err
	}

	r.invalidateStatistics(ctx)
	r.logger.Info("Livro atualizado com sucesso.", map[string]interface{}{"id": book.ID})
	return nil
}

// Delete remove um livro pelo ID. O histórico de empréstimos sai junto (ON DELETE CASCADE).
func (r *BookRepository) Delete(ctx context.Context, id int64) error {
	r.logger.Debug("Iniciando Delete de livro no repositório.", map[string]interface{}{"id": id})

	ctxTimeout, cancel := context.WithTimeout(ctx, r.DBTimeout)
	defer cancel()

	result, err := r.DB.ExecContext(ctxTimeout, `DELETE FROM books WHERE id = $1`, id)
	if err != nil {
		r.logger.Error("Falha ao deletar livro do DB.", err)
		return apperror.NewDBError("Falha ao deletar livro", err)
	}

	if err := r.requireAffected(result, id); err != nil {
		return err
	}

	r.invalidateStatistics(ctx)
	r.logger.Info("Livro deletado com sucesso.", map[string]interface{}{"id": id})
	return nil
}

func (r *BookRepository) requireAffected(result sql.Result, id int64) error {
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		r.logger.Error("Falha ao verificar linhas afetadas.", err)
		return apperror.NewDBError("Falha ao verificar linhas afetadas", err)
	}
	if rowsAffected == 0 {
		r.logger.Info("Livro não encontrado para escrita.", map[string]interface{}{"id": id})
		return apperror.NewNotFoundError(fmt.Sprintf("Livro com ID %d não encontrado", id))
	}
	return nil
}

func (r *BookRepository) invalidateStatistics(ctx context.Context) {
	if err := cache.BumpVersion(ctx, r.Cache, cache.AuthorStatisticsKey); err != nil {
		r.logger.Warn("Falha ao invalidar estatísticas no cache.", map[string]interface{}{"error": err.Error()})
	}
}
