package authorrepo

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"biblioteca/internal/domain"
	apperror "biblioteca/internal/errors"
	"biblioteca/internal/pkg/cache"
	"biblioteca/internal/pkg/database"
	"biblioteca/internal/pkg/logger"
)

// AuthorRepository acessa as tabelas authors e books.
// As estatísticas seguem a estratégia Cache-Aside.
type AuthorRepository struct {
	DB        *sqlx.DB
	Cache     cache.Client
	DBTimeout time.Duration
	CacheTTL  time.Duration
	logger    logger.Logger
}

// NewAuthorRepository cria e retorna uma nova instância do Repositório de Autores.
func NewAuthorRepository(db *sqlx.DB, cacheClient cache.Client, dbTimeout, cacheTTL time.Duration, logger logger.Logger) *AuthorRepository {
	if cacheClient == nil {
		cacheClient = cache.NopClient{}
	}
	return &AuthorRepository{
		DB:        db,
		Cache:     cacheClient,
		DBTimeout: dbTimeout,
		CacheTTL:  cacheTTL,
		logger:    logger,
	}
}

const bookColumns = `id, title, publication_year, available, author_id`

// FindAll busca todos os autores com seus livros.
func (r *AuthorRepository) FindAll(ctx context.Context) ([]domain.Author, error) {
	r.logger.Debug("Iniciando FindAll de autores no repositório.", nil)

	ctxTimeout, cancel := context.WithTimeout(ctx, r.DBTimeout)
	defer cancel()

	var authors []domain.Author
	if err := r.DB.SelectContext(ctxTimeout, &authors, `SELECT id, name FROM authors ORDER BY id`); err != nil {
		r.logger.Error("Falha ao buscar autores no DB.", err)
		return nil, apperror.NewDBError("Falha ao buscar autores", err)
	}

	return r.attachBooks(ctxTimeout, authors)
}

// FindByNameContains busca autores cujo nome contém part (sem diferenciar maiúsculas).
func (r *AuthorRepository) FindByNameContains(ctx context.Context, part string) ([]domain.Author, error) {
	r.logger.Debug("Iniciando busca de autores por nome no repositório.", map[string]interface{}{"name": part})

	ctxTimeout, cancel := context.WithTimeout(ctx, r.DBTimeout)
	defer cancel()

	// strpos evita tratar % e _ do termo como curingas.
	query := `
        SELECT id, name
        FROM authors
        WHERE strpos(lower(name), lower($1)) > 0
        ORDER BY id`

	var authors []domain.Author
	if err := r.DB.SelectContext(ctxTimeout, &authors, query, part); err != nil {
		r.logger.Error("Falha ao buscar autores por nome no DB.", err)
		return nil, apperror.NewDBError("Falha ao buscar autores por nome", err)
	}

	return r.attachBooks(ctxTimeout, authors)
}

// FindWithBooks busca um autor e seus livros.
func (r *AuthorRepository) FindWithBooks(ctx context.Context, id int64) (domain.Author, error) {
	author, err := r.FindByID(ctx, id)
	if err != nil {
		return domain.Author{}, err
	}

	books, err := r.ListBooks(ctx, id)
	if err != nil {
		return domain.Author{}, err
	}
	author.Books = books
	return author, nil
}

// FindByID busca apenas a linha do autor, sem os livros.
func (r *AuthorRepository) FindByID(ctx context.Context, id int64) (domain.Author, error) {
	r.logger.Debug("Iniciando FindByID de autor no repositório.", map[string]interface{}{"id": id})

	ctxTimeout, cancel := context.WithTimeout(ctx, r.DBTimeout)
	defer cancel()

	var author domain.Author
	err := r.DB.GetContext(ctxTimeout, &author, `SELECT id, name FROM authors WHERE id = $1`, id)
	if errors.Is(err, sql.ErrNoRows) {
		r.logger.Info("Autor não encontrado.", map[string]interface{}{"id": id})
		return domain.Author{}, apperror.NewNotFoundError(fmt.Sprintf("Autor com ID %d não encontrado", id))
	}
	if err != nil {
		r.logger.Error("Falha ao buscar autor no DB.", err)
		return domain.Author{}, apperror.NewDBError("Falha ao buscar autor", err)
	}

	author.Books = []domain.Book{}
	return author, nil
}

// Exists indica se há um autor com o ID informado.
func (r *AuthorRepository) Exists(ctx context.Context, id int64) (bool, error) {
	ctxTimeout, cancel := context.WithTimeout(ctx, r.DBTimeout)
	defer cancel()

	var exists bool
	if err := r.DB.GetContext(ctxTimeout, &exists, `SELECT EXISTS(SELECT 1 FROM authors WHERE id = $1)`, id); err != nil {
		r.logger.Error("Falha ao verificar existência de autor no DB.", err)
		return false, apperror.NewDBError("Falha ao verificar autor", err)
	}
	return exists, nil
}

// ExistsByName verifica se outro autor (id diferente de excludeID) já usa o nome,
// comparando em minúsculas e sem espaços nas pontas. excludeID = 0 não exclui ninguém.
func (r *AuthorRepository) ExistsByName(ctx context.Context, name string, excludeID int64) (bool, error) {
	r.logger.Debug("Verificando unicidade do nome do autor.", map[string]interface{}{"name": name, "exclude_id": excludeID})

	ctxTimeout, cancel := context.WithTimeout(ctx, r.DBTimeout)
	defer cancel()

	query := `
        SELECT EXISTS(
            SELECT 1 FROM authors
            WHERE lower(btrim(name)) = lower(btrim($1)) AND id <> $2
        )`

	var exists bool
	if err := r.DB.GetContext(ctxTimeout, &exists, query, name, excludeID); err != nil {
		r.logger.Error("Falha ao verificar nome do autor no DB.", err)
		return false, apperror.NewDBError("Falha ao verificar nome do autor", err)
	}
	return exists, nil
}

// ListBooks devolve os livros de um autor, ordenados por ID.
func (r *AuthorRepository) ListBooks(ctx context.Context, authorID int64) ([]domain.Book, error) {
	ctxTimeout, cancel := context.WithTimeout(ctx, r.DBTimeout)
	defer cancel()

	books := []domain.Book{}
	query := `SELECT ` + bookColumns + ` FROM books WHERE author_id = $1 ORDER BY id`
	if err := r.DB.SelectContext(ctxTimeout, &books, query, authorID); err != nil {
		r.logger.Error("Falha ao buscar livros do autor no DB.", err)
		return nil, apperror.NewDBError("Falha ao buscar livros do autor", err)
	}
	return books, nil
}

// CountBooks conta os livros de um autor.
func (r *AuthorRepository) CountBooks(ctx context.Context, authorID int64) (int, error) {
	ctxTimeout, cancel := context.WithTimeout(ctx, r.DBTimeout)
	defer cancel()

	var count int
	if err := r.DB.GetContext(ctxTimeout, &count, `SELECT COUNT(*) FROM books WHERE author_id = $1`, authorID); err != nil {
		r.logger.Error("Falha ao contar livros do autor no DB.", err)
		return 0, apperror.NewDBError("Falha ao contar livros do autor", err)
	}
	return count, nil
}

// Create insere o autor e devolve o ID gerado.
func (r *AuthorRepository) Create(ctx context.Context, name string) (domain.Author, error) {
	r.logger.Debug("Iniciando Create de autor no repositório.", map[string]interface{}{"name": name})

	ctxTimeout, cancel := context.WithTimeout(ctx, r.DBTimeout)
	defer cancel()

	author := domain.Author{Name: name, Books: []domain.Book{}}
	err := r.DB.QueryRowxContext(ctxTimeout, `INSERT INTO authors (name) VALUES ($1) RETURNING id`, name).Scan(&author.ID)
	if err != nil {
		if database.IsUniqueViolation(err) {
			r.logger.Warn("Índice único rejeitou nome de autor duplicado.", map[string]interface{}{"name": name})
			return domain.Author{}, apperror.NewConflictError(fmt.Sprintf("Já existe um autor com o nome '%s'", name))
		}
		r.logger.Error("Falha ao inserir autor no DB.", err)
		return domain.Author{}, apperror.NewDBError("Falha ao criar autor", err)
	}

	r.invalidateStatistics(ctx)
	r.logger.Info("Autor inserido com sucesso.", map[string]interface{}{"id": author.ID, "name": author.Name})
	return author, nil
}

// UpdateName grava o novo nome do autor.
func (r *AuthorRepository) UpdateName(ctx context.Context, id int64, name string) error {
	r.logger.Debug("Iniciando UpdateName de autor no repositório.", map[string]interface{}{"id": id, "name": name})

	ctxTimeout, cancel := context.WithTimeout(ctx, r.DBTimeout)
	defer cancel()

	result, err := r.DB.ExecContext(ctxTimeout, `UPDATE authors SET name = $1 WHERE id = $2`, name, id)
	if err != nil {
		if database.IsUniqueViolation(err) {
			r.logger.Warn("Índice único rejeitou nome de autor duplicado.", map[string]interface{}{"id": id, "name": name})
			return apperror.NewConflictError(fmt.Sprintf("Já existe outro autor com o nome '%s'", name))
		}
		r.logger.Error("Falha ao atualizar autor no DB.", err)
		return apperror.NewDBError("Falha ao atualizar autor", err)
	}

	if err := r.requireAffected(result, id); err != nil {
		return err
	}

	r.invalidateStatistics(ctx)
	r.logger.Info("Autor atualizado com sucesso.", map[string]interface{}{"id": id, "name": name})
	return nil
}

// Delete remove o autor. Uma violação de FK (livros criados entre a checagem
// e o DELETE) vira ConflictError.
func (r *AuthorRepository) Delete(ctx context.Context, id int64) error {
	r.logger.Debug("Iniciando Delete de autor no repositório.", map[string]interface{}{"id": id})

	ctxTimeout, cancel := context.WithTimeout(ctx, r.DBTimeout)
	defer cancel()

	result, err := r.DB.ExecContext(ctxTimeout, `DELETE FROM authors WHERE id = $1`, id)
	if err != nil {
		if database.IsForeignKeyViolation(err) {
			r.logger.Warn("FK impediu exclusão de autor com livros.", map[string]interface{}{"id": id})
			return apperror.NewConflictError(fmt.Sprintf("Não é possível deletar o autor com ID %d pois possui livro(s) associado(s)", id))
		}
		r.logger.Error("Falha ao deletar autor do DB.", err)
		return apperror.NewDBError("Falha ao deletar autor", err)
	}

	if err := r.requireAffected(result, id); err != nil {
		return err
	}

	r.invalidateStatistics(ctx)
	r.logger.Info("Autor deletado com sucesso.", map[string]interface{}{"id": id})
	return nil
}

// Statistics agrega os livros por autor, do maior acervo para o menor
// (empates por ID). Usa Cache-Aside sobre a geração corrente de
// cache.AuthorStatisticsKey; escritas abandonam a geração em vez de apagar.
func (r *AuthorRepository) Statistics(ctx context.Context) ([]domain.AuthorStatistics, error) {
	r.logger.Debug("Iniciando Statistics de autores no repositório.", nil)

	ctxTimeout, cancel := context.WithTimeout(ctx, r.DBTimeout)
	defer cancel()

	var stats []domain.AuthorStatistics

	// Sem a versão não há chave segura: lemos e gravamos só no DB.
	key, err := cache.VersionedKey(ctxTimeout, r.Cache, cache.AuthorStatisticsKey)
	if err != nil {
		r.logger.Warn("Falha ao ler versão das estatísticas no cache.", map[string]interface{}{"error": err.Error()})
		key = ""
	}

	// --- Cache-Aside (READ) ---
	if key != "" {
		err = cache.GetJSON(ctxTimeout, r.Cache, key, &stats)
		if err == nil {
			r.logger.Debug("Estatísticas servidas pelo cache.", map[string]interface{}{"count": len(stats), "key": key})
			return stats, nil
		}
		if !errors.Is(err, cache.ErrCacheMiss) {
			// Falha real de cache: registramos e seguimos para o DB.
			r.logger.Warn("Falha ao ler estatísticas do cache.", map[string]interface{}{"error": err.Error()})
		}
	}

	query := `
        SELECT a.id,
               a.name,
               COUNT(b.id) AS total_books,
               COUNT(b.id) FILTER (WHERE b.available) AS available_books,
               COUNT(b.id) FILTER (WHERE NOT b.available) AS loaned_books
        FROM authors a
        LEFT JOIN books b ON b.author_id = a.id
        GROUP BY a.id, a.name
        ORDER BY total_books DESC, a.id`

	stats = []domain.AuthorStatistics{}
	if err := r.DB.SelectContext(ctxTimeout, &stats, query); err != nil {
		r.logger.Error("Falha ao calcular estatísticas de autores no DB.", err)
		return nil, apperror.NewDBError("Falha ao buscar estatísticas dos autores", err)
	}

	// --- Cache-Aside (WRITE) ---
	if key != "" {
		if err := cache.SetJSON(ctxTimeout, r.Cache, key, stats, r.CacheTTL); err != nil {
			r.logger.Warn("Falha ao gravar estatísticas no cache.", map[string]interface{}{"error": err.Error()})
		}
	}

	return stats, nil
}

// attachBooks carrega, numa única consulta, os livros de todos os autores informados.
func (r *AuthorRepository) attachBooks(ctx context.Context, authors []domain.Author) ([]domain.Author, error) {
	if len(authors) == 0 {
		return []domain.Author{}, nil
	}

	ids := make([]int64, len(authors))
	index := make(map[int64]int, len(authors))
	for i := range authors {
		ids[i] = authors[i].ID
		index[authors[i].ID] = i
		authors[i].Books = []domain.Book{}
	}

	var books []domain.Book
	query := `SELECT ` + bookColumns + ` FROM books WHERE author_id = ANY($1) ORDER BY id`
	if err := r.DB.SelectContext(ctx, &books, query, pq.Array(ids)); err != nil {
		r.logger.Error("Falha ao carregar livros dos autores no DB.", err)
		return nil, apperror.NewDBError("Falha ao carregar livros dos autores", err)
	}

	for _, b := range books {
		if i, ok := index[b.AuthorID]; ok {
			authors[i].Books = append(authors[i].Books, b)
		}
	}

	return authors, nil
}

func (r *AuthorRepository) requireAffected(result sql.Result, id int64) error {
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		r.logger.Error("Falha ao verificar linhas afetadas.", err)
		return apperror.NewDBError("Falha ao verificar linhas afetadas", err)
	}
	if rowsAffected == 0 {
		r.logger.Info("Autor não encontrado para escrita.", map[string]interface{}{"id": id})
		return apperror.NewNotFoundError(fmt.Sprintf("Autor com ID %d não encontrado", id))
	}
	return nil
}

func (r *AuthorRepository) invalidateStatistics(ctx context.Context) {
	if err := cache.BumpVersion(ctx, r.Cache, cache.AuthorStatisticsKey); err != nil {
		r.logger.Warn("Falha ao invalidar estatísticas no cache.", map[string]interface{}{"error": err.Error()})
	}
}
