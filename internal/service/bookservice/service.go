package bookservice

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"biblioteca/internal/domain"
	apperror "biblioteca/internal/errors"
	"biblioteca/internal/pkg/logger"
	"biblioteca/internal/validator"
)

// BookRepository define o contrato que o Serviço de Livros espera da camada de Persistência.
type BookRepository interface {
	FindAll(ctx context.Context) ([]domain.Book, error)
	FindByID(ctx context.Context, id int64) (domain.Book, error)
	Exists(ctx context.Context, id int64) (bool, error)
	Create(ctx context.Context, book domain.Book) (domain.Book, error)
	Update(ctx context.Context, book domain.Book) error
	Delete(ctx context.Context, id int64) error
}

// AuthorLookup verifica a existência do autor referenciado por um livro.
type AuthorLookup interface {
	Exists(ctx context.Context, id int64) (bool, error)
}

// LoanLookup verifica empréstimos em aberto de um livro.
type LoanLookup interface {
	HasOpenLoanForBook(ctx context.Context, bookID int64) (bool, error)
}

// Service implementa as regras de negócio de livros.
type Service struct {
	books   BookRepository
	authors AuthorLookup
	loans   LoanLookup
	logger  logger.Logger
	now     func() time.Time
}

// NewService cria e retorna uma nova instância do Serviço de Livros.
func NewService(books BookRepository, authors AuthorLookup, loans LoanLookup, logger logger.Logger) *Service {
	return &Service{
		books:   books,
		authors: authors,
		loans:   loans,
		logger:  logger,
		now:     time.Now,
	}
}

// WithClock troca o relógio usado para obter o ano corrente.
func (s *Service) WithClock(now func() time.Time) *Service {
	s.now = now
	return s
}

// ListBooks devolve todos os livros com seus autores.
func (s *Service) ListBooks(ctx context.Context) ([]domain.Book, error) {
	s.logger.Debug("Iniciando listagem de livros no serviço.", nil)

	books, err := s.books.FindAll(ctx)
	if err != nil {
		s.logger.Error("Falha ao listar livros no repositório.", err)
		return nil, internal("Falha interna ao listar livros.", err)
	}

	s.logger.Info("Livros listados com sucesso.", map[string]interface{}{"count": len(books)})
	return books, nil
}

// GetBook busca um livro com seu autor.
func (s *Service) GetBook(ctx context.Context, id int64) (domain.Book, error) {
	s.logger.Debug("Iniciando busca de livro por ID no serviço.", map[string]interface{}{"id": id})

	book, err := s.books.FindByID(ctx, id)
	if err != nil {
		if !apperror.IsNotFound(err) {
			s.logger.Error("Falha ao buscar livro no repositório.", err)
		}
		return domain.Book{}, internal("Falha interna ao buscar livro.", err)
	}

	s.logger.Info("Livro encontrado.", map[string]interface{}{"id": book.ID, "title": book.Title})
	return book, nil
}

// CreateBook valida o payload, o ano e o autor antes de persistir.
func (s *Service) CreateBook(ctx context.Context, in domain.BookInput) (domain.Book, error) {
	s.logger.Debug("Iniciando criação de livro no serviço.", map[string]interface{}{"title": in.Title, "author_id": in.AuthorID})

	if err := validateInput(in); err != nil {
		s.logger.Warn("Payload de livro inválido.", map[string]interface{}{"error": err.Error()})
		return domain.Book{}, err
	}

	if currentYear := s.now().Year(); in.PublicationYear > currentYear {
		s.logger.Warn("Ano de publicação no futuro.", map[string]interface{}{"year": in.PublicationYear, "current_year": currentYear})
		return domain.Book{}, apperror.NewValidationError("Ano de publicação não pode ser futuro")
	}

	if err := s.requireAuthor(ctx, in.AuthorID); err != nil {
		return domain.Book{}, err
	}

	book, err := s.books.Create(ctx, toBook(0, in))
	if err != nil {
		s.logger.Error("Falha ao criar livro no repositório.", err)
		return domain.Book{}, internal("Falha interna ao criar livro.", err)
	}

	s.logger.Info("Livro criado com sucesso.", map[string]interface{}{"id": book.ID, "title": book.Title})
	return book, nil
}

// UpdateBook substitui título, ano, disponibilidade e autor do livro identificado por pathID.
// O ano de publicação não é comparado com o ano corrente aqui.
func (s *Service) UpdateBook(ctx context.Context, pathID int64, in domain.BookInput) error {
	s.logger.Debug("Iniciando atualização de livro no serviço.", map[string]interface{}{"id": pathID})

	if pathID != in.ID {
		s.logger.Warn("ID da URL difere do ID do payload.", map[string]interface{}{"path_id": pathID, "payload_id": in.ID})
		return apperror.NewValidationError("ID da URL não corresponde ao ID do livro")
	}

	if err := validateInput(in); err != nil {
		s.logger.Warn("Payload de livro inválido para atualização.", map[string]interface{}{"error": err.Error()})
		return err
	}

	exists, err := s.books.Exists(ctx, pathID)
	if err != nil {
		s.logger.Error("Falha ao verificar existência do livro.", err)
		return internal("Falha interna ao atualizar livro.", err)
	}
	if !exists {
		s.logger.Info("Livro não encontrado.", map[string]interface{}{"id": pathID})
		return apperror.NewNotFoundError(fmt.Sprintf("Livro com ID %d não encontrado", pathID))
	}

	if err := s.requireAuthor(ctx, in.AuthorID); err != nil {
		return err
	}

	if err := s.books.Update(ctx, toBook(pathID, in)); err != nil {
		s.logger.Error("Falha ao atualizar livro no repositório.", err)
		return internal("Falha interna ao atualizar livro.", err)
	}

	s.logger.Info("Livro atualizado com sucesso.", map[string]interface{}{"id": pathID})
	return nil
}

// DeleteBook remove o livro se não houver empréstimo em aberto.
func (s *Service) DeleteBook(ctx context.Context, id int64) error {
	s.logger.Debug("Iniciando exclusão de livro no serviço.", map[string]interface{}{"id": id})

	exists, err := s.books.Exists(ctx, id)
	if err != nil {
		s.logger.Error("Falha ao verificar existência do livro.", err)
		return internal("Falha interna ao deletar livro.", err)
	}
	if !exists {
		s.logger.Info("Livro não encontrado.", map[string]interface{}{"id": id})
		return apperror.NewNotFoundError(fmt.Sprintf("Livro com ID %d não encontrado", id))
	}

	open, err := s.loans.HasOpenLoanForBook(ctx, id)
	if err != nil {
		s.logger.Error("Falha ao verificar empréstimos do livro.", err)
		return internal("Falha interna ao deletar livro.", err)
	}
	if open {
		s.logger.Warn("Livro com empréstimo ativo não pode ser deletado.", map[string]interface{}{"id": id})
		return apperror.NewConflictError("Não é possível deletar um livro com empréstimos ativos")
	}

	if err := s.books.Delete(ctx, id); err != nil {
		s.logger.Error("Falha ao deletar livro no repositório.", err)
		return internal("Falha interna ao deletar livro.", err)
	}

	s.logger.Info("Livro deletado com sucesso.", map[string]interface{}{"id": id})
	return nil
}

func (s *Service) requireAuthor(ctx context.Context, authorID int64) error {
	exists, err := s.authors.Exists(ctx, authorID)
	if err != nil {
		s.logger.Error("Falha ao verificar existência do autor.", err)
		return internal("Falha interna ao verificar autor.", err)
	}
	if !exists {
		s.logger.Warn("Autor do livro não existe.", map[string]interface{}{"author_id": authorID})
		return apperror.NewValidationError(fmt.Sprintf("Autor com ID %d não encontrado", authorID))
	}
	return nil
}

func validateInput(in domain.BookInput) error {
	v := validator.New()
	v.Check(validator.NotBlank(in.Title), "title", "O título é obrigatório")

	if !v.Valid() {
		return apperror.NewFieldValidationError("Dados do livro inválidos", v.Errors)
	}
	return nil
}

func toBook(id int64, in domain.BookInput) domain.Book {
	return domain.Book{
		ID:              id,
		Title:           strings.TrimSpace(in.Title),
		PublicationYear: in.PublicationYear,
		Available:       in.IsAvailable(),
		AuthorID:        in.AuthorID,
	}
}

// internal preserva erros já tipados e embrulha os demais em InternalError.
func internal(msg string, err error) error {
	var appErr apperror.AppError
	if errors.As(err, &appErr) {
		return err
	}
	return apperror.NewInternalError(msg, err)
}
