package authorservice

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"biblioteca/internal/domain"
	apperror "biblioteca/internal/errors"
	"biblioteca/internal/pkg/logger"
	"biblioteca/internal/validator"
)

// AuthorRepository define o contrato que o Serviço de Autores espera da camada de Persistência.
type AuthorRepository interface {
	FindAll(ctx context.Context) ([]domain.Author, error)
	FindByNameContains(ctx context.Context, part string) ([]domain.Author, error)
	FindWithBooks(ctx context.Context, id int64) (domain.Author, error)
	FindByID(ctx context.Context, id int64) (domain.Author, error)
	Exists(ctx context.Context, id int64) (bool, error)
	ExistsByName(ctx context.Context, name string, excludeID int64) (bool, error)
	ListBooks(ctx context.Context, authorID int64) ([]domain.Book, error)
	CountBooks(ctx context.Context, authorID int64) (int, error)
	Create(ctx context.Context, name string) (domain.Author, error)
	UpdateName(ctx context.Context, id int64, name string) error
	Delete(ctx context.Context, id int64) error
	Statistics(ctx context.Context) ([]domain.AuthorStatistics, error)
}

// Service implementa as regras de negócio de autores.
type Service struct {
	repo   AuthorRepository
	logger logger.Logger
}

// NewService cria e retorna uma nova instância do Serviço de Autores.
func NewService(repo AuthorRepository, logger logger.Logger) *Service {
	return &Service{repo: repo, logger: logger}
}

// ListAuthors devolve todos os autores com seus livros.
func (s *Service) ListAuthors(ctx context.Context) ([]domain.Author, error) {
	s.logger.Debug("Iniciando listagem de autores no serviço.", nil)

	authors, err := s.repo.FindAll(ctx)
	if err != nil {
		s.logger.Error("Falha ao listar autores no repositório.", err)
		return nil, internal("Falha interna ao listar autores.", err)
	}

	s.logger.Info("Autores listados com sucesso.", map[string]interface{}{"count": len(authors)})
	return authors, nil
}

// GetAuthor busca um autor com seus livros.
func (s *Service) GetAuthor(ctx context.Context, id int64) (domain.Author, error) {
	s.logger.Debug("Iniciando busca de autor por ID no serviço.", map[string]interface{}{"id": id})

	author, err := s.repo.FindWithBooks(ctx, id)
	if err != nil {
		if !apperror.IsNotFound(err) {
			s.logger.Error("Falha ao buscar autor no repositório.", err)
		}
		return domain.Author{}, internal("Falha interna ao buscar autor.", err)
	}

	s.logger.Info("Autor encontrado.", map[string]interface{}{"id": author.ID, "name": author.Name})
	return author, nil
}

// ListBooksForAuthor devolve os livros do autor, ou NotFound se ele não existir.
func (s *Service) ListBooksForAuthor(ctx context.Context, id int64) ([]domain.Book, error) {
	s.logger.Debug("Iniciando listagem de livros do autor no serviço.", map[string]interface{}{"id": id})

	if err := s.requireAuthor(ctx, id); err != nil {
		return nil, err
	}

	books, err := s.repo.ListBooks(ctx, id)
	if err != nil {
		s.logger.Error("Falha ao listar livros do autor no repositório.", err)
		return nil, internal("Falha interna ao listar livros do autor.", err)
	}

	s.logger.Info("Livros do autor listados.", map[string]interface{}{"id": id, "count": len(books)})
	return books, nil
}

// CreateAuthor valida o nome, garante unicidade e persiste o nome já sem espaços nas pontas.
func (s *Service) CreateAuthor(ctx context.Context, name string) (domain.Author, error) {
	s.logger.Debug("Iniciando criação de autor no serviço.", map[string]interface{}{"name": name})

	trimmed, err := validateName(name)
	if err != nil {
		s.logger.Warn("Falha na validação do nome do autor.", map[string]interface{}{"name": name, "error": err.Error()})
		return domain.Author{}, err
	}

	exists, err := s.repo.ExistsByName(ctx, trimmed, 0)
	if err != nil {
		s.logger.Error("Falha ao verificar unicidade do nome do autor.", err)
		return domain.Author{}, internal("Falha interna ao criar autor.", err)
	}
	if exists {
		s.logger.Warn("Nome de autor duplicado.", map[string]interface{}{"name": trimmed})
		return domain.Author{}, apperror.NewConflictError(fmt.Sprintf("Já existe um autor com o nome '%s'", trimmed))
	}

	author, err := s.repo.Create(ctx, trimmed)
	if err != nil {
		s.logger.Error("Falha ao criar autor no repositório.", err)
		return domain.Author{}, internal("Falha interna ao criar autor.", err)
	}

	s.logger.Info("Autor criado com sucesso.", map[string]interface{}{"id": author.ID, "name": author.Name})
	return author, nil
}

// UpdateAuthor troca apenas o nome do autor identificado por pathID.
func (s *Service) UpdateAuthor(ctx context.Context, pathID int64, in domain.AuthorInput) error {
	s.logger.Debug("Iniciando atualização de autor no serviço.", map[string]interface{}{"id": pathID, "name": in.Name})

	if pathID != in.ID {
		s.logger.Warn("ID da URL difere do ID do payload.", map[string]interface{}{"path_id": pathID, "payload_id": in.ID})
		return apperror.NewValidationError("ID da URL não corresponde ao ID do autor")
	}

	if err := s.requireAuthor(ctx, pathID); err != nil {
		return err
	}

	trimmed, err := validateName(in.Name)
	if err != nil {
		s.logger.Warn("Falha na validação do nome do autor para atualização.", map[string]interface{}{"name": in.Name, "error": err.Error()})
		return err
	}

	exists, err := s.repo.ExistsByName(ctx, trimmed, pathID)
	if err != nil {
		s.logger.Error("Falha ao verificar unicidade do nome do autor.", err)
		return internal("Falha interna ao atualizar autor.", err)
	}
	if exists {
		s.logger.Warn("Nome de autor duplicado na atualização.", map[string]interface{}{"id": pathID, "name": trimmed})
		return apperror.NewConflictError(fmt.Sprintf("Já existe outro autor com o nome '%s'", trimmed))
	}

	if err := s.repo.UpdateName(ctx, pathID, trimmed); err != nil {
		s.logger.Error("Falha ao atualizar autor no repositório.", err)
		return internal("Falha interna ao atualizar autor.", err)
	}

	s.logger.Info("Autor atualizado com sucesso.", map[string]interface{}{"id": pathID, "name": trimmed})
	return nil
}

// DeleteAuthor remove o autor se ele não tiver livros.
func (s *Service) DeleteAuthor(ctx context.Context, id int64) error {
	s.logger.Debug("Iniciando exclusão de autor no serviço.", map[string]interface{}{"id": id})

	author, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if !apperror.IsNotFound(err) {
			s.logger.Error("Falha ao buscar autor para exclusão.", err)
		}
		return internal("Falha interna ao deletar autor.", err)
	}

	count, err := s.repo.CountBooks(ctx, id)
	if err != nil {
		s.logger.Error("Falha ao contar livros do autor.", err)
		return internal("Falha interna ao deletar autor.", err)
	}
	if count > 0 {
		s.logger.Warn("Autor possui livros e não pode ser deletado.", map[string]interface{}{"id": id, "books": count})
		return apperror.NewConflictError(fmt.Sprintf("Não é possível deletar o autor '%s' pois possui %d livro(s) associado(s)", author.Name, count))
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		s.logger.Error("Falha ao deletar autor no repositório.", err)
		return internal("Falha interna ao deletar autor.", err)
	}

	s.logger.Info("Autor deletado com sucesso.", map[string]interface{}{"id": id})
	return nil
}

// SearchAuthors busca autores cujo nome contém namePart, sem diferenciar maiúsculas.
// Termo em branco equivale a ListAuthors; os demais vão ao DB sem aparar espaços.
func (s *Service) SearchAuthors(ctx context.Context, namePart string) ([]domain.Author, error) {
	if !validator.NotBlank(namePart) {
		return s.ListAuthors(ctx)
	}

	s.logger.Debug("Iniciando busca de autores por nome no serviço.", map[string]interface{}{"name": namePart})

	authors, err := s.repo.FindByNameContains(ctx, namePart)
	if err != nil {
		s.logger.Error("Falha ao buscar autores por nome no repositório.", err)
		return nil, internal("Falha interna ao buscar autores.", err)
	}

	s.logger.Info("Busca de autores concluída.", map[string]interface{}{"name": namePart, "count": len(authors)})
	return authors, nil
}

// AuthorStatistics devolve o resumo do acervo por autor, com mais livros primeiro.
func (s *Service) AuthorStatistics(ctx context.Context) ([]domain.AuthorStatistics, error) {
	s.logger.Debug("Iniciando cálculo de estatísticas de autores no serviço.", nil)

	stats, err := s.repo.Statistics(ctx)
	if err != nil {
		s.logger.Error("Falha ao calcular estatísticas de autores.", err)
		return nil, internal("Falha interna ao calcular estatísticas.", err)
	}

	s.logger.Info("Estatísticas de autores calculadas.", map[string]interface{}{"count": len(stats)})
	return stats, nil
}

func (s *Service) requireAuthor(ctx context.Context, id int64) error {
	exists, err := s.repo.Exists(ctx, id)
	if err != nil {
		s.logger.Error("Falha ao verificar existência do autor.", err)
		return internal("Falha interna ao buscar autor.", err)
	}
	if !exists {
		s.logger.Info("Autor não encontrado.", map[string]interface{}{"id": id})
		return apperror.NewNotFoundError(fmt.Sprintf("Autor com ID %d não encontrado", id))
	}
	return nil
}

// validateName aplica, em ordem, obrigatoriedade, mínimo e máximo sobre o nome sem espaços nas pontas.
func validateName(name string) (string, error) {
	trimmed := strings.TrimSpace(name)

	v := validator.New()
	v.Check(validator.NotBlank(trimmed), "name", "Nome do autor é obrigatório")
	v.Check(validator.MinChars(trimmed, domain.AuthorNameMinLength), "name",
		fmt.Sprintf("Nome do autor deve ter pelo menos %d caracteres", domain.AuthorNameMinLength))
	v.Check(validator.MaxChars(trimmed, domain.AuthorNameMaxLength), "name",
		fmt.Sprintf("Nome do autor não pode exceder %d caracteres", domain.AuthorNameMaxLength))

	if !v.Valid() {
		return "", apperror.NewFieldValidationError(v.Errors["name"], v.Errors)
	}
	return trimmed, nil
}

// internal preserva erros já tipados (NotFound, Conflict, DB) e embrulha os demais em InternalError.
func internal(msg string, err error) error {
	var appErr apperror.AppError
	if errors.As(err, &appErr) {
		return err
	}
	return apperror.NewInternalError(msg, err)
}
