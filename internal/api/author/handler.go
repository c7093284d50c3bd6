package author

import (
	"context"
	"fmt"
	"net/http"

	"biblioteca/internal/api/response"
	"biblioteca/internal/domain"
	"biblioteca/internal/pkg/logger"
)

// AuthorService define o contrato que o Handler espera da camada de Serviço.
type AuthorService interface {
	ListAuthors(ctx context.Context) ([]domain.Author, error)
	GetAuthor(ctx context.Context, id int64) (domain.Author, error)
	ListBooksForAuthor(ctx context.Context, id int64) ([]domain.Book, error)
	CreateAuthor(ctx context.Context, name string) (domain.Author, error)
	UpdateAuthor(ctx context.Context, pathID int64, in domain.AuthorInput) error
	DeleteAuthor(ctx context.Context, id int64) error
	SearchAuthors(ctx context.Context, namePart string) ([]domain.Author, error)
	AuthorStatistics(ctx context.Context) ([]domain.AuthorStatistics, error)
}

// Handler agrupa todos os métodos de Handler de autores.
type Handler struct {
	Service AuthorService
	Logger  logger.Logger
}

// NewHandler cria uma nova instância do Handler, injetando o Service e o Logger.
func NewHandler(svc AuthorService, log logger.Logger) *Handler {
	return &Handler{
		Service: svc,
		Logger:  log,
	}
}

// ListAuthorsHandler lida com a requisição GET /authors.
// @Summary Lista todos os autores
// @Description Retorna todos os autores cadastrados, cada um com seus livros.
// @Tags authors
// @Produce json
// @Success 200 {array} domain.Author "Lista de autores"
// @Failure 500 {object} domain.ErrorResponse "Erro interno do servidor"
// @Router /authors [get]
func (h *Handler) ListAuthorsHandler(w http.ResponseWriter, r *http.Request) {
	authors, err := h.Service.ListAuthors(r.Context())
	response.Handle(w, r, h.Logger, authors, err, http.StatusOK)
}

// GetAuthorHandler lida com a requisição GET /authors/{id}.
// @Summary Obtém um autor por ID
// @Tags authors
// @Produce json
// @Param id path int true "ID do Autor"
// @Success 200 {object} domain.Author "Autor encontrado"
// @Failure 400 {object} domain.ErrorResponse "ID inválido"
// @Failure 404 {object} domain.ErrorResponse "Autor não encontrado"
// @Failure 500 {object} domain.ErrorResponse "Erro interno do servidor"
// @Router /authors/{id} [get]
func (h *Handler) GetAuthorHandler(w http.ResponseWriter, r *http.Request) {
	id, err := response.ReadIDParam(r, "id")
	if err != nil {
		response.Handle(w, r, h.Logger, nil, err, http.StatusOK)
		return
	}

	author, err := h.Service.GetAuthor(r.Context(), id)
	response.Handle(w, r, h.Logger, author, err, http.StatusOK)
}

// ListAuthorBooksHandler lida com a requisição GET /authors/{id}/books.
// @Summary Lista os livros de um autor
// @Tags authors
// @Produce json
// @Param id path int true "ID do Autor"
// @Success 200 {array} domain.Book "Livros do autor"
// @Failure 404 {object} domain.ErrorResponse "Autor não encontrado"
// @Failure 500 {object} domain.ErrorResponse "Erro interno do servidor"
// @Router /authors/{id}/books [get]
func (h *Handler) ListAuthorBooksHandler(w http.ResponseWriter, r *http.Request) {
	id, err := response.ReadIDParam(r, "id")
	if err != nil {
		response.Handle(w, r, h.Logger, nil, err, http.StatusOK)
		return
	}

	books, err := h.Service.ListBooksForAuthor(r.Context(), id)
	response.Handle(w, r, h.Logger, books, err, http.StatusOK)
}

// CreateAuthorHandler lida com a requisição POST /authors.
// @Summary Cria um novo autor
// @Description O nome é gravado sem espaços nas pontas e deve ser único, sem diferenciar maiúsculas.
// @Tags authors
// @Accept json
// @Produce json
// @Param author body domain.AuthorInput true "Dados do autor"
// @Success 201 {object} domain.Author "Autor criado com sucesso"
// @Failure 400 {object} domain.ErrorResponse "Payload inválido ou nome duplicado"
// @Failure 500 {object} domain.ErrorResponse "Erro interno do servidor"
// @Router /authors [post]
func (h *Handler) CreateAuthorHandler(w http.ResponseWriter, r *http.Request) {
	var in domain.AuthorInput
	if err := response.ReadJSON(w, r, &in); err != nil {
		response.Handle(w, r, h.Logger, nil, err, http.StatusOK)
		return
	}

	author, err := h.Service.CreateAuthor(r.Context(), in.Name)
	if err != nil {
		response.Handle(w, r, h.Logger, nil, err, http.StatusOK)
		return
	}

	response.Created(w, h.Logger, fmt.Sprintf("/authors/%d", author.ID), author)
}

// UpdateAuthorHandler lida com a requisição PUT /authors/{id}.
// @Summary Atualiza o nome de um autor
// @Tags authors
// @Accept json
// @Param id path int true "ID do Autor"
// @Param author body domain.AuthorInput true "Dados do autor (id deve coincidir com a URL)"
// @Success 204 "Autor atualizado"
// @Failure 400 {object} domain.ErrorResponse "Payload inválido, IDs divergentes ou nome duplicado"
// @Failure 404 {object} domain.ErrorResponse "Autor não encontrado"
// @Failure 500 {object} domain.ErrorResponse "Erro interno do servidor"
// @Router /authors/{id} [put]
func (h *Handler) UpdateAuthorHandler(w http.ResponseWriter, r *http.Request) {
	id, err := response.ReadIDParam(r, "id")
	if err != nil {
		response.Handle(w, r, h.Logger, nil, err, http.StatusOK)
		return
	}

	var in domain.AuthorInput
	if err := response.ReadJSON(w, r, &in); err != nil {
		response.Handle(w, r, h.Logger, nil, err, http.StatusOK)
		return
	}

	err = h.Service.UpdateAuthor(r.Context(), id, in)
	response.Handle(w, r, h.Logger, nil, err, http.StatusNoContent)
}

// DeleteAuthorHandler lida com a requisição DELETE /authors/{id}.
// @Summary Remove um autor sem livros
// @Tags authors
// @Param id path int true "ID do Autor"
// @Success 204 "Autor removido"
// @Failure 400 {object} domain.ErrorResponse "Autor possui livros"
// @Failure 404 {object} domain.ErrorResponse "Autor não encontrado"
// @Failure 500 {object} domain.ErrorResponse "Erro interno do servidor"
// @Router /authors/{id} [delete]
func (h *Handler) DeleteAuthorHandler(w http.ResponseWriter, r *http.Request) {
	id, err := response.ReadIDParam(r, "id")
	if err != nil {
		response.Handle(w, r, h.Logger, nil, err, http.StatusOK)
		return
	}

	err = h.Service.DeleteAuthor(r.Context(), id)
	response.Handle(w, r, h.Logger, nil, err, http.StatusNoContent)
}

// SearchAuthorsHandler lida com a requisição GET /authors/search?name=.
// @Summary Busca autores por parte do nome
// @Description Sem diferenciar maiúsculas. Termo vazio devolve todos os autores.
// @Tags authors
// @Produce json
// @Param name query string false "Parte do nome"
// @Success 200 {array} domain.Author "Autores encontrados"
// @Failure 500 {object} domain.ErrorResponse "Erro interno do servidor"
// @Router /authors/search [get]
func (h *Handler) SearchAuthorsHandler(w http.ResponseWriter, r *http.Request) {
	authors, err := h.Service.SearchAuthors(r.Context(), r.URL.Query().Get("name"))
	response.Handle(w, r, h.Logger, authors, err, http.StatusOK)
}

// StatisticsHandler lida com a requisição GET /authors/statistics.
// @Summary Estatísticas do acervo por autor
// @Description Ordenado por total de livros (desc) e depois por ID.
// @Tags authors
// @Produce json
// @Success 200 {array} domain.AuthorStatistics "Estatísticas"
// @Failure 500 {object} domain.ErrorResponse "Erro interno do servidor"
// @Router /authors/statistics [get]
func (h *Handler) StatisticsHandler(w http.ResponseWriter, r *http.Request) {
	stats, err := h.Service.AuthorStatistics(r.Context())
	response.Handle(w, r, h.Logger, stats, err, http.StatusOK)
}
