package book

import (
	"context"
	"fmt"
	"net/http"

	"biblioteca/internal/api/response"
	"biblioteca/internal/domain"
	"biblioteca/internal/pkg/logger"
)

// BookService define o contrato que o Handler espera da camada de Serviço.
type BookService interface {
	ListBooks(ctx context.Context) ([]domain.Book, error)
	GetBook(ctx context.Context, id int64) (domain.Book, error)
	CreateBook(ctx context.Context, in domain.BookInput) (domain.Book, error)
	UpdateBook(ctx context.Context, pathID int64, in domain.BookInput) error
	DeleteBook(ctx context.Context, id int64) error
}

// Handler agrupa todos os métodos de Handler de livros.
type Handler struct {
	Service BookService
	Logger  logger.Logger
}

// NewHandler cria uma nova instância do Handler, injetando o Service e o Logger.
func NewHandler(svc BookService, log logger.Logger) *Handler {
	return &Handler{
		Service: svc,
		Logger:  log,
	}
}

// ListBooksHandler lida com a requisição GET /books.
// @Summary Lista todos os livros
// @Tags books
// @Produce json
// @Success 200 {array} domain.Book "Lista de livros"
// @Failure 500 {object} domain.ErrorResponse "Erro interno do servidor"
// @Router /books [get]
func (h *Handler) ListBooksHandler(w http.ResponseWriter, r *http.Request) {
	books, err := h.Service.ListBooks(r.Context())
	response.Handle(w, r, h.Logger, books, err, http.StatusOK)
}

// GetBookHandler lida com a requisição GET /books/{id}.
// @Summary Obtém um livro por ID
// @Tags books
// @Produce json
// @Param id path int true "ID do Livro"
// @Success 200 {object} domain.Book "Livro encontrado"
// @Failure 400 {object} domain.ErrorResponse "ID inválido"
// @Failure 404 {object} domain.ErrorResponse "Livro não encontrado"
// @Failure 500 {object} domain.ErrorResponse "Erro interno do servidor"
// @Router /books/{id} [get]
func (h *Handler) GetBookHandler(w http.ResponseWriter, r *http.Request) {
	id, err := response.ReadIDParam(r, "id")
	if err != nil {
		response.Handle(w, r, h.Logger, nil, err, http.StatusOK)
		return
	}

	book, err := h.Service.GetBook(r.Context(), id)
	response.Handle(w, r, h.Logger, book, err, http.StatusOK)
}

// CreateBookHandler lida com a requisição POST /books.
// @Summary Cria um novo livro
// @Description available é opcional (padrão true). O ano não pode ser maior que o ano corrente.
// @Tags books
// @Accept json
// @Produce json
// @Param book body domain.BookInput true "Dados do livro"
// @Success 201 {object} domain.Book "Livro criado com sucesso"
// @Failure 400 {object} domain.ErrorResponse "Payload inválido, ano futuro ou autor inexistente"
// @Failure 500 {object} domain.ErrorResponse "Erro interno do servidor"
// @Router /books [post]
func (h *Handler) CreateBookHandler(w http.ResponseWriter, r *http.Request) {
	var in domain.BookInput
	if err := response.ReadJSON(w, r, &in); err != nil {
		response.Handle(w, r, h.Logger, nil, err, http.StatusOK)
		return
	}

	book, err := h.Service.CreateBook(r.Context(), in)
	if err != nil {
		response.Handle(w, r, h.Logger, nil, err, http.StatusOK)
		return
	}

	response.Created(w, h.Logger, fmt.Sprintf("/books/%d", book.ID), book)
}

// UpdateBookHandler lida com a requisição PUT /books/{id}.
// @Summary Substitui os dados de um livro
// @Tags books
// @Accept json
// @Param id path int true "ID do Livro"
// @Param book body domain.BookInput true "Dados do livro (id deve coincidir com a URL)"
// @Success 204 "Livro atualizado"
// @Failure 400 {object} domain.ErrorResponse "Payload inválido, IDs divergentes ou autor inexistente"
// @Failure 404 {object} domain.ErrorResponse "Livro não encontrado"
// @Failure 500 {object} domain.ErrorResponse "Erro interno do servidor"
// @Router /books/{id} [put]
func (h *Handler) UpdateBookHandler(w http.ResponseWriter, r *http.Request) {
	id, err := response.ReadIDParam(r, "id")
	if err != nil {
		response.Handle(w, r, h.Logger, nil, err, http.StatusOK)
		return
	}

	var in domain.BookInput
	if err := response.ReadJSON(w, r, &in); err != nil {
		response.Handle(w, r, h.Logger, nil, err, http.StatusOK)
		return
	}

	err = h.Service.UpdateBook(r.Context(), id, in)
	response.Handle(w, r, h.Logger, nil, err, http.StatusNoContent)
}

// DeleteBookHandler lida com a requisição DELETE /books/{id}.
// @Summary Remove um livro sem empréstimos ativos
// @Tags books
// @Param id path int true "ID do Livro"
// @Success 204 "Livro removido"
// @Failure 400 {object} domain.ErrorResponse "Livro com empréstimo ativo"
// @Failure 404 {object} domain.ErrorResponse "Livro não encontrado"
// @Failure 500 {object} domain.ErrorResponse "Erro interno do servidor"
// @Router /books/{id} [delete]
func (h *Handler) DeleteBookHandler(w http.ResponseWriter, r *http.Request) {
	id, err := response.ReadIDParam(r, "id")
	if err != nil {
		response.Handle(w, r, h.Logger, nil, err, http.StatusOK)
		return
	}

	err = h.Service.DeleteBook(r.Context(), id)
	response.Handle(w, r, h.Logger, nil, err, http.StatusNoContent)
}
