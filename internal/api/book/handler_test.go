package book_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"biblioteca/internal/api/book"
	"biblioteca/internal/domain"
	apperror "biblioteca/internal/errors"
	"biblioteca/internal/pkg/logger"
)

// MockBookService é uma implementação mock da interface BookService
type MockBookService struct {
	mock.Mock
}

func (m *MockBookService) ListBooks(ctx context.Context) ([]domain.Book, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.Book), args.Error(1)
}

func (m *MockBookService) GetBook(ctx context.Context, id int64) (domain.Book, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(domain.Book), args.Error(1)
}

func (m *MockBookService) CreateBook(ctx context.Context, in domain.BookInput) (domain.Book, error) {
	args := m.Called(ctx, in)
	return args.Get(0).(domain.Book), args.Error(1)
}

func (m *MockBookService) UpdateBook(ctx context.Context, pathID int64, in domain.BookInput) error {
	args := m.Called(ctx, pathID, in)
	return args.Error(0)
}

func (m *MockBookService) DeleteBook(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func newRouter(svc *MockBookService) http.Handler {
	h := book.NewHandler(svc, logger.NewNop())
	r := chi.NewRouter()
	r.Post("/books", h.CreateBookHandler)
	r.Get("/books/{id}", h.GetBookHandler)
	r.Delete("/books/{id}", h.DeleteBookHandler)
	return r
}

func TestCreateBookHandler_Created(t *testing.T) {
	svc := new(MockBookService)
	in := domain.BookInput{Title: "Emma", PublicationYear: 1815, AuthorID: 1}
	svc.On("CreateBook", mock.Anything, in).
		Return(domain.Book{ID: 7, Title: "Emma", PublicationYear: 1815, Available: true, AuthorID: 1}, nil)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/books", strings.NewReader(`{"title":"Emma","publicationYear":1815,"authorId":1}`))
	newRouter(svc).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, "/books/7", rec.Header().Get("Location"))
	assert.JSONEq(t, `{"id":7,"title":"Emma","publicationYear":1815,"available":true,"authorId":1}`, rec.Body.String())
}

func TestCreateBookHandler_MalformedJSON(t *testing.T) {
	svc := new(MockBookService)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/books", strings.NewReader(`{"title":`))
	newRouter(svc).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	svc.AssertNotCalled(t, "CreateBook", mock.Anything, mock.Anything)
}

func TestGetBookHandler_NotFound(t *testing.T) {
	svc := new(MockBookService)
	svc.On("GetBook", mock.Anything, int64(5)).Return(domain.Book{}, apperror.NewNotFoundError("Livro com ID 5 não encontrado"))

	rec := httptest.NewRecorder()
	newRouter(svc).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/books/5", nil))

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.JSONEq(t, `{"code":404,"category":"NOT_FOUND","message":"Livro com ID 5 não encontrado"}`, rec.Body.String())
}

func TestDeleteBookHandler_Conflict(t *testing.T) {
	svc := new(MockBookService)
	svc.On("DeleteBook", mock.Anything, int64(2)).Return(apperror.NewConflictError("Não é possível deletar um livro com empréstimos ativos"))

	rec := httptest.NewRecorder()
	newRouter(svc).ServeHTTP(rec, httptest.NewRequest(http.MethodDelete, "/books/2", nil))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), `"category":"CONFLICT"`)
}
