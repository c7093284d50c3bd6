package bookservice_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"biblioteca/internal/domain"
	apperror "biblioteca/internal/errors"
	"biblioteca/internal/pkg/logger"
	"biblioteca/internal/service/bookservice"
)

// MockBookRepository é uma implementação mock da interface BookRepository
type MockBookRepository struct {
	mock.Mock
}

func (m *MockBookRepository) FindAll(ctx context.Context) ([]domain.Book, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.Book), args.Error(1)
}

func (m *MockBookRepository) FindByID(ctx context.Context, id int64) (domain.Book, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(domain.Book), args.Error(1)
}

func (m *MockBookRepository) Exists(ctx context.Context, id int64) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

func (m *MockBookRepository) Create(ctx context.Context, book domain.Book) (domain.Book, error) {
	args := m.Called(ctx, book)
	return args.Get(0).(domain.Book), args.Error(1)
}

func (m *MockBookRepository) Update(ctx context.Context, book domain.Book) error {
	args := m.Called(ctx, book)
	return args.Error(0)
}

func (m *MockBookRepository) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockAuthorLookup é uma implementação mock da interface AuthorLookup
type MockAuthorLookup struct {
	mock.Mock
}

func (m *MockAuthorLookup) Exists(ctx context.Context, id int64) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

// MockLoanLookup é uma implementação mock da interface LoanLookup
type MockLoanLookup struct {
	mock.Mock
}

func (m *MockLoanLookup) HasOpenLoanForBook(ctx context.Context, bookID int64) (bool, error) {
	args := m.Called(ctx, bookID)
	return args.Bool(0), args.Error(1)
}

type fixture struct {
	svc     *bookservice.Service
	books   *MockBookRepository
	authors *MockAuthorLookup
	loans   *MockLoanLookup
}

// fixedNow fixa o ano corrente em 2024.
func fixedNow() time.Time {
	return time.Date(2024, time.June, 1, 12, 0, 0, 0, time.UTC)
}

func newFixture() fixture {
	f := fixture{
		books:   new(MockBookRepository),
		authors: new(MockAuthorLookup),
		loans:   new(MockLoanLookup),
	}
	f.svc = bookservice.NewService(f.books, f.authors, f.loans, logger.NewNop()).WithClock(fixedNow)
	return f
}

func boolPtr(b bool) *bool { return &b }

// --- Testes para CreateBook ---

func TestCreateBook_Success_DefaultsAvailable(t *testing.T) {
	f := newFixture()

	expected := domain.Book{Title: "Emma", PublicationYear: 1815, Available: true, AuthorID: 1}
	f.authors.On("Exists", mock.Anything, int64(1)).Return(true, nil)
	f.books.On("Create", mock.Anything, expected).Return(domain.Book{ID: 1, Title: "Emma", PublicationYear: 1815, Available: true, AuthorID: 1}, nil)

	book, err := f.svc.CreateBook(context.Background(), domain.BookInput{Title: "Emma", PublicationYear: 1815, AuthorID: 1})

	require.NoError(t, err)
	assert.Equal(t, int64(1), book.ID)
	f.books.AssertExpectations(t)
}

func TestCreateBook_YearBoundary(t *testing.T) {
	t.Run("ano corrente é aceito", func(t *testing.T) {
		f := newFixture()
		f.authors.On("Exists", mock.Anything, int64(1)).Return(true, nil)
		f.books.On("Create", mock.Anything, mock.AnythingOfType("domain.Book")).Return(domain.Book{ID: 2}, nil)

		_, err := f.svc.CreateBook(context.Background(), domain.BookInput{Title: "Novo", PublicationYear: 2024, AuthorID: 1})
		assert.NoError(t, err)
	})

	t.Run("ano seguinte é rejeitado", func(t *testing.T) {
		f := newFixture()

		_, err := f.svc.CreateBook(context.Background(), domain.BookInput{Title: "Futuro", PublicationYear: 2025, AuthorID: 1})

		assert.IsType(t, &apperror.ValidationError{}, err)
		assert.Equal(t, "Ano de publicação não pode ser futuro", err.Error())
		f.authors.AssertNotCalled(t, "Exists", mock.Anything, mock.Anything)
		f.books.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})
}

func TestCreateBook_Fail_MissingTitle(t *testing.T) {
	f := newFixture()

	_, err := f.svc.CreateBook(context.Background(), domain.BookInput{Title: "  ", PublicationYear: 1815, AuthorID: 1})

	assert.IsType(t, &apperror.ValidationError{}, err)
	assert.Equal(t, map[string]string{"title": "O título é obrigatório"}, apperror.FieldErrors(err))
	f.books.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestCreateBook_Fail_AuthorMissing(t *testing.T) {
	f := newFixture()

	f.authors.On("Exists", mock.Anything, int64(42)).Return(false, nil)

	_, err := f.svc.CreateBook(context.Background(), domain.BookInput{Title: "Emma", PublicationYear: 1815, AuthorID: 42})

	assert.IsType(t, &apperror.ValidationError{}, err)
	assert.Equal(t, "Autor com ID 42 não encontrado", err.Error())
	f.books.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestCreateBook_Fail_RepoError(t *testing.T) {
	f := newFixture()

	f.authors.On("Exists", mock.Anything, int64(1)).Return(true, nil)
	f.books.On("Create", mock.Anything, mock.Anything).Return(domain.Book{}, errors.New("database connection failed"))

	_, err := f.svc.CreateBook(context.Background(), domain.BookInput{Title: "Emma", PublicationYear: 1815, AuthorID: 1})

	assert.IsType(t, &apperror.InternalError{}, err)
}

// --- Testes para UpdateBook ---

func TestUpdateBook_Success_NoFutureYearCheck(t *testing.T) {
	f := newFixture()

	expected := domain.Book{ID: 1, Title: "Emma", PublicationYear: 2030, Available: false, AuthorID: 1}
	f.books.On("Exists", mock.Anything, int64(1)).Return(true, nil)
	f.authors.On("Exists", mock.Anything, int64(1)).Return(true, nil)
	f.books.On("Update", mock.Anything, expected).Return(nil)

	err := f.svc.UpdateBook(context.Background(), 1, domain.BookInput{ID: 1, Title: "Emma", PublicationYear: 2030, Available: boolPtr(false), AuthorID: 1})

	assert.NoError(t, err)
	f.books.AssertExpectations(t)
}

func TestUpdateBook_Fail_AuthorMissing_LeavesBookUnchanged(t *testing.T) {
	f := newFixture()

	f.books.On("Exists", mock.Anything, int64(1)).Return(true, nil)
	f.authors.On("Exists", mock.Anything, int64(99)).Return(false, nil)

	err := f.svc.UpdateBook(context.Background(), 1, domain.BookInput{ID: 1, Title: "Emma", PublicationYear: 1815, AuthorID: 99})

	assert.IsType(t, &apperror.ValidationError{}, err)
	f.books.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestUpdateBook_Fail_IDMismatch(t *testing.T) {
	f := newFixture()

	err := f.svc.UpdateBook(context.Background(), 1, domain.BookInput{ID: 2, Title: "Emma", AuthorID: 1})

	assert.IsType(t, &apperror.ValidationError{}, err)
	assert.Equal(t, "ID da URL não corresponde ao ID do livro", err.Error())
	f.books.AssertNotCalled(t, "Exists", mock.Anything, mock.Anything)
}

func TestUpdateBook_Fail_NotFound(t *testing.T) {
	f := newFixture()

	f.books.On("Exists", mock.Anything, int64(8)).Return(false, nil)

	err := f.svc.UpdateBook(context.Background(), 8, domain.BookInput{ID: 8, Title: "Emma", AuthorID: 1})

	assert.IsType(t, &apperror.NotFoundError{}, err)
	f.authors.AssertNotCalled(t, "Exists", mock.Anything, mock.Anything)
}

// --- Testes para DeleteBook ---

func TestDeleteBook(t *testing.T) {
	t.Run("inexistente", func(t *testing.T) {
		f := newFixture()
		f.books.On("Exists", mock.Anything, int64(1)).Return(false, nil)

		err := f.svc.DeleteBook(context.Background(), 1)
		assert.IsType(t, &apperror.NotFoundError{}, err)
		f.loans.AssertNotCalled(t, "HasOpenLoanForBook", mock.Anything, mock.Anything)
	})

	t.Run("empréstimo ativo", func(t *testing.T) {
		f := newFixture()
		f.books.On("Exists", mock.Anything, int64(1)).Return(true, nil)
		f.loans.On("HasOpenLoanForBook", mock.Anything, int64(1)).Return(true, nil)

		err := f.svc.DeleteBook(context.Background(), 1)
		assert.IsType(t, &apperror.ConflictError{}, err)
		assert.Equal(t, "Não é possível deletar um livro com empréstimos ativos", err.Error())
		f.books.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
	})

	t.Run("sucesso", func(t *testing.T) {
		f := newFixture()
		f.books.On("Exists", mock.Anything, int64(1)).Return(true, nil)
		f.loans.On("HasOpenLoanForBook", mock.Anything, int64(1)).Return(false, nil)
		f.books.On("Delete", mock.Anything, int64(1)).Return(nil)

		assert.NoError(t, f.svc.DeleteBook(context.Background(), 1))
		f.books.AssertExpectations(t)
	})
}

func TestGetBook_NotFoundPassesThrough(t *testing.T) {
	f := newFixture()

	f.books.On("FindByID", mock.Anything, int64(3)).Return(domain.Book{}, apperror.NewNotFoundError("Livro com ID 3 não encontrado"))

	_, err := f.svc.GetBook(context.Background(), 3)

	assert.IsType(t, &apperror.NotFoundError{}, err)
}
