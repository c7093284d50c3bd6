package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	httpSwagger "github.com/swaggo/http-swagger/v2"

	"biblioteca/internal/api/author"
	"biblioteca/internal/api/book"
	"biblioteca/internal/api/response"
	apperror "biblioteca/internal/errors"
	"biblioteca/internal/pkg/logger"
	"biblioteca/internal/pkg/middleware"
)

// Options reúne os Handlers já inicializados e a configuração dos middlewares.
type Options struct {
	AuthorHandler *author.Handler
	BookHandler   *book.Handler
	Logger        logger.Logger

	// Limiter nil desliga o rate limiting.
	Limiter   middleware.Limiter
	RateLimit int

	// SwaggerEnabled monta /swagger/*; só em desenvolvimento.
	SwaggerEnabled bool
}

// NewRouter configura e retorna o roteador HTTP principal.
func NewRouter(opts Options) http.Handler {
	r := chi.NewRouter()

	r.Use(chimw.RealIP)
	r.Use(middleware.RequestID)
	r.Use(middleware.AccessLog(opts.Logger))
	r.Use(middleware.Recoverer(opts.Logger))
	if opts.Limiter != nil {
		r.Use(middleware.RateLimiter(opts.Limiter, opts.RateLimit, opts.Logger))
	}

	r.NotFound(func(w http.ResponseWriter, req *http.Request) {
		response.Handle(w, req, opts.Logger, nil, apperror.NewNotFoundError("Rota não encontrada"), http.StatusOK)
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, req *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusMethodNotAllowed)
		w.Write([]byte(`{"code":405,"category":"METHOD_NOT_ALLOWED","message":"Método não permitido"}` + "\n"))
	})

	// --- Health Check e documentação ---
	r.Get("/ping", PingHandler)
	if opts.SwaggerEnabled {
		r.Get("/swagger/*", httpSwagger.Handler(httpSwagger.URL("/swagger/doc.json")))
	}

	// --- Autores ---
	// search e statistics precisam vir antes de /{id}.
	r.Route("/authors", func(r chi.Router) {
		h := opts.AuthorHandler
		r.Get("/", h.ListAuthorsHandler)
		r.Post("/", h.CreateAuthorHandler)
		r.Get("/search", h.SearchAuthorsHandler)
		r.Get("/statistics", h.StatisticsHandler)
		r.Get("/{id}", h.GetAuthorHandler)
		r.Put("/{id}", h.UpdateAuthorHandler)
		r.Delete("/{id}", h.DeleteAuthorHandler)
		r.Get("/{id}/books", h.ListAuthorBooksHandler)
	})

	// --- Livros ---
	r.Route("/books", func(r chi.Router) {
		h := opts.BookHandler
		r.Get("/", h.ListBooksHandler)
		r.Post("/", h.CreateBookHandler)
		r.Get("/{id}", h.GetBookHandler)
		r.Put("/{id}", h.UpdateBookHandler)
		r.Delete("/{id}", h.DeleteBookHandler)
	})

	return r
}

// PingHandler é uma função utilitária para o health check.
func PingHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("pong"))
}
