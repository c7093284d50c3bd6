package middleware

import (
	"fmt"
	"net/http"

	"biblioteca/internal/domain"
	apperror "biblioteca/internal/errors"
	"biblioteca/internal/pkg/logger"
)

// Recoverer converte um panic no handler em 500 com a mensagem genérica.
func Recoverer(log logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				rec := recover()
				if rec == nil {
					return
				}
				if rec == http.ErrAbortHandler {
					panic(rec)
				}

				log.Error("Panic recuperado no handler HTTP.", fmt.Errorf("panic: %v (request_id=%s)", rec, RequestIDFromContext(r.Context())))
				writeError(w, http.StatusInternalServerError, "INTERNAL_ERROR", apperror.GenericInternalMessage)
			}()

			next.ServeHTTP(w, r)
		})
	}
}

func writeError(w http.ResponseWriter, status int, category, message string) {
	body, _ := json.Marshal(domain.ErrorResponse{Code: status, Category: category, Message: message})
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	w.Write(append(body, '\n'))
}
