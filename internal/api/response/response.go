// Package response concentra a leitura de requisições e a escrita de respostas padronizadas da API.
package response

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	jsoniter "github.com/json-iterator/go"

	"biblioteca/internal/domain"
	apperror "biblioteca/internal/errors"
	"biblioteca/internal/pkg/logger"
)

// MaxBodyBytes limita o corpo das requisições a 1MB.
const MaxBodyBytes = 1_048_576

var encoder = jsoniter.ConfigCompatibleWithStandardLibrary

// Handle processa o resultado de um serviço e envia a resposta padronizada ao cliente.
// Com err nil, data é codificado com successStatus (sem corpo se data for nil).
func Handle(w http.ResponseWriter, r *http.Request, log logger.Logger, data interface{}, err error, successStatus int) {
	if err == nil {
		if data == nil {
			w.WriteHeader(successStatus)
			return
		}
		JSON(w, log, successStatus, data)
		return
	}

	status, category, message := apperror.MapToHTTPStatus(err)

	switch {
	case apperror.IsInternal(err):
		log.Error(fmt.Sprintf("Erro de Servidor: %s", category), err)
	case status >= http.StatusInternalServerError:
		log.Error("Erro sem tipo chegou ao handler.", err)
	default:
		log.Debug(fmt.Sprintf("Requisição rejeitada com status %d. Categoria: %s", status, category), map[string]interface{}{"path": r.URL.Path})
	}

	JSON(w, log, status, domain.ErrorResponse{
		Code:     status,
		Category: category,
		Message:  message,
		Errors:   apperror.FieldErrors(err),
	})
}

// JSON codifica data e escreve com status.
func JSON(w http.ResponseWriter, log logger.Logger, status int, data interface{}) {
	body, err := encoder.Marshal(data)
	if err != nil {
		log.Error("Falha ao codificar JSON de resposta", err)
		http.Error(w, "Erro ao codificar resposta", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	w.Write(append(body, '\n'))
}

// Created responde 201 com Location apontando para o recurso criado.
func Created(w http.ResponseWriter, log logger.Logger, location string, data interface{}) {
	w.Header().Set("Location", location)
	JSON(w, log, http.StatusCreated, data)
}

// ReadJSON decodifica um único valor JSON do corpo em dst. Campos desconhecidos,
// corpo vazio, corpo acima de MaxBodyBytes e valores extras viram ValidationError.
func ReadJSON(w http.ResponseWriter, r *http.Request, dst interface{}) error {
	r.Body = http.MaxBytesReader(w, r.Body, MaxBodyBytes)

	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()

	if err := dec.Decode(dst); err != nil {
		return decodeError(err)
	}

	if err := dec.Decode(&struct{}{}); !errors.Is(err, io.EOF) {
		return apperror.NewValidationError("O corpo deve conter um único valor JSON")
	}

	return nil
}

func decodeError(err error) error {
	var syntaxError *json.SyntaxError
	var typeError *json.UnmarshalTypeError
	var maxBytesError *http.MaxBytesError

	switch {
	case errors.As(err, &syntaxError), errors.Is(err, io.ErrUnexpectedEOF):
		return apperror.NewValidationError("Payload inválido. Verifique o formato JSON.")
	case errors.As(err, &typeError):
		if typeError.Field != "" {
			return apperror.NewFieldValidationError(
				fmt.Sprintf("Tipo inválido para o campo %q", typeError.Field),
				map[string]string{typeError.Field: "Tipo inválido"},
			)
		}
		return apperror.NewValidationError("Payload inválido. Verifique o formato JSON.")
	case errors.Is(err, io.EOF):
		return apperror.NewValidationError("O corpo da requisição não pode ser vazio")
	case strings.HasPrefix(err.Error(), "json: unknown field "):
		field := strings.Trim(strings.TrimPrefix(err.Error(), "json: unknown field "), `"`)
		return apperror.NewFieldValidationError(
			fmt.Sprintf("Campo desconhecido %q", field),
			map[string]string{field: "Campo desconhecido"},
		)
	case errors.As(err, &maxBytesError):
		return apperror.NewValidationError(fmt.Sprintf("O corpo da requisição não pode exceder %d bytes", maxBytesError.Limit))
	default:
		return apperror.NewValidationError("Payload inválido. Verifique o formato JSON.")
	}
}

// ReadIDParam lê o parâmetro de rota name como ID positivo.
func ReadIDParam(r *http.Request, name string) (int64, error) {
	raw := chi.URLParam(r, name)
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id < 1 {
		return 0, apperror.NewValidationError(fmt.Sprintf("ID inválido: %q", raw))
	}
	return id, nil
}
