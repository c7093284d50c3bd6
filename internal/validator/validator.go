// Package validator acumula erros de validação por campo e os devolve como mapa.
package validator

import (
	"strings"
	"unicode/utf8"
)

// Validator guarda o mapa campo -> mensagem de erro.
// Um Validator com o mapa vazio é considerado válido.
type Validator struct {
	Errors map[string]string
}

// New cria um Validator vazio.
func New() *Validator {
	return &Validator{Errors: make(map[string]string)}
}

// Valid indica se nenhum erro foi registrado.
func (v *Validator) Valid() bool {
	return len(v.Errors) == 0
}

// AddError registra a mensagem para key. A primeira falha de um campo é a que fica.
func (v *Validator) AddError(key, message string) {
	if _, exists := v.Errors[key]; !exists {
		v.Errors[key] = message
	}
}

// Check adiciona o erro para key apenas quando ok é falso:
//
//	v.Check(validator.NotBlank(title), "title", "O título é obrigatório")
func (v *Validator) Check(ok bool, key, message string) {
	if !ok {
		v.AddError(key, message)
	}
}

// NotBlank indica se value tem algum caractere que não seja espaço.
func NotBlank(value string) bool {
	return strings.TrimSpace(value) != ""
}

// MinChars indica se value tem pelo menos n caracteres (runas).
func MinChars(value string, n int) bool {
	return utf8.RuneCountInString(value) >= n
}

// MaxChars indica se value tem no máximo n caracteres (runas).
func MaxChars(value string, n int) bool {
	return utf8.RuneCountInString(value) <= n
}
