package validator

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidator_FirstErrorWins(t *testing.T) {
	v := New()
	assert.True(t, v.Valid())

	v.Check(false, "title", "O título é obrigatório")
	v.Check(false, "title", "outra mensagem")
	v.Check(true, "authorId", "não deve aparecer")

	assert.False(t, v.Valid())
	assert.Equal(t, map[string]string{"title": "O título é obrigatório"}, v.Errors)
}

func TestHelpers(t *testing.T) {
	assert.False(t, NotBlank("   \t"))
	assert.True(t, NotBlank(" a "))

	assert.True(t, MinChars("Zé", 2))
	assert.False(t, MinChars("Z", 2))
	assert.True(t, MaxChars("ção", 3))
	assert.False(t, MaxChars("abcd", 3))
}
