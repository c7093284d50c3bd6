package domain

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBookInput_IsAvailable(t *testing.T) {
	assert.True(t, BookInput{}.IsAvailable())

	no := false
	assert.False(t, BookInput{Available: &no}.IsAvailable())
}

func TestBookInput_DecodeWithoutAvailable(t *testing.T) {
	var in BookInput
	require.NoError(t, json.Unmarshal([]byte(`{"title":"Emma","publicationYear":1815,"authorId":1}`), &in))

	assert.Nil(t, in.Available)
	assert.True(t, in.IsAvailable())
}

func TestLoan_OpenLoanHasNullReturnDate(t *testing.T) {
	raw, err := json.Marshal(Loan{ID: 1, UserID: 2, BookID: 3})
	require.NoError(t, err)
	assert.Contains(t, string(raw), `"returnDate":null`)

	returned := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	raw, err = json.Marshal(Loan{ID: 1, ReturnDate: &returned})
	require.NoError(t, err)
	assert.Contains(t, string(raw), `"returnDate":"2024-03-01T00:00:00Z"`)
}

func TestUser_HidesPasswordHash(t *testing.T) {
	raw, err := json.Marshal(User{ID: 1, Email: "a@b.c", PasswordHash: "segredo", Role: RoleLeitor})
	require.NoError(t, err)

	assert.NotContains(t, string(raw), "segredo")
	assert.Contains(t, string(raw), `"role":"Leitor"`)
}

func TestAuthor_BooksAlwaysArray(t *testing.T) {
	raw, err := json.Marshal(Author{ID: 1, Name: "Jane Austen", Books: []Book{}})
	require.NoError(t, err)

	assert.JSONEq(t, `{"id":1,"name":"Jane Austen","books":[]}`, string(raw))
}

func TestInputs_AcceptReadOnlyFieldsFromGet(t *testing.T) {
	var author AuthorInput
	require.NoError(t, json.Unmarshal([]byte(`{"id":1,"name":"Jane Austen","books":[{"id":10}]}`), &author))
	assert.Equal(t, "Jane Austen", author.Name)

	var book BookInput
	require.NoError(t, json.Unmarshal([]byte(`{"id":10,"title":"Emma","publicationYear":1815,"available":true,"authorId":1,"author":{"id":1,"name":"Jane Austen"}}`), &book))
	assert.Equal(t, int64(1), book.AuthorID)
}
