package validation

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVar(t *testing.T) {
	assert.Empty(t, Var("hello", "required,max=200"))
	assert.Equal(t, "is required", Var("", "required,max=200"))
	assert.Equal(t, "must be at most 5 characters long", Var("toolong", "required,max=5"))
	// max counts characters, not bytes
	assert.Empty(t, Var(strings.Repeat("é", 5), "required,max=5"))
}

type loginPayload struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

func TestToDetails_ValidationErrors(t *testing.T) {
	err := engine().Struct(loginPayload{Email: "nope"})
	require.Error(t, err)

	details := ToDetails(err)
	assert.Equal(t, "must be a valid email", details["email"])
	assert.Equal(t, "is required", details["password"])
}

func TestToDetails_InvalidJSON(t *testing.T) {
	var v map[string]any
	err := json.Unmarshal([]byte("{"), &v)
	require.Error(t, err)
	assert.Equal(t, map[string]string{"payload": "invalid json"}, ToDetails(err))
}

func TestToDetails_Nil(t *testing.T) {
	assert.Nil(t, ToDetails(nil))
}

func TestSlugAlias(t *testing.T) {
	assert.Empty(t, Var("acme", "slug"))
	assert.NotEmpty(t, Var("Acme", "slug"))
	assert.NotEmpty(t, Var("ac-me", "slug"))
}
