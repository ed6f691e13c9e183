package middleware

import (
	"errors"
	"testing"

	"github.com/gin-gonic/gin/binding"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type pageQuery struct {
	Page  int    `form:"page" binding:"omitempty,min=1"`
	Email string `json:"email" binding:"omitempty,email"`
	Nome  string `json:"nome" binding:"required"`
}

func TestValidationFields(t *testing.T) {
	SetupValidator()

	err := binding.Validator.ValidateStruct(&pageQuery{Page: -1, Email: "x"})
	require.Error(t, err)

	fields := ValidationFields(err)
	assert.Equal(t, map[string]string{
		"page":  "Deve ser no mínimo 1",
		"email": "E-mail inválido",
		"nome":  "Campo obrigatório",
	}, fields)

	assert.Nil(t, ValidationFields(errors.New("boom")))
}
