package validator

import (
	"net/http"
	"testing"

	domainerrors "storefront/internal/domain/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"storefront/internal/errors"
)

type loginInput struct {
	Identifier string `validate:"required"`
	Password   string `validate:"required,min=8"`
}

func TestValidate_Passes(t *testing.T) {
	v := New()

	require.NoError(t, v.Validate(&loginInput{Identifier: "admin", Password: "long-enough"}))
}

func TestValidate_FailureMapsToValidationTaxonomy(t *testing.T) {
	v := New()

	err := v.Validate(&loginInput{Identifier: "", Password: "short"})
	require.Error(t, err)

	var appErr domainerrors.AppError
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, http.StatusBadRequest, appErr.HTTPCode())
	assert.Equal(t, "VALIDATION_FAILED", appErr.ErrorCode())
	assert.NotEmpty(t, appErr.Details())
}
