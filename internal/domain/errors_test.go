package domain_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/albaranes-api/internal/domain"
)

func TestKindOf_ErrorEnvuelto(t *testing.T) {
	base := domain.NewError(domain.KindInvalidDate, "día %d fuera de rango", 31)
	wrapped := fmt.Errorf("handler: %w", base)

	assert.Equal(t, domain.KindInvalidDate, domain.KindOf(wrapped))
	assert.True(t, errors.Is(wrapped, domain.ErrInvalidDate))
	assert.False(t, errors.Is(wrapped, domain.ErrInvalidFilter))
}

func TestKindOf_ErrorAjeno(t *testing.T) {
	assert.Equal(t, domain.KindUnknown, domain.KindOf(errors.New("boom")))
	assert.Equal(t, domain.KindUnknown, domain.KindOf(nil))
}

func TestWrapError_ConservaCausa(t *testing.T) {
	cause := errors.New("[unixODBC] Data source name not found")
	err := domain.WrapError(domain.KindDatabaseConnection, cause, "conexión ODBC")

	assert.ErrorIs(t, err, cause)
	assert.ErrorIs(t, err, domain.ErrDatabaseConnection)
	assert.Equal(t, "conexión ODBC: [unixODBC] Data source name not found", err.Error())
	assert.Nil(t, domain.WrapError(domain.KindQueryExecution, nil, "x"))
}

func TestKind_IsClientError(t *testing.T) {
	assert.True(t, domain.KindInvalidFilter.IsClientError())
	assert.True(t, domain.KindInvalidDate.IsClientError())
	assert.False(t, domain.KindDatabaseConnection.IsClientError())
	assert.False(t, domain.KindQueryExecution.IsClientError())
	assert.False(t, domain.KindConfiguration.IsClientError())
	assert.Equal(t, "InvalidFilterError", domain.KindInvalidFilter.String())
}
