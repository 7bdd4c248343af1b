package errors

import (
	stdErrors "errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCarriesCodeAndMessage(t *testing.T) {
	t.Parallel()

	err := New(CodeNotFound, "product not found")
	require.Error(t, err)
	assert.Equal(t, CodeNotFound, err.Code())
	assert.Equal(t, "product not found", err.Message())
	assert.Equal(t, "NOT_FOUND: product not found", err.Error())
}

func TestWrapPreservesCause(t *testing.T) {
	t.Parallel()

	cause := stdErrors.New("boom")
	err := Wrap(CodeDependency, cause, "load catalog")

	assert.True(t, stdErrors.Is(err, cause))
	assert.Equal(t, CodeDependency, err.Code())
}

func TestAsUnwrapsThroughFmtErrorf(t *testing.T) {
	t.Parallel()

	inner := New(CodeValidation, "quantity must be positive")
	outer := fmt.Errorf("add item: %w", inner)

	typed := As(outer)
	require.NotNil(t, typed)
	assert.Equal(t, CodeValidation, typed.Code())
}

func TestAsReturnsNilForPlainError(t *testing.T) {
	t.Parallel()

	assert.Nil(t, As(stdErrors.New("plain")))
	assert.Nil(t, As(nil))
}

func TestMetadataForUnknownCodeFallsBackToInternal(t *testing.T) {
	t.Parallel()

	meta := MetadataFor(Code("NOPE"))
	assert.Equal(t, http.StatusInternalServerError, meta.HTTPStatus)
}

func TestDumpCollectsChain(t *testing.T) {
	t.Parallel()

	err := Wrap(CodeConflict, stdErrors.New("row locked"), "update cart")
	dump := Dump(err)

	assert.Equal(t, CodeConflict, dump.Code)
	assert.Len(t, dump.Chain, 2)
	assert.Contains(t, dump.TopMessage, "update cart")
}
