package domain

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDomainErrorMessage(t *testing.T) {
	plain := ValidationError("dpi must be positive", nil)
	assert.Equal(t, "[validation] dpi must be positive", plain.Error())

	wrapped := DocumentOpenError("cannot open doc.pdf", errors.New("bad header"))
	assert.Equal(t, "[document_open] cannot open doc.pdf: bad header", wrapped.Error())
}

func TestDomainErrorUnwrap(t *testing.T) {
	cause := errors.New("disk full")
	err := IOError("cannot write raster", cause)

	assert.ErrorIs(t, err, cause)
}

func TestIsType(t *testing.T) {
	err := InvalidPageRangeError("3-2")

	assert.True(t, IsType(err, ErrorTypeInvalidPageRange))
	assert.False(t, IsType(err, ErrorTypeInvalidPageNumber))
	assert.False(t, IsType(errors.New("plain"), ErrorTypeInvalidPageRange))
	assert.False(t, IsType(nil, ErrorTypeInvalidPageRange))
}

func TestIsTypeThroughWrapping(t *testing.T) {
	inner := SourceNotFoundError("missing.pdf", nil)
	outer := fmt.Errorf("export failed: %w", inner)

	assert.True(t, IsType(outer, ErrorTypeSourceNotFound))
}

func TestTokenConstructors(t *testing.T) {
	assert.Contains(t, InvalidPageNumberError("abc").Error(), "abc")
	assert.Contains(t, InvalidPageRangeError("9-2").Error(), "9-2")
}
