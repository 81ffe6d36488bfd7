package validation

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestError_Empty(t *testing.T) {
	var v Error
	v.Required("name", "Asha")
	v.Range("ph", 7, 0, 14)
	v.OneOf("severity", "high", "low", "high")

	assert.NoError(t, v.Err())
}

func TestError_CollectsEveryField(t *testing.T) {
	var v Error
	v.Required("patientName", "   ")
	v.Required("location", "")
	v.Range("age", -1, 0, 130)
	v.OneOf("severity", "urgent", "low", "medium")

	err := v.Err()
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInvalidInput))
	assert.Equal(t, []string{"patientName", "location", "age", "severity"}, v.Missing())
	assert.Equal(t,
		"validation failed: patientName is required; location is required; age must be between 0 and 130; severity must be one of low, medium",
		err.Error())
}

func TestError_As(t *testing.T) {
	var v Error
	v.Required("email", "")
	wrapped := errors.Join(errors.New("register"), v.Err())

	var ve *Error
	require.True(t, errors.As(wrapped, &ve))
	assert.Equal(t, "email", ve.Fields[0].Field)
}
