package alert

import (
	"testing"

	"healthwatch/internal/domain/validation"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInput_Prepare_Defaults(t *testing.T) {
	out, err := Input{Title: " Boil water ", Message: "Boil before drinking"}.Prepare()
	require.NoError(t, err)

	assert.Equal(t, "Boil water", out.Title)
	assert.Equal(t, SeverityMedium, out.Severity)
	require.NotNil(t, out.IsActive)
	assert.True(t, *out.IsActive)
	assert.True(t, out.Active())
}

func TestInput_Prepare_KeepsInactive(t *testing.T) {
	inactive := false
	out, err := Input{Title: "t", Message: "m", Severity: "HIGH", IsActive: &inactive}.Prepare()
	require.NoError(t, err)

	assert.Equal(t, SeverityHigh, out.Severity)
	assert.False(t, out.Active())
}

func TestInput_Prepare_Invalid(t *testing.T) {
	_, err := Input{Severity: "urgent"}.Prepare()

	var ve *validation.Error
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, []string{"title", "message", "severity"}, ve.Missing())
}
