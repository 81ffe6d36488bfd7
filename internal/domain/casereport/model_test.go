package casereport

import (
	"testing"

	"healthwatch/internal/domain/validation"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validInput() Input {
	return Input{
		PatientName: "Ravi",
		Age:         34,
		Gender:      "male",
		Symptoms:    []string{"diarrhea", "fever"},
		WaterSource: "handpump",
		Location:    "Ward 5",
	}
}

func TestInput_Prepare(t *testing.T) {
	in := validInput()
	in.PatientName = "  Ravi "
	in.Gender = "Male"
	in.Symptoms = []string{" diarrhea", "", "  ", "fever"}

	out, err := in.Prepare()
	require.NoError(t, err)
	assert.Equal(t, "Ravi", out.PatientName)
	assert.Equal(t, "male", out.Gender)
	assert.Equal(t, []string{"diarrhea", "fever"}, out.Symptoms)
}

func TestInput_Prepare_Invalid(t *testing.T) {
	tests := []struct {
		name        string
		mutate      func(*Input)
		wantMissing []string
	}{
		{name: "blank patient", mutate: func(in *Input) { in.PatientName = " " }, wantMissing: []string{"patientName"}},
		{name: "negative age", mutate: func(in *Input) { in.Age = -3 }, wantMissing: []string{"age"}},
		{name: "age too high", mutate: func(in *Input) { in.Age = 200 }, wantMissing: []string{"age"}},
		{name: "unknown gender", mutate: func(in *Input) { in.Gender = "x" }, wantMissing: []string{"gender"}},
		{name: "no symptoms", mutate: func(in *Input) { in.Symptoms = []string{" "} }, wantMissing: []string{"symptoms"}},
		{
			name: "several missing",
			mutate: func(in *Input) {
				in.Gender = ""
				in.WaterSource = ""
				in.Location = ""
			},
			wantMissing: []string{"gender", "waterSource", "location"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := validInput()
			tt.mutate(&in)

			_, err := in.Prepare()
			var ve *validation.Error
			require.ErrorAs(t, err, &ve)
			assert.Equal(t, tt.wantMissing, ve.Missing())
		})
	}
}

func TestInput_Prepare_InfantAgeAllowed(t *testing.T) {
	in := validInput()
	in.Age = 0

	_, err := in.Prepare()
	assert.NoError(t, err)
}
