package watertest

import (
	"strings"
	"time"

	"healthwatch/internal/domain/user"
	"healthwatch/internal/domain/validation"
)

// Результаты бактериологического теста, которые принимает форма.
var BacterialResults = []string{"negative", "positive", "pending", "not-tested"}

type Input struct {
	Location      string
	Turbidity     float64
	PH            float64
	Temperature   *float64
	BacterialTest string
	Notes         string
}

func (in Input) Prepare() (Input, error) {
	in.Location = strings.TrimSpace(in.Location)
	in.BacterialTest = strings.ToLower(strings.TrimSpace(in.BacterialTest))
	in.Notes = strings.TrimSpace(in.Notes)

	var errs validation.Error
	errs.Required("location", in.Location)
	if in.Turbidity < 0 {
		errs.Add("turbidity", "must not be negative")
	}
	errs.Range("ph", in.PH, 0, 14)
	if in.Temperature != nil {
		errs.Range("temperature", *in.Temperature, -20, 100)
	}
	if in.BacterialTest != "" {
		errs.OneOf("bacterialTest", in.BacterialTest, BacterialResults...)
	}

	return in, errs.Err()
}

type Test struct {
	ID            string       `json:"_id"`
	Location      string       `json:"location"`
	Turbidity     float64      `json:"turbidity"`
	PH            float64      `json:"ph"`
	Temperature   *float64     `json:"temperature,omitempty"`
	BacterialTest string       `json:"bacterialTest,omitempty"`
	Notes         string       `json:"notes,omitempty"`
	ReportedBy    *user.Public `json:"reportedBy"`
	CreatedAt     time.Time    `json:"createdAt"`
}
