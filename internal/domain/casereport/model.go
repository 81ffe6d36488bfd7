package casereport

import (
	"strings"
	"time"

	"healthwatch/internal/domain/user"
	"healthwatch/internal/domain/validation"
)

const (
	MinAge = 0
	MaxAge = 130
)

var Genders = []string{"male", "female", "other"}

// Input: данные формы отчёта о случае заболевания.
type Input struct {
	PatientName string
	Age         int
	Gender      string
	Symptoms    []string
	WaterSource string
	Location    string
	Notes       string
	ImageURL    string
}

func (in Input) Prepare() (Input, error) {
	in.PatientName = strings.TrimSpace(in.PatientName)
	in.Gender = strings.ToLower(strings.TrimSpace(in.Gender))
	in.WaterSource = strings.TrimSpace(in.WaterSource)
	in.Location = strings.TrimSpace(in.Location)
	in.Notes = strings.TrimSpace(in.Notes)
	in.ImageURL = strings.TrimSpace(in.ImageURL)

	symptoms := make([]string, 0, len(in.Symptoms))
	for _, s := range in.Symptoms {
		if s = strings.TrimSpace(s); s != "" {
			symptoms = append(symptoms, s)
		}
	}
	in.Symptoms = symptoms

	var errs validation.Error
	errs.Required("patientName", in.PatientName)
	errs.Range("age", float64(in.Age), MinAge, MaxAge)
	if in.Gender == "" {
		errs.Add("gender", "is required")
	} else {
		errs.OneOf("gender", in.Gender, Genders...)
	}
	if len(in.Symptoms) == 0 {
		errs.Add("symptoms", "must list at least one symptom")
	}
	errs.Required("waterSource", in.WaterSource)
	errs.Required("location", in.Location)

	return in, errs.Err()
}

type Report struct {
	ID          string       `json:"_id"`
	PatientName string       `json:"patientName"`
	Age         int          `json:"age"`
	Gender      string       `json:"gender"`
	Symptoms    []string     `json:"symptoms"`
	WaterSource string       `json:"waterSource"`
	Location    string       `json:"location"`
	Notes       string       `json:"notes,omitempty"`
	ImageURL    string       `json:"imageUrl,omitempty"`
	ReportedBy  *user.Public `json:"reportedBy"`
	CreatedAt   time.Time    `json:"createdAt"`
}
