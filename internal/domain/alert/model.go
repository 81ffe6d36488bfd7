package alert

import (
	"strings"
	"time"

	"healthwatch/internal/domain/validation"
)

const (
	SeverityLow      = "low"
	SeverityMedium   = "medium"
	SeverityHigh     = "high"
	SeverityCritical = "critical"
)

var Severities = []string{SeverityLow, SeverityMedium, SeverityHigh, SeverityCritical}

// Input: объявление для сообщества. Пустая важность означает medium,
// nil IsActive означает активное объявление.
type Input struct {
	Title    string
	Message  string
	Severity string
	Location string
	IsActive *bool
}

func (in Input) Prepare() (Input, error) {
	in.Title = strings.TrimSpace(in.Title)
	in.Message = strings.TrimSpace(in.Message)
	in.Location = strings.TrimSpace(in.Location)
	in.Severity = strings.ToLower(strings.TrimSpace(in.Severity))
	if in.Severity == "" {
		in.Severity = SeverityMedium
	}
	if in.IsActive == nil {
		active := true
		in.IsActive = &active
	}

	var errs validation.Error
	errs.Required("title", in.Title)
	errs.Required("message", in.Message)
	errs.OneOf("severity", in.Severity, Severities...)

	return in, errs.Err()
}

// Active reports the prepared activity flag.
func (in Input) Active() bool {
	return in.IsActive == nil || *in.IsActive
}

type Alert struct {
	ID        string    `json:"_id"`
	Title     string    `json:"title"`
	Message   string    `json:"message"`
	Severity  string    `json:"severity"`
	Location  string    `json:"location,omitempty"`
	IsActive  bool      `json:"isActive"`
	CreatedAt time.Time `json:"createdAt"`
}
