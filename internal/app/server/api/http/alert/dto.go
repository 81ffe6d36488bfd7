package alert

import "healthwatch/internal/domain/alert"

type alertCreateInput struct {
	Body struct {
		Title    string `json:"title" example:"Boil water notice"`
		Message  string `json:"message" example:"Boil water before consumption"`
		Severity string `json:"severity,omitempty" example:"medium" doc:"low, medium, high or critical; medium when omitted"`
		Location string `json:"location,omitempty" example:"Ward 5"`
		IsActive *bool  `json:"isActive,omitempty" doc:"true when omitted"`
	}
}

func (in *alertCreateInput) toDomain() alert.Input {
	return alert.Input{
		Title:    in.Body.Title,
		Message:  in.Body.Message,
		Severity: in.Body.Severity,
		Location: in.Body.Location,
		IsActive: in.Body.IsActive,
	}
}

type alertCreateOutput struct {
	Body struct {
		Message string      `json:"message"`
		Alert   alert.Alert `json:"alert"`
	}
}

type alertListOutput struct {
	Body struct {
		Alerts []alert.Alert `json:"alerts"`
	}
}
