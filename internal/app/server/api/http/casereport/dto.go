package casereport

import "healthwatch/internal/domain/casereport"

type caseSubmitInput struct {
	Body struct {
		PatientName string   `json:"patientName" example:"Ravi Kumar"`
		Age         int      `json:"age" example:"34"`
		Gender      string   `json:"gender" example:"male" doc:"male, female or other"`
		Symptoms    []string `json:"symptoms" example:"[\"diarrhea\",\"fever\"]"`
		WaterSource string   `json:"waterSource" example:"handpump"`
		Location    string   `json:"location" example:"Ward 5"`
		Notes       string   `json:"notes,omitempty"`
		ImageURL    string   `json:"imageUrl,omitempty" doc:"URL returned by /api/upload-image"`
	}
}

func (in *caseSubmitInput) toDomain() casereport.Input {
	return casereport.Input{
		PatientName: in.Body.PatientName,
		Age:         in.Body.Age,
		Gender:      in.Body.Gender,
		Symptoms:    in.Body.Symptoms,
		WaterSource: in.Body.WaterSource,
		Location:    in.Body.Location,
		Notes:       in.Body.Notes,
		ImageURL:    in.Body.ImageURL,
	}
}

type caseSubmitOutput struct {
	Body struct {
		Message string            `json:"message"`
		Case    casereport.Report `json:"case"`
	}
}

type caseListOutput struct {
	Body struct {
		Cases []casereport.Report `json:"cases"`
	}
}
