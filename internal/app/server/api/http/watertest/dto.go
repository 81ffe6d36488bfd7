package watertest

import "healthwatch/internal/domain/watertest"

type waterTestSubmitInput struct {
	Body struct {
		Location      string   `json:"location" example:"Ward 5 handpump"`
		Turbidity     float64  `json:"turbidity" example:"4.5" doc:"NTU"`
		PH            float64  `json:"ph" example:"7.2"`
		Temperature   *float64 `json:"temperature,omitempty" example:"26" doc:"Celsius"`
		BacterialTest string   `json:"bacterialTest,omitempty" example:"negative" doc:"negative, positive, pending or not-tested"`
		Notes         string   `json:"notes,omitempty"`
	}
}

func (in *waterTestSubmitInput) toDomain() watertest.Input {
	return watertest.Input{
		Location:      in.Body.Location,
		Turbidity:     in.Body.Turbidity,
		PH:            in.Body.PH,
		Temperature:   in.Body.Temperature,
		BacterialTest: in.Body.BacterialTest,
		Notes:         in.Body.Notes,
	}
}

type waterTestSubmitOutput struct {
	Body struct {
		Message   string         `json:"message"`
		WaterTest watertest.Test `json:"waterTest"`
	}
}

type waterTestListOutput struct {
	Body struct {
		WaterTests []watertest.Test `json:"waterTests"`
	}
}
