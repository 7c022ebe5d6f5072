package sensor

import "math"

const (
	DefaultHeadcount   = 80
	DefaultTemperature = 30
	DefaultHumidity    = 60

	basePerPersonKg = 0.35
)

// FoodInput are the conditions a prediction is made for.
type FoodInput struct {
	Headcount   float64
	Temperature float64
	Humidity    float64
	IsHoliday   bool
}

// DefaultFoodInput returns the inputs used when a caller supplies none.
func DefaultFoodInput() FoodInput {
	return FoodInput{
		Headcount:   DefaultHeadcount,
		Temperature: DefaultTemperature,
		Humidity:    DefaultHumidity,
	}
}

// Prediction is the estimated amount of food for one meal.
type Prediction struct {
	Headcount   float64 `json:"headcount"`
	Temperature float64 `json:"temperature"`
	Humidity    float64 `json:"humidity"`
	PredictedKg float64 `json:"predictedKg"`
	PerPersonKg float64 `json:"perPersonKg"`
}

// PredictFood applies fixed adjustments to a per-person portion and scales it
// by headcount. predictedKg is rounded to two decimals.
func PredictFood(in FoodInput) Prediction {
	perPerson := basePerPersonKg
	if in.Temperature > 32 {
		perPerson += 0.02
	}
	if in.Humidity > 65 {
		perPerson -= 0.01
	}
	if in.IsHoliday {
		perPerson *= 1.15
	}

	return Prediction{
		Headcount:   in.Headcount,
		Temperature: in.Temperature,
		Humidity:    in.Humidity,
		PredictedKg: math.Round(perPerson*in.Headcount*100) / 100,
		PerPersonKg: perPerson,
	}
}
