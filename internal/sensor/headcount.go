// Package sensor produces the simulated mess readings shown on the dashboards.
// Nothing here is backed by a real device or model.
package sensor

import (
	"math"
	"math/rand/v2"
	"slices"
	"time"
)

// DayType classifies the day a reading was taken on.
type DayType string

const (
	DayNormal   DayType = "normal"
	DayExam     DayType = "exam"
	DayFestival DayType = "festival"
	DayHoliday  DayType = "holiday"
)

// nonHolidayDays are drawn uniformly when the date is not a holiday.
var nonHolidayDays = []DayType{DayNormal, DayExam, DayFestival}

var dayMultiplier = map[DayType]float64{
	DayHoliday:  0.4,
	DayExam:     1.2,
	DayFestival: 1.4,
}

// Reading is one fake occupancy sample.
type Reading struct {
	DeviceID    string    `json:"deviceId"`
	Timestamp   time.Time `json:"timestamp"`
	IsHoliday   bool      `json:"isHoliday"`
	DayType     DayType   `json:"dayType"`
	Count       int       `json:"count"`
	Temperature float64   `json:"temperature"`
	Humidity    int       `json:"humidity"`
}

// Headcount simulates a reading taken at now. holidays are YYYY-MM-DD dates
// compared against the UTC calendar day.
func Headcount(now time.Time, rng *rand.Rand, holidays []string, deviceID string) Reading {
	isHoliday := slices.Contains(holidays, now.UTC().Format(time.DateOnly))

	day := DayHoliday
	if !isHoliday {
		day = nonHolidayDays[rng.IntN(len(nonHolidayDays))]
	}

	count := rng.IntN(150) + 20
	if m, ok := dayMultiplier[day]; ok {
		count = int(math.Floor(float64(count) * m))
	}

	return Reading{
		DeviceID:    deviceID,
		Timestamp:   now,
		IsHoliday:   isHoliday,
		DayType:     day,
		Count:       count,
		Temperature: math.Round((28+rng.Float64()*5)*10) / 10,
		Humidity:    rng.IntN(30) + 40,
	}
}
