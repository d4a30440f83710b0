package models

import "time"

// Genders accepted in a weight profile.
const (
	GenderMale   = "male"
	GenderFemale = "female"
)

// WeightProfile is the static part of a weight aggregate.
type WeightProfile struct {
	Height    float64   `json:"height"`
	Weight    float64   `json:"weight"`
	Age       int       `json:"age"`
	Gender    string    `json:"gender"`
	StartDate time.Time `json:"startDate"`
}

// WeightRecord is one dated measurement.
type WeightRecord struct {
	ID     string    `json:"id"`
	Date   time.Time `json:"date"`
	Weight float64   `json:"weight"`
	Note   string    `json:"note,omitempty"`
}

// Weight is the per-user aggregate. Records are kept newest first.
type Weight struct {
	ID        string         `json:"id"`
	Owner     string         `json:"owner"`
	Profile   WeightProfile  `json:"profile"`
	Records   []WeightRecord `json:"records"`
	CreatedAt time.Time      `json:"createdAt"`
	UpdatedAt time.Time      `json:"updatedAt"`
}

// OwnerID implements Owned.
func (w Weight) OwnerID() string { return w.Owner }
