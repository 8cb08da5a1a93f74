package models

import (
	"time"

	"github.com/google/uuid"
)

type Hospital struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Phone     string    `json:"phone"`
	Latitude  float64   `json:"latitude"`
	Longitude float64   `json:"longitude"`
	MinGrade  int       `json:"min_grade"`
	MaxGrade  int       `json:"max_grade"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// HospitalCandidate - больница из выборки ближайших с расстоянием до пациента
type HospitalCandidate struct {
	Hospital
	DistanceMeters float64 `json:"distance_meters"`
}
