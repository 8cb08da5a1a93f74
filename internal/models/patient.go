package models

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// ErrNotFound возвращается репозиторием, когда запись отсутствует в бд
var ErrNotFound = errors.New("not found")

// Patient представляет одну попытку подбора больницы для экстренного пациента
type Patient struct {
	ID        uuid.UUID `json:"id"`
	Age       string    `json:"age"`
	Sex       string    `json:"sex"`
	Category  string    `json:"category"`
	Symptom   string    `json:"symptom"`
	Remarks   string    `json:"remarks,omitempty"`
	Grade     int       `json:"grade"`
	Latitude  float64   `json:"latitude"`
	Longitude float64   `json:"longitude"`
	Stage     int       `json:"stage"`
	Resolved  bool      `json:"resolved"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
