package v1

import (
	"time"

	"github.com/google/uuid"
)

// StartMatchingRequest DTO для запуска подбора больницы
// @Description DTO для запуска подбора больницы
type StartMatchingRequest struct {
	Age       string  `json:"age" validate:"required,max=32"`
	Sex       string  `json:"sex" validate:"required,oneof=male female"`
	Category  string  `json:"category" validate:"required,max=255"`
	Symptom   string  `json:"symptom" validate:"required,max=1024"`
	Remarks   string  `json:"remarks,omitempty" validate:"max=1024"`
	Grade     int     `json:"grade" validate:"required,min=1,max=5"`
	Latitude  float64 `json:"latitude" validate:"required,latitude"`
	Longitude float64 `json:"longitude" validate:"required,longitude"`
}

// StartMatchingResponse DTO для ответа на запуск подбора
// @Description DTO для ответа на запуск подбора
type StartMatchingResponse struct {
	PatientID uuid.UUID `json:"patient_id"`
	Channel   string    `json:"channel"`
}

// HospitalResultRequest DTO для ответа одной больницы в callback-е обзвона
// @Description DTO для ответа одной больницы в callback-е обзвона
type HospitalResultRequest struct {
	HospitalID uuid.UUID `json:"hospital_id" validate:"required"`
	Status     string    `json:"status" validate:"required,oneof=accepted rejected no_answer"`
}

// MatchingCallbackRequest DTO для пакета ответов больниц
// @Description DTO для пакета ответов больниц
type MatchingCallbackRequest struct {
	PatientID uuid.UUID               `json:"patient_id" validate:"required"`
	Results   []HospitalResultRequest `json:"results" validate:"required,min=1,dive"`
}

// HospitalOutcomeResponse DTO для статуса применения ответа больницы
// @Description DTO для статуса применения ответа больницы
type HospitalOutcomeResponse struct {
	HospitalID uuid.UUID `json:"hospital_id"`
	Status     string    `json:"status"`
}

// MatchingCallbackResponse DTO для ответа на пакет результатов обзвона
// @Description DTO для ответа на пакет результатов обзвона
type MatchingCallbackResponse struct {
	Results []HospitalOutcomeResponse `json:"results"`
}

// CreateHospitalRequest DTO для регистрации больницы
// @Description DTO для регистрации больницы
type CreateHospitalRequest struct {
	Name      string  `json:"name" validate:"required,min=2,max=255"`
	Phone     string  `json:"phone" validate:"required,max=32"`
	Latitude  float64 `json:"latitude" validate:"required,latitude"`
	Longitude float64 `json:"longitude" validate:"required,longitude"`
	MinGrade  int     `json:"min_grade" validate:"required,min=1,max=5"`
	MaxGrade  int     `json:"max_grade" validate:"required,min=1,max=5,gtefield=MinGrade"`
}

// HospitalResponse DTO для ответа с информацией о больнице
// @Description DTO для ответа с информацией о больнице
type HospitalResponse struct {
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

// HospitalRequestResponse DTO для состояния одного запроса к больнице
// @Description DTO для состояния одного запроса к больнице
type HospitalRequestResponse struct {
	HospitalID uuid.UUID `json:"hospital_id"`
	Status     string    `json:"status"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// MatchingStateResponse DTO для состояния подбора по пациенту
// @Description DTO для состояния подбора по пациенту
type MatchingStateResponse struct {
	PatientID uuid.UUID                 `json:"patient_id"`
	Grade     int                       `json:"grade"`
	Stage     int                       `json:"stage"`
	Resolved  bool                      `json:"resolved"`
	CreatedAt time.Time                 `json:"created_at"`
	Requests  []HospitalRequestResponse `json:"requests"`
}

// StatsResponse DTO для ответа со статистикой
// @Description DTO для ответа со статистикой
type StatsResponse struct {
	MatchedCount int `json:"matched_count"`
}
