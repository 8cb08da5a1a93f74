package models

import (
	"time"

	"github.com/google/uuid"
)

// RequestStatus - статус запроса на приём пациента больницей
type RequestStatus string

const (
	RequestPending  RequestStatus = "pending"
	RequestAccepted RequestStatus = "accepted"
	RequestRejected RequestStatus = "rejected"
)

// HospitalRequest представляет запрос к одной больнице по одному пациенту.
// Инвариант: на пациента может приходиться не более одного запроса со статусом accepted.
type HospitalRequest struct {
	ID         int64         `json:"id"`
	PatientID  uuid.UUID     `json:"patient_id"`
	HospitalID uuid.UUID     `json:"hospital_id"`
	Status     RequestStatus `json:"status"`
	CreatedAt  time.Time     `json:"created_at"`
	UpdatedAt  time.Time     `json:"updated_at"`
}

// OutcomeStatus - результат обработки ответа больницы из callback-а обзвона
type OutcomeStatus string

const (
	OutcomeAccepted         OutcomeStatus = "accepted"
	OutcomeRejected         OutcomeStatus = "rejected"
	OutcomeNoAnswer         OutcomeStatus = "no_answer"
	OutcomeAlreadyProcessed OutcomeStatus = "already_processed"
	OutcomeHospitalNotFound OutcomeStatus = "hospital_not_found"
)

// HospitalOutcome - ответ одной больницы и статус его применения
type HospitalOutcome struct {
	HospitalID uuid.UUID     `json:"hospital_id"`
	Status     OutcomeStatus `json:"status"`
}
