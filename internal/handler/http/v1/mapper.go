package v1

import "github.com/shenikar/emergency_matching_system/internal/models"

// DTOToPatientModel преобразует DTO запуска подбора в доменную модель
func DTOToPatientModel(dto StartMatchingRequest) *models.Patient {
	return &models.Patient{
		Age:       dto.Age,
		Sex:       dto.Sex,
		Category:  dto.Category,
		Symptom:   dto.Symptom,
		Remarks:   dto.Remarks,
		Grade:     dto.Grade,
		Latitude:  dto.Latitude,
		Longitude: dto.Longitude,
	}
}

// DTOToHospitalModel преобразует DTO регистрации больницы в доменную модель
func DTOToHospitalModel(dto CreateHospitalRequest) *models.Hospital {
	return &models.Hospital{
		Name:      dto.Name,
		Phone:     dto.Phone,
		Latitude:  dto.Latitude,
		Longitude: dto.Longitude,
		MinGrade:  dto.MinGrade,
		MaxGrade:  dto.MaxGrade,
	}
}

// DTOToOutcomes преобразует результаты callback-а в доменные модели
func DTOToOutcomes(results []HospitalResultRequest) []models.HospitalOutcome {
	outcomes := make([]models.HospitalOutcome, len(results))
	for i, result := range results {
		outcomes[i] = models.HospitalOutcome{
			HospitalID: result.HospitalID,
			Status:     models.OutcomeStatus(result.Status),
		}
	}
	return outcomes
}

// OutcomesToDTO преобразует применённые результаты в DTO для ответа
func OutcomesToDTO(outcomes []models.HospitalOutcome) MatchingCallbackResponse {
	results := make([]HospitalOutcomeResponse, len(outcomes))
	for i, outcome := range outcomes {
		results[i] = HospitalOutcomeResponse{
			HospitalID: outcome.HospitalID,
			Status:     string(outcome.Status),
		}
	}
	return MatchingCallbackResponse{Results: results}
}

// ModelToHospitalResponse преобразует доменную модель в DTO для ответа
func ModelToHospitalResponse(model *models.Hospital) *HospitalResponse {
	return &HospitalResponse{
		ID:        model.ID,
		Name:      model.Name,
		Phone:     model.Phone,
		Latitude:  model.Latitude,
		Longitude: model.Longitude,
		MinGrade:  model.MinGrade,
		MaxGrade:  model.MaxGrade,
		CreatedAt: model.CreatedAt,
		UpdatedAt: model.UpdatedAt,
	}
}

// ModelsToHospitalResponses преобразует слайс моделей в слайс DTO
func ModelsToHospitalResponses(models []*models.Hospital) []*HospitalResponse {
	responses := make([]*HospitalResponse, len(models))
	for i, model := range models {
		responses[i] = ModelToHospitalResponse(model)
	}
	return responses
}

// ModelsToMatchingState собирает состояние подбора из пациента и его запросов
func ModelsToMatchingState(patient *models.Patient, requests []*models.HospitalRequest) MatchingStateResponse {
	state := MatchingStateResponse{
		PatientID: patient.ID,
		Grade:     patient.Grade,
		Stage:     patient.Stage,
		Resolved:  patient.Resolved,
		CreatedAt: patient.CreatedAt,
		Requests:  make([]HospitalRequestResponse, len(requests)),
	}
	for i, request := range requests {
		state.Requests[i] = HospitalRequestResponse{
			HospitalID: request.HospitalID,
			Status:     string(request.Status),
			CreatedAt:  request.CreatedAt,
			UpdatedAt:  request.UpdatedAt,
		}
	}
	return state
}
