package service

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shenikar/emergency_matching_system/internal/config"
	"github.com/shenikar/emergency_matching_system/internal/dispatch"
	"github.com/shenikar/emergency_matching_system/internal/models"
	"github.com/shenikar/emergency_matching_system/internal/notifier"
	"github.com/shenikar/emergency_matching_system/internal/webhook"
	"github.com/sirupsen/logrus"
)

// ErrGradeOutOfRange возвращается, если степень тяжести вне допустимого диапазона
var ErrGradeOutOfRange = errors.New("grade out of range")

// MatchingRepository определяет контракт для работы с бд подбора больниц
type MatchingRepository interface {
	CreatePatient(ctx context.Context, patient *models.Patient) error
	GetPatientByID(ctx context.Context, id uuid.UUID) (*models.Patient, error)
	UpdatePatientStage(ctx context.Context, id uuid.UUID, stage int) error
	MarkPatientResolved(ctx context.Context, id uuid.UUID) error

	CreateHospital(ctx context.Context, hospital *models.Hospital) error
	GetHospitalByID(ctx context.Context, id uuid.UUID) (*models.Hospital, error)
	ListHospitals(ctx context.Context, page, pageSize int) ([]*models.Hospital, error)
	FindNearestHospitals(ctx context.Context, lat, lng float64, grade, limit, offset int) ([]*models.HospitalCandidate, error)

	CreateRequest(ctx context.Context, request *models.HospitalRequest) error
	AcceptRequest(ctx context.Context, hospitalID, patientID uuid.UUID) (bool, error)
	RejectRequest(ctx context.Context, hospitalID, patientID uuid.UUID) (bool, error)
	RejectPendingRequests(ctx context.Context, patientID, acceptedHospitalID uuid.UUID) error
	CountRequests(ctx context.Context, patientID uuid.UUID, status models.RequestStatus) (int, error)
	ListRequests(ctx context.Context, patientID uuid.UUID) ([]*models.HospitalRequest, error)
	CountMatchedPatients(ctx context.Context, minutes int) (int, error)

	GetHospitalFromCache(ctx context.Context, id uuid.UUID) (*models.Hospital, error)
	SetHospitalCache(ctx context.Context, hospital *models.Hospital) error
}

// Notifier определяет контракт шины уведомлений для каналов пациентов и больниц
type Notifier interface {
	Subscribe(channel string) (<-chan notifier.Event, func())
	Publish(channel string, event notifier.Event)
	Close(channel string)
}

// MatchingService определяет контракт бизнес-логики подбора больниц
type MatchingService interface {
	StartMatching(ctx context.Context, patient *models.Patient) (string, error)
	HandleOutcomes(ctx context.Context, patientID uuid.UUID, results []models.HospitalOutcome) ([]models.HospitalOutcome, error)
	GetPatient(ctx context.Context, id uuid.UUID) (*models.Patient, []*models.HospitalRequest, error)
	CreateHospital(ctx context.Context, hospital *models.Hospital) error
	ListHospitals(ctx context.Context, page, pageSize int) ([]*models.Hospital, error)
	GetStats(ctx context.Context) (int, error)
	Shutdown()
}

type matchingService struct {
	repo         MatchingRepository
	notifier     Notifier
	dispatcher   dispatch.Client
	webhook      webhook.WebhookPublisher
	logger       *logrus.Logger
	cfg          *config.Config
	stageTasks   sync.WaitGroup
	done         chan struct{}
	shutdownOnce sync.Once
}

func NewMatchingService(repo MatchingRepository, n Notifier, dispatcher dispatch.Client, webhookPublisher webhook.WebhookPublisher, logger *logrus.Logger, cfg *config.Config) MatchingService {
	return &matchingService{
		repo:       repo,
		notifier:   n,
		dispatcher: dispatcher,
		webhook:    webhookPublisher,
		logger:     logger,
		cfg:        cfg,
		done:       make(chan struct{}),
	}
}

// StartMatching создает пациента и запускает фоновый поэтапный подбор больниц.
// Возвращает имя канала уведомлений; вызывающая сторона должна подписаться на
// него сразу, до первых фоновых событий.
func (s *matchingService) StartMatching(ctx context.Context, patient *models.Patient) (string, error) {
	log := s.logger.WithFields(logrus.Fields{
		"service": "matching",
		"method":  "StartMatching",
		"grade":   patient.Grade,
	})

	if patient.Grade < s.cfg.GradeMin || patient.Grade > s.cfg.GradeMax {
		log.Warn("Rejected matching request with invalid grade")
		return "", fmt.Errorf("service: grade %d is outside [%d, %d]: %w",
			patient.Grade, s.cfg.GradeMin, s.cfg.GradeMax, ErrGradeOutOfRange)
	}

	patient.Stage = 1
	if err := s.repo.CreatePatient(ctx, patient); err != nil {
		log.WithError(err).Error("Failed to create patient in repository")
		return "", fmt.Errorf("service: could not create patient: %w", err)
	}

	channel := notifier.ChannelForPatient(patient.ID)
	log.WithField("patient_id", patient.ID).Info("Patient created, starting staged matching")

	// Захватываем данные пациента: фоновые этапы переживают HTTP-запрос
	patientID, grade, lat, lng := patient.ID, patient.Grade, patient.Latitude, patient.Longitude
	s.stageTasks.Add(1)
	go func() {
		defer s.stageTasks.Done()
		if err := s.runStage(context.Background(), patientID, grade, lat, lng, 1); err != nil {
			s.failMatching(context.Background(), patientID, err)
		}
	}()

	return channel, nil
}

// runStage выполняет один этап подбора: выбирает следующий пакет ближайших
// больниц, создает для них запросы, уведомляет стороны и взводит таймер
// расширения поиска.
func (s *matchingService) runStage(ctx context.Context, patientID uuid.UUID, grade int, lat, lng float64, stage int) error {
	log := s.logger.WithFields(logrus.Fields{
		"service":    "matching",
		"method":     "runStage",
		"patient_id": patientID,
		"stage":      stage,
	})

	// Идемпотентная защита: этап молча завершается, если больница уже найдена
	accepted, err := s.repo.CountRequests(ctx, patientID, models.RequestAccepted)
	if err != nil {
		return fmt.Errorf("service: could not check accepted requests: %w", err)
	}
	if accepted > 0 {
		log.Info("Request already accepted, skipping stage")
		return nil
	}

	limit := s.cfg.MatchBatchSize
	offset := (stage - 1) * limit
	candidates, err := s.repo.FindNearestHospitals(ctx, lat, lng, grade, limit, offset)
	if err != nil {
		return fmt.Errorf("service: could not find candidate hospitals: %w", err)
	}

	if len(candidates) == 0 {
		log.Info("No more candidate hospitals, search space exhausted")
		s.publishPatient(ctx, patientID, notifier.Event{
			Type:    notifier.EventNoCandidates,
			Message: "no more candidate hospitals",
		})
		s.notifier.Close(notifier.ChannelForPatient(patientID))
		return nil
	}

	candidateList := make([]map[string]any, 0, len(candidates))
	for _, candidate := range candidates {
		candidateList = append(candidateList, map[string]any{
			"hospital_id":     candidate.ID,
			"name":            candidate.Name,
			"distance_meters": candidate.DistanceMeters,
		})
	}
	s.publishPatient(ctx, patientID, notifier.Event{
		Type:    notifier.EventStageStarted,
		Message: fmt.Sprintf("stage %d started: %d candidate hospitals notified", stage, len(candidates)),
		Data: map[string]any{
			"stage":      stage,
			"count":      len(candidates),
			"candidates": candidateList,
		},
	})

	contacts := make([]dispatch.HospitalContact, 0, len(candidates))
	for _, candidate := range candidates {
		request := &models.HospitalRequest{
			PatientID:  patientID,
			HospitalID: candidate.ID,
			Status:     models.RequestPending,
		}
		if err := s.repo.CreateRequest(ctx, request); err != nil {
			return fmt.Errorf("service: could not create hospital request: %w", err)
		}

		s.notifier.Publish(notifier.ChannelForHospital(candidate.ID), notifier.Event{
			Type:    notifier.EventNewRequest,
			Message: "new emergency admission request",
			Data: map[string]any{
				"patient_id": patientID,
				"grade":      grade,
			},
		})
		contacts = append(contacts, dispatch.HospitalContact{
			HospitalID: candidate.ID,
			Phone:      candidate.Phone,
		})
	}

	patient, err := s.repo.GetPatientByID(ctx, patientID)
	if err != nil {
		return fmt.Errorf("service: could not load patient for dispatch: %w", err)
	}
	broadcast := dispatch.BroadcastRequest{
		Hospitals:   contacts,
		PatientID:   patientID,
		Age:         patient.Age,
		Sex:         patient.Sex,
		Category:    patient.Category,
		Symptom:     patient.Symptom,
		Remarks:     patient.Remarks,
		Grade:       grade,
		CallbackURL: s.cfg.CallbackURL,
	}
	if err := s.dispatcher.Broadcast(ctx, broadcast); err != nil {
		return fmt.Errorf("service: could not dispatch hospital call-out: %w", err)
	}

	log.WithField("candidates", len(candidates)).Info("Stage started, timer armed")
	s.armStageTimer(patientID, grade, lat, lng, stage)
	return nil
}

// armStageTimer взводит отложенную проверку этапа. Таймер не отменяется при
// принятии запроса: по срабатыванию он перепроверяет состояние и становится
// no-op, если больница уже найдена.
func (s *matchingService) armStageTimer(patientID uuid.UUID, grade int, lat, lng float64, stage int) {
	s.stageTasks.Add(1)
	go func() {
		defer s.stageTasks.Done()

		select {
		case <-time.After(s.cfg.MatchStageTimeout):
		case <-s.done:
			return
		}

		ctx := context.Background()
		log := s.logger.WithFields(logrus.Fields{
			"service":    "matching",
			"method":     "stageTimer",
			"patient_id": patientID,
			"stage":      stage,
		})

		accepted, err := s.repo.CountRequests(ctx, patientID, models.RequestAccepted)
		if err != nil {
			log.WithError(err).Error("Failed to re-check accepted requests on timer")
			s.failMatching(ctx, patientID, err)
			return
		}
		if accepted > 0 {
			log.Debug("Stage already resolved, timer is a no-op")
			return
		}

		s.publishPatient(ctx, patientID, notifier.Event{
			Type:    notifier.EventNoResponseExpanding,
			Message: "no response, expanding search radius",
		})

		if err := s.repo.UpdatePatientStage(ctx, patientID, stage+1); err != nil {
			s.failMatching(ctx, patientID, err)
			return
		}
		if err := s.runStage(ctx, patientID, grade, lat, lng, stage+1); err != nil {
			s.failMatching(ctx, patientID, err)
		}
	}()
}

// HandleOutcomes применяет пакет ответов больниц из callback-а обзвона.
// Принятые ответы обрабатываются раньше отказов; после первого успешно
// применённого принятия обработка пакета останавливается.
func (s *matchingService) HandleOutcomes(ctx context.Context, patientID uuid.UUID, results []models.HospitalOutcome) ([]models.HospitalOutcome, error) {
	log := s.logger.WithFields(logrus.Fields{
		"service":    "matching",
		"method":     "HandleOutcomes",
		"patient_id": patientID,
		"results":    len(results),
	})

	if _, err := s.repo.GetPatientByID(ctx, patientID); err != nil {
		log.WithError(err).Warn("Outcome batch for unknown patient")
		return nil, fmt.Errorf("service: could not load patient: %w", err)
	}

	// Стабильная сортировка: принятия вперед, исходный порядок внутри групп сохраняется
	ordered := make([]models.HospitalOutcome, len(results))
	copy(ordered, results)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].Status == models.OutcomeAccepted && ordered[j].Status != models.OutcomeAccepted
	})

	outcomes := make([]models.HospitalOutcome, 0, len(ordered))
	for _, result := range ordered {
		status, err := s.applyOutcome(ctx, patientID, result.HospitalID, result.Status)
		if err != nil {
			log.WithError(err).Error("Failed to apply hospital outcome")
			return nil, err
		}
		outcomes = append(outcomes, models.HospitalOutcome{HospitalID: result.HospitalID, Status: status})
		if status == models.OutcomeAccepted {
			// Побочный эффект принятия уже отклонил остальные ожидающие запросы
			log.WithField("hospital_id", result.HospitalID).Info("Hospital accepted, batch processing stopped")
			break
		}
	}
	return outcomes, nil
}

// applyOutcome применяет решение одной больницы к её ожидающему запросу
func (s *matchingService) applyOutcome(ctx context.Context, patientID, hospitalID uuid.UUID, status models.OutcomeStatus) (models.OutcomeStatus, error) {
	log := s.logger.WithFields(logrus.Fields{
		"service":     "matching",
		"method":      "applyOutcome",
		"patient_id":  patientID,
		"hospital_id": hospitalID,
		"status":      status,
	})

	hospital, err := s.getHospital(ctx, hospitalID)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			log.Warn("Outcome references unknown hospital")
			return models.OutcomeHospitalNotFound, nil
		}
		return "", fmt.Errorf("service: could not load hospital: %w", err)
	}

	switch status {
	case models.OutcomeAccepted:
		// Условное обновление pending -> accepted: формирует инвариант
		// единственного победителя, проигравший видит ноль затронутых строк
		updated, err := s.repo.AcceptRequest(ctx, hospitalID, patientID)
		if err != nil {
			return "", fmt.Errorf("service: could not accept request: %w", err)
		}
		if !updated {
			log.Info("Stale or duplicate accept, request already processed")
			return models.OutcomeAlreadyProcessed, nil
		}

		if err := s.repo.RejectPendingRequests(ctx, patientID, hospitalID); err != nil {
			return "", fmt.Errorf("service: could not reject remaining requests: %w", err)
		}
		if err := s.repo.MarkPatientResolved(ctx, patientID); err != nil {
			return "", fmt.Errorf("service: could not mark patient resolved: %w", err)
		}

		s.publishPatient(ctx, patientID, notifier.Event{
			Type:    notifier.EventHospitalAccepted,
			Message: fmt.Sprintf("hospital %s accepted the patient", hospital.Name),
			Data: map[string]any{
				"hospital_id": hospital.ID,
				"name":        hospital.Name,
				"phone":       hospital.Phone,
			},
		})
		s.notifier.Close(notifier.ChannelForPatient(patientID))
		log.Info("Hospital accepted the patient, matching resolved")
		return models.OutcomeAccepted, nil

	case models.OutcomeRejected, models.OutcomeNoAnswer:
		updated, err := s.repo.RejectRequest(ctx, hospitalID, patientID)
		if err != nil {
			return "", fmt.Errorf("service: could not reject request: %w", err)
		}
		if !updated {
			log.Info("Stale reject, request already processed")
			return models.OutcomeAlreadyProcessed, nil
		}

		eventType := notifier.EventHospitalRejected
		message := fmt.Sprintf("hospital %s rejected the request", hospital.Name)
		if status == models.OutcomeNoAnswer {
			eventType = notifier.EventHospitalNoAnswer
			message = fmt.Sprintf("hospital %s did not answer", hospital.Name)
		}
		s.publishPatient(ctx, patientID, notifier.Event{
			Type:    eventType,
			Message: message,
			Data: map[string]any{
				"hospital_id": hospital.ID,
				"name":        hospital.Name,
			},
		})

		if err := s.checkAllRejected(ctx, patientID); err != nil {
			return "", err
		}
		return status, nil

	default:
		return "", fmt.Errorf("service: unknown outcome status %q", status)
	}
}

// checkAllRejected публикует терминальное событие, если весь пакет этапа
// ответил отказом раньше срабатывания таймера
func (s *matchingService) checkAllRejected(ctx context.Context, patientID uuid.UUID) error {
	pending, err := s.repo.CountRequests(ctx, patientID, models.RequestPending)
	if err != nil {
		return fmt.Errorf("service: could not count pending requests: %w", err)
	}
	if pending > 0 {
		return nil
	}
	accepted, err := s.repo.CountRequests(ctx, patientID, models.RequestAccepted)
	if err != nil {
		return fmt.Errorf("service: could not count accepted requests: %w", err)
	}
	if accepted > 0 {
		return nil
	}

	s.publishPatient(ctx, patientID, notifier.Event{
		Type:    notifier.EventAllRejected,
		Message: "all hospitals in the current stage rejected the request",
	})
	return nil
}

// GetPatient возвращает пациента и состояние его запросов к больницам
func (s *matchingService) GetPatient(ctx context.Context, id uuid.UUID) (*models.Patient, []*models.HospitalRequest, error) {
	patient, err := s.repo.GetPatientByID(ctx, id)
	if err != nil {
		return nil, nil, fmt.Errorf("service: could not get patient: %w", err)
	}
	requests, err := s.repo.ListRequests(ctx, id)
	if err != nil {
		return nil, nil, fmt.Errorf("service: could not list hospital requests: %w", err)
	}
	return patient, requests, nil
}

// CreateHospital регистрирует больницу
func (s *matchingService) CreateHospital(ctx context.Context, hospital *models.Hospital) error {
	log := s.logger.WithFields(logrus.Fields{
		"service": "matching",
		"method":  "CreateHospital",
		"name":    hospital.Name,
	})

	if hospital.MinGrade > hospital.MaxGrade {
		return fmt.Errorf("service: hospital grade range is inverted: min=%d max=%d", hospital.MinGrade, hospital.MaxGrade)
	}
	if err := s.repo.CreateHospital(ctx, hospital); err != nil {
		log.WithError(err).Error("Failed to create hospital in repository")
		return fmt.Errorf("service: could not create hospital: %w", err)
	}
	log.WithField("hospital_id", hospital.ID).Info("Hospital created successfully")
	return nil
}

// ListHospitals возвращает список больниц с пагинацией
func (s *matchingService) ListHospitals(ctx context.Context, page, pageSize int) ([]*models.Hospital, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}

	hospitals, err := s.repo.ListHospitals(ctx, page, pageSize)
	if err != nil {
		return nil, fmt.Errorf("service: could not list hospitals: %w", err)
	}
	return hospitals, nil
}

// GetStats возвращает число пациентов, получивших больницу за окно статистики
func (s *matchingService) GetStats(ctx context.Context) (int, error) {
	count, err := s.repo.CountMatchedPatients(ctx, s.cfg.StatsTimeWindowMinutes)
	if err != nil {
		return 0, fmt.Errorf("service: could not get matching stats: %w", err)
	}
	return count, nil
}

// Shutdown останавливает взведённые таймеры этапов и дожидается фоновых задач
func (s *matchingService) Shutdown() {
	s.shutdownOnce.Do(func() {
		close(s.done)
	})
	s.stageTasks.Wait()
}

// getHospital читает больницу из кэша, при промахе - из бд с записью в кэш
func (s *matchingService) getHospital(ctx context.Context, id uuid.UUID) (*models.Hospital, error) {
	hospital, err := s.repo.GetHospitalFromCache(ctx, id)
	if err != nil {
		s.logger.WithError(err).Warn("Failed to read hospital from cache")
	}
	if hospital != nil {
		return hospital, nil
	}

	hospital, err = s.repo.GetHospitalByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.repo.SetHospitalCache(ctx, hospital); err != nil {
		s.logger.WithError(err).Warn("Failed to cache hospital")
	}
	return hospital, nil
}

// publishPatient публикует событие в канал пациента и зеркалирует его
// во внешнюю очередь вебхуков
func (s *matchingService) publishPatient(ctx context.Context, patientID uuid.UUID, event notifier.Event) {
	s.notifier.Publish(notifier.ChannelForPatient(patientID), event)

	if s.webhook == nil {
		return
	}
	mirror := webhook.MatchingEvent{
		PatientID: patientID,
		Type:      event.Type,
		Message:   event.Message,
		Data:      event.Data,
		Timestamp: time.Now().UTC(),
	}
	if err := s.webhook.Publish(ctx, mirror); err != nil {
		s.logger.WithError(err).WithField("patient_id", patientID).Warn("Failed to mirror event to webhook queue")
	}
}

// failMatching сообщает об ошибке подбора ровно один раз и завершает канал пациента
func (s *matchingService) failMatching(ctx context.Context, patientID uuid.UUID, cause error) {
	s.logger.WithError(cause).WithFields(logrus.Fields{
		"service":    "matching",
		"patient_id": patientID,
	}).Error("Matching failed, halting stage sequence")

	s.publishPatient(ctx, patientID, notifier.Event{
		Type:    notifier.EventMatchingError,
		Message: "matching failed",
		Data:    map[string]any{"error": cause.Error()},
	})
	s.notifier.Close(notifier.ChannelForPatient(patientID))
}
