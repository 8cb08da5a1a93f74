package service

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shenikar/emergency_matching_system/internal/config"
	"github.com/shenikar/emergency_matching_system/internal/dispatch"
	dispatch_mocks "github.com/shenikar/emergency_matching_system/internal/dispatch/mocks"
	"github.com/shenikar/emergency_matching_system/internal/models"
	"github.com/shenikar/emergency_matching_system/internal/notifier"
	"github.com/shenikar/emergency_matching_system/internal/service/mocks"
	webhook_mocks "github.com/shenikar/emergency_matching_system/internal/webhook/mocks"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

// newTestMatchingService — вспомогательная функция для создания инстанса сервиса с моками.
func newTestMatchingService(t *testing.T) (*matchingService, *mocks.MockMatchingRepository, *mocks.MockNotifier, *dispatch_mocks.MockClient, *webhook_mocks.MockWebhookPublisher) {
	ctrl := gomock.NewController(t)
	repoMock := mocks.NewMockMatchingRepository(ctrl)
	notifierMock := mocks.NewMockNotifier(ctrl)
	dispatcherMock := dispatch_mocks.NewMockClient(ctrl)
	webhookMock := webhook_mocks.NewMockWebhookPublisher(ctrl)

	logger := logrus.New()
	logger.SetOutput(&bytes.Buffer{}) // Отключаем вывод логов в тестах

	cfg := &config.Config{
		GradeMin:               1,
		GradeMax:               5,
		MatchBatchSize:         5,
		MatchStageTimeout:      time.Hour, // Таймер не должен срабатывать в обычных тестах
		StatsTimeWindowMinutes: 60,
		CallbackURL:            "http://api.local/matching/callback",
	}

	service := NewMatchingService(repoMock, notifierMock, dispatcherMock, webhookMock, logger, cfg)
	return service.(*matchingService), repoMock, notifierMock, dispatcherMock, webhookMock
}

// collectEvents перехватывает все публикации в канал пациента.
func collectEvents(notifierMock *mocks.MockNotifier, events *[]notifier.Event) {
	notifierMock.EXPECT().
		Publish(gomock.Any(), gomock.Any()).
		Do(func(channel string, event notifier.Event) {
			*events = append(*events, event)
		}).
		AnyTimes()
}

func eventTypes(events []notifier.Event) []notifier.EventType {
	types := make([]notifier.EventType, 0, len(events))
	for _, event := range events {
		types = append(types, event.Type)
	}
	return types
}

func TestStartMatching_InvalidGrade(t *testing.T) {
	// Подготовка
	service, _, _, _, _ := newTestMatchingService(t)
	ctx := context.Background()
	patient := &models.Patient{Grade: 7}

	// Действие
	channel, err := service.StartMatching(ctx, patient)

	// Проверки
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrGradeOutOfRange)
	assert.Empty(t, channel)
}

func TestStartMatching_Success(t *testing.T) {
	// Подготовка
	service, repoMock, notifierMock, dispatcherMock, webhookMock := newTestMatchingService(t)
	ctx := context.Background()
	patient := &models.Patient{
		Age:       "54",
		Sex:       "male",
		Symptom:   "боль в груди",
		Grade:     3,
		Latitude:  55.75,
		Longitude: 37.61,
	}
	hospital := &models.HospitalCandidate{
		Hospital:       models.Hospital{ID: uuid.New(), Name: "ГКБ №1", Phone: "+70000000001"},
		DistanceMeters: 1250,
	}
	var events []notifier.Event
	collectEvents(notifierMock, &events)
	webhookMock.EXPECT().Publish(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

	// Ожидания
	// 1. Создание пациента, БД присваивает ID
	repoMock.EXPECT().
		CreatePatient(ctx, gomock.Any()).
		DoAndReturn(func(ctx context.Context, p *models.Patient) error {
			p.ID = uuid.New()
			return nil
		}).Times(1)

	// 2. Первый этап: больница ещё не принята, первый пакет кандидатов
	repoMock.EXPECT().
		CountRequests(gomock.Any(), gomock.Any(), models.RequestAccepted).
		Return(0, nil).Times(1)
	repoMock.EXPECT().
		FindNearestHospitals(gomock.Any(), 55.75, 37.61, 3, 5, 0).
		Return([]*models.HospitalCandidate{hospital}, nil).Times(1)
	repoMock.EXPECT().
		CreateRequest(gomock.Any(), gomock.Any()).
		Do(func(ctx context.Context, request *models.HospitalRequest) {
			assert.Equal(t, hospital.ID, request.HospitalID)
			assert.Equal(t, models.RequestPending, request.Status)
		}).Return(nil).Times(1)
	repoMock.EXPECT().
		GetPatientByID(gomock.Any(), gomock.Any()).
		Return(patient, nil).Times(1)

	// 3. Обзвон пакета больниц
	dispatcherMock.EXPECT().
		Broadcast(gomock.Any(), gomock.Any()).
		Do(func(ctx context.Context, req dispatch.BroadcastRequest) {
			assert.Len(t, req.Hospitals, 1)
			assert.Equal(t, hospital.Phone, req.Hospitals[0].Phone)
			assert.Equal(t, 3, req.Grade)
			assert.Equal(t, "http://api.local/matching/callback", req.CallbackURL)
		}).Return(nil).Times(1)

	// Действие
	channel, err := service.StartMatching(ctx, patient)
	service.Shutdown() // Дожидаемся фонового этапа и гасим взведённый таймер

	// Проверки
	require.NoError(t, err)
	assert.Equal(t, notifier.ChannelForPatient(patient.ID), channel)
	assert.Contains(t, eventTypes(events), notifier.EventStageStarted)
	assert.Contains(t, eventTypes(events), notifier.EventNewRequest)
}

func TestStartMatching_NoCandidates(t *testing.T) {
	// Подготовка
	service, repoMock, notifierMock, _, webhookMock := newTestMatchingService(t)
	ctx := context.Background()
	patient := &models.Patient{Grade: 2, Latitude: 50.0, Longitude: 50.0}
	var events []notifier.Event
	collectEvents(notifierMock, &events)
	webhookMock.EXPECT().Publish(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

	// Ожидания
	repoMock.EXPECT().
		CreatePatient(ctx, gomock.Any()).
		DoAndReturn(func(ctx context.Context, p *models.Patient) error {
			p.ID = uuid.New()
			return nil
		}).Times(1)
	repoMock.EXPECT().
		CountRequests(gomock.Any(), gomock.Any(), models.RequestAccepted).
		Return(0, nil).Times(1)
	// Подходящих больниц нет вовсе
	repoMock.EXPECT().
		FindNearestHospitals(gomock.Any(), 50.0, 50.0, 2, 5, 0).
		Return(nil, nil).Times(1)
	// Канал пациента закрывается: поиск исчерпан
	notifierMock.EXPECT().Close(gomock.Any()).Times(1)

	// Действие
	_, err := service.StartMatching(ctx, patient)
	service.Shutdown()

	// Проверки
	require.NoError(t, err)
	assert.Contains(t, eventTypes(events), notifier.EventNoCandidates)
}

func TestStageTimer_ExpandsSearch(t *testing.T) {
	// Подготовка
	service, repoMock, notifierMock, dispatcherMock, webhookMock := newTestMatchingService(t)
	service.cfg.MatchStageTimeout = 10 * time.Millisecond
	ctx := context.Background()
	patient := &models.Patient{Grade: 4, Latitude: 55.75, Longitude: 37.61}
	hospital := &models.HospitalCandidate{
		Hospital: models.Hospital{ID: uuid.New(), Name: "ГКБ №2", Phone: "+70000000002"},
	}
	var events []notifier.Event
	collectEvents(notifierMock, &events)
	webhookMock.EXPECT().Publish(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

	// Ожидания
	repoMock.EXPECT().
		CreatePatient(ctx, gomock.Any()).
		DoAndReturn(func(ctx context.Context, p *models.Patient) error {
			p.ID = uuid.New()
			return nil
		}).Times(1)
	// Три проверки принятых запросов: этап 1, таймер, этап 2
	repoMock.EXPECT().
		CountRequests(gomock.Any(), gomock.Any(), models.RequestAccepted).
		Return(0, nil).Times(3)
	// Этап 1: один кандидат без ответа
	repoMock.EXPECT().
		FindNearestHospitals(gomock.Any(), 55.75, 37.61, 4, 5, 0).
		Return([]*models.HospitalCandidate{hospital}, nil).Times(1)
	repoMock.EXPECT().CreateRequest(gomock.Any(), gomock.Any()).Return(nil).Times(1)
	repoMock.EXPECT().GetPatientByID(gomock.Any(), gomock.Any()).Return(patient, nil).Times(1)
	dispatcherMock.EXPECT().Broadcast(gomock.Any(), gomock.Any()).Return(nil).Times(1)
	// Таймер расширяет поиск: следующий пакет со смещением
	repoMock.EXPECT().UpdatePatientStage(gomock.Any(), gomock.Any(), 2).Return(nil).Times(1)
	repoMock.EXPECT().
		FindNearestHospitals(gomock.Any(), 55.75, 37.61, 4, 5, 5).
		Return(nil, nil).Times(1)

	searchExhausted := make(chan struct{})
	notifierMock.EXPECT().
		Close(gomock.Any()).
		Do(func(channel string) { close(searchExhausted) }).
		Times(1)

	// Действие
	_, err := service.StartMatching(ctx, patient)
	require.NoError(t, err)

	select {
	case <-searchExhausted:
	case <-time.After(2 * time.Second):
		t.Fatal("timer did not expand the search")
	}
	service.Shutdown()

	// Проверки
	assert.Contains(t, eventTypes(events), notifier.EventNoResponseExpanding)
	assert.Contains(t, eventTypes(events), notifier.EventNoCandidates)
}

func TestHandleOutcomes_AcceptedProcessedFirst(t *testing.T) {
	// Подготовка
	service, repoMock, notifierMock, _, webhookMock := newTestMatchingService(t)
	ctx := context.Background()
	patientID := uuid.New()
	rejectedID, acceptedID, noAnswerID := uuid.New(), uuid.New(), uuid.New()
	winner := &models.Hospital{ID: acceptedID, Name: "ГКБ №3", Phone: "+70000000003"}
	var events []notifier.Event
	collectEvents(notifierMock, &events)
	webhookMock.EXPECT().Publish(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

	// Ожидания
	repoMock.EXPECT().GetPatientByID(ctx, patientID).Return(&models.Patient{ID: patientID}, nil).Times(1)
	// Принятие применяется первым, несмотря на позицию в пакете
	repoMock.EXPECT().GetHospitalFromCache(ctx, acceptedID).Return(winner, nil).Times(1)
	repoMock.EXPECT().AcceptRequest(ctx, acceptedID, patientID).Return(true, nil).Times(1)
	repoMock.EXPECT().RejectPendingRequests(ctx, patientID, acceptedID).Return(nil).Times(1)
	repoMock.EXPECT().MarkPatientResolved(ctx, patientID).Return(nil).Times(1)
	notifierMock.EXPECT().Close(notifier.ChannelForPatient(patientID)).Times(1)

	// Действие
	outcomes, err := service.HandleOutcomes(ctx, patientID, []models.HospitalOutcome{
		{HospitalID: rejectedID, Status: models.OutcomeRejected},
		{HospitalID: acceptedID, Status: models.OutcomeAccepted},
		{HospitalID: noAnswerID, Status: models.OutcomeNoAnswer},
	})

	// Проверки
	require.NoError(t, err)
	// После применённого принятия остальные ответы пакета не обрабатываются
	require.Len(t, outcomes, 1)
	assert.Equal(t, acceptedID, outcomes[0].HospitalID)
	assert.Equal(t, models.OutcomeAccepted, outcomes[0].Status)
	assert.Contains(t, eventTypes(events), notifier.EventHospitalAccepted)
}

func TestHandleOutcomes_DuplicateAccept(t *testing.T) {
	// Подготовка
	service, repoMock, notifierMock, _, _ := newTestMatchingService(t)
	ctx := context.Background()
	patientID := uuid.New()
	hospitalID := uuid.New()
	hospital := &models.Hospital{ID: hospitalID, Name: "ГКБ №4"}
	var events []notifier.Event
	collectEvents(notifierMock, &events)

	// Ожидания
	repoMock.EXPECT().GetPatientByID(ctx, patientID).Return(&models.Patient{ID: patientID}, nil).Times(1)
	repoMock.EXPECT().GetHospitalFromCache(ctx, hospitalID).Return(hospital, nil).Times(1)
	// Запрос уже не pending: условное обновление не затронуло строк
	repoMock.EXPECT().AcceptRequest(ctx, hospitalID, patientID).Return(false, nil).Times(1)

	// Действие
	outcomes, err := service.HandleOutcomes(ctx, patientID, []models.HospitalOutcome{
		{HospitalID: hospitalID, Status: models.OutcomeAccepted},
	})

	// Проверки
	require.NoError(t, err)
	require.Len(t, outcomes, 1)
	assert.Equal(t, models.OutcomeAlreadyProcessed, outcomes[0].Status)
	assert.Empty(t, events)
}

func TestHandleOutcomes_AllRejected(t *testing.T) {
	// Подготовка
	service, repoMock, notifierMock, _, webhookMock := newTestMatchingService(t)
	ctx := context.Background()
	patientID := uuid.New()
	firstID, secondID := uuid.New(), uuid.New()
	var events []notifier.Event
	collectEvents(notifierMock, &events)
	webhookMock.EXPECT().Publish(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

	// Ожидания
	repoMock.EXPECT().GetPatientByID(ctx, patientID).Return(&models.Patient{ID: patientID}, nil).Times(1)
	repoMock.EXPECT().GetHospitalFromCache(ctx, firstID).Return(&models.Hospital{ID: firstID, Name: "ГКБ №5"}, nil).Times(1)
	repoMock.EXPECT().GetHospitalFromCache(ctx, secondID).Return(&models.Hospital{ID: secondID, Name: "ГКБ №6"}, nil).Times(1)
	repoMock.EXPECT().RejectRequest(ctx, firstID, patientID).Return(true, nil).Times(1)
	repoMock.EXPECT().RejectRequest(ctx, secondID, patientID).Return(true, nil).Times(1)
	// После первого отказа ещё остаётся ожидающий запрос
	gomock.InOrder(
		repoMock.EXPECT().CountRequests(ctx, patientID, models.RequestPending).Return(1, nil),
		repoMock.EXPECT().CountRequests(ctx, patientID, models.RequestPending).Return(0, nil),
	)
	repoMock.EXPECT().CountRequests(ctx, patientID, models.RequestAccepted).Return(0, nil).Times(1)

	// Действие
	outcomes, err := service.HandleOutcomes(ctx, patientID, []models.HospitalOutcome{
		{HospitalID: firstID, Status: models.OutcomeRejected},
		{HospitalID: secondID, Status: models.OutcomeNoAnswer},
	})

	// Проверки
	require.NoError(t, err)
	require.Len(t, outcomes, 2)
	assert.Equal(t, models.OutcomeRejected, outcomes[0].Status)
	assert.Equal(t, models.OutcomeNoAnswer, outcomes[1].Status)
	types := eventTypes(events)
	assert.Contains(t, types, notifier.EventHospitalRejected)
	assert.Contains(t, types, notifier.EventHospitalNoAnswer)
	assert.Equal(t, notifier.EventAllRejected, types[len(types)-1])
}

func TestHandleOutcomes_HospitalNotFound(t *testing.T) {
	// Подготовка
	service, repoMock, notifierMock, _, _ := newTestMatchingService(t)
	ctx := context.Background()
	patientID := uuid.New()
	hospitalID := uuid.New()
	var events []notifier.Event
	collectEvents(notifierMock, &events)

	// Ожидания
	repoMock.EXPECT().GetPatientByID(ctx, patientID).Return(&models.Patient{ID: patientID}, nil).Times(1)
	// Промах кеша, затем промах в БД
	repoMock.EXPECT().GetHospitalFromCache(ctx, hospitalID).Return(nil, nil).Times(1)
	repoMock.EXPECT().GetHospitalByID(ctx, hospitalID).Return(nil, models.ErrNotFound).Times(1)

	// Действие
	outcomes, err := service.HandleOutcomes(ctx, patientID, []models.HospitalOutcome{
		{HospitalID: hospitalID, Status: models.OutcomeAccepted},
	})

	// Проверки
	require.NoError(t, err)
	require.Len(t, outcomes, 1)
	assert.Equal(t, models.OutcomeHospitalNotFound, outcomes[0].Status)
}

func TestHandleOutcomes_UnknownPatient(t *testing.T) {
	// Подготовка
	service, repoMock, _, _, _ := newTestMatchingService(t)
	ctx := context.Background()
	patientID := uuid.New()

	// Ожидания
	repoMock.EXPECT().GetPatientByID(ctx, patientID).Return(nil, models.ErrNotFound).Times(1)

	// Действие
	outcomes, err := service.HandleOutcomes(ctx, patientID, []models.HospitalOutcome{
		{HospitalID: uuid.New(), Status: models.OutcomeRejected},
	})

	// Проверки
	require.Error(t, err)
	assert.ErrorIs(t, err, models.ErrNotFound)
	assert.Nil(t, outcomes)
}

func TestGetPatient_Success(t *testing.T) {
	// Подготовка
	service, repoMock, _, _, _ := newTestMatchingService(t)
	ctx := context.Background()
	patientID := uuid.New()
	expectedPatient := &models.Patient{ID: patientID, Grade: 3}
	expectedRequests := []*models.HospitalRequest{
		{PatientID: patientID, HospitalID: uuid.New(), Status: models.RequestAccepted},
	}

	// Ожидания
	repoMock.EXPECT().GetPatientByID(ctx, patientID).Return(expectedPatient, nil).Times(1)
	repoMock.EXPECT().ListRequests(ctx, patientID).Return(expectedRequests, nil).Times(1)

	// Действие
	patient, requests, err := service.GetPatient(ctx, patientID)

	// Проверки
	require.NoError(t, err)
	assert.Equal(t, expectedPatient, patient)
	assert.Equal(t, expectedRequests, requests)
}

func TestCreateHospital_InvertedGradeRange(t *testing.T) {
	// Подготовка
	service, _, _, _, _ := newTestMatchingService(t)
	ctx := context.Background()
	hospital := &models.Hospital{Name: "ГКБ №7", MinGrade: 4, MaxGrade: 2}

	// Действие
	err := service.CreateHospital(ctx, hospital)

	// Проверки
	require.Error(t, err)
	assert.ErrorContains(t, err, "grade range is inverted")
}

func TestListHospitals_DefaultsPagination(t *testing.T) {
	// Подготовка
	service, repoMock, _, _, _ := newTestMatchingService(t)
	ctx := context.Background()
	expectedHospitals := []*models.Hospital{{ID: uuid.New(), Name: "ГКБ №8"}}

	// Ожидания
	// Невалидные параметры заменяются значениями по умолчанию
	repoMock.EXPECT().ListHospitals(ctx, 1, 20).Return(expectedHospitals, nil).Times(1)

	// Действие
	hospitals, err := service.ListHospitals(ctx, 0, 500)

	// Проверки
	require.NoError(t, err)
	assert.Equal(t, expectedHospitals, hospitals)
}

func TestGetStats_Success(t *testing.T) {
	// Подготовка
	service, repoMock, _, _, _ := newTestMatchingService(t)
	ctx := context.Background()
	expectedCount := 17

	// Ожидания
	repoMock.EXPECT().CountMatchedPatients(ctx, service.cfg.StatsTimeWindowMinutes).Return(expectedCount, nil).Times(1)

	// Действие
	count, err := service.GetStats(ctx)

	// Проверки
	require.NoError(t, err)
	assert.Equal(t, expectedCount, count)
}
