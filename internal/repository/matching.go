package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/shenikar/emergency_matching_system/internal/config"
	"github.com/shenikar/emergency_matching_system/internal/models"
	"github.com/shenikar/emergency_matching_system/internal/service"
)

type MatchingRepository struct {
	db          *pgxpool.Pool
	redisClient *redis.Client
	cfg         *config.Config
}

func NewMatchingRepository(db *pgxpool.Pool, redisClient *redis.Client, cfg *config.Config) service.MatchingRepository {
	return &MatchingRepository{
		db:          db,
		redisClient: redisClient,
		cfg:         cfg,
	}
}

// CreatePatient создает новую запись о пациенте в бд
func (r *MatchingRepository) CreatePatient(ctx context.Context, patient *models.Patient) error {
	query := `
		INSERT INTO patients (age, sex, category, symptom, remarks, grade, location, stage)
		VALUES ($1, $2, $3, $4, $5, $6, ST_SetSRID(ST_MakePoint($7, $8), 4326), $9)
		RETURNING id, created_at, updated_at;
	`
	err := r.db.QueryRow(ctx, query,
		patient.Age,
		patient.Sex,
		patient.Category,
		patient.Symptom,
		patient.Remarks,
		patient.Grade,
		patient.Longitude,
		patient.Latitude,
		patient.Stage,
	).Scan(&patient.ID, &patient.CreatedAt, &patient.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to create patient: %w", err)
	}
	return nil
}

// GetPatientByID возвращает пациента по его UUID
func (r *MatchingRepository) GetPatientByID(ctx context.Context, id uuid.UUID) (*models.Patient, error) {
	patient := &models.Patient{}
	query := `
		SELECT
			id,
			age,
			sex,
			category,
			symptom,
			remarks,
			grade,
			ST_Y(location::geometry) as latitude,
			ST_X(location::geometry) as longitude,
			stage,
			resolved,
			created_at,
			updated_at
		FROM patients
		WHERE id = $1;
	`
	err := r.db.QueryRow(ctx, query, id).Scan(
		&patient.ID,
		&patient.Age,
		&patient.Sex,
		&patient.Category,
		&patient.Symptom,
		&patient.Remarks,
		&patient.Grade,
		&patient.Latitude,
		&patient.Longitude,
		&patient.Stage,
		&patient.Resolved,
		&patient.CreatedAt,
		&patient.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("patient with id %s: %w", id, models.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get patient by id: %w", err)
	}
	return patient, nil
}

// UpdatePatientStage сохраняет текущий этап расширения поиска
func (r *MatchingRepository) UpdatePatientStage(ctx context.Context, id uuid.UUID, stage int) error {
	query := `
		UPDATE patients SET
			stage = $1,
			updated_at = NOW()
		WHERE id = $2;
	`
	cmdTag, err := r.db.Exec(ctx, query, stage, id)
	if err != nil {
		return fmt.Errorf("failed to update patient stage: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("patient with id %s not found for stage update: %w", id, models.ErrNotFound)
	}
	return nil
}

// MarkPatientResolved устанавливает терминальный флаг пациента
func (r *MatchingRepository) MarkPatientResolved(ctx context.Context, id uuid.UUID) error {
	query := `
		UPDATE patients SET
			resolved = TRUE,
			updated_at = NOW()
		WHERE id = $1;
	`
	cmdTag, err := r.db.Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to mark patient resolved: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("patient with id %s not found for resolve: %w", id, models.ErrNotFound)
	}
	return nil
}

// CreateHospital создает новую запись о больнице в бд
func (r *MatchingRepository) CreateHospital(ctx context.Context, hospital *models.Hospital) error {
	query := `
		INSERT INTO hospitals (name, phone, location, min_grade, max_grade)
		VALUES ($1, $2, ST_SetSRID(ST_MakePoint($3, $4), 4326), $5, $6)
		RETURNING id, created_at, updated_at;
	`
	err := r.db.QueryRow(ctx, query,
		hospital.Name,
		hospital.Phone,
		hospital.Longitude,
		hospital.Latitude,
		hospital.MinGrade,
		hospital.MaxGrade,
	).Scan(&hospital.ID, &hospital.CreatedAt, &hospital.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to create hospital: %w", err)
	}
	return nil
}

// GetHospitalByID возвращает больницу по её UUID
func (r *MatchingRepository) GetHospitalByID(ctx context.Context, id uuid.UUID) (*models.Hospital, error) {
	hospital := &models.Hospital{}
	query := `
		SELECT
			id,
			name,
			phone,
			ST_Y(location::geometry) as latitude,
			ST_X(location::geometry) as longitude,
			min_grade,
			max_grade,
			created_at,
			updated_at
		FROM hospitals
		WHERE id = $1;
	`
	err := r.db.QueryRow(ctx, query, id).Scan(
		&hospital.ID,
		&hospital.Name,
		&hospital.Phone,
		&hospital.Latitude,
		&hospital.Longitude,
		&hospital.MinGrade,
		&hospital.MaxGrade,
		&hospital.CreatedAt,
		&hospital.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("hospital with id %s: %w", id, models.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get hospital by id: %w", err)
	}
	return hospital, nil
}

// ListHospitals возвращает список больниц с пагинацией
func (r *MatchingRepository) ListHospitals(ctx context.Context, page, pageSize int) ([]*models.Hospital, error) {
	// рассчитываем смещение
	offset := (page - 1) * pageSize

	query := `
		SELECT
			id,
			name,
			phone,
			ST_Y(location::geometry) as latitude,
			ST_X(location::geometry) as longitude,
			min_grade,
			max_grade,
			created_at,
			updated_at
		FROM hospitals
		ORDER BY created_at DESC
		LIMIT $1 OFFSET $2;
	`
	rows, err := r.db.Query(ctx, query, pageSize, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list hospitals: %w", err)
	}
	defer rows.Close()

	hospitals := make([]*models.Hospital, 0)
	for rows.Next() {
		hospital := &models.Hospital{}
		err := rows.Scan(
			&hospital.ID,
			&hospital.Name,
			&hospital.Phone,
			&hospital.Latitude,
			&hospital.Longitude,
			&hospital.MinGrade,
			&hospital.MaxGrade,
			&hospital.CreatedAt,
			&hospital.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan hospital row: %w", err)
		}
		hospitals = append(hospitals, hospital)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error list iteration: %w", err)
	}
	return hospitals, nil
}

// FindNearestHospitals возвращает пакет ближайших к точке больниц, принимающих
// данную степень тяжести, по возрастанию расстояния с постраничным смещением
func (r *MatchingRepository) FindNearestHospitals(ctx context.Context, lat, lng float64, grade, limit, offset int) ([]*models.HospitalCandidate, error) {
	query := `
		SELECT
			id,
			name,
			phone,
			ST_Y(location::geometry) as latitude,
			ST_X(location::geometry) as longitude,
			min_grade,
			max_grade,
			created_at,
			updated_at,
			ST_Distance(location, ST_SetSRID(ST_MakePoint($1, $2), 4326)::geography) AS distance_meters
		FROM hospitals
		WHERE min_grade <= $3 AND max_grade >= $3
		ORDER BY distance_meters ASC
		LIMIT $4 OFFSET $5;
	`
	rows, err := r.db.Query(ctx, query, lng, lat, grade, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to find nearest hospitals: %w", err)
	}
	defer rows.Close()

	candidates := make([]*models.HospitalCandidate, 0)
	for rows.Next() {
		candidate := &models.HospitalCandidate{}
		err := rows.Scan(
			&candidate.ID,
			&candidate.Name,
			&candidate.Phone,
			&candidate.Latitude,
			&candidate.Longitude,
			&candidate.MinGrade,
			&candidate.MaxGrade,
			&candidate.CreatedAt,
			&candidate.UpdatedAt,
			&candidate.DistanceMeters,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan hospital row in FindNearestHospitals: %w", err)
		}
		candidates = append(candidates, candidate)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error list iteration in FindNearestHospitals: %w", err)
	}
	return candidates, nil
}

// CreateRequest создает ожидающий запрос больнице по пациенту
func (r *MatchingRepository) CreateRequest(ctx context.Context, request *models.HospitalRequest) error {
	query := `
		INSERT INTO hospital_requests (patient_id, hospital_id, status)
		VALUES ($1, $2, $3) RETURNING id, created_at, updated_at;
	`
	err := r.db.QueryRow(ctx, query,
		request.PatientID,
		request.HospitalID,
		models.RequestPending,
	).Scan(&request.ID, &request.CreatedAt, &request.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to create hospital request: %w", err)
	}
	request.Status = models.RequestPending
	return nil
}

// AcceptRequest переводит ожидающий запрос в accepted. Предусловие
// status='pending' сериализует гонку двух принятий: ровно одно обновление
// затрагивает строку, проигравший получает false
func (r *MatchingRepository) AcceptRequest(ctx context.Context, hospitalID, patientID uuid.UUID) (bool, error) {
	query := `
		UPDATE hospital_requests SET
			status = $1,
			updated_at = NOW()
		WHERE hospital_id = $2 AND patient_id = $3 AND status = $4;
	`
	cmdTag, err := r.db.Exec(ctx, query, models.RequestAccepted, hospitalID, patientID, models.RequestPending)
	if err != nil {
		return false, fmt.Errorf("failed to accept hospital request: %w", err)
	}
	return cmdTag.RowsAffected() > 0, nil
}

// RejectRequest переводит ожидающий запрос в rejected с тем же предусловием
func (r *MatchingRepository) RejectRequest(ctx context.Context, hospitalID, patientID uuid.UUID) (bool, error) {
	query := `
		UPDATE hospital_requests SET
			status = $1,
			updated_at = NOW()
		WHERE hospital_id = $2 AND patient_id = $3 AND status = $4;
	`
	cmdTag, err := r.db.Exec(ctx, query, models.RequestRejected, hospitalID, patientID, models.RequestPending)
	if err != nil {
		return false, fmt.Errorf("failed to reject hospital request: %w", err)
	}
	return cmdTag.RowsAffected() > 0, nil
}

// RejectPendingRequests отклоняет все оставшиеся ожидающие запросы пациента,
// кроме запроса принявшей больницы
func (r *MatchingRepository) RejectPendingRequests(ctx context.Context, patientID, acceptedHospitalID uuid.UUID) error {
	query := `
		UPDATE hospital_requests SET
			status = $1,
			updated_at = NOW()
		WHERE patient_id = $2 AND hospital_id <> $3 AND status = $4;
	`
	if _, err := r.db.Exec(ctx, query, models.RequestRejected, patientID, acceptedHospitalID, models.RequestPending); err != nil {
		return fmt.Errorf("failed to reject pending hospital requests: %w", err)
	}
	return nil
}

// CountRequests возвращает число запросов пациента в данном статусе
func (r *MatchingRepository) CountRequests(ctx context.Context, patientID uuid.UUID, status models.RequestStatus) (int, error) {
	query := `
		SELECT COUNT(*)
		FROM hospital_requests
		WHERE patient_id = $1 AND status = $2;
	`
	var count int
	err := r.db.QueryRow(ctx, query, patientID, status).Scan(&count)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, nil
		}
		return 0, fmt.Errorf("failed to count hospital requests: %w", err)
	}
	return count, nil
}

// ListRequests возвращает все запросы пациента в порядке создания
func (r *MatchingRepository) ListRequests(ctx context.Context, patientID uuid.UUID) ([]*models.HospitalRequest, error) {
	query := `
		SELECT id, patient_id, hospital_id, status, created_at, updated_at
		FROM hospital_requests
		WHERE patient_id = $1
		ORDER BY created_at ASC;
	`
	rows, err := r.db.Query(ctx, query, patientID)
	if err != nil {
		return nil, fmt.Errorf("failed to list hospital requests: %w", err)
	}
	defer rows.Close()

	requests := make([]*models.HospitalRequest, 0)
	for rows.Next() {
		request := &models.HospitalRequest{}
		err := rows.Scan(
			&request.ID,
			&request.PatientID,
			&request.HospitalID,
			&request.Status,
			&request.CreatedAt,
			&request.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan hospital request row: %w", err)
		}
		requests = append(requests, request)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error list iteration in ListRequests: %w", err)
	}
	return requests, nil
}

// CountMatchedPatients возвращает количество пациентов, получивших больницу
// за последние minutes минут
func (r *MatchingRepository) CountMatchedPatients(ctx context.Context, minutes int) (int, error) {
	query := `
		SELECT COUNT(DISTINCT patient_id)
		FROM hospital_requests
		WHERE status = $1 AND updated_at >= NOW() - ($2 * INTERVAL '1 minute');
	`
	var count int
	err := r.db.QueryRow(ctx, query, models.RequestAccepted, minutes).Scan(&count)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, nil
		}
		return 0, fmt.Errorf("failed to count matched patients: %w", err)
	}
	return count, nil
}

// GetHospitalFromCache пытается получить больницу из Redis
func (r *MatchingRepository) GetHospitalFromCache(ctx context.Context, id uuid.UUID) (*models.Hospital, error) {
	key := fmt.Sprintf("hospital:%s", id.String())
	val, err := r.redisClient.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get hospital from cache: %w", err)
	}

	hospital := &models.Hospital{}
	if err := json.Unmarshal(val, hospital); err != nil {
		return nil, fmt.Errorf("failed to unmarshal hospital from cache: %w", err)
	}
	return hospital, nil
}

// SetHospitalCache сохраняет больницу в Redis
func (r *MatchingRepository) SetHospitalCache(ctx context.Context, hospital *models.Hospital) error {
	key := fmt.Sprintf("hospital:%s", hospital.ID.String())
	val, err := json.Marshal(hospital)
	if err != nil {
		return fmt.Errorf("failed to marshal hospital for cache: %w", err)
	}
	if err := r.redisClient.Set(ctx, key, val, r.cfg.HospitalCacheTTL).Err(); err != nil {
		return fmt.Errorf("failed to set hospital in cache: %w", err)
	}
	return nil
}
