package dispatch

import (
	"bytes"
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/google/uuid"
	"github.com/shenikar/emergency_matching_system/internal/config"
	"github.com/sirupsen/logrus"
)

// HospitalContact - контакт больницы для обзвона
type HospitalContact struct {
	HospitalID uuid.UUID `json:"hospitalId"`
	Phone      string    `json:"phone"`
}

// BroadcastRequest - запрос внешнему сервису обзвона: список больниц,
// данные пациента и адрес для callback-а с результатами
type BroadcastRequest struct {
	Hospitals   []HospitalContact `json:"hospitals"`
	PatientID   uuid.UUID         `json:"patientId"`
	Age         string            `json:"age"`
	Sex         string            `json:"sex"`
	Category    string            `json:"category"`
	Symptom     string            `json:"symptom"`
	Remarks     string            `json:"remarks"`
	Grade       int               `json:"grade"`
	CallbackURL string            `json:"callback_url"`
}

// Client - интерфейс исходящего вызова сервиса обзвона больниц
type Client interface {
	Broadcast(ctx context.Context, req BroadcastRequest) error
}

// HTTPClient - реализация Client поверх HTTP.
// Вызов одноразовый: повторных попыток нет, ошибка доставки
// обрабатывается вызывающей стороной как ошибка этапа подбора.
type HTTPClient struct {
	cfg        *config.Config
	logger     *logrus.Logger
	httpClient *http.Client
}

func NewHTTPClient(cfg *config.Config, logger *logrus.Logger) *HTTPClient {
	return &HTTPClient{
		cfg:    cfg,
		logger: logger,
		httpClient: &http.Client{
			Timeout: cfg.DispatchTimeout,
		},
	}
}

// Broadcast отправляет пакет кандидатов сервису обзвона
func (c *HTTPClient) Broadcast(ctx context.Context, broadcast BroadcastRequest) error {
	log := c.logger.WithFields(logrus.Fields{
		"patient_id": broadcast.PatientID,
		"hospitals":  len(broadcast.Hospitals),
	})

	if c.cfg.DispatchURL == "" {
		// Без настроенного сервиса обзвона больницы получают только SSE-уведомления
		log.Warn("Dispatch URL is not configured. Skipping hospital call-out.")
		return nil
	}

	payload, err := json.Marshal(broadcast)
	if err != nil {
		return fmt.Errorf("failed to marshal broadcast request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.DispatchURL, bytes.NewBuffer(payload))
	if err != nil {
		return fmt.Errorf("failed to create broadcast request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	// Подпись тела запроса, если DISPATCH_SECRET задан
	if c.cfg.DispatchSecret != "" {
		h := hmac.New(sha256.New, []byte(c.cfg.DispatchSecret))
		h.Write(payload)
		req.Header.Set("X-Signature", hex.EncodeToString(h.Sum(nil)))
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send broadcast request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("dispatch service returned status %d", resp.StatusCode)
	}

	log.Info("Hospital call-out dispatched successfully.")
	return nil
}
