package dispatch

import (
	"bytes"
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shenikar/emergency_matching_system/internal/config"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(dispatchURL string) *HTTPClient {
	logger := logrus.New()
	logger.SetOutput(&bytes.Buffer{}) // Отключаем вывод логов в тестах

	cfg := &config.Config{
		DispatchURL:     dispatchURL,
		DispatchTimeout: time.Second,
		CallbackURL:     "http://localhost:8080/api/v1/matching/callback",
	}
	return NewHTTPClient(cfg, logger)
}

func TestBroadcast_Success(t *testing.T) {
	patientID := uuid.New()
	hospitalID := uuid.New()

	var received BroadcastRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		body, _ := io.ReadAll(r.Body)
		require.NoError(t, json.Unmarshal(body, &received))
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	client := newTestClient(server.URL)
	err := client.Broadcast(context.Background(), BroadcastRequest{
		Hospitals:   []HospitalContact{{HospitalID: hospitalID, Phone: "+821012345678"}},
		PatientID:   patientID,
		Age:         "30대",
		Sex:         "male",
		Category:    "외상",
		Symptom:     "골절",
		Grade:       3,
		CallbackURL: client.cfg.CallbackURL,
	})

	require.NoError(t, err)
	assert.Equal(t, patientID, received.PatientID)
	require.Len(t, received.Hospitals, 1)
	assert.Equal(t, hospitalID, received.Hospitals[0].HospitalID)
}

func TestBroadcast_ServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	client := newTestClient(server.URL)
	err := client.Broadcast(context.Background(), BroadcastRequest{PatientID: uuid.New()})

	require.Error(t, err)
	assert.ErrorContains(t, err, "status 500")
}

func TestBroadcast_SignsPayload(t *testing.T) {
	var signature string
	var body []byte
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		signature = r.Header.Get("X-Signature")
		body, _ = io.ReadAll(r.Body)
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	client := newTestClient(server.URL)
	client.cfg.DispatchSecret = "dispatch-secret"

	err := client.Broadcast(context.Background(), BroadcastRequest{PatientID: uuid.New()})
	require.NoError(t, err)

	mac := hmac.New(sha256.New, []byte("dispatch-secret"))
	mac.Write(body)
	assert.Equal(t, hex.EncodeToString(mac.Sum(nil)), signature)
}

func TestBroadcast_NoURLConfigured(t *testing.T) {
	client := newTestClient("")
	err := client.Broadcast(context.Background(), BroadcastRequest{PatientID: uuid.New()})

	// Вызов пропускается без ошибки, если сервис обзвона не настроен
	require.NoError(t, err)
}
