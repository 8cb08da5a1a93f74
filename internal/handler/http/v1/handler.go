package v1

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/shenikar/emergency_matching_system/internal/config"
	"github.com/shenikar/emergency_matching_system/internal/models"
	"github.com/shenikar/emergency_matching_system/internal/service"
	"github.com/sirupsen/logrus"
)

type Handler struct {
	matchingService service.MatchingService
	notifier        service.Notifier
	logger          *logrus.Logger
	validate        *validator.Validate
	cfg             *config.Config
}

func NewHandler(matchingService service.MatchingService, notifier service.Notifier, logger *logrus.Logger, cfg *config.Config) *Handler {
	return &Handler{
		matchingService: matchingService,
		notifier:        notifier,
		logger:          logger,
		validate:        validator.New(),
		cfg:             cfg,
	}
}

// @Summary Start hospital matching
// @Description Submit an emergency patient and start the staged search for the nearest accepting hospital. Subscribe to the returned channel immediately to receive progress events.
// @Tags Matching
// @Accept json
// @Produce json
// @Param patient body StartMatchingRequest true "Patient submission"
// @Success 201 {object} StartMatchingResponse
// @Failure 400 {object} map[string]string "Invalid request body or validation error"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /matching/start [post]
func (h *Handler) startMatching(c *gin.Context) {
	var input StartMatchingRequest
	log := h.logger.WithField("method", "startMatching")

	if err := c.ShouldBindJSON(&input); err != nil {
		log.WithError(err).Warn("Failed to bind JSON")
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	if err := h.validate.Struct(input); err != nil {
		log.WithError(err).Warn("Validation failed")
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	model := DTOToPatientModel(input)
	channel, err := h.matchingService.StartMatching(c.Request.Context(), model)
	if err != nil {
		if errors.Is(err, service.ErrGradeOutOfRange) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "grade out of range"})
			return
		}
		log.WithError(err).Error("Failed to start matching in service")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}

	c.JSON(http.StatusCreated, StartMatchingResponse{
		PatientID: model.ID,
		Channel:   channel,
	})
}

// @Summary Apply hospital call-out results
// @Description Batch callback from the dispatch service with per-hospital accept/reject/no-answer results. Accepted results are applied before rejections.
// @Tags Matching
// @Accept json
// @Produce json
// @Param results body MatchingCallbackRequest true "Per-hospital results"
// @Success 200 {object} MatchingCallbackResponse
// @Failure 400 {object} map[string]string "Invalid request body or validation error"
// @Failure 404 {object} map[string]string "Patient not found"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /matching/callback [post]
func (h *Handler) matchingCallback(c *gin.Context) {
	var input MatchingCallbackRequest
	log := h.logger.WithField("method", "matchingCallback")

	if err := c.ShouldBindJSON(&input); err != nil {
		log.WithError(err).Warn("Failed to bind JSON")
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	if err := h.validate.Struct(input); err != nil {
		log.WithError(err).Warn("Validation failed")
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	outcomes, err := h.matchingService.HandleOutcomes(c.Request.Context(), input.PatientID, DTOToOutcomes(input.Results))
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "patient not found"})
			return
		}
		log.WithError(err).Error("Failed to handle outcomes in service")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}

	c.JSON(http.StatusOK, OutcomesToDTO(outcomes))
}

// @Summary Get matching state
// @Description Get the current matching state of a patient and all hospital requests.
// @Tags Matching
// @Accept json
// @Produce json
// @Param id path string true "Patient ID"
// @Success 200 {object} MatchingStateResponse
// @Failure 400 {object} map[string]string "Invalid patient ID"
// @Failure 404 {object} map[string]string "Patient not found"
// @Router /matching/{id} [get]
func (h *Handler) getMatching(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid patient ID"})
		return
	}
	log := h.logger.WithField("method", "getMatching").WithField("id", id)

	patient, requests, err := h.matchingService.GetPatient(c.Request.Context(), id)
	if err != nil {
		log.WithError(err).Warn("Failed to get patient from service")
		c.JSON(http.StatusNotFound, gin.H{"error": "patient not found"})
		return
	}
	c.JSON(http.StatusOK, ModelsToMatchingState(patient, requests))
}

// @Summary Register a hospital
// @Description Register a new hospital with its location and accepted grade range. Requires API key.
// @Tags Hospitals
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param hospital body CreateHospitalRequest true "Hospital registration request"
// @Success 201 {object} HospitalResponse
// @Failure 400 {object} map[string]string "Invalid request body or validation error"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /hospitals [post]
func (h *Handler) createHospital(c *gin.Context) {
	var input CreateHospitalRequest
	log := h.logger.WithField("method", "createHospital")

	if err := c.ShouldBindJSON(&input); err != nil {
		log.WithError(err).Warn("Failed to bind JSON")
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	if err := h.validate.Struct(input); err != nil {
		log.WithError(err).Warn("Validation failed")
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	model := DTOToHospitalModel(input)
	if err := h.matchingService.CreateHospital(c.Request.Context(), model); err != nil {
		log.WithError(err).Error("Failed to create hospital in service")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}
	c.JSON(http.StatusCreated, ModelToHospitalResponse(model))
}

// @Summary Get a list of hospitals
// @Description Get a paginated list of registered hospitals. Requires API key.
// @Tags Hospitals
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param page query int false "Page number" default(1)
// @Param pageSize query int false "Number of items per page" default(10)
// @Success 200 {array} HospitalResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /hospitals [get]
func (h *Handler) listHospitals(c *gin.Context) {
	log := h.logger.WithField("method", "listHospitals")
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("pageSize", "10"))

	hospitals, err := h.matchingService.ListHospitals(c.Request.Context(), page, pageSize)
	if err != nil {
		log.WithError(err).Error("Failed to list hospitals from service")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}

	c.JSON(http.StatusOK, ModelsToHospitalResponses(hospitals))
}

// @Summary Get matching statistics
// @Description Get the number of patients matched to a hospital within the configured time window. Requires API key.
// @Tags Admin
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} StatsResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /matching/stats [get]
func (h *Handler) getStats(c *gin.Context) {
	log := h.logger.WithField("method", "getStats")

	matchedCount, err := h.matchingService.GetStats(c.Request.Context())
	if err != nil {
		log.WithError(err).Error("Failed to get stats from service")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}

	c.JSON(http.StatusOK, StatsResponse{MatchedCount: matchedCount})
}

// @Summary Get application health status
// @Description Get health status of the application
// @Tags System
// @Accept json
// @Produce json
// @Success 200 {object} map[string]string "Status OK"
// @Router /system/health [get]
func (h *Handler) healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
