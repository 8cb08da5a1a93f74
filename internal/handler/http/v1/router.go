package v1

import (
	"github.com/gin-gonic/gin"
)

// RegisterRoutes регистрирует все маршруты API v1
func (h *Handler) RegisterRoutes(api *gin.RouterGroup) {
	// Маршруты процесса подбора больницы
	matching := api.Group("/matching")
	{
		matching.POST("/start", h.startMatching)
		matching.POST("/callback", h.matchingCallback)
		matching.GET("/stats", h.getStats)
		matching.GET("/:id", h.getMatching)
	}

	// Маршрут live-событий (канал пациента или больницы)
	api.GET("/sse/:channel", h.streamEvents)

	// Маршруты регистрации больниц, закрыты API-ключом
	hospitals := api.Group("/hospitals")
	hospitals.Use(APIKeyAuthMiddleware(h.cfg, h.logger))
	{
		hospitals.POST("", h.createHospital)
		hospitals.GET("", h.listHospitals)
	}

	// Маршрут Health-check
	api.GET("/system/health", h.healthCheck)
}
