package controller

import (
	"net/http"
	"time"

	"github.com/api-sage/core-banking/internal/adapter/http/models"
	"github.com/api-sage/core-banking/internal/usecase/service_interfaces"
)

type AuditController struct {
	service service_interfaces.AuditService
}

func NewAuditController(service service_interfaces.AuditService) *AuditController {
	return &AuditController{service: service}
}

func (c *AuditController) RegisterRoutes(mux *http.ServeMux, authMiddleware func(http.Handler) http.Handler) {
	handler := http.Handler(http.HandlerFunc(c.query))
	if authMiddleware != nil {
		handler = authMiddleware(handler)
	}
	mux.Handle("GET /audit-logs", handler)
}

func (c *AuditController) query(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	logRequest(r, nil)

	req := models.AuditQueryRequest{
		EntityType: r.URL.Query().Get("entityType"),
		EntityID:   r.URL.Query().Get("entityId"),
		UserID:     r.URL.Query().Get("userId"),
		Action:     r.URL.Query().Get("action"),
		StartDate:  queryTime(r, "startDate"),
		EndDate:    queryTime(r, "endDate"),
		Offset:     queryInt(r, "offset", 0),
		Limit:      queryInt(r, "limit", 0),
	}

	response, err := c.service.Query(r.Context(), req)
	if err != nil {
		status := statusForError(err)
		writeJSON(w, status, response)
		logResponse(r, status, response, start)
		return
	}

	writeJSON(w, http.StatusOK, response)
	logResponse(r, http.StatusOK, response, start)
}
