package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"ashacare-backend/internal/compat"
	"ashacare-backend/internal/metrics"
	"ashacare-backend/internal/reconcile"
	"ashacare-backend/internal/store"
)

// VaccinationHandler serves vaccination list reads and the add/update_status
// write entry point. The vaccination endpoints use the success-bool response
// shape the legacy backend established, which differs from the patient
// endpoints' status-string shape.
type VaccinationHandler struct {
	engine *reconcile.Engine
	store  *store.Store
	log    *zap.Logger
}

func NewVaccinationHandler(engine *reconcile.Engine, st *store.Store, log *zap.Logger) *VaccinationHandler {
	return &VaccinationHandler{engine: engine, store: st, log: log}
}

func successError(c *gin.Context, message string) {
	c.JSON(http.StatusOK, gin.H{"success": false, "message": message})
}

// Get handles GET /vaccinations, filtered by worker or by patient. Rows
// are ordered by scheduled_date and carry the patient's display name.
func (h *VaccinationHandler) Get(c *gin.Context) {
	if ashaStr := c.Query("asha_id"); ashaStr != "" {
		ashaID, err := strconv.ParseUint(ashaStr, 10, 32)
		if err != nil {
			successError(c, "Invalid asha_id parameter")
			return
		}
		rows, err := h.store.ListVaccinationsByAsha(c.Request.Context(), uint(ashaID))
		if err != nil {
			h.log.Error("vaccination list failed", zap.Error(err))
			successError(c, "Error fetching vaccinations")
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": true, "data": rows})
		return
	}

	if patientStr := c.Query("patient_id"); patientStr != "" {
		patientID, err := strconv.ParseUint(patientStr, 10, 32)
		if err != nil {
			successError(c, "Invalid patient_id parameter")
			return
		}
		rows, err := h.store.ListVaccinationsByPatient(c.Request.Context(), uint(patientID))
		if err != nil {
			h.log.Error("vaccination list failed", zap.Error(err))
			successError(c, "Error fetching vaccinations")
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": true, "data": rows})
		return
	}

	successError(c, "Missing asha_id or patient_id parameter")
}

// Post handles POST /vaccinations: add_vaccination or update_status,
// resolved from the explicit action field or inferred from payload shape.
func (h *VaccinationHandler) Post(c *gin.Context) {
	var payload compat.VaccinationPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		successError(c, "Invalid request body")
		return
	}

	req, err := compat.ParseVaccinationRequest(payload)
	if err != nil {
		metrics.RecordOutcome("vaccination", "rejected")
		successError(c, err.Error())
		return
	}

	switch r := req.(type) {
	case compat.AddVaccination:
		id, err := h.engine.AddVaccination(c.Request.Context(), r)
		if err != nil {
			metrics.RecordOutcome("vaccination", "error")
			h.log.Warn("add vaccination failed", zap.Error(err))
			successError(c, reconcileMessage(err))
			return
		}
		metrics.RecordOutcome("vaccination", "created")
		c.JSON(http.StatusOK, gin.H{
			"success":        true,
			"message":        "Vaccination added successfully",
			"vaccination_id": id,
		})
	case compat.UpdateVaccinationStatus:
		row, err := h.engine.UpdateStatus(c.Request.Context(), r)
		if err != nil {
			metrics.RecordOutcome("vaccination", "error")
			h.log.Warn("update vaccination status failed", zap.Error(err))
			successError(c, reconcileMessage(err))
			return
		}
		metrics.RecordOutcome("vaccination", "updated")
		c.JSON(http.StatusOK, gin.H{
			"success": true,
			"message": "Vaccination status updated successfully",
			"data":    row,
		})
	}
}
