// Package handlers exposes the sync API over HTTP. The wire contract is
// kept compatible with the legacy backend the mobile clients already speak:
// every response is HTTP 200 with a body-level success flag, reads use GET,
// and all mutations arrive on one POST entry point per resource.
package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"ashacare-backend/internal/compat"
	"ashacare-backend/internal/metrics"
	"ashacare-backend/internal/reconcile"
	"ashacare-backend/internal/store"
)

// PatientHandler serves patient reads and reconciliation writes.
type PatientHandler struct {
	engine        *reconcile.Engine
	store         *store.Store
	defaultAshaID uint
	log           *zap.Logger
}

func NewPatientHandler(engine *reconcile.Engine, st *store.Store, defaultAshaID uint, log *zap.Logger) *PatientHandler {
	return &PatientHandler{engine: engine, store: st, defaultAshaID: defaultAshaID, log: log}
}

func statusError(c *gin.Context, message string) {
	c.JSON(http.StatusOK, gin.H{"status": "error", "message": message})
}

// Get handles GET /patients, by server id or by owning worker.
func (h *PatientHandler) Get(c *gin.Context) {
	if idStr := c.Query("id"); idStr != "" {
		id, err := strconv.ParseUint(idStr, 10, 32)
		if err != nil {
			statusError(c, "Invalid id parameter")
			return
		}
		patient, err := h.store.GetPatient(c.Request.Context(), uint(id))
		if err != nil {
			h.log.Error("patient lookup failed", zap.Error(err))
			statusError(c, "Error fetching patient")
			return
		}
		if patient == nil {
			statusError(c, "Patient not found")
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "success", "patient": patient})
		return
	}

	if ashaStr := c.Query("asha_id"); ashaStr != "" {
		ashaID, err := strconv.ParseUint(ashaStr, 10, 32)
		if err != nil {
			statusError(c, "Invalid asha_id parameter")
			return
		}
		patients, err := h.store.ListPatientsByAsha(c.Request.Context(), uint(ashaID))
		if err != nil {
			h.log.Error("patient list failed", zap.Error(err))
			statusError(c, "Error fetching patients")
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "success", "patients": patients})
		return
	}

	statusError(c, "Missing asha_id or id parameter")
}

// Post handles POST /patients: create, update or delete, decided once from
// the payload shape and echoed back with both identifiers on create.
func (h *PatientHandler) Post(c *gin.Context) {
	var payload compat.PatientPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		statusError(c, "Invalid request body")
		return
	}

	req, err := compat.ParsePatientRequest(payload, h.defaultAshaID)
	if err != nil {
		metrics.RecordOutcome("patient", "rejected")
		statusError(c, err.Error())
		return
	}

	res, err := h.engine.Reconcile(c.Request.Context(), req)
	if err != nil {
		metrics.RecordOutcome("patient", "error")
		h.log.Warn("patient reconcile failed", zap.Error(err))
		statusError(c, reconcileMessage(err))
		return
	}
	metrics.RecordOutcome("patient", string(res.Outcome))

	switch res.Outcome {
	case reconcile.OutcomeCreated:
		c.JSON(http.StatusOK, gin.H{
			"success":   true,
			"status":    "success",
			"message":   "Patient created successfully",
			"id":        res.ServerID,
			"server_id": res.ServerID,
			"local_id":  res.LocalID,
			"data":      gin.H{"id": res.ServerID},
		})
	case reconcile.OutcomeUpdated:
		c.JSON(http.StatusOK, gin.H{"status": "success", "message": "Patient updated successfully"})
	case reconcile.OutcomeDeleted:
		c.JSON(http.StatusOK, gin.H{"status": "success", "message": "Patient deleted successfully"})
	}
}

func reconcileMessage(err error) string {
	var nf *reconcile.NotFoundError
	if errors.As(err, &nf) {
		return nf.Error()
	}
	var ve *compat.ValidationError
	if errors.As(err, &ve) {
		return ve.Error()
	}
	var se *reconcile.StoreError
	if errors.As(err, &se) {
		return "Error during " + se.Op
	}
	return err.Error()
}
