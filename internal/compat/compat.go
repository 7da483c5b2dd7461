// Package compat normalizes client sync payloads onto the current schema.
//
// Offline clients run many app versions at once, so payloads may use a
// deprecated field name ("village" for "address"), omit optional fields, or
// encode booleans as 0/1. This package resolves all of that once at the
// boundary, producing a closed set of request kinds the reconciliation
// engine can dispatch on without re-inspecting the raw payload.
package compat

import (
	"fmt"
	"strings"

	"ashacare-backend/internal/models"
)

// ValidationError reports a payload that cannot be mapped onto the current
// schema: a missing mandatory field or an ambiguous request shape.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Reason
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Reason)
}

func missing(field string) *ValidationError {
	return &ValidationError{Field: field, Reason: "required field missing"}
}

// PatientPayload is the raw shape of a patient sync POST. Pointer fields
// distinguish "absent" from "zero" so defaults apply only to omitted keys.
type PatientPayload struct {
	Method         *string `json:"_method"`
	ServerID       *uint   `json:"server_id"`
	ID             *uint   `json:"id"`
	LocalID        *string `json:"local_id"`
	AshaID         *uint   `json:"asha_id"`
	Name           *string `json:"name"`
	Age            *int    `json:"age"`
	Gender         *string `json:"gender"`
	Phone          *string `json:"phone"`
	AbhaID         *string `json:"abha_id"`
	Address        *string `json:"address"`
	Village        *string `json:"village"` // deprecated alias for address
	Category       *string `json:"category"`
	BloodGroup     *string `json:"blood_group"`
	IsHighRisk     *Flag   `json:"is_high_risk"`
	HighRiskReason *string `json:"high_risk_reason"`
	PhotoURL       *string `json:"photo_url"`
}

// PatientRequest is one of CreatePatient, UpdatePatient or DeletePatient.
type PatientRequest interface {
	patientRequest()
}

// CreatePatient asks for a new server record. LocalID round-trips back to
// the client so it can link its offline row to the assigned server id.
type CreatePatient struct {
	LocalID string
	Record  models.Patient
}

// UpdatePatient replaces every mutable attribute of an existing record.
// Record carries the normalized full state, including compat defaults for
// fields the client omitted.
type UpdatePatient struct {
	ServerID uint
	Record   models.Patient
}

// DeletePatient removes a record by its server id.
type DeletePatient struct {
	ServerID uint
}

func (CreatePatient) patientRequest() {}
func (UpdatePatient) patientRequest() {}
func (DeletePatient) patientRequest() {}

// ParsePatientRequest decides once, at the boundary, which operation a
// patient POST means. Dispatch order: an explicit delete override wins,
// then an explicit update override or a present server id, then create.
// Unknown _method values are rejected rather than guessed at.
func ParsePatientRequest(p PatientPayload, defaultAshaID uint) (PatientRequest, error) {
	method := ""
	if p.Method != nil {
		method = strings.ToUpper(*p.Method)
	}

	switch method {
	case "DELETE":
		id := p.ServerID
		if id == nil {
			id = p.ID
		}
		if id == nil {
			return nil, missing("id")
		}
		return DeletePatient{ServerID: *id}, nil
	case "PUT":
		return parseUpdate(p, defaultAshaID)
	case "", "POST":
		if p.ServerID != nil {
			return parseUpdate(p, defaultAshaID)
		}
		rec, err := NormalizePatient(p, defaultAshaID)
		if err != nil {
			return nil, err
		}
		localID := ""
		if p.LocalID != nil {
			localID = *p.LocalID
		}
		return CreatePatient{LocalID: localID, Record: rec}, nil
	default:
		return nil, &ValidationError{Field: "_method", Reason: "unsupported method override " + method}
	}
}

func parseUpdate(p PatientPayload, defaultAshaID uint) (PatientRequest, error) {
	id := p.ServerID
	if id == nil {
		id = p.ID
	}
	if id == nil {
		return nil, missing("server_id")
	}
	rec, err := NormalizePatient(p, defaultAshaID)
	if err != nil {
		return nil, err
	}
	return UpdatePatient{ServerID: *id, Record: rec}, nil
}

// NormalizePatient applies alias fallbacks and declared defaults, yielding
// the full mutable state of a patient record. Name is the one mandatory
// field; everything else silently defaults. The updates are full-replace,
// so omitted fields end up at their defaults, never at stale stored values.
func NormalizePatient(p PatientPayload, defaultAshaID uint) (models.Patient, error) {
	if p.Name == nil || *p.Name == "" {
		return models.Patient{}, missing("name")
	}

	rec := models.Patient{
		AshaID:         defaultAshaID,
		Name:           *p.Name,
		Age:            intOr(p.Age, 0),
		Gender:         strOr(p.Gender, ""),
		Phone:          strOr(p.Phone, ""),
		AbhaID:         strOr(p.AbhaID, ""),
		Address:        strOr(p.Address, strOr(p.Village, "")),
		Category:       strOr(p.Category, ""),
		BloodGroup:     strOr(p.BloodGroup, ""),
		HighRiskReason: strOr(p.HighRiskReason, ""),
		PhotoURL:       strOr(p.PhotoURL, ""),
	}
	if p.AshaID != nil {
		rec.AshaID = *p.AshaID
	}
	if p.IsHighRisk != nil {
		rec.IsHighRisk = bool(*p.IsHighRisk)
	}
	return rec, nil
}

func strOr(s *string, def string) string {
	if s != nil {
		return *s
	}
	return def
}

func intOr(i *int, def int) int {
	if i != nil {
		return *i
	}
	return def
}
