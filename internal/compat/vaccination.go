package compat

import (
	"ashacare-backend/internal/models"
)

// Vaccination POST actions.
const (
	ActionAddVaccination = "add_vaccination"
	ActionUpdateStatus   = "update_status"
)

// VaccinationPayload is the raw shape of a vaccination sync POST.
type VaccinationPayload struct {
	Action        *string `json:"action"`
	VaccinationID *uint   `json:"vaccination_id"`
	PatientID     *uint   `json:"patient_id"`
	AshaID        *uint   `json:"asha_id"`
	VaccineName   *string `json:"vaccine_name"`
	ScheduledDate *string `json:"scheduled_date"`
	GivenDate     *string `json:"given_date"`
	Status        *string `json:"status"`
	BatchNumber   *string `json:"batch_number"`
	SideEffects   *string `json:"side_effects"`
	Notes         *string `json:"notes"`
}

// VaccinationRequest is either AddVaccination or UpdateVaccinationStatus.
type VaccinationRequest interface {
	vaccinationRequest()
}

// AddVaccination creates a new dose record for a patient.
type AddVaccination struct {
	Record models.Vaccination
}

// UpdateVaccinationStatus rewrites a dose's status. GivenDate is only
// persisted when the new status is "Given"; the stored value is otherwise
// left untouched.
type UpdateVaccinationStatus struct {
	VaccinationID uint
	Status        string
	GivenDate     *string
}

func (AddVaccination) vaccinationRequest()          {}
func (UpdateVaccinationStatus) vaccinationRequest() {}

// ParseVaccinationRequest resolves the action for a vaccination POST. An
// explicit action field wins; otherwise a present vaccination_id means a
// status update and a complete creation triple means an add. Anything else
// is ambiguous and rejected.
func ParseVaccinationRequest(p VaccinationPayload) (VaccinationRequest, error) {
	action := strOr(p.Action, "")
	if action == "" {
		switch {
		case p.VaccinationID != nil:
			action = ActionUpdateStatus
		case p.PatientID != nil && p.VaccineName != nil && p.ScheduledDate != nil:
			action = ActionAddVaccination
		default:
			return nil, &ValidationError{Field: "action", Reason: "cannot infer action from payload"}
		}
	}

	switch action {
	case ActionUpdateStatus:
		if p.VaccinationID == nil {
			return nil, missing("vaccination_id")
		}
		if p.Status == nil || *p.Status == "" {
			return nil, missing("status")
		}
		return UpdateVaccinationStatus{
			VaccinationID: *p.VaccinationID,
			Status:        *p.Status,
			GivenDate:     p.GivenDate,
		}, nil
	case ActionAddVaccination:
		return parseAddVaccination(p)
	default:
		return nil, &ValidationError{Field: "action", Reason: "unknown action " + action}
	}
}

func parseAddVaccination(p VaccinationPayload) (VaccinationRequest, error) {
	switch {
	case p.PatientID == nil:
		return nil, missing("patient_id")
	case p.VaccineName == nil || *p.VaccineName == "":
		return nil, missing("vaccine_name")
	case p.ScheduledDate == nil || *p.ScheduledDate == "":
		return nil, missing("scheduled_date")
	case p.AshaID == nil:
		return nil, missing("asha_id")
	}

	rec := models.Vaccination{
		PatientID:     *p.PatientID,
		AshaID:        *p.AshaID,
		VaccineName:   *p.VaccineName,
		ScheduledDate: *p.ScheduledDate,
		Status:        strOr(p.Status, models.StatusScheduled),
		BatchNumber:   strOr(p.BatchNumber, ""),
		SideEffects:   strOr(p.SideEffects, ""),
		Notes:         strOr(p.Notes, ""),
		SyncStatus:    models.SyncStatusSynced,
	}
	// given_date only ever accompanies an administered dose
	if p.GivenDate != nil && rec.Status == models.StatusGiven {
		rec.GivenDate = p.GivenDate
	}
	return AddVaccination{Record: rec}, nil
}
