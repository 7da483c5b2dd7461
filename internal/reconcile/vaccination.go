package reconcile

import (
	"context"

	"go.uber.org/zap"

	"ashacare-backend/internal/compat"
	"ashacare-backend/internal/models"
)

// AddVaccination creates a dose record and returns its server id. The
// record arrives normalized: status defaulted to "Scheduled", sync marker
// set, given_date already subjected to the "Given" rule.
func (e *Engine) AddVaccination(ctx context.Context, req compat.AddVaccination) (uint, error) {
	ctx, cancel := e.bounded(ctx)
	defer cancel()

	rec := req.Record
	if err := e.store.CreateVaccination(ctx, &rec); err != nil {
		return 0, &StoreError{Op: "add vaccination", Err: err}
	}
	e.log.Info("vaccination added",
		zap.Uint("vaccination_id", rec.ID),
		zap.Uint("patient_id", rec.PatientID),
		zap.String("vaccine", rec.VaccineName))
	return rec.ID, nil
}

// UpdateStatus rewrites a dose's status and returns the updated row joined
// with the patient name. Any status string is accepted at any time; the
// only rule enforced is that given_date is written iff it was supplied and
// the new status is "Given". A stored given_date is never cleared.
func (e *Engine) UpdateStatus(ctx context.Context, req compat.UpdateVaccinationStatus) (*models.VaccinationWithPatient, error) {
	ctx, cancel := e.bounded(ctx)
	defer cancel()

	var givenDate *string
	if req.GivenDate != nil && req.Status == models.StatusGiven {
		givenDate = req.GivenDate
	}

	rows, err := e.store.UpdateVaccinationStatus(ctx, req.VaccinationID, req.Status, givenDate)
	if err != nil {
		return nil, &StoreError{Op: "update vaccination status", Err: err}
	}
	if rows == 0 {
		return nil, &NotFoundError{Entity: "vaccination", ID: req.VaccinationID}
	}

	row, err := e.store.GetVaccinationWithPatient(ctx, req.VaccinationID)
	if err != nil {
		return nil, &StoreError{Op: "fetch updated vaccination", Err: err}
	}
	e.log.Info("vaccination status updated",
		zap.Uint("vaccination_id", req.VaccinationID),
		zap.String("status", req.Status))
	return row, nil
}
