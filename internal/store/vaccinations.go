package store

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"ashacare-backend/internal/models"
	"ashacare-backend/internal/utils"
)

const vaccinationColumns = "vaccinations.*, COALESCE(patients.name, '') AS patient_name"

// CreateVaccination inserts a new dose row and fills in the assigned id
// plus timestamps.
func (s *Store) CreateVaccination(ctx context.Context, v *models.Vaccination) error {
	now := utils.NowStamp()
	v.CreatedAt = now
	v.UpdatedAt = now
	return s.db.WithContext(ctx).Create(v).Error
}

// UpdateVaccinationStatus rewrites status and updated_at for one dose in a
// single statement, returning the number of rows matched. given_date is
// included only when non-nil; callers decide that per the "Given" rule, and
// a stored given_date is never cleared here.
func (s *Store) UpdateVaccinationStatus(ctx context.Context, id uint, status string, givenDate *string) (int64, error) {
	values := map[string]any{
		"status":     status,
		"updated_at": utils.NowStamp(),
	}
	if givenDate != nil {
		values["given_date"] = *givenDate
	}
	res := s.db.WithContext(ctx).Model(&models.Vaccination{}).Where("id = ?", id).Updates(values)
	return res.RowsAffected, res.Error
}

// GetVaccinationWithPatient fetches one dose joined with its patient's
// display name. A missing row is nil, not an error.
func (s *Store) GetVaccinationWithPatient(ctx context.Context, id uint) (*models.VaccinationWithPatient, error) {
	var row models.VaccinationWithPatient
	err := s.joined(ctx).Where("vaccinations.id = ?", id).Take(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &row, nil
}

// ListVaccinationsByAsha returns a worker's doses joined with patient
// names, ordered by scheduled date.
func (s *Store) ListVaccinationsByAsha(ctx context.Context, ashaID uint) ([]models.VaccinationWithPatient, error) {
	rows := []models.VaccinationWithPatient{}
	err := s.joined(ctx).Where("vaccinations.asha_id = ?", ashaID).
		Order("vaccinations.scheduled_date ASC, vaccinations.id ASC").
		Find(&rows).Error
	return rows, err
}

// ListVaccinationsByPatient returns a patient's doses joined with the
// patient name, ordered by scheduled date.
func (s *Store) ListVaccinationsByPatient(ctx context.Context, patientID uint) ([]models.VaccinationWithPatient, error) {
	rows := []models.VaccinationWithPatient{}
	err := s.joined(ctx).Where("vaccinations.patient_id = ?", patientID).
		Order("vaccinations.scheduled_date ASC, vaccinations.id ASC").
		Find(&rows).Error
	return rows, err
}

func (s *Store) joined(ctx context.Context) *gorm.DB {
	return s.db.WithContext(ctx).
		Table("vaccinations").
		Select(vaccinationColumns).
		Joins("LEFT JOIN patients ON vaccinations.patient_id = patients.id")
}
