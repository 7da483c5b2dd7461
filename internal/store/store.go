// Package store is the only layer that talks to the database. Every public
// method executes a single statement under the caller's context, so
// concurrent writers race at the statement level with last-write-wins
// semantics and no partial writes.
package store

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"ashacare-backend/internal/models"
	"ashacare-backend/internal/utils"
)

// Store wraps the gorm handle for the sync tables.
type Store struct {
	db *gorm.DB
}

func New(db *gorm.DB) *Store {
	return &Store{db: db}
}

// CreatePatient inserts a new patient row and fills in the assigned server
// id plus timestamps.
func (s *Store) CreatePatient(ctx context.Context, p *models.Patient) error {
	now := utils.NowStamp()
	p.CreatedAt = now
	p.UpdatedAt = now
	return s.db.WithContext(ctx).Create(p).Error
}

// ReplacePatient rewrites every mutable attribute of the row identified by
// p.ID with the values in p, returning the number of rows matched. The
// server id and created_at are never touched. Fields are written from an
// explicit map so zero values overwrite, keeping full-replace semantics.
func (s *Store) ReplacePatient(ctx context.Context, p *models.Patient) (int64, error) {
	res := s.db.WithContext(ctx).Model(&models.Patient{}).Where("id = ?", p.ID).Updates(map[string]any{
		"asha_id":          p.AshaID,
		"name":             p.Name,
		"age":              p.Age,
		"gender":           p.Gender,
		"phone":            p.Phone,
		"abha_id":          p.AbhaID,
		"address":          p.Address,
		"category":         p.Category,
		"blood_group":      p.BloodGroup,
		"is_high_risk":     p.IsHighRisk,
		"high_risk_reason": p.HighRiskReason,
		"photo_url":        p.PhotoURL,
		"sync_status":      p.SyncStatus,
		"updated_at":       utils.NowStamp(),
	})
	return res.RowsAffected, res.Error
}

// DeletePatient hard-deletes a patient row, returning the number of rows
// matched.
func (s *Store) DeletePatient(ctx context.Context, id uint) (int64, error) {
	res := s.db.WithContext(ctx).Delete(&models.Patient{}, id)
	return res.RowsAffected, res.Error
}

// GetPatient fetches one patient by server id. A missing row is a nil
// patient, not an error.
func (s *Store) GetPatient(ctx context.Context, id uint) (*models.Patient, error) {
	var p models.Patient
	err := s.db.WithContext(ctx).First(&p, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// ListPatientsByAsha returns all patients owned by a health worker.
func (s *Store) ListPatientsByAsha(ctx context.Context, ashaID uint) ([]models.Patient, error) {
	patients := []models.Patient{}
	err := s.db.WithContext(ctx).Where("asha_id = ?", ashaID).Order("id ASC").Find(&patients).Error
	return patients, err
}

// CountPatients reports the total number of patient rows.
func (s *Store) CountPatients(ctx context.Context) (int64, error) {
	var n int64
	err := s.db.WithContext(ctx).Model(&models.Patient{}).Count(&n).Error
	return n, err
}

// Ping verifies database connectivity.
func (s *Store) Ping(ctx context.Context) error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}
