package store

import (
	"context"
	"fmt"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"ashacare-backend/internal/database"
	"ashacare-backend/internal/models"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))
	return New(db)
}

func TestCreatePatient_AssignsServerID(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	first := models.Patient{Name: "Meena", AshaID: 1}
	require.NoError(t, s.CreatePatient(ctx, &first))
	assert.NotZero(t, first.ID)
	assert.NotEmpty(t, first.CreatedAt)
	assert.Equal(t, first.CreatedAt, first.UpdatedAt)

	second := models.Patient{Name: "Meena", AshaID: 1}
	require.NoError(t, s.CreatePatient(ctx, &second))
	assert.NotEqual(t, first.ID, second.ID, "every create gets a fresh id")
}

func TestReplacePatient_FullReplace(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	p := models.Patient{Name: "Meena", AshaID: 1, Phone: "9876500000", Address: "Rampur"}
	require.NoError(t, s.CreatePatient(ctx, &p))

	replacement := models.Patient{
		ID:     p.ID,
		Name:   "Meena Devi",
		AshaID: 1,
		// phone and address intentionally zero: full-replace must not keep
		// the previously stored values
	}
	rows, err := s.ReplacePatient(ctx, &replacement)
	require.NoError(t, err)
	assert.Equal(t, int64(1), rows)

	got, err := s.GetPatient(ctx, p.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "Meena Devi", got.Name)
	assert.Equal(t, "", got.Phone)
	assert.Equal(t, "", got.Address)
	assert.Equal(t, p.CreatedAt, got.CreatedAt, "created_at is immutable")
}

func TestReplacePatient_MissingRow(t *testing.T) {
	s := newTestStore(t)

	rows, err := s.ReplacePatient(context.Background(), &models.Patient{ID: 12345, Name: "Nobody"})
	require.NoError(t, err)
	assert.Zero(t, rows)
}

func TestDeletePatient(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	p := models.Patient{Name: "Meena", AshaID: 1}
	require.NoError(t, s.CreatePatient(ctx, &p))

	rows, err := s.DeletePatient(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), rows)

	got, err := s.GetPatient(ctx, p.ID)
	require.NoError(t, err)
	assert.Nil(t, got)

	rows, err = s.DeletePatient(ctx, p.ID)
	require.NoError(t, err)
	assert.Zero(t, rows)
}

func TestGetPatient_NotFoundIsNil(t *testing.T) {
	s := newTestStore(t)

	got, err := s.GetPatient(context.Background(), 404)
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestListPatientsByAsha(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	for _, p := range []models.Patient{
		{Name: "Meena", AshaID: 1},
		{Name: "Kavita", AshaID: 1},
		{Name: "Radha", AshaID: 2},
	} {
		rec := p
		require.NoError(t, s.CreatePatient(ctx, &rec))
	}

	got, err := s.ListPatientsByAsha(ctx, 1)
	require.NoError(t, err)
	require.Len(t, got, 2)

	empty, err := s.ListPatientsByAsha(ctx, 99)
	require.NoError(t, err)
	assert.Empty(t, empty)
}

func TestListVaccinations_OrderAndJoin(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	p := models.Patient{Name: "Meena", AshaID: 1}
	require.NoError(t, s.CreatePatient(ctx, &p))

	dates := []string{"2024-07-01", "2024-05-01", "2024-06-01"}
	for _, d := range dates {
		v := models.Vaccination{
			PatientID:     p.ID,
			AshaID:        1,
			VaccineName:   "OPV",
			ScheduledDate: d,
			Status:        models.StatusScheduled,
			SyncStatus:    models.SyncStatusSynced,
		}
		require.NoError(t, s.CreateVaccination(ctx, &v))
	}

	rows, err := s.ListVaccinationsByPatient(ctx, p.ID)
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, "2024-05-01", rows[0].ScheduledDate)
	assert.Equal(t, "2024-06-01", rows[1].ScheduledDate)
	assert.Equal(t, "2024-07-01", rows[2].ScheduledDate)
	for _, row := range rows {
		assert.Equal(t, "Meena", row.PatientName)
	}

	byAsha, err := s.ListVaccinationsByAsha(ctx, 1)
	require.NoError(t, err)
	assert.Len(t, byAsha, 3)

	none, err := s.ListVaccinationsByPatient(ctx, 999)
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestListVaccinations_TieBreakByID(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	p := models.Patient{Name: "Meena", AshaID: 1}
	require.NoError(t, s.CreatePatient(ctx, &p))

	var ids []uint
	for _, name := range []string{"BCG", "OPV", "DPT"} {
		v := models.Vaccination{
			PatientID:     p.ID,
			AshaID:        1,
			VaccineName:   name,
			ScheduledDate: "2024-06-01",
			Status:        models.StatusScheduled,
		}
		require.NoError(t, s.CreateVaccination(ctx, &v))
		ids = append(ids, v.ID)
	}

	rows, err := s.ListVaccinationsByPatient(ctx, p.ID)
	require.NoError(t, err)
	require.Len(t, rows, 3)
	for i, row := range rows {
		assert.Equal(t, ids[i], row.ID, "equal dates keep insertion order")
	}
}

func TestUpdateVaccinationStatus_ConditionalGivenDate(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	v := models.Vaccination{
		PatientID:     1,
		AshaID:        1,
		VaccineName:   "BCG",
		ScheduledDate: "2024-05-01",
		Status:        models.StatusScheduled,
	}
	require.NoError(t, s.CreateVaccination(ctx, &v))

	given := "2024-05-01"
	rows, err := s.UpdateVaccinationStatus(ctx, v.ID, models.StatusGiven, &given)
	require.NoError(t, err)
	assert.Equal(t, int64(1), rows)

	got, err := s.GetVaccinationWithPatient(ctx, v.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, models.StatusGiven, got.Status)
	require.NotNil(t, got.GivenDate)
	assert.Equal(t, given, *got.GivenDate)

	// nil given date leaves the stored value alone
	rows, err = s.UpdateVaccinationStatus(ctx, v.ID, "Missed", nil)
	require.NoError(t, err)
	assert.Equal(t, int64(1), rows)

	got, err = s.GetVaccinationWithPatient(ctx, v.ID)
	require.NoError(t, err)
	assert.Equal(t, "Missed", got.Status)
	require.NotNil(t, got.GivenDate)
	assert.Equal(t, given, *got.GivenDate)
}

func TestGetVaccinationWithPatient_OrphanRow(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	v := models.Vaccination{
		PatientID:     777, // no such patient
		AshaID:        1,
		VaccineName:   "BCG",
		ScheduledDate: "2024-05-01",
	}
	require.NoError(t, s.CreateVaccination(ctx, &v))

	got, err := s.GetVaccinationWithPatient(ctx, v.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "", got.PatientName)
}
