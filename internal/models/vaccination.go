package models

// Vaccination statuses with fixed meaning. The status column itself is
// caller-open: field workers record retroactive or corrective statuses
// ("Missed", "Cancelled", ...) that the server stores verbatim.
const (
	StatusScheduled = "Scheduled"
	StatusGiven     = "Given"
)

// SyncStatusSynced marks records created through the sync API.
const SyncStatusSynced = "SYNCED"

// Vaccination defines the structure for scheduled and administered doses.
// GivenDate stays nil until a status update lands on "Given"; it is never
// cleared afterwards.
type Vaccination struct {
	ID            uint    `json:"id" gorm:"primaryKey"`
	PatientID     uint    `json:"patient_id" gorm:"index"`
	AshaID        uint    `json:"asha_id" gorm:"index"`
	VaccineName   string  `json:"vaccine_name"`
	ScheduledDate string  `json:"scheduled_date" gorm:"index"`
	GivenDate     *string `json:"given_date"`
	Status        string  `json:"status" gorm:"default:'Scheduled'"`
	BatchNumber   string  `json:"batch_number"`
	SideEffects   string  `json:"side_effects"`
	Notes         string  `json:"notes"`
	SyncStatus    string  `json:"sync_status"`
	CreatedAt     string  `json:"created_at"`
	UpdatedAt     string  `json:"updated_at"`
}

// VaccinationWithPatient is a vaccination row annotated with the owning
// patient's display name, as returned by the list and update endpoints.
type VaccinationWithPatient struct {
	ID            uint    `json:"id"`
	PatientID     uint    `json:"patient_id"`
	PatientName   string  `json:"patient_name"`
	AshaID        uint    `json:"asha_id"`
	VaccineName   string  `json:"vaccine_name"`
	ScheduledDate string  `json:"scheduled_date"`
	GivenDate     *string `json:"given_date"`
	Status        string  `json:"status"`
	BatchNumber   string  `json:"batch_number"`
	SideEffects   string  `json:"side_effects"`
	Notes         string  `json:"notes"`
	SyncStatus    string  `json:"sync_status"`
	CreatedAt     string  `json:"created_at"`
	UpdatedAt     string  `json:"updated_at"`
}
