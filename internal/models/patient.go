package models

// Patient defines the structure for patient records.
//
// ID is the server-assigned identifier and the only key used for updates
// and deletes. The client's local_id is never persisted; it is echoed back
// on create responses so the offline client can link its own record.
type Patient struct {
	ID             uint   `json:"id" gorm:"primaryKey"`
	AshaID         uint   `json:"asha_id" gorm:"index"`
	Name           string `json:"name" gorm:"index"`
	Age            int    `json:"age"`
	Gender         string `json:"gender"`
	Phone          string `json:"phone"`
	AbhaID         string `json:"abha_id"`
	Address        string `json:"address"` // canonical; "village" is accepted on input only
	Category       string `json:"category"`
	BloodGroup     string `json:"blood_group"`
	IsHighRisk     bool   `json:"is_high_risk"`
	HighRiskReason string `json:"high_risk_reason"`
	PhotoURL       string `json:"photo_url"`
	SyncStatus     string `json:"sync_status"`
	CreatedAt      string `json:"created_at"`
	UpdatedAt      string `json:"updated_at"`
}
