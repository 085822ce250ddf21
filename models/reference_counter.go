package models

// ReferenceCounter holds the per-project defect and risk counters backing
// reference-ID issuance. Counters are created lazily on first use, only ever
// incremented, and never deleted; removing a photo must not free its issued
// number for reuse
type ReferenceCounter struct {
	ProjectID     string `json:"project_id" gorm:"primaryKey"`
	DefectCounter int    `json:"defect_counter" gorm:"not null;default:0"`
	RiskCounter   int    `json:"risk_counter" gorm:"not null;default:0"`
}

// TableName explicitly sets the table name for GORM.
func (ReferenceCounter) TableName() string {
	return "reference_counters"
}
