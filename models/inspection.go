package models

// inspection lifecycle states
const (
	StatusDraft     = "draft"
	StatusCompleted = "completed"
)

// Inspection is one session of site-photo capture tied to a project. Draft
// inspections live in the 'inspection_drafts' table until completed.
// CreatedAt/UpdatedAt are RFC3339 strings supplied by the caller and
// validated before persistence, so GORM's automatic tracking is disabled
type Inspection struct {
	ID        string  `json:"id" gorm:"primaryKey"`
	ProjectID string  `json:"project_id" gorm:"index;not null"`
	Status    string  `json:"status" gorm:"not null;default:draft"`
	Photos    []Photo `json:"photos" gorm:"serializer:json"`

	CreatedAt string `json:"created_at" gorm:"autoCreateTime:false"`
	UpdatedAt string `json:"updated_at" gorm:"autoUpdateTime:false"`

	DefectCounter int `json:"defect_counter"`
	RiskCounter   int `json:"risk_counter"`
}

// TableName explicitly sets the table name for GORM.
func (Inspection) TableName() string {
	return "inspection_drafts"
}
