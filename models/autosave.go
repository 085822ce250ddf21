package models

// AutoSaveSnapshot is the periodically persisted in-progress inspection state
// used to resume a session after interruption. Snapshots are keyed by project
// so switching projects mid-session cannot clobber another project's state
type AutoSaveSnapshot struct {
	ProjectID    string  `json:"project_id" gorm:"primaryKey"`
	InspectionID string  `json:"inspection_id"`
	Photos       []Photo `json:"photos,omitempty" gorm:"serializer:json"`

	// in-progress UI step state
	CurrentStep     int    `json:"current_step"`
	CurrentCategory string `json:"current_category"`
	CurrentNote     string `json:"current_note"`
	CurrentPhoto    string `json:"current_photo"`

	UpdatedAt int64 `json:"updated_at" gorm:"autoUpdateTime:milli"`
}

// TableName explicitly sets the table name for GORM.
func (AutoSaveSnapshot) TableName() string {
	return "inspection_autosaves"
}
