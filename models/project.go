package models

// Project is a cached summary of a remote project record. The cache is
// replaced wholesale on each refresh and is purely a read-path convenience;
// losing it only forces a refetch
type Project struct {
	ID        string `json:"id" gorm:"primaryKey"`
	Name      string `json:"name" gorm:"not null"`
	Reference string `json:"reference"`
	Status    string `json:"status"` // Planning, In Progress, On Hold, Completed
	City      string `json:"city"`
	Thumbnail string `json:"thumbnail,omitempty"`

	InspectionNumber int     `json:"inspection_number"`
	LastInspectionAt *string `json:"last_inspection_at,omitempty"`

	CachedAt int64 `json:"cached_at" gorm:"autoUpdateTime"`
}

// TableName explicitly sets the table name for GORM.
func (Project) TableName() string {
	return "cached_projects"
}
