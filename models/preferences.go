package models

// PreferencesID is the fixed primary key of the singleton preferences row
const PreferencesID = 1

// Address is the postal address section of the personal details
type Address struct {
	Line1    string `json:"line1"`
	Line2    string `json:"line2,omitempty"`
	City     string `json:"city"`
	Postcode string `json:"postcode"`
	Country  string `json:"country"`
}

// PersonalInfo identifies the inspector on generated reports
type PersonalInfo struct {
	Name     string  `json:"name"`
	JobTitle string  `json:"job_title"`
	Email    string  `json:"email"`
	Phone    string  `json:"phone"`
	Company  string  `json:"company"`
	Address  Address `json:"address"`
}

// StorageSettings controls how captured photos are persisted locally
type StorageSettings struct {
	LocalPath          string  `json:"local_path"`
	AutoBackup         bool    `json:"auto_backup"`
	CompressionQuality float64 `json:"compression_quality"` // (0,1]; 1 disables compression
	BackupFrequency    string  `json:"backup_frequency"`    // "realtime", "hourly" or "daily"
}

// DisplaySettings holds UI presentation preferences stored on behalf of clients
type DisplaySettings struct {
	DefaultTextSize string `json:"default_text_size"`
	Theme           string `json:"theme"` // "light", "dark" or "system"
	AccentColor     string `json:"accent_color"`
}

// UserPreferences is the single per-installation configuration record. It is
// created with defaults on first read and only ever overwritten, never deleted
type UserPreferences struct {
	ID       int64           `json:"-" gorm:"primaryKey"`
	Personal PersonalInfo    `json:"personal" gorm:"serializer:json"`
	Storage  StorageSettings `json:"storage" gorm:"serializer:json"`
	Display  DisplaySettings `json:"display" gorm:"serializer:json"`

	UpdatedAt int64 `json:"updated_at" gorm:"autoUpdateTime"`
}

// TableName explicitly sets the table name for GORM.
func (UserPreferences) TableName() string {
	return "user_preferences"
}

// DefaultPreferences returns the installation defaults used until the user
// saves their own configuration
func DefaultPreferences() UserPreferences {
	return UserPreferences{
		ID: PreferencesID,
		Personal: PersonalInfo{
			Address: Address{},
		},
		Storage: StorageSettings{
			LocalPath:          "/photos",
			AutoBackup:         true,
			CompressionQuality: 0.8,
			BackupFrequency:    "realtime",
		},
		Display: DisplaySettings{
			DefaultTextSize: "xl",
			Theme:           "system",
			AccentColor:     "#FF8A3D",
		},
	}
}
