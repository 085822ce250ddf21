package models

// photo categories recognised by the capture flow
const (
	CategoryDefect   = "Defect"
	CategoryRisk     = "Risk"
	CategoryOverview = "Overview"
)

// GPSLocation is the device position recorded at capture time
type GPSLocation struct {
	Latitude  float64  `json:"latitude"`
	Longitude float64  `json:"longitude"`
	Altitude  *float64 `json:"altitude"` // null when the device cannot resolve altitude
}

// Compass is the heading recorded at capture time. Direction is one of the
// 8 compass points (N, NE, E, SE, S, SW, W, NW); Degrees is in [0, 360)
type Compass struct {
	Direction string  `json:"direction"`
	Degrees   float64 `json:"degrees"`
}

// Annotation is a single vector overlay drawn on a photo. Arrows carry a
// flat list of polyline points; rectangles carry x/y/width/height
type Annotation struct {
	ID     string    `json:"id"`
	Type   string    `json:"type"` // "arrow" or "rectangle"
	Points []float64 `json:"points,omitempty"`
	X      *float64  `json:"x,omitempty"`
	Y      *float64  `json:"y,omitempty"`
	Width  *float64  `json:"width,omitempty"`
	Height *float64  `json:"height,omitempty"`
	Color  string    `json:"color"`
}

// Photo represents one captured site image with its metadata. It corresponds
// to the 'photos' table, keyed by (project_id, id)
type Photo struct {
	ID        string `json:"id" gorm:"primaryKey"`
	ProjectID string `json:"project_id" gorm:"primaryKey"`
	URI       string `json:"uri" gorm:"not null"` // inline data URI or external reference

	Category    string  `json:"category" gorm:"not null"`
	ReferenceID *string `json:"reference_id,omitempty"` // e.g. DEF-2024-001; assigned once, never changed
	Notes       string  `json:"notes"`

	GPSLocation GPSLocation  `json:"gps_location" gorm:"serializer:json"`
	Compass     *Compass     `json:"compass,omitempty" gorm:"serializer:json"`
	Annotations []Annotation `json:"annotations,omitempty" gorm:"serializer:json"`

	Timestamp string `json:"timestamp" gorm:"not null;index"` // RFC3339 capture time, immutable
}

// TableName explicitly sets the table name for GORM.
func (Photo) TableName() string {
	return "photos"
}

// NeedsReferenceID reports whether the photo's category participates in
// reference-ID issuance and no ID has been assigned yet
func (p *Photo) NeedsReferenceID() bool {
	if p.Category != CategoryDefect && p.Category != CategoryRisk {
		return false
	}
	return p.ReferenceID == nil || *p.ReferenceID == ""
}
