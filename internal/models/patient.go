package models

import (
	"time"
)

// Patient represents an expectant mother under care, carrying the
// demographic and obstetric-history record risk assessments start from.
type Patient struct {
	BaseModel
	FirstName   string    `gorm:"size:100" json:"firstName"`
	LastName    string    `gorm:"size:100" json:"lastName"`
	DateOfBirth time.Time `gorm:"not null" json:"dateOfBirth"`

	// HeightCm and PrePregnancyWeightKg are optional: nil means the
	// measurement was never recorded, which is distinct from zero.
	HeightCm             *float64 `json:"heightCm,omitempty"`
	PrePregnancyWeightKg *float64 `json:"prePregnancyWeightKg,omitempty"`

	ChronicConditions           []string `gorm:"serializer:json" json:"chronicConditions"`
	HadAbnormalPregnancyHistory bool     `json:"hadAbnormalPregnancyHistory"`
	PreviousCesareans           int      `gorm:"default:0" json:"previousCesareans"`
	PreviousMiscarriages        int      `gorm:"default:0" json:"previousMiscarriages"`

	// Relations (not always preloaded)
	VitalSigns  []VitalSignReading `gorm:"foreignKey:PatientID" json:"-"`
	Assessments []RiskAssessment   `gorm:"foreignKey:PatientID" json:"-"`
}
