package models

import (
	"time"

	"maternal-health-server/internal/risk"
)

// RiskAssessment is one computed risk classification for a patient.
// Rows are append-only; the patient's current classification is the row
// with the highest version. The unique (patient_id, version) index is
// the optimistic-concurrency point: two recomputations racing on the
// same prior version cannot both insert.
type RiskAssessment struct {
	BaseModel
	PatientID     string        `gorm:"size:36;uniqueIndex:idx_patient_version" json:"patientId"`
	Version       int           `gorm:"not null;uniqueIndex:idx_patient_version" json:"-"`
	Level         risk.Level    `gorm:"size:20;not null" json:"level"`
	Score         int           `gorm:"not null" json:"score"`
	Factors       []risk.Factor `gorm:"serializer:json" json:"contributingFactors"`
	ComputedAt    time.Time     `gorm:"not null" json:"computedAt"`
	PreviousLevel *risk.Level   `gorm:"size:20" json:"previousLevel,omitempty"`

	// Relations
	Patient Patient `gorm:"foreignKey:PatientID" json:"-"`
}
