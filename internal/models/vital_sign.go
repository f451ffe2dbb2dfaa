package models

import (
	"time"

	"maternal-health-server/internal/assessment"
)

// SignalSource records who produced a vital-sign reading.
type SignalSource string

const (
	SourceSelfReported SignalSource = "self_reported"
	SourceHomeVisit    SignalSource = "home_visit"
	SourceClinician    SignalSource = "clinician"
)

// VitalSignReading is a single timestamped clinical measurement.
// Readings are append-only: a correction is a newer reading, not an
// edit, so "latest per type" stays well defined.
type VitalSignReading struct {
	BaseModel
	PatientID  string                `gorm:"size:36;index:idx_patient_signal" json:"patientId"`
	SignalType assessment.SignalType `gorm:"size:40;index:idx_patient_signal" json:"signalType"`
	Value      float64               `gorm:"not null" json:"value"`
	RecordedAt time.Time             `gorm:"not null;index" json:"recordedAt"`
	Source     SignalSource          `gorm:"size:20;default:'clinician'" json:"source"`

	// Relations
	Patient Patient `gorm:"foreignKey:PatientID" json:"-"`
}
