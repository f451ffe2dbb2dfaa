package assessment

import (
	"context"
	"errors"
	"time"

	"maternal-health-server/internal/risk"
)

// Error taxonomy of the recomputation pipeline. The coordinator retries
// only ErrTransientStore and ErrConflict; ErrPatientNotFound and
// risk.ErrInvalidInput always surface to the caller unchanged.
var (
	ErrPatientNotFound = errors.New("patient not found")
	ErrTransientStore  = errors.New("transient store failure")
	ErrConflict        = errors.New("concurrent recomputation conflict")
)

// SignalType identifies one kind of timestamped clinical measurement.
type SignalType string

const (
	SignalWeight      SignalType = "WEIGHT"
	SignalBPSystolic  SignalType = "BLOOD_PRESSURE_SYSTOLIC"
	SignalBPDiastolic SignalType = "BLOOD_PRESSURE_DIASTOLIC"
	SignalHemoglobin  SignalType = "HEMOGLOBIN"
	SignalGlucose     SignalType = "BLOOD_GLUCOSE"
)

// AllSignalTypes lists every signal type the coordinator pulls when
// assembling risk factors.
var AllSignalTypes = []SignalType{
	SignalWeight,
	SignalBPSystolic,
	SignalBPDiastolic,
	SignalHemoglobin,
	SignalGlucose,
}

// PatientCore is the demographic and obstetric-history record a
// recomputation starts from.
type PatientCore struct {
	DateOfBirth                 time.Time
	HeightCm                    *float64
	ChronicConditions           []string
	HadAbnormalPregnancyHistory bool
	PreviousCesareans           int
	PreviousMiscarriages        int
}

// SignalReading is the most recent measurement of one signal type.
type SignalReading struct {
	Value      float64
	RecordedAt time.Time
}

// SignalRepository is the read-only view over a patient's clinical
// signals, implemented by the persistence layer.
type SignalRepository interface {
	// GetPatientCore returns ErrPatientNotFound when the patient does
	// not exist.
	GetPatientCore(ctx context.Context, patientID string) (*PatientCore, error)

	// GetLatestSignal returns the reading with the latest recorded-at
	// timestamp for one signal type, independent of the other types.
	// A (nil, nil) return means no reading of that type was ever
	// recorded, which is not an error.
	GetLatestSignal(ctx context.Context, patientID string, signalType SignalType) (*SignalReading, error)
}

// Result is the persisted artifact of one recomputation. It supersedes
// the previous result for the patient; PreviousLevel carries the
// classification it replaced so alerting collaborators can detect a
// transition.
type Result struct {
	PatientID     string        `json:"patientId"`
	Level         risk.Level    `json:"level"`
	Score         int           `json:"score"`
	Factors       []risk.Factor `json:"contributingFactors"`
	ComputedAt    time.Time     `json:"computedAt"`
	PreviousLevel *risk.Level   `json:"previousLevel,omitempty"`
}

// ResultStore persists assessment results. Save must read the prior
// level and write the new result atomically with respect to concurrent
// recomputations for the same patient, filling in res.PreviousLevel
// and returning ErrConflict when a concurrent writer won the race.
type ResultStore interface {
	Save(ctx context.Context, res *Result) error
}
