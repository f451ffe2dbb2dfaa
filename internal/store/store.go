package store

import (
	"context"
	"errors"
	"fmt"

	log "github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"maternal-health-server/internal/assessment"
	"maternal-health-server/internal/models"
)

const storeLogPrefix = "store"

// Store is the gorm-backed persistence layer behind the recomputation
// pipeline. It implements assessment.SignalRepository and
// assessment.ResultStore.
type Store struct {
	db *gorm.DB
}

// NewStore creates a Store over an initialized database handle.
func NewStore(db *gorm.DB) *Store {
	return &Store{db: db}
}

// GetPatientCore loads the demographic/history record for one patient.
func (s *Store) GetPatientCore(ctx context.Context, patientID string) (*assessment.PatientCore, error) {
	var patient models.Patient
	if err := s.db.WithContext(ctx).First(&patient, "id = ?", patientID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: patient %s", assessment.ErrPatientNotFound, patientID)
		}
		return nil, fmt.Errorf("%w: load patient core: %v", assessment.ErrTransientStore, err)
	}

	return &assessment.PatientCore{
		DateOfBirth:                 patient.DateOfBirth,
		HeightCm:                    patient.HeightCm,
		ChronicConditions:           patient.ChronicConditions,
		HadAbnormalPregnancyHistory: patient.HadAbnormalPregnancyHistory,
		PreviousCesareans:           patient.PreviousCesareans,
		PreviousMiscarriages:        patient.PreviousMiscarriages,
	}, nil
}

// GetLatestSignal returns the reading with the newest recorded-at
// timestamp for one signal type, or (nil, nil) when the patient has no
// reading of that type at all.
func (s *Store) GetLatestSignal(ctx context.Context, patientID string, signalType assessment.SignalType) (*assessment.SignalReading, error) {
	var reading models.VitalSignReading
	err := s.db.WithContext(ctx).
		Where("patient_id = ? AND signal_type = ?", patientID, signalType).
		Order("recorded_at DESC").
		First(&reading).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("%w: load latest %s: %v", assessment.ErrTransientStore, signalType, err)
	}
	return &assessment.SignalReading{Value: reading.Value, RecordedAt: reading.RecordedAt}, nil
}

// Save appends a new assessment as the patient's current classification
// inside one transaction: the prior level is read, the version is
// advanced, and the unique (patient_id, version) index turns a lost
// race into assessment.ErrConflict for the coordinator to retry.
func (s *Store) Save(ctx context.Context, res *assessment.Result) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var prior models.RiskAssessment
		version := 1
		err := tx.Where("patient_id = ?", res.PatientID).
			Order("version DESC").
			First(&prior).Error
		switch {
		case err == nil:
			level := prior.Level
			res.PreviousLevel = &level
			version = prior.Version + 1
		case errors.Is(err, gorm.ErrRecordNotFound):
			res.PreviousLevel = nil
		default:
			return fmt.Errorf("%w: load prior assessment: %v", assessment.ErrTransientStore, err)
		}

		record := models.RiskAssessment{
			PatientID:     res.PatientID,
			Version:       version,
			Level:         res.Level,
			Score:         res.Score,
			Factors:       res.Factors,
			ComputedAt:    res.ComputedAt,
			PreviousLevel: res.PreviousLevel,
		}
		if err := tx.Create(&record).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return fmt.Errorf("%w: assessment version %d for patient %s already written", assessment.ErrConflict, version, res.PatientID)
			}
			return fmt.Errorf("%w: save assessment: %v", assessment.ErrTransientStore, err)
		}
		return nil
	})
	if err != nil {
		log.WithFields(log.Fields{
			"prefix":     storeLogPrefix,
			"patient_id": res.PatientID,
			"error":      err,
		}).Warn("save assessment failed")
		return err
	}
	return nil
}

// CurrentAssessment returns the patient's most recently computed
// classification, or gorm.ErrRecordNotFound when none exists yet.
func (s *Store) CurrentAssessment(ctx context.Context, patientID string) (*models.RiskAssessment, error) {
	var current models.RiskAssessment
	err := s.db.WithContext(ctx).
		Where("patient_id = ?", patientID).
		Order("version DESC").
		First(&current).Error
	if err != nil {
		return nil, err
	}
	return &current, nil
}
