package assessment

import (
	"context"
	"errors"
	"math"
	"sync"
	"time"

	log "github.com/sirupsen/logrus"

	"maternal-health-server/internal/risk"
)

const coordinatorLogPrefix = "assessment"

// Defaults for the coordinator policy knobs. The underweight fallback
// threshold encodes a clinical judgment call, so it is overridable
// through Config rather than fixed.
const (
	DefaultUnderweightFallbackKg = 45.0
	DefaultMaxRetries            = 3
)

// Config carries the tunable policy of the coordinator. Zero values
// fall back to the defaults above.
type Config struct {
	// UnderweightFallbackKg is the direct weight threshold used as a
	// coarse underweight signal when the patient's height is unknown.
	UnderweightFallbackKg float64

	// MaxRetries bounds how often a full read-score-write cycle is
	// repeated after a transient failure or write conflict.
	MaxRetries int

	// Now supplies the reference time for age derivation and the
	// ComputedAt stamp. Defaults to time.Now.
	Now func() time.Time
}

// Coordinator keeps a patient's stored risk classification consistent
// with the latest known signals. It is the single recomputation entry
// point for every call site that mutates a relevant factor.
type Coordinator struct {
	signals SignalRepository
	results ResultStore
	cfg     Config
	locks   patientLocks
}

// NewCoordinator wires a coordinator over the given repositories.
func NewCoordinator(signals SignalRepository, results ResultStore, cfg Config) *Coordinator {
	if cfg.UnderweightFallbackKg <= 0 {
		cfg.UnderweightFallbackKg = DefaultUnderweightFallbackKg
	}
	if cfg.MaxRetries <= 0 {
		cfg.MaxRetries = DefaultMaxRetries
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	return &Coordinator{signals: signals, results: results, cfg: cfg}
}

// Recompute pulls the latest signals for the patient, scores them and
// persists the new classification. Recomputations for the same patient
// are serialized; different patients proceed in parallel. Transient
// store failures and write conflicts are retried a bounded number of
// times; ErrPatientNotFound and risk.ErrInvalidInput surface
// immediately.
func (c *Coordinator) Recompute(ctx context.Context, patientID string) (*Result, error) {
	mu := c.locks.forPatient(patientID)
	mu.Lock()
	defer mu.Unlock()

	var lastErr error
	for attempt := 0; attempt <= c.cfg.MaxRetries; attempt++ {
		res, err := c.recomputeOnce(ctx, patientID)
		if err == nil {
			c.logTransition(res)
			return res, nil
		}
		if !errors.Is(err, ErrTransientStore) && !errors.Is(err, ErrConflict) {
			return nil, err
		}
		lastErr = err
		log.WithFields(log.Fields{
			"prefix":     coordinatorLogPrefix,
			"patient_id": patientID,
			"attempt":    attempt + 1,
			"error":      err,
		}).Warn("recompute attempt failed, retrying")
	}
	return nil, lastErr
}

func (c *Coordinator) recomputeOnce(ctx context.Context, patientID string) (*Result, error) {
	core, err := c.signals.GetPatientCore(ctx, patientID)
	if err != nil {
		return nil, err
	}

	latest := make(map[SignalType]*SignalReading, len(AllSignalTypes))
	for _, st := range AllSignalTypes {
		reading, err := c.signals.GetLatestSignal(ctx, patientID, st)
		if err != nil {
			return nil, err
		}
		latest[st] = reading
	}

	now := c.cfg.Now()
	factors, err := c.assembleFactors(core, latest, now)
	if err != nil {
		return nil, err
	}

	assessed, err := risk.Assess(factors)
	if err != nil {
		return nil, err
	}

	res := &Result{
		PatientID:  patientID,
		Level:      assessed.Level,
		Score:      assessed.Score,
		Factors:    assessed.Factors,
		ComputedAt: now,
	}
	if err := c.results.Save(ctx, res); err != nil {
		return nil, err
	}
	return res, nil
}

// assembleFactors turns the patient core record and the latest signal
// readings into the engine's input. A missing optional signal yields an
// absent factor, never an error.
func (c *Coordinator) assembleFactors(core *PatientCore, latest map[SignalType]*SignalReading, now time.Time) (risk.Factors, error) {
	f := risk.Factors{
		Age:                         risk.AgeAt(core.DateOfBirth, now),
		HasChronicConditions:        len(core.ChronicConditions) > 0,
		HadAbnormalPregnancyHistory: core.HadAbnormalPregnancyHistory,
		PreviousCesareans:           core.PreviousCesareans,
		PreviousMiscarriages:        core.PreviousMiscarriages,
	}

	if weight := latest[SignalWeight]; weight != nil {
		if core.HeightCm != nil {
			bmi, err := risk.BMI(weight.Value, *core.HeightCm)
			if err != nil {
				return risk.Factors{}, err
			}
			f.Underweight = risk.IsUnderweight(bmi)
		} else {
			// Coarse approximation when height was never recorded.
			f.Underweight = weight.Value < c.cfg.UnderweightFallbackKg
			f.UnderweightApprox = f.Underweight
		}
	}

	// A blood pressure reading needs both components; an unpaired one
	// is treated as absent rather than padded with a fake zero.
	sys, dia := latest[SignalBPSystolic], latest[SignalBPDiastolic]
	if sys != nil && dia != nil {
		f.BloodPressure = &risk.BloodPressure{
			Systolic:  int(math.Round(sys.Value)),
			Diastolic: int(math.Round(dia.Value)),
		}
	}

	if hgb := latest[SignalHemoglobin]; hgb != nil {
		v := hgb.Value
		f.Hemoglobin = &v
	}
	if glucose := latest[SignalGlucose]; glucose != nil {
		v := glucose.Value
		f.BloodGlucose = &v
	}

	return f, nil
}

func (c *Coordinator) logTransition(res *Result) {
	fields := log.Fields{
		"prefix":     coordinatorLogPrefix,
		"patient_id": res.PatientID,
		"level":      res.Level,
		"score":      res.Score,
	}
	if res.PreviousLevel != nil && res.Level != *res.PreviousLevel {
		fields["previous_level"] = *res.PreviousLevel
		log.WithFields(fields).Info("risk level changed")
		return
	}
	log.WithFields(fields).Debug("risk level recomputed")
}

// patientLocks hands out one mutex per patient so that concurrent
// recomputations for the same patient serialize while different
// patients stay independent.
type patientLocks struct {
	mu    sync.Mutex
	byKey map[string]*sync.Mutex
}

func (p *patientLocks) forPatient(patientID string) *sync.Mutex {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.byKey == nil {
		p.byKey = make(map[string]*sync.Mutex)
	}
	mu, ok := p.byKey[patientID]
	if !ok {
		mu = &sync.Mutex{}
		p.byKey[patientID] = mu
	}
	return mu
}
