package handlers

import (
	"errors"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"maternal-health-server/internal/assessment"
	"maternal-health-server/internal/models"
	"maternal-health-server/internal/utils"
)

// VitalSignHandler handles vital-sign recording requests. Every write
// triggers a recomputation so the stored risk classification always
// reflects the latest known signals.
type VitalSignHandler struct {
	DB          *gorm.DB
	Coordinator *assessment.Coordinator
}

// NewVitalSignHandler creates a new VitalSignHandler.
func NewVitalSignHandler(db *gorm.DB, coordinator *assessment.Coordinator) *VitalSignHandler {
	return &VitalSignHandler{DB: db, Coordinator: coordinator}
}

// RecordVitalSignRequest represents the request body for recording one
// clinical measurement. Value is a pointer so that a legitimate zero
// reading is distinguishable from an omitted field.
type RecordVitalSignRequest struct {
	SignalType string   `json:"signalType" binding:"required,oneof=WEIGHT BLOOD_PRESSURE_SYSTOLIC BLOOD_PRESSURE_DIASTOLIC HEMOGLOBIN BLOOD_GLUCOSE"`
	Value      *float64 `json:"value" binding:"required,gte=0"`
	RecordedAt string   `json:"recordedAt"`
	Source     string   `json:"source" binding:"omitempty,oneof=self_reported home_visit clinician"`
}

// RecordVitalSign stores a new reading and returns the recomputed risk
// assessment alongside it.
func (h *VitalSignHandler) RecordVitalSign(c *gin.Context) {
	patientID, ok := parsePatientID(c)
	if !ok {
		return
	}

	var req RecordVitalSignRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}

	// Verify patient exists
	var patient models.Patient
	if err := h.DB.First(&patient, "id = ?", patientID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.NotFound(c, "Patient not found")
		} else {
			utils.InternalServerError(c, "Database error verifying patient: "+err.Error())
		}
		return
	}

	recordedAt := time.Now()
	if req.RecordedAt != "" {
		var err error
		recordedAt, err = time.Parse(time.RFC3339, req.RecordedAt)
		if err != nil {
			utils.BadRequest(c, "Invalid recordedAt format. Please use ISO 8601 format (YYYY-MM-DDTHH:MM:SSZ)")
			return
		}
	}

	source := models.SignalSource(req.Source)
	if source == "" {
		source = models.SourceClinician
	}

	reading := models.VitalSignReading{
		PatientID:  patientID,
		SignalType: assessment.SignalType(req.SignalType),
		Value:      *req.Value,
		RecordedAt: recordedAt,
		Source:     source,
	}

	if err := h.DB.Create(&reading).Error; err != nil {
		utils.InternalServerError(c, "Failed to record vital sign: "+err.Error())
		return
	}

	result, err := h.Coordinator.Recompute(c.Request.Context(), patientID)
	if err != nil {
		respondRecomputeError(c, err)
		return
	}

	utils.Created(c, "Vital sign recorded successfully", gin.H{
		"reading":    reading,
		"assessment": result,
	})
}

// ListVitalSigns fetches a patient's readings, newest first, optionally
// filtered by signal type.
func (h *VitalSignHandler) ListVitalSigns(c *gin.Context) {
	patientID, ok := parsePatientID(c)
	if !ok {
		return
	}

	query := h.DB.Where("patient_id = ?", patientID)
	if signalType := c.Query("type"); signalType != "" {
		query = query.Where("signal_type = ?", signalType)
	}

	var readings []models.VitalSignReading
	if err := query.Order("recorded_at desc").Find(&readings).Error; err != nil {
		utils.InternalServerError(c, "Failed to fetch vital signs: "+err.Error())
		return
	}

	utils.Success(c, "Vital signs fetched successfully", readings)
}
