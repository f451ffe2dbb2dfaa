package handlers

import (
	"errors"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"maternal-health-server/internal/assessment"
	"maternal-health-server/internal/models"
	"maternal-health-server/internal/risk"
	"maternal-health-server/internal/utils"
)

// PatientHandler handles patient record requests.
type PatientHandler struct {
	DB          *gorm.DB
	Coordinator *assessment.Coordinator
}

// NewPatientHandler creates a new PatientHandler.
func NewPatientHandler(db *gorm.DB, coordinator *assessment.Coordinator) *PatientHandler {
	return &PatientHandler{DB: db, Coordinator: coordinator}
}

// CreatePatientRequest represents the request body for registering a patient.
type CreatePatientRequest struct {
	FirstName                   string   `json:"firstName" binding:"required"`
	LastName                    string   `json:"lastName" binding:"required"`
	DateOfBirth                 string   `json:"dateOfBirth" binding:"required"`
	HeightCm                    *float64 `json:"heightCm" binding:"omitempty,gt=0"`
	PrePregnancyWeightKg        *float64 `json:"prePregnancyWeightKg" binding:"omitempty,gt=0"`
	ChronicConditions           []string `json:"chronicConditions"`
	HadAbnormalPregnancyHistory bool     `json:"hadAbnormalPregnancyHistory"`
	PreviousCesareans           int      `json:"previousCesareans" binding:"gte=0"`
	PreviousMiscarriages        int      `json:"previousMiscarriages" binding:"gte=0"`
}

// CreatePatient registers a patient and computes her initial risk
// classification.
func (h *PatientHandler) CreatePatient(c *gin.Context) {
	var req CreatePatientRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}

	dob, ok := parseDateOfBirth(c, req.DateOfBirth)
	if !ok {
		return
	}

	patient := models.Patient{
		FirstName:                   req.FirstName,
		LastName:                    req.LastName,
		DateOfBirth:                 dob,
		HeightCm:                    req.HeightCm,
		PrePregnancyWeightKg:        req.PrePregnancyWeightKg,
		ChronicConditions:           req.ChronicConditions,
		HadAbnormalPregnancyHistory: req.HadAbnormalPregnancyHistory,
		PreviousCesareans:           req.PreviousCesareans,
		PreviousMiscarriages:        req.PreviousMiscarriages,
	}

	if err := h.DB.Create(&patient).Error; err != nil {
		utils.InternalServerError(c, "Failed to create patient: "+err.Error())
		return
	}

	result, err := h.Coordinator.Recompute(c.Request.Context(), patient.ID)
	if err != nil {
		respondRecomputeError(c, err)
		return
	}

	utils.Created(c, "Patient registered successfully", gin.H{
		"patient":    patient,
		"assessment": result,
	})
}

// GetPatientByID fetches a single patient record.
func (h *PatientHandler) GetPatientByID(c *gin.Context) {
	patientID, ok := parsePatientID(c)
	if !ok {
		return
	}

	var patient models.Patient
	if err := h.DB.First(&patient, "id = ?", patientID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.NotFound(c, "Patient not found")
		} else {
			utils.InternalServerError(c, "Database error: "+err.Error())
		}
		return
	}

	utils.Success(c, "Patient fetched successfully", patient)
}

// UpdateObstetricHistoryRequest represents the request body for editing
// the obstetric/chronic-condition history. All fields are optional;
// absent fields keep their stored values.
type UpdateObstetricHistoryRequest struct {
	HeightCm                    *float64  `json:"heightCm" binding:"omitempty,gt=0"`
	PrePregnancyWeightKg        *float64  `json:"prePregnancyWeightKg" binding:"omitempty,gt=0"`
	ChronicConditions           *[]string `json:"chronicConditions"`
	HadAbnormalPregnancyHistory *bool     `json:"hadAbnormalPregnancyHistory"`
	PreviousCesareans           *int      `json:"previousCesareans" binding:"omitempty,gte=0"`
	PreviousMiscarriages        *int      `json:"previousMiscarriages" binding:"omitempty,gte=0"`
}

// UpdateObstetricHistory edits the history record and recomputes the
// risk classification, since every field here is a risk factor.
func (h *PatientHandler) UpdateObstetricHistory(c *gin.Context) {
	patientID, ok := parsePatientID(c)
	if !ok {
		return
	}

	var req UpdateObstetricHistoryRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}

	var patient models.Patient
	if err := h.DB.First(&patient, "id = ?", patientID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.NotFound(c, "Patient not found")
		} else {
			utils.InternalServerError(c, "Database error: "+err.Error())
		}
		return
	}

	// Apply updates
	if req.HeightCm != nil {
		patient.HeightCm = req.HeightCm
	}
	if req.PrePregnancyWeightKg != nil {
		patient.PrePregnancyWeightKg = req.PrePregnancyWeightKg
	}
	if req.ChronicConditions != nil {
		patient.ChronicConditions = *req.ChronicConditions
	}
	if req.HadAbnormalPregnancyHistory != nil {
		patient.HadAbnormalPregnancyHistory = *req.HadAbnormalPregnancyHistory
	}
	if req.PreviousCesareans != nil {
		patient.PreviousCesareans = *req.PreviousCesareans
	}
	if req.PreviousMiscarriages != nil {
		patient.PreviousMiscarriages = *req.PreviousMiscarriages
	}

	if err := h.DB.Save(&patient).Error; err != nil {
		utils.InternalServerError(c, "Failed to update obstetric history: "+err.Error())
		return
	}

	result, err := h.Coordinator.Recompute(c.Request.Context(), patient.ID)
	if err != nil {
		respondRecomputeError(c, err)
		return
	}

	utils.Success(c, "Obstetric history updated successfully", gin.H{
		"patient":    patient,
		"assessment": result,
	})
}

// GetWeightGainRecommendation returns the advised total pregnancy
// weight gain for the patient's pre-pregnancy BMI band.
func (h *PatientHandler) GetWeightGainRecommendation(c *gin.Context) {
	patientID, ok := parsePatientID(c)
	if !ok {
		return
	}

	var patient models.Patient
	if err := h.DB.First(&patient, "id = ?", patientID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.NotFound(c, "Patient not found")
		} else {
			utils.InternalServerError(c, "Database error: "+err.Error())
		}
		return
	}

	if patient.PrePregnancyWeightKg == nil || patient.HeightCm == nil {
		utils.UnprocessableEntity(c, "Pre-pregnancy weight and height must be recorded before a recommendation can be computed")
		return
	}

	bmi, err := risk.BMI(*patient.PrePregnancyWeightKg, *patient.HeightCm)
	if err != nil {
		utils.UnprocessableEntity(c, "Stored measurements are invalid: "+err.Error())
		return
	}

	minKg, maxKg := risk.RecommendedWeightGainRange(bmi)
	utils.Success(c, "Weight gain recommendation computed", gin.H{
		"prePregnancyBmi": bmi,
		"bmiCategory":     risk.BMICategoryOf(bmi),
		"minKg":           minKg,
		"maxKg":           maxKg,
	})
}

// parsePatientID validates the :patientId path parameter.
func parsePatientID(c *gin.Context) (string, bool) {
	patientIDStr := c.Param("patientId")
	if _, err := uuid.Parse(patientIDStr); err != nil {
		utils.BadRequest(c, "Invalid Patient ID format: "+patientIDStr)
		return "", false
	}
	return patientIDStr, true
}

// parseDateOfBirth accepts a plain date or a full RFC 3339 timestamp
// and rejects dates in the future.
func parseDateOfBirth(c *gin.Context, raw string) (time.Time, bool) {
	dob, err := time.Parse("2006-01-02", raw)
	if err != nil {
		dob, err = time.Parse(time.RFC3339, raw)
	}
	if err != nil {
		utils.BadRequest(c, "Invalid dateOfBirth format. Please use YYYY-MM-DD or ISO 8601")
		return time.Time{}, false
	}
	if dob.After(time.Now()) {
		utils.BadRequest(c, "dateOfBirth must be in the past")
		return time.Time{}, false
	}
	return dob, true
}
