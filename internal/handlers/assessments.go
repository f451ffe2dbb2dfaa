package handlers

import (
	"errors"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"maternal-health-server/internal/assessment"
	"maternal-health-server/internal/models"
	"maternal-health-server/internal/store"
	"maternal-health-server/internal/utils"
)

// AssessmentHandler handles risk assessment requests.
type AssessmentHandler struct {
	DB          *gorm.DB
	Store       *store.Store
	Coordinator *assessment.Coordinator
}

// NewAssessmentHandler creates a new AssessmentHandler.
func NewAssessmentHandler(db *gorm.DB, st *store.Store, coordinator *assessment.Coordinator) *AssessmentHandler {
	return &AssessmentHandler{DB: db, Store: st, Coordinator: coordinator}
}

// RecomputeAssessment handles an explicit re-assessment request.
func (h *AssessmentHandler) RecomputeAssessment(c *gin.Context) {
	patientID, ok := parsePatientID(c)
	if !ok {
		return
	}

	result, err := h.Coordinator.Recompute(c.Request.Context(), patientID)
	if err != nil {
		respondRecomputeError(c, err)
		return
	}

	utils.Success(c, "Risk assessment recomputed successfully", result)
}

// GetCurrentAssessment returns the patient's most recently computed
// classification.
func (h *AssessmentHandler) GetCurrentAssessment(c *gin.Context) {
	patientID, ok := parsePatientID(c)
	if !ok {
		return
	}

	current, err := h.Store.CurrentAssessment(c.Request.Context(), patientID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.NotFound(c, "No risk assessment has been computed for this patient yet")
		} else {
			utils.InternalServerError(c, "Failed to fetch current assessment: "+err.Error())
		}
		return
	}

	utils.Success(c, "Current risk assessment fetched successfully", current)
}

// ListAssessments returns the patient's assessment history, newest
// first, for auditing.
func (h *AssessmentHandler) ListAssessments(c *gin.Context) {
	patientID, ok := parsePatientID(c)
	if !ok {
		return
	}

	var history []models.RiskAssessment
	err := h.DB.Where("patient_id = ?", patientID).
		Order("version desc").
		Find(&history).Error
	if err != nil {
		utils.InternalServerError(c, "Failed to fetch assessment history: "+err.Error())
		return
	}

	utils.Success(c, "Assessment history fetched successfully", history)
}
