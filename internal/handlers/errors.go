package handlers

import (
	"errors"

	"github.com/gin-gonic/gin"

	"maternal-health-server/internal/assessment"
	"maternal-health-server/internal/risk"
	"maternal-health-server/internal/utils"
)

// respondRecomputeError maps the recomputation error taxonomy onto HTTP
// statuses. Nothing here ever downgrades a failure into a reassuring
// default classification.
func respondRecomputeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, assessment.ErrPatientNotFound):
		utils.NotFound(c, "Patient not found")
	case errors.Is(err, risk.ErrInvalidInput):
		utils.UnprocessableEntity(c, "Recorded risk factors are invalid: "+err.Error())
	case errors.Is(err, assessment.ErrConflict):
		utils.Conflict(c, "Concurrent recomputation conflict, please retry: "+err.Error())
	case errors.Is(err, assessment.ErrTransientStore):
		utils.ServiceUnavailable(c, "Storage temporarily unavailable, please retry: "+err.Error())
	default:
		utils.InternalServerError(c, "Failed to recompute risk assessment: "+err.Error())
	}
}
