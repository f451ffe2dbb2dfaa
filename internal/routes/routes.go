package routes

import (
	"maternal-health-server/internal/assessment"
	"maternal-health-server/internal/config"
	"maternal-health-server/internal/handlers"
	"maternal-health-server/internal/store"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// SetupRoutes configures the application routes.
func SetupRoutes(router *gin.Engine, db *gorm.DB, cfg *config.Config) {
	// The store backs both the read side of the recomputation pipeline
	// and the atomic assessment write; the coordinator is the single
	// recompute entry point shared by every handler that mutates a
	// risk factor.
	st := store.NewStore(db)
	coordinator := assessment.NewCoordinator(st, st, assessment.Config{
		UnderweightFallbackKg: cfg.Risk.UnderweightFallbackKg,
		MaxRetries:            cfg.Risk.RecomputeMaxRetries,
	})

	patientHandler := handlers.NewPatientHandler(db, coordinator)
	vitalSignHandler := handlers.NewVitalSignHandler(db, coordinator)
	assessmentHandler := handlers.NewAssessmentHandler(db, st, coordinator)

	api := router.Group("/api/v1")
	{
		patientRoutes := api.Group("/patients")
		{
			patientRoutes.POST("", patientHandler.CreatePatient)
			patientRoutes.GET("/:patientId", patientHandler.GetPatientByID)
			patientRoutes.PUT("/:patientId/obstetric-history", patientHandler.UpdateObstetricHistory)
			patientRoutes.GET("/:patientId/weight-gain-recommendation", patientHandler.GetWeightGainRecommendation)

			// Vital-sign recording; every write recomputes the risk level
			patientRoutes.POST("/:patientId/vitals", vitalSignHandler.RecordVitalSign)
			patientRoutes.GET("/:patientId/vitals", vitalSignHandler.ListVitalSigns)

			// Risk assessments
			patientRoutes.POST("/:patientId/assessments", assessmentHandler.RecomputeAssessment)
			patientRoutes.GET("/:patientId/assessments", assessmentHandler.ListAssessments)
			patientRoutes.GET("/:patientId/assessments/current", assessmentHandler.GetCurrentAssessment)
		}
	}

	// Simple health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "UP"})
	})
}
