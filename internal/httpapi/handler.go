package httpapi

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/nikhilraj/carepoint-backend/internal/analysis"
	"github.com/nikhilraj/carepoint-backend/internal/directory"
	"github.com/nikhilraj/carepoint-backend/internal/gemini"
)

// Analyzer runs the symptom pipeline.
type Analyzer interface {
	Run(ctx context.Context, in *analysis.Input) (analysis.Result, error)
	Models(ctx context.Context) ([]gemini.Model, error)
}

// Directory is the provider directory and session log. Both operations it
// backs are best-effort from the handler's point of view.
type Directory interface {
	FindDoctors(ctx context.Context, specialty string, lat, lng *float64) ([]directory.Doctor, error)
	ResolvePatient(ctx context.Context, authID string) (uuid.UUID, bool, error)
	InsertSession(ctx context.Context, rec directory.SessionRecord) error
}

// Handler holds the request handlers. Directory is nil when the database
// is disabled.
type Handler struct {
	Analyzer  Analyzer
	Directory Directory
}

// AnalyzeSymptoms is POST /api/analyze-symptoms. Control flow is strictly
// linear: validate, analyze, locate doctors, record session, respond. Only
// validation failures and total model exhaustion surface as errors; doctor
// lookup and session persistence degrade silently.
func (h *Handler) AnalyzeSymptoms(c *gin.Context) {
	var req analysis.SymptomRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid JSON body"})
		return
	}

	in, verr := req.Validate()
	if verr != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": verr.Message})
		return
	}

	result, err := h.Analyzer.Run(c.Request.Context(), in)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	doctors := h.findDoctors(c.Request.Context(), result, in)

	specialty := result.DoctorRecommendation()
	if specialty != "" {
		result["recommended_specialization"] = specialty
	} else {
		result["recommended_specialization"] = nil
	}
	result["recommended_doctors"] = doctors

	h.recordSession(c, in, result, doctors)

	c.JSON(http.StatusOK, result)
}

// findDoctors queries the directory for the recommended specialization.
// Any failure is logged and mapped to an empty match list.
func (h *Handler) findDoctors(ctx context.Context, result analysis.Result, in *analysis.Input) []directory.Doctor {
	specialty := result.DoctorRecommendation()
	if specialty == "" || h.Directory == nil {
		return []directory.Doctor{}
	}

	doctors, err := h.Directory.FindDoctors(ctx, specialty, in.Latitude, in.Longitude)
	if err != nil {
		log.Printf("error fetching doctors: %v", err)
		return []directory.Doctor{}
	}
	return doctors
}

// recordSession persists the interaction when a patient identity is
// attached to the request. Failures are logged and swallowed; the response
// is already final.
func (h *Handler) recordSession(c *gin.Context, in *analysis.Input, result analysis.Result, doctors []directory.Doctor) {
	if h.Directory == nil {
		return
	}
	subject := c.GetString(subjectKey)
	if subject == "" {
		return
	}

	ctx := c.Request.Context()
	patientID, found, err := h.Directory.ResolvePatient(ctx, subject)
	if err != nil {
		log.Printf("failed to resolve patient: %v", err)
		return
	}
	if !found {
		return
	}

	now := time.Now().UTC()
	rec := directory.SessionRecord{
		PatientID: patientID,
		Symptoms:  in.SymptomTokens,
		PersonalInfo: map[string]any{
			"age":    in.Age,
			"gender": orNil(in.Gender),
			"height": in.Height,
			"weight": in.Weight,
		},
		Location: map[string]any{
			"location":  orNil(in.Location),
			"latitude":  in.Latitude,
			"longitude": in.Longitude,
		},
		Analysis:  result,
		Doctors:   doctors,
		StartedAt: now,
		EndedAt:   now,
		CreatedAt: now,
	}
	if err := h.Directory.InsertSession(ctx, rec); err != nil {
		log.Printf("failed to insert symptom session: %v", err)
	}
}

// ListModels is GET /api/models, the helper endpoint listing
// generation-capable models.
func (h *Handler) ListModels(c *gin.Context) {
	models, err := h.Analyzer.Models(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	out := make([]gin.H, 0, len(models))
	for _, m := range models {
		out = append(out, gin.H{
			"name":         m.Name,
			"display_name": m.DisplayName,
			"description":  m.Description,
		})
	}
	c.JSON(http.StatusOK, gin.H{"available_models": out})
}

func orNil(s string) any {
	if s == "" {
		return nil
	}
	return s
}
