package api

import (
	stderrors "errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/ZanzyTHEbar/flowdesk-ml/internal/errors"
	"github.com/ZanzyTHEbar/flowdesk-ml/internal/monitoring"
	"github.com/ZanzyTHEbar/flowdesk-ml/internal/scoring"
	"github.com/ZanzyTHEbar/flowdesk-ml/internal/types"
)

// MLHandler serves the scoring endpoints. It owns no state beyond the shared
// read-only scoring context.
type MLHandler struct {
	services *scoring.Services
	logger   *monitoring.Logger
}

func NewMLHandler(services *scoring.Services, logger *monitoring.Logger) *MLHandler {
	return &MLHandler{services: services, logger: logger}
}

// PredictRisk godoc
// @Summary      Predict task completion risk
// @Description  Classifies a task into a risk level and reports the class probabilities.
// @Tags         ml
// @Accept       json
// @Produce      json
// @Param        request  body      types.RiskRequest  true  "Task features"
// @Success      200      {object}  types.RiskResponse
// @Failure      400      {object}  errors.ErrorBody
// @Failure      502      {object}  errors.ErrorBody
// @Failure      503      {object}  errors.ErrorBody
// @Router       /api/ml/predict-risk [post]
func (h *MLHandler) PredictRisk(c *gin.Context) {
	start := time.Now()

	body, ok := readBody(c)
	if !ok {
		return
	}
	features, err := scoring.ParseTaskFeatures(body)
	if err != nil {
		_ = c.Error(err)
		return
	}

	assessment, err := h.services.AssessRisk(c.Request.Context(), features)
	if err != nil {
		_ = c.Error(err)
		return
	}

	h.logger.ScoringLogger(c.GetString(monitoring.RequestIDKey), "predict_risk", 1, time.Since(start))
	c.JSON(http.StatusOK, types.ToRiskResponse(assessment))
}

// RecommendAssignees godoc
// @Summary      Recommend assignees
// @Description  Ranks the supplied developers for a task and returns the top three with 0-1 normalized scores.
// @Tags         ml
// @Accept       json
// @Produce      json
// @Param        request  body      types.AssigneeRequest  true  "Task and developer roster"
// @Success      200      {array}   types.AssigneeScore
// @Failure      400      {object}  errors.ErrorBody
// @Failure      502      {object}  errors.ErrorBody
// @Failure      503      {object}  errors.ErrorBody
// @Router       /api/ml/recommend-assignees [post]
func (h *MLHandler) RecommendAssignees(c *gin.Context) {
	recs, ok := h.rank(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, types.ToAssigneeScores(recs))
}

// RecommendAssignee godoc
// @Summary      Recommend assignees with reasoning
// @Description  Same ranking as recommend-assignees, returned as integer percentages with confidence and reasoning.
// @Tags         ml
// @Accept       json
// @Produce      json
// @Param        request  body      types.AssigneeRequest  true  "Task and developer roster"
// @Success      200      {array}   scoring.AssigneeRecommendation
// @Failure      400      {object}  errors.ErrorBody
// @Failure      502      {object}  errors.ErrorBody
// @Failure      503      {object}  errors.ErrorBody
// @Router       /api/ml/recommend-assignee [post]
func (h *MLHandler) RecommendAssignee(c *gin.Context) {
	recs, ok := h.rank(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, recs)
}

func (h *MLHandler) rank(c *gin.Context) ([]scoring.AssigneeRecommendation, bool) {
	start := time.Now()

	body, ok := readBody(c)
	if !ok {
		return nil, false
	}
	task, developers, err := scoring.ParseAssigneeRequest(body)
	if err != nil {
		_ = c.Error(err)
		return nil, false
	}

	recs, err := h.services.RecommendAssignees(c.Request.Context(), task, developers)
	if err != nil {
		_ = c.Error(err)
		return nil, false
	}

	h.logger.ScoringLogger(c.GetString(monitoring.RequestIDKey), "recommend_assignees", len(recs), time.Since(start))
	return recs, true
}

// GenerateSummary godoc
// @Summary      Summarize a completed task
// @Description  Writes a rule-based narrative of at most 500 characters.
// @Tags         ml
// @Accept       json
// @Produce      json
// @Param        request  body      types.SummaryRequest  true  "Completed task"
// @Success      200      {string}  string
// @Failure      400      {object}  errors.ErrorBody
// @Router       /api/ml/generate-summary [post]
func (h *MLHandler) GenerateSummary(c *gin.Context) {
	start := time.Now()

	body, ok := readBody(c)
	if !ok {
		return
	}
	in, err := scoring.ParseSummaryInput(body)
	if err != nil {
		_ = c.Error(err)
		return
	}

	summary := scoring.Narrative(in)
	h.logger.ScoringLogger(c.GetString(monitoring.RequestIDKey), "generate_summary", 1, time.Since(start))
	c.JSON(http.StatusOK, summary)
}

// SuggestTask godoc
// @Summary      Suggest a plan for a new task
// @Description  Returns a short summary, a checklist for FEATURE and BUG tasks, and a complexity estimate.
// @Tags         ml
// @Accept       json
// @Produce      json
// @Param        request  body      types.SuggestionRequest  true  "New task"
// @Success      200      {object}  scoring.TaskSuggestion
// @Failure      400      {object}  errors.ErrorBody
// @Router       /api/ml/suggest-task [post]
func (h *MLHandler) SuggestTask(c *gin.Context) {
	start := time.Now()

	body, ok := readBody(c)
	if !ok {
		return
	}
	title, description, taskType, err := scoring.ParseSuggestionRequest(body)
	if err != nil {
		_ = c.Error(err)
		return
	}

	suggestion := scoring.SuggestTask(title, description, taskType)
	h.logger.ScoringLogger(c.GetString(monitoring.RequestIDKey), "suggest_task", len(suggestion.SuggestedSubtasks), time.Since(start))
	c.JSON(http.StatusOK, suggestion)
}

func readBody(c *gin.Context) ([]byte, bool) {
	body, err := c.GetRawData()
	if err != nil {
		var tooLarge *http.MaxBytesError
		if stderrors.As(err, &tooLarge) {
			_ = c.Error(errors.NewValidationError("request body too large"))
			return nil, false
		}
		_ = c.Error(errors.NewValidationError("unable to read request body", err.Error()))
		return nil, false
	}
	return body, true
}
