package assessment

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/jwalitptl/peds-protocol-api/internal/model"
	"github.com/jwalitptl/peds-protocol-api/internal/protocol/shock"
	"github.com/jwalitptl/peds-protocol-api/internal/service/assessment"
	apperrors "github.com/jwalitptl/peds-protocol-api/pkg/errors"
	"github.com/jwalitptl/peds-protocol-api/pkg/httputil"
)

type Handler struct {
	service *assessment.Service
}

func NewHandler(service *assessment.Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	sessions := r.Group("/sessions")
	{
		sessions.POST("", h.StartSession)
		sessions.GET("", h.ListSessions)
		sessions.GET("/:id", h.GetSession)
		sessions.POST("/:id/selections", h.RecordSelection)
		sessions.POST("/:id/history", h.AnswerHistory)
		sessions.GET("/:id/scores", h.GetScores)
		sessions.GET("/:id/findings", h.GetFindings)
		sessions.POST("/:id/complete", h.Complete)
	}

	protocol := r.Group("/assessment")
	{
		protocol.GET("/steps", h.ListSteps)
		protocol.GET("/history-questions", h.ListHistoryQuestions)
	}
}

type startSessionRequest struct {
	PatientRef string  `json:"patient_ref" binding:"required"`
	AgeYears   float64 `json:"age_years" binding:"pedsage"`
	WeightKg   float64 `json:"weight_kg" binding:"required,pedsweight"`
}

func (h *Handler) StartSession(c *gin.Context) {
	var req startSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.RespondWithError(c, apperrors.BadRequest("invalid request body", err))
		return
	}

	session, err := h.service.StartSession(c.Request.Context(), req.PatientRef, req.AgeYears, req.WeightKg)
	if err != nil {
		httputil.RespondWithError(c, apperrors.InvalidInput(err.Error(), err))
		return
	}
	httputil.RespondWithCreated(c, session)
}

func (h *Handler) GetSession(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httputil.RespondWithError(c, apperrors.BadRequest("invalid session id", err))
		return
	}

	session, err := h.service.Get(c.Request.Context(), id)
	if err != nil {
		httputil.RespondWithError(c, apperrors.NotFound("session", err))
		return
	}
	httputil.RespondWithSuccess(c, session)
}

func (h *Handler) ListSessions(c *gin.Context) {
	status := model.SessionStatus(c.DefaultQuery("status", string(model.SessionStatusActive)))
	var p model.Pagination
	if err := c.ShouldBindQuery(&p); err != nil {
		httputil.RespondWithError(c, apperrors.BadRequest("invalid pagination", err))
		return
	}

	sessions, err := h.service.List(c.Request.Context(), status, &p)
	if err != nil {
		httputil.RespondWithError(c, apperrors.Internal(err))
		return
	}
	httputil.RespondWithSuccess(c, sessions)
}

type selectionRequest struct {
	StepOrder int    `json:"step_order" binding:"required,min=1"`
	Finding   string `json:"finding"`
	IsNormal  bool   `json:"is_normal"`
}

func (h *Handler) RecordSelection(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httputil.RespondWithError(c, apperrors.BadRequest("invalid session id", err))
		return
	}

	var req selectionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.RespondWithError(c, apperrors.BadRequest("invalid request body", err))
		return
	}

	scores, err := h.service.RecordSelection(c.Request.Context(), id, model.StepSelection{
		StepOrder: req.StepOrder,
		Finding:   req.Finding,
		IsNormal:  req.IsNormal,
	})
	if err != nil {
		httputil.RespondWithError(c, apperrors.InvalidInput(err.Error(), err))
		return
	}
	httputil.RespondWithSuccess(c, gin.H{"scores": scores})
}

type historyAnswerRequest struct {
	QuestionID  string `json:"question_id" binding:"required"`
	Affirmative bool   `json:"affirmative"`
}

func (h *Handler) AnswerHistory(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httputil.RespondWithError(c, apperrors.BadRequest("invalid session id", err))
		return
	}

	var req historyAnswerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.RespondWithError(c, apperrors.BadRequest("invalid request body", err))
		return
	}

	scores, err := h.service.AnswerHistory(c.Request.Context(), id, model.HistoryAnswer{
		QuestionID:  req.QuestionID,
		Affirmative: req.Affirmative,
	})
	if err != nil {
		httputil.RespondWithError(c, apperrors.InvalidInput(err.Error(), err))
		return
	}
	httputil.RespondWithSuccess(c, gin.H{"scores": scores})
}

func (h *Handler) GetScores(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httputil.RespondWithError(c, apperrors.BadRequest("invalid session id", err))
		return
	}

	scores, err := h.service.Scores(c.Request.Context(), id)
	if err != nil {
		httputil.RespondWithError(c, apperrors.NotFound("session", err))
		return
	}
	httputil.RespondWithSuccess(c, gin.H{"scores": scores})
}

func (h *Handler) GetFindings(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httputil.RespondWithError(c, apperrors.BadRequest("invalid session id", err))
		return
	}

	findings, err := h.service.Findings(c.Request.Context(), id)
	if err != nil {
		httputil.RespondWithError(c, apperrors.NotFound("session", err))
		return
	}
	httputil.RespondWithSuccess(c, gin.H{"findings": findings})
}

func (h *Handler) Complete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httputil.RespondWithError(c, apperrors.BadRequest("invalid session id", err))
		return
	}

	ident, err := h.service.Complete(c.Request.Context(), id)
	if err != nil {
		httputil.RespondWithError(c, apperrors.Conflict(err.Error(), err))
		return
	}
	httputil.RespondWithSuccess(c, ident)
}

func (h *Handler) ListSteps(c *gin.Context) {
	httputil.RespondWithSuccess(c, shock.Steps())
}

func (h *Handler) ListHistoryQuestions(c *gin.Context) {
	httputil.RespondWithSuccess(c, shock.HistoryQuestions())
}
