package resuscitation

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/jwalitptl/peds-protocol-api/internal/model"
	"github.com/jwalitptl/peds-protocol-api/internal/service/resuscitation"
	apperrors "github.com/jwalitptl/peds-protocol-api/pkg/errors"
	"github.com/jwalitptl/peds-protocol-api/pkg/httputil"
)

type Handler struct {
	service *resuscitation.Service
}

func NewHandler(service *resuscitation.Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	sessions := r.Group("/sessions/:id")
	{
		sessions.POST("/boluses", h.AdministerBolus)
		sessions.POST("/boluses/:bolusId/reassessment", h.RecordReassessment)
		sessions.POST("/access/attempts", h.RecordIVAttempt)
		sessions.GET("/access", h.CheckAccess)
		sessions.POST("/referrals", h.CreateReferral)
		sessions.GET("/referrals", h.ListReferrals)
	}
}

type bolusRequest struct {
	Type model.BolusType `json:"type" binding:"required,oneof=standard cardiogenic"`
}

func (h *Handler) AdministerBolus(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httputil.RespondWithError(c, apperrors.BadRequest("invalid session id", err))
		return
	}

	var req bolusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.RespondWithError(c, apperrors.BadRequest("invalid request body", err))
		return
	}

	result, err := h.service.AdministerBolus(c.Request.Context(), id, req.Type)
	if err != nil {
		httputil.RespondWithError(c, apperrors.Conflict(err.Error(), err))
		return
	}
	httputil.RespondWithCreated(c, result)
}

type reassessmentRequest struct {
	Items   []model.ReassessmentItem `json:"items" binding:"required"`
	Outcome model.BolusOutcome       `json:"outcome" binding:"required,oneof=improved no_change deteriorated overloaded"`
}

func (h *Handler) RecordReassessment(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httputil.RespondWithError(c, apperrors.BadRequest("invalid session id", err))
		return
	}
	bolusID, err := uuid.Parse(c.Param("bolusId"))
	if err != nil {
		httputil.RespondWithError(c, apperrors.BadRequest("invalid bolus id", err))
		return
	}

	var req reassessmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.RespondWithError(c, apperrors.BadRequest("invalid request body", err))
		return
	}

	result, err := h.service.RecordReassessment(c.Request.Context(), id, bolusID, req.Items, req.Outcome)
	if err != nil {
		httputil.RespondWithError(c, apperrors.NotFound("bolus", err))
		return
	}
	httputil.RespondWithSuccess(c, result)
}

func (h *Handler) RecordIVAttempt(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httputil.RespondWithError(c, apperrors.BadRequest("invalid session id", err))
		return
	}

	status, err := h.service.RecordIVAttempt(c.Request.Context(), id)
	if err != nil {
		httputil.RespondWithError(c, apperrors.Internal(err))
		return
	}
	httputil.RespondWithSuccess(c, status)
}

func (h *Handler) CheckAccess(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httputil.RespondWithError(c, apperrors.BadRequest("invalid session id", err))
		return
	}

	status, err := h.service.CheckAccess(c.Request.Context(), id)
	if err != nil {
		httputil.RespondWithError(c, apperrors.Internal(err))
		return
	}
	httputil.RespondWithSuccess(c, status)
}

type referralRequest struct {
	WorkingDiagnosis string                 `json:"working_diagnosis"`
	Reason           string                 `json:"reason" binding:"required"`
	VitalsTrend      []model.VitalsSnapshot `json:"vitals_trend"`
	Interventions    []model.Intervention   `json:"interventions"`
	CurrentInfusions []string               `json:"current_infusions"`
	Labs             model.JSONMap          `json:"labs"`
	CallbackContact  string                 `json:"callback_contact" binding:"required"`
}

func (h *Handler) CreateReferral(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httputil.RespondWithError(c, apperrors.BadRequest("invalid session id", err))
		return
	}

	var req referralRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.RespondWithError(c, apperrors.BadRequest("invalid request body", err))
		return
	}

	referral, err := h.service.CreateReferral(c.Request.Context(), &model.Referral{
		SessionID:        id,
		WorkingDiagnosis: req.WorkingDiagnosis,
		Reason:           req.Reason,
		VitalsTrend:      req.VitalsTrend,
		Interventions:    req.Interventions,
		CurrentInfusions: req.CurrentInfusions,
		Labs:             req.Labs,
		CallbackContact:  req.CallbackContact,
	})
	if err != nil {
		httputil.RespondWithError(c, apperrors.NotFound("session", err))
		return
	}
	httputil.RespondWithCreated(c, referral)
}

func (h *Handler) ListReferrals(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httputil.RespondWithError(c, apperrors.BadRequest("invalid session id", err))
		return
	}

	referrals, err := h.service.Referrals(c.Request.Context(), id)
	if err != nil {
		httputil.RespondWithError(c, apperrors.Internal(err))
		return
	}
	httputil.RespondWithSuccess(c, referrals)
}
