package escalation

import (
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/jwalitptl/peds-protocol-api/internal/model"
	"github.com/jwalitptl/peds-protocol-api/internal/service/escalation"
	apperrors "github.com/jwalitptl/peds-protocol-api/pkg/errors"
	"github.com/jwalitptl/peds-protocol-api/pkg/httputil"
)

type Handler struct {
	service *escalation.Service
}

func NewHandler(service *escalation.Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	ladders := r.Group("/ladders")
	{
		ladders.GET("", h.ListConditions)
		ladders.GET("/:condition", h.GetLadder)
	}

	sessions := r.Group("/sessions/:id/escalation")
	{
		sessions.GET("/:condition", h.CurrentLine)
		sessions.POST("/:condition", h.Escalate)
	}
}

func (h *Handler) ListConditions(c *gin.Context) {
	httputil.RespondWithSuccess(c, h.service.Conditions())
}

func (h *Handler) GetLadder(c *gin.Context) {
	condition := model.Condition(c.Param("condition"))
	steps, err := h.service.Ladder(condition)
	if err != nil {
		httputil.RespondWithError(c, apperrors.UnknownCondition(string(condition), err))
		return
	}
	httputil.RespondWithSuccess(c, steps)
}

func (h *Handler) CurrentLine(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httputil.RespondWithError(c, apperrors.BadRequest("invalid session id", err))
		return
	}
	condition := model.Condition(c.Param("condition"))

	line, steps, err := h.service.CurrentLine(c.Request.Context(), id, condition)
	if err != nil {
		httputil.RespondWithError(c, apperrors.UnknownCondition(string(condition), err))
		return
	}
	httputil.RespondWithSuccess(c, gin.H{"line": line, "steps": steps})
}

func (h *Handler) Escalate(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httputil.RespondWithError(c, apperrors.BadRequest("invalid session id", err))
		return
	}
	condition := model.Condition(c.Param("condition"))

	line, steps, err := h.service.Escalate(c.Request.Context(), id, condition)
	if errors.Is(err, escalation.ErrLadderExhausted) {
		httputil.RespondWithError(c, apperrors.TerminalLadder(string(condition), err))
		return
	}
	if err != nil {
		httputil.RespondWithError(c, apperrors.UnknownCondition(string(condition), err))
		return
	}
	httputil.RespondWithSuccess(c, gin.H{"line": line, "steps": steps})
}
