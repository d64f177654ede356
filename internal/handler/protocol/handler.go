package protocol

import (
	"errors"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/patrickmn/go-cache"

	"github.com/jwalitptl/peds-protocol-api/internal/model"
	"github.com/jwalitptl/peds-protocol-api/internal/protocol/dosing"
	"github.com/jwalitptl/peds-protocol-api/internal/protocol/escalation"
	"github.com/jwalitptl/peds-protocol-api/internal/protocol/sequencer"
	"github.com/jwalitptl/peds-protocol-api/internal/protocol/shock"
	apperrors "github.com/jwalitptl/peds-protocol-api/pkg/errors"
	"github.com/jwalitptl/peds-protocol-api/pkg/httputil"
)

const referenceCacheKey = "reference_bundle"

// Handler serves the stateless protocol reference surface: weight-based
// dosing, equipment sizing, the ABCDE action sequencer and the static
// reference tables. The reference bundle is cached because the tables only
// change on deploy.
type Handler struct {
	cache *cache.Cache
}

func NewHandler(ttl time.Duration) *Handler {
	return &Handler{
		cache: cache.New(ttl, 2*ttl),
	}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	protocol := r.Group("/protocol")
	{
		protocol.GET("/reference", h.Reference)
		protocol.GET("/dosing/bolus", h.FluidBolus)
		protocol.GET("/dosing/infusions/:drug", h.InotropeDilution)
		protocol.GET("/equipment", h.Equipment)
		protocol.POST("/actions", h.GenerateActions)
		protocol.POST("/actions/next", h.NextAction)
	}
}

// Reference returns the full static protocol bundle in one response so a
// client can work offline at the bedside.
func (h *Handler) Reference(c *gin.Context) {
	if cached, ok := h.cache.Get(referenceCacheKey); ok {
		httputil.RespondWithSuccess(c, cached)
		return
	}

	ladders := make(map[model.Condition][]model.TherapyStep)
	for _, condition := range escalation.Conditions() {
		steps, err := escalation.Ladder(condition)
		if err != nil {
			httputil.RespondWithError(c, apperrors.Internal(err))
			return
		}
		ladders[condition] = steps
	}

	bundle := gin.H{
		"assessment_steps":  shock.Steps(),
		"history_questions": shock.HistoryQuestions(),
		"shock_types":       model.ShockTypes(),
		"conditions":        escalation.Conditions(),
		"ladders":           ladders,
		"phases":            model.Phases(),
	}
	h.cache.SetDefault(referenceCacheKey, bundle)
	httputil.RespondWithSuccess(c, bundle)
}

func (h *Handler) FluidBolus(c *gin.Context) {
	weight, err := strconv.ParseFloat(c.Query("weight_kg"), 64)
	if err != nil {
		httputil.RespondWithError(c, apperrors.BadRequest("invalid weight_kg", err))
		return
	}
	bolusType := model.BolusType(c.DefaultQuery("type", string(model.BolusStandard)))

	bolus, err := dosing.FluidBolus(weight, bolusType)
	if err != nil {
		httputil.RespondWithError(c, apperrors.InvalidInput(err.Error(), err))
		return
	}
	httputil.RespondWithSuccess(c, bolus)
}

func (h *Handler) InotropeDilution(c *gin.Context) {
	weight, err := strconv.ParseFloat(c.Query("weight_kg"), 64)
	if err != nil {
		httputil.RespondWithError(c, apperrors.BadRequest("invalid weight_kg", err))
		return
	}
	drug := c.Param("drug")

	dilution, err := dosing.InotropeDilution(drug, weight)
	if errors.Is(err, dosing.ErrDrugNotFound) {
		httputil.RespondWithError(c, apperrors.DrugNotFound(drug, err))
		return
	}
	if err != nil {
		httputil.RespondWithError(c, apperrors.InvalidInput(err.Error(), err))
		return
	}
	httputil.RespondWithSuccess(c, dilution)
}

// Equipment returns every weight and age derived equipment size in one
// response, matching how the numbers are read off a resuscitation card.
func (h *Handler) Equipment(c *gin.Context) {
	weight, err := strconv.ParseFloat(c.Query("weight_kg"), 64)
	if err != nil {
		httputil.RespondWithError(c, apperrors.BadRequest("invalid weight_kg", err))
		return
	}
	age, err := strconv.ParseFloat(c.Query("age_years"), 64)
	if err != nil {
		httputil.RespondWithError(c, apperrors.BadRequest("invalid age_years", err))
		return
	}

	tidalVolume, err := dosing.BVMTidalVolume(weight)
	if err != nil {
		httputil.RespondWithError(c, apperrors.InvalidInput(err.Error(), err))
		return
	}
	suctionFr, err := dosing.SuctionCatheterFr(age)
	if err != nil {
		httputil.RespondWithError(c, apperrors.InvalidInput(err.Error(), err))
		return
	}
	ettCuffed, err := dosing.ETTSize(age, true)
	if err != nil {
		httputil.RespondWithError(c, apperrors.InvalidInput(err.Error(), err))
		return
	}
	ettUncuffed, err := dosing.ETTSize(age, false)
	if err != nil {
		httputil.RespondWithError(c, apperrors.InvalidInput(err.Error(), err))
		return
	}
	firstShock, err := dosing.DefibrillationEnergy(weight, 1)
	if err != nil {
		httputil.RespondWithError(c, apperrors.InvalidInput(err.Error(), err))
		return
	}
	laterShock, err := dosing.DefibrillationEnergy(weight, 2)
	if err != nil {
		httputil.RespondWithError(c, apperrors.InvalidInput(err.Error(), err))
		return
	}
	dextrose, err := dosing.DextroseBolus(weight)
	if err != nil {
		httputil.RespondWithError(c, apperrors.InvalidInput(err.Error(), err))
		return
	}
	salbutamol, err := dosing.SalbutamolNebDose(weight)
	if err != nil {
		httputil.RespondWithError(c, apperrors.InvalidInput(err.Error(), err))
		return
	}

	httputil.RespondWithSuccess(c, gin.H{
		"bvm_tidal_volume":          tidalVolume,
		"suction_catheter_fr":       suctionFr,
		"ett_size_cuffed":           ettCuffed,
		"ett_size_uncuffed":         ettUncuffed,
		"defib_first_shock_joules":  firstShock,
		"defib_later_shocks_joules": laterShock,
		"dextrose_bolus":            dextrose,
		"salbutamol_nebuliser_dose": salbutamol,
	})
}

func (h *Handler) GenerateActions(c *gin.Context) {
	var pa model.PhaseAssessment
	if err := c.ShouldBindJSON(&pa); err != nil {
		httputil.RespondWithError(c, apperrors.BadRequest("invalid request body", err))
		return
	}

	actions, err := sequencer.Generate(pa)
	if err != nil {
		httputil.RespondWithError(c, apperrors.InvalidInput(err.Error(), err))
		return
	}
	httputil.RespondWithSuccess(c, gin.H{"actions": actions})
}

type nextActionRequest struct {
	Assessment model.PhaseAssessment `json:"assessment"`
	Completed  []string              `json:"completed"`
}

func (h *Handler) NextAction(c *gin.Context) {
	var req nextActionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.RespondWithError(c, apperrors.BadRequest("invalid request body", err))
		return
	}

	actions, err := sequencer.Generate(req.Assessment)
	if err != nil {
		httputil.RespondWithError(c, apperrors.InvalidInput(err.Error(), err))
		return
	}

	completed := make(map[string]bool, len(req.Completed))
	for _, id := range req.Completed {
		completed[id] = true
	}
	httputil.RespondWithSuccess(c, gin.H{"next": sequencer.NextAction(actions, completed)})
}
