package handlers

import (
	"errors"
	"fmt"
	"math"
	"net/http"
	"time"

	"bet-dashboard/internal/animation"
	"bet-dashboard/internal/api/models"
	"bet-dashboard/internal/daily"
	"bet-dashboard/internal/logging"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// NoPickMessage is the empty state of the featured pick.
const NoPickMessage = "Nenhum palpite registrado para hoje ainda."

// TodayHandler serves the featured pick and the stake simulator
type TodayHandler struct {
	store     *Store
	simulator models.SimulatorDefaults
	fetcher   animation.Fetcher
	now       func() time.Time
	log       *logrus.Entry
}

// NewTodayHandler creates a new today handler. A nil fetcher disables the animation.
func NewTodayHandler(store *Store, simulator models.SimulatorDefaults, fetcher animation.Fetcher) *TodayHandler {
	if fetcher == nil {
		fetcher = animation.Noop{}
	}
	return &TodayHandler{
		store:     store,
		simulator: simulator,
		fetcher:   fetcher,
		now:       time.Now,
		log:       logging.For("today"),
	}
}

// SetClock replaces the clock used to resolve "today".
func (h *TodayHandler) SetClock(now func() time.Time) { h.now = now }

func (h *TodayHandler) targetDay(c *gin.Context, date string) (time.Time, bool) {
	loc := h.store.Location()
	if date == "" {
		return h.now().In(loc), true
	}
	t, err := parseDay(date, loc)
	if err != nil {
		badRequest(c, "INVALID_DATE", "date "+err.Error())
		return time.Time{}, false
	}
	return t, true
}

func (h *TodayHandler) checkStake(c *gin.Context, stake float64) bool {
	if math.IsNaN(stake) || math.IsInf(stake, 0) {
		badRequest(c, "INVALID_STAKE", "stake must be a finite number")
		return false
	}
	if stake < h.simulator.MinStake {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error: models.ErrorDetail{
				Code:    "INVALID_STAKE",
				Message: fmt.Sprintf("stake must be at least %v", h.simulator.MinStake),
				Details: map[string]interface{}{"stake": stake, "min_stake": h.simulator.MinStake},
			},
		})
		return false
	}
	return true
}

// GetToday handles GET /api/v1/today
func (h *TodayHandler) GetToday(c *gin.Context) {
	var req models.TodayRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		badRequest(c, "INVALID_REQUEST", err.Error())
		return
	}
	engine, ok := h.store.Engine(c)
	if !ok {
		return
	}
	target, ok := h.targetDay(c, req.Date)
	if !ok {
		return
	}
	stake := h.simulator.DefaultStake
	if req.Stake != nil {
		stake = *req.Stake
	}
	if !h.checkStake(c, stake) {
		return
	}

	picks := daily.TodaysPicks(engine.Records(), target)
	resp := models.TodayResponse{
		Date:      target.Format(dayLayout),
		Picks:     toRecords(picks),
		Simulator: h.simulator,
	}

	featured, found := daily.SelectForDate(engine.Records(), target)
	if !found {
		resp.Message = NoPickMessage
		c.JSON(http.StatusOK, resp)
		return
	}

	pick := toRecord(featured)
	resp.Pick = &pick

	sim, err := daily.Simulate(featured, stake)
	if err != nil {
		badRequest(c, "INVALID_STAKE", err.Error())
		return
	}
	resp.Simulation = toSimulation(sim)

	if doc, err := h.fetcher.Fetch(c.Request.Context()); err != nil {
		h.log.WithError(err).Debug("animation unavailable")
		resp.AnimationMessage = animation.FallbackMessage
	} else {
		resp.Animation = doc
	}

	c.JSON(http.StatusOK, resp)
}

// Simulate handles POST /api/v1/simulate
func (h *TodayHandler) Simulate(c *gin.Context) {
	var req models.SimulateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "INVALID_REQUEST", err.Error())
		return
	}
	if !h.checkStake(c, req.Stake) {
		return
	}

	var (
		sim daily.Simulation
		err error
	)
	switch {
	case req.Odd != nil:
		sim, err = daily.SimulateOdd(*req.Odd, req.Stake)
	case req.Date != "":
		engine, ok := h.store.Engine(c)
		if !ok {
			return
		}
		target, ok := h.targetDay(c, req.Date)
		if !ok {
			return
		}
		featured, found := daily.SelectForDate(engine.Records(), target)
		if !found {
			c.JSON(http.StatusNotFound, models.ErrorResponse{
				Error: models.ErrorDetail{
					Code:    "NO_PICK",
					Message: NoPickMessage,
					Details: map[string]interface{}{"date": req.Date},
				},
			})
			return
		}
		sim, err = daily.Simulate(featured, req.Stake)
	default:
		badRequest(c, "INVALID_REQUEST", "either odd or date is required")
		return
	}

	if err != nil {
		code := "INVALID_ODD"
		if errors.Is(err, daily.ErrInvalidStake) {
			code = "INVALID_STAKE"
		}
		badRequest(c, code, err.Error())
		return
	}
	c.JSON(http.StatusOK, toSimulation(sim))
}
