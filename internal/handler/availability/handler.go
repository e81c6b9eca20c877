package availability

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/jwalitptl/scheduler-api/internal/service/schedule"
	apperrors "github.com/jwalitptl/scheduler-api/pkg/errors"
	"github.com/jwalitptl/scheduler-api/pkg/httputil"
	"github.com/jwalitptl/scheduler-api/pkg/timeutil"
)

// Handler exposes the read side of the engine: weekly calendars, free
// time and bookable windows.
type Handler struct {
	service *schedule.Service
}

func NewHandler(service *schedule.Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	providers := r.Group("/providers/:id")
	{
		providers.GET("/slots", h.GetWeeklySlots)
		providers.GET("/free-slots", h.GetFreeSlots)
		providers.GET("/bookable-windows", h.GetBookableWindows)
		providers.GET("/bookable-windows/monthly", h.GetMonthlyBookableWindows)
	}
}

func (h *Handler) GetWeeklySlots(c *gin.Context) {
	providerID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httputil.RespondWithError(c, apperrors.Validation("invalid provider ID", err))
		return
	}
	weekStart, err := timeutil.ParseDate(c.Query("week_start"))
	if err != nil {
		httputil.RespondWithError(c, apperrors.Validation("invalid week_start, expected YYYY-MM-DD", err))
		return
	}

	slots, err := h.service.GetFinalSlots(c.Request.Context(), providerID, weekStart)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, slots)
}

func (h *Handler) GetFreeSlots(c *gin.Context) {
	providerID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httputil.RespondWithError(c, apperrors.Validation("invalid provider ID", err))
		return
	}
	day, err := timeutil.ParseDate(c.Query("date"))
	if err != nil {
		httputil.RespondWithError(c, apperrors.Validation("invalid date, expected YYYY-MM-DD", err))
		return
	}

	slots, err := h.service.GetFreeSlots(c.Request.Context(), providerID, day)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, slots)
}

func (h *Handler) GetBookableWindows(c *gin.Context) {
	providerID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httputil.RespondWithError(c, apperrors.Validation("invalid provider ID", err))
		return
	}
	serviceID, err := uuid.Parse(c.Query("service_id"))
	if err != nil {
		httputil.RespondWithError(c, apperrors.Validation("invalid service_id", err))
		return
	}
	day, err := timeutil.ParseDate(c.Query("date"))
	if err != nil {
		httputil.RespondWithError(c, apperrors.Validation("invalid date, expected YYYY-MM-DD", err))
		return
	}
	duration, err := parseDuration(c.Query("duration"))
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	windows, err := h.service.GetBookableWindows(c.Request.Context(), providerID, serviceID, day, duration)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, windows)
}

func (h *Handler) GetMonthlyBookableWindows(c *gin.Context) {
	providerID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httputil.RespondWithError(c, apperrors.Validation("invalid provider ID", err))
		return
	}
	serviceID, err := uuid.Parse(c.Query("service_id"))
	if err != nil {
		httputil.RespondWithError(c, apperrors.Validation("invalid service_id", err))
		return
	}
	year, month, err := timeutil.ParseMonth(c.Query("month"))
	if err != nil {
		httputil.RespondWithError(c, apperrors.Validation("invalid month, expected YYYY-MM", err))
		return
	}
	duration, err := parseDuration(c.Query("duration"))
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	windows, err := h.service.GetMonthlyBookableWindows(c.Request.Context(), providerID, serviceID, year, month, duration)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, windows)
}

func parseDuration(s string) (int, error) {
	duration, err := strconv.Atoi(s)
	if err != nil || duration <= 0 {
		return 0, apperrors.Validation("duration must be a positive number of minutes", err)
	}
	return duration, nil
}
