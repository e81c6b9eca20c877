package slot

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/jwalitptl/scheduler-api/internal/model"
	slotservice "github.com/jwalitptl/scheduler-api/internal/service/slot"
	apperrors "github.com/jwalitptl/scheduler-api/pkg/errors"
	"github.com/jwalitptl/scheduler-api/pkg/httputil"
)

// Handler exposes writes to the three slot-definition entities.
type Handler struct {
	service *slotservice.Service
}

func NewHandler(service *slotservice.Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	providers := r.Group("/providers/:id")
	{
		providers.POST("/template-slots", h.CreateTemplateSlot)
		providers.PUT("/template-slots/:slotID", h.UpdateTemplateSlot)
		providers.DELETE("/template-slots/:slotID", h.DeleteTemplateSlot)

		providers.POST("/override-slots", h.CreateOverrideSlot)
		providers.PUT("/override-slots/:slotID", h.UpdateOverrideSlot)
		providers.DELETE("/override-slots/:slotID", h.DeleteOverrideSlot)

		providers.POST("/blocked-slots", h.CreateBlockedSlot)
		providers.PUT("/blocked-slots/:slotID", h.UpdateBlockedSlot)
		providers.DELETE("/blocked-slots/:slotID", h.DeleteBlockedSlot)
	}
}

func (h *Handler) CreateTemplateSlot(c *gin.Context) {
	providerID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httputil.RespondWithError(c, apperrors.Validation("invalid provider ID", err))
		return
	}
	var req model.CreateTemplateSlotRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.RespondWithError(c, apperrors.Validation("invalid request body", err))
		return
	}

	slot, err := h.service.CreateTemplateSlot(c.Request.Context(), providerID, &req)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithCreated(c, slot)
}

func (h *Handler) UpdateTemplateSlot(c *gin.Context) {
	id, err := uuid.Parse(c.Param("slotID"))
	if err != nil {
		httputil.RespondWithError(c, apperrors.Validation("invalid slot ID", err))
		return
	}
	var req model.UpdateTemplateSlotRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.RespondWithError(c, apperrors.Validation("invalid request body", err))
		return
	}

	slot, err := h.service.UpdateTemplateSlot(c.Request.Context(), id, &req)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, slot)
}

func (h *Handler) DeleteTemplateSlot(c *gin.Context) {
	id, err := uuid.Parse(c.Param("slotID"))
	if err != nil {
		httputil.RespondWithError(c, apperrors.Validation("invalid slot ID", err))
		return
	}
	if err := h.service.DeleteTemplateSlot(c.Request.Context(), id); err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, nil)
}

func (h *Handler) CreateOverrideSlot(c *gin.Context) {
	providerID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httputil.RespondWithError(c, apperrors.Validation("invalid provider ID", err))
		return
	}
	var req model.CreateDatedSlotRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.RespondWithError(c, apperrors.Validation("invalid request body", err))
		return
	}

	slot, err := h.service.CreateOverrideSlot(c.Request.Context(), providerID, &req)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithCreated(c, slot)
}

func (h *Handler) UpdateOverrideSlot(c *gin.Context) {
	id, err := uuid.Parse(c.Param("slotID"))
	if err != nil {
		httputil.RespondWithError(c, apperrors.Validation("invalid slot ID", err))
		return
	}
	var req model.UpdateDatedSlotRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.RespondWithError(c, apperrors.Validation("invalid request body", err))
		return
	}

	slot, err := h.service.UpdateOverrideSlot(c.Request.Context(), id, &req)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, slot)
}

func (h *Handler) DeleteOverrideSlot(c *gin.Context) {
	id, err := uuid.Parse(c.Param("slotID"))
	if err != nil {
		httputil.RespondWithError(c, apperrors.Validation("invalid slot ID", err))
		return
	}
	if err := h.service.DeleteOverrideSlot(c.Request.Context(), id); err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, nil)
}

func (h *Handler) CreateBlockedSlot(c *gin.Context) {
	providerID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httputil.RespondWithError(c, apperrors.Validation("invalid provider ID", err))
		return
	}
	var req model.CreateDatedSlotRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.RespondWithError(c, apperrors.Validation("invalid request body", err))
		return
	}

	slot, err := h.service.CreateBlockedSlot(c.Request.Context(), providerID, &req)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithCreated(c, slot)
}

func (h *Handler) UpdateBlockedSlot(c *gin.Context) {
	id, err := uuid.Parse(c.Param("slotID"))
	if err != nil {
		httputil.RespondWithError(c, apperrors.Validation("invalid slot ID", err))
		return
	}
	var req model.UpdateDatedSlotRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.RespondWithError(c, apperrors.Validation("invalid request body", err))
		return
	}

	slot, err := h.service.UpdateBlockedSlot(c.Request.Context(), id, &req)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, slot)
}

func (h *Handler) DeleteBlockedSlot(c *gin.Context) {
	id, err := uuid.Parse(c.Param("slotID"))
	if err != nil {
		httputil.RespondWithError(c, apperrors.Validation("invalid slot ID", err))
		return
	}
	if err := h.service.DeleteBlockedSlot(c.Request.Context(), id); err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, nil)
}
