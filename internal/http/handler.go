package http

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"fieldservice-service/internal/model"
	"fieldservice-service/internal/service"
)

type Handler struct {
	appointmentService *service.AppointmentService
	workItemService    *service.WorkItemService
	log                zerolog.Logger
}

func NewHandler(
	appointmentService *service.AppointmentService,
	workItemService *service.WorkItemService,
	log zerolog.Logger,
) *Handler {
	return &Handler{
		appointmentService: appointmentService,
		workItemService:    workItemService,
		log:                log,
	}
}

func (h *Handler) Register(r gin.IRouter) {
	appointments := r.Group("/appointments")
	{
		appointments.GET("", h.getBoard)
		appointments.GET("/today", h.listToday)
		appointments.GET("/future", h.listFuture)
		appointments.GET("/past", h.listPast)
		appointments.POST("/complete-day", h.completeDay)
		appointments.GET("/:id", h.getAppointment)
		appointments.PUT("/:id/status", h.advanceAppointmentStatus)
		appointments.PUT("/:id/begin", h.beginAppointment)
		appointments.GET("/:id/work-items", h.listWorkItems)
	}

	workItems := r.Group("/work-items")
	{
		workItems.GET("/:id", h.getWorkItem)
		workItems.PUT("/:id/status", h.setWorkItemStatus)
	}
}

// getBoard отдает все категории сразу, отфильтрованные строкой q.
func (h *Handler) getBoard(c *gin.Context) {
	board := service.NewAppointmentBoard(h.appointmentService)
	board.Refresh(c.Request.Context())
	c.JSON(http.StatusOK, successResponse(board.Search(c.Query("q"))))
}

func (h *Handler) listToday(c *gin.Context) {
	list := h.appointmentService.Today(c.Request.Context())
	c.JSON(http.StatusOK, successResponse(service.FilterAppointments(list, c.Query("q"))))
}

func (h *Handler) listFuture(c *gin.Context) {
	list := h.appointmentService.Future(c.Request.Context())
	c.JSON(http.StatusOK, successResponse(service.FilterAppointments(list, c.Query("q"))))
}

func (h *Handler) listPast(c *gin.Context) {
	list := h.appointmentService.Past(c.Request.Context())
	c.JSON(http.StatusOK, successResponse(service.FilterAppointments(list, c.Query("q"))))
}

type appointmentDetails struct {
	model.Appointment
	WorkItems []model.WorkItem `json:"work_items"`
}

func (h *Handler) getAppointment(c *gin.Context) {
	h.respondAppointment(c, c.Param("id"))
}

func (h *Handler) respondAppointment(c *gin.Context, id string) {
	ctx := c.Request.Context()
	appt, err := h.appointmentService.Get(ctx, id)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, successResponse(appointmentDetails{
		Appointment: *appt,
		WorkItems:   h.workItemService.ListForAppointment(ctx, id),
	}))
}

func (h *Handler) advanceAppointmentStatus(c *gin.Context) {
	var req struct {
		Status string `json:"status" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse(err.Error()))
		return
	}

	id := c.Param("id")
	status := model.AppointmentStatus(normalizeEnum(req.Status))
	if err := h.appointmentService.AdvanceStatus(c.Request.Context(), id, status); err != nil {
		h.handleError(c, fmt.Errorf("appointment status %q: %w", req.Status, err))
		return
	}

	h.respondAppointment(c, id)
}

func (h *Handler) beginAppointment(c *gin.Context) {
	var req struct {
		TrackTravel bool `json:"track_travel"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse(err.Error()))
		return
	}

	id := c.Param("id")
	if err := h.appointmentService.Begin(c.Request.Context(), id, req.TrackTravel); err != nil {
		h.handleError(c, err)
		return
	}

	h.respondAppointment(c, id)
}

func (h *Handler) completeDay(c *gin.Context) {
	rescheduled, err := h.appointmentService.CompleteDay(c.Request.Context())
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, successResponse(gin.H{"rescheduled": rescheduled}))
}

func (h *Handler) listWorkItems(c *gin.Context) {
	c.JSON(http.StatusOK, successResponse(h.workItemService.ListForAppointment(c.Request.Context(), c.Param("id"))))
}

func (h *Handler) getWorkItem(c *gin.Context) {
	item, err := h.workItemService.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, successResponse(item))
}

func (h *Handler) setWorkItemStatus(c *gin.Context) {
	var req struct {
		Status string `json:"status" binding:"required"`
		Reason string `json:"reason"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse(err.Error()))
		return
	}

	ctx := c.Request.Context()
	id := c.Param("id")
	status := model.WorkItemStatus(normalizeEnum(req.Status))

	var err error
	// причина имеет смысл только для NEED_TO_RETURN
	if status == model.WorkItemStatusNeedToReturn && strings.TrimSpace(req.Reason) != "" {
		err = h.workItemService.MarkNeedToReturn(ctx, id, req.Reason)
	} else {
		err = h.workItemService.SetStatus(ctx, id, status)
	}
	if err != nil {
		h.handleError(c, fmt.Errorf("work item status %q: %w", req.Status, err))
		return
	}

	item, err := h.workItemService.Get(ctx, id)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, successResponse(item))
}

func normalizeEnum(raw string) string {
	return strings.ToUpper(strings.TrimSpace(raw))
}

func (h *Handler) handleError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrNotFound):
		c.JSON(http.StatusNotFound, errorResponse(err.Error()))
	case errors.Is(err, service.ErrInvalidInput):
		c.JSON(http.StatusBadRequest, errorResponse(err.Error()))
	default:
		h.log.Error().Err(err).Msg("handler error")
		c.JSON(http.StatusInternalServerError, errorResponse("internal error"))
	}
}

func successResponse(data interface{}) gin.H {
	return gin.H{
		"data": data,
	}
}

func errorResponse(message string) gin.H {
	return gin.H{
		"error": message,
	}
}
