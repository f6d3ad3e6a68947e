package reminder

import (
	"context"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/rentaltrack/rental-api/internal/handler"
	"github.com/rentaltrack/rental-api/internal/middleware"
	"github.com/rentaltrack/rental-api/internal/model"
)

func init() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		_ = v.RegisterValidation("horizon", func(fl validator.FieldLevel) bool {
			return model.IsValidHorizon(int(fl.Field().Int()))
		})
	}
}

type Service interface {
	CheckAndSendReminders(ctx context.Context) (*model.SweepResult, error)
	TriggerManual(ctx context.Context, realtorID, leaseID uuid.UUID, days int) error
	History(ctx context.Context, realtorID, leaseID uuid.UUID) ([]*model.ReminderRecord, error)
	ListExpiring(ctx context.Context, realtorID uuid.UUID, days int) ([]*model.LeaseWithRelations, error)
	Stats(ctx context.Context, realtorID uuid.UUID, days int) (*model.ReminderStats, error)
}

type Handler struct {
	svc Service
}

func NewHandler(svc Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	reminders := r.Group("/reminders")
	{
		reminders.POST("/check", h.Check)
		reminders.GET("/expiring", h.Expiring)
		reminders.GET("/stats", h.Stats)
		reminders.GET("/history/:leaseId", h.History)
		reminders.POST("/send/:leaseId", h.Send)
	}
}

// Check runs a sweep immediately. Horizon scan failures do not fail the
// request: the response carries the partial results plus the scan errors.
func (h *Handler) Check(c *gin.Context) {
	result, err := h.svc.CheckAndSendReminders(c.Request.Context())
	if result == nil && err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(gin.H{
		"summary":     result.Summary(),
		"results":     result.Outcomes,
		"scan_errors": result.ScanErrors,
	}))
}

func (h *Handler) Expiring(c *gin.Context) {
	days, ok := daysParam(c, 90)
	if !ok {
		return
	}

	leases, err := h.svc.ListExpiring(c.Request.Context(), middleware.RealtorID(c), days)
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, handler.NewSuccessResponse(gin.H{
		"count":  len(leases),
		"leases": leases,
	}))
}

func (h *Handler) Stats(c *gin.Context) {
	days, ok := daysParam(c, 90)
	if !ok {
		return
	}

	stats, err := h.svc.Stats(c.Request.Context(), middleware.RealtorID(c), days)
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, handler.NewSuccessResponse(stats))
}

func (h *Handler) History(c *gin.Context) {
	leaseID, err := uuid.Parse(c.Param("leaseId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse("invalid lease id"))
		return
	}

	records, err := h.svc.History(c.Request.Context(), middleware.RealtorID(c), leaseID)
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, handler.NewSuccessResponse(records))
}

type sendRequest struct {
	Days int `json:"days" binding:"required,horizon"`
}

// Send triggers a single reminder outside the scheduled sweep.
func (h *Handler) Send(c *gin.Context) {
	leaseID, err := uuid.Parse(c.Param("leaseId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse("invalid lease id"))
		return
	}

	var req sendRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse(err.Error()))
		return
	}

	if err := h.svc.TriggerManual(c.Request.Context(), middleware.RealtorID(c), leaseID, req.Days); err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, handler.Response{Status: "success", Message: "reminder sent"})
}

// daysParam reads ?days= with a default, writing a 400 itself when the
// value is not a positive integer.
func daysParam(c *gin.Context, def int) (int, bool) {
	raw := c.DefaultQuery("days", strconv.Itoa(def))
	days, err := strconv.Atoi(raw)
	if err != nil || days <= 0 {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse("days must be a positive integer"))
		return 0, false
	}
	return days, true
}
