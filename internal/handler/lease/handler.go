package lease

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/rentaltrack/rental-api/internal/handler"
	"github.com/rentaltrack/rental-api/internal/middleware"
	"github.com/rentaltrack/rental-api/internal/model"
)

type Service interface {
	Create(ctx context.Context, realtorID uuid.UUID, req *model.CreateLeaseRequest) (*model.Lease, error)
	Get(ctx context.Context, realtorID, id uuid.UUID) (*model.Lease, error)
	GetWithRelations(ctx context.Context, realtorID, id uuid.UUID) (*model.LeaseWithRelations, error)
	Update(ctx context.Context, realtorID, id uuid.UUID, req *model.UpdateLeaseRequest) (*model.Lease, error)
	Delete(ctx context.Context, realtorID, id uuid.UUID) error
	List(ctx context.Context, realtorID uuid.UUID, status model.LeaseStatus) ([]*model.Lease, error)
	Dashboard(ctx context.Context, realtorID uuid.UUID) (*model.DashboardStats, error)
}

type Handler struct {
	svc Service
}

func NewHandler(svc Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	leases := r.Group("/leases")
	{
		leases.POST("", h.Create)
		leases.GET("", h.List)
		leases.GET("/:id", h.Get)
		leases.GET("/:id/details", h.GetDetails)
		leases.PUT("/:id", h.Update)
		leases.DELETE("/:id", h.Delete)
	}
	r.GET("/dashboard", h.Dashboard)
}

func (h *Handler) Create(c *gin.Context) {
	var req model.CreateLeaseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse(err.Error()))
		return
	}

	lease, err := h.svc.Create(c.Request.Context(), middleware.RealtorID(c), &req)
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusCreated, handler.NewSuccessResponse(lease))
}

func (h *Handler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse("invalid lease id"))
		return
	}

	lease, err := h.svc.Get(c.Request.Context(), middleware.RealtorID(c), id)
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, handler.NewSuccessResponse(lease))
}

// GetDetails returns the lease joined with its property and contacts.
func (h *Handler) GetDetails(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse("invalid lease id"))
		return
	}

	lease, err := h.svc.GetWithRelations(c.Request.Context(), middleware.RealtorID(c), id)
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, handler.NewSuccessResponse(lease))
}

func (h *Handler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse("invalid lease id"))
		return
	}

	var req model.UpdateLeaseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse(err.Error()))
		return
	}

	lease, err := h.svc.Update(c.Request.Context(), middleware.RealtorID(c), id, &req)
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, handler.NewSuccessResponse(lease))
}

func (h *Handler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse("invalid lease id"))
		return
	}

	if err := h.svc.Delete(c.Request.Context(), middleware.RealtorID(c), id); err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, handler.Response{Status: "success", Message: "lease deleted"})
}

// List supports an optional ?status= filter.
func (h *Handler) List(c *gin.Context) {
	status := model.LeaseStatus(c.Query("status"))
	switch status {
	case "", model.LeaseStatusPending, model.LeaseStatusActive, model.LeaseStatusExpired, model.LeaseStatusTerminated:
	default:
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse("invalid lease status"))
		return
	}

	leases, err := h.svc.List(c.Request.Context(), middleware.RealtorID(c), status)
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, handler.NewSuccessResponse(leases))
}

func (h *Handler) Dashboard(c *gin.Context) {
	stats, err := h.svc.Dashboard(c.Request.Context(), middleware.RealtorID(c))
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, handler.NewSuccessResponse(stats))
}
