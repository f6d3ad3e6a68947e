package property

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
	Create(ctx context.Context, realtorID uuid.UUID, req *model.CreatePropertyRequest) (*model.Property, error)
	Get(ctx context.Context, realtorID, id uuid.UUID) (*model.Property, error)
	Update(ctx context.Context, realtorID, id uuid.UUID, req *model.UpdatePropertyRequest) (*model.Property, error)
	Delete(ctx context.Context, realtorID, id uuid.UUID) error
	List(ctx context.Context, realtorID uuid.UUID) ([]*model.Property, error)
}

type Handler struct {
	svc Service
}

func NewHandler(svc Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	properties := r.Group("/properties")
	{
		properties.POST("", h.Create)
		properties.GET("", h.List)
		properties.GET("/:id", h.Get)
		properties.PUT("/:id", h.Update)
		properties.DELETE("/:id", h.Delete)
	}
}

func (h *Handler) Create(c *gin.Context) {
	var req model.CreatePropertyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse(err.Error()))
		return
	}

	property, err := h.svc.Create(c.Request.Context(), middleware.RealtorID(c), &req)
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusCreated, handler.NewSuccessResponse(property))
}

func (h *Handler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse("invalid property id"))
		return
	}

	property, err := h.svc.Get(c.Request.Context(), middleware.RealtorID(c), id)
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, handler.NewSuccessResponse(property))
}

func (h *Handler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse("invalid property id"))
		return
	}

	var req model.UpdatePropertyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse(err.Error()))
		return
	}

	property, err := h.svc.Update(c.Request.Context(), middleware.RealtorID(c), id, &req)
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, handler.NewSuccessResponse(property))
}

func (h *Handler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse("invalid property id"))
		return
	}

	if err := h.svc.Delete(c.Request.Context(), middleware.RealtorID(c), id); err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, handler.Response{Status: "success", Message: "property deleted"})
}

func (h *Handler) List(c *gin.Context) {
	properties, err := h.svc.List(c.Request.Context(), middleware.RealtorID(c))
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, handler.NewSuccessResponse(properties))
}
