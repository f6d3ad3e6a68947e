package contact

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
	Create(ctx context.Context, realtorID uuid.UUID, req *model.CreateContactRequest) (*model.Contact, error)
	Get(ctx context.Context, realtorID, id uuid.UUID) (*model.Contact, error)
	Update(ctx context.Context, realtorID, id uuid.UUID, req *model.UpdateContactRequest) (*model.Contact, error)
	Delete(ctx context.Context, realtorID, id uuid.UUID) error
	List(ctx context.Context, realtorID uuid.UUID, contactType model.ContactType) ([]*model.Contact, error)
}

type Handler struct {
	svc Service
}

func NewHandler(svc Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	contacts := r.Group("/contacts")
	{
		contacts.POST("", h.Create)
		contacts.GET("", h.List)
		contacts.GET("/:id", h.Get)
		contacts.PUT("/:id", h.Update)
		contacts.DELETE("/:id", h.Delete)
	}
}

func (h *Handler) Create(c *gin.Context) {
	var req model.CreateContactRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse(err.Error()))
		return
	}

	contact, err := h.svc.Create(c.Request.Context(), middleware.RealtorID(c), &req)
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusCreated, handler.NewSuccessResponse(contact))
}

func (h *Handler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse("invalid contact id"))
		return
	}

	contact, err := h.svc.Get(c.Request.Context(), middleware.RealtorID(c), id)
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, handler.NewSuccessResponse(contact))
}

func (h *Handler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse("invalid contact id"))
		return
	}

	var req model.UpdateContactRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse(err.Error()))
		return
	}

	contact, err := h.svc.Update(c.Request.Context(), middleware.RealtorID(c), id, &req)
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, handler.NewSuccessResponse(contact))
}

func (h *Handler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse("invalid contact id"))
		return
	}

	if err := h.svc.Delete(c.Request.Context(), middleware.RealtorID(c), id); err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, handler.Response{Status: "success", Message: "contact deleted"})
}

// List supports an optional ?type=landlord|tenant filter.
func (h *Handler) List(c *gin.Context) {
	contactType := model.ContactType(c.Query("type"))
	if contactType != "" && contactType != model.ContactTypeLandlord && contactType != model.ContactTypeTenant {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse("invalid contact type"))
		return
	}

	contacts, err := h.svc.List(c.Request.Context(), middleware.RealtorID(c), contactType)
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, handler.NewSuccessResponse(contacts))
}
