package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/mdbarber/booking-api/internal/audit"
	"github.com/mdbarber/booking-api/internal/httperr"
	"github.com/mdbarber/booking-api/internal/httpresp"
	"github.com/mdbarber/booking-api/internal/middleware"
	"github.com/mdbarber/booking-api/internal/models"
)

// ======================================================
// HANDLER
// ======================================================

type ServiceHandler struct {
	db    *gorm.DB
	audit *audit.Dispatcher
}

func NewServiceHandler(db *gorm.DB, auditor *audit.Dispatcher) *ServiceHandler {
	return &ServiceHandler{db: db, audit: auditor}
}

// ======================================================
// REQUESTS
// ======================================================

type ServiceRequest struct {
	Name        string  `json:"name" binding:"required"`
	Description string  `json:"description"`
	Price       float64 `json:"price" binding:"required,gt=0"`
	DurationMin int     `json:"duration_min" binding:"required,gt=0"`
	ImageURL    string  `json:"image_url"`
	Active      *bool   `json:"active"`
}

// ======================================================
// PUBLIC
// ======================================================

// ListPublic muestra el catálogo visible: solo servicios activos,
// ordenados por precio.
func (h *ServiceHandler) ListPublic(c *gin.Context) {
	var services []models.Service
	if err := h.db.
		Where("active = true").
		Order("price ASC").
		Find(&services).Error; err != nil {

		httperr.Internal(c, "failed_to_list_services", "Error al listar servicios.")
		return
	}

	httpresp.List(c, services)
}

// ======================================================
// ADMIN
// ======================================================

func (h *ServiceHandler) ListAdmin(c *gin.Context) {
	var services []models.Service
	if err := h.db.Order("id ASC").Find(&services).Error; err != nil {
		httperr.Internal(c, "failed_to_list_services", "Error al listar servicios.")
		return
	}

	httpresp.List(c, services)
}

func (h *ServiceHandler) Create(c *gin.Context) {
	barberID := c.MustGet(middleware.ContextUserID).(uint)

	var req ServiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Datos inválidos.")
		return
	}

	service := models.Service{
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		DurationMin: req.DurationMin,
		ImageURL:    req.ImageURL,
		Active:      true,
	}
	if req.Active != nil {
		service.Active = *req.Active
	}

	if err := h.db.Create(&service).Error; err != nil {
		httperr.Internal(c, "failed_to_create_service", "Error al crear servicio.")
		return
	}

	h.audit.Dispatch(audit.Event{
		ActorType: "admin",
		ActorID:   &barberID,
		Action:    "service_created",
		Entity:    "service",
		EntityID:  &service.ID,
	})

	c.JSON(http.StatusCreated, service)
}

func (h *ServiceHandler) Update(c *gin.Context) {
	barberID := c.MustGet(middleware.ContextUserID).(uint)
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	var service models.Service
	if err := h.db.First(&service, id).Error; err != nil {
		httperr.NotFound(c, "service_not_found", "Servicio no encontrado.")
		return
	}

	var req ServiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Datos inválidos.")
		return
	}

	service.Name = req.Name
	service.Description = req.Description
	service.Price = req.Price
	service.DurationMin = req.DurationMin
	if req.ImageURL != "" {
		service.ImageURL = req.ImageURL
	}
	if req.Active != nil {
		service.Active = *req.Active
	}

	// Las citas ya tomadas conservan su precio y duración originales
	if err := h.db.Save(&service).Error; err != nil {
		httperr.Internal(c, "failed_to_update_service", "Error al actualizar servicio.")
		return
	}

	h.audit.Dispatch(audit.Event{
		ActorType: "admin",
		ActorID:   &barberID,
		Action:    "service_updated",
		Entity:    "service",
		EntityID:  &service.ID,
	})

	c.JSON(http.StatusOK, service)
}

func (h *ServiceHandler) Delete(c *gin.Context) {
	barberID := c.MustGet(middleware.ContextUserID).(uint)
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	var service models.Service
	if err := h.db.First(&service, id).Error; err != nil {
		httperr.NotFound(c, "service_not_found", "Servicio no encontrado.")
		return
	}

	if err := h.db.Delete(&service).Error; err != nil {
		httperr.Internal(c, "failed_to_delete_service", "Error al eliminar servicio.")
		return
	}

	h.audit.Dispatch(audit.Event{
		ActorType: "admin",
		ActorID:   &barberID,
		Action:    "service_deleted",
		Entity:    "service",
		EntityID:  &service.ID,
	})

	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
