package handlers

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/mdbarber/booking-api/internal/config"
	domain "github.com/mdbarber/booking-api/internal/domain/booking"
	"github.com/mdbarber/booking-api/internal/dto"
	"github.com/mdbarber/booking-api/internal/httperr"
	"github.com/mdbarber/booking-api/internal/httpresp"
	"github.com/mdbarber/booking-api/internal/middleware"
	"github.com/mdbarber/booking-api/internal/models"
	"github.com/mdbarber/booking-api/internal/usecase/booking"
	"github.com/mdbarber/booking-api/internal/validators"
)

// ======================================================
// HANDLER
// ======================================================

type ClientHandler struct {
	db       *gorm.DB
	config   *config.Config
	repo     domain.Repository
	cancelUC *booking.UpdateStatus
}

func NewClientHandler(
	db *gorm.DB,
	cfg *config.Config,
	repo domain.Repository,
	cancelUC *booking.UpdateStatus,
) *ClientHandler {
	return &ClientHandler{
		db:       db,
		config:   cfg,
		repo:     repo,
		cancelUC: cancelUC,
	}
}

// ======================================================
// REQUESTS
// ======================================================

type ClientRegisterRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
	Phone    string `json:"phone"`
}

// ======================================================
// AUTH
// ======================================================

func (h *ClientHandler) Register(c *gin.Context) {
	var req ClientRegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid_request",
			"details": err.Error(),
		})
		return
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))

	if !validators.IsEmailDomainValid(email) {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid_email_domain",
			"message": "El dominio del correo no parece ser válido.",
		})
		return
	}

	var count int64
	h.db.Model(&models.Client{}).Where("email = ?", email).Count(&count)
	if count > 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "email_already_exists"})
		return
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_hash_password"})
		return
	}

	client := models.Client{
		Name:         req.Name,
		Email:        email,
		PasswordHash: string(hashed),
		Phone:        req.Phone,
	}

	if err := h.db.Create(&client).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_create_client"})
		return
	}

	token, err := h.generateToken(&client)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_generate_token"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"user": gin.H{
			"id":    client.ID,
			"name":  client.Name,
			"email": client.Email,
			"phone": client.Phone,
			"role":  middleware.RoleClient,
		},
		"token": token,
	})
}

func (h *ClientHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid_request",
			"details": err.Error(),
		})
		return
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))

	var client models.Client
	if err := h.db.Where("email = ?", email).First(&client).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid_credentials"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal_error"})
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(client.PasswordHash), []byte(req.Password)); err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid_credentials"})
		return
	}

	token, err := h.generateToken(&client)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_generate_token"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"user": gin.H{
			"id":    client.ID,
			"name":  client.Name,
			"email": client.Email,
			"phone": client.Phone,
			"role":  middleware.RoleClient,
		},
		"token": token,
	})
}

// ======================================================
// ME
// ======================================================

func (h *ClientHandler) Me(c *gin.Context) {
	clientID := c.MustGet(middleware.ContextUserID).(uint)

	var client models.Client
	if err := h.db.First(&client, clientID).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "user_not_found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"user": gin.H{
			"id":    client.ID,
			"name":  client.Name,
			"email": client.Email,
			"phone": client.Phone,
			"role":  middleware.RoleClient,
		},
	})
}

func (h *ClientHandler) ListMyAppointments(c *gin.Context) {
	clientID := c.MustGet(middleware.ContextUserID).(uint)

	aps, err := h.repo.ListAppointmentsForClient(c.Request.Context(), clientID)
	if err != nil {
		httperr.Internal(c, "failed_to_list_appointments", "Error al listar citas.")
		return
	}

	items := make([]dto.AppointmentListDTO, 0, len(aps))
	for _, ap := range aps {
		items = append(items, dto.AppointmentListDTO{
			ID:          ap.ID,
			StartTime:   ap.StartTime,
			EndTime:     ap.EndTime,
			Status:      ap.Status,
			ClientName:  ap.ClientName,
			ClientPhone: ap.ClientPhone,
			ServiceName: ap.Service.Name,
			Price:       ap.Price,
			Notes:       ap.Notes,
		})
	}

	httpresp.List(c, items)
}

// CancelMyAppointment permite al cliente cancelar solo SUS citas.
func (h *ClientHandler) CancelMyAppointment(c *gin.Context) {
	clientID := c.MustGet(middleware.ContextUserID).(uint)
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	// La pertenencia se valida antes de tocar el estado
	if _, err := h.repo.GetAppointmentForClient(c.Request.Context(), id, clientID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			httperr.NotFound(c, "appointment_not_found", "Cita no encontrada.")
			return
		}
		httperr.Internal(c, "internal_error", "Error interno.")
		return
	}

	ap, err := h.cancelUC.Execute(
		c.Request.Context(),
		id,
		domain.StatusCancelled,
		"client",
		clientID,
	)
	if err != nil {
		mapBookingError(c, err)
		return
	}

	c.JSON(http.StatusOK, ap)
}

// ======================================================
// JWT
// ======================================================

func (h *ClientHandler) generateToken(client *models.Client) (string, error) {
	claims := jwt.MapClaims{
		"sub":  client.ID,
		"name": client.Name,
		"role": middleware.RoleClient,
		"exp":  time.Now().Add(24 * time.Hour).Unix(),
		"iat":  time.Now().Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(h.config.JWTSecret))
}
