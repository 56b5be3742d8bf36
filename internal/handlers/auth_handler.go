package handlers

import (
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/nrbnayon/BarBar-sub000/internal/config"
	"github.com/nrbnayon/BarBar-sub000/internal/httperr"
	"github.com/nrbnayon/BarBar-sub000/internal/httpresp"
	"github.com/nrbnayon/BarBar-sub000/internal/middleware"
	"github.com/nrbnayon/BarBar-sub000/internal/models"
	"github.com/nrbnayon/BarBar-sub000/internal/validators"
)

type AuthHandler struct {
	db     *gorm.DB
	config *config.Config
}

func NewAuthHandler(db *gorm.DB, cfg *config.Config) *AuthHandler {
	return &AuthHandler{db: db, config: cfg}
}

// --------- Requests ---------

type RegisterRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
	Phone    string `json:"phone"`
	Role     string `json:"role" binding:"omitempty,oneof=user host"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// --------- Handlers ---------

func (h *AuthHandler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))

	if !validators.IsEmailDomainValid(email) {
		httperr.BadRequest(c, "invalid_email_domain", "The email domain does not look valid.")
		return
	}

	var count int64
	h.db.Model(&models.User{}).Where("email = ?", email).Count(&count)
	if count > 0 {
		httperr.BadRequest(c, "email_already_exists", "An account with this email already exists.")
		return
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		httperr.Internal(c, "failed_to_hash_password", "Could not create the account.")
		return
	}

	role := req.Role
	if role == "" {
		role = middleware.RoleUser
	}

	user := models.User{
		Name:         req.Name,
		Email:        email,
		PasswordHash: string(hashed),
		Phone:        req.Phone,
		Role:         role,
	}

	if err := h.db.Create(&user).Error; err != nil {
		httperr.Internal(c, "failed_to_create_user", "Could not create the account.")
		return
	}

	token, err := h.generateToken(&user, nil)
	if err != nil {
		httperr.Internal(c, "failed_to_generate_token", "Could not create the session.")
		return
	}

	httpresp.Created(c, "Account created", gin.H{
		"user": gin.H{
			"id":    user.ID,
			"name":  user.Name,
			"email": user.Email,
			"phone": user.Phone,
			"role":  user.Role,
		},
		"token": token,
	})
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))

	var user models.User
	if err := h.db.Where("email = ?", email).First(&user).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			httperr.Unauthorized(c, "invalid_credentials", "Wrong email or password.")
			return
		}
		httperr.Internal(c, "internal_error", "Could not sign in.")
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		httperr.Unauthorized(c, "invalid_credentials", "Wrong email or password.")
		return
	}

	var salonID *uint
	if user.Role == middleware.RoleHost {
		var salon models.Salon
		if err := h.db.Where("host_id = ?", user.ID).First(&salon).Error; err == nil {
			salonID = &salon.ID
		}
	}

	token, err := h.generateToken(&user, salonID)
	if err != nil {
		httperr.Internal(c, "failed_to_generate_token", "Could not create the session.")
		return
	}

	httpresp.OK(c, "Signed in", gin.H{
		"user": gin.H{
			"id":    user.ID,
			"name":  user.Name,
			"email": user.Email,
			"phone": user.Phone,
			"role":  user.Role,
		},
		"token": token,
	})
}

// --------- JWT ---------

func (h *AuthHandler) generateToken(user *models.User, salonID *uint) (string, error) {
	claims := jwt.MapClaims{
		"sub":  user.ID,
		"role": user.Role,
		"exp":  time.Now().Add(24 * time.Hour).Unix(),
		"iat":  time.Now().Unix(),
	}
	if salonID != nil {
		claims["salonId"] = *salonID
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(h.config.JWTSecret))
}
