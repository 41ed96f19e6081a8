package controllers

import (
	"context"
	"os"
	"strings"

	"cuidarte/config"
	"cuidarte/dto"
	"cuidarte/models"
	"cuidarte/response"
	"cuidarte/services"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
	"google.golang.org/api/idtoken"
	"gorm.io/gorm"
)

func toUserResponse(user *models.User) dto.UserResponse {
	return dto.UserResponse{
		ID:          user.ID,
		Name:        user.Name,
		Email:       user.Email,
		PhoneNumber: user.PhoneNumber,
		Avatar:      user.Avatar,
		Role:        user.Role,
		Position:    user.Position,
		Bio:         user.Bio,
		Specialties: user.Specialties,
	}
}

// Login autentica con email y contraseña y devuelve el JWT de sesión.
func Login(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Email y contraseña son obligatorios")
		return
	}

	var user models.User
	if err := config.DB.Where("email = ?", strings.ToLower(strings.TrimSpace(req.Email))).First(&user).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			response.Unauthorized(c)
			return
		}
		response.ServerError(c)
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		response.Unauthorized(c)
		return
	}

	token, err := services.GenerateToken(user.ID, user.Role)
	if err != nil {
		response.ServerError(c)
		return
	}

	response.Success(c, dto.LoginResponse{Token: token, User: toUserResponse(&user)})
}

// AuthGoogle autentica con un id_token de Google. El usuario tiene que
// existir ya en el equipo: no se autoprovisionan cuentas.
func AuthGoogle(c *gin.Context) {
	var req dto.GoogleAuthRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "idToken es obligatorio")
		return
	}

	payload, err := idtoken.Validate(context.Background(), req.IDToken, os.Getenv("GOOGLE_CLIENT_ID"))
	if err != nil {
		response.Unauthorized(c)
		return
	}

	email, _ := payload.Claims["email"].(string)
	if email == "" {
		response.Unauthorized(c)
		return
	}

	var user models.User
	if err := config.DB.Where("email = ?", strings.ToLower(email)).First(&user).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			response.Forbidden(c)
			return
		}
		response.ServerError(c)
		return
	}

	if user.GoogleSubject == "" {
		config.DB.Model(&user).Update("google_subject", payload.Subject)
	}

	token, err := services.GenerateToken(user.ID, user.Role)
	if err != nil {
		response.ServerError(c)
		return
	}

	response.Success(c, dto.LoginResponse{Token: token, User: toUserResponse(&user)})
}

// GetProfile devuelve el perfil del usuario autenticado.
func GetProfile(c *gin.Context) {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" {
		response.Unauthorized(c)
		return
	}

	tokenString := strings.TrimPrefix(authHeader, "Bearer ")
	userID, err := services.GetIDFromToken(tokenString)
	if err != nil {
		response.Unauthorized(c)
		return
	}

	var user models.User
	if err := config.DB.First(&user, userID).Error; err != nil {
		response.NotFound(c)
		return
	}

	response.Success(c, toUserResponse(&user))
}
