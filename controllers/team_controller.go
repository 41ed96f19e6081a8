package controllers

import (
	"strconv"
	"strings"

	"cuidarte/config"
	"cuidarte/constants"
	"cuidarte/dto"
	"cuidarte/models"
	"cuidarte/response"
	"cuidarte/services"
	"cuidarte/validator"

	"github.com/gin-gonic/gin"
	"github.com/lib/pq"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// GetTeam devuelve el directorio del equipo. Con ?search= aplica búsqueda
// difusa tolerante a tildes y errores de tecleo.
func GetTeam(c *gin.Context) {
	query := config.DB.Model(&models.User{})
	if role, err := strconv.Atoi(c.Query("role")); err == nil {
		query = query.Where("role = ?", role)
	}

	var users []models.User
	if err := query.Order("name asc").Find(&users).Error; err != nil {
		response.ServerError(c)
		return
	}

	if search := strings.TrimSpace(c.Query("search")); search != "" {
		users = services.SearchStaff(users, search)
	}

	out := make([]dto.UserResponse, 0, len(users))
	for i := range users {
		out = append(out, toUserResponse(&users[i]))
	}

	response.Success(c, out)
}

// CreateTeamMember da de alta un miembro del equipo con contraseña temporal.
func CreateTeamMember(c *gin.Context) {
	var user models.User
	if err := c.ShouldBindJSON(&user); err != nil {
		response.BadRequest(c, "Datos de usuario no válidos")
		return
	}

	user.Email = strings.ToLower(strings.TrimSpace(user.Email))
	if err := validator.ValidateUser(&user); err != nil {
		response.ValidationError(c, err.Error())
		return
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(user.Password), bcrypt.DefaultCost)
	if err != nil {
		response.ServerError(c)
		return
	}
	user.Password = string(hashed)

	if err := config.DB.Create(&user).Error; err != nil {
		response.Conflict(c)
		return
	}

	response.Success(c, toUserResponse(&user))
}

// UpdateTeamMember edita el perfil de un miembro del equipo. Cada uno puede
// editar el suyo; dirección puede editar cualquiera y cambiar roles.
func UpdateTeamMember(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "ID no válido")
		return
	}

	requesterID := c.GetUint("userID")
	requesterRole := c.GetInt("userRole")
	if uint(id) != requesterID && requesterRole != constants.RoleDireccion {
		response.Forbidden(c)
		return
	}

	var user models.User
	if err := config.DB.First(&user, id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			response.NotFound(c)
			return
		}
		response.ServerError(c)
		return
	}

	var payload struct {
		Name        *string  `json:"name"`
		PhoneNumber *string  `json:"phoneNumber"`
		Avatar      *string  `json:"avatar"`
		Position    *string  `json:"position"`
		Bio         *string  `json:"bio"`
		Specialties []string `json:"specialties"`
		Role        *int     `json:"role"`
		Password    *string  `json:"password"`
	}
	if err := c.ShouldBindJSON(&payload); err != nil {
		response.BadRequest(c, "Datos no válidos")
		return
	}

	updates := map[string]interface{}{}
	if payload.Name != nil {
		updates["name"] = *payload.Name
	}
	if payload.PhoneNumber != nil {
		updates["phone_number"] = *payload.PhoneNumber
	}
	if payload.Avatar != nil {
		updates["avatar"] = *payload.Avatar
	}
	if payload.Position != nil {
		updates["position"] = *payload.Position
	}
	if payload.Bio != nil {
		updates["bio"] = *payload.Bio
	}
	if payload.Specialties != nil {
		updates["specialties"] = pq.StringArray(payload.Specialties)
	}
	// Solo dirección reasigna roles
	if payload.Role != nil && requesterRole == constants.RoleDireccion {
		updates["role"] = *payload.Role
	}
	if payload.Password != nil && *payload.Password != "" {
		hashed, errH := bcrypt.GenerateFromPassword([]byte(*payload.Password), bcrypt.DefaultCost)
		if errH != nil {
			response.ServerError(c)
			return
		}
		updates["password"] = string(hashed)
	}
	if len(updates) == 0 {
		response.BadRequest(c, "Nada que actualizar")
		return
	}

	if err := config.DB.Model(&user).Updates(updates).Error; err != nil {
		response.ServerError(c)
		return
	}

	config.DB.First(&user, id)
	response.Success(c, toUserResponse(&user))
}
