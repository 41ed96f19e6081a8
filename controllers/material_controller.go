package controllers

import (
	"context"
	"strconv"
	"strings"

	"cuidarte/config"
	"cuidarte/models"
	"cuidarte/response"

	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
	"github.com/gin-gonic/gin"
)

// GetMaterials lista la biblioteca de materiales, con filtro por categoría.
func GetMaterials(c *gin.Context) {
	query := config.DB.Model(&models.Material{})
	if category := c.Query("category"); category != "" {
		query = query.Where("category = ?", category)
	}

	var materials []models.Material
	if err := query.Order("created_at desc").Find(&materials).Error; err != nil {
		response.ServerError(c)
		return
	}

	response.Success(c, materials)
}

// UploadMaterial sube un archivo a Cloudinary y lo registra en la biblioteca.
func UploadMaterial(c *gin.Context) {
	title := strings.TrimSpace(c.PostForm("title"))
	if title == "" {
		response.BadRequest(c, "El título es obligatorio")
		return
	}

	file, err := c.FormFile("file")
	if err != nil {
		response.BadRequest(c, "El archivo es obligatorio")
		return
	}

	src, err := file.Open()
	if err != nil {
		response.ServerError(c)
		return
	}
	defer src.Close()

	resp, err := config.Cloudinary.Upload.Upload(context.Background(), src, uploader.UploadParams{Folder: "materiales"})
	if err != nil {
		response.ServerError(c)
		return
	}

	userID := c.GetUint("userID")
	material := models.Material{
		Title:       title,
		Description: c.PostForm("description"),
		Category:    c.PostForm("category"),
		FileURL:     resp.SecureURL,
		FileType:    resp.Format,
		UploadedBy:  &userID,
	}
	if tags := c.PostForm("tags"); tags != "" {
		for _, t := range strings.Split(tags, ",") {
			if t = strings.TrimSpace(t); t != "" {
				material.Tags = append(material.Tags, t)
			}
		}
	}

	if err := config.DB.Create(&material).Error; err != nil {
		response.ServerError(c)
		return
	}

	response.Success(c, material)
}

// DeleteMaterial elimina un material de la biblioteca. El binario queda en
// Cloudinary; solo se borra el registro.
func DeleteMaterial(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "ID no válido")
		return
	}

	result := config.DB.Delete(&models.Material{}, id)
	if result.Error != nil {
		response.ServerError(c)
		return
	}
	if result.RowsAffected == 0 {
		response.NotFound(c)
		return
	}

	response.Success(c, gin.H{"deleted": id})
}
