package routes

import (
	"context"
	"net/http"

	"cuidarte/config"
	"cuidarte/constants"
	"cuidarte/controllers"
	middlewares "cuidarte/middleware"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
	"github.com/gin-gonic/gin"
	"github.com/olahol/melody"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

func SetupRoutes(router *gin.Engine, db *gorm.DB, redisCli *redis.Client, cld *cloudinary.Cloudinary, m *melody.Melody) {

	router.Use(middlewares.SessionMiddleware())

	accountingController := controllers.NewAccountingController(db, redisCli)
	announcementController := controllers.NewAnnouncementController(db, m)
	notificationController := controllers.NewNotificationController(db, m)

	direccion := constants.RoleDireccion
	contabilidad := constants.RoleContabilidad
	coach := constants.RoleCoach
	closer := constants.RoleCloser
	setter := constants.RoleSetter

	v1 := router.Group("/api/v1")

	// Autenticación
	v1.POST("/auth/login", controllers.Login)
	v1.POST("/auth/google", controllers.AuthGoogle)
	v1.GET("/profile", controllers.GetProfile)

	// Contabilidad
	v1.GET("/accounting/metrics", middlewares.AuthMiddleware(direccion, contabilidad), accountingController.GetFinancialMetrics)
	v1.GET("/accounting/rollup", middlewares.AuthMiddleware(direccion, contabilidad), accountingController.GetMonthlyRollup)
	v1.GET("/accounting/transactions", middlewares.AuthMiddleware(direccion, contabilidad), accountingController.GetTransactions)
	v1.GET("/accounting/advanced", middlewares.AuthMiddleware(direccion, contabilidad), accountingController.GetAdvancedMetrics)
	v1.GET("/accounting/summary", middlewares.AuthMiddleware(direccion, contabilidad), accountingController.GetAccountingSummary)

	// Ventas
	v1.GET("/sales", middlewares.AuthMiddleware(direccion, contabilidad, closer), controllers.GetSales)
	v1.POST("/sales", middlewares.AuthMiddleware(direccion, contabilidad, closer), controllers.CreateSale)
	v1.PUT("/sales/:id", middlewares.AuthMiddleware(direccion, contabilidad), controllers.UpdateSale)
	v1.PUT("/sales/:id/commission", middlewares.AuthMiddleware(direccion, contabilidad), controllers.ToggleCommission)

	// Gastos de marketing
	v1.GET("/expenses", middlewares.AuthMiddleware(direccion, contabilidad), controllers.GetMarketingExpenses)
	v1.POST("/expenses", middlewares.AuthMiddleware(direccion, contabilidad), controllers.CreateMarketingExpense)
	v1.PUT("/expenses/:id", middlewares.AuthMiddleware(direccion, contabilidad), controllers.UpdateMarketingExpense)
	v1.DELETE("/expenses/:id", middlewares.AuthMiddleware(direccion, contabilidad), controllers.DeleteMarketingExpense)
	v1.GET("/expenses/summary", middlewares.AuthMiddleware(direccion, contabilidad), controllers.GetExpenseSummary)

	// Facturas de coach
	v1.GET("/invoices", middlewares.AuthMiddleware(direccion, contabilidad, coach), controllers.GetInvoices)
	v1.POST("/invoices", middlewares.AuthMiddleware(coach), controllers.CreateInvoice)
	v1.PUT("/invoices/:id/status", middlewares.AuthMiddleware(direccion, contabilidad), controllers.UpdateInvoiceStatus(m))

	// Enlaces de pago
	v1.GET("/payment-links", middlewares.AuthMiddleware(direccion, contabilidad), controllers.GetPaymentLinks)
	v1.POST("/payment-links", middlewares.AuthMiddleware(direccion, contabilidad), controllers.CreatePaymentLink)
	v1.PUT("/payment-links/:id", middlewares.AuthMiddleware(direccion, contabilidad), controllers.UpdatePaymentLink)

	// Clientes
	v1.GET("/clients", middlewares.AuthMiddleware(direccion, contabilidad, coach), controllers.GetClients)
	v1.GET("/clients/:id", middlewares.AuthMiddleware(direccion, contabilidad, coach), controllers.GetClientByID)
	v1.POST("/clients", middlewares.AuthMiddleware(direccion, contabilidad), controllers.CreateClient)
	v1.PUT("/clients/:id", middlewares.AuthMiddleware(direccion, contabilidad, coach), controllers.UpdateClient)
	v1.PUT("/clients/:id/status", middlewares.AuthMiddleware(direccion, contabilidad, coach), controllers.ChangeClientStatus)

	// Anuncios
	v1.GET("/announcements", middlewares.AuthMiddleware(direccion), announcementController.GetAnnouncements)
	v1.POST("/announcements", middlewares.AuthMiddleware(direccion), announcementController.CreateAnnouncement)
	v1.PUT("/announcements/:id", middlewares.AuthMiddleware(direccion), announcementController.UpdateAnnouncement)
	v1.DELETE("/announcements/:id", middlewares.AuthMiddleware(direccion), announcementController.DeleteAnnouncement)

	// Feed del equipo
	v1.GET("/feed", middlewares.AuthMiddleware(), controllers.GetFeed)
	v1.PUT("/feed/:kind/:id/read", middlewares.AuthMiddleware(), controllers.MarkFeedRead)
	v1.PUT("/feed/read-all", middlewares.AuthMiddleware(), controllers.MarkAllFeedRead)

	// Notificaciones
	v1.POST("/notifications", middlewares.AuthMiddleware(direccion, contabilidad), notificationController.CreateNotification)
	v1.DELETE("/notifications/:id", middlewares.AuthMiddleware(), notificationController.DeleteNotification)

	// Leads y puntuación
	v1.GET("/leads", middlewares.AuthMiddleware(direccion, closer, setter), controllers.GetLeads)
	v1.POST("/leads", middlewares.AuthMiddleware(direccion, closer, setter), controllers.CreateLead)
	v1.PUT("/leads/:id", middlewares.AuthMiddleware(direccion, closer, setter), controllers.UpdateLead)
	v1.DELETE("/leads/:id", middlewares.AuthMiddleware(direccion), controllers.DeleteLead)
	v1.GET("/scoring-rules", middlewares.AuthMiddleware(direccion, closer, setter), controllers.GetScoringRules)
	v1.POST("/scoring-rules", middlewares.AuthMiddleware(direccion), controllers.CreateScoringRule)
	v1.PUT("/scoring-rules/:id", middlewares.AuthMiddleware(direccion), controllers.UpdateScoringRule)
	v1.DELETE("/scoring-rules/:id", middlewares.AuthMiddleware(direccion), controllers.DeleteScoringRule)
	v1.POST("/scoring-rules/recompute", middlewares.AuthMiddleware(direccion), controllers.RecomputeLeadScores)

	// Biblioteca de materiales
	v1.GET("/materials", middlewares.AuthMiddleware(), controllers.GetMaterials)
	v1.POST("/materials", middlewares.AuthMiddleware(direccion, contabilidad, coach), controllers.UploadMaterial)
	v1.DELETE("/materials/:id", middlewares.AuthMiddleware(direccion), controllers.DeleteMaterial)

	// Equipo
	v1.GET("/team", middlewares.AuthMiddleware(), controllers.GetTeam)
	v1.POST("/team", middlewares.AuthMiddleware(direccion), controllers.CreateTeamMember)
	v1.PUT("/team/:id", middlewares.AuthMiddleware(), controllers.UpdateTeamMember)

	// Permisos por rol
	v1.GET("/permissions", middlewares.AuthMiddleware(), controllers.GetRolePermissions)
	v1.PUT("/permissions", middlewares.AuthMiddleware(direccion), controllers.UpdateRolePermission)

	// Subida genérica de imágenes (avatares)
	v1.POST("/img/upload", middlewares.AuthMiddleware(), func(c *gin.Context) {
		file, err := c.FormFile("file")
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "No hay archivo"})
			return
		}

		src, err := file.Open()
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Error al abrir el archivo"})
			return
		}
		defer src.Close()

		ctx := context.Background()
		resp, err := config.Cloudinary.Upload.Upload(ctx, src, uploader.UploadParams{Folder: "avatares"})
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "La subida falló"})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"message": "Subida correcta",
			"url":     resp.SecureURL,
		})
	})
}
