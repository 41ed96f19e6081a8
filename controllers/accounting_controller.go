package controllers

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"cuidarte/config"
	"cuidarte/dto"
	"cuidarte/models"
	"cuidarte/response"
	"cuidarte/services"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"
)

const accountingCacheTTL = 60 * time.Second

// AccountingController sirve el dashboard de contabilidad: métricas
// financieras, evolución anual, transacciones combinadas y métricas avanzadas.
type AccountingController struct {
	DB    *gorm.DB
	Redis *redis.Client
}

func NewAccountingController(db *gorm.DB, redisCli *redis.Client) *AccountingController {
	return &AccountingController{DB: db, Redis: redisCli}
}

// accountingData agrupa las tablas que alimentan todos los cálculos.
type accountingData struct {
	Sales    []models.Sale
	Clients  []models.Client
	Invoices []models.Invoice
	Expenses []models.MarketingExpense
	Links    []models.PaymentLink
}

// fetchData carga las cinco tablas en paralelo. Los cálculos son en memoria,
// así que se trae todo y se filtra después.
func (ctrl *AccountingController) fetchData(ctx context.Context) (*accountingData, error) {
	data := &accountingData{}
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		return ctrl.DB.WithContext(gctx).Order("sale_date desc").Find(&data.Sales).Error
	})
	g.Go(func() error {
		return ctrl.DB.WithContext(gctx).Preload("Coach").Find(&data.Clients).Error
	})
	g.Go(func() error {
		return ctrl.DB.WithContext(gctx).Find(&data.Invoices).Error
	})
	g.Go(func() error {
		return ctrl.DB.WithContext(gctx).Find(&data.Expenses).Error
	})
	g.Go(func() error {
		return ctrl.DB.WithContext(gctx).Find(&data.Links).Error
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return data, nil
}

func parseYear(c *gin.Context) int {
	year, err := strconv.Atoi(c.Query("year"))
	if err != nil || year < 2000 || year > 2100 {
		return time.Now().Year()
	}
	return year
}

// parsePeriod lee year y month de la query. month puede ser "all" para la
// vista anual.
func parsePeriod(c *gin.Context) (services.Period, error) {
	year := parseYear(c)
	raw := strings.TrimSpace(c.Query("month"))
	if raw == "" || raw == "all" {
		return services.YearPeriod(year), nil
	}
	month, err := strconv.Atoi(raw)
	if err != nil || month < 1 || month > 12 {
		return services.Period{}, fmt.Errorf("mes no válido: %q", raw)
	}
	return services.MonthPeriod(year, time.Month(month)), nil
}

// GetFinancialMetrics devuelve CAC, gastos por canal, cash contracted y
// collected y la tasa de cobranza del mes.
func (ctrl *AccountingController) GetFinancialMetrics(c *gin.Context) {
	year := parseYear(c)
	month, err := strconv.Atoi(c.Query("month"))
	if err != nil || month < 1 || month > 12 {
		response.BadRequest(c, "El mes es obligatorio (1..12)")
		return
	}

	cacheKey := fmt.Sprintf("accounting:metrics:%d:%d", year, month)
	var cached dto.FinancialMetrics
	if err := services.GetFromRedis(config.Ctx, ctrl.Redis, cacheKey, &cached); err == nil && cached.ExpensesByChannel != nil {
		response.Success(c, cached)
		return
	}

	data, err := ctrl.fetchData(c.Request.Context())
	if err != nil {
		response.ServerError(c)
		return
	}

	metrics := services.CalculateFinancialMetrics(
		data.Sales, data.Clients, data.Expenses, year, time.Month(month), data.Links)

	services.SetToRedis(config.Ctx, ctrl.Redis, cacheKey, metrics, accountingCacheTTL)
	response.Success(c, metrics)
}

// GetMonthlyRollup devuelve la evolución Ene..Dic de un año.
func (ctrl *AccountingController) GetMonthlyRollup(c *gin.Context) {
	year := parseYear(c)

	cacheKey := fmt.Sprintf("accounting:rollup:%d", year)
	var cached []dto.MonthBucket
	if err := services.GetFromRedis(config.Ctx, ctrl.Redis, cacheKey, &cached); err == nil && len(cached) > 0 {
		response.Success(c, cached)
		return
	}

	data, err := ctrl.fetchData(c.Request.Context())
	if err != nil {
		response.ServerError(c)
		return
	}

	rollup := services.BuildMonthlyRollup(data.Sales, data.Clients, data.Invoices, data.Links, year)

	services.SetToRedis(config.Ctx, ctrl.Redis, cacheKey, rollup, accountingCacheTTL)
	response.Success(c, rollup)
}

// GetTransactions devuelve la tabla combinada de ventas y renovaciones del
// periodo, con paginación opcional.
func (ctrl *AccountingController) GetTransactions(c *gin.Context) {
	p, err := parsePeriod(c)
	if err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	data, err := ctrl.fetchData(c.Request.Context())
	if err != nil {
		response.ServerError(c)
		return
	}

	transactions := services.BuildCombinedTransactions(data.Sales, data.Clients, data.Links, p)

	page, _ := strconv.Atoi(c.DefaultQuery("page", "0"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "0"))
	if page > 0 && limit > 0 {
		total := len(transactions)
		start := (page - 1) * limit
		if start > total {
			start = total
		}
		end := start + limit
		if end > total {
			end = total
		}
		response.SuccessWithPagination(c, transactions[start:end], page, limit, total)
		return
	}

	response.Success(c, transactions)
}

// GetAdvancedMetrics devuelve churn, forecast, LTV, funnel de retención,
// ranking por coach y duraciones. Acepta month=all para la vista anual.
func (ctrl *AccountingController) GetAdvancedMetrics(c *gin.Context) {
	p, err := parsePeriod(c)
	if err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	monthKey := "all"
	if !p.AllMonths() {
		monthKey = strconv.Itoa(int(p.Month()))
	}
	cacheKey := fmt.Sprintf("accounting:advanced:%d:%s", p.Year, monthKey)
	var cached dto.AdvancedMetrics
	if err := services.GetFromRedis(config.Ctx, ctrl.Redis, cacheKey, &cached); err == nil && cached.DurationStats.F1 != nil {
		response.Success(c, cached)
		return
	}

	data, err := ctrl.fetchData(c.Request.Context())
	if err != nil {
		response.ServerError(c)
		return
	}

	transactions := services.BuildCombinedTransactions(data.Sales, data.Clients, data.Links, p)
	rollup := services.BuildMonthlyRollup(data.Sales, data.Clients, data.Invoices, data.Links, p.Year)
	metrics := services.BuildAdvancedMetrics(data.Sales, data.Clients, transactions, rollup, p, time.Now())

	services.SetToRedis(config.Ctx, ctrl.Redis, cacheKey, metrics, accountingCacheTTL)
	response.Success(c, metrics)
}

// GetAccountingSummary devuelve el encabezado del dashboard: ingresos, gastos
// y margen neto del periodo.
func (ctrl *AccountingController) GetAccountingSummary(c *gin.Context) {
	p, err := parsePeriod(c)
	if err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	data, err := ctrl.fetchData(c.Request.Context())
	if err != nil {
		response.ServerError(c)
		return
	}

	summary := services.BuildAccountingSummary(data.Sales, data.Clients, data.Invoices, data.Links, p)
	response.Success(c, summary)
}
