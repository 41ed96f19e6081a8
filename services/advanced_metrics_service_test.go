package services

import (
	"testing"
	"time"

	"cuidarte/constants"
	"cuidarte/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCurrentPhase(t *testing.T) {
	now := time.Date(2024, time.June, 15, 0, 0, 0, 0, time.UTC)

	t.Run("sin renovaciones es F1", func(t *testing.T) {
		c := &models.Client{}
		assert.Equal(t, constants.PhaseF1, CurrentPhase(c, now))
	})

	t.Run("F2 contratada con F1 terminada", func(t *testing.T) {
		c := &models.Client{Program: models.Program{
			RenewalF2Contracted: true,
			F1EndDate:           datePtr(2024, time.March, 1),
		}}
		assert.Equal(t, constants.PhaseF2, CurrentPhase(c, now))
	})

	t.Run("F2 contratada pero F1 sin terminar sigue en F1", func(t *testing.T) {
		c := &models.Client{Program: models.Program{
			RenewalF2Contracted: true,
			F1EndDate:           datePtr(2024, time.September, 1),
		}}
		assert.Equal(t, constants.PhaseF1, CurrentPhase(c, now))
	})

	t.Run("la fase más alta satisfecha gana", func(t *testing.T) {
		c := &models.Client{Program: models.Program{
			RenewalF2Contracted: true,
			F1EndDate:           datePtr(2023, time.June, 1),
			RenewalF3Contracted: true,
			F2EndDate:           datePtr(2023, time.December, 1),
			RenewalF4Contracted: true,
			F3EndDate:           datePtr(2024, time.May, 1),
		}}
		assert.Equal(t, constants.PhaseF4, CurrentPhase(c, now))
	})

	t.Run("F4 contratada sin fecha de fin de F3 no avanza", func(t *testing.T) {
		c := &models.Client{Program: models.Program{
			RenewalF4Contracted: true,
			RenewalF2Contracted: true,
			F1EndDate:           datePtr(2023, time.June, 1),
		}}
		assert.Equal(t, constants.PhaseF2, CurrentPhase(c, now))
	})
}

func TestBuildAdvancedMetricsSingleMonth(t *testing.T) {
	now := time.Date(2024, time.March, 20, 0, 0, 0, 0, time.UTC)
	clients := []models.Client{
		{Status: constants.ClientStatusActive, StartDate: datePtr(2024, time.January, 1)},
		{Status: constants.ClientStatusActive, StartDate: datePtr(2024, time.January, 1)},
		{Status: constants.ClientStatusActive, StartDate: datePtr(2024, time.January, 1)},
		{Status: constants.ClientStatusDropout, StartDate: datePtr(2024, time.January, 1),
			AbandonmentDate: datePtr(2024, time.March, 10)},
		{Status: constants.ClientStatusInactive, StartDate: datePtr(2024, time.January, 1),
			InactiveDate: datePtr(2024, time.March, 12)},
		// Pausa del mes: cuenta como pausa pero no como pérdida
		{Status: constants.ClientStatusPaused, StartDate: datePtr(2024, time.January, 1),
			PauseDate: datePtr(2024, time.March, 5)},
	}

	p := MonthPeriod(2024, time.March)
	out := BuildAdvancedMetrics(nil, clients, nil, nil, p, now)

	assert.False(t, out.IsAllMonths)
	assert.Equal(t, 6, out.ActiveAtStart)
	assert.Equal(t, 1, out.MonthlyDropouts)
	assert.Equal(t, 1, out.MonthlyInactives)
	assert.Equal(t, 1, out.MonthlyPauses)
	assert.Equal(t, 2, out.TotalLosses)
	assert.InDelta(t, 100.0/3.0, out.ChurnRate, 0.001)
}

func TestBuildAdvancedMetricsDurations(t *testing.T) {
	now := time.Date(2024, time.June, 1, 0, 0, 0, 0, time.UTC)
	sales := []models.Sale{
		{ID: 1, SaleAmount: 100, Status: constants.SaleStatusWon, ContractDuration: 12,
			SaleDate: datePtr(2024, time.January, 1)},
		// Sin duración registrada cuenta con la duración por defecto
		{ID: 2, SaleAmount: 100, Status: constants.SaleStatusWon,
			SaleDate: datePtr(2024, time.February, 1)},
		{ID: 3, SaleAmount: 100, Status: constants.SaleStatusFailed, ContractDuration: 24,
			SaleDate: datePtr(2024, time.March, 1)},
	}
	clients := []models.Client{
		{Status: constants.ClientStatusActive,
			Program: models.Program{RenewalF2Contracted: true, F2Duration: 6, RenewalF3Contracted: true, F3Duration: 12}},
		// F5 no aporta duración de renovación
		{Status: constants.ClientStatusActive,
			Program: models.Program{RenewalF5Contracted: true, F5Duration: 9}},
	}

	out := BuildAdvancedMetrics(sales, clients, nil, nil, MonthPeriod(2024, time.June), now)

	assert.Equal(t, 9.0, out.AvgInitialDuration)
	assert.Equal(t, 9.0, out.AvgRenewalDuration)
}

func TestBuildForecastDefaults(t *testing.T) {
	now := time.Date(2024, time.March, 1, 0, 0, 0, 0, time.UTC)
	clients := []models.Client{
		// Sin importe asignado: usa el valor por defecto
		{Status: constants.ClientStatusActive,
			Program: models.Program{F2RenewalDate: datePtr(2024, time.May, 10)}},
		// Con importe asignado
		{Status: constants.ClientStatusActive, RenewalAmount: 1500,
			Program: models.Program{F3RenewalDate: datePtr(2024, time.May, 20)}},
		// Contratada: ya no es forecast
		{Status: constants.ClientStatusActive, RenewalAmount: 700,
			Program: models.Program{F2RenewalDate: datePtr(2024, time.May, 5), RenewalF2Contracted: true}},
		// De baja: fuera
		{Status: constants.ClientStatusDropout,
			Program: models.Program{F2RenewalDate: datePtr(2024, time.May, 8)}},
		// Fuera de la ventana de 9 meses
		{Status: constants.ClientStatusActive,
			Program: models.Program{F2RenewalDate: datePtr(2025, time.June, 1)}},
	}

	out := BuildAdvancedMetrics(nil, clients, nil, nil, MonthPeriod(2024, time.March), now)
	require.Len(t, out.ForecastData, 9)

	assert.Equal(t, "Mar", out.ForecastData[0].Name)
	may := out.ForecastData[2]
	assert.Equal(t, "May", may.Name)
	assert.Equal(t, constants.DefaultForecastRenewalAmount+1500, may.Amount)

	var total float64
	for _, f := range out.ForecastData {
		total += f.Amount
	}
	assert.Equal(t, constants.DefaultForecastRenewalAmount+1500, total)
}

func TestBuildAdvancedMetricsFunnel(t *testing.T) {
	now := time.Date(2024, time.June, 1, 0, 0, 0, 0, time.UTC)
	clients := []models.Client{
		{Status: constants.ClientStatusActive,
			Program: models.Program{RenewalF2Contracted: true, RenewalF3Contracted: true}},
		{Status: constants.ClientStatusPaused,
			Program: models.Program{RenewalF2Contracted: true}},
		{Status: constants.ClientStatusActive},
		// Las bajas no entran en el funnel
		{Status: constants.ClientStatusDropout,
			Program: models.Program{RenewalF2Contracted: true}},
	}

	out := BuildAdvancedMetrics(nil, clients, nil, nil, MonthPeriod(2024, time.June), now)

	assert.Equal(t, 3, out.Funnel.F1)
	assert.Equal(t, 2, out.Funnel.F2)
	assert.Equal(t, 1, out.Funnel.F3)
	assert.Equal(t, 0, out.Funnel.F4)
}

func TestBuildCoachStats(t *testing.T) {
	clients := []models.Client{
		{Status: constants.ClientStatusActive, PropertyCoach: "Clara"},
		{Status: constants.ClientStatusActive, PropertyCoach: "Clara"},
		{Status: constants.ClientStatusDropout, PropertyCoach: "Clara"},
		{Status: constants.ClientStatusActive, PropertyCoach: "Marta"},
		{Status: constants.ClientStatusActive},
	}

	stats := buildCoachStats(clients)
	require.Len(t, stats, 3)

	// Orden por retención descendente, empate por nombre
	assert.Equal(t, "Marta", stats[0].Name)
	assert.Equal(t, 100.0, stats[0].RetentionRate)
	assert.Equal(t, constants.UnassignedCoach, stats[1].Name)

	clara := stats[2]
	assert.Equal(t, "Clara", clara.Name)
	assert.Equal(t, 3, clara.Total)
	assert.Equal(t, 2, clara.Active)
	assert.Equal(t, 1, clara.Dropouts)
	assert.InDelta(t, 66.666, clara.RetentionRate, 0.01)
}

func TestBuildAdvancedMetricsAllMonths(t *testing.T) {
	// En la vista anual el churn es la media de los meses con datos y el LTV
	// la media de los buckets con ingresos
	now := time.Date(2024, time.April, 10, 0, 0, 0, 0, time.UTC)
	clients := []models.Client{
		{Status: constants.ClientStatusActive, StartDate: datePtr(2023, time.December, 1)},
		{Status: constants.ClientStatusActive, StartDate: datePtr(2023, time.December, 1)},
		{Status: constants.ClientStatusDropout, StartDate: datePtr(2023, time.December, 1),
			AbandonmentDate: datePtr(2024, time.February, 10)},
	}
	sales := []models.Sale{
		{ID: 1, ClientEmail: "a@a.com", SaleAmount: 900, Status: constants.SaleStatusWon,
			SaleDate: datePtr(2024, time.January, 5)},
	}

	rollup := BuildMonthlyRollup(sales, clients, nil, nil, 2024)
	out := BuildAdvancedMetrics(sales, clients, nil, rollup, YearPeriod(2024), now)

	assert.True(t, out.IsAllMonths)
	// Bajas de todo el año
	assert.Equal(t, 1, out.MonthlyDropouts)

	// Churn medio de Ene..Abr: feb pierde 1 sobre base 3
	expected := (0.0 + 100.0/3.0 + 0.0 + 0.0) / 4.0
	assert.InDelta(t, expected, out.ChurnRate, 0.001)
}

func TestBuildAdvancedMetricsAvgTicket(t *testing.T) {
	now := time.Date(2024, time.June, 1, 0, 0, 0, 0, time.UTC)
	net := 450.0
	sales := []models.Sale{
		{ID: 1, SaleAmount: 500, NetAmount: &net, Status: constants.SaleStatusWon,
			SaleDate: datePtr(2024, time.June, 2)},
		{ID: 2, SaleAmount: 1000, Status: constants.SaleStatusWon,
			SaleDate: datePtr(2024, time.June, 9)},
		{ID: 3, SaleAmount: 9999, Status: constants.SaleStatusFailed,
			SaleDate: datePtr(2024, time.June, 12)},
	}

	out := BuildAdvancedMetrics(sales, nil, nil, nil, MonthPeriod(2024, time.June), now)
	// El ticket medio usa el neto cuando existe y excluye fallidas
	assert.Equal(t, 725.0, out.AvgTicket)
}

func TestBuildAdvancedMetricsSingleMonthLTV(t *testing.T) {
	now := time.Date(2024, time.March, 25, 0, 0, 0, 0, time.UTC)
	transactions := BuildCombinedTransactions(
		[]models.Sale{
			{ID: 1, ClientEmail: "a@a.com", SaleAmount: 600, Status: constants.SaleStatusWon,
				SaleDate: datePtr(2024, time.March, 3)},
			{ID: 2, ClientEmail: "a@a.com", SaleAmount: 400, Status: constants.SaleStatusWon,
				SaleDate: datePtr(2024, time.March, 18)},
			{ID: 3, ClientEmail: "b@b.com", SaleAmount: 500, Status: constants.SaleStatusWon,
				SaleDate: datePtr(2024, time.March, 9)},
		},
		nil, nil, MonthPeriod(2024, time.March))

	out := BuildAdvancedMetrics(nil, nil, transactions, nil, MonthPeriod(2024, time.March), now)
	// 1500 entre 2 emails únicos
	assert.Equal(t, 750.0, out.AvgLTV)
}
