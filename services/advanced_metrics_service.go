package services

import (
	"math"
	"sort"
	"time"

	"cuidarte/constants"
	"cuidarte/dto"
	"cuidarte/models"
)

// BuildAdvancedMetrics calcula el bloque avanzado del dashboard: duraciones
// medias, churn, base activa, forecast de renovaciones pendientes, LTV,
// funnel de retención, ranking por coach e histograma de duraciones por fase
// actual. El periodo anual promedia los buckets mensuales ya calculados para
// que la vista anual y la mensual siempre cuadren. now lo aporta el caller
// para mantener la función pura.
func BuildAdvancedMetrics(
	sales []models.Sale,
	clients []models.Client,
	transactions []dto.Transaction,
	rollup []dto.MonthBucket,
	p Period,
	now time.Time,
) dto.AdvancedMetrics {
	out := dto.AdvancedMetrics{IsAllMonths: p.AllMonths()}

	// 1. Duraciones
	var initialSum float64
	initialCount := 0
	for i := range sales {
		if sales[i].Status == constants.SaleStatusFailed {
			continue
		}
		dur := sales[i].ContractDuration
		if dur == 0 {
			dur = constants.DefaultContractDurationMonths
		}
		initialSum += float64(dur)
		initialCount++
	}
	if initialCount > 0 {
		out.AvgInitialDuration = initialSum / float64(initialCount)
	}

	var renewalSum float64
	renewalCount := 0
	for i := range clients {
		program := &clients[i].Program
		for _, r := range program.Renewals() {
			// F5 no aporta duración de renovación posterior
			if r.Phase == constants.PhaseF5 {
				continue
			}
			if r.Contracted && r.Duration > 0 {
				renewalSum += float64(r.Duration)
				renewalCount++
			}
		}
	}
	if renewalCount > 0 {
		out.AvgRenewalDuration = renewalSum / float64(renewalCount)
	}

	// 2. Churn y movimientos de la base
	if p.AllMonths() {
		curMonthIdx := int(now.Month()) - 1
		var monthsWithData []dto.MonthBucket
		for _, m := range rollup {
			if m.MonthIndex <= curMonthIdx || p.Year < now.Year() {
				monthsWithData = append(monthsWithData, m)
			}
		}
		count := len(monthsWithData)
		if count == 0 {
			count = 1
		}

		churnSum := 0.0
		for _, m := range monthsWithData {
			churnSum += m.Churn
		}
		out.ChurnRate = churnSum / float64(count)

		for _, m := range rollup {
			out.MonthlyDropouts += m.DropoutsCount
		}
		for i := range clients {
			c := &clients[i]
			if c.Status == constants.ClientStatusPaused && c.PauseDate != nil && c.PauseDate.Year() == p.Year {
				out.MonthlyPauses++
			}
			if c.Status == constants.ClientStatusInactive && c.InactiveDate != nil && c.InactiveDate.Year() == p.Year {
				out.MonthlyInactives++
			}
		}
		out.TotalLosses = out.MonthlyDropouts + out.MonthlyInactives

		baseSum := 0
		for _, m := range monthsWithData {
			baseSum += ActiveAtStart(clients, monthStart(p.Year, time.Month(m.MonthIndex+1)))
		}
		divisor := len(monthsWithData)
		if divisor == 0 {
			divisor = 1
		}
		out.ActiveAtStart = int(math.Round(float64(baseSum) / float64(divisor)))
	} else {
		mStart := monthStart(p.Year, p.Month())
		mEnd := monthEnd(p.Year, p.Month())

		out.ActiveAtStart = ActiveAtStart(clients, mStart)

		inPeriod := func(d *time.Time) bool {
			return d != nil && !d.Before(mStart) && !d.After(mEnd)
		}
		for i := range clients {
			c := &clients[i]
			switch c.Status {
			case constants.ClientStatusDropout:
				if inPeriod(c.AbandonmentDate) {
					out.MonthlyDropouts++
				}
			case constants.ClientStatusPaused:
				if inPeriod(c.PauseDate) {
					out.MonthlyPauses++
				}
			case constants.ClientStatusInactive:
				if inPeriod(c.InactiveDate) {
					out.MonthlyInactives++
				}
			}
		}
		out.TotalLosses = out.MonthlyDropouts + out.MonthlyInactives
		if out.ActiveAtStart > 0 {
			out.ChurnRate = float64(out.TotalLosses) / float64(out.ActiveAtStart) * 100
		}
	}

	// 3. Forecast a 9 meses de renovaciones aún sin contratar
	out.ForecastData = buildForecast(clients, now)

	// 4. LTV
	if p.AllMonths() {
		curMonthIdx := int(now.Month()) - 1
		var ltvSum float64
		ltvCount := 0
		for _, m := range rollup {
			if m.Ingresos > 0 || m.MonthIndex <= curMonthIdx {
				ltvSum += m.LTV
				ltvCount++
			}
		}
		if ltvCount == 0 {
			ltvCount = 1
		}
		out.AvgLTV = ltvSum / float64(ltvCount)
	} else {
		totalRev := 0.0
		uniqueEmails := make(map[string]bool)
		for _, t := range transactions {
			totalRev += t.SaleAmount
			uniqueEmails[normalizeEmail(t.ClientEmail)] = true
		}
		if n := len(uniqueEmails); n > 0 {
			out.AvgLTV = totalRev / float64(n)
		}
	}

	// 5. Funnel de retención (solo activos y en pausa)
	var activeClients []*models.Client
	for i := range clients {
		if clients[i].Status == constants.ClientStatusActive || clients[i].Status == constants.ClientStatusPaused {
			activeClients = append(activeClients, &clients[i])
		}
	}
	out.Funnel.F1 = len(activeClients)
	for _, c := range activeClients {
		if c.Program.RenewalF2Contracted {
			out.Funnel.F2++
		}
		if c.Program.RenewalF3Contracted {
			out.Funnel.F3++
		}
		if c.Program.RenewalF4Contracted {
			out.Funnel.F4++
		}
		if c.Program.RenewalF5Contracted {
			out.Funnel.F5++
		}
	}

	// 6. Retención por coach
	out.CoachStats = buildCoachStats(clients)

	// 7. Histograma de duraciones por fase actual
	out.DurationStats = buildDurationStats(activeClients, now)

	// 8. Ticket medio de venta nueva del periodo
	var newRevenue float64
	newCount := 0
	for _, s := range FilterSalesByPeriod(sales, p) {
		if s.Status == constants.SaleStatusFailed {
			continue
		}
		newRevenue += s.RevenueAmount()
		newCount++
	}
	if newCount == 0 {
		newCount = 1
	}
	out.AvgTicket = newRevenue / float64(newCount)

	return out
}

// buildForecast reparte las renovaciones pendientes de contratar en los
// próximos 9 meses. Sin importe asignado se estima con el valor por defecto.
func buildForecast(clients []models.Client, now time.Time) []dto.ForecastMonth {
	forecast := make([]dto.ForecastMonth, 9)
	for i := range forecast {
		d := now.AddDate(0, i, 0)
		forecast[i] = dto.ForecastMonth{
			Name:  spanishMonths[int(d.Month())-1],
			Month: int(d.Month()) - 1,
			Year:  d.Year(),
		}
	}

	for i := range clients {
		c := &clients[i]
		if c.Status == constants.ClientStatusDropout || c.Status == constants.ClientStatusInactive {
			continue
		}
		for _, r := range c.Program.Renewals() {
			if r.RenewalDate == nil || r.Contracted {
				continue
			}
			for j := range forecast {
				if forecast[j].Month == int(r.RenewalDate.Month())-1 && forecast[j].Year == r.RenewalDate.Year() {
					amount := c.RenewalAmount
					if amount == 0 {
						amount = constants.DefaultForecastRenewalAmount
					}
					forecast[j].Amount += amount
					break
				}
			}
		}
	}

	return forecast
}

func buildCoachStats(clients []models.Client) []dto.CoachRetention {
	byCoach := make(map[string][]*models.Client)
	for i := range clients {
		name := clients[i].PropertyCoach
		if name == "" {
			name = constants.UnassignedCoach
		}
		byCoach[name] = append(byCoach[name], &clients[i])
	}

	stats := make([]dto.CoachRetention, 0, len(byCoach))
	for name, group := range byCoach {
		active, dropouts := 0, 0
		for _, c := range group {
			switch c.Status {
			case constants.ClientStatusActive:
				active++
			case constants.ClientStatusDropout:
				dropouts++
			}
		}
		rate := 0.0
		if len(group) > 0 {
			denom := active + dropouts
			if denom == 0 {
				denom = 1
			}
			rate = float64(active) / float64(denom) * 100
		}
		stats = append(stats, dto.CoachRetention{
			Name:          name,
			Total:         len(group),
			Active:        active,
			Dropouts:      dropouts,
			RetentionRate: rate,
		})
	}

	sort.SliceStable(stats, func(i, j int) bool {
		if stats[i].RetentionRate != stats[j].RetentionRate {
			return stats[i].RetentionRate > stats[j].RetentionRate
		}
		return stats[i].Name < stats[j].Name
	})

	return stats
}

// CurrentPhase determina la fase vigente de un cliente recorriendo de F5 a F1
// y cortando en la primera condición satisfecha: fase contratada y fecha de
// fin de la fase anterior ya superada. Un cliente cuenta en una única fase.
func CurrentPhase(c *models.Client, now time.Time) string {
	p := &c.Program
	switch {
	case p.RenewalF5Contracted && p.F4EndDate != nil && now.After(*p.F4EndDate):
		return constants.PhaseF5
	case p.RenewalF4Contracted && p.F3EndDate != nil && now.After(*p.F3EndDate):
		return constants.PhaseF4
	case p.RenewalF3Contracted && p.F2EndDate != nil && now.After(*p.F2EndDate):
		return constants.PhaseF3
	case p.RenewalF2Contracted && p.F1EndDate != nil && now.After(*p.F1EndDate):
		return constants.PhaseF2
	default:
		return constants.PhaseF1
	}
}

func buildDurationStats(activeClients []*models.Client, now time.Time) dto.DurationStats {
	stats := dto.DurationStats{
		F1: make(map[int]int),
		F2: make(map[int]int),
		F3: make(map[int]int),
		F4: make(map[int]int),
		F5: make(map[int]int),
	}

	for _, c := range activeClients {
		p := &c.Program
		switch CurrentPhase(c, now) {
		case constants.PhaseF5:
			stats.F5[durationOr(p.F5Duration, 1)]++
		case constants.PhaseF4:
			stats.F4[durationOr(p.F4Duration, 1)]++
		case constants.PhaseF3:
			stats.F3[durationOr(p.F3Duration, 1)]++
		case constants.PhaseF2:
			stats.F2[durationOr(p.F2Duration, 1)]++
		default:
			stats.F1[durationOr(c.ProgramDurationMonths, constants.DefaultContractDurationMonths)]++
		}
	}

	return stats
}

func durationOr(dur, fallback int) int {
	if dur > 0 {
		return dur
	}
	return fallback
}
