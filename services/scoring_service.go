package services

import (
	"strconv"

	"cuidarte/models"
)

// leadFieldAccessors mapea los field_name de las reglas de scoring a campos
// tipados del lead. Un field_name desconocido simplemente nunca coincide.
var leadFieldAccessors = map[string]func(*models.Lead) string{
	"status":           func(l *models.Lead) string { return l.Status },
	"interest":         func(l *models.Lead) string { return l.Interest },
	"sex":              func(l *models.Lead) string { return l.Sex },
	"age":              func(l *models.Lead) string { return l.Age },
	"situacion":        func(l *models.Lead) string { return l.Situacion },
	"tipo_cancer":      func(l *models.Lead) string { return l.TipoCancer },
	"estadio":          func(l *models.Lead) string { return l.Estadio },
	"perdida_peso":     func(l *models.Lead) string { return l.PerdidaPeso },
	"actividad_fisica": func(l *models.Lead) string { return l.ActividadFisica },
	"disponibilidad":   func(l *models.Lead) string { return l.Disponibilidad },
	"downloaded_kit":   func(l *models.Lead) string { return strconv.FormatBool(l.DownloadedKit) },
}

// CalculateScore aplica las reglas por igualdad exacta de texto y suma el
// nivel de compromiso (0-10) directamente. Función pura: el orden de las
// reglas no altera el resultado.
func CalculateScore(lead *models.Lead, rules []models.ScoringRule) int {
	score := 0

	for _, rule := range rules {
		accessor, ok := leadFieldAccessors[rule.FieldName]
		if !ok {
			continue
		}
		if accessor(lead) == rule.ValueMatch {
			score += rule.Points
		}
	}

	score += lead.NivelCompromiso

	return score
}
