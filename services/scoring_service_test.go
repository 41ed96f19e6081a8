package services

import (
	"testing"

	"cuidarte/models"

	"github.com/stretchr/testify/assert"
)

func TestCalculateScore(t *testing.T) {
	rules := []models.ScoringRule{
		{FieldName: "situacion", ValueMatch: "en_tratamiento", Points: 20},
		{FieldName: "disponibilidad", ValueMatch: "alta", Points: 10},
		{FieldName: "downloaded_kit", ValueMatch: "true", Points: 5},
		{FieldName: "campo_desconocido", ValueMatch: "x", Points: 99},
	}

	lead := &models.Lead{
		Situacion:       "en_tratamiento",
		Disponibilidad:  "alta",
		DownloadedKit:   true,
		NivelCompromiso: 7,
	}

	// 20 + 10 + 5 + compromiso 7; la regla con campo desconocido no suma
	assert.Equal(t, 42, CalculateScore(lead, rules))
}

func TestCalculateScoreExactMatchOnly(t *testing.T) {
	rules := []models.ScoringRule{
		{FieldName: "situacion", ValueMatch: "en_tratamiento", Points: 20},
	}

	// La coincidencia es exacta, sin normalizar mayúsculas
	lead := &models.Lead{Situacion: "En_Tratamiento"}
	assert.Equal(t, 0, CalculateScore(lead, rules))
}

func TestCalculateScoreOrderIndependent(t *testing.T) {
	rules := []models.ScoringRule{
		{FieldName: "situacion", ValueMatch: "superviviente", Points: 15},
		{FieldName: "actividad_fisica", ValueMatch: "nula", Points: 5},
	}
	reversed := []models.ScoringRule{rules[1], rules[0]}

	lead := &models.Lead{Situacion: "superviviente", ActividadFisica: "nula", NivelCompromiso: 3}
	assert.Equal(t, CalculateScore(lead, rules), CalculateScore(lead, reversed))
	assert.Equal(t, 23, CalculateScore(lead, rules))
}

func TestCalculateScoreEmptyRules(t *testing.T) {
	lead := &models.Lead{NivelCompromiso: 4}
	// Sin reglas el score es solo el nivel de compromiso
	assert.Equal(t, 4, CalculateScore(lead, nil))
}
