package services

import (
	"testing"

	"cuidarte/models"

	"github.com/stretchr/testify/assert"
)

func TestParsePrice(t *testing.T) {
	cases := []struct {
		raw  string
		want float64
	}{
		{"1.234,56", 1234.56},
		{"500", 500},
		{"997,00", 997},
		{"1.000", 1000},
		{"250,5", 250.5},
		{"500 €", 500},
		{"  750  ", 750},
		{"", 0},
		{"gratis", 0},
		{"n/a", 0},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.want, ParsePrice(tc.raw), "ParsePrice(%q)", tc.raw)
	}
}

func TestResolveRenewalAmount(t *testing.T) {
	links := []models.PaymentLink{
		{URL: "https://pay.example.com/f2", Price: "1.234,56"},
		{URL: "https://pay.example.com/f3", Price: "997"},
	}

	t.Run("importe explícito tiene prioridad", func(t *testing.T) {
		c := &models.Client{RenewalAmount: 800, RenewalPaymentLink: "https://pay.example.com/f2"}
		assert.Equal(t, 800.0, ResolveRenewalAmount(c, links))
	})

	t.Run("sin importe usa el precio del enlace", func(t *testing.T) {
		c := &models.Client{RenewalPaymentLink: "https://pay.example.com/f2"}
		assert.Equal(t, 1234.56, ResolveRenewalAmount(c, links))
	})

	t.Run("enlace desconocido vale cero", func(t *testing.T) {
		c := &models.Client{RenewalPaymentLink: "https://pay.example.com/otro"}
		assert.Equal(t, 0.0, ResolveRenewalAmount(c, links))
	})

	t.Run("sin importe ni enlace vale cero", func(t *testing.T) {
		assert.Equal(t, 0.0, ResolveRenewalAmount(&models.Client{}, links))
	})
}
