package services

import (
	"regexp"
	"strconv"
	"strings"

	"cuidarte/models"
)

var nonPriceChars = regexp.MustCompile(`[^0-9.]`)

// ParsePrice convierte un precio en texto a número. Acepta formato europeo
// ("1.234,56" -> 1234.56) y texto con símbolos ("500 €" -> 500). Nunca falla:
// un valor irreconocible vale 0.
func ParsePrice(raw string) float64 {
	s := strings.TrimSpace(raw)
	if s == "" {
		return 0
	}
	s = strings.ReplaceAll(s, ".", "")
	s = strings.ReplaceAll(s, ",", ".")
	s = nonPriceChars.ReplaceAllString(s, "")
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	return v
}

// ResolveRenewalAmount resuelve el importe de una renovación en orden de
// prioridad: renewal_amount explícito, precio del enlace de pago, 0.
func ResolveRenewalAmount(client *models.Client, links []models.PaymentLink) float64 {
	if client.RenewalAmount != 0 {
		return client.RenewalAmount
	}
	if client.RenewalPaymentLink == "" {
		return 0
	}
	for i := range links {
		if links[i].URL == client.RenewalPaymentLink {
			return ParsePrice(links[i].Price)
		}
	}
	return 0
}
