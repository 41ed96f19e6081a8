package services

import (
	"sort"
	"strings"

	"cuidarte/models"

	"github.com/fiam/gounidecode/unidecode"
	"github.com/schollz/closestmatch"
	"github.com/texttheater/golang-levenshtein/levenshtein"
)

// NormalizeSearch normaliza un texto de búsqueda: sin tildes, minúsculas.
func NormalizeSearch(input string) string {
	input = strings.TrimSpace(input)
	return strings.ToLower(unidecode.Unidecode(input))
}

// Similarity calcula la similitud entre dos cadenas normalizadas (0..1).
func Similarity(a, b string) float64 {
	distance := levenshtein.DistanceForStrings([]rune(a), []rune(b), levenshtein.DefaultOptions)
	maxLen := float64(len(a))
	if float64(len(b)) > maxLen {
		maxLen = float64(len(b))
	}

	if maxLen == 0 {
		return 1.0
	}

	return 1.0 - float64(distance)/maxLen
}

// newMatcher crea el closestmatch sobre la lista de nombres del equipo.
func newMatcher(keywords []string) *closestmatch.ClosestMatch {
	return closestmatch.New(keywords, []int{2, 3})
}

type staffMatch struct {
	user  models.User
	score float64
}

// SearchStaff busca miembros del equipo por nombre, email o puesto con
// tolerancia a tildes y errores de tecleo. Devuelve los resultados por
// relevancia descendente.
func SearchStaff(users []models.User, query string) []models.User {
	normalized := NormalizeSearch(query)
	if normalized == "" {
		return users
	}

	names := make([]string, 0, len(users))
	for i := range users {
		names = append(names, NormalizeSearch(users[i].Name))
	}
	cm := newMatcher(names)
	closest := cm.Closest(normalized)

	var matches []staffMatch
	for i := range users {
		u := users[i]
		name := NormalizeSearch(u.Name)
		email := NormalizeSearch(u.Email)
		position := NormalizeSearch(u.Position)

		score := 0.0
		if strings.Contains(name, normalized) || strings.Contains(email, normalized) || strings.Contains(position, normalized) {
			score = 1.0
		} else {
			score = Similarity(name, normalized)
			if closest != "" && name == closest {
				score += 0.2
			}
		}

		if score >= 0.5 {
			matches = append(matches, staffMatch{user: u, score: score})
		}
	}

	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].score > matches[j].score
	})

	out := make([]models.User, 0, len(matches))
	for _, m := range matches {
		out = append(out, m.user)
	}
	return out
}
