package services

import (
	"testing"

	"cuidarte/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeSearch(t *testing.T) {
	assert.Equal(t, "maria lopez", NormalizeSearch("  María López "))
	assert.Equal(t, "nunez", NormalizeSearch("Núñez"))
}

func TestSearchStaff(t *testing.T) {
	team := []models.User{
		{ID: 1, Name: "María López", Email: "maria@cuid-arte.com", Position: "Coach"},
		{ID: 2, Name: "Andrés Núñez", Email: "andres@cuid-arte.com", Position: "Closer"},
		{ID: 3, Name: "Clara Ruiz", Email: "clara@cuid-arte.com", Position: "Coach"},
	}

	t.Run("sin tildes encuentra igual", func(t *testing.T) {
		got := SearchStaff(team, "nunez")
		require.NotEmpty(t, got)
		assert.Equal(t, uint(2), got[0].ID)
	})

	t.Run("busca por puesto", func(t *testing.T) {
		got := SearchStaff(team, "coach")
		require.Len(t, got, 2)
	})

	t.Run("tolera un error de tecleo", func(t *testing.T) {
		got := SearchStaff(team, "clara riuz")
		require.NotEmpty(t, got)
		assert.Equal(t, uint(3), got[0].ID)
	})

	t.Run("consulta vacía devuelve todos", func(t *testing.T) {
		assert.Len(t, SearchStaff(team, "   "), 3)
	})
}
