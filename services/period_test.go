package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestPeriodContains(t *testing.T) {
	march := MonthPeriod(2024, time.March)

	assert.True(t, march.Contains(time.Date(2024, time.March, 1, 0, 0, 0, 0, time.UTC)))
	assert.True(t, march.Contains(time.Date(2024, time.March, 31, 23, 59, 59, 0, time.UTC)))
	assert.False(t, march.Contains(time.Date(2024, time.April, 1, 0, 0, 0, 0, time.UTC)))
	assert.False(t, march.Contains(time.Date(2023, time.March, 15, 0, 0, 0, 0, time.UTC)))

	year := YearPeriod(2024)
	assert.True(t, year.AllMonths())
	assert.True(t, year.Contains(time.Date(2024, time.December, 31, 12, 0, 0, 0, time.UTC)))
	assert.False(t, year.Contains(time.Date(2025, time.January, 1, 0, 0, 0, 0, time.UTC)))
}
