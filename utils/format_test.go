package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFormatCurrency(t *testing.T) {
	assert.Equal(t, "0,00", FormatCurrency(0))
	assert.Equal(t, "120,00", FormatCurrency(120))
	assert.Equal(t, "1.250,50", FormatCurrency(1250.5))
	assert.Equal(t, "12.345,50", FormatCurrency(12345.5))
	assert.Equal(t, "1.000.000,00", FormatCurrency(1000000))
}

func TestFormatDuration(t *testing.T) {
	assert.Equal(t, "1m", FormatDuration(10*time.Second))
	assert.Equal(t, "1m", FormatDuration(time.Minute))
	assert.Equal(t, "45m", FormatDuration(45*time.Minute))
	assert.Equal(t, "1h 00m", FormatDuration(time.Hour))
	assert.Equal(t, "1h 05m", FormatDuration(time.Hour+5*time.Minute))
	assert.Equal(t, "2h 30m", FormatDuration(150*time.Minute))
}
