package view

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestMoneyIndianGrouping(t *testing.T) {
	assert.Equal(t, "₹0.00", Money(0))
	assert.Equal(t, "₹749.00", Money(749))
	assert.Equal(t, "₹1,499.50", Money(1499.5))
	assert.Equal(t, "₹12,34,567.50", Money(1234567.5))
	assert.Equal(t, "₹1,00,00,000.00", Money(10000000))
	assert.Equal(t, "-₹250.00", Money(-250))
}

func TestDate(t *testing.T) {
	assert.Equal(t, "-", Date(time.Time{}))
	assert.Equal(t, "Mar 1, 2024", Date(time.Date(2024, time.March, 1, 10, 0, 0, 0, time.UTC)))
}
