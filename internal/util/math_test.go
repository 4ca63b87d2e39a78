package util

import (
	"github.com/stretchr/testify/assert"
	"testing"
)

func TestRatio(t *testing.T) {
	// GIVEN
	a := 0.0
	b := 100.0
	c := 50.0

	expected := 0.5

	// WHEN
	result := Ratio(c, a, b)

	// THEN
	assert.Equal(t, expected, result)
}

func TestMax(t *testing.T) {
	// GIVEN
	values := []float64{30.0, 90.0, 45.5}

	// WHEN
	result := Max(values)

	// THEN
	assert.Equal(t, 90.0, result)
}

func TestMax_Negative(t *testing.T) {
	// GIVEN
	values := []float64{-10.0, -2.5}

	// WHEN
	result := Max(values)

	// THEN
	assert.Equal(t, -2.5, result)
}

func TestMax_Empty(t *testing.T) {
	assert.Equal(t, 0.0, Max(nil))
}
