package main

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestZVal(t *testing.T) {
	assert.InDelta(t, 1.96, zVal(95), 0.001)
	assert.InDelta(t, 2.576, zVal(99), 0.001)
}

func TestSummarize(t *testing.T) {
	sum := summarize(1000, []time.Duration{time.Second})
	assert.Equal(t, time.Second, sum.Mean)
	assert.InDelta(t, 1000, sum.NPS, 1e-6)
	assert.Zero(t, sum.Margin)

	sum = summarize(1000, []time.Duration{time.Second, 500 * time.Millisecond})
	assert.Equal(t, 750*time.Millisecond, sum.Mean)
	assert.InDelta(t, 1500, sum.NPS, 1e-6)
	// sample deviation of {1000, 2000}
	assert.InDelta(t, math.Sqrt(500000), sum.StdDev, 1e-6)
	assert.InDelta(t, 1.96*sum.StdDev/math.Sqrt2, sum.Margin, 0.5)

	assert.Equal(t, timing{}, summarize(1, nil))
}
