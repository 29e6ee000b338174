// Package chart maps the history window onto plottable series.
package chart

import (
	"strconv"

	"cooling_dashboard/internal/models"
)

// LabelStyle selects how x-axis labels are rendered. It is cosmetic only.
type LabelStyle int

const (
	LabelIndex LabelStyle = iota
	LabelBlank
)

// Projection is the chart input: one label and one value per sample, in buffer order.
type Projection struct {
	Labels  []string  `json:"labels"`
	Inside  []float64 `json:"inside"`
	Outside []float64 `json:"outside"`
}

// Len returns the number of points.
func (p Projection) Len() int { return len(p.Labels) }

// Project builds the series for samples. All three slices have len(samples) entries.
func Project(samples []models.TelemetrySample, style LabelStyle) Projection {
	p := Projection{
		Labels:  make([]string, len(samples)),
		Inside:  make([]float64, len(samples)),
		Outside: make([]float64, len(samples)),
	}
	for i, s := range samples {
		if style == LabelIndex {
			p.Labels[i] = strconv.Itoa(i)
		}
		p.Inside[i] = s.InsideTemp
		p.Outside[i] = s.OutsideTemp
	}
	return p
}
