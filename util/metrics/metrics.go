// Copyright 2019 eBay Inc.
// Primary authors: Simon Fell, Diego Ongaro,
//                  Raymond Kroeker, and Sathish Kandasamy.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
// https://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package metrics helps packages define and register their Prometheus
// metrics. Packages typically declare a struct of metrics and fill it in
// from an init function using a Registry.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Registry creates metrics and registers them with R as they are created.
// Creating a metric that collides with one already registered on R panics,
// as that's a programming error in the package defining the metric.
type Registry struct {
	R prometheus.Registerer
}

// NewCounter returns a registered Counter.
func (r Registry) NewCounter(opts prometheus.CounterOpts) prometheus.Counter {
	c := prometheus.NewCounter(opts)
	r.R.MustRegister(c)
	return c
}

// NewGauge returns a registered Gauge.
func (r Registry) NewGauge(opts prometheus.GaugeOpts) prometheus.Gauge {
	g := prometheus.NewGauge(opts)
	r.R.MustRegister(g)
	return g
}

// NewHistogram returns a registered Histogram.
func (r Registry) NewHistogram(opts prometheus.HistogramOpts) prometheus.Histogram {
	h := prometheus.NewHistogram(opts)
	r.R.MustRegister(h)
	return h
}
