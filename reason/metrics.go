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

package reason

import (
	metricsutil "github.com/ebay/n3proof/util/metrics"
	"github.com/prometheus/client_golang/prometheus"
)

// reasonMetrics defines all the metrics used by the reason package.
type reasonMetrics struct {
	applicationsStarted   prometheus.Counter
	applicationsSucceeded prometheus.Counter
	applicationsFailed    prometheus.Counter
	derivedFormulas       prometheus.Counter
	skolemBlankNodes      prometheus.Counter
	kbFormulas            prometheus.Gauge
	searchSteps           prometheus.Histogram
}

var metrics reasonMetrics

func init() {
	mr := metricsutil.Registry{R: prometheus.DefaultRegisterer}
	metrics = reasonMetrics{
		applicationsStarted: mr.NewCounter(prometheus.CounterOpts{
			Namespace: "n3proof",
			Subsystem: "reason",
			Name:      "applications_started",
			Help:      `The number of rule applications attempted through ApplyRule.`,
		}),
		applicationsSucceeded: mr.NewCounter(prometheus.CounterOpts{
			Namespace: "n3proof",
			Subsystem: "reason",
			Name:      "applications_succeeded",
			Help:      `The number of rule applications that derived a formula.`,
		}),
		applicationsFailed: mr.NewCounter(prometheus.CounterOpts{
			Namespace: "n3proof",
			Subsystem: "reason",
			Name:      "applications_failed",
			Help: `The number of rule applications that failed.

This counts invalid rule or premise indices, premises that did not match,
and searches cut short by the budget or deadline. Failed applications leave
the knowledge base and the proof untouched.
`,
		}),
		derivedFormulas: mr.NewCounter(prometheus.CounterOpts{
			Namespace: "n3proof",
			Subsystem: "reason",
			Name:      "derived_formulas",
			Help:      `The number of formulas added by rule applications, including Saturate runs. Axioms are not counted.`,
		}),
		skolemBlankNodes: mr.NewCounter(prometheus.CounterOpts{
			Namespace: "n3proof",
			Subsystem: "reason",
			Name:      "skolem_blank_nodes",
			Help:      `The number of blank nodes minted for existential conclusion variables.`,
		}),
		kbFormulas: mr.NewGauge(prometheus.GaugeOpts{
			Namespace: "n3proof",
			Subsystem: "reason",
			Name:      "kb_formulas",
			Help: `The number of formulas in the knowledge base.

With more than one engine in the process the gauge follows whichever engine
wrote last.
`,
		}),
		searchSteps: mr.NewHistogram(prometheus.HistogramOpts{
			Namespace: "n3proof",
			Subsystem: "reason",
			Name:      "unification_search_steps",
			Help: `The number of candidate statements tried during one rule application.

This observes the total across all premises of the application, whether or
not it matched. Values near the configured search budget mean the budget is
about to cut searches short.
`,
			Buckets: prometheus.ExponentialBuckets(1, 4, 10),
		}),
	}
}
