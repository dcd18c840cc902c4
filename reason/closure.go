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
	"context"
	"errors"

	"github.com/ebay/n3proof/kb"
	opentracing "github.com/opentracing/opentracing-go"
	log "github.com/sirupsen/logrus"
)

// SaturateOptions bound a Saturate run.
type SaturateOptions struct {
	// MaxDerivations stops the run once this many formulas have been
	// derived. 0 means no cap.
	MaxDerivations int
}

// Saturate applies every rule to every tuple of knowledge base formulas,
// in index order, until a full pass derives nothing new. A conclusion
// alpha-equivalent to a formula already present is not added again; this
// check exists only here, AddAxiom and ApplyRule always append. Formulas
// derived during a pass become candidates on the next pass. Returns the
// number of formulas derived.
//
// The run stops early when the context is cancelled, when a single
// application exhausts its search budget, or when MaxDerivations is
// reached. A rule whose conclusion mints skolem blank nodes derives a
// fresh formula on every pass, because the new blank nodes keep its
// conclusions from ever being alpha-equivalent; bound such rule sets with
// MaxDerivations.
func (e *Engine) Saturate(ctx context.Context, opts SaturateOptions) (int, error) {
	span, ctx := opentracing.StartSpanFromContext(ctx, "Saturate")
	defer span.Finish()
	derived := 0
	defer func() { span.SetTag("derived", derived) }()

	seen := make(map[string]struct{}, e.store.Len())
	for _, f := range e.store.Snapshot() {
		seen[f.CanonicalKey()] = struct{}{}
	}
	for {
		before := derived
		kbLen := kb.Index(e.store.Len())
		for _, rule := range e.rules {
			if len(rule.Premises) > 0 && kbLen == 0 {
				continue
			}
			tuple := make([]kb.Index, len(rule.Premises))
			for {
				if err := ctx.Err(); err != nil {
					return derived, err
				}
				added, err := e.saturateTuple(ctx, rule, tuple, seen)
				if err != nil {
					return derived, err
				}
				if added {
					derived++
					if opts.MaxDerivations > 0 && derived >= opts.MaxDerivations {
						return derived, nil
					}
				}
				// Advance the premise tuple, rightmost position
				// fastest, over the formulas this pass started with.
				i := len(tuple) - 1
				for i >= 0 {
					tuple[i]++
					if tuple[i] < kbLen {
						break
					}
					tuple[i] = 0
					i--
				}
				if i < 0 {
					break
				}
			}
		}
		if derived == before {
			log.WithFields(log.Fields{"derived": derived}).Debug("Saturation reached a fixpoint")
			return derived, nil
		}
	}
}

// saturateTuple tries one rule against one premise tuple. It reports
// whether a new formula was derived; a failed match is not an error here.
func (e *Engine) saturateTuple(ctx context.Context, rule *Rule, tuple []kb.Index, seen map[string]struct{}) (bool, error) {
	formulas, indexes, err := e.resolve(tuple)
	if err != nil {
		return false, err
	}
	conclusion, steps, err := rule.Apply(ctx, formulas, e.applyOptions(indexes))
	metrics.searchSteps.Observe(float64(steps))
	if err != nil {
		if errors.Is(err, ErrNoMatch) {
			return false, nil
		}
		return false, err
	}
	key := conclusion.CanonicalKey()
	if _, ok := seen[key]; ok {
		return false, nil
	}
	seen[key] = struct{}{}
	idx := e.commit(rule, conclusion, tuple)
	log.WithFields(log.Fields{
		"rule":     rule.Name,
		"premises": tuple,
		"derived":  idx,
	}).Debug("Saturation derived a formula")
	return true, nil
}
