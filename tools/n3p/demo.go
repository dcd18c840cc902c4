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

package main

import (
	"context"
	"fmt"

	"github.com/ebay/n3proof/config"
)

// demo runs one of the built-in scenarios. The scenarios are ordinary run
// specs, so --spec writes one out as a starting point for your own jobs.
func demo(ctx context.Context, options *options) error {
	var spec *config.RunSpec
	switch {
	case options.Symmetry:
		spec = symmetrySpec()
	case options.Subclass:
		spec = subclassSpec()
	}
	if options.SpecFile != "" {
		if err := config.Write(spec, options.SpecFile); err != nil {
			return err
		}
		fmt.Printf("Wrote run spec to %v.\n", options.SpecFile)
	}
	return execute(ctx, spec, options)
}

// symmetrySpec proves that bob knows alice because alice knows bob, with
// a single explicit rule application.
func symmetrySpec() *config.RunSpec {
	return &config.RunSpec{
		Axioms: []string{
			"<http://example.org/ns#alice> <http://example.org/ns#knows> <http://example.org/ns#bob> .",
		},
		Rules: []config.Rule{{
			Name:        "knows_symmetry",
			Description: "If X knows Y, then Y knows X",
			Premises:    []string{"?x <http://example.org/ns#knows> ?y ."},
			Conclusion:  "?y <http://example.org/ns#knows> ?x .",
		}},
		Applications: []config.Application{
			{Rule: 0, Premises: []int{0}},
		},
		Goal: "<http://example.org/ns#bob> <http://example.org/ns#knows> <http://example.org/ns#alice> .",
	}
}

// subclassSpec proves that socrates is mortal by saturating the classic
// subclass syllogism over two axioms.
func subclassSpec() *config.RunSpec {
	return &config.RunSpec{
		Axioms: []string{
			"<http://example.org/socrates#socrates> a <http://example.org/socrates#Human> .",
			"<http://example.org/socrates#Human> <http://www.w3.org/2000/01/rdf-schema#subClassOf> <http://example.org/socrates#Mortal> .",
		},
		Rules: []config.Rule{{
			Name:        "subclass_rule",
			Description: "If X is A and A is a subclass of B, then X is B",
			Premises: []string{
				"?x a ?a .",
				"?a <http://www.w3.org/2000/01/rdf-schema#subClassOf> ?b .",
			},
			Conclusion: "?x a ?b .",
		}},
		Saturate: true,
		Goal:     "<http://example.org/socrates#socrates> a <http://example.org/socrates#Mortal> .",
	}
}
