// Pelorus - Maritime and Aeronautical Surveillance Map Console
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/pelorus

package models

// EntityDetails is the structured view-model for one rendered entity's
// detail view. The core never emits markup; the presentation layer decides
// how to lay these fields out.
type EntityDetails struct {
	// Key is the rendered-entity key the details were built for.
	Key string `json:"key"`

	Category Category `json:"category"`
	Title    string   `json:"title"`

	// Online reflects the recency-based classification at build time.
	Online bool `json:"online"`

	// QualityTier is the fail-safe quality classification:
	// normal, warning or error.
	QualityTier string `json:"quality_tier"`

	Fields []DetailField `json:"fields"`
}

// DetailField is one label/value pair in a detail view.
type DetailField struct {
	Label string `json:"label"`
	Value string `json:"value"`
}
