// Pelorus - Maritime and Aeronautical Surveillance Map Console
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/pelorus

package sdfs

import (
	"fmt"
	"time"
)

// timestampLayouts lists the formats the backend is known to emit, in order
// of likelihood. The backend serializes Python datetimes with isoformat(),
// which drops the zone suffix for naive values and may include microseconds.
var timestampLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05.999999",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
}

// ParseTimestamp parses a backend timestamp string. Zone-less values are
// interpreted as UTC. An empty string returns the zero time with no error;
// recency classification treats zero timestamps as offline.
func ParseTimestamp(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, nil
	}
	for _, layout := range timestampLayouts {
		if t, err := time.ParseInLocation(layout, s, time.UTC); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized timestamp format: %q", s)
}
