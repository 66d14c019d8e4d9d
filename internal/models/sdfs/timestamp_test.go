// Pelorus - Maritime and Aeronautical Surveillance Map Console
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/pelorus

package sdfs

import (
	"testing"
	"time"
)

func TestParseTimestamp(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		input   string
		want    time.Time
		wantErr bool
	}{
		{
			name:  "RFC3339 with zone",
			input: "2026-08-25T14:30:00Z",
			want:  time.Date(2026, 8, 25, 14, 30, 0, 0, time.UTC),
		},
		{
			name:  "RFC3339 with nanoseconds",
			input: "2026-08-25T14:30:00.123456789Z",
			want:  time.Date(2026, 8, 25, 14, 30, 0, 123456789, time.UTC),
		},
		{
			name:  "python isoformat with microseconds and no zone",
			input: "2026-08-25T14:30:00.123456",
			want:  time.Date(2026, 8, 25, 14, 30, 0, 123456000, time.UTC),
		},
		{
			name:  "python isoformat without microseconds",
			input: "2026-08-25T14:30:00",
			want:  time.Date(2026, 8, 25, 14, 30, 0, 0, time.UTC),
		},
		{
			name:  "space-separated datetime",
			input: "2026-08-25 14:30:00",
			want:  time.Date(2026, 8, 25, 14, 30, 0, 0, time.UTC),
		},
		{
			name:  "empty string yields zero time without error",
			input: "",
			want:  time.Time{},
		},
		{
			name:    "garbage input",
			input:   "yesterday",
			wantErr: true,
		},
		{
			name:    "unix epoch seconds are not accepted",
			input:   "1756132200",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, err := ParseTimestamp(tt.input)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("ParseTimestamp(%q) = %v, want error", tt.input, got)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseTimestamp(%q) returned error: %v", tt.input, err)
			}
			if !got.Equal(tt.want) {
				t.Errorf("ParseTimestamp(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestHealthResponseHealthy(t *testing.T) {
	t.Parallel()

	healthy := &HealthResponse{Status: "healthy"}
	if !healthy.Healthy() {
		t.Error("expected status healthy to report healthy")
	}

	for _, status := range []string{"", "degraded", "unhealthy", "HEALTHY"} {
		h := &HealthResponse{Status: status}
		if h.Healthy() {
			t.Errorf("expected status %q to report unhealthy", status)
		}
	}
}
