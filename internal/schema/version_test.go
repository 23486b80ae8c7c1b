// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package schema

import "testing"

func TestIsCompatible(t *testing.T) {
	tests := []struct {
		name     string
		declared string
		want     bool
		wantErr  bool
	}{
		{"exact", Version, true, false},
		{"newer patch", "1.0.9", true, false},
		{"newer minor", "1.4.0", true, false},
		{"next major", "2.0.0", false, false},
		{"pre-release line", "0.9.0", false, false},
		{"garbage", "not-a-version", false, true},
		{"empty", "", false, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := IsCompatible(tt.declared)
			if (err != nil) != tt.wantErr {
				t.Fatalf("IsCompatible(%q) error = %v, wantErr %v", tt.declared, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("IsCompatible(%q) = %v, want %v", tt.declared, got, tt.want)
			}
		})
	}
}
