package engine

import "testing"

func TestCheckSavings(t *testing.T) {
	tests := []struct {
		name    string
		savedKg float64
		want    GateResult
	}{
		{"zero is a no-op", 0, GateNoop},
		{"small savings accepted", 2.5, GateAccept},
		{"exactly at ceiling accepted", 1000.00, GateAccept},
		{"just above ceiling rejected", 1000.01, GateReject},
		{"far above ceiling rejected", 5000, GateReject},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CheckSavings(tt.savedKg, 1000); got != tt.want {
				t.Errorf("CheckSavings(%v) = %v, want %v", tt.savedKg, got, tt.want)
			}
		})
	}
}

func TestCheckSavings_CustomCeiling(t *testing.T) {
	if got := CheckSavings(600, 500); got != GateReject {
		t.Errorf("CheckSavings(600, 500) = %v, want reject", got)
	}
	if got := CheckSavings(500, 500); got != GateAccept {
		t.Errorf("CheckSavings(500, 500) = %v, want accept", got)
	}
}
