package repository

import "testing"

func TestParseDurability(t *testing.T) {
	tests := []struct {
		in      string
		want    DurabilityLevel
		wantErr bool
	}{
		{"", DurabilityNone, false},
		{"none", DurabilityNone, false},
		{"majority", DurabilityMajority, false},
		{"majorityAndPersisted", DurabilityMajorityPersisted, false},
		{"persisted", DurabilityMajorityPersisted, false},
		{"bogus", DurabilityNone, true},
	}

	for _, tt := range tests {
		got, err := ParseDurability(tt.in)
		if tt.wantErr {
			if err == nil {
				t.Errorf("ParseDurability(%q): expected error", tt.in)
			}
			continue
		}
		if err != nil {
			t.Errorf("ParseDurability(%q) failed: %v", tt.in, err)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseDurability(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestDurabilityString(t *testing.T) {
	if DurabilityNone.String() != "none" {
		t.Errorf("unexpected string for none: %q", DurabilityNone.String())
	}
	if DurabilityMajority.String() != "majority" {
		t.Errorf("unexpected string for majority: %q", DurabilityMajority.String())
	}
	if DurabilityMajorityPersisted.String() != "majorityAndPersisted" {
		t.Errorf("unexpected string for persisted: %q", DurabilityMajorityPersisted.String())
	}
}
