package tradelens

import "testing"

func TestPercent(t *testing.T) {
	if got := Percent(5).String(); got != "5.00%" {
		t.Errorf("String() = %q, want 5.00%%", got)
	}
	if got := Percent(-2.5).SignedString(); got != "-2.50%" {
		t.Errorf("SignedString() = %q, want -2.50%%", got)
	}
	if got := Percent(1.234).SignedString(); got != "+1.23%" {
		t.Errorf("SignedString() = %q, want +1.23%%", got)
	}
	// zero renders as a dash so flat table rows read as empty
	if got := Percent(0).SignedString(); got != "-" {
		t.Errorf("SignedString() = %q, want -", got)
	}

	if !Percent(1.00001).Equal(1.00002) {
		t.Error("values within tolerance should be equal")
	}
	if Percent(1.0).Equal(1.1) {
		t.Error("values apart should not be equal")
	}
}
