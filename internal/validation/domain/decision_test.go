package domain

import "testing"

func b(v bool) *bool { return &v }

func TestDecide(t *testing.T) {
	tests := []struct {
		name     string
		criteria Criteria
		want     Status
	}{
		{"all true", Criteria{b(true), b(true), b(true)}, StatusApproved},
		{"interview failed", Criteria{b(false), b(true), b(true)}, StatusRejected},
		{"background failed", Criteria{b(true), b(false), b(true)}, StatusRejected},
		{"age missing", Criteria{b(true), b(true), nil}, StatusRejected},
		{"false beats missing", Criteria{nil, b(false), nil}, StatusRejected},
		{"nothing answered", Criteria{}, StatusRejected},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := Decide(tc.criteria); got != tc.want {
				t.Fatalf("Decide = %q, want %q", got, tc.want)
			}
		})
	}
}

func TestCriteriaComplete(t *testing.T) {
	if (Criteria{b(true), nil, b(false)}).Complete() {
		t.Fatal("expected incomplete criteria")
	}
	if !(Criteria{b(true), b(false), b(false)}).Complete() {
		t.Fatal("expected complete criteria")
	}
}
