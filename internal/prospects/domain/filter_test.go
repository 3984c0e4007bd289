package domain

import (
	"testing"
)

func compositionFixture() []Prospect {
	return []Prospect{
		{LeadID: ptr(int64(1)), LeadStatus: "Validado"},
		{LeadID: ptr(int64(2)), LeadStatus: "Contactado", CallCount: ptr(0)},
		{LeadID: ptr(int64(3)), LeadStatus: "Contactado", CallCount: ptr(2)},
	}
}

func ids(prospects []Prospect) []int64 {
	out := make([]int64, 0, len(prospects))
	for _, p := range prospects {
		out = append(out, *p.LeadID)
	}
	return out
}

func equalIDs(a, b []int64) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestFilterComposition(t *testing.T) {
	input := compositionFixture()

	got := ids(Filter(input, DefaultFilterConfig()))
	if !equalIDs(got, []int64{2, 3}) {
		t.Fatalf("default config = %v, want [2 3]", got)
	}

	conVAPI := Reduce(DefaultFilterConfig(), SetStatusFilter{Value: "con_vapi"})
	got = ids(Filter(input, conVAPI))
	if !equalIDs(got, []int64{3}) {
		t.Fatalf("con_vapi = %v, want [3]", got)
	}
}

func TestFilterStatusValues(t *testing.T) {
	input := []Prospect{
		{LeadID: ptr(int64(1)), LeadStatus: "Validado", CallCount: ptr(1)},
		{LeadID: ptr(int64(2)), LeadStatus: "Nuevo"},
		{LeadID: ptr(int64(3)), LeadStatus: "Contacto Llamado", CallCount: ptr(4)},
	}

	tests := []struct {
		status string
		want   []int64
	}{
		{"todos", []int64{2, 3}},
		{"sin_vapi", []int64{2}},
		{"con_vapi", []int64{3}},
		{"Validado", []int64{1, 2, 3}},
		{"Contacto Llamado", []int64{2, 3}},
		{"algo raro", []int64{2, 3}},
	}

	for _, tc := range tests {
		cfg := Reduce(DefaultFilterConfig(), SetStatusFilter{Value: tc.status})
		if got := ids(Filter(input, cfg)); !equalIDs(got, tc.want) {
			t.Errorf("status %q = %v, want %v", tc.status, got, tc.want)
		}
	}
}

func TestFilterInterviewedAndSearch(t *testing.T) {
	input := []Prospect{
		{LeadID: ptr(int64(1)), LeadName: ptr("María López"), Transcript: ptr("entrevista")},
		{LeadID: ptr(int64(2)), CustodioName: ptr("Pedro"), LeadEmail: ptr("PEDRO@mail.mx")},
		{LeadID: ptr(int64(3)), PhoneNumberIntl: ptr("+52 55 9876 5432"), Transcript: ptr("")},
	}

	cfg := Reduce(DefaultFilterConfig(), SetShowOnlyInterviewed{Value: true})
	if got := ids(Filter(input, cfg)); !equalIDs(got, []int64{1}) {
		t.Fatalf("interviewed only = %v, want [1]", got)
	}

	tests := []struct {
		query string
		want  []int64
	}{
		{"", []int64{1, 2, 3}},
		{"maría", []int64{1}},
		{"pedro@", []int64{2}},
		{"9876", []int64{3}},
		{"   ", []int64{1, 2, 3}},
		{"nadie", []int64{}},
	}
	for _, tc := range tests {
		cfg := Reduce(DefaultFilterConfig(), SetSearch{Query: tc.query})
		if got := ids(Filter(input, cfg)); !equalIDs(got, tc.want) {
			t.Errorf("search %q = %v, want %v", tc.query, got, tc.want)
		}
	}
}

func TestReduceReturnsCopies(t *testing.T) {
	base := DefaultFilterConfig()
	changed := Reduce(base, SetSearch{Query: "ana"})
	changed = Reduce(changed, SetStatusFilter{Value: "todos"})

	if base != DefaultFilterConfig() {
		t.Fatalf("base config was mutated: %+v", base)
	}
	if changed.SearchQuery != "ana" || changed.StatusFilter != "todos" {
		t.Fatalf("unexpected reduced config %+v", changed)
	}
	if Reduce(changed, Reset{}) != DefaultFilterConfig() {
		t.Fatal("reset did not restore defaults")
	}
	if Reduce(changed, nil) != changed {
		t.Fatal("nil action must be a no-op")
	}
}

func TestDefaultFilterConfig(t *testing.T) {
	cfg := DefaultFilterConfig()
	if cfg.StatusFilter != "Contacto Llamado" || cfg.ShowOnlyInterviewed || cfg.SearchQuery != "" {
		t.Fatalf("unexpected default %+v", cfg)
	}
}
