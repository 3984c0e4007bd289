package domain

import "testing"

func TestParseLeadStatusKeepsUnknownText(t *testing.T) {
	tests := []struct {
		raw   string
		want  LeadStatus
		known bool
	}{
		{"Nuevo", StatusNuevo, true},
		{"  contacto llamado ", StatusContactoLlamado, true},
		{"VALIDADO", StatusValidado, true},
		{"En espera", LeadStatus("En espera"), false},
		{"", LeadStatus(""), false},
	}

	for _, tc := range tests {
		got := ParseLeadStatus(tc.raw)
		if got != tc.want {
			t.Errorf("ParseLeadStatus(%q) = %q, want %q", tc.raw, got, tc.want)
		}
		if got.IsKnown() != tc.known {
			t.Errorf("ParseLeadStatus(%q).IsKnown() = %v, want %v", tc.raw, got.IsKnown(), tc.known)
		}
	}
}

func TestEveryKnownStatusHasLabel(t *testing.T) {
	for _, status := range []LeadStatus{StatusNuevo, StatusContactado, StatusContactoLlamado, StatusValidado, StatusAprobado, StatusRechazado} {
		if status.Label() == "" {
			t.Fatalf("status %q has no label", status)
		}
	}
	if got := LeadStatus("Otro").Label(); got != "Otro" {
		t.Fatalf("unknown status label = %q, want raw text", got)
	}
}

func TestStatusFilterOptionsStartWithDefault(t *testing.T) {
	options := StatusFilterOptions()
	if len(options) == 0 || options[0].Value != string(StatusContactoLlamado) {
		t.Fatalf("expected Contacto Llamado first, got %+v", options)
	}
}

func TestParseStage(t *testing.T) {
	for _, raw := range []string{"Prospecto", "contactado", "Negociación", "negociacion", "GANADO", "Perdido"} {
		if _, err := ParseStage(raw); err != nil {
			t.Errorf("ParseStage(%q) returned error: %v", raw, err)
		}
	}
	if _, err := ParseStage("Archivado"); err == nil {
		t.Fatal("expected unknown stage to be rejected")
	}
}

func TestStatusAfterCallOutcome(t *testing.T) {
	tests := []struct {
		current LeadStatus
		outcome CallOutcome
		want    LeadStatus
	}{
		{StatusNuevo, OutcomeContacted, StatusContactado},
		{StatusContactoLlamado, OutcomeInterested, StatusContactado},
		{StatusNuevo, OutcomeNoAnswer, StatusNuevo},
		{StatusValidado, OutcomeContacted, StatusValidado},
		{StatusAprobado, OutcomeCallback, StatusAprobado},
		{StatusRechazado, OutcomeNotInterested, StatusRechazado},
		{LeadStatus("En espera"), OutcomeContacted, StatusContactado},
	}

	for _, tc := range tests {
		if got := StatusAfterCallOutcome(tc.current, tc.outcome); got != tc.want {
			t.Errorf("StatusAfterCallOutcome(%q, %q) = %q, want %q", tc.current, tc.outcome, got, tc.want)
		}
	}
}

func TestParseCallOutcome(t *testing.T) {
	if got, ok := ParseCallOutcome(" Contactado "); !ok || got != OutcomeContacted {
		t.Fatalf("ParseCallOutcome = %q, %v", got, ok)
	}
	if _, ok := ParseCallOutcome("colgó"); ok {
		t.Fatal("expected unknown outcome")
	}
}

func TestIntakeDefaults(t *testing.T) {
	if InitialStatus() != StatusNuevo {
		t.Fatalf("initial status = %q", InitialStatus())
	}
	if InitialStage() != StageProspecto {
		t.Fatalf("initial stage = %q", InitialStage())
	}
	if ValidateProspect() != StatusValidado {
		t.Fatalf("validate = %q", ValidateProspect())
	}
}
