package sanitize

import "testing"

func TestText(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"  Ana   López ", "Ana López"},
		{"<b>Transportes</b> del Norte", "Transportes del Norte"},
		{"&lt;script&gt;alert(1)&lt;/script&gt;Juan", "alert(1)Juan"},
		{"Pérez &amp; Hijos", "Pérez & Hijos"},
		{"", ""},
	}

	for _, tc := range tests {
		if got := Text(tc.in); got != tc.want {
			t.Errorf("Text(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestMultilineKeepsLineBreaks(t *testing.T) {
	got := Multiline("Licencia vigente<br>\r\n  sin   antecedentes  \n")
	want := "Licencia vigente\nsin antecedentes"
	if got != want {
		t.Fatalf("Multiline = %q, want %q", got, want)
	}
}
