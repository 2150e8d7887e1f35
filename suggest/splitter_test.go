package suggest

import "testing"

func TestSplitContextPrefix(t *testing.T) {
	tests := []struct {
		name        string
		in          string
		wantContext string
		wantPrefix  string
	}{
		{"vietnamese sentence", "Món ăn này được làm nh", "Món ăn này được làm", "nh"},
		{"single token", "xin", "", "xin"},
		{"empty", "", "", ""},
		{"whitespace only", "   \t  ", "", ""},
		{"run of whitespace between tokens", "a   b\t c", "a b", "c"},
		{"trailing whitespace trimmed", "chào bạn  ", "chào", "bạn"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gotContext, gotPrefix := SplitContextPrefix(tt.in)
			if gotContext != tt.wantContext || gotPrefix != tt.wantPrefix {
				t.Fatalf("SplitContextPrefix(%q) = (%q, %q), want (%q, %q)",
					tt.in, gotContext, gotPrefix, tt.wantContext, tt.wantPrefix)
			}
		})
	}
}
