package linkmgr

import "testing"

func TestSingleQuote(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"simple", "'simple'"},
		{"", "''"},
		{"with space", "'with space'"},
		{"it's", "'it'\\''s'"},
		{"/opt/unetlab/labs/demo lab.unl", "'/opt/unetlab/labs/demo lab.unl'"},
	}
	for _, tt := range tests {
		if got := singleQuote(tt.in); got != tt.want {
			t.Errorf("singleQuote(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestQuoteArgs(t *testing.T) {
	got := quoteArgs([]string{"-a", "suspendlink", "demo lab"})
	want := []string{"'-a'", "'suspendlink'", "'demo lab'"}
	if len(got) != len(want) {
		t.Fatalf("quoteArgs returned %d elements, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("quoteArgs[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestOpValid(t *testing.T) {
	for _, op := range []Op{OpSuspend, OpResume, OpFlap} {
		if !op.Valid() {
			t.Errorf("%s should be valid", op)
		}
	}
	for _, op := range []Op{"", "restart", "SUSPEND"} {
		if op.Valid() {
			t.Errorf("%q should be invalid", op)
		}
	}
}
