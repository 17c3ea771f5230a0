package mapping

import (
	"path/filepath"
	"testing"

	"github.com/evelink/evelink/pkg/eveng"
)

func TestSkeleton(t *testing.T) {
	nodes := map[string]eveng.Node{
		"1": {Name: "R1"},
		"2": {Name: "R2"},
	}
	interfaces := map[string]map[string]map[string]eveng.Interface{
		"1": {
			"ethernet": {
				"0": {Name: "e0/0"},
				"1": {Name: ""},
			},
		},
		"2": {
			"serial": {
				"16": {Name: "s1/0"},
			},
		},
	}

	table := Skeleton(nodes, interfaces)
	if len(table) != 2 {
		t.Fatalf("expected 2 devices, got %d", len(table))
	}

	r1 := table["R1"]
	if len(r1) != 2 {
		t.Fatalf("R1 entries = %v", r1)
	}
	if v, ok := r1["e0/0"]; !ok || v != nil {
		t.Errorf("e0/0 should be present and unmapped, got %v", v)
	}
	// Unnamed interfaces get a synthetic class+ID name.
	if _, ok := r1["ethernet1"]; !ok {
		t.Errorf("unnamed interface missing synthetic name: %v", r1)
	}
	if _, ok := table["R2"]["s1/0"]; !ok {
		t.Errorf("R2 entries = %v", table["R2"])
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	host := "eth3"
	table := Table{
		"R1": {"e0/0": &host, "e0/1": nil},
	}

	path := filepath.Join(t.TempDir(), "mapping.yaml")
	if err := table.Save(path); err != nil {
		t.Fatalf("Save: %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got, ok := loaded.HostInterface("R1", "e0/0"); !ok || got != "eth3" {
		t.Errorf("HostInterface(R1, e0/0) = %q, %v", got, ok)
	}
	if _, ok := loaded.HostInterface("R1", "e0/1"); ok {
		t.Error("unmapped interface should not resolve")
	}
}

func TestHostInterface(t *testing.T) {
	host := "eth5"
	empty := ""
	table := Table{
		"R1": {"e0/0": &host, "e0/1": nil, "e0/2": &empty},
	}

	tests := []struct {
		device, iface string
		want          string
		ok            bool
	}{
		{"R1", "e0/0", "eth5", true},
		{"R1", "e0/1", "", false},
		{"R1", "e0/2", "", false},
		{"R1", "e9/9", "", false},
		{"R9", "e0/0", "", false},
	}
	for _, tt := range tests {
		got, ok := table.HostInterface(tt.device, tt.iface)
		if got != tt.want || ok != tt.ok {
			t.Errorf("HostInterface(%s, %s) = (%q, %v), want (%q, %v)",
				tt.device, tt.iface, got, ok, tt.want, tt.ok)
		}
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Error("expected error for missing file")
	}
}
