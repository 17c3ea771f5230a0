package linkmgr

import (
	"context"
	"errors"
	"testing"

	"github.com/evelink/evelink/pkg/eveng"
	"github.com/evelink/evelink/pkg/util"
)

type fakeInventory struct {
	nodes  map[string]eveng.Node
	ifaces map[string]map[string]map[string]eveng.Interface
}

func (f *fakeInventory) ListNodes(ctx context.Context, lab string) (map[string]eveng.Node, error) {
	return f.nodes, nil
}

func (f *fakeInventory) NodeInterfaces(ctx context.Context, lab, nodeID string) (map[string]map[string]eveng.Interface, error) {
	return f.ifaces[nodeID], nil
}

func testInventory() *fakeInventory {
	return &fakeInventory{
		nodes: map[string]eveng.Node{
			"1":  {Name: "R1"},
			"2":  {Name: "R2"},
			"10": {Name: "Core-SW"},
		},
		ifaces: map[string]map[string]map[string]eveng.Interface{
			"1": {
				"ethernet": {
					"0": {Name: "e0/0"},
					"1": {Name: "e0/1"},
					"2": {Name: "Gi0/2"},
				},
				"serial": {
					"16": {Name: "s1/0"},
				},
			},
			"2": {
				"ethernet": {
					"0": {Name: "GigabitEthernet0/0"},
					"1": {Name: "GigabitEthernet0/1"},
				},
			},
		},
	}
}

func newTestResolver(inv Inventory) *Resolver {
	return NewResolver(inv, "demo/core", util.NewTestLogger())
}

func TestParseInterfaceName(t *testing.T) {
	tests := []struct {
		name   string
		class  InterfaceClass
		number string
	}{
		{"e0/0", ClassEthernet, "0/0"},
		{"E0/0", ClassEthernet, "0/0"},
		{"eth0", ClassEthernet, "0"},
		{"Gi0/1", ClassEthernet, "0/1"},
		{"GigabitEthernet0/0/1", ClassEthernet, "0/0/1"},
		{"FastEthernet1/0", ClassEthernet, "1/0"},
		{"fa0", ClassEthernet, "0"},
		{"s1/0", ClassSerial, "1/0"},
		{"Serial0/0", ClassSerial, "0/0"},
		{"serial2", ClassSerial, "2"},
		// Unknown tokens default to ethernet.
		{"xe9", ClassEthernet, "9"},
		{"mgmt", ClassEthernet, ""},
		// Digit suffix on the type part becomes the leading number segment.
		{"e0/1/2", ClassEthernet, "0/1/2"},
	}

	for _, tt := range tests {
		class, number := ParseInterfaceName(tt.name)
		if class != tt.class || number != tt.number {
			t.Errorf("ParseInterfaceName(%q) = (%q, %q), want (%q, %q)",
				tt.name, class, number, tt.class, tt.number)
		}
	}
}

func TestResolveDevice(t *testing.T) {
	r := newTestResolver(testInventory())
	ctx := context.Background()

	tests := []struct {
		name string
		want string
	}{
		{"R1", "1"},
		{"r1", "1"},
		{"R2", "2"},
		{"core-sw", "10"},
	}
	for _, tt := range tests {
		got, err := r.ResolveDevice(ctx, tt.name)
		if err != nil {
			t.Errorf("ResolveDevice(%q) error: %v", tt.name, err)
			continue
		}
		if got != tt.want {
			t.Errorf("ResolveDevice(%q) = %q, want %q", tt.name, got, tt.want)
		}
	}
}

func TestResolveDeviceNotFound(t *testing.T) {
	r := newTestResolver(testInventory())

	_, err := r.ResolveDevice(context.Background(), "R99")
	if err == nil {
		t.Fatal("expected error")
	}
	if !errors.Is(err, util.ErrNotFound) {
		t.Errorf("error should wrap ErrNotFound, got %v", err)
	}
}

func TestResolveInterfaceByLocalID(t *testing.T) {
	r := newTestResolver(testInventory())
	ctx := context.Background()

	tests := []struct {
		device string
		iface  string
		want   string
	}{
		// Tier 1: last numeric segment equals the local ID.
		{"1", "e0/0", "0"},
		{"1", "e0/1", "1"},
		{"1", "Ethernet0/2", "2"},
		{"2", "Gi0/1", "1"},
		// Concatenated shape.
		{"1", "eth0", "0"},
		// Serial bucket.
		{"1", "s99/16", "16"},
	}
	for _, tt := range tests {
		got, err := r.ResolveInterface(ctx, tt.device, tt.iface)
		if err != nil {
			t.Errorf("ResolveInterface(%s, %q) error: %v", tt.device, tt.iface, err)
			continue
		}
		if got != tt.want {
			t.Errorf("ResolveInterface(%s, %q) = %q, want %q", tt.device, tt.iface, got, tt.want)
		}
	}
}

func TestResolveInterfaceByDisplayName(t *testing.T) {
	inv := &fakeInventory{
		nodes: map[string]eveng.Node{"1": {Name: "R1"}},
		ifaces: map[string]map[string]map[string]eveng.Interface{
			"1": {
				// Local IDs that never match name segments, forcing the
				// name-based tiers.
				"ethernet": {
					"16": {Name: "Management0"},
					"32": {Name: "Ethernet0/0"},
				},
			},
		},
	}
	r := newTestResolver(inv)
	ctx := context.Background()

	// Tier 2: case-insensitive exact name.
	got, err := r.ResolveInterface(ctx, "1", "ethernet0/0")
	if err != nil {
		t.Fatalf("exact-name resolution error: %v", err)
	}
	if got != "32" {
		t.Errorf("exact-name resolution = %q, want 32", got)
	}

	// Tier 3: substring of the display name.
	got, err = r.ResolveInterface(ctx, "1", "management")
	if err != nil {
		t.Fatalf("substring resolution error: %v", err)
	}
	if got != "16" {
		t.Errorf("substring resolution = %q, want 16", got)
	}
}

func TestResolveInterfaceNotFound(t *testing.T) {
	r := newTestResolver(testInventory())

	_, err := r.ResolveInterface(context.Background(), "1", "e9/9")
	if err == nil {
		t.Fatal("expected error")
	}
	if !errors.Is(err, util.ErrNotFound) {
		t.Errorf("error should wrap ErrNotFound, got %v", err)
	}
	var nf *util.NotFoundError
	if !errors.As(err, &nf) {
		t.Fatalf("expected NotFoundError, got %T", err)
	}
	if nf.Kind != "interface" || nf.On != "1" {
		t.Errorf("NotFoundError context = %+v", nf)
	}
}

func TestSortNumericAware(t *testing.T) {
	ids := []string{"10", "2", "1", "20", "3"}
	sortNumericAware(ids)
	want := []string{"1", "2", "3", "10", "20"}
	for i := range want {
		if ids[i] != want[i] {
			t.Fatalf("sorted = %v, want %v", ids, want)
		}
	}
}
