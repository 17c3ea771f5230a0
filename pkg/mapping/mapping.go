// Package mapping persists the device→interface→host-interface correlation
// table. EVE-NG's interface listing carries no MAC addresses, so the table
// cannot be completed automatically: Skeleton writes every entry as null
// and the operator fills in host interface names by hand.
package mapping

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/evelink/evelink/pkg/eveng"
)

// Table maps device display name → interface display name → host interface
// name. A nil value means the interface has not been mapped yet.
type Table map[string]map[string]*string

// Skeleton builds an all-unmapped Table from lab inventory.
func Skeleton(nodes map[string]eveng.Node, interfaces map[string]map[string]map[string]eveng.Interface) Table {
	t := make(Table, len(nodes))
	for nodeID, node := range nodes {
		entries := make(map[string]*string)
		for class, bucket := range interfaces[nodeID] {
			for localID, iface := range bucket {
				name := iface.Name
				if name == "" {
					name = fmt.Sprintf("%s%s", class, localID)
				}
				entries[name] = nil
			}
		}
		t[node.Name] = entries
	}
	return t
}

// Load reads a Table from path.
func Load(path string) (Table, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("mapping: read %s: %w", path, err)
	}
	var t Table
	if err := yaml.Unmarshal(data, &t); err != nil {
		return nil, fmt.Errorf("mapping: parse %s: %w", path, err)
	}
	return t, nil
}

// Save writes the Table to path as YAML.
func (t Table) Save(path string) error {
	data, err := yaml.Marshal(t)
	if err != nil {
		return fmt.Errorf("mapping: marshal: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("mapping: write %s: %w", path, err)
	}
	return nil
}

// HostInterface looks up the mapped host interface for a device/interface
// pair. The second return is false when the pair is absent or unmapped.
func (t Table) HostInterface(device, iface string) (string, bool) {
	entries, ok := t[device]
	if !ok {
		return "", false
	}
	name, ok := entries[iface]
	if !ok || name == nil || *name == "" {
		return "", false
	}
	return *name, true
}
