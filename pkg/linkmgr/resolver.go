package linkmgr

import (
	"context"
	"sort"
	"strconv"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/evelink/evelink/pkg/eveng"
	"github.com/evelink/evelink/pkg/util"
)

// Inventory is the slice of the lab-management API the resolver consumes.
// *eveng.Client satisfies it.
type Inventory interface {
	ListNodes(ctx context.Context, lab string) (map[string]eveng.Node, error)
	NodeInterfaces(ctx context.Context, lab, nodeID string) (map[string]map[string]eveng.Interface, error)
}

// InterfaceClass is the provider-side grouping of interfaces.
type InterfaceClass string

const (
	ClassEthernet InterfaceClass = "ethernet"
	ClassSerial   InterfaceClass = "serial"
)

// classAliases maps vendor name tokens to provider interface classes.
// This is data, not logic: new vendor naming conventions are additive
// entries here. Unrecognized tokens default to ClassEthernet.
var classAliases = map[string]InterfaceClass{
	"e":               ClassEthernet,
	"eth":             ClassEthernet,
	"ethernet":        ClassEthernet,
	"gi":              ClassEthernet,
	"fa":              ClassEthernet,
	"g":               ClassEthernet,
	"gigabitethernet": ClassEthernet,
	"fastethernet":    ClassEthernet,
	"s":               ClassSerial,
	"serial":          ClassSerial,
}

// Resolver translates device and interface display names into the
// provider IDs the wrapper command needs. IDs are looked up fresh on every
// call; nothing is cached across invocations.
type Resolver struct {
	inv    Inventory
	lab    string
	logger *logrus.Logger
}

// NewResolver creates a Resolver for one lab.
func NewResolver(inv Inventory, lab string, logger *logrus.Logger) *Resolver {
	return &Resolver{inv: inv, lab: lab, logger: logger}
}

// ResolveDevice returns the node ID whose display name matches name,
// case-insensitively. A miss returns an error wrapping util.ErrNotFound;
// callers treat it as a request-level failure, not a fatal condition.
func (r *Resolver) ResolveDevice(ctx context.Context, name string) (string, error) {
	nodes, err := r.inv.ListNodes(ctx, r.lab)
	if err != nil {
		return "", err
	}

	for _, id := range sortedNodeIDs(nodes) {
		if strings.EqualFold(nodes[id].Name, name) {
			return id, nil
		}
	}

	r.logger.WithField("device", name).Warn("device name not found in lab")
	return "", util.NewNotFoundError("device", name, "")
}

// ResolveInterface returns the local interface ID on deviceID matching the
// human name (e.g. "e0/0", "eth0", "GigabitEthernet0/1"). Matching runs as
// three ordered passes over the interface class bucket, local IDs visited
// in numeric order:
//
//  1. the name's last numeric segment equals the local ID
//  2. case-insensitive exact display-name match
//  3. the requested name is a substring of the display name
//
// The fallback tiers exist because providers name interfaces inconsistently
// across device models (bare numeric IDs vs. full descriptive names).
func (r *Resolver) ResolveInterface(ctx context.Context, deviceID, name string) (string, error) {
	classes, err := r.inv.NodeInterfaces(ctx, r.lab, deviceID)
	if err != nil {
		return "", err
	}

	class, number := ParseInterfaceName(name)
	bucket := classes[string(class)]
	ids := sortedInterfaceIDs(bucket)
	last := lastSegment(number)

	if last != "" {
		for _, id := range ids {
			if id == last {
				return id, nil
			}
		}
	}
	for _, id := range ids {
		if strings.EqualFold(bucket[id].Name, name) {
			return id, nil
		}
	}
	lowered := strings.ToLower(name)
	for _, id := range ids {
		if strings.Contains(strings.ToLower(bucket[id].Name), lowered) {
			return id, nil
		}
	}

	r.logger.WithFields(logrus.Fields{"device": deviceID, "interface": name}).
		Warn("interface name not found on device")
	return "", util.NewNotFoundError("interface", name, deviceID)
}

// ParseInterfaceName splits a human interface name into its class and
// number token. Two shapes are accepted: slash-delimited ("e0/0", "Gi0/1",
// where a digit suffix on the type part becomes the leading number
// segment) and concatenated ("eth0"). The class token keeps only letters
// and is mapped through classAliases.
func ParseInterfaceName(name string) (InterfaceClass, string) {
	lowered := strings.ToLower(name)

	var typeToken, number string
	if idx := strings.IndexByte(lowered, '/'); idx >= 0 {
		typePart := lowered[:idx]
		typeToken = stripDigits(typePart)
		typeNumber := keepDigits(typePart)
		number = lowered[idx+1:]
		if typeNumber != "" {
			number = typeNumber + "/" + number
		}
	} else {
		for i, c := range lowered {
			if c >= '0' && c <= '9' {
				typeToken = lowered[:i]
				number = lowered[i:]
				break
			}
		}
		if number == "" {
			typeToken = lowered
		}
	}

	class, ok := classAliases[typeToken]
	if !ok {
		class = ClassEthernet
	}
	return class, number
}

// lastSegment returns the part of a number token after the final slash,
// the segment providers commonly use as the bare local interface ID.
func lastSegment(number string) string {
	if idx := strings.LastIndexByte(number, '/'); idx >= 0 {
		return number[idx+1:]
	}
	return number
}

func stripDigits(s string) string {
	var b strings.Builder
	for _, c := range s {
		if c < '0' || c > '9' {
			b.WriteRune(c)
		}
	}
	return b.String()
}

func keepDigits(s string) string {
	var b strings.Builder
	for _, c := range s {
		if c >= '0' && c <= '9' {
			b.WriteRune(c)
		}
	}
	return b.String()
}

func sortedNodeIDs(nodes map[string]eveng.Node) []string {
	ids := make([]string, 0, len(nodes))
	for id := range nodes {
		ids = append(ids, id)
	}
	sortNumericAware(ids)
	return ids
}

func sortedInterfaceIDs(bucket map[string]eveng.Interface) []string {
	ids := make([]string, 0, len(bucket))
	for id := range bucket {
		ids = append(ids, id)
	}
	sortNumericAware(ids)
	return ids
}

// sortNumericAware sorts IDs numerically when both compare keys parse as
// integers (provider IDs are usually small integers), lexically otherwise.
func sortNumericAware(ids []string) {
	sort.Slice(ids, func(i, j int) bool {
		a, aerr := strconv.Atoi(ids[i])
		b, berr := strconv.Atoi(ids[j])
		if aerr == nil && berr == nil {
			return a < b
		}
		return ids[i] < ids[j]
	})
}
