//go:build linux

// Package hostnet controls host network interfaces and bridge membership
// for the direct host-side failure path, bypassing the EVE-NG wrapper.
package hostnet

import (
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/vishvananda/netlink"
)

// Controller manipulates host links via netlink. All operations require
// CAP_NET_ADMIN.
type Controller struct {
	logger *logrus.Logger
}

// NewController returns a netlink-backed Controller.
func NewController(logger *logrus.Logger) *Controller {
	return &Controller{logger: logger}
}

// Down brings a host interface down (suspends it).
func (c *Controller) Down(name string) error {
	link, err := netlink.LinkByName(name)
	if err != nil {
		return fmt.Errorf("hostnet: find interface %s: %w", name, err)
	}
	if err := netlink.LinkSetDown(link); err != nil {
		return fmt.Errorf("hostnet: bring %s down: %w", name, err)
	}
	c.logger.WithField("interface", name).Info("host interface down")
	return nil
}

// Up brings a host interface up (resumes it).
func (c *Controller) Up(name string) error {
	link, err := netlink.LinkByName(name)
	if err != nil {
		return fmt.Errorf("hostnet: find interface %s: %w", name, err)
	}
	if err := netlink.LinkSetUp(link); err != nil {
		return fmt.Errorf("hostnet: bring %s up: %w", name, err)
	}
	c.logger.WithField("interface", name).Info("host interface up")
	return nil
}

// AddToBridge attaches iface to the named bridge.
func (c *Controller) AddToBridge(bridge, iface string) error {
	br, err := netlink.LinkByName(bridge)
	if err != nil {
		return fmt.Errorf("hostnet: find bridge %s: %w", bridge, err)
	}
	brLink, ok := br.(*netlink.Bridge)
	if !ok {
		return fmt.Errorf("hostnet: %s is not a bridge", bridge)
	}
	link, err := netlink.LinkByName(iface)
	if err != nil {
		return fmt.Errorf("hostnet: find interface %s: %w", iface, err)
	}
	if err := netlink.LinkSetMaster(link, brLink); err != nil {
		return fmt.Errorf("hostnet: add %s to bridge %s: %w", iface, bridge, err)
	}
	c.logger.WithFields(logrus.Fields{"interface": iface, "bridge": bridge}).Info("interface added to bridge")
	return nil
}

// RemoveFromBridge detaches iface from whatever bridge it belongs to.
func (c *Controller) RemoveFromBridge(bridge, iface string) error {
	link, err := netlink.LinkByName(iface)
	if err != nil {
		return fmt.Errorf("hostnet: find interface %s: %w", iface, err)
	}
	if err := netlink.LinkSetNoMaster(link); err != nil {
		return fmt.Errorf("hostnet: remove %s from bridge %s: %w", iface, bridge, err)
	}
	c.logger.WithFields(logrus.Fields{"interface": iface, "bridge": bridge}).Info("interface removed from bridge")
	return nil
}

// MACTable maps lowercase MAC addresses to host interface names, an aid
// for manually completing the interface mapping file.
func (c *Controller) MACTable() (map[string]string, error) {
	links, err := netlink.LinkList()
	if err != nil {
		return nil, fmt.Errorf("hostnet: list links: %w", err)
	}

	table := make(map[string]string)
	for _, link := range links {
		attrs := link.Attrs()
		if attrs == nil || len(attrs.HardwareAddr) == 0 {
			continue
		}
		table[attrs.HardwareAddr.String()] = attrs.Name
	}
	return table, nil
}
