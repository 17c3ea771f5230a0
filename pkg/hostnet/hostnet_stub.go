//go:build !linux

package hostnet

import (
	"errors"

	"github.com/sirupsen/logrus"
)

// ErrUnsupported is returned by every operation on non-linux builds.
var ErrUnsupported = errors.New("hostnet: host interface control requires linux")

// Controller is a stub on non-linux platforms.
type Controller struct {
	logger *logrus.Logger
}

func NewController(logger *logrus.Logger) *Controller {
	return &Controller{logger: logger}
}

func (c *Controller) Down(name string) error                      { return ErrUnsupported }
func (c *Controller) Up(name string) error                        { return ErrUnsupported }
func (c *Controller) AddToBridge(bridge, iface string) error      { return ErrUnsupported }
func (c *Controller) RemoveFromBridge(bridge, iface string) error { return ErrUnsupported }
func (c *Controller) MACTable() (map[string]string, error)        { return nil, ErrUnsupported }
