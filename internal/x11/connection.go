// Package x11 reads the few X11 root window properties wscycle needs.
package x11

import (
	"fmt"

	"github.com/BurntSushi/xgb/xproto"
	"github.com/BurntSushi/xgbutil"
	"github.com/BurntSushi/xgbutil/xprop"
)

// Connection holds an X11 connection and its root window.
type Connection struct {
	XUtil *xgbutil.XUtil
	Root  xproto.Window
}

// NewConnection connects to the display named by $DISPLAY.
func NewConnection() (*Connection, error) {
	xu, err := xgbutil.NewConn()
	if err != nil {
		return nil, fmt.Errorf("failed to connect to X server: %w", err)
	}
	return &Connection{
		XUtil: xu,
		Root:  xu.RootWin(),
	}, nil
}

// RootProperty reads a string property of the root window.
func (c *Connection) RootProperty(name string) (string, error) {
	value, err := xprop.PropValStr(xprop.GetProperty(c.XUtil, c.Root, name))
	if err != nil {
		return "", fmt.Errorf("failed to read root property %s: %w", name, err)
	}
	return value, nil
}

// Close disconnects from the X server.
func (c *Connection) Close() {
	c.XUtil.Conn().Close()
}

// RootPropertyStandalone opens a connection, reads one root window property
// and disconnects.
func RootPropertyStandalone(name string) (string, error) {
	conn, err := NewConnection()
	if err != nil {
		return "", err
	}
	defer conn.Close()
	return conn.RootProperty(name)
}
