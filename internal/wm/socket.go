package wm

import (
	"context"
	"encoding/json"
	"fmt"
	"net"
	"strings"
	"sync"
	"time"
)

// SocketBackend speaks i3-ipc over a unix socket. One connection is kept
// open for the lifetime of the backend; requests are serialised.
type SocketBackend struct {
	socketPath string
	timeout    time.Duration
	flavor     Flavor

	mu   sync.Mutex
	conn net.Conn
}

// NewSocketBackend returns a backend for the socket at path. The connection
// is established lazily on the first request.
func NewSocketBackend(path string, flavor Flavor, timeout time.Duration) *SocketBackend {
	return &SocketBackend{
		socketPath: path,
		timeout:    timeout,
		flavor:     flavor,
	}
}

func (b *SocketBackend) Name() string {
	return string(b.flavor) + " (socket)"
}

// SocketPath returns the socket the backend talks to.
func (b *SocketBackend) SocketPath() string {
	return b.socketPath
}

func (b *SocketBackend) Tree(ctx context.Context) ([]byte, error) {
	data, err := b.request(ctx, MsgGetTree, nil)
	if err != nil {
		return nil, err
	}
	return postProcess(b.flavor, data)
}

func (b *SocketBackend) Focus(ctx context.Context, id int64) error {
	data, err := b.request(ctx, MsgRunCommand, []byte(FocusCommand(id)))
	if err != nil {
		return err
	}
	return parseCommandReply(data)
}

// VersionInfo is the GET_VERSION reply.
type VersionInfo struct {
	Major         int    `json:"major"`
	Minor         int    `json:"minor"`
	Patch         int    `json:"patch"`
	HumanReadable string `json:"human_readable"`
	Variant       string `json:"variant,omitempty"`
}

// Flavor guesses the window manager from the version reply. sway reports
// variant "sway"; older builds only mention it in the human readable string.
func (v VersionInfo) Flavor() Flavor {
	if v.Variant == "sway" || strings.Contains(strings.ToLower(v.HumanReadable), "sway") {
		return FlavorSway
	}
	return FlavorI3
}

// Version queries GET_VERSION.
func (b *SocketBackend) Version(ctx context.Context) (VersionInfo, error) {
	var info VersionInfo
	data, err := b.request(ctx, MsgGetVersion, nil)
	if err != nil {
		return info, err
	}
	if err := json.Unmarshal(data, &info); err != nil {
		return info, fmt.Errorf("failed to parse version reply: %w", err)
	}
	return info, nil
}

func (b *SocketBackend) Close() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.conn == nil {
		return nil
	}
	err := b.conn.Close()
	b.conn = nil
	return err
}

func (b *SocketBackend) request(ctx context.Context, typ MessageType, payload []byte) ([]byte, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if b.conn == nil {
		d := net.Dialer{Timeout: b.timeout}
		conn, err := d.DialContext(ctx, "unix", b.socketPath)
		if err != nil {
			return nil, fmt.Errorf("failed to connect to %s: %w", b.socketPath, err)
		}
		b.conn = conn
	}

	deadline := time.Now().Add(b.timeout)
	if d, ok := ctx.Deadline(); ok && d.Before(deadline) {
		deadline = d
	}
	if err := b.conn.SetDeadline(deadline); err != nil {
		b.dropConn()
		return nil, fmt.Errorf("failed to set deadline: %w", err)
	}

	if err := WriteMessage(b.conn, typ, payload); err != nil {
		b.dropConn()
		return nil, err
	}
	replyType, data, err := ReadMessage(b.conn)
	if err != nil {
		b.dropConn()
		return nil, fmt.Errorf("failed to read %s reply: %w", typ, err)
	}
	if replyType != typ {
		b.dropConn()
		return nil, fmt.Errorf("unexpected reply type %s to %s", replyType, typ)
	}
	return data, nil
}

// dropConn discards a connection whose framing state is unknown.
func (b *SocketBackend) dropConn() {
	if b.conn != nil {
		b.conn.Close()
		b.conn = nil
	}
}
