// Package wmtest provides an in-process i3-ipc server for tests.
package wmtest

import (
	"encoding/json"
	"errors"
	"net"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/1broseidon/wscycle/internal/wm"
)

// Server answers GET_TREE, GET_VERSION and RUN_COMMAND on a unix socket.
type Server struct {
	Path string

	ln net.Listener
	wg sync.WaitGroup

	mu       sync.Mutex
	tree     []byte
	version  wm.VersionInfo
	reply    []byte
	commands []string
	conns    int
	open     map[net.Conn]struct{}
	closed   bool
}

// NewServer starts a server that serves tree and is closed with the test.
func NewServer(t testing.TB, tree []byte) *Server {
	t.Helper()
	// Unix socket paths are short; t.TempDir can exceed the limit.
	dir, err := os.MkdirTemp("", "wscycle")
	if err != nil {
		t.Fatalf("mkdir temp: %v", err)
	}
	path := filepath.Join(dir, "ipc.sock")
	ln, err := net.Listen("unix", path)
	if err != nil {
		os.RemoveAll(dir)
		t.Fatalf("listen: %v", err)
	}

	s := &Server{
		Path:    path,
		ln:      ln,
		tree:    tree,
		version: wm.VersionInfo{Major: 1, Minor: 10, HumanReadable: "sway version 1.10", Variant: "sway"},
		reply:   []byte(`[{"success":true}]`),
		open:    make(map[net.Conn]struct{}),
	}
	s.wg.Add(1)
	go s.serve()
	t.Cleanup(func() {
		s.Close()
		os.RemoveAll(dir)
	})
	return s
}

// SetTree replaces the GET_TREE reply.
func (s *Server) SetTree(tree []byte) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tree = tree
}

// SetVersion replaces the GET_VERSION reply.
func (s *Server) SetVersion(v wm.VersionInfo) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.version = v
}

// SetCommandReply replaces the RUN_COMMAND reply.
func (s *Server) SetCommandReply(reply []byte) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.reply = reply
}

// Commands returns the RUN_COMMAND payloads received so far.
func (s *Server) Commands() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.commands...)
}

// Connections returns how many clients have connected.
func (s *Server) Connections() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.conns
}

// Close stops accepting, drops open connections and waits for handlers.
func (s *Server) Close() {
	s.ln.Close()
	s.mu.Lock()
	s.closed = true
	for c := range s.open {
		c.Close()
	}
	s.mu.Unlock()
	s.wg.Wait()
}

func (s *Server) serve() {
	defer s.wg.Done()
	for {
		conn, err := s.ln.Accept()
		if err != nil {
			return
		}
		s.mu.Lock()
		if s.closed {
			s.mu.Unlock()
			conn.Close()
			return
		}
		s.conns++
		s.open[conn] = struct{}{}
		s.mu.Unlock()
		s.wg.Add(1)
		go s.handle(conn)
	}
}

func (s *Server) handle(conn net.Conn) {
	defer s.wg.Done()
	defer func() {
		conn.Close()
		s.mu.Lock()
		delete(s.open, conn)
		s.mu.Unlock()
	}()
	for {
		typ, payload, err := wm.ReadMessage(conn)
		if err != nil {
			return
		}
		reply, err := s.answer(typ, payload)
		if err != nil {
			return
		}
		if err := wm.WriteMessage(conn, typ, reply); err != nil {
			return
		}
	}
}

func (s *Server) answer(typ wm.MessageType, payload []byte) ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	switch typ {
	case wm.MsgGetTree:
		return s.tree, nil
	case wm.MsgGetVersion:
		return json.Marshal(s.version)
	case wm.MsgRunCommand:
		s.commands = append(s.commands, string(payload))
		return s.reply, nil
	default:
		return nil, errors.New("unsupported message type")
	}
}
