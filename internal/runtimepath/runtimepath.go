package runtimepath

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
)

// ErrNoSocket means none of the discovery steps produced a socket.
var ErrNoSocket = errors.New("no window manager IPC socket found")

// I3SocketProperty is the X11 root window property i3 publishes its socket
// path in.
const I3SocketProperty = "I3_SOCKET_PATH"

// Dir returns the per-user runtime directory. Priority:
// 1) XDG_RUNTIME_DIR (if set)
// 2) /run/user/<uid> (if present)
// 3) the system temp dir
func Dir() string {
	if runtimeDir := os.Getenv("XDG_RUNTIME_DIR"); runtimeDir != "" {
		return runtimeDir
	}

	runUserDir := fmt.Sprintf("/run/user/%d", os.Getuid())
	if info, err := os.Stat(runUserDir); err == nil && info.IsDir() {
		return runUserDir
	}
	return os.TempDir()
}

// SwaySocket locates the sway IPC socket: SWAYSOCK first, then the newest
// sway-ipc.<uid>.*.sock in the runtime directory.
func SwaySocket() (string, error) {
	if p := os.Getenv("SWAYSOCK"); p != "" {
		return p, nil
	}
	pattern := filepath.Join(Dir(), fmt.Sprintf("sway-ipc.%d.*.sock", os.Getuid()))
	if p := newest(pattern); p != "" {
		return p, nil
	}
	return "", fmt.Errorf("%w: SWAYSOCK is unset and nothing matches %s", ErrNoSocket, pattern)
}

// RootPropertyFunc reads a string property from the X11 root window.
type RootPropertyFunc func(name string) (string, error)

// I3Socket locates the i3 IPC socket: I3SOCK first, then the
// I3_SOCKET_PATH root window property when an X display is available, then
// the newest socket under <runtime dir>/i3.
func I3Socket(rootProperty RootPropertyFunc) (string, error) {
	if p := os.Getenv("I3SOCK"); p != "" {
		return p, nil
	}
	if rootProperty != nil && os.Getenv("DISPLAY") != "" {
		if p, err := rootProperty(I3SocketProperty); err == nil && p != "" {
			return p, nil
		}
	}
	pattern := filepath.Join(Dir(), "i3", "ipc-socket.*")
	if p := newest(pattern); p != "" {
		return p, nil
	}
	return "", fmt.Errorf("%w: I3SOCK is unset and nothing matches %s", ErrNoSocket, pattern)
}

// newest returns the most recently modified match of pattern, or "".
func newest(pattern string) string {
	matches, err := filepath.Glob(pattern)
	if err != nil || len(matches) == 0 {
		return ""
	}
	type candidate struct {
		path  string
		mtime int64
	}
	var found []candidate
	for _, m := range matches {
		info, err := os.Stat(m)
		if err != nil {
			continue
		}
		found = append(found, candidate{m, info.ModTime().UnixNano()})
	}
	if len(found) == 0 {
		return ""
	}
	sort.Slice(found, func(i, j int) bool { return found[i].mtime > found[j].mtime })
	return found[0].path
}
