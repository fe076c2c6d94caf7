package manager

import (
	"errors"
	"io"
	"log/slog"
	"net"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"
)

// Handler answers one IPC command. The returned text is written back to the
// client.
type Handler func() string

type AppManager struct {
	// SocketPath overrides the default socket location.
	SocketPath string
	Logger     *slog.Logger
	// RestartDelay is the pause before a returned or panicked watcher runs
	// again. Zero means 2s.
	RestartDelay time.Duration

	mu       sync.Mutex
	listener net.Listener
	handlers map[string]Handler
	wg       sync.WaitGroup

	stops    []chan struct{}
	watchers sync.WaitGroup
}

var Manage = &AppManager{}

func getSocketPath() string {
	var baseDir string
	if runtimeDir := os.Getenv("XDG_RUNTIME_DIR"); runtimeDir != "" {
		baseDir = runtimeDir
	} else {
		baseDir = os.TempDir()
	}

	socketDir := filepath.Join(baseDir, "wigo-calc")
	if err := os.MkdirAll(socketDir, 0o755); err != nil {
		return filepath.Join(os.TempDir(), "wigo-calc-socket.sock")
	}
	return filepath.Join(socketDir, "socket.sock")
}

func (m *AppManager) socketPath() string {
	if m.SocketPath != "" {
		return m.SocketPath
	}
	return getSocketPath()
}

func (m *AppManager) logger() *slog.Logger {
	if m.Logger != nil {
		return m.Logger
	}
	return slog.Default()
}

// Handle registers h for command. STATUS is answered even without a handler.
func (m *AppManager) Handle(command string, h Handler) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.handlers == nil {
		m.handlers = make(map[string]Handler)
	}
	m.handlers[strings.ToUpper(command)] = h
}

// StartIPCServer listens on the socket and serves commands in the background
// until StopIPCServer.
func (m *AppManager) StartIPCServer() error {
	socketPath := m.socketPath()
	_ = os.Remove(socketPath)

	listener, err := net.Listen("unix", socketPath)
	if err != nil {
		return err
	}

	m.mu.Lock()
	m.listener = listener
	m.mu.Unlock()

	m.logger().Info("IPC server listening", "socket", socketPath)

	m.wg.Add(1)
	go func() {
		defer m.wg.Done()
		for {
			conn, err := listener.Accept()
			if err != nil {
				if errors.Is(err, net.ErrClosed) {
					return
				}
				continue
			}
			m.wg.Add(1)
			go func() {
				defer m.wg.Done()
				m.handleConnection(conn)
			}()
		}
	}()
	return nil
}

func (m *AppManager) StopIPCServer() {
	m.mu.Lock()
	listener := m.listener
	m.listener = nil
	m.mu.Unlock()

	if listener == nil {
		return
	}
	_ = listener.Close()
	m.wg.Wait()
	_ = os.Remove(m.socketPath())
}

// StartWatcher runs f in the background until StopAll. When f returns or
// panics before then, it is started again after RestartDelay.
func (m *AppManager) StartWatcher(name string, f func(stop <-chan struct{})) {
	stop := make(chan struct{})
	m.mu.Lock()
	m.stops = append(m.stops, stop)
	m.mu.Unlock()

	delay := m.RestartDelay
	if delay <= 0 {
		delay = 2 * time.Second
	}

	m.watchers.Add(1)
	go func() {
		defer m.watchers.Done()
		for {
			func() {
				defer func() {
					if r := recover(); r != nil {
						m.logger().Error("watcher panic", "watcher", name, "panic", r)
					}
				}()
				f(stop)
			}()

			select {
			case <-stop:
				return
			case <-time.After(delay):
				m.logger().Info("restarting watcher", "watcher", name)
			}
		}
	}()
}

// StopAll signals every watcher to stop and waits for them to return.
func (m *AppManager) StopAll() {
	m.mu.Lock()
	stops := m.stops
	m.stops = nil
	m.mu.Unlock()

	for _, s := range stops {
		close(s)
	}
	m.watchers.Wait()
}

func (m *AppManager) handleConnection(conn net.Conn) {
	defer conn.Close()

	buf := make([]byte, 1024)
	n, err := conn.Read(buf)
	if err != nil {
		return
	}

	command := strings.ToUpper(strings.TrimSpace(string(buf[:n])))

	m.mu.Lock()
	h, ok := m.handlers[command]
	m.mu.Unlock()

	switch {
	case ok:
		m.logger().Info("IPC command", "command", command)
		_, _ = conn.Write([]byte(h()))
	case command == "STATUS":
		_, _ = conn.Write([]byte("OK: running"))
	default:
		_, _ = conn.Write([]byte("ERR: unknown command"))
	}
}

func (m *AppManager) ConnectIPC() (net.Conn, error) {
	return net.DialTimeout("unix", m.socketPath(), 500*time.Millisecond)
}

func (m *AppManager) SendIPCCommand(cmd string) (string, error) {
	conn, err := m.ConnectIPC()
	if err != nil {
		return "", err
	}
	defer conn.Close()

	if _, err := conn.Write([]byte(cmd)); err != nil {
		return "", err
	}

	buf := make([]byte, 1024)
	n, err := conn.Read(buf)
	if err != nil && err != io.EOF {
		return "", err
	}

	return string(buf[:n]), nil
}
