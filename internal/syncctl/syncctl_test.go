package syncctl

import (
	"context"
	"errors"
	"net"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strconv"
	"sync/atomic"
	"testing"
	"time"
)

func testServer(t *testing.T, handler http.HandlerFunc) int {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	_, portStr, err := net.SplitHostPort(srv.Listener.Addr().(*net.TCPAddr).String())
	if err != nil {
		t.Fatal(err)
	}
	port, _ := strconv.Atoi(portStr)
	return port
}

func TestFetchStatus(t *testing.T) {
	port := testServer(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/status" {
			http.NotFound(w, r)
			return
		}
		w.Write([]byte(`{"running":true,"port":1234,"boards":[{"file":"/b/board.md","lastModified":"2026-03-01T12:00:00Z"}]}`))
	})

	s := New(Options{Port: port})
	status, err := s.FetchStatus(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if !status.Running || status.Port != 1234 {
		t.Fatalf("unexpected status: %+v", status)
	}
	if len(status.Boards) != 1 || status.Boards[0].File != "/b/board.md" {
		t.Fatalf("unexpected boards: %+v", status.Boards)
	}
}

func TestFetchStatusUnreachable(t *testing.T) {
	s := New(Options{Port: 1}) // nothing listens here
	if _, err := s.FetchStatus(context.Background()); err == nil {
		t.Fatal("expected error for unreachable server")
	}
}

func TestFetchStatusBadPayload(t *testing.T) {
	port := testServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("not json"))
	})
	s := New(Options{Port: port})
	if _, err := s.FetchStatus(context.Background()); err == nil {
		t.Fatal("expected decode error")
	}
}

func TestStartRefusesWhenAlreadyRunning(t *testing.T) {
	port := testServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"running":true}`))
	})
	s := New(Options{Port: port, Command: "true"})
	if err := s.Start(context.Background()); !errors.Is(err, ErrAlreadyRunning) {
		t.Fatalf("expected ErrAlreadyRunning, got %v", err)
	}
}

func TestStartRequiresCommand(t *testing.T) {
	s := New(Options{Port: 1})
	if err := s.Start(context.Background()); err == nil {
		t.Fatal("expected error for empty command")
	}
}

func TestStartWritesPIDAndLogs(t *testing.T) {
	dir := t.TempDir()
	pidPath := filepath.Join(dir, "sync.pid")
	logPath := filepath.Join(dir, "sync.log")

	s := New(Options{
		Port:    1,
		Command: "sleep 30",
		PIDPath: pidPath,
		LogPath: logPath,
	})
	if err := s.Start(context.Background()); err != nil {
		t.Fatal(err)
	}
	defer func() {
		_ = s.Stop()
	}()

	data, err := os.ReadFile(pidPath)
	if err != nil {
		t.Fatalf("expected pid file: %v", err)
	}
	if len(data) == 0 {
		t.Fatal("pid file is empty")
	}
	if _, err := os.Stat(logPath); err != nil {
		t.Fatalf("expected log file: %v", err)
	}

	if err := s.Stop(); err != nil {
		t.Fatalf("stop: %v", err)
	}
	if _, err := os.Stat(pidPath); !os.IsNotExist(err) {
		t.Fatal("pid file must be removed after stop")
	}
}

func TestStopWithoutPIDFile(t *testing.T) {
	s := New(Options{PIDPath: filepath.Join(t.TempDir(), "missing.pid")})
	if err := s.Stop(); !errors.Is(err, ErrNotRunning) {
		t.Fatalf("expected ErrNotRunning, got %v", err)
	}
}

func TestWaitForServer(t *testing.T) {
	var ready atomic.Bool
	port := testServer(t, func(w http.ResponseWriter, r *http.Request) {
		if !ready.Load() {
			http.Error(w, "starting", http.StatusServiceUnavailable)
			return
		}
		w.Write([]byte(`{"running":true}`))
	})

	s := New(Options{Port: port})
	go func() {
		time.Sleep(300 * time.Millisecond)
		ready.Store(true)
	}()

	status, err := s.WaitForServer(context.Background(), 5*time.Second)
	if err != nil {
		t.Fatal(err)
	}
	if !status.Running {
		t.Fatalf("unexpected status: %+v", status)
	}
}

func TestWaitForServerTimeout(t *testing.T) {
	s := New(Options{Port: 1})
	if _, err := s.WaitForServer(context.Background(), 300*time.Millisecond); err == nil {
		t.Fatal("expected timeout error")
	}
}
