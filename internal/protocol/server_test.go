package protocol

import (
	"context"
	"io"
	"net"
	"strings"
	"testing"
	"time"
)

type testLogger struct{}

func (testLogger) Debug(msg string, args ...any) {}
func (testLogger) Info(msg string, args ...any)  {}
func (testLogger) Warn(msg string, args ...any)  {}
func (testLogger) Error(msg string, args ...any) {}

func startTestServer(t *testing.T) *Server {
	t.Helper()

	s := NewServer(testLogger{}, NewRouter(fixtureSnapshot()), "127.0.0.1:0", 4)
	go s.Start()

	deadline := time.Now().Add(time.Second)
	for s.Addr() == nil {
		if time.Now().After(deadline) {
			t.Fatal("server never bound its listener")
		}
		time.Sleep(2 * time.Millisecond)
	}

	t.Cleanup(func() {
		ctx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()
		s.Shutdown(ctx)
	})

	return s
}

// request sends one request line and returns everything the server wrote.
func request(t *testing.T, addr, line string) string {
	t.Helper()

	resp, err := tryRequest(addr, line)
	if err != nil {
		t.Fatalf("request: %v", err)
	}
	return resp
}

func tryRequest(addr, line string) (string, error) {
	conn, err := net.Dial("tcp", addr)
	if err != nil {
		return "", err
	}
	defer conn.Close()

	if _, err := conn.Write([]byte(line)); err != nil {
		return "", err
	}

	conn.SetReadDeadline(time.Now().Add(time.Second))
	resp, err := io.ReadAll(conn)
	if err != nil {
		return "", err
	}
	return string(resp), nil
}

func TestServerServesRequests(t *testing.T) {
	s := startTestServer(t)
	addr := s.Addr().String()

	tests := []struct {
		name     string
		line     string
		wantBody string
	}{
		{name: "cores", line: "GET /cores\n", wantBody: `{"cores":4}`},
		{name: "procs without newline", line: "GET /procs", wantBody: `{"procs":99}`},
		{name: "crlf terminated request", line: "GET /load\r\n", wantBody: `{"load":[0.12,0.34,0.56]}`},
		{name: "unknown request still gets success header", line: "GARBAGE\n", wantBody: `{"err":1}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := request(t, addr, tt.line)

			if !strings.HasPrefix(resp, "HTTP/1.1 200 OK\r\n") {
				t.Errorf("response missing success status line: %q", resp)
			}
			if !strings.Contains(resp, "Content-Type: application/json; charset=utf-8\r\n") {
				t.Errorf("response missing content type header: %q", resp)
			}

			_, body, found := strings.Cut(resp, "\r\n\r\n")
			if !found {
				t.Fatalf("response missing blank line after headers: %q", resp)
			}
			if got := strings.TrimSuffix(body, "\r\n"); got != tt.wantBody {
				t.Errorf("body = %s, want %s", got, tt.wantBody)
			}
		})
	}
}

func TestServerIgnoresSilentPeer(t *testing.T) {
	s := startTestServer(t)
	addr := s.Addr().String()

	// Connect and close without sending anything; no response expected and
	// the server must keep serving.
	conn, err := net.Dial("tcp", addr)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	conn.Close()

	resp := request(t, addr, "GET /cores\n")
	if !strings.Contains(resp, `{"cores":4}`) {
		t.Errorf("server stopped serving after a silent peer: %q", resp)
	}
}

func TestServerConcurrentConnections(t *testing.T) {
	s := startTestServer(t)
	addr := s.Addr().String()

	done := make(chan string, 8)
	for i := 0; i < 8; i++ {
		go func() {
			resp, err := tryRequest(addr, "GET /procs\n")
			if err != nil {
				resp = "error: " + err.Error()
			}
			done <- resp
		}()
	}

	for i := 0; i < 8; i++ {
		resp := <-done
		if !strings.Contains(resp, `{"procs":99}`) {
			t.Errorf("concurrent request got %q", resp)
		}
	}
}

func TestServerBindFailure(t *testing.T) {
	taken, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("listen: %v", err)
	}
	defer taken.Close()

	s := NewServer(testLogger{}, NewRouter(fixtureSnapshot()), taken.Addr().String(), 4)
	if err := s.Start(); err == nil {
		t.Error("Start() = nil, want bind error for an occupied address")
	}
}

func TestServerShutdownStopsAccepting(t *testing.T) {
	s := startTestServer(t)
	addr := s.Addr().String()

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	if err := s.Shutdown(ctx); err != nil {
		t.Fatalf("Shutdown() = %v", err)
	}

	if conn, err := net.Dial("tcp", addr); err == nil {
		conn.Close()
		t.Error("listener still accepting after Shutdown")
	}
}
