package server

import (
	"context"
	"net/http"
	"testing"
	"time"
)

func TestNormalizeAddr(t *testing.T) {
	cases := map[string]string{
		"":             ":8080",
		"9090":         ":9090",
		":7070":        ":7070",
		"0.0.0.0:8081": "0.0.0.0:8081",
	}
	for in, want := range cases {
		if got := normalizeAddr(in); got != want {
			t.Errorf("normalizeAddr(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestRun_ReturnsNilAfterShutdown(t *testing.T) {
	srv := New("127.0.0.1:0", http.NotFoundHandler())
	if srv.Addr() != "127.0.0.1:0" {
		t.Fatalf("addr=%q", srv.Addr())
	}

	errc := make(chan error, 1)
	go func() { errc <- srv.Run() }()

	time.Sleep(50 * time.Millisecond)
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		t.Fatalf("shutdown: %v", err)
	}
	select {
	case err := <-errc:
		if err != nil {
			t.Fatalf("Run returned %v after shutdown", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("Run did not return")
	}
}
