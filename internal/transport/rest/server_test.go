package rest

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rocketscienceinc/tictactoe-engine/internal/entity"
)

func newTestHandler() http.Handler {
	return NewHandler(slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func postAnalyze(t *testing.T, body string) (int, map[string]any) {
	t.Helper()

	req := httptest.NewRequest(http.MethodPost, "/api/v1/analyze", strings.NewReader(body))
	rec := httptest.NewRecorder()

	newTestHandler().ServeHTTP(rec, req)

	var resp map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))

	return rec.Code, resp
}

func TestPing(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	rec := httptest.NewRecorder()

	newTestHandler().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "pong", rec.Body.String())
}

func TestAnalyze(t *testing.T) {
	t.Run("Best move completes the row", func(t *testing.T) {
		// Given: X can win on cell 2
		body := `{"board":["X","X","","O","O","","","",""],"mark":"X"}`

		// When: the board is analyzed
		code, resp := postAnalyze(t, body)

		// Then: the game is in progress and 2 is the best move
		require.Equal(t, http.StatusOK, code)
		assert.Equal(t, "in_progress", resp["outcome"])
		assert.InDelta(t, 2, resp["best_move"], 0)
		assert.Len(t, resp["scores"], 5)
	})

	t.Run("Won board reports the winner", func(t *testing.T) {
		body := `{"board":["O","O","O","X","X","","X","",""],"mark":"X"}`

		code, resp := postAnalyze(t, body)

		require.Equal(t, http.StatusOK, code)
		assert.Equal(t, "win", resp["outcome"])
		assert.Equal(t, string(entity.MarkO), resp["winner"])
	})

	t.Run("Full board has no best move", func(t *testing.T) {
		body := `{"board":["X","O","X","X","O","O","O","X","X"]}`

		code, resp := postAnalyze(t, body)

		require.Equal(t, http.StatusOK, code)
		assert.Equal(t, "draw", resp["outcome"])
		assert.NotContains(t, resp, "best_move")
		assert.NotContains(t, resp, "scores")
	})

	t.Run("Board of wrong size", func(t *testing.T) {
		code, resp := postAnalyze(t, `{"board":["X"],"mark":"O"}`)

		assert.Equal(t, http.StatusBadRequest, code)
		assert.Contains(t, resp["error"], "9 cells")
	})

	t.Run("Unknown cell value", func(t *testing.T) {
		code, resp := postAnalyze(t, `{"board":["Z","","","","","","","",""],"mark":"O"}`)

		assert.Equal(t, http.StatusBadRequest, code)
		assert.Contains(t, resp["error"], "invalid mark")
	})

	t.Run("Missing mark on open board", func(t *testing.T) {
		code, resp := postAnalyze(t, `{"board":["","","","","","","","",""]}`)

		assert.Equal(t, http.StatusBadRequest, code)
		assert.Contains(t, resp["error"], "invalid mark")
	})

	t.Run("Malformed body", func(t *testing.T) {
		code, resp := postAnalyze(t, `{"board":`)

		assert.Equal(t, http.StatusBadRequest, code)
		assert.Equal(t, "malformed request", resp["error"])
	})
}

type brokenWriter struct {
	header http.Header
}

func (that *brokenWriter) Header() http.Header {
	return that.header
}

func (that *brokenWriter) Write([]byte) (int, error) {
	return 0, errors.New("connection reset")
}

func (that *brokenWriter) WriteHeader(int) {}

func TestAnalyze_LogsWriteFailure(t *testing.T) {
	// Given: a client that went away
	var logs bytes.Buffer
	handler := NewAnalyzeHandler(slog.New(slog.NewTextHandler(&logs, nil)))
	req := httptest.NewRequest(http.MethodPost, "/api/v1/analyze", strings.NewReader(`{"board":`))

	// When: the response cannot be written
	handler.Analyze(&brokenWriter{header: http.Header{}}, req)

	// Then: the failure is logged
	assert.Contains(t, logs.String(), "failed to write response")
	assert.Contains(t, logs.String(), "connection reset")
}

func freePort(t *testing.T) string {
	t.Helper()

	listener, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	port := strconv.Itoa(listener.Addr().(*net.TCPAddr).Port)
	require.NoError(t, listener.Close())

	return port
}

func TestStart_WaitsForInFlightRequest(t *testing.T) {
	// Given: a running server
	port := freePort(t)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	done := make(chan error, 1)
	go func() {
		done <- Start(ctx, slog.New(slog.NewTextHandler(io.Discard, nil)), port)
	}()

	var conn net.Conn
	require.Eventually(t, func() bool {
		var err error
		conn, err = net.Dial("tcp", "127.0.0.1:"+port)
		return err == nil
	}, 5*time.Second, 10*time.Millisecond)
	defer conn.Close()

	// Given: a request whose body has only partly arrived
	body := `{"board":["X","X","","O","O","","","",""],"mark":"X"}`
	head := fmt.Sprintf("POST /api/v1/analyze HTTP/1.1\r\nHost: localhost\r\nContent-Type: application/json\r\nContent-Length: %d\r\n\r\n", len(body))
	_, err := io.WriteString(conn, head+body[:1])
	require.NoError(t, err)

	time.Sleep(50 * time.Millisecond)

	// When: the server is asked to stop
	cancel()

	// Then: Start keeps waiting for the request
	select {
	case err = <-done:
		t.Fatalf("Start returned before the request finished: %v", err)
	case <-time.After(200 * time.Millisecond):
	}

	// When: the rest of the body arrives
	_, err = io.WriteString(conn, body[1:])
	require.NoError(t, err)

	// Then: the request is answered
	resp, err := http.ReadResponse(bufio.NewReader(conn), nil)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	// Then: Start returns cleanly
	select {
	case err = <-done:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("Start did not return after the request finished")
	}
}
