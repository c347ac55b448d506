package network

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// echoHandler responde a cada mensagem e avisa os testes pelos canais.
type echoHandler struct {
	kickOnConnect bool
	flood         int
	connected     chan string
	disconnected  chan string
}

func newEchoHandler() *echoHandler {
	return &echoHandler{
		connected:    make(chan string, 4),
		disconnected: make(chan string, 4),
	}
}

func (h *echoHandler) OnConnect(p Peer) {
	h.connected <- p.ID()
	msg, _ := NewMessage("WELCOME", map[string]string{"id": p.ID()})
	p.Send(msg)
	for i := 0; i < h.flood; i++ {
		if !p.Send(Message{Type: "FLOOD"}) {
			break
		}
	}
	if h.kickOnConnect {
		p.Close()
	}
}

func (h *echoHandler) OnDisconnect(p Peer) { h.disconnected <- p.ID() }

func (h *echoHandler) OnMessage(p Peer, msg Message) {
	p.Send(Message{Type: "ECHO", Payload: msg.Payload})
}

func quietLogger() *logrus.Entry {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return logrus.NewEntry(l)
}

func startServer(t *testing.T, handler EventHandler, opts ServerOptions) *httptest.Server {
	t.Helper()
	opts.Logger = quietLogger()
	s := NewServer(handler, opts)

	ctx, cancel := context.WithCancel(context.Background())
	go s.hub.Run(ctx)
	ts := httptest.NewServer(s.Handler())
	t.Cleanup(func() {
		ts.Close()
		cancel()
	})
	return ts
}

func dial(t *testing.T, ts *httptest.Server) *websocket.Conn {
	t.Helper()
	url := "ws" + strings.TrimPrefix(ts.URL, "http") + "/ws"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })
	return conn
}

func readMessage(t *testing.T, conn *websocket.Conn) Message {
	t.Helper()
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	var msg Message
	require.NoError(t, conn.ReadJSON(&msg))
	return msg
}

func waitFor(t *testing.T, ch <-chan string) string {
	t.Helper()
	select {
	case v := <-ch:
		return v
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for hub event")
		return ""
	}
}

func TestHubRoundTrip(t *testing.T) {
	h := newEchoHandler()
	ts := startServer(t, h, ServerOptions{})
	conn := dial(t, ts)

	id := waitFor(t, h.connected)
	welcome := readMessage(t, conn)
	assert.Equal(t, "WELCOME", welcome.Type)
	var body map[string]string
	require.NoError(t, welcome.Decode(&body))
	assert.Equal(t, id, body["id"])

	require.NoError(t, conn.WriteJSON(Message{Type: "PLAY_CARD", Payload: json.RawMessage(`{"card":"A-7"}`)}))
	echo := readMessage(t, conn)
	assert.Equal(t, "ECHO", echo.Type)
	assert.JSONEq(t, `{"card":"A-7"}`, string(echo.Payload))

	require.NoError(t, conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, "")))
	assert.Equal(t, id, waitFor(t, h.disconnected))
}

func TestHandlerCanCloseAPeer(t *testing.T) {
	h := newEchoHandler()
	h.kickOnConnect = true
	ts := startServer(t, h, ServerOptions{})
	conn := dial(t, ts)

	id := waitFor(t, h.connected)

	// O que foi enfileirado antes do Close ainda chega.
	assert.Equal(t, "WELCOME", readMessage(t, conn).Type)

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	_, _, err := conn.ReadMessage()
	assert.True(t, websocket.IsCloseError(err, websocket.CloseNormalClosure), "got %v", err)
	assert.Equal(t, id, waitFor(t, h.disconnected))
}

func TestClientSendNeverBlocks(t *testing.T) {
	c := &Client{id: "c1", send: make(chan Message, 1), log: quietLogger()}

	assert.True(t, c.Send(Message{Type: "A"}))
	assert.False(t, c.Send(Message{Type: "B"}), "full buffer closes the client")
	assert.True(t, c.closed)
	assert.False(t, c.Send(Message{Type: "C"}), "send after close is ignored")

	// O que já estava na fila ainda sai antes do fechamento.
	msg, ok := <-c.send
	require.True(t, ok)
	assert.Equal(t, "A", msg.Type)
	_, ok = <-c.send
	assert.False(t, ok)

	c.Close()
	c.Close()
}

func TestSlowClientIsDisconnected(t *testing.T) {
	handler := newEchoHandler()
	handler.flood = 10000
	ts := startServer(t, handler, ServerOptions{SendBuffer: 1})
	dial(t, ts)

	var id string
	select {
	case id = <-handler.connected:
	case <-time.After(2 * time.Second):
		t.Fatal("connect not delivered")
	}

	select {
	case left := <-handler.disconnected:
		assert.Equal(t, id, left)
	case <-time.After(2 * time.Second):
		t.Fatal("slow client was not disconnected")
	}
}

func TestStatusAndHealthRoutes(t *testing.T) {
	health := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	ts := startServer(t, newEchoHandler(), ServerOptions{
		Health: health,
		Status: func() any { return map[string]any{"lifecycle": "empty", "seated": 0} },
	})

	resp, err := http.Get(ts.URL + "/status")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, resp.Header.Get("Content-Type"), "application/json")

	var status map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&status))
	assert.Equal(t, "empty", status["lifecycle"])

	resp2, err := http.Get(ts.URL + "/health")
	require.NoError(t, err)
	resp2.Body.Close()
	assert.Equal(t, http.StatusOK, resp2.StatusCode)
}

func TestMessageEnvelope(t *testing.T) {
	msg, err := NewMessage("TURN_UPDATE", map[string]int{"player": 2})
	require.NoError(t, err)

	raw, err := json.Marshal(msg)
	require.NoError(t, err)
	assert.JSONEq(t, `{"type":"TURN_UPDATE","payload":{"player":2}}`, string(raw))

	bare, err := NewMessage("PASS_TURN", nil)
	require.NoError(t, err)
	var v struct{ X int }
	assert.NoError(t, bare.Decode(&v), "empty payload decodes to the zero value")

	bad := Message{Type: "PLAY_CARD", Payload: json.RawMessage(`[`)}
	assert.Error(t, bad.Decode(&v))
}
