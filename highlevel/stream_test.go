package highlevel_test

import (
	"errors"
	"testing"

	"github.com/momentics/hioload-codec/control"
	"github.com/momentics/hioload-codec/core/http1"
	"github.com/momentics/hioload-codec/fake"
	"github.com/momentics/hioload-codec/highlevel"
	"github.com/momentics/hioload-codec/protocol"
)

const rfcRequest = "GET /chat HTTP/1.1\r\nHost: server.example.com\r\nUpgrade: websocket\r\n" +
	"Connection: Upgrade\r\nSec-WebSocket-Key: dGhlIHNhbXBsZSBub25jZQ==\r\n" +
	"Origin: http://example.com\r\nSec-WebSocket-Protocol: chat, superchat\r\n" +
	"Sec-WebSocket-Version: 13\r\n\r\n"

func TestAcceptHandshakeSplitRequest(t *testing.T) {
	s := fake.NewStream(rfcRequest[:10], rfcRequest[10:77], rfcRequest[77:]+"\x81\x85")
	opts := highlevel.DefaultOptions()
	opts.Subprotocol = "superchat"

	hs, err := highlevel.AcceptHandshake(s, opts)
	if err != nil {
		t.Fatal(err)
	}
	if hs.Subprotocol != "superchat" {
		t.Errorf("subprotocol = %q", hs.Subprotocol)
	}
	if string(hs.Buffered) != "\x81\x85" {
		t.Errorf("buffered = %q", hs.Buffered)
	}

	resp := http1.ParseResponse(s.Sent())
	if !resp.Ok() || resp.StatusCode != 101 {
		t.Fatalf("response = %+v", resp)
	}
	if string(resp.SecWebSocketAccept) != "s3pPLMBiTxaQ9kYGzzhZRbK+xOo=" {
		t.Errorf("accept = %q", resp.SecWebSocketAccept)
	}
	if string(resp.SecWebSocketProtocol) != "superchat" {
		t.Errorf("protocol = %q", resp.SecWebSocketProtocol)
	}
	if err := protocol.ValidateServerHandshake(&resp, []byte("dGhlIHNhbXBsZSBub25jZQ==")); err != nil {
		t.Errorf("own response does not validate: %v", err)
	}
}

func TestAcceptHandshakeWriteFailure(t *testing.T) {
	boom := errors.New("boom")
	s := fake.NewStream(rfcRequest)
	s.SetSendError(boom)
	metrics := control.NewMetricsRegistry()
	opts := highlevel.DefaultOptions()
	opts.Metrics = metrics

	if _, err := highlevel.AcceptHandshake(s, opts); !errors.Is(err, boom) {
		t.Errorf("err = %v, want boom", err)
	}
	if got := metrics.Counter(control.MetricHandshakeFailed).Load(); got != 1 {
		t.Errorf("handshake.failed = %d", got)
	}
}

func TestAcceptHandshakeMalformedRequest(t *testing.T) {
	s := fake.NewStream("GET / HTTP/1.1\r\nBad Header: x\r\n\r\n")
	_, err := highlevel.AcceptHandshake(s, highlevel.DefaultOptions())
	if !errors.Is(err, http1.ErrBadHeader) {
		t.Errorf("err = %v, want ErrBadHeader", err)
	}
	if resp := http1.ParseResponse(s.Sent()); resp.StatusCode != 400 {
		t.Errorf("reject status = %d", resp.StatusCode)
	}
}

func TestClientHandshakeWritesRequest(t *testing.T) {
	s := fake.NewStream()
	s.SetRecvError(errors.New("no server"))
	opts := highlevel.DefaultOptions()
	opts.Subprotocol = "chat"

	if _, err := highlevel.ClientHandshake(s, "example.com", "/ws", opts); err == nil {
		t.Fatal("handshake without a response succeeded")
	}
	req := http1.ParseRequest(s.Sent())
	if !req.Ok() {
		t.Fatalf("request = %+v", req)
	}
	if err := protocol.ValidateClientHandshake(&req); err != nil {
		t.Errorf("own request does not validate: %v", err)
	}
	if string(req.Host) != "example.com" || string(req.SecWebSocketProtocol) != "chat" {
		t.Errorf("host %q protocol %q", req.Host, req.SecWebSocketProtocol)
	}
}
