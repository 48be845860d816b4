package action

import (
	"context"
	"fmt"
	"net"
	"strings"
	"time"

	"github.com/RomanHargrave/lyrebird/pkg/errclass"
	"github.com/RomanHargrave/lyrebird/pkg/logging"
	"github.com/RomanHargrave/lyrebird/pkg/model"
)

// DefaultTimeout bounds connection setup when a request does not set one.
const DefaultTimeout = 10 * time.Second

// NetRequest describes one network send.
type NetRequest struct {
	Proto   string // "tcp" or "udp"
	Dest    string // host:port
	Data    string
	Timeout time.Duration
}

// Send connects to req.Dest, writes req.Data once and records the
// addresses on both ends together with the number of bytes written.
func Send(ctx context.Context, rec Recorder, req NetRequest) (model.NetSend, error) {
	network := strings.ToLower(req.Proto)
	switch network {
	case "tcp", "udp":
	default:
		return model.NetSend{}, errclass.ErrActionFailed.WithMessagef("unsupported protocol %q", req.Proto)
	}

	timeout := req.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	dialCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	var d net.Dialer
	conn, err := d.DialContext(dialCtx, network, req.Dest)
	if err != nil {
		return model.NetSend{}, errclass.ErrActionFailed.Wrap(fmt.Sprintf("connect %s", req.Dest), err)
	}
	defer conn.Close()

	if err := conn.SetWriteDeadline(time.Now().Add(timeout)); err != nil {
		return model.NetSend{}, errclass.ErrActionFailed.Wrap("set write deadline", err)
	}
	n, err := conn.Write([]byte(req.Data))
	if err != nil {
		return model.NetSend{}, errclass.ErrActionFailed.Wrap(fmt.Sprintf("send to %s", req.Dest), err)
	}

	payload := model.NetSend{
		Proto: strings.ToUpper(network),
		Bytes: n,
	}
	payload.SrcAddr, payload.SrcPort = splitAddr(conn.LocalAddr())
	payload.DstAddr, payload.DstPort = splitAddr(conn.RemoteAddr())

	logging.Debug("data sent", map[string]any{"proto": payload.Proto, "dst": req.Dest, "bytes": n})
	return payload, rec.Record(payload)
}

func splitAddr(addr net.Addr) (string, int) {
	switch a := addr.(type) {
	case *net.TCPAddr:
		return a.IP.String(), a.Port
	case *net.UDPAddr:
		return a.IP.String(), a.Port
	default:
		return addr.String(), 0
	}
}
