package bridge

import (
	"bufio"
	"fmt"
	"net"

	"github.com/programmingLego/lwpctl/internal/lwp"
	"github.com/programmingLego/lwpctl/internal/lwp/downstream"
	"github.com/programmingLego/lwpctl/internal/lwp/upstream"
)

// Client is a device-side connection to a bridge.
type Client struct {
	conn   net.Conn
	reader *bufio.Reader
	port   lwp.Port
}

// Dial connects to a bridge without claiming a port yet.
func Dial(addr string) (*Client, error) {
	conn, err := net.Dial("tcp", addr)
	if err != nil {
		return nil, fmt.Errorf("bridge: dial failed: %w", err)
	}
	return &Client{conn: conn, reader: bufio.NewReader(conn)}, nil
}

// Connect claims a device port and waits for the bridge to confirm.
func (c *Client) Connect(port lwp.Port) error {
	if err := c.Send(downstream.ExternalServerConnect{Port: port}); err != nil {
		return err
	}
	n, err := c.Recv()
	if err != nil {
		return err
	}
	srv, ok := n.(upstream.ExternalServerNotification)
	if !ok || srv.Event != lwp.EventSrvConnected {
		return fmt.Errorf("bridge: unexpected connect reply %T", n)
	}
	c.port = port
	return nil
}

// Disconnect releases the claimed port.
func (c *Client) Disconnect() error {
	if err := c.Send(downstream.ExternalServerDisconnect{Port: c.port}); err != nil {
		return err
	}
	n, err := c.Recv()
	if err != nil {
		return err
	}
	srv, ok := n.(upstream.ExternalServerNotification)
	if !ok || srv.Event != lwp.EventSrvDisconnected {
		return fmt.Errorf("bridge: unexpected disconnect reply %T", n)
	}
	return nil
}

// Send assembles and transmits one command.
func (c *Client) Send(cmd downstream.Command) error {
	data, err := cmd.Build()
	if err != nil {
		return err
	}
	if _, err := c.conn.Write(data); err != nil {
		return fmt.Errorf("bridge: send failed: %w", err)
	}
	return nil
}

// Recv blocks for the next notification from the bridge.
func (c *Client) Recv() (upstream.Notification, error) {
	data, err := readMessage(c.reader)
	if err != nil {
		return nil, err
	}
	return upstream.Parse(data)
}

func (c *Client) Close() error {
	return c.conn.Close()
}
