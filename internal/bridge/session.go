package bridge

import (
	"bufio"
	"fmt"
	"io"
	"net"
	"sync"

	"github.com/programmingLego/lwpctl/internal/lwp"
)

// Session is one client connection, holding at most one device port.
type Session struct {
	conn   net.Conn
	reader *bufio.Reader
	port   lwp.Port
	bound  bool

	writeMu sync.Mutex
}

func newSession(conn net.Conn) *Session {
	return &Session{
		conn:   conn,
		reader: bufio.NewReader(conn),
	}
}

// Read returns the next complete wire message. The first byte carries
// the total length; lengths above 127 spill into a second byte.
func (s *Session) Read() ([]byte, error) {
	return readMessage(s.reader)
}

// Write sends one complete wire message.
func (s *Session) Write(data []byte) error {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()
	if _, err := s.conn.Write(data); err != nil {
		return fmt.Errorf("bridge: write failed: %w", err)
	}
	return nil
}

func (s *Session) Close() error {
	return s.conn.Close()
}

func readMessage(r *bufio.Reader) ([]byte, error) {
	first, err := r.ReadByte()
	if err != nil {
		return nil, err
	}
	header := []byte{first}
	total := int(first)
	if first&0x80 != 0 {
		second, err := r.ReadByte()
		if err != nil {
			return nil, err
		}
		header = append(header, second)
		total = int(first&0x7f) | int(second)<<7
	}
	if total < len(header) {
		return nil, fmt.Errorf("bridge: length byte 0x%02x below header size", first)
	}
	rest := make([]byte, total-len(header))
	if _, err := io.ReadFull(r, rest); err != nil {
		return nil, err
	}
	return append(header, rest...), nil
}
