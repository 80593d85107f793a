package session

import (
	"bufio"
	"net"
	"time"
)

// LineConn is a transport that carries one protocol message per line.
type LineConn interface {
	ReadLine() (string, error)
	WriteLine(line string) error
	Close() error
	RemoteAddr() string
}

type streamConn struct {
	conn      net.Conn
	scanner   *bufio.Scanner
	writer    *bufio.Writer
	writeWait time.Duration
}

// NewStreamConn wraps a newline-delimited stream. Lines longer than maxLine
// bytes fail the read.
func NewStreamConn(conn net.Conn, maxLine int, writeWait time.Duration) LineConn {
	scanner := bufio.NewScanner(conn)
	scanner.Buffer(make([]byte, 0, min(maxLine, 4096)), maxLine)
	return &streamConn{
		conn:      conn,
		scanner:   scanner,
		writer:    bufio.NewWriter(conn),
		writeWait: writeWait,
	}
}

func (s *streamConn) ReadLine() (string, error) {
	if !s.scanner.Scan() {
		if err := s.scanner.Err(); err != nil {
			return "", err
		}
		return "", net.ErrClosed
	}
	return s.scanner.Text(), nil
}

// WriteLine is only called from the client's write pump.
func (s *streamConn) WriteLine(line string) error {
	if s.writeWait > 0 {
		s.conn.SetWriteDeadline(time.Now().Add(s.writeWait))
	}
	if _, err := s.writer.WriteString(line); err != nil {
		return err
	}
	if err := s.writer.WriteByte('\n'); err != nil {
		return err
	}
	return s.writer.Flush()
}

func (s *streamConn) Close() error {
	return s.conn.Close()
}

func (s *streamConn) RemoteAddr() string {
	return s.conn.RemoteAddr().String()
}
