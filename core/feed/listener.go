package feed

import (
	"bufio"
	"context"
	"log"
	"net"
)

// Listener accepts TCP connections from the sensor node and folds every
// protocol line it receives. One line is one event; framing is by
// newline, matching the node's firmware.
type Listener struct {
	addr   string
	folder *Folder
}

// NewListener creates a listener bound to addr once started.
func NewListener(addr string, folder *Folder) *Listener {
	return &Listener{addr: addr, folder: folder}
}

// ListenAndServe accepts connections until the context is cancelled.
// Malformed lines are logged and dropped; they never end the session.
func (l *Listener) ListenAndServe(ctx context.Context) error {
	ln, err := net.Listen("tcp", l.addr)
	if err != nil {
		return err
	}
	log.Printf("feed listener on %s", l.addr)

	go func() {
		<-ctx.Done()
		ln.Close()
	}()

	for {
		conn, err := ln.Accept()
		if err != nil {
			if ctx.Err() != nil {
				return nil
			}
			return err
		}
		go l.serveConn(conn)
	}
}

func (l *Listener) serveConn(conn net.Conn) {
	defer conn.Close()
	log.Printf("feed connection from %s", conn.RemoteAddr())

	scanner := bufio.NewScanner(conn)
	for scanner.Scan() {
		ev, err := ParseLine(scanner.Text())
		if err != nil {
			log.Printf("dropping feed line: %v", err)
			continue
		}
		if ev == nil {
			continue
		}
		if err := l.folder.Fold(ev); err != nil {
			log.Printf("dropping feed event: %v", err)
		}
	}
	if err := scanner.Err(); err != nil {
		log.Printf("feed connection %s closed: %v", conn.RemoteAddr(), err)
	}
}
