/*
Package ws streams a framebuffer to browsers or other clients over
WebSockets.

Every rendered region is broadcast as one binary message: the start column,
end column, start page and end page as little-endian 16-bit values followed
by the region's bytes, page by page. A newly connected client is first sent
the whole panel.
*/
package ws

import (
	"encoding/binary"
	"net/http"
	"sync"

	"github.com/bodgit/monosprite/display"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

const (
	headerSize = 8
	sendQueue  = 16
)

type client struct {
	conn *websocket.Conn
	send chan []byte
}

// Server is a display.Display and an http.Handler.
type Server struct {
	upgrader websocket.Upgrader
	logger   *zap.Logger

	mu           sync.Mutex
	width, pages int
	mem          []byte
	clients      map[*client]struct{}
}

var (
	_ display.Display = (*Server)(nil)
	_ http.Handler    = (*Server)(nil)
)

// New returns a Server for a width by height panel.
func New(width, height int, logger *zap.Logger) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	pages := (height + 7) >> 3
	return &Server{
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(*http.Request) bool { return true },
		},
		logger:  logger,
		width:   width,
		pages:   pages,
		mem:     make([]byte, width*pages),
		clients: make(map[*client]struct{}),
	}
}

func encode(buf []byte, width, startColumn, endColumn, startPage, endPage int) []byte {
	n := (endColumn - startColumn + 1) * (endPage - startPage + 1)
	msg := make([]byte, headerSize, headerSize+n)
	binary.LittleEndian.PutUint16(msg[0:], uint16(startColumn))
	binary.LittleEndian.PutUint16(msg[2:], uint16(endColumn))
	binary.LittleEndian.PutUint16(msg[4:], uint16(startPage))
	binary.LittleEndian.PutUint16(msg[6:], uint16(endPage))
	for p := startPage; p <= endPage; p++ {
		msg = append(msg, buf[p*width+startColumn:p*width+endColumn+1]...)
	}
	return msg
}

// Clients returns the number of connected clients.
func (s *Server) Clients() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.clients)
}

// Render implements display.Display. Clients that cannot keep up are
// disconnected rather than allowed to stall rendering.
func (s *Server) Render(buf []byte, startColumn, endColumn, startPage, endPage int) error {
	if err := display.CheckRegion(s.width, s.pages, startColumn, endColumn, startPage, endPage); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for p := startPage; p <= endPage; p++ {
		copy(s.mem[p*s.width+startColumn:p*s.width+endColumn+1], buf[p*s.width+startColumn:])
	}

	msg := encode(buf, s.width, startColumn, endColumn, startPage, endPage)
	for c := range s.clients {
		select {
		case c.send <- msg:
		default:
			s.logger.Warn("client too slow, dropping", zap.Stringer("remote", c.conn.RemoteAddr()))
			s.remove(c)
		}
	}

	return nil
}

// Must hold s.mu.
func (s *Server) remove(c *client) {
	if _, ok := s.clients[c]; ok {
		delete(s.clients, c)
		close(c.send)
	}
}

func (s *Server) writer(c *client) {
	defer c.conn.Close()
	for msg := range c.send {
		if err := c.conn.WriteMessage(websocket.BinaryMessage, msg); err != nil {
			s.logger.Debug("write failed", zap.Error(err))
			s.mu.Lock()
			s.remove(c)
			s.mu.Unlock()
			for range c.send {
			}
			return
		}
	}
	c.conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
}

// ServeHTTP upgrades the request to a WebSocket and streams the panel to
// it until either side closes the connection.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Debug("upgrade failed", zap.Error(err))
		return
	}

	c := &client{
		conn: conn,
		send: make(chan []byte, sendQueue),
	}

	s.mu.Lock()
	c.send <- encode(s.mem, s.width, 0, s.width-1, 0, s.pages-1)
	s.clients[c] = struct{}{}
	s.mu.Unlock()

	s.logger.Debug("client connected", zap.Stringer("remote", conn.RemoteAddr()))

	go s.writer(c)

	// Clients never send anything meaningful; read until the connection
	// goes away so close frames are processed.
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			break
		}
	}

	s.mu.Lock()
	s.remove(c)
	s.mu.Unlock()

	s.logger.Debug("client disconnected", zap.Stringer("remote", conn.RemoteAddr()))
}
