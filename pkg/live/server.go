package live

import (
	"context"
	"encoding/json"
	"html"
	"log/slog"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/gorilla/websocket"

	"github.com/vango-dev/cells/pkg/dom"
	"github.com/vango-dev/cells/pkg/reactive"
	"github.com/vango-dev/cells/pkg/scheduler"
)

const (
	writeTimeout = 10 * time.Second
	sendBuffer   = 256
)

// Dispatcher delivers browser events. *component.Handle implements it.
type Dispatcher interface {
	Dispatch(hid, typ, value string) bool
}

// Option configures a Server.
type Option func(*Server)

// WithLogger sets the server logger.
func WithLogger(l *slog.Logger) Option {
	return func(s *Server) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithMetrics serves h at path.
func WithMetrics(path string, h http.Handler) Option {
	return func(s *Server) {
		s.metricsPath = path
		s.metrics = h
	}
}

// WithTitle sets the page title.
func WithTitle(title string) Option {
	return func(s *Server) { s.title = title }
}

// WithCheckOrigin sets the websocket origin check. Defaults to same origin.
func WithCheckOrigin(fn func(r *http.Request) bool) Option {
	return func(s *Server) { s.upgrader.CheckOrigin = fn }
}

// Server serves one document to any number of browsers.
type Server struct {
	doc        *dom.Document
	dispatcher Dispatcher
	host       scheduler.Host
	logger     *slog.Logger
	upgrader   websocket.Upgrader

	title       string
	metricsPath string
	metrics     http.Handler

	mu      sync.Mutex
	clients map[*client]struct{}
	pending map[string]struct{}
	frozen  string

	removeSink  func()
	removePanic func()
}

type client struct {
	conn *websocket.Conn
	send chan []byte
}

// New creates a server for doc and subscribes to its patch journal. The
// subscription is made on host.
func New(doc *dom.Document, d Dispatcher, host scheduler.Host, opts ...Option) *Server {
	s := &Server{
		doc:        doc,
		dispatcher: d,
		host:       host,
		logger:     slog.Default(),
		title:      "cells",
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
		},
		clients: make(map[*client]struct{}),
		pending: make(map[string]struct{}),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.logger = s.logger.With("component", "live")

	_ = host.Call(context.Background(), func() {
		s.removeSink = doc.OnPatch(s.onPatch)
	})
	s.removePanic = reactive.OnPanic(func(v any) {
		s.mu.Lock()
		s.frozen = reactive.ErrPanicked.Error()
		s.mu.Unlock()
		s.broadcast(Message{Type: MessageError, Error: reactive.ErrPanicked.Error()})
	})
	return s
}

// Router returns the HTTP handler.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Get("/", s.handlePage)
	r.Get("/ws", s.handleWebSocket)
	if s.metrics != nil && s.metricsPath != "" {
		r.Method(http.MethodGet, s.metricsPath, s.metrics)
	}
	return r
}

// ClientCount returns the number of connected browsers.
func (s *Server) ClientCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.clients)
}

// Close unsubscribes from the document and disconnects every browser.
func (s *Server) Close() {
	if s.removeSink != nil {
		_ = s.host.Call(context.Background(), s.removeSink)
	}
	s.removePanic()

	s.mu.Lock()
	defer s.mu.Unlock()
	for c := range s.clients {
		close(c.send)
		delete(s.clients, c)
	}
}

func (s *Server) handlePage(w http.ResponseWriter, r *http.Request) {
	var body, hid string
	if err := s.host.Call(r.Context(), func() {
		body = s.doc.Body().InnerHTML()
		hid = s.doc.Body().HID()
	}); err != nil {
		http.Error(w, err.Error(), http.StatusServiceUnavailable)
		return
	}

	var b strings.Builder
	b.WriteString("<!DOCTYPE html>\n<html>\n<head>\n<meta charset=\"utf-8\">\n<title>")
	b.WriteString(html.EscapeString(s.title))
	b.WriteString("</title>\n</head>\n<body data-hid=\"")
	b.WriteString(hid)
	b.WriteString("\">")
	b.WriteString(body)
	b.WriteString(clientScript)
	b.WriteString("</body>\n</html>\n")

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write([]byte(b.String()))
}

func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Debug("websocket upgrade failed", "error", err)
		return
	}

	c := &client{conn: conn, send: make(chan []byte, sendBuffer)}
	s.mu.Lock()
	s.clients[c] = struct{}{}
	frozen := s.frozen
	s.mu.Unlock()
	s.logger.Debug("client connected", "remote", r.RemoteAddr)

	if frozen != "" {
		s.sendTo(c, Message{Type: MessageError, Error: frozen})
	}

	go s.writeLoop(c)
	s.readLoop(c)

	s.drop(c)
	_ = conn.Close()
	s.logger.Debug("client disconnected", "remote", r.RemoteAddr)
}

func (s *Server) readLoop(c *client) {
	for {
		var ev Event
		if err := c.conn.ReadJSON(&ev); err != nil {
			return
		}
		if ev.HID == "" || ev.Type == "" {
			continue
		}
		if !s.dispatcher.Dispatch(ev.HID, ev.Type, ev.Value) {
			s.logger.Debug("event target not found", "hid", ev.HID, "type", ev.Type)
		}
	}
}

func (s *Server) writeLoop(c *client) {
	for data := range c.send {
		_ = c.conn.SetWriteDeadline(time.Now().Add(writeTimeout))
		if err := c.conn.WriteMessage(websocket.TextMessage, data); err != nil {
			s.drop(c)
			_ = c.conn.Close()
			return
		}
	}
	_ = c.conn.WriteMessage(websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
	_ = c.conn.Close()
}

// drop removes c and closes its send queue. It is safe to call twice.
func (s *Server) drop(c *client) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.clients[c]; ok {
		delete(s.clients, c)
		close(c.send)
	}
}

// onPatch runs on the host during ticks.
func (s *Server) onPatch(p dom.Patch) {
	msg, refresh := translate(p)
	if msg != nil {
		s.broadcast(*msg)
	}
	if refresh == "" {
		return
	}

	s.mu.Lock()
	first := len(s.pending) == 0
	s.pending[refresh] = struct{}{}
	s.mu.Unlock()
	if first {
		if err := s.host.Post(s.flush); err != nil {
			s.logger.Warn("cannot schedule refresh", "error", err)
		}
	}
}

// flush runs on the host after the tick that queued the refreshes.
func (s *Server) flush() {
	s.mu.Lock()
	hids := make([]string, 0, len(s.pending))
	for hid := range s.pending {
		hids = append(hids, hid)
	}
	clear(s.pending)
	s.mu.Unlock()

	for _, hid := range hids {
		n := s.doc.FindByHID(hid)
		if n == nil {
			continue
		}
		s.broadcast(Message{Type: MessageHTML, HID: hid, HTML: n.InnerHTML()})
	}
}

func (s *Server) broadcast(msg Message) {
	data, err := json.Marshal(msg)
	if err != nil {
		s.logger.Error("encode message", "error", err)
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for c := range s.clients {
		select {
		case c.send <- data:
		default:
			// Slow client; it reloads and resyncs from GET /.
			delete(s.clients, c)
			close(c.send)
		}
	}
}

func (s *Server) sendTo(c *client, msg Message) {
	data, err := json.Marshal(msg)
	if err != nil {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.clients[c]; ok {
		select {
		case c.send <- data:
		default:
		}
	}
}
