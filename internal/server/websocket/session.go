package websocket

import (
	"encoding/json"
	"slices"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/nikeshgamal24/portfolio/pkg/debounce"
	"github.com/nikeshgamal24/portfolio/pkg/projects"
	"github.com/nikeshgamal24/portfolio/pkg/reconciler"
)

const (
	// Time allowed to write a message to the peer.
	writeWait = 10 * time.Second

	// Time allowed to read the next pong message from the peer.
	pongWait = 60 * time.Second

	// Send pings to peer with this period. Must be less than pongWait.
	pingPeriod = (pongWait * 9) / 10

	// Maximum message size allowed from peer.
	maxMessageSize = 4096

	sendBuffer = 16
)

// QueryMessage is what clients send. Absent fields leave that part of the
// query unchanged.
type QueryMessage struct {
	Term *string   `json:"term,omitempty"`
	Tags *[]string `json:"tags,omitempty"`
}

// Results is the payload of a results message.
type Results struct {
	Projects []projects.Project `json:"projects"`
	Count    int                `json:"count"`
	Total    int                `json:"total"`
	Label    string             `json:"label"`
	Term     string             `json:"term"`
	Tags     []string           `json:"tags"`
}

// Session is one live search connection.
type Session struct {
	id   string
	hub  *Hub
	conn *websocket.Conn

	sendMu sync.Mutex
	send   chan Message
	closed bool

	mu     sync.Mutex
	result *reconciler.Result
	term   string
	tags   []string

	terms *debounce.Debouncer[string]
}

// NewSession creates a session showing result with an empty query.
func NewSession(id string, hub *Hub, conn *websocket.Conn, result *reconciler.Result, delay time.Duration) *Session {
	s := &Session{
		id:     id,
		hub:    hub,
		conn:   conn,
		send:   make(chan Message, sendBuffer),
		result: result,
		tags:   []string{},
	}
	s.terms = debounce.New(delay, s.commitTerm)
	return s
}

// Start registers the session, sends the unfiltered list and starts both pumps.
func (s *Session) Start() {
	if !s.hub.add(s) {
		_ = s.conn.Close()
		return
	}
	s.emit()
	go s.writePump()
	go s.readPump()
}

// apply handles one client message.
func (s *Session) apply(msg QueryMessage) {
	if msg.Tags != nil {
		tags := slices.Clone(*msg.Tags)
		if tags == nil {
			tags = []string{}
		}
		s.mu.Lock()
		changed := !slices.Equal(s.tags, tags)
		s.tags = tags
		s.mu.Unlock()
		if changed {
			s.emit()
		}
	}
	if msg.Term != nil {
		s.terms.Set(*msg.Term)
	}
}

func (s *Session) commitTerm(term string) {
	s.mu.Lock()
	changed := s.term != term
	s.term = term
	s.mu.Unlock()
	if changed {
		s.emit()
	}
}

// update swaps in a new reconciled result and re-sends the current query.
func (s *Session) update(result *reconciler.Result) {
	s.mu.Lock()
	s.result = result
	s.mu.Unlock()
	s.emit()
}

// emit sends the results of the committed query.
func (s *Session) emit() {
	s.mu.Lock()
	q := projects.Query{Term: s.term, Tags: slices.Clone(s.tags)}
	listing := s.result.Listing(q)
	s.mu.Unlock()

	s.queue(Message{
		Type:      TypeResults,
		Timestamp: time.Now(),
		Data: Results{
			Projects: listing.Projects,
			Count:    listing.Count,
			Total:    listing.Total,
			Label:    listing.Label,
			Term:     listing.Query.Term,
			Tags:     listing.Query.Tags,
		},
	})
}

// queue hands msg to the write pump without blocking. A session whose buffer
// is full is too slow and gets disconnected.
func (s *Session) queue(msg Message) {
	s.sendMu.Lock()
	defer s.sendMu.Unlock()
	if s.closed {
		return
	}
	select {
	case s.send <- msg:
	default:
		s.hub.logger.Warn().Str("session_id", s.id).Msg("Search session too slow, disconnecting")
		s.closed = true
		close(s.send)
	}
}

func (s *Session) closeSend() {
	s.sendMu.Lock()
	defer s.sendMu.Unlock()
	if !s.closed {
		s.closed = true
		close(s.send)
	}
}

// readPump reads query messages until the connection fails.
func (s *Session) readPump() {
	defer func() {
		s.terms.Stop()
		s.hub.remove(s)
		_ = s.conn.Close()
	}()

	s.conn.SetReadLimit(maxMessageSize)
	_ = s.conn.SetReadDeadline(time.Now().Add(pongWait))
	s.conn.SetPongHandler(func(string) error {
		_ = s.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		_, data, err := s.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure, websocket.CloseAbnormalClosure) {
				s.hub.logger.Error().Err(err).Str("session_id", s.id).Msg("WebSocket read error")
			}
			return
		}

		var msg QueryMessage
		if err := json.Unmarshal(data, &msg); err != nil {
			s.queue(Message{
				Type:      TypeError,
				Timestamp: time.Now(),
				Data:      map[string]string{"message": "invalid query message"},
			})
			continue
		}
		s.apply(msg)
	}
}

// writePump writes queued messages and keeps the connection alive with pings.
func (s *Session) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		_ = s.conn.Close()
	}()

	for {
		select {
		case message, ok := <-s.send:
			_ = s.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				// Hub closed the channel
				_ = s.conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
				return
			}
			if err := s.conn.WriteJSON(message); err != nil {
				return
			}

		case <-ticker.C:
			_ = s.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := s.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
