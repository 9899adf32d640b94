package ws

import (
	"encoding/json"
	"time"

	"github.com/campuskit/attendance_backend/internal/models"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = (pongWait * 9) / 10
)

// FeedEvent is pushed to connected clients after every successful check-in
// or check-out.
type FeedEvent struct {
	Type        string        `json:"type"` // check_in | check_out
	StudentID   string        `json:"student_id"`
	StudentName string        `json:"student_name,omitempty"`
	CourseID    string        `json:"course_id"`
	CourseName  string        `json:"course_name,omitempty"`
	Date        string        `json:"date"`
	Time        string        `json:"time"`
	Status      models.Status `json:"status"`
	EarlyLeave  bool          `json:"early_leave,omitempty"`
	Location    string        `json:"location,omitempty"`
}

// FeedHub fans attendance events out to websocket listeners.
type FeedHub struct {
	register   chan *feedClient
	unregister chan *feedClient
	broadcast  chan []byte
	clients    map[*feedClient]struct{}
}

func NewFeedHub() *FeedHub {
	return &FeedHub{
		register:   make(chan *feedClient),
		unregister: make(chan *feedClient),
		broadcast:  make(chan []byte, 256),
		clients:    map[*feedClient]struct{}{},
	}
}

func (h *FeedHub) Run() {
	for {
		select {
		case client := <-h.register:
			h.clients[client] = struct{}{}
		case client := <-h.unregister:
			if _, ok := h.clients[client]; ok {
				delete(h.clients, client)
				close(client.send)
				client.conn.Close()
			}
		case msg := <-h.broadcast:
			for client := range h.clients {
				select {
				case client.send <- msg:
				default:
					delete(h.clients, client)
					close(client.send)
					client.conn.Close()
				}
			}
		}
	}
}

// Broadcast queues an event for every connected client. Safe on a nil hub
// so controllers can run without realtime wired up (tests, one-off tools).
func (h *FeedHub) Broadcast(event FeedEvent) {
	if h == nil {
		return
	}
	data, err := json.Marshal(event)
	if err != nil {
		return
	}
	h.broadcast <- data
}
