package spectate

import (
	"encoding/json"
	"log"
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	"github.com/battlecode-hq/botclient/world"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 512
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

// Message is the JSON envelope broadcast to every observer.
type Message struct {
	RunID string      `json:"runId"`
	Turn  int64       `json:"turn"`
	Event string      `json:"event"`
	Data  interface{} `json:"data,omitempty"`
}

type observer struct {
	hub  *Hub
	conn *websocket.Conn
	send chan []byte
}

// Hub fans out turn snapshots from one client.Game run to any number of
// WebSocket observers.
type Hub struct {
	runID string

	observers  map[*observer]bool
	broadcast  chan *Message
	register   chan *observer
	unregister chan *observer
}

// NewHub builds a Hub tagged with runID (typically a (*client.Game).RunID).
func NewHub(runID string) *Hub {
	return &Hub{
		runID:      runID,
		observers:  make(map[*observer]bool),
		broadcast:  make(chan *Message),
		register:   make(chan *observer),
		unregister: make(chan *observer),
	}
}

// Run services registration and broadcast until ctx-less forever; call it
// in its own goroutine.
func (h *Hub) Run() {
	for {
		select {
		case o := <-h.register:
			h.observers[o] = true
			log.Printf("spectate: observer joined run %s (total: %d)", h.runID, len(h.observers))
		case o := <-h.unregister:
			if _, ok := h.observers[o]; ok {
				delete(h.observers, o)
				close(o.send)
			}
		case msg := <-h.broadcast:
			h.broadcastMessage(msg)
		}
	}
}

func (h *Hub) broadcastMessage(msg *Message) {
	data, err := json.Marshal(msg)
	if err != nil {
		log.Printf("spectate: failed to marshal message: %v", err)
		return
	}
	for o := range h.observers {
		select {
		case o.send <- data:
		default:
			delete(h.observers, o)
			close(o.send)
		}
	}
}

// BroadcastState publishes st as a turn_update event. Intended to be
// called once per snapshot read off a client.Game's Turns channel.
func (h *Hub) BroadcastState(st *world.State) {
	h.broadcast <- &Message{
		RunID: h.runID,
		Turn:  st.Turn(),
		Event: "turn_update",
		Data:  snapshotView(st),
	}
}

type entitySnapshot struct {
	ID       world.EntityID   `json:"id"`
	Type     world.EntityType `json:"type"`
	Team     world.TeamID     `json:"team"`
	Location string           `json:"location"`
	HP       int32            `json:"hp"`
}

func snapshotView(st *world.State) []entitySnapshot {
	handles := st.Entities(world.EntityFilter{})
	out := make([]entitySnapshot, 0, len(handles))
	for _, h := range handles {
		e := h.Entity()
		out = append(out, entitySnapshot{ID: e.ID, Type: e.Type, Team: e.Team, Location: e.Location.String(), HP: e.HP})
	}
	return out
}

// ServeWS upgrades r to a WebSocket and registers the resulting observer
// with the hub.
func (h *Hub) ServeWS(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("spectate: upgrade failed: %v", err)
		return
	}

	o := &observer{hub: h, conn: conn, send: make(chan []byte, 256)}
	h.register <- o

	go o.writePump()
	go o.readPump()
}

func (o *observer) readPump() {
	defer func() {
		o.hub.unregister <- o
		o.conn.Close()
	}()
	o.conn.SetReadLimit(maxMessageSize)
	o.conn.SetReadDeadline(time.Now().Add(pongWait))
	o.conn.SetPongHandler(func(string) error {
		o.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})
	for {
		if _, _, err := o.conn.ReadMessage(); err != nil {
			break
		}
	}
}

func (o *observer) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		o.conn.Close()
	}()
	for {
		select {
		case data, ok := <-o.send:
			o.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				o.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := o.conn.WriteMessage(websocket.TextMessage, data); err != nil {
				return
			}
		case <-ticker.C:
			o.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := o.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
