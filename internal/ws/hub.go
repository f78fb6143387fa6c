package ws

import (
	"encoding/json"
	"strconv"
	"sync"

	"github.com/gofiber/contrib/websocket"

	"github.com/emandor/studybuddy_service/internal/telemetry"
)

var (
	mu    sync.RWMutex
	rooms = map[string]map[*websocket.Conn]struct{}{}
)

type Action string

const (
	ActionJoin  Action = "join"
	ActionLeave Action = "leave"
)

const roomUserPrefix = "study.room.user."

type Event string

const (
	EventGenerated       Event = "study.event.generated"
	EventHistoryAppended Event = "history.event.appended"
)

type PayloadEvent struct {
	Event Event  `json:"event"`
	Kind  string `json:"kind,omitempty"`
	Data  any    `json:"data,omitempty"`
}

type ClientMessage struct {
	Action Action `json:"action"`
	Room   string `json:"room"`
}

// HandleWS keeps a signed-in user's devices subscribed to their own room so
// generations finished on one device show up in the history view of another.
func HandleWS(c *websocket.Conn) {
	log := telemetry.L().With().Str("module", "ws").Logger()
	log.Info().Msg("ws_connected")
	defer func() {
		mu.Lock()
		for room := range rooms {
			delete(rooms[room], c)
		}
		mu.Unlock()
		_ = c.Close()
	}()

	for {
		_, msg, err := c.ReadMessage()
		if err != nil {
			break
		}

		var cm ClientMessage
		if err := json.Unmarshal(msg, &cm); err != nil {
			continue
		}

		switch cm.Action {
		case ActionJoin:
			joinRoom(c, cm.Room)
		case ActionLeave:
			leaveRoom(c, cm.Room)
		}
	}
}

func joinRoom(c *websocket.Conn, room string) {
	if room == "" {
		return
	}
	mu.Lock()
	if rooms[room] == nil {
		rooms[room] = map[*websocket.Conn]struct{}{}
	}
	rooms[room][c] = struct{}{}
	mu.Unlock()
}

func leaveRoom(c *websocket.Conn, room string) {
	if room == "" {
		return
	}
	mu.Lock()
	delete(rooms[room], c)
	mu.Unlock()
}

func userRoom(userID int64) string {
	return roomUserPrefix + strconv.FormatInt(userID, 10)
}

// BroadcastGenerated tells the user's devices a generation finished.
func BroadcastGenerated(userID int64, kind string) {
	broadcast(userRoom(userID), PayloadEvent{Event: EventGenerated, Kind: kind})
}

// BroadcastHistoryAppended tells the user's devices a record landed in
// history.
func BroadcastHistoryAppended(userID int64, kind, recordID string) {
	broadcast(userRoom(userID), PayloadEvent{
		Event: EventHistoryAppended,
		Kind:  kind,
		Data:  map[string]any{"id": recordID},
	})
}

func broadcast(room string, pl PayloadEvent) {
	mu.RLock()
	conns := make([]*websocket.Conn, 0, len(rooms[room]))
	for c := range rooms[room] {
		conns = append(conns, c)
	}
	mu.RUnlock()

	for _, c := range conns {
		_ = c.WriteJSON(pl)
	}
}
