package websockets

import (
	"sync"

	"github.com/bwise1/waze_kibris/navcore/navigator"
	"github.com/gorilla/websocket"
)

// Message types
const (
	MsgTypeSubscribe      = "subscribe"
	MsgTypeReportUpdate   = "report_update"
	MsgTypeDirectMessage  = "direct_message"
	MsgTypeVoteUpdate     = "vote_update"
	MsgTypeCommentUpdate  = "comment_update"
	MsgTypeLocationUpdate = "location_update"

	// Outbound-only, sent by the server over a client's connection.
	MsgTypeTurn           = "turn"
	MsgTypeTurnRound      = "turn_round"
	MsgTypeNewRoute       = "new_route"
	MsgTypePositionKnown  = "position_known"
	MsgTypePositionLost   = "position_lost"
	MsgTypeNearbyObject   = "nearby_object"
)

// Client represents a connected WebSocket user. Nav is non-nil once the
// client has subscribed; it is this client's personal navigator instance,
// fed by every location_update message this connection sends.
type Client struct {
	Conn      *websocket.Conn
	UserID    string
	Latitude  float64
	Longitude float64
	Nav       *navigator.Navigator
}

type WebSocketManager struct {
	clients    map[*websocket.Conn]*Client
	broadcast  chan []byte
	register   chan *Client
	unregister chan *websocket.Conn
	send       chan DirectMessage
	mu         sync.Mutex
}

// DirectMessage struct for 1-on-1 messages
type DirectMessage struct {
	ReceiverID string `json:"receiver_id"`
	Message    string `json:"message"`
}

// Message struct for incoming WebSocket messages. The location_update
// fields (speed, course, time) are only populated for that message type and
// are otherwise left zero.
type Message struct {
	Type      string  `json:"type"`
	UserID    string  `json:"user_id"`
	Latitude  float64 `json:"latitude,omitempty"`
	Longitude float64 `json:"longitude,omitempty"`
	SpeedMPS  float64 `json:"speed_mps,omitempty"`
	CourseDeg float64 `json:"course_deg,omitempty"`
	Content   string  `json:"content,omitempty"`
	Receiver  string  `json:"receiver,omitempty"`
}

// outboundEvent is what wsObserver writes back to a client's own connection;
// Payload's shape depends on Type (a *navigator.Turn, a nearby object summary,
// or nothing for turn_round/position events).
type outboundEvent struct {
	Type    string      `json:"type"`
	Payload interface{} `json:"payload,omitempty"`
}
