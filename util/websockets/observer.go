package websockets

import (
	"encoding/json"
	"log"

	"github.com/bwise1/waze_kibris/navcore/navigator"
	"github.com/bwise1/waze_kibris/navcore/route"
	"github.com/gorilla/websocket"
)

// wsObserver implements navigator.Observer by writing each event straight
// back over the originating client's connection, as JSON. Navigator calls
// an Observer synchronously from OnFix, and OnFix is only ever called from
// this connection's own read loop, so no locking is needed here.
type wsObserver struct {
	conn *websocket.Conn
}

var _ navigator.Observer = (*wsObserver)(nil)

func (o *wsObserver) write(evt outboundEvent) {
	b, err := json.Marshal(evt)
	if err != nil {
		log.Println("marshaling navigator event:", err)
		return
	}
	if err := o.conn.WriteMessage(websocket.TextMessage, b); err != nil {
		log.Println("writing navigator event:", err)
	}
}

func (o *wsObserver) OnTurn(first, second, continuation *navigator.Turn) {
	o.write(outboundEvent{Type: MsgTypeTurn, Payload: struct {
		First        *navigator.Turn `json:"first,omitempty"`
		Second       *navigator.Turn `json:"second,omitempty"`
		Continuation *navigator.Turn `json:"continuation,omitempty"`
	}{first, second, continuation}})
}

func (o *wsObserver) OnTurnRound() {
	o.write(outboundEvent{Type: MsgTypeTurnRound})
}

func (o *wsObserver) OnNewRoute(r *route.Route) {
	o.write(outboundEvent{Type: MsgTypeNewRoute, Payload: struct {
		DistanceMeters float64 `json:"distanceMeters"`
		TimeSeconds    float64 `json:"timeSeconds"`
	}{r.DistanceMeters, r.TimeSeconds}})
}

func (o *wsObserver) OnPositionKnown() {
	o.write(outboundEvent{Type: MsgTypePositionKnown})
}

func (o *wsObserver) OnPositionUnknown() {
	o.write(outboundEvent{Type: MsgTypePositionLost})
}

func (o *wsObserver) OnAddNearbyObject(obj navigator.NearbyObject) {
	o.write(outboundEvent{Type: MsgTypeNearbyObject, Payload: nearbyObjectPayload(obj, "added")})
}

func (o *wsObserver) OnUpdateNearbyObject(obj navigator.NearbyObject) {
	o.write(outboundEvent{Type: MsgTypeNearbyObject, Payload: nearbyObjectPayload(obj, "updated")})
}

func (o *wsObserver) OnRemoveNearbyObject(obj navigator.NearbyObject) {
	o.write(outboundEvent{Type: MsgTypeNearbyObject, Payload: nearbyObjectPayload(obj, "removed")})
}

func nearbyObjectPayload(obj navigator.NearbyObject, action string) interface{} {
	pos := obj.Position()
	return struct {
		ID     string  `json:"id"`
		Action string  `json:"action"`
		Lat    float64 `json:"lat"`
		Lng    float64 `json:"lng"`
	}{obj.ID(), action, pos.Y, pos.X}
}
