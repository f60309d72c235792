package navigator

import "github.com/bwise1/waze_kibris/internal/geo"

// NearbyObject is anything the navigator can warn about as the vehicle
// approaches it: a hazard report, a speed camera, a point of interest. Only
// ID, Position and RangeMeters are consulted by Navigator; everything else
// about the object is opaque to navcore and carried through to the
// Observer's callback for the caller to interpret.
type NearbyObject interface {
	ID() string
	Position() geo.MapPoint
	RangeMeters() float64
}

// nearbyEntry tracks one registered object's last-known in-range state.
type nearbyEntry struct {
	object  NearbyObject
	inRange bool
}

// AddNearbyObject registers an object for proximity tracking. It does not by
// itself fire OnAddNearbyObject -- that fires the first time a subsequent
// fix brings the vehicle within the object's range, mirroring the
// distinction between "known about" and "nearby".
func (n *Navigator) AddNearbyObject(obj NearbyObject) {
	n.nearby[obj.ID()] = &nearbyEntry{object: obj}
}

// RemoveNearbyObject deregisters an object. If it was currently in range, the
// observer is notified of its removal.
func (n *Navigator) RemoveNearbyObject(id string) {
	entry, ok := n.nearby[id]
	if !ok {
		return
	}
	if entry.inRange && n.observer != nil {
		n.observer.OnRemoveNearbyObject(entry.object)
	}
	delete(n.nearby, id)
}

// UpdateNearbyObject replaces a registered object's data (e.g. a report's
// severity changed) without affecting its in-range state; if it is currently
// in range, the observer is notified of the update.
func (n *Navigator) UpdateNearbyObject(obj NearbyObject) {
	entry, ok := n.nearby[obj.ID()]
	if !ok {
		n.AddNearbyObject(obj)
		return
	}
	entry.object = obj
	if entry.inRange && n.observer != nil {
		n.observer.OnUpdateNearbyObject(obj)
	}
}

// refreshNearbyObjects re-evaluates every registered object's in-range state
// against the current fix position, firing Add/Remove events on transitions.
func (n *Navigator) refreshNearbyObjects(pos geo.MapPoint) {
	for _, entry := range n.nearby {
		dist := geo.PlanarDistance(pos, entry.object.Position())
		inRange := dist <= entry.object.RangeMeters()
		if inRange == entry.inRange {
			continue
		}
		entry.inRange = inRange
		if n.observer == nil {
			continue
		}
		if inRange {
			n.observer.OnAddNearbyObject(entry.object)
		} else {
			n.observer.OnRemoveNearbyObject(entry.object)
		}
	}
}
