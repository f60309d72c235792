package router

import (
	"context"
	"fmt"

	"github.com/twpayne/go-polyline"

	"github.com/bwise1/waze_kibris/internal/geo"
	"github.com/bwise1/waze_kibris/internal/http/valhalla"
	"github.com/bwise1/waze_kibris/navcore/profile"
	"github.com/bwise1/waze_kibris/navcore/route"
	"github.com/bwise1/waze_kibris/navcore/turn"
)

// ExternalRouter adapts a remote routing service to the Router interface, for
// deployments with no local graph loaded. It is deliberately thin: an
// external service already applies its own cost model, selected by Costing,
// so Plan's profile argument is only attached to the returned route; it does
// not drive a local cost model the way the in-process routers do.
type ExternalRouter struct {
	Valhalla *valhalla.ValhallaClient
	Costing  string // "auto", "pedestrian", "bicycle"
}

// NewExternalRouter wraps a Valhalla client for the given vehicle costing.
func NewExternalRouter(client *valhalla.ValhallaClient, costing string) *ExternalRouter {
	return &ExternalRouter{Valhalla: client, Costing: costing}
}

// Plan implements Router by delegating to the remote service and converting
// its response into a route.Route with one segment per maneuver.
func (r *ExternalRouter) Plan(ctx context.Context, start, end geo.MapPoint, via []geo.MapPoint, p profile.Profile) (*route.Route, error) {
	locations := make([]valhalla.Location, 0, 2+len(via))
	locations = append(locations, toValhallaLocation(start))
	for _, v := range via {
		locations = append(locations, toValhallaLocation(v))
	}
	locations = append(locations, toValhallaLocation(end))

	req := valhalla.RouteRequest{
		Locations: locations,
		Costing:   r.Costing,
	}

	resp, err := r.Valhalla.GetRoute(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("router: external plan: %w", err)
	}

	b := route.NewBuilder()
	for legIdx, leg := range resp.Trip.Legs {
		coords, _, err := polyline.DecodeCoords([]byte(leg.Shape))
		if err != nil {
			return nil, fmt.Errorf("router: decode shape: %w", err)
		}
		path := make([]geo.MapPoint, len(coords))
		for i, c := range coords {
			path[i] = geo.MapPoint{X: c[1], Y: c[0]}
		}

		for mi, man := range leg.Maneuvers {
			begin := man.BeginShapeIndex
			end := man.EndShapeIndex
			if begin < 0 {
				begin = 0
			}
			if end > len(path) {
				end = len(path)
			}
			if end <= begin {
				end = begin + 1
				if end > len(path) {
					end = len(path)
				}
			}

			name := ""
			if len(man.StreetNames) > 0 {
				name = man.StreetNames[0]
			}

			desc := turn.Descriptor{Type: maneuverToTurnType(man.Type), Continue: mi > 0}

			seg := route.Segment{
				DistanceMeters: man.Length * 1000,
				TimeSeconds:    man.Time,
				Name:           name,
				Path:           geo.Contour(path[begin:end]),
				Turn:           desc,
				Section:        legIdx,
			}
			if err := b.AppendSegment(seg); err != nil {
				return nil, err
			}
		}
	}

	return b.Finish(p), nil
}

func toValhallaLocation(p geo.MapPoint) valhalla.Location {
	return valhalla.Location{Lat: p.Y, Lon: p.X}
}

// maneuverToTurnType maps Valhalla's numeric maneuver type to the local
// turn.Type classification, for the subset of maneuvers that correspond to a
// directional turn; anything else (e.g. "depart"/"arrive") classifies as
// Ahead.
func maneuverToTurnType(t int) turn.Type {
	switch t {
	case 4, 10: // slight right variants
		return turn.BearRight
	case 5: // right
		return turn.Right
	case 6: // sharp right
		return turn.SharpRight
	case 7: // U-turn
		return turn.Around
	case 8: // sharp left
		return turn.SharpLeft
	case 9: // left
		return turn.Left
	case 3: // slight left
		return turn.BearLeft
	default:
		return turn.Ahead
	}
}
