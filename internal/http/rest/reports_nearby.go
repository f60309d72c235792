package rest

import (
	"fmt"

	"github.com/bwise1/waze_kibris/internal/geo"
	"github.com/bwise1/waze_kibris/internal/model"
	"github.com/bwise1/waze_kibris/navcore/navigator"
)

// defaultReportRangeMeters is how far out a report starts counting as
// "nearby" for navigator purposes when the report carries no severity-driven
// override. Severity 1-5 scales it up, since a MAJOR accident report is
// worth warning about further in advance than a minor one.
const defaultReportRangeMeters = 150.0

// reportNearbyObject adapts a model.Report to navigator.NearbyObject so it
// can be registered with a Navigator and surface as upcoming-hazard
// notifications during turn-by-turn navigation.
type reportNearbyObject struct {
	report model.Report
}

var _ navigator.NearbyObject = reportNearbyObject{}

func (r reportNearbyObject) ID() string {
	return fmt.Sprintf("report:%d", r.report.ID)
}

func (r reportNearbyObject) Position() geo.MapPoint {
	return geo.MapPoint{X: r.report.Longitude, Y: r.report.Latitude}
}

func (r reportNearbyObject) RangeMeters() float64 {
	return defaultReportRangeMeters + float64(r.report.Severity)*30
}

// reportsToNearbyObjects converts a batch of reports into the objects a
// Navigator's AddNearbyObject/UpdateNearbyObject expect.
func reportsToNearbyObjects(reports []model.Report) []navigator.NearbyObject {
	objs := make([]navigator.NearbyObject, 0, len(reports))
	for _, r := range reports {
		objs = append(objs, reportNearbyObject{report: r})
	}
	return objs
}
