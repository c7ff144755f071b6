package engine

import "fmt"

// Topic kinds published per site.
const (
	KindTelemetry = "telemetry"
	KindStatic    = "static"
)

// Topic builds the "<namespace>/<site_id>/<kind>" topic key.
func Topic(namespace, siteID, kind string) string {
	return fmt.Sprintf("%s/%s/%s", namespace, siteID, kind)
}
