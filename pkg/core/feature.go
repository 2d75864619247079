// pkg/core/feature.go
package core

import "github.com/paulmach/orb"

// FeatureProperties holds the administrative metadata the engine reads from a
// source record. Any other property is dropped at ingestion.
type FeatureProperties struct {
	Name      string // NAME
	Admin     string // ADMIN
	AdminCode string // ADM0_A3
	Continent string // CONTINENT
}

// DisplayName prefers the short name and falls back to the admin name.
func (p FeatureProperties) DisplayName() string {
	if p.Name != "" {
		return p.Name
	}
	return p.Admin
}

// Feature is one raw source record.
type Feature struct {
	Properties FeatureProperties
	Geometry   orb.Geometry // orb.Polygon or orb.MultiPolygon, [lng, lat] degrees
}
