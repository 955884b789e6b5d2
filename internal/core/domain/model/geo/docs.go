// Package geo provides the geospatial primitives shared by vehicle tracking,
// delivery dispatch, and route optimization: a validated Point value object
// and great-circle distance via the Haversine formula.
//
// Points are immutable and must be created through NewPoint, which enforces
// that latitude is within [-90, 90] and longitude within [-180, 180] degrees.
// The zero value is invalid and fails validation.
package geo
