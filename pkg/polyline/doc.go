// Package polyline implements the encoded polyline format used by most web
// routing services to ship path geometry.
//
// Each coordinate is stored as the zig-zag encoded delta from the previous
// point, scaled by 10^precision and split into 5-bit chunks that are written
// as printable ASCII (chunk + 63, with 0x20 marking that more chunks follow).
// Points carry latitude first, then longitude, then optionally elevation
// scaled by 100.
//
// Google and GraphHopper use precision 5; OSRM "polyline6" and Valhalla use
// precision 6. The precision cannot be recovered from the string itself: a
// mismatch decodes without error into wrong coordinates.
//
//	coords, err := polyline.Decode(shape, polyline.Options{Precision: 6, Order: polyline.LonLat})
package polyline
