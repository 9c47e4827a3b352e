package countries

import (
	"fmt"
	"math"
	"sort"

	geohash "github.com/TomiHiltunen/geohash-golang"
	"github.com/golang/geo/s2"
)

// s2CellLevel determines the granularity of the centroid index used by Nearest.
//
// Level 3 cells are roughly 1000km across, about the spacing between
// neighbouring country centroids. Searching a cell and its neighbours
// usually yields a handful of candidates.
const s2CellLevel = 3

// ringRadius bounds, in radians, how far the cell-and-neighbours search is
// exhaustive: any centroid outside the neighbourhood is at least this far
// from a point in the query cell. A closer candidate than this is final;
// otherwise the whole dataset is scanned.
var ringRadius = s2.MinWidthMetric.Value(s2CellLevel) / 2

// geohashPrecision is the precision of the centroid geohashes searched by
// SearchByGeohash (12 characters, ~3.7cm cells).
const geohashPrecision = 12

// earthRadiusKm is the mean Earth radius used to turn S2 angles into distances.
const earthRadiusKm = 6371.0088

// Geohash returns the geohash of the country's centroid at the given precision
// (1-12 characters).
func (c Country) Geohash(precision int) string {
	if precision < 1 {
		precision = 1
	}
	if precision > geohashPrecision {
		precision = geohashPrecision
	}
	return geohash.EncodeWithPrecision(c.Latitude, c.Longitude, precision)
}

func (c Country) latLng() s2.LatLng {
	return s2.LatLngFromDegrees(c.Latitude, c.Longitude)
}

// Distance returns the great-circle distance between two centroids in kilometres.
func Distance(a, b Country) float64 {
	return float64(a.latLng().Distance(b.latLng())) * earthRadiusKm
}

func buildGeohashes(countries []Country) []string {
	hashes := make([]string, len(countries))
	for i, c := range countries {
		hashes[i] = c.Geohash(geohashPrecision)
	}
	return hashes
}

// buildCellIndex creates an S2 cell index over country centroids.
func buildCellIndex(countries []Country) map[s2.CellID][]int {
	cells := make(map[s2.CellID][]int)
	for i, c := range countries {
		cell := s2.CellIDFromLatLng(c.latLng()).Parent(s2CellLevel)
		cells[cell] = append(cells[cell], i)
	}
	return cells
}

// cellAndNeighbors returns the given cell plus its edge and corner neighbours.
func cellAndNeighbors(cell s2.CellID) []s2.CellID {
	cells := make([]s2.CellID, 0, 9)
	cells = append(cells, cell)

	seen := map[s2.CellID]bool{cell: true}
	edgeNeighbors := cell.EdgeNeighbors()
	for _, n := range edgeNeighbors {
		if !seen[n] {
			cells = append(cells, n)
			seen[n] = true
		}
	}
	for _, n := range edgeNeighbors {
		for _, corner := range n.EdgeNeighbors() {
			if !seen[corner] {
				cells = append(cells, corner)
				seen[corner] = true
			}
		}
	}
	return cells
}

type nearCandidate struct {
	pos  int
	dist float64
}

// Nearest returns the country whose centroid is closest to lat/lng.
func (p *Provider) Nearest(lat, lng float64) Result {
	// Reject invalid float values that could cause undefined behavior
	// in S2 geometry calculations.
	if math.IsNaN(lat) || math.IsNaN(lng) || math.IsInf(lat, 0) || math.IsInf(lng, 0) {
		return fail(fmt.Errorf("%w: coordinates (%v, %v)", ErrInvalidArgument, lat, lng))
	}
	if lat < -90 || lat > 90 || lng < -180 || lng > 180 {
		return fail(fmt.Errorf("%w: coordinates (%v, %v) out of range", ErrInvalidArgument, lat, lng))
	}

	countries, idx, err := p.indexes()
	if err != nil {
		return loadFailure(err)
	}
	if len(countries) == 0 {
		return fail(fmt.Errorf("%w: no countries loaded", ErrNotFound))
	}

	query := s2.LatLngFromDegrees(lat, lng)
	queryCell := s2.CellIDFromLatLng(query).Parent(s2CellLevel)

	var candidates []nearCandidate
	for _, cell := range cellAndNeighbors(queryCell) {
		for _, pos := range idx.cells[cell] {
			candidates = append(candidates, nearCandidate{pos: pos, dist: float64(query.Distance(countries[pos].latLng()))})
		}
	}
	sortCandidates(candidates)

	if len(candidates) == 0 || candidates[0].dist > ringRadius {
		candidates = candidates[:0]
		for pos, c := range countries {
			candidates = append(candidates, nearCandidate{pos: pos, dist: float64(query.Distance(c.latLng()))})
		}
		sortCandidates(candidates)
	}
	return ok([]Country{countries[candidates[0].pos].clone()})
}

// sortCandidates orders by distance, then dataset position for determinism.
func sortCandidates(candidates []nearCandidate) {
	sort.Slice(candidates, func(i, j int) bool {
		if candidates[i].dist != candidates[j].dist {
			return candidates[i].dist < candidates[j].dist
		}
		return candidates[i].pos < candidates[j].pos
	})
}

// SearchByGeohash returns countries whose centroid geohash starts with
// prefix, ignoring case. Zero matches is still a success.
func (p *Provider) SearchByGeohash(prefix string) Result {
	if isBlank(prefix) {
		return emptyInput("geohash prefix")
	}
	countries, idx, err := p.indexes()
	if err != nil {
		return loadFailure(err)
	}
	prefix = toLower(prefix)
	var positions []int
	for pos, h := range idx.geohashes {
		if len(h) >= len(prefix) && h[:len(prefix)] == prefix {
			positions = append(positions, pos)
		}
	}
	return ok(pick(countries, positions))
}
