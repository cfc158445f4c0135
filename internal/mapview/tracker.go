package mapview

import (
	"sync"
)

const (
	MaxMarkers = 12

	defaultLat   = 20
	defaultLon   = 78
	defaultZoom  = 4
	locationZoom = 9
)

type Marker struct {
	Lat  float64 `json:"lat"`
	Lon  float64 `json:"lon"`
	Name string  `json:"name"`
}

type View struct {
	CenterLat float64  `json:"center_lat"`
	CenterLon float64  `json:"center_lon"`
	Zoom      int      `json:"zoom"`
	Markers   []Marker `json:"markers"`
}

type Map interface {
	Recenter(lat, lon float64, name string)
	Snapshot() View
}

// Tracker keeps the map centre and a bounded marker list, oldest evicted first.
type Tracker struct {
	mu   sync.Mutex
	view View
}

func NewTracker() *Tracker {
	return &Tracker{view: View{
		CenterLat: defaultLat,
		CenterLon: defaultLon,
		Zoom:      defaultZoom,
		Markers:   []Marker{},
	}}
}

func (t *Tracker) Recenter(lat, lon float64, name string) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.view.CenterLat = lat
	t.view.CenterLon = lon
	t.view.Zoom = locationZoom
	t.view.Markers = append(t.view.Markers, Marker{Lat: lat, Lon: lon, Name: name})
	if n := len(t.view.Markers); n > MaxMarkers {
		t.view.Markers = append([]Marker(nil), t.view.Markers[n-MaxMarkers:]...)
	}
}

func (t *Tracker) Snapshot() View {
	t.mu.Lock()
	defer t.mu.Unlock()

	v := t.view
	v.Markers = make([]Marker, len(t.view.Markers))
	copy(v.Markers, t.view.Markers)
	return v
}

var _ Map = (*Tracker)(nil)
