package geolocation

import (
	"context"
	"fmt"
	"time"

	gocache "github.com/patrickmn/go-cache"

	"ecoacustica/internal/records"
	"ecoacustica/internal/services"
)

// Provider resolves a coordinate pair into an enriched location.
type Provider interface {
	Resolve(ctx context.Context, lat, lng float64) (records.Location, error)
}

// Nop returns locations carrying only the submitted coordinates.
type Nop struct{}

func (Nop) Resolve(_ context.Context, lat, lng float64) (records.Location, error) {
	loc := records.Location{Lat: lat, Lng: lng}
	if !loc.Valid() {
		return records.Location{}, services.Wrap(services.ErrValidation, "geolocation", "resolve", "coordinates out of range", nil)
	}
	return loc, nil
}

type region struct {
	minLat, maxLat float64
	minLng, maxLng float64
	address        string
	ecosystem      string
	weather        string
	temperature    float64
}

// The reverse-geocode stand-in: coarse bounding boxes for the field sites the
// demo data covers, falling back to a generic description elsewhere.
var regions = []region{
	{
		minLat: -10, maxLat: 2, minLng: -75, maxLng: -55,
		address:   "Reserva Nacional Pacaya-Samiria, Perú",
		ecosystem: "Bosque Tropical Húmedo", weather: "Parcialmente nublado", temperature: 26,
	},
	{
		minLat: 18, maxLat: 21, minLng: -100, maxLng: -98,
		address:   "Parque Chapultepec, Ciudad de México",
		ecosystem: "Parque Urbano", weather: "Soleado", temperature: 22,
	},
	{
		minLat: 19, maxLat: 22, minLng: -88, maxLng: -86,
		address:   "Reserva de la Biosfera Sian Ka'an, Quintana Roo",
		ecosystem: "Manglar Costero", weather: "Despejado", temperature: 24,
	},
}

// StaticProvider resolves coordinates against the built-in region table and
// caches results.
type StaticProvider struct {
	cache *gocache.Cache
}

// NewStaticProvider constructs the provider with the given cache TTL.
func NewStaticProvider(ttl time.Duration) *StaticProvider {
	return &StaticProvider{cache: gocache.New(ttl, 2*ttl)}
}

// Resolve returns an enriched location for valid coordinates.
func (p *StaticProvider) Resolve(_ context.Context, lat, lng float64) (records.Location, error) {
	loc := records.Location{Lat: lat, Lng: lng}
	if !loc.Valid() {
		return records.Location{}, services.Wrap(services.ErrValidation, "geolocation", "resolve", "coordinates out of range", nil)
	}

	key := fmt.Sprintf("%.4f,%.4f", lat, lng)
	if cached, ok := p.cache.Get(key); ok {
		return cached.(records.Location), nil
	}

	for _, r := range regions {
		if lat >= r.minLat && lat <= r.maxLat && lng >= r.minLng && lng <= r.maxLng {
			temp := r.temperature
			loc.Address = r.address
			loc.Ecosystem = r.ecosystem
			loc.Weather = r.weather
			loc.Temperature = &temp
			break
		}
	}
	if loc.Address == "" {
		loc.Address = fmt.Sprintf("Lat %.4f, Lng %.4f", lat, lng)
		loc.Ecosystem = "Sin clasificar"
	}

	p.cache.Set(key, loc, gocache.DefaultExpiration)
	return loc, nil
}
