package geolocation_test

import (
	"context"
	"testing"
	"time"

	"ecoacustica/internal/geolocation"
)

func TestResolveKnownRegion(t *testing.T) {
	provider := geolocation.NewStaticProvider(time.Minute)
	loc, err := provider.Resolve(context.Background(), -3.4653, -62.2159)
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	if loc.Ecosystem != "Bosque Tropical Húmedo" {
		t.Fatalf("unexpected ecosystem: %q", loc.Ecosystem)
	}
	if loc.Lat != -3.4653 || loc.Lng != -62.2159 {
		t.Fatalf("coordinates altered: %+v", loc)
	}
	if loc.Temperature == nil {
		t.Fatal("known region should carry temperature")
	}
}

func TestResolveUnknownRegionFallsBack(t *testing.T) {
	provider := geolocation.NewStaticProvider(time.Minute)
	loc, err := provider.Resolve(context.Background(), 60.0, 25.0)
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	if loc.Ecosystem != "Sin clasificar" {
		t.Fatalf("unexpected fallback ecosystem: %q", loc.Ecosystem)
	}
	if loc.Address == "" {
		t.Fatal("fallback should still describe the coordinates")
	}
}

func TestResolveRejectsInvalidCoordinates(t *testing.T) {
	provider := geolocation.NewStaticProvider(time.Minute)
	if _, err := provider.Resolve(context.Background(), 91, 0); err == nil {
		t.Fatal("expected error for out-of-range latitude")
	}
	if _, err := (geolocation.Nop{}).Resolve(context.Background(), 0, 200); err == nil {
		t.Fatal("expected error for out-of-range longitude")
	}
}

func TestResolveUsesCache(t *testing.T) {
	provider := geolocation.NewStaticProvider(time.Minute)
	ctx := context.Background()

	first, err := provider.Resolve(ctx, 19.4326, -99.1332)
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	second, err := provider.Resolve(ctx, 19.4326, -99.1332)
	if err != nil {
		t.Fatalf("cached Resolve failed: %v", err)
	}
	if first.Address != second.Address || first.Ecosystem != second.Ecosystem {
		t.Fatalf("cached result diverged: %+v != %+v", first, second)
	}
}

func TestNopKeepsCoordinatesOnly(t *testing.T) {
	loc, err := (geolocation.Nop{}).Resolve(context.Background(), 10, 20)
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	if loc.Address != "" || loc.Ecosystem != "" || loc.Temperature != nil {
		t.Fatalf("nop provider should not enrich: %+v", loc)
	}
}
