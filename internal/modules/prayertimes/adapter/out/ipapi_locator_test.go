package out_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	out "iftar/internal/modules/prayertimes/adapter/out"
)

func TestIPLocatorSuccess(t *testing.T) {
	t.Parallel()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"status":"success","country":"United Arab Emirates","city":"Dubai","lat":25.2048,"lon":55.2708}`))
	}))
	defer server.Close()

	locator := out.NewIPLocatorWithEndpoint(server.URL)
	pos, err := locator.Locate(context.Background())
	if err != nil {
		t.Fatalf("locate: %v", err)
	}
	if pos.City != "Dubai" || pos.Country != "United Arab Emirates" {
		t.Fatalf("unexpected position: %+v", pos)
	}
	if pos.Lat != 25.2048 || pos.Lng != 55.2708 {
		t.Fatalf("unexpected coordinates: %+v", pos)
	}
}

func TestIPLocatorFailureStatus(t *testing.T) {
	t.Parallel()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"status":"fail","message":"private range"}`))
	}))
	defer server.Close()

	locator := out.NewIPLocatorWithEndpoint(server.URL)
	if _, err := locator.Locate(context.Background()); err == nil || !strings.Contains(err.Error(), "private range") {
		t.Fatalf("expected failure message surfaced, got %v", err)
	}
}
