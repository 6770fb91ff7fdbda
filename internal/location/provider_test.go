package location

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/ryantanhw/sgbus/internal/models"
)

type fakeProvider struct {
	name string
	pos  models.Position
	err  error
}

func (f *fakeProvider) Name() string { return f.name }

func (f *fakeProvider) Locate(_ context.Context) (models.Position, error) {
	if f.err != nil {
		return models.Position{}, f.err
	}
	return f.pos, nil
}

func TestMultiFirstSuccessWins(t *testing.T) {
	first := &fakeProvider{name: "first", pos: models.Position{Lat: 1.30, Lon: 103.80}}
	second := &fakeProvider{name: "second", pos: models.Position{Lat: 9, Lon: 9}}

	pos, err := NewMulti(first, second).Locate(context.Background())
	if err != nil {
		t.Fatalf("locate: %v", err)
	}
	if pos.Lat != 1.30 {
		t.Errorf("expected first provider's position, got %+v", pos)
	}
}

func TestMultiFallsThroughFailures(t *testing.T) {
	failing := &fakeProvider{name: "down", err: errors.New("timeout")}
	working := &fakeProvider{name: "up", pos: models.Position{Lat: 1.28, Lon: 103.86}}

	pos, err := NewMulti(failing, working).Locate(context.Background())
	if err != nil {
		t.Fatalf("locate: %v", err)
	}
	if pos.Lat != 1.28 {
		t.Errorf("expected fallback position, got %+v", pos)
	}
}

func TestMultiAllFail(t *testing.T) {
	down := &fakeProvider{name: "down", err: errors.New("timeout")}

	_, err := NewMulti(down, down).Locate(context.Background())
	if !errors.Is(err, ErrNoLocation) {
		t.Errorf("expected ErrNoLocation, got %v", err)
	}
}

func TestStatic(t *testing.T) {
	pos, err := Static{Lat: 1.35, Lon: 103.82}.Locate(context.Background())
	if err != nil {
		t.Fatalf("locate: %v", err)
	}
	if pos.Lat != 1.35 || pos.Lon != 103.82 {
		t.Errorf("Static returned %+v", pos)
	}
}

func TestIPAPISuccess(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"status":"success","lat":1.3521,"lon":103.8198,"city":"Singapore","country":"Singapore"}`)
	}))
	defer server.Close()

	p := NewIPAPI(time.Second)
	p.endpoint = server.URL

	pos, err := p.Locate(context.Background())
	if err != nil {
		t.Fatalf("locate: %v", err)
	}
	if pos.Lat != 1.3521 || pos.Lon != 103.8198 {
		t.Errorf("unexpected position %+v", pos)
	}
}

func TestIPAPIFailureStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"status":"fail","message":"private range"}`)
	}))
	defer server.Close()

	p := NewIPAPI(time.Second)
	p.endpoint = server.URL

	if _, err := p.Locate(context.Background()); err == nil {
		t.Fatal("expected error for failed lookup")
	}
}

func TestIPAPICoSuccess(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"latitude":1.29,"longitude":103.85,"city":"Singapore","country_name":"Singapore"}`)
	}))
	defer server.Close()

	p := NewIPAPICo(time.Second)
	p.endpoint = server.URL

	pos, err := p.Locate(context.Background())
	if err != nil {
		t.Fatalf("locate: %v", err)
	}
	if pos.Lat != 1.29 || pos.Lon != 103.85 {
		t.Errorf("unexpected position %+v", pos)
	}
}
