package handlers

import (
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/google/uuid"
)

func TestCreateListingEndpointRoleGate(t *testing.T) {
	body := map[string]interface{}{
		"title":               "Tropical Paradise Villa",
		"description":         "Spacious accommodation with modern amenities and stunning views.",
		"location":            "Honolulu, HI",
		"price_per_night":     289.99,
		"number_of_bedrooms":  3,
		"number_of_bathrooms": 2,
		"max_guests":          6,
	}

	env := newTestEnv()
	w := doRequest(t, env.router(actorFor(uuid.New(), "guest")), http.MethodPost, "/api/v1/listings/", body)
	if w.Code != http.StatusForbidden {
		t.Fatalf("guest creating listing: status = %d, want 403", w.Code)
	}

	hostID := uuid.New()
	w = doRequest(t, env.router(actorFor(hostID, "host")), http.MethodPost, "/api/v1/listings/", body)
	if w.Code != http.StatusCreated {
		t.Fatalf("host creating listing: status = %d, body %s", w.Code, w.Body.String())
	}

	res := decodeEnvelope(t, w)
	var data map[string]interface{}
	if err := json.Unmarshal(res.Data, &data); err != nil {
		t.Fatalf("bad data payload: %v", err)
	}
	if data["host_id"] != hostID.String() {
		t.Errorf("host_id = %v, want the caller", data["host_id"])
	}
	// Omitted is_available defaults to open.
	if data["is_available"] != true {
		t.Errorf("is_available = %v, want true", data["is_available"])
	}
	if data["price_per_night"] != "289.99" {
		t.Errorf("price_per_night = %v, want 289.99", data["price_per_night"])
	}

	w = doRequest(t, env.router(actorFor(uuid.New(), "admin")), http.MethodPost, "/api/v1/listings/", body)
	if w.Code != http.StatusCreated {
		t.Fatalf("admin creating listing: status = %d", w.Code)
	}
}

func TestCreateListingEndpointRejectsZeroPrice(t *testing.T) {
	env := newTestEnv()
	w := doRequest(t, env.router(actorFor(uuid.New(), "host")), http.MethodPost, "/api/v1/listings/", map[string]interface{}{
		"title":               "Free House",
		"description":         "Quiet retreat away from the hustle and bustle of city life.",
		"location":            "Denver, CO",
		"price_per_night":     0,
		"number_of_bedrooms":  1,
		"number_of_bathrooms": 1,
		"max_guests":          2,
	})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400, body %s", w.Code, w.Body.String())
	}
}

func TestUpdateListingEndpointOwnership(t *testing.T) {
	env := newTestEnv()
	host := uuid.New()
	listing := env.store.addListing(host, "100.00", 4, true)
	path := "/api/v1/listings/" + listing.ID.String()
	body := map[string]interface{}{"price_per_night": 150, "is_available": false}

	w := doRequest(t, env.router(actorFor(uuid.New(), "host")), http.MethodPatch, path, body)
	if w.Code != http.StatusForbidden {
		t.Fatalf("other host patching: status = %d, want 403", w.Code)
	}

	w = doRequest(t, env.router(actorFor(host, "host")), http.MethodPatch, path, body)
	if w.Code != http.StatusOK {
		t.Fatalf("owner patching: status = %d, body %s", w.Code, w.Body.String())
	}
	if env.store.listings[listing.ID].IsAvailable {
		t.Error("is_available not persisted")
	}
	if env.store.listings[listing.ID].PricePerNight.String() != "150" {
		t.Errorf("price = %s, want 150", env.store.listings[listing.ID].PricePerNight)
	}

	w = doRequest(t, env.router(actorFor(uuid.New(), "admin")), http.MethodPatch, path,
		map[string]interface{}{"title": "Renamed Loft"})
	if w.Code != http.StatusOK {
		t.Fatalf("admin patching: status = %d", w.Code)
	}
}

func TestDeleteListingEndpointOwnership(t *testing.T) {
	env := newTestEnv()
	host := uuid.New()
	listing := env.store.addListing(host, "100.00", 4, true)
	path := "/api/v1/listings/" + listing.ID.String()

	w := doRequest(t, env.router(actorFor(uuid.New(), "host")), http.MethodDelete, path, nil)
	if w.Code != http.StatusForbidden {
		t.Fatalf("other host deleting: status = %d, want 403", w.Code)
	}

	w = doRequest(t, env.router(actorFor(host, "host")), http.MethodDelete, path, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("owner deleting: status = %d, body %s", w.Code, w.Body.String())
	}
	if _, ok := env.store.listings[listing.ID]; ok {
		t.Error("listing still present after delete")
	}
}

func TestListingBrowsingIsPublic(t *testing.T) {
	env := newTestEnv()
	env.store.addListing(uuid.New(), "100.00", 4, true)
	env.store.addListing(uuid.New(), "200.00", 2, true)
	r := env.router(nil)

	w := doRequest(t, r, http.MethodGet, "/api/v1/listings/", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", w.Code, w.Body.String())
	}
	if res := decodeEnvelope(t, w); res.Total != 2 {
		t.Errorf("total = %d, want 2", res.Total)
	}

	w = doRequest(t, r, http.MethodGet, "/api/v1/listings/"+uuid.New().String(), nil)
	if w.Code != http.StatusNotFound {
		t.Fatalf("unknown listing: status = %d, want 404", w.Code)
	}
}

func TestAvailabilityEndpoint(t *testing.T) {
	env := newTestEnv()
	listing := env.store.addListing(uuid.New(), "100.00", 4, true)
	closed := env.store.addListing(uuid.New(), "100.00", 4, false)
	env.store.addBooking(listing.ID, uuid.New(), futureDay(30), futureDay(33), "confirmed")
	r := env.router(nil)

	check := func(t *testing.T, listingID uuid.UUID, in, out time.Time, want bool) {
		t.Helper()
		path := "/api/v1/listings/" + listingID.String() + "/availability?check_in_date=" +
			in.Format(time.DateOnly) + "&check_out_date=" + out.Format(time.DateOnly)
		w := doRequest(t, r, http.MethodGet, path, nil)
		if w.Code != http.StatusOK {
			t.Fatalf("status = %d, body %s", w.Code, w.Body.String())
		}
		res := decodeEnvelope(t, w)
		var data map[string]interface{}
		if err := json.Unmarshal(res.Data, &data); err != nil {
			t.Fatalf("bad data payload: %v", err)
		}
		if data["available"] != want {
			t.Errorf("available = %v, want %v", data["available"], want)
		}
	}

	check(t, listing.ID, futureDay(60), futureDay(63), true)
	check(t, listing.ID, futureDay(31), futureDay(34), false)
	// Turnover day touches only the boundary.
	check(t, listing.ID, futureDay(33), futureDay(35), true)
	check(t, closed.ID, futureDay(60), futureDay(63), false)

	w := doRequest(t, r, http.MethodGet, "/api/v1/listings/"+listing.ID.String()+"/availability", nil)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("missing dates: status = %d, want 400", w.Code)
	}

	w = doRequest(t, r, http.MethodGet, "/api/v1/listings/"+uuid.New().String()+
		"/availability?check_in_date="+futureDay(1).Format(time.DateOnly)+
		"&check_out_date="+futureDay(3).Format(time.DateOnly), nil)
	if w.Code != http.StatusNotFound {
		t.Fatalf("unknown listing: status = %d, want 404", w.Code)
	}
}

func TestQuoteEndpoint(t *testing.T) {
	env := newTestEnv()
	listing := env.store.addListing(uuid.New(), "120.50", 4, true)
	r := env.router(nil)

	w := doRequest(t, r, http.MethodGet, "/api/v1/listings/"+listing.ID.String()+
		"/quote?check_in_date="+futureDay(10).Format(time.DateOnly)+
		"&check_out_date="+futureDay(13).Format(time.DateOnly), nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", w.Code, w.Body.String())
	}
	res := decodeEnvelope(t, w)
	var data map[string]interface{}
	if err := json.Unmarshal(res.Data, &data); err != nil {
		t.Fatalf("bad data payload: %v", err)
	}
	if data["nights"] != float64(3) {
		t.Errorf("nights = %v, want 3", data["nights"])
	}
	if data["total_price"] != "361.50" {
		t.Errorf("total_price = %v, want 361.50", data["total_price"])
	}

	w = doRequest(t, r, http.MethodGet, "/api/v1/listings/"+listing.ID.String()+
		"/quote?check_in_date="+futureDay(13).Format(time.DateOnly)+
		"&check_out_date="+futureDay(10).Format(time.DateOnly), nil)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("inverted range: status = %d, want 400", w.Code)
	}
}

func TestListListingsByHostEndpoint(t *testing.T) {
	env := newTestEnv()
	host := uuid.New()
	env.store.addListing(host, "100.00", 4, true)
	env.store.addListing(host, "150.00", 2, true)
	env.store.addListing(uuid.New(), "200.00", 2, true)
	path := "/api/v1/hosts/" + host.String() + "/listings"

	w := doRequest(t, env.router(actorFor(uuid.New(), "host")), http.MethodGet, path, nil)
	if w.Code != http.StatusForbidden {
		t.Fatalf("other host: status = %d, want 403", w.Code)
	}

	w = doRequest(t, env.router(actorFor(host, "host")), http.MethodGet, path, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("self: status = %d, body %s", w.Code, w.Body.String())
	}
	if res := decodeEnvelope(t, w); res.Total != 2 {
		t.Errorf("total = %d, want 2", res.Total)
	}

	w = doRequest(t, env.router(actorFor(uuid.New(), "admin")), http.MethodGet, path, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("admin: status = %d", w.Code)
	}
}
