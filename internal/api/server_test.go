package api

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/log"

	"github.com/naturelab/lifelist/pkg/cache"
	"github.com/naturelab/lifelist/pkg/inat"
	"github.com/naturelab/lifelist/pkg/menus"
	"github.com/naturelab/lifelist/pkg/pipeline"
)

// upstream fakes the data source with one class and two species for the
// login "benarm".
func upstream(t *testing.T) *httptest.Server {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/taxa/autocomplete":
			io.WriteString(w, `{"total_results":1,"results":[{"id":3,"name":"Aves","rank":"class","is_active":true}]}`)
		case "/users/autocomplete":
			io.WriteString(w, `{"total_results":1,"results":[{"id":1,"login":"benarm","name":"Ben"}]}`)
		case "/observations/taxonomy":
			io.WriteString(w, `{"total_results":3,"results":[
				{"id":3,"name":"Aves","rank":"class","ancestor_ids":[],"descendant_obs_count":12,"direct_obs_count":2},
				{"id":12705,"name":"Turdus migratorius","rank":"species","parent_id":3,"ancestor_ids":[3],
				 "descendant_obs_count":6,"direct_obs_count":6},
				{"id":8021,"name":"Corvus corax","rank":"species","parent_id":3,"ancestor_ids":[3],
				 "descendant_obs_count":4,"direct_obs_count":4}
			]}`)
		default:
			http.NotFound(w, r)
		}
	}))
	t.Cleanup(server.Close)
	return server
}

func testServer(t *testing.T) *Server {
	t.Helper()
	up := upstream(t)
	client := inat.NewClient(cache.NewMemoryCache(), time.Hour, inat.WithBaseURL(up.URL))
	runner := pipeline.NewRunner(client, cache.NewMemoryCache(), nil, log.New(io.Discard))
	return NewServer(runner, menus.NewRegistry(0), log.New(io.Discard), pipeline.Options{
		Defaults: inat.Defaults{Login: "benarm"},
		PerPage:  2,
		WithTaxa: true,
	})
}

func do(t *testing.T, s *Server, method, path, body string) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	rec := httptest.NewRecorder()
	s.ServeHTTP(rec, req)

	var decoded map[string]any
	if rec.Body.Len() > 0 {
		if err := json.Unmarshal(rec.Body.Bytes(), &decoded); err != nil {
			t.Fatalf("%s %s: invalid JSON response %q", method, path, rec.Body.String())
		}
	}
	return rec, decoded
}

func createSession(t *testing.T, s *Server) string {
	t.Helper()
	rec, resp := do(t, s, http.MethodPost, "/v1/sessions", `{"argument":"my birds"}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("create session: status %d body %s", rec.Code, rec.Body.String())
	}
	id, _ := resp["session_id"].(string)
	if id == "" {
		t.Fatalf("create session: no session_id in %v", resp)
	}
	return id
}

func TestHealth(t *testing.T) {
	rec, resp := do(t, testServer(t), http.MethodGet, "/health", "")
	if rec.Code != http.StatusOK || resp["status"] != "ok" {
		t.Errorf("health = %d %v", rec.Code, resp)
	}
}

func TestCreateSession(t *testing.T) {
	s := testServer(t)
	rec, resp := do(t, s, http.MethodPost, "/v1/sessions", `{"argument":"my birds"}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, want 201: %s", rec.Code, rec.Body.String())
	}
	rendered, _ := resp["rendered"].(string)
	if !strings.Contains(rendered, "Aves") {
		t.Errorf("rendered page missing taxa:\n%s", rendered)
	}
	if resp["page"] != float64(0) || resp["last_page"] != float64(1) {
		t.Errorf("pagination = page %v last %v, want 0 and 1", resp["page"], resp["last_page"])
	}
}

func TestCreateSessionErrors(t *testing.T) {
	s := testServer(t)

	rec, resp := do(t, s, http.MethodPost, "/v1/sessions", `{}`)
	if rec.Code != http.StatusBadRequest || resp["code"] != "INVALID_QUERY" {
		t.Errorf("empty argument = %d %v", rec.Code, resp)
	}

	rec, resp = do(t, s, http.MethodPost, "/v1/sessions", `not json`)
	if rec.Code != http.StatusBadRequest || resp["code"] != "INVALID_INPUT" {
		t.Errorf("bad body = %d %v", rec.Code, resp)
	}

	rec, resp = do(t, s, http.MethodPost, "/v1/sessions", `{"argument":"my birds per bogus"}`)
	if rec.Code != http.StatusBadRequest || resp["code"] != "INVALID_POLICY" {
		t.Errorf("bad policy = %d %v", rec.Code, resp)
	}
}

func TestGetPage(t *testing.T) {
	s := testServer(t)
	id := createSession(t, s)

	rec, resp := do(t, s, http.MethodGet, "/v1/sessions/"+id+"/pages/1", "")
	if rec.Code != http.StatusOK || resp["page"] != float64(1) {
		t.Errorf("page 1 = %d %v", rec.Code, resp)
	}

	rec, resp = do(t, s, http.MethodGet, "/v1/sessions/"+id+"/pages/9", "")
	if rec.Code != http.StatusUnprocessableEntity || resp["code"] != "PAGE_OUT_OF_RANGE" {
		t.Errorf("page 9 = %d %v", rec.Code, resp)
	}

	rec, resp = do(t, s, http.MethodGet, "/v1/sessions/"+id+"/pages/x", "")
	if rec.Code != http.StatusBadRequest {
		t.Errorf("page x = %d %v", rec.Code, resp)
	}
}

func TestNav(t *testing.T) {
	s := testServer(t)
	id := createSession(t, s)
	path := "/v1/sessions/" + id + "/nav"

	rec, resp := do(t, s, http.MethodPost, path, `{"op":"next"}`)
	if rec.Code != http.StatusOK || resp["page"] != float64(1) {
		t.Errorf("next = %d %v", rec.Code, resp)
	}

	// Wraps from the last page back to the first.
	rec, resp = do(t, s, http.MethodPost, path, `{"op":"next"}`)
	if rec.Code != http.StatusOK || resp["page"] != float64(0) {
		t.Errorf("wrap = %d %v", rec.Code, resp)
	}

	rec, resp = do(t, s, http.MethodPost, path, `{"op":"select","arg":1}`)
	if rec.Code != http.StatusOK || resp["selected"] != float64(1) {
		t.Errorf("select = %d %v", rec.Code, resp)
	}
	if resp["taxon_id"] == float64(0) {
		t.Errorf("select returned no taxon id: %v", resp)
	}

	rec, resp = do(t, s, http.MethodPost, path, `{"op":"select","arg":9}`)
	if rec.Code != http.StatusUnprocessableEntity || resp["code"] != "SELECTION_OUT_OF_RANGE" {
		t.Errorf("bad select = %d %v", rec.Code, resp)
	}

	rec, resp = do(t, s, http.MethodPost, path, `{"op":"sideways"}`)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("bad op = %d %v", rec.Code, resp)
	}
}

func TestSessionNotFound(t *testing.T) {
	s := testServer(t)
	rec, resp := do(t, s, http.MethodGet, "/v1/sessions/nope/pages/0", "")
	if rec.Code != http.StatusNotFound || resp["code"] != "SESSION_NOT_FOUND" {
		t.Errorf("unknown session = %d %v", rec.Code, resp)
	}
}

func TestDeleteSession(t *testing.T) {
	s := testServer(t)
	id := createSession(t, s)

	rec, _ := do(t, s, http.MethodDelete, "/v1/sessions/"+id, "")
	if rec.Code != http.StatusNoContent {
		t.Errorf("delete = %d", rec.Code)
	}
	rec, _ = do(t, s, http.MethodGet, "/v1/sessions/"+id+"/pages/0", "")
	if rec.Code != http.StatusNotFound {
		t.Errorf("deleted session still serves pages: %d", rec.Code)
	}
}
