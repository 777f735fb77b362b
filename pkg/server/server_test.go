package server

import (
	"context"
	"encoding/json"
	"io"
	"net"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/iconfinder/pkg/errors"
	"github.com/matzehuels/iconfinder/pkg/finder"
	"github.com/matzehuels/iconfinder/pkg/iconset"
	"github.com/matzehuels/iconfinder/pkg/source"
)

const demoSet = `{
	"prefix": "demo",
	"info": {"name": "Demo", "category": "General"},
	"icons": {
		"home": {"body": "<g/>"},
		"home-outline": {"body": "<g/>"},
		"arrow-left": {"body": "<g/>"}
	},
	"aliases": {
		"house": {"parent": "home"},
		"arrow-right": {"parent": "arrow-left", "hFlip": true}
	},
	"suffixes": {"": "Solid", "outline": "Outline"}
}`

func loader(calls *atomic.Int32) source.Loader {
	return source.LoaderFunc(func(ctx context.Context, req source.Request) (source.Payload, error) {
		calls.Add(1)
		switch req.Kind {
		case source.KindIconSet:
			if req.Prefix == "demo" {
				return source.Payload{Data: []byte(demoSet), Format: iconset.SourceRaw}, nil
			}
			if req.Prefix == "broken" {
				return source.Payload{Data: []byte(`{"prefix":"other"}`), Format: iconset.SourceRaw}, nil
			}
			return source.Payload{}, errors.New(errors.ErrCodeNotFound, "no set %q", req.Prefix)
		case source.KindCollections:
			return source.Payload{Data: []byte(`{
				"demo": {"name": "Demo", "total": 5, "category": "General"},
				"misc": {"name": "Misc", "total": 1, "category": "Other"}
			}`)}, nil
		case source.KindSearch:
			return source.Payload{Data: []byte(`{
				"icons": ["demo:home", "misc:star", "misc:moon"],
				"total": 3, "limit": 64,
				"collections": {"demo": {"name": "Demo"}, "misc": {"name": "Misc"}}
			}`)}, nil
		}
		return source.Payload{}, errors.New(errors.ErrCodeUnsupported, "kind %q", req.Kind)
	})
}

func newServer(t *testing.T) (*Server, *atomic.Int32) {
	t.Helper()
	var calls atomic.Int32
	f := finder.New(loader(&calls), finder.Options{Logger: log.New(io.Discard), PerPage: 2})
	t.Cleanup(f.Close)
	return New(f, Options{Logger: log.New(io.Discard), Preload: []string{"demo"}}), &calls
}

func get(t *testing.T, h http.Handler, path string, out any) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
	if out != nil {
		if err := json.Unmarshal(rec.Body.Bytes(), out); err != nil {
			t.Fatalf("GET %s: decode %q: %v", path, rec.Body.String(), err)
		}
	}
	return rec
}

func TestCollection(t *testing.T) {
	s, _ := newServer(t)
	h := s.Handler()

	var resp struct {
		ID    iconset.ID `json:"id"`
		Total int        `json:"total"`
		Icons []struct {
			Name    string   `json:"name"`
			Aliases []string `json:"aliases"`
			Render  string   `json:"render"`
		} `json:"icons"`
		Pages struct {
			Page       int `json:"page"`
			TotalPages int `json:"totalPages"`
		} `json:"pages"`
	}
	rec := get(t, h, "/v1/iconify/collection/demo", &resp)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body)
	}
	if resp.ID.Prefix != "demo" || resp.Total != 4 || resp.Pages.TotalPages != 2 {
		t.Errorf("response = %+v", resp)
	}
	if len(resp.Icons) != 2 || resp.Icons[0].Name != "home" || len(resp.Icons[0].Aliases) != 1 {
		t.Errorf("icons = %+v", resp.Icons)
	}

	rec = get(t, h, "/v1/iconify/collection/demo?page=1", &resp)
	if rec.Code != http.StatusOK || resp.Pages.Page != 1 {
		t.Fatalf("page 1: status %d, pages %+v", rec.Code, resp.Pages)
	}
	if got := resp.Icons[1]; got.Name != "arrow-right" || got.Render != "arrow-left" {
		t.Errorf("transformed alias = %+v", got)
	}

	get(t, h, "/v1/iconify/collection/demo?suffixes=-outline", &resp)
	if len(resp.Icons) != 1 || resp.Icons[0].Name != "home-outline" {
		t.Errorf("suffix filter icons = %+v", resp.Icons)
	}
}

func TestErrors(t *testing.T) {
	s, _ := newServer(t)
	h := s.Handler()

	tests := []struct {
		path   string
		status int
		code   errors.Code
	}{
		{"/v1/iconify/collection/missing", http.StatusNotFound, errors.ErrCodeNotFound},
		{"/v1/iconify/collection/broken", http.StatusServiceUnavailable, errors.ErrCodeInvalidData},
		{"/v1/iconify/collection/demo?page=-1", http.StatusBadRequest, errors.ErrCodeInvalidInput},
		{"/v1/iconify/collection/demo?tags=x", http.StatusBadRequest, errors.ErrCodeInvalidInput},
		{"/v1/Bad!/collections", http.StatusBadRequest, errors.ErrCodeInvalidProvider},
		{"/v1/iconify/search", http.StatusBadRequest, errors.ErrCodeInvalidInput},
		{"/nope", http.StatusNotFound, errors.ErrCodeNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			var resp errorResponse
			rec := get(t, h, tt.path, &resp)
			if rec.Code != tt.status {
				t.Errorf("status = %d, want %d", rec.Code, tt.status)
			}
			if resp.Error.Code != tt.code {
				t.Errorf("code = %s, want %s", resp.Error.Code, tt.code)
			}
			if resp.RequestID == "" || resp.RequestID != rec.Header().Get(requestIDHeader) {
				t.Errorf("request id = %q, header %q", resp.RequestID, rec.Header().Get(requestIDHeader))
			}
		})
	}
}

func TestCollections(t *testing.T) {
	s, _ := newServer(t)
	var resp collectionsResponse
	rec := get(t, s.Handler(), "/v1/iconify/collections?category=Other", &resp)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body)
	}
	if resp.Selected != "Other" || len(resp.Collections) != 1 || resp.Collections[0].Prefix != "misc" {
		t.Errorf("response = %+v", resp)
	}
	if len(resp.Categories) != 2 {
		t.Errorf("categories = %d, want 2", len(resp.Categories))
	}
}

func TestSearch(t *testing.T) {
	s, _ := newServer(t)
	var resp struct {
		Total int `json:"total"`
		Icons []struct {
			Name string `json:"name"`
		} `json:"icons"`
	}
	rec := get(t, s.Handler(), "/v1/iconify/search?keyword=o&collections=misc&per_page=10", &resp)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body)
	}
	if resp.Total != 3 || len(resp.Icons) != 2 || resp.Icons[0].Name != "misc:star" {
		t.Errorf("response = %+v", resp)
	}
}

func TestIcon(t *testing.T) {
	s, _ := newServer(t)
	var resp selectionResponse
	rec := get(t, s.Handler(), "/v1/iconify/icon/demo/arrow-right?flip=horizontal&rotate=90deg", &resp)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body)
	}
	if resp.Render != "arrow-left" || resp.Transform != (iconset.Transform{Rotate: 1}) {
		t.Errorf("selection = %+v", resp)
	}
	if resp.Params != "flip=horizontal&rotate=90deg" {
		t.Errorf("params = %q", resp.Params)
	}

	rec = get(t, s.Handler(), "/v1/iconify/icon/demo/home?flip=sideways", nil)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("bad flip status = %d", rec.Code)
	}
}

func TestRequestIDPassthrough(t *testing.T) {
	s, _ := newServer(t)
	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	req.Header.Set(requestIDHeader, "abc")
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)
	if got := rec.Header().Get(requestIDHeader); got != "abc" {
		t.Errorf("X-Request-ID = %q, want abc", got)
	}
}

func TestServePreloadsAndShutsDown(t *testing.T) {
	s, calls := newServer(t)
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatal(err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- s.Serve(ctx, ln) }()

	url := "http://" + ln.Addr().String() + "/healthz"
	var resp *http.Response
	for range 50 {
		resp, err = http.Get(url)
		if err == nil {
			break
		}
		time.Sleep(20 * time.Millisecond)
	}
	if err != nil {
		t.Fatalf("GET /healthz: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Errorf("status = %d", resp.StatusCode)
	}
	if calls.Load() != 1 {
		t.Errorf("loader calls = %d, want 1 from preload", calls.Load())
	}

	cancel()
	select {
	case err := <-done:
		if err != nil {
			t.Errorf("Serve() = %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("server did not shut down")
	}
}
