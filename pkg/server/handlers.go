package server

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/matzehuels/iconfinder/pkg/collections"
	"github.com/matzehuels/iconfinder/pkg/customise"
	"github.com/matzehuels/iconfinder/pkg/errors"
	"github.com/matzehuels/iconfinder/pkg/finder"
	"github.com/matzehuels/iconfinder/pkg/iconset"
	"github.com/matzehuels/iconfinder/pkg/pagination"
	"github.com/matzehuels/iconfinder/pkg/providers"
)

func (s *Server) health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status": "ok",
		"loaded": len(s.finder.Loaded()),
	})
}

type collectionsResponse struct {
	Provider    string                    `json:"provider"`
	Categories  []*collections.Category   `json:"categories"`
	Selected    string                    `json:"selected,omitempty"`
	Collections []*collections.Collection `json:"collections"`
}

func (s *Server) collections(w http.ResponseWriter, r *http.Request) {
	provider, err := providerParam(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	q := r.URL.Query()
	keyword := q.Get("keyword")
	if err := errors.ValidateKeyword(keyword); err != nil {
		writeError(w, r, err)
		return
	}
	list, view, err := s.finder.FilterCollections(r.Context(), provider, keyword, q.Get("category"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	resp := collectionsResponse{
		Provider:    provider,
		Categories:  view.Categories,
		Collections: list,
	}
	if view.Selected != nil {
		resp.Selected = view.Selected.Title
	}
	writeJSON(w, http.StatusOK, resp)
}

type iconJSON struct {
	Name            string            `json:"name"`
	Aliases         []string          `json:"aliases,omitempty"`
	Render          string            `json:"render,omitempty"`
	Transform       iconset.Transform `json:"transform,omitzero"`
	Transformations []string          `json:"transformations,omitempty"`
	Hidden          bool              `json:"hidden,omitempty"`
}

func newIconJSON(u *iconset.UniqueIcon) iconJSON {
	names := u.Names()
	out := iconJSON{
		Name:            names[0],
		Aliases:         names[1:],
		Transform:       u.Transform,
		Transformations: u.Transformations,
		Hidden:          u.Hidden,
	}
	if u.Render != out.Name {
		out.Render = u.Render
	}
	return out
}

type viewResponse struct {
	ID      iconset.ID          `json:"id"`
	Source  iconset.Source      `json:"source"`
	Info    *iconset.Info       `json:"info,omitempty"`
	Total   int                 `json:"total"`
	Keyword string              `json:"keyword,omitempty"`
	Matches int                 `json:"matches"`
	Icons   []iconJSON          `json:"icons"`
	Pages   pagination.Pages    `json:"pages"`
	Filters *iconset.FilterSet  `json:"filters,omitempty"`
	Search  *iconset.SearchInfo `json:"search,omitempty"`
}

func newViewResponse(v *finder.View) viewResponse {
	icons := make([]iconJSON, len(v.Page.Visible))
	for i, u := range v.Page.Visible {
		icons[i] = newIconJSON(u)
	}
	resp := viewResponse{
		ID:      v.Set.ID,
		Source:  v.Set.Source,
		Info:    v.Set.Info,
		Total:   v.Set.Total,
		Keyword: v.Keyword,
		Matches: len(v.Page.Items),
		Icons:   icons,
		Pages:   v.Page.Pages,
		Search:  v.Set.Search,
	}
	if !v.Set.Filters.Empty() {
		resp.Filters = v.Set.Filters
	}
	return resp
}

func (s *Server) collection(w http.ResponseWriter, r *http.Request) {
	provider, err := providerParam(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	q, err := parseQuery(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	q.Provider = provider
	q.Prefix = chi.URLParam(r, "prefix")

	v, err := s.finder.Query(r.Context(), q)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, newViewResponse(v))
}

func (s *Server) search(w http.ResponseWriter, r *http.Request) {
	provider, err := providerParam(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	q, err := parseQuery(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	if strings.TrimSpace(q.Keyword) == "" {
		writeError(w, r, errors.New(errors.ErrCodeInvalidInput, "keyword is required"))
		return
	}
	limit, err := intParam(r, "limit")
	if err != nil {
		writeError(w, r, err)
		return
	}

	set, err := s.finder.Search(r.Context(), provider, q.Keyword, limit)
	if err != nil {
		writeError(w, r, err)
		return
	}
	if set == nil {
		writeJSON(w, http.StatusOK, viewResponse{Keyword: q.Keyword, Icons: []iconJSON{}})
		return
	}
	if err := finder.SelectFilters(set, q.Filters); err != nil {
		writeError(w, r, err)
		return
	}
	if q.PerPage > 0 {
		set.State.PerPage = q.PerPage
	}
	if q.Page != nil {
		set.State.Page = *q.Page
	}
	// The API already matched the keyword; every result is shown.
	writeJSON(w, http.StatusOK, newViewResponse(s.finder.View(r.Context(), set, "")))
}

type selectionResponse struct {
	Provider       string                   `json:"provider"`
	Prefix         string                   `json:"prefix"`
	Name           string                   `json:"name"`
	Render         string                   `json:"render"`
	Transform      iconset.Transform        `json:"transform"`
	Customisations customise.Customisations `json:"customisations"`
	Params         string                   `json:"params,omitempty"`
}

func (s *Server) icon(w http.ResponseWriter, r *http.Request) {
	provider, err := providerParam(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	name := chi.URLParam(r, "name")
	if err := errors.ValidateIconName(name); err != nil {
		writeError(w, r, err)
		return
	}
	c, err := parseCustomisations(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	sel, err := s.finder.Select(r.Context(), provider, chi.URLParam(r, "prefix"), name, c)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, selectionResponse{
		Provider:       sel.Provider,
		Prefix:         sel.Prefix,
		Name:           sel.Name,
		Render:         sel.Render,
		Transform:      sel.Transform,
		Customisations: sel.Customisations,
		Params:         sel.Customisations.Params().Encode(),
	})
}

func providerParam(r *http.Request) (string, error) {
	name := chi.URLParam(r, "provider")
	if err := errors.ValidateProvider(name); err != nil {
		return "", err
	}
	return providers.Resolve(name), nil
}

// parseQuery reads keyword, paging and one filter selection per kind.
func parseQuery(r *http.Request) (finder.Query, error) {
	values := r.URL.Query()
	q := finder.Query{Keyword: values.Get("keyword")}
	if err := errors.ValidateKeyword(q.Keyword); err != nil {
		return q, err
	}
	if values.Has("page") {
		page, err := intParam(r, "page")
		if err != nil {
			return q, err
		}
		q.Page = &page
	}
	perPage, err := intParam(r, "per_page")
	if err != nil {
		return q, err
	}
	q.PerPage = perPage

	for _, kind := range iconset.Kinds {
		if !values.Has(string(kind)) {
			continue
		}
		if q.Filters == nil {
			q.Filters = make(map[iconset.FilterKind]string)
		}
		q.Filters[kind] = values.Get(string(kind))
	}
	return q, nil
}

func parseCustomisations(r *http.Request) (customise.Customisations, error) {
	values := r.URL.Query()
	rotate, err := customise.ParseRotation(values.Get("rotate"))
	if err != nil {
		return customise.Customisations{}, err
	}
	c := customise.Customisations{
		Rotate: rotate,
		Color:  values.Get("color"),
		Width:  values.Get("width"),
		Height: values.Get("height"),
	}
	for _, f := range strings.Split(values.Get("flip"), ",") {
		switch strings.TrimSpace(f) {
		case "":
		case "horizontal":
			c.HFlip = true
		case "vertical":
			c.VFlip = true
		default:
			return c, errors.New(errors.ErrCodeInvalidInput, "invalid flip %q", f)
		}
	}
	return c, nil
}

// intParam returns a non-negative integer parameter; missing means 0.
func intParam(r *http.Request, name string) (int, error) {
	s := r.URL.Query().Get(name)
	if s == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil || n < 0 || n > 10000 {
		return 0, errors.New(errors.ErrCodeInvalidInput, "invalid %s %q", name, s)
	}
	return n, nil
}

type errorResponse struct {
	Error     errorBody `json:"error"`
	RequestID string    `json:"request_id,omitempty"`
}

type errorBody struct {
	Code    errors.Code `json:"code"`
	Message string      `json:"message"`
}

func notFound(r *http.Request) error {
	return errors.New(errors.ErrCodeNotFound, "no route for %s %s", r.Method, r.URL.Path)
}

func writeError(w http.ResponseWriter, r *http.Request, err error) {
	code := errors.GetCode(err)
	if code == "" {
		code = errors.ErrCodeInternal
	}
	writeJSON(w, errors.HTTPStatus(err), errorResponse{
		Error:     errorBody{Code: code, Message: errors.UserMessage(err)},
		RequestID: RequestID(r.Context()),
	})
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}
