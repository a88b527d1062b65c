package handlers_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/ironhall/gymhub/internal/domain/membership"
	"github.com/ironhall/gymhub/internal/http/handlers"
)

type fakePackagesRepo struct {
	pkgs []membership.Package

	createErr error
	updateErr error
	deleteErr error
	listErr   error
}

func (f *fakePackagesRepo) Create(ctx context.Context, req membership.CreatePackageRequest) (membership.Package, error) {
	if f.createErr != nil {
		return membership.Package{}, f.createErr
	}

	for _, p := range f.pkgs {
		if p.Name == req.Name {
			return membership.Package{}, membership.ErrNameTaken
		}
	}

	p := membership.NewFromCreateRequest(req)
	f.pkgs = append(f.pkgs, p)

	return p, nil
}

func (f *fakePackagesRepo) List(ctx context.Context) ([]membership.Package, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}

	return f.pkgs, nil
}

func (f *fakePackagesRepo) GetByID(ctx context.Context, id string) (membership.Package, error) {
	for _, p := range f.pkgs {
		if p.ID == id {
			return p, nil
		}
	}

	return membership.Package{}, membership.ErrNotFound
}

func (f *fakePackagesRepo) Update(ctx context.Context, id string, req membership.UpdatePackageRequest) (membership.Package, error) {
	if f.updateErr != nil {
		return membership.Package{}, f.updateErr
	}

	for i := range f.pkgs {
		if f.pkgs[i].ID == id {
			f.pkgs[i].Name = req.Name
			f.pkgs[i].Description = req.Description
			f.pkgs[i].Price = req.Price
			f.pkgs[i].Duration = req.Duration

			return f.pkgs[i], nil
		}
	}

	return membership.Package{}, membership.ErrNotFound
}

func (f *fakePackagesRepo) Delete(ctx context.Context, id string) error {
	if f.deleteErr != nil {
		return f.deleteErr
	}

	for i := range f.pkgs {
		if f.pkgs[i].ID == id {
			f.pkgs = append(f.pkgs[:i], f.pkgs[i+1:]...)
			return nil
		}
	}

	return membership.ErrNotFound
}

// countingCache records hits so the list handler's read-through behavior can
// be asserted.
type countingCache struct {
	stored      []membership.Package
	haveStored  bool
	gets        int
	sets        int
	invalidates int
}

func (c *countingCache) GetList(ctx context.Context) ([]membership.Package, bool) {
	c.gets++
	return c.stored, c.haveStored
}

func (c *countingCache) SetList(ctx context.Context, pkgs []membership.Package) {
	c.sets++
	c.stored = pkgs
	c.haveStored = true
}

func (c *countingCache) Invalidate(ctx context.Context) {
	c.invalidates++
	c.stored = nil
	c.haveStored = false
}

func seedPackage(name string, price float64) membership.Package {
	return membership.NewFromCreateRequest(membership.CreatePackageRequest{
		Name:     name,
		Price:    price,
		Duration: "1 month",
	})
}

type listResponse struct {
	Items []membership.Package `json:"items"`
	Count int                  `json:"count"`
}

func TestCreatePackage(t *testing.T) {
	tests := []struct {
		name           string
		body           string
		existing       []membership.Package
		wantStatusCode int
		wantErrCode    string
	}{
		{
			name:           "success",
			body:           `{"name":"Gold","description":"All access","price":99.5,"duration":"3 months"}`,
			wantStatusCode: http.StatusCreated,
		},
		{
			name:           "negative_price",
			body:           `{"name":"Gold","price":-1,"duration":"3 months"}`,
			wantStatusCode: http.StatusBadRequest,
			wantErrCode:    "invalid_request",
		},
		{
			name:           "missing_duration",
			body:           `{"name":"Gold","price":10}`,
			wantStatusCode: http.StatusBadRequest,
			wantErrCode:    "invalid_request",
		},
		{
			name:           "duplicate_name",
			body:           `{"name":"Gold","price":10,"duration":"3 months"}`,
			existing:       []membership.Package{seedPackage("Gold", 99.5)},
			wantStatusCode: http.StatusConflict,
			wantErrCode:    "name_taken",
		},
	}

	for _, tt := range tests {
		tt := tt

		t.Run(tt.name, func(t *testing.T) {
			repo := &fakePackagesRepo{pkgs: tt.existing}
			h := handlers.NewPackagesHandler(repo, nil)
			r := setupRouter(http.MethodPost, "/admin/add_package", h.CreatePackage)

			w := postJSON(r, "/admin/add_package", tt.body)

			if w.Code != tt.wantStatusCode {
				t.Fatalf("got status %d, want %d, body=%s", w.Code, tt.wantStatusCode, w.Body.String())
			}

			if tt.wantErrCode != "" {
				var resp errorResponse
				if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
					t.Fatalf("unmarshal: %v", err)
				}
				if resp.Error.Code != tt.wantErrCode {
					t.Fatalf("got error code %q, want %q", resp.Error.Code, tt.wantErrCode)
				}
				return
			}

			var created membership.Package
			if err := json.Unmarshal(w.Body.Bytes(), &created); err != nil {
				t.Fatalf("unmarshal: %v", err)
			}
			if created.ID == "" || created.Name != "Gold" {
				t.Fatalf("unexpected created package: %+v", created)
			}
		})
	}
}

func TestListPackagesReadsThroughCache(t *testing.T) {
	repo := &fakePackagesRepo{pkgs: []membership.Package{seedPackage("Gold", 99.5), seedPackage("Silver", 49.5)}}
	c := &countingCache{}
	h := handlers.NewPackagesHandler(repo, c)
	r := setupRouter(http.MethodGet, "/packages", h.ListPackages)

	// first request misses and fills the cache
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/packages", nil))

	if w.Code != http.StatusOK {
		t.Fatalf("got status %d, body=%s", w.Code, w.Body.String())
	}

	var resp listResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if resp.Count != 2 || len(resp.Items) != 2 {
		t.Fatalf("expected 2 packages, got count=%d items=%d", resp.Count, len(resp.Items))
	}
	if c.sets != 1 {
		t.Fatalf("first list should populate the cache, sets=%d", c.sets)
	}

	// second request must be served from the cache
	repo.listErr = context.DeadlineExceeded

	w2 := httptest.NewRecorder()
	r.ServeHTTP(w2, httptest.NewRequest(http.MethodGet, "/packages", nil))

	if w2.Code != http.StatusOK {
		t.Fatalf("cached list should not touch the repo, got %d body=%s", w2.Code, w2.Body.String())
	}
}

func TestUpdatePackage(t *testing.T) {
	gold := seedPackage("Gold", 99.5)

	tests := []struct {
		name           string
		id             string
		body           string
		wantStatusCode int
	}{
		{
			name:           "success",
			id:             gold.ID,
			body:           `{"name":"Gold Plus","price":120,"duration":"6 months"}`,
			wantStatusCode: http.StatusOK,
		},
		{
			name:           "unknown_id",
			id:             newUUID(),
			body:           `{"name":"Gold Plus","price":120,"duration":"6 months"}`,
			wantStatusCode: http.StatusNotFound,
		},
		{
			name:           "malformed_id",
			id:             "not-a-uuid",
			body:           `{"name":"Gold Plus","price":120,"duration":"6 months"}`,
			wantStatusCode: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		tt := tt

		t.Run(tt.name, func(t *testing.T) {
			repo := &fakePackagesRepo{pkgs: []membership.Package{gold}}
			h := handlers.NewPackagesHandler(repo, nil)
			r := setupRouter(http.MethodPost, "/admin/edit_package/:id", h.UpdatePackage)

			w := postJSON(r, "/admin/edit_package/"+tt.id, tt.body)

			if w.Code != tt.wantStatusCode {
				t.Fatalf("got status %d, want %d, body=%s", w.Code, tt.wantStatusCode, w.Body.String())
			}

			if tt.wantStatusCode != http.StatusOK {
				return
			}

			var updated membership.Package
			if err := json.Unmarshal(w.Body.Bytes(), &updated); err != nil {
				t.Fatalf("unmarshal: %v", err)
			}
			if updated.Name != "Gold Plus" || updated.Price != 120 {
				t.Fatalf("unexpected updated package: %+v", updated)
			}
		})
	}
}

func TestDeletePackage(t *testing.T) {
	gold := seedPackage("Gold", 99.5)

	tests := []struct {
		name           string
		id             string
		wantStatusCode int
	}{
		{name: "success", id: gold.ID, wantStatusCode: http.StatusNoContent},
		{name: "unknown_id", id: newUUID(), wantStatusCode: http.StatusNotFound},
		{name: "malformed_id", id: "42", wantStatusCode: http.StatusBadRequest},
	}

	for _, tt := range tests {
		tt := tt

		t.Run(tt.name, func(t *testing.T) {
			repo := &fakePackagesRepo{pkgs: []membership.Package{gold}}
			c := &countingCache{}
			h := handlers.NewPackagesHandler(repo, c)
			r := setupRouter(http.MethodPost, "/admin/delete_package/:id", h.DeletePackage)

			req := httptest.NewRequest(http.MethodPost, "/admin/delete_package/"+tt.id, nil)
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)

			if w.Code != tt.wantStatusCode {
				t.Fatalf("got status %d, want %d, body=%s", w.Code, tt.wantStatusCode, w.Body.String())
			}

			if tt.wantStatusCode == http.StatusNoContent {
				if len(repo.pkgs) != 0 {
					t.Fatalf("package should be gone, still have %d", len(repo.pkgs))
				}
				if c.invalidates != 1 {
					t.Fatalf("delete must invalidate the list cache, invalidates=%d", c.invalidates)
				}
			}
		})
	}
}

func TestGetPackageByID(t *testing.T) {
	gold := seedPackage("Gold", 99.5)
	repo := &fakePackagesRepo{pkgs: []membership.Package{gold}}
	h := handlers.NewPackagesHandler(repo, nil)
	r := setupRouter(http.MethodGet, "/packages/:id", h.GetPackageByID)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/packages/"+gold.ID, nil))

	if w.Code != http.StatusOK {
		t.Fatalf("got status %d, body=%s", w.Code, w.Body.String())
	}

	if w.Header().Get("ETag") == "" {
		t.Fatalf("package reads should carry an ETag")
	}

	w2 := httptest.NewRecorder()
	r.ServeHTTP(w2, httptest.NewRequest(http.MethodGet, "/packages/"+newUUID(), nil))

	if w2.Code != http.StatusNotFound {
		t.Fatalf("unknown id should 404, got %d", w2.Code)
	}
}
