package handlers_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/ironhall/gymhub/internal/domain/user"
	"github.com/ironhall/gymhub/internal/http/handlers"
	"github.com/ironhall/gymhub/internal/security"
)

func TestProfileGetReloadsFromStore(t *testing.T) {
	userID := newUUID()

	token, err := testJWT().GenerateAccessToken(userID, "stale-name", false)
	if err != nil {
		t.Fatalf("token: %v", err)
	}

	users := &fakeUsersRepo{
		getByIDFn: func(ctx context.Context, id string) (user.User, error) {
			if id == userID {
				// the store has a newer username than the token
				return user.User{ID: userID, Username: "fresh-name", IsAdmin: true}, nil
			}
			return user.User{}, user.ErrNotFound
		},
	}

	h := handlers.NewProfileHandler(users, users)
	r := sessionRouter(http.MethodGet, "/profile", h.Get)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, bearerRequest(http.MethodGet, "/profile", "", token))

	if w.Code != http.StatusOK {
		t.Fatalf("got status %d, body=%s", w.Code, w.Body.String())
	}

	var u user.User
	if err := json.Unmarshal(w.Body.Bytes(), &u); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	if u.Username != "fresh-name" {
		t.Fatalf("profile should reflect the store, not the token: %+v", u)
	}
}

func TestProfileGetForDeletedAccount(t *testing.T) {
	token, err := testJWT().GenerateAccessToken(newUUID(), "ghost", false)
	if err != nil {
		t.Fatalf("token: %v", err)
	}

	users := &fakeUsersRepo{} // GetByID falls through to ErrNotFound

	h := handlers.NewProfileHandler(users, users)
	r := sessionRouter(http.MethodGet, "/profile", h.Get)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, bearerRequest(http.MethodGet, "/profile", "", token))

	if w.Code != http.StatusUnauthorized {
		t.Fatalf("a valid token for a deleted account should 401, got %d", w.Code)
	}
}

func TestProfileUpdate(t *testing.T) {
	userID := newUUID()

	token, err := testJWT().GenerateAccessToken(userID, "alice", false)
	if err != nil {
		t.Fatalf("token: %v", err)
	}

	tests := []struct {
		name           string
		body           string
		updateErr      error
		wantStatusCode int
		wantErrCode    string
		wantNewHash    bool
	}{
		{
			name:           "rename_only_keeps_password",
			body:           `{"username":"alice2"}`,
			wantStatusCode: http.StatusOK,
			wantNewHash:    false,
		},
		{
			name:           "password_change_is_hashed",
			body:           `{"username":"alice","password":"new-pw","confirmPassword":"new-pw"}`,
			wantStatusCode: http.StatusOK,
			wantNewHash:    true,
		},
		{
			name:           "password_confirmation_mismatch",
			body:           `{"username":"alice","password":"new-pw","confirmPassword":"other"}`,
			wantStatusCode: http.StatusBadRequest,
			wantErrCode:    "invalid_request",
		},
		{
			name:           "taken_username",
			body:           `{"username":"bob"}`,
			updateErr:      user.ErrUsernameTaken,
			wantStatusCode: http.StatusConflict,
			wantErrCode:    "username_taken",
		},
		{
			name:           "missing_username",
			body:           `{}`,
			wantStatusCode: http.StatusBadRequest,
			wantErrCode:    "invalid_request",
		},
	}

	for _, tt := range tests {
		tt := tt

		t.Run(tt.name, func(t *testing.T) {
			var gotHash *string
			called := false

			users := &fakeUsersRepo{
				updateFn: func(ctx context.Context, id, username string, passwordHash *string) (user.User, error) {
					called = true
					gotHash = passwordHash

					if tt.updateErr != nil {
						return user.User{}, tt.updateErr
					}

					return user.User{ID: id, Username: username, IsAdmin: true}, nil
				},
			}

			h := handlers.NewProfileHandler(users, users)
			r := sessionRouter(http.MethodPut, "/profile", h.Update)

			w := httptest.NewRecorder()
			r.ServeHTTP(w, bearerRequest(http.MethodPut, "/profile", tt.body, token))

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

			if !called {
				t.Fatalf("store was never called")
			}

			if tt.wantNewHash {
				if gotHash == nil {
					t.Fatalf("expected a new password hash, got nil")
				}
				if *gotHash == "new-pw" {
					t.Fatalf("plaintext password reached the store")
				}
				if err := security.CheckPassword(*gotHash, "new-pw"); err != nil {
					t.Fatalf("stored hash should verify: %v", err)
				}
			} else if gotHash != nil {
				t.Fatalf("empty password must keep the current credential, got %q", *gotHash)
			}
		})
	}
}

func TestProfileRequiresAuth(t *testing.T) {
	users := &fakeUsersRepo{}
	h := handlers.NewProfileHandler(users, users)
	r := sessionRouter(http.MethodGet, "/profile", h.Get)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/profile", nil))

	if w.Code != http.StatusUnauthorized {
		t.Fatalf("anonymous profile read should 401, got %d", w.Code)
	}
}
