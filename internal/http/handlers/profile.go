package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/ironhall/gymhub/internal/config"
	"github.com/ironhall/gymhub/internal/domain/user"
	"github.com/ironhall/gymhub/internal/http/middlewares"
	"github.com/ironhall/gymhub/internal/security"
)

type ProfileHandler struct {
	users      UserReader
	userWriter UserWriter
}

func NewProfileHandler(users UserReader, userWriter UserWriter) *ProfileHandler {
	return &ProfileHandler{users: users, userWriter: userWriter}
}

// Get reloads the user row instead of trusting the access token, so a
// username change earlier in the session shows up immediately.
func (h *ProfileHandler) Get(ctx *gin.Context) {
	userID, ok := middlewares.UserIDFromContext(ctx)

	if !ok || userID == "" {
		RespondUnAuthorized(ctx, "unauthorized", "Missing identity")
		return
	}

	cctx, cancel := config.WithTimeout(2 * time.Second)
	defer cancel()

	u, err := h.users.GetByID(cctx, userID)

	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			RespondUnAuthorized(ctx, "unauthorized", "Account no longer exists")
			return
		}

		RespondInternal(ctx, "Could not load profile")
		return
	}

	ctx.JSON(http.StatusOK, u)
}

func (h *ProfileHandler) Update(ctx *gin.Context) {
	userID, ok := middlewares.UserIDFromContext(ctx)

	if !ok || userID == "" {
		RespondUnAuthorized(ctx, "unauthorized", "Missing identity")
		return
	}

	var req user.UpdateProfileRequest

	if !BindJSON(ctx, &req) {
		return
	}

	// empty password means keep the current credential
	var passwordHash *string

	if req.Password != "" {
		hash, err := security.HashPassword(req.Password)

		if err != nil {
			RespondInternal(ctx, "Could not update profile")
			return
		}

		passwordHash = &hash
	}

	cctx, cancel := config.WithTimeout(3 * time.Second)
	defer cancel()

	u, err := h.userWriter.UpdateProfile(cctx, userID, req.Username, passwordHash)

	if err != nil {
		switch {
		case errors.Is(err, user.ErrUsernameTaken):
			RespondConflict(ctx, "username_taken", "This username is already taken.")
		case errors.Is(err, user.ErrNotFound):
			RespondUnAuthorized(ctx, "unauthorized", "Account no longer exists")
		default:
			RespondInternal(ctx, "Could not update profile")
		}
		return
	}

	ctx.JSON(http.StatusOK, u)
}
