package handlers

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/ironhall/gymhub/internal/config"
	"github.com/ironhall/gymhub/internal/domain/booking"
	"github.com/ironhall/gymhub/internal/domain/membership"
	"github.com/ironhall/gymhub/internal/http/middlewares"
)

type BookingsStore interface {
	Create(ctx context.Context, req booking.CreateBookingRequest) (booking.Booking, error)
	ListForUser(ctx context.Context, userID string) ([]booking.Booking, error)
	ListAll(ctx context.Context) ([]booking.Booking, error)
}

// PackageLister is the slice of the catalog the booking page needs.
type PackageLister interface {
	List(ctx context.Context) ([]membership.Package, error)
}

type BookingsHandler struct {
	repo     BookingsStore
	packages PackageLister
}

func NewBookingsHandler(repo BookingsStore, packages PackageLister) *BookingsHandler {
	return &BookingsHandler{repo: repo, packages: packages}
}

// ListBookable backs the booking page: the catalog a signed-in member can
// pick from.
func (h *BookingsHandler) ListBookable(ctx *gin.Context) {
	cctx, cancel := config.WithTimeout(2 * time.Second)
	defer cancel()

	pkgs, err := h.packages.List(cctx)

	if err != nil {
		RespondInternal(ctx, "Could not list packages")
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"items": pkgs,
		"count": len(pkgs),
	})
}

func (h *BookingsHandler) Book(ctx *gin.Context) {
	var req booking.CreateBookingRequest

	if !BindJSON(ctx, &req) {
		return
	}

	// resolved identity is the owner, never the payload
	userID, ok := middlewares.UserIDFromContext(ctx)

	if !ok || userID == "" {
		RespondUnAuthorized(ctx, "unauthorized", "Missing identity")
		return
	}

	req.UserID = userID

	cctx, cancel := config.WithTimeout(2 * time.Second)
	defer cancel()

	b, err := h.repo.Create(cctx, req)

	if err != nil {
		if errors.Is(err, membership.ErrNotFound) {
			RespondNotFound(ctx, "Package not found")
			return
		}

		RespondInternal(ctx, "Could not book package")
		return
	}

	ctx.JSON(http.StatusCreated, b)
}

func (h *BookingsHandler) MyBookings(ctx *gin.Context) {
	userID, ok := middlewares.UserIDFromContext(ctx)

	if !ok || userID == "" {
		RespondUnAuthorized(ctx, "unauthorized", "Missing identity")
		return
	}

	cctx, cancel := config.WithTimeout(2 * time.Second)
	defer cancel()

	bookings, err := h.repo.ListForUser(cctx, userID)

	if err != nil {
		RespondInternal(ctx, "Could not list bookings")
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"items": bookings,
		"count": len(bookings),
	})
}

// AllBookings is admin-only; the router guards it.
func (h *BookingsHandler) AllBookings(ctx *gin.Context) {
	cctx, cancel := config.WithTimeout(2 * time.Second)
	defer cancel()

	bookings, err := h.repo.ListAll(cctx)

	if err != nil {
		RespondInternal(ctx, "Could not list bookings")
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"items": bookings,
		"count": len(bookings),
	})
}
