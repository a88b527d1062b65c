package handlers

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/ironhall/gymhub/internal/config"
	"github.com/ironhall/gymhub/internal/domain/membership"
)

type PackagesStore interface {
	Create(ctx context.Context, req membership.CreatePackageRequest) (membership.Package, error)
	List(ctx context.Context) ([]membership.Package, error)
	GetByID(ctx context.Context, id string) (membership.Package, error)
	Update(ctx context.Context, id string, req membership.UpdatePackageRequest) (membership.Package, error)
	Delete(ctx context.Context, id string) error
}

// PackageListCache is satisfied by a nil *cache.PackageCache, which behaves
// as a permanent miss.
type PackageListCache interface {
	GetList(ctx context.Context) ([]membership.Package, bool)
	SetList(ctx context.Context, pkgs []membership.Package)
	Invalidate(ctx context.Context)
}

type PackagesHandler struct {
	repo  PackagesStore
	cache PackageListCache
}

func NewPackagesHandler(repo PackagesStore, listCache PackageListCache) *PackagesHandler {
	return &PackagesHandler{repo: repo, cache: listCache}
}

// Public catalog

func (h *PackagesHandler) ListPackages(ctx *gin.Context) {
	cctx, cancel := config.WithTimeout(2 * time.Second)
	defer cancel()

	if h.cache != nil {
		if pkgs, ok := h.cache.GetList(cctx); ok {
			RespondJSONWithETag(ctx, http.StatusOK, gin.H{
				"items": pkgs,
				"count": len(pkgs),
			})
			return
		}
	}

	pkgs, err := h.repo.List(cctx)

	if err != nil {
		RespondInternal(ctx, "Could not list packages")
		return
	}

	if h.cache != nil {
		h.cache.SetList(cctx, pkgs)
	}

	RespondJSONWithETag(ctx, http.StatusOK, gin.H{
		"items": pkgs,
		"count": len(pkgs),
	})
}

func (h *PackagesHandler) GetPackageByID(ctx *gin.Context) {
	id := ctx.Param("id")

	if !isUUID(id) {
		RespondBadRequest(ctx, "package id must be a valid UUID", nil)
		return
	}

	cctx, cancel := config.WithTimeout(2 * time.Second)
	defer cancel()

	p, err := h.repo.GetByID(cctx, id)

	if err != nil {
		if errors.Is(err, membership.ErrNotFound) {
			RespondNotFound(ctx, "Package not found")
			return
		}
		RespondInternal(ctx, "Could not fetch package")
		return
	}

	RespondJSONWithETag(ctx, http.StatusOK, p)
}

// Admin catalog management

func (h *PackagesHandler) CreatePackage(ctx *gin.Context) {
	var req membership.CreatePackageRequest

	if !BindJSON(ctx, &req) {
		return
	}

	cctx, cancel := config.WithTimeout(2 * time.Second)
	defer cancel()

	p, err := h.repo.Create(cctx, req)

	if err != nil {
		if errors.Is(err, membership.ErrNameTaken) {
			RespondConflict(ctx, "name_taken", "A package with that name already exists.")
			return
		}

		RespondInternal(ctx, "Could not create package")
		return
	}

	if h.cache != nil {
		h.cache.Invalidate(cctx)
	}

	ctx.JSON(http.StatusCreated, p)
}

func (h *PackagesHandler) UpdatePackage(ctx *gin.Context) {
	id := ctx.Param("id")

	if !isUUID(id) {
		RespondBadRequest(ctx, "package id must be a valid UUID", nil)
		return
	}

	var req membership.UpdatePackageRequest

	if !BindJSON(ctx, &req) {
		return
	}

	cctx, cancel := config.WithTimeout(2 * time.Second)
	defer cancel()

	p, err := h.repo.Update(cctx, id, req)

	if err != nil {
		switch {
		case errors.Is(err, membership.ErrNotFound):
			RespondNotFound(ctx, "Package not found")
		case errors.Is(err, membership.ErrNameTaken):
			RespondConflict(ctx, "name_taken", "A package with that name already exists.")
		default:
			RespondInternal(ctx, "Could not update package")
		}
		return
	}

	if h.cache != nil {
		h.cache.Invalidate(cctx)
	}

	ctx.JSON(http.StatusOK, p)
}

func (h *PackagesHandler) DeletePackage(ctx *gin.Context) {
	id := ctx.Param("id")

	if !isUUID(id) {
		RespondBadRequest(ctx, "package id must be a valid UUID", nil)
		return
	}

	cctx, cancel := config.WithTimeout(2 * time.Second)
	defer cancel()

	err := h.repo.Delete(cctx, id)

	if err != nil {
		if errors.Is(err, membership.ErrNotFound) {
			RespondNotFound(ctx, "Package not found")
			return
		}

		RespondInternal(ctx, "Could not delete package")
		return
	}

	if h.cache != nil {
		h.cache.Invalidate(cctx)
	}

	ctx.Status(http.StatusNoContent)
}
