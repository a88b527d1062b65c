package membership

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// Package is a bookable gym offering, e.g. "Gold" for 3 months.
type Package struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	Price       float64   `json:"price"`
	Duration    string    `json:"duration"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

var ErrNotFound = errors.New("package not found")

// raised on the package name unique constraint.
var ErrNameTaken = errors.New("package name already taken")

type CreatePackageRequest struct {
	Name        string  `json:"name" binding:"required,min=2,max=150"`
	Description string  `json:"description" binding:"omitempty,max=300"`
	Price       float64 `json:"price" binding:"gte=0"`
	Duration    string  `json:"duration" binding:"required,max=100"`
}

// a full update payload, same shape as create.
type UpdatePackageRequest struct {
	Name        string  `json:"name" binding:"required,min=2,max=150"`
	Description string  `json:"description" binding:"omitempty,max=300"`
	Price       float64 `json:"price" binding:"gte=0"`
	Duration    string  `json:"duration" binding:"required,max=100"`
}

// A factory to build a Package from the incoming DTO

func NewFromCreateRequest(req CreatePackageRequest) Package {
	now := time.Now().UTC()
	return Package{
		ID:          uuid.NewString(),
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		Duration:    req.Duration,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}
