package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Home is the JSON rendering of the landing page.
func Home(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, gin.H{
		"service":  "gymhub",
		"packages": "/packages",
		"register": "/register",
		"login":    "/login",
	})
}

// AdminHome is the admin landing; the router guards it behind the admin gate.
func AdminHome(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, gin.H{
		"addPackage":     "/admin/add_package",
		"managePackages": "/admin/manage_packages",
		"allBookings":    "/all_bookings",
	})
}
