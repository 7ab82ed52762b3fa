package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// HomeResponse identifies the API.
type HomeResponse struct {
	Service string `json:"service"`
	Version string `json:"version"`
}

// getHome godoc
// @Summary API identification
// @Description Returns the service name and API version. Does not require a token.
// @Tags root
// @Produce json
// @Success 200 {object} HomeResponse
// @Router / [get]
func getHome(c *gin.Context) {
	c.JSON(http.StatusOK, HomeResponse{Service: "ISP Bookkeeping API", Version: "v1"})
}
