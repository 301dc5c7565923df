package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Abdullah149081/summer-camp-server/internal/service"
	"github.com/Abdullah149081/summer-camp-server/pkg/response"
)

// BannerHandler serves promotional banners.
type BannerHandler struct {
	service *service.BannerService
}

// NewBannerHandler constructs a banner handler.
func NewBannerHandler(svc *service.BannerService) *BannerHandler {
	return &BannerHandler{service: svc}
}

// List godoc
// @Summary List banners
// @Tags Banners
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /banner [get]
func (h *BannerHandler) List(c *gin.Context) {
	banners, err := h.service.List(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, banners, nil)
}
