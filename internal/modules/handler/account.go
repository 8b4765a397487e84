package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/securedoc-app/securedoc/internal/middleware"
	"github.com/securedoc-app/securedoc/internal/modules/serializer"
	"github.com/securedoc-app/securedoc/internal/modules/service"
)

type AccountHandler struct {
	svc service.AccountService
}

func NewAccountHandler(s service.AccountService) *AccountHandler {
	return &AccountHandler{svc: s}
}

// Me godoc
//
//	@Summary		Current user
//	@Description	Echo the authenticated identity
//	@Tags			account
//	@Produce		json
//	@Security		BearerAuth
//	@Success		200	{object}	serializer.Response{data=identity.User}
//	@Router			/me [get]
func (h *AccountHandler) Me(c *gin.Context) {
	user := middleware.CurrentUser(c)
	if user == nil {
		c.JSON(http.StatusUnauthorized, serializer.CheckLogin())
		return
	}

	c.JSON(http.StatusOK, serializer.Response{Data: user})
}

// Stats godoc
//
//	@Summary		Account stats
//	@Description	Project and upload totals for the authenticated user
//	@Tags			account
//	@Produce		json
//	@Security		BearerAuth
//	@Success		200	{object}	serializer.Response{data=service.AccountStats}
//	@Router			/me/stats [get]
func (h *AccountHandler) Stats(c *gin.Context) {
	user := middleware.CurrentUser(c)
	if user == nil {
		c.JSON(http.StatusUnauthorized, serializer.CheckLogin())
		return
	}

	stats, err := h.svc.Stats(c.Request.Context(), user.Sub)
	if err != nil {
		c.JSON(serializer.ServiceErr(err))
		return
	}

	c.JSON(http.StatusOK, serializer.Response{Data: stats})
}
