package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"storefront/models"
	"storefront/services"
	"storefront/utils"
)

type SessionController struct {
	Sessions *services.SessionService
	Secret   string
	Expiry   time.Duration
}

func NewSessionController(sessions *services.SessionService, secret string, expiry time.Duration) *SessionController {
	return &SessionController{Sessions: sessions, Secret: secret, Expiry: expiry}
}

// @Summary Open a storefront session
// @Description Called once per page load. Starts with the fallback catalog; the backend catalog replaces it as soon as it arrives.
// @Tags Session
// @Produce json
// @Success 201 {object} models.Response{data=models.SessionResponse}
// @Failure 500 {object} models.ErrorResponse
// @Router /store/session [post]
func (ctrl *SessionController) CreateSession(c *gin.Context) {
	session, err := ctrl.Sessions.Open(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	token, expiresAt, err := utils.GenerateSessionToken(ctrl.Secret, session.ID, ctrl.Expiry, time.Now())
	if err != nil {
		ctrl.Sessions.Close(session.ID)
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, models.Response{
		Success: true,
		Message: "Session created",
		Data: models.SessionResponse{
			Token:     token,
			SessionID: session.ID,
			ExpiresAt: expiresAt.Unix(),
		},
	})
}
