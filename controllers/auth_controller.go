package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"

	"github.com/jordisipkens/spiral-race/dto"
	"github.com/jordisipkens/spiral-race/utils"
)

// AdminPasswordHash is the bcrypt hash admin logins are checked against,
// set from config at startup. Empty means admin login is unconfigured.
var AdminPasswordHash string

const adminCookieName = "admin_token"

// AdminLogin exchanges the event password for the admin session cookie.
func AdminLogin(c *gin.Context) {
	var req dto.AdminLoginReq
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Error(c, http.StatusBadRequest, 1001, "password is required")
		return
	}

	if AdminPasswordHash == "" {
		utils.Error(c, http.StatusInternalServerError, 5000, "admin password not configured")
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(AdminPasswordHash), []byte(req.Password)); err != nil {
		utils.Error(c, http.StatusUnauthorized, 4001, "invalid password")
		return
	}

	token, err := utils.GenerateAdminToken()
	if err != nil {
		utils.Error(c, http.StatusInternalServerError, 5000, "failed to create session token")
		return
	}

	c.SetSameSite(http.SameSiteStrictMode)
	c.SetCookie(adminCookieName, token, 60*60*24, "/", "", false, true)
	utils.Success(c, "logged in", nil)
}

// AdminCheckAuth reports whether the caller holds a valid session cookie.
func AdminCheckAuth(c *gin.Context) {
	authenticated := false
	if token, err := c.Cookie(adminCookieName); err == nil && token != "" {
		if _, err := utils.ParseAdminToken(token); err == nil {
			authenticated = true
		}
	}
	utils.Success(c, "success", gin.H{"authenticated": authenticated})
}

// AdminLogout clears the session cookie.
func AdminLogout(c *gin.Context) {
	c.SetSameSite(http.SameSiteStrictMode)
	c.SetCookie(adminCookieName, "", -1, "/", "", false, true)
	utils.Success(c, "logged out", nil)
}
