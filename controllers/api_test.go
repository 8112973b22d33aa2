package controllers_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/jordisipkens/spiral-race/controllers"
	"github.com/jordisipkens/spiral-race/routes"
	"github.com/jordisipkens/spiral-race/services"
	"github.com/jordisipkens/spiral-race/testutil"
	"github.com/jordisipkens/spiral-race/utils"
)

const testAdminPassword = "hunter2"

func setupAPI(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	testutil.SetupDB(t)

	hash, err := bcrypt.GenerateFromPassword([]byte(testAdminPassword), bcrypt.MinCost)
	require.NoError(t, err)
	controllers.AdminPasswordHash = string(hash)

	services.Store = &services.LocalStorage{Dir: t.TempDir(), BaseURL: "http://test.local"}

	return routes.SetupRouter("")
}

func doJSON(t *testing.T, r *gin.Engine, method, path string, body interface{}, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	for _, cookie := range cookies {
		req.AddCookie(cookie)
	}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decodeResponse(t *testing.T, w *httptest.ResponseRecorder) utils.Response {
	t.Helper()
	var resp utils.Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp
}

func adminCookie(t *testing.T, r *gin.Engine) *http.Cookie {
	t.Helper()

	w := doJSON(t, r, http.MethodPost, "/api/v1/admin/auth", gin.H{"password": testAdminPassword})
	require.Equal(t, http.StatusOK, w.Code)

	for _, cookie := range w.Result().Cookies() {
		if cookie.Name == "admin_token" && cookie.Value != "" {
			return cookie
		}
	}
	t.Fatal("login response did not set the admin_token cookie")
	return nil
}
