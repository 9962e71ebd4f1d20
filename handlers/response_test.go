package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"pestcontrol/utils"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRespondErrorMapsKinds(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		err  error
		want int
	}{
		{utils.ValidationError("bad"), http.StatusBadRequest},
		{utils.ConflictError("dup"), http.StatusBadRequest},
		{utils.NotFoundError("gone"), http.StatusNotFound},
		{utils.AuthError("who"), http.StatusUnauthorized},
		{errors.New("boom"), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
		respondError(c, tt.err)

		assert.Equal(t, tt.want, w.Code, tt.err.Error())
		var env map[string]any
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
		assert.Equal(t, false, env["success"])
		assert.Equal(t, tt.err.Error(), env["error"])
	}
}
