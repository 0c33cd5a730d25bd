package handlers

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/m-mizutani/goerr/v2"
	"github.com/stretchr/testify/assert"

	"grcwalk/internal/models"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func TestFailMapsErrors(t *testing.T) {
	cases := []struct {
		name   string
		err    error
		status int
		body   string
	}{
		{"validation", models.NewValidationError("likelihood must be at most 5"), http.StatusBadRequest, `{"error":"likelihood must be at most 5"}`},
		{"wrapped validation", goerr.Wrap(models.NewValidationError("name is required"), "create"), http.StatusBadRequest, `{"error":"name is required"}`},
		{"not found", goerr.Wrap(models.ErrNotFound, "risk not found", goerr.V("id", "x")), http.StatusNotFound, `{"error":"Risk not found"}`},
		{"conflict", goerr.Wrap(models.ErrConflict, "duplicate"), http.StatusConflict, `{"error":"Risk already exists"}`},
		{"unauthorized", models.ErrUnauthorized, http.StatusUnauthorized, `{"error":"invalid username or password"}`},
		{"internal", errors.New("connection refused"), http.StatusInternalServerError, `{"error":"internal server error"}`},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)
			c.Request = httptest.NewRequest(http.MethodGet, "/", nil)

			fail(c, "Risk", tc.err)

			assert.Equal(t, tc.status, w.Code)
			assert.JSONEq(t, tc.body, w.Body.String())
		})
	}
}

func TestQueryInt(t *testing.T) {
	cases := []struct {
		target string
		want   int
		ok     bool
	}{
		{"/?limit=3", 3, true},
		{"/", 5, true},
		{"/?limit=0", 0, true},
		{"/?limit=-1", 0, false},
		{"/?limit=ten", 0, false},
	}
	for _, tc := range cases {
		t.Run(tc.target, func(t *testing.T) {
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)
			c.Request = httptest.NewRequest(http.MethodGet, tc.target, nil)

			n, ok := queryInt(c, "limit", 5)
			assert.Equal(t, tc.ok, ok)
			assert.Equal(t, tc.want, n)
			if !tc.ok {
				assert.Equal(t, http.StatusBadRequest, w.Code)
			}
		})
	}
}
