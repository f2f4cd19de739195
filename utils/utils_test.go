package utils

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateDashlessUUID(t *testing.T) {
	uuid := GenerateDashlessUUID()

	// Check length (should be 32 characters)
	assert.Len(t, uuid, 32)
	assert.False(t, strings.Contains(uuid, "-"), "Generated UUID should not contain dashes, got %s", uuid)
	assert.Regexp(t, `^[a-f0-9]{32}$`, uuid)

	// Product IDs are the sole identity key, so two calls must never collide.
	seen := make(map[string]struct{}, 1000)
	for i := 0; i < 1000; i++ {
		id := GenerateDashlessUUID()
		_, dup := seen[id]
		require.False(t, dup, "duplicate id generated: %s", id)
		seen[id] = struct{}{}
	}
}

// Helper function to create a test Gin context
func createTestContext() (*gin.Context, *httptest.ResponseRecorder) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest(http.MethodGet, "/products", nil)
	return c, w
}

func TestGinError(t *testing.T) {
	c, w := createTestContext()
	testMsg := "Generic error"
	testCode := http.StatusTeapot // Use a distinct code

	GinError(c, testCode, testMsg)

	assert.Equal(t, testCode, w.Code)

	var response APIError
	err := json.Unmarshal(w.Body.Bytes(), &response)
	assert.NoError(t, err)
	assert.Equal(t, testMsg, response.Error)
	assert.True(t, c.IsAborted(), "Context should be aborted")
}

func TestGinErrorHelpers(t *testing.T) {
	testCases := []struct {
		name       string
		helperFunc func(*gin.Context, string)
		wantCode   int
		wantMsg    string
	}{
		{
			name:       "BadRequest",
			helperFunc: GinBadRequest,
			wantCode:   http.StatusBadRequest,
			wantMsg:    "Bad request test",
		},
		{
			name:       "TooManyRequests",
			helperFunc: GinTooManyRequests,
			wantCode:   http.StatusTooManyRequests,
			wantMsg:    "Slow down",
		},
		{
			name:       "NotFound",
			helperFunc: GinNotFound,
			wantCode:   http.StatusNotFound,
			wantMsg:    "Not found test",
		},
		{
			name:       "InternalServerError",
			helperFunc: GinInternalServerError,
			wantCode:   http.StatusInternalServerError,
			wantMsg:    "Internal server error test",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			c, w := createTestContext()
			tc.helperFunc(c, tc.wantMsg)

			assert.Equal(t, tc.wantCode, w.Code)

			var response APIError
			err := json.Unmarshal(w.Body.Bytes(), &response)
			assert.NoError(t, err)
			assert.Equal(t, tc.wantMsg, response.Error)
			assert.True(t, c.IsAborted(), "Context should be aborted")
		})
	}
}