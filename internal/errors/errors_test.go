package errors

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestIsValidUUID(t *testing.T) {
	assert.True(t, IsValidUUID("6f1e8f9a-4a5b-4c6d-8e9f-0a1b2c3d4e5f"))
	assert.False(t, IsValidUUID("not-a-uuid"))
	assert.False(t, IsValidUUID(""))
	assert.False(t, IsValidUUID("6f1e8f9a-4a5b-4c6d-8e9f"))
}

func TestValidatePathUUID_MalformedIDIsNotFound(t *testing.T) {
	gin.SetMode(gin.TestMode)

	router := gin.New()
	router.GET("/thing/:id", func(c *gin.Context) {
		id, ok := ValidatePathUUID(c, "id", "thing")
		if !ok {
			return
		}

		c.JSON(http.StatusOK, gin.H{"id": id})
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/thing/definitely-not-a-uuid", nil)
	router.ServeHTTP(w, req)

	// malformed ids are indistinguishable from missing resources
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "thing not found")
}

func TestValidatePathUUID_ValidIDPassesThrough(t *testing.T) {
	gin.SetMode(gin.TestMode)

	router := gin.New()
	router.GET("/thing/:id", func(c *gin.Context) {
		id, ok := ValidatePathUUID(c, "id", "thing")
		if !ok {
			return
		}

		c.JSON(http.StatusOK, gin.H{"id": id})
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/thing/6f1e8f9a-4a5b-4c6d-8e9f-0a1b2c3d4e5f", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "6f1e8f9a")
}
