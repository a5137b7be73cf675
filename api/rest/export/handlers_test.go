package export

import (
	"archive/zip"
	"bytes"
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/craftui/server/craftui/sessions"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSessionID = "6f1e8f9a-4a5b-4c6d-8e9f-0a1b2c3d4e5f"

type fakeGetter struct {
	sessions map[string]*sessions.Session
}

func (f *fakeGetter) Get(_ context.Context, sessionID, userID string) (*sessions.Session, error) {
	session, ok := f.sessions[sessionID]
	if !ok || session.UserID != userID {
		return nil, sessions.ErrSessionNotFound
	}

	return session, nil
}

func setupRouter(getter SessionGetter, userID string) *gin.Engine {
	gin.SetMode(gin.TestMode)

	router := gin.New()
	router.Use(func(c *gin.Context) {
		c.Set("user_id", userID)
	})
	router.GET("/export/:id", ExportSessionHandler(getter))

	return router
}

func TestExport_ReturnsZipWithLatestCode(t *testing.T) {
	getter := &fakeGetter{sessions: map[string]*sessions.Session{
		testSessionID: {
			ID:     testSessionID,
			UserID: "user-1",
			Title:  "pricing table",
			ChatHistory: sessions.ChatHistory{
				{Code: sessions.CodeSnapshot{Markup: "<v1/>", Style: ".v1 {}"}},
				{Code: sessions.CodeSnapshot{Markup: "<v2/>", Style: ".v2 {}"}},
			},
		},
	}}

	router := setupRouter(getter, "user-1")

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/export/"+testSessionID, nil)
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/zip", w.Header().Get("Content-Type"))
	assert.Contains(t, w.Header().Get("Content-Disposition"), `"pricing table.zip"`)

	reader, err := zip.NewReader(bytes.NewReader(w.Body.Bytes()), int64(w.Body.Len()))
	require.NoError(t, err)

	files := map[string]string{}
	for _, f := range reader.File {
		rc, err := f.Open()
		require.NoError(t, err)

		content, err := io.ReadAll(rc)
		require.NoError(t, err)
		require.NoError(t, rc.Close())

		files[f.Name] = string(content)
	}

	assert.Equal(t, "<v2/>", files["pricing table/index.jsx"])
	assert.Equal(t, ".v2 {}", files["pricing table/styles.css"])
}

func TestExport_EmptyHistoryYieldsEmptyFiles(t *testing.T) {
	getter := &fakeGetter{sessions: map[string]*sessions.Session{
		testSessionID: {ID: testSessionID, UserID: "user-1", Title: "Untitled"},
	}}

	router := setupRouter(getter, "user-1")

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/export/"+testSessionID, nil)
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	reader, err := zip.NewReader(bytes.NewReader(w.Body.Bytes()), int64(w.Body.Len()))
	require.NoError(t, err)
	assert.Len(t, reader.File, 2)
}

func TestExport_OtherUsersSessionIsNotFound(t *testing.T) {
	getter := &fakeGetter{sessions: map[string]*sessions.Session{
		testSessionID: {ID: testSessionID, UserID: "user-2", Title: "theirs"},
	}}

	router := setupRouter(getter, "user-1")

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/export/"+testSessionID, nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestExport_MalformedIDIsNotFound(t *testing.T) {
	router := setupRouter(&fakeGetter{}, "user-1")

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/export/not-a-uuid", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}
