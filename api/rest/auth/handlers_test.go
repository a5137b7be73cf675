package auth

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/craftui/server/craftui/users"
	"github.com/craftui/server/internal/auth"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeUserStore struct {
	byEmail map[string]*users.User
}

func newUserStore() *fakeUserStore {
	return &fakeUserStore{byEmail: map[string]*users.User{}}
}

func (f *fakeUserStore) Create(_ context.Context, email, name, passwordHash string) (*users.User, error) {
	if _, taken := f.byEmail[email]; taken {
		return nil, users.ErrEmailTaken
	}

	user := &users.User{
		ID:           "user-" + email,
		Email:        email,
		Name:         name,
		PasswordHash: passwordHash,
	}
	f.byEmail[email] = user

	return user, nil
}

func (f *fakeUserStore) FindByEmail(_ context.Context, email string) (*users.User, error) {
	user, ok := f.byEmail[email]
	if !ok {
		return nil, users.ErrUserNotFound
	}

	return user, nil
}

func setupRouter(store UserStore) *gin.Engine {
	gin.SetMode(gin.TestMode)

	router := gin.New()
	router.POST("/signup", SignupHandler(store))
	router.POST("/login", LoginHandler(store))
	router.POST("/logout", LogoutHandler())

	return router
}

func postJSON(router *gin.Engine, path string, payload any) *httptest.ResponseRecorder {
	body, _ := json.Marshal(payload) //nolint:errcheck

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	return w
}

func TestSignup_CreatesUserAndIssuesToken(t *testing.T) {
	os.Setenv( //nolint:errcheck // test fixture
	"JWT_SECRET", "test-secret-key-for-testing")
	defer os.Unsetenv( //nolint:errcheck // test cleanup
	"JWT_SECRET")

	store := newUserStore()
	router := setupRouter(store)

	w := postJSON(router, "/signup", SignupRequest{
		Email:    "new@example.com",
		Name:     "New User",
		Password: "supersecret",
	})

	require.Equal(t, http.StatusCreated, w.Code)

	var resp AuthResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "new@example.com", resp.User.Email)
	assert.NotEmpty(t, resp.Token)

	// password hash never leaves the server
	assert.NotContains(t, w.Body.String(), "password")

	// stored hash is bcrypt, not plaintext
	stored := store.byEmail["new@example.com"]
	assert.NotEqual(t, "supersecret", stored.PasswordHash)
	assert.True(t, auth.CheckPassword(stored.PasswordHash, "supersecret"))

	// token cookie is set alongside the JSON response
	cookies := w.Result().Cookies()
	require.NotEmpty(t, cookies)
	assert.Equal(t, auth.TokenCookie, cookies[0].Name)
	assert.Equal(t, resp.Token, cookies[0].Value)
}

func TestSignup_DuplicateEmailIsConflict(t *testing.T) {
	os.Setenv( //nolint:errcheck // test fixture
	"JWT_SECRET", "test-secret-key-for-testing")
	defer os.Unsetenv( //nolint:errcheck // test cleanup
	"JWT_SECRET")

	store := newUserStore()
	router := setupRouter(store)

	first := postJSON(router, "/signup", SignupRequest{Email: "dup@example.com", Password: "supersecret"})
	require.Equal(t, http.StatusCreated, first.Code)

	second := postJSON(router, "/signup", SignupRequest{Email: "dup@example.com", Password: "supersecret"})

	assert.Equal(t, http.StatusConflict, second.Code)
	assert.Contains(t, second.Body.String(), "email already registered")
}

func TestSignup_ShortPasswordRejected(t *testing.T) {
	router := setupRouter(newUserStore())

	w := postJSON(router, "/signup", SignupRequest{Email: "a@example.com", Password: "short"})

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestSignup_InvalidEmailRejected(t *testing.T) {
	router := setupRouter(newUserStore())

	w := postJSON(router, "/signup", SignupRequest{Email: "not-an-email", Password: "supersecret"})

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestLogin_Success(t *testing.T) {
	os.Setenv( //nolint:errcheck // test fixture
	"JWT_SECRET", "test-secret-key-for-testing")
	defer os.Unsetenv( //nolint:errcheck // test cleanup
	"JWT_SECRET")

	store := newUserStore()
	router := setupRouter(store)

	signup := postJSON(router, "/signup", SignupRequest{Email: "user@example.com", Password: "supersecret"})
	require.Equal(t, http.StatusCreated, signup.Code)

	w := postJSON(router, "/login", LoginRequest{Email: "user@example.com", Password: "supersecret"})

	require.Equal(t, http.StatusOK, w.Code)

	var resp AuthResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "user@example.com", resp.User.Email)
	assert.NotEmpty(t, resp.Token)
}

func TestLogin_WrongPassword(t *testing.T) {
	os.Setenv( //nolint:errcheck // test fixture
	"JWT_SECRET", "test-secret-key-for-testing")
	defer os.Unsetenv( //nolint:errcheck // test cleanup
	"JWT_SECRET")

	store := newUserStore()
	router := setupRouter(store)

	signup := postJSON(router, "/signup", SignupRequest{Email: "user@example.com", Password: "supersecret"})
	require.Equal(t, http.StatusCreated, signup.Code)

	w := postJSON(router, "/login", LoginRequest{Email: "user@example.com", Password: "wrong-password"})

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "invalid email or password")
}

func TestLogin_UnknownEmailGetsSameMessage(t *testing.T) {
	router := setupRouter(newUserStore())

	w := postJSON(router, "/login", LoginRequest{Email: "ghost@example.com", Password: "whatever1"})

	// same message as a wrong password, no account enumeration
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "invalid email or password")
}

func TestLogout_ClearsCookie(t *testing.T) {
	router := setupRouter(newUserStore())

	w := postJSON(router, "/logout", nil)

	require.Equal(t, http.StatusOK, w.Code)

	cookies := w.Result().Cookies()
	require.NotEmpty(t, cookies)
	assert.Equal(t, auth.TokenCookie, cookies[0].Name)
	assert.Empty(t, cookies[0].Value)
	assert.True(t, cookies[0].MaxAge < 0, "cookie should be expired")
}
