package http

import (
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"net/url"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrlokans/library-manager/internal/auth"
	"github.com/mrlokans/library-manager/internal/charts"
	"github.com/mrlokans/library-manager/internal/config"
	"github.com/mrlokans/library-manager/internal/database"
	"github.com/mrlokans/library-manager/internal/database/books"
	"github.com/mrlokans/library-manager/internal/database/users"
	"github.com/mrlokans/library-manager/internal/entities"
	"github.com/mrlokans/library-manager/internal/services"
)

func setupTestRouter(t *testing.T) (*gin.Engine, *database.Database) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := database.NewDatabase(filepath.Join(t.TempDir(), "library.db"), false)
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	sqlDB, err := db.SQLDB()
	require.NoError(t, err)
	sm, err := auth.NewSessionManager(sqlDB, config.Session{Lifetime: time.Hour})
	require.NoError(t, err)

	library := services.NewLibraryService(users.NewRepository(db.DB), books.NewRepository(db.DB), nil)
	router := NewRouter(RouterConfig{
		Library:        library,
		Database:       db,
		SessionManager: sm,
		Charts:         charts.Options{Width: 320, Height: 240},
		Version:        "test",
	})
	return router, db
}

// browser drives the screens like a user agent: it keeps cookies and
// follows the redirect after every form post.
type browser struct {
	t       *testing.T
	client  *http.Client
	baseURL string
}

func newBrowser(t *testing.T, router *gin.Engine) *browser {
	t.Helper()
	srv := httptest.NewServer(router)
	t.Cleanup(srv.Close)

	jar, err := cookiejar.New(nil)
	require.NoError(t, err)

	return &browser{t: t, client: &http.Client{Jar: jar}, baseURL: srv.URL}
}

func (b *browser) get() (*http.Response, string) {
	b.t.Helper()
	resp, err := b.client.Get(b.baseURL + "/")
	require.NoError(b.t, err)
	return resp, readBody(b.t, resp)
}

func (b *browser) post(action string, fields ...string) (*http.Response, string) {
	b.t.Helper()
	form := url.Values{"action": {action}}
	for i := 0; i+1 < len(fields); i += 2 {
		form.Set(fields[i], fields[i+1])
	}
	resp, err := b.client.PostForm(b.baseURL+"/", form)
	require.NoError(b.t, err)
	return resp, readBody(b.t, resp)
}

func readBody(t *testing.T, resp *http.Response) string {
	t.Helper()
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return string(body)
}

func (b *browser) registerAndLogin(username, email, password string) {
	b.t.Helper()
	b.post("register_clicked")
	b.post("submit", "username", username, "email", email, "password", password)
	_, body := b.post("submit", "email", email, "password", password)
	require.Contains(b.t, body, "Welcome, "+username+"!")
}

func TestScreens_NewSessionShowsHome(t *testing.T) {
	router, _ := setupTestRouter(t)
	b := newBrowser(t, router)

	resp, body := b.get()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, body, "Personal Library Manager")
	assert.Contains(t, body, `value="login_clicked"`)
	assert.Contains(t, body, `value="register_clicked"`)
	assert.NotEmpty(t, resp.Header.Get(RequestIDHeader))
}

func TestScreens_PostRedirectsToView(t *testing.T) {
	router, _ := setupTestRouter(t)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader("action=login_clicked"))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/", w.Header().Get("Location"))
	assert.NotEmpty(t, w.Result().Cookies(), "the redirect must carry the session cookie")
}

func TestScreens_FullJourney(t *testing.T) {
	router, _ := setupTestRouter(t)
	b := newBrowser(t, router)

	_, body := b.post("register_clicked")
	assert.Contains(t, body, "<h1>Register</h1>")

	_, body = b.post("submit", "username", "alice", "email", "alice@x.com", "password", "pw1")
	assert.Contains(t, body, "<h1>Login</h1>")
	assert.Contains(t, body, "Registration successful! Please login.")

	_, body = b.post("submit", "email", "alice@x.com", "password", "pw1")
	assert.Contains(t, body, "Welcome, alice!")
	assert.Contains(t, body, "Login successful!")

	_, body = b.post("add_book_clicked")
	assert.Contains(t, body, "Add a New Book")

	_, body = b.post("submit", "title", "Dune", "author", "Herbert", "genre", "SciFi", "status", "Reading")
	assert.Contains(t, body, "Book added successfully!")
	assert.Contains(t, body, "Add a New Book", "adding a book stays on the form")

	_, body = b.post("back")
	assert.Contains(t, body, "Welcome, alice!")

	_, body = b.post("view_books_clicked")
	assert.Contains(t, body, "Your Library")
	assert.Contains(t, body, "<td>Dune</td><td>Herbert</td><td>SciFi</td><td>Reading</td>")
	assert.Contains(t, body, "Books by Genre")
	assert.Contains(t, body, "data:image/png;base64,")

	resp, csv := b.post("download_csv")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, `attachment; filename="alice_library.csv"`, resp.Header.Get("Content-Disposition"))
	assert.Equal(t, "text/csv", resp.Header.Get("Content-Type"))
	assert.Equal(t, "Title,Author,Genre,Status\nDune,Herbert,SciFi,Reading\n", csv)

	resp, pdf := b.post("download_pdf")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, `attachment; filename="library.pdf"`, resp.Header.Get("Content-Disposition"))
	assert.Equal(t, "application/pdf", resp.Header.Get("Content-Type"))
	assert.True(t, strings.HasPrefix(pdf, "%PDF-"))

	_, body = b.post("back")
	assert.Contains(t, body, "Welcome, alice!")

	_, body = b.post("logout")
	assert.Contains(t, body, "Personal Library Manager")

	_, body = b.get()
	assert.Contains(t, body, "Personal Library Manager")
	assert.NotContains(t, body, "Welcome, alice!")
}

func TestScreens_RegisterInvalidInput(t *testing.T) {
	router, db := setupTestRouter(t)
	b := newBrowser(t, router)
	b.post("register_clicked")

	resp, body := b.post("submit", "username", "bob", "email", "not-an-email", "password", "x")

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, body, "Invalid input")
	assert.Contains(t, body, "<h1>Register</h1>")
	assert.Contains(t, body, `value="bob"`, "entered values are kept")

	var count int64
	require.NoError(t, db.DB.Model(&entities.User{}).Count(&count).Error)
	assert.Zero(t, count)

	_, body = b.get()
	assert.Contains(t, body, "<h1>Register</h1>", "a failed submit does not navigate")
}

func TestScreens_LoginFailure(t *testing.T) {
	router, _ := setupTestRouter(t)
	b := newBrowser(t, router)
	b.post("register_clicked")
	b.post("submit", "username", "alice", "email", "alice@x.com", "password", "pw1")

	for _, creds := range [][2]string{{"alice@x.com", "wrong"}, {"nobody@x.com", "pw1"}} {
		resp, body := b.post("submit", "email", creds[0], "password", creds[1])

		assert.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Contains(t, body, "Invalid email or password")
		assert.Contains(t, body, "<h1>Login</h1>")
	}
}

func TestScreens_AddBookMissingFields(t *testing.T) {
	router, db := setupTestRouter(t)
	b := newBrowser(t, router)
	b.registerAndLogin("alice", "alice@x.com", "pw1")
	b.post("add_book_clicked")

	_, body := b.post("submit", "title", "Dune", "author", "", "genre", "SciFi", "status", "Read")

	assert.Contains(t, body, "All fields are required")
	assert.Contains(t, body, `value="Dune"`)

	var count int64
	require.NoError(t, db.DB.Model(&entities.Book{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestScreens_EmptyLibrary(t *testing.T) {
	router, _ := setupTestRouter(t)
	b := newBrowser(t, router)
	b.registerAndLogin("alice", "alice@x.com", "pw1")

	_, body := b.post("view_books_clicked")

	assert.Contains(t, body, "No books found. Add some!")
	assert.NotContains(t, body, "download_csv")
	assert.NotContains(t, body, "data:image/png")

	_, body = b.post("download_csv")
	assert.Contains(t, body, "No books found. Add some!")
}

func TestScreens_InvalidActionsAreIgnored(t *testing.T) {
	router, _ := setupTestRouter(t)
	b := newBrowser(t, router)

	for _, action := range []string{"logout", "view_books_clicked", "download_csv", "back", "bogus", ""} {
		resp, body := b.post(action)

		assert.Equal(t, http.StatusOK, resp.StatusCode, action)
		assert.Contains(t, body, "Personal Library Manager", action)
	}
}

func TestScreens_SessionsAreIsolated(t *testing.T) {
	router, _ := setupTestRouter(t)

	alice := newBrowser(t, router)
	alice.registerAndLogin("alice", "alice@x.com", "pw1")
	alice.post("add_book_clicked")
	alice.post("submit", "title", "Dune", "author", "Herbert", "genre", "SciFi", "status", "Reading")

	bob := newBrowser(t, router)
	_, body := bob.get()
	assert.Contains(t, body, "Personal Library Manager")

	bob.registerAndLogin("bob", "bob@x.com", "pw2")
	_, body = bob.post("view_books_clicked")
	assert.Contains(t, body, "No books found. Add some!")
	assert.NotContains(t, body, "Dune")

	_, body = alice.get()
	assert.Contains(t, body, "Add a New Book")
}

func TestHealthController_Status(t *testing.T) {
	t.Run("returns healthy when database is connected", func(t *testing.T) {
		router, _ := setupTestRouter(t)

		w := httptest.NewRecorder()
		req, _ := http.NewRequest("GET", "/health", nil)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"status": "healthy"`)
		assert.Contains(t, w.Body.String(), `"database": "ok"`)
		assert.Contains(t, w.Body.String(), `"version": "test"`)
	})

	t.Run("returns unhealthy when database is closed", func(t *testing.T) {
		router, db := setupTestRouter(t)
		require.NoError(t, db.Close())

		w := httptest.NewRecorder()
		req, _ := http.NewRequest("GET", "/health", nil)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusServiceUnavailable, w.Code)
		assert.Contains(t, w.Body.String(), `"status": "unhealthy"`)
	})

	t.Run("reports missing database", func(t *testing.T) {
		gin.SetMode(gin.TestMode)
		router := gin.New()
		router.GET("/health", NewHealthController(nil, "").Status)

		w := httptest.NewRecorder()
		req, _ := http.NewRequest("GET", "/health", nil)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "not configured")
	})
}

func TestPing(t *testing.T) {
	router, _ := setupTestRouter(t)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/ping", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"message":"pong"}`, w.Body.String())
}

func TestRequestIDMiddleware_ReusesIncomingID(t *testing.T) {
	router, _ := setupTestRouter(t)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/ping", nil)
	req.Header.Set(RequestIDHeader, "abc-123")
	router.ServeHTTP(w, req)

	assert.Equal(t, "abc-123", w.Header().Get(RequestIDHeader))
}
