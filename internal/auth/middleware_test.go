package auth

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/library-manager/internal/database/users"
	"github.com/mrlokans/library-manager/internal/entities"
	"github.com/mrlokans/library-manager/internal/navigation"
)

type stubUsers map[uint]string

func (s stubUsers) CurrentUser(_ context.Context, id uint) (*entities.User, error) {
	name, ok := s[id]
	if !ok {
		return nil, users.ErrUserNotFound
	}
	return &entities.User{ID: id, Username: name}, nil
}

// flakyUsers fails every lookup with err until err is cleared.
type flakyUsers struct {
	stubUsers
	err error
}

func (f *flakyUsers) CurrentUser(ctx context.Context, id uint) (*entities.User, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.stubUsers.CurrentUser(ctx, id)
}

func setupMiddlewareRouter(t *testing.T, lookup UserLookup, seed navigation.State) (*gin.Engine, *http.Cookie) {
	t.Helper()
	sm := setupSessionManager(t)

	router := gin.New()
	router.Use(sm.SessionLoadSave())
	router.POST("/seed", func(c *gin.Context) {
		_ = sm.SaveState(c.Request.Context(), seed)
		c.Status(http.StatusNoContent)
	})

	protected := router.Group("/")
	protected.Use(NewMiddleware(lookup, sm, nil).Handler())
	protected.GET("/whoami", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"page":          GetState(c).Page,
			"user_id":       GetUserID(c),
			"username":      GetUsername(c),
			"authenticated": IsAuthenticated(c),
		})
	})

	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, httptest.NewRequest(http.MethodPost, "/seed", nil))
	cookie := sessionCookie(t, rr)
	if cookie == nil {
		t.Fatal("expected a session cookie")
	}
	return router, cookie
}

func whoami(router *gin.Engine, cookie *http.Cookie) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	req.AddCookie(cookie)
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)
	return rr
}

func TestMiddleware_LoggedInSession(t *testing.T) {
	seed := navigation.State{Page: navigation.PageMenu, User: &navigation.Identity{UserID: 1, Username: "stale"}}
	router, cookie := setupMiddlewareRouter(t, stubUsers{1: "alice"}, seed)

	rr := whoami(router, cookie)

	expected := `{"authenticated":true,"page":"menu","user_id":1,"username":"alice"}`
	if rr.Body.String() != expected {
		t.Errorf("Expected %s, got %s", expected, rr.Body.String())
	}
}

func TestMiddleware_UnknownUserResetsSession(t *testing.T) {
	seed := navigation.State{Page: navigation.PageViewBooks, User: &navigation.Identity{UserID: 9, Username: "ghost"}}
	router, cookie := setupMiddlewareRouter(t, stubUsers{}, seed)

	rr := whoami(router, cookie)

	expected := `{"authenticated":false,"page":"home","user_id":0,"username":""}`
	if rr.Body.String() != expected {
		t.Errorf("Expected %s, got %s", expected, rr.Body.String())
	}
}

func TestMiddleware_LookupFailureKeepsSession(t *testing.T) {
	seed := navigation.State{Page: navigation.PageViewBooks, User: &navigation.Identity{UserID: 1, Username: "alice"}}
	lookup := &flakyUsers{stubUsers: stubUsers{1: "alice"}, err: errors.New("database is locked")}
	router, cookie := setupMiddlewareRouter(t, lookup, seed)

	rr := whoami(router, cookie)

	if rr.Code != http.StatusInternalServerError {
		t.Errorf("Expected status %d, got %d", http.StatusInternalServerError, rr.Code)
	}

	lookup.err = nil
	rr = whoami(router, cookie)

	expected := `{"authenticated":true,"page":"view_books","user_id":1,"username":"alice"}`
	if rr.Code != http.StatusOK {
		t.Errorf("Expected status %d, got %d", http.StatusOK, rr.Code)
	}
	if rr.Body.String() != expected {
		t.Errorf("Expected %s, got %s", expected, rr.Body.String())
	}
}

func TestGetState_WithoutMiddleware(t *testing.T) {
	c, _ := gin.CreateTestContext(httptest.NewRecorder())

	if got := GetState(c); got != navigation.Initial() {
		t.Errorf("Expected initial state, got %+v", got)
	}
	if IsAuthenticated(c) {
		t.Error("Should not be authenticated without a session")
	}
}
