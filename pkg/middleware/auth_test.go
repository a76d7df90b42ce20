package middleware

import (
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/gin-gonic/gin"

	"tiendascan/pkg/logger"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	if err := logger.InitLogger(true, ""); err != nil {
		panic(err)
	}
	os.Exit(m.Run())
}

func newGuardedRouter(token string) *gin.Engine {
	router := gin.New()
	router.POST("/protegido", RequireAPIToken(token), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})
	return router
}

func TestRequireAPITokenRejectsMissingHeader(t *testing.T) {
	router := newGuardedRouter("secreto")

	req := httptest.NewRequest(http.MethodPost, "/protegido", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusUnauthorized)
	}
}

func TestRequireAPITokenRejectsWrongToken(t *testing.T) {
	router := newGuardedRouter("secreto")

	req := httptest.NewRequest(http.MethodPost, "/protegido", nil)
	req.Header.Set("Authorization", "Bearer otro")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusUnauthorized)
	}
}

func TestRequireAPITokenAcceptsValidToken(t *testing.T) {
	router := newGuardedRouter("secreto")

	req := httptest.NewRequest(http.MethodPost, "/protegido", nil)
	req.Header.Set("Authorization", "Bearer secreto")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusOK)
	}
}

func TestRequireAPITokenDisabledWhenEmpty(t *testing.T) {
	router := newGuardedRouter("")

	req := httptest.NewRequest(http.MethodPost, "/protegido", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusOK)
	}
}
