package router

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestRouter_DefaultVersion(t *testing.T) {
	gin.SetMode(gin.TestMode)
	engine := gin.New()

	group := NewDomainGroup("planning", "/planning")
	group.GET("/ping", func(c *gin.Context) {
		c.String(http.StatusOK, "pong")
	})

	r := NewRouter(engine)
	r.Register(group)
	r.Setup()

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/api/v1/planning/ping", nil)
	engine.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "pong", w.Body.String())
}

func TestRouter_CustomVersion(t *testing.T) {
	gin.SetMode(gin.TestMode)
	engine := gin.New()

	group := NewDomainGroup("planning", "/planning")
	group.GET("/ping", func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	r := NewRouter(engine, WithAPIVersion("v2"))
	r.Register(group)
	r.Setup()

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/api/v2/planning/ping", nil)
	engine.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)

	w = httptest.NewRecorder()
	req, _ = http.NewRequest(http.MethodGet, "/api/v1/planning/ping", nil)
	engine.ServeHTTP(w, req)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestDomainGroup_AllMethods(t *testing.T) {
	gin.SetMode(gin.TestMode)
	engine := gin.New()

	ok := func(c *gin.Context) { c.Status(http.StatusOK) }

	group := NewDomainGroup("inventory", "/inventory")
	group.GET("/stock", ok)
	group.POST("/stock", ok)
	group.PUT("/stock/:id", ok)
	group.DELETE("/stock/:id", ok)

	NewRouter(engine).Register(group).Setup()

	for _, tc := range []struct {
		method string
		path   string
	}{
		{http.MethodGet, "/api/v1/inventory/stock"},
		{http.MethodPost, "/api/v1/inventory/stock"},
		{http.MethodPut, "/api/v1/inventory/stock/1"},
		{http.MethodDelete, "/api/v1/inventory/stock/1"},
	} {
		w := httptest.NewRecorder()
		req, _ := http.NewRequest(tc.method, tc.path, nil)
		engine.ServeHTTP(w, req)
		assert.Equal(t, http.StatusOK, w.Code, "%s %s", tc.method, tc.path)
	}
}

func TestDomainGroup_Middleware(t *testing.T) {
	gin.SetMode(gin.TestMode)
	engine := gin.New()

	var order []string
	group := NewDomainGroup("planning", "/planning")
	group.Use(func(c *gin.Context) {
		order = append(order, "middleware")
		c.Next()
	})
	group.GET("/ping", func(c *gin.Context) {
		order = append(order, "handler")
		c.Status(http.StatusOK)
	})

	NewRouter(engine).Register(group).Setup()

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/api/v1/planning/ping", nil)
	engine.ServeHTTP(w, req)

	assert.Equal(t, []string{"middleware", "handler"}, order)
}

func TestDomainGroup_Accessors(t *testing.T) {
	group := NewDomainGroup("reports", "/reports")
	assert.Equal(t, "reports", group.Name())
	assert.Equal(t, "/reports", group.Prefix())
}
