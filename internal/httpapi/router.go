// Package httpapi serves an in-memory rendition of the chat REST API. It is
// test tooling for the client packages, not a product backend.
package httpapi

import (
	"net/http"
	"net/http/httptest"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/suPer8Hu/gopherchat/internal/httpapi/handlers"
)

func NewRouter(h *handlers.Handler, hits *Hits) *gin.Engine {
	gin.SetMode(gin.TestMode)

	r := gin.New()
	r.HandleMethodNotAllowed = true
	r.Use(gin.Recovery())
	if hits != nil {
		r.Use(hits.middleware())
	}

	r.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"code": 40400, "message": "route not found", "data": nil})
	})

	r.Use(h.Authenticate())

	r.POST("/api/user/reg", h.Register)
	r.POST("/api/user/login", h.Login)
	r.GET("/api/user/exists", h.Exists)
	r.GET("/api/user/profile", h.Profile)

	authGroup := r.Group("/api/chat")
	authGroup.Use(handlers.AuthRequired())
	authGroup.POST("", h.SendChat)
	authGroup.GET("/history", h.History)
	return r
}

// Hits counts requests per path and remembers the last Authorization header.
type Hits struct {
	mu       sync.Mutex
	byPath   map[string]int
	lastAuth map[string]string
}

func (h *Hits) middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		h.mu.Lock()
		if h.byPath == nil {
			h.byPath = make(map[string]int)
			h.lastAuth = make(map[string]string)
		}
		h.byPath[c.Request.URL.Path]++
		h.lastAuth[c.Request.URL.Path] = c.GetHeader("Authorization")
		h.mu.Unlock()
		c.Next()
	}
}

func (h *Hits) Count(path string) int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.byPath[path]
}

func (h *Hits) Total() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	n := 0
	for _, v := range h.byPath {
		n += v
	}
	return n
}

// LastAuth returns the Authorization header of the latest request to path,
// and whether the header was present at all.
func (h *Hits) LastAuth(path string) (string, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	v, ok := h.lastAuth[path]
	return v, ok && v != ""
}

// Stub is a running API stub.
type Stub struct {
	*httptest.Server
	Handler *handlers.Handler
	Hits    *Hits
}

func NewStub(cfg handlers.Config) *Stub {
	h := handlers.NewHandler(cfg)
	hits := &Hits{}
	return &Stub{
		Server:  httptest.NewServer(NewRouter(h, hits)),
		Handler: h,
		Hits:    hits,
	}
}
