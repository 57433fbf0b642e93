package handlers

import (
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
)

type Config struct {
	JWTSecret string
	TokenTTL  time.Duration
	// Reply produces the bot's answer to a user message.
	Reply func(content string) string
	Now   func() time.Time
}

type user struct {
	LoginID      string
	Nickname     string
	PasswordHash []byte
}

type message struct {
	Content   string  `json:"content"`
	CreatedAt string  `json:"createdAt"`
	From      *string `json:"from"`
	To        *string `json:"to"`
}

type Handler struct {
	Cfg Config

	mu       sync.RWMutex
	users    map[string]user
	messages map[string][]message
}

func NewHandler(cfg Config) *Handler {
	if cfg.JWTSecret == "" {
		cfg.JWTSecret = "dev-secret-change-me"
	}
	if cfg.TokenTTL <= 0 {
		cfg.TokenTTL = 24 * time.Hour
	}
	if cfg.Reply == nil {
		cfg.Reply = func(content string) string { return "You said: " + content }
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	return &Handler{
		Cfg:      cfg,
		users:    make(map[string]user),
		messages: make(map[string][]message),
	}
}

func ok(c *gin.Context, data any) {
	c.JSON(http.StatusOK, gin.H{
		"code":    0,
		"message": "",
		"data":    data,
	})
}

func fail(c *gin.Context, httpStatus int, code int, msg string) {
	c.JSON(httpStatus, gin.H{
		"code":    code,
		"message": msg,
		"data":    nil,
	})
}

// createdAt is sent as a numeric string, which is what the real service does
// for stored records.
func (h *Handler) createdAt() string {
	return strconv.FormatInt(h.Cfg.Now().UnixMilli(), 10)
}
