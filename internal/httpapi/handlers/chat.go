package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

type sendChatReq struct {
	Content string `json:"content"`
}

// SendChat stores the user message and the bot reply, and returns the reply.
func (h *Handler) SendChat(c *gin.Context) {
	id, _ := loginIDFromContext(c)

	var req sendChatReq
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, 10001, "invalid json")
		return
	}
	if strings.TrimSpace(req.Content) == "" {
		fail(c, http.StatusOK, 10005, "content required")
		return
	}

	from := id
	in := message{Content: req.Content, CreatedAt: h.createdAt(), From: &from}

	to := id
	reply := message{Content: h.Cfg.Reply(req.Content), CreatedAt: h.createdAt(), To: &to}

	h.mu.Lock()
	h.messages[id] = append(h.messages[id], in, reply)
	h.mu.Unlock()

	ok(c, reply)
}

func (h *Handler) History(c *gin.Context) {
	id, _ := loginIDFromContext(c)

	h.mu.RLock()
	msgs := make([]message, len(h.messages[id]))
	copy(msgs, h.messages[id])
	h.mu.RUnlock()

	ok(c, msgs)
}
