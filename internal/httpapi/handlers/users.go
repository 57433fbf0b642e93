package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
)

type registerReq struct {
	LoginID  string `json:"loginId"`
	Nickname string `json:"nickname"`
	LoginPwd string `json:"loginPwd"`
}

type loginReq struct {
	LoginID  string `json:"loginId"`
	LoginPwd string `json:"loginPwd"`
}

func (h *Handler) Register(c *gin.Context) {
	var req registerReq
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, 10001, "invalid json")
		return
	}
	req.LoginID = strings.TrimSpace(req.LoginID)
	if req.LoginID == "" || req.Nickname == "" || req.LoginPwd == "" {
		fail(c, http.StatusOK, 10002, "loginId, nickname and loginPwd required")
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.LoginPwd), bcrypt.MinCost)
	if err != nil {
		fail(c, http.StatusInternalServerError, 20002, "failed to hash password")
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	if _, exists := h.users[req.LoginID]; exists {
		fail(c, http.StatusOK, 10003, "login id already exists")
		return
	}
	h.users[req.LoginID] = user{LoginID: req.LoginID, Nickname: req.Nickname, PasswordHash: hash}

	ok(c, gin.H{"loginId": req.LoginID, "nickname": req.Nickname})
}

// Login puts the raw token in the Authorization response header.
func (h *Handler) Login(c *gin.Context) {
	var req loginReq
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, 10001, "invalid json")
		return
	}

	h.mu.RLock()
	u, found := h.users[req.LoginID]
	h.mu.RUnlock()
	if !found || bcrypt.CompareHashAndPassword(u.PasswordHash, []byte(req.LoginPwd)) != nil {
		fail(c, http.StatusOK, 10004, "wrong login id or password")
		return
	}

	token, err := h.signToken(u.LoginID)
	if err != nil {
		fail(c, http.StatusInternalServerError, 20003, "failed to sign token")
		return
	}

	c.Header("Authorization", token)
	ok(c, gin.H{"loginId": u.LoginID, "nickname": u.Nickname})
}

func (h *Handler) Exists(c *gin.Context) {
	id := c.Query("loginId")
	h.mu.RLock()
	_, found := h.users[id]
	h.mu.RUnlock()
	ok(c, found)
}

// Profile answers unauthenticated callers with a null user instead of 401.
func (h *Handler) Profile(c *gin.Context) {
	id, authed := loginIDFromContext(c)
	if !authed {
		fail(c, http.StatusOK, 401, "not logged in")
		return
	}
	h.mu.RLock()
	u := h.users[id]
	h.mu.RUnlock()
	ok(c, gin.H{"loginId": u.LoginID, "nickname": u.Nickname})
}

// Seed registers a user directly, bypassing the HTTP layer.
func (h *Handler) Seed(loginID, nickname, password string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		return err
	}
	h.mu.Lock()
	h.users[loginID] = user{LoginID: loginID, Nickname: nickname, PasswordHash: hash}
	h.mu.Unlock()
	return nil
}

// IssueToken signs a token for loginID as Login would.
func (h *Handler) IssueToken(loginID string) (string, error) {
	return h.signToken(loginID)
}
