package handlers

import (
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"golang.org/x/oauth2"
)

const (
	sessionKeyAdmin = "admin"
	sessionKeyState = "oauth_state"
	authenticated   = "authenticated"
)

const githubUserURL = "https://api.github.com/user"

// Auth handles admin sign-in. Password login is enabled when a bcrypt hash
// is configured and GitHub login when OAuth is configured.
type Auth struct {
	passwordHash string
	oauth        *oauth2.Config
	githubLogin  string
	// afterLogin is where a successful GitHub sign-in is redirected.
	afterLogin string
	userURL    string
	logger     *zap.Logger
}

func NewAuth(passwordHash string, oauth *oauth2.Config, githubLogin, afterLogin string, logger *zap.Logger) *Auth {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Auth{
		passwordHash: passwordHash,
		oauth:        oauth,
		githubLogin:  githubLogin,
		afterLogin:   afterLogin,
		userURL:      githubUserURL,
		logger:       logger,
	}
}

func isAdmin(c *gin.Context) bool {
	return sessions.Default(c).Get(sessionKeyAdmin) == authenticated
}

// AuthRequired guards the admin API. The service has no login page, so an
// anonymous request always gets a JSON 401.
func AuthRequired(c *gin.Context) {
	if !isAdmin(c) {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}
	c.Next()
}

func signIn(c *gin.Context, method string) error {
	session := sessions.Default(c)
	session.Set(sessionKeyAdmin, authenticated)
	session.Set("method", method)
	return session.Save()
}

func (a *Auth) Login(c *gin.Context) {
	var req struct {
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Password is required"})
		return
	}
	if a.passwordHash == "" {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Password login is not configured"})
		return
	}
	if err := bcrypt.CompareHashAndPassword([]byte(a.passwordHash), []byte(req.Password)); err != nil {
		a.logger.Warn("admin login rejected", zap.String("ip", c.ClientIP()))
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid password"})
		return
	}
	if err := signIn(c, "password"); err != nil {
		a.logger.Error("save session", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save session"})
		return
	}
	a.logger.Info("admin signed in", zap.String("method", "password"), zap.String("ip", c.ClientIP()))
	c.JSON(http.StatusOK, gin.H{"success": true})
}

func (a *Auth) GithubLogin(c *gin.Context) {
	state, err := randomState()
	if err != nil {
		c.String(http.StatusInternalServerError, "Failed to start login")
		return
	}
	session := sessions.Default(c)
	session.Set(sessionKeyState, state)
	if err := session.Save(); err != nil {
		c.String(http.StatusInternalServerError, "Failed to save session")
		return
	}
	c.Redirect(http.StatusTemporaryRedirect, a.oauth.AuthCodeURL(state))
}

func (a *Auth) AuthCallback(c *gin.Context) {
	session := sessions.Default(c)
	expected, _ := session.Get(sessionKeyState).(string)
	session.Delete(sessionKeyState)
	if expected == "" || c.Query("state") != expected {
		_ = session.Save()
		c.String(http.StatusBadRequest, "Invalid OAuth state")
		return
	}

	token, err := a.oauth.Exchange(c.Request.Context(), c.Query("code"))
	if err != nil {
		a.logger.Warn("oauth exchange failed", zap.Error(err))
		_ = session.Save()
		c.String(http.StatusInternalServerError, "OAuth Exchange Failed")
		return
	}

	login, err := a.fetchLogin(c, token)
	if err != nil {
		a.logger.Warn("fetch github user failed", zap.Error(err))
		_ = session.Save()
		c.String(http.StatusBadGateway, "Failed to read GitHub user")
		return
	}
	if !strings.EqualFold(login, a.githubLogin) {
		a.logger.Warn("admin login rejected", zap.String("github_login", login))
		_ = session.Save()
		c.String(http.StatusForbidden, "This GitHub account is not allowed")
		return
	}

	if err := signIn(c, "github"); err != nil {
		c.String(http.StatusInternalServerError, "Failed to save session")
		return
	}
	a.logger.Info("admin signed in", zap.String("method", "github"), zap.String("github_login", login))
	if a.afterLogin == "" {
		c.JSON(http.StatusOK, gin.H{"success": true})
		return
	}
	c.Redirect(http.StatusFound, a.afterLogin)
}

func (a *Auth) fetchLogin(c *gin.Context, token *oauth2.Token) (string, error) {
	client := a.oauth.Client(c.Request.Context(), token)
	resp, err := client.Get(a.userURL)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("github user: unexpected status %s", resp.Status)
	}
	var user struct {
		Login string `json:"login"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&user); err != nil {
		return "", fmt.Errorf("decode github user: %w", err)
	}
	return user.Login, nil
}

func Logout(c *gin.Context) {
	session := sessions.Default(c)
	session.Clear()
	session.Options(sessions.Options{Path: "/", MaxAge: -1})
	_ = session.Save()
	c.JSON(http.StatusOK, gin.H{"success": true})
}

func Status(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"authenticated": isAdmin(c)})
}

func randomState() (string, error) {
	b := make([]byte, 16)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}
