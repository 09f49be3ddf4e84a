package handlers

import (
	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type RouterOptions struct {
	SessionSecret string
	// SecureCookies marks the session cookie Secure, for HTTPS deployments.
	SecureCookies bool
	// MediaDir is served under MediaURLPrefix when both are set.
	MediaDir       string
	MediaURLPrefix string
	// GitHubLogin mounts the OAuth routes.
	GitHubLogin bool
	Limiter     *IPRateLimiter
	Logger      *zap.Logger
}

// NewRouter mounts the public API, the auth routes and the admin API.
func NewRouter(h *Handler, auth *Auth, opts RouterOptions) *gin.Engine {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	r := gin.New()
	r.Use(RequestLogger(logger), gin.Recovery())

	store := cookie.NewStore([]byte(opts.SessionSecret))
	store.Options(sessions.Options{
		Path:     "/",
		MaxAge:   7 * 24 * 60 * 60,
		HttpOnly: true,
		Secure:   opts.SecureCookies,
	})
	r.Use(sessions.Sessions("portfolio_session", store))

	if opts.MediaDir != "" && opts.MediaURLPrefix != "" {
		r.Static(opts.MediaURLPrefix, opts.MediaDir)
	}

	r.GET("/healthz", h.Healthz)

	// --- Auth Routes ---
	limiter := opts.Limiter
	if limiter == nil {
		limiter = NewIPRateLimiter(10, 5)
	}
	if opts.GitHubLogin {
		r.GET("/login/github", auth.GithubLogin)
		r.GET("/auth/callback", auth.AuthCallback)
	}
	authAPI := r.Group("/api/auth")
	{
		authAPI.POST("/login", limiter.Middleware(), auth.Login)
		authAPI.POST("/logout", Logout)
		authAPI.GET("/status", Status)
	}

	// --- Public API ---
	api := r.Group("/api")
	{
		api.GET("/projects", h.ListProjects)
		api.GET("/projects/:slug", h.GetProject)
		api.GET("/blog", h.ListBlogs)
		api.GET("/blog/:slug", h.GetBlog)
		api.GET("/reviews", h.ReviewSummary)
	}

	// --- Admin API (Authorized) ---
	modify := r.Group("/api/modify")
	modify.Use(AuthRequired)
	{
		modify.GET("/projects", h.ListProjects)
		modify.POST("/projects", h.CreateProject)
		modify.GET("/projects/:slug", h.AdminGetProject)
		modify.PUT("/projects/:slug", h.UpdateProject)
		modify.DELETE("/projects/:slug", h.DeleteProject)

		modify.GET("/blogs", h.ListBlogs)
		modify.POST("/blogs", h.CreateBlog)
		modify.GET("/blogs/:slug", h.AdminGetBlog)
		modify.PUT("/blogs/:slug", h.UpdateBlog)
		modify.DELETE("/blogs/:slug", h.DeleteBlog)

		modify.GET("/reviews", h.ReviewSummary)
		modify.POST("/reviews", h.CreateReview)
		modify.GET("/reviews/:slug", h.AdminGetReview)
		modify.PUT("/reviews/:slug", h.UpdateReview)
		modify.DELETE("/reviews/:slug", h.DeleteReview)

		modify.POST("/reorder", h.Reorder)

		modify.GET("/upload", h.ListMedia)
		modify.POST("/upload", h.UploadMedia)
		modify.DELETE("/upload/:name", h.DeleteMedia)
	}

	return r
}
