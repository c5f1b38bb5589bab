package http

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"careerconnect/internal/auth"
	"careerconnect/internal/service"
)

// Handler wires HTTP routes to domain services.
type Handler struct {
	auth      service.AuthService
	profiles  service.ProfileService
	jobs      service.JobService
	uploads   service.UploadService
	tokens    auth.TokenIssuer
	limiter   *ipRateLimiter
	uploadDir string
	log       logrus.FieldLogger
}

// Options configures the optional parts of the router.
type Options struct {
	// UploadDir is served under /uploads when set (local storage driver).
	UploadDir string
	RateLimit RateLimit
	Logger    logrus.FieldLogger
}

func NewHandler(authSvc service.AuthService, profiles service.ProfileService, jobs service.JobService, uploads service.UploadService, tokens auth.TokenIssuer, opts Options) *Handler {
	log := opts.Logger
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Handler{
		auth:      authSvc,
		profiles:  profiles,
		jobs:      jobs,
		uploads:   uploads,
		tokens:    tokens,
		limiter:   newIPRateLimiter(opts.RateLimit),
		uploadDir: opts.UploadDir,
		log:       log,
	}
}

// NewRouter returns a bare engine with panic recovery. Client IPs come from
// forwarding headers only when the direct peer is in trustedProxies; with none
// configured the socket address is used.
func NewRouter(trustedProxies []string) (*gin.Engine, error) {
	router := gin.New()
	router.Use(gin.Recovery())
	if len(trustedProxies) == 0 {
		trustedProxies = nil
	}
	if err := router.SetTrustedProxies(trustedProxies); err != nil {
		return nil, fmt.Errorf("set trusted proxies: %w", err)
	}
	return router, nil
}

func (h *Handler) RegisterRoutes(router *gin.Engine) {
	router.Use(requestLogger(h.log), corsMiddleware())

	if h.uploadDir != "" {
		router.Static("/uploads", h.uploadDir)
	}

	guard := accessGuard(h.tokens, h.auth, h.log)

	api := router.Group("/api")
	{
		api.GET("/health", func(ctx *gin.Context) {
			ctx.JSON(http.StatusOK, gin.H{"ok": "ok"})
		})

		authGroup := api.Group("/auth")
		authGroup.POST("/register", h.limiter.middleware(), h.register)
		authGroup.POST("/login", h.limiter.middleware(), h.login)
		authGroup.GET("/me", guard, h.me)
		authGroup.POST("/upload-image", h.limiter.middleware(), h.uploadImage)

		users := api.Group("/user")
		users.PUT("/profile", guard, h.updateProfile)
		users.DELETE("/resume", guard, h.deleteResume)
		users.GET("/:id", h.getPublicProfile)

		jobs := api.Group("/jobs")
		jobs.POST("", guard, h.createJob)
		jobs.GET("/get-jobs-employer", guard, h.listEmployerJobs)
		jobs.GET("/:id", h.getJob)
		jobs.PUT("/:id", guard, h.updateJob)
		jobs.PUT("/:id/toggle-close", guard, h.toggleCloseJob)
		jobs.DELETE("/:id", guard, h.deleteJob)
	}
}

func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, PATCH, DELETE, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Origin, Content-Type, Accept, Authorization, X-Request-ID")
		c.Writer.Header().Set("Access-Control-Expose-Headers", "X-Request-ID")
		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}
