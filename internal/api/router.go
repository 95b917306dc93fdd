package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"gorm.io/gorm"

	"github.com/forumhub/forum-api/internal/api/handler"
	"github.com/forumhub/forum-api/internal/api/middleware"
	"github.com/forumhub/forum-api/internal/core/domain"
	"github.com/forumhub/forum-api/internal/core/service"
	"github.com/forumhub/forum-api/internal/infrastructure/config"
	"github.com/forumhub/forum-api/internal/infrastructure/db/postgres"
	redisdb "github.com/forumhub/forum-api/internal/infrastructure/db/redis"
)

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(db *gorm.DB, rdb *redis.Client, cfg *config.Config, log zerolog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("forum"))

	// --- Repositories ---
	userRepo := postgres.NewUserRepository(db)
	tokenRepo := postgres.NewTokenRepository(db)
	postRepo := postgres.NewPostRepository(db)
	commentRepo := postgres.NewCommentRepository(db)
	voteRepo := postgres.NewVoteRepository(db)
	subRepo := postgres.NewSubscriptionRepository(db)

	// --- Services ---
	hasher := service.NewPasswordHasher(cfg.Auth.BcryptCost)
	issuer := service.NewTokenIssuer(tokenRepo, userRepo, cfg.JWT.Secret, cfg.JWT.AccessTTL, cfg.JWT.RefreshTTL, log)
	throttle := redisdb.NewLoginThrottle(rdb, cfg.Auth.MaxLoginFailures, cfg.Auth.LoginLockout)
	authService := service.NewAuthService(userRepo, issuer, hasher, throttle, log)
	aggregator := service.NewVoteAggregator(voteRepo, postRepo, commentRepo, log)
	userService := service.NewUserService(userRepo, hasher, log)
	postService := service.NewPostService(postRepo, userRepo, aggregator, log)
	commentService := service.NewCommentService(commentRepo, postRepo, userRepo, aggregator, log)
	subService := service.NewSubscriptionService(subRepo, userRepo, postRepo, log)

	var oauthCfg *oauth2.Config
	if cfg.Google.Enabled() {
		oauthCfg = &oauth2.Config{
			ClientID:     cfg.Google.ClientID,
			ClientSecret: cfg.Google.ClientSecret,
			RedirectURL:  cfg.Google.RedirectURL,
			Scopes: []string{
				"https://www.googleapis.com/auth/userinfo.email",
				"https://www.googleapis.com/auth/userinfo.profile",
			},
			Endpoint: google.Endpoint,
		}
	}

	// --- Handlers ---
	authHandler := handler.NewAuthHandler(authService, oauthCfg)
	userHandler := handler.NewUserHandler(userService)
	postHandler := handler.NewPostHandler(postService)
	commentHandler := handler.NewCommentHandler(commentService)
	subHandler := handler.NewSubscriptionHandler(subService)

	authMW := middleware.Auth(cfg.JWT.Secret)

	// --- Auth routes ---
	auth := e.Group("/auth")
	auth.POST("/register", authHandler.Register)
	auth.POST("/login", authHandler.Login)
	auth.POST("/refresh", authHandler.Refresh)
	auth.POST("/logout", authHandler.Logout, authMW)
	auth.GET("/google", authHandler.GoogleRedirect)
	auth.GET("/google/callback", authHandler.GoogleCallback)

	// --- User routes ---
	users := e.Group("/users", authMW)
	users.GET("/all", userHandler.GetAll, middleware.RequireRoles(domain.RoleUser))
	users.GET("/username/:username", userHandler.GetByUsername, middleware.RequireRoles(domain.RoleUser))
	users.POST("/email", userHandler.GetByEmail, middleware.RequireRoles(domain.RoleModerator))
	users.PATCH("/username/:username", userHandler.Update, middleware.RequireRoles(domain.RoleModerator))
	users.DELETE("/username/:username", userHandler.Delete, middleware.RequireRoles(domain.RoleAdmin))

	// --- Post routes ---
	posts := e.Group("/posts", authMW)
	posts.GET("", postHandler.GetAll)
	posts.GET("/:id", postHandler.GetByID)
	posts.GET("/user/:username", postHandler.GetByUser)
	posts.GET("/user/:username/:postId", postHandler.GetUserPost)
	posts.POST("/create", postHandler.Create, middleware.RequireRoles(domain.RoleUser))
	posts.PATCH("/update/:username/:id", postHandler.Update, middleware.RequireRoles(domain.RoleModerator))
	posts.DELETE("/delete/:username/:id", postHandler.Delete, middleware.RequireRoles(domain.RoleModerator))
	posts.POST("/vote/post/:postId", postHandler.Vote, middleware.RequireRoles(domain.RoleUser))

	// --- Comment routes ---
	comments := e.Group("/comments", authMW)
	comments.GET("/post/:postId", commentHandler.GetByPost)
	comments.GET("/user/:username", commentHandler.GetByUser)
	comments.GET("/:id", commentHandler.GetByID)
	comments.POST("/create/:postId", commentHandler.Create, middleware.RequireRoles(domain.RoleUser))
	comments.POST("/create/:postId/reply/:parentId", commentHandler.Reply, middleware.RequireRoles(domain.RoleUser))
	comments.PATCH("/update/:id", commentHandler.Update, middleware.RequireRoles(domain.RoleModerator))
	comments.DELETE("/delete/:id", commentHandler.Delete, middleware.RequireRoles(domain.RoleModerator))
	comments.POST("/vote/comment/:commentId", commentHandler.Vote, middleware.RequireRoles(domain.RoleUser))

	// --- Subscription routes ---
	subs := e.Group("/subscriptions", authMW)
	subs.POST("/subscribe", subHandler.Subscribe, middleware.RequireRoles(domain.RoleUser))
	subs.GET("/users/:username", subHandler.UserSubscriptions, middleware.RequireRoles(domain.RoleModerator))
	subs.GET("/posts/:username", subHandler.PostSubscriptions, middleware.RequireRoles(domain.RoleModerator))
	subs.GET("/post/subscribers/:postId", subHandler.PostSubscribers, middleware.RequireRoles(domain.RoleUser))
	subs.GET("/user/subscribers/:username", subHandler.UserSubscribers, middleware.RequireRoles(domain.RoleModerator))
	subs.DELETE("/delete/:username/:id", subHandler.Delete, middleware.RequireRoles(domain.RoleModerator))

	// --- Observability & health (no auth required) ---
	e.GET("/metrics", echoprometheus.NewHandler())

	healthHandler := handler.NewHealthHandler()
	healthDepsHandler := handler.NewHealthDependenciesHandler(db, rdb)

	e.GET("/health", healthHandler.Liveness)            // liveness  – is the process alive?
	e.GET("/health/ready", healthDepsHandler.Readiness) // readiness – are dependencies up?

	return e
}
