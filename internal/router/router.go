package router

import (
	"log/slog"
	"net/http"
	"time"

	"yatube/internal/cache"
	"yatube/internal/handlers"
	"yatube/internal/middleware"
	"yatube/internal/services"
	"yatube/internal/templates"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// SessionName is the cookie carrying the login session.
const SessionName = "yatube_session"

// Options wires the engine to its collaborators.
type Options struct {
	Services      *services.Services
	PageCache     cache.PageCache
	PageCacheTTL  time.Duration
	Logger        *slog.Logger
	SessionSecret string
	SecureCookies bool
}

// New builds the engine with middleware, templates and routes.
func New(opts Options) (*gin.Engine, error) {
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}

	r := gin.New()
	r.Use(handlers.Recovery())
	r.Use(middleware.RequestLogger(opts.Logger))
	r.Use(middleware.Metrics())

	// Setup Sessions
	store := cookie.NewStore([]byte(opts.SessionSecret))
	store.Options(sessions.Options{
		Path:     "/",
		MaxAge:   86400 * 14,
		HttpOnly: true,
		Secure:   opts.SecureCookies,
		SameSite: http.SameSiteLaxMode,
	})
	r.Use(sessions.Sessions(SessionName, store))

	renderer, err := templates.Load()
	if err != nil {
		return nil, err
	}
	r.HTMLRender = renderer

	r.Use(middleware.LoadUser(opts.Services))

	RegisterRoutes(r, opts)
	return r, nil
}

func RegisterRoutes(r *gin.Engine, opts Options) {
	svc := opts.Services

	// Handlers
	authHandler := handlers.NewAuthHandler(svc)
	postHandler := handlers.NewPostHandler(svc)
	userHandler := handlers.NewUserHandler(svc)
	groupHandler := handlers.NewGroupHandler(svc)
	notificationHandler := handlers.NewNotificationHandler(svc)
	adminHandler := handlers.NewAdminHandler(svc)

	// 基础设施 (Infrastructure)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
	r.Static("/media", svc.Images.MediaRoot())
	r.NoRoute(handlers.NotFound)

	// 公共路由 (Public Routes)
	r.GET("/", middleware.PageCache(opts.PageCache, opts.PageCacheTTL), postHandler.Index) // 首页 - 最新文章
	r.GET("/group/:slug/", postHandler.GroupPosts)                                         // 分组下的文章列表
	r.GET("/groups/", groupHandler.ListGroups)                                             // 所有分组列表

	r.GET("/auth/signup/", authHandler.ShowSignup) // 注册页面
	r.POST("/auth/signup/", authHandler.Signup)    // 提交注册
	r.GET("/auth/login/", authHandler.ShowLogin)   // 登录页面
	r.POST("/auth/login/", authHandler.Login)      // 提交登录
	r.GET("/auth/logout/", authHandler.Logout)     // 退出登录

	// 受保护路由 (Protected Routes)
	authorized := r.Group("/")
	authorized.Use(middleware.AuthRequired())
	{
		authorized.GET("/new/", postHandler.ShowCreate)     // 发布文章页面
		authorized.POST("/new/", postHandler.Create)        // 提交发布文章
		authorized.GET("/follow/", postHandler.FollowIndex) // 关注作者的文章

		authorized.GET("/notifications/", notificationHandler.List)          // 我的通知列表
		authorized.POST("/notifications/read/", notificationHandler.ReadAll) // 全部通知标记为已读

		authorized.GET("/:username/follow/", userHandler.Follow)      // 关注
		authorized.POST("/:username/follow/", userHandler.Follow)     // 关注
		authorized.GET("/:username/unfollow/", userHandler.Unfollow)  // 取消关注
		authorized.POST("/:username/unfollow/", userHandler.Unfollow) // 取消关注

		authorized.GET("/:username/:post_id/edit/", postHandler.ShowEdit)       // 编辑文章页面
		authorized.POST("/:username/:post_id/edit/", postHandler.Update)        // 提交文章更新
		authorized.POST("/:username/:post_id/comment/", postHandler.AddComment) // 发表评论
	}

	// 管理路由 (Admin Routes)
	admin := r.Group("/admin")
	admin.Use(middleware.AdminRequired())
	{
		admin.GET("/groups/", adminHandler.ShowGroups)
		admin.POST("/groups/", adminHandler.CreateGroup)
	}

	r.GET("/:username/", userHandler.Profile)           // 用户主页
	r.GET("/:username/:post_id/", postHandler.PostView) // 文章详情页
}
