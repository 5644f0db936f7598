// Package main 是应用程序的入口点。
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"entraide-go/internal/activity"
	"entraide-go/internal/config"
	"entraide-go/internal/handler"
	"entraide-go/internal/middleware"
	"entraide-go/internal/repository"
	"entraide-go/internal/service"
	"entraide-go/pkg/database"
	"entraide-go/pkg/es"
	"entraide-go/pkg/kafka"
	"entraide-go/pkg/llm"
	"entraide-go/pkg/log"
	"entraide-go/pkg/storage"
	"entraide-go/pkg/token"

	"github.com/gin-gonic/gin"
)

func main() {
	// 1. 初始化配置
	config.Init("./configs/config.yaml")
	cfg := config.Conf

	// 2. 初始化日志记录器
	log.Init(cfg.Log.Level, cfg.Log.Format, cfg.Log.OutputPath)
	defer log.Sync() // 确保在程序退出时刷新所有缓冲的日志条目
	log.Info("日志记录器初始化成功")

	// LLM API key 缺失时服务无法提供核心能力，直接终止启动
	if cfg.LLM.APIKey == "" {
		log.Fatalf("缺少 LLM API key，请通过配置文件或 OPENAI_API_KEY 环境变量提供")
	}

	// 3. 初始化数据库、Redis 与外部依赖
	database.InitMySQL(cfg.Database.MySQL.DSN)
	database.InitRedis(cfg.Database.Redis.Addr, cfg.Database.Redis.Password, cfg.Database.Redis.DB)
	storage.InitMinIO(cfg.MinIO)
	if err := es.InitES(cfg.Elasticsearch); err != nil {
		log.Errorf("es 初始化失败 %s", err)
		return
	}
	kafka.InitProducer(cfg.Kafka)

	// 4. 初始化 Repository
	userRepo := repository.NewUserRepository(database.DB)
	postRepo := repository.NewPostRepository(database.DB)
	commentRepo := repository.NewCommentRepository(database.DB)
	conversationRepo := repository.NewConversationRepository(database.DB)
	meetRepo := repository.NewMeetRepository(database.DB)
	transactionRepo := repository.NewTransactionRepository(database.DB)
	chatContextRepo := repository.NewChatContextRepository(database.RDB)

	// 5. 初始化 Service (依赖注入)
	jwtManager := token.NewJWTManager(cfg.JWT.Secret, cfg.JWT.AccessTokenExpireHours, cfg.JWT.RefreshTokenExpireDays)
	streamTokenManager, err := token.NewStreamTokenManager(cfg.Stream.APISecret, cfg.Stream.TokenTTLHours)
	if err != nil {
		log.Fatalf("初始化视频令牌签发器失败: %v", err)
	}
	llmClient := llm.NewClient(cfg.LLM)

	userService := service.NewUserService(userRepo, jwtManager)
	quotaService := service.NewQuotaService(userRepo)
	postIndexer := service.NewESPostIndexer(cfg.Elasticsearch.IndexName)
	postService := service.NewPostService(postRepo, commentRepo, postIndexer)
	commentService := service.NewCommentService(commentRepo, postRepo)
	conversationService := service.NewConversationService(conversationRepo, chatContextRepo)
	chatService := service.NewChatService(llmClient, quotaService, conversationService, chatContextRepo)
	meetService := service.NewMeetService(meetRepo, userRepo)
	adminService := service.NewAdminService(userRepo, transactionRepo, conversationService)

	// 6. 启动后台 Kafka 消费者，聚合活动事件的每日计数
	recorder := activity.NewRecorder(database.RDB)
	go kafka.StartConsumer(cfg.Kafka, recorder)

	// 7. 设置 Gin 模式并创建路由引擎
	gin.SetMode(cfg.Server.Mode)
	r := gin.New() // 使用 New() 创建一个不带默认中间件的引擎
	r.Use(middleware.RequestLogger(), gin.Recovery())

	// 8. 注册路由
	authRequired := middleware.AuthMiddleware(jwtManager, userService)

	userHandler := handler.NewUserHandler(userService, quotaService)
	postHandler := handler.NewPostHandler(postService)
	commentHandler := handler.NewCommentHandler(commentService)
	conversationHandler := handler.NewConversationHandler(conversationService)
	chatHandler := handler.NewChatHandler(chatService, streamTokenManager)
	meetHandler := handler.NewMeetHandler(meetService)
	uploadHandler := handler.NewUploadHandler(cfg.MinIO)
	adminHandler := handler.NewAdminHandler(adminService, quotaService, recorder)

	apiV1 := r.Group("/api/v1")
	{
		// Auth 路由组
		auth := apiV1.Group("/auth")
		{
			auth.POST("/refreshToken", handler.NewAuthHandler(userService).RefreshToken)
		}

		users := apiV1.Group("/users")
		{
			// 无需认证的路由 (公开访问)
			users.POST("/register", userHandler.Register)
			users.POST("/login", userHandler.Login)

			// 需要认证的路由 (仅限登录用户访问)
			authed := users.Group("/")
			authed.Use(authRequired)
			{
				authed.GET("/me", userHandler.GetProfile)
				authed.POST("/logout", userHandler.Logout)
				authed.GET("/quota", userHandler.GetQuota)
				authed.GET("/quota/check", userHandler.CheckQuota)
			}
		}

		// Post 路由组：列表、详情与搜索公开，写操作需要认证
		posts := apiV1.Group("/posts")
		{
			posts.GET("", postHandler.List)
			posts.GET("/search", postHandler.Search)
			posts.GET("/:id", postHandler.Get)
			posts.GET("/:id/comments", commentHandler.List)

			authed := posts.Group("/")
			authed.Use(authRequired)
			{
				authed.POST("", postHandler.Create)
				authed.GET("/mine", postHandler.ListMine)
				authed.PUT("/:id", postHandler.Update)
				authed.POST("/:id/publish", postHandler.Publish)
				authed.DELETE("/:id", postHandler.Delete)
				authed.POST("/:id/comments", commentHandler.Create)
				authed.DELETE("/:id/comments/:commentId", commentHandler.Delete)
			}
		}

		// Conversation 路由组
		conversations := apiV1.Group("/conversations")
		conversations.Use(authRequired)
		{
			conversations.POST("", conversationHandler.Save)
			conversations.GET("", conversationHandler.List)
			conversations.DELETE("", conversationHandler.Clear)
		}

		// Chat 路由组：同步 AI 问答与视频令牌签发
		chat := apiV1.Group("/chat")
		chat.Use(authRequired)
		{
			chat.POST("", chatHandler.Chat)
			chat.GET("/stream-token", chatHandler.GetStreamToken)
		}

		// Meet 路由组
		meet := apiV1.Group("/meet/sessions")
		meet.Use(authRequired)
		{
			meet.GET("", meetHandler.ListActive)
			meet.GET("/:id", meetHandler.Get)
			meet.POST("/:id/end", meetHandler.End)
		}

		// Upload 路由组
		upload := apiV1.Group("/upload")
		upload.Use(authRequired)
		{
			upload.GET("/url", uploadHandler.GetUploadURL)
		}

		// 管理员路由组，需要同时通过认证和管理员授权两个中间件
		admin := apiV1.Group("/admin")
		admin.Use(authRequired, middleware.AdminAuthMiddleware())
		{
			admin.GET("/users/list", adminHandler.ListUsers)
			admin.POST("/users/:id/quota/reset", adminHandler.ResetUserQuota)
			admin.GET("/transactions/stats", adminHandler.GetTransactionStats)
			admin.GET("/activity", adminHandler.GetActivityCounts)
			admin.DELETE("/conversations", adminHandler.ClearAllConversations)
		}
	}

	// 启动 HTTP 服务器并实现优雅停机
	srv := &http.Server{
		Addr:    fmt.Sprintf(":%s", cfg.Server.Port),
		Handler: r,
	}

	go func() {
		log.Infof("服务启动于 %s", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("HTTP 服务监听失败: %s\n", err)
		}
	}()

	// 等待中断信号以实现优雅停机
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("接收到停机信号，正在关闭服务...")

	// 设置一个5秒的超时上下文
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("HTTP 服务器关闭失败: %v", err)
	}
	log.Info("服务已优雅关闭")
}
