// Package main 是服务端的入口点
package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"chatbot-platform/internal/cache"
	"chatbot-platform/internal/config"
	"chatbot-platform/internal/handler"
	"chatbot-platform/internal/llm"
	"chatbot-platform/internal/middleware"
	"chatbot-platform/internal/model"
	"chatbot-platform/internal/repository"
	"chatbot-platform/internal/service"
	"chatbot-platform/pkg/jwt"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func main() {
	// 加载配置
	cfg, err := config.Load("./configs")
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// 初始化数据库
	db, err := initDatabase(cfg)
	if err != nil {
		log.Fatalf("Failed to init database: %v", err)
	}

	// 自动迁移数据库表
	if err := autoMigrate(db); err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}

	// 初始化 Redis
	redisCache, err := cache.NewRedisCache(cfg)
	if err != nil {
		log.Fatalf("Failed to init redis: %v", err)
	}

	// 初始化 JWT 服务
	jwtService := jwt.NewJWTService(
		cfg.JWT.Secret,
		cfg.JWT.AccessExpire,
		cfg.JWT.RefreshExpire,
	)

	// 初始化 LLM 客户端
	llmClient := llm.New(cfg.LLM)

	// 初始化 Repository 层
	userRepo := repository.NewUserRepository(db)
	projectRepo := repository.NewProjectRepository(db)
	promptRepo := repository.NewPromptRepository(db)
	messageRepo := repository.NewMessageRepository(db)
	fileRepo := repository.NewFileRepository(db)

	// 初始化 Service 层
	authService := service.NewAuthService(userRepo, redisCache, jwtService)
	userService := service.NewUserService(userRepo)
	projectService := service.NewProjectService(projectRepo, fileRepo)
	promptService := service.NewPromptService(projectRepo, promptRepo)
	assembler := service.NewContextAssembler(promptRepo, messageRepo, cfg.LLM.DefaultSystemPrompt)
	chatService := service.NewChatService(projectRepo, messageRepo, assembler, llmClient)
	fileService, err := service.NewFileService(projectRepo, fileRepo, cfg.Upload.Dir, cfg.Upload.MaxFileSize)
	if err != nil {
		log.Fatalf("Failed to init file service: %v", err)
	}

	// 初始化 Handler 层
	authHandler := handler.NewAuthHandler(authService)
	userHandler := handler.NewUserHandler(userService)
	projectHandler := handler.NewProjectHandler(projectService)
	promptHandler := handler.NewPromptHandler(promptService)
	chatHandler := handler.NewChatHandler(chatService, llmClient)
	fileHandler := handler.NewFileHandler(fileService)
	healthHandler := handler.NewHealthHandler(db, redisCache, llmClient)

	// 设置 Gin 模式
	if cfg.Server.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	// 创建 Gin 引擎
	router := gin.New()

	// 全局中间件
	router.Use(gin.Recovery())                // 恢复 panic
	router.Use(middleware.LoggerMiddleware()) // 请求日志
	router.Use(middleware.CORSMiddleware())   // CORS

	// 注册路由
	registerRoutes(router, jwtService, redisCache,
		authHandler, userHandler, projectHandler, promptHandler,
		chatHandler, fileHandler, healthHandler)

	// 创建 HTTP 服务器
	addr := fmt.Sprintf(":%d", cfg.Server.Port)
	server := &http.Server{
		Addr:    addr,
		Handler: router,
		// 写超时要容纳一次完整的模型调用
		ReadTimeout:  10 * time.Second,
		WriteTimeout: cfg.LLM.Timeout + 10*time.Second,
	}

	// 在 goroutine 中启动服务器
	go func() {
		log.Printf("Server starting on %s", addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server failed: %v", err)
		}
	}()

	// 优雅关闭
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")

	// 创建关闭上下文，设置超时
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	// 关闭 HTTP 服务器
	if err := server.Shutdown(ctx); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	// 关闭 Redis 连接
	if err := redisCache.Close(); err != nil {
		log.Printf("Failed to close redis: %v", err)
	}

	log.Println("Server exited")
}

// initDatabase 初始化数据库连接
func initDatabase(cfg *config.Config) (*gorm.DB, error) {
	// 构建 DSN (Data Source Name)
	dsn := fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?charset=%s&parseTime=True&loc=Local",
		cfg.MySQL.Username,
		cfg.MySQL.Password,
		cfg.MySQL.Host,
		cfg.MySQL.Port,
		cfg.MySQL.Database,
		cfg.MySQL.Charset,
	)

	// 配置 GORM logger
	gormLogger := logger.Default.LogMode(logger.Info)
	if cfg.Server.Mode == "release" {
		gormLogger = logger.Default.LogMode(logger.Warn)
	}

	// 连接数据库
	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{
		Logger: gormLogger,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect database: %w", err)
	}

	// 获取底层 sql.DB
	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get sql.DB: %w", err)
	}

	// 配置连接池
	sqlDB.SetMaxIdleConns(cfg.MySQL.MaxIdleConns)
	sqlDB.SetMaxOpenConns(cfg.MySQL.MaxOpenConns)
	sqlDB.SetConnMaxLifetime(time.Duration(cfg.MySQL.MaxLifetime) * time.Second)

	log.Println("Database connected successfully")
	return db, nil
}

// autoMigrate 自动迁移数据库表
func autoMigrate(db *gorm.DB) error {
	log.Println("Running database migrations...")

	if err := db.AutoMigrate(
		&model.User{},
		&model.Project{},
		&model.Prompt{},
		&model.Message{},
		&model.File{},
	); err != nil {
		return fmt.Errorf("failed to migrate: %w", err)
	}

	log.Println("Database migrations completed")
	return nil
}

// registerRoutes 注册所有路由
func registerRoutes(
	router *gin.Engine,
	jwtService *jwt.JWTService,
	redisCache *cache.RedisCache,
	authHandler *handler.AuthHandler,
	userHandler *handler.UserHandler,
	projectHandler *handler.ProjectHandler,
	promptHandler *handler.PromptHandler,
	chatHandler *handler.ChatHandler,
	fileHandler *handler.FileHandler,
	healthHandler *handler.HealthHandler,
) {
	// API v1 路由组
	v1 := router.Group("/api/v1")

	// 健康检查（无需登录）
	v1.GET("/health", healthHandler.Health)
	v1.GET("/health/provider", healthHandler.ProviderHealth)

	// 认证相关（无需登录，登出除外）
	auth := v1.Group("/auth")
	{
		auth.POST("/register", authHandler.Register)
		auth.POST("/login", authHandler.Login)
		auth.POST("/refresh", authHandler.RefreshToken)
		auth.POST("/logout",
			middleware.AuthMiddleware(jwtService, redisCache),
			authHandler.Logout)
	}

	// 用户相关（需要登录）
	users := v1.Group("/users")
	users.Use(middleware.AuthMiddleware(jwtService, redisCache))
	{
		users.GET("/me", userHandler.Me)
	}

	// 模型列表（需要登录）
	v1.GET("/models",
		middleware.AuthMiddleware(jwtService, redisCache),
		chatHandler.Models)

	// 项目相关（需要登录）
	projects := v1.Group("/projects")
	projects.Use(middleware.AuthMiddleware(jwtService, redisCache))
	{
		projects.POST("", projectHandler.Create)
		projects.GET("", projectHandler.List)
		projects.GET("/:id", projectHandler.Get)
		projects.PUT("/:id", projectHandler.Update)
		projects.DELETE("/:id", projectHandler.Delete)

		// 提示词
		projects.POST("/:id/prompt", promptHandler.Set)
		projects.GET("/:id/prompt", promptHandler.GetCurrent)
		projects.GET("/:id/prompt/history", promptHandler.History)

		// 对话
		projects.POST("/:id/chat", chatHandler.Send)
		projects.GET("/:id/messages", chatHandler.Messages)

		// 文件
		projects.POST("/:id/files", fileHandler.Upload)
		projects.GET("/:id/files", fileHandler.List)
		projects.GET("/:id/files/:file_id", fileHandler.Download)
		projects.DELETE("/:id/files/:file_id", fileHandler.Delete)
	}
}
