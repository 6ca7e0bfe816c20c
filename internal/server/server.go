package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"anoa.com/placementportal/internal/access"
	"anoa.com/placementportal/internal/config"
	"anoa.com/placementportal/internal/entity"
	"anoa.com/placementportal/internal/middleware"
	"anoa.com/placementportal/pkg/ratelimiter"
	"anoa.com/placementportal/pkg/storage"
	"anoa.com/placementportal/pkg/token"

	adminHttp "anoa.com/placementportal/internal/modules/admin/delivery/http"
	adminService "anoa.com/placementportal/internal/modules/admin/service"

	applicationHttp "anoa.com/placementportal/internal/modules/application/delivery/http"
	applicationRepo "anoa.com/placementportal/internal/modules/application/repository"
	applicationService "anoa.com/placementportal/internal/modules/application/service"

	companyHttp "anoa.com/placementportal/internal/modules/company/delivery/http"
	companyRepo "anoa.com/placementportal/internal/modules/company/repository"
	companyService "anoa.com/placementportal/internal/modules/company/service"

	jobHttp "anoa.com/placementportal/internal/modules/job/delivery/http"
	jobRepo "anoa.com/placementportal/internal/modules/job/repository"
	jobService "anoa.com/placementportal/internal/modules/job/service"

	notiHttp "anoa.com/placementportal/internal/modules/notification/delivery/http"
	notifRepo "anoa.com/placementportal/internal/modules/notification/repository"
	notifService "anoa.com/placementportal/internal/modules/notification/service"

	searchService "anoa.com/placementportal/internal/modules/search/service"

	statHttp "anoa.com/placementportal/internal/modules/stat/delivery/http"
	statService "anoa.com/placementportal/internal/modules/stat/service"

	studentHttp "anoa.com/placementportal/internal/modules/student/delivery/http"
	studentRepo "anoa.com/placementportal/internal/modules/student/repository"
	studentService "anoa.com/placementportal/internal/modules/student/service"

	userHttp "anoa.com/placementportal/internal/modules/user/delivery/http"
	userRepo "anoa.com/placementportal/internal/modules/user/repository"
	userService "anoa.com/placementportal/internal/modules/user/service"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// Deps are the optional external services. Nil members disable the features
// built on them: resume uploads for Storage, job indexing and search tokens for Search.
type Deps struct {
	Storage storage.FileStorage
	Search  searchService.MeiliSearchService
}

type Server struct {
	engine      *gin.Engine
	httpServer  *http.Server
	db          *gorm.DB
	redisClient *redis.Client
}

func NewServer(cfg *config.Config, db *gorm.DB, redisClient *redis.Client, deps Deps) *Server {
	tokens := token.NewManager(cfg.JWTSecret)
	limiter := ratelimiter.New(redisClient, cfg.AuthRateLimit, cfg.AuthRateLimitWindow)

	userRepo := userRepo.NewUserRepository(db)
	studentRepo := studentRepo.NewStudentRepository(db)
	companyRepo := companyRepo.NewCompanyRepository(db)
	jobRepo := jobRepo.NewJobRepository(db)
	applicationRepo := applicationRepo.NewApplicationRepository(db)

	gate := access.NewGate(studentRepo, companyRepo)

	// Notification Module
	notificationRepository := notifRepo.NewNotificationRepository(db)
	notificationSvc := notifService.NewNotificationService(notificationRepository, redisClient)
	notificationHandler := notiHttp.NewNotificationHandler(notificationSvc, redisClient, cfg.AllowedOrigins)

	authSvc := userService.NewAuthService(userRepo, companyRepo, tokens, limiter, deps.Search, userService.Options{
		AllowAdminRegistration: cfg.AllowAdminRegistration,
	})
	authHandler := userHttp.NewAuthHandler(authSvc)

	studentSvc := studentService.NewStudentService(studentRepo, userRepo, gate, deps.Storage)
	studentHandler := studentHttp.NewStudentHandler(studentSvc)

	companySvc := companyService.NewCompanyService(companyRepo, userRepo, gate)
	companyHandler := companyHttp.NewCompanyHandler(companySvc)

	jobSvc := jobService.NewJobService(jobRepo, gate, deps.Search)
	jobHandler := jobHttp.NewJobHandler(jobSvc)

	applicationSvc := applicationService.NewApplicationService(applicationRepo, jobRepo, gate, notificationSvc)
	applicationHandler := applicationHttp.NewApplicationHandler(applicationSvc)

	adminSvc := adminService.NewAdminService(userRepo, studentRepo, deps.Storage, notificationSvc)
	adminHandler := adminHttp.NewAdminHandler(adminSvc)

	statSvc := statService.NewStatService(userRepo, studentRepo, companyRepo, jobRepo, applicationRepo)
	statHandler := statHttp.NewStatHandler(statSvc)

	router := gin.New()

	setupCORS(router, cfg.AllowedOrigins)

	router.Use(gin.Recovery())
	router.Use(gin.LoggerWithConfig(gin.LoggerConfig{
		SkipPaths: []string{"/api/notifications/unread-count"},
	}))

	authMiddleware := middleware.NewAuthMiddleware(userRepo, tokens)
	anyRole := authMiddleware.RequireRoles()
	studentOnly := authMiddleware.RequireRoles(entity.RoleStudent)
	companyOnly := authMiddleware.RequireRoles(entity.RoleCompany)
	adminOnly := authMiddleware.RequireRoles(entity.RoleAdmin)
	companyOrAdmin := authMiddleware.RequireRoles(entity.RoleCompany, entity.RoleAdmin)

	api := router.Group("/api")

	// Public routes (no auth required)
	auth := api.Group("/auth")
	{
		auth.POST("/register", authHandler.Register)
		auth.POST("/login", authHandler.Login)
	}

	protected := api.Group("")
	protected.Use(authMiddleware.RequireAuth())
	{
		students := protected.Group("/students")
		students.GET("/profile", studentOnly, studentHandler.GetProfile)
		students.PUT("/profile", studentOnly, studentHandler.UpdateProfile)
		students.PUT("/profile/resume", studentOnly, studentHandler.UploadResume)
		students.GET("/all", authMiddleware.RequireRoles(entity.RoleAdmin, entity.RoleCompany), studentHandler.GetAllStudents)

		companies := protected.Group("/companies")
		companies.GET("/profile", companyOnly, companyHandler.GetProfile)
		companies.PUT("/profile", companyOnly, companyHandler.UpdateProfile)
		companies.GET("/all", authMiddleware.RequireRoles(entity.RoleAdmin, entity.RoleStudent), companyHandler.GetAllCompanies)

		jobs := protected.Group("/jobs")
		jobs.POST("", companyOnly, jobHandler.CreateJob)
		jobs.GET("", anyRole, jobHandler.GetJobs)
		jobs.GET("/company", companyOnly, jobHandler.GetCompanyJobs)
		jobs.GET("/:id", anyRole, jobHandler.GetJob)
		jobs.PUT("/:id", companyOnly, jobHandler.UpdateJob)
		jobs.DELETE("/:id", companyOnly, jobHandler.DeleteJob)

		applications := protected.Group("/applications")
		applications.POST("", studentOnly, applicationHandler.Apply)
		applications.GET("/student", studentOnly, applicationHandler.GetStudentApplications)
		applications.GET("/job/:jobId", companyOrAdmin, applicationHandler.GetJobApplications)
		applications.PUT("/:id/status", companyOrAdmin, applicationHandler.UpdateStatus)
		applications.GET("/all", adminOnly, applicationHandler.GetAllApplications)

		adminGroup := protected.Group("/admin")
		adminGroup.Use(adminOnly)
		{
			adminGroup.PUT("/approve/:userId", adminHandler.ApproveCompany)
			adminGroup.PUT("/reject/:userId", adminHandler.RejectCompany)
			adminGroup.GET("/users", adminHandler.GetAllUsers)
			adminGroup.DELETE("/users/:userId", adminHandler.DeleteUser)
			adminGroup.GET("/statistics", statHandler.GetStatistics)
		}

		notifications := protected.Group("/notifications")
		notifications.Use(anyRole)
		{
			notifications.GET("", notificationHandler.GetNotifications)
			notifications.GET("/unread-count", notificationHandler.UnreadCount)
			notifications.PUT("/:id/read", notificationHandler.MarkAsRead)
			notifications.PUT("/read-all", notificationHandler.MarkAllAsRead)
			notifications.GET("/ws", notificationHandler.HandleWebSocket)
		}
	}

	return &Server{
		engine: router,
		httpServer: &http.Server{
			Handler:           router,
			ReadHeaderTimeout: 10 * time.Second,
		},
		db:          db,
		redisClient: redisClient,
	}
}

// Handler exposes the router, e.g. for httptest.
func (s *Server) Handler() http.Handler {
	return s.engine
}

// Run serves until Shutdown is called.
func (s *Server) Run(addr string) error {
	listener, err := net.Listen("tcp", addr)
	if err != nil {
		return err
	}
	if err := s.httpServer.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown drains in-flight requests, then closes Redis and the database pool.
func (s *Server) Shutdown(ctx context.Context) error {
	var errs []error
	if err := s.httpServer.Shutdown(ctx); err != nil {
		errs = append(errs, fmt.Errorf("http: %w", err))
	}
	if s.redisClient != nil {
		if err := s.redisClient.Close(); err != nil {
			errs = append(errs, fmt.Errorf("redis: %w", err))
		}
	}
	if sqlDB, err := s.db.DB(); err != nil {
		errs = append(errs, fmt.Errorf("database: %w", err))
	} else if err := sqlDB.Close(); err != nil {
		errs = append(errs, fmt.Errorf("database: %w", err))
	}
	return errors.Join(errs...)
}

func setupCORS(router *gin.Engine, origins []string) {
	if len(origins) == 0 {
		origins = []string{"http://localhost:3000"}
	}

	router.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "HEAD", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length", "Retry-After"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))
}
