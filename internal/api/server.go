package api

import (
	"fmt"

	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerfiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"gorm.io/gorm"

	"github.com/careerfair/jobfair-api/docs"
	v1 "github.com/careerfair/jobfair-api/internal/api/handler/v1"
	"github.com/careerfair/jobfair-api/internal/api/middleware"
	"github.com/careerfair/jobfair-api/internal/config"
	"github.com/careerfair/jobfair-api/internal/repository"
	"github.com/careerfair/jobfair-api/internal/repository/dao"
	"github.com/careerfair/jobfair-api/internal/service"
)

type Server struct {
	Config *config.AppConfig
	Router *gin.Engine

	// Assignments is kept so bulk options can be changed on config reload.
	Assignments *service.AssignmentService
}

type handlers struct {
	auth       *v1.AuthHandler
	user       *v1.UserHandler
	health     *v1.HealthHandler
	assignment *v1.AssignmentHandler
	fair       *v1.FairHandler
	jobSeeker  *v1.JobSeekerHandler
}

func NewServer(conf *config.AppConfig, db *gorm.DB, cache service.StatsCache, publisher service.EventPublisher) (*Server, error) {
	gin.SetMode(conf.Gin.Mode)
	engine := gin.New()

	s := &Server{
		Config: conf,
		Router: engine,
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("db.DB -> %w", err)
	}

	userRepo := repository.NewUserRepository(dao.NewUserDAO(db))
	fairRepo := repository.NewFairRepository(dao.NewFairDAO(db))
	seekerRepo := repository.NewJobSeekerRepository(dao.NewJobSeekerDAO(db))
	assignmentRepo := repository.NewAssignmentRepository(dao.NewAssignmentDAO(db))

	userSvc := service.NewUserService(userRepo)
	s.Assignments = service.NewAssignmentService(
		assignmentRepo,
		seekerRepo,
		fairRepo,
		cache,
		publisher,
		service.BulkOptions{
			BatchSize:  conf.Assignment.BulkBatchSize,
			BatchPause: conf.Assignment.BulkBatchPause,
		},
	)

	s.MountMiddlewares()
	s.MountHandlers(userSvc, handlers{
		auth:       v1.NewAuthHandler(conf.API, service.NewAuthService(userRepo)),
		user:       v1.NewUserHandler(userSvc),
		health:     v1.NewHealthHandler(sqlDB),
		assignment: v1.NewAssignmentHandler(s.Assignments),
		fair:       v1.NewFairHandler(service.NewFairService(fairRepo, cache)),
		jobSeeker:  v1.NewJobSeekerHandler(service.NewJobSeekerService(seekerRepo, cache)),
	})

	return s, nil
}

func (s *Server) MountMiddlewares() {
	// Logger and Recovery are needed unless we use gin.Default().
	s.Router.Use(gin.Logger())
	s.Router.Use(gin.Recovery())
	s.Router.Use(requestid.New())
	s.Router.Use(middleware.ConfigCORS(s.Config.API.AllowedCORSDomains))
}

func (s *Server) MountHandlers(users middleware.UserGetter, h handlers) {
	const basePath = "/api/v1"

	auth := s.Router.Group(basePath)
	{
		auth.POST("/auth/signup", h.auth.HandleSignup)
		auth.POST("/auth/login", h.auth.HandleLogin)
	}

	verifyJWT := middleware.NewAuthenticator(s.Config.API.JWTSigningKey).VerifyJWT()

	signedIn := s.Router.Group(basePath, verifyJWT)
	{
		signedIn.GET("/users/me", h.user.HandleGetMe)
	}

	admin := s.Router.Group(basePath, verifyJWT, middleware.RequireAdmin(users))
	{
		admin.POST("/assignments", h.assignment.HandleAssign)
		admin.POST("/assignments/bulk", h.assignment.HandleBulkAssign)
		admin.PATCH("/assignments/:assignmentID/status", h.assignment.HandleUpdateStatus)
		admin.DELETE("/assignments/:assignmentID", h.assignment.HandleRemove)
		admin.GET("/assignments/statistics", h.assignment.HandleStatistics)

		admin.GET("/job-seekers/unassigned", h.assignment.HandleUnassignedJobSeekers)
		admin.GET("/job-seekers", h.jobSeeker.HandleList)
		admin.POST("/job-seekers", h.jobSeeker.HandleRegister)
		admin.GET("/job-seekers/:jobSeekerID", h.jobSeeker.HandleGet)
		admin.PATCH("/job-seekers/:jobSeekerID/registration", h.jobSeeker.HandleReview)

		admin.GET("/booths/available", h.assignment.HandleAvailableBooths)
		admin.GET("/booths/:boothID/assignments", h.assignment.HandleBoothAssignments)
		admin.POST("/booths", h.fair.HandleCreateBooth)
		admin.GET("/booths/:boothID", h.fair.HandleGetBooth)
		admin.PATCH("/booths/:boothID/active", h.fair.HandleSetBoothActive)
		admin.POST("/booths/:boothID/slots", h.fair.HandleCreateSlot)
		admin.GET("/booths/:boothID/slots", h.fair.HandleListSlots)

		admin.POST("/events", h.fair.HandleCreateEvent)
		admin.GET("/events", h.fair.HandleListEvents)
		admin.GET("/events/:eventID/booths", h.fair.HandleListEventBooths)
		admin.POST("/employers", h.fair.HandleCreateEmployer)
		admin.GET("/employers", h.fair.HandleListEmployers)
	}

	s.Router.GET("/", h.health.HandleHealthcheck)
	s.Router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// Setup Swagger UI.
	docs.SwaggerInfo.Host = s.Config.API.BaseURL
	docs.SwaggerInfo.BasePath = basePath
	docs.SwaggerInfo.Title = "Job Fair Booth Assignment API"
	docs.SwaggerInfo.Description = "Assigns approved job seekers to employer booths and interview slots."
	docs.SwaggerInfo.Version = "1.0"
	s.Router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerfiles.Handler))
}
