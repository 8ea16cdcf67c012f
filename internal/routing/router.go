package routing

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/time/rate"

	"adoption-server/internal/handlers"
	"adoption-server/internal/managers"
	"adoption-server/internal/middleware"
	"adoption-server/internal/schemas"
	"adoption-server/internal/utils"
)

var startTime = time.Now()

func InitRouter(databaseMgr managers.DatabaseMgr, mailMgr managers.MailMgr, jwtMgr managers.JWTMgr, revocationMgr managers.RevocationMgr) *gin.Engine {
	// Initialize router with logging and recovery middleware
	router := gin.New()
	// Initialize middleware
	setupCommonMiddleware(router)
	// Setup routes
	setupRoutes(router, databaseMgr, mailMgr, jwtMgr, revocationMgr)

	return router
}

func setupCommonMiddleware(router *gin.Engine) {
	router.Use(gin.Logger())
	router.Use(gin.Recovery())
	router.Use(middleware.InjectTrace())
	router.Use(cors.New(cors.Config{
		AllowOrigins:  []string{"http://localhost:5173", "http://localhost:19000"},
		AllowMethods:  []string{"GET", "PATCH", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:  []string{"Accept, Authorization", "Content-Type"},
		ExposeHeaders: []string{"Content-Length", "Content-Type", "X-Trace-Id"},
		MaxAge:        12 * time.Hour,
	}))
	router.Use(middleware.SanitizePath())
	router.Use(middleware.Metrics())
	router.Use(middleware.LogRequest())
}

func setupRoutes(router *gin.Engine, databaseMgr managers.DatabaseMgr, mailMgr managers.MailMgr, jwtMgr managers.JWTMgr, revocationMgr managers.RevocationMgr) {
	// Set up health route
	router.GET("/health", func(c *gin.Context) {
		// Ping the database
		if err := databaseMgr.GetPool().Ping(c); err != nil {
			utils.WriteAndLogError(c, schemas.InternalServerError, http.StatusInternalServerError, err)
			return
		}
		healthDto := &schemas.HealthDTO{
			Status: "ok",
			Uptime: time.Since(startTime).Round(time.Second).String(),
		}
		utils.WriteAndLogResponse(c, gin.H{"health": healthDto}, http.StatusOK)
	})

	// Set up metrics route
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// Set up user routes
	userHdl := handlers.NewUserHandler(&databaseMgr, &jwtMgr, &mailMgr, &revocationMgr)
	userRoutes(router, userHdl, jwtMgr)

	// Set up school routes
	schoolRouter := router.Group("/schools")
	schoolHdl := handlers.NewSchoolHandler(&databaseMgr)
	schoolRoutes(schoolRouter, schoolHdl, jwtMgr)

	// Set up adoption routes
	adoptionRouter := router.Group("/adoptions")
	adoptionRouter.Use(jwtMgr.JWTMiddleware())
	adoptionHdl := handlers.NewAdoptionHandler(&databaseMgr, &mailMgr)
	adoptionRoutes(adoptionRouter, adoptionHdl)

	// Set up journal routes
	journalRouter := router.Group("/journal")
	journalRouter.Use(jwtMgr.JWTMiddleware())
	journalHdl := handlers.NewJournalHandler(&databaseMgr)
	journalRoutes(journalRouter, journalHdl)

	// Set up dashboard route
	dashboardHdl := handlers.NewDashboardHandler(&databaseMgr)
	router.GET("/dashboard", jwtMgr.JWTMiddleware(), dashboardHdl.HandleGetDashboardRequest)
}

func userRoutes(router *gin.Engine, userHdl handlers.UserHdl, jwtMgr managers.JWTMgr) {
	// The credential routes are rate limited per client IP
	credentialLimiter := middleware.RateLimit(rate.Limit(1), 5)
	router.POST("/register", credentialLimiter, middleware.ValidateAndSanitizeStruct(&schemas.RegistrationRequest{}), userHdl.RegisterUser)
	router.POST("/login", credentialLimiter, middleware.ValidateAndSanitizeStruct(&schemas.LoginRequest{}), userHdl.LoginUser)
	// The following routes require the user to be authenticated
	router.GET("/me", jwtMgr.JWTMiddleware(), userHdl.HandleGetMeRequest)
	router.POST("/logout", jwtMgr.JWTMiddleware(), userHdl.LogoutUser)
}

func schoolRoutes(schoolRouter *gin.RouterGroup, schoolHdl handlers.SchoolHdl, jwtMgr managers.JWTMgr) {
	schoolRouter.GET("", schoolHdl.ListSchools)
	schoolRouter.GET("/:"+utils.SchoolIdKey, schoolHdl.HandleGetSchoolRequest)
	// Creating schools requires the admin role
	schoolRouter.POST("", jwtMgr.JWTMiddleware(), jwtMgr.RequireAdmin(),
		middleware.ValidateAndSanitizeStruct(&schemas.CreateSchoolRequest{}), schoolHdl.CreateSchool)
}

func adoptionRoutes(adoptionRouter *gin.RouterGroup, adoptionHdl handlers.AdoptionHdl) {
	adoptionRouter.GET("", adoptionHdl.ListAdoptions)
	adoptionRouter.POST("", middleware.ValidateAndSanitizeStruct(&schemas.ClaimRequest{}), adoptionHdl.ClaimSchool)
	adoptionRouter.POST("/:"+utils.AdoptionIdKey+"/notes", middleware.ValidateAndSanitizeStruct(&schemas.CreateNoteRequest{}), adoptionHdl.AppendNote)
	adoptionRouter.POST("/:"+utils.AdoptionIdKey+"/prayers", adoptionHdl.RecordPrayer)
}

func journalRoutes(journalRouter *gin.RouterGroup, journalHdl handlers.JournalHdl) {
	journalRouter.GET("", journalHdl.ListEntries)
	journalRouter.POST("", middleware.ValidateAndSanitizeStruct(&schemas.CreateJournalEntryRequest{}), journalHdl.CreateEntry)
	journalRouter.DELETE("/:"+utils.EntryIdKey, journalHdl.DeleteEntry)
}
