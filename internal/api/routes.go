package api

import (
	"net/http"

	"fittech/gym-app/internal/domain"
	"fittech/gym-app/internal/service"
	"fittech/gym-app/internal/tokenstore"

	"github.com/gin-gonic/gin"
)

func SetupRoutes(
	router *gin.Engine,
	jwtSecret string,
	revoked tokenstore.Store,
	authService service.AuthService,
	registrationService service.RegistrationService,
	bookingService service.BookingService,
	feedbackService service.FeedbackService,
	memberService service.MemberService,
	catalogService service.CatalogService,
) {

	authHandler := NewAuthHandler(authService)
	registrationHandler := NewRegistrationHandler(registrationService)
	bookingHandler := NewBookingHandler(bookingService)
	feedbackHandler := NewFeedbackHandler(feedbackService)
	profileHandler := NewProfileHandler(memberService, bookingService, feedbackService)
	catalogHandler := NewCatalogHandler(catalogService)

	authMiddleware := AuthMiddleware(jwtSecret, revoked)

	router.Use(MetricsMiddleware())

	router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})
	router.GET("/metrics", MetricsHandler())

	apiV1 := router.Group("/api/v1")
	{
		authGroup := apiV1.Group("/auth")
		{
			authGroup.POST("/register", registrationHandler.Register)
			authGroup.POST("/login", authHandler.Login)
			authGroup.POST("/trainer-login", authHandler.TrainerLogin)
			authGroup.POST("/admin-login", authHandler.AdminLogin)
		}

		// Landing page data needs no session.
		apiV1.GET("/programs", catalogHandler.ListPrograms)
		apiV1.GET("/memberships", catalogHandler.ListMemberships)
		apiV1.GET("/feedbacks", feedbackHandler.Carousel)
	}

	protected := apiV1.Group("")
	protected.Use(authMiddleware)
	{
		protected.GET("/me", authHandler.Me)
		protected.POST("/auth/logout", authHandler.Logout)

		// The booking form needs the trainer list regardless of role.
		protected.GET("/trainers", bookingHandler.ListTrainers)

		memberGroup := protected.Group("")
		memberGroup.Use(RoleMiddleware(domain.RoleMember))
		{
			memberGroup.GET("/profile", profileHandler.GetProfile)
			memberGroup.PUT("/profile", profileHandler.UpdateProfile)

			memberGroup.POST("/sessions", bookingHandler.BookSession)
			memberGroup.GET("/sessions", bookingHandler.MySessions)

			memberGroup.POST("/feedback", feedbackHandler.Submit)
			memberGroup.GET("/feedback", feedbackHandler.Own)
		}

		trainerGroup := protected.Group("/trainer")
		trainerGroup.Use(RoleMiddleware(domain.RoleTrainer))
		{
			trainerGroup.GET("/sessions", bookingHandler.TrainerSessions)
		}

		adminGroup := protected.Group("/admin")
		adminGroup.Use(RoleMiddleware(domain.RoleAdmin))
		{
			adminGroup.GET("/members", profileHandler.ListMembers)
			adminGroup.GET("/trainers", bookingHandler.ListTrainers)
		}
	}
}
