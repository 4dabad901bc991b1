package main

import (
	"log"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"researchhub/internal/config"
	"researchhub/internal/database"
	"researchhub/internal/domain"
	"researchhub/internal/middleware"
	"researchhub/internal/modules/auth"
	"researchhub/internal/modules/content"
	"researchhub/internal/modules/moderation"
	"researchhub/internal/modules/profile"
	"researchhub/internal/modules/settings"
	"researchhub/internal/modules/team"
	jwtsvc "researchhub/internal/pkg/jwt"
	"researchhub/internal/repository"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.LoadRuntimeConfig()
	if err != nil {
		log.Fatal(err)
	}

	db, err := database.Connect(cfg.DatabaseURL)
	if err != nil {
		log.Fatal(err)
	}

	accountRepo := repository.NewAccountRepository(db)
	registrationRepo := repository.NewRegistrationRepository(db)
	contentRepo := repository.NewContentRepository(db)
	teamRepo := repository.NewTeamRepository(db)
	settingRepo := repository.NewSettingRepository(db)

	j := jwtsvc.New(cfg.JWTSecret, cfg.JWTAccessTTL)
	policy := domain.TransitionPolicy{AllowRejectedReapproval: cfg.AllowRejectedReapproval}

	authService := auth.NewService(accountRepo, registrationRepo, j)
	authHandler := auth.NewHandler(authService)

	moderationService := moderation.NewService(accountRepo, registrationRepo, contentRepo, policy)
	moderationHandler := moderation.NewHandler(moderationService)

	contentService := content.NewService(contentRepo)
	contentHandler := content.NewHandler(contentService)

	profileService := profile.NewService(accountRepo, contentRepo)
	profileHandler := profile.NewHandler(profileService)

	teamService := team.NewService(teamRepo)
	teamHandler := team.NewHandler(teamService)

	settingsService := settings.NewService(settingRepo)
	settingsHandler := settings.NewHandler(settingsService)

	r := gin.Default()
	r.Use(middleware.CORS())
	r.Use(middleware.ErrorLogger())

	v1 := r.Group("/api/v1")
	{
		// public
		authHandler.RegisterRoutes(v1)
		contentHandler.RegisterPublicRoutes(v1)
		teamHandler.RegisterPublicRoutes(v1)
		settingsHandler.RegisterPublicRoutes(v1)

		// protected: capability checks run against the freshly
		// loaded account, so moderation takes effect immediately
		protected := v1.Group("/")
		protected.Use(middleware.AuthRequired(j, accountRepo))
		{
			authHandler.RegisterProtectedRoutes(protected)
			profileHandler.RegisterRoutes(protected)
			contentHandler.RegisterProtectedRoutes(protected)
		}

		admin := v1.Group("/admin")
		admin.Use(middleware.AuthRequired(j, accountRepo))
		{
			accounts := admin.Group("/")
			accounts.Use(middleware.RequireCapability(domain.CapModerateAccounts))
			moderationHandler.RegisterRoutes(accounts)

			contentAdmin := admin.Group("/")
			contentAdmin.Use(middleware.RequireCapability(domain.CapModerateContent))
			contentHandler.RegisterAdminRoutes(contentAdmin)

			teamAdmin := admin.Group("/")
			teamAdmin.Use(middleware.RequireCapability(domain.CapManageTeamMembers))
			teamHandler.RegisterAdminRoutes(teamAdmin)

			settingsAdmin := admin.Group("/")
			settingsAdmin.Use(middleware.RequireCapability(domain.CapManageSiteSettings))
			settingsHandler.RegisterAdminRoutes(settingsAdmin)
		}
	}

	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatal(err)
	}
}
