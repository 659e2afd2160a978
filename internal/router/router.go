// Package router wires repositories, services and handlers into the gin
// engine.
package router

import (
	"fmt"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/yukikurage/it-helpdesk/internal/constants"
	apierrors "github.com/yukikurage/it-helpdesk/internal/errors"
	"github.com/yukikurage/it-helpdesk/internal/handlers"
	"github.com/yukikurage/it-helpdesk/internal/middleware"
	"github.com/yukikurage/it-helpdesk/internal/repository"
	"github.com/yukikurage/it-helpdesk/internal/services"
	"github.com/yukikurage/it-helpdesk/internal/web"
	"gorm.io/gorm"
)

type Options struct {
	DB           *gorm.DB
	SessionStore sessions.Store
	MediaRoot    string
}

func New(opts Options) (*gin.Engine, error) {
	renderer, err := web.NewRenderer()
	if err != nil {
		return nil, fmt.Errorf("failed to load templates: %w", err)
	}

	userRepo := repository.NewUserRepository(opts.DB)
	ticketRepo := repository.NewTicketRepository(opts.DB)
	assetRepo := repository.NewAssetRepository(opts.DB)

	authService := services.NewAuthService(userRepo)
	ticketService := services.NewTicketService(ticketRepo, userRepo)
	assetService := services.NewAssetService(assetRepo, userRepo)
	reportService := services.NewReportService(ticketRepo, assetRepo)

	authHandler := handlers.NewAuthHandler(authService)
	employeeHandler := handlers.NewEmployeeHandler(ticketService, assetService, reportService, opts.MediaRoot)
	adminHandler := handlers.NewAdminTicketHandler(ticketService, authService, reportService)
	assetHandler := handlers.NewAssetHandler(assetService, authService, reportService)
	healthHandler := handlers.NewHealthHandler(opts.DB)

	r := gin.New()
	r.HTMLRender = renderer
	r.Use(
		middleware.Recovery(),
		middleware.RequestLogger(),
		middleware.Metrics(),
	)

	r.StaticFS("/static", web.StaticFS())
	r.GET("/health", healthHandler.Health)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// Pages
	pages := r.Group("/")
	pages.Use(
		sessions.Sessions(constants.SessionCookieName, opts.SessionStore),
		middleware.LoadUser(authService),
	)
	{
		pages.GET("/", authHandler.Home)
		pages.GET("/login/", authHandler.LoginPage)
		pages.POST("/login/", authHandler.Login)

		authed := pages.Group("/")
		authed.Use(middleware.RequireAuth())
		{
			authed.GET("/logout/", authHandler.Logout)
			authed.POST("/logout/", authHandler.Logout)
			authed.GET("/profile/", employeeHandler.Profile)
			authed.GET("/media/*filepath", employeeHandler.ServeMedia)

			employee := authed.Group("/employee")
			{
				employee.GET("/dashboard/", employeeHandler.Dashboard)
				employee.GET("/ticket/new/", employeeHandler.NewTicketPage)
				employee.POST("/ticket/new/", employeeHandler.CreateTicket)
				employee.GET("/ticket/:id/", employeeHandler.TicketDetail)
				employee.POST("/ticket/:id/", employeeHandler.AddComment)
			}

			admin := authed.Group("/admin")
			admin.Use(middleware.RequireAdmin())
			{
				admin.GET("/dashboard/", adminHandler.Dashboard)
				admin.GET("/tickets/export/", adminHandler.Export)
				admin.GET("/tickets/:id/edit/", adminHandler.EditPage)
				admin.POST("/tickets/:id/edit/", adminHandler.Update)

				admin.GET("/assets/", assetHandler.List)
				admin.GET("/assets/add/", assetHandler.AddPage)
				admin.POST("/assets/add/", assetHandler.Add)
				admin.GET("/assets/:id/edit/", assetHandler.EditPage)
				admin.POST("/assets/:id/edit/", assetHandler.Edit)
			}
		}
	}

	r.NoRoute(
		sessions.Sessions(constants.SessionCookieName, opts.SessionStore),
		middleware.LoadUser(authService),
		apierrors.NotFound,
	)

	return r, nil
}
