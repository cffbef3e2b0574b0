package http

import (
	stdhttp "net/http"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	adaptermiddleware "marketplace-console/internal/adapters/http/middleware"
	"marketplace-console/internal/platform/requestid"
)

type Middleware struct {
	Auth          echo.MiddlewareFunc
	XRay          echo.MiddlewareFunc
	RequestLogger echo.MiddlewareFunc
}

type Handlers struct {
	Session      *SessionHandler
	Projects     *ProjectsHandler
	Roles        *RolesHandler
	Applications *ApplicationsHandler
}

func newEcho(m Middleware) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Use(middleware.Recover())
	e.Use(middleware.RequestIDWithConfig(middleware.RequestIDConfig{
		Generator:        requestid.New,
		RequestIDHandler: adaptermiddleware.RequestIDHandler,
	}))
	if m.XRay != nil {
		e.Use(m.XRay)
	}
	if m.RequestLogger != nil {
		e.Use(m.RequestLogger)
	}
	return e
}

func NewConsoleRouter(h Handlers, m Middleware) *echo.Echo {
	e := newEcho(m)
	e.GET("/healthz", func(c echo.Context) error {
		return c.JSON(stdhttp.StatusOK, map[string]string{"status": "ok"})
	})

	g := e.Group("")
	if m.Auth != nil {
		g.Use(m.Auth)
	}
	g.GET("/", h.Session.Page)
	g.GET("/toast", h.Session.Toast)

	actions := g.Group("/actions")
	actions.POST("/base-url", h.Session.SetBaseURL)
	actions.POST("/register", h.Session.Register)
	actions.POST("/login", h.Session.Login)
	actions.POST("/logout", h.Session.Logout)
	actions.POST("/profile", h.Session.Profile)

	actions.POST("/projects", h.Projects.List)
	actions.POST("/project-detail", h.Projects.Detail)
	actions.POST("/create-project", h.Projects.Create)
	actions.POST("/own-projects", h.Projects.ListOwn)
	actions.POST("/update-project", h.Projects.Update)

	actions.POST("/create-role", h.Roles.Create)
	actions.POST("/project-roles", h.Roles.List)
	actions.POST("/update-role", h.Roles.Update)

	actions.POST("/apply", h.Applications.Apply)
	actions.POST("/my-applications", h.Applications.ListMine)
	actions.POST("/cancel-application", h.Applications.Cancel)
	actions.POST("/role-applications", h.Applications.ListForRole)
	actions.POST("/review", h.Applications.Review)
	return e
}
