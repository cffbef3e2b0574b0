package main

import (
	"context"
	"net/http"
	"os"

	"github.com/aws/aws-xray-sdk-go/xray"
	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	adaptermiddleware "marketplace-console/internal/adapters/http/middleware"
	adapterlogger "marketplace-console/internal/adapters/logger"
	"marketplace-console/internal/adapters/notify"
	"marketplace-console/internal/application"
	"marketplace-console/internal/domain"
	"marketplace-console/internal/infrastructure/auth"
	"marketplace-console/internal/infrastructure/backend"
	"marketplace-console/internal/infrastructure/config"
	httpiface "marketplace-console/internal/interfaces/http"
)

func main() {
	// a missing .env is fine; the environment and defaults still apply
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		adapterlogger.New("error").Error(context.Background(), "configuration error", "error", err)
		os.Exit(1)
	}
	logger := adapterlogger.New(cfg.LogLevel)

	httpClient := &http.Client{Timeout: cfg.BackendTimeout}
	if cfg.XRayEnabled {
		xray.Configure(xray.Config{LogLevel: "error"})
		httpClient = xray.Client(httpClient)
	}

	session := domain.NewSession(cfg.BackendBaseURL)
	gateway := backend.NewClient(session, httpClient, logger)

	authSvc := application.NewAuthService(gateway, session, logger)
	projectSvc := application.NewProjectService(gateway)
	roleSvc := application.NewRoleService(gateway)
	appSvc := application.NewApplicationService(gateway)

	views, err := httpiface.NewViews()
	if err != nil {
		logger.Error(context.Background(), "failed to parse templates", "error", err)
		os.Exit(1)
	}
	resp := httpiface.NewResponder(views, notify.New(cfg.NotifyDuration))

	authMode, err := adaptermiddleware.ParseAuthMode(cfg.AuthMode)
	if err != nil {
		logger.Error(context.Background(), "configuration error", "error", err)
		os.Exit(1)
	}
	var cognitoHandler echo.MiddlewareFunc
	if authMode == adaptermiddleware.ModeCognito {
		cognitoHandler = auth.NewCognitoMiddleware(cfg.CognitoUserPoolID, cfg.AWSRegion).Handler
	}
	authMiddleware, err := adaptermiddleware.AuthMiddleware(authMode, cfg.ConsoleAPIKey, cognitoHandler)
	if err != nil {
		logger.Error(context.Background(), "failed to initialize auth middleware", "error", err)
		os.Exit(1)
	}
	mw := httpiface.Middleware{
		Auth:          authMiddleware,
		RequestLogger: adaptermiddleware.RequestLogger(logger),
	}
	if cfg.XRayEnabled {
		mw.XRay = adaptermiddleware.XRayMiddleware("marketplace-console")
	}

	e := httpiface.NewConsoleRouter(httpiface.Handlers{
		Session:      httpiface.NewSessionHandler(resp, session, authSvc),
		Projects:     httpiface.NewProjectsHandler(resp, projectSvc),
		Roles:        httpiface.NewRolesHandler(resp, roleSvc),
		Applications: httpiface.NewApplicationsHandler(resp, appSvc),
	}, mw)
	logger.Info(context.Background(), "starting console", "port", cfg.Port, "backend", cfg.BackendBaseURL, "auth_mode", string(authMode))
	e.Logger.Fatal(e.Start(":" + cfg.Port))
}
