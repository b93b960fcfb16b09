package router

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"

	"borica-qes/internal/config"
	"borica-qes/internal/delivery/http/handler"
)

type Router struct {
	app                   *fiber.App
	config                *config.Config
	signHandler           *handler.SignHandler
	certificateHandler    *handler.CertificateHandler
	identificationHandler *handler.IdentificationHandler
	webhookHandler        *handler.WebhookHandler
	jobHandler            *handler.JobHandler
	healthHandler         *handler.HealthHandler
}

func NewRouter(
	cfg *config.Config,
	signHandler *handler.SignHandler,
	certificateHandler *handler.CertificateHandler,
	identificationHandler *handler.IdentificationHandler,
	webhookHandler *handler.WebhookHandler,
	jobHandler *handler.JobHandler,
	healthHandler *handler.HealthHandler,
) *Router {
	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ErrorHandler: customErrorHandler,
	})

	return &Router{
		app:                   app,
		config:                cfg,
		signHandler:           signHandler,
		certificateHandler:    certificateHandler,
		identificationHandler: identificationHandler,
		webhookHandler:        webhookHandler,
		jobHandler:            jobHandler,
		healthHandler:         healthHandler,
	}
}

func (r *Router) Setup() *fiber.App {
	// Middleware
	r.app.Use(recover.New())
	r.app.Use(requestid.New())
	r.app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,PUT,DELETE,OPTIONS",
		AllowHeaders: "Origin,Content-Type,Accept,Authorization",
	}))

	if r.config.IsDevelopment() {
		r.app.Use(logger.New(logger.Config{
			Format: "[${time}] ${status} - ${latency} ${method} ${path}\n",
		}))
	}

	// Health check route
	r.app.Get("/health", r.healthHandler.Health)

	// Webhook routes (at root level for external callbacks)
	r.app.Post("/webhook/borica", r.webhookHandler.HandleSignCallback)

	// API v1 routes
	api := r.app.Group("/api/v1")
	{
		// Signing routes
		sign := api.Group("/sign")
		{
			sign.Post("", r.signHandler.Submit)
			sign.Post("/wait", r.signHandler.SubmitAndWait)
			sign.Post("/qr", r.signHandler.SubmitViaQr)
			sign.Get("/poll", r.signHandler.Poll)
			sign.Get("/status/:callbackId", r.signHandler.GetStatus)
			sign.Get("/content/:contentId", r.signHandler.DownloadContent)
		}

		// Certificate routes
		cert := api.Group("/cert")
		{
			cert.Post("/auth", r.certificateHandler.GetClientToken)
			cert.Get("/identity/:idType/:value", r.certificateHandler.GetCertificateByIdentity)
			cert.Get("/:profileId", r.certificateHandler.GetCertificateByProfileID)
		}

		// Identification routes
		identification := api.Group("/identification")
		{
			identification.Post("/websession", r.identificationHandler.StartWebSession)
			identification.Post("/registration/:webSessionId", r.identificationHandler.CreateRegistration)
			identification.Get("/result/:resultId/:state/:sessionId", r.identificationHandler.GetWebResult)
			identification.Post("/signsession", r.identificationHandler.StartOTCSignSession)
		}

		// Job tracking routes
		jobs := api.Group("/jobs")
		{
			jobs.Get("", r.jobHandler.ListJobs)
			jobs.Get("/:callbackId", r.jobHandler.GetJob)
		}

		// API log routes
		logs := api.Group("/logs")
		{
			logs.Get("", r.jobHandler.ListAPILogs)
		}
	}

	return r.app
}

func (r *Router) GetApp() *fiber.App {
	return r.app
}

func customErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError

	if e, ok := err.(*fiber.Error); ok {
		code = e.Code
	}

	return c.Status(code).JSON(fiber.Map{
		"success": false,
		"message": err.Error(),
		"error": fiber.Map{
			"code":    code,
			"message": err.Error(),
		},
	})
}
