package http

import (
	"go.uber.org/fx"

	"borica-qes/internal/delivery/http/handler"
	"borica-qes/internal/delivery/http/router"
)

var Module = fx.Module("http",
	fx.Provide(
		handler.NewSignHandler,
		handler.NewCertificateHandler,
		handler.NewIdentificationHandler,
		handler.NewWebhookHandler,
		handler.NewJobHandler,
		handler.NewHealthHandler,
		router.NewRouter,
	),
)
