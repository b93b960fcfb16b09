package repository

import (
	"go.uber.org/fx"

	"borica-qes/internal/infrastructure/httpclient"
)

var Module = fx.Module("repository",
	fx.Provide(NewSignRepository),
	fx.Provide(NewCertificateRepository),
	fx.Provide(NewIdentificationRepository),
	fx.Provide(NewSignJobRepository),
	fx.Provide(
		fx.Annotate(
			NewAPILogRepository,
			fx.As(new(httpclient.APILogSaver)),
			fx.As(new(APILogRepository)),
		),
	),
)
