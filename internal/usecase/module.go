package usecase

import "go.uber.org/fx"

var Module = fx.Module("usecase",
	fx.Provide(NewSignUsecase),
	fx.Provide(NewCertificateUsecase),
	fx.Provide(NewIdentificationUsecase),
	fx.Provide(NewWebhookUsecase),
)
