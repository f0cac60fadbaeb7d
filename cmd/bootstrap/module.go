package bootstrap

import (
	"grocery-api/cmd/bootstrap/components"

	"go.uber.org/fx"
)

var Module = fx.Options(
	ConfigModule,
	LoggerModule,
	DBModule,
	RedisModule,
	JWTModule,
	components.PersistenceModule,
	components.AdapterModule,
	components.UseCaseModule,
	components.HandlerModule,
	components.WorkerModule,
)
