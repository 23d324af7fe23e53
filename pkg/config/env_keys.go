package config

// EnvPrefix is applied by envconfig to all BookHaven variables.
const EnvPrefix = "BOOKHAVEN"

const (
	AppEnvDev  = "dev"
	AppEnvProd = "prod"
)

const (
	EnvAppEnv       = "BOOKHAVEN_APP_ENV"
	EnvLogLevel     = "BOOKHAVEN_LOG_LEVEL"
	EnvStoragePath  = "BOOKHAVEN_STORAGE_PATH"
	EnvThemeDefault = "BOOKHAVEN_THEME_DEFAULT"
	EnvResetDelay   = "BOOKHAVEN_CHECKOUT_RESET_DELAY"
)
