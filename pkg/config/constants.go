package config

const (
	// EnvPrefix scopes every environment variable the storefront reads.
	EnvPrefix = "TEAGHOR"

	AppEnvDev  = "development"
	AppEnvProd = "production"

	EnvAppEnv   = "TEAGHOR_APP_ENV"
	EnvPort     = "TEAGHOR_APP_PORT"
	EnvDBDSN    = "TEAGHOR_DB_DSN"
	EnvDBHost   = "TEAGHOR_DB_HOST"
	EnvDBUser   = "TEAGHOR_DB_USER"
	EnvDBName   = "TEAGHOR_DB_NAME"
	EnvRedisURL = "TEAGHOR_REDIS_URL"

	EnvSessionSecret = "TEAGHOR_SESSION_SECRET"
	EnvSessionIssuer = "TEAGHOR_SESSION_ISSUER"
)

var legacyDBEnvVars = []string{EnvDBHost, EnvDBUser, EnvDBName}
