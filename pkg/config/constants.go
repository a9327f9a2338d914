package config

const (
	// EnvPrefix namespaces every Bookhaven environment variable.
	EnvPrefix = "BOOKHAVEN"

	AppEnvDev  = "dev"
	AppEnvProd = "prod"

	EnvDBDSN  = "BOOKHAVEN_DB_DSN"
	EnvDBHost = "BOOKHAVEN_DB_HOST"
	EnvDBUser = "BOOKHAVEN_DB_USER"
	EnvDBName = "BOOKHAVEN_DB_NAME"
)

var legacyDBEnvVars = []string{EnvDBHost, EnvDBUser, EnvDBName}
