package config

const (
	DefaultHTTPAddress  = ":8080"
	DefaultLogLevel     = "info"
	DefaultLogFormat    = "json"
	DefaultBookingsFile = "data/bookings.json"
	DefaultDatasetFile  = "data/flights.json"

	DefaultAviationstackURL = "https://api.aviationstack.com/v1"
	DefaultAmadeusURL       = "https://test.api.amadeus.com"

	DefaultMongoDatabase = "flightbooking"
	DefaultServiceName   = "flightbooking"

	DefaultSearchCacheTTLSeconds  = 60
	DefaultDetailsCacheTTLSeconds = 300
)

const (
	EnvConfigPath             = "CONFIG_PATH"
	EnvAviationstackAccessKey = "AVIATIONSTACK_ACCESS_KEY"
	EnvAmadeusClientID        = "AMADEUS_CLIENT_ID"
	EnvAmadeusClientSecret    = "AMADEUS_CLIENT_SECRET"
	EnvBookingsFile           = "BOOKINGS_FILE"
	EnvDatabaseDSN            = "DATABASE_DSN"
	EnvLogLevel               = "LOG_LEVEL"
)
