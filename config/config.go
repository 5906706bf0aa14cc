package config

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const (
	StorageDriverFile     = "file"
	StorageDriverPostgres = "postgres"

	FlightSourceStatic        = "static"
	FlightSourceAviationstack = "aviationstack"
)

type Config struct {
	HTTP          HTTPConfig          `yaml:"http"`
	Log           LogConfig           `yaml:"log"`
	Storage       StorageConfig       `yaml:"storage"`
	Database      DatabaseConfig      `yaml:"database"`
	Flights       FlightsConfig       `yaml:"flights"`
	Aviationstack AviationstackConfig `yaml:"aviationstack"`
	Amadeus       AmadeusConfig       `yaml:"amadeus"`
	Redis         RedisConfig         `yaml:"redis"`
	Kafka         KafkaConfig         `yaml:"kafka"`
	Mongo         MongoConfig         `yaml:"mongo"`
	Telemetry     TelemetryConfig     `yaml:"telemetry"`
}

type HTTPConfig struct {
	Address    string `yaml:"address"`
	SwaggerDir string `yaml:"swagger_dir"`
}

type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

type StorageConfig struct {
	Driver       string `yaml:"driver"`
	BookingsFile string `yaml:"bookings_file"`
}

type DatabaseConfig struct {
	DSN      string `yaml:"dsn"`
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	Name     string `yaml:"name"`
	SSLMode  string `yaml:"ssl_mode"`
}

func (d DatabaseConfig) ConnString() string {
	if d.DSN != "" {
		return d.DSN
	}
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s", d.Host, d.Port, d.User, d.Password, d.Name, d.SSLMode)
}

type FlightsConfig struct {
	Source          string `yaml:"source"`
	DatasetFile     string `yaml:"dataset_file"`
	SearchCacheTTL  int    `yaml:"search_cache_ttl_seconds"`
	DetailsCacheTTL int    `yaml:"details_cache_ttl_seconds"`
}

type AviationstackConfig struct {
	BaseURL   string `yaml:"base_url"`
	AccessKey string `yaml:"access_key"`
}

type AmadeusConfig struct {
	BaseURL      string `yaml:"base_url"`
	ClientID     string `yaml:"client_id"`
	ClientSecret string `yaml:"client_secret"`
}

type RedisConfig struct {
	Addr     string `yaml:"addr"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
}

type KafkaConfig struct {
	Brokers            []string `yaml:"brokers"`
	BookingTopic       string   `yaml:"booking_topic"`
	NotificationsTopic string   `yaml:"notifications_topic"`
	GroupID            string   `yaml:"group_id"`
}

type MongoConfig struct {
	URI      string `yaml:"uri"`
	Database string `yaml:"database"`
}

type TelemetryConfig struct {
	OTLPEndpoint string `yaml:"otlp_endpoint"`
	ServiceName  string `yaml:"service_name"`
}

// LoadConfig reads the YAML file at path, then applies .env and environment
// overrides for secrets and paths.
func LoadConfig(path string) (*Config, error) {
	_ = godotenv.Load()

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	cfg.applyEnv()
	cfg.applyDefaults()

	return &cfg, nil
}

func (c *Config) applyEnv() {
	overrides := map[string]*string{
		EnvAviationstackAccessKey: &c.Aviationstack.AccessKey,
		EnvAmadeusClientID:        &c.Amadeus.ClientID,
		EnvAmadeusClientSecret:    &c.Amadeus.ClientSecret,
		EnvBookingsFile:           &c.Storage.BookingsFile,
		EnvDatabaseDSN:            &c.Database.DSN,
		EnvLogLevel:               &c.Log.Level,
	}
	for key, target := range overrides {
		if v, ok := os.LookupEnv(key); ok && v != "" {
			*target = v
		}
	}
}

func (c *Config) applyDefaults() {
	setDefault(&c.HTTP.Address, DefaultHTTPAddress)
	setDefault(&c.Log.Level, DefaultLogLevel)
	setDefault(&c.Log.Format, DefaultLogFormat)
	setDefault(&c.Storage.Driver, StorageDriverFile)
	setDefault(&c.Storage.BookingsFile, DefaultBookingsFile)
	setDefault(&c.Flights.Source, FlightSourceStatic)
	setDefault(&c.Flights.DatasetFile, DefaultDatasetFile)
	setDefault(&c.Aviationstack.BaseURL, DefaultAviationstackURL)
	setDefault(&c.Amadeus.BaseURL, DefaultAmadeusURL)
	setDefault(&c.Mongo.Database, DefaultMongoDatabase)
	setDefault(&c.Telemetry.ServiceName, DefaultServiceName)

	if c.Flights.SearchCacheTTL == 0 {
		c.Flights.SearchCacheTTL = DefaultSearchCacheTTLSeconds
	}
	if c.Flights.DetailsCacheTTL == 0 {
		c.Flights.DetailsCacheTTL = DefaultDetailsCacheTTLSeconds
	}
}

func setDefault(field *string, value string) {
	if *field == "" {
		*field = value
	}
}
