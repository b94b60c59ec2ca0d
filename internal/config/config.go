package config

import (
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Config holds application configuration.
type Config struct {
	AppName     string
	AppVersion  string
	Environment string

	LogLevel  string
	LogFormat string

	DBType            string
	DBHost            string
	DBPort            string
	DBName            string
	DBUser            string
	DBPassword        string
	DBSSLMode         string
	DBMaxIdleConn     int
	DBMaxOpenConn     int
	DBConnMaxLifetime int

	TrinoHost    string
	TrinoPort    string
	TrinoUser    string
	TrinoCatalog string
	TrinoSchema  string

	HDFSNamenodeURL string
	HDFSDataURL     string
	HDFSRawOrders   string
	HDFSRawStock    string
	HDFSOutputDir   string

	OutputDir string
	LogsDir   string

	ScheduleAt         string
	PinnedMOQWarehouse string
}

// Load loads configuration from environment variables and .env file.
func Load() Config {
	_ = godotenv.Load()

	return Config{
		AppName:     getenv("APP_SERVICE", "procura"),
		AppVersion:  getenv("APP_VERSION", "0.1.0"),
		Environment: getenv("ENVIRONMENT", "development"),

		LogLevel:  getenv("LOG_LEVEL", "info"),
		LogFormat: getenv("LOG_FORMAT", "json"),

		DBType:            getenv("DATABASE_TYPE", "postgres"),
		DBHost:            getenv("POSTGRES_HOST", "postgres"),
		DBPort:            getenv("POSTGRES_PORT", "5432"),
		DBName:            getenv("POSTGRES_DB", "procurement"),
		DBUser:            getenv("POSTGRES_USER", "admin"),
		DBPassword:        getenv("POSTGRES_PASSWORD", "admin123"),
		DBSSLMode:         getenv("POSTGRES_SSLMODE", "disable"),
		DBMaxIdleConn:     getenvInt("POSTGRES_MAX_IDLE_CONN", 2),
		DBMaxOpenConn:     getenvInt("POSTGRES_MAX_OPEN_CONN", 5),
		DBConnMaxLifetime: getenvInt("POSTGRES_CONN_MAX_LIFETIME", 300),

		TrinoHost:    getenv("TRINO_HOST", "trino"),
		TrinoPort:    getenv("TRINO_PORT", "8080"),
		TrinoUser:    getenv("TRINO_USER", "trino"),
		TrinoCatalog: getenv("TRINO_CATALOG", "hive"),
		TrinoSchema:  getenv("TRINO_SCHEMA", "warehouse"),

		HDFSNamenodeURL: getenv("HDFS_URL", "http://namenode:9870"),
		HDFSDataURL:     getenv("HDFS_DATA_URL", "hdfs://namenode:9000"),
		HDFSRawOrders:   getenv("HDFS_RAW_ORDERS", "/data/raw/orders"),
		HDFSRawStock:    getenv("HDFS_RAW_STOCK", "/data/raw/stock"),
		HDFSOutputDir:   getenv("HDFS_OUTPUT_DIR", "/data/output/supplier_orders"),

		OutputDir: getenv("OUTPUT_DIR", "/data/output/supplier_orders"),
		LogsDir:   getenv("LOGS_DIR", "/data/logs"),

		ScheduleAt:         getenv("SCHEDULE_AT", "22:00"),
		PinnedMOQWarehouse: getenv("MOQ_WAREHOUSE", "WH001"),
	}
}

// TrinoDSN builds the trino-go-client connection string.
func (c Config) TrinoDSN() string {
	return "http://" + c.TrinoUser + "@" + c.TrinoHost + ":" + c.TrinoPort +
		"?catalog=" + c.TrinoCatalog + "&schema=" + c.TrinoSchema
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getenvInt(key string, def int) int {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return def
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return def
	}
	return parsed
}
