package config

import (
	"log"
	"os"
	"sync"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Cache    CacheConfig
	App      AppConfig
	Storage  StorageConfig
	Engine   EngineConfig
}

type ServerConfig struct {
	Port           string
	Mode           string
	AllowedOrigins []string
}

type DatabaseConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
	SSLMode  string
}

type CacheConfig struct {
	Enabled       bool
	RedisURL      string
	RedisHost     string
	RedisPort     string
	RedisPassword string
	RedisDB       int
	TTLSeconds    int
}

type AppConfig struct {
	InputDir  string
	OutputDir string
	StateFile string
	LogLevel  string
}

type StorageConfig struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	Bucket    string
	UseSSL    bool

	DriveFolderID string
}

// EngineConfig carries every threshold the decision engines use. Components
// receive it by value; nothing reads these from ambient state.
type EngineConfig struct {
	// Risk / discount ladder over % rotation consumed.
	RotationThresholdLow  float64
	RotationThresholdMid  float64
	RotationThresholdHigh float64

	// ABC cumulative-share cutoffs.
	ABCCutoffA float64
	ABCCutoffB float64

	// Discount tiers matching the rotation ladder.
	DiscountTiers [4]int

	// Minimum stock as weeks of coverage per category.
	CoverageWeeks map[string]float64

	// Correction behavior.
	AllowNegativeOrders bool
	SwingAlertRatio     float64
	StockAlertThreshold float64
}

// DefaultEngineConfig returns the production ladder: 65/100/150 rotation
// thresholds, 80/95 ABC cutoffs, 0/10/20/30 discounts and the A:1.5 B:1.0
// C:0.5 D:0 coverage policy.
func DefaultEngineConfig() EngineConfig {
	return EngineConfig{
		RotationThresholdLow:  65,
		RotationThresholdMid:  100,
		RotationThresholdHigh: 150,
		ABCCutoffA:            80,
		ABCCutoffB:            95,
		DiscountTiers:         [4]int{0, 10, 20, 30},
		CoverageWeeks: map[string]float64{
			"A": 1.5,
			"B": 1.0,
			"C": 0.5,
			"D": 0.0,
		},
		AllowNegativeOrders: false,
		SwingAlertRatio:     0.5,
		StockAlertThreshold: 0,
	}
}

var (
	once     sync.Once
	instance *Config
)

func Load() *Config {
	once.Do(func() {
		_ = godotenv.Load()

		viper.SetDefault("SERVER_PORT", "8080")
		viper.SetDefault("SERVER_MODE", "debug")
		viper.SetDefault("SERVER_ALLOWED_ORIGINS", []string{"*"})

		viper.SetDefault("DB_HOST", "localhost")
		viper.SetDefault("DB_PORT", "5432")
		viper.SetDefault("DB_USER", "postgres")
		viper.SetDefault("DB_PASSWORD", "postgres")
		viper.SetDefault("DB_NAME", "reposicion")
		viper.SetDefault("DB_SSLMODE", "disable")

		viper.SetDefault("CACHE_ENABLED", false)
		viper.SetDefault("REDIS_URL", "")
		viper.SetDefault("REDIS_HOST", "127.0.0.1")
		viper.SetDefault("REDIS_PORT", "6379")
		viper.SetDefault("REDIS_PASSWORD", "")
		viper.SetDefault("REDIS_DB", 0)
		viper.SetDefault("CACHE_TTL_SECONDS", 300)

		viper.SetDefault("APP_INPUT_DIR", "./data/input")
		viper.SetDefault("APP_OUTPUT_DIR", "./data/output")
		viper.SetDefault("APP_STATE_FILE", "./data/state/run_state.json")
		viper.SetDefault("APP_LOG_LEVEL", "info")

		viper.SetDefault("STORAGE_ENDPOINT", "")
		viper.SetDefault("STORAGE_ACCESS_KEY", "")
		viper.SetDefault("STORAGE_SECRET_KEY", "")
		viper.SetDefault("STORAGE_BUCKET", "pedidos")
		viper.SetDefault("STORAGE_USE_SSL", true)
		viper.SetDefault("DRIVE_FOLDER_ID", "")

		viper.SetDefault("ENGINE_ROTATION_LOW", 65.0)
		viper.SetDefault("ENGINE_ROTATION_MID", 100.0)
		viper.SetDefault("ENGINE_ROTATION_HIGH", 150.0)
		viper.SetDefault("ENGINE_ABC_CUTOFF_A", 80.0)
		viper.SetDefault("ENGINE_ABC_CUTOFF_B", 95.0)
		viper.SetDefault("ENGINE_ALLOW_NEGATIVE_ORDERS", false)
		viper.SetDefault("ENGINE_SWING_ALERT_RATIO", 0.5)
		viper.SetDefault("ENGINE_STOCK_ALERT_THRESHOLD", 0.0)
		viper.SetDefault("ENGINE_COVERAGE_WEEKS_A", 1.5)
		viper.SetDefault("ENGINE_COVERAGE_WEEKS_B", 1.0)
		viper.SetDefault("ENGINE_COVERAGE_WEEKS_C", 0.5)
		viper.SetDefault("ENGINE_COVERAGE_WEEKS_D", 0.0)

		viper.AutomaticEnv()

		ensureDir(viper.GetString("APP_INPUT_DIR"))
		ensureDir(viper.GetString("APP_OUTPUT_DIR"))

		engine := DefaultEngineConfig()
		engine.RotationThresholdLow = viper.GetFloat64("ENGINE_ROTATION_LOW")
		engine.RotationThresholdMid = viper.GetFloat64("ENGINE_ROTATION_MID")
		engine.RotationThresholdHigh = viper.GetFloat64("ENGINE_ROTATION_HIGH")
		engine.ABCCutoffA = viper.GetFloat64("ENGINE_ABC_CUTOFF_A")
		engine.ABCCutoffB = viper.GetFloat64("ENGINE_ABC_CUTOFF_B")
		engine.AllowNegativeOrders = viper.GetBool("ENGINE_ALLOW_NEGATIVE_ORDERS")
		engine.SwingAlertRatio = viper.GetFloat64("ENGINE_SWING_ALERT_RATIO")
		engine.StockAlertThreshold = viper.GetFloat64("ENGINE_STOCK_ALERT_THRESHOLD")
		engine.CoverageWeeks = map[string]float64{
			"A": viper.GetFloat64("ENGINE_COVERAGE_WEEKS_A"),
			"B": viper.GetFloat64("ENGINE_COVERAGE_WEEKS_B"),
			"C": viper.GetFloat64("ENGINE_COVERAGE_WEEKS_C"),
			"D": viper.GetFloat64("ENGINE_COVERAGE_WEEKS_D"),
		}

		instance = &Config{
			Server: ServerConfig{
				Port:           viper.GetString("SERVER_PORT"),
				Mode:           viper.GetString("SERVER_MODE"),
				AllowedOrigins: viper.GetStringSlice("SERVER_ALLOWED_ORIGINS"),
			},
			Database: DatabaseConfig{
				Host:     viper.GetString("DB_HOST"),
				Port:     viper.GetString("DB_PORT"),
				User:     viper.GetString("DB_USER"),
				Password: viper.GetString("DB_PASSWORD"),
				DBName:   viper.GetString("DB_NAME"),
				SSLMode:  viper.GetString("DB_SSLMODE"),
			},
			Cache: CacheConfig{
				Enabled:       viper.GetBool("CACHE_ENABLED"),
				RedisURL:      viper.GetString("REDIS_URL"),
				RedisHost:     viper.GetString("REDIS_HOST"),
				RedisPort:     viper.GetString("REDIS_PORT"),
				RedisPassword: viper.GetString("REDIS_PASSWORD"),
				RedisDB:       viper.GetInt("REDIS_DB"),
				TTLSeconds:    viper.GetInt("CACHE_TTL_SECONDS"),
			},
			App: AppConfig{
				InputDir:  viper.GetString("APP_INPUT_DIR"),
				OutputDir: viper.GetString("APP_OUTPUT_DIR"),
				StateFile: viper.GetString("APP_STATE_FILE"),
				LogLevel:  viper.GetString("APP_LOG_LEVEL"),
			},
			Storage: StorageConfig{
				Endpoint:      viper.GetString("STORAGE_ENDPOINT"),
				AccessKey:     viper.GetString("STORAGE_ACCESS_KEY"),
				SecretKey:     viper.GetString("STORAGE_SECRET_KEY"),
				Bucket:        viper.GetString("STORAGE_BUCKET"),
				UseSSL:        viper.GetBool("STORAGE_USE_SSL"),
				DriveFolderID: viper.GetString("DRIVE_FOLDER_ID"),
			},
			Engine: engine,
		}
	})

	return instance
}

func ensureDir(dir string) {
	if _, err := os.Stat(dir); os.IsNotExist(err) {
		if err := os.MkdirAll(dir, 0755); err != nil {
			log.Fatalf("Failed to create directory %s: %v", dir, err)
		}
	}
}
