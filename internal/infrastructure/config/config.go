package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config 應用配置
type Config struct {
	App         AppConfig         `mapstructure:"app"`
	Server      ServerConfig      `mapstructure:"server"`
	OpenRouter  OpenRouterConfig  `mapstructure:"openrouter"`
	Translation TranslationConfig `mapstructure:"translation"`
	Pipeline    PipelineConfig    `mapstructure:"pipeline"`
	OCR         OCRConfig         `mapstructure:"ocr"`
	Cache       CacheConfig       `mapstructure:"cache"`
	RateLimit   RateLimitConfig   `mapstructure:"rate_limit"`
	Image       ImageConfig       `mapstructure:"image"`
	Ingest      IngestConfig      `mapstructure:"ingest"`
	DedupWindow time.Duration     `mapstructure:"dedup_window"`
	LogLevel    string            `mapstructure:"log_level"`
}

// AppConfig 應用程式設定
type AppConfig struct {
	Env      string `mapstructure:"env"`
	Debug    bool   `mapstructure:"debug"`
	LogLevel string `mapstructure:"log_level"`
	Version  string `mapstructure:"version"`
	Name     string `mapstructure:"name"`
}

// ServerConfig 服務器配置
type ServerConfig struct {
	Port         int           `mapstructure:"port"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
	IdleTimeout  time.Duration `mapstructure:"idle_timeout"`
}

// OpenRouterConfig 遠端模型（精煉與高階翻譯）配置
type OpenRouterConfig struct {
	Enabled   bool          `mapstructure:"enabled"`
	APIKey    string        `mapstructure:"api_key"`
	Model     string        `mapstructure:"model"`
	MaxTokens int           `mapstructure:"max_tokens"`
	Timeout   time.Duration `mapstructure:"timeout"`
}

// TranslationConfig 翻譯服務配置
// Endpoints 依序嘗試，全部失敗時退回靜態詞典替換
type TranslationConfig struct {
	Enabled   bool          `mapstructure:"enabled"`
	Endpoints []string      `mapstructure:"endpoints"`
	Timeout   time.Duration `mapstructure:"timeout"`
}

// PipelineConfig 抽取管線的可調參數
// 門檻值為經驗常數，來源未文件化，保留為設定而非寫死
type PipelineConfig struct {
	SimilarityThreshold float64 `mapstructure:"similarity_threshold"` // OCR 更正接受門檻
	ClassifierThreshold int     `mapstructure:"classifier_threshold"` // 判定為食譜的最低分數
	ClassifierMinLen    int     `mapstructure:"classifier_min_len"`
	ClassifierMaxLen    int     `mapstructure:"classifier_max_len"`
	MaxInstructions     int     `mapstructure:"max_instructions"`
}

// OCRConfig 本機 OCR 配置
type OCRConfig struct {
	Languages []string `mapstructure:"languages"`
	Workers   int      `mapstructure:"workers"`
	MaxQueue  int      `mapstructure:"max_queue"`
}

// CacheConfig 緩存配置
type CacheConfig struct {
	Enabled         bool          `mapstructure:"enabled"`
	Backend         string        `mapstructure:"backend"` // memory | redis
	RedisAddr       string        `mapstructure:"redis_addr"`
	MaxSize         int           `mapstructure:"max_size"`
	TTL             time.Duration `mapstructure:"ttl"`
	CleanupInterval time.Duration `mapstructure:"cleanup_interval"`
}

// RateLimitConfig 速率限制配置
type RateLimitConfig struct {
	Enabled  bool          `mapstructure:"enabled"`
	Requests int           `mapstructure:"requests"`
	Window   time.Duration `mapstructure:"window"`
}

// ImageConfig 圖片配置
type ImageConfig struct {
	MaxSizeBytes int64 `mapstructure:"max_size_bytes"`
}

// IngestConfig 網頁文字擷取配置
type IngestConfig struct {
	Timeout      time.Duration `mapstructure:"timeout"`
	MaxBodyBytes int64         `mapstructure:"max_body_bytes"`
}

// LoadConfig 載入設定
func LoadConfig() (*Config, error) {
	// 加載 .env 文件
	if err := godotenv.Load(); err != nil {
		return nil, err
	}

	// 設定預設值
	setDefaults()

	// 設定環境變數前綴
	viper.SetEnvPrefix("APP")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	// 綁定環境變量
	viper.BindEnv("openrouter.api_key", "OPENROUTER_API_KEY")
	viper.BindEnv("openrouter.model", "OPENROUTER_MODEL")
	viper.BindEnv("openrouter.max_tokens", "MODEL_MAX_TOKENS")
	viper.BindEnv("translation.endpoints", "TRANSLATION_ENDPOINTS")
	viper.BindEnv("cache.enabled", "CACHE_ENABLED")
	viper.BindEnv("cache.backend", "CACHE_BACKEND")
	viper.BindEnv("cache.redis_addr", "CACHE_REDIS_ADDR")
	viper.BindEnv("rate_limit.enabled", "RATE_LIMIT_ENABLED")
	viper.BindEnv("rate_limit.requests", "RATE_LIMIT_REQUESTS")
	viper.BindEnv("rate_limit.window", "RATE_LIMIT_WINDOW")
	viper.BindEnv("dedup_window", "DEDUP_WINDOW")
	viper.BindEnv("log_level", "LOG_LEVEL")

	// 設定設定檔名稱和路徑
	viper.SetConfigName(".env")
	viper.SetConfigType("env")
	viper.AddConfigPath(".")

	// 讀取設定檔
	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	// 添加調試日誌（logger 尚未初始化，改用 fmt.Println）
	fmt.Println("Loading configuration", "openrouter_api_key:", maskAPIKey(viper.GetString("openrouter.api_key")), "openrouter_model:", viper.GetString("openrouter.model"))

	// 解析設定
	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	// 驗證必要設定
	if err := validateConfig(&config); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &config, nil
}

// maskAPIKey 遮罩 API Key，只顯示前後各 4 個字符
func maskAPIKey(key string) string {
	if len(key) <= 8 {
		return "****"
	}
	return key[:4] + "..." + key[len(key)-4:]
}

// setDefaults 設定預設值
func setDefaults() {
	// 應用程式設定
	viper.SetDefault("app.env", "development")
	viper.SetDefault("app.debug", true)
	viper.SetDefault("app.log_level", "info")
	viper.SetDefault("app.version", "1.0.0")
	viper.SetDefault("app.name", "recipe-extractor")

	// 伺服器設定
	viper.SetDefault("server.port", 8080)
	viper.SetDefault("server.read_timeout", "30s")
	viper.SetDefault("server.write_timeout", "30s")
	viper.SetDefault("server.idle_timeout", "120s")

	// 遠端模型設定
	viper.SetDefault("openrouter.enabled", false)
	viper.SetDefault("openrouter.model", "qwen/qwen2.5-vl-72b-instruct:free")
	viper.SetDefault("openrouter.max_tokens", 2000)
	viper.SetDefault("openrouter.timeout", "15s")

	// 翻譯服務設定
	viper.SetDefault("translation.enabled", true)
	viper.SetDefault("translation.endpoints", []string{
		"https://libretranslate.com/translate",
		"https://translate.argosopentech.com/translate",
	})
	viper.SetDefault("translation.timeout", "15s")

	// 管線門檻設定
	viper.SetDefault("pipeline.similarity_threshold", 0.6)
	viper.SetDefault("pipeline.classifier_threshold", 2)
	viper.SetDefault("pipeline.classifier_min_len", 120)
	viper.SetDefault("pipeline.classifier_max_len", 50000)
	viper.SetDefault("pipeline.max_instructions", 10)

	// OCR 設定
	viper.SetDefault("ocr.languages", []string{"eng"})
	viper.SetDefault("ocr.workers", 3)
	viper.SetDefault("ocr.max_queue", 20)

	// 快取設定
	viper.SetDefault("cache.enabled", true)
	viper.SetDefault("cache.backend", "memory")
	viper.SetDefault("cache.redis_addr", "localhost:6379")
	viper.SetDefault("cache.max_size", 1000)
	viper.SetDefault("cache.ttl", "24h")
	viper.SetDefault("cache.cleanup_interval", "10m")

	// 限流設定
	viper.SetDefault("rate_limit.enabled", true)
	viper.SetDefault("rate_limit.requests", 100)
	viper.SetDefault("rate_limit.window", "1m")

	// 圖片設定
	viper.SetDefault("image.max_size_bytes", 10*1024*1024) // 10MB

	// 網頁擷取設定
	viper.SetDefault("ingest.timeout", "10s")
	viper.SetDefault("ingest.max_body_bytes", 2*1024*1024)

	// dedup window 預設
	viper.SetDefault("dedup_window", "1s")
}

// validateConfig 驗證設定
func validateConfig(config *Config) error {
	// 驗證伺服器設定
	if config.Server.Port == 0 {
		return fmt.Errorf("server port is required")
	}

	// 驗證快取設定
	if config.Cache.Enabled {
		if config.Cache.Backend != "memory" && config.Cache.Backend != "redis" {
			return fmt.Errorf("invalid cache backend: %s", config.Cache.Backend)
		}
		if config.Cache.MaxSize <= 0 {
			return fmt.Errorf("invalid cache max size")
		}
		if config.Cache.TTL <= 0 {
			return fmt.Errorf("invalid cache ttl")
		}
		if config.Cache.CleanupInterval <= 0 {
			return fmt.Errorf("invalid cache cleanup interval")
		}
	}

	// 驗證管線門檻設定
	if config.Pipeline.SimilarityThreshold <= 0 || config.Pipeline.SimilarityThreshold > 1 {
		return fmt.Errorf("invalid similarity threshold")
	}
	if config.Pipeline.ClassifierThreshold <= 0 {
		return fmt.Errorf("invalid classifier threshold")
	}
	if config.Pipeline.ClassifierMinLen <= 0 || config.Pipeline.ClassifierMaxLen <= config.Pipeline.ClassifierMinLen {
		return fmt.Errorf("invalid classifier length bounds")
	}
	if config.Pipeline.MaxInstructions <= 0 {
		return fmt.Errorf("invalid max instructions")
	}

	// 驗證 OCR 設定
	if config.OCR.Workers <= 0 {
		return fmt.Errorf("invalid ocr workers")
	}
	if config.OCR.MaxQueue <= 0 {
		return fmt.Errorf("invalid ocr max queue")
	}

	return nil
}
