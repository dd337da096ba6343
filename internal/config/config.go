package config

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Server     ServerConfig
	Redis      RedisConfig
	Logger     LoggerConfig
	Model      ModelConfig
	Generation GenerationConfig
	Upload     UploadConfig
}

type ServerConfig struct {
	Port         int
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

type RedisConfig struct {
	Address  string `yaml:"address"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
}

type LoggerConfig struct {
	Env   string `yaml:"env"`
	Level string `yaml:"level"`
}

// ModelConfig configures the hosted question-generation model. An empty
// token disables the model path entirely; generation then uses the
// deterministic fallback.
type ModelConfig struct {
	Token string `yaml:"token"`
	Model string `yaml:"model"`
	URL   string `yaml:"url"`
}

type GenerationConfig struct {
	ChunkWords     int
	ModelCallDelay time.Duration
	SessionTTL     time.Duration
	// FallbackOnExtractionFailure returns a degraded acknowledgment quiz
	// instead of an error when a PDF yields no readable text.
	FallbackOnExtractionFailure bool
}

type UploadConfig struct {
	MaxFileSize int64
}

func LoadConfig() (*Config, error) {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./config")

	viper.SetDefault("server.port", 8090)
	viper.SetDefault("server.read_timeout", 20)
	viper.SetDefault("server.write_timeout", 20)
	viper.SetDefault("logger.env", "development")
	viper.SetDefault("logger.level", "info")
	viper.SetDefault("model.model", "potsawee/t5-large-generation-squad-QuestionAnswer")
	viper.SetDefault("generation.chunk_words", 300)
	viper.SetDefault("generation.model_call_delay", 1000)
	viper.SetDefault("generation.session_ttl", 3600)
	viper.SetDefault("generation.fallback_on_extraction_failure", false)
	viper.SetDefault("upload.max_file_size", 10*1024*1024)

	viper.AutomaticEnv()

	// A missing config file is fine; defaults plus env cover everything.
	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	config := &Config{
		Server: ServerConfig{
			Port:         viper.GetInt("server.port"),
			ReadTimeout:  viper.GetDuration("server.read_timeout") * time.Second,
			WriteTimeout: viper.GetDuration("server.write_timeout") * time.Second,
		},
		Redis: RedisConfig{
			Address:  viper.GetString("redis.address"),
			Password: viper.GetString("redis.password"),
			DB:       viper.GetInt("redis.db"),
		},
		Logger: LoggerConfig{
			Env:   viper.GetString("logger.env"),
			Level: viper.GetString("logger.level"),
		},
		Model: ModelConfig{
			Token: viper.GetString("model.token"),
			Model: viper.GetString("model.model"),
			URL:   viper.GetString("model.url"),
		},
		Generation: GenerationConfig{
			ChunkWords:                  viper.GetInt("generation.chunk_words"),
			ModelCallDelay:              viper.GetDuration("generation.model_call_delay") * time.Millisecond,
			SessionTTL:                  viper.GetDuration("generation.session_ttl") * time.Second,
			FallbackOnExtractionFailure: viper.GetBool("generation.fallback_on_extraction_failure"),
		},
		Upload: UploadConfig{
			MaxFileSize: viper.GetInt64("upload.max_file_size"),
		},
	}

	// Override with environment variables if set
	if token := os.Getenv("HUGGINGFACE_API_KEY"); token != "" {
		config.Model.Token = token
	}
	if redisAddress := os.Getenv("REDIS_ADDRESS"); redisAddress != "" {
		config.Redis.Address = redisAddress
	}
	if redisPassword := os.Getenv("REDIS_PASSWORD"); redisPassword != "" {
		config.Redis.Password = redisPassword
	}

	return config, nil
}
