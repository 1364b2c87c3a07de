package config

import (
	"log"

	"github.com/spf13/viper"
)

// Config holds all configuration values.
type Config struct {
	AppPort           string `mapstructure:"APP_PORT"`
	Env               string `mapstructure:"ENV"`
	LogLevel          string `mapstructure:"LOG_LEVEL"`
	MaxRequestsPerMin int    `mapstructure:"MAX_REQUESTS_PER_MIN"`

	// Speech providers.
	OpenAIAPIKey             string `mapstructure:"OPENAI_API_KEY"`
	ElevenLabsAPIKey         string `mapstructure:"ELEVENLABS_API_KEY"`
	ElevenLabsVoiceID        string `mapstructure:"ELEVENLABS_VOICE_ID"`
	STTProvider              string `mapstructure:"STT_PROVIDER"`
	GoogleServiceAccountFile string `mapstructure:"GOOGLE_SERVICE_ACCOUNT_FILE"`
	SpeechLanguage           string `mapstructure:"SPEECH_LANGUAGE"`

	// Offer scraping.
	VerivoxURL           string `mapstructure:"VERIVOX_URL"`
	ScrapeTimeoutSec     int    `mapstructure:"SCRAPE_TIMEOUT_SEC"`
	OfferCacheTTLMin     int    `mapstructure:"OFFER_CACHE_TTL_MIN"`
	OfferCacheMaxEntries int    `mapstructure:"OFFER_CACHE_MAX_ENTRIES"`

	// Synthesized audio storage.
	AudioDir string `mapstructure:"AUDIO_DIR"`
}

var AppConfig Config

func LoadConfig() {
	// Look for a config file named "config.yaml" in the current and "config" directory.
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./config")
	// Automatically use environment variables where available.
	viper.AutomaticEnv()

	// Set default values.
	viper.SetDefault("APP_PORT", "8000")
	viper.SetDefault("ENV", "development")
	viper.SetDefault("LOG_LEVEL", "info")
	viper.SetDefault("MAX_REQUESTS_PER_MIN", 100)
	viper.SetDefault("STT_PROVIDER", "whisper")
	viper.SetDefault("SPEECH_LANGUAGE", "en-US")
	viper.SetDefault("ELEVENLABS_VOICE_ID", "EXAVITQu4vr4xnSDxMaL")
	viper.SetDefault("VERIVOX_URL", "https://www.verivox.de/strom/")
	viper.SetDefault("SCRAPE_TIMEOUT_SEC", 20)
	viper.SetDefault("OFFER_CACHE_TTL_MIN", 10)
	viper.SetDefault("OFFER_CACHE_MAX_ENTRIES", 128)
	viper.SetDefault("AUDIO_DIR", "audio_responses")

	if err := viper.ReadInConfig(); err != nil {
		log.Println("No config file found, using environment variables only")
	}

	if err := viper.Unmarshal(&AppConfig); err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
}

func GetEnv() string {
	return AppConfig.Env
}

func IsProduction() bool {
	return GetEnv() == "production"
}
