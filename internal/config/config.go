package config

import (
	"errors"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	HostImgBB    = "imgbb"
	HostSupabase = "supabase"
)

type Config struct {
	Server    ServerConfig
	ImageAPI  ImageAPIConfig
	Chat      ChatConfig
	ImageHost ImageHostConfig
	Supabase  SupabaseConfig
	Storage   StorageConfig
	Share     ShareConfig
	Gallery   GalleryConfig
	CORS      CORSConfig
}

type ServerConfig struct {
	Port         string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

// ImageAPIConfig points at the text-to-image inference endpoint.
type ImageAPIConfig struct {
	Token   string
	URL     string
	Model   string
	Timeout time.Duration
}

// ChatConfig points at the OpenAI-compatible chat endpoint used for prompt ideas.
// It shares the token of the image API.
type ChatConfig struct {
	URL     string
	Model   string
	Timeout time.Duration
}

type ImageHostConfig struct {
	Provider string
	ImgBBKey string
	ImgBBURL string
	Timeout  time.Duration
}

type SupabaseConfig struct {
	URL    string
	KEY    string
	BUCKET string
}

type StorageConfig struct {
	MaxImageSize int64
}

type ShareConfig struct {
	Title string
}

type GalleryConfig struct {
	MaxImageCount int
}

type CORSConfig struct {
	AllowedOrigins []string
}

func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	}

	cfg := &Config{
		Server: ServerConfig{
			Port:         getEnv("PORT", "8080"),
			ReadTimeout:  getDuration("READ_TIMEOUT", 10*time.Second),
			WriteTimeout: getDuration("WRITE_TIMEOUT", 60*time.Second),
		},
		ImageAPI: ImageAPIConfig{
			Token:   getEnv("HF_TOKEN", ""),
			URL:     getEnv("IMAGE_API_URL", "https://router.huggingface.co/hyperbolic/v1/images/generations"),
			Model:   getEnv("IMAGE_MODEL", "SD2"),
			Timeout: getDuration("IMAGE_REQUEST_TIMEOUT", 2*time.Minute),
		},
		Chat: ChatConfig{
			URL:     getEnv("CHAT_API_URL", "https://router.huggingface.co/v1"),
			Model:   getEnv("CHAT_MODEL", "meta-llama/Llama-4-Scout-17B-16E-Instruct:fireworks-ai"),
			Timeout: getDuration("CHAT_REQUEST_TIMEOUT", 30*time.Second),
		},
		ImageHost: ImageHostConfig{
			Provider: strings.ToLower(getEnv("IMAGE_HOST", HostImgBB)),
			ImgBBKey: getEnv("IMGBB_API_KEY", ""),
			ImgBBURL: getEnv("IMGBB_URL", "https://api.imgbb.com/1/upload"),
			Timeout:  getDuration("IMAGE_HOST_TIMEOUT", 60*time.Second),
		},
		Supabase: SupabaseConfig{
			URL:    getEnv("SUPABASE_URL", ""),
			KEY:    getEnv("SUPABASE_KEY", ""),
			BUCKET: getEnv("SUPABASE_BUCKET", ""),
		},
		Storage: StorageConfig{
			MaxImageSize: getEnvAsInt64("MAX_IMAGE_SIZE", 20*1024*1024), // 20MB
		},
		Share: ShareConfig{
			Title: getEnv("SHARE_TITLE", "AI Art by Arvin Kumar AI"),
		},
		Gallery: GalleryConfig{
			MaxImageCount: getEnvAsInt("MAX_IMAGE_COUNT", 4),
		},
		CORS: CORSConfig{
			AllowedOrigins: getEnvAsList("CORS_ORIGINS", []string{"*"}),
		},
	}

	return cfg, nil
}

// Validate reports every missing credential at once.
func (c *Config) Validate() error {
	var errs []error

	if c.ImageAPI.Token == "" {
		errs = append(errs, errors.New("HF_TOKEN is required"))
	}

	switch c.ImageHost.Provider {
	case HostImgBB:
		if c.ImageHost.ImgBBKey == "" {
			errs = append(errs, errors.New("IMGBB_API_KEY is required when IMAGE_HOST=imgbb"))
		}
	case HostSupabase:
		if c.Supabase.URL == "" || c.Supabase.KEY == "" || c.Supabase.BUCKET == "" {
			errs = append(errs, errors.New("SUPABASE_URL, SUPABASE_KEY and SUPABASE_BUCKET are required when IMAGE_HOST=supabase"))
		}
	default:
		errs = append(errs, errors.New("IMAGE_HOST must be imgbb or supabase"))
	}

	return errors.Join(errs...)
}

func getEnv(key, defaultVal string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultVal
}

func getEnvAsInt(key string, defaultVal int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultVal
}

func getEnvAsInt64(key string, defaultVal int64) int64 {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.ParseInt(value, 10, 64); err == nil {
			return intVal
		}
	}
	return defaultVal
}

func getDuration(key string, defaultVal time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultVal
}

func getEnvAsList(key string, defaultVal []string) []string {
	value := os.Getenv(key)
	if value == "" {
		return defaultVal
	}
	var out []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	if len(out) == 0 {
		return defaultVal
	}
	return out
}
