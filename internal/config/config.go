// Package config provides the process-wide configuration for the sentrycam
// application, loaded once at startup from the environment.
package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Default configuration values.
const (
	DefaultCameraIndex    = 0
	DefaultFrameWidth     = 1280
	DefaultFrameHeight    = 720
	DefaultTargetFPS      = 60
	DefaultMinConfidence  = 0.6
	DefaultFaceHeightCm   = 18.0
	DefaultFocalLength    = 750.0
	DefaultMuzzleVelocity = 100.0
	DefaultGravity        = 9.81
	DefaultWeatherCity    = "Gurugram"
	DefaultWeatherUnits   = "metric"
	DefaultWeatherRefresh = 600 * time.Second
)

// Config holds all static settings for a sentrycam run. It is built once in
// main and passed to each component at construction; nothing mutates it.
type Config struct {
	// Capture settings.
	CameraIndex int
	FrameWidth  int
	FrameHeight int
	TargetFPS   int

	// Detection settings.
	MinConfidence float64

	// Targeting geometry settings.
	FaceHeightCm   float64 // real-world face height used by the pinhole model
	FocalLength    float64 // camera focal length in pixels
	MuzzleVelocity float64 // projectile velocity in m/s
	Gravity        float64 // gravitational acceleration in m/s^2

	// Weather panel settings.
	WeatherAPIKey  string
	WeatherCity    string
	WeatherUnits   string
	WeatherRefresh time.Duration

	// Observer server address, e.g. ":8080". Empty disables the server.
	ServerAddr string

	// Headless disables the display window; used for tests and CI.
	Headless bool

	// LogLevel is a logrus level name ("debug", "info", ...).
	LogLevel string

	// LogDir enables rotating file logs when non-empty.
	LogDir string
}

// Default returns a Config populated with the default values.
func Default() Config {
	return Config{
		CameraIndex:    DefaultCameraIndex,
		FrameWidth:     DefaultFrameWidth,
		FrameHeight:    DefaultFrameHeight,
		TargetFPS:      DefaultTargetFPS,
		MinConfidence:  DefaultMinConfidence,
		FaceHeightCm:   DefaultFaceHeightCm,
		FocalLength:    DefaultFocalLength,
		MuzzleVelocity: DefaultMuzzleVelocity,
		Gravity:        DefaultGravity,
		WeatherCity:    DefaultWeatherCity,
		WeatherUnits:   DefaultWeatherUnits,
		WeatherRefresh: DefaultWeatherRefresh,
		LogLevel:       "info",
	}
}

// FromEnv builds a Config from environment variables, falling back to the
// defaults for anything unset. A .env file in the working directory is loaded
// first if present.
func FromEnv() Config {
	// Missing .env is fine; the environment may be set directly.
	_ = godotenv.Load()

	cfg := Default()

	cfg.CameraIndex = envInt("SENTRYCAM_CAMERA_INDEX", cfg.CameraIndex)
	cfg.FrameWidth = envInt("SENTRYCAM_FRAME_WIDTH", cfg.FrameWidth)
	cfg.FrameHeight = envInt("SENTRYCAM_FRAME_HEIGHT", cfg.FrameHeight)
	cfg.TargetFPS = envInt("SENTRYCAM_TARGET_FPS", cfg.TargetFPS)
	cfg.MinConfidence = envFloat("SENTRYCAM_MIN_CONFIDENCE", cfg.MinConfidence)
	cfg.FaceHeightCm = envFloat("SENTRYCAM_FACE_HEIGHT_CM", cfg.FaceHeightCm)
	cfg.FocalLength = envFloat("SENTRYCAM_FOCAL_LENGTH", cfg.FocalLength)
	cfg.MuzzleVelocity = envFloat("SENTRYCAM_MUZZLE_VELOCITY", cfg.MuzzleVelocity)
	cfg.Gravity = envFloat("SENTRYCAM_GRAVITY", cfg.Gravity)

	cfg.WeatherAPIKey = envString("OPENWEATHER_API_KEY", cfg.WeatherAPIKey)
	cfg.WeatherCity = envString("SENTRYCAM_WEATHER_CITY", cfg.WeatherCity)
	cfg.WeatherUnits = envString("SENTRYCAM_WEATHER_UNITS", cfg.WeatherUnits)
	if sec := envInt("SENTRYCAM_WEATHER_REFRESH_SEC", 0); sec > 0 {
		cfg.WeatherRefresh = time.Duration(sec) * time.Second
	}

	cfg.ServerAddr = envString("SENTRYCAM_SERVER_ADDR", cfg.ServerAddr)
	cfg.Headless = envBool("SENTRYCAM_HEADLESS", cfg.Headless)
	cfg.LogLevel = envString("SENTRYCAM_LOG_LEVEL", cfg.LogLevel)
	cfg.LogDir = envString("SENTRYCAM_LOG_DIR", cfg.LogDir)

	return cfg
}

func envString(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}

func envFloat(key string, fallback float64) float64 {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return fallback
	}
	return f
}

func envBool(key string, fallback bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return fallback
	}
	return b
}
