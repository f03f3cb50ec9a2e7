package config

import (
	"fmt"
	"net/http"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

// Config holds the project config values
type Config struct {
	URL              string
	DatabaseName     string
	BaseURL          string
	Port             string
	JWTSecret        string
	SendgridAPIKey   string
	CloudinaryURL    string
	RendererURL      string
	NotifyFrom       string
	AdminEmail       string
	StripTransferred bool
	MaxStoredErrors  int
}

// New sets up all config related services
func New() *Config {

	// load a local .env if present, deployed environments set vars directly
	_ = godotenv.Load()

	//setup zap logger and replace default logger
	logger := zap.NewExample()
	defer logger.Sync()
	_ = zap.ReplaceGlobals(logger)

	strip, _ := strconv.ParseBool(os.Getenv("MULTIPLES_STRIP_TRANSFERRED"))

	maxErrors := 200
	if v := os.Getenv("MULTIPLES_MAX_STORED_ERRORS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			maxErrors = n
		}
	}

	return &Config{
		URL:              os.Getenv("DB_URI"),
		DatabaseName:     os.Getenv("DB_NAME"),
		BaseURL:          os.Getenv("BASE_URL"),
		Port:             os.Getenv("PORT"),
		JWTSecret:        os.Getenv("SERVICE_AUTH_SECRET"),
		SendgridAPIKey:   os.Getenv("SENDGRID_API_KEY"),
		CloudinaryURL:    os.Getenv("CLOUDINARY_URL"),
		RendererURL:      os.Getenv("DOC_RENDERER_URL"),
		NotifyFrom:       os.Getenv("NOTIFY_FROM_EMAIL"),
		AdminEmail:       os.Getenv("ADMIN_EMAIL"),
		StripTransferred: strip,
		MaxStoredErrors:  maxErrors,
	}

}

// ErrorStatus is a useful function that will log, write http headers and body for a
// give message, status code and err
func ErrorStatus(message string, httpStatusCode int, w http.ResponseWriter, err error) {
	zap.S().With(err).Error(message)
	w.WriteHeader(httpStatusCode)
	w.Write([]byte(fmt.Sprintf(`{"response": "%s, %v"}`, message, err)))
	return
}
