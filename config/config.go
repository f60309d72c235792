package config

import (
	"log"

	"github.com/caarlos0/env/v11"

	"github.com/joho/godotenv"
)

type Config struct {
	Port                int    `env:"PORT" default:"8080"`
	Dsn                 string `env:"DSN" default:"localhost:3306"`
	JwtSecret           string `env:"JWT_SECRET"`
	JwtExpires          string `env:"JWT_EXPIRES"`
	RefreshSecret       string `env:"REFRESH_SECRET"`
	RefreshExpiry       string `env:"REFRESH_EXPIRY"`
	SMTPHost            string `env:"SMTP_HOST"`
	SMTPPort            int    `env:"SMTP_PORT"`
	SMTPUser            string `env:"SMTP_USER"`
	SMTPPassword        string `env:"SMTP_PASSWORD"`
	SMTPFrom            string `env:"SMTP_FROM"`
	CloudinaryCloudName string `env:"CLOUDINARY_CLOUD_NAME"`
	CloudinaryAPIKey    string `env:"CLOUDINARY_API_KEY"`
	CloudinaryAPISecret string `env:"CLOUDINARY_API_SECRET"`
	GoogleClientID      string `env:"GOOGLE_CLIENT_ID"`
	GoogleClientSecret  string `env:"GOOGLE_CLIENT_SECRET"`
	GoogleRedirectURL   string `env:"GOOGLE_REDIRECT_URL"`
	ValhallaBaseURL     string `env:"VALHALLA_BASE_URL" default:"http://localhost:8002"`
	StadiaAPIKey        string `env:"STADIA_API_KEY"`
	GoogleMapsAPIKey    string `env:"GOOGLE_MAPS_API_KEY"`
	MapboxAPIKey        string `env:"MAPBOX_API_KEY"`

	// Navigation tuning, applied to every navigator.Navigator this deployment
	// creates.
	RouteDistanceToleranceMeters float64 `env:"ROUTE_DISTANCE_TOLERANCE_METERS" default:"20"`
	RouteTimeToleranceSeconds    float64 `env:"ROUTE_TIME_TOLERANCE_SECONDS" default:"30"`
	MinimumFixDistanceMeters     float64 `env:"MINIMUM_FIX_DISTANCE_METERS" default:"5"`
	AutoReRoute                  bool    `env:"AUTO_REROUTE" default:"true"`
	DefaultRouterType            string  `env:"DEFAULT_ROUTER_TYPE" default:"external"` // "external", "astar", "turn_expanded"
}

func New() *Config {
	if loadErr := godotenv.Load(".env"); loadErr != nil {
		log.Println("[Env]: unable to load .env file %v", loadErr)
	}

	var cfg Config

	if parseErr := env.Parse(&cfg); parseErr != nil {
		log.Println("[Env]: failed to parse environment variables: %v", parseErr)
	}

	return &cfg
}
