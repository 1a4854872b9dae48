package config

import (
	"log"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
	"golang.org/x/crypto/bcrypt"
)

// Supported values for DB_TYPE.
const (
	DatabasePostgres = "postgres"
	DatabaseMongo    = "mongodb"
)

// Config holds application configuration.
type Config struct {
	DatabaseKind string // "postgres" or "mongodb"
	DatabaseURL  string // PGSQL_URL when postgres
	MongoURI     string
	MongoDBName  string

	Port          string
	IsProduction  bool
	EnableDBCheck bool

	JWTSecret         string
	JWTExpiryDuration time.Duration
	JWTIssuer         string
	// Refresh Token Config
	RefreshTokenExpiryDuration time.Duration
	RefreshTokenSecret         string

	BcryptCost               int
	MaxPageSize              int
	CORSAllowedOrigins       []string
	RateLimitFormat          string
	RequireEmailVerification bool

	// External OAuth Providers
	GoogleClientID     string `mapstructure:"GOOGLE_CLIENT_ID"`
	GoogleClientSecret string `mapstructure:"GOOGLE_CLIENT_SECRET"`
	GoogleRedirectURL  string `mapstructure:"GOOGLE_REDIRECT_URL"`
	FrontendBaseURL    string `mapstructure:"FRONTEND_BASE_URL"`

	// Outbound email
	ResendAPIKey string
	EmailFrom    string

	// Uploads
	S3Bucket string
	S3Region string
}

// LoadConfig loads configuration from environment variables and .env file if present.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()

	viper.SetDefault("DB_TYPE", "postgres")
	viper.SetDefault("PGSQL_URL", "")
	viper.SetDefault("MONGO_URI", "")
	viper.SetDefault("MONGO_DB", "blog_backend")
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("IS_PRODUCTION", false)
	viper.SetDefault("ENABLE_DB_CHECK", false)
	viper.SetDefault("JWT_SECRET", "a-very-secret-key-should-be-longer-and-random")
	viper.SetDefault("JWT_EXPIRY_DURATION", "1h")
	viper.SetDefault("JWT_ISSUER", "blog-backend")
	viper.SetDefault("REFRESH_TOKEN_EXPIRY_DURATION", "168h")
	viper.SetDefault("REFRESH_TOKEN_SECRET", "default_insecure_refresh_secret_please_change_this_!@#$")
	viper.SetDefault("BCRYPT_COST", bcrypt.DefaultCost)
	viper.SetDefault("MAX_PAGE_SIZE", 50)
	viper.SetDefault("CORS_ALLOWED_ORIGINS", "http://localhost:3000")
	viper.SetDefault("RATE_LIMIT", "100-M")
	viper.SetDefault("REQUIRE_EMAIL_VERIFICATION", false)
	viper.SetDefault("GOOGLE_CLIENT_ID", "")
	viper.SetDefault("GOOGLE_CLIENT_SECRET", "")
	viper.SetDefault("GOOGLE_REDIRECT_URL", "")
	viper.SetDefault("FRONTEND_BASE_URL", "http://localhost:3000")
	viper.SetDefault("RESEND_API_KEY", "")
	viper.SetDefault("EMAIL_FROM", "no-reply@localhost")
	viper.SetDefault("S3_BUCKET", "")
	viper.SetDefault("S3_REGION", "us-east-1")

	viper.AutomaticEnv()

	cfg := &Config{}

	cfg.DatabaseKind = strings.ToLower(viper.GetString("DB_TYPE"))
	cfg.DatabaseURL = viper.GetString("PGSQL_URL")
	cfg.MongoURI = viper.GetString("MONGO_URI")
	cfg.MongoDBName = viper.GetString("MONGO_DB")
	if cfg.DatabaseKind == DatabasePostgres && cfg.DatabaseURL == "" {
		log.Println("Warning: PGSQL_URL environment variable not set.")
	}
	if cfg.DatabaseKind == DatabaseMongo && cfg.MongoURI == "" {
		log.Println("Warning: MONGO_URI environment variable not set.")
	}

	cfg.Port = viper.GetString("PORT")
	if cfg.Port == "" {
		cfg.Port = "8080"
		log.Printf("Warning: PORT environment variable not set. Defaulting to %s\n", cfg.Port)
	}

	jwtSecret := viper.GetString("JWT_SECRET")
	if jwtSecret == "" {
		jwtSecret = "a-very-secret-key-should-be-longer-and-random" // !! CHANGE IN PRODUCTION !!
		log.Println("Warning: JWT_SECRET environment variable not set. Using default insecure key.")
	}

	// JWT Expiry Duration (e.g., "60m", "1h")
	jwtExpiryStr := viper.GetString("JWT_EXPIRY_DURATION")
	jwtExpiryDuration, err := time.ParseDuration(jwtExpiryStr)
	if err != nil {
		jwtExpiryDuration = time.Hour * 1
		if jwtExpiryStr != "" {
			log.Printf("Warning: Invalid value for JWT_EXPIRY_DURATION ('%s'). Defaulting to %s.\n", jwtExpiryStr, jwtExpiryDuration.String())
		}
	}

	jwtIssuer := viper.GetString("JWT_ISSUER")
	if jwtIssuer == "" {
		jwtIssuer = "blog-backend"
		log.Printf("Warning: JWT_ISSUER not set. Defaulting to %s.\n", jwtIssuer)
	}

	// Refresh Token Expiry Duration (e.g., "168h" for 7 days)
	refreshTokenExpiryStr := viper.GetString("REFRESH_TOKEN_EXPIRY_DURATION")
	refreshTokenExpiryDuration, err := time.ParseDuration(refreshTokenExpiryStr)
	if err != nil {
		refreshTokenExpiryDuration = time.Hour * 24 * 7
		if refreshTokenExpiryStr != "" {
			log.Printf("Warning: Invalid value for REFRESH_TOKEN_EXPIRY_DURATION ('%s'). Defaulting to %s.\n", refreshTokenExpiryStr, refreshTokenExpiryDuration.String())
		}
	}

	refreshTokenSecret := viper.GetString("REFRESH_TOKEN_SECRET")
	if refreshTokenSecret == "" {
		log.Println("Warning: REFRESH_TOKEN_SECRET is not set, using default insecure secret. THIS IS NOT FOR PRODUCTION.")
		refreshTokenSecret = "default_insecure_refresh_secret_please_change_this_!@#$"
	}

	bcryptCost := viper.GetInt("BCRYPT_COST")
	if bcryptCost < bcrypt.MinCost || bcryptCost > bcrypt.MaxCost {
		log.Printf("Warning: BCRYPT_COST %d out of range. Defaulting to %d.\n", bcryptCost, bcrypt.DefaultCost)
		bcryptCost = bcrypt.DefaultCost
	}

	maxPageSize := viper.GetInt("MAX_PAGE_SIZE")
	if maxPageSize <= 0 {
		maxPageSize = 50
	}

	cfg.GoogleClientID = viper.GetString("GOOGLE_CLIENT_ID")
	cfg.GoogleClientSecret = viper.GetString("GOOGLE_CLIENT_SECRET")
	cfg.GoogleRedirectURL = viper.GetString("GOOGLE_REDIRECT_URL")
	cfg.FrontendBaseURL = viper.GetString("FRONTEND_BASE_URL")
	if cfg.GoogleClientID == "" {
		log.Println("Warning: GOOGLE_CLIENT_ID not set. Google OAuth will not function.")
	}

	cfg.ResendAPIKey = viper.GetString("RESEND_API_KEY")
	if cfg.ResendAPIKey == "" {
		log.Println("Warning: RESEND_API_KEY not set. Outbound email is disabled.")
	}
	cfg.EmailFrom = viper.GetString("EMAIL_FROM")

	cfg.S3Bucket = viper.GetString("S3_BUCKET")
	cfg.S3Region = viper.GetString("S3_REGION")
	if cfg.S3Bucket == "" {
		log.Println("Warning: S3_BUCKET not set. Image uploads are disabled.")
	}

	cfg.IsProduction = viper.GetBool("IS_PRODUCTION")
	cfg.EnableDBCheck = viper.GetBool("ENABLE_DB_CHECK")
	cfg.JWTSecret = jwtSecret
	cfg.JWTExpiryDuration = jwtExpiryDuration
	cfg.JWTIssuer = jwtIssuer
	cfg.RefreshTokenExpiryDuration = refreshTokenExpiryDuration
	cfg.RefreshTokenSecret = refreshTokenSecret
	cfg.BcryptCost = bcryptCost
	cfg.MaxPageSize = maxPageSize
	cfg.CORSAllowedOrigins = splitAndTrim(viper.GetString("CORS_ALLOWED_ORIGINS"))
	cfg.RateLimitFormat = viper.GetString("RATE_LIMIT")
	cfg.RequireEmailVerification = viper.GetBool("REQUIRE_EMAIL_VERIFICATION")

	return cfg, nil
}

func splitAndTrim(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
