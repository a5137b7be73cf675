package config

// Config holds everything loaded from the environment at startup.
type Config struct {
	DatabaseURL  string
	JWTSecret    string
	GeminiAPIKey string
	GeminiModel  string
	Port         string
	Environment  string
	CORSOrigins  []string
}
