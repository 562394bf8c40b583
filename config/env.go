package config

import (
	"os"
	"strings"
)

// Env is the process configuration, read once at startup.
type Env struct {
	Port        string
	GinMode     string
	LogLevel    string
	CORSOrigins []string
	PagesDir    string

	SupabaseURL            string
	SupabaseAnonKey        string
	SupabaseServiceRoleKey string
	JWTSecret              string
	JWTIssuer              string
	JWTAudience            string

	PostgresURI        string
	PostgresServiceURI string

	LLMProvider       string
	LLMAPIKey         string
	LLMModel          string
	LLMEmbeddingModel string
	VertexProjectID   string
	VertexLocation    string

	RedisURL string
	MongoURI string
	MongoDB  string

	GCSBucket       string
	GCSProjectID    string
	GCSLocation     string
	GCSBucketPublic bool

	AdminKeyHash string
}

func LoadEnv() Env {
	e := Env{
		Port:        getenv("PORT", "8080"),
		GinMode:     os.Getenv("GIN_MODE"),
		LogLevel:    os.Getenv("LOG_LEVEL"),
		CORSOrigins: splitList(os.Getenv("CORS_ALLOWED_ORIGINS")),
		PagesDir:    os.Getenv("PAGES_DIR"),

		SupabaseURL:            strings.TrimRight(os.Getenv("SUPABASE_URL"), "/"),
		SupabaseAnonKey:        os.Getenv("SUPABASE_ANON_KEY"),
		SupabaseServiceRoleKey: os.Getenv("SUPABASE_SERVICE_ROLE_KEY"),
		JWTSecret:              os.Getenv("SUPABASE_JWT_SECRET"),
		JWTIssuer:              os.Getenv("SUPABASE_JWT_ISSUER"),
		JWTAudience:            os.Getenv("SUPABASE_JWT_AUDIENCE"),

		PostgresURI:        os.Getenv("POSTGRES_URI"),
		PostgresServiceURI: os.Getenv("POSTGRES_SERVICE_URI"),

		LLMProvider:       strings.ToLower(getenv("LLM_PROVIDER", "gemini")),
		LLMModel:          os.Getenv("LLM_MODEL"),
		LLMEmbeddingModel: os.Getenv("LLM_EMBEDDING_MODEL"),
		VertexProjectID:   os.Getenv("VERTEX_PROJECT_ID"),
		VertexLocation:    getenv("VERTEX_LOCATION", "us-central1"),

		RedisURL: firstNonEmpty(os.Getenv("REDIS_ADDR"), os.Getenv("REDIS_URI"), os.Getenv("REDIS_URL")),
		MongoURI: os.Getenv("MONGO_URI"),
		MongoDB:  getenv("MONGO_DB", "careerly"),

		GCSBucket:       getenv("GCS_BUCKET", "resumes"),
		GCSProjectID:    os.Getenv("GCS_PROJECT_ID"),
		GCSLocation:     getenv("GCS_LOCATION", "US"),
		GCSBucketPublic: getenv("GCS_BUCKET_PUBLIC", "true") == "true",

		AdminKeyHash: os.Getenv("ADMIN_KEY_HASH"),
	}

	e.LLMAPIKey = os.Getenv("LLM_API_KEY")
	if e.LLMAPIKey == "" {
		switch e.LLMProvider {
		case "openai":
			e.LLMAPIKey = os.Getenv("OPENAI_API_KEY")
		default:
			e.LLMAPIKey = os.Getenv("GEMINI_API_KEY")
		}
	}

	if e.PostgresServiceURI == "" {
		e.PostgresServiceURI = e.PostgresURI
	}
	return e
}

func getenv(key, def string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return def
}

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if v != "" {
			return v
		}
	}
	return ""
}

func splitList(s string) []string {
	var out []string
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
