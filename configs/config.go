package configs

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config is built once at startup and passed down; nothing mutates it later.
type Config struct {
	Port            string
	DBSource        string
	LogDBFile       string
	AttachmentsDir  string
	ExportDir       string
	DepartmentsFile string
	ManualFile      string

	SMTPHost     string
	SMTPPort     int
	SenderEmail  string
	SMTPPassword string
	SecretFile   string
	MailTimeout  time.Duration

	JWTSecret     string
	JWTTTL        time.Duration
	AdminUsername string
	AdminPassword string

	MaxAttachments int
	CORSOrigins    []string
}

func LoadConfig() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("ℹ️ no .env file, using environment and defaults")
	}

	cfg := &Config{
		Port:            getEnv("PORT", "7960"),
		DBSource:        getEnv("DB_SOURCE", "cmlog.db"),
		LogDBFile:       getEnv("LOG_DB_FILE", "cmlogs-db.json"),
		AttachmentsDir:  getEnv("ATTACHMENTS_DIR", "attachments"),
		ExportDir:       getEnv("EXPORT_DIR", "exports"),
		DepartmentsFile: getEnv("DEPARTMENTS_FILE", "departments.yaml"),
		ManualFile:      getEnv("MANUAL_FILE", "usermanual_CM.md"),

		SMTPHost:     getEnv("SMTP_HOST", "smtp.gmail.com"),
		SMTPPort:     getEnvInt("SMTP_PORT", 465),
		SenderEmail:  getEnv("SENDER_EMAIL", ""),
		SMTPPassword: getEnv("SMTP_PASSWORD", ""),
		SecretFile:   getEnv("SECRET_FILE", "secret.json"),
		MailTimeout:  getEnvDuration("MAIL_TIMEOUT", 30*time.Second),

		JWTSecret:     getEnv("JWT_SECRET", "changeme"),
		JWTTTL:        getEnvDuration("JWT_TTL", 24*time.Hour),
		AdminUsername: getEnv("ADMIN_USERNAME", ""),
		AdminPassword: getEnv("ADMIN_PASSWORD", ""),

		MaxAttachments: getEnvInt("MAX_ATTACHMENTS", 10),
		CORSOrigins:    getEnvList("CORS_ORIGINS", []string{"*"}),
	}
	if cfg.SMTPPassword == "" {
		secret, err := LoadSecret(cfg.SecretFile)
		if err != nil {
			log.Printf("⚠️ Secret file error: %v. Email functionality disabled.", err)
		}
		cfg.SMTPPassword = secret
	}
	return cfg
}

func getEnv(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	v, ok := os.LookupEnv(key)
	if !ok {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		log.Printf("⚠️ invalid %s=%q, using %d", key, v, fallback)
		return fallback
	}
	return n
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	v, ok := os.LookupEnv(key)
	if !ok {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		log.Printf("⚠️ invalid %s=%q, using %s", key, v, fallback)
		return fallback
	}
	return d
}

// getEnvList splits a comma-separated value, dropping blanks.
func getEnvList(key string, fallback []string) []string {
	v, ok := os.LookupEnv(key)
	if !ok {
		return fallback
	}
	var out []string
	for _, part := range strings.Split(v, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	if len(out) == 0 {
		return fallback
	}
	return out
}
