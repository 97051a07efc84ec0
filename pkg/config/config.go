package config

import "os"

type Config struct {
	Port                    string
	Env                     string
	ClientURL               string
	JWTSecret               string
	FirebaseCredentialsPath string
	PostgresConnStr         string
	MongoURI                string
	MongoDatabase           string
	CloudinaryCloudName     string
	CloudinaryAPIKey        string
	CloudinaryAPISecret     string
	MailtrapToken           string
	EmailFrom               string
	EmailFromName           string
}

func Load() *Config {
	return &Config{
		Port:                    getEnv("PORT", "8080"),
		Env:                     getEnv("ENV", "development"),
		ClientURL:               getEnv("CLIENT_URL", "http://localhost:5173"),
		JWTSecret:               getEnv("JWT_SECRET", "supersecretjwtkey"),
		FirebaseCredentialsPath: getEnv("FIREBASE_CREDENTIALS_PATH", ""),
		PostgresConnStr:         getEnv("POSTGRES_CONN_STR", ""),
		MongoURI:                getEnv("MONGO_URI", ""),
		MongoDatabase:           getEnv("MONGO_DATABASE", "unlinked"),
		CloudinaryCloudName:     getEnv("CLOUDINARY_CLOUD_NAME", ""),
		CloudinaryAPIKey:        getEnv("CLOUDINARY_API_KEY", ""),
		CloudinaryAPISecret:     getEnv("CLOUDINARY_API_SECRET", ""),
		MailtrapToken:           getEnv("MAILTRAP_TOKEN", ""),
		EmailFrom:               getEnv("EMAIL_FROM", "hello@unlinked.local"),
		EmailFromName:           getEnv("EMAIL_FROM_NAME", "Unlinked"),
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
