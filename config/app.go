package config

import (
	"os"
	"sync"
	"time"
)

// AppConfig holds global application configuration
var AppConfig *Config
var once sync.Once

type Config struct {
	AppName    string
	Port       string
	Env        string
	Debug      bool
	LocaleCode string
	OriginURL  string
	// Add more fields as needed
}

// LoadAppConfig initializes the global AppConfig variable
func LoadAppConfig() {
	once.Do(func() {
		AppConfig = &Config{
			AppName:    os.Getenv("APP_NAME"),
			Port:       os.Getenv("PORT"),
			Env:        os.Getenv("APP_ENV"),
			Debug:      os.Getenv("DEBUG") == "true",
			LocaleCode: localeCode(),
			OriginURL:  upstreamFor("production").Origin,
		}
		if !IsProduction() {
			AppConfig.OriginURL = upstreamFor("staging").Origin
		}
	})
}

// IsProduction reports whether APP_ENV selects the production upstream set.
func IsProduction() bool {
	return os.Getenv("APP_ENV") == "production"
}

func localeCode() string {
	if v := os.Getenv("LOCALE_CODE"); v != "" {
		return v
	}
	return "ENG"
}

// TimezoneOffset returns the local offset from UTC in minutes, with the sign
// convention the upstream expects (west of UTC is positive).
func TimezoneOffset() int {
	_, offsetSeconds := time.Now().Zone()
	return -offsetSeconds / 60
}
