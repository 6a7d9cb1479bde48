package core

import (
	"log"
	"net/mail"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	Env      string
	Build    string
	AppName  string
	Debug    bool
	TestMode bool

	SecretKey        string
	DefaultFromEmail mail.Address

	Server struct {
		Addr            string
		ShutdownTimeout time.Duration
	}

	// API is the LMS backend boundary. It owns all persisted entities;
	// the portal only holds transient, re-fetchable copies.
	API struct {
		BaseURL string
		Timeout time.Duration
	}

	Session struct {
		CookieName string // persisted Identity key
		CodeKey    string // last-used secondary code key
		MaxAge     time.Duration
		Secure     bool
	}

	SuperAdmin struct {
		AccessKey string
		Email     string
		CodeTTL   time.Duration
	}

	SendgridAPIKey string
	RollbarToken   string
}

// NewConfig loads the app configuration: defaults first, then an optional
// config/.env.<env> file, then environment variables prefixed with <ENV>_.
func NewConfig() *Config {
	v := viper.New()
	v.SetTypeByDefaultValue(true)

	// defaults
	v.SetDefault("debug", true)
	v.SetDefault("build", "dev")
	v.SetDefault("appName", "Lideo")
	v.SetDefault("secretKey", "q2d$7y=#0n&+r!k5wz(u8h^x3g@m6c*v9s4j%1pb_eat)fol-i")
	v.SetDefault("defaultFromEmail", "noreply@localhost")
	v.SetDefault("serverAddr", ":8000")
	v.SetDefault("serverShutdownTimeout", 5*time.Second)
	v.SetDefault("apiBaseURL", "http://localhost:8082")
	v.SetDefault("apiTimeout", 15*time.Second)
	v.SetDefault("sessionCookieName", "currentUser")
	v.SetDefault("sessionCodeKey", "superAdmin2FA")
	v.SetDefault("sessionMaxAge", 7*24*time.Hour)
	v.SetDefault("sessionSecure", false)
	v.SetDefault("superAdminAccessKey", "SUPERADMIN2024KEY")
	v.SetDefault("superAdminEmail", "superadmin@lms.com")
	v.SetDefault("superAdminCodeTTL", 300*time.Second)
	v.SetDefault("sendgridApiKey", "")
	v.SetDefault("rollbarToken", "")

	env := os.Getenv("ENV") // DEV (local; default), TEST, QA, PROD
	switch env {
	case "":
		env = "DEV"
	case "TEST":
		v.SetDefault("testMode", true)
	}
	v.SetEnvPrefix(env)

	// load .env if it exists (ignore if it does not)
	dotEnvPath := filepath.Join("config", ".env."+strings.ToLower(env))
	if _, err := os.Stat(dotEnvPath); err == nil {
		if err = godotenv.Load(dotEnvPath); err != nil {
			log.Fatalf("config.godotenv(%s): %v", dotEnvPath, err)
		}
	} else if !os.IsNotExist(err) {
		log.Fatalf("config.os.Stat(%s): %v", dotEnvPath, err)
	}
	v.AutomaticEnv()

	conf := &Config{
		Env:            env,
		Build:          v.GetString("build"),
		AppName:        v.GetString("appName"),
		Debug:          v.GetBool("debug"),
		TestMode:       v.GetBool("testMode"),
		SecretKey:      v.GetString("secretKey"),
		SendgridAPIKey: v.GetString("sendgridApiKey"),
		RollbarToken:   v.GetString("rollbarToken"),
	}
	conf.DefaultFromEmail = mail.Address{Name: conf.AppName, Address: v.GetString("defaultFromEmail")}
	conf.Server.Addr = v.GetString("serverAddr")
	conf.Server.ShutdownTimeout = v.GetDuration("serverShutdownTimeout")
	conf.API.BaseURL = v.GetString("apiBaseURL")
	conf.API.Timeout = v.GetDuration("apiTimeout")
	conf.Session.CookieName = v.GetString("sessionCookieName")
	conf.Session.CodeKey = v.GetString("sessionCodeKey")
	conf.Session.MaxAge = v.GetDuration("sessionMaxAge")
	conf.Session.Secure = v.GetBool("sessionSecure")
	conf.SuperAdmin.AccessKey = v.GetString("superAdminAccessKey")
	conf.SuperAdmin.Email = v.GetString("superAdminEmail")
	conf.SuperAdmin.CodeTTL = v.GetDuration("superAdminCodeTTL")
	return conf
}
