package configs

import (
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

type Config struct {
	DB struct {
		Host     string `yaml:"host"`
		Port     int    `yaml:"port"`
		User     string `yaml:"user"`
		Password string `yaml:"password"`
		Name     string `yaml:"dbname"`
		Migrate  bool   `yaml:"migrate"`
	} `yaml:"database"`

	Redis struct {
		Addr     string `yaml:"redis_addr"`
		Password string `yaml:"redis_password"`
		DB       int    `yaml:"redis_db"`
	} `yaml:"redis"`

	Mail struct {
		SMTPHost     string `yaml:"smtp_host"`
		SMTPPort     string `yaml:"smtp_port"`
		SMTPUsername string `yaml:"smtp_username"`
		SMTPPassword string `yaml:"smtp_password"`
		SenderEmail  string `yaml:"sender_email"`
		EmailAPIKey  string `yaml:"email_api_key"`
	} `yaml:"mail"`

	Env struct {
		CurrentEnv string `yaml:"-"`
	} `yaml:"-"`
}

func Load(env string) (*Config, error) {
	var cfg Config
	configFile := "dev.yml"

	if env == "production" {
		configFile = "prod.yml"
	}

	configPath := filepath.Join("internal", "configs", configFile)
	file, err := os.Open(configPath)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	log.Printf("Loading config from: %s", configPath)

	decoder := yaml.NewDecoder(file)
	if err := decoder.Decode(&cfg); err != nil {
		return nil, err
	}

	cfg.Env.CurrentEnv = env
	expandConfig(&cfg)

	return &cfg, nil
}

// SQLDSN builds the MySQL DSN. parseTime is required for timestamp scans.
func (c *Config) SQLDSN() string {
	return fmt.Sprintf(
		"%s:%s@tcp(%s:%d)/%s?parseTime=true&charset=utf8mb4",
		c.DB.User, c.DB.Password, c.DB.Host, c.DB.Port, c.DB.Name,
	)
}

// expandConfig resolves ${VAR} placeholders in the YAML against the
// environment, falling back to a .env file when present.
func expandConfig(cfg *Config) {
	if err := godotenv.Load(); err == nil {
		log.Println("Loaded environment from .env file")
	}

	cfg.DB.Password = os.ExpandEnv(cfg.DB.Password)
	cfg.DB.User = os.ExpandEnv(cfg.DB.User)
	cfg.Redis.Password = os.ExpandEnv(cfg.Redis.Password)
	cfg.Mail.SMTPPassword = os.ExpandEnv(cfg.Mail.SMTPPassword)
	cfg.Mail.EmailAPIKey = os.ExpandEnv(cfg.Mail.EmailAPIKey)
}
