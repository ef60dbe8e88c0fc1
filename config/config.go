package config

import "github.com/spf13/viper"

type Config struct {
	Server Server `yaml:"server"`
	SQLite SQLite `yaml:"sqlite"`
	Minio  Minio  `yaml:"minio"`
	Email  Email  `yaml:"email"`
}

type Server struct {
	Port          string `yaml:"port"`
	AdminUsername string `yaml:"admin_username" mapstructure:"admin_username"`
	AdminPassword string `yaml:"admin_password" mapstructure:"admin_password"`
}

type SQLite struct {
	Path       string `yaml:"path"`
	AutoCreate bool   `yaml:"auto_create" mapstructure:"auto_create"`
}

type Minio struct {
	Endpoint             string `yaml:"endpoint"`
	AccessKey            string `yaml:"access_key" mapstructure:"access_key"`
	SecretKey            string `yaml:"secret_key" mapstructure:"secret_key"`
	Bucket               string `yaml:"bucket"`
	Folder               string `yaml:"folder"`
	UploadTimeoutSeconds int    `yaml:"upload_timeout_seconds" mapstructure:"upload_timeout_seconds"`
}

type Email struct {
	APIKey     string `yaml:"api_key" mapstructure:"api_key"`
	FromName   string `yaml:"from_name" mapstructure:"from_name"`
	FromEmail  string `yaml:"from_email" mapstructure:"from_email"`
	InternalTo string `yaml:"internal_to" mapstructure:"internal_to"`
}

// Configured reports whether a mail relay is set up; without one the
// notifier becomes a no-op.
func (e Email) Configured() bool {
	return e.APIKey != "" && e.InternalTo != ""
}

func InitConfig(filename string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(filename)
	v.SetConfigType("yaml")
	if err := v.ReadInConfig(); err != nil {
		return nil, err
	}
	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}
