package config

import (
	"time"

	"github.com/spf13/viper"
)

type AppConf struct {
	Env            string `mapstructure:"env"`
	Port           int    `mapstructure:"port"`
	ShutdownSecond int    `mapstructure:"shutdown_seconds"`
}

type MongoConf struct {
	URI        string `mapstructure:"uri"`
	Database   string `mapstructure:"database"`
	Collection string `mapstructure:"collection"`
}

type AWSConf struct {
	Region   string `mapstructure:"region"`
	Bucket   string `mapstructure:"bucket"`
	Endpoint string `mapstructure:"endpoint"`
}

// UploadConf is the single source of the upload folder and transform
// bounds; both the upload path and the deletion reconciler read it.
type UploadConf struct {
	Folder    string `mapstructure:"folder"`
	MaxWidth  int    `mapstructure:"max_width"`
	MaxHeight int    `mapstructure:"max_height"`
	MaxFiles  int    `mapstructure:"max_files"`
	MaxBodyMB int    `mapstructure:"max_body_mb"`
}

type RedisConf struct {
	Addr          string `mapstructure:"addr"`
	Password      string `mapstructure:"password"`
	DB            int    `mapstructure:"db"`
	RateLimit     int    `mapstructure:"rate_limit"`
	WindowSeconds int    `mapstructure:"rate_window_seconds"`
}

type Config struct {
	App    AppConf    `mapstructure:"app"`
	Mongo  MongoConf  `mapstructure:"mongodb"`
	AWS    AWSConf    `mapstructure:"aws"`
	Upload UploadConf `mapstructure:"upload"`
	Redis  RedisConf  `mapstructure:"redis"`
	Log    struct {
		Level string `mapstructure:"level"`
	} `mapstructure:"log"`

	// derived
	ShutdownTimeout time.Duration
	RateWindow      time.Duration
}

func Load(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		return nil, err
	}
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}
	if cfg.App.ShutdownSecond == 0 {
		cfg.App.ShutdownSecond = 15
	}
	cfg.ShutdownTimeout = time.Duration(cfg.App.ShutdownSecond) * time.Second
	if cfg.Upload.Folder == "" {
		cfg.Upload.Folder = "tourism-media"
	}
	if cfg.Upload.MaxWidth == 0 {
		cfg.Upload.MaxWidth = 1920
	}
	if cfg.Upload.MaxHeight == 0 {
		cfg.Upload.MaxHeight = 1080
	}
	if cfg.Upload.MaxFiles == 0 {
		cfg.Upload.MaxFiles = 10
	}
	if cfg.Upload.MaxBodyMB == 0 {
		cfg.Upload.MaxBodyMB = 50
	}
	if cfg.Redis.RateLimit == 0 {
		cfg.Redis.RateLimit = 100
	}
	if cfg.Redis.WindowSeconds == 0 {
		cfg.Redis.WindowSeconds = 60
	}
	cfg.RateWindow = time.Duration(cfg.Redis.WindowSeconds) * time.Second
	return &cfg, nil
}
