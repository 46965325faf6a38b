package config

import (
	"fmt"
	"log"
	"strings"

	"github.com/caarlos0/env/v11"
)

// AppConfig 汇总站点服务、JSON 文件服务与各存储后端所需的配置。
type AppConfig struct {
	ListenAddr     string `env:"LISTEN_ADDR"`
	Port           string `env:"PORT" envDefault:"8080"`
	JSONServerAddr string `env:"JSON_SERVER_ADDR"`
	JSONServerPort string `env:"JSON_SERVER_PORT" envDefault:"3001"`
	JSONDataFile   string `env:"JSON_DATA_FILE" envDefault:"public/data.json"`
	JSONServerURL  string `env:"JSON_SERVER_URL" envDefault:"http://localhost:3001/api"`
	DatabasePath   string `env:"DATABASE_PATH" envDefault:"wems.db"`
	RemoteURL      string `env:"REMOTE_DATABASE_URL"`
	SessionSecret  string `env:"SESSION_SECRET" envDefault:"wems-dev-secret"`
	GinMode        string `env:"GIN_MODE" envDefault:"release"`
	UploadDir      string `env:"UPLOAD_DIR" envDefault:"web/static/uploads"`
	UploadURLPath  string `env:"UPLOAD_URL_PATH" envDefault:"/static/uploads"`
	AdminUsername  string `env:"ADMIN_USERNAME" envDefault:"admin"`
	AdminPassword  string `env:"ADMIN_PASSWORD" envDefault:"wems2024"`
	StorageType    string `env:"STORAGE_TYPE"`
}

var parseEnv = env.Parse

// Load 从环境变量读取应用配置，并为缺失项提供默认值。
// 环境变量显式设置为空白字符串时同样回退默认值。
func Load() AppConfig {
	var cfg AppConfig
	if err := parseEnv(&cfg); err != nil {
		// 解析失败时回退为全部默认值
		log.Printf("[config] failed to parse environment, using defaults: %v", err)
		cfg = AppConfig{}
	}

	cfg.Port = fallback(cfg.Port, "8080")
	cfg.ListenAddr = fallback(cfg.ListenAddr, fmt.Sprintf(":%s", cfg.Port))
	cfg.JSONServerPort = fallback(cfg.JSONServerPort, "3001")
	cfg.JSONServerAddr = fallback(cfg.JSONServerAddr, fmt.Sprintf(":%s", cfg.JSONServerPort))
	cfg.JSONDataFile = fallback(cfg.JSONDataFile, "public/data.json")
	cfg.JSONServerURL = strings.TrimRight(fallback(cfg.JSONServerURL, "http://localhost:3001/api"), "/")
	cfg.DatabasePath = fallback(cfg.DatabasePath, "wems.db")
	cfg.RemoteURL = strings.TrimSpace(cfg.RemoteURL)
	cfg.SessionSecret = fallback(cfg.SessionSecret, "wems-dev-secret")
	cfg.GinMode = fallback(cfg.GinMode, "release")
	cfg.UploadDir = fallback(cfg.UploadDir, "web/static/uploads")
	cfg.UploadURLPath = fallback(cfg.UploadURLPath, "/static/uploads")
	cfg.AdminUsername = fallback(cfg.AdminUsername, "admin")
	cfg.AdminPassword = fallback(cfg.AdminPassword, "wems2024")
	cfg.StorageType = strings.TrimSpace(cfg.StorageType)

	return cfg
}

func fallback(value, def string) string {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return def
	}
	return trimmed
}
