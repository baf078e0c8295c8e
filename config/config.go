package config

import (
	"os"
	"path/filepath"

	"github.com/spf13/cast"
	"gopkg.in/yaml.v2"
)

type SysConfig struct {
	Appid    string `yaml:"appid" json:"appid"`
	Location string `yaml:"location" json:"location"`
	Workdir  string `yaml:"workdir" json:"workdir"`
	Debug    bool   `yaml:"debug" json:"debug"`
}

type WebConfig struct {
	Host      string `yaml:"host" json:"host"`
	Port      int    `yaml:"port" json:"port"`
	Secret    string `yaml:"secret" json:"secret"`
	JwtExpire int    `yaml:"jwt_expire" json:"jwt_expire"` // hours
}

type DBConfig struct {
	Type     string `yaml:"type" json:"type"`
	Host     string `yaml:"host" json:"host"`
	Port     int    `yaml:"port" json:"port"`
	Name     string `yaml:"name" json:"name"`
	User     string `yaml:"user" json:"user"`
	Passwd   string `yaml:"passwd" json:"passwd"`
	MaxConn  int    `yaml:"max_conn" json:"max_conn"`
	IdleConn int    `yaml:"idle_conn" json:"idle_conn"`
	Debug    bool   `yaml:"debug" json:"debug"`
}

type LogConfig struct {
	Mode       string `yaml:"mode" json:"mode"`
	Filename   string `yaml:"filename" json:"filename"`
	FileEnable bool   `yaml:"file_enable" json:"file_enable"`
}

type NotifyConfig struct {
	MailEnable bool   `yaml:"mail_enable" json:"mail_enable"`
	SmtpHost   string `yaml:"smtp_host" json:"smtp_host"`
	SmtpPort   int    `yaml:"smtp_port" json:"smtp_port"`
	SmtpUser   string `yaml:"smtp_user" json:"smtp_user"`
	SmtpPasswd string `yaml:"smtp_passwd" json:"smtp_passwd"`
	MailTo     string `yaml:"mail_to" json:"mail_to"`
	WebhookURL string `yaml:"webhook_url" json:"webhook_url"`
}

type AppConfig struct {
	System   SysConfig    `yaml:"system" json:"system"`
	Web      WebConfig    `yaml:"web" json:"web"`
	Database DBConfig     `yaml:"database" json:"database"`
	Logger   LogConfig    `yaml:"logger" json:"logger"`
	Notify   NotifyConfig `yaml:"notify" json:"notify"`
}

func (c *AppConfig) GetLogDir() string {
	return filepath.Join(c.System.Workdir, "logs")
}

func (c *AppConfig) GetDataDir() string {
	return filepath.Join(c.System.Workdir, "data")
}

var DefaultAppConfig = &AppConfig{
	System: SysConfig{
		Appid:    "primehomes",
		Location: "Africa/Blantyre",
		Workdir:  "/var/primehomes",
		Debug:    true,
	},
	Web: WebConfig{
		Host:      "0.0.0.0",
		Port:      1816,
		Secret:    "9b6de5cc-primehomes-1816-8a45-f71ef151606e",
		JwtExpire: 24,
	},
	Database: DBConfig{
		Type:     "postgres",
		Host:     "127.0.0.1",
		Port:     5432,
		Name:     "primehomes",
		User:     "postgres",
		Passwd:   "",
		MaxConn:  100,
		IdleConn: 10,
		Debug:    false,
	},
	Logger: LogConfig{
		Mode:       "development",
		Filename:   "/var/primehomes/primehomes.log",
		FileEnable: true,
	},
	Notify: NotifyConfig{
		SmtpPort: 587,
	},
}

func setEnvValue(name string, val *string) {
	var evalue = os.Getenv(name)
	if evalue != "" {
		*val = evalue
	}
}

func setEnvInt64Value(name string, val *int64) {
	var evalue = os.Getenv(name)
	if evalue == "" {
		return
	}
	*val = cast.ToInt64(evalue)
}

func setEnvBoolValue(name string, val *bool) {
	var evalue = os.Getenv(name)
	if evalue != "" {
		*val = evalue == "true" || evalue == "1" || evalue == "on"
	}
}

// LoadConfig loads the yaml configuration and applies environment overrides
func LoadConfig(cfile string) *AppConfig {
	// Init config
	cfg := new(AppConfig)
	if cfile != "" {
		data, err := os.ReadFile(cfile)
		if err != nil {
			cfg = DefaultAppConfig
		} else if err := yaml.Unmarshal(data, cfg); err != nil {
			cfg = DefaultAppConfig
		}
	} else {
		cfg = DefaultAppConfig
	}

	setEnvValue("PRIMEHOMES_SYSTEM_WORKDIR", &cfg.System.Workdir)
	setEnvBoolValue("PRIMEHOMES_SYSTEM_DEBUG", &cfg.System.Debug)

	setEnvValue("PRIMEHOMES_WEB_HOST", &cfg.Web.Host)
	setEnvValue("PRIMEHOMES_WEB_SECRET", &cfg.Web.Secret)

	setEnvValue("PRIMEHOMES_DB_HOST", &cfg.Database.Host)
	setEnvValue("PRIMEHOMES_DB_NAME", &cfg.Database.Name)
	setEnvValue("PRIMEHOMES_DB_USER", &cfg.Database.User)
	setEnvValue("PRIMEHOMES_DB_PWD", &cfg.Database.Passwd)
	setEnvValue("PRIMEHOMES_DB_TYPE", &cfg.Database.Type)

	var webport, dbport int64
	setEnvInt64Value("PRIMEHOMES_WEB_PORT", &webport)
	if webport > 0 {
		cfg.Web.Port = int(webport)
	}
	setEnvInt64Value("PRIMEHOMES_DB_PORT", &dbport)
	if dbport > 0 {
		cfg.Database.Port = int(dbport)
	}

	setEnvBoolValue("PRIMEHOMES_NOTIFY_MAIL_ENABLE", &cfg.Notify.MailEnable)
	setEnvValue("PRIMEHOMES_NOTIFY_SMTP_HOST", &cfg.Notify.SmtpHost)
	setEnvValue("PRIMEHOMES_NOTIFY_MAIL_TO", &cfg.Notify.MailTo)
	setEnvValue("PRIMEHOMES_NOTIFY_WEBHOOK_URL", &cfg.Notify.WebhookURL)

	return cfg
}
