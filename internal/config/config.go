package config

import (
	"time"

	"github.com/spf13/viper"
)

type (
	Config struct {
		HTTP
		Database
		MQTT
		Classifier
		Quotes
		Tasks
		Nudge
		Audit
		Global
	}

	HTTP struct {
		Port int32
		Host string
	}
	Database struct {
		Path string
	}
	MQTT struct {
		BrokerURL       string
		Username        string
		Password        string
		ClientIDPrefix  string
		ConnectTimeout  time.Duration
		ReconnectPeriod time.Duration
	}
	Classifier struct {
		BaseURL    string
		APIKey     string
		WorkflowID string
		User       string
	}
	Quotes struct {
		URL string
	}
	Tasks struct {
		Enabled           bool
		Workers           int
		MaxRetries        int
		RetryDelay        time.Duration
		TaskTimeout       time.Duration
		ReleaseAfter      time.Duration
		CleanupInterval   time.Duration
		RetentionDuration time.Duration
	}
	Nudge struct {
		Enabled  bool
		Schedule string // Cron format: "*/10 * * * *" = every 10 minutes
	}
	Audit struct {
		Dir string
	}
	Global struct {
		ShutdownTimeoutInSeconds int
	}
)

func NewConfig() *Config {
	v := viper.New()
	v.AutomaticEnv()
	v.SetDefault("port", 8288)
	v.SetDefault("host", "0.0.0.0")
	v.SetDefault("shutdown_timeout_in_seconds", 2)
	v.SetDefault("database_path", DefaultDatabasePath)
	v.SetDefault("audit_dir", "./audit")

	// MQTT broker defaults
	v.SetDefault("mqtt_broker_url", "tcp://localhost:1883")
	v.SetDefault("mqtt_username", "")
	v.SetDefault("mqtt_password", "")
	v.SetDefault("mqtt_client_id_prefix", DefaultMQTTClientIDPrefix)
	v.SetDefault("mqtt_connect_timeout", "5s")
	v.SetDefault("mqtt_reconnect_period", "1s")

	// Classification workflow defaults
	v.SetDefault("classifier_base_url", "https://api.dify.ai/v1")
	v.SetDefault("classifier_api_key", "")
	v.SetDefault("classifier_workflow_id", "")
	v.SetDefault("classifier_user", "")

	// Quote provider defaults
	v.SetDefault("quotes_url", "https://v1.hitokoto.cn/")

	// Inspiration nudge defaults
	v.SetDefault("nudge_enabled", true)
	v.SetDefault("nudge_schedule", "*/10 * * * *")

	// Task queue defaults
	v.SetDefault("tasks_enabled", true)
	v.SetDefault("task_workers", 2)
	v.SetDefault("task_max_retries", 3)
	v.SetDefault("task_retry_delay", "30s")
	v.SetDefault("task_timeout", "2m")
	v.SetDefault("task_release_after", "15m")
	v.SetDefault("task_cleanup_interval", "1h")
	v.SetDefault("task_retention_duration", "24h")

	return &Config{
		HTTP: HTTP{
			Port: v.GetInt32("PORT"),
			Host: v.GetString("HOST"),
		},
		Database: Database{
			Path: v.GetString("DATABASE_PATH"),
		},
		MQTT: MQTT{
			BrokerURL:       v.GetString("MQTT_BROKER_URL"),
			Username:        v.GetString("MQTT_USERNAME"),
			Password:        v.GetString("MQTT_PASSWORD"),
			ClientIDPrefix:  v.GetString("MQTT_CLIENT_ID_PREFIX"),
			ConnectTimeout:  v.GetDuration("MQTT_CONNECT_TIMEOUT"),
			ReconnectPeriod: v.GetDuration("MQTT_RECONNECT_PERIOD"),
		},
		Classifier: Classifier{
			BaseURL:    v.GetString("CLASSIFIER_BASE_URL"),
			APIKey:     v.GetString("CLASSIFIER_API_KEY"),
			WorkflowID: v.GetString("CLASSIFIER_WORKFLOW_ID"),
			User:       v.GetString("CLASSIFIER_USER"),
		},
		Quotes: Quotes{
			URL: v.GetString("QUOTES_URL"),
		},
		Tasks: Tasks{
			Enabled:           v.GetBool("TASKS_ENABLED"),
			Workers:           v.GetInt("TASK_WORKERS"),
			MaxRetries:        v.GetInt("TASK_MAX_RETRIES"),
			RetryDelay:        v.GetDuration("TASK_RETRY_DELAY"),
			TaskTimeout:       v.GetDuration("TASK_TIMEOUT"),
			ReleaseAfter:      v.GetDuration("TASK_RELEASE_AFTER"),
			CleanupInterval:   v.GetDuration("TASK_CLEANUP_INTERVAL"),
			RetentionDuration: v.GetDuration("TASK_RETENTION_DURATION"),
		},
		Nudge: Nudge{
			Enabled:  v.GetBool("NUDGE_ENABLED"),
			Schedule: v.GetString("NUDGE_SCHEDULE"),
		},
		Audit: Audit{
			Dir: v.GetString("AUDIT_DIR"),
		},
		Global: Global{
			ShutdownTimeoutInSeconds: v.GetInt("SHUTDOWN_TIMEOUT_IN_SECONDS"),
		},
	}
}
