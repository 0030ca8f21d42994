package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Sheet sources.
const (
	SourceGoogle = "google"
	SourceXLSX   = "xlsx"
)

// Telegram update modes.
const (
	ModePolling = "polling"
	ModeWebhook = "webhook"
)

// Config holds all service configuration.
type Config struct {
	// Environment
	Environment EnvironmentConfig

	// Server
	HTTPServer HTTPServerConfig
	Logger     LoggerConfig

	// Report source and delivery
	Sheets   SheetsConfig
	Columns  ColumnsConfig
	Telegram TelegramConfig
	Report   ReportConfig
	Schedule ScheduleConfig

	// Access and webhooks
	Access  AccessConfig
	Webhook WebhookConfig

	Netdiag NetdiagConfig
	Worker  WorkerConfig
}

type EnvironmentConfig struct {
	Name string
}

type HTTPServerConfig struct {
	Port int
	Mode string
}

type LoggerConfig struct {
	Level        string
	Mode         string
	Encoding     string
	ColorEnabled bool
}

type SheetsConfig struct {
	Source          string // google or xlsx
	CredentialsPath string
	SpreadsheetID   string
	SheetName       string
	WorkbookPath    string
}

// ColumnsConfig maps report fields onto sheet header names.
type ColumnsConfig struct {
	Task             string
	Link             string
	Status           string
	ClosedDate       string
	StatusDone       string
	StatusInProgress string
}

type TelegramConfig struct {
	BotToken       string
	Mode           string // polling or webhook
	WebhookURL     string
	WebhookSecret  string
	ConnectTimeout time.Duration
	SendTimeout    time.Duration
	PollTimeout    time.Duration
}

type ReportConfig struct {
	ChatID         string // validated when the scheduled job runs
	IntroMentions  string
	IntroText      string
	Timezone       string
	ChunkSize      int
	RetryAttempts  int
	RetryBaseDelay time.Duration
}

type ScheduleConfig struct {
	Enabled bool
	Cron    string
}

// AccessConfig keeps the raw comma separated allow-lists; bad entries are
// dropped with a warning when the guard is built.
type AccessConfig struct {
	AllowedChatIDs         string
	AllowedUserIDs         string
	CommandRateLimitPerMin int
}

type WebhookConfig struct {
	AllowedIPs      []string
	RateLimitPerMin int
}

type NetdiagConfig struct {
	Host         string
	HTTPAttempts int
	Timeout      time.Duration
}

type WorkerConfig struct {
	Workers   int
	QueueSize int
}

// Load loads configuration using Viper.
// Config file name: config.yaml, searched in ./config, ., /etc/weekly-report/
func Load() (*Config, error) {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath("./config")
	viper.AddConfigPath(".")
	viper.AddConfigPath("/etc/weekly-report/")

	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	setDefaults()

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	cfg := &Config{}

	// Environment & Server
	cfg.Environment.Name = viper.GetString("environment.name")
	cfg.HTTPServer.Port = viper.GetInt("http_server.port")
	cfg.HTTPServer.Mode = viper.GetString("http_server.mode")
	cfg.Logger.Level = viper.GetString("logger.level")
	cfg.Logger.Mode = viper.GetString("logger.mode")
	cfg.Logger.Encoding = viper.GetString("logger.encoding")
	cfg.Logger.ColorEnabled = viper.GetBool("logger.color_enabled")

	// Sheets
	cfg.Sheets.Source = strings.ToLower(viper.GetString("sheets.source"))
	cfg.Sheets.CredentialsPath = viper.GetString("sheets.credentials_path")
	cfg.Sheets.SpreadsheetID = expandEnvVar(viper.GetString("sheets.spreadsheet_id"))
	cfg.Sheets.SheetName = viper.GetString("sheets.sheet_name")
	cfg.Sheets.WorkbookPath = viper.GetString("sheets.workbook_path")
	overrideString(&cfg.Sheets.CredentialsPath, "creds_file")
	overrideString(&cfg.Sheets.SpreadsheetID, "spreadsheet_id")
	overrideString(&cfg.Sheets.SheetName, "sheet_name")
	overrideString(&cfg.Sheets.WorkbookPath, "workbook_path")

	cfg.Columns.Task = viper.GetString("columns.task")
	cfg.Columns.Link = viper.GetString("columns.link")
	cfg.Columns.Status = viper.GetString("columns.status")
	cfg.Columns.ClosedDate = viper.GetString("columns.closed_date")
	cfg.Columns.StatusDone = viper.GetString("columns.status_done")
	cfg.Columns.StatusInProgress = viper.GetString("columns.status_in_progress")

	// Telegram
	cfg.Telegram.BotToken = expandEnvVar(viper.GetString("telegram.bot_token"))
	cfg.Telegram.Mode = strings.ToLower(viper.GetString("telegram.mode"))
	cfg.Telegram.WebhookURL = viper.GetString("telegram.webhook_url")
	cfg.Telegram.WebhookSecret = expandEnvVar(viper.GetString("telegram.webhook_secret"))
	cfg.Telegram.ConnectTimeout = viper.GetDuration("telegram.connect_timeout")
	cfg.Telegram.SendTimeout = viper.GetDuration("telegram.send_timeout")
	cfg.Telegram.PollTimeout = viper.GetDuration("telegram.poll_timeout")
	overrideString(&cfg.Telegram.BotToken, "bot_token")
	overrideSeconds(&cfg.Telegram.ConnectTimeout, "tg_connect_timeout_sec")
	overrideSeconds(&cfg.Telegram.SendTimeout, "tg_send_timeout_sec")
	overrideSeconds(&cfg.Telegram.PollTimeout, "tg_poll_timeout_sec")

	// Report
	cfg.Report.ChatID = viper.GetString("report.chat_id")
	cfg.Report.IntroMentions = viper.GetString("report.intro_mentions")
	cfg.Report.IntroText = viper.GetString("report.intro_text")
	cfg.Report.Timezone = viper.GetString("report.timezone")
	cfg.Report.ChunkSize = viper.GetInt("report.chunk_size")
	cfg.Report.RetryAttempts = viper.GetInt("report.retry_attempts")
	cfg.Report.RetryBaseDelay = viper.GetDuration("report.retry_base_delay")
	overrideString(&cfg.Report.ChatID, "report_chat_id")
	overrideString(&cfg.Report.IntroMentions, "intro_mentions")
	overrideString(&cfg.Report.IntroText, "intro_text")
	overrideString(&cfg.Report.Timezone, "report_timezone")

	cfg.Schedule.Enabled = viper.GetBool("schedule.enabled")
	cfg.Schedule.Cron = viper.GetString("schedule.cron")

	// Access
	cfg.Access.AllowedChatIDs = viper.GetString("access.allowed_chat_ids")
	cfg.Access.AllowedUserIDs = viper.GetString("access.allowed_user_ids")
	cfg.Access.CommandRateLimitPerMin = viper.GetInt("access.command_rate_limit_per_min")
	overrideString(&cfg.Access.AllowedChatIDs, "allowed_chat_ids")
	overrideString(&cfg.Access.AllowedUserIDs, "allowed_tg_users")

	// Webhooks
	cfg.Webhook.RateLimitPerMin = viper.GetInt("webhook.rate_limit_per_min")
	cfg.Webhook.AllowedIPs = splitList(viper.GetString("webhook.allowed_ips"))

	// Network diagnostics
	cfg.Netdiag.Host = viper.GetString("netdiag.host")
	cfg.Netdiag.HTTPAttempts = viper.GetInt("netdiag.http_attempts")
	cfg.Netdiag.Timeout = viper.GetDuration("netdiag.timeout")
	overrideString(&cfg.Netdiag.Host, "netdiag_host")
	if attempts := viper.GetInt("netdiag_http_attempts"); attempts > 0 {
		cfg.Netdiag.HTTPAttempts = attempts
	}
	overrideSeconds(&cfg.Netdiag.Timeout, "netdiag_timeout_sec")

	cfg.Worker.Workers = viper.GetInt("worker.workers")
	cfg.Worker.QueueSize = viper.GetInt("worker.queue_size")

	return cfg, nil
}

func setDefaults() {
	viper.SetDefault("environment.name", "development")
	viper.SetDefault("http_server.port", 8080)
	viper.SetDefault("http_server.mode", "debug")
	viper.SetDefault("logger.level", "info")
	viper.SetDefault("logger.mode", "development")
	viper.SetDefault("logger.encoding", "console")
	viper.SetDefault("logger.color_enabled", true)

	viper.SetDefault("sheets.source", SourceGoogle)
	viper.SetDefault("sheets.credentials_path", "credentials.json")
	viper.SetDefault("sheets.sheet_name", "Список задач (2026)")

	viper.SetDefault("columns.task", "Задача")
	viper.SetDefault("columns.link", "Ссылка")
	viper.SetDefault("columns.status", "Статус")
	viper.SetDefault("columns.closed_date", "Дата закрытия")
	viper.SetDefault("columns.status_done", "Выполнено")
	viper.SetDefault("columns.status_in_progress", "В работе")

	viper.SetDefault("telegram.mode", ModePolling)
	viper.SetDefault("telegram.connect_timeout", "10s")
	viper.SetDefault("telegram.send_timeout", "20s")
	viper.SetDefault("telegram.poll_timeout", "50s")

	viper.SetDefault("report.intro_mentions", "@DelureW @paul47789")
	viper.SetDefault("report.intro_text", "Коллеги, подготовил еженедельный отчет")
	viper.SetDefault("report.timezone", "Europe/Moscow")
	viper.SetDefault("report.chunk_size", 3900)
	viper.SetDefault("report.retry_attempts", 3)
	viper.SetDefault("report.retry_base_delay", "1s")

	viper.SetDefault("schedule.enabled", true)
	viper.SetDefault("schedule.cron", "0 15 * * 1")

	viper.SetDefault("access.command_rate_limit_per_min", 6)
	viper.SetDefault("webhook.rate_limit_per_min", 60)

	viper.SetDefault("netdiag.host", "api.telegram.org")
	viper.SetDefault("netdiag.http_attempts", 3)
	viper.SetDefault("netdiag.timeout", "6s")

	viper.SetDefault("worker.workers", 2)
	viper.SetDefault("worker.queue_size", 32)
}

// overrideString replaces *dst with the flat legacy key when it is set.
func overrideString(dst *string, key string) {
	if v := viper.GetString(key); v != "" {
		*dst = v
	}
}

// overrideSeconds reads a legacy "*_SEC" key holding float seconds.
func overrideSeconds(dst *time.Duration, key string) {
	if v := viper.GetFloat64(key); v > 0 {
		*dst = time.Duration(v * float64(time.Second))
	}
}

// expandEnvVar expands environment variables in the format ${VAR_NAME}
func expandEnvVar(value string) string {
	if !strings.HasPrefix(value, "${") || !strings.HasSuffix(value, "}") {
		return value
	}

	envVar := value[2 : len(value)-1]
	if envValue := viper.GetString(strings.ToLower(envVar)); envValue != "" {
		return envValue
	}
	return os.Getenv(envVar)
}

func splitList(raw string) []string {
	var out []string
	for _, item := range strings.Split(raw, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}
