package app

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/vladislavdragonenkov/storedesk/internal/service/lifecycle"
)

// Драйверы хранилища.
const (
	StorageDriverSQLite = "sqlite"
	StorageDriverMemory = "memory"
)

// Способы доставки оповещений о срочных заказах.
const (
	NotifierLog   = "log"
	NotifierKafka = "kafka"
	NotifierAMQP  = "amqp"
)

// Config описывает настройки запуска приложения.
type Config struct {
	HTTPAddr         string        `yaml:"http_addr"`
	MetricsAddr      string        `yaml:"metrics_addr"`
	StorageDriver    string        `yaml:"storage_driver"`
	DBPath           string        `yaml:"db_path"`
	BackupDir        string        `yaml:"backup_dir"`
	TicketDir        string        `yaml:"ticket_dir"`
	UrgencyInterval  time.Duration `yaml:"urgency_interval"`
	TransitionPolicy string        `yaml:"transition_policy"`
	Notifier         string        `yaml:"notifier"`
	KafkaBrokers     []string      `yaml:"kafka_brokers"`
	KafkaTopic       string        `yaml:"kafka_topic"`
	AMQPURL          string        `yaml:"amqp_url"`
	AMQPExchange     string        `yaml:"amqp_exchange"`
	CurrencySymbol   string        `yaml:"currency_symbol"`
	LogLevel         string        `yaml:"log_level"`
}

// DefaultConfig возвращает настройки для локального запуска.
func DefaultConfig() Config {
	return Config{
		HTTPAddr:         ":8080",
		MetricsAddr:      ":9090",
		StorageDriver:    StorageDriverSQLite,
		DBPath:           "data/store.db",
		BackupDir:        "backup",
		TicketDir:        "tickets",
		UrgencyInterval:  5 * time.Minute,
		TransitionPolicy: "permissive",
		Notifier:         NotifierLog,
		KafkaTopic:       "store.notifications",
		AMQPExchange:     "store_notifications",
		LogLevel:         "info",
	}
}

// LoadConfig читает YAML поверх DefaultConfig и применяет переменные окружения.
// Пустой path означает «только окружение».
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("read config %s: %w", path, err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("parse config %s: %w", path, err)
		}
	}
	if err := cfg.ApplyEnv(os.LookupEnv); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// ApplyEnv переопределяет поля из окружения. lookup обычно os.LookupEnv.
func (c *Config) ApplyEnv(lookup func(string) (string, bool)) error {
	str := func(key string, dst *string) {
		if v, ok := lookup(key); ok && strings.TrimSpace(v) != "" {
			*dst = strings.TrimSpace(v)
		}
	}

	str("STORE_HTTP_ADDR", &c.HTTPAddr)
	str("STORE_METRICS_ADDR", &c.MetricsAddr)
	str("STORE_STORAGE_DRIVER", &c.StorageDriver)
	str("STORE_DB_PATH", &c.DBPath)
	str("STORE_BACKUP_DIR", &c.BackupDir)
	str("STORE_TICKET_DIR", &c.TicketDir)
	str("STORE_TRANSITION_POLICY", &c.TransitionPolicy)
	str("STORE_NOTIFIER", &c.Notifier)
	str("STORE_KAFKA_TOPIC", &c.KafkaTopic)
	str("STORE_AMQP_URL", &c.AMQPURL)
	str("STORE_AMQP_EXCHANGE", &c.AMQPExchange)
	str("STORE_CURRENCY_SYMBOL", &c.CurrencySymbol)
	str("LOG_LEVEL", &c.LogLevel)

	if v, ok := lookup("KAFKA_BROKERS"); ok && strings.TrimSpace(v) != "" {
		c.KafkaBrokers = splitList(v)
	}
	if v, ok := lookup("STORE_URGENCY_INTERVAL"); ok && strings.TrimSpace(v) != "" {
		d, err := time.ParseDuration(strings.TrimSpace(v))
		if err != nil {
			return fmt.Errorf("STORE_URGENCY_INTERVAL: %w", err)
		}
		c.UrgencyInterval = d
	}
	return nil
}

// Validate проверяет согласованность настроек.
func (c Config) Validate() error {
	var errs []error

	switch c.StorageDriver {
	case StorageDriverSQLite:
		if strings.TrimSpace(c.DBPath) == "" {
			errs = append(errs, errors.New("db_path is required for sqlite storage"))
		}
	case StorageDriverMemory:
	default:
		errs = append(errs, fmt.Errorf("unsupported storage driver %q", c.StorageDriver))
	}

	if c.UrgencyInterval <= 0 {
		errs = append(errs, errors.New("urgency_interval must be positive"))
	}
	if _, err := lifecycle.PolicyByName(c.TransitionPolicy); err != nil {
		errs = append(errs, err)
	}

	switch c.Notifier {
	case NotifierLog:
	case NotifierKafka:
		if len(c.KafkaBrokers) == 0 {
			errs = append(errs, errors.New("kafka notifier requires KAFKA_BROKERS"))
		}
	case NotifierAMQP:
		if strings.TrimSpace(c.AMQPURL) == "" {
			errs = append(errs, errors.New("amqp notifier requires STORE_AMQP_URL"))
		}
	default:
		errs = append(errs, fmt.Errorf("unsupported notifier %q", c.Notifier))
	}

	return errors.Join(errs...)
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
