package config

import "time"

// Config is the full application configuration.
type Config struct {
	App      AppConfig      `yaml:"app"`
	Mail     MailConfig     `yaml:"mail"`
	Database DatabaseConfig `yaml:"database"`
	Redis    RedisConfig    `yaml:"redis"`
	Cache    CacheConfig    `yaml:"cache"`
	Queue    QueueConfig    `yaml:"queue"`
	SQS      SQSConfig      `yaml:"sqs"`
}

// AppConfig holds storefront-wide settings.
type AppConfig struct {
	Name                   string `env:"APP_NAME" yaml:"name"`
	AdminNotificationEmail string `env:"ADMIN_NOTIFICATION_EMAIL" yaml:"admin_notification_email"`
	LogLevel               string `env:"LOG_LEVEL" yaml:"log_level"`
	LogFormat              string `env:"LOG_FORMAT" yaml:"log_format"` // console, json
	// DigestSchedule is a six-field cron expression for the pending-order digest.
	DigestSchedule string `env:"ORDER_DIGEST_SCHEDULE" yaml:"digest_schedule"`
	// DigestAfter is how long an order must be pending before it is listed.
	DigestAfter time.Duration `env:"ORDER_DIGEST_PENDING_AFTER" yaml:"digest_after"`
}

// MailConfig holds mail driver settings. SMTP variable names match the
// storefront's original deployment.
type MailConfig struct {
	Mailer      string        `env:"MAIL_MAILER" yaml:"mailer"` // smtp, log, ses
	Host        string        `env:"SMTP_HOST" yaml:"host"`
	Port        int           `env:"SMTP_PORT" yaml:"port"`
	Username    string        `env:"SMTP_USER" yaml:"username"`
	Password    string        `env:"SMTP_PASS" yaml:"password"`
	Secure      bool          `env:"SMTP_SECURE" yaml:"secure"`
	FromAddress string        `env:"SMTP_FROM_EMAIL" yaml:"from_address"`
	FromName    string        `env:"SMTP_FROM_NAME" yaml:"from_name"`
	Timeout     time.Duration `env:"SMTP_TIMEOUT" yaml:"timeout"`
	SESRegion   string        `env:"SES_REGION" yaml:"ses_region"`
}

// ImplicitTLS reports whether the connection starts encrypted. Port 465
// always does.
func (c MailConfig) ImplicitTLS() bool {
	return c.Secure || c.Port == 465
}

// DatabaseConfig holds configuration for the SQL database connection
type DatabaseConfig struct {
	Connection string `env:"DB_CONNECTION" yaml:"connection"` // pgsql, mysql
	Host       string `env:"DB_HOST" yaml:"host"`
	Port       string `env:"DB_PORT" yaml:"port"`
	Database   string `env:"DB_DATABASE" yaml:"database"`
	Username   string `env:"DB_USERNAME" yaml:"username"`
	Password   string `env:"DB_PASSWORD" yaml:"password"`
	SSLMode    string `env:"DB_SSLMODE" yaml:"sslmode"`
	Table      string `env:"DB_QUEUE_TABLE" yaml:"table"` // jobs table name, default "jobs"
}

// RedisConfig holds configuration for Redis connection
type RedisConfig struct {
	Host     string `env:"REDIS_HOST" yaml:"host"`
	Port     string `env:"REDIS_PORT" yaml:"port"`
	Password string `env:"REDIS_PASSWORD" yaml:"password"`
	DB       int    `env:"REDIS_DB" yaml:"db"`
}

// Addr returns host:port.
func (c RedisConfig) Addr() string {
	return c.Host + ":" + c.Port
}

// CacheConfig selects the product-name cache backend.
type CacheConfig struct {
	Store            string        `env:"CACHE_STORE" yaml:"store"` // redis, memcached, database, none
	MemcachedServers []string      `env:"MEMCACHED_SERVERS" envSeparator:"," yaml:"memcached_servers"`
	Table            string        `env:"CACHE_TABLE" yaml:"table"`
	TTL              time.Duration `env:"CACHE_TTL" yaml:"ttl"`
}

// QueueConfig selects how notification mail is delivered.
type QueueConfig struct {
	Connection string `env:"QUEUE_CONNECTION" yaml:"connection"` // sync, redis, database, sqs
	Name       string `env:"QUEUE_NAME" yaml:"name"`
	MaxTries   int    `env:"QUEUE_MAX_TRIES" yaml:"max_tries"`
}
