// Package config предоставляет структуры и функцию для парсинга и загрузки конфига.
package config

import (
	"log"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

// Config общая структура для хранения настроек.
type Config struct {
	Env                     string `yaml:"env" env:"ENV" env-default:"local"`
	StorageConnectionString string `yaml:"storage_connection_string" env:"STORAGE_CONNECTION_STRING"`
	MigrationsPath          string `yaml:"migrations_path" env-default:"./migrations"`
	RedisConnection         `yaml:"redis_connection"`
	HTTPServer              `yaml:"http_server"`
	JWTToken                `yaml:"jwttoken"`
	Stripe                  `yaml:"stripe"`
	FCM                     `yaml:"fcm"`
	RabbitMQ                `yaml:"rabbitmq"`
}

// HTTPServer структура для настройки сервера.
type HTTPServer struct {
	AddressHTTP string        `yaml:"addresshttp" env-default:":8080"`
	TimeoutHTTP time.Duration `yaml:"timeouthttp" env-default:"10s"`
	IdleTimeout time.Duration `yaml:"idle_timeout" env-default:"60s"`
}

// RedisConnection структура для настройки подключения к redis.
type RedisConnection struct {
	AddressRedis string        `yaml:"addressredis"`
	Password     string        `yaml:"password"`
	User         string        `yaml:"user"`
	DB           int           `yaml:"db"`
	MaxRetries   int           `yaml:"max_retries" env-default:"3"`
	DialTimeout  time.Duration `yaml:"dial_timeout" env-default:"5s"`
	TimeoutRedis time.Duration `yaml:"timeoutredis" env-default:"5s"`
}

// JWTToken структура для работы с jwt-токеном.
type JWTToken struct {
	JWTSecretKey string        `yaml:"jwt_secret_key" env:"JWT_SECRET_KEY"`
	TokenTTL     time.Duration `yaml:"token_ttl" env-default:"24h"`
}

// Stripe структура для настройки клиента платёжного шлюза.
// Идентификаторы цен соответствуют длительностям подписки и
// задаются конфигом, а не кодом.
type Stripe struct {
	SecretKey        string        `yaml:"secret_key" env:"STRIPE_SECRET_KEY"`
	APIURL           string        `yaml:"api_url" env-default:"https://api.stripe.com/v1"`
	TimeoutStripe    time.Duration `yaml:"timeoutstripe" env-default:"10s"`
	Price1Day        string        `yaml:"price_1_day"`
	Price7Days       string        `yaml:"price_7_days"`
	Price1Month      string        `yaml:"price_1_month"`
	SuccessURLWeb    string        `yaml:"success_url_web"`
	SuccessURLMobile string        `yaml:"success_url_mobile"`
	CancelURL        string        `yaml:"cancel_url"`
}

// FCM структура для настройки клиента push-уведомлений.
type FCM struct {
	ServiceAccountFile string        `yaml:"service_account_file" env:"FCM_SERVICE_ACCOUNT_FILE"`
	ProjectID          string        `yaml:"project_id"`
	TimeoutFCM         time.Duration `yaml:"timeoutfcm" env-default:"10s"`
}

// RabbitMQ структура для настройки подключения к брокеру очередей.
type RabbitMQ struct {
	URL            string        `yaml:"url" env:"RABBITMQ_URL"`
	ConnectRetries int           `yaml:"connect_retries" env-default:"5"`
	ConnectDelay   time.Duration `yaml:"connect_delay" env-default:"3s"`
}

// MustLoad функция для загрузки конфига, путь берётся из переменной окружения CONFIG_PATH.
func MustLoad() *Config {
	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		log.Fatal("CONFIG_PATH is not set")
	}
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		log.Fatalf("file: %s - does not exist", configPath)
	}
	var cfg Config

	if err := cleanenv.ReadConfig(configPath, &cfg); err != nil {
		log.Fatalf("cannot read config: %s", err)
	}
	return &cfg
}
