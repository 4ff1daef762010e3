package config

import (
	"fmt"

	"github.com/caarlos0/env/v6"
)

type ServerCfg struct {
	Port            int `env:"PORT" envDefault:"3000"`
	ShutdownTimeout int `env:"SHUTDOWN_TIMEOUT_SECONDS" envDefault:"10"`
}

type PostgresCfg struct {
	Host        string `env:"POSTGRES_HOST" envDefault:"localhost"`
	Port        int    `env:"POSTGRES_PORT" envDefault:"5432"`
	User        string `env:"POSTGRES_USER"`
	Password    string `env:"POSTGRES_PASSWORD"`
	Database    string `env:"POSTGRES_DB"`
	SslMode     string `env:"POSTGRES_SSL_MODE" envDefault:"disable"`
	PoolMaxConn int    `env:"POSTGRES_POOL_MAX_CONN" envDefault:"100"`
}

type MongoCfg struct {
	Host        string `env:"MONGO_HOST" envDefault:"localhost"`
	Port        int    `env:"MONGO_PORT" envDefault:"27017"`
	User        string `env:"MONGO_USER"`
	Password    string `env:"MONGO_PASSWORD"`
	MaxPoolSize int    `env:"MONGO_MAX_POOL_SIZE" envDefault:"100"`
}

type ElasticsearchCfg struct {
	Scheme string `env:"ES_SCHEME" envDefault:"http"`
	Host   string `env:"ES_HOST" envDefault:"localhost"`
	Port   int    `env:"ES_PORT" envDefault:"9200"`
}

// Address builds the single node address the search client connects to
func (c ElasticsearchCfg) Address() string {
	return fmt.Sprintf("%s://%s:%d", c.Scheme, c.Host, c.Port)
}

type RedisCfg struct {
	Host     string `env:"REDIS_HOST" envDefault:"localhost"`
	Port     int    `env:"REDIS_PORT" envDefault:"6379"`
	Password string `env:"REDIS_PASSWORD" envDefault:""`
	DB       int    `env:"REDIS_DB" envDefault:"0"`
}

type Config struct {
	ServerCfg        ServerCfg
	PostgresCfg      PostgresCfg
	MongoCfg         MongoCfg
	ElasticsearchCfg ElasticsearchCfg
	RedisCfg         RedisCfg
}

func Build() (Config, error) {
	var cfg Config
	opts := env.Options{RequiredIfNoDef: true}

	if err := env.Parse(&cfg, opts); err != nil {
		return cfg, fmt.Errorf("failed to parse environment variables - %w", err)
	}
	return cfg, nil
}
