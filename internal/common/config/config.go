package config

import (
	"github.com/caarlos0/env/v10"
	"github.com/joho/godotenv"
)

type Config struct {
	Debug bool `env:"DEBUG" envDefault:"false"`

	Server struct {
		Port   int    `env:"PORT" envDefault:"8080"`
		Origin string `env:"ORIGIN" envDefault:"*"`
	}

	Twitter struct {
		BearerToken string `env:"TWITTER_BEARER_TOKEN,required"`
	}

	Github struct {
		Token string `env:"GITHUB_TOKEN,required"`
	}

	// Registry is the repository holding the verified-address list documents.
	Registry struct {
		Owner         string `env:"REGISTRY_OWNER,required"`
		Repo          string `env:"REGISTRY_REPO" envDefault:"verified-list"`
		EcdsaPath     string `env:"REGISTRY_ECDSA_PATH" envDefault:"verified.json"`
		SolanaPath    string `env:"REGISTRY_SOLANA_PATH" envDefault:"verified-solana.json"`
		WriteAttempts int    `env:"REGISTRY_WRITE_ATTEMPTS" envDefault:"3"`
	}

	// Redis is optional; with an empty addr the rate limiter is disabled.
	Redis struct {
		Addr     string `env:"REDIS_ADDR" envDefault:""`
		Password string `env:"REDIS_PASSWORD" envDefault:""`
		DB       int    `env:"REDIS_DB" envDefault:"0"`
	}

	RateLimit struct {
		PerMinute int `env:"RATE_LIMIT_PER_MINUTE" envDefault:"30"`
	}
}

func Load() *Config {
	// .env is optional; in production the variables are set directly.
	_ = godotenv.Load()

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		panic(err)
	}

	return cfg
}
