package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"

	"cardmatch/internal/game/match"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Config reúne tudo que o servidor lê do ambiente.
type Config struct {
	Port       int    `env:"PORT" envDefault:"3000"`
	ListenHost string `env:"LISTEN_HOST"`
	StaticDir  string `env:"STATIC_DIR"`
	SendBuffer int    `env:"SEND_BUFFER" envDefault:"256"`

	ResetDelay      time.Duration `env:"RESET_DELAY" envDefault:"5s"`
	Rematch         bool          `env:"REMATCH" envDefault:"true"`
	EmptyDeckPolicy string        `env:"EMPTY_DECK_POLICY" envDefault:"switch"`

	LogLevel  string `env:"LOG_LEVEL" envDefault:"info"`
	LogFormat string `env:"LOG_FORMAT" envDefault:"text"`

	ServiceName       string `env:"SERVICE_NAME" envDefault:"cardmatch"`
	ConsulAddr        string `env:"CONSUL_HTTP_ADDR"`
	AdvertisedHost    string `env:"SERVICE_ADVERTISED_HOSTNAME"`
	NATSURL           string `env:"NATS_URL"`
	NATSSubjectPrefix string `env:"NATS_SUBJECT" envDefault:"cardmatch.events"`
}

// Load lê um .env opcional e depois o ambiente. Variáveis já definidas no
// ambiente têm prioridade sobre o arquivo.
func Load(files ...string) (Config, error) {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, f := range files {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return Config{}, fmt.Errorf("load %s: %w", f, err)
		}
	}

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	if c.Port <= 0 || c.Port > 65535 {
		return fmt.Errorf("invalid PORT %d", c.Port)
	}
	if c.SendBuffer <= 0 {
		return fmt.Errorf("SEND_BUFFER must be positive, got %d", c.SendBuffer)
	}
	if c.ResetDelay < 0 {
		return fmt.Errorf("RESET_DELAY must not be negative, got %s", c.ResetDelay)
	}
	if _, err := match.ParseEmptyDeckPolicy(c.EmptyDeckPolicy); err != nil {
		return err
	}
	switch c.LogFormat {
	case "text", "json":
	default:
		return fmt.Errorf("invalid LOG_FORMAT %q (want text or json)", c.LogFormat)
	}
	return nil
}

// Addr é o endereço em que o servidor HTTP escuta.
func (c Config) Addr() string {
	return fmt.Sprintf("%s:%d", c.ListenHost, c.Port)
}

// Policy devolve a política já validada.
func (c Config) Policy() match.EmptyDeckPolicy {
	p, _ := match.ParseEmptyDeckPolicy(c.EmptyDeckPolicy)
	return p
}

// Hostname é o nome anunciado ao Consul. Sem SERVICE_ADVERTISED_HOSTNAME
// usa o hostname da máquina.
func (c Config) Hostname() string {
	if c.AdvertisedHost != "" {
		return c.AdvertisedHost
	}
	h, err := os.Hostname()
	if err != nil {
		return "localhost"
	}
	return h
}
