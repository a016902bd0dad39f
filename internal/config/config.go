package config

import (
	"fmt"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

type Config struct {
	LogLevel          string `yaml:"log-level" env-default:"info"`
	HTTPPort          string `yaml:"http-port" env-default:"9090"`
	VisionPort        string `yaml:"vision-port" env-default:"5005"`
	Redis             Redis  `yaml:"redis"`
	SQLiteStoragePath string `yaml:"sqlite-storage-path" env-default:"games.db"`
	Serial            Serial `yaml:"serial"`
	Game              Game   `yaml:"game"`
}

type Redis struct {
	Host string `yaml:"host" env-default:"localhost"`
	Port string `yaml:"port" env-default:"6379"`
}

type Serial struct {
	Port     string `yaml:"port" env-default:"/dev/ttyAMA0"`
	BaudRate int    `yaml:"baud-rate" env-default:"9600"`
}

type Game struct {
	// Mode determines who places the first piece.
	Mode      string `yaml:"mode" env-default:"opponent-first"`
	SelfColor string `yaml:"self-color" env-default:"black"`

	// OpeningCell presets the first own move in self-first mode; -1 lets
	// the engine decide.
	OpeningCell int `yaml:"opening-cell" env-default:"-1"`

	// CameraQuarterTurns is how many quarter-turns clockwise the camera
	// mount is rotated relative to the canonical board numbering.
	CameraQuarterTurns int `yaml:"camera-quarter-turns" env-default:"0"`

	StabilityWindow int           `yaml:"stability-window" env-default:"3"`
	PollInterval    time.Duration `yaml:"poll-interval" env-default:"200ms"`
	DecisionTimeout time.Duration `yaml:"decision-timeout" env-default:"30s"`
}

// MustLoad - load all configurations in config.yml file.
func MustLoad(path string) *Config {
	config := &Config{}

	if err := cleanenv.ReadConfig(path, config); err != nil {
		panic(fmt.Errorf("unable to load config file: %w", err))
	}

	return config
}

func (that *Redis) GetRedisAddr() string {
	return fmt.Sprintf("%s:%s", that.Host, that.Port)
}
