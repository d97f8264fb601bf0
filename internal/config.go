package internal

import (
	"fmt"
	"io/fs"
	"pair-chat/errors"
	"time"

	"github.com/Netflix/go-env"
	"github.com/joho/godotenv"
)

type Config struct {
	HTTPPort int `env:"HTTP_PORT,default=8080"`
	GRPCPort int `env:"GRPC_PORT,default=9090"`
	// DebugPort serves the badger key inspector when LOG_LEVEL is DEBUG; 0 disables it.
	DebugPort int `env:"DEBUG_PORT,default=0"`

	BadgerFilepath string `env:"BADGER_FILEPATH,required=true"`
	BlugeFilepath  string `env:"BLUGE_FILEPATH,required=true"`

	JWTSecret         string        `env:"JWT_SECRET,required=true"`
	JWTIssuer         string        `env:"JWT_ISSUER,default=pair-chat"`
	AuthTokenDuration time.Duration `env:"AUTH_TOKEN_DURATION,default=24h"`

	TypingWindow     time.Duration `env:"TYPING_WINDOW,default=1500ms"`
	TypingSweep      time.Duration `env:"TYPING_SWEEP_INTERVAL,default=250ms"`
	IdleTimeout      time.Duration `env:"IDLE_TIMEOUT,default=60s"`
	WriteTimeout     time.Duration `env:"WRITE_TIMEOUT,default=10s"`
	RestartInterval  time.Duration `env:"RESTART_INTERVAL,default=200ms"`
	ShutdownDeadline time.Duration `env:"SHUTDOWN_DEADLINE,default=10s"`

	ConnectionBufferSize int     `env:"CONNECTION_BUFFER_SIZE,default=64"`
	NumberOfWorkers      int     `env:"NUMBER_OF_WORKERS,default=8"`
	WorkerBufferSize     int     `env:"WORKER_BUFFER_SIZE,default=256"`
	FramesPerSecond      float64 `env:"FRAMES_PER_SECOND,default=20"`
	FrameBurst           int     `env:"FRAME_BURST,default=40"`
	MaxFrameBytes        int64   `env:"MAX_FRAME_BYTES,default=65536"`

	MaxContentLength   int   `env:"MAX_CONTENT_LENGTH,default=4000"`
	MaxAttachmentBytes int64 `env:"MAX_ATTACHMENT_BYTES,default=10485760"`
	LimitMessages      int   `env:"LIMIT_MESSAGES,default=50"`

	CharReplacement string `env:"CHARACTER_REPLACEMENT,default=*"`
	// CensoredDir overrides the embedded word lists when set.
	CensoredDir string `env:"CENSORED_DIR"`

	LogLevel string `env:"LOG_LEVEL,default=INFO"`
}

// LoadConfig reads the environment, after loading dotenvFiles when they exist.
// Variables already set in the environment win over the files.
func LoadConfig(dotenvFiles ...string) (Config, error) {
	for _, f := range dotenvFiles {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return Config{}, fmt.Errorf("loading %s: %w", f, err)
		}
	}
	var config Config
	if _, err := env.UnmarshalFromEnviron(&config); err != nil {
		return Config{}, fmt.Errorf("config error: %w", err)
	}
	return config, config.Validate()
}

func (c Config) Validate() error {
	switch {
	case c.NumberOfWorkers <= 0:
		return fmt.Errorf("NUMBER_OF_WORKERS must be positive, got %d", c.NumberOfWorkers)
	case c.ConnectionBufferSize <= 0:
		return fmt.Errorf("CONNECTION_BUFFER_SIZE must be positive, got %d", c.ConnectionBufferSize)
	case c.TypingWindow <= 0:
		return fmt.Errorf("TYPING_WINDOW must be positive, got %s", c.TypingWindow)
	case c.IdleTimeout < time.Second:
		return fmt.Errorf("IDLE_TIMEOUT must be at least 1s, got %s", c.IdleTimeout)
	case c.MaxAttachmentBytes <= 0:
		return fmt.Errorf("MAX_ATTACHMENT_BYTES must be positive, got %d", c.MaxAttachmentBytes)
	}
	_, err := CharacterRune(c.CharReplacement)
	return err
}

func CharacterRune(str string) (rune, error) {
	r := []rune(str)
	if len(r) != 1 {
		return 0, fmt.Errorf(
			"CHARACTER_REPLACEMENT must be a single character, got %q",
			str,
		)
	}
	return r[0], nil
}
