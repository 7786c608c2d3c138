package engine

import (
	"bytes"
	"os"
	"strconv"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/joho/godotenv"
	"github.com/pelletier/go-toml/v2"
	"github.com/spaghettifunk/vkpick/engine/core"
	"golang.org/x/exp/slices"
)

// Environment variables that override the configuration file.
const (
	EnvLogLevel         = "VKPICK_LOG_LEVEL"
	EnvEnableValidation = "VKPICK_ENABLE_VALIDATION"
	EnvWidth            = "VKPICK_WIDTH"
	EnvHeight           = "VKPICK_HEIGHT"
	// Comma separated, appended to the configured device extensions.
	EnvDeviceExtensions = "VKPICK_DEVICE_EXTENSIONS"
)

// LoadConfig builds the application configuration from the defaults, the
// TOML file at path and the environment, in that order. A missing file is
// not an error. Variables from a .env file in the working directory are
// loaded first and never replace variables already set.
func LoadConfig(path string) (*ApplicationConfig, error) {
	config := DefaultApplicationConfig()

	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		return nil, errors.Wrap(err, "failed to load .env")
	}

	data, err := os.ReadFile(path)
	switch {
	case os.IsNotExist(err):
		core.LogInfo("Config file '%s' not found, using defaults.", path)
	case err != nil:
		return nil, errors.Wrapf(err, "failed to read config '%s'", path)
	default:
		if err := decodeConfig(data, config); err != nil {
			return nil, errors.Wrapf(err, "invalid config '%s'", path)
		}
	}

	if err := applyEnvOverrides(config); err != nil {
		return nil, err
	}
	if err := config.validate(); err != nil {
		return nil, err
	}
	return config, nil
}

func decodeConfig(data []byte, config *ApplicationConfig) error {
	dec := toml.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(config); err != nil {
		var strict *toml.StrictMissingError
		if errors.As(err, &strict) {
			return errors.Newf("unknown keys:\n%s", strict.String())
		}
		var decodeErr *toml.DecodeError
		if errors.As(err, &decodeErr) {
			row, col := decodeErr.Position()
			return errors.Newf("line %d, column %d: %s", row, col, decodeErr.Error())
		}
		return err
	}
	return nil
}

func applyEnvOverrides(config *ApplicationConfig) error {
	if v, ok := os.LookupEnv(EnvLogLevel); ok {
		level, err := core.ParseLogLevel(v)
		if err != nil {
			return errors.Wrap(err, EnvLogLevel)
		}
		config.LogLevel = level
	}
	if v, ok := os.LookupEnv(EnvEnableValidation); ok {
		enabled, err := strconv.ParseBool(v)
		if err != nil {
			return errors.Wrap(err, EnvEnableValidation)
		}
		config.Renderer.EnableValidation = enabled
	}
	if v, ok := os.LookupEnv(EnvWidth); ok {
		width, err := strconv.ParseUint(v, 10, 32)
		if err != nil {
			return errors.Wrap(err, EnvWidth)
		}
		config.StartWidth = uint32(width)
	}
	if v, ok := os.LookupEnv(EnvHeight); ok {
		height, err := strconv.ParseUint(v, 10, 32)
		if err != nil {
			return errors.Wrap(err, EnvHeight)
		}
		config.StartHeight = uint32(height)
	}
	if v, ok := os.LookupEnv(EnvDeviceExtensions); ok {
		for _, name := range strings.Split(v, ",") {
			name = strings.TrimSpace(name)
			if name != "" && !slices.Contains(config.Renderer.DeviceExtensions, name) {
				config.Renderer.DeviceExtensions = append(config.Renderer.DeviceExtensions, name)
			}
		}
	}
	return nil
}

func (c *ApplicationConfig) validate() error {
	if c.Name == "" {
		return errors.New("config: name must not be empty")
	}
	if c.StartWidth == 0 || c.StartHeight == 0 {
		return errors.Newf("config: window size %dx%d must not be zero", c.StartWidth, c.StartHeight)
	}
	if c.Renderer.EnableValidation && len(c.Renderer.ValidationLayers) == 0 {
		return errors.New("config: validation enabled without validation layers")
	}
	return nil
}
