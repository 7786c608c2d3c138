package engine

import (
	"github.com/spaghettifunk/vkpick/engine/core"
	"github.com/spaghettifunk/vkpick/engine/renderer"
)

type ApplicationConfig struct {
	// The application name used in windowing and as the Vulkan application name.
	Name string `toml:"name"`
	// Window starting position x axis, if applicable.
	StartPosX uint32 `toml:"start_pos_x"`
	// Window starting position y axis, if applicable.
	StartPosY uint32 `toml:"start_pos_y"`
	// Window starting width, if applicable.
	StartWidth uint32 `toml:"width"`
	// Window starting height, if applicable.
	StartHeight uint32 `toml:"height"`
	Resizable   bool   `toml:"resizable"`

	LogLevel core.LogLevel   `toml:"log_level"`
	Renderer renderer.Config `toml:"renderer"`
}

func DefaultApplicationConfig() *ApplicationConfig {
	return &ApplicationConfig{
		Name:        "vkpick",
		StartPosX:   100,
		StartPosY:   100,
		StartWidth:  1280,
		StartHeight: 720,
		Resizable:   true,
		LogLevel:    core.InfoLevel,
		Renderer:    renderer.DefaultConfig(),
	}
}
