//go:build mage

package main

import (
	"fmt"
	"os"

	"github.com/magefile/mage/mg"
)

type Run mg.Namespace

// Builds and runs the binary against vkpick.toml. VKPICK_CONFIG picks another file.
func (Run) Engine() error {
	mg.Deps(Build.Engine)

	config := os.Getenv("VKPICK_CONFIG")
	if config == "" {
		config = "vkpick.toml"
	}
	fmt.Println("Run engine...")
	if _, err := executeCmd("bin/vkpick", withArgs("-config", config), withStream()); err != nil {
		return err
	}
	return nil
}
