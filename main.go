/*
vkpick opens a window, selects a Vulkan capable GPU for it and negotiates
the swapchain configuration, then keeps both valid across resizes until the
window is closed.
*/
package main

import (
	"flag"
	"os"
	"os/signal"
	"syscall"

	"github.com/spaghettifunk/vkpick/engine"
	"github.com/spaghettifunk/vkpick/engine/core"
)

// Process exit codes, one per startup failure kind.
const (
	exitOK               = 0
	exitError            = 1
	exitNoDevices        = 2
	exitNoSuitableDevice = 3
	exitCreationFailed   = 4
)

func main() {
	os.Exit(run())
}

func run() int {
	configPath := flag.String("config", "vkpick.toml", "path to the TOML configuration file")
	flag.Parse()

	config, err := engine.LoadConfig(*configPath)
	if err != nil {
		core.LogError("Failed to load configuration: %v", err)
		return exitError
	}

	e := engine.New(config, *configPath)
	defer func() {
		if err := e.Shutdown(); err != nil {
			core.LogError("Shutdown: %v", err)
		}
	}()

	if err := e.Initialize(); err != nil {
		return exitCode(err)
	}

	// signal channel to capture system calls
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGTERM, syscall.SIGINT, syscall.SIGQUIT)
	done := make(chan struct{})
	defer func() {
		signal.Stop(sigCh)
		close(done)
	}()
	go stopOnSignal(sigCh, done, e.Stop)

	// run engine
	if err := e.Run(); err != nil {
		return exitCode(err)
	}
	return exitOK
}

// stopOnSignal calls stop on the first signal, or returns once done is closed.
func stopOnSignal(sigCh <-chan os.Signal, done <-chan struct{}, stop func()) {
	select {
	case <-sigCh:
		core.LogInfo("Signal received, stopping.")
		stop()
	case <-done:
	}
}

func exitCode(err error) int {
	kind := core.KindOf(err)
	core.LogError("Fatal (%s): %v", kind, err)
	switch kind {
	case core.ErrorKindNone:
		return exitOK
	case core.ErrorKindNoDevices:
		return exitNoDevices
	case core.ErrorKindNoSuitableDevice:
		return exitNoSuitableDevice
	case core.ErrorKindCreationFailed:
		return exitCreationFailed
	}
	return exitError
}
