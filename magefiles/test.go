//go:build mage

package main

import (
	"github.com/magefile/mage/mg"
)

type Test mg.Namespace

// Runs every package test with the race detector.
func (Test) All() error {
	_, err := executeCmd("go", withArgs("test", "-race", "./..."), withStream())
	return err
}

// Runs the selection and negotiation tests. These packages have no cgo
// dependency, so they need no GPU, Vulkan headers or display.
func (Test) Selection() error {
	_, err := executeCmd("go", withArgs("test",
		"./engine/renderer",
		"./engine/renderer/selection",
		"./engine/renderer/metadata",
		"./engine/core",
		"./engine/math",
	), withStream())
	return err
}
