//go:build mage

package main

import (
	"github.com/magefile/mage/mg"
)

const binary = "bin/deferred"

type Build mg.Namespace

// Builds the demo binary into bin/.
func (Build) Demo() error {
	_, err := executeCmd("go", withArgs("build", "-o", binary, "./cmd/demo"), withEnv("CGO_ENABLED", "1"), withStream())
	return err
}

// Runs go vet over every package.
func (Build) Vet() error {
	_, err := executeCmd("go", withArgs("vet", "./..."), withStream())
	return err
}

// Runs the test suite.
func Test() error {
	_, err := executeCmd("go", withArgs("test", "./..."), withStream())
	return err
}
