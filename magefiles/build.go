//go:build mage

package main

import (
	"github.com/magefile/mage/mg"
)

type Build mg.Namespace

// Builds the viewer binary into bin/.
func (Build) Viewer() error {
	mg.Deps(Vet)
	if _, err := executeCmd("go", withArgs("build", "-o", "bin/patchview", "."), withStream()); err != nil {
		return err
	}
	return nil
}

// Runs go vet over every package.
func Vet() error {
	_, err := executeCmd("go", withArgs("vet", "./..."), withStream())
	return err
}

// Runs the test suite.
func Test() error {
	_, err := executeCmd("go", withArgs("test", "./..."), withStream())
	return err
}
