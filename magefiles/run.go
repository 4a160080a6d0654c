//go:build mage

package main

import (
	"fmt"

	"github.com/magefile/mage/mg"
)

type Run mg.Namespace

// Opens model in the viewer, using assets/viewer.toml.
func (Run) Viewer(model string) error {
	fmt.Printf("Viewing %s...\n", model)
	if _, err := executeCmd("go", withArgs("run", ".", "-config", "assets/viewer.toml", model), withStream()); err != nil {
		return err
	}
	return nil
}

// Renders model to snapshot.png without opening a window.
func (Run) Snapshot(model string) error {
	if _, err := executeCmd("go", withArgs("run", ".", "-config", "assets/viewer.toml", "-snapshot", "snapshot.png", model), withStream()); err != nil {
		return err
	}
	return nil
}
