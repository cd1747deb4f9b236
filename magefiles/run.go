//go:build mage

package main

import (
	"fmt"

	"github.com/magefile/mage/mg"
)

type Run mg.Namespace

// Runs the headless demo with the deferred frame graph.
func (Run) Demo() error {
	fmt.Println("Run demo...")
	if _, err := executeCmd("go", withArgs("run", "main.go"), withStream()); err != nil {
		return err
	}
	return nil
}

// Runs the headless demo with immediate per-pass execution.
func (Run) Immediate() error {
	fmt.Println("Run demo (immediate mode)...")
	if _, err := executeCmd("go", withArgs("run", "main.go"), withStream(), withEnv("NAIAD_WATER_MODE=immediate")); err != nil {
		return err
	}
	return nil
}
