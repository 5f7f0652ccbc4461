package main

import (
	"fmt"

	"github.com/bitrise-io/steps-cordova/cordova"
)

// CheckDependencies makes sure the project-local cordova CLI can be run.
func (s CordovaStep) CheckDependencies(builder cordova.Builder) error {
	if err := builder.PrintVersion(); err != nil {
		return fmt.Errorf("cordova CLI is not available, add it to the project's devDependencies: %w", err)
	}
	return nil
}
