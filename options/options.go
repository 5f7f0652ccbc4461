// Package options holds the input values shared by the step actions and their validation.
package options

import (
	"fmt"
	"strings"

	"github.com/bitrise-io/go-utils/v2/pathutil"
)

// Platform ...
type Platform string

const (
	// None builds nothing platform specific.
	None Platform = ""
	// Android ...
	Android Platform = "android"
	// IOS ...
	IOS Platform = "ios"
)

// PackageTypes are the accepted ios package types, including the aliases.
var PackageTypes = []string{"development", "enterprise", "adhoc", "appstore", "ad-hoc", "app-store"}

// ValidationError is returned for an input that can not be used, before any command runs.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid input %s: %s", e.Field, e.Reason)
}

// ParsePlatform ...
func ParsePlatform(value string) (Platform, error) {
	switch p := Platform(value); p {
	case None, Android, IOS:
		return p, nil
	default:
		return None, &ValidationError{Field: "platform", Reason: fmt.Sprintf("should be either android or ios, got: %s", value)}
	}
}

// ValidatePackageType ...
func ValidatePackageType(value string) error {
	for _, t := range PackageTypes {
		if t == value {
			return nil
		}
	}
	return &ValidationError{
		Field:  "type",
		Reason: fmt.Sprintf("valid options are development, enterprise, adhoc, and appstore, got: %s", value),
	}
}

// ValidateConfigXMLPath checks that the manifest path is set and points to an existing file.
func ValidateConfigXMLPath(pathChecker pathutil.PathChecker, pth string) error {
	if strings.TrimSpace(pth) == "" {
		return &ValidationError{Field: "pathToConfigXML", Reason: "required variable is not present"}
	}
	exists, err := pathChecker.IsPathExists(pth)
	if err != nil {
		return &ValidationError{Field: "pathToConfigXML", Reason: err.Error()}
	}
	if !exists {
		return &ValidationError{Field: "pathToConfigXML", Reason: fmt.Sprintf("couldn't find config.xml at %s, please change your path", pth)}
	}
	return nil
}
