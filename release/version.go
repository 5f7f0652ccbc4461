package release

import (
	"fmt"
	"io"
	"strings"

	"github.com/bitrise-io/go-utils/v2/fileutil"
	"github.com/bitrise-io/go-utils/v2/log"
	"github.com/bitrise-io/goinp/goinp"
	"github.com/bitrise-io/steps-cordova/cmdrunner"
	"github.com/bitrise-io/steps-cordova/configxml"
)

// VersionResolver decides the new version given the current one.
// An empty result keeps the current version.
type VersionResolver interface {
	ResolveVersion(current string) (string, error)
}

// FixedVersion resolves to itself.
type FixedVersion string

// ResolveVersion ...
func (v FixedVersion) ResolveVersion(string) (string, error) {
	return string(v), nil
}

// PackageVersion takes the version from the project's package.json through npm.
type PackageVersion struct {
	runner cmdrunner.Runner
}

// NewPackageVersion ...
func NewPackageVersion(runner cmdrunner.Runner) PackageVersion {
	return PackageVersion{runner: runner}
}

// ResolveVersion ...
func (v PackageVersion) ResolveVersion(string) (string, error) {
	out, err := v.runner.ExecuteForOutput("npx", "-c", "echo $npm_package_version")
	if err != nil {
		return "", fmt.Errorf("failed to read the package.json version: %w", err)
	}

	version := strings.TrimSpace(out)
	if version == "" {
		return "", fmt.Errorf("package.json has no version")
	}
	return version, nil
}

// Prompt asks the operator for the new version, blank input keeps the current one.
type Prompt struct {
	in io.Reader
}

// NewPrompt ...
func NewPrompt(in io.Reader) Prompt {
	return Prompt{in: in}
}

// ResolveVersion ...
func (p Prompt) ResolveVersion(current string) (string, error) {
	version, err := goinp.AskForStringFromReaderWithDefault("Insert new version number (leave empty to keep the current one)", current, p.in)
	if err != nil {
		return "", fmt.Errorf("failed to read the new version: %w", err)
	}
	return strings.TrimSpace(version), nil
}

// VersionEditor rewrites the widget version of a config.xml.
type VersionEditor struct {
	fileManager fileutil.FileManager
	logger      log.Logger
}

// NewVersionEditor ...
func NewVersionEditor(fileManager fileutil.FileManager, logger log.Logger) VersionEditor {
	return VersionEditor{fileManager: fileManager, logger: logger}
}

// CurrentVersion ...
func (e VersionEditor) CurrentVersion(configXMLPath string) (string, error) {
	manifest, err := configxml.Read(e.fileManager, configXMLPath)
	if err != nil {
		return "", err
	}
	return manifest.Version(), nil
}

// Update writes the resolved version into the manifest and returns it.
func (e VersionEditor) Update(configXMLPath string, resolver VersionResolver) (string, error) {
	manifest, err := configxml.Read(e.fileManager, configXMLPath)
	if err != nil {
		return "", err
	}

	current := manifest.Version()
	e.logger.Printf("Current version: %s", current)

	version, err := resolver.ResolveVersion(current)
	if err != nil {
		return "", err
	}
	if version == "" {
		e.logger.Printf("Keeping the current version")
		version = current
	}

	if err := manifest.SetVersion(version); err != nil {
		return "", err
	}
	if err := manifest.Save(e.fileManager); err != nil {
		return "", err
	}

	e.logger.Donef("New version: %s", version)
	return version, nil
}
