// Package release bumps the version and build number of a Cordova project and publishes them with git.
package release

import (
	"fmt"
	"io"

	"github.com/bitrise-io/go-utils/v2/fileutil"
	"github.com/bitrise-io/go-utils/v2/log"
	"github.com/bitrise-io/go-utils/v2/pathutil"
	"github.com/bitrise-io/steps-cordova/cmdrunner"
	"github.com/bitrise-io/steps-cordova/options"
)

const (
	// BuildNumberEnvKey ...
	BuildNumberEnvKey = "APP_BUILD_NUMBER"
	// VersionEnvKey ...
	VersionEnvKey = "APP_BUILD_VERSION"
)

// VersionOptions ...
type VersionOptions struct {
	ConfigXMLPath string
	Platform      options.Platform
	// AutoIncrement takes the version from package.json instead of asking for it.
	AutoIncrement bool
	// SkipVersion keeps the current version and only increments the build number.
	SkipVersion bool
	// NewVersion is used instead of the interactive prompt when set.
	NewVersion string
}

// Validate ...
func (o VersionOptions) Validate(pathChecker pathutil.PathChecker) error {
	if _, err := options.ParsePlatform(string(o.Platform)); err != nil {
		return err
	}
	return options.ValidateConfigXMLPath(pathChecker, o.ConfigXMLPath)
}

// ReleaseOptions ...
type ReleaseOptions struct {
	VersionOptions
	Push PushOptions
}

// Result ...
type Result struct {
	Version     string
	BuildNumber string
}

// Outputs returns the result keyed by its output env key.
func (r Result) Outputs() map[string]string {
	return map[string]string{
		BuildNumberEnvKey: r.BuildNumber,
		VersionEnvKey:     r.Version,
	}
}

// CommitMessage ...
func CommitMessage(platform options.Platform, r Result) string {
	return fmt.Sprintf("fastlane(%s): build %s, version: %s", platformLabel(platform), r.BuildNumber, r.Version)
}

// TagName ...
func TagName(platform options.Platform, r Result) string {
	return fmt.Sprintf("builds/%s/%s", platformLabel(platform), r.BuildNumber)
}

func platformLabel(platform options.Platform) string {
	if platform == options.IOS {
		return string(options.IOS)
	}
	return string(options.Android)
}

// Releaser ...
type Releaser struct {
	runner      cmdrunner.Runner
	logger      log.Logger
	pathChecker pathutil.PathChecker
	editor      VersionEditor
	incrementer BuildNumberIncrementer
	git         Git
	stdin       io.Reader
}

// NewReleaser ...
func NewReleaser(runner cmdrunner.Runner, logger log.Logger, pathChecker pathutil.PathChecker, fileManager fileutil.FileManager, stdin io.Reader) Releaser {
	return Releaser{
		runner:      runner,
		logger:      logger,
		pathChecker: pathChecker,
		editor:      NewVersionEditor(fileManager, logger),
		incrementer: NewBuildNumberIncrementer(fileManager, logger),
		git:         NewGit(runner),
		stdin:       stdin,
	}
}

// UpdateVersion sets the manifest version and returns it.
func (r Releaser) UpdateVersion(opts VersionOptions) (string, error) {
	if err := opts.Validate(r.pathChecker); err != nil {
		return "", err
	}

	r.logger.Infof("Update version")
	return r.editor.Update(opts.ConfigXMLPath, r.versionResolver(opts))
}

// UpdateVersionAndBuildNumber updates the version, unless skipped, then increments the build number.
func (r Releaser) UpdateVersionAndBuildNumber(opts VersionOptions) (Result, error) {
	if err := opts.Validate(r.pathChecker); err != nil {
		return Result{}, err
	}

	var result Result
	var err error
	if opts.SkipVersion {
		r.logger.Infof("Skipping version, just incrementing build number")
		result.Version, err = r.editor.CurrentVersion(opts.ConfigXMLPath)
	} else {
		result.Version, err = r.UpdateVersion(opts)
	}
	if err != nil {
		return Result{}, fmt.Errorf("failed to update version: %w", err)
	}

	r.logger.Println()
	r.logger.Infof("Increment build number")
	result.BuildNumber, err = r.incrementer.Increment(opts.ConfigXMLPath, opts.Platform)
	if err != nil {
		return Result{}, fmt.Errorf("failed to increment build number: %w", err)
	}

	return result, nil
}

// Release updates version and build number, commits and tags the manifest and pushes to the remote.
// A failing step aborts the rest, nothing is rolled back.
func (r Releaser) Release(opts ReleaseOptions) (Result, error) {
	if err := opts.Validate(r.pathChecker); err != nil {
		return Result{}, err
	}

	result, err := r.UpdateVersionAndBuildNumber(opts.VersionOptions)
	if err != nil {
		return Result{}, err
	}

	r.logger.Println()
	r.logger.Infof("Commit and tag")
	if err := r.git.CommitAndTag(CommitMessage(opts.Platform, result), TagName(opts.Platform, result), opts.ConfigXMLPath); err != nil {
		return result, fmt.Errorf("failed to commit version bump: %w", err)
	}

	r.logger.Println()
	r.logger.Infof("Push to %s", opts.Push.remote())
	if err := r.git.Push(opts.Push); err != nil {
		return result, fmt.Errorf("failed to push: %w", err)
	}

	return result, nil
}

func (r Releaser) versionResolver(opts VersionOptions) VersionResolver {
	switch {
	case opts.NewVersion != "":
		return FixedVersion(opts.NewVersion)
	case opts.AutoIncrement:
		r.logger.Printf("Taking the version from package.json")
		return NewPackageVersion(r.runner)
	default:
		return NewPrompt(r.stdin)
	}
}
