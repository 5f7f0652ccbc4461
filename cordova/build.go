package cordova

import (
	"fmt"
	"path/filepath"

	"github.com/bitrise-io/go-utils/v2/fileutil"
	"github.com/bitrise-io/go-utils/v2/log"
	"github.com/bitrise-io/go-utils/v2/pathutil"
	"github.com/bitrise-io/steps-cordova/cmdrunner"
	"github.com/bitrise-io/steps-cordova/configxml"
	"github.com/bitrise-io/steps-cordova/options"
)

const npx = "npx"

// Builder runs the cordova CLI for a project.
type Builder struct {
	runner      cmdrunner.Runner
	logger      log.Logger
	envs        EnvGetter
	pathChecker pathutil.PathChecker
	fileManager fileutil.FileManager
	workDir     string
	configXML   string
}

// NewBuilder ...
func NewBuilder(
	runner cmdrunner.Runner,
	logger log.Logger,
	envs EnvGetter,
	pathChecker pathutil.PathChecker,
	fileManager fileutil.FileManager,
	workDir string,
	configXMLPath string,
) Builder {
	return Builder{
		runner:      runner,
		logger:      logger,
		envs:        envs,
		pathChecker: pathChecker,
		fileManager: fileManager,
		workDir:     workDir,
		configXML:   configXMLPath,
	}
}

// Build adds the platform if missing, prepares and compiles the project, and returns the artifact paths.
// Any failing command aborts the build.
func (b Builder) Build(opts BuildOptions) (BuildPaths, error) {
	if err := opts.Validate(); err != nil {
		return BuildPaths{}, err
	}

	manifest, err := configxml.Read(b.fileManager, b.configXML)
	if err != nil {
		return BuildPaths{}, err
	}
	appName, err := manifest.AppName()
	if err != nil {
		return BuildPaths{}, err
	}
	if opts.AppIdentifier == "" {
		opts.AppIdentifier = manifest.ID()
	}

	if err := b.ensurePlatform(opts); err != nil {
		return BuildPaths{}, fmt.Errorf("failed to add platform %s: %w", opts.Platform, err)
	}

	if opts.Prepare {
		b.logger.Println()
		b.logger.Infof("Prepare")
		if err := b.runner.Execute(npx, prepareArgs(opts)...); err != nil {
			return BuildPaths{}, fmt.Errorf("cordova prepare failed: %w", err)
		}
	}

	if platformArgs, ok := PlatformArgs(opts, b.envs); ok {
		b.logger.Println()
		b.logger.Infof("Compile")
		b.logger.Debugf("%s arguments: %s", opts.Platform, cmdrunner.Redact(ArgumentString(platformArgs), opts.Secrets()...))
		if err := b.runner.Execute(npx, compileArgs(opts, platformArgs)...); err != nil {
			return BuildPaths{}, fmt.Errorf("cordova compile failed: %w", err)
		}
	}

	paths := NewBuildPaths(appName, opts.Release)
	b.logger.Println()
	b.logger.Donef("Android build path: %s", paths.AndroidPath)
	b.logger.Donef("iOS build path: %s", paths.IOSPath)

	return paths, nil
}

// PrintVersion prints the version of the project-local cordova CLI.
func (b Builder) PrintVersion() error {
	b.logger.Infof("Cordova version")
	return b.runner.Execute(npx, "--no-install", "cordova", "--version")
}

func (b Builder) ensurePlatform(opts BuildOptions) error {
	if opts.Platform == options.None {
		return nil
	}

	platformDir := filepath.Join(b.workDir, "platforms", string(opts.Platform))
	exists, err := b.pathChecker.IsDirExists(platformDir)
	if err != nil {
		return err
	}
	if exists {
		b.logger.Printf("Platform %s already added", opts.Platform)
		return nil
	}

	b.logger.Println()
	b.logger.Infof("Add platform %s", opts.Platform)
	return b.runner.Execute("cordova", addPlatformArgs(opts)...)
}

func addPlatformArgs(opts BuildOptions) []string {
	args := []string{"platform", "add", string(opts.Platform), "--no-telemetry"}
	if opts.NoFetch {
		args = append(args, "--nofetch")
	}
	return args
}

func prepareArgs(opts BuildOptions) []string {
	args := []string{"--no-install", "cordova", "prepare"}
	if opts.Platform != options.None {
		args = append(args, string(opts.Platform))
	}
	args = append(args, "--no-telemetry")
	return append(args, globalArgs(opts)...)
}

// PlatformArgs resolves the platform specific defaults and maps the options to platform CLI args.
// It returns false when no platform is selected.
func PlatformArgs(opts BuildOptions, envs EnvGetter) ([]string, bool) {
	switch opts.Platform {
	case options.IOS:
		return MapArguments(ResolveIOS(opts, envs), IOSArgFields), true
	case options.Android:
		return MapArguments(ResolveAndroid(opts), AndroidArgFields), true
	default:
		return nil, false
	}
}

// cordova-ios takes the platform args after a single separator, cordova-android after a double one.
func compileArgs(opts BuildOptions, platformArgs []string) []string {
	args := []string{"--no-install", "cordova", "compile", string(opts.Platform), "--no-telemetry"}
	args = append(args, globalArgs(opts)...)

	if opts.Platform == options.Android {
		args = append(args, "--", "--")
	} else {
		args = append(args, "--")
	}
	return append(args, platformArgs...)
}
