package main

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/bitrise-io/go-steputils/v2/stepconf"
	"github.com/bitrise-io/steps-cordova/cordova"
	"github.com/bitrise-io/steps-cordova/options"
	"github.com/bitrise-io/steps-cordova/release"
)

const (
	actionBuild                       = "build"
	actionUpdateVersion               = "update_version"
	actionUpdateVersionAndBuildNumber = "update_version_and_build_number"
	actionRelease                     = "release"
)

// Config contains inputs parsed from environment variables
type Config struct {
	Action        string `env:"action,opt[build,update_version,update_version_and_build_number,release]"`
	WorkDir       string `env:"work_dir,dir"`
	ConfigXMLPath string `env:"pathToConfigXML"`
	Platform      string `env:"platform"`

	// build
	Release         bool     `env:"release,opt[true,false]"`
	Device          bool     `env:"device,opt[true,false]"`
	Prod            bool     `env:"prod,opt[true,false]"`
	Browserify      bool     `env:"browserify,opt[true,false]"`
	CordovaPrepare  bool     `env:"cordova_prepare,opt[true,false]"`
	CordovaNoFetch  bool     `env:"cordova_no_fetch,opt[true,false]"`
	BuildConfigFile string   `env:"cordova_build_config_file"`
	Verbose         bool     `env:"verbose,opt[true,false]"`
	BuildFlags      []string `env:"build_flag"`

	// android signing
	Bundle           bool            `env:"bundle,opt[true,false]"`
	KeystorePath     string          `env:"keystore_path"`
	KeystorePassword stepconf.Secret `env:"keystore_password"`
	KeyPassword      stepconf.Secret `env:"key_password"`
	KeystoreAlias    string          `env:"keystore_alias"`
	MinSDKVersion    string          `env:"min_sdk_version"`

	// ios signing
	PackageType         string `env:"type"`
	TeamID              string `env:"team_id"`
	ProvisioningProfile string `env:"provisioning_profile"`
	AppIdentifier       string `env:"app_identifier"`

	// version
	AutoIncrement bool   `env:"auto_increment,opt[true,false]"`
	SkipVersion   bool   `env:"skip_version,opt[true,false]"`
	NewVersion    string `env:"new_version"`

	// git push
	Remote       string `env:"remote"`
	LocalBranch  string `env:"local_branch"`
	RemoteBranch string `env:"remote_branch"`
	Force        bool   `env:"force,opt[true,false]"`
	Tags         bool   `env:"tags,opt[true,false]"`

	VerboseLog bool `env:"verbose_log,opt[yes,no]"`
}

// inputValidator checks one input after parsing. Validators run in order, the first failure stops processing.
type inputValidator struct {
	name  string
	check func(s CordovaStep, config Config) error
}

var inputValidators = []inputValidator{
	{
		name: "platform",
		check: func(_ CordovaStep, config Config) error {
			_, err := options.ParsePlatform(config.Platform)
			return err
		},
	},
	{
		name: "type",
		check: func(_ CordovaStep, config Config) error {
			return options.ValidatePackageType(config.PackageType)
		},
	},
	{
		name: "pathToConfigXML",
		check: func(s CordovaStep, config Config) error {
			return options.ValidateConfigXMLPath(s.pathChecker, config.ConfigXMLPath)
		},
	},
}

// ProcessConfig ...
func (s CordovaStep) ProcessConfig() (Config, error) {
	var config Config
	if err := s.inputParser.Parse(&config); err != nil {
		return config, &options.ValidationError{Field: "inputs", Reason: err.Error()}
	}

	stepconf.Print(config)
	s.logger.EnableDebugLog(config.VerboseLog)
	s.logger.Println()

	workDir, err := s.getWorkdir(config)
	if err != nil {
		return Config{}, err
	}
	config.WorkDir = workDir

	if config.ConfigXMLPath != "" && !filepath.IsAbs(config.ConfigXMLPath) {
		config.ConfigXMLPath = filepath.Join(workDir, config.ConfigXMLPath)
	}
	config.BuildFlags = nonEmpty(config.BuildFlags)

	for _, v := range inputValidators {
		s.logger.Debugf("Validating %s", v.name)
		if err := v.check(s, config); err != nil {
			return Config{}, err
		}
	}

	return config, nil
}

func (s CordovaStep) getWorkdir(config Config) (string, error) {
	workDir := config.WorkDir
	if workDir == "" {
		s.logger.Printf("WorkDir not set, using CurrentWorkingDirectory...")
		workDir = "."
	}

	absWorkDir, err := s.pathModifier.AbsPath(workDir)
	if err != nil {
		return "", fmt.Errorf("failed to expand path (%s): %w", workDir, err)
	}

	s.logger.Debugf("Expanded WorkDir: %s", absWorkDir)
	return absWorkDir, nil
}

func (config Config) buildOptions() cordova.BuildOptions {
	return cordova.BuildOptions{
		Platform:            options.Platform(config.Platform),
		Release:             config.Release,
		Device:              config.Device,
		Prod:                config.Prod,
		Verbose:             config.Verbose,
		Prepare:             config.CordovaPrepare,
		NoFetch:             config.CordovaNoFetch,
		Browserify:          config.Browserify,
		BuildConfigFile:     config.BuildConfigFile,
		Bundle:              config.Bundle,
		KeystorePath:        config.KeystorePath,
		KeystorePassword:    string(config.KeystorePassword),
		KeyPassword:         string(config.KeyPassword),
		KeystoreAlias:       config.KeystoreAlias,
		MinSDKVersion:       config.MinSDKVersion,
		PackageType:         config.PackageType,
		TeamID:              config.TeamID,
		ProvisioningProfile: config.ProvisioningProfile,
		BuildFlags:          config.BuildFlags,
		AppIdentifier:       config.AppIdentifier,
	}
}

func (config Config) versionOptions() release.VersionOptions {
	return release.VersionOptions{
		ConfigXMLPath: config.ConfigXMLPath,
		Platform:      options.Platform(config.Platform),
		AutoIncrement: config.AutoIncrement,
		SkipVersion:   config.SkipVersion,
		NewVersion:    config.NewVersion,
	}
}

func (config Config) releaseOptions() release.ReleaseOptions {
	return release.ReleaseOptions{
		VersionOptions: config.versionOptions(),
		Push: release.PushOptions{
			Remote:       config.Remote,
			LocalBranch:  config.LocalBranch,
			RemoteBranch: config.RemoteBranch,
			Force:        config.Force,
			Tags:         config.Tags,
		},
	}
}

func nonEmpty(items []string) []string {
	var filtered []string
	for _, item := range items {
		if strings.TrimSpace(item) != "" {
			filtered = append(filtered, item)
		}
	}
	return filtered
}
