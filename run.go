package main

import (
	"fmt"

	"github.com/bitrise-io/steps-cordova/cmdrunner"
	"github.com/bitrise-io/steps-cordova/cordova"
	"github.com/bitrise-io/steps-cordova/release"
)

// Run executes the selected action and returns its outputs.
func (s CordovaStep) Run(config Config) (map[string]string, error) {
	runner := cmdrunner.NewCommandRunner(s.cmdFactory, s.logger, config.WorkDir).WithSecrets(config.buildOptions().Secrets()...)
	releaser := release.NewReleaser(runner, s.logger, s.pathChecker, s.fileManager, s.stdin)

	s.logger.Println()
	switch config.Action {
	case actionBuild:
		opts := config.buildOptions()
		if err := opts.Validate(); err != nil {
			return nil, err
		}

		builder := cordova.NewBuilder(runner, s.logger, s.envRepo, s.pathChecker, s.fileManager, config.WorkDir, config.ConfigXMLPath)
		if err := s.CheckDependencies(builder); err != nil {
			return nil, err
		}

		s.logger.Println()
		s.logger.Infof("Build Cordova app")
		paths, err := builder.Build(opts)
		if err != nil {
			return nil, err
		}
		return paths.Outputs(), nil
	case actionUpdateVersion:
		version, err := releaser.UpdateVersion(config.versionOptions())
		if err != nil {
			return nil, err
		}
		return map[string]string{release.VersionEnvKey: version}, nil
	case actionUpdateVersionAndBuildNumber:
		result, err := releaser.UpdateVersionAndBuildNumber(config.versionOptions())
		if err != nil {
			return nil, err
		}
		return result.Outputs(), nil
	case actionRelease:
		result, err := releaser.Release(config.releaseOptions())
		if err != nil {
			return nil, err
		}
		return result.Outputs(), nil
	default:
		return nil, fmt.Errorf("unknown action: %s", config.Action)
	}
}
