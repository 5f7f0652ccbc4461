package main

import (
	"fmt"
	"io"
	"os"

	"github.com/bitrise-io/go-steputils/v2/export"
	"github.com/bitrise-io/go-steputils/v2/stepconf"
	"github.com/bitrise-io/go-utils/v2/command"
	"github.com/bitrise-io/go-utils/v2/env"
	"github.com/bitrise-io/go-utils/v2/errorutil"
	"github.com/bitrise-io/go-utils/v2/fileutil"
	"github.com/bitrise-io/go-utils/v2/log"
	"github.com/bitrise-io/go-utils/v2/pathutil"
)

func main() {
	os.Exit(run())
}

func run() int {
	logger := log.NewLogger()
	envRepository := env.NewRepository()
	cordovaStep := createStep(logger, envRepository)

	config, err := cordovaStep.ProcessConfig()
	if err != nil {
		logger.Println()
		logger.Errorf(errorutil.FormattedError(fmt.Errorf("Failed to process Step inputs: %w", err)))
		return 1
	}

	tracker := newStepTracker(envRepository, logger)
	defer tracker.wait()

	outputs, err := cordovaStep.Run(config)
	tracker.logAction(config.Action, config.Platform, err == nil)
	if err != nil {
		logger.Println()
		logger.Errorf(errorutil.FormattedError(fmt.Errorf("Failed to execute Step main logic: %w", err)))
		return 1
	}

	if err := cordovaStep.ExportOutputs(outputs); err != nil {
		logger.Println()
		logger.Errorf(errorutil.FormattedError(fmt.Errorf("Failed to export Step outputs: %w", err)))
		return 1
	}

	return 0
}

func createStep(logger log.Logger, envRepository env.Repository) CordovaStep {
	inputParser := stepconf.NewInputParser(envRepository)
	cmdFactory := command.NewFactory(envRepository)
	exporter := export.NewExporter(cmdFactory)

	return NewCordovaStep(
		inputParser,
		logger,
		envRepository,
		cmdFactory,
		pathutil.NewPathChecker(),
		pathutil.NewPathModifier(),
		fileutil.NewFileManager(),
		&exporter,
		os.Stdin,
	)
}

// CordovaStep ...
type CordovaStep struct {
	inputParser  stepconf.InputParser
	logger       log.Logger
	envRepo      env.Repository
	cmdFactory   command.Factory
	pathChecker  pathutil.PathChecker
	pathModifier pathutil.PathModifier
	fileManager  fileutil.FileManager
	exporter     outputExporter
	stdin        io.Reader
}

// NewCordovaStep ...
func NewCordovaStep(
	inputParser stepconf.InputParser,
	logger log.Logger,
	envRepo env.Repository,
	cmdFactory command.Factory,
	pathChecker pathutil.PathChecker,
	pathModifier pathutil.PathModifier,
	fileManager fileutil.FileManager,
	exporter outputExporter,
	stdin io.Reader,
) CordovaStep {
	return CordovaStep{
		inputParser:  inputParser,
		logger:       logger,
		envRepo:      envRepo,
		cmdFactory:   cmdFactory,
		pathChecker:  pathChecker,
		pathModifier: pathModifier,
		fileManager:  fileManager,
		exporter:     exporter,
		stdin:        stdin,
	}
}
