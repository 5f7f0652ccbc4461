package release

import (
	"fmt"
	"strconv"

	"github.com/bitrise-io/go-utils/v2/fileutil"
	"github.com/bitrise-io/go-utils/v2/log"
	"github.com/bitrise-io/steps-cordova/configxml"
	"github.com/bitrise-io/steps-cordova/options"
)

// BuildNumberAttr returns the widget attribute holding the platform's build number.
// Android is the default when no platform is selected.
func BuildNumberAttr(platform options.Platform) string {
	if platform == options.IOS {
		return configxml.IOSBundleVersionAttr
	}
	return configxml.AndroidVersionCodeAttr
}

// BuildNumberIncrementer bumps the platform build number of a config.xml.
type BuildNumberIncrementer struct {
	fileManager fileutil.FileManager
	logger      log.Logger
}

// NewBuildNumberIncrementer ...
func NewBuildNumberIncrementer(fileManager fileutil.FileManager, logger log.Logger) BuildNumberIncrementer {
	return BuildNumberIncrementer{fileManager: fileManager, logger: logger}
}

// Increment adds one to the build number and returns the new value. A missing build number starts from 0.
func (i BuildNumberIncrementer) Increment(configXMLPath string, platform options.Platform) (string, error) {
	manifest, err := configxml.Read(i.fileManager, configXMLPath)
	if err != nil {
		return "", err
	}

	attr := BuildNumberAttr(platform)
	current := 0
	if value, ok := manifest.Attr(attr); ok && value != "" {
		current, err = strconv.Atoi(value)
		if err != nil {
			return "", fmt.Errorf("%s (%s) is not a number: %w", attr, value, err)
		}
	}

	next := strconv.Itoa(current + 1)
	if err := manifest.SetAttr(attr, next); err != nil {
		return "", err
	}
	if err := manifest.Save(i.fileManager); err != nil {
		return "", err
	}

	i.logger.Donef("%s: %d -> %s", attr, current, next)
	return next, nil
}
