package cordova

import (
	"fmt"
)

const (
	// AndroidBuildPathEnvKey ...
	AndroidBuildPathEnvKey = "CORDOVA_ANDROID_RELEASE_BUILD_PATH"
	// IOSBuildPathEnvKey ...
	IOSBuildPathEnvKey = "CORDOVA_IOS_RELEASE_BUILD_PATH"
)

// BuildPaths are the expected artifact locations, relative to the project root.
// They are computed, not checked on disk.
type BuildPaths struct {
	AndroidPath string
	IOSPath     string
}

// NewBuildPaths ...
func NewBuildPaths(appName string, release bool) BuildPaths {
	buildType, apkName := "debug", "app-debug"
	if release {
		buildType, apkName = "release", "app-release"
	}

	return BuildPaths{
		AndroidPath: fmt.Sprintf("./platforms/android/app/build/outputs/apk/%s/%s.apk", buildType, apkName),
		IOSPath:     fmt.Sprintf("./platforms/ios/build/device/%s.ipa", appName),
	}
}

// Outputs returns the paths keyed by their output env key.
func (p BuildPaths) Outputs() map[string]string {
	return map[string]string{
		AndroidBuildPathEnvKey: p.AndroidPath,
		IOSBuildPathEnvKey:     p.IOSPath,
	}
}
