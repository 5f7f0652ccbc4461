package release

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/bitrise-io/go-utils/v2/fileutil"
	"github.com/bitrise-io/go-utils/v2/log"
	"github.com/bitrise-io/go-utils/v2/pathutil"
	"github.com/bitrise-io/steps-cordova/cmdrunner/cmdrunnertest"
	"github.com/bitrise-io/steps-cordova/options"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testConfigXML = `<?xml version='1.0' encoding='utf-8'?>
<widget id="io.bitrise.myapp" version="1.2.3" android-versionCode="41" xmlns="http://www.w3.org/ns/widgets">
    <name>MyApp</name>
</widget>
`

func writeConfigXML(t *testing.T) string {
	pth := filepath.Join(t.TempDir(), "config.xml")
	require.NoError(t, os.WriteFile(pth, []byte(testConfigXML), 0600))
	return pth
}

func readFile(t *testing.T, pth string) string {
	b, err := os.ReadFile(pth)
	require.NoError(t, err)
	return string(b)
}

func newTestReleaser(stdin string) (Releaser, *cmdrunnertest.Recorder) {
	recorder := cmdrunnertest.NewRecorder()
	releaser := NewReleaser(recorder, log.NewLogger(), pathutil.NewPathChecker(), fileutil.NewFileManager(), strings.NewReader(stdin))
	return releaser, recorder
}

func TestUpdateVersion_Prompt(t *testing.T) {
	tests := []struct {
		name  string
		stdin string
		want  string
	}{
		{name: "new version", stdin: "1.3.0\n", want: "1.3.0"},
		{name: "blank keeps current", stdin: "\n", want: "1.2.3"},
		{name: "trims input", stdin: "  2.0.0  \n", want: "2.0.0"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pth := writeConfigXML(t)
			releaser, recorder := newTestReleaser(tt.stdin)

			got, err := releaser.UpdateVersion(VersionOptions{ConfigXMLPath: pth})
			require.NoError(t, err)

			assert.Equal(t, tt.want, got)
			assert.Equal(t, strings.Replace(testConfigXML, `version="1.2.3"`, `version="`+tt.want+`"`, 1), readFile(t, pth))
			assert.Empty(t, recorder.Calls)
		})
	}
}

func TestUpdateVersion_AutoIncrement(t *testing.T) {
	pth := writeConfigXML(t)
	releaser, recorder := newTestReleaser("")
	recorder.Outputs["npx -c"] = "3.1.4"

	got, err := releaser.UpdateVersion(VersionOptions{ConfigXMLPath: pth, AutoIncrement: true})
	require.NoError(t, err)

	assert.Equal(t, "3.1.4", got)
	assert.Equal(t, []string{"npx -c echo $npm_package_version"}, recorder.Calls)
	assert.Contains(t, readFile(t, pth), `version="3.1.4"`)
}

func TestUpdateVersion_NewVersionWinsOverAutoIncrement(t *testing.T) {
	pth := writeConfigXML(t)
	releaser, recorder := newTestReleaser("")

	got, err := releaser.UpdateVersion(VersionOptions{ConfigXMLPath: pth, AutoIncrement: true, NewVersion: "1.3.0"})
	require.NoError(t, err)

	assert.Equal(t, "1.3.0", got)
	assert.Empty(t, recorder.Calls)
}

func TestUpdateVersion_EmptyPackageVersion(t *testing.T) {
	pth := writeConfigXML(t)
	releaser, recorder := newTestReleaser("")
	recorder.Outputs["npx -c"] = ""

	_, err := releaser.UpdateVersion(VersionOptions{ConfigXMLPath: pth, AutoIncrement: true})
	require.Error(t, err)
	assert.Equal(t, testConfigXML, readFile(t, pth))
}

func TestUpdateVersion_MissingConfigXML(t *testing.T) {
	releaser, recorder := newTestReleaser("")

	_, err := releaser.UpdateVersion(VersionOptions{ConfigXMLPath: filepath.Join(t.TempDir(), "config.xml"), AutoIncrement: true})

	var validationErr *options.ValidationError
	require.True(t, errors.As(err, &validationErr))
	assert.Empty(t, recorder.Calls)
}

func TestUpdateVersionAndBuildNumber(t *testing.T) {
	pth := writeConfigXML(t)
	releaser, _ := newTestReleaser("")

	result, err := releaser.UpdateVersionAndBuildNumber(VersionOptions{ConfigXMLPath: pth, Platform: options.Android, NewVersion: "1.3.0"})
	require.NoError(t, err)

	assert.Equal(t, Result{Version: "1.3.0", BuildNumber: "42"}, result)
	assert.Equal(t, map[string]string{BuildNumberEnvKey: "42", VersionEnvKey: "1.3.0"}, result.Outputs())
	assert.Contains(t, readFile(t, pth), `version="1.3.0" android-versionCode="42"`)
}

func TestUpdateVersionAndBuildNumber_SkipVersion(t *testing.T) {
	pth := writeConfigXML(t)
	releaser, recorder := newTestReleaser("9.9.9\n")

	result, err := releaser.UpdateVersionAndBuildNumber(VersionOptions{ConfigXMLPath: pth, Platform: options.IOS, SkipVersion: true, AutoIncrement: true})
	require.NoError(t, err)

	assert.Equal(t, Result{Version: "1.2.3", BuildNumber: "1"}, result)
	assert.Empty(t, recorder.Calls)
	assert.Contains(t, readFile(t, pth), `version="1.2.3" ios-CFBundleVersion="1" android-versionCode="41"`)
}

func TestRelease(t *testing.T) {
	pth := writeConfigXML(t)
	releaser, recorder := newTestReleaser("")
	recorder.Outputs["git rev-parse"] = "main"

	result, err := releaser.Release(ReleaseOptions{
		VersionOptions: VersionOptions{ConfigXMLPath: pth, Platform: options.Android, NewVersion: "2.0.0"},
		Push:           PushOptions{Remote: "origin", Tags: true},
	})
	require.NoError(t, err)

	assert.Equal(t, Result{Version: "2.0.0", BuildNumber: "42"}, result)
	assert.Equal(t, []string{
		"git add -- " + pth,
		"git commit -m fastlane(android): build 42, version: 2.0.0",
		"git tag builds/android/42",
		"git rev-parse --abbrev-ref HEAD",
		"git push origin main:main --tags",
	}, recorder.Calls)
}

func TestRelease_AbortsOnFailure(t *testing.T) {
	pth := writeConfigXML(t)
	releaser, recorder := newTestReleaser("")
	recorder.Errors["git commit"] = errors.New("exit status 1")

	_, err := releaser.Release(ReleaseOptions{
		VersionOptions: VersionOptions{ConfigXMLPath: pth, Platform: options.IOS, NewVersion: "2.0.0"},
		Push:           PushOptions{Remote: "origin"},
	})
	require.Error(t, err)

	assert.Empty(t, recorder.CallsWithPrefix("git tag"))
	assert.Empty(t, recorder.CallsWithPrefix("git push"))
}

func TestRelease_InvalidPlatform(t *testing.T) {
	pth := writeConfigXML(t)
	releaser, recorder := newTestReleaser("")

	_, err := releaser.Release(ReleaseOptions{VersionOptions: VersionOptions{ConfigXMLPath: pth, Platform: "windows"}})

	var validationErr *options.ValidationError
	require.True(t, errors.As(err, &validationErr))
	assert.Empty(t, recorder.Calls)
	assert.Equal(t, testConfigXML, readFile(t, pth))
}

type capturingLogger struct {
	log.Logger
	lines []string
}

func (l *capturingLogger) Infof(format string, v ...interface{}) {
	l.lines = append(l.lines, fmt.Sprintf(format, v...))
}

func TestRelease_DefaultRemote(t *testing.T) {
	pth := writeConfigXML(t)
	releaser, recorder := newTestReleaser("")
	logger := &capturingLogger{Logger: log.NewLogger()}
	releaser.logger = logger
	recorder.Outputs["git rev-parse"] = "main"

	_, err := releaser.Release(ReleaseOptions{
		VersionOptions: VersionOptions{ConfigXMLPath: pth, Platform: options.IOS, NewVersion: "2.0.0"},
	})
	require.NoError(t, err)

	assert.Contains(t, logger.lines, "Push to origin")
	assert.Equal(t, []string{"git push origin main:main"}, recorder.CallsWithPrefix("git push"))
}
