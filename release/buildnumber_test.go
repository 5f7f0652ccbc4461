package release

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/bitrise-io/go-utils/v2/fileutil"
	"github.com/bitrise-io/go-utils/v2/log"
	"github.com/bitrise-io/steps-cordova/options"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIncrement(t *testing.T) {
	tests := []struct {
		name     string
		content  string
		platform options.Platform
		want     string
		wantXML  string
	}{
		{
			name:     "android",
			content:  `<widget version="1.0.0" android-versionCode="9"><name>A</name></widget>`,
			platform: options.Android,
			want:     "10",
			wantXML:  `<widget version="1.0.0" android-versionCode="10"><name>A</name></widget>`,
		},
		{
			name:     "ios",
			content:  `<widget version="1.0.0" ios-CFBundleVersion="99"><name>A</name></widget>`,
			platform: options.IOS,
			want:     "100",
			wantXML:  `<widget version="1.0.0" ios-CFBundleVersion="100"><name>A</name></widget>`,
		},
		{
			name:     "missing starts from zero",
			content:  `<widget version="1.0.0"><name>A</name></widget>`,
			platform: options.None,
			want:     "1",
			wantXML:  `<widget version="1.0.0" android-versionCode="1"><name>A</name></widget>`,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pth := filepath.Join(t.TempDir(), "config.xml")
			require.NoError(t, os.WriteFile(pth, []byte(tt.content), 0600))

			got, err := NewBuildNumberIncrementer(fileutil.NewFileManager(), log.NewLogger()).Increment(pth, tt.platform)
			require.NoError(t, err)

			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.wantXML, readFile(t, pth))
		})
	}
}

func TestIncrement_NotANumber(t *testing.T) {
	pth := filepath.Join(t.TempDir(), "config.xml")
	content := `<widget version="1.0.0" android-versionCode="abc"><name>A</name></widget>`
	require.NoError(t, os.WriteFile(pth, []byte(content), 0600))

	_, err := NewBuildNumberIncrementer(fileutil.NewFileManager(), log.NewLogger()).Increment(pth, options.Android)

	require.Error(t, err)
	assert.Equal(t, content, readFile(t, pth))
}
