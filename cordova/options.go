package cordova

import (
	"github.com/bitrise-io/steps-cordova/options"
)

// BuildOptions configures a cordova build.
type BuildOptions struct {
	Platform options.Platform
	Release  bool
	Device   bool
	Prod     bool
	Verbose  bool

	// Prepare runs `cordova prepare` before compiling.
	Prepare bool
	// NoFetch adds the platform with --nofetch.
	NoFetch         bool
	Browserify      bool
	BuildConfigFile string

	// android
	Bundle           bool
	KeystorePath     string
	KeystorePassword string
	KeyPassword      string
	KeystoreAlias    string
	MinSDKVersion    string

	// ios
	PackageType         string
	TeamID              string
	ProvisioningProfile string
	BuildFlags          []string
	AppIdentifier       string
}

// Validate ...
func (o BuildOptions) Validate() error {
	if _, err := options.ParsePlatform(string(o.Platform)); err != nil {
		return err
	}
	if o.Platform == options.IOS {
		return options.ValidatePackageType(o.PackageType)
	}
	return nil
}

// Secrets are the option values that must not be logged.
func (o BuildOptions) Secrets() []string {
	return []string{o.KeystorePassword, o.KeyPassword}
}

// globalArgs are shared by prepare and compile.
func globalArgs(opts BuildOptions) []string {
	args := []string{"--debug"}
	if opts.Release {
		args = []string{"--release"}
	}
	if opts.Device {
		args = append(args, "--device")
	}
	if opts.Prod {
		args = append(args, "--prod")
	}
	if opts.Bundle {
		args = append(args, "--bundle")
	}
	if opts.Browserify {
		args = append(args, "--browserify")
	}
	if opts.Verbose {
		args = append(args, "--verbose")
	}
	if opts.BuildConfigFile != "" {
		args = append(args, "--buildConfig="+opts.BuildConfigFile)
	}
	return args
}
