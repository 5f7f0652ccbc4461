package cordova

import (
	"strings"
)

// SighUUIDEnvKey is exported by match / sigh with the last used provisioning profile.
const SighUUIDEnvKey = "SIGH_UUID"

var packageTypeAliases = map[string]string{
	"adhoc":    "ad-hoc",
	"appstore": "app-store",
}

// EnvGetter ...
type EnvGetter interface {
	Get(key string) string
}

// ResolveAndroid defaults the key password to the keystore password.
func ResolveAndroid(opts BuildOptions) BuildOptions {
	if opts.KeyPassword == "" {
		opts.KeyPassword = opts.KeystorePassword
	}
	return opts
}

// ResolveIOS looks up the provisioning profile when not set and normalizes the package type.
func ResolveIOS(opts BuildOptions, envs EnvGetter) BuildOptions {
	if opts.ProvisioningProfile == "" {
		opts.ProvisioningProfile = envs.Get(SighUUIDEnvKey)
	}
	if opts.ProvisioningProfile == "" {
		opts.ProvisioningProfile = envs.Get(ProfileEnvKey(opts.AppIdentifier, opts.PackageType))
	}

	opts.PackageType = NormalizePackageType(opts.PackageType)
	return opts
}

// ProfileEnvKey is the env key sigh uses for a profile: sigh_<app identifier>_<package type without dash>.
func ProfileEnvKey(appIdentifier, packageType string) string {
	return "sigh_" + appIdentifier + "_" + strings.Replace(packageType, "-", "", 1)
}

// NormalizePackageType maps the adhoc and appstore aliases to the names xcodebuild expects.
func NormalizePackageType(packageType string) string {
	if normalized, ok := packageTypeAliases[packageType]; ok {
		return normalized
	}
	return packageType
}
