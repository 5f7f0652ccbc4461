package cordova

import (
	"fmt"
	"strconv"

	"github.com/kballard/go-shellquote"
)

// ArgField maps one build option to the cordova CLI flag it is passed as.
// A field has either a scalar or a list value.
type ArgField struct {
	Option string
	Flag   string
	scalar func(BuildOptions) string
	list   func(BuildOptions) []string
}

// AndroidArgFields are passed to the cordova-android build, in this order.
var AndroidArgFields = []ArgField{
	{Option: "keystore_path", Flag: "keystore", scalar: func(o BuildOptions) string { return o.KeystorePath }},
	{Option: "keystore_password", Flag: "storePassword", scalar: func(o BuildOptions) string { return o.KeystorePassword }},
	{Option: "key_password", Flag: "password", scalar: func(o BuildOptions) string { return o.KeyPassword }},
	{Option: "keystore_alias", Flag: "alias", scalar: func(o BuildOptions) string { return o.KeystoreAlias }},
	{Option: "bundle", Flag: "bundle", scalar: func(o BuildOptions) string { return strconv.FormatBool(o.Bundle) }},
	{Option: "min_sdk_version", Flag: "gradleArg=-PcdvMinSdkVersion", scalar: func(o BuildOptions) string { return o.MinSDKVersion }},
	{Option: "cordova_no_fetch", Flag: "cordovaNoFetch", scalar: func(o BuildOptions) string { return strconv.FormatBool(o.NoFetch) }},
	{Option: "verbose", Flag: "verbose", scalar: func(o BuildOptions) string { return strconv.FormatBool(o.Verbose) }},
}

// IOSArgFields are passed to the cordova-ios build, in this order.
var IOSArgFields = []ArgField{
	{Option: "type", Flag: "packageType", scalar: func(o BuildOptions) string { return o.PackageType }},
	{Option: "team_id", Flag: "developmentTeam", scalar: func(o BuildOptions) string { return o.TeamID }},
	{Option: "provisioning_profile", Flag: "provisioningProfile", scalar: func(o BuildOptions) string { return o.ProvisioningProfile }},
	{Option: "build_flag", Flag: "buildFlag", list: func(o BuildOptions) []string { return o.BuildFlags }},
}

// MapArguments returns one --<flag>=<value> token per set field, in field order.
// Scalars with an empty value are skipped, lists emit a token per item.
func MapArguments(opts BuildOptions, fields []ArgField) []string {
	var args []string
	for _, field := range fields {
		if field.list != nil {
			for _, value := range field.list(opts) {
				args = append(args, fmt.Sprintf("--%s=%s", field.Flag, value))
			}
			continue
		}

		if value := field.scalar(opts); value != "" {
			args = append(args, fmt.Sprintf("--%s=%s", field.Flag, value))
		}
	}
	return args
}

// ArgumentString joins the tokens into a single shell-escaped command line fragment.
func ArgumentString(args []string) string {
	return shellquote.Join(args...)
}
