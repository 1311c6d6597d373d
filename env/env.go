package env

import (
	"fmt"
	"os"
	"reflect"
	"strconv"
	"strings"

	"github.com/spf13/viper"

	"github.com/iterum-provenance/dbt-runner/logging"
	"github.com/iterum-provenance/dbt-runner/util"
)

// Config holds the resolved value of every recognized environment variable.
// An empty string means the variable was not set and had no default.
// The set of fields is fixed, later steps only overwrite values.
type Config struct {
	PackageURL           string `mapstructure:"dbt_package_url"`
	PackageType          string `mapstructure:"dbt_package_type"`
	Command              string `mapstructure:"dbt_command"`
	Path                 string `mapstructure:"dbt_path"`
	PassSecretARN        string `mapstructure:"dbt_pass_secret_arn"`
	CredType             string `mapstructure:"dbt_cred_type"`
	KeyName              string `mapstructure:"dbt_key_name"`
	CustomSchemaOverride string `mapstructure:"dbt_custom_schema_override"`
	CustomProfile        string `mapstructure:"dbt_custom_profile"`
	AWSRegion            string `mapstructure:"aws_region"`
	DBName               string `mapstructure:"dbt_dbname"`
	Warehouse            string `mapstructure:"dbt_wh"`
	Schema               string `mapstructure:"dbt_schema"`
	Role                 string `mapstructure:"dbt_role"`
	User                 string `mapstructure:"dbt_user"`
	Pass                 string `mapstructure:"dbt_pass"`
	PrivateKey           string `mapstructure:"dbt_private_key"`
	Target               string `mapstructure:"dbt_target"`
	RegisterAssets       string `mapstructure:"register_assets"`
	PackageBranch        string `mapstructure:"dbt_package_branch"`
	GithubAccessToken    string `mapstructure:"github_access_token"`
	S3Endpoint           string `mapstructure:"dbt_s3_endpoint"`
	Shell                string `mapstructure:"dbt_shell"`
	MacrosPath           string `mapstructure:"dbt_macros_path"`
	OutputLogs           string `mapstructure:"dbt_output_logs"`
	Cleanup              string `mapstructure:"dbt_cleanup"`
	EventBrokerURL       string `mapstructure:"dbt_event_broker_url"`
	EventQueue           string `mapstructure:"dbt_event_queue"`
}

// newViper binds every recognized setting to its environment variable and default
func newViper() *viper.Viper {
	v := viper.New()
	v.AllowEmptyEnv(false)
	for _, setting := range Settings {
		_ = v.BindEnv(setting.Name)
		if setting.Default != "" {
			v.SetDefault(setting.Name, setting.Default)
		}
	}
	return v
}

// Resolve reads the recognized settings from the process environment, falling back
// to the built-in defaults, and logs every non-secret setting that ended up with a value
func Resolve(logger logging.Logger) *Config {
	logger.Infoln("Reading environment variables...")
	v := newViper()

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		// Every field is a plain string, decoding cannot fail on env input
		logger.Errorf("Could not decode environment variables: %v", err)
	}
	for _, setting := range Settings {
		if setting.Secret {
			continue
		}
		if value := v.GetString(setting.Name); value != "" {
			logger.Infof("%v set to: %v", setting.Name, value)
		}
	}
	return cfg
}

// Validate checks the enumerated settings of conf
func (conf Config) Validate() error {
	var errPackage, errCred error
	switch conf.PackageType {
	case "", PackageArtifactory, PackageS3, PackageGithub:
	default:
		errPackage = ErrEnvironment(PackageType, conf.PackageType)
	}
	switch conf.CredType {
	case "", CredPassword, CredKey:
	default:
		errCred = ErrEnvironment(CredType, conf.CredType)
	}
	return util.ReturnFirstErr(errPackage, errCred)
}

// Credential returns the credential type, defaulting to password
func (conf Config) Credential() string {
	if conf.CredType == "" {
		return CredPassword
	}
	return conf.CredType
}

// Values returns the resolved settings by environment variable name, with secrets redacted
func (conf Config) Values() map[string]string {
	secret := map[string]bool{}
	for _, setting := range Settings {
		secret[setting.Name] = setting.Secret
	}

	values := make(map[string]string, len(Settings))
	rv := reflect.ValueOf(conf)
	rt := rv.Type()
	for i := 0; i < rt.NumField(); i++ {
		name := strings.ToUpper(rt.Field(i).Tag.Get("mapstructure"))
		value := rv.Field(i).String()
		if secret[name] && value != "" {
			value = "****"
		}
		values[name] = value
	}
	return values
}

// Enabled interprets a flag-like setting: booleans are parsed,
// any other non-empty value counts as enabled
func Enabled(value string) bool {
	if b, err := strconv.ParseBool(strings.TrimSpace(value)); err == nil {
		return b
	}
	return value != ""
}

// Set writes value into the process environment so child processes inherit it
func Set(name, value string) error {
	if err := os.Setenv(name, value); err != nil {
		return fmt.Errorf("could not set environment variable %v: %w", name, err)
	}
	return nil
}
