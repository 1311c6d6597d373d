// Package config contains extra custom/optional configuration for the runner.
// A complete dbt profiles document can be passed as a single YAML string in the
// DBT_CUSTOM_PROFILE environment variable. This package deals with parsing and
// validating it and writing it into the project as profiles.yml, where dbt
// picks it up when the command is run with `--profiles-dir .`.
package config
