package command

import "errors"

var (
	// ErrCredentialsMissing is returned when DBT_PASS is absent and the command is skipped
	ErrCredentialsMissing = errors.New("credentials missing (DBT_PASS) due to unsuccessful secret fetch or not directly provided")
	// ErrProjectMissing is returned when the project directory does not exist
	ErrProjectMissing = errors.New("target dbt project folder not found")
	// ErrLaunch is returned when the shell could not be started at all
	ErrLaunch = errors.New("problem attempting to execute the provided shell command")
)
