package env

// Names of the environment variables recognized by the runner
const (
	PackageURL           = "DBT_PACKAGE_URL"
	PackageType          = "DBT_PACKAGE_TYPE"
	Command              = "DBT_COMMAND"
	Path                 = "DBT_PATH"
	PassSecretARN        = "DBT_PASS_SECRET_ARN"
	CredType             = "DBT_CRED_TYPE"
	KeyName              = "DBT_KEY_NAME"
	CustomSchemaOverride = "DBT_CUSTOM_SCHEMA_OVERRIDE"
	CustomProfile        = "DBT_CUSTOM_PROFILE"
	AWSRegion            = "AWS_REGION"
	DBName               = "DBT_DBNAME"
	Warehouse            = "DBT_WH"
	Schema               = "DBT_SCHEMA"
	Role                 = "DBT_ROLE"
	User                 = "DBT_USER"
	Pass                 = "DBT_PASS"
	PrivateKey           = "DBT_PRIVATE_KEY"
	Target               = "DBT_TARGET"
	RegisterAssets       = "REGISTER_ASSETS"
	PackageBranch        = "DBT_PACKAGE_BRANCH"
	GithubAccessToken    = "GITHUB_ACCESS_TOKEN"
	S3Endpoint           = "DBT_S3_ENDPOINT"
	Shell                = "DBT_SHELL"
	MacrosPath           = "DBT_MACROS_PATH"
	OutputLogs           = "DBT_OUTPUT_LOGS"
	Cleanup              = "DBT_CLEANUP"
	EventBrokerURL       = "DBT_EVENT_BROKER_URL"
	EventQueue           = "DBT_EVENT_QUEUE"
)

// Package types
const (
	PackageArtifactory = "artifactory"
	PackageS3          = "s3"
	PackageGithub      = "github"
)

// Credential types
const (
	CredPassword = "password"
	CredKey      = "key"
)

// Shell kinds, any other value of DBT_SHELL is taken as the path of a host shell
const (
	ShellNative  = "native"
	ShellVirtual = "virtual"
)

// Setting describes a single recognized environment variable
type Setting struct {
	Name    string
	Default string // "" means no default
	Secret  bool   // secret values are never logged
}

// Settings is the fixed, ordered set of environment variables the runner reads
var Settings = []Setting{
	{Name: PackageURL},
	{Name: PackageType},
	{Name: Command, Default: "dbt run"},
	{Name: Path, Default: "dbt"},
	{Name: PassSecretARN},
	{Name: CredType, Default: CredPassword},
	{Name: KeyName, Default: "private.key"},
	{Name: CustomSchemaOverride},
	{Name: CustomProfile},
	{Name: AWSRegion, Default: "us-east-1"},
	{Name: DBName},
	{Name: Warehouse},
	{Name: Schema},
	{Name: Role},
	{Name: User},
	{Name: Pass, Secret: true},
	{Name: PrivateKey, Secret: true},
	{Name: Target},
	{Name: RegisterAssets},
	{Name: PackageBranch},
	{Name: GithubAccessToken, Secret: true},
	{Name: S3Endpoint, Default: "s3.amazonaws.com"},
	{Name: Shell, Default: ShellNative},
	{Name: MacrosPath, Default: "macros"},
	{Name: OutputLogs},
	{Name: Cleanup},
	{Name: EventBrokerURL},
	{Name: EventQueue, Default: "dbt-runner-events"},
}
