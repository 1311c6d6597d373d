package data

// LocalPackageDesc is a description of a dbt project materialized somewhere on the local volume
type LocalPackageDesc struct {
	Type      string `json:"type"`             // Package type it was fetched as, "" when locally mounted
	Source    string `json:"source,omitempty"` // Where it was fetched from
	Branch    string `json:"branch,omitempty"` // Checked out branch, version-control only
	LocalPath string `json:"path"`             // Local path to the project directory
	Empty     bool   `json:"empty,omitempty"`  // The downloaded package had no content
}

// Fetched returns whether the project was retrieved from a remote source
func (lpd LocalPackageDesc) Fetched() bool {
	return lpd.Type != ""
}
