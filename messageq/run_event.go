package messageq

import (
	"encoding/json"
	"time"

	"github.com/iterum-provenance/dbt-runner/data"
	"github.com/iterum-provenance/dbt-runner/transmit"
)

// RunEvent describes the outcome of a single runner invocation
type RunEvent struct {
	RunID    string                `json:"run_id"`
	Package  data.LocalPackageDesc `json:"package"`
	Command  string                `json:"command"`
	ExitCode int                   `json:"exit_code"`
	Error    string                `json:"error,omitempty"`
	Started  time.Time             `json:"started"`
	Finished time.Time             `json:"finished"`
}

// Serialize tries to transform `event` into a json encoded bytearray. Errors on failure
func (event *RunEvent) Serialize() (data []byte, err error) {
	data, err = json.Marshal(event)
	if err != nil {
		err = transmit.ErrSerialization(err)
	}
	return
}

// Deserialize tries to decode a json encoded byte array into `event`. Errors on failure
func (event *RunEvent) Deserialize(data []byte) (err error) {
	err = json.Unmarshal(data, event)
	if err != nil {
		err = transmit.ErrSerialization(err)
	}
	return
}
