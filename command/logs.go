package command

import (
	"bufio"
	"os"
	"path/filepath"
)

// LogFile is where dbt writes its detailed log, relative to the project directory
var LogFile = filepath.Join("logs", "dbt.log")

// OutputLogs re-emits every line of the project's dbt log through the logger.
// A missing log file is reported as a warning only.
func (e *Executor) OutputLogs(project string) {
	logfile := filepath.Join(project, LogFile)
	e.log.Infoln("Outputting DBT Logs")
	f, err := os.Open(logfile)
	if err != nil {
		e.log.Warnf("Could not read DBT logs from '%v': %v", logfile, err)
		return
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 64*1024), 1024*1024)
	for scanner.Scan() {
		e.log.Infoln(scanner.Text())
	}
	if err = scanner.Err(); err != nil {
		e.log.Warnf("Stopped reading DBT logs early: %v", err)
	}
}
