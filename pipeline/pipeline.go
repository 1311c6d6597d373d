// Package pipeline sequences a single dbt run: fetch the project, prepare it,
// resolve credentials and execute the configured command
package pipeline

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/iterum-provenance/dbt-runner/command"
	"github.com/iterum-provenance/dbt-runner/credentials"
	"github.com/iterum-provenance/dbt-runner/env"
	"github.com/iterum-provenance/dbt-runner/env/config"
	"github.com/iterum-provenance/dbt-runner/garbage"
	"github.com/iterum-provenance/dbt-runner/lineage"
	"github.com/iterum-provenance/dbt-runner/logging"
	"github.com/iterum-provenance/dbt-runner/messageq"
	"github.com/iterum-provenance/dbt-runner/store"
	"github.com/iterum-provenance/dbt-runner/transmit"
)

// Publisher delivers run events
type Publisher interface {
	Publish(msg transmit.Serializable) error
}

// Pipeline holds every component of a run. Only one Pipeline may run per process
// since the command executes with a process wide working directory change.
type Pipeline struct {
	RunID       string
	Config      *env.Config
	Fetcher     *store.Fetcher
	Credentials *credentials.Resolver
	Executor    *command.Executor
	Macros      lineage.Installer
	Garbage     garbage.Collector
	Events      Publisher // nil disables run events
	log         logging.Logger
}

// New wires up a Pipeline for conf with the default components
func New(conf *env.Config, logger logging.Logger) *Pipeline {
	runID := uuid.New().String()
	logger = logger.With("run", runID)
	fetcher := store.NewFetcher(logger)

	p := &Pipeline{
		RunID:       runID,
		Config:      conf,
		Fetcher:     fetcher,
		Credentials: credentials.NewResolver(logger),
		Executor:    command.NewExecutor(logger),
		Macros:      lineage.NewInstaller(conf.MacrosPath, logger),
		Garbage:     garbage.NewCollector(fetcher.DownloadDir, logger),
		log:         logger,
	}
	if conf.EventBrokerURL != "" {
		p.Events = messageq.NewSender(conf.EventBrokerURL, conf.EventQueue, logger)
	}
	return p
}

// Run executes the whole sequence and returns the exit code the process should end
// with. A non-nil error means the run stopped before or while launching the command.
func (p *Pipeline) Run(ctx context.Context) (exitCode int, err error) {
	event := &messageq.RunEvent{
		RunID:   p.RunID,
		Command: p.Config.Command,
		Started: time.Now(),
	}

	exitCode, err = p.run(ctx, event)
	if err != nil {
		p.log.Errorf("DBT run failed: %v", err)
		event.Error = err.Error()
	}
	event.ExitCode = exitCode
	event.Finished = time.Now()
	p.publish(event)

	if env.Enabled(p.Config.Cleanup) {
		if errClean := p.Garbage.Collect(); errClean != nil && err == nil {
			return 1, errClean
		}
	}
	return exitCode, err
}

func (p *Pipeline) run(ctx context.Context, event *messageq.RunEvent) (int, error) {
	conf := p.Config
	if err := conf.Validate(); err != nil {
		return 1, err
	}

	pkg, err := p.Fetcher.Fetch(ctx, conf)
	if err != nil {
		return 1, err
	}
	event.Package = pkg
	if pkg.Fetched() {
		p.log.Infof("DBT project from %v ready at %v", pkg.Source, pkg.LocalPath)
	}
	if pkg.Empty {
		p.log.Warnf("Fetched package is empty, running against %v anyway", conf.Path)
	}

	if err = p.writeProfile(conf); err != nil {
		return 1, err
	}
	if _, err = p.Macros.Install(conf); err != nil {
		return 1, err
	}
	if err = p.Credentials.Resolve(ctx, conf); err != nil {
		return 1, err
	}

	result, err := p.Executor.Run(ctx, conf)
	if err != nil {
		return result.ExitCode, err
	}
	if env.Enabled(conf.OutputLogs) {
		p.Executor.OutputLogs(conf.Path)
	}
	return result.ExitCode, nil
}

func (p *Pipeline) writeProfile(conf *env.Config) error {
	writer, err := config.NewWriter(conf.CustomProfile, p.log)
	if err != nil {
		return err
	}
	return writer.Write(conf.Path)
}

// publish sends the run event when events are enabled, failures are only logged
func (p *Pipeline) publish(event *messageq.RunEvent) {
	if p.Events == nil {
		return
	}
	if err := p.Events.Publish(event); err != nil {
		p.log.Warnf("Could not publish run event: %v", err)
	}
}
