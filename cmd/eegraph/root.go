package main

import (
	"github.com/spf13/cobra"
	"github.com/vk/eegraph/internal/app"
)

// version is set at build time via -ldflags.
var version = "dev"

// rootFlags are the persistent flags shared by every subcommand. Flags
// left unset keep the value from the config file.
type rootFlags struct {
	configPath  string
	baseURL     string
	project     string
	encoding    string
	catalogPath string
	workers     int
	logLevel    string
	logFormat   string
}

func newRootCmd() *cobra.Command {
	flags := &rootFlags{}
	root := &cobra.Command{
		Use:   "eegraph",
		Short: "Build, convert and evaluate computation graphs for a remote geospatial service",
		Long: "eegraph works with computation graphs in the legacy and cloud encodings:\n" +
			"it lists the function catalog, converts graphs between encodings and\n" +
			"sends them to the service for evaluation.",
		SilenceUsage:  true,
		SilenceErrors: true,
		Version:       version,
		CompletionOptions: cobra.CompletionOptions{
			HiddenDefaultCmd: true,
		},
	}

	f := root.PersistentFlags()
	f.StringVarP(&flags.configPath, "config", "c", "", "Path to a YAML config file")
	f.StringVar(&flags.baseURL, "base-url", "", "Service base URL")
	f.StringVar(&flags.project, "project", "", "Service project")
	f.StringVar(&flags.encoding, "encoding", "", "Wire encoding: 'cloud' or 'legacy'")
	f.StringVar(&flags.catalogPath, "catalog", "", "Path to catalog manifests (.hcl) or listings (.json)")
	f.IntVar(&flags.workers, "workers", 0, "Number of concurrent evaluations")
	f.StringVar(&flags.logLevel, "log-level", "", "Logging level: 'debug', 'info', 'warn', 'error'")
	f.StringVar(&flags.logFormat, "log-format", "", "Log output format: 'text' or 'json'")

	root.AddCommand(
		newCatalogCmd(flags),
		newMethodsCmd(flags),
		newConvertCmd(flags),
		newEvalCmd(flags),
	)
	return root
}

// config merges the config file with the flags set on cmd.
func (rf *rootFlags) config(cmd *cobra.Command) (*app.Config, error) {
	cfg, err := app.LoadConfig(rf.configPath)
	if err != nil {
		return nil, &ExitError{Code: 2, Message: err.Error()}
	}

	f := cmd.Flags()
	if f.Changed("base-url") {
		cfg.BaseURL = rf.baseURL
	}
	if f.Changed("project") {
		cfg.Project = rf.project
	}
	if f.Changed("encoding") {
		cfg.Encoding = rf.encoding
	}
	if f.Changed("catalog") {
		cfg.CatalogPath = rf.catalogPath
	}
	if f.Changed("workers") {
		cfg.Workers = rf.workers
	}
	if f.Changed("log-level") {
		cfg.LogLevel = rf.logLevel
	}
	if f.Changed("log-format") {
		cfg.LogFormat = rf.logFormat
	}

	valid, err := app.NewConfig(cfg)
	if err != nil {
		return nil, &ExitError{Code: 2, Message: err.Error()}
	}
	return valid, nil
}

// newApp builds the application for cmd. Logs go to the command's error
// stream.
func (rf *rootFlags) newApp(cmd *cobra.Command) (*app.App, error) {
	cfg, err := rf.config(cmd)
	if err != nil {
		return nil, err
	}
	return app.NewApp(cmd.Context(), cmd.ErrOrStderr(), cfg)
}
