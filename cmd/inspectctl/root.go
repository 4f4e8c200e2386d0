package main

import (
	"github.com/spf13/cobra"

	"github.com/kbukum/inspectkit/logger"
)

type rootOptions struct {
	configFile string
	envFile    string
	logLevel   string

	cfg *cliConfig
	log *logger.Logger
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}
	root := &cobra.Command{
		Use:           serviceName,
		Short:         "Classify inspection API failures",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return opts.setup()
		},
	}

	root.PersistentFlags().StringVarP(&opts.configFile, "config", "c", "", "Config file (default: standard search paths)")
	root.PersistentFlags().StringVar(&opts.envFile, "env-file", "", "Env file loaded before INSPECTCTL_* variables")
	root.PersistentFlags().StringVar(&opts.logLevel, "log-level", "", "Override logging.level")

	root.AddCommand(
		newClassifyCmd(opts),
		newProbeCmd(opts),
		newCodesCmd(),
		newVersionCmd(),
	)
	return root
}

func (o *rootOptions) setup() error {
	cfg, err := loadConfig(o.configFile, o.envFile)
	if err != nil {
		return err
	}
	if o.logLevel != "" {
		cfg.Logging.Level = o.logLevel
		if err := cfg.Logging.Validate(); err != nil {
			return err
		}
	}
	logger.Init(&cfg.Logging)
	o.cfg = cfg
	o.log = logger.WithComponent("cli")
	return nil
}
