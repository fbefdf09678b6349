package config

import "github.com/spf13/pflag"

type flagValues struct {
	configPath string
	host       string
	port       int
	transport  string
	stateless  bool
	logLevel   string
	logPath    string
	activityDB string
	seedDate   string
	timezone   string
}

func newFlagSet() (*pflag.FlagSet, *flagValues) {
	v := &flagValues{}
	flagSet := pflag.NewFlagSet("workbench", pflag.ContinueOnError)
	flagSet.StringVar(&v.configPath, "config", "", "path to a YAML config file")
	flagSet.StringVar(&v.host, "host", "", "HTTP listen host")
	flagSet.IntVarP(&v.port, "port", "p", 0, "HTTP listen port")
	flagSet.StringVarP(&v.transport, "transport", "t", "", "transport mode: stdio or http")
	flagSet.BoolVar(&v.stateless, "stateless", false, "serve streamable HTTP without sessions")
	flagSet.StringVar(&v.logLevel, "log-level", "", "log level: debug, info, warn, error")
	flagSet.StringVar(&v.logPath, "log-path", "", "also write logs to this file")
	flagSet.StringVar(&v.activityDB, "activity-db", "", "SQLite path for the activity log (:memory: keeps it in process)")
	flagSet.StringVar(&v.seedDate, "seed-date", "", "reference date (YYYY-MM-DD) for generated data")
	flagSet.StringVar(&v.timezone, "timezone", "", "IANA timezone calendar days are cut in")
	flagSet.BoolP("help", "h", false, "show help")
	return flagSet, v
}

// apply copies every flag the user actually set onto cfg.
func (v *flagValues) apply(flagSet *pflag.FlagSet, cfg *Config) {
	if flagSet.Changed("host") {
		cfg.Server.Host = v.host
	}
	if flagSet.Changed("port") {
		cfg.Server.Port = v.port
	}
	if flagSet.Changed("transport") {
		cfg.Transport.Mode = v.transport
	}
	if flagSet.Changed("stateless") {
		cfg.Transport.Stateless = v.stateless
	}
	if flagSet.Changed("log-level") {
		cfg.Log.Level = v.logLevel
	}
	if flagSet.Changed("log-path") {
		cfg.Log.Path = v.logPath
	}
	if flagSet.Changed("activity-db") {
		cfg.Activity.Path = v.activityDB
	}
	if flagSet.Changed("seed-date") {
		cfg.Seed.ReferenceDate = v.seedDate
	}
	if flagSet.Changed("timezone") {
		cfg.Seed.Timezone = v.timezone
	}
}
