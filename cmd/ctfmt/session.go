package main

import (
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

// session holds what every command needs after the persistent flags and
// the config file are resolved.
type session struct {
	cfg     config
	log     *logrus.Logger
	color   bool
	quiet   bool
	timings bool
	maxDiag int
	cleanup func(failed bool)
}

var sess session

func setupSession(cmd *cobra.Command, args []string) error {
	flags := cmd.Root().PersistentFlags()

	configPath, err := flags.GetString("config")
	if err != nil {
		return fmt.Errorf("failed to get config flag: %w", err)
	}
	explicit := configPath != ""
	if !explicit {
		configPath = defaultConfigPath
	}
	cfg, err := loadConfig(configPath, explicit)
	if err != nil {
		return err
	}

	quiet, err := flags.GetBool("quiet")
	if err != nil {
		return fmt.Errorf("failed to get quiet flag: %w", err)
	}
	verbose, err := flags.GetBool("verbose")
	if err != nil {
		return fmt.Errorf("failed to get verbose flag: %w", err)
	}
	timings, err := flags.GetBool("timings")
	if err != nil {
		return fmt.Errorf("failed to get timings flag: %w", err)
	}
	maxDiag, err := flags.GetInt("max-diagnostics")
	if err != nil {
		return fmt.Errorf("failed to get max-diagnostics flag: %w", err)
	}
	colorFlag, err := flags.GetString("color")
	if err != nil {
		return fmt.Errorf("failed to get color flag: %w", err)
	}
	if colorFlag == "" {
		colorFlag = cfg.Color
	}
	useColor, err := resolveColor(colorFlag, os.Stdout)
	if err != nil {
		return err
	}
	// fatih/color смотрит на этот флаг во всех пакетах
	color.NoColor = !useColor

	sess = session{
		cfg:     cfg,
		log:     newLogger(cmd.ErrOrStderr(), verbose, quiet),
		color:   useColor,
		quiet:   quiet,
		timings: timings,
		maxDiag: maxDiag,
		cleanup: func(bool) {},
	}
	if explicit {
		sess.log.WithField("path", configPath).Debug("config loaded")
	}

	stopProfiles, err := setupProfiling(cmd, sess.log)
	if err != nil {
		return err
	}
	stopTracing, err := setupTracing(cmd, sess.log)
	if err != nil {
		stopProfiles()
		return err
	}
	sess.cleanup = func(failed bool) {
		stopTracing(failed)
		stopProfiles()
	}
	return nil
}

// close runs once, from PersistentPostRun or from main after a failed command.
func (s *session) close(failed bool) {
	if s.cleanup != nil {
		s.cleanup(failed)
		s.cleanup = nil
	}
}

func resolveColor(value string, out *os.File) (bool, error) {
	v, err := parseSwitch("color", value)
	if err != nil {
		return false, err
	}
	return v.enabled(func() bool { return isTerminal(out) }), nil
}

func newLogger(out io.Writer, verbose, quiet bool) *logrus.Logger {
	log := logrus.New()
	log.SetOutput(out)
	log.SetFormatter(&logrus.TextFormatter{
		DisableTimestamp: true,
		DisableQuote:     true,
	})
	switch {
	case quiet:
		log.SetLevel(logrus.ErrorLevel)
	case verbose:
		log.SetLevel(logrus.DebugLevel)
	default:
		log.SetLevel(logrus.InfoLevel)
	}
	return log
}
