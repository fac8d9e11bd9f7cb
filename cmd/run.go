package cmd

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/abhisek/multiplier/internal/app"
	"github.com/abhisek/multiplier/internal/config"
	"github.com/abhisek/multiplier/internal/logging"
	"github.com/abhisek/multiplier/internal/session"
	"github.com/abhisek/multiplier/internal/store"
)

// legacyConfigName is read from the working directory when no config is
// given and the default TOML config does not exist.
const legacyConfigName = "multiplier.cfg"

// runDrill loads the config, opens the history store, and runs one session.
func runDrill(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	f, path, err := loadConfig(cmd, args)
	if err != nil {
		return err
	}
	applyDrillFlags(cmd, f)
	if err := config.Validate(f, path); err != nil {
		return err
	}
	cfg, err := f.Session()
	if err != nil {
		return err
	}

	log, err := logging.New(f.Log.Level, f.Log.Format, os.Stderr)
	if err != nil {
		return err
	}

	opts := app.Options{
		Session:     cfg,
		AnswersFile: f.Log.AnswersFile,
		Logger:      log,
		In:          os.Stdin,
		Out:         os.Stdout,
	}

	noHistory, _ := cmd.Flags().GetBool("no-history")
	if f.History.Enabled && !noHistory {
		// History is optional; the drill runs without it.
		dbPath, err := resolveDBPath(cmd, f.History.DB)
		if err != nil {
			log.WithError(err).Warn("history unavailable")
		} else if st, err := store.Open(dbPath); err != nil {
			log.WithError(err).WithField("db", dbPath).Warn("history unavailable")
		} else {
			defer st.Close()
			opts.History = st.SessionRepo()
		}
	}

	_, err = app.Run(ctx, opts)
	if errors.Is(err, session.ErrInputClosed) {
		log.Info("input closed before the drill was completed")
		return nil
	}
	return err
}

// loadConfig resolves the config path (argument, --config, default TOML,
// then ./multiplier.cfg) and loads it without validation. An explicitly
// named file must exist.
func loadConfig(cmd *cobra.Command, args []string) (*config.File, string, error) {
	path, _ := cmd.Flags().GetString("config")
	if len(args) == 1 {
		path = args[0]
	}
	explicit := path != ""
	if !explicit {
		path = config.DefaultConfigPath()
		if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
			if _, err := os.Stat(legacyConfigName); err == nil {
				path, explicit = legacyConfigName, true
			}
		}
	}

	f, err := config.Load(path, explicit)
	if err != nil {
		return nil, "", fmt.Errorf("load config: %w", err)
	}
	if level, _ := cmd.Flags().GetString("log-level"); level != "" {
		f.Log.Level = level
	}
	return f, filepath.Clean(path), nil
}

// applyDrillFlags overrides config values with explicitly set flags.
func applyDrillFlags(cmd *cobra.Command, f *config.File) {
	d := &f.Drill
	applyIntPtrFlag(cmd, "digits1", &d.DigitsOperand1)
	applyIntPtrFlag(cmd, "digits2", &d.DigitsOperand2)
	applyIntPtrFlag(cmd, "streak", &d.ConsecutiveSuccesses)
	if cmd.Flags().Changed("apm") {
		v, _ := cmd.Flags().GetFloat64("apm")
		d.AnswersPerMinute = &v
	}
	if cmd.Flags().Changed("seed") {
		d.Seed, _ = cmd.Flags().GetInt64("seed")
	}
	applyStringFlag(cmd, "timing", &d.TimingPolicy)
	applyStringFlag(cmd, "termination", &d.TerminationPolicy)
	applyStringFlag(cmd, "answers-file", &f.Log.AnswersFile)
}

func applyIntPtrFlag(cmd *cobra.Command, name string, target **int) {
	if !cmd.Flags().Changed(name) {
		return
	}
	v, _ := cmd.Flags().GetInt(name)
	*target = &v
}

func applyStringFlag(cmd *cobra.Command, name string, target *string) {
	if !cmd.Flags().Changed(name) {
		return
	}
	*target, _ = cmd.Flags().GetString(name)
}
