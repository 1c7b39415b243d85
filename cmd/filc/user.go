package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/verte-zerg/filc/internal/config"
	"github.com/verte-zerg/filc/internal/render"
	"github.com/verte-zerg/filc/internal/store"
)

var (
	userSwitch string
	userList   bool
)

func newUserCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "user",
		Short: "Show, list or switch accounts",
		Args:  cobra.NoArgs,
		RunE:  runUserCmd,
	}
	cmd.Flags().StringVar(&userSwitch, "switch", "", "make this account the default")
	cmd.Flags().BoolVarP(&userList, "list", "l", false, "list saved accounts")
	return cmd
}

func runUserCmd(cmd *cobra.Command, _ []string) error {
	s, err := loadSettings()
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()

	if userSwitch != "" {
		if _, ok := s.cfg.Users[userSwitch]; !ok {
			return fmt.Errorf("unknown user %q (known: %v)", userSwitch, s.cfg.UserIDs())
		}
		s.cfg.DefaultUser = userSwitch
		if err := config.SaveConfig(s.cfgPath, s.cfg); err != nil {
			return err
		}
		_, err := fmt.Fprintf(out, "switched to %s\n", userSwitch)
		return err
	}

	if userList {
		ids := s.cfg.UserIDs()
		if machineFlag {
			return render.JSON(out, s.cfg.Users)
		}
		rows := make([][]string, 0, len(ids))
		for _, id := range ids {
			mark := ""
			if id == s.cfg.DefaultUser {
				mark = "*"
			}
			u := s.cfg.Users[id]
			rows = append(rows, []string{mark, id, u.Name, u.School})
		}
		return render.Table(out, []string{"", "ID", "NAME", "SCHOOL"}, rows, render.Options{})
	}

	current := s.userID()
	if current == "" {
		return fmt.Errorf("no user selected: import records with `filc import <file>` or pass --user")
	}
	if machineFlag {
		return render.JSON(out, map[string]any{"id": current, "user": s.cfg.Users[current]})
	}
	_, err = fmt.Fprintln(out, current)
	return err
}

func newImportCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "import <file.json>",
		Short: "Load exported records for the selected account",
		Long: `Load exported records for the selected account, replacing the stored ones.

The file holds {"lessons": [...], "tests": [...], "evaluations": [...]}.
Without --user the records belong to the default account.`,
		Args: cobra.ExactArgs(1),
		RunE: runImportCmd,
	}
}

func runImportCmd(cmd *cobra.Command, args []string) error {
	a, err := openApp(cmd, false)
	if err != nil {
		return err
	}
	defer a.close()

	f, err := os.Open(args[0])
	if err != nil {
		return fmt.Errorf("failed to open records: %w", err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil {
			logErrf("failed to close %s: %v\n", args[0], cerr)
		}
	}()
	recs, err := store.DecodeRecords(f)
	if err != nil {
		return err
	}
	if err := a.store.Import(cmd.Context(), a.userID, recs); err != nil {
		return fmt.Errorf("failed to import records: %w", err)
	}

	if err := rememberUser(a.cfgPath, a.cfg, a.userID); err != nil {
		return err
	}
	a.log.Info("records imported", zap.String("file", args[0]))
	if machineFlag {
		return render.JSON(a.out, map[string]any{
			"user":        a.userID,
			"lessons":     len(recs.Lessons),
			"tests":       len(recs.Tests),
			"evaluations": len(recs.Evaluations),
		})
	}
	_, err = fmt.Fprintf(a.out, "imported %d lessons, %d tests and %d evaluations for %s\n",
		len(recs.Lessons), len(recs.Tests), len(recs.Evaluations), a.userID)
	return err
}

// rememberUser saves userID as a known account, and as the default when none is set.
func rememberUser(path string, cfg config.FileConfig, userID string) error {
	_, known := cfg.Users[userID]
	if known && cfg.DefaultUser != "" {
		return nil
	}
	if cfg.Users == nil {
		cfg.Users = map[string]config.User{}
	}
	if !known {
		cfg.Users[userID] = config.User{}
	}
	if cfg.DefaultUser == "" {
		cfg.DefaultUser = userID
	}
	return config.SaveConfig(path, cfg)
}
