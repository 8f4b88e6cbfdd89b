package main

import (
	"os"
	"path/filepath"

	"github.com/peterh/liner"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"bookview/internal/shell"
)

func newShellCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "shell",
		Short: "Interactive terminal browser",
		RunE: func(cmd *cobra.Command, args []string) error {
			sh, err := shell.New(cmd.Context(), a.service(), cmd.OutOrStdout())
			if err != nil {
				return err
			}

			line := liner.NewLiner()
			defer line.Close()
			line.SetCtrlCAborts(true)

			historyPath := historyFile()
			if f, err := os.Open(historyPath); err == nil {
				_, _ = line.ReadHistory(f)
				_ = f.Close()
			}
			defer func() {
				f, err := os.Create(historyPath)
				if err != nil {
					logrus.WithError(err).Debug("Could not save shell history")
					return
				}
				_, _ = line.WriteHistory(f)
				_ = f.Close()
			}()

			return sh.Run(line)
		},
	}
}

func historyFile() string {
	dir, err := os.UserCacheDir()
	if err != nil {
		dir = os.TempDir()
	}
	return filepath.Join(dir, "bookview_history")
}
