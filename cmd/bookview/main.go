package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"bookview/internal/book"
	"bookview/internal/config"
	"bookview/internal/logger"
	"bookview/internal/platform/openlibrary"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

type app struct {
	v          *viper.Viper
	configFile string
	cfg        config.Config
}

func newRootCmd() *cobra.Command {
	a := &app{v: config.New()}

	root := &cobra.Command{
		Use:           "bookview",
		Short:         "Browse and search Open Library book metadata",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.init(cmd)
		},
	}

	flags := root.PersistentFlags()
	flags.StringVar(&a.configFile, "config", "", "optional YAML config file")
	flags.String("openlibrary-base-url", "", "Open Library API base URL")
	flags.String("cover-base-url", "", "cover image base URL")
	flags.Duration("http-timeout", 0, "upstream HTTP timeout")
	flags.String("log-level", "", "log level (debug, info, warn, error)")
	flags.String("log-format", "", "log format (text, json)")
	_ = a.v.BindPFlag(config.KeyOpenLibraryBaseURL, flags.Lookup("openlibrary-base-url"))
	_ = a.v.BindPFlag(config.KeyCoverBaseURL, flags.Lookup("cover-base-url"))
	_ = a.v.BindPFlag(config.KeyHTTPTimeout, flags.Lookup("http-timeout"))
	_ = a.v.BindPFlag(config.KeyLogLevel, flags.Lookup("log-level"))
	_ = a.v.BindPFlag(config.KeyLogFormat, flags.Lookup("log-format"))

	root.AddCommand(newServeCmd(a), newShellCmd(a))
	return root
}

func (a *app) init(cmd *cobra.Command) error {
	config.LoadEnvFiles()

	cfg, err := config.Load(a.v, a.configFile)
	if err != nil {
		return err
	}
	if err := logger.Setup(cfg.LogLevel, cfg.LogFormat, cmd.ErrOrStderr()); err != nil {
		return err
	}
	a.cfg = cfg

	logrus.WithFields(logrus.Fields{
		"openlibrary": cfg.OpenLibraryBaseURL,
		"covers":      cfg.CoverBaseURL,
		"timeout":     cfg.HTTPTimeout.String(),
	}).Debug("Configuration loaded")
	return nil
}

func (a *app) service() *book.Service {
	client := openlibrary.NewClient(openlibrary.Options{
		BaseURL:      a.cfg.OpenLibraryBaseURL,
		CoverBaseURL: a.cfg.CoverBaseURL,
		UserAgent:    a.cfg.UserAgent,
		Timeout:      a.cfg.HTTPTimeout,
	})
	return book.NewService(client)
}
