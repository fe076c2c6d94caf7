package cmd

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/godbus/dbus/v5"
	"github.com/hoppxi/wigo-calc/internal/clip"
	"github.com/hoppxi/wigo-calc/internal/manager"
	"github.com/hoppxi/wigo-calc/internal/shell"
	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the GNOME Shell search provider on the session bus",
	RunE: func(cmd *cobra.Command, args []string) error {
		if conn, err := manager.Manage.ConnectIPC(); err == nil {
			conn.Close()
			fmt.Println("Daemon already running.")
			return nil
		}

		c, err := newCalculator()
		if err != nil {
			return err
		}

		copier := clip.New(settings.Clipboard.Notify)
		provider := shell.NewProvider(c, copier, settings.Provider.Icon, logger)

		path := dbus.ObjectPath(settings.Provider.ObjectPath)
		if !path.IsValid() {
			return fmt.Errorf("invalid provider.object_path %q", settings.Provider.ObjectPath)
		}
		// The first claim runs here so a taken bus name fails the command.
		svc, err := shell.Serve(provider, settings.Provider.BusName, path)
		if err != nil {
			return err
		}
		defer manager.Manage.StopAll()

		manager.Manage.Logger = logger
		manager.Manage.StartWatcher("dbus", func(stop <-chan struct{}) {
			if svc == nil {
				var err error
				if svc, err = shell.Serve(provider, settings.Provider.BusName, path); err != nil {
					logger.Warn("search provider restart failed", "err", err)
					return
				}
			}
			defer func() {
				svc.Close()
				svc = nil
			}()

			select {
			case <-stop:
			case <-svc.Done():
				logger.Warn("session bus connection lost")
			}
		})

		apply := func(s *manager.Settings) error {
			eval, err := s.NewEvaluator()
			if err != nil {
				return err
			}
			c.SetEvaluator(eval)
			logger.Info("config reloaded", "engine", s.Evaluator.Engine)
			return nil
		}

		reload := func() string {
			s, err := manager.Config.Reload()
			if err == nil {
				err = apply(s)
			}
			if err != nil {
				logger.Warn("config reload failed", "err", err)
				return "ERR: " + err.Error()
			}
			return "OK: reloaded"
		}

		quit := make(chan struct{}, 1)
		manager.Manage.Handle("RELOAD", reload)
		manager.Manage.Handle("STOP", func() string {
			select {
			case quit <- struct{}{}:
			default:
			}
			return "OK: Shutting down."
		})
		if err := manager.Manage.StartIPCServer(); err != nil {
			return fmt.Errorf("start IPC server: %w", err)
		}
		defer manager.Manage.StopIPCServer()

		type change struct {
			s   *manager.Settings
			err error
		}
		changes := make(chan change, 1)
		manager.Config.Watch(func(s *manager.Settings, err error) {
			select {
			case changes <- change{s, err}:
			default:
			}
		})
		manager.Manage.StartWatcher("config", func(stop <-chan struct{}) {
			for {
				select {
				case <-stop:
					return
				case ch := <-changes:
					err := ch.err
					if err == nil {
						err = apply(ch.s)
					}
					if err != nil {
						logger.Warn("config reload failed", "err", err)
					}
				}
			}
		})

		fmt.Println("Search provider running. Press Ctrl+C to stop.")

		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
		select {
		case <-sigChan:
		case <-quit:
		}

		logger.Info("shutting down")
		return nil
	},
}
