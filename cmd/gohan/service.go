package main

import (
	"github.com/chris/gohan/internal/service"
	"github.com/spf13/cobra"
)

func newServiceCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "service",
		Short: "Manage the systemd user service",
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "install",
		Short: "Install the binary and enable the service",
		Args:  cobra.NoArgs,
		RunE:  func(*cobra.Command, []string) error { return service.Install() },
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "uninstall",
		Short: "Disable the service and remove the binary",
		Args:  cobra.NoArgs,
		RunE:  func(*cobra.Command, []string) error { return service.Uninstall() },
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "status",
		Short: "Show service status",
		Args:  cobra.NoArgs,
		RunE:  func(*cobra.Command, []string) error { return service.Status() },
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "logs",
		Short: "Follow service logs",
		Args:  cobra.NoArgs,
		RunE:  func(*cobra.Command, []string) error { return service.Logs() },
	})
	return cmd
}
