package main

import (
	"github.com/spf13/cobra"
	"github.com/vpadm/outlinectl/cmd/key"
	"github.com/vpadm/outlinectl/cmd/options"
	"github.com/vpadm/outlinectl/cmd/server"
	"github.com/vpadm/outlinectl/cmd/usage"
)

func main() {
	cmd := &cobra.Command{
		Use:   "outlinectl",
		Short: "An Outline VPN server management tool",
	}

	cmd.AddCommand(key.Cmd)
	cmd.AddCommand(server.Cmd)
	cmd.AddCommand(usage.Cmd)

	cmd.PersistentFlags().String("log-level", "info", "logrus logger level")
	options.Register(cmd)

	cmd.Execute()
}
