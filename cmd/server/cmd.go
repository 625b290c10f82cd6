package server

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
	"github.com/vpadm/outlinectl/client"
	"github.com/vpadm/outlinectl/cmd/options"
)

var (
	Cmd *cobra.Command
	cli *client.Client
)

func init() {
	Cmd = &cobra.Command{
		Use:               "server",
		Short:             "Manage server settings",
		Args:              cobra.NoArgs,
		PersistentPreRunE: initAction,
	}

	cmdInfo := &cobra.Command{
		Use:   "info",
		Short: "show server configuration",
		Args:  cobra.NoArgs,
		RunE:  serverInfo,
	}

	cmdRename := &cobra.Command{
		Use:   "rename <name>",
		Short: "rename the server",
		Args:  cobra.ExactArgs(1),
		RunE:  serverRename,
	}

	cmdHostname := &cobra.Command{
		Use:   "hostname <host>",
		Short: "set the hostname for new access keys",
		Args:  cobra.ExactArgs(1),
		RunE:  serverHostname,
	}

	cmdPort := &cobra.Command{
		Use:   "port <port>",
		Short: "set the port for new access keys",
		Args:  cobra.ExactArgs(1),
		RunE:  serverPort,
	}

	cmdLimit := &cobra.Command{
		Use:   "limit",
		Short: "cap or uncap transfer for all keys",
		Args:  cobra.NoArgs,
		RunE:  serverLimit,
	}
	cmdLimit.Flags().String("bytes", "", "the shared transfer cap, i.e. 50GB")
	cmdLimit.Flags().Bool("reset", false, "remove the shared transfer cap")

	cmdMetrics := &cobra.Command{
		Use:   "metrics [on|off]",
		Short: "show or toggle anonymous metrics sharing",
		Args:  cobra.MaximumNArgs(1),
		RunE:  serverMetrics,
	}

	Cmd.AddCommand(cmdInfo)
	Cmd.AddCommand(cmdRename)
	Cmd.AddCommand(cmdHostname)
	Cmd.AddCommand(cmdPort)
	Cmd.AddCommand(cmdLimit)
	Cmd.AddCommand(cmdMetrics)
}

func initAction(cmd *cobra.Command, args []string) (err error) {
	cli, err = options.NewClient(cmd)
	return
}

func serverInfo(cmd *cobra.Command, args []string) error {
	info, err := cli.GetServerInformation(cmd.Context())
	if err != nil {
		return err
	}
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "    ")
	return enc.Encode(info)
}

func serverRename(cmd *cobra.Command, args []string) error {
	err := cli.SetServerName(cmd.Context(), args[0])
	if err != nil {
		return err
	}
	fmt.Println("ok")
	return nil
}

func serverHostname(cmd *cobra.Command, args []string) error {
	err := cli.SetHostname(cmd.Context(), args[0])
	if err != nil {
		return err
	}
	fmt.Println("ok")
	return nil
}

func serverPort(cmd *cobra.Command, args []string) error {
	port, err := strconv.Atoi(args[0])
	if err != nil {
		return fmt.Errorf("invalid port %q: %w", args[0], err)
	}
	err = cli.SetPortForNewAccessKeys(cmd.Context(), port)
	if err != nil {
		return err
	}
	fmt.Println("ok")
	return nil
}

func serverLimit(cmd *cobra.Command, args []string) error {
	reset, err := cmd.Flags().GetBool("reset")
	if err != nil {
		return err
	}
	if reset {
		err = cli.DeleteDataLimitForAllKeys(cmd.Context())
		if err != nil {
			return err
		}
		fmt.Println("ok")
		return nil
	}
	rawBytes, err := cmd.Flags().GetString("bytes")
	if err != nil {
		return err
	}
	if len(rawBytes) == 0 {
		return cmd.Help()
	}
	limit, err := humanize.ParseBytes(rawBytes)
	if err != nil {
		return err
	}
	err = cli.SetDataLimitForAllKeys(cmd.Context(), limit)
	if err != nil {
		return err
	}
	fmt.Println("ok")
	return nil
}

func serverMetrics(cmd *cobra.Command, args []string) error {
	if len(args) == 0 {
		enabled, err := cli.GetMetricsStatus(cmd.Context())
		if err != nil {
			return err
		}
		if enabled {
			fmt.Println("on")
		} else {
			fmt.Println("off")
		}
		return nil
	}
	var enabled bool
	switch args[0] {
	case "on":
		enabled = true
	case "off":
	default:
		return fmt.Errorf("invalid metrics status %q, expected on or off", args[0])
	}
	err := cli.SetMetricsStatus(cmd.Context(), enabled)
	if err != nil {
		return err
	}
	fmt.Println("ok")
	return nil
}
