package key

import (
	"encoding/json"
	"fmt"
	"os"

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
		Use:               "key",
		Short:             "Manage access keys",
		Args:              cobra.NoArgs,
		PersistentPreRunE: initAction,
	}

	cmdLs := &cobra.Command{
		Use:   "ls",
		Short: "list access keys",
		Args:  cobra.NoArgs,
		RunE:  keyLs,
	}

	cmdNew := &cobra.Command{
		Use:   "new",
		Short: "create an access key",
		Args:  cobra.NoArgs,
		RunE:  keyNew,
	}
	cmdNew.Flags().String("name", "", "the access key name")

	cmdGet := &cobra.Command{
		Use:   "get <id>",
		Short: "show one access key",
		Args:  cobra.ExactArgs(1),
		RunE:  keyGet,
	}

	cmdRename := &cobra.Command{
		Use:   "rename <id> <name>",
		Short: "rename an access key",
		Args:  cobra.ExactArgs(2),
		RunE:  keyRename,
	}

	cmdDel := &cobra.Command{
		Use:   "del <id>",
		Short: "delete an access key",
		Args:  cobra.ExactArgs(1),
		RunE:  keyDel,
	}

	cmdLimit := &cobra.Command{
		Use:   "limit <id>",
		Short: "cap or uncap the key's transfer",
		Args:  cobra.ExactArgs(1),
		RunE:  keyLimit,
	}
	cmdLimit.Flags().String("bytes", "", "the transfer cap, i.e. 20MB")
	cmdLimit.Flags().Bool("reset", false, "remove the transfer cap")

	Cmd.AddCommand(cmdLs)
	Cmd.AddCommand(cmdNew)
	Cmd.AddCommand(cmdGet)
	Cmd.AddCommand(cmdRename)
	Cmd.AddCommand(cmdDel)
	Cmd.AddCommand(cmdLimit)
}

func initAction(cmd *cobra.Command, args []string) (err error) {
	cli, err = options.NewClient(cmd)
	return
}

func keyLs(cmd *cobra.Command, args []string) error {
	keys, err := cli.GetKeys(cmd.Context())
	if err != nil {
		return err
	}
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "    ")
	return enc.Encode(keys)
}

func keyNew(cmd *cobra.Command, args []string) error {
	name, err := cmd.Flags().GetString("name")
	if err != nil {
		return err
	}
	key, err := cli.CreateKey(cmd.Context(), name)
	if err != nil {
		return err
	}
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "    ")
	return enc.Encode(key)
}

func keyGet(cmd *cobra.Command, args []string) error {
	key, err := cli.GetKey(cmd.Context(), args[0])
	if err != nil {
		return err
	}
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "    ")
	return enc.Encode(key)
}

func keyRename(cmd *cobra.Command, args []string) error {
	err := cli.RenameKey(cmd.Context(), args[0], args[1])
	if err != nil {
		return err
	}
	fmt.Println("ok")
	return nil
}

func keyDel(cmd *cobra.Command, args []string) error {
	err := cli.DeleteKey(cmd.Context(), args[0])
	if err != nil {
		return err
	}
	fmt.Println("ok")
	return nil
}

func keyLimit(cmd *cobra.Command, args []string) error {
	reset, err := cmd.Flags().GetBool("reset")
	if err != nil {
		return err
	}
	if reset {
		err = cli.DeleteDataLimit(cmd.Context(), args[0])
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
	err = cli.AddDataLimit(cmd.Context(), args[0], limit)
	if err != nil {
		return err
	}
	fmt.Println("ok")
	return nil
}
