package usage

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"

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
		Use:               "usage",
		Short:             "Show transferred bytes per access key",
		Args:              cobra.NoArgs,
		PersistentPreRunE: initAction,
		RunE:              usageAction,
	}
	Cmd.Flags().String("key", "", "only this access key")
	Cmd.Flags().Bool("json", false, "raw json report instead of a table")
}

func initAction(cmd *cobra.Command, args []string) (err error) {
	cli, err = options.NewClient(cmd)
	return
}

func usageAction(cmd *cobra.Command, args []string) error {
	report, err := cli.GetTransferredData(cmd.Context())
	if err != nil {
		return err
	}

	key, err := cmd.Flags().GetString("key")
	if err != nil {
		return err
	}
	if len(key) != 0 {
		bytes, ok := report.BytesTransferredByUserId[key]
		if !ok {
			bytes = 0
		}
		report = &client.TransferReport{
			BytesTransferredByUserId: map[string]uint64{key: bytes},
		}
	}

	rawJSON, err := cmd.Flags().GetBool("json")
	if err != nil {
		return err
	}
	if rawJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "    ")
		return enc.Encode(report)
	}

	ids := make([]string, 0, len(report.BytesTransferredByUserId))
	for id := range report.BytesTransferredByUserId {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	for _, id := range ids {
		fmt.Printf("%s\t%s\n", id, humanize.IBytes(report.BytesTransferredByUserId[id]))
	}
	return nil
}
