package options

import (
	"context"
	"errors"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/vpadm/outlinectl/client"
	"github.com/vpadm/outlinectl/credentials"
)

// Register adds the server-selection flags shared by every subcommand.
func Register(cmd *cobra.Command) {
	cmd.PersistentFlags().StringP("api-url", "u", "", "management api url, i.e. https://1.2.3.4:40163/SecretPath")
	cmd.PersistentFlags().String("cert-sha256", "", "sha256 hex fingerprint of the server certificate")
	cmd.PersistentFlags().String("install-log", "", "outline installer log to read credentials from")
	cmd.PersistentFlags().StringP("config", "c", "", "yaml server inventory file")
	cmd.PersistentFlags().StringP("server", "s", "", "server name in the inventory file")
	cmd.PersistentFlags().Duration("timeout", time.Minute, "per-request timeout, 0 to disable")
	cmd.PersistentFlags().Bool("wait", false, "wait for the server to become reachable before running")
}

// NewClient resolves credentials (flags, then environment, then install
// log, then inventory file) and builds the pinned api client.
func NewClient(cmd *cobra.Command) (*client.Client, error) {
	if err := setupLogger(cmd); err != nil {
		return nil, err
	}
	creds, err := resolveCredentials(cmd)
	if err != nil {
		return nil, err
	}
	timeout, err := cmd.Flags().GetDuration("timeout")
	if err != nil {
		return nil, err
	}
	c, err := client.NewClient(client.Options{
		APIURL:     creds.APIURL,
		CertSHA256: creds.CertSHA256,
		Timeout:    timeout,
	})
	if err != nil {
		return nil, err
	}

	wait, err := cmd.Flags().GetBool("wait")
	if err != nil {
		return nil, err
	}
	if wait {
		if err = waitReachable(cmd.Context(), c); err != nil {
			return nil, err
		}
	}
	return c, nil
}

func setupLogger(cmd *cobra.Command) error {
	logLevel, err := cmd.Flags().GetString("log-level")
	if err != nil {
		return err
	}
	ll, err := logrus.ParseLevel(logLevel)
	if err != nil {
		return err
	}
	logrus.SetLevel(ll)
	logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true, DisableColors: true})
	return nil
}

func resolveCredentials(cmd *cobra.Command) (creds credentials.Credentials, err error) {
	creds.APIURL, err = cmd.Flags().GetString("api-url")
	if err != nil {
		return
	}
	creds.CertSHA256, err = cmd.Flags().GetString("cert-sha256")
	if err != nil {
		return
	}
	if len(creds.APIURL) != 0 && len(creds.CertSHA256) != 0 {
		return
	}

	if envCreds, ok := credentials.FromEnv(); ok {
		return envCreds, nil
	}

	installLog, err := cmd.Flags().GetString("install-log")
	if err != nil {
		return
	}
	if len(installLog) != 0 {
		return credentials.FromInstallLog(installLog)
	}

	config, err := cmd.Flags().GetString("config")
	if err != nil {
		return
	}
	if len(config) != 0 {
		var inv *credentials.Inventory
		inv, err = credentials.LoadInventory(config)
		if err != nil {
			return
		}
		name, _ := cmd.Flags().GetString("server")
		return inv.Lookup(name)
	}

	return creds, errors.New("no server credentials: set --api-url and --cert-sha256, " +
		credentials.EnvAPIURL + "/" + credentials.EnvCertSHA256 + ", --install-log or --config")
}

// waitReachable retries the healthcheck with exponential backoff. The
// api client itself never retries, retry policy lives with the caller.
func waitReachable(ctx context.Context, c *client.Client) error {
	bo := backoff.WithContext(backoff.NewExponentialBackOff(), ctx)
	return backoff.Retry(func() error {
		err := c.Healthcheck(ctx)
		if err != nil {
			logrus.Infof("server not ready yet: %s", err)
		}
		return err
	}, bo)
}
