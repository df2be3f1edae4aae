package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/famvault/famvault/config"
	"github.com/famvault/famvault/internal/windmill"
)

func main() {
	root := &cobra.Command{
		Use:   "famvault",
		Short: "Family document vault gateway and admin tooling",
	}
	root.PersistentFlags().StringP("config", "c", "", "config file (default searches ./config, .)")

	root.AddCommand(serveCMD(), healthCMD(), jobsCMD(), loginCMD(), searchCMD(), tenantsCMD())
	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	path, _ := cmd.Flags().GetString("config")
	if path == "" {
		path, _ = cmd.InheritedFlags().GetString("config")
	}
	return config.LoadConfig(path)
}

func newClient(cmd *cobra.Command) (*windmill.Client, *config.Config, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, nil, err
	}
	return windmill.New(cfg.Backend), cfg, nil
}

func printJSON(v any) {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return
	}
	fmt.Println(string(b))
}
