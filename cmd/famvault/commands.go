package main

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/famvault/famvault/internal/session"
	"github.com/famvault/famvault/internal/windmill"
)

func jobFilterFromFlags(cmd *cobra.Command) (windmill.JobFilter, error) {
	running, _ := cmd.Flags().GetBool("running")
	script, _ := cmd.Flags().GetString("script")
	limit, _ := cmd.Flags().GetInt("limit")
	filter := windmill.JobFilter{Running: running, Script: script, Limit: limit}
	if s, _ := cmd.Flags().GetString("success"); s != "" {
		ok, err := strconv.ParseBool(s)
		if err != nil {
			return filter, fmt.Errorf("--success must be true or false")
		}
		filter.Success = &ok
	}
	return filter, nil
}

func loginCMD() *cobra.Command {
	var email string
	cmd := &cobra.Command{
		Use:   "login",
		Short: "Authenticate and print a token pair",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, _, err := newClient(cmd)
			if err != nil {
				return err
			}
			if email == "" {
				return fmt.Errorf("--email is required")
			}
			password := os.Getenv("FAMVAULT_PASSWORD")
			if password == "" {
				fmt.Fprint(os.Stderr, "Password: ")
				line, err := bufio.NewReader(os.Stdin).ReadString('\n')
				if err != nil {
					return err
				}
				password = strings.TrimRight(line, "\r\n")
			}

			res, err := client.Login(cmd.Context(), email, password, &windmill.DeviceInfo{Platform: "cli"})
			if err != nil {
				return err
			}
			if !res.Success {
				if res.Error != "" {
					return fmt.Errorf("login failed: %s", res.Error)
				}
				return fmt.Errorf("login failed")
			}

			sess := session.FromLogin(res)
			if sess.ExpiresWithin(5 * time.Minute) {
				// Unusual but possible with a short-lived backend policy.
				fmt.Fprintln(os.Stderr, "warning: access token expires within 5 minutes")
			}
			printJSON(res)
			fmt.Fprintln(os.Stderr, "export FAMVAULT_BACKEND_TOKEN="+res.AccessToken)
			return nil
		},
	}
	cmd.Flags().StringVar(&email, "email", "", "account email")
	return cmd
}

func searchCMD() *cobra.Command {
	var limit int
	cmd := &cobra.Command{
		Use:   "search <query>",
		Short: "Semantic document search",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, _, err := newClient(cmd)
			if err != nil {
				return err
			}
			res, err := client.SearchDocuments(cmd.Context(), args[0], limit)
			if err != nil {
				return err
			}
			if !res.Success && res.Error != "" {
				return fmt.Errorf("search failed: %s", res.Error)
			}
			printJSON(res.Results)
			return nil
		},
	}
	cmd.Flags().IntVar(&limit, "limit", 10, "maximum results")
	return cmd
}

func tenantsCMD() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tenants",
		Short: "Tenant administration",
	}
	cmd.AddCommand(
		&cobra.Command{
			Use:   "list",
			Short: "List tenants",
			RunE: func(cmd *cobra.Command, args []string) error {
				client, _, err := newClient(cmd)
				if err != nil {
					return err
				}
				tenants, err := client.ListTenants(cmd.Context())
				if err != nil {
					return err
				}
				printJSON(tenants)
				return nil
			},
		},
		&cobra.Command{
			Use:   "show <tenant-id>",
			Short: "Show tenant details",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				client, _, err := newClient(cmd)
				if err != nil {
					return err
				}
				details, err := client.GetTenantDetails(cmd.Context(), args[0])
				if err != nil {
					return err
				}
				printJSON(details)
				return nil
			},
		},
	)
	return cmd
}
