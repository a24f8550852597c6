package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/spf13/cobra"
)

var (
	baseURL   string
	timeout   time.Duration
	actorID   string
	actorRole string
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "fincore-cli",
		Short: "Fincore CLI tool",
		Long:  `A command line interface for the Fincore reconciliation API.`,
	}

	rootCmd.PersistentFlags().StringVar(&baseURL, "url", "http://localhost:8080", "Base URL of the Fincore API")
	rootCmd.PersistentFlags().DurationVar(&timeout, "timeout", 10*time.Second, "Request timeout")
	rootCmd.PersistentFlags().StringVar(&actorID, "actor", "cli", "Acting user ID")
	rootCmd.PersistentFlags().StringVar(&actorRole, "role", "operator", "Acting role")

	rootCmd.AddCommand(drawerCmd(), creditsCmd(), vouchersCmd(), statsCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func drawerCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "drawer",
		Short: "Cash drawer operations",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "status",
		Short: "Show the current session and running balance",
		RunE: func(cmd *cobra.Command, args []string) error {
			return request(http.MethodGet, "/api/v1/cash-sessions/current", nil)
		},
	})

	var amount, notes string
	closeCmd := &cobra.Command{
		Use:   "close",
		Short: "Reconcile and close the open session",
		RunE: func(cmd *cobra.Command, args []string) error {
			return request(http.MethodPost, "/api/v1/cash-sessions/close", map[string]any{
				"actual_amount": amount,
				"notes":         notes,
			})
		},
	}
	closeCmd.Flags().StringVar(&amount, "amount", "", "Counted cash amount")
	closeCmd.Flags().StringVar(&notes, "notes", "", "Closing notes")
	_ = closeCmd.MarkFlagRequired("amount")
	cmd.AddCommand(closeCmd)

	return cmd
}

func creditsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "credits",
		Short: "Credit account operations",
	}

	var asOf string
	overdueCmd := &cobra.Command{
		Use:   "overdue",
		Short: "List pending accounts past their due date",
		RunE: func(cmd *cobra.Command, args []string) error {
			path := "/api/v1/credits/overdue"
			if asOf != "" {
				path += "?as_of=" + asOf
			}
			return request(http.MethodGet, path, nil)
		},
	}
	overdueCmd.Flags().StringVar(&asOf, "as-of", "", "Reference time (RFC 3339, defaults to now)")
	cmd.AddCommand(overdueCmd)

	return cmd
}

func vouchersCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "vouchers",
		Short: "Voucher operations",
	}

	var method, reference string
	payAllCmd := &cobra.Command{
		Use:   "pay-all <client-id>",
		Short: "Settle every pending voucher of a client",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return request(http.MethodPost, "/api/v1/clients/"+args[0]+"/vouchers/pay-all", map[string]any{
				"payment_method":    method,
				"payment_reference": reference,
			})
		},
	}
	payAllCmd.Flags().StringVar(&method, "method", "cash", "Payment method")
	payAllCmd.Flags().StringVar(&reference, "reference", "", "Payment reference")
	cmd.AddCommand(payAllCmd)

	return cmd
}

func statsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Reconciliation reports",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "pending",
		Short: "Show pending vouchers grouped by client, worst first",
		RunE: func(cmd *cobra.Command, args []string) error {
			return request(http.MethodGet, "/api/v1/stats/pending-by-client", nil)
		},
	})

	return cmd
}

func request(method, path string, payload map[string]any) error {
	var body io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return err
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequest(method, baseURL+path, body)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Actor-ID", actorID)
	req.Header.Set("X-Actor-Role", actorRole)

	client := &http.Client{Timeout: timeout}
	resp, err := client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}

	if resp.StatusCode >= http.StatusBadRequest {
		return fmt.Errorf("request failed (status %d): %s", resp.StatusCode, string(data))
	}

	var decoded any
	if err := json.Unmarshal(data, &decoded); err != nil {
		fmt.Println(string(data))
		return nil
	}

	printJSON(decoded)
	return nil
}

func printJSON(v any) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		fmt.Printf("failed to render response: %v\n", err)
		return
	}
	fmt.Println(string(data))
}
