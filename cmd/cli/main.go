package main

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"time"

	"github.com/spf13/cobra"
)

var (
	baseURL string
	timeout time.Duration
	asOf    string
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "shopledger-cli",
		Short: "ShopLedger CLI tool",
		Long:  `A command line interface for interacting with the ShopLedger API.`,
	}

	rootCmd.PersistentFlags().StringVar(&baseURL, "url", "http://localhost:8080", "Base URL of the ShopLedger API")
	rootCmd.PersistentFlags().DurationVar(&timeout, "timeout", 30*time.Second, "Request timeout")
	rootCmd.PersistentFlags().StringVar(&asOf, "as-of", "", "Read from the snapshot of this date (YYYY-MM-DD)")

	// Shop commands
	shopsCmd := &cobra.Command{
		Use:   "shops",
		Short: "Shop overview operations",
	}

	var teamLeader, group, search string
	var page, pageSize int

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List the shop overview",
		Run: func(cmd *cobra.Command, args []string) {
			q := url.Values{}
			setIf(q, "team_leader", teamLeader)
			setIf(q, "group", group)
			setIf(q, "search", search)
			if page > 0 {
				q.Set("page", fmt.Sprint(page))
			}
			if pageSize > 0 {
				q.Set("page_size", fmt.Sprint(pageSize))
			}
			getJSON("/api/v1/shops", q)
		},
	}
	listCmd.Flags().StringVar(&teamLeader, "team-leader", "", "Filter by team leader")
	listCmd.Flags().StringVar(&group, "group", "", "Filter by group")
	listCmd.Flags().StringVar(&search, "search", "", "Filter by shop name substring")
	listCmd.Flags().IntVar(&page, "page", 0, "Page number")
	listCmd.Flags().IntVar(&pageSize, "page-size", 0, "Page size")

	filtersCmd := &cobra.Command{
		Use:   "filters",
		Short: "List distinct team leaders and groups",
		Run: func(cmd *cobra.Command, args []string) {
			getJSON("/api/v1/shops/filters", url.Values{})
		},
	}

	shopsCmd.AddCommand(listCmd)
	shopsCmd.AddCommand(filtersCmd)
	rootCmd.AddCommand(shopsCmd)

	// Ledger commands
	ledgerCmd := &cobra.Command{
		Use:   "ledger <shop-name>",
		Short: "Show one shop's reconciled daily ledger",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			getJSON("/api/v1/shops/"+url.PathEscape(args[0])+"/ledger", url.Values{})
		},
	}
	rootCmd.AddCommand(ledgerCmd)

	// Export commands
	exportCmd := &cobra.Command{
		Use:   "export",
		Short: "Export operations",
	}

	var out, format, exportLeader string

	summaryCmd := &cobra.Command{
		Use:   "summary",
		Short: "Export the shop overview",
		Run: func(cmd *cobra.Command, args []string) {
			q := url.Values{}
			setIf(q, "format", format)
			setIf(q, "team_leader", exportLeader)
			download("/api/v1/shops/export", q, out)
		},
	}
	summaryCmd.Flags().StringVar(&out, "out", "summary.csv", "Output file")
	summaryCmd.Flags().StringVar(&format, "format", "", "Export format (csv or xlsx)")
	summaryCmd.Flags().StringVar(&exportLeader, "team-leader", "", "Filter by team leader")

	var bulkOut, bulkLeader string

	bulkCmd := &cobra.Command{
		Use:   "bulk",
		Short: "Export every shop's ledger as a ZIP archive",
		Run: func(cmd *cobra.Command, args []string) {
			q := url.Values{}
			setIf(q, "team_leader", bulkLeader)
			download("/api/v1/shops/export/bulk", q, bulkOut)
		},
	}
	bulkCmd.Flags().StringVar(&bulkOut, "out", "ledgers.zip", "Output file")
	bulkCmd.Flags().StringVar(&bulkLeader, "team-leader", "", "Filter by team leader")

	var ledgerOut string

	shopExportCmd := &cobra.Command{
		Use:   "ledger <shop-name>",
		Short: "Export one shop's ledger as CSV",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			download("/api/v1/shops/"+url.PathEscape(args[0])+"/ledger/export", url.Values{}, ledgerOut)
		},
	}
	shopExportCmd.Flags().StringVar(&ledgerOut, "out", "ledger.csv", "Output file")

	exportCmd.AddCommand(summaryCmd)
	exportCmd.AddCommand(bulkCmd)
	exportCmd.AddCommand(shopExportCmd)
	rootCmd.AddCommand(exportCmd)

	// Snapshot commands
	snapshotCmd := &cobra.Command{
		Use:   "snapshot",
		Short: "Snapshot operations",
	}

	captureCmd := &cobra.Command{
		Use:   "capture",
		Short: "Capture the current source tables as a dated snapshot",
		Run: func(cmd *cobra.Command, args []string) {
			postJSON("/api/v1/snapshots")
		},
	}

	snapshotListCmd := &cobra.Command{
		Use:   "list",
		Short: "List stored snapshots",
		Run: func(cmd *cobra.Command, args []string) {
			getJSON("/api/v1/snapshots", url.Values{})
		},
	}

	snapshotCmd.AddCommand(captureCmd)
	snapshotCmd.AddCommand(snapshotListCmd)
	rootCmd.AddCommand(snapshotCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func setIf(q url.Values, key, value string) {
	if value != "" {
		q.Set(key, value)
	}
}

func requestURL(path string, q url.Values) string {
	if asOf != "" {
		q.Set("as_of", asOf)
	}
	if len(q) == 0 {
		return baseURL + path
	}
	return baseURL + path + "?" + q.Encode()
}

func getJSON(path string, q url.Values) {
	client := &http.Client{Timeout: timeout}
	resp, err := client.Get(requestURL(path, q))
	if err != nil {
		fmt.Printf("Error making request: %v\n", err)
		os.Exit(1)
	}
	defer resp.Body.Close()

	printJSON(resp)
}

func postJSON(path string) {
	client := &http.Client{Timeout: timeout}
	resp, err := client.Post(requestURL(path, url.Values{}), "application/json", nil)
	if err != nil {
		fmt.Printf("Error making request: %v\n", err)
		os.Exit(1)
	}
	defer resp.Body.Close()

	printJSON(resp)
}

func printJSON(resp *http.Response) {
	body, _ := io.ReadAll(resp.Body)

	if resp.StatusCode >= http.StatusBadRequest {
		fmt.Printf("Request failed (Status: %d)\nResponse: %s\n", resp.StatusCode, string(body))
		os.Exit(1)
	}

	var pretty any
	if err := json.Unmarshal(body, &pretty); err != nil {
		fmt.Println(string(body))
		return
	}

	formatted, _ := json.MarshalIndent(pretty, "", "  ")
	fmt.Println(string(formatted))
}

func download(path string, q url.Values, out string) {
	client := &http.Client{Timeout: timeout}
	resp, err := client.Get(requestURL(path, q))
	if err != nil {
		fmt.Printf("Error making request: %v\n", err)
		os.Exit(1)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		fmt.Printf("Request failed (Status: %d)\nResponse: %s\n", resp.StatusCode, string(body))
		os.Exit(1)
	}

	f, err := os.Create(out)
	if err != nil {
		fmt.Printf("Error creating file: %v\n", err)
		os.Exit(1)
	}
	defer f.Close()

	n, err := io.Copy(f, resp.Body)
	if err != nil {
		fmt.Printf("Error writing file: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Wrote %d bytes to %s\n", n, out)
}
