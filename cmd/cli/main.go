package main

import (
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
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "account-cli",
		Short: "Account manager CLI tool",
		Long:  `A command line interface for interacting with the account manager API.`,
	}

	rootCmd.PersistentFlags().StringVar(&baseURL, "url", "http://localhost:8080", "Base URL of the account manager API")
	rootCmd.PersistentFlags().DurationVar(&timeout, "timeout", 10*time.Second, "Request timeout")

	balanceCmd := &cobra.Command{
		Use:   "balance <accountId>",
		Short: "Show an account balance",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			getBalance(args[0])
		},
	}

	transferCmd := &cobra.Command{
		Use:   "transfer <fromAccountId> <toAccountId> <amount>",
		Short: "Transfer funds between two accounts",
		Args:  cobra.ExactArgs(3),
		Run: func(cmd *cobra.Command, args []string) {
			transfer(args[0], args[1], args[2])
		},
	}

	transactionsCmd := &cobra.Command{
		Use:   "transactions <accountId>",
		Short: "List transactions involving an account",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			listTransactions(args[0])
		},
	}

	rootCmd.AddCommand(balanceCmd, transferCmd, transactionsCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func getBalance(accountID string) {
	client := &http.Client{Timeout: timeout}
	resp, err := client.Get(baseURL + "/api/v1/account/getAccountBalance?accountId=" + url.QueryEscape(accountID))
	if err != nil {
		fmt.Printf("Error making request: %v\n", err)
		os.Exit(1)
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)

	if resp.StatusCode != http.StatusOK {
		fmt.Printf("Balance lookup failed (Status: %d)\nResponse: %s\n", resp.StatusCode, string(body))
		os.Exit(1)
	}

	if len(body) == 0 {
		fmt.Printf("Account %s not found\n", accountID)
		return
	}

	fmt.Println(string(body))
}

func transfer(fromID, toID, amount string) {
	query := url.Values{}
	query.Set("fromAccountId", fromID)
	query.Set("toAccountId", toID)
	query.Set("transferAmount", amount)

	client := &http.Client{Timeout: timeout}
	resp, err := client.Post(baseURL+"/api/v1/account/transfer?"+query.Encode(), "text/plain", nil)
	if err != nil {
		fmt.Printf("Error making request: %v\n", err)
		os.Exit(1)
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)

	if resp.StatusCode != http.StatusOK {
		fmt.Printf("Transfer failed (Status: %d)\nResponse: %s\n", resp.StatusCode, string(body))
		os.Exit(1)
	}

	fmt.Println(string(body))
}

func listTransactions(accountID string) {
	client := &http.Client{Timeout: timeout}
	resp, err := client.Get(baseURL + "/api/v1/account/transactions?accountId=" + url.QueryEscape(accountID))
	if err != nil {
		fmt.Printf("Error making request: %v\n", err)
		os.Exit(1)
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)

	if resp.StatusCode != http.StatusOK {
		fmt.Printf("Listing transactions failed (Status: %d)\nResponse: %s\n", resp.StatusCode, string(body))
		os.Exit(1)
	}

	fmt.Println(string(body))
}
