package main

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/office-saver/internal/commentary"
)

var keyCmd = &cobra.Command{
	Use:   "key",
	Short: "Manage the commentary API key",
	Long: `Store, remove or inspect the Gemini API key used for end-of-game commentary.

The key is kept in the OS keychain. The GEMINI_API_KEY and API_KEY
environment variables take precedence over the stored key.`,
}

var keySetCmd = &cobra.Command{
	Use:   "set [key]",
	Short: "Store the API key in the OS keychain",
	Long: `Store the API key. Without an argument the key is read from the
terminal without echo, or from stdin when it is not a terminal.`,
	Args: cobra.MaximumNArgs(1),
	Run:  runKeySet,
}

var keyClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Remove the stored API key",
	Args:  cobra.NoArgs,
	Run:   runKeyClear,
}

var keyStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show where the API key comes from",
	Args:  cobra.NoArgs,
	Run:   runKeyStatus,
}

func init() {
	keyCmd.AddCommand(keySetCmd)
	keyCmd.AddCommand(keyClearCmd)
	keyCmd.AddCommand(keyStatusCmd)
}

func runKeySet(_ *cobra.Command, args []string) {
	var value string
	if len(args) == 1 {
		value = args[0]
	} else {
		var err error
		value, err = readSecret()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error reading key: %v\n", err)
			os.Exit(1)
		}
	}

	if err := commentary.NewKeyringStore("").SetAPIKey(value); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	fmt.Println("API key stored.")
}

// readSecret reads one line from stdin, hiding the input on a terminal.
func readSecret() (string, error) {
	fd := int(os.Stdin.Fd())
	if term.IsTerminal(fd) {
		fmt.Print("API key: ")
		b, err := term.ReadPassword(fd)
		fmt.Println()
		if err != nil {
			return "", err
		}
		return strings.TrimSpace(string(b)), nil
	}

	line, err := bufio.NewReader(os.Stdin).ReadString('\n')
	if err != nil && line == "" {
		return "", err
	}
	return strings.TrimSpace(line), nil
}

func runKeyClear(_ *cobra.Command, _ []string) {
	if err := commentary.NewKeyringStore("").DeleteAPIKey(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	fmt.Println("API key removed.")
}

func runKeyStatus(_ *cobra.Command, _ []string) {
	_, source, err := commentary.ResolveAPIKey(commentary.NewKeyringStore(""))
	switch {
	case errors.Is(err, commentary.ErrNoAPIKey):
		fmt.Println("No API key configured. Commentary uses fixed lines.")
		fmt.Println("Run 'saver key set' or export GEMINI_API_KEY.")
	case err != nil:
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	default:
		fmt.Printf("API key found (%s).\n", source)
	}
}
