package main

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"iggallery/pkg/auth"
	"iggallery/pkg/config"
	"iggallery/pkg/ui"
)

// tokenCmd manages stored access tokens
var tokenCmd = &cobra.Command{
	Use:   "token",
	Short: "Manage stored Graph API access tokens",
	Long: `Store the Graph API access token you already have, so it does not need to
live in the environment or in a config file.

Tokens are stored using:
  - System keychain (when available)
  - Encrypted file with PBKDF2 key derivation

iggallery never obtains or refreshes tokens itself.`,
}

var tokenSetCmd = &cobra.Command{
	Use:   "set [account-id]",
	Short: "Store an access token",
	Long: `Store an access token for an account. The token is read from the terminal
without echo, or from standard input when it is not a terminal.`,
	Example: `  # Interactive
  iggallery token set 17841400000000000

  # From a secret manager
  vault read -field=token secret/ig | iggallery token set 17841400000000000`,
	Args: cobra.MaximumNArgs(1),
	RunE: runTokenSet,
}

var tokenShowCmd = &cobra.Command{
	Use:   "show [account-id]",
	Short: "Show the stored token, masked",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runTokenShow,
}

var tokenDeleteCmd = &cobra.Command{
	Use:   "delete [account-id]",
	Short: "Remove a stored token",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runTokenDelete,
}

var tokenListCmd = &cobra.Command{
	Use:   "list",
	Short: "List accounts with a stored token",
	Args:  cobra.NoArgs,
	RunE:  runTokenList,
}

var tokenGuideCmd = &cobra.Command{
	Use:   "guide",
	Short: "Explain where to get an account ID and access token",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		auth.PrintTokenGuide(cmd.OutOrStdout())
	},
}

func init() {
	rootCmd.AddCommand(tokenCmd)
	tokenCmd.AddCommand(tokenSetCmd)
	tokenCmd.AddCommand(tokenShowCmd)
	tokenCmd.AddCommand(tokenDeleteCmd)
	tokenCmd.AddCommand(tokenListCmd)
	tokenCmd.AddCommand(tokenGuideCmd)
}

// tokenAccount picks the account from the argument, falling back to the
// configured account ID
func tokenAccount(cmd *cobra.Command, args []string) (string, error) {
	if len(args) > 0 && strings.TrimSpace(args[0]) != "" {
		return strings.TrimSpace(args[0]), nil
	}

	cfg, err := config.Load(configFile, commandFlags(cmd))
	if err == nil && cfg.Graph.AccountID != "" {
		return cfg.Graph.AccountID, nil
	}
	return "", errors.New("account ID is required: pass it as an argument or set IG_USER_ID")
}

func runTokenSet(cmd *cobra.Command, args []string) error {
	account, err := tokenAccount(cmd, args)
	if err != nil {
		return err
	}

	manager, err := auth.NewManager()
	if err != nil {
		return fmt.Errorf("failed to initialize credential manager: %w", err)
	}

	token, err := readToken()
	if err != nil {
		return fmt.Errorf("failed to read token: %w", err)
	}
	if token == "" {
		return errors.New("access token is empty")
	}

	if err := manager.Store(&auth.Credential{AccountID: account, AccessToken: token}); err != nil {
		return err
	}

	ui.PrintSuccess("Token stored for account " + account)
	ui.PrintInfo("Token", config.MaskSecret(token))
	return nil
}

func runTokenShow(cmd *cobra.Command, args []string) error {
	account, err := tokenAccount(cmd, args)
	if err != nil {
		return err
	}

	manager, err := auth.NewManager()
	if err != nil {
		return fmt.Errorf("failed to initialize credential manager: %w", err)
	}

	cred, err := manager.Retrieve(account)
	if err != nil {
		return err
	}

	sanitized := auth.SanitizeCredential(cred)
	ui.PrintInfo("Account", sanitized.AccountID)
	ui.PrintInfo("Token", sanitized.AccessToken)
	ui.PrintInfo("Last modified", sanitized.LastModified.Format("2006-01-02 15:04:05"))
	return nil
}

func runTokenDelete(cmd *cobra.Command, args []string) error {
	account, err := tokenAccount(cmd, args)
	if err != nil {
		return err
	}

	manager, err := auth.NewManager()
	if err != nil {
		return fmt.Errorf("failed to initialize credential manager: %w", err)
	}

	if err := manager.Delete(account); err != nil {
		return err
	}

	ui.PrintSuccess("Token removed for account " + account)
	return nil
}

func runTokenList(cmd *cobra.Command, args []string) error {
	manager, err := auth.NewManager()
	if err != nil {
		return fmt.Errorf("failed to initialize credential manager: %w", err)
	}

	creds, err := manager.List()
	if err != nil {
		return err
	}
	if len(creds) == 0 {
		ui.PrintWarning("No stored tokens. Add one with 'iggallery token set <account-id>'")
		return nil
	}

	for _, cred := range creds {
		sanitized := auth.SanitizeCredential(cred)
		modified := "unknown"
		if !sanitized.LastModified.IsZero() {
			modified = sanitized.LastModified.Format("2006-01-02 15:04")
		}
		ui.PrintInfo(sanitized.AccountID, sanitized.AccessToken+" "+ui.Dim("("+modified+")"))
	}
	return nil
}

// readToken reads a token without echo from a terminal, or one line from
// piped input
func readToken() (string, error) {
	fd := int(os.Stdin.Fd())
	if term.IsTerminal(fd) {
		fmt.Fprint(os.Stderr, "Access token: ")
		b, err := term.ReadPassword(fd)
		fmt.Fprintln(os.Stderr)
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
