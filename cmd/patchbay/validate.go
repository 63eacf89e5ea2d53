package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/aretw0/patchbay/internal/validator"
	"github.com/aretw0/patchbay/pkg/sessionfile"
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Check a session file for consistency",
	Long:  `Loads the session and reports dead port references, naming conflicts and unresolvable special ports.`,
	Run: func(cmd *cobra.Command, args []string) {
		if err := runValidate(cmd, args); err != nil {
			fmt.Printf("Validation failed: %v\n", err)
			os.Exit(1)
		}
		fmt.Println("Session is valid! ✅")
	},
}

func init() {
	rootCmd.AddCommand(validateCmd)
}

func runValidate(cmd *cobra.Command, args []string) error {
	sessionPath, _ := cmd.Flags().GetString("session")
	if sessionPath == "" && len(args) > 0 {
		sessionPath = args[0]
	}
	if sessionPath == "" {
		return fmt.Errorf("a session file is required (--session)")
	}

	session, err := sessionfile.Load(sessionPath)
	if err != nil {
		return err
	}

	return validator.ValidateSource(session)
}
