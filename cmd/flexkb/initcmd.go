package main

import (
	"fmt"
	"os"
	"path/filepath"

	"flexkb/internal/config"

	"github.com/spf13/cobra"
)

var initForce bool

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a default flexkb.json",
	Long:  "Creates flexkb.json with default configuration in the config directory",
	RunE:  runInit,
}

func init() {
	initCmd.Flags().BoolVarP(&initForce, "force", "f", false,
		"Overwrite an existing flexkb.json")
	rootCmd.AddCommand(initCmd)
}

func runInit(cmd *cobra.Command, args []string) error {
	path := filepath.Join(configDir, "flexkb.json")

	if _, err := os.Stat(path); err == nil && !initForce {
		// Already initialized is success, which keeps CI idempotent
		fmt.Println("flexkb already initialized.")
		fmt.Printf("Configuration at: %s\n", path)
		fmt.Println("\nRun 'flexkb init --force' to overwrite.")
		return nil
	}

	cfg := config.DefaultConfig()
	if err := cfg.Save(configDir); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}

	fmt.Printf("Wrote %s\n", path)
	fmt.Println("\nNext steps:")
	fmt.Println("  1. Point indexDir at your API documentation index")
	fmt.Println("  2. Run 'flexkb status' to verify the corpora load")
	fmt.Println("  3. Run 'flexkb serve' to start the MCP server")
	return nil
}
