package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/minhokang/docqa/internal/config"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Create a docqa configuration interactively",
	Long:  `Runs an interactive wizard that writes a .docqa.yml config file.`,
	RunE:  runInit,
}

func init() {
	initCmd.Flags().Bool("force", false, "overwrite an existing config file")
	rootCmd.AddCommand(initCmd)
}

func runInit(cmd *cobra.Command, args []string) error {
	force, _ := cmd.Flags().GetBool("force")

	if _, err := os.Stat(config.DefaultPath); err == nil && !force {
		return fmt.Errorf("%s already exists, use --force to overwrite", config.DefaultPath)
	}

	_, err := config.RunWizard()
	return err
}
