// Package cli implements the cobra command surface for Sitecheck.
// Commands talk to core services through the driving ports; the service
// graph is built lazily on first use from the configured GitHub
// credentials.
package cli

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	configfile "github.com/custodia-labs/sitecheck-cli/internal/adapters/driven/config/file"
	"github.com/custodia-labs/sitecheck-cli/internal/adapters/driven/remote/github"
	"github.com/custodia-labs/sitecheck-cli/internal/core/ports/driven"
	"github.com/custodia-labs/sitecheck-cli/internal/core/ports/driving"
	"github.com/custodia-labs/sitecheck-cli/internal/core/services"
	"github.com/custodia-labs/sitecheck-cli/internal/logger"
)

// version is overridden at build time via -ldflags.
var version = "0.1.0"

// verbose is bound to the global --verbose flag.
var verbose bool

// Services consumed by the commands. Wired lazily by ensureServices;
// tests inject their own implementations.
var (
	checklistService driving.ChecklistService
	workOrderService driving.WorkOrderService
	changeLogService driving.ChangeLogService
	imageService     driving.ImageService
	configStore      driven.ConfigStore
)

var rootCmd = &cobra.Command{
	Use:   "sitecheck",
	Short: "Track facility inspections in a GitHub-backed repository",
	Long: `Sitecheck records facility-inspection observations, escalates defects
into work orders, archives completed repairs and keeps an audit log of
repair-date changes. All records persist as JSON documents committed to
a GitHub repository; defect photos are stored alongside them.`,
	SilenceUsage: true,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		logger.SetVerbose(verbose)
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Print debug output to stderr")
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

// ensureConfig opens the TOML config store on first use.
func ensureConfig() error {
	if configStore != nil {
		return nil
	}
	store, err := configfile.NewConfigStore("")
	if err != nil {
		return fmt.Errorf("open config: %w", err)
	}
	configStore = store
	return nil
}

// ensureServices builds the service graph on first use. Environment
// variables win over the config file so CI and one-off runs need no
// config step.
func ensureServices() error {
	if checklistService != nil && workOrderService != nil &&
		changeLogService != nil && imageService != nil {
		return nil
	}

	// A .env file is optional; regular installs use the config file.
	_ = godotenv.Load()

	if err := ensureConfig(); err != nil {
		return err
	}

	token := firstNonEmpty(os.Getenv("GITHUB_TOKEN"), configStore.GetString("github.token"))
	repository := firstNonEmpty(os.Getenv("REPO_NAME"), configStore.GetString("github.repo"))
	branch := firstNonEmpty(os.Getenv("REPO_BRANCH"), configStore.GetString("github.branch"))

	if token == "" || repository == "" {
		return errors.New(
			"backing repository not configured: set GITHUB_TOKEN and REPO_NAME, " +
				"or run 'sitecheck config set github.token <token>' and " +
				"'sitecheck config set github.repo <owner/name>'",
		)
	}

	client := github.NewClient(context.Background(), token)
	files, err := github.NewFileStore(client, repository, branch)
	if err != nil {
		return err
	}

	wireServices(files)
	logger.Debug("services wired against %s (branch %q)", repository, branch)
	return nil
}

// wireServices constructs the service graph over the given file store.
// Split out so tests can wire a memory store.
func wireServices(files driven.FileStore) {
	session := services.NewSession()
	docs := services.NewDocuments(files)
	images := services.NewImages(files)

	checklistService = services.NewChecklist(docs, images, session)
	workOrderService = services.NewWorkOrders(docs, images, session)
	changeLogService = services.NewChangeLog(docs, session)
	imageService = images
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
