package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
)

var imageCmd = &cobra.Command{
	Use:   "image",
	Short: "Manage stored defect photos",
}

var imageSaveCmd = &cobra.Command{
	Use:   "save <file>",
	Short: "Thumbnail and store a photo in the repository",
	Args:  cobra.ExactArgs(1),
	RunE:  runImageSave,
}

var imageClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Remove every stored photo",
	RunE:  runImageClear,
}

var imageSaveName string

func init() {
	imageSaveCmd.Flags().StringVar(&imageSaveName, "name", "", "Stored file name (defaults to the source file name)")

	imageCmd.AddCommand(imageSaveCmd)
	imageCmd.AddCommand(imageClearCmd)
	rootCmd.AddCommand(imageCmd)
}

func runImageSave(cmd *cobra.Command, args []string) error {
	if err := ensureServices(); err != nil {
		return err
	}
	if imageService == nil {
		return errors.New("image service not configured")
	}

	data, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("failed to read image file: %w", err)
	}

	name := imageSaveName
	if name == "" {
		name = filepath.Base(args[0])
	}

	path, err := imageService.Save(context.Background(), data, name)
	if err != nil {
		return fmt.Errorf("failed to save image: %w", err)
	}

	cmd.Printf("Image stored at %s\n", path)
	return nil
}

func runImageClear(cmd *cobra.Command, _ []string) error {
	if err := ensureServices(); err != nil {
		return err
	}
	if imageService == nil {
		return errors.New("image service not configured")
	}

	if err := imageService.ClearAll(context.Background()); err != nil {
		return fmt.Errorf("failed to clear images: %w", err)
	}

	cmd.Println("Images cleared.")
	return nil
}
