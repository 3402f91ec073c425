package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/spf13/cobra"

	"github.com/sfujino/vidiary/internal/catalog"
	"github.com/sfujino/vidiary/internal/config"
	"github.com/sfujino/vidiary/internal/model"
	"github.com/sfujino/vidiary/internal/repository"
	"github.com/sfujino/vidiary/internal/service/assets"
	"github.com/sfujino/vidiary/internal/service/media"
)

// videoCmd represents the video command
var videoCmd = &cobra.Command{
	Use:   "video",
	Short: "Video diary operations",
	Long:  `Operations for managing video diary entries.`,
}

// openCatalog initializes the store and loads the catalog. Initialization
// failure is fatal: no data operation may run after it.
func openCatalog(ctx context.Context) (catalog.Catalog, *config.Config, func(), error) {
	cfg, err := config.NewConfig()
	if err != nil {
		return nil, nil, nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	dbPool, err := config.OpenStore(ctx, cfg)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("failed to initialize storage: %w", err)
	}

	cat := catalog.NewCatalog(repository.NewEntryRepository(dbPool), slog.Default())
	if err := cat.Bootstrap(ctx); err != nil {
		dbPool.Close()
		return nil, nil, nil, fmt.Errorf("failed to load catalog: %w", err)
	}

	return cat, cfg, dbPool.Close, nil
}

// videoAddCmd crops a clip out of a source video and catalogs it
var videoAddCmd = &cobra.Command{
	Use:   "add [SOURCE_VIDEO]",
	Short: "Add a new diary entry from a source video",
	Long: `Crop a fixed 5-second clip out of a source video with ffmpeg, generate a
thumbnail, and save the entry to the catalog.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		sourcePath := args[0]

		ctx, cancel := context.WithTimeout(context.Background(), 120*time.Second)
		defer cancel()

		cat, cfg, closeStore, err := openCatalog(ctx)
		if err != nil {
			return err
		}
		defer closeStore()

		name, _ := cmd.Flags().GetString("name")
		description, _ := cmd.Flags().GetString("description")
		start, _ := cmd.Flags().GetFloat64("start")

		// Copy the source into the library before processing
		assetStore := assets.NewStore(cfg.LibraryDir, slog.Default())
		importedPath, err := assetStore.Import(ctx, sourcePath)
		if err != nil {
			return fmt.Errorf("failed to import source video: %w", err)
		}

		// Crop first; if ffmpeg fails no entry is ever persisted
		processor := media.NewFFmpegProcessor(cfg.LibraryDir)
		clip, err := processor.Crop(ctx, importedPath, start)
		if err != nil {
			return fmt.Errorf("failed to process video: %w", err)
		}

		entry, err := cat.Add(ctx, catalog.NewEntry{
			Name:         name,
			Description:  description,
			URI:          clip.URI,
			ThumbnailURI: clip.ThumbnailURI,
			Duration:     clip.Duration,
		})
		if err != nil {
			return fmt.Errorf("failed to save entry: %w", err)
		}

		return printEntries("Entry saved successfully", *entry)
	},
}

// videoListCmd lists all diary entries, newest first
var videoListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all diary entries",
	Long:  `List all diary entries in the catalog, newest first.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		cat, _, closeStore, err := openCatalog(ctx)
		if err != nil {
			return err
		}
		defer closeStore()

		entries := cat.Entries()
		if len(entries) == 0 {
			fmt.Println("No entries found in the catalog.")
			return nil
		}

		return printEntries(fmt.Sprintf("Found %d entry(s)", len(entries)), entries...)
	},
}

// videoGetCmd shows a single diary entry
var videoGetCmd = &cobra.Command{
	Use:   "get [ID]",
	Short: "Show a diary entry",
	Long:  `Show a single diary entry by its id.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id := args[0]

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		cat, _, closeStore, err := openCatalog(ctx)
		if err != nil {
			return err
		}
		defer closeStore()

		entry, ok := cat.GetByID(id)
		if !ok {
			fmt.Printf("No entry found with id: %s\n", id)
			return nil
		}

		return printEntries("", entry)
	},
}

// videoUpdateCmd updates an entry's metadata
var videoUpdateCmd = &cobra.Command{
	Use:   "update [ID]",
	Short: "Update a diary entry",
	Long:  `Update the name or description of a diary entry.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id := args[0]

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		cat, _, closeStore, err := openCatalog(ctx)
		if err != nil {
			return err
		}
		defer closeStore()

		var update catalog.EntryUpdate
		if cmd.Flags().Changed("name") {
			name, _ := cmd.Flags().GetString("name")
			update.Name = &name
		}
		if cmd.Flags().Changed("description") {
			description, _ := cmd.Flags().GetString("description")
			update.Description = &description
		}

		if err := cat.Update(ctx, id, update); err != nil {
			return fmt.Errorf("failed to update entry: %w", err)
		}

		if entry, ok := cat.GetByID(id); ok {
			return printEntries("Entry updated successfully", entry)
		}
		fmt.Printf("No entry found with id: %s\n", id)
		return nil
	},
}

// videoDeleteCmd deletes an entry and cleans up its assets
var videoDeleteCmd = &cobra.Command{
	Use:   "delete [ID]",
	Short: "Delete a diary entry",
	Long: `Delete a diary entry from the catalog. The clip and thumbnail files are
removed afterwards, best-effort.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id := args[0]

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		cat, cfg, closeStore, err := openCatalog(ctx)
		if err != nil {
			return err
		}
		defer closeStore()

		removed, err := cat.Delete(ctx, id)
		if err != nil {
			return fmt.Errorf("failed to delete entry: %w", err)
		}
		if removed == nil {
			fmt.Printf("No entry found with id: %s\n", id)
			return nil
		}

		// Best-effort asset cleanup; failures are logged, the delete stands
		assetStore := assets.NewStore(cfg.LibraryDir, slog.Default())
		done := assets.CleanupAsync(assetStore, slog.Default(), removed.URI, removed.ThumbnailURI)
		select {
		case <-done:
		case <-ctx.Done():
		}

		fmt.Printf("Entry deleted: %s\n", removed.ID)
		return nil
	},
}

// printEntries prints entries as indented JSON with an optional header
func printEntries(header string, entries ...model.VideoEntry) error {
	var payload any = entries
	if len(entries) == 1 {
		payload = entries[0]
	}
	result, err := json.MarshalIndent(payload, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to format result: %w", err)
	}
	if header != "" {
		fmt.Printf("%s:\n%s\n", header, string(result))
	} else {
		fmt.Println(string(result))
	}
	return nil
}

func init() {
	videoAddCmd.Flags().String("name", "", "Display name for the entry (required)")
	videoAddCmd.Flags().String("description", "", "Optional description")
	videoAddCmd.Flags().Float64("start", 0, "Start offset in the source video, in seconds")
	videoAddCmd.MarkFlagRequired("name")

	videoUpdateCmd.Flags().String("name", "", "New display name")
	videoUpdateCmd.Flags().String("description", "", "New description")

	videoCmd.AddCommand(videoAddCmd)
	videoCmd.AddCommand(videoListCmd)
	videoCmd.AddCommand(videoGetCmd)
	videoCmd.AddCommand(videoUpdateCmd)
	videoCmd.AddCommand(videoDeleteCmd)
	rootCmd.AddCommand(videoCmd)
}
