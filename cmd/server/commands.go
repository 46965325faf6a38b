package main

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"

	"github.com/wems/internal/handler"
	"github.com/wems/internal/jsonserver"
	"github.com/wems/internal/localdb"
	"github.com/wems/internal/notify"
	"github.com/wems/internal/router"
	"github.com/wems/internal/service"
	"github.com/wems/internal/storage/indexed"
)

var (
	jsonServerAddr string
	jsonDataFile   string
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the public site and admin API",
	RunE:  runServe,
}

var jsonServerCmd = &cobra.Command{
	Use:   "jsonserver",
	Short: "Run the JSON file storage server",
	RunE: func(cmd *cobra.Command, args []string) error {
		addr := firstNonEmpty(jsonServerAddr, cfg.JSONServerAddr)
		file := firstNonEmpty(jsonDataFile, cfg.JSONDataFile)

		gin.SetMode(cfg.GinMode)
		engine := jsonserver.NewEngine(jsonserver.NewDocument(file))
		log.Printf("[jsonserver] serving %s on %s", file, addr)
		return engine.Run(addr)
	},
}

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Copy legacy key-value data into the local database",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		a, err := openApp(ctx, cfg)
		if err != nil {
			return err
		}
		defer a.close()

		report, err := a.local.MigrateLegacy(ctx)
		if err != nil {
			return err
		}
		return printJSON(cmd, report)
	},
}

var exportCmd = &cobra.Command{
	Use:   "export [file]",
	Short: "Export the local database to a backup file (use - for stdout)",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		a, err := openApp(ctx, cfg)
		if err != nil {
			return err
		}
		defer a.close()

		data, err := a.local.Export(ctx)
		if err != nil {
			return err
		}

		target := indexed.BackupFilename(time.Now())
		if len(args) == 1 {
			target = args[0]
		}
		if target == "-" {
			_, err := cmd.OutOrStdout().Write(append(data, '\n'))
			return err
		}
		if err := os.WriteFile(target, data, 0o644); err != nil {
			return fmt.Errorf("write backup: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "exported to %s\n", target)
		return nil
	},
}

var importCmd = &cobra.Command{
	Use:   "import <file>",
	Short: "Import a backup file into the local database",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		data, err := os.ReadFile(args[0])
		if err != nil {
			return fmt.Errorf("read backup: %w", err)
		}

		a, err := openApp(ctx, cfg)
		if err != nil {
			return err
		}
		defer a.close()

		report, err := a.local.Import(ctx, data)
		if err != nil {
			return err
		}
		if err := printJSON(cmd, report); err != nil {
			return err
		}
		if len(report.Failed) > 0 {
			return fmt.Errorf("%d section(s) failed to import", len(report.Failed))
		}
		return nil
	},
}

func init() {
	jsonServerCmd.Flags().StringVar(&jsonServerAddr, "addr", "", "listen address (default: JSON_SERVER_ADDR)")
	jsonServerCmd.Flags().StringVar(&jsonDataFile, "file", "", "data file path (default: JSON_DATA_FILE)")
}

func runServe(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	a, err := openApp(ctx, cfg)
	if err != nil {
		return err
	}
	defer a.close()

	auth := service.NewAuthService(a.gdb)
	if err := auth.EnsureAdmin(cfg.AdminUsername, cfg.AdminPassword); err != nil {
		return fmt.Errorf("failed to ensure admin user: %w", err)
	}

	store := a.facade(ctx, cfg.StorageType)
	go logEvents(store, notify.TopicLogoUpdated, notify.TopicDataImported)

	gin.SetMode(cfg.GinMode)
	api := handler.NewAPI(handler.Dependencies{
		Store:    store,
		KV:       a.kv,
		Local:    a.local,
		Remote:   a.remote,
		JSONFile: a.jsonFile,
		Auth:     auth,
		Uploads:  service.NewUploadService(cfg.UploadDir, cfg.UploadURLPath),
	})

	// 设置并运行 Gin 服务器
	r := router.SetupRouter(router.Options{
		SessionSecret: cfg.SessionSecret,
		UploadDir:     cfg.UploadDir,
		UploadURLPath: cfg.UploadURLPath,
	}, api)
	log.Printf("listening on %s", cfg.ListenAddr)
	return r.Run(cfg.ListenAddr)
}

// logEvents 把内容变更事件写入日志
func logEvents(store *localdb.Store, topics ...notify.Topic) {
	merged := make(chan notify.Event)
	for _, topic := range topics {
		ch := store.Subscribe(topic)
		go func() {
			for event := range ch {
				merged <- event
			}
		}()
	}
	for event := range merged {
		log.Printf("[notify] %s %s", event.Topic, event.Data)
	}
}

func printJSON(cmd *cobra.Command, value any) error {
	encoder := json.NewEncoder(cmd.OutOrStdout())
	encoder.SetIndent("", "  ")
	return encoder.Encode(value)
}

func firstNonEmpty(values ...string) string {
	for _, value := range values {
		if value != "" {
			return value
		}
	}
	return ""
}
