package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/ziadkadry99/nexus-docs/internal/i18n"
	"github.com/ziadkadry99/nexus-docs/internal/progress"
	"github.com/ziadkadry99/nexus-docs/internal/site"
)

var (
	exportOutput string
	exportLang   string
	exportServe  bool
	exportPort   int
	exportOpen   bool
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export the documentation as a static HTML site",
	Long: `Renders every topic, the home page and the informational pages to a
directory of static HTML with a client-side search index. Features that
need the server (sessions, favorites, chat) are left out.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		logger, err := newLogger(cfg)
		if err != nil {
			return err
		}
		defer logger.Sync()

		lang, ok := i18n.ParseLang(exportLang)
		if !ok {
			return fmt.Errorf("unsupported language %q", exportLang)
		}

		reg, idx, cat, err := loadContent(cfg)
		if err != nil {
			return err
		}

		exporter, err := site.NewExporter(reg, idx, cat, site.Options{
			Lang:     lang,
			Version:  cfg.Content.DefaultVersion,
			Reporter: progress.NewReporter(),
			Logger:   logger,
		})
		if err != nil {
			return err
		}

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		res, err := exporter.Export(ctx, exportOutput)
		if err != nil {
			return fmt.Errorf("exporting site: %w", err)
		}
		fmt.Printf("Exported %d pages (%d topics) to %s\n", res.Pages, res.Topics, res.Dir)

		if !exportServe {
			return nil
		}
		fmt.Println("Press Ctrl+C to stop.")
		return site.Preview(ctx, exportOutput, exportPort, exportOpen, logger)
	},
}

func init() {
	exportCmd.Flags().StringVarP(&exportOutput, "output", "o", "site", "Output directory")
	exportCmd.Flags().StringVar(&exportLang, "lang", string(i18n.DefaultLang), "Language of the exported pages")
	exportCmd.Flags().BoolVar(&exportServe, "serve", false, "Preview the exported site after writing it")
	exportCmd.Flags().IntVar(&exportPort, "port", 4000, "Preview port")
	exportCmd.Flags().BoolVar(&exportOpen, "open", false, "Open the preview in the default browser")
	rootCmd.AddCommand(exportCmd)
}
