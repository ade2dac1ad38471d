package main

import (
	"github.com/spf13/cobra"

	"github.com/eringen/folio/export"
)

var exportOpts struct {
	out   string
	media string
}

var exportCmd = &cobra.Command{
	Use:   "export <project.json>",
	Short: "Package the page and its assets as a zip archive",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := loadProject(args[0], exportOpts.media)
		if err != nil {
			return err
		}
		b, err := build(s)
		if err != nil {
			return err
		}
		dst := exportOpts.out
		if dst == "" {
			dst = export.ArchiveName(s.Form.Name)
		}
		if err := export.WriteFile(dst, b); err != nil {
			logger.Error("Failed to export ZIP file.", "err", err)
			return err
		}
		logger.Info("ZIP file exported successfully!", "path", dst)
		return nil
	},
}

func init() {
	exportCmd.Flags().StringVarP(&exportOpts.out, "out", "o", "", "archive path (default <slug>-export.zip)")
	exportCmd.Flags().StringVar(&exportOpts.media, "media", "", "directory holding uploaded media by file name")
	rootCmd.AddCommand(exportCmd)
}
