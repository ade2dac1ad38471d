package main

import (
	"github.com/atotto/clipboard"
	"github.com/spf13/cobra"

	"github.com/eringen/folio/export"
)

var renderOpts struct {
	out   string
	media string
	copy  bool
}

var renderCmd = &cobra.Command{
	Use:   "render <project.json>",
	Short: "Validate a project document and write the page",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := loadProject(args[0], renderOpts.media)
		if err != nil {
			return err
		}
		b, err := build(s)
		if err != nil {
			return err
		}
		if err := export.WriteDir(renderOpts.out, b); err != nil {
			return err
		}
		logger.Info("page written", "dir", renderOpts.out, "images", len(b.Images), "videos", len(b.Videos))

		if renderOpts.copy {
			if err := clipboard.WriteAll(b.HTML); err != nil {
				logger.Error("Failed to copy HTML. Please copy manually.", "err", err)
				return err
			}
			logger.Info("HTML code copied to clipboard!")
		}
		return nil
	},
}

func init() {
	renderCmd.Flags().StringVarP(&renderOpts.out, "out", "o", "site", "output directory")
	renderCmd.Flags().StringVar(&renderOpts.media, "media", "", "directory holding uploaded media by file name")
	renderCmd.Flags().BoolVar(&renderOpts.copy, "copy", false, "also copy the HTML to the clipboard")
	rootCmd.AddCommand(renderCmd)
}
