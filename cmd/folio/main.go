// Command folio authors portfolio project pages: it serves the editor,
// renders and packages project documents, and watches them for changes.
package main

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/eringen/folio"
)

// version is set at build time via ldflags.
var version = "dev"

var (
	cfgFile string
	verbose bool
	cfg     folio.Config
	logger  *slog.Logger
)

var rootCmd = &cobra.Command{
	Use:   "folio",
	Short: "folio - portfolio project page generator",
	Long: `folio turns a project description (name, links, theme colors and an
ordered list of text, image, video and code blocks) into a single static HTML
page, with an optional archive of its assets.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		level := slog.LevelInfo
		if verbose {
			level = slog.LevelDebug
		}
		logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
		return initializeConfig(cmd)
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the folio version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "folio %s\n", version)
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./folio.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "debug logging")
	rootCmd.AddCommand(versionCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func initializeConfig(cmd *cobra.Command) error {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		logger.Warn("could not load .env", "err", err)
	}

	v := viper.New()
	v.SetDefault("addr", "127.0.0.1:3000")
	v.SetDefault("gemini.model", "gemini-2.0-flash")
	v.SetDefault("gemini.pace", "1s")
	v.SetDefault("preview_delay", "1s")
	v.SetDefault("notice_ttl", "3s")
	v.SetDefault("workspace_ttl", "12h")
	v.SetDefault("max_upload_size", 10<<20)
	v.SetDefault("generations_per_minute", 10)

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		v.AddConfigPath(".")
		v.SetConfigName("folio")
		v.SetConfigType("yaml")
	}

	v.SetEnvPrefix("FOLIO")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if f := cmd.Flags().Lookup("addr"); f != nil {
		if err := v.BindPFlag("addr", f); err != nil {
			return err
		}
	}

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok || cfgFile != "" {
			return fmt.Errorf("read config: %w", err)
		}
		logger.Debug("no config file, using defaults and environment")
	} else {
		logger.Debug("using config file", "path", v.ConfigFileUsed())
	}

	cfg = folio.Config{
		Addr:                 v.GetString("addr"),
		SessionSecret:        v.GetString("session_secret"),
		CookieSecure:         v.GetBool("cookie_secure"),
		GeminiAPIKey:         v.GetString("gemini.api_key"),
		GeminiModel:          v.GetString("gemini.model"),
		GeminiBaseURL:        v.GetString("gemini.base_url"),
		GeminiPace:           v.GetDuration("gemini.pace"),
		PreviewDelay:         v.GetDuration("preview_delay"),
		NoticeTTL:            v.GetDuration("notice_ttl"),
		WorkspaceTTL:         v.GetDuration("workspace_ttl"),
		MaxUploadSize:        v.GetInt64("max_upload_size"),
		GenerationsPerMinute: v.GetInt("generations_per_minute"),
	}
	return nil
}
