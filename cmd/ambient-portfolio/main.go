package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"ambient-portfolio/internal/config"
	"ambient-portfolio/internal/convert"
	"ambient-portfolio/internal/prefs"
	"ambient-portfolio/internal/utils"

	"github.com/spf13/cobra"
)

const defaultConfigName = "config.yaml"

type options struct {
	configPath    string
	envFiles      []string
	logLevel      string
	debug         bool
	route         string
	mode          string
	fullscreen    bool
	reducedMotion bool
	contentPath   string
	assets        string
	width         int
	height        int
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := newRootCmd().ExecuteContext(ctx)
	stop()
	utils.SyncLogger()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	opts := &options{}
	var cfg *config.Config

	root := &cobra.Command{
		Use:           "ambient-portfolio",
		Short:         "Animated personal portfolio rendered with raylib",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			var err error
			cfg, err = loadConfig(cmd, opts)
			return err
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			return run(cmd.Context(), cfg)
		},
	}

	pf := root.PersistentFlags()
	pf.StringVarP(&opts.configPath, "config", "c", "", "config file (default <config dir>/"+defaultConfigName+")")
	pf.StringSliceVar(&opts.envFiles, "env", []string{".env"}, "env files to read settings from")
	pf.StringVar(&opts.logLevel, "log-level", "", "log level: debug, info, warn or error")
	pf.BoolVar(&opts.debug, "debug", false, "debug logging and the debug overlay")

	f := root.Flags()
	f.StringVar(&opts.route, "route", "", "initial route: /, /gallery or /contact")
	f.StringVar(&opts.mode, "mode", "", "window or wallpaper")
	f.BoolVar(&opts.fullscreen, "fullscreen", false, "start fullscreen")
	f.BoolVar(&opts.reducedMotion, "reduced-motion", false, "reduce animations")
	f.StringVar(&opts.contentPath, "content", "", "site description YAML (default: built in)")
	f.StringVar(&opts.assets, "assets", "", "directory holding gallery images")
	f.IntVar(&opts.width, "width", 0, "window width")
	f.IntVar(&opts.height, "height", 0, "window height")

	get := func() *config.Config { return cfg }
	root.AddCommand(
		newPrefsCmd(get),
		newConfigCmd(get, opts),
		newDecodeCmd(),
		newConvertCmd(),
		newExtractCmd(),
	)
	return root
}

func loadConfig(cmd *cobra.Command, opts *options) (*config.Config, error) {
	path := opts.configPath
	if path == "" {
		if dir, err := utils.ConfigDir(); err == nil {
			path = filepath.Join(dir, defaultConfigName)
		}
	}
	cfg, err := config.Load(path, opts.envFiles...)
	if err != nil {
		return nil, err
	}

	flags := cmd.Flags()
	if flags.Changed("route") {
		cfg.Route = opts.route
	}
	if flags.Changed("mode") {
		cfg.Window.Mode = opts.mode
	}
	if flags.Changed("fullscreen") {
		cfg.Window.Fullscreen = opts.fullscreen
	}
	if flags.Changed("reduced-motion") {
		cfg.Motion.ReducedMotion = opts.reducedMotion
	}
	if flags.Changed("content") {
		cfg.Content.Path = opts.contentPath
	}
	if flags.Changed("assets") {
		cfg.Gallery.Dir = opts.assets
	}
	if flags.Changed("width") {
		cfg.Window.Width = opts.width
	}
	if flags.Changed("height") {
		cfg.Window.Height = opts.height
	}
	if opts.logLevel != "" {
		cfg.Log.Level = opts.logLevel
	}
	if opts.debug {
		cfg.Log.Debug = true
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	level, err := utils.ParseLogLevel(cfg.Log.Level)
	if err != nil {
		return nil, err
	}
	if cfg.Log.Debug {
		utils.DebugMode = true
		utils.ShowDebugUI = true
		level = utils.LevelDebug
	}
	if err := utils.InitLogger(level); err != nil {
		return nil, err
	}
	utils.AssetsPath = cfg.Gallery.Dir
	utils.Debug("Config loaded from %s", path)
	return cfg, nil
}

func openPrefsStore(cfg *config.Config) (prefs.Store, error) {
	dir, err := cfg.PrefsDir()
	if err != nil {
		return nil, err
	}
	return prefs.OpenStore(cfg.Prefs.Backend, dir)
}

func newPrefsCmd(cfg func() *config.Config) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "prefs",
		Short: "Show or reset the stored loading screen preferences",
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Print the stored preferences",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			store, err := openPrefsStore(cfg())
			if err != nil {
				return err
			}
			defer store.Close()
			out, err := json.MarshalIndent(prefs.Peek(store), "", "  ")
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), string(out))
			return nil
		},
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "reset",
		Short: "Forget the stored preferences and visit count",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			store, err := openPrefsStore(cfg())
			if err != nil {
				return err
			}
			defer store.Close()
			if err := store.Delete(prefs.Key); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "preferences reset")
			return nil
		},
	})
	return cmd
}

func newConfigCmd(cfg func() *config.Config, opts *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect or write the effective configuration",
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "save [path]",
		Short: "Write the effective configuration as YAML",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := opts.configPath
			if len(args) == 1 {
				path = args[0]
			}
			if path == "" {
				dir, err := utils.ConfigDir()
				if err != nil {
					return err
				}
				path = filepath.Join(dir, defaultConfigName)
			}
			if err := cfg().Save(path); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", path)
			return nil
		},
	})
	return cmd
}

func newDecodeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "decode <file.tex> [out-dir]",
		Short: "Convert one texture to PNG",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := filepath.Dir(args[0])
			if len(args) == 2 {
				out = args[1]
			}
			path, err := convert.ConvertTex(args[0], out)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), path)
			return nil
		},
	}
}

func newConvertCmd() *cobra.Command {
	var out string
	cmd := &cobra.Command{
		Use:   "convert <dir>",
		Short: "Convert every texture under a directory to PNG",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if out == "" {
				out = args[0]
			}
			converted, failed, err := convert.BulkConvert(cmd.Context(), args[0], out)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "converted %d, failed %d\n", converted, failed)
			return nil
		},
	}
	cmd.Flags().StringVarP(&out, "out", "o", "", "output directory (default: next to the input)")
	return cmd
}

func newExtractCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "extract <bundle.pkg> <out-dir>",
		Short: "Unpack an asset bundle",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			files, err := convert.ExtractPkg(args[0], args[1])
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "extracted %d files to %s\n", len(files), args[1])
			return nil
		},
	}
}
