package cli

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/fang"
	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/usl-labs/usl/internal/branding"
	"github.com/usl-labs/usl/internal/config"
	"github.com/usl-labs/usl/internal/logging"
	"github.com/usl-labs/usl/internal/project"
	"github.com/usl-labs/usl/internal/prompt"
	"github.com/usl-labs/usl/internal/registry"
)

type buildInfo struct {
	Version string `json:"version"`
	Commit  string `json:"commit"`
	Date    string `json:"date"`
}

// rootFlags are the persistent flags shared by every command.
type rootFlags struct {
	configFile string
	logLevel   string
	verbose    bool
	yes        bool
	library    string
	initGit    bool
}

// app carries the state of one invocation from the root command's pre-run
// into the subcommands.
type app struct {
	fs    afero.Fs
	cwd   string
	build buildInfo

	flags    rootFlags
	v        *viper.Viper
	settings config.Settings
	log      zerolog.Logger
	prompts  *prompt.Prompter
}

func newApp(fsys afero.Fs, cwd string, build buildInfo) *app {
	return &app{fs: fsys, cwd: cwd, build: build, log: zerolog.Nop()}
}

// Execute runs the root command with build info injected via ldflags and
// returns the process exit code.
func Execute(version, commit, date string) int {
	cwd, err := os.Getwd()
	if err != nil {
		fmt.Fprintln(os.Stderr, errorStyle.Render("Error: ")+err.Error())
		return exitUnexpected
	}

	a := newApp(afero.NewOsFs(), cwd, buildInfo{Version: version, Commit: commit, Date: date})
	root := newRootCommand(a)

	err = fang.Execute(
		context.Background(),
		root,
		fang.WithVersion(version),
		fang.WithCommit(commit),
		fang.WithNotifySignal(os.Interrupt),
	)
	return exitCodeForError(err)
}

func newRootCommand(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   branding.CLIName(),
		Short: branding.Description(),
		Long: branding.DisplayName() + ` installs reusable script packages from a local library into a Unity
project. Dependencies declared in each package's dependencies.txt are
resolved transitively, Unity packages are added to Packages/manifest.json,
and a failed install is rolled back completely.

Run without a command to pick packages from a numbered list.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          usageArgs(cobra.NoArgs),
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.init(cmd)
		},
		RunE: a.runInteractive,
	}
	cmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return usageError(err)
	})

	pf := cmd.PersistentFlags()
	pf.StringVar(&a.flags.configFile, "config", "", "Config file path (default ~/"+branding.HomeDir()+"/config.yaml)")
	pf.StringVar(&a.flags.logLevel, "log-level", "info", "Log level (debug, info, warn, error)")
	pf.BoolVarP(&a.flags.verbose, "verbose", "v", false, "Enable verbose logging")
	pf.BoolVarP(&a.flags.yes, "yes", "y", false, "Automatically answer yes to all prompts")
	pf.StringVar(&a.flags.library, "library", "", "Script library directory (default: "+branding.LibraryDir()+" next to the executable)")
	pf.BoolVar(&a.flags.initGit, "init-git", false, "Initialize a git repository in the project if there is none")

	cmd.AddCommand(newListCommand(a))
	cmd.AddCommand(newAddCommand(a))
	cmd.AddCommand(newInstallCommand(a))
	cmd.AddCommand(newConfigCommand(a))
	cmd.AddCommand(newVersionCommand(a))
	return cmd
}

// init loads configuration and builds the logger. Flags override USL_
// environment variables, which override the config file.
func (a *app) init(cmd *cobra.Command) error {
	v, err := config.New(a.fs, a.flags.configFile)
	if err != nil {
		return usageError(err)
	}

	pf := cmd.Root().PersistentFlags()
	_ = v.BindPFlag(config.KeyLogLevel, pf.Lookup("log-level"))
	_ = v.BindPFlag(config.KeyLibraryDir, pf.Lookup("library"))
	_ = v.BindPFlag(config.KeyAssumeYes, pf.Lookup("yes"))
	_ = v.BindPFlag(config.KeyInitGit, pf.Lookup("init-git"))

	a.v = v
	a.settings = config.Load(v)
	if a.flags.verbose {
		a.settings.LogLevel = "debug"
	}

	a.log = logging.New(cmd.ErrOrStderr(), a.settings.LogLevel, !isTerminal(cmd.ErrOrStderr()))
	a.log.Debug().
		Str("library", a.settings.LibraryDir).
		Str("config", v.ConfigFileUsed()).
		Msg("configuration loaded")
	return nil
}

// catalog scans the script library, which must exist.
func (a *app) catalog() (*registry.Catalog, error) {
	dir := a.settings.LibraryDir
	if ok, _ := afero.DirExists(a.fs, dir); !ok {
		return nil, preconditionError(fmt.Sprintf(
			"script library not found at %s: create it, or point --library or %s at it",
			dir, branding.EnvVar(config.KeyLibraryDir)))
	}
	cat, err := registry.Scan(a.fs, dir)
	if err != nil {
		return nil, fmt.Errorf("scanning script library: %w", err)
	}
	return cat, nil
}

// requireProject checks that the working directory is a Unity project and
// optionally initializes git in it.
func (a *app) requireProject(cmd *cobra.Command) (project.Layout, error) {
	if !project.IsUnityProject(a.fs, a.cwd) {
		return project.Layout{}, preconditionError(
			"this command must be run from a Unity project directory (expected 'Assets' and 'ProjectSettings' subdirectories)")
	}
	layout := project.NewLayout(a.cwd, a.settings.AssetsDir, a.settings.ManifestFile)

	if a.settings.InitGit {
		if err := a.initGit(cmd, layout.Root); err != nil {
			return project.Layout{}, err
		}
	}
	return layout, nil
}

// initGit offers to create a git repository. Git failures are reported but
// do not stop the command.
func (a *app) initGit(cmd *cobra.Command, dir string) error {
	if project.IsGitRepo(a.fs, dir) {
		a.log.Info().Msg("Git repository already exists.")
		return nil
	}

	ok, err := a.confirm(cmd, "No git repository found. Initialize one?")
	if err != nil || !ok {
		return err
	}

	out, err := project.InitGit(cmd.Context(), dir)
	if err != nil {
		a.log.Error().Err(err).Msg("failed to initialize git repository")
		fmt.Fprintln(cmd.ErrOrStderr(), warningStyle.Render("Please ensure Git is installed and in your PATH."))
		return nil
	}
	a.log.Debug().Str("output", out).Msg("git init")
	a.log.Info().Msg("Initialized a new git repository.")
	return nil
}

// prompter returns the invocation's single Prompter so buffered input is
// shared between questions.
func (a *app) prompter(cmd *cobra.Command) *prompt.Prompter {
	if a.prompts == nil {
		a.prompts = prompt.New(cmd.Context(), cmd.InOrStdin(), cmd.OutOrStdout())
	}
	return a.prompts
}

func (a *app) confirm(cmd *cobra.Command, question string) (bool, error) {
	if a.settings.AssumeYes {
		return true, nil
	}
	return a.prompter(cmd).Confirm(question)
}

// isTerminal reports whether w is a terminal, so log output may be colored.
func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && (isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd()))
}
