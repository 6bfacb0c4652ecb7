package installer

import (
	"context"
	"fmt"
	"io"
	"path/filepath"

	"github.com/rs/zerolog"
	"github.com/spf13/afero"

	"github.com/usl-labs/usl/internal/descriptor"
	"github.com/usl-labs/usl/internal/manifest"
	"github.com/usl-labs/usl/internal/platform"
	"github.com/usl-labs/usl/internal/registry"
	"github.com/usl-labs/usl/internal/transaction"
)

// BackupSuffix ends the name of the sibling file that holds a destination's
// previous content while an install is in progress.
const BackupSuffix = ".usl_backup"

// ConfirmFunc asks the user a yes/no question.
type ConfirmFunc func(question string) (bool, error)

// Options configures an Installer.
type Options struct {
	FS  afero.Fs
	Log zerolog.Logger
	Out io.Writer // install plan output

	// Parser reads package descriptors. Defaults to a descriptor.Parser on FS.
	Parser registry.DescriptorParser

	TargetDir    string // usually <project>/Assets
	ManifestPath string // usually <project>/Packages/manifest.json

	// AssumeYes answers every confirmation and overwrite prompt with yes.
	AssumeYes bool
	Confirm   ConfirmFunc
}

// Result describes what an install did.
type Result struct {
	Packages    []string // resolved script packages
	Identifiers []string // resolved external identifiers
	AddedIDs    []string // identifiers newly written to the manifest
	Copied      []string // destination files written
	Skipped     []string // existing destinations the user chose to keep

	Cancelled   bool // user declined the plan
	NothingToDo bool // resolution produced nothing to install
}

// Installer orchestrates resolution, confirmation and the transactional
// copy of script packages.
type Installer struct {
	opts     Options
	resolver *registry.Resolver
}

// New returns an Installer. A nil Confirm declines every prompt unless
// AssumeYes is set.
func New(opts Options) *Installer {
	if opts.FS == nil {
		opts.FS = afero.NewOsFs()
	}
	if opts.Out == nil {
		opts.Out = io.Discard
	}
	if opts.Parser == nil {
		opts.Parser = descriptor.NewParser(opts.FS, opts.Log)
	}
	if opts.Confirm == nil {
		opts.Confirm = func(string) (bool, error) { return false, nil }
	}
	return &Installer{
		opts:     opts,
		resolver: registry.NewResolver(opts.Parser, opts.Log),
	}
}

// Install resolves roots against catalog and installs the result.
//
// Resolution errors are returned before anything is shown or changed.
// Declining the plan and an empty resolution are successful outcomes
// reported through Result. Any error after the transaction opens rolls the
// project back and is returned wrapped.
func (in *Installer) Install(ctx context.Context, roots []string, catalog *registry.Catalog) (*Result, error) {
	log := in.opts.Log

	res, err := in.resolver.Resolve(roots, catalog)
	if err != nil {
		return nil, err
	}

	result := &Result{Identifiers: res.Identifiers}
	for _, p := range res.Packages {
		result.Packages = append(result.Packages, p.Name)
	}

	if res.IsEmpty() {
		log.Info().Msg("No scripts or packages to add after dependency resolution.")
		result.NothingToDo = true
		return result, nil
	}

	registry.PrintPlan(in.opts.Out, registry.BuildInstallPlan(res))

	ok, err := in.confirm("Proceed with installation?")
	if err != nil {
		return nil, err
	}
	if !ok {
		log.Info().Msg("Installation cancelled by user.")
		result.Cancelled = true
		return result, nil
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	log.Info().Msg("Starting installation...")
	if err := in.run(ctx, res, result); err != nil {
		return nil, fmt.Errorf("installation rolled back: %w", err)
	}
	return result, nil
}

// run performs the mutating part of an install inside a transaction.
func (in *Installer) run(ctx context.Context, res *registry.Resolution, result *Result) error {
	tx, err := transaction.Begin(in.opts.FS, in.opts.ManifestPath, in.opts.Log)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if err := in.updateManifest(tx, res.Identifiers, result); err != nil {
		return err
	}

	for _, pkg := range res.Packages {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := in.copyPackage(ctx, tx, pkg, result); err != nil {
			return err
		}
	}

	return tx.Commit()
}

// updateManifest adds ids to the manifest and writes it once if anything
// was added.
func (in *Installer) updateManifest(tx *transaction.Transaction, ids []string, result *Result) error {
	log := in.opts.Log
	path := in.opts.ManifestPath

	m, err := manifest.LoadOrNew(in.opts.FS, path)
	if err != nil {
		return err
	}

	for _, id := range ids {
		if !m.Add(id) {
			log.Info().Str("id", id).Msg("package already present in manifest")
			continue
		}
		log.Info().Str("id", id).Msg("added package to manifest")
		result.AddedIDs = append(result.AddedIDs, id)
	}

	if len(result.AddedIDs) == 0 {
		return nil
	}

	if err := in.ensureDir(tx, filepath.Dir(path)); err != nil {
		return err
	}
	if err := manifest.WriteAtomic(in.opts.FS, path, m); err != nil {
		return err
	}
	log.Info().Str("path", path).Msg("updated Unity package manifest")
	return nil
}

// copyPackage copies every file of pkg under the target directory.
func (in *Installer) copyPackage(ctx context.Context, tx *transaction.Transaction, pkg *registry.Package, result *Result) error {
	log := in.opts.Log.With().Str("pkg", pkg.Name).Logger()
	log.Info().Msg("installing script package")

	files, err := registry.PackageFiles(in.opts.FS, pkg)
	if err != nil {
		return fmt.Errorf("listing files of %s: %w", pkg.Name, err)
	}

	for _, rel := range files {
		if err := ctx.Err(); err != nil {
			return err
		}

		src := filepath.Join(pkg.Path, rel)
		dest := filepath.Join(in.opts.TargetDir, rel)

		copied, err := in.copyFile(tx, src, dest, rel)
		if err != nil {
			return err
		}
		if !copied {
			log.Info().Str("file", rel).Msg("skipped")
			result.Skipped = append(result.Skipped, dest)
			continue
		}
		log.Info().Str("file", rel).Msg("copied")
		result.Copied = append(result.Copied, dest)
	}

	log.Info().Msg("installed script package")
	return nil
}

// copyFile writes src to dest under the transaction. It returns false when
// the user declined to overwrite an existing dest.
func (in *Installer) copyFile(tx *transaction.Transaction, src, dest, rel string) (bool, error) {
	fsys := in.opts.FS

	if err := in.ensureDir(tx, filepath.Dir(dest)); err != nil {
		return false, err
	}

	exists, err := afero.Exists(fsys, dest)
	if err != nil {
		return false, fmt.Errorf("checking %s: %w", dest, err)
	}

	backup := ""
	// A destination this transaction already wrote has its original content
	// backed up; it is overwritten without asking again.
	if exists && !tx.Tracks(dest) {
		ok, err := in.confirm(fmt.Sprintf("'%s' already exists. Overwrite?", rel))
		if err != nil {
			return false, err
		}
		if !ok {
			return false, nil
		}

		if backup, err = platform.BackupFile(fsys, dest, BackupSuffix); err != nil {
			return false, fmt.Errorf("backing up %s: %w", dest, err)
		}
	}

	tx.TrackFileWrite(dest, backup)
	if err := platform.CopyFile(fsys, src, dest); err != nil {
		return false, err
	}
	return true, nil
}

// ensureDir creates dir, first recording every missing ancestor in the
// transaction, outermost first.
func (in *Installer) ensureDir(tx *transaction.Transaction, dir string) error {
	var missing []string
	for d := dir; ; {
		ok, err := afero.DirExists(in.opts.FS, d)
		if err != nil {
			return fmt.Errorf("checking %s: %w", d, err)
		}
		if ok {
			break
		}
		missing = append(missing, d)

		parent := filepath.Dir(d)
		if parent == d {
			break
		}
		d = parent
	}

	if len(missing) == 0 {
		return nil
	}
	for i := len(missing) - 1; i >= 0; i-- {
		tx.TrackDirCreated(missing[i])
	}
	if err := in.opts.FS.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating %s: %w", dir, err)
	}
	return nil
}

func (in *Installer) confirm(question string) (bool, error) {
	if in.opts.AssumeYes {
		return true, nil
	}
	return in.opts.Confirm(question)
}
