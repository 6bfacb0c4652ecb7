package descriptor

import (
	"bufio"
	"errors"
	"io/fs"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"
	"github.com/spf13/afero"
)

// Parser reads descriptors from script package directories.
type Parser struct {
	fs  afero.Fs
	log zerolog.Logger
}

// NewParser returns a Parser reading through fsys. Skipped entries are
// reported on log at warn level.
func NewParser(fsys afero.Fs, log zerolog.Logger) *Parser {
	return &Parser{fs: fsys, log: log}
}

// sectionRule pairs a section with the validator for its entries.
type sectionRule struct {
	valid func(string) bool
	label string
}

var sectionRules = map[string]sectionRule{
	SectionScripts:  {valid: ValidScriptName, label: "script dependency name"},
	SectionPackages: {valid: ValidPackageID, label: "package ID"},
}

// Parse reads dependencies.txt from pkgDir. A package without the file has
// no dependencies. Invalid or duplicate entries are skipped with a warning;
// a repeated section header or a read failure returns *MalformedError.
func (p *Parser) Parse(pkgDir string) (*Descriptor, error) {
	path := filepath.Join(pkgDir, FileName)

	info, err := p.fs.Stat(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return &Descriptor{}, nil
		}
		return nil, &MalformedError{Path: path, Msg: "cannot stat file", Err: err}
	}
	if info.IsDir() {
		return &Descriptor{}, nil
	}

	f, err := p.fs.Open(path)
	if err != nil {
		return nil, &MalformedError{Path: path, Msg: "cannot open file", Err: err}
	}
	defer f.Close()

	d := &Descriptor{}
	seenSections := make(map[string]bool)
	var (
		current string
		seen    map[string]bool
	)

	scanner := bufio.NewScanner(f)
	lineNum := 0
	for scanner.Scan() {
		lineNum++
		line := scanner.Text()
		if lineNum == 1 {
			line = strings.TrimPrefix(line, "\ufeff")
		}
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		if section, ok := sectionHeader(line); ok {
			if seenSections[section] {
				return nil, &MalformedError{
					Path: path,
					Line: lineNum,
					Msg:  "duplicate '" + section + ":' section",
				}
			}
			seenSections[section] = true
			current = section
			seen = make(map[string]bool)
			continue
		}

		if current == "" || !strings.HasPrefix(line, "-") {
			continue
		}

		name := strings.TrimSpace(line[1:])
		rule := sectionRules[current]
		switch {
		case !rule.valid(name):
			p.log.Warn().
				Str("file", path).
				Int("line", lineNum).
				Str("name", name).
				Msgf("invalid %s, skipping", rule.label)
		case seen[name]:
			p.log.Warn().
				Str("file", path).
				Int("line", lineNum).
				Str("name", name).
				Msgf("duplicate %s dependency, skipping", current)
		default:
			seen[name] = true
			if current == SectionScripts {
				d.Scripts = append(d.Scripts, name)
			} else {
				d.Packages = append(d.Packages, name)
			}
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, &MalformedError{Path: path, Msg: "cannot read file", Err: err}
	}

	return d, nil
}

// sectionHeader recognizes "scripts:" and "packages:" in any letter case.
func sectionHeader(line string) (string, bool) {
	lower := strings.ToLower(line)
	switch lower {
	case SectionScripts + ":", SectionPackages + ":":
		return strings.TrimSuffix(lower, ":"), true
	}
	return "", false
}
