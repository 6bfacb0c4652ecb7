package descriptor

// FileName is the metadata file read from the root of every script package.
const FileName = "dependencies.txt"

// Section names as they appear (case-insensitively) in the descriptor file.
const (
	SectionScripts  = "scripts"
	SectionPackages = "packages"
)

// Descriptor holds the dependencies declared by one script package. Both
// lists keep file order and contain no duplicates.
type Descriptor struct {
	Scripts  []string // sibling script package names
	Packages []string // external package identifiers (e.g., com.unity.inputsystem)
}

// IsEmpty reports whether the descriptor declares nothing.
func (d *Descriptor) IsEmpty() bool {
	return d == nil || (len(d.Scripts) == 0 && len(d.Packages) == 0)
}
