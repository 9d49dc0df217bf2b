package entities

// RecipeFormat identifies which recipe syntax a file uses.
type RecipeFormat string

const (
	// RecipeFormatText is the section-delimited conanfile.txt format.
	RecipeFormatText RecipeFormat = "txt"
	// RecipeFormatPython is the programmatic conanfile.py format.
	RecipeFormatPython RecipeFormat = "py"
)

const (
	RecipeFileText   = "conanfile.txt"
	RecipeFilePython = "conanfile.py"
)

// RecipeFileNames lists the recognized recipe file names in lookup precedence.
func RecipeFileNames() []string {
	return []string{RecipeFilePython, RecipeFileText}
}

// FormatForFile returns the recipe format for a bare file name.
func FormatForFile(name string) (RecipeFormat, bool) {
	switch name {
	case RecipeFileText:
		return RecipeFormatText, true
	case RecipeFilePython:
		return RecipeFormatPython, true
	default:
		return "", false
	}
}

// Recipe is a located recipe file.
type Recipe struct {
	Path   string
	Format RecipeFormat
}
