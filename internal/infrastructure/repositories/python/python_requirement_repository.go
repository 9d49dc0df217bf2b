package python

import (
	"bytes"
	"context"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	logger "github.com/sirupsen/logrus"

	"github.com/rios0rios0/conanupdate/internal/domain/entities"
	"github.com/rios0rios0/conanupdate/internal/domain/repositories"
)

//go:embed inspect_recipe.py
var inspectScript string

// PythonRequirementRepository evaluates conanfile.py recipes in a sandboxed
// Python interpreter and collects the requirements they declare.
type PythonRequirementRepository struct{}

// NewPythonRequirementRepository creates a new conanfile.py extractor.
func NewPythonRequirementRepository() repositories.RequirementRepository {
	return &PythonRequirementRepository{}
}

func (r *PythonRequirementRepository) Format() entities.RecipeFormat {
	return entities.RecipeFormatPython
}

// capturedRequirement is one requirement reported by the inspection script.
type capturedRequirement struct {
	Kind      string `json:"kind"`
	Reference string `json:"reference"`
}

// stringLiteral is a plain string literal of the recipe whose value is one of
// the captured references. Offset is the byte offset of its text.
type stringLiteral struct {
	Value  string `json:"value"`
	Offset int    `json:"offset"`
}

type inspection struct {
	Requirements []capturedRequirement `json:"requirements"`
	Literals     []stringLiteral       `json:"literals"`
}

// Extract runs the recipe through the inspection script and maps every
// captured reference back onto the recipe text.
func (r *PythonRequirementRepository) Extract(
	ctx context.Context,
	recipe entities.Recipe,
	settings *entities.Settings,
) ([]entities.Requirement, error) {
	source, err := os.ReadFile(recipe.Path)
	if err != nil {
		return nil, &entities.ExtractionError{Path: recipe.Path, Cause: err}
	}

	result, err := evaluate(ctx, recipe.Path, settings)
	if err != nil {
		return nil, &entities.ExtractionError{Path: recipe.Path, Cause: err}
	}
	logger.Debugf("[python] %s declared %d requirement(s)", recipe.Path, len(result.Requirements))

	return LocateRequirements(string(source), result.Requirements, result.Literals), nil
}

func evaluate(ctx context.Context, path string, settings *entities.Settings) (*inspection, error) {
	pythonBinary, err := findPythonBinary(settings.PythonBinary)
	if err != nil {
		return nil, err
	}
	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}

	tmpDir, err := os.MkdirTemp("", "conanupdate-python-*")
	if err != nil {
		return nil, fmt.Errorf("failed to create temp dir: %w", err)
	}
	defer os.RemoveAll(tmpDir)

	evalCtx, cancel := context.WithTimeout(ctx, settings.QueryTimeout())
	defer cancel()

	var stdout, stderr bytes.Buffer
	cmd := exec.CommandContext(evalCtx, pythonBinary, "-I", "-B", "-c", inspectScript, absPath)
	cmd.Dir = tmpDir
	cmd.Env = buildEnv(tmpDir)
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if runErr := cmd.Run(); runErr != nil {
		if errors.Is(evalCtx.Err(), context.DeadlineExceeded) {
			return nil, fmt.Errorf("recipe evaluation timed out after %s", settings.QueryTimeout())
		}
		return nil, fmt.Errorf("recipe evaluation failed: %w\n%s", runErr, strings.TrimSpace(stderr.String()))
	}

	if output := strings.TrimSpace(stderr.String()); output != "" {
		logger.Debugf("[python] Recipe output:\n%s", output)
	}

	var result inspection
	if decodeErr := json.Unmarshal(stdout.Bytes(), &result); decodeErr != nil {
		return nil, fmt.Errorf("unexpected inspection output: %w", decodeErr)
	}
	return &result, nil
}

// buildEnv gives the interpreter an empty environment apart from a locale
// and a home directory it is not allowed to write to anyway.
func buildEnv(tmpDir string) []string {
	return []string{
		"LANG=C.UTF-8",
		"LC_ALL=C.UTF-8",
		"HOME=" + tmpDir,
	}
}

// findPythonBinary resolves the configured interpreter, falling back to
// "python" when the default "python3" is not installed.
func findPythonBinary(preferred string) (string, error) {
	candidates := []string{preferred}
	if preferred == entities.DefaultPythonBinary {
		candidates = append(candidates, "python")
	}
	for _, name := range candidates {
		if path, err := exec.LookPath(name); err == nil {
			return path, nil
		}
	}
	return "", fmt.Errorf("python interpreter %q not found in PATH", preferred)
}
