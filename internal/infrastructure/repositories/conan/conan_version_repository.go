package conan

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"regexp"
	"strconv"
	"strings"
	"sync"

	logger "github.com/sirupsen/logrus"

	"github.com/rios0rios0/conanupdate/internal/domain/entities"
	"github.com/rios0rios0/conanupdate/internal/domain/repositories"
)

const defaultMajorVersion = 2

var versionOutputPattern = regexp.MustCompile(`(?i)conan version (\d+)\.`)

// commandRunner executes a binary and returns its stdout and stderr.
type commandRunner func(ctx context.Context, binary string, args ...string) ([]byte, []byte, error)

// ConanVersionRepository lists published versions with the `conan search`
// command of the locally installed Conan client.
type ConanVersionRepository struct {
	run commandRunner

	mu    sync.Mutex
	major int // zero until detected
}

// NewConanVersionRepository creates a version repository backed by the conan CLI.
func NewConanVersionRepository() repositories.VersionRepository {
	return &ConanVersionRepository{run: runCommand}
}

// Prepare detects the major version of the client, which decides the search
// syntax for the whole run. On failure Conan 2 syntax is used and the cause is
// returned.
func (r *ConanVersionRepository) Prepare(ctx context.Context, settings *entities.Settings) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.detectLocked(ctx, settings.ConanBinary)
}

// SearchVersions runs one search for name and keeps the hits of that exact
// package. A non-zero exit status is an error carrying the command's stderr.
func (r *ConanVersionRepository) SearchVersions(
	ctx context.Context,
	name string,
	settings *entities.Settings,
) ([]entities.PublishedReference, error) {
	major := r.majorVersion(ctx, settings.ConanBinary)
	args := searchArgs(major, name, settings.Remote)
	logger.Debugf("[conan] Running %s %s", settings.ConanBinary, strings.Join(args, " "))

	stdout, stderr, err := r.run(ctx, settings.ConanBinary, args...)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		message := strings.TrimSpace(string(stderr))
		if message == "" {
			message = strings.TrimSpace(string(stdout))
		}
		return nil, fmt.Errorf("%w: %s", err, message)
	}

	refs := ParseSearchOutput(string(stdout), name)
	logger.Debugf("[conan] Found %d published reference(s) of %s", len(refs), name)
	return refs, nil
}

// majorVersion returns the detected version, detecting it under ctx when
// Prepare was never called.
func (r *ConanVersionRepository) majorVersion(ctx context.Context, binary string) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.major == 0 {
		if err := r.detectLocked(ctx, binary); err != nil {
			logger.Warnf("[conan] %v", err)
		}
	}
	return r.major
}

func (r *ConanVersionRepository) detectLocked(ctx context.Context, binary string) error {
	r.major = defaultMajorVersion
	stdout, _, err := r.run(ctx, binary, "--version")
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			err = ctxErr
		}
		return fmt.Errorf("failed to detect the Conan version (assuming %d.x): %w", defaultMajorVersion, err)
	}
	match := versionOutputPattern.FindStringSubmatch(string(stdout))
	if match == nil {
		return fmt.Errorf("unrecognized Conan version output %q (assuming %d.x)",
			strings.TrimSpace(string(stdout)), defaultMajorVersion)
	}
	if major, convErr := strconv.Atoi(match[1]); convErr == nil && major > 0 {
		r.major = major
	}
	logger.Debugf("[conan] Detected Conan %d.x", r.major)
	return nil
}

func searchArgs(major int, name, remote string) []string {
	pattern := name + "/*"
	if major < 2 {
		if remote == "" {
			remote = "all"
		}
		return []string{"search", pattern, "--remote", remote, "--raw"}
	}
	args := []string{"search", pattern}
	if remote != "" {
		args = append(args, "--remote", remote)
	}
	return args
}

// ParseSearchOutput extracts the references of package name from the output
// of `conan search`, in output order and without duplicates.
func ParseSearchOutput(output, name string) []entities.PublishedReference {
	seen := make(map[entities.PublishedReference]struct{})
	var refs []entities.PublishedReference
	for _, match := range entities.SearchHitPattern.FindAllStringSubmatch(output, -1) {
		if match[1] != name {
			continue
		}
		ref := entities.PublishedReference{Version: match[2], User: match[3], Channel: match[4]}
		if _, ok := seen[ref]; ok {
			continue
		}
		seen[ref] = struct{}{}
		refs = append(refs, ref)
	}
	return refs
}

func runCommand(ctx context.Context, binary string, args ...string) ([]byte, []byte, error) {
	var stdout, stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, binary, args...)
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	err := cmd.Run()
	return stdout.Bytes(), stderr.Bytes(), err
}
