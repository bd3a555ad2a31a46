// Package gitdesc derives a version from the most recent annotated git tag
// reachable from the current history, plus the number of commits made
// since that tag.
package gitdesc

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/datawire/dlib/dexec"
	"github.com/datawire/dlib/dlog"

	"github.com/timepieces141/dynamic-versioning/pkg/semver"
)

// The substring of `git describe` stderr that identifies the "repository
// has no annotated tags" condition, as opposed to any other failure.
const noTagsSentinel = "No names found, cannot describe anything"

// ErrNoAnnotatedTags means the repository has no annotated tags at all.
// Unlike other source-control failures it is recoverable: Current treats
// history as starting at 0.0.0.
var ErrNoAnnotatedTags = errors.New("no annotated tags found")

// A SourceControlError is a git invocation that failed for a reason other
// than the repository having no annotated tags.  It is fatal to the
// resolution that triggered it, unless the caller configured a fallback
// version.
type SourceControlError struct {
	Op  string
	Err error
}

func (e *SourceControlError) Error() string {
	return fmt.Sprintf("git %s: %v", e.Op, e.Err)
}

func (e *SourceControlError) Unwrap() error { return e.Err }

// A ZeroTagError is a tag that literally evaluates to version 0.0.0.  Such
// a tag can never identify a real release; it is a user error that stops
// version resolution outright.
type ZeroTagError struct {
	Description string
	Commits     int
}

func (e *ZeroTagError) Error() string {
	return fmt.Sprintf("the most recent tag %q evaluates to 0.0.0 (with %d additional commits): "+
		"tags must follow [v]major.minor[.patch] and must not be 0.0.0", e.Description, e.Commits)
}

// A Tagger reports annotated-tag information for a working tree.  Git is
// the production implementation; tests substitute fakes.
type Tagger interface {
	// Fetch syncs tags from the remote, so that the describe output is
	// not stale.
	Fetch(ctx context.Context) error

	// Describe returns `git describe --long` output: the most recent
	// annotated tag, the number of commits since it, and an abbreviated
	// commit hash.  It returns an error wrapping ErrNoAnnotatedTags when
	// the repository has no annotated tags to describe.
	Describe(ctx context.Context) (string, error)
}

// Git runs the real git tool in the working tree at Dir (or the current
// directory, if Dir is empty).
type Git struct {
	Dir string
}

var _ Tagger = Git{}

func (git Git) command(ctx context.Context, args ...string) *dexec.Cmd {
	cmd := dexec.CommandContext(ctx, "git", args...)
	cmd.Dir = git.Dir
	return cmd
}

func (git Git) Fetch(ctx context.Context) error {
	if _, err := git.command(ctx, "fetch").Output(); err != nil {
		return &SourceControlError{Op: "fetch", Err: withStderr(err)}
	}
	return nil
}

func (git Git) Describe(ctx context.Context) (string, error) {
	out, err := git.command(ctx, "describe", "--long").Output()
	if err != nil {
		var exitErr *dexec.ExitError
		if errors.As(err, &exitErr) && strings.Contains(string(exitErr.Stderr), noTagsSentinel) {
			return "", fmt.Errorf("git describe --long: %w", ErrNoAnnotatedTags)
		}
		return "", &SourceControlError{Op: "describe --long", Err: withStderr(err)}
	}
	return strings.TrimSpace(string(out)), nil
}

// withStderr folds a failed command's captured stderr into the error
// message, so that the diagnostic reads the same as running the command by
// hand.
func withStderr(err error) error {
	var exitErr *dexec.ExitError
	if errors.As(err, &exitErr) && len(exitErr.Stderr) > 0 {
		stderr := strings.TrimSpace(string(exitErr.Stderr))
		return fmt.Errorf("%w:\n > %s", err,
			strings.Join(strings.Split(stderr, "\n"), "\n > "))
	}
	return err
}

var describeRE = regexp.MustCompile(`^[vV]?(\d+)\.(\d+)(?:\.(\d+))?-(\d+)-g[0-9a-f]+$`)

// ParseDescription parses `git describe --long` output of the form
// "TAG-COMMITS-gHASH" into a version with Commits populated.  The tag may
// carry a leading "v" or "V" and may omit the patch part, which defaults
// to 0.
func ParseDescription(desc string) (semver.Version, error) {
	match := describeRE.FindStringSubmatch(desc)
	if match == nil {
		return semver.Version{}, &semver.FormatError{
			Input:   desc,
			Pattern: "[v]major.minor[.patch]-commits-ghash",
		}
	}
	var ver semver.Version
	for i, dst := range []*int{&ver.Major, &ver.Minor, &ver.Patch, &ver.Commits} {
		if match[i+1] == "" {
			continue
		}
		n, err := strconv.Atoi(match[i+1])
		if err != nil {
			return semver.Version{}, &semver.FormatError{
				Input:   desc,
				Pattern: "[v]major.minor[.patch]-commits-ghash",
			}
		}
		*dst = n
	}
	if ver.IsZero() {
		return semver.Version{}, &ZeroTagError{Description: desc, Commits: ver.Commits}
	}
	return ver, nil
}

// Current determines the version from the most recent annotated tag.
//
// When the repository has no annotated tags at all, the returned version
// is 0.0.0 with zero commits and a nil error.  This is the one sanctioned
// use of an all-zero version: it stands in for "no history yet" so that
// callers can bump it into a first release, and is distinct from the rule
// that user-supplied versions must not be 0.0.0.
//
// When git fails for any other reason and fallback is non-empty, fallback
// is parsed (patch part optional) and returned with zero commits;
// otherwise the failure propagates.  An unparsable or all-zero tag is
// always fatal, fallback or not.
func Current(ctx context.Context, tagger Tagger, fallback string) (semver.Version, error) {
	ver, err := fromGit(ctx, tagger)
	switch {
	case err == nil:
		return ver, nil
	case errors.Is(err, ErrNoAnnotatedTags):
		dlog.Infof(ctx, "no annotated git tags could be found; version 0.0.0 will be bumped accordingly")
		return semver.Version{}, nil
	default:
		var scErr *SourceControlError
		if errors.As(err, &scErr) && fallback != "" {
			dlog.Warnf(ctx, "encountered an error finding the most recent annotated git tag: %v", err)
			dlog.Infof(ctx, "a fallback current version is configured; version %q will be bumped accordingly",
				fallback)
			return semver.ParseTolerant(fallback)
		}
		return semver.Version{}, err
	}
}

func fromGit(ctx context.Context, tagger Tagger) (semver.Version, error) {
	if err := tagger.Fetch(ctx); err != nil {
		return semver.Version{}, err
	}
	dlog.Infof(ctx, "determining the current version through `git describe`")
	desc, err := tagger.Describe(ctx)
	if err != nil {
		return semver.Version{}, err
	}
	ver, err := ParseDescription(desc)
	if err != nil {
		return semver.Version{}, err
	}
	dlog.Infof(ctx, "current version: %s (with %d additional commits)", ver, ver.Commits)
	return ver, nil
}
