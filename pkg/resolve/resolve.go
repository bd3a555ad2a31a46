// Package resolve implements the cascading policy that reconciles the
// several version signals a build may carry into exactly one version
// string.
package resolve

import (
	"context"
	"errors"
	"fmt"

	"github.com/datawire/dlib/dlog"

	"github.com/timepieces141/dynamic-versioning/pkg/gitdesc"
	"github.com/timepieces141/dynamic-versioning/pkg/semver"
)

// Inputs are the optional override signals for a single resolution,
// gathered by the caller from whatever combination of config file,
// environment, and flags it owns.
type Inputs struct {
	// NewVersion is an explicit version override.  When set it wins over
	// everything else and is returned verbatim, as long as it is a real
	// (non-0.0.0) version.
	NewVersion string

	// Bump names the version part to increment for a release build.
	Bump *semver.Part

	// Dev requests a development version string instead of a release.
	// When both Bump and Dev are set, Dev wins and Bump only selects
	// which part to increment.
	Dev bool

	// StaticVersion is the version already declared in the project's
	// packaging metadata.  In the bump path it is weighed against the
	// tag-bumped version and the higher of the two wins, which lets a
	// maintainer force a larger jump by editing the metadata directly.
	StaticVersion string

	// FallbackCurrent is handed to the tag lookup, for use when git
	// fails outright.
	FallbackCurrent string

	// Default determines the version when none of NewVersion, Bump, and
	// Dev are set and dynamic versioning is therefore not in play.
	Default func(ctx context.Context) (string, error)
}

// Resolve applies the precedence policy and returns the single resulting
// version string:
//
//  1. No overrides at all: dynamic versioning is disabled, and the
//     Default version is returned unchanged.  Git is not consulted.
//  2. NewVersion: returned verbatim, short-circuiting everything else.
//  3. Bump (without Dev): the tag-derived version is bumped, and the
//     higher of it and StaticVersion is returned, ties favoring the
//     tag-bumped value.
//  4. Dev: the tag-derived version is bumped by Bump (defaulting to
//     major) and rendered as a development version.
//
// Any fatal error from the tag lookup propagates unchanged; no partial
// version is ever returned alongside an error.
func Resolve(ctx context.Context, tagger gitdesc.Tagger, in Inputs) (string, error) {
	if in.NewVersion == "" && in.Bump == nil && !in.Dev {
		dlog.Infof(ctx, "dynamic versioning is disabled")
		if in.Default == nil {
			return "", errors.New("no version overrides are set and no default version is available")
		}
		return in.Default(ctx)
	}

	if in.NewVersion != "" {
		if !semver.IsValid(in.NewVersion) {
			if _, err := semver.Parse(in.NewVersion); err != nil {
				return "", fmt.Errorf("new version: %w", err)
			}
			return "", fmt.Errorf("new version: %q can never identify a real release", in.NewVersion)
		}
		dlog.Infof(ctx, "dynamic versioning set to the new version %q", in.NewVersion)
		return in.NewVersion, nil
	}

	tagVer, err := gitdesc.Current(ctx, tagger, in.FallbackCurrent)
	if err != nil {
		return "", err
	}

	if in.Bump != nil && !in.Dev {
		if in.StaticVersion == "" {
			return "", errors.New("bumping requires a statically declared version to weigh the bumped tag version against")
		}
		staticVer, err := semver.Parse(in.StaticVersion)
		if err != nil {
			return "", fmt.Errorf("statically declared version: %w", err)
		}

		tagVer.Bump(*in.Bump)

		// Ties favor the tag-bumped value.
		if staticVer.Cmp(tagVer) > 0 {
			dlog.Infof(ctx, "statically declared version %q is greater than the bumped version %q of the "+
				"last git tag; selecting %q", staticVer, tagVer, staticVer)
			return staticVer.String(), nil
		}
		dlog.Infof(ctx, "git tag version %s portion bumped, resulting in new version %q", *in.Bump, tagVer)
		return tagVer.String(), nil
	}

	part := semver.Major
	if in.Bump != nil {
		part = *in.Bump
	}
	tagVer.Bump(part)
	dlog.Infof(ctx, "git tag version %s portion bumped, resulting in development version %q",
		part, tagVer.DevString())
	return tagVer.DevString(), nil
}
