package gitdesc_test

import (
	"context"
	"errors"
	"testing"

	"github.com/datawire/dlib/dlog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/timepieces141/dynamic-versioning/pkg/gitdesc"
	"github.com/timepieces141/dynamic-versioning/pkg/semver"
	"github.com/timepieces141/dynamic-versioning/pkg/testutil"
)

// fakeTagger scripts the collaborator's answers so that the orchestration
// can be tested without a git repository.
type fakeTagger struct {
	FetchErr    error
	Description string
	DescribeErr error

	FetchCalls    int
	DescribeCalls int
}

func (f *fakeTagger) Fetch(_ context.Context) error {
	f.FetchCalls++
	return f.FetchErr
}

func (f *fakeTagger) Describe(_ context.Context) (string, error) {
	f.DescribeCalls++
	return f.Description, f.DescribeErr
}

func TestParseDescription(t *testing.T) {
	t.Parallel()
	type testcase struct {
		Input    string
		Expected semver.Version
	}
	testcases := map[string]testcase{
		"major-minor":         {Input: "0.1-12-gdeadbee", Expected: semver.Version{Minor: 1, Commits: 12}},
		"major-minor-patch":   {Input: "0.0.1-12-gdeadbee", Expected: semver.Version{Patch: 1, Commits: 12}},
		"v-major-minor":       {Input: "v0.1-12-gdeadbee", Expected: semver.Version{Minor: 1, Commits: 12}},
		"v-major-minor-patch": {Input: "v0.0.1-12-gdeadbee", Expected: semver.Version{Patch: 1, Commits: 12}},
		"V-major-minor":       {Input: "V0.1-12-gdeadbee", Expected: semver.Version{Minor: 1, Commits: 12}},
		"V-major-minor-patch": {Input: "V0.0.1-12-gdeadbee", Expected: semver.Version{Patch: 1, Commits: 12}},
		"full":                {Input: "1.2.3-5-gabcdef1", Expected: semver.Version{Major: 1, Minor: 2, Patch: 3, Commits: 5}},
		"zero-commits":        {Input: "2.0.0-0-g0123abc", Expected: semver.Version{Major: 2}},
	}
	for tcName, tcData := range testcases {
		tcData := tcData
		t.Run(tcName, func(t *testing.T) {
			t.Parallel()
			ver, err := gitdesc.ParseDescription(tcData.Input)
			require.NoError(t, err)
			testutil.AssertEqual(t, tcData.Expected, ver)
		})
	}
}

func TestParseDescriptionMalformed(t *testing.T) {
	t.Parallel()
	for _, input := range []string{
		"lskdjfoisfdojl",
		"1.2.3",
		"1.2.3-5",
		"1.2.3-5-gZZZZ",
		"1-5-gabcdef1",
		"",
	} {
		_, err := gitdesc.ParseDescription(input)
		var formatErr *semver.FormatError
		require.Error(t, err, input)
		assert.ErrorAs(t, err, &formatErr, input)
	}
}

func TestParseDescriptionZeroTag(t *testing.T) {
	t.Parallel()
	for _, input := range []string{
		"0.0.0-12-gdeadbee",
		"0.0-12-gdeadbee",
	} {
		_, err := gitdesc.ParseDescription(input)
		var zeroErr *gitdesc.ZeroTagError
		require.Error(t, err, input)
		require.ErrorAs(t, err, &zeroErr, input)
		assert.Equal(t, 12, zeroErr.Commits)
	}
}

func TestCurrent(t *testing.T) {
	t.Parallel()
	ctx := dlog.NewTestContext(t, false)

	tagger := &fakeTagger{Description: "v1.2.3-20-gabc1234"}
	ver, err := gitdesc.Current(ctx, tagger, "")
	require.NoError(t, err)
	assert.Equal(t, semver.Version{Major: 1, Minor: 2, Patch: 3, Commits: 20}, ver)
	assert.Equal(t, 1, tagger.FetchCalls)
	assert.Equal(t, 1, tagger.DescribeCalls)
}

func TestCurrentNoTags(t *testing.T) {
	t.Parallel()
	ctx := dlog.NewTestContext(t, false)

	tagger := &fakeTagger{DescribeErr: gitdesc.ErrNoAnnotatedTags}
	ver, err := gitdesc.Current(ctx, tagger, "")
	require.NoError(t, err)
	assert.True(t, ver.IsZero())
	assert.Zero(t, ver.Commits)
}

func TestCurrentFetchFails(t *testing.T) {
	t.Parallel()
	ctx := dlog.NewTestContext(t, false)

	scErr := &gitdesc.SourceControlError{Op: "fetch", Err: errors.New("network is unreachable")}

	// Fatal without a fallback.
	tagger := &fakeTagger{FetchErr: scErr}
	_, err := gitdesc.Current(ctx, tagger, "")
	require.Error(t, err)
	var gotErr *gitdesc.SourceControlError
	assert.ErrorAs(t, err, &gotErr)
	assert.Zero(t, tagger.DescribeCalls)

	// Recoverable with one; the fallback may omit the patch part.
	tagger = &fakeTagger{FetchErr: scErr}
	ver, err := gitdesc.Current(ctx, tagger, "1.2")
	require.NoError(t, err)
	assert.Equal(t, semver.Version{Major: 1, Minor: 2}, ver)
}

func TestCurrentDescribeFails(t *testing.T) {
	t.Parallel()
	ctx := dlog.NewTestContext(t, false)

	scErr := &gitdesc.SourceControlError{Op: "describe --long", Err: errors.New("not a git repository")}

	tagger := &fakeTagger{DescribeErr: scErr}
	_, err := gitdesc.Current(ctx, tagger, "")
	require.Error(t, err)

	tagger = &fakeTagger{DescribeErr: scErr}
	ver, err := gitdesc.Current(ctx, tagger, "2.5.0")
	require.NoError(t, err)
	assert.Equal(t, semver.Version{Major: 2, Minor: 5}, ver)
}

func TestCurrentZeroTagIsFatal(t *testing.T) {
	t.Parallel()
	ctx := dlog.NewTestContext(t, false)

	// A 0.0.0 tag is a user error, not a git failure; the fallback must
	// not mask it.
	tagger := &fakeTagger{Description: "0.0.0-12-gdeadbee"}
	_, err := gitdesc.Current(ctx, tagger, "1.2.3")
	require.Error(t, err)
	var zeroErr *gitdesc.ZeroTagError
	assert.ErrorAs(t, err, &zeroErr)
}

func TestCurrentBadFallback(t *testing.T) {
	t.Parallel()
	ctx := dlog.NewTestContext(t, false)

	scErr := &gitdesc.SourceControlError{Op: "fetch", Err: errors.New("boom")}
	tagger := &fakeTagger{FetchErr: scErr}
	_, err := gitdesc.Current(ctx, tagger, "bogus")
	require.Error(t, err)
	var formatErr *semver.FormatError
	assert.ErrorAs(t, err, &formatErr)
}
