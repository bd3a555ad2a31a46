package semver_test

import (
	"fmt"
	"math/rand"
	"sort"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/timepieces141/dynamic-versioning/pkg/semver"
	"github.com/timepieces141/dynamic-versioning/pkg/testutil"
)

func TestParse(t *testing.T) {
	t.Parallel()
	type testcase struct {
		Input    string
		Expected semver.Version
		Err      bool
	}
	testcases := map[string]testcase{
		"basic":          {Input: "1.2.3", Expected: semver.Version{Major: 1, Minor: 2, Patch: 3}},
		"v-prefix":       {Input: "v1.2.3", Expected: semver.Version{Major: 1, Minor: 2, Patch: 3}},
		"V-prefix":       {Input: "V1.2.3", Expected: semver.Version{Major: 1, Minor: 2, Patch: 3}},
		"zeroes":         {Input: "0.0.0", Expected: semver.Version{}},
		"big":            {Input: "10.20.30", Expected: semver.Version{Major: 10, Minor: 20, Patch: 30}},
		"two-part":       {Input: "1.2", Err: true},
		"four-part":      {Input: "1.2.3.4", Err: true},
		"pre-release":    {Input: "1.2.3-rc1", Err: true},
		"build-metadata": {Input: "1.2.3+abc", Err: true},
		"empty":          {Input: "", Err: true},
		"garbage":        {Input: "lskdjfoisfdojl", Err: true},
		"negative":       {Input: "1.-2.3", Err: true},
		"spaces":         {Input: " 1.2.3", Err: true},
	}
	for tcName, tcData := range testcases {
		tcData := tcData
		t.Run(tcName, func(t *testing.T) {
			t.Parallel()
			ver, err := semver.Parse(tcData.Input)
			if tcData.Err {
				var formatErr *semver.FormatError
				require.Error(t, err)
				require.ErrorAs(t, err, &formatErr)
				assert.Equal(t, tcData.Input, formatErr.Input)
			} else {
				require.NoError(t, err)
				assert.Equal(t, tcData.Expected, ver)
			}
		})
	}
}

func TestParseTolerant(t *testing.T) {
	t.Parallel()
	type testcase struct {
		Input    string
		Expected semver.Version
		Err      bool
	}
	testcases := map[string]testcase{
		"three-part":  {Input: "1.2.3", Expected: semver.Version{Major: 1, Minor: 2, Patch: 3}},
		"two-part":    {Input: "1.2", Expected: semver.Version{Major: 1, Minor: 2}},
		"v-two-part":  {Input: "v0.1", Expected: semver.Version{Minor: 1}},
		"one-part":    {Input: "1", Err: true},
		"trailing":    {Input: "1.2.", Err: true},
		"pre-release": {Input: "1.2-rc1", Err: true},
	}
	for tcName, tcData := range testcases {
		tcData := tcData
		t.Run(tcName, func(t *testing.T) {
			t.Parallel()
			ver, err := semver.ParseTolerant(tcData.Input)
			if tcData.Err {
				require.Error(t, err)
			} else {
				require.NoError(t, err)
				assert.Equal(t, tcData.Expected, ver)
			}
		})
	}
}

func TestRoundTrip(t *testing.T) {
	t.Parallel()
	for _, parts := range [][3]int{
		{0, 0, 1},
		{0, 1, 0},
		{1, 0, 0},
		{1, 2, 3},
		{12, 34, 56},
	} {
		str := fmt.Sprintf("%d.%d.%d", parts[0], parts[1], parts[2])
		ver, err := semver.Parse(str)
		require.NoError(t, err)
		assert.Equal(t, str, ver.String())
	}
}

func TestRoundTripQuick(t *testing.T) {
	t.Parallel()
	testutil.QuickCheck(t,
		func(a, b, c uint8) bool {
			str := fmt.Sprintf("%d.%d.%d", a, b, c)
			ver, err := semver.Parse(str)
			return err == nil && ver.String() == str
		},
		testutil.QuickConfig{},
		[]interface{}{uint8(0), uint8(0), uint8(0)},
		[]interface{}{uint8(255), uint8(255), uint8(255)},
	)
}

func TestIsValid(t *testing.T) {
	t.Parallel()
	assert.False(t, semver.IsValid("0.0.0"))
	assert.False(t, semver.IsValid("v0.0.0"))
	assert.False(t, semver.IsValid("0.0"))
	assert.False(t, semver.IsValid("bogus"))
	assert.True(t, semver.IsValid("0.0.1"))
	assert.True(t, semver.IsValid("1.0.0"))
	assert.True(t, semver.IsValid("v2.5.0"))
}

func TestBump(t *testing.T) {
	t.Parallel()
	type testcase struct {
		Part     semver.Part
		Expected string
	}
	testcases := map[string]testcase{
		"major":  {Part: semver.Major, Expected: "2.0.0"},
		"minor":  {Part: semver.Minor, Expected: "1.3.0"},
		"patch":  {Part: semver.Patch, Expected: "1.2.4"},
		"update": {Part: semver.Update, Expected: "1.2.4"},
		"bogus":  {Part: semver.Part(99), Expected: "1.2.3"},
	}
	for tcName, tcData := range testcases {
		tcData := tcData
		t.Run(tcName, func(t *testing.T) {
			t.Parallel()
			ver := semver.Version{Major: 1, Minor: 2, Patch: 3}
			ver.Bump(tcData.Part)
			assert.Equal(t, tcData.Expected, ver.String())
		})
	}
}

func TestParsePart(t *testing.T) {
	t.Parallel()
	for input, expected := range map[string]semver.Part{
		"major":  semver.Major,
		"MAJOR":  semver.Major,
		"Minor":  semver.Minor,
		"patch":  semver.Patch,
		"PATCH":  semver.Patch,
		"update": semver.Update,
		"UPDATE": semver.Update,
	} {
		part, err := semver.ParsePart(input)
		require.NoError(t, err, input)
		assert.Equal(t, expected, part, input)
	}
	_, err := semver.ParsePart("foobar")
	assert.Error(t, err)
}

func TestSort(t *testing.T) {
	t.Parallel()
	sorted := []string{
		"0.0.1",
		"0.1.0",
		"0.1.1",
		"0.9.11",
		"1.0.0",
		"1.0.1",
		"1.1.0",
		"2.0.0",
		"2.0.1",
		"10.0.0",
	}

	parse := func(t *testing.T, strs []string) []semver.Version {
		t.Helper()
		vers := make([]semver.Version, 0, len(strs))
		for _, str := range strs {
			ver, err := semver.Parse(str)
			require.NoError(t, err)
			vers = append(vers, ver)
		}
		return vers
	}

	expected := parse(t, sorted)

	shuffled := append([]string(nil), sorted...)
	rand.New(rand.NewSource(time.Now().UnixNano())).Shuffle(len(shuffled), func(i, j int) {
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	})

	actual := parse(t, shuffled)
	sort.Slice(actual, func(i, j int) bool {
		return actual[i].Cmp(actual[j]) < 0
	})
	assert.Equal(t, expected, actual)
}

func TestCmpIgnoresCommits(t *testing.T) {
	t.Parallel()
	a := semver.Version{Major: 1, Minor: 2, Patch: 3, Commits: 20}
	b := semver.Version{Major: 1, Minor: 2, Patch: 3}
	assert.Zero(t, a.Cmp(b))
	assert.Zero(t, b.Cmp(a))

	c := semver.Version{Major: 1, Minor: 2, Patch: 4}
	assert.Less(t, a.Cmp(c), 0)
	assert.Greater(t, c.Cmp(a), 0)
}

func TestDevString(t *testing.T) {
	t.Parallel()
	ver := semver.Version{Major: 2, Commits: 8}
	assert.Equal(t, "2.0.0", ver.String())
	assert.Equal(t, "2.0.0.dev8", ver.DevString())
}
