package cli

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"nepdate/services/nepdate-cli/internal/ansi"
	"nepdate/shared/pkg/bikram"
)

// 2025-08-30 11:26:30 in Kathmandu
var fixedNow = time.Date(2025, 8, 30, 5, 41, 30, 0, time.UTC)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := NewRootCommand(WithClock(func() time.Time { return fixedNow }))
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestCommands(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want string
	}{
		{
			name: "today default",
			args: []string{"today", "--timezone", "Asia/Kathmandu"},
			want: "2082-5-14\n",
		},
		{
			name: "today unicode",
			args: []string{"today", "--timezone", "Asia/Kathmandu", "--unicode", "--format", "d M, y, w"},
			want: "१४ भाद्रपद, २०८२, शनिबार\n",
		},
		{
			name: "today ad",
			args: []string{"today", "--timezone", "Asia/Kathmandu", "--ad", "--format", "y-m-d W"},
			want: "2025-8-30 Saturday\n",
		},
		{
			name: "today follows timezone",
			args: []string{"today", "--timezone", "Pacific/Honolulu", "--format", "y-m-d w"},
			want: "2082-5-13 Shukravar\n",
		},
		{
			name: "now default",
			args: []string{"now", "--timezone", "Asia/Kathmandu"},
			want: "2082-05-14 11:26:30\n",
		},
		{
			name: "now ad locale format",
			args: []string{"now", "--timezone", "Asia/Kathmandu", "--ad", "--format", "%c"},
			want: "Sat Aug 30 11:26:30 2025\n",
		},
		{
			name: "now unicode full",
			args: []string{"now", "--timezone", "Asia/Kathmandu", "--unicode", "--format", "%A, %d %B %Y, %I:%M:%S %p"},
			want: "शनिबार, १४ भाद्रपद २०८२, ११:२६:३० पूर्वाह्न\n",
		},
		{
			name: "now utc",
			args: []string{"now", "--timezone", "UTC", "--ad", "--format", "%H:%M %p"},
			want: "05:41 AM\n",
		},
		{
			name: "tobs",
			args: []string{"tobs", "2025", "8", "30", "--format", "y-M-d, W"},
			want: "2082-Bhadra-14, Saturday\n",
		},
		{
			name: "tobs epoch",
			args: []string{"tobs", "1943", "4", "14"},
			want: "2000-1-1\n",
		},
		{
			name: "tobs before table",
			args: []string{"tobs", "1900", "1", "1", "--format", "y-m-d W"},
			want: "1956-9-19 Monday\n",
		},
		{
			name: "toad",
			args: []string{"toad", "2082", "5", "14"},
			want: "2025-8-30\n",
		},
		{
			name: "toad devanagari digits",
			args: []string{"toad", "२०८२", "०५", "१४", "--unicode", "--format", "y M d"},
			want: "२०२५ अगस्ट ३०\n",
		},
		{
			name: "toad after table",
			args: []string{"toad", "2091", "1", "1"},
			want: "2034-4-14\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := run(t, tt.args...)
			require.NoError(t, err)
			assert.Equal(t, tt.want, out)
		})
	}
}

func TestCommands_Errors(t *testing.T) {
	t.Run("day past month end", func(t *testing.T) {
		_, err := run(t, "toad", "2082", "5", "32")
		assert.ErrorIs(t, err, bikram.ErrInvalidDate)
	})

	t.Run("february 30", func(t *testing.T) {
		_, err := run(t, "tobs", "2025", "2", "30")
		assert.ErrorIs(t, err, bikram.ErrInvalidDate)
	})

	t.Run("not a number", func(t *testing.T) {
		_, err := run(t, "tobs", "2025", "aug", "30")
		require.Error(t, err)
		assert.Contains(t, err.Error(), `"aug"`)
	})

	t.Run("missing arguments", func(t *testing.T) {
		_, err := run(t, "toad", "2082", "5")
		assert.Error(t, err)
	})

	t.Run("unknown timezone", func(t *testing.T) {
		_, err := run(t, "today", "--timezone", "Mars/Olympus")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "Mars/Olympus")
	})
}

func TestSummary(t *testing.T) {
	t.Run("plain", func(t *testing.T) {
		out, err := run(t, "--timezone", "Asia/Kathmandu", "--no-color")
		require.NoError(t, err)

		assert.Contains(t, out, "Today's Date:")
		assert.Contains(t, out, "Gregorian: 2025 August 30, Saturday")
		assert.Contains(t, out, "Bikram Sambat: 2082 भाद्रपद 14, शनिबार")
		assert.Contains(t, out, "Days in this Bikram month: 31")
		assert.Contains(t, out, "Usage:")
		assert.NotContains(t, out, ansi.Reset)
	})

	t.Run("coloured", func(t *testing.T) {
		t.Setenv("NO_COLOR", "")
		out, err := run(t, "--timezone", "Asia/Kathmandu")
		require.NoError(t, err)
		assert.Contains(t, out, ansi.Magenta+"2025 August 30, Saturday"+ansi.Reset)
	})
}

func TestExecute_ErrorColour(t *testing.T) {
	clock := WithClock(func() time.Time { return fixedNow })
	args := []string{"tobs", "2025", "aug", "30"}

	t.Run("coloured by default", func(t *testing.T) {
		t.Setenv("NO_COLOR", "")
		var stdout, stderr bytes.Buffer
		code := Execute(args, &stdout, &stderr, clock)
		assert.Equal(t, 1, code)
		assert.True(t, strings.HasPrefix(stderr.String(), ansi.Red+"Error: "))
	})

	t.Run("no-color flag", func(t *testing.T) {
		t.Setenv("NO_COLOR", "")
		var stdout, stderr bytes.Buffer
		code := Execute(append(args, "--no-color"), &stdout, &stderr, clock)
		assert.Equal(t, 1, code)
		assert.Equal(t, "Error: invalid date arguments: \"aug\" is not a number\n", stderr.String())
	})

	t.Run("NO_COLOR environment", func(t *testing.T) {
		t.Setenv("NO_COLOR", "1")
		var stdout, stderr bytes.Buffer
		code := Execute(args, &stdout, &stderr, clock)
		assert.Equal(t, 1, code)
		assert.NotContains(t, stderr.String(), ansi.Red)
		assert.NotContains(t, stderr.String(), ansi.Reset)
	})

	t.Run("unknown flag stays plain under NO_COLOR", func(t *testing.T) {
		t.Setenv("NO_COLOR", "1")
		var stdout, stderr bytes.Buffer
		code := Execute([]string{"today", "--bogus"}, &stdout, &stderr, clock)
		assert.Equal(t, 1, code)
		assert.True(t, strings.HasPrefix(stderr.String(), "Error: unknown flag"))
	})

	t.Run("success", func(t *testing.T) {
		var stdout, stderr bytes.Buffer
		code := Execute([]string{"toad", "2082", "5", "14"}, &stdout, &stderr, clock)
		assert.Equal(t, 0, code)
		assert.Equal(t, "2025-8-30\n", stdout.String())
		assert.Empty(t, stderr.String())
	})
}

func TestParseDate(t *testing.T) {
	y, m, d, err := parseDate([]string{"२०८२", " 5 ", "14"})
	require.NoError(t, err)
	assert.Equal(t, []int{2082, 5, 14}, []int{y, m, d})

	_, _, _, err = parseDate([]string{"2082", "5", "x"})
	assert.Error(t, err)
}
