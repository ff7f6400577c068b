// Package cli implements the nepdate command line tool.
package cli

import (
	"fmt"
	"io"
	"os"
	"time"
	_ "time/tzdata"

	"github.com/spf13/cobra"

	"nepdate/services/nepdate-cli/internal/ansi"
	"nepdate/shared/pkg/bikram"
	"nepdate/shared/pkg/helpers"
	"nepdate/shared/pkg/logger"
)

const longHelp = `Convert dates between the Gregorian calendar (AD) and Bikram Sambat (BS).

Simple format specifiers (today, tobs, toad):
  y Year  m Month  d Day  M Month name  w Weekday (NP)  W Weekday (EN)

strftime format specifiers (now):
  %Y Year  %y Year (2-digit)  %m Month (01-12)  %d Day (01-31)
  %B Full month  %b Abbr month  %A Full weekday  %a Abbr weekday
  %H Hour (24h)  %I Hour (12h)  %M Minute  %S Second  %p AM/PM
  %c Date & time  %x Date  %X Time  %% Literal '%'`

const examples = `  # Show today's date in BS (simple format)
  $ nepdate today --unicode --format 'd M, y, w'
  > १४ भाद्रपद, २०८२, शनिबार

  # Show current time in AD using strftime format (%c)
  $ nepdate now --ad --format '%c'
  > Sat Aug 30 11:26:30 2025

  # Show current date/time in BS (Devanagari) with full details
  $ nepdate now --unicode --format '%A, %d %B %Y, %I:%M:%S %p'
  > शनिबार, १४ भाद्रपद २०८२, ११:२६:३० पूर्वाह्न

  # Convert a specific AD date to BS (simple format)
  $ nepdate tobs 2025 8 30 --format 'y-M-d, W'
  > 2082-Bhadra-14, Saturday`

type app struct {
	conv  *bikram.Converter
	now   func() time.Time
	log   *logger.Logger
	loc   *time.Location
	color bool
}

// Option configures the command tree.
type Option func(*app)

// WithClock replaces time.Now.
func WithClock(now func() time.Time) Option {
	return func(a *app) { a.now = now }
}

// WithConverter replaces the default converter.
func WithConverter(c *bikram.Converter) Option {
	return func(a *app) { a.conv = c }
}

// NewRootCommand builds the nepdate command and its subcommands.
func NewRootCommand(opts ...Option) *cobra.Command {
	a := &app{
		conv: bikram.New(),
		now:  time.Now,
		log:  logger.NewNopLogger(),
		loc:  time.Local,
	}
	for _, opt := range opts {
		opt(a)
	}

	root := &cobra.Command{
		Use:               "nepdate",
		Short:             "Bikram Sambat date converter",
		Long:              longHelp,
		Example:           examples,
		Args:              cobra.NoArgs,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: a.setup,
		RunE:              a.runSummary,
	}

	root.PersistentFlags().BoolP("verbose", "v", false, "verbose output")
	root.PersistentFlags().String("timezone", "", "IANA timezone for today and now (default local)")
	root.PersistentFlags().Bool("no-color", false, "disable coloured output")

	root.AddCommand(
		a.newTodayCommand(),
		a.newNowCommand(),
		a.newToBikramCommand(),
		a.newToGregorianCommand(),
	)
	return root
}

// Execute runs the command line with args and prints any error to stderr,
// in red unless colour is disabled. It returns the process exit code.
func Execute(args []string, stdout, stderr io.Writer, opts ...Option) int {
	root := NewRootCommand(opts...)
	root.SetArgs(args)
	root.SetOut(stdout)
	root.SetErr(stderr)

	cmd, err := root.ExecuteC()
	if err == nil {
		return 0
	}
	if cmd == nil {
		cmd = root
	}

	msg := "Error: " + err.Error()
	if colorEnabled(cmd) {
		msg = ansi.Paint(ansi.Red, msg)
	}
	fmt.Fprintln(stderr, msg)
	return 1
}

// colorEnabled honours both --no-color and NO_COLOR.
func colorEnabled(cmd *cobra.Command) bool {
	noColor, _ := cmd.Flags().GetBool("no-color")
	return !noColor && os.Getenv("NO_COLOR") == ""
}

func (a *app) setup(cmd *cobra.Command, _ []string) error {
	verbose, _ := cmd.Flags().GetBool("verbose")
	if verbose {
		a.log = logger.NewCLILogger(true)
	}

	a.color = colorEnabled(cmd)

	tz, _ := cmd.Flags().GetString("timezone")
	if tz != "" {
		loc, err := time.LoadLocation(tz)
		if err != nil {
			return fmt.Errorf("unknown timezone %q", tz)
		}
		a.loc = loc
	}
	return nil
}

// clock returns the current time in the selected timezone.
func (a *app) clock() time.Time {
	return a.now().In(a.loc)
}

// view renders t as either a Gregorian or a BS date.
func (a *app) view(t time.Time, ad bool) (helpers.DateView, error) {
	v := helpers.DateView{
		Weekday: t.Weekday(),
		Hour:    t.Hour(),
		Minute:  t.Minute(),
		Second:  t.Second(),
	}
	if ad {
		v.Year, v.Month, v.Day = t.Year(), int(t.Month()), t.Day()
		v.Calendar = helpers.CalendarGregorian
		return v, nil
	}

	bs, err := a.conv.FromTime(t)
	if err != nil {
		return v, err
	}
	a.log.Debugf("%s is BS %s (%s)", t.Format("2006-01-02"), bs, a.conv.Method(bs.Year))
	v.Year, v.Month, v.Day = bs.Year, bs.Month, bs.Day
	v.Calendar = helpers.CalendarBikram
	return v, nil
}
