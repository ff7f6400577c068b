package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"nepdate/services/nepdate-cli/internal/ansi"
	"nepdate/shared/pkg/helpers"
)

func addOutputFlags(cmd *cobra.Command, layout string, ad bool) {
	cmd.Flags().Bool("unicode", false, "display Devanagari output")
	cmd.Flags().String("format", layout, "format string")
	if ad {
		cmd.Flags().Bool("ad", false, "show the date in AD")
	}
}

func (a *app) newTodayCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "today",
		Short: "Show today's date (simple format)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ad, _ := cmd.Flags().GetBool("ad")
			v, err := a.view(a.clock(), ad)
			if err != nil {
				return err
			}
			return a.print(cmd, v, helpers.FormatSimple)
		},
	}
	addOutputFlags(cmd, helpers.DefaultSimpleLayout, true)
	return cmd
}

func (a *app) newNowCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "now",
		Short: "Show the current date and time (strftime format)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ad, _ := cmd.Flags().GetBool("ad")
			v, err := a.view(a.clock(), ad)
			if err != nil {
				return err
			}
			return a.print(cmd, v, helpers.FormatStrftime)
		},
	}
	addOutputFlags(cmd, helpers.DefaultClockLayout, true)
	return cmd
}

func (a *app) newToBikramCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tobs YEAR MONTH DAY",
		Short: "Convert a Gregorian date to Bikram Sambat",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			y, m, d, err := parseDate(args)
			if err != nil {
				return err
			}
			bs, err := a.conv.GregorianToBikram(y, m, d)
			if err != nil {
				return err
			}
			a.log.Debugf("converted with the %s method", a.conv.Method(bs.Year))

			v := helpers.DateView{
				Year:     bs.Year,
				Month:    bs.Month,
				Day:      bs.Day,
				Weekday:  time.Date(y, time.Month(m), d, 0, 0, 0, 0, time.UTC).Weekday(),
				Calendar: helpers.CalendarBikram,
			}
			return a.print(cmd, v, helpers.FormatSimple)
		},
	}
	addOutputFlags(cmd, helpers.DefaultSimpleLayout, false)
	return cmd
}

func (a *app) newToGregorianCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "toad YEAR MONTH DAY",
		Short: "Convert a Bikram Sambat date to Gregorian",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			y, m, d, err := parseDate(args)
			if err != nil {
				return err
			}
			g, err := a.conv.BikramToGregorian(y, m, d)
			if err != nil {
				return err
			}
			a.log.Debugf("converted with the %s method", a.conv.Method(y))

			v := helpers.DateView{
				Year:     g.Year,
				Month:    g.Month,
				Day:      g.Day,
				Weekday:  time.Date(g.Year, time.Month(g.Month), g.Day, 0, 0, 0, 0, time.UTC).Weekday(),
				Calendar: helpers.CalendarGregorian,
			}
			return a.print(cmd, v, helpers.FormatSimple)
		},
	}
	addOutputFlags(cmd, helpers.DefaultSimpleLayout, false)
	return cmd
}

func (a *app) print(cmd *cobra.Command, v helpers.DateView, format func(helpers.DateView, string, bool) string) error {
	layout, _ := cmd.Flags().GetString("format")
	unicode, _ := cmd.Flags().GetBool("unicode")
	_, err := fmt.Fprintln(cmd.OutOrStdout(), format(v, layout, unicode))
	return err
}

// parseDate reads YEAR MONTH DAY, accepting Devanagari digits.
func parseDate(args []string) (year, month, day int, err error) {
	var parts [3]int
	for i, arg := range args {
		if parts[i], err = helpers.ParseInt(arg); err != nil {
			return 0, 0, 0, fmt.Errorf("invalid date arguments: %q is not a number", arg)
		}
	}
	return parts[0], parts[1], parts[2], nil
}

// runSummary prints today's date in both calendars followed by the help.
func (a *app) runSummary(cmd *cobra.Command, _ []string) error {
	t := a.clock()
	bs, err := a.conv.FromTime(t)
	if err != nil {
		return err
	}
	days, err := a.conv.DaysInMonth(bs.Year, bs.Month)
	if err != nil {
		return err
	}

	paint := func(code, s string) string {
		if !a.color {
			return s
		}
		return ansi.Paint(code, s)
	}
	wd := t.Weekday()
	out := cmd.OutOrStdout()

	fmt.Fprintln(out, paint(ansi.Cyan, "   Today's Date:"))
	fmt.Fprintf(out, " %s%s\n", paint(ansi.Yellow, " Gregorian: "),
		paint(ansi.Magenta, fmt.Sprintf("%d %s %d, %s", t.Year(),
			helpers.MonthName(int(t.Month()), helpers.CalendarGregorian, false), t.Day(),
			helpers.WeekdayName(wd, helpers.CalendarGregorian, false))))
	fmt.Fprintf(out, " %s%s\n", paint(ansi.Yellow, " Bikram Sambat: "),
		paint(ansi.Magenta, fmt.Sprintf("%d %s %d, %s", bs.Year,
			helpers.MonthName(bs.Month, helpers.CalendarBikram, true), bs.Day,
			helpers.WeekdayName(wd, helpers.CalendarBikram, true))))
	fmt.Fprintf(out, " %s%d\n\n", paint(ansi.Yellow, " Days in this Bikram month: "), days)

	return cmd.Help()
}
