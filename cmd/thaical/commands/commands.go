// Package commands implements the thaical subcommands.
package commands

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/zapponejosh/thai-calendar-api/internal/calendar"
	"github.com/zapponejosh/thai-calendar-api/internal/feed"
	"github.com/zapponejosh/thai-calendar-api/internal/locale"
	"github.com/zapponejosh/thai-calendar-api/internal/logger"
)

// options are the persistent flags shared by every subcommand.
type options struct {
	lang     string
	logLevel string
	tr       *locale.Translator
}

// NewRootCommand builds the thaical command tree.
func NewRootCommand() *cobra.Command {
	opts := &options{}

	root := &cobra.Command{
		Use:          "thaical",
		Short:        "Thai lunar calendar conversions",
		Long:         "thaical converts Gregorian dates to the Thai lunar calendar and lists Buddhist holy days.",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			logger.SetupWriter(cmd.ErrOrStderr(), opts.logLevel, "text")

			tr, err := locale.New(locale.Thai)
			if err != nil {
				return err
			}
			if !tr.Supports(opts.lang) {
				return fmt.Errorf("unsupported language %q", opts.lang)
			}
			opts.tr = tr
			return nil
		},
	}

	root.PersistentFlags().StringVar(&opts.lang, "lang", locale.Thai, "output language (th, en)")
	root.PersistentFlags().StringVar(&opts.logLevel, "log-level", "warn", "log level (debug, info, warn, error)")

	root.AddCommand(
		newConvertCommand(opts),
		newHolyDaysCommand(opts),
		newMonthCommand(opts),
	)
	return root
}

func newConvertCommand(opts *options) *cobra.Command {
	var clock string
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "convert [YYYY-MM-DD]",
		Short: "Convert a date to the Thai lunar calendar",
		Long:  "Convert a Gregorian date (today in Thailand if omitted) at the given time of day, noon by default.",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var (
				td  *calendar.ThaiDate
				err error
			)
			if len(args) == 0 {
				now := time.Now().In(calendar.ICT)
				c := calendar.FromTime(now)
				if clock != "" {
					c, err = calendar.ParseCivilDateTime(now.Format(calendar.DateLayout), clock)
					if err != nil {
						return err
					}
				}
				td, err = calendar.New(c)
			} else {
				td, err = calendar.Convert(args[0], clock)
			}
			if err != nil {
				return err
			}

			reading := opts.tr.Describe(td, opts.lang)
			if asJSON {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(reading)
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), reading.Summary)
			return err
		},
	}

	cmd.Flags().StringVar(&clock, "time", "", "time of day as HH:MM")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the full reading as JSON")
	return cmd
}

func newHolyDaysCommand(opts *options) *cobra.Command {
	var asICS bool

	cmd := &cobra.Command{
		Use:   "holydays YEAR",
		Short: "List the Buddhist holy days of a year",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			year, err := parseYear(args[0])
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if asICS {
				body, err := feed.NewGenerator(opts.tr).HolyDays(year, opts.lang)
				if err != nil {
					return err
				}
				_, err = out.Write(body)
				return err
			}

			days, err := calendar.HolyDays(year)
			if err != nil {
				return err
			}
			for _, td := range days {
				if _, err := fmt.Fprintf(out, "%s  %s\n",
					td.Civil().Time().Format(calendar.DateLayout),
					opts.tr.HolyDayTitle(td, opts.lang)); err != nil {
					return err
				}
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&asICS, "ics", false, "write an iCalendar feed instead of a list")
	return cmd
}

func newMonthCommand(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "month YEAR MONTH",
		Short: "Print a day-by-day table of a civil month",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			year, err := parseYear(args[0])
			if err != nil {
				return err
			}
			month, err := strconv.Atoi(args[1])
			if err != nil || month < 1 || month > 12 {
				return fmt.Errorf("invalid month %q: use 1-12", args[1])
			}

			start := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
			end := start.AddDate(0, 1, -1)

			days, err := calendar.Span(start, end, calendar.DefaultHour, 0)
			if err != nil {
				return err
			}
			return writeMonth(cmd.OutOrStdout(), opts, days)
		},
	}
}

// writeMonth renders one row per day with the holy days starred.
func writeMonth(w io.Writer, opts *options, days []*calendar.ThaiDate) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "DATE\tWEEKDAY\tPHASE\tDAY\tMONTH\tZODIAC\tERA\tHOLY")
	for _, td := range days {
		r := opts.tr.Describe(td, opts.lang)
		holy := ""
		if r.HolyDay {
			holy = "*"
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%d\t%d\t%s\t%d\t%s\n",
			r.Date, r.SolarWeekday, r.Phase, r.LunarDay, r.LunarMonth, r.Zodiac, r.MinorEra, holy)
	}
	return tw.Flush()
}

func parseYear(s string) (int, error) {
	year, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("invalid year %q", s)
	}
	return year, nil
}
