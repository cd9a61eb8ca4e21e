package meeting

import (
	"github.com/felixgeelhaar/execassist/internal/app"
	"github.com/spf13/cobra"
)

// requestFlags holds the scheduling request options shared by suggest and
// validate.
type requestFlags struct {
	duration  int
	attendees []string
	preferred []string
	earliest  string
	latest    string
	workStart string
	workEnd   string
	weekends  bool
	buffer    int
}

func (f *requestFlags) register(cmd *cobra.Command) {
	cmd.Flags().IntVarP(&f.duration, "duration", "d", 30, "meeting length in minutes")
	cmd.Flags().StringSliceVarP(&f.attendees, "attendee", "a", nil, "attendee email (repeatable)")
	cmd.Flags().StringArrayVar(&f.preferred, "prefer", nil, `preferred window as "start/end" (repeatable)`)
	cmd.Flags().StringVar(&f.earliest, "earliest", "", "earliest allowed start")
	cmd.Flags().StringVar(&f.latest, "latest", "", "latest allowed end")
	cmd.Flags().StringVar(&f.workStart, "work-start", "", "working day start (HH:MM)")
	cmd.Flags().StringVar(&f.workEnd, "work-end", "", "working day end (HH:MM)")
	cmd.Flags().BoolVar(&f.weekends, "weekends", false, "allow slots on Saturday and Sunday")
	cmd.Flags().IntVar(&f.buffer, "buffer", 0, "minutes to keep free around other meetings")
}

func (f *requestFlags) input(cmd *cobra.Command, title string) app.MeetingRequestInput {
	in := app.MeetingRequestInput{
		Title:           title,
		DurationMinutes: f.duration,
		Attendees:       f.attendees,
		PreferredTimes:  f.preferred,
		Earliest:        f.earliest,
		Latest:          f.latest,
		WorkStart:       f.workStart,
		WorkEnd:         f.workEnd,
		IncludeWeekends: f.weekends,
	}
	if cmd.Flags().Changed("buffer") {
		buffer := f.buffer
		in.BufferMinutes = &buffer
	}
	return in
}
