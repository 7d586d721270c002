package showtime

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"lumiere-booking-cli/model"
)

// MaxInlineGroups is how many date groups fit the inline date strip; later
// dates are reachable through the calendar picker.
const MaxInlineGroups = 7

// Group holds one calendar date's shows, sorted by start time.
type Group struct {
	Date  string
	Label string
	Shows []model.Show
}

// GroupShowsByDate partitions shows by their service-local calendar date (the
// portion of start_time before 'T'), sorts each group by start time and the
// groups by date string. Dates with no shows produce no group. Pure function
// of its input; now only feeds the Today/Tomorrow labels.
func GroupShowsByDate(shows []model.Show, now time.Time) []Group {
	byDate := map[string][]model.Show{}
	for _, show := range shows {
		date := showDate(show)
		if date == "" {
			continue
		}
		byDate[date] = append(byDate[date], show)
	}

	groups := make([]Group, 0, len(byDate))
	for date, dayShows := range byDate {
		sorted := append([]model.Show{}, dayShows...)
		sort.SliceStable(sorted, func(i, j int) bool {
			return showBefore(sorted[i], sorted[j])
		})
		groups = append(groups, Group{
			Date:  date,
			Label: DateLabel(date, now),
			Shows: sorted,
		})
	}

	sort.Slice(groups, func(i, j int) bool {
		return groups[i].Date < groups[j].Date
	})
	return groups
}

// DateLabel renders a group date for the date strip: "Today", "Tomorrow", or
// a short weekday plus day of month ("Tue 4").
func DateLabel(date string, now time.Time) string {
	parsed, err := time.ParseInLocation(time.DateOnly, date, now.Location())
	if err != nil {
		return date
	}
	today := truncateDate(now)
	switch {
	case parsed.Equal(today):
		return "Today"
	case parsed.Equal(today.AddDate(0, 0, 1)):
		return "Tomorrow"
	default:
		return fmt.Sprintf("%s %d", parsed.Format("Mon"), parsed.Day())
	}
}

// InlineGroups truncates to the first MaxInlineGroups groups for display.
func InlineGroups(groups []Group) []Group {
	if len(groups) <= MaxInlineGroups {
		return groups
	}
	return groups[:MaxInlineGroups]
}

// FindGroupIndex resolves a calendar-picked date by exact date-string match,
// returning -1 when no group exists for it (callers treat that as a no-op).
func FindGroupIndex(groups []Group, date string) int {
	for i, group := range groups {
		if group.Date == date {
			return i
		}
	}
	return -1
}

// GroupDates returns the complete set of group dates, in order, for the
// calendar picker.
func GroupDates(groups []Group) []string {
	dates := make([]string, 0, len(groups))
	for _, group := range groups {
		dates = append(dates, group.Date)
	}
	return dates
}

// FormatTime renders a show start time as a 12-hour clock label ("7:30 PM").
func FormatTime(startTime string) string {
	parsed, ok := parseShowTime(startTime)
	if !ok {
		return startTime
	}
	return parsed.Format("3:04 PM")
}

func showDate(show model.Show) string {
	if i := strings.IndexByte(show.StartTime, 'T'); i > 0 {
		return show.StartTime[:i]
	}
	return ""
}

func showBefore(a, b model.Show) bool {
	left, leftOK := parseShowTime(a.StartTime)
	right, rightOK := parseShowTime(b.StartTime)
	if leftOK && rightOK {
		return left.Before(right)
	}
	return a.StartTime < b.StartTime
}

var showTimeLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
}

func parseShowTime(value string) (time.Time, bool) {
	for _, layout := range showTimeLayouts {
		if parsed, err := time.Parse(layout, value); err == nil {
			return parsed, true
		}
	}
	return time.Time{}, false
}

func truncateDate(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
