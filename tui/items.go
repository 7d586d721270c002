package tui

import (
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/bubbles/list"

	"lumiere-booking-cli/model"
	"lumiere-booking-cli/showtime"
	"lumiere-booking-cli/store"
)

type movieItem struct {
	movie  model.Movie
	recent bool
}

func (i movieItem) Title() string { return i.movie.Title }

func (i movieItem) Description() string {
	desc := fmt.Sprintf("%d showtimes", len(i.movie.Shows))
	if i.recent {
		desc = "Recently viewed • " + desc
	}
	return desc
}

func (i movieItem) FilterValue() string { return strings.ToLower(i.movie.Title) }

// buildMovieItems lists recently viewed movies first, then the rest of the
// catalog sorted by title.
func buildMovieItems(movies []model.Movie) []list.Item {
	recents, _ := store.LoadRecentMovies()
	recentIds := make(map[string]bool, len(recents))
	for _, r := range recents {
		if r.ID != "" {
			recentIds[r.ID] = true
		}
	}

	var promoted, rest []model.Movie
	for _, movie := range movies {
		if recentIds[movie.Id] {
			promoted = append(promoted, movie)
		} else {
			rest = append(rest, movie)
		}
	}
	sort.Slice(rest, func(a, b int) bool {
		return strings.ToLower(rest[a].Title) < strings.ToLower(rest[b].Title)
	})

	items := make([]list.Item, 0, len(movies))
	for _, movie := range promoted {
		items = append(items, movieItem{movie: movie, recent: true})
	}
	for _, movie := range rest {
		items = append(items, movieItem{movie: movie})
	}
	return items
}

type theatreItem struct {
	theatre model.Theatre
}

func (i theatreItem) Title() string { return i.theatre.Name }

func (i theatreItem) Description() string {
	parts := []string{}
	if i.theatre.Location != "" {
		parts = append(parts, i.theatre.Location)
	}
	if i.theatre.Rating != "" {
		parts = append(parts, i.theatre.Rating+" ★")
	}
	if len(parts) == 0 {
		return "Theatre"
	}
	return strings.Join(parts, " • ")
}

func (i theatreItem) FilterValue() string {
	return strings.ToLower(i.theatre.Name + " " + i.theatre.Location)
}

func buildTheatreItems(theatres []model.Theatre) []list.Item {
	items := make([]list.Item, 0, len(theatres))
	for _, theatre := range theatres {
		items = append(items, theatreItem{theatre: theatre})
	}
	return items
}

type dateItem struct {
	index int
	group showtime.Group
}

func (i dateItem) Title() string { return i.group.Label }

func (i dateItem) Description() string {
	return fmt.Sprintf("%s • %d showtimes", i.group.Date, len(i.group.Shows))
}

func (i dateItem) FilterValue() string {
	return strings.ToLower(i.group.Label + " " + i.group.Date)
}

// buildDateItems shows at most the first MaxInlineGroups dates inline. The
// calendar covers the rest.
func buildDateItems(groups []showtime.Group) []list.Item {
	inline := showtime.InlineGroups(groups)
	items := make([]list.Item, 0, len(inline))
	for index, group := range inline {
		items = append(items, dateItem{index: index, group: group})
	}
	return items
}

type showItem struct {
	show model.Show
}

func (i showItem) Title() string { return showtime.FormatTime(i.show.StartTime) }

func (i showItem) Description() string {
	if i.show.EndTime == "" {
		return "Showtime"
	}
	return fmt.Sprintf("until %s", showtime.FormatTime(i.show.EndTime))
}

func (i showItem) FilterValue() string {
	return strings.ToLower(showtime.FormatTime(i.show.StartTime))
}

func buildShowItems(shows []model.Show) []list.Item {
	items := make([]list.Item, 0, len(shows))
	for _, show := range shows {
		items = append(items, showItem{show: show})
	}
	return items
}
