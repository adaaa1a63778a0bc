package main

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"

	"github.com/vanshika/sixdegrees/internal/domain"
	"github.com/vanshika/sixdegrees/internal/graph"
	"github.com/vanshika/sixdegrees/internal/ingest"
)

var (
	headingStyle = lipgloss.NewStyle().Bold(true)
	mutedStyle   = lipgloss.NewStyle().Faint(true)
	pathStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
)

func printTitleReport(w io.Writer, r ingest.TitleReport) {
	fmt.Fprintln(w, mutedStyle.Render(fmt.Sprintf(
		"Ignored %d invalid titles and %d titles that are not movies",
		r.InvalidRecords, r.NonMovies)))
}

func printPersonReport(w io.Writer, r ingest.PersonReport) {
	fmt.Fprintln(w, mutedStyle.Render(fmt.Sprintf(
		"Ignored %d invalid actors, %d people who aren't actors, and %d references to invalid titles",
		r.InvalidRecords, r.NonActors, r.UnknownTitleRefs)))
}

func printParsed(w io.Writer, stats graph.Stats) {
	fmt.Fprintln(w, headingStyle.Render(fmt.Sprintf("Parsed %d movies and %d actors", stats.Titles, stats.Persons)))
	fmt.Fprintln(w)
}

func printRoute(w io.Writer, path domain.ShortestPath, sourceName, targetName string) {
	fmt.Fprintf(w, "Going from %s to %s\n", sourceName, targetName)
	if !path.Found {
		fmt.Fprintln(w, "No path found.")
		return
	}
	fmt.Fprintln(w, pathStyle.Render(graph.FormatPath(path.Names())))
	fmt.Fprintln(w, mutedStyle.Render(fmt.Sprintf("%d degrees of separation", path.Hops/2)))
}
