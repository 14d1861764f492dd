package app

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/eventdesk/eventdesk/internal/event_bus"
	"github.com/eventdesk/eventdesk/pkg/event"
)

func printEvents(w io.Writer, events []event.Event) {
	if len(events) == 0 {
		fmt.Fprintln(w, "No events")
		return
	}
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tTITLE\tCATEGORY\tSTART\tEND")
	for _, e := range events {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n", e.Id, e.Title, e.Category, e.StartTime, e.EndTime)
	}
	tw.Flush()
}

func printEvent(w io.Writer, e event.Event) {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintf(tw, "Title:\t%s\n", e.Title)
	fmt.Fprintf(tw, "Description:\t%s\n", e.Description)
	fmt.Fprintf(tw, "Start:\t%s\n", e.StartTime)
	fmt.Fprintf(tw, "End:\t%s\n", e.EndTime)
	fmt.Fprintf(tw, "Categories:\t%s\n", strings.Join(e.CategoryLabels(), ", "))
	if e.Image != "" {
		fmt.Fprintf(tw, "Image:\t%s\n", e.Image)
	}
	if e.Creator != nil {
		fmt.Fprintf(tw, "Created by:\t%s\n", e.Creator.Name)
	}
	tw.Flush()
}

func printToast(w io.Writer, toast event_bus.ToastShown) error {
	line := fmt.Sprintf("[%s] %s", toast.Status, toast.Title)
	if toast.Description != "" {
		line += ": " + toast.Description
	}
	_, err := fmt.Fprintln(w, line)
	return err
}
