package app

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/eventdesk/eventdesk/internal/database"
	"github.com/eventdesk/eventdesk/internal/router"
	"github.com/eventdesk/eventdesk/pkg/event"
	"github.com/eventdesk/eventdesk/pkg/event_page"
	"github.com/eventdesk/eventdesk/pkg/events_page"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

var ErrNothingToMigrate = errors.New("the memory driver has no schema to migrate")

func (a *Application) listCmd() *cobra.Command {
	var search, category string
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List events, optionally searched or filtered by category",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			deps := BuildDependencies(a.cfg, cmd.ErrOrStderr())
			page, err := a.mountEventsPage(cmd.Context(), deps)
			if err != nil {
				printEvents(cmd.OutOrStdout(), nil)
				return err
			}

			// Filters don't compose: each one starts over from the whole collection.
			state := page.State()
			if cmd.Flags().Changed("search") {
				state = page.Search(search)
			}
			if cmd.Flags().Changed("category") {
				state = page.FilterByCategory(category)
			}
			printEvents(cmd.OutOrStdout(), state.Filtered)
			return nil
		},
	}
	cmd.Flags().StringVarP(&search, "search", "s", "", "keep events whose title, description or category contains this text")
	cmd.Flags().StringVarP(&category, "category", "c", "", "keep events of exactly this category")
	return cmd
}

func (a *Application) categoriesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "categories",
		Short: "List the categories in use",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			deps := BuildDependencies(a.cfg, cmd.ErrOrStderr())
			page, err := a.mountEventsPage(cmd.Context(), deps)
			if err != nil {
				return err
			}
			for _, category := range page.State().Categories() {
				fmt.Fprintln(cmd.OutOrStdout(), category)
			}
			return nil
		},
	}
}

func (a *Application) createCmd() *cobra.Command {
	fields := &eventFlags{}
	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create an event and print the refreshed list",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			deps := BuildDependencies(a.cfg, cmd.ErrOrStderr())
			// The form is usable even when the list could not be loaded.
			page, err := a.mountEventsPage(cmd.Context(), deps)
			if page == nil {
				return err
			}

			page.OpenCreateForm()
			var parseErr error
			page.UpdateDraft(func(draft *event.Event) {
				parseErr = fields.apply(cmd.Flags(), draft)
			})
			if parseErr != nil {
				page.CloseCreateForm()
				return parseErr
			}

			if err := page.SubmitCreate(cmd.Context()); err != nil {
				return err
			}
			printEvents(cmd.OutOrStdout(), page.State().Filtered)
			return nil
		},
	}
	fields.register(cmd.Flags())
	_ = cmd.MarkFlagRequired("title")
	return cmd
}

func (a *Application) showCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show ID",
		Short: "Show one event",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			deps := BuildDependencies(a.cfg, cmd.ErrOrStderr())
			page, err := a.mountEventPage(cmd.Context(), deps, args[0])
			if err != nil {
				return err
			}
			printEvent(cmd.OutOrStdout(), page.State().Event)
			return nil
		},
	}
}

func (a *Application) editCmd() *cobra.Command {
	fields := &eventFlags{}
	cmd := &cobra.Command{
		Use:   "edit ID",
		Short: "Edit an event; fields not given keep their value",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			deps := BuildDependencies(a.cfg, cmd.ErrOrStderr())
			page, err := a.mountEventPage(cmd.Context(), deps, args[0])
			if err != nil {
				return err
			}

			if _, err := page.StartEdit(); err != nil {
				return err
			}
			var parseErr error
			if _, err := page.UpdateDraft(func(draft *event.Event) {
				parseErr = fields.apply(cmd.Flags(), draft)
			}); err != nil {
				return err
			}
			if parseErr != nil {
				page.CancelEdit()
				return parseErr
			}

			if err := page.Save(cmd.Context()); err != nil {
				return err
			}
			printEvent(cmd.OutOrStdout(), page.State().Event)
			return nil
		},
	}
	fields.register(cmd.Flags())
	return cmd
}

func (a *Application) deleteCmd() *cobra.Command {
	var yes bool
	cmd := &cobra.Command{
		Use:   "delete ID",
		Short: "Delete an event after confirmation",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			deps := BuildDependencies(a.cfg, cmd.ErrOrStderr())
			page, err := a.mountEventPage(cmd.Context(), deps, args[0])
			if err != nil {
				return err
			}

			state, err := page.RequestDelete()
			if err != nil {
				return err
			}
			if !yes && !confirm(cmd, fmt.Sprintf("Delete event %q? [y/N] ", state.Event.Title)) {
				if _, err := page.CancelDelete(); err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), "Canceled")
				return nil
			}

			if err := page.ConfirmDelete(cmd.Context()); err != nil {
				return err
			}

			// Deleting navigates back to the list.
			if deps.Router.Current().Route != router.EventsRoute {
				return nil
			}
			list, err := a.mountEventsPage(cmd.Context(), deps)
			if err != nil {
				return err
			}
			printEvents(cmd.OutOrStdout(), list.State().Filtered)
			return nil
		},
	}
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "delete without asking")
	return cmd
}

func (a *Application) serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the events REST backend",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			deps, err := BuildServerDependencies(a.cfg)
			if err != nil {
				return err
			}
			defer deps.Close()

			return serve(cmd.Context(), NewServer(a.cfg, deps))
		},
	}
}

func (a *Application) migrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply the backend database migrations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if a.cfg.Database.Driver == database.DriverMemory {
				return ErrNothingToMigrate
			}
			db, _, err := database.Open(a.cfg.Database)
			if err != nil {
				return err
			}
			defer db.Close()

			if err := database.Migrate(a.cfg.Database, db); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Migrations applied")
			return nil
		},
	}
}

func (a *Application) mountEventsPage(ctx context.Context, deps *Dependencies) (*events_page.Page, error) {
	if err := deps.Router.Navigate(ctx, router.EventsPath); err != nil {
		return nil, err
	}
	page := events_page.NewPage(deps.Client)
	return page, page.Mount(ctx)
}

func (a *Application) mountEventPage(ctx context.Context, deps *Dependencies, id string) (*event_page.Page, error) {
	path, err := deps.Router.EventPath(id)
	if err != nil {
		return nil, err
	}
	if err := deps.Router.Navigate(ctx, path); err != nil {
		return nil, err
	}
	location := deps.Router.Current()

	page := event_page.NewPage(location.Param("eventId"), deps.Client, deps.Notifier, deps.Router)
	if err := page.Mount(ctx); err != nil {
		return nil, err
	}
	return page, nil
}

func confirm(cmd *cobra.Command, prompt string) bool {
	fmt.Fprint(cmd.OutOrStdout(), prompt)
	answer, err := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
	if err != nil && answer == "" {
		log.Debugf("No confirmation read: %v", err)
		return false
	}
	answer = strings.ToLower(strings.TrimSpace(answer))
	return answer == "y" || answer == "yes"
}

// eventFlags are the editable event fields as command line flags.
type eventFlags struct {
	title       string
	description string
	start       string
	end         string
	category    string
	image       string
}

func (f *eventFlags) register(flags *pflag.FlagSet) {
	flags.StringVar(&f.title, "title", "", "event title")
	flags.StringVar(&f.description, "description", "", "event description")
	flags.StringVar(&f.start, "start", "", "start time, RFC 3339 or 2006-01-02T15:04")
	flags.StringVar(&f.end, "end", "", "end time, RFC 3339 or 2006-01-02T15:04")
	flags.StringVar(&f.category, "category", "", "event category")
	flags.StringVar(&f.image, "image", "", "image URL")
}

// apply copies the flags that were set onto draft.
func (f *eventFlags) apply(flags *pflag.FlagSet, draft *event.Event) error {
	if flags.Changed("title") {
		draft.Title = f.title
	}
	if flags.Changed("description") {
		draft.Description = f.description
	}
	if flags.Changed("category") {
		draft.Category = f.category
	}
	if flags.Changed("image") {
		draft.Image = f.image
	}
	if flags.Changed("start") {
		start, err := event.ParseDateTime(f.start)
		if err != nil {
			return fmt.Errorf("invalid --start: %w", err)
		}
		draft.StartTime = start
	}
	if flags.Changed("end") {
		end, err := event.ParseDateTime(f.end)
		if err != nil {
			return fmt.Errorf("invalid --end: %w", err)
		}
		draft.EndTime = end
	}
	return nil
}
