package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"

	"github.com/dmitrijs2005/taskmanager/internal/client/models"
)

var getOptionalText = GetOptionalText

const timeLayout = "2006-01-02 15:04"

func (a *App) List(ctx context.Context) error {
	tasks, err := a.taskService.List(ctx)
	if err != nil {
		return a.checkAuth(ctx, err)
	}
	if len(tasks) == 0 {
		fmt.Fprintln(a.out, "No tasks yet. Use 'add' to create one.")
		return nil
	}
	for _, t := range tasks {
		fmt.Fprintf(a.out, "%s %s  %s\n", checkbox(t.Completed), t.ID, t.Title)
	}
	return nil
}

func (a *App) Add(ctx context.Context) error {
	title, err := getSimpleText(a.reader, "Enter title", a.out)
	if err != nil {
		return err
	}
	desc, ok, err := getOptionalText(a.reader, "Enter description (empty for none)", a.out)
	if err != nil {
		return err
	}
	var description *string
	if ok {
		description = &desc
	}

	t, err := a.taskService.Add(ctx, title, description)
	if err != nil {
		return a.checkAuth(ctx, err)
	}
	fmt.Fprintf(a.out, "Created task %s\n", t.ID)
	return nil
}

func (a *App) Show(ctx context.Context, id string) error {
	t, err := a.taskService.Show(ctx, id)
	if err != nil {
		return a.checkAuth(ctx, err)
	}
	printTask(a.out, t)
	return nil
}

// Edit prompts for each field; an empty answer keeps the current value and
// "-" clears the description.
func (a *App) Edit(ctx context.Context, id string) error {
	var upd models.TaskUpdate

	title, ok, err := getOptionalText(a.reader, "New title (empty to keep)", a.out)
	if err != nil {
		return err
	}
	if ok {
		upd.Title = &title
	}

	desc, ok, err := getOptionalText(a.reader, "New description (empty to keep, - to clear)", a.out)
	if err != nil {
		return err
	}
	if ok {
		if desc == "-" {
			desc = ""
		}
		upd.Description = &desc
	}

	done, ok, err := getOptionalText(a.reader, "Completed? true/false (empty to keep)", a.out)
	if err != nil {
		return err
	}
	if ok {
		b, err := strconv.ParseBool(done)
		if err != nil {
			return errors.New("completed must be true or false")
		}
		upd.Completed = &b
	}

	if upd.Title == nil && upd.Description == nil && upd.Completed == nil {
		fmt.Fprintln(a.out, "Nothing to change")
		return nil
	}

	t, err := a.taskService.Edit(ctx, id, upd)
	if err != nil {
		return a.checkAuth(ctx, err)
	}
	printTask(a.out, t)
	return nil
}

func (a *App) Toggle(ctx context.Context, id string) error {
	t, err := a.taskService.Toggle(ctx, id)
	if err != nil {
		return a.checkAuth(ctx, err)
	}
	fmt.Fprintf(a.out, "%s %s\n", checkbox(t.Completed), t.Title)
	return nil
}

func (a *App) Delete(ctx context.Context, id string) error {
	t, err := a.taskService.Delete(ctx, id)
	if err != nil {
		return a.checkAuth(ctx, err)
	}
	fmt.Fprintf(a.out, "Deleted task %q\n", t.Title)
	return nil
}

func checkbox(done bool) string {
	if done {
		return "[x]"
	}
	return "[ ]"
}

func printTask(w io.Writer, t *models.Task) {
	fmt.Fprintf(w, "ID:          %s\n", t.ID)
	fmt.Fprintf(w, "Title:       %s\n", t.Title)
	if t.Description != nil && *t.Description != "" {
		fmt.Fprintf(w, "Description: %s\n", *t.Description)
	}
	fmt.Fprintf(w, "Completed:   %t\n", t.Completed)
	fmt.Fprintf(w, "Created:     %s\n", t.CreatedAt.Local().Format(timeLayout))
	fmt.Fprintf(w, "Updated:     %s\n", t.UpdatedAt.Local().Format(timeLayout))
}
