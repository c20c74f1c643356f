package cmd

import (
	"flag"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/taskdeck/taskdeck/internal/config"
	"github.com/taskdeck/taskdeck/internal/store"
	"github.com/taskdeck/taskdeck/internal/task"
)

// cliDateLayout is the due-date format accepted on the command line.
const cliDateLayout = "2006-01-02 15:04"

const badDateMessage = "Error: Due date must be in the format 'YYYY-MM-DD HH:MM'"

// addCommand creates a new task.
func addCommand(cfg *config.Config, logger *log.Logger, args []string) error {
	fs := flag.NewFlagSet("taskdeck add", flag.ContinueOnError)
	description := fs.String("description", "", "Task description")
	fs.StringVar(description, "d", "", "Task description (shorthand)")
	priority := fs.String("priority", "MEDIUM", "Task priority")
	fs.StringVar(priority, "p", "MEDIUM", "Task priority (shorthand)")
	due := fs.String("due", "", "Due date and time (YYYY-MM-DD HH:MM)")
	tags := fs.String("tags", "", "Comma-separated list of tags")
	fs.StringVar(tags, "t", "", "Comma-separated list of tags (shorthand)")

	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() < 1 || strings.TrimSpace(fs.Arg(0)) == "" {
		return fmt.Errorf("add requires a task title")
	}
	title := fs.Arg(0)

	prio, err := task.ParsePriority(*priority)
	if err != nil {
		return err
	}

	var dueDate *time.Time
	if *due != "" {
		parsed, err := time.ParseInLocation(cliDateLayout, *due, time.Local)
		if err != nil {
			fmt.Println(badDateMessage)
			return nil
		}
		dueDate = &parsed
	}

	t := task.New(task.Params{
		Title:       title,
		Description: *description,
		Priority:    prio,
		DueDate:     dueDate,
		Tags:        splitTags(*tags),
	})

	s, err := openStore(cfg, logger)
	if err != nil {
		return err
	}
	id, err := s.Add(t)
	if err != nil {
		return err
	}
	fmt.Printf("Task added with ID: %s\n", id)
	return nil
}

// listCommand lists tasks with optional filtering.
func listCommand(cfg *config.Config, logger *log.Logger, args []string) error {
	fs := flag.NewFlagSet("taskdeck list", flag.ContinueOnError)
	status := fs.String("status", "", "Filter by status")
	fs.StringVar(status, "s", "", "Filter by status (shorthand)")
	priority := fs.String("priority", "", "Filter by priority")
	fs.StringVar(priority, "p", "", "Filter by priority (shorthand)")
	tag := fs.String("tag", "", "Filter by tag")
	fs.StringVar(tag, "t", "", "Filter by tag (shorthand)")

	if err := fs.Parse(args); err != nil {
		return err
	}

	var filter store.Filter
	if *status != "" {
		st, err := task.ParseStatus(*status)
		if err != nil {
			return err
		}
		filter.Status = &st
	}
	if *priority != "" {
		p, err := task.ParsePriority(*priority)
		if err != nil {
			return err
		}
		filter.Priority = &p
	}
	filter.Tag = *tag

	s, err := openStore(cfg, logger)
	if err != nil {
		return err
	}
	tasks := s.List(filter)
	if len(tasks) == 0 {
		fmt.Println("No tasks found.")
		return nil
	}

	fmt.Printf("Found %d tasks:\n", len(tasks))
	for i, t := range tasks {
		fmt.Printf("%d. %s: %s - %s\n", i+1, t.ID, t.Title, t.Status)
	}
	return nil
}

// viewCommand prints one task in full.
func viewCommand(cfg *config.Config, logger *log.Logger, args []string) error {
	fs := flag.NewFlagSet("taskdeck view", flag.ContinueOnError)
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() < 1 {
		return fmt.Errorf("view requires a task ID")
	}
	id := fs.Arg(0)

	s, err := openStore(cfg, logger)
	if err != nil {
		return err
	}
	t, ok := s.Get(id)
	if !ok {
		fmt.Printf("No task found with ID: %s\n", id)
		return nil
	}

	fmt.Printf("ID: %s\n", t.ID)
	fmt.Printf("Title: %s\n", t.Title)
	fmt.Printf("Description: %s\n", t.Description)
	fmt.Printf("Priority: %s\n", t.Priority)
	fmt.Printf("Status: %s\n", t.Status)
	if t.DueDate != nil {
		fmt.Printf("Due date: %s\n", t.DueDate.Format(cliDateLayout))
	}
	if len(t.Tags) > 0 {
		fmt.Printf("Tags: %s\n", strings.Join(t.Tags, ", "))
	}
	fmt.Printf("Created: %s\n", t.CreatedAt.Format("2006-01-02 15:04:05"))
	fmt.Printf("Updated: %s\n", t.UpdatedAt.Format("2006-01-02 15:04:05"))
	return nil
}

// updateCommand applies a partial update built from the flags the user
// actually supplied, so an omitted -due is distinct from -due "".
func updateCommand(cfg *config.Config, logger *log.Logger, args []string) error {
	fs := flag.NewFlagSet("taskdeck update", flag.ContinueOnError)
	title := fs.String("title", "", "New task title")
	fs.StringVar(title, "T", "", "New task title (shorthand)")
	description := fs.String("description", "", "New task description")
	fs.StringVar(description, "d", "", "New task description (shorthand)")
	priority := fs.String("priority", "", "New task priority")
	fs.StringVar(priority, "p", "", "New task priority (shorthand)")
	status := fs.String("status", "", "New task status")
	fs.StringVar(status, "s", "", "New task status (shorthand)")
	due := fs.String("due", "", "New due date (YYYY-MM-DD HH:MM); empty clears it")
	tags := fs.String("tags", "", "New comma-separated list of tags")
	fs.StringVar(tags, "t", "", "New comma-separated list of tags (shorthand)")

	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() < 1 {
		return fmt.Errorf("update requires a task ID")
	}
	id := fs.Arg(0)

	set := map[string]bool{}
	fs.Visit(func(f *flag.Flag) { set[f.Name] = true })

	var patch task.Patch
	if set["title"] || set["T"] {
		patch.Title = title
	}
	if set["description"] || set["d"] {
		patch.Description = description
	}
	if set["priority"] || set["p"] {
		p, err := task.ParsePriority(*priority)
		if err != nil {
			return err
		}
		patch.Priority = &p
	}
	if set["status"] || set["s"] {
		st, err := task.ParseStatus(*status)
		if err != nil {
			return err
		}
		patch.Status = &st
	}
	if set["due"] {
		if *due == "" {
			patch.DueDate = task.ClearDueDate()
		} else {
			parsed, err := time.ParseInLocation(cliDateLayout, *due, time.Local)
			if err != nil {
				fmt.Println(badDateMessage)
				return nil
			}
			patch.DueDate = task.DueBy(parsed)
		}
	}
	if set["tags"] || set["t"] {
		patch.Tags = splitTags(*tags)
	}

	if patch.IsZero() {
		fmt.Println("No updates specified.")
		return nil
	}

	s, err := openStore(cfg, logger)
	if err != nil {
		return err
	}
	ok, err := s.Update(id, patch)
	if err != nil {
		return err
	}
	if ok {
		fmt.Printf("Task %s updated successfully.\n", id)
	} else {
		fmt.Printf("No task found with ID: %s\n", id)
	}
	return nil
}

// completeCommand marks a task as completed.
func completeCommand(cfg *config.Config, logger *log.Logger, args []string) error {
	fs := flag.NewFlagSet("taskdeck complete", flag.ContinueOnError)
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() < 1 {
		return fmt.Errorf("complete requires a task ID")
	}
	id := fs.Arg(0)

	s, err := openStore(cfg, logger)
	if err != nil {
		return err
	}
	completed := task.StatusCompleted
	ok, err := s.Update(id, task.Patch{Status: &completed})
	if err != nil {
		return err
	}
	if ok {
		fmt.Printf("Task %s marked as completed.\n", id)
	} else {
		fmt.Printf("No task found with ID: %s\n", id)
	}
	return nil
}

// deleteCommand removes a task.
func deleteCommand(cfg *config.Config, logger *log.Logger, args []string) error {
	fs := flag.NewFlagSet("taskdeck delete", flag.ContinueOnError)
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() < 1 {
		return fmt.Errorf("delete requires a task ID")
	}
	id := fs.Arg(0)

	s, err := openStore(cfg, logger)
	if err != nil {
		return err
	}
	ok, err := s.Delete(id)
	if err != nil {
		return err
	}
	if ok {
		fmt.Printf("Task %s deleted.\n", id)
	} else {
		fmt.Printf("No task found with ID: %s\n", id)
	}
	return nil
}

// splitTags splits a comma-separated tag list, trimming whitespace. An empty
// input yields an empty list, which clears tags on update.
func splitTags(s string) []string {
	if s == "" {
		return []string{}
	}
	parts := strings.Split(s, ",")
	tags := make([]string, 0, len(parts))
	for _, part := range parts {
		tags = append(tags, strings.TrimSpace(part))
	}
	return tags
}
