// Package cli implements the TaskMaster command-line client: signup/login,
// task management, description suggestions, and avatar upload.
package cli

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"github.com/sanjaympqwer/TASK-MASTER/internal/client/api"
	"github.com/sanjaympqwer/TASK-MASTER/internal/client/config"
	"github.com/sanjaympqwer/TASK-MASTER/internal/netx"
)

const usage = `Usage: taskmaster <command> [options]

Commands:
  signup   -name NAME -email EMAIL -password PASSWORD
  login    -email EMAIL -password PASSWORD
  logout
  whoami
  list
  add      -title TITLE [-desc DESCRIPTION] [-status STATUS]
  update   ID [-title TITLE] [-desc DESCRIPTION] [-status STATUS]
  rm       ID
  suggest  -title TITLE [-desc EXISTING_DESCRIPTION]
  avatar   -file PATH
`

type App struct {
	client *api.Client
	out    io.Writer
}

func NewApp(c *config.Config) (*App, error) {
	client, err := api.NewClient(c)
	if err != nil {
		return nil, err
	}
	return &App{client: client, out: os.Stdout}, nil
}

// Run dispatches a single subcommand. Global flags (-a, -t, -c) have already
// been consumed by config loading; args is everything after the binary name.
func (app *App) Run(ctx context.Context, args []string) error {
	cmd, rest := command(args)
	if cmd == "" {
		fmt.Fprint(app.out, usage)
		return nil
	}

	var err error
	switch cmd {
	case "signup":
		err = app.signup(ctx, rest)
	case "login":
		err = app.login(ctx, rest)
	case "logout":
		err = app.logout()
	case "whoami":
		err = app.whoami(ctx)
	case "list":
		err = app.list(ctx)
	case "add":
		err = app.add(ctx, rest)
	case "update":
		err = app.update(ctx, rest)
	case "rm":
		err = app.remove(ctx, rest)
	case "suggest":
		err = app.suggest(ctx, rest)
	case "avatar":
		err = app.avatar(ctx, rest)
	default:
		fmt.Fprint(app.out, usage)
		return fmt.Errorf("unknown command: %s", cmd)
	}

	if errors.Is(err, api.ErrUnauthorized) {
		return errors.New("not logged in (or session expired); run 'taskmaster login'")
	}
	return err
}

// command returns the first non-flag argument and everything after it.
func command(args []string) (string, []string) {
	for i, a := range args {
		if len(a) > 0 && a[0] != '-' {
			return a, args[i+1:]
		}
	}
	return "", nil
}

func (app *App) signup(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("signup", flag.ContinueOnError)
	name := fs.String("name", "", "display name")
	email := fs.String("email", "", "email address")
	password := fs.String("password", "", "password")
	if err := fs.Parse(args); err != nil {
		return err
	}

	user, err := app.client.Signup(ctx, *name, *email, *password)
	if err != nil {
		return err
	}
	fmt.Fprintf(app.out, "signed up as %s <%s>\n", user.Name, user.Email)
	return nil
}

func (app *App) login(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("login", flag.ContinueOnError)
	email := fs.String("email", "", "email address")
	password := fs.String("password", "", "password")
	if err := fs.Parse(args); err != nil {
		return err
	}

	user, err := app.client.Login(ctx, *email, *password)
	if err != nil {
		return err
	}
	fmt.Fprintf(app.out, "logged in as %s <%s>\n", user.Name, user.Email)
	return nil
}

func (app *App) logout() error {
	if err := app.client.Logout(); err != nil {
		return err
	}
	fmt.Fprintln(app.out, "logged out")
	return nil
}

func (app *App) whoami(ctx context.Context) error {
	user, err := app.client.Me(ctx)
	if err != nil {
		return err
	}
	fmt.Fprintf(app.out, "%s <%s>\n", user.Name, user.Email)
	return nil
}

func (app *App) list(ctx context.Context) error {
	tasks, err := app.client.ListTasks(ctx)
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(app.out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tSTATUS\tTITLE")
	for _, t := range tasks {
		fmt.Fprintf(w, "%s\t%s\t%s\n", t.ID, t.Status, t.Title)
	}
	return w.Flush()
}

func (app *App) add(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("add", flag.ContinueOnError)
	title := fs.String("title", "", "task title")
	desc := fs.String("desc", "", "task description")
	status := fs.String("status", "", "task status (todo, in-progress, done)")
	if err := fs.Parse(args); err != nil {
		return err
	}

	task, err := app.client.CreateTask(ctx, *title, *desc, *status)
	if err != nil {
		return err
	}
	fmt.Fprintf(app.out, "created task %s\n", task.ID)
	return nil
}

func (app *App) update(ctx context.Context, args []string) error {
	id, rest := command(args)
	if id == "" {
		return errors.New("update requires a task id")
	}

	fs := flag.NewFlagSet("update", flag.ContinueOnError)
	title := fs.String("title", "", "task title")
	desc := fs.String("desc", "", "task description")
	status := fs.String("status", "", "task status (todo, in-progress, done)")
	if err := fs.Parse(rest); err != nil {
		return err
	}

	var patch api.TaskPatch
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "title":
			patch.Title = title
		case "desc":
			patch.Description = desc
		case "status":
			patch.Status = status
		}
	})

	task, err := app.client.UpdateTask(ctx, id, patch)
	if err != nil {
		return err
	}
	fmt.Fprintf(app.out, "updated task %s (%s)\n", task.ID, task.Status)
	return nil
}

func (app *App) remove(ctx context.Context, args []string) error {
	id, _ := command(args)
	if id == "" {
		return errors.New("rm requires a task id")
	}

	ok, err := app.client.DeleteTask(ctx, id)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("no such task: %s", id)
	}
	fmt.Fprintf(app.out, "deleted task %s\n", id)
	return nil
}

func (app *App) suggest(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("suggest", flag.ContinueOnError)
	title := fs.String("title", "", "task title")
	desc := fs.String("desc", "", "existing description to improve")
	if err := fs.Parse(args); err != nil {
		return err
	}

	text, err := app.client.SuggestDescription(ctx, *title, *desc)
	if err != nil {
		return err
	}
	fmt.Fprintln(app.out, text)
	return nil
}

func (app *App) avatar(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("avatar", flag.ContinueOnError)
	file := fs.String("file", "", "path to the avatar image")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *file == "" {
		return errors.New("avatar requires -file")
	}

	data, err := os.ReadFile(*file)
	if err != nil {
		return err
	}

	target, err := app.client.RequestAvatarUpload(ctx)
	if err != nil {
		return err
	}

	if err := netx.UploadToS3PresignedURL(target.UploadURL, data); err != nil {
		return err
	}

	fmt.Fprintf(app.out, "avatar uploaded as %s\n", target.Key)
	return nil
}
