package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/JaMeS-18-18/ForPluto/core"
	"github.com/JaMeS-18-18/ForPluto/core/report"
	"github.com/JaMeS-18-18/ForPluto/core/roster"
)

var (
	readLineFunc = readLine // mockable
	nowFunc      = time.Now // mockable

	errHelp = errors.New("help provided")
)

type commandLine struct {
	svc       *roster.Service
	shareSvc  core.ShareService
	exportSvc core.ExportService
	conf      *core.Config
	db        *sqlx.DB // SQL stores only, for migrate
	out       io.Writer
}

func (cli *commandLine) printUsage() {
	fmt.Fprintln(cli.out, "Usage:")
	fmt.Fprintln(cli.out, "  groups                                          - list groups")
	fmt.Fprintln(cli.out, "  addgroup -name NAME                             - create a group")
	fmt.Fprintln(cli.out, "  rmgroup -id ID                                  - delete a group and its students")
	fmt.Fprintln(cli.out, "  students -group ID                              - list the students of a group")
	fmt.Fprintln(cli.out, "  addstudent -group ID -name NAME                 - add a student on top of the list")
	fmt.Fprintln(cli.out, "  insertstudent -group ID -index N                - insert a blank student below position N (-1: top)")
	fmt.Fprintln(cli.out, "  rmstudent -group ID -student SID                - delete a student")
	fmt.Fprintln(cli.out, "  set -group ID -student SID -field F -value V    - set a student's value")
	fmt.Fprintln(cli.out, "  toggle -group ID -student SID -field F          - flip a boolean value")
	fmt.Fprintln(cli.out, "  addcol -group ID -key KEY [-kind text|boolean|notes]")
	fmt.Fprintln(cli.out, "  rmcol -group ID -key KEY                        - delete a column")
	fmt.Fprintln(cli.out, "  label -group ID -key KEY -text TEXT             - relabel a column (or `actions`)")
	fmt.Fprintln(cli.out, "  addnote -group ID -student SID [-field F]       - append an empty note")
	fmt.Fprintln(cli.out, "  setnote -group ID -student SID -index N [-text T] [-field F]")
	fmt.Fprintln(cli.out, "  rmnote -group ID -student SID -index N [-field F]")
	fmt.Fprintln(cli.out, "  text -group ID                                  - print the group report")
	fmt.Fprintln(cli.out, "  export [-group ID]                              - write the table document (all groups by default)")
	fmt.Fprintln(cli.out, "  share -group ID                                 - send the group report to Telegram")
	fmt.Fprintln(cli.out, "  migrate COMMAND [ARGS]                          - run SQL store migrations")
}

func (cli *commandLine) run(args []string) error {
	if len(args) < 2 {
		cli.printUsage()
		return errHelp
	}
	ctx := context.Background()
	cmd, args := args[1], args[2:]

	fs := flag.NewFlagSet(cmd, flag.ContinueOnError)
	fs.SetOutput(cli.out)
	var (
		groupID = fs.Int64("group", 0, "The group id.")
		student = fs.String("student", "", "The student id.")
		field   = fs.String("field", "", "The field key.")
		index   = fs.Int("index", -1, "A student or note position.")
	)

	switch cmd {
	case "groups":
		if err := parse(fs, args); err != nil {
			return err
		}
		return cli.listGroups()

	case "addgroup":
		name := fs.String("name", "", "The group name.")
		if err := parse(fs, args); err != nil {
			return err
		}
		grp, err := cli.svc.AddGroup(ctx, *name)
		if err != nil {
			return err
		}
		fmt.Fprintf(cli.out, "created group %d\n", grp.ID)
		return nil

	case "rmgroup":
		id := fs.Int64("id", 0, "The group id.")
		if err := parse(fs, args); err != nil {
			return err
		}
		if *id == 0 {
			fs.Usage()
			return errHelp
		}
		return cli.svc.RemoveGroup(ctx, *id)

	case "students":
		grp, err := cli.parseGroup(fs, args, groupID)
		if err != nil {
			return err
		}
		for i, st := range grp.Students {
			fmt.Fprintf(cli.out, "%d\t%s\t%s\n", i, st.ID, st.Name())
		}
		return nil

	case "addstudent":
		name := fs.String("name", "", "The student name.")
		if _, err := cli.parseGroup(fs, args, groupID); err != nil {
			return err
		}
		st, err := cli.svc.AddStudent(ctx, *groupID, *name)
		if err != nil {
			return err
		}
		fmt.Fprintln(cli.out, st.ID)
		return nil

	case "insertstudent":
		if _, err := cli.parseGroup(fs, args, groupID); err != nil {
			return err
		}
		st, err := cli.svc.InsertStudentBelow(ctx, *groupID, *index)
		if err != nil {
			return err
		}
		fmt.Fprintln(cli.out, st.ID)
		return nil

	case "rmstudent":
		if _, err := cli.parseGroup(fs, args, groupID, student); err != nil {
			return err
		}
		return cli.svc.RemoveStudent(ctx, *groupID, *student)

	case "set":
		value := fs.String("value", "", "The new value: text, true|false or a JSON array of notes.")
		grp, err := cli.parseGroup(fs, args, groupID, student, field)
		if err != nil {
			return err
		}
		if !grp.HasField(*field) {
			return unknownFieldError(grp, *field)
		}
		val, err := parseValue(grp.Kind(*field), *value)
		if err != nil {
			return err
		}
		return cli.svc.UpdateField(ctx, *groupID, *student, *field, val)

	case "toggle":
		grp, err := cli.parseGroup(fs, args, groupID, student, field)
		if err != nil {
			return err
		}
		if !grp.HasField(*field) {
			return unknownFieldError(grp, *field)
		}
		val, err := cli.svc.ToggleField(ctx, *groupID, *student, *field)
		if err != nil {
			return err
		}
		fmt.Fprintf(cli.out, "%s: %s\n", grp.Label(*field), report.Glyph(val))
		return nil

	case "addcol":
		key := fs.String("key", "", "The column key.")
		kind := fs.String("kind", "", "The column kind: text, boolean or notes (default: by key).")
		if _, err := cli.parseGroup(fs, args, groupID, key); err != nil {
			return err
		}
		k, err := roster.ParseKind(*kind)
		if err != nil {
			return err
		}
		return cli.svc.AddColumn(ctx, *groupID, *key, k)

	case "rmcol":
		key := fs.String("key", "", "The column key.")
		grp, err := cli.parseGroup(fs, args, groupID, key)
		if err != nil {
			return err
		}
		if err = cli.svc.RemoveColumn(ctx, *groupID, *key); err == roster.ErrUnknownField {
			return unknownFieldError(grp, *key)
		}
		return err

	case "label":
		key := fs.String("key", "", "The column key or `actions`.")
		text := fs.String("text", "", "The new label.")
		grp, err := cli.parseGroup(fs, args, groupID, key)
		if err != nil {
			return err
		}
		if err = cli.svc.UpdateLabel(ctx, *groupID, *key, *text); err == roster.ErrUnknownField {
			return unknownFieldError(grp, *key)
		}
		return err

	case "addnote", "setnote", "rmnote":
		return cli.notes(ctx, cmd, fs, args, groupID, student, field, index)

	case "text":
		grp, err := cli.parseGroup(fs, args, groupID)
		if err != nil {
			return err
		}
		fmt.Fprint(cli.out, report.FormatText(grp))
		return nil

	case "export":
		if err := parse(fs, args); err != nil {
			return err
		}
		return cli.export(ctx, *groupID)

	case "share":
		grp, err := cli.parseGroup(fs, args, groupID)
		if err != nil {
			return err
		}
		return cli.share(ctx, grp)

	case "migrate":
		return cli.migrate(args)

	default:
		cli.printUsage()
		return errHelp
	}
}

func parse(fs *flag.FlagSet, args []string) error {
	if err := fs.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return errHelp
		}
		return err
	}
	return nil
}

// parseGroup parses the flags, checks that -group and every required string flag are set, and selects the group.
func (cli *commandLine) parseGroup(fs *flag.FlagSet, args []string, groupID *int64, required ...*string) (roster.Group, error) {
	if err := parse(fs, args); err != nil {
		return roster.Group{}, err
	}
	if *groupID == 0 {
		fs.Usage()
		return roster.Group{}, errHelp
	}
	for _, s := range required {
		if strings.TrimSpace(*s) == "" {
			fs.Usage()
			return roster.Group{}, errHelp
		}
	}
	if err := cli.svc.SelectGroup(*groupID); err != nil {
		return roster.Group{}, err
	}
	return cli.svc.Group(*groupID)
}

func (cli *commandLine) listGroups() error {
	groups := cli.svc.Groups()
	if len(groups) == 0 {
		fmt.Fprintln(cli.out, "no groups")
		return nil
	}
	for _, grp := range groups {
		fmt.Fprintf(cli.out, "%d\t%s\t%d students\n", grp.ID, grp.Name, len(grp.Students))
	}
	return nil
}

func (cli *commandLine) notes(
	ctx context.Context,
	cmd string,
	fs *flag.FlagSet,
	args []string,
	groupID *int64,
	student, field *string,
	index *int,
) error {
	text := fs.String("text", "", "The note text (prompted when omitted).")
	*field = roster.FieldAdditionalTask
	grp, err := cli.parseGroup(fs, args, groupID, student, field)
	if err != nil {
		return err
	}
	if !grp.HasField(*field) {
		return unknownFieldError(grp, *field)
	}

	switch cmd {
	case "addnote":
		idx, err := cli.svc.AddNote(ctx, *groupID, *student, *field)
		if err != nil {
			return err
		}
		fmt.Fprintln(cli.out, idx)
		return nil
	case "setnote":
		if !isFlagSet(fs, "text") {
			line, err := readLineFunc(grp.Label(*field) + " #" + fmt.Sprint(*index) + ": ")
			if err != nil {
				return err
			}
			*text = line
		}
		return cli.svc.UpdateNote(ctx, *groupID, *student, *field, *index, *text)
	default:
		return cli.svc.RemoveNote(ctx, *groupID, *student, *field, *index)
	}
}

func isFlagSet(fs *flag.FlagSet, name string) bool {
	found := false
	fs.Visit(func(f *flag.Flag) {
		if f.Name == name {
			found = true
		}
	})
	return found
}

func (cli *commandLine) export(ctx context.Context, groupID int64) error {
	groups := cli.svc.Groups()
	if groupID != 0 {
		grp, err := cli.svc.Group(groupID)
		if err != nil {
			return err
		}
		groups = []roster.Group{grp}
	}
	doc, err := report.FormatDocument(groups...)
	if err != nil {
		return err
	}
	path, err := cli.exportSvc.Export(ctx, core.ExportFilename(cli.conf.Export.Prefix, nowFunc()), doc)
	if err != nil {
		return err
	}
	fmt.Fprintf(cli.out, "exported to %s\n", path)
	return nil
}

func (cli *commandLine) share(ctx context.Context, grp roster.Group) error {
	url := core.ShareURL(cli.conf.Share.BaseURL, cli.conf.Share.Handle, report.FormatText(grp))
	if err := cli.shareSvc.Share(ctx, url); err != nil {
		return err
	}
	fmt.Fprintln(cli.out, url)
	return nil
}
