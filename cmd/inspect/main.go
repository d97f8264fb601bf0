// inspect prints what the badger store holds for a conversation, newest page first.
// It opens the database read only so it can run next to a live server.
package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"pair-chat/domain/chat"
	"pair-chat/infrastructure/storage"
	"strings"

	"github.com/dgraph-io/badger/v4"
	"github.com/gookit/color"
	"github.com/mama165/sdk-go/database"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/pflag"
)

func main() {
	if err := run(os.Args[1:], os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string, out io.Writer) error {
	var dbPath, userA, userB, cursor string
	var limit int
	var pending, noColor bool

	flagSet := pflag.NewFlagSet("inspect", pflag.ContinueOnError)
	flagSet.StringVar(&dbPath, "db", database.DefaultPath, "path to badger DB")
	flagSet.StringVarP(&userA, "user", "a", "", "first participant")
	flagSet.StringVarP(&userB, "partner", "b", "", "second participant")
	flagSet.StringVar(&cursor, "cursor", "", "resume before this history cursor")
	flagSet.IntVarP(&limit, "limit", "n", 50, "messages per page")
	flagSet.BoolVar(&pending, "pending", false, "list messages still waiting for --user instead of a conversation")
	flagSet.BoolVar(&noColor, "no-color", false, "disable colored states")
	if err := flagSet.Parse(args); err != nil {
		return err
	}
	if userA == "" || (!pending && userB == "") {
		return fmt.Errorf("--user is required, and --partner unless --pending is set")
	}
	color.Enable = !noColor

	db, err := badger.Open(badger.DefaultOptions(dbPath).
		WithReadOnly(true).
		WithLogger(nil).
		WithBypassLockGuard(true))
	if err != nil {
		return fmt.Errorf("opening badger: %w", err)
	}
	defer db.Close()

	repo := storage.NewMessageRepository(db, slog.New(slog.NewTextHandler(io.Discard, nil)))
	ctx := context.Background()

	var msgs []chat.Message
	var next *string
	if pending {
		msgs, err = repo.PendingFor(ctx, chat.UserID(userA))
	} else {
		var c *string
		if cursor != "" {
			c = &cursor
		}
		msgs, next, err = repo.LoadHistory(ctx, chat.UserID(userA), chat.UserID(userB), c, limit)
	}
	if err != nil {
		return err
	}

	render(out, msgs)
	if next != nil {
		fmt.Fprintf(out, "\nmore with --cursor %s\n", *next)
	}
	return nil
}

func render(out io.Writer, msgs []chat.Message) {
	table := tablewriter.NewWriter(out)
	table.SetHeader([]string{"Sent at", "From", "To", "State", "Lang", "Content"})
	table.SetAutoWrapText(false)
	table.SetAutoFormatHeaders(true)
	table.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetCenterSeparator("")
	table.SetColumnSeparator("")
	table.SetRowSeparator("")
	table.SetHeaderLine(false)
	table.SetBorder(false)
	table.SetTablePadding("\t")

	for _, m := range msgs {
		table.Append([]string{
			m.SentAt.Format("2006-01-02 15:04:05.000"),
			string(m.From),
			string(m.To),
			colorState(m.State),
			m.Lang,
			content(m.Payload),
		})
	}
	table.Render()
}

func colorState(s chat.DeliveryState) string {
	switch s {
	case chat.Read:
		return color.Green.Sprint(s.String())
	case chat.Delivered:
		return color.Cyan.Sprint(s.String())
	default:
		return color.Yellow.Sprint(s.String())
	}
}

func content(p chat.Payload) string {
	parts := make([]string, 0, 2)
	if p.Text != "" {
		parts = append(parts, p.Text)
	}
	if a := p.Attachment; a != nil {
		parts = append(parts, fmt.Sprintf("[%s %s %dB]", a.ContentType, a.Name, a.Size))
	}
	return strings.Join(parts, " ")
}
