package main

import (
	"chat-sync/domain"
	"chat-sync/repositories"
	"flag"
	"fmt"
	"io"
	"log"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/dgraph-io/badger/v4"
	"github.com/mama165/sdk-go/logs"
	"github.com/olekukonko/tablewriter"
)

// inspect dumps the stored chat messages, newest first, one page at a time.
func main() {
	dbPath := flag.String("db", os.Getenv("BADGER_FILEPATH"), "Path to badger DB, defaults to $BADGER_FILEPATH")
	pageSize := flag.Int("page", 100, "Messages read per page")
	maxRows := flag.Int("max", 0, "Stop after this many messages, 0 for all")
	flag.Parse()

	db, err := openDB(*dbPath)
	if err != nil {
		log.Fatal("Error while opening Badger: ", err)
	}
	defer db.Close()

	repository := repositories.NewMessageRepository(db, logs.GetLoggerFromLevel(slog.LevelError), *pageSize)
	if err := dump(os.Stdout, repository, *pageSize, *maxRows); err != nil {
		log.Fatal(err)
	}
}

func dump(out io.Writer, repository repositories.IMessageRepository, pageSize, maxRows int) error {
	table := tablewriter.NewWriter(out)
	table.SetHeader([]string{"ID", "Created At", "Version", "Deleted", "Body"})
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

	rows := 0
	var cursor *string
	for {
		messages, next, err := repository.GetMessages(pageSize, cursor)
		if err != nil {
			return err
		}
		for _, msg := range messages {
			if maxRows > 0 && rows == maxRows {
				table.Render()
				return nil
			}
			table.Append(row(msg))
			rows++
		}
		if next == nil {
			break
		}
		cursor = next
	}
	table.Render()
	return nil
}

func row(msg domain.Message) []string {
	body := strings.ReplaceAll(msg.Body, "\n", " ")
	if len([]rune(body)) > 60 {
		body = string([]rune(body)[:60]) + "..."
	}
	return []string{
		msg.ID,
		msg.CreatedAt,
		strconv.Itoa(msg.Version),
		strconv.FormatBool(msg.Deleted),
		body,
	}
}

func openDB(path string) (*badger.DB, error) {
	opts := badger.DefaultOptions(path).
		WithReadOnly(true).
		WithLogger(nil).
		WithBypassLockGuard(true)

	db, err := badger.Open(opts)
	if err != nil {
		// A crashed writer leaves a log to truncate: replay it once in write mode
		if strings.Contains(err.Error(), "Log truncate required") {
			repaired, err := badger.Open(badger.DefaultOptions(path).WithLogger(nil).WithBypassLockGuard(true))
			if err != nil {
				return nil, fmt.Errorf("repair failed: %w", err)
			}
			_ = repaired.Close()
			return badger.Open(opts)
		}
		return nil, err
	}
	return db, nil
}
