package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"text/tabwriter"
	"time"

	"github.com/shivam-bit/highlight/internal/config"
	"github.com/shivam-bit/highlight/internal/logging"
	"github.com/shivam-bit/highlight/internal/types"
)

var errProjectRequired = errors.New("project id is required: pass --project or set [api] project_id")

func printSessions(output io.Writer, sessions []*types.Session) {
	writer := tabwriter.NewWriter(output, 0, 8, 2, ' ', 0)
	fmt.Fprintln(writer, "SECURE ID\tIDENTIFIER\tLOCATION\tBROWSER\tLENGTH\tFLAGS")
	for _, session := range sessions {
		identifier := session.Identifier
		if identifier == "" {
			identifier = "-"
		}
		location := joinLocation(session.City, session.Country)
		fmt.Fprintf(writer, "%s\t%s\t%s\t%s\t%s\t%s\n",
			session.SecureID,
			identifier,
			location,
			orDash(session.BrowserName),
			(time.Duration(session.ActiveLength) * time.Millisecond).Round(time.Second),
			sessionFlags(session),
		)
	}
	_ = writer.Flush()
}

func joinLocation(city, country string) string {
	switch {
	case city != "" && country != "":
		return city + ", " + country
	case city != "":
		return city
	default:
		return orDash(country)
	}
}

func sessionFlags(session *types.Session) string {
	flags := ""
	if !session.Processed {
		flags += "L"
	}
	if session.Viewed {
		flags += "V"
	}
	if session.Starred {
		flags += "*"
	}
	return orDash(flags)
}

func orDash(value string) string {
	if value == "" {
		return "-"
	}
	return value
}

func commandLogger(stderr io.Writer, cfg config.CoreConfig) logging.Logger {
	return logging.New(stderr, logging.ParseLevel(cfg.LogLevel())).With(logging.F("request_id", logging.NewRequestID()))
}

func openUILog() (io.WriteCloser, error) {
	path, err := config.UILogPath()
	if err != nil {
		return nil, err
	}
	dataDir, err := config.DataDir()
	if err != nil {
		return nil, err
	}
	if err := os.MkdirAll(dataDir, 0o700); err != nil {
		return nil, err
	}
	return os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
}

func exitOnErr(label string, err error, stderr io.Writer) {
	if err == nil {
		return
	}
	fmt.Fprintf(stderr, "%s error: %v\n", label, err)
	os.Exit(1)
}
