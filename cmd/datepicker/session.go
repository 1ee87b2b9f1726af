package main

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"github.com/username/datepicker/internal/picker"
	"github.com/username/datepicker/internal/render"
	"github.com/username/datepicker/pkg/dateutil"
	"go.uber.org/zap"
)

const sessionHelp = `commands: open close toggle prev next month N year Y select YYYY-MM-DD today clear reset show help quit`

type sessionCommand struct {
	name string
	num  int
	date string
}

func parseSessionCommand(line string) (sessionCommand, error) {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return sessionCommand{}, fmt.Errorf("empty command")
	}

	cmd := sessionCommand{name: strings.ToLower(fields[0])}
	args := fields[1:]

	switch cmd.name {
	case "open", "close", "toggle", "prev", "next", "today", "clear", "reset", "show", "help", "quit", "exit":
		if len(args) != 0 {
			return cmd, fmt.Errorf("%s takes no arguments", cmd.name)
		}
	case "month", "year":
		if len(args) != 1 {
			return cmd, fmt.Errorf("usage: %s N", cmd.name)
		}
		n, err := strconv.Atoi(args[0])
		if err != nil {
			return cmd, fmt.Errorf("%s: %q is not a number", cmd.name, args[0])
		}
		cmd.num = n
	case "select":
		if len(args) != 1 {
			return cmd, fmt.Errorf("usage: select YYYY-MM-DD")
		}
		cmd.date = args[0]
	default:
		return cmd, fmt.Errorf("unknown command %q", cmd.name)
	}

	return cmd, nil
}

// session drives one engine from line commands
type session struct {
	engine   *picker.Engine
	renderer *render.TextRenderer
	out      io.Writer
}

// apply runs one command; it reports false when the session should end
func (s *session) apply(cmd sessionCommand) (bool, error) {
	e := s.engine

	switch cmd.name {
	case "open":
		e.Open()
	case "close":
		e.Close()
	case "toggle":
		e.Toggle()
	case "prev":
		e.NavigateMonth(picker.Prev)
	case "next":
		e.NavigateMonth(picker.Next)
	case "month":
		// 1-12 as typed by people
		if cmd.num < 1 || cmd.num > 12 {
			return true, fmt.Errorf("month must be 1-12, got %d", cmd.num)
		}
		e.SetMonthIndex(cmd.num - 1)
	case "year":
		e.SetYear(cmd.num)
	case "select":
		date, err := dateutil.Parse(dateutil.ISOLayout, cmd.date)
		if err != nil {
			return true, fmt.Errorf("select: %w", err)
		}
		if !e.SelectDay(date) {
			fmt.Fprintf(s.out, "%s is disabled\n", date)
		}
	case "today":
		if !e.GoToToday() {
			fmt.Fprintln(s.out, "today is disabled")
		}
	case "clear":
		e.Clear()
	case "reset":
		e.Reset()
	case "show":
	case "help":
		fmt.Fprintln(s.out, sessionHelp)
		return true, nil
	case "quit", "exit":
		return false, nil
	}

	return true, s.renderer.Render(s.out, e)
}

// run reads commands until EOF or quit; bad commands are reported and skipped
func (s *session) run(in io.Reader) error {
	scanner := bufio.NewScanner(in)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		cmd, err := parseSessionCommand(line)
		if err != nil {
			fmt.Fprintf(s.out, "error: %v\n", err)
			continue
		}

		more, err := s.apply(cmd)
		if err != nil {
			fmt.Fprintf(s.out, "error: %v\n", err)
		}
		if !more {
			return nil
		}
	}
	return scanner.Err()
}

func sessionCmd() *cobra.Command {
	var plain bool

	cmd := &cobra.Command{
		Use:   "session",
		Short: "Drive a picker with commands read from stdin",
		Long:  "Drive a picker with commands read from stdin, one per line. The grid is printed after every command.\n\n" + sessionHelp,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			onChange := func(selected *dateutil.Date) {
				value := "none"
				if selected != nil {
					value = selected.String()
				}
				logger.Info("Selection changed", zap.String("value", value))
				fmt.Fprintf(out, "→ change: %s\n", value)
			}

			engine, err := initializeEngine(cfg, engineParams{onChange: onChange})
			if err != nil {
				return err
			}

			s := &session{
				engine:   engine,
				renderer: render.NewTextRenderer(plain, cfg.Picker.IndicatorColor),
				out:      out,
			}
			return s.run(cmd.InOrStdin())
		},
	}

	cmd.Flags().BoolVar(&plain, "plain", false, "Disable colors and styling")

	return cmd
}
