package conversation

import (
	"context"
	"fmt"

	"github.com/hammamikhairi/cookmate/internal/domain"
	"github.com/hammamikhairi/cookmate/internal/logger"
	"github.com/hammamikhairi/cookmate/internal/notice"
)

// Compile-time interface check.
var _ domain.Notifier = (*CLINotifier)(nil)

// ANSI escape codes for terminal formatting.
const (
	reset = "\033[0m"
	bold  = "\033[1m"
	red   = "\033[31m"
	cyan  = "\033[36m"
)

// PrintFunc is a function used to print formatted output.
// Matches the signature of both fmt.Printf and display.UI.Printf.
type PrintFunc func(format string, a ...interface{})

// CLINotifier prints notifications to the scrollback and, when a board is
// attached, pins them to the status bar until they expire.
type CLINotifier struct {
	log     *logger.Logger
	printFn PrintFunc
	board   *notice.Board
}

// NotifierOption configures a CLINotifier.
type NotifierOption func(*CLINotifier)

// WithBoard also posts every notification to b.
func WithBoard(b *notice.Board) NotifierOption {
	return func(n *CLINotifier) { n.board = b }
}

// NewCLINotifier creates a terminal notifier.
// If printFn is nil, fmt.Printf is used.
func NewCLINotifier(log *logger.Logger, printFn PrintFunc, opts ...NotifierOption) *CLINotifier {
	if printFn == nil {
		printFn = func(format string, a ...interface{}) {
			fmt.Printf(format+"\n", a...)
		}
	}
	n := &CLINotifier{log: log, printFn: printFn}
	for _, o := range opts {
		o(n)
	}
	return n
}

// Notify prints an informational notice.
func (n *CLINotifier) Notify(ctx context.Context, message string) error {
	n.log.Debug("notify: %s", message)
	n.printFn("%s%s%s%s", cyan, bold, message, reset)
	if n.board != nil {
		n.board.Info(message)
	}
	return nil
}

// NotifyUrgent prints an error notice in bold red.
func (n *CLINotifier) NotifyUrgent(ctx context.Context, message string) error {
	n.log.Debug("notify-urgent: %s", message)
	n.printFn("%s%s%s%s", red, bold, message, reset)
	if n.board != nil {
		n.board.Error(message)
	}
	return nil
}
