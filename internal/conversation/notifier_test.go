package conversation

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/hammamikhairi/cookmate/internal/logger"
	"github.com/hammamikhairi/cookmate/internal/notice"
)

func TestCLINotifierPostsToBoard(t *testing.T) {
	var lines []string
	printFn := func(format string, a ...interface{}) {
		lines = append(lines, fmt.Sprintf(format, a...))
	}
	board := notice.NewBoard(time.Minute)
	n := NewCLINotifier(logger.New(logger.LevelOff, nil), printFn, WithBoard(board))
	ctx := context.Background()

	if err := n.Notify(ctx, "Recipe saved"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := n.NotifyUrgent(ctx, "Could not update favorites"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(lines) != 2 || !strings.Contains(lines[1], red) {
		t.Fatalf("unexpected output %q", lines)
	}
	active := board.Active()
	if len(active) != 2 {
		t.Fatalf("expected 2 notices, got %d", len(active))
	}
	if active[1].Kind != notice.KindError {
		t.Fatalf("expected error notice, got %v", active[1].Kind)
	}
}
