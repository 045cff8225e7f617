package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"billable-timer/internal/domain"
)

// RunLines reads one command per line from in until EOF or quit. Errors are
// printed and do not end the loop. Blank lines and lines starting with # are
// skipped.
func (a *App) RunLines(ctx context.Context, in io.Reader) error {
	scanner := bufio.NewScanner(in)
	for scanner.Scan() {
		if err := ctx.Err(); err != nil {
			return err
		}

		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		args := strings.Fields(line)
		name := strings.ToLower(args[0])
		if name == "quit" || name == "exit" {
			break
		}
		if name == "help" {
			a.printf("%s\n", a.registry.GetUsage())
			continue
		}

		if err := a.Run(ctx, args); err != nil {
			a.printf("error: %s\n", a.errorHandler.HandleSimple(err))
		}
	}
	if err := scanner.Err(); err != nil {
		return err
	}

	return a.checkUnsaved()
}

// checkUnsaved warns about an open session and fails when stopped sessions
// never reached the ledger, so the process exits non-zero.
func (a *App) checkUnsaved() error {
	status := a.api.Status()
	if status.State == domain.StateRunning || status.State == domain.StatePaused {
		a.printf("warning: session for %s is still %s and was not recorded\n", status.ProjectName, status.State)
	}
	if status.PendingCount > 0 {
		return fmt.Errorf("%d stopped session(s) were not saved to the ledger", status.PendingCount)
	}
	return nil
}
