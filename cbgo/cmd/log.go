package cmd

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/ethereum/go-ethereum/log"
	"github.com/urfave/cli/v2"
)

func Logger(w io.Writer, lvl slog.Level) log.Logger {
	return log.NewLogger(log.LogfmtHandlerWithLevel(w, lvl))
}

// LevelFromContext reads the log level flag, defaulting to info.
func LevelFromContext(ctx *cli.Context) (slog.Level, error) {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(ctx.String(LogLevelFlag.Name))); err != nil {
		return 0, fmt.Errorf("invalid log level %q: %w", ctx.String(LogLevelFlag.Name), err)
	}
	return lvl, nil
}

// Lamports lazy-formats a lamport amount with its SOL value for logging.
type Lamports uint64

func (v Lamports) String() string {
	whole, frac := uint64(v)/1_000_000_000, uint64(v)%1_000_000_000
	return fmt.Sprintf("%d (%d.%09d SOL)", uint64(v), whole, frac)
}

func (v Lamports) MarshalText() ([]byte, error) {
	return []byte(v.String()), nil
}
