package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
)

// shell reads commands from the App's reader until EOF, exit or quit.
// Command errors are printed and the loop continues.
func (a *App) shell(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return nil
		default:
		}

		fmt.Fprint(a.out, "credkit> ")
		line, err := a.reader.ReadString('\n')
		if err != nil && !errors.Is(err, io.EOF) {
			return err
		}
		eof := err != nil

		fields := strings.Fields(line)
		if len(fields) > 0 {
			switch fields[0] {
			case "exit", "quit":
				return nil
			case "shell":
				fmt.Fprintln(a.out, "already in shell")
			default:
				if cmdErr := a.Dispatch(ctx, fields[0], fields[1:]); cmdErr != nil {
					fmt.Fprintf(a.out, "error: %v\n", cmdErr)
				}
			}
		}

		if eof {
			fmt.Fprintln(a.out)
			return nil
		}
	}
}
