package service

import (
	"context"
	"fmt"
	"strings"

	"time-warp/internal/models"
	"time-warp/internal/timeutil"
)

// CommandRunner dispatches operator commands. Travel commands wrap an
// arbitrary nested command, including further travel commands, so nesting
// flows through the same path as everything else.
type CommandRunner struct {
	travel *TravelService
	warps  *WarpService
}

// NewCommandRunner creates a new CommandRunner
func NewCommandRunner(travel *TravelService, warps *WarpService) *CommandRunner {
	return &CommandRunner{travel: travel, warps: warps}
}

// Execute runs a tokenized command under ctx and returns its user-facing
// output. ctx carries the active override, if any, so nested commands see the
// travelled time.
func (r *CommandRunner) Execute(ctx context.Context, args []string) (string, error) {
	if len(args) == 0 {
		return "", fmt.Errorf("empty command")
	}

	switch strings.ToLower(args[0]) {
	case "now":
		return r.executeNow(ctx)
	case "travel":
		return r.executeTravel(ctx, args[1:])
	case "warp":
		return r.executeWarp(ctx, args[1:])
	default:
		return "", fmt.Errorf("unknown command %q", args[0])
	}
}

func (r *CommandRunner) executeNow(ctx context.Context) (string, error) {
	now := timeutil.Now(ctx)
	return fmt.Sprintf("%s (epoch-ms %d)", timeutil.Format(now), now.UnixMilli()), nil
}

func (r *CommandRunner) executeTravel(ctx context.Context, args []string) (string, error) {
	if len(args) < 3 {
		return "", fmt.Errorf("usage: travel to|by|warp <value> <command...>")
	}

	mode, value, rest := args[0], args[1], args[2:]

	var output string
	body := func(ctx context.Context) error {
		out, err := r.Execute(ctx, rest)
		output = out
		return err
	}

	var err error
	if strings.EqualFold(mode, "warp") {
		err = r.travel.RunWarp(ctx, value, body)
	} else {
		err = r.travel.Run(ctx, mode, value, body)
	}
	if err != nil {
		return "", err
	}
	return output, nil
}

func (r *CommandRunner) executeWarp(ctx context.Context, args []string) (string, error) {
	if len(args) == 0 {
		return "", fmt.Errorf("usage: warp create|delete|list ...")
	}

	switch strings.ToLower(args[0]) {
	case "create":
		if len(args) < 4 {
			return "", fmt.Errorf("usage: warp create <id> to|by <value> [description...]")
		}
		description := strings.Join(args[4:], " ")
		wp, err := r.warps.Create(ctx, args[1], args[2], args[3], description)
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("warp %q created (%s)", wp.ID, describeOverride(wp.Descriptor)), nil

	case "delete":
		if len(args) != 2 {
			return "", fmt.Errorf("usage: warp delete <id>")
		}
		if err := r.warps.Delete(ctx, args[1]); err != nil {
			return "", err
		}
		return fmt.Sprintf("warp %q deleted", args[1]), nil

	case "list":
		warps, err := r.warps.List(ctx)
		if err != nil {
			return "", err
		}
		if len(warps) == 0 {
			return "no warp points", nil
		}
		var sb strings.Builder
		for i, wp := range warps {
			if i > 0 {
				sb.WriteString("\n")
			}
			sb.WriteString(fmt.Sprintf("%s: %s", wp.ID, describeOverride(wp.Descriptor)))
			if wp.Description != "" {
				sb.WriteString(" (" + wp.Description + ")")
			}
		}
		return sb.String(), nil

	default:
		return "", fmt.Errorf("unknown warp subcommand %q", args[0])
	}
}

// describeOverride renders a descriptor the way an operator would type it.
func describeOverride(desc models.OverrideDescriptor) string {
	if desc.Mode == models.ModeAbsolute {
		return fmt.Sprintf("to %s", timeutil.Format(desc.Target()))
	}
	return fmt.Sprintf("by %s", desc.Delta())
}
