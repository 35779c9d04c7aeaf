package commands

import (
	"fmt"
	"strconv"
	"strings"
)

type Type string

const (
	TypeAdd      Type = "add"
	TypeFolder   Type = "folder"
	TypeDuration Type = "duration"
	TypeVolume   Type = "volume"
	TypeLoop     Type = "loop"
	TypeHistory  Type = "history"
)

type ErrorCode string

const (
	ErrCodeEmptyInput      ErrorCode = "empty_input"
	ErrCodeUnknownCommand  ErrorCode = "unknown_command"
	ErrCodeInvalidArgument ErrorCode = "invalid_argument"
	ErrCodeHandlerMissing  ErrorCode = "handler_missing"
)

type CommandError struct {
	Code    ErrorCode
	Message string
}

func (e *CommandError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

type AddArgs struct {
	Text string
}

type FolderArgs struct {
	Path string
}

type DurationArgs struct {
	Minutes int
}

// Entry fields are zero-based; the palette accepts one-based row numbers.
type VolumeArgs struct {
	Entry   int
	Percent int
}

type LoopArgs struct {
	Entry int
	On    bool
}

// A zero Limit means the default page size.
type HistoryArgs struct {
	Limit int
	Clear bool
}

type Command struct {
	Type     Type
	Raw      string
	Add      *AddArgs
	Folder   *FolderArgs
	Duration *DurationArgs
	Volume   *VolumeArgs
	Loop     *LoopArgs
	History  *HistoryArgs
}

func Parse(input string) (Command, error) {
	raw := strings.TrimSpace(input)
	if raw == "" {
		return Command{}, &CommandError{Code: ErrCodeEmptyInput, Message: "command is empty"}
	}
	if strings.HasPrefix(raw, "/") {
		raw = strings.TrimSpace(strings.TrimPrefix(raw, "/"))
	}
	if raw == "" {
		return Command{}, &CommandError{Code: ErrCodeEmptyInput, Message: "command is empty"}
	}

	parts := strings.Fields(raw)
	head := strings.ToLower(parts[0])
	rest := strings.TrimSpace(strings.TrimPrefix(raw, parts[0]))
	args := parts[1:]

	switch Type(head) {
	case TypeAdd:
		return parseAdd(input, rest)
	case TypeFolder:
		return parseFolder(input, rest)
	case TypeDuration:
		return parseDuration(input, args)
	case TypeVolume:
		return parseVolume(input, args)
	case TypeLoop:
		return parseLoop(input, args)
	case TypeHistory:
		return parseHistory(input, args)
	default:
		return Command{}, &CommandError{Code: ErrCodeUnknownCommand, Message: fmt.Sprintf("unsupported command: %s", head)}
	}
}

func parseAdd(raw, rest string) (Command, error) {
	if rest == "" {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: "add requires task text"}
	}
	return Command{Type: TypeAdd, Raw: raw, Add: &AddArgs{Text: rest}}, nil
}

// parseFolder keeps the path verbatim so folders with spaces survive.
func parseFolder(raw, rest string) (Command, error) {
	if rest == "" {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: "folder requires a path"}
	}
	return Command{Type: TypeFolder, Raw: raw, Folder: &FolderArgs{Path: rest}}, nil
}

func parseDuration(raw string, args []string) (Command, error) {
	if len(args) != 1 {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: "duration requires minutes"}
	}
	minutes, err := strconv.Atoi(args[0])
	if err != nil || minutes < 1 {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: fmt.Sprintf("duration must be a whole number of minutes >= 1, got %q", args[0])}
	}
	return Command{Type: TypeDuration, Raw: raw, Duration: &DurationArgs{Minutes: minutes}}, nil
}

func parseVolume(raw string, args []string) (Command, error) {
	if len(args) != 2 {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: "volume requires entry number and percent"}
	}
	entry, err := parseEntry(args[0])
	if err != nil {
		return Command{}, err
	}
	percent, convErr := strconv.Atoi(strings.TrimSuffix(args[1], "%"))
	if convErr != nil {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: fmt.Sprintf("invalid percent: %q", args[1])}
	}
	return Command{Type: TypeVolume, Raw: raw, Volume: &VolumeArgs{Entry: entry, Percent: percent}}, nil
}

func parseLoop(raw string, args []string) (Command, error) {
	if len(args) != 2 {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: "loop requires entry number and on|off"}
	}
	entry, err := parseEntry(args[0])
	if err != nil {
		return Command{}, err
	}
	var on bool
	switch strings.ToLower(args[1]) {
	case "on", "true", "yes":
		on = true
	case "off", "false", "no":
		on = false
	default:
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: fmt.Sprintf("loop expects on or off, got %q", args[1])}
	}
	return Command{Type: TypeLoop, Raw: raw, Loop: &LoopArgs{Entry: entry, On: on}}, nil
}

func parseHistory(raw string, args []string) (Command, error) {
	switch {
	case len(args) == 0:
		return Command{Type: TypeHistory, Raw: raw, History: &HistoryArgs{}}, nil
	case len(args) > 1:
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: "history takes a count or clear"}
	case strings.EqualFold(args[0], "clear"):
		return Command{Type: TypeHistory, Raw: raw, History: &HistoryArgs{Clear: true}}, nil
	}
	n, err := strconv.Atoi(args[0])
	if err != nil || n < 1 {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: fmt.Sprintf("history count must be >= 1, got %q", args[0])}
	}
	return Command{Type: TypeHistory, Raw: raw, History: &HistoryArgs{Limit: n}}, nil
}

func parseEntry(s string) (int, error) {
	n, err := strconv.Atoi(s)
	if err != nil || n < 1 {
		return 0, &CommandError{Code: ErrCodeInvalidArgument, Message: fmt.Sprintf("invalid entry number: %q", s)}
	}
	return n - 1, nil
}
