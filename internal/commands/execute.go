package commands

import "fmt"

type Result struct {
	Message string
}

type Handlers struct {
	Add      func(AddArgs) (Result, error)
	Folder   func(FolderArgs) (Result, error)
	Duration func(DurationArgs) (Result, error)
	Volume   func(VolumeArgs) (Result, error)
	Loop     func(LoopArgs) (Result, error)
	History  func(HistoryArgs) (Result, error)
}

func Execute(cmd Command, handlers Handlers) (Result, error) {
	switch cmd.Type {
	case TypeAdd:
		if handlers.Add == nil {
			return Result{}, missing(cmd.Type)
		}
		return handlers.Add(*cmd.Add)
	case TypeFolder:
		if handlers.Folder == nil {
			return Result{}, missing(cmd.Type)
		}
		return handlers.Folder(*cmd.Folder)
	case TypeDuration:
		if handlers.Duration == nil {
			return Result{}, missing(cmd.Type)
		}
		return handlers.Duration(*cmd.Duration)
	case TypeVolume:
		if handlers.Volume == nil {
			return Result{}, missing(cmd.Type)
		}
		return handlers.Volume(*cmd.Volume)
	case TypeLoop:
		if handlers.Loop == nil {
			return Result{}, missing(cmd.Type)
		}
		return handlers.Loop(*cmd.Loop)
	case TypeHistory:
		if handlers.History == nil {
			return Result{}, missing(cmd.Type)
		}
		return handlers.History(*cmd.History)
	default:
		return Result{}, &CommandError{Code: ErrCodeUnknownCommand, Message: fmt.Sprintf("unknown command type: %s", cmd.Type)}
	}
}

func missing(t Type) error {
	return &CommandError{Code: ErrCodeHandlerMissing, Message: fmt.Sprintf("%s handler not configured", t)}
}
