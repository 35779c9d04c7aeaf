package commands

import (
	"errors"
	"testing"
)

func TestParseSupportedCommands(t *testing.T) {
	cases := []struct {
		in       string
		typeWant Type
	}{
		{"/add buy milk", TypeAdd},
		{"folder /home/me/Music", TypeFolder},
		{"duration 5", TypeDuration},
		{"volume 2 40", TypeVolume},
		{"LOOP 1 on", TypeLoop},
		{"/history", TypeHistory},
	}

	for _, tc := range cases {
		cmd, err := Parse(tc.in)
		if err != nil {
			t.Fatalf("parse %q failed: %v", tc.in, err)
		}
		if cmd.Type != tc.typeWant {
			t.Fatalf("parse %q type = %s, want %s", tc.in, cmd.Type, tc.typeWant)
		}
	}
}

func TestParseKeepsFolderPathVerbatim(t *testing.T) {
	cmd, err := Parse("folder  /tmp/My Music ")
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if cmd.Folder.Path != "/tmp/My Music" {
		t.Fatalf("unexpected path: %q", cmd.Folder.Path)
	}
}

func TestParseConvertsEntryToZeroBased(t *testing.T) {
	cmd, err := Parse("volume 3 55%")
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if cmd.Volume.Entry != 2 || cmd.Volume.Percent != 55 {
		t.Fatalf("unexpected volume args: %+v", cmd.Volume)
	}

	cmd, err = Parse("loop 1 off")
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if cmd.Loop.Entry != 0 || cmd.Loop.On {
		t.Fatalf("unexpected loop args: %+v", cmd.Loop)
	}
}

func TestParseRejectsInvalidArguments(t *testing.T) {
	for _, in := range []string{
		"add",
		"folder",
		"duration 0",
		"duration -3",
		"duration abc",
		"volume 0 50",
		"volume 1",
		"volume 1 loud",
		"loop 2 maybe",
		"loop x on",
		"history 0",
		"history few",
		"history 3 clear",
	} {
		_, err := Parse(in)
		var ce *CommandError
		if !errors.As(err, &ce) || ce.Code != ErrCodeInvalidArgument {
			t.Fatalf("parse %q: expected invalid argument, got %v", in, err)
		}
	}
}

func TestParseHistoryArgs(t *testing.T) {
	cases := []struct {
		in   string
		want HistoryArgs
	}{
		{"history", HistoryArgs{}},
		{"/history 12", HistoryArgs{Limit: 12}},
		{"history CLEAR", HistoryArgs{Clear: true}},
	}
	for _, tc := range cases {
		cmd, err := Parse(tc.in)
		if err != nil {
			t.Fatalf("parse %q failed: %v", tc.in, err)
		}
		if *cmd.History != tc.want {
			t.Fatalf("parse %q = %+v, want %+v", tc.in, *cmd.History, tc.want)
		}
	}
}

func TestParseEmptyAndUnknown(t *testing.T) {
	var ce *CommandError
	if _, err := Parse("  / "); !errors.As(err, &ce) || ce.Code != ErrCodeEmptyInput {
		t.Fatalf("expected empty input error, got %v", err)
	}
	if _, err := Parse("/snooze all"); !errors.As(err, &ce) || ce.Code != ErrCodeUnknownCommand {
		t.Fatalf("expected unknown command error, got %v", err)
	}
}

func TestExecuteDispatch(t *testing.T) {
	cmd, err := Parse("/add write docs")
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}

	called := false
	res, err := Execute(cmd, Handlers{
		Add: func(a AddArgs) (Result, error) {
			called = true
			if a.Text != "write docs" {
				t.Fatalf("unexpected text: %q", a.Text)
			}
			return Result{Message: "ok"}, nil
		},
	})
	if err != nil {
		t.Fatalf("execute failed: %v", err)
	}
	if !called || res.Message != "ok" {
		t.Fatalf("dispatch failed, called=%v res=%+v", called, res)
	}
}

func TestExecuteMissingHandler(t *testing.T) {
	cmd, err := Parse("duration 10")
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	_, err = Execute(cmd, Handlers{})
	var ce *CommandError
	if !errors.As(err, &ce) || ce.Code != ErrCodeHandlerMissing {
		t.Fatalf("expected missing handler error, got %v", err)
	}
}
