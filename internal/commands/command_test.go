package commands

import (
	"errors"
	"testing"
	"time"

	"github.com/sandeepkv93/studyping/internal/model"
)

func TestParseSupportedCommands(t *testing.T) {
	cases := []struct {
		in       string
		typeWant Type
	}{
		{"/add physics worksheet due:2024-05-01", TypeAdd},
		{"done a1b2c3", TypeDone},
		{"remove a1b2c3", TypeRemove},
		{"show exams", TypeShow},
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

func TestParseAddFull(t *testing.T) {
	cmd, err := Parse("add revise organic chemistry due:2024-05-10 sub:Chemistry type:exam pri:high")
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	add := cmd.Add
	if add.Title != "revise organic chemistry" {
		t.Fatalf("unexpected title: %q", add.Title)
	}
	if add.Subject != "Chemistry" {
		t.Fatalf("unexpected subject: %q", add.Subject)
	}
	if add.Type != model.TypeExam {
		t.Fatalf("unexpected type: %q", add.Type)
	}
	if add.Priority != model.PriorityHigh {
		t.Fatalf("unexpected priority: %q", add.Priority)
	}
	want := model.Date{Year: 2024, Month: time.May, Day: 10}
	if !add.Due.Equal(want) {
		t.Fatalf("unexpected due date: %s", add.Due)
	}
}

func TestParseAddShorthands(t *testing.T) {
	cmd, err := Parse("add maths hw due:2024-05-02 type:hw pri:m")
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if cmd.Add.Type != model.TypeHomework || cmd.Add.Priority != model.PriorityMedium {
		t.Fatalf("shorthands not resolved: %+v", cmd.Add)
	}
	if cmd.Add.Title != "maths hw" {
		t.Fatalf("unexpected title: %q", cmd.Add.Title)
	}
}

func TestParseAddErrors(t *testing.T) {
	cases := []string{
		"add",
		"add title only without due",
		"add essay due:yesterday",
		"add essay due:2024-05-01 type:quiz",
		"add essay due:2024-05-01 pri:urgent",
		"add due:2024-05-01",
	}
	for _, in := range cases {
		_, err := Parse(in)
		var ce *CommandError
		if !errors.As(err, &ce) || ce.Code != ErrCodeInvalidArgument {
			t.Fatalf("parse %q: expected invalid argument error, got %v", in, err)
		}
	}
}

func TestParseUnknownCommand(t *testing.T) {
	_, err := Parse("/snooze everything")
	var ce *CommandError
	if !errors.As(err, &ce) || ce.Code != ErrCodeUnknownCommand {
		t.Fatalf("expected unknown command error, got %v", err)
	}
}

func TestParseEmptyInput(t *testing.T) {
	for _, in := range []string{"", "   ", "/"} {
		_, err := Parse(in)
		var ce *CommandError
		if !errors.As(err, &ce) || ce.Code != ErrCodeEmptyInput {
			t.Fatalf("parse %q: expected empty input error, got %v", in, err)
		}
	}
}

func TestExecuteDispatch(t *testing.T) {
	cmd, err := Parse("/done abcd1234")
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}

	called := false
	res, err := Execute(cmd, Handlers{
		Done: func(a DoneArgs) (Result, error) {
			called = true
			if a.IDPrefix != "abcd1234" {
				t.Fatalf("unexpected prefix: %q", a.IDPrefix)
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
	cmd, err := Parse("show today")
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	_, err = Execute(cmd, Handlers{})
	var ce *CommandError
	if !errors.As(err, &ce) || ce.Code != ErrCodeHandlerMissing {
		t.Fatalf("expected missing handler error, got %v", err)
	}
}
