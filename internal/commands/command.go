// Package commands parses the quick-entry palette syntax:
//
//	add <title> due:2024-05-01 [sub:Physics] [type:exam] [pri:high]
//	done <id-prefix>
//	remove <id-prefix>
//	show all|priority|today|exams
package commands

import (
	"fmt"
	"strings"

	"github.com/sandeepkv93/studyping/internal/model"
)

type Type string

const (
	TypeAdd    Type = "add"
	TypeDone   Type = "done"
	TypeRemove Type = "remove"
	TypeShow   Type = "show"
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
	Title    string
	Subject  string
	Type     model.TaskType
	Due      model.Date
	Priority model.Priority
}

type DoneArgs struct {
	IDPrefix string
}

type RemoveArgs struct {
	IDPrefix string
}

type ShowArgs struct {
	Filter string
}

type Command struct {
	Type   Type
	Raw    string
	Add    *AddArgs
	Done   *DoneArgs
	Remove *RemoveArgs
	Show   *ShowArgs
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
	args := parts[1:]

	switch Type(head) {
	case TypeAdd:
		return parseAdd(input, args)
	case TypeDone:
		return parseDone(input, args)
	case TypeRemove:
		return parseRemove(input, args)
	case TypeShow:
		return parseShow(input, args)
	default:
		return Command{}, &CommandError{Code: ErrCodeUnknownCommand, Message: fmt.Sprintf("unsupported command: %s", head)}
	}
}

func parseAdd(raw string, args []string) (Command, error) {
	if len(args) == 0 {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: "add requires a title"}
	}

	add := AddArgs{}
	titleWords := make([]string, 0, len(args))
	for _, arg := range args {
		key, value, isPair := splitPair(arg)
		if !isPair {
			titleWords = append(titleWords, arg)
			continue
		}
		switch key {
		case "due", "date":
			due, err := model.ParseDate(value)
			if err != nil {
				return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: fmt.Sprintf("bad due date %q, want YYYY-MM-DD", value)}
			}
			add.Due = due
		case "sub", "subject":
			add.Subject = value
		case "type":
			taskType, ok := parseTaskType(value)
			if !ok {
				return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: fmt.Sprintf("unknown task type %q", value)}
			}
			add.Type = taskType
		case "pri", "priority":
			priority, ok := parsePriority(value)
			if !ok {
				return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: fmt.Sprintf("unknown priority %q", value)}
			}
			add.Priority = priority
		default:
			titleWords = append(titleWords, arg)
		}
	}

	add.Title = strings.TrimSpace(strings.Join(titleWords, " "))
	if add.Title == "" {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: "add requires a title"}
	}
	if add.Due.IsZero() {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: "add requires due:YYYY-MM-DD"}
	}
	return Command{Type: TypeAdd, Raw: raw, Add: &add}, nil
}

func parseDone(raw string, args []string) (Command, error) {
	if len(args) != 1 {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: "done requires a task id prefix"}
	}
	return Command{Type: TypeDone, Raw: raw, Done: &DoneArgs{IDPrefix: args[0]}}, nil
}

func parseRemove(raw string, args []string) (Command, error) {
	if len(args) != 1 {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: "remove requires a task id prefix"}
	}
	return Command{Type: TypeRemove, Raw: raw, Remove: &RemoveArgs{IDPrefix: args[0]}}, nil
}

func parseShow(raw string, args []string) (Command, error) {
	if len(args) != 1 {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: "show requires a filter: all, priority, today or exams"}
	}
	return Command{Type: TypeShow, Raw: raw, Show: &ShowArgs{Filter: strings.ToLower(args[0])}}, nil
}

func splitPair(arg string) (key, value string, ok bool) {
	idx := strings.Index(arg, ":")
	if idx <= 0 || idx == len(arg)-1 {
		return "", "", false
	}
	return strings.ToLower(arg[:idx]), arg[idx+1:], true
}

func parseTaskType(value string) (model.TaskType, bool) {
	switch strings.ToLower(value) {
	case "homework", "hw":
		return model.TypeHomework, true
	case "exam":
		return model.TypeExam, true
	case "test", "classtest", "class-test":
		return model.TypeClassTest, true
	case "project":
		return model.TypeProject, true
	case "other":
		return model.TypeOther, true
	default:
		return "", false
	}
}

func parsePriority(value string) (model.Priority, bool) {
	switch strings.ToLower(value) {
	case "low", "l":
		return model.PriorityLow, true
	case "medium", "med", "m":
		return model.PriorityMedium, true
	case "high", "h":
		return model.PriorityHigh, true
	default:
		return "", false
	}
}
