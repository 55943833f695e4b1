package domain

import "go.trai.ch/zerr"

var (
	// ErrTaskAlreadyExists is returned when attempting to add a task with a name that already exists.
	ErrTaskAlreadyExists = zerr.New("task already exists")

	// ErrTaskNotFound is returned when a requested task is not found in the set.
	ErrTaskNotFound = zerr.New("task not found")

	// ErrInvalidTaskName is returned when a task name is empty.
	ErrInvalidTaskName = zerr.New("invalid task name")

	// ErrNoTasksDefined is returned when a mapfile declares no tasks.
	ErrNoTasksDefined = zerr.New("no tasks defined")

	// ErrNoTasksSpecified is returned when no tasks are specified for the run command.
	ErrNoTasksSpecified = zerr.New("no tasks specified")

	// ErrConfigNotFound is returned when the mapfile cannot be found.
	ErrConfigNotFound = zerr.New("could not find mapfile")

	// ErrConfigReadFailed is returned when the mapfile cannot be read.
	ErrConfigReadFailed = zerr.New("failed to read config file")

	// ErrConfigParseFailed is returned when the mapfile cannot be parsed.
	ErrConfigParseFailed = zerr.New("failed to parse config file")

	// ErrUnknownMapper is returned when a task declares a mapper kind the loader does not know.
	ErrUnknownMapper = zerr.New("unknown mapper kind")

	// ErrUnknownOperation is returned when a task declares an operation the loader does not know.
	ErrUnknownOperation = zerr.New("unknown operation")

	// ErrUnknownFlag is returned when a regex flag name is not recognized.
	ErrUnknownFlag = zerr.New("unknown regex flag")
)
