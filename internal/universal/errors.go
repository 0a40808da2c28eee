package universal

import "errors"

var (
	ErrInputMissing = errors.New("both folder1 and folder2 must exist")
	ErrOutputExists = errors.New("output folder already exists")
)

type Stage string

const (
	StageValidating Stage = "validating"
	StageCopying    Stage = "copying"
	StageMerging    Stage = "merging"
	StageDone       Stage = "done"
)

// StageError carries the stage a run failed in. Its message is the cause's, unchanged.
type StageError struct {
	Stage Stage
	Err   error
}

func (e *StageError) Error() string {
	return e.Err.Error()
}

func (e *StageError) Unwrap() error {
	return e.Err
}
