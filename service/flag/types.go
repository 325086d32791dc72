package flag

import (
	"errors"

	"github.com/elC0mpa/ec2-observe/model"
)

// ErrNoWorkflow is returned when the command line only asked for help or the version
var ErrNoWorkflow = errors.New("no workflow selected")

type service struct {
	version string
}

type FlagService interface {
	GetParsedFlags(args []string) (model.Flags, error)
}
