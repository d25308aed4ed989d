package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/wippyai/sc-scan/errors"
)

// stdinName is the argument that selects standard input.
const stdinName = "-"

type input struct {
	name string
	data []byte
}

// readInputs reads every named file in order. No names reads stdin.
func readInputs(stdin io.Reader, names []string) ([]input, error) {
	if len(names) == 0 {
		names = []string{stdinName}
	}

	inputs := make([]input, 0, len(names))
	for _, name := range names {
		data, err := readInput(stdin, name)
		if err != nil {
			return nil, err
		}
		inputs = append(inputs, input{name: name, data: data})
	}
	return inputs, nil
}

func readInput(stdin io.Reader, name string) ([]byte, error) {
	if name == stdinName {
		data, err := io.ReadAll(stdin)
		if err != nil {
			return nil, errors.Wrap(errors.PhaseInput, errors.KindInvalidInput, err, "read stdin")
		}
		return data, nil
	}

	data, err := os.ReadFile(name)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.NotFound(errors.PhaseInput, "file", name)
		}
		return nil, errors.Wrap(errors.PhaseInput, errors.KindInvalidInput, err, fmt.Sprintf("read %s", name))
	}
	return data, nil
}
