package ui

import (
	"errors"
	"io"

	"github.com/manifoldco/promptui"
)

// Confirm asks a yes/no question. Answering no is not an error.
func Confirm(label string, in io.ReadCloser, out io.WriteCloser) (bool, error) {
	prompt := promptui.Prompt{
		Label:     label,
		IsConfirm: true,
		Stdin:     in,
		Stdout:    out,
	}

	if _, err := prompt.Run(); err != nil {
		if errors.Is(err, promptui.ErrAbort) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}
