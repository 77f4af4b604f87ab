package ui

import (
	"fmt"

	"github.com/AlecAivazis/survey/v2"
)

// PromptYesNo prompts the user for a yes/no answer
func (u *UI) PromptYesNo(prompt string, defaultYes bool) (bool, error) {
	if u.nonInteractive {
		return defaultYes, nil
	}

	var result bool
	p := &survey.Confirm{
		Message: prompt,
		Default: defaultYes,
	}

	err := survey.AskOne(p, &result)
	return result, err
}

// ConfirmOverwrite asks whether an existing path may be replaced. It
// satisfies safefs.Confirmer. In non-interactive mode nothing is replaced.
func (u *UI) ConfirmOverwrite(path string) (bool, error) {
	if u.assumeYes {
		return true, nil
	}
	if u.nonInteractive {
		u.Warningf("%s already exists, not replacing it", path)
		return false, nil
	}
	return u.PromptYesNo(fmt.Sprintf("%s already exists. Replace it?", path), false)
}
