package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/ismet55555/yojenkins-sub000/internal/errors"
)

// PromptTarget asks for a job or build to monitor when none was given on the
// command line. what is "build" or "job".
func PromptTarget(what string) (string, error) {
	var target string

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title(fmt.Sprintf("Which %s do you want to monitor?", what)).
				Description("Full URL, or a job path like folder/job-name").
				Placeholder(placeholderFor(what)).
				Value(&target).
				Validate(ValidateTarget),
		),
	)

	if err := form.Run(); err != nil {
		return "", errors.WrapWithCode(err, errors.ErrConfig,
			"Failed to get user input",
			fmt.Sprintf("Pass the %s URL as an argument instead", what))
	}
	return strings.TrimSpace(target), nil
}

// ValidateTarget rejects empty or whitespace-containing input.
func ValidateTarget(s string) error {
	s = strings.TrimSpace(s)
	if s == "" {
		return fmt.Errorf("a URL or job path is required")
	}
	if strings.ContainsAny(s, " \t\n") {
		return fmt.Errorf("URLs cannot contain whitespace")
	}
	return nil
}

func placeholderFor(what string) string {
	if what == "build" {
		return "https://ci.example.com/job/app/42/ or app/42"
	}
	return "https://ci.example.com/job/app/ or folder/app"
}
