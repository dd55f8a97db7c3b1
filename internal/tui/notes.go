package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/huh"
)

// CollectNotes prompts for what was learned, one note per line. Up to
// five notes are kept.
func CollectNotes(topic string) ([]string, error) {
	var raw string

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewText().
				Title("What did you learn?").
				Description(fmt.Sprintf("Topic: %s. Write 3-5 points, one per line.", topic)).
				Value(&raw),
		),
	).WithTheme(huh.ThemeDracula())

	if err := form.Run(); err != nil {
		return nil, err
	}

	var notes []string
	for _, line := range strings.Split(raw, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		notes = append(notes, line)
		if len(notes) == 5 {
			break
		}
	}

	return notes, nil
}

// SessionSetup prompts for the topic and planned duration before a
// timed session starts.
func SessionSetup() (string, int, error) {
	var topic string
	duration := 25

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("What are you studying?").
				Value(&topic).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return fmt.Errorf("topic required")
					}
					return nil
				}),
			huh.NewSelect[int]().
				Title("Planned duration").
				Options(
					huh.NewOption("15 minutes", 15),
					huh.NewOption("25 minutes", 25),
					huh.NewOption("45 minutes", 45),
					huh.NewOption("60 minutes", 60),
				).
				Value(&duration),
		),
	).WithTheme(huh.ThemeDracula())

	if err := form.Run(); err != nil {
		return "", 0, err
	}

	return strings.TrimSpace(topic), duration, nil
}
