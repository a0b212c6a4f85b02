package cli

import (
	"fmt"

	"github.com/charmbracelet/huh"

	"github.com/julianstephens/microhabit/internal/constants"
	"github.com/julianstephens/microhabit/internal/models"
	"github.com/julianstephens/microhabit/internal/tracker"
)

type OnboardCmd struct {
	Template []string `help:"Template ids to start with (3-5). Prompts when omitted." short:"t"`
}

func (c *OnboardCmd) Run(ctx *Context) error {
	t, err := ctx.Tracker()
	if err != nil {
		return err
	}
	if t.IsOnboarded() {
		return tracker.ErrAlreadyOnboarded
	}

	ids := c.Template
	if len(ids) == 0 {
		if !ctx.Interactive {
			return fmt.Errorf("%w: pass --template when not running in a terminal", tracker.ErrInvalidSelection)
		}
		ids, err = SelectTemplates()
		if err != nil {
			return err
		}
		if ids == nil {
			fmt.Fprintln(ctx.out(), "Onboarding cancelled.")
			return nil
		}
	}

	habits, err := t.Onboard(ctx.context(), ids)
	if err != nil {
		return err
	}

	out := ctx.out()
	fmt.Fprintln(out, titleStyle.Render("Your micro-habits are ready"))
	for i, h := range habits {
		fmt.Fprintf(out, "  %d. %s %s\n", i+1, h.Icon, h.Name)
	}
	fmt.Fprintln(out)
	fmt.Fprintln(out, mutedStyle.Render("Rate them daily with 'microhabit rate <habit> <stars>' or open 'microhabit tui'."))
	return nil
}

// SelectTemplates prompts for 3-5 templates. A nil result means the user aborted.
func SelectTemplates() ([]string, error) {
	templates := models.HabitTemplates()
	options := make([]huh.Option[string], 0, len(templates))
	for _, tmpl := range templates {
		label := fmt.Sprintf("%s %s (%s)", tmpl.Icon, tmpl.Name, tmpl.Description)
		options = append(options, huh.NewOption(label, tmpl.ID))
	}

	var selected []string
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewMultiSelect[string]().
				Title("Choose your micro-habits").
				Description(fmt.Sprintf("Pick between %d and %d", constants.MinOnboardingHabits, constants.MaxOnboardingHabits)).
				Options(options...).
				Limit(constants.MaxOnboardingHabits).
				Validate(func(ids []string) error {
					if len(ids) < constants.MinOnboardingHabits {
						return fmt.Errorf("select at least %d habits", constants.MinOnboardingHabits)
					}
					return nil
				}).
				Value(&selected),
		),
	)

	if err := form.Run(); err != nil {
		if err == huh.ErrUserAborted {
			return nil, nil
		}
		return nil, err
	}
	return selected, nil
}
