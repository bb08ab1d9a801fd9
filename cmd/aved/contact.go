package main

import (
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/aved-sa/aved-web/internal/cache"
	"github.com/aved-sa/aved-web/internal/contact"
	"github.com/aved-sa/aved-web/internal/content"
	"github.com/aved-sa/aved-web/internal/i18n"

	"github.com/briandowns/spinner"
	"github.com/spf13/cobra"
)

var contactCmd = &cobra.Command{
	Use:   "contact",
	Short: "Send contact inquiries",
}

var contactSubmitCmd = &cobra.Command{
	Use:   "submit",
	Short: "Submit a contact inquiry",
	Long: `Validate and submit a contact inquiry exactly like the website form.

Example:
  aved contact submit --name "Sara Ali" --email sara@example.com \
    --phone "+966 50 123 4567" --message "Please call me back"
  aved contact submit ... --property-id 64f0c2 --property-type tower --unit 12 --floor 3`,
	RunE: func(cmd *cobra.Command, args []string) error {
		locale, err := localeFlag(cmd)
		if err != nil {
			return err
		}
		client, err := newBackendClient(cmd)
		if err != nil {
			return err
		}
		l := i18n.DefaultCatalog().Localizer(locale)

		name, _ := cmd.Flags().GetString("name")
		email, _ := cmd.Flags().GetString("email")
		var opts []contact.FormOption
		if id, _ := cmd.Flags().GetString("property-id"); id != "" {
			service := content.NewService(client, cache.NewMemoryStore(), 0, nil)
			property, err := service.Property(cmd.Context(), id, locale)
			if err != nil {
				return err
			}
			opts = append(opts, contact.WithProperty(&contact.PropertyRef{ID: property.ID, Name: property.NameText}))
		}

		out := cmd.OutOrStdout()
		ctrl := contact.NewController(contact.NewForm(contact.Prefill{Name: name, Email: email}, opts...), client,
			contact.WithLocalizer(l),
			contact.WithLogger(logger),
			contact.WithNotifier(printNotifier{out: out}),
		)

		for flag, field := range map[string]contact.Field{
			"phone":         contact.FieldPhone,
			"message":       contact.FieldMessage,
			"property-type": contact.FieldPropertyType,
		} {
			value, _ := cmd.Flags().GetString(flag)
			if err := ctrl.Set(field, value); err != nil {
				return err
			}
		}
		// Unit and floor only apply once the type is set
		for flag, field := range map[string]contact.Field{"unit": contact.FieldUnitNumber, "floor": contact.FieldFloorNumber} {
			value, _ := cmd.Flags().GetString(flag)
			if err := ctrl.Set(field, value); err != nil {
				return err
			}
		}

		s := spinner.New(spinner.CharSets[14], 120*time.Millisecond)
		s.Suffix = " " + l.T("contactSection.sending")
		s.Start()
		outcome, err := ctrl.Submit(cmd.Context())
		s.Stop()

		if errors.Is(err, contact.ErrInvalidForm) {
			for _, v := range outcome.Errors.Sorted() {
				fmt.Fprintf(out, "  %s: %s\n", v.Field, v.Message(l))
			}
			return err
		}
		if err != nil {
			return err
		}
		if outcome.State != contact.StateSuccess {
			return errors.New("inquiry was not accepted")
		}
		return nil
	},
}

// printNotifier writes submission outcomes to the terminal
type printNotifier struct {
	out io.Writer
}

func (p printNotifier) Success(message string) {
	fmt.Fprintf(p.out, "✓ %s\n", message)
}

func (p printNotifier) Error(message string) {
	fmt.Fprintf(p.out, "✗ %s\n", message)
}

func init() {
	flags := contactSubmitCmd.Flags()
	flags.String("name", "", "Your name")
	flags.String("email", "", "Your email address")
	flags.String("phone", "", "Your phone number")
	flags.String("message", "", "The inquiry")
	flags.String("property-type", "", "Property type: villa or tower")
	flags.String("unit", "", "Unit number (towers only)")
	flags.String("floor", "", "Floor number (towers only)")
	flags.String("property-id", "", "Listing the inquiry is about")
	contactCmd.AddCommand(contactSubmitCmd)
}
