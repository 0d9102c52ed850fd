package main

import (
	"errors"
	"fmt"
	"net/http"
	"sort"
	"time"

	"github.com/spf13/cobra"

	"github.com/bondspire/intake-api/pkg/intakeclient"
)

var (
	submitServer  string
	submitForm    string
	submitFields  map[string]string
	submitTypes   []string
	submitTimeout time.Duration
)

func init() {
	submitCmd.Flags().StringVar(&submitServer, "server", "http://localhost:8080", "Intake API base URL")
	submitCmd.Flags().StringVar(&submitForm, "form", string(intakeclient.Contact), "Form to submit: contact, newsletter or partnership")
	submitCmd.Flags().StringToStringVar(&submitFields, "field", nil, "Field value as name=value (repeatable)")
	submitCmd.Flags().StringSliceVar(&submitTypes, "partnership-type", nil, "Partnership category (repeatable)")
	submitCmd.Flags().DurationVar(&submitTimeout, "timeout", intakeclient.DefaultTimeout, "Request timeout")

	rootCmd.AddCommand(submitCmd)
}

var submitCmd = &cobra.Command{
	Use:   "submit",
	Short: "Submit an intake form against a running server",
	Long: `Fill in and submit one of the intake forms with the same local validation the
website applies.

Examples:
  intakectl submit --form newsletter --field email=jane@example.com
  intakectl submit --form contact --field name=Jane --field email=jane@example.com \
      --field message="I'd like to volunteer"
  intakectl submit --form partnership --partnership-type impact-investor \
      --field organizationName=Acme --field name=Jane --field email=jane@acme.org --field message=Hello`,
	RunE: runSubmit,
}

func runSubmit(cmd *cobra.Command, args []string) error {
	client, err := intakeclient.NewClient(&http.Client{Timeout: submitTimeout}, submitServer)
	if err != nil {
		return err
	}
	form, err := intakeclient.NewForm(intakeclient.Variant(submitForm), client, intakeclient.WithTimeout(submitTimeout))
	if err != nil {
		return err
	}

	names := make([]string, 0, len(submitFields))
	for name := range submitFields {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		if err := form.Set(name, submitFields[name]); err != nil {
			return err
		}
	}
	for _, t := range submitTypes {
		if err := form.TogglePartnershipType(t, true); err != nil {
			return err
		}
	}

	out := cmd.OutOrStdout()
	resp, err := form.Submit(cmd.Context())
	if err != nil {
		var fieldErrs intakeclient.FieldErrors
		if errors.As(err, &fieldErrs) {
			keys := make([]string, 0, len(fieldErrs))
			for k := range fieldErrs {
				keys = append(keys, k)
			}
			sort.Strings(keys)
			for _, k := range keys {
				fmt.Fprintf(out, "%s: %s\n", k, fieldErrs[k])
			}
			return errors.New("form has invalid fields")
		}
		if resp != nil && resp.Message != "" {
			fmt.Fprintf(out, "server: %s\n", resp.Message)
		}
		fmt.Fprintln(out, form.Message())
		return err
	}

	fmt.Fprintln(out, form.Message())
	if id := resp.ID(); id != "" {
		fmt.Fprintf(out, "id: %s\n", id)
	}
	return nil
}
