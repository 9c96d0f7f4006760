package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/battlekeep/battlekeep/internal/model"
)

func newAccountCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "account",
		Short: "Account management commands",
	}

	cmd.AddCommand(newAccountShowCmd())
	cmd.AddCommand(newAccountFullCmd())
	cmd.AddCommand(newAccountLoginCmd())
	cmd.AddCommand(newAccountDeleteCmd())
	cmd.AddCommand(newAccountSettingsCmd())

	return cmd
}

func newAccountShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show <user-id>",
		Short: "Show the directory view of an account (listings per collection)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			listings, err := app.AccountService.GetAccount(cmd.Context(), args[0])
			if err != nil {
				out.PrintError(err)
				return err
			}
			out.Print(listings)
			return nil
		},
	}
}

func newAccountFullCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "full <user-id>",
		Short: "Show the full aggregate including raw entity collections",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			account, err := app.AccountService.GetFullAccount(cmd.Context(), args[0])
			if err != nil {
				out.PrintError(err)
				return err
			}
			out.Print(account)
			return nil
		},
	}
}

func newAccountLoginCmd() *cobra.Command {
	var patreonID, googleID, accessKey, refreshKey, standing string

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Run the login upsert by hand (creates or updates an account)",
		RunE: func(cmd *cobra.Command, args []string) error {
			account, err := app.AccountService.UpsertUser(cmd.Context(),
				patreonID, accessKey, refreshKey, model.ParseStanding(standing), googleID)
			if err != nil {
				out.PrintError(err)
				return err
			}
			out.Print(account)
			return nil
		},
	}

	cmd.Flags().StringVar(&patreonID, "patreon-id", "", "External patreon identity")
	cmd.Flags().StringVar(&googleID, "google-id", "", "External google identity")
	cmd.Flags().StringVar(&accessKey, "access-key", "", "Provider access key")
	cmd.Flags().StringVar(&refreshKey, "refresh-key", "", "Provider refresh key")
	cmd.Flags().StringVar(&standing, "standing", "none", "Account standing: none, pledge, epic")

	return cmd
}

func newAccountDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <user-id>",
		Short: "Delete an account and every entity nested in it",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			deleted, err := app.AccountService.DeleteAccount(cmd.Context(), args[0])
			if err != nil {
				out.PrintError(err)
				return err
			}
			out.PrintMessage(fmt.Sprintf("deleted %d account(s)", deleted))
			return nil
		},
	}
}

func newAccountSettingsCmd() *cobra.Command {
	var file string

	cmd := &cobra.Command{
		Use:   "settings <user-id>",
		Short: "Replace an account's settings document from a JSON file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := os.ReadFile(file)
			if err != nil {
				return err
			}

			modified, err := app.AccountService.SetSettings(cmd.Context(), args[0], data)
			if err != nil {
				out.PrintError(err)
				return err
			}
			out.PrintMessage(fmt.Sprintf("modified %d account(s)", modified))
			return nil
		},
	}

	cmd.Flags().StringVar(&file, "file", "", "Path to the settings JSON file (required)")
	_ = cmd.MarkFlagRequired("file")

	return cmd
}
