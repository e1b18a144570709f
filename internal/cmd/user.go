package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/PauloHFS/blogicum/internal/services"
	"github.com/PauloHFS/blogicum/internal/validator"
)

func init() {
	RootCmd.AddCommand(createUserCmd)
}

var createUserCmd = &cobra.Command{
	Use:   "create-user <username> <email> <password>",
	Short: "Create a new user",
	Args:  cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		_, pool, err := openDB(cmd)
		if err != nil {
			return err
		}
		defer pool.Close()

		auth := services.NewAuthService(pool.Queries(), pool.QueriesWrite())
		user, result, err := auth.Register(cmd.Context(), validator.RegistrationInput{
			Username: args[0],
			Email:    args[1],
			Password: args[2],
		})
		if err != nil {
			return err
		}
		if !result.Valid {
			return fmt.Errorf("invalid user: %s", result.Message())
		}

		fmt.Fprintf(cmd.OutOrStdout(), "User %s created successfully\n", user.Username)
		return nil
	},
}
