package cmd

import (
	"fmt"

	"turf-booking/internal/data/entity"
	"turf-booking/internal/data/repository"
	"turf-booking/internal/dto/request"
	"turf-booking/internal/usecase"

	"github.com/spf13/cobra"
)

func newUserCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "user",
		Short: "Manage users",
	}
	cmd.AddCommand(newUserAddCmd())
	return cmd
}

func newUserAddCmd() *cobra.Command {
	var name, email, password string
	var admin bool

	c := &cobra.Command{
		Use:   "add",
		Short: "Provision a user the identity provider can issue tokens for",
		RunE: func(cmd *cobra.Command, args []string) error {
			config, logger, err := bootstrap("cli")
			if err != nil {
				return err
			}
			defer logger.Sync()

			ctx := cmd.Context()
			db, err := connect(ctx, config, logger)
			if err != nil {
				return err
			}
			defer db.Close()

			role := entity.RoleUser
			if admin {
				role = entity.RoleAdmin
			}

			users := usecase.NewUserService(repository.NewUserRepository(db, logger), logger)
			user, err := users.CreateUser(ctx, &request.CreateUserRequest{
				Name:     name,
				Email:    email,
				Password: password,
				Role:     string(role),
			})
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "created user %q (%s) id=%s\n", user.Email, user.Role, user.ID)
			return nil
		},
	}

	c.Flags().StringVar(&name, "name", "", "display name")
	c.Flags().StringVar(&email, "email", "", "email address")
	c.Flags().StringVar(&password, "password", "", "password")
	c.Flags().BoolVar(&admin, "admin", false, "grant the ADMIN role")
	_ = c.MarkFlagRequired("name")
	_ = c.MarkFlagRequired("email")
	_ = c.MarkFlagRequired("password")
	return c
}
