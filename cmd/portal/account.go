package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/roseyco/agency-portal/internal/core/domain"
	"github.com/roseyco/agency-portal/internal/core/service"
	"github.com/roseyco/agency-portal/internal/infrastructure/db/mongo"
)

var accountCmd = &cobra.Command{
	Use:   "account",
	Short: "Manage portal accounts used when AUTH_MODE=accounts",
}

var (
	accountEmail    string
	accountPassword string
	accountName     string
	accountRoles    []string
)

var accountCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create an account",
	Example: `  portal account create --email allan@rosey.co --password s3cret --name "Allan Smith" --role admin
  portal account create --email emily@creativeminds.com --password s3cret --role client`,
	RunE: runAccountCreate,
}

func init() {
	f := accountCreateCmd.Flags()
	f.StringVar(&accountEmail, "email", "", "login email (required)")
	f.StringVar(&accountPassword, "password", "", "plain-text password, stored as a bcrypt hash (required)")
	f.StringVar(&accountName, "name", "", "display name, defaults to the email")
	f.StringSliceVar(&accountRoles, "role", []string{"client"}, "workspace roles: admin, client")
	_ = accountCreateCmd.MarkFlagRequired("email")
	_ = accountCreateCmd.MarkFlagRequired("password")

	accountCmd.AddCommand(accountCreateCmd)
}

func runAccountCreate(cmd *cobra.Command, _ []string) error {
	roles, err := parseRoles(accountRoles)
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	client, db, err := mongo.Connect(ctx, mongo.Config{URI: cfg.Mongo.URI, Database: cfg.Mongo.Database})
	if err != nil {
		return err
	}
	defer func() { _ = client.Disconnect(ctx) }()

	repo := mongo.NewAccountRepository(db)
	if err := repo.EnsureIndexes(ctx); err != nil {
		return err
	}

	acct, err := service.NewAccountAuthenticator(repo).Register(ctx, accountEmail, accountPassword, accountName, roles)
	if err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "created account %s (%s) roles=%v\n", acct.ID, acct.Email, acct.Roles)
	return nil
}

func parseRoles(raw []string) ([]domain.Role, error) {
	roles := make([]domain.Role, 0, len(raw))
	for _, r := range raw {
		role, err := domain.ParseRole(r)
		if err != nil {
			return nil, err
		}
		roles = append(roles, role)
	}
	return roles, nil
}
