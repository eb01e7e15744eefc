package main

import (
	"fmt"
	"net/http"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

func newUserCmd(client *apiClient) *cobra.Command {
	user := &cobra.Command{
		Use:   "user",
		Short: "Manage user profiles and roles",
	}
	user.AddCommand(newUserRegisterCmd(client), newUserSetRoleCmd(client), newUserListCmd(client))
	return user
}

func newUserRegisterCmd(client *apiClient) *cobra.Command {
	var id, sapID, email string

	cmd := &cobra.Command{
		Use:   "register <full name>",
		Short: "Register a user profile",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			body := map[string]string{"full_name": args[0]}
			if id != "" {
				body["id"] = id
			}
			if sapID != "" {
				body["specialized_id"] = sapID
			}
			if email != "" {
				body["contact_email"] = email
			}

			var created struct {
				ID   string `json:"id"`
				Role string `json:"role"`
			}
			if err := client.doJSON(cmd.Context(), http.MethodPost, "/api/v1/users", body, &created); err != nil {
				return err
			}
			color.Green("✓ user %s registered as %s", created.ID, created.Role)
			return nil
		},
	}

	cmd.Flags().StringVar(&id, "id", "", "profile id (assigned when empty)")
	cmd.Flags().StringVar(&sapID, "sap-id", "", "campus SAP id")
	cmd.Flags().StringVar(&email, "email", "", "contact email")
	return cmd
}

func newUserSetRoleCmd(client *apiClient) *cobra.Command {
	return &cobra.Command{
		Use:   "set-role <user-id> <student|staff|moderator>",
		Short: "Change a user's role",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			body := map[string]string{"role": args[1]}
			if err := client.doJSON(cmd.Context(), http.MethodPut, "/api/v1/users/"+args[0]+"/role", body, nil); err != nil {
				return err
			}
			color.Green("✓ user %s is now %s", args[0], args[1])
			return nil
		},
	}
}

func newUserListCmd(client *apiClient) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List every user profile",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			var resp struct {
				Users []struct {
					ID       string `json:"id"`
					FullName string `json:"full_name"`
					Role     string `json:"role"`
				} `json:"users"`
				Count int `json:"count"`
			}
			if err := client.doJSON(cmd.Context(), http.MethodGet, "/api/v1/users", nil, &resp); err != nil {
				return err
			}

			for _, u := range resp.Users {
				fmt.Printf("%-24s %s %s\n", u.ID, color.CyanString("%-10s", u.Role), u.FullName)
			}
			fmt.Printf("%d users\n", resp.Count)
			return nil
		},
	}
}
