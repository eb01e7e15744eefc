package main

import (
	"encoding/json"
	"fmt"
	"net/http"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

// menuSeed mirrors the AddMenuItem request body.
type menuSeed struct {
	Name        string  `json:"name"`
	Description string  `json:"description,omitempty"`
	Category    string  `json:"category,omitempty"`
	Price       float64 `json:"price"`
	ImageURL    string  `json:"image_url,omitempty"`
}

// facultySeed mirrors the AddFaculty request body.
type facultySeed struct {
	Name           string            `json:"name"`
	Department     string            `json:"department"`
	OfficeLocation string            `json:"office_location,omitempty"`
	Email          string            `json:"email,omitempty"`
	Timetable      map[string]string `json:"timetable,omitempty"`
}

func newSeedCmd(client *apiClient) *cobra.Command {
	seed := &cobra.Command{
		Use:   "seed",
		Short: "Load fixture data into a running instance",
	}
	seed.AddCommand(newSeedMenuCmd(client), newSeedFacultyCmd(client))
	return seed
}

func newSeedMenuCmd(client *apiClient) *cobra.Command {
	return &cobra.Command{
		Use:   "menu <file.json>",
		Short: "Create menu items from a JSON array",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var items []menuSeed
			if err := readSeedFile(args[0], &items); err != nil {
				return err
			}

			// seed menu writes are staff operations
			staff := *client
			staff.actorRole = "staff"

			for _, item := range items {
				if err := staff.doJSON(cmd.Context(), http.MethodPost, "/api/v1/cafeteria/menu", item, nil); err != nil {
					color.Red("✗ %s: %v", item.Name, err)
					return err
				}
				color.Green("✓ menu item %q created", item.Name)
			}
			fmt.Printf("seeded %d menu items\n", len(items))
			return nil
		},
	}
}

func newSeedFacultyCmd(client *apiClient) *cobra.Command {
	return &cobra.Command{
		Use:   "faculty <file.json>",
		Short: "Create faculty directory entries from a JSON array",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var members []facultySeed
			if err := readSeedFile(args[0], &members); err != nil {
				return err
			}

			for _, member := range members {
				if err := client.doJSON(cmd.Context(), http.MethodPost, "/api/v1/directory/faculty", member, nil); err != nil {
					color.Red("✗ %s: %v", member.Name, err)
					return err
				}
				color.Green("✓ faculty entry %q created", member.Name)
			}
			fmt.Printf("seeded %d faculty entries\n", len(members))
			return nil
		},
	}
}

func readSeedFile(path string, dst any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading seed file: %w", err)
	}
	if err := json.Unmarshal(data, dst); err != nil {
		return fmt.Errorf("parsing %s: %w", path, err)
	}
	return nil
}
