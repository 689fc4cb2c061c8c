package main

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/google/uuid"
	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

var addUserCmd = &cobra.Command{
	Use:   "adduser <username>",
	Short: "Add a user to the configuration file",
	Long: `Add a user interactively.

You will be prompted for:
  - API key (a generated one is offered as the default)
  - Role (admin, user, readonly)
  - Allowed bucket patterns (comma-separated exact names, or * for all)

The user is appended to the config file; restart the server to pick it up.`,
	Args: cobra.ExactArgs(1),
	RunE: runAddUser,
}

func init() {
	rootCmd.AddCommand(addUserCmd)
}

func runAddUser(cmd *cobra.Command, args []string) error {
	username := args[0]

	path := "config.yaml"
	if len(configFiles) > 0 {
		path = configFiles[0]
	}

	doc, err := readConfigDoc(path)
	if err != nil {
		return err
	}

	users, _ := doc["users"].(map[string]any)
	if users == nil {
		users = make(map[string]any)
		doc["users"] = users
	}
	if _, exists := users[username]; exists {
		return fmt.Errorf("user %q already exists in %s", username, path)
	}

	keyPrompt := promptui.Prompt{
		Label:   "API key",
		Default: uuid.NewString(),
		Validate: func(s string) error {
			if strings.TrimSpace(s) == "" {
				return errors.New("api key cannot be empty")
			}
			return nil
		},
	}
	apiKey, err := keyPrompt.Run()
	if err != nil {
		return err
	}

	rolePrompt := promptui.Select{
		Label: "Role",
		Items: []string{"admin", "user", "readonly"},
	}
	_, role, err := rolePrompt.Run()
	if err != nil {
		return err
	}

	bucketsPrompt := promptui.Prompt{
		Label:   "Allowed buckets (comma-separated, * for all)",
		Default: "*",
	}
	bucketsRaw, err := bucketsPrompt.Run()
	if err != nil {
		return err
	}

	var buckets []string
	for _, b := range strings.Split(bucketsRaw, ",") {
		if b = strings.TrimSpace(b); b != "" {
			buckets = append(buckets, b)
		}
	}

	users[username] = map[string]any{
		"api_key":         apiKey,
		"role":            role,
		"allowed_buckets": buckets,
	}

	out, err := yaml.Marshal(doc)
	if err != nil {
		return fmt.Errorf("encode config: %w", err)
	}
	if err := os.WriteFile(path, out, 0o600); err != nil {
		return fmt.Errorf("write config: %w", err)
	}

	fmt.Printf("Added user %q with role %s to %s\n", username, role, path)
	return nil
}

func readConfigDoc(path string) (map[string]any, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return make(map[string]any), nil
		}
		return nil, fmt.Errorf("read config: %w", err)
	}

	doc := make(map[string]any)
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	return doc, nil
}
