// GoSignature — render a personalized email signature as a transparent PNG.
//
// Usage:
//
//	gosignature generate [--interactive] [field flags] [-o signature.png]
//	gosignature profile save|show|list|delete
//	gosignature config init|show
//	gosignature serve [--port 8080]
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/xob0t/GoSignature/clients/server"
	"github.com/xob0t/GoSignature/pkg/config"
	"github.com/xob0t/GoSignature/pkg/logger"
	"github.com/xob0t/GoSignature/pkg/profile"
	"github.com/xob0t/GoSignature/pkg/render"
	"github.com/xob0t/GoSignature/pkg/signature"
)

var (
	flagConfig      string
	flagLogLevel    string
	flagProfilesDir string

	log *zap.Logger
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:           "gosignature",
	Short:         "Email signature PNG generator",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		log = logger.New(flagLogLevel)
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "path to a YAML config file (default: gosignature.yaml if present)")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "log level: debug, info, warn, error")
	rootCmd.PersistentFlags().StringVar(&flagProfilesDir, "profiles-dir", "profiles", "directory holding saved profiles")

	generateCmd.Flags().StringVar(&genFlags.Name, "name", "", "full name (required unless --interactive or --profile)")
	generateCmd.Flags().StringVar(&genFlags.Position, "position", "", "job title")
	generateCmd.Flags().StringVar(&genFlags.Address, "address", "", "address line")
	generateCmd.Flags().StringVar(&genFlags.Phone, "phone", "", "landline number (optional)")
	generateCmd.Flags().StringVar(&genFlags.Mobile, "mobile", "", "mobile number (optional)")
	generateCmd.Flags().StringVar(&genFlags.Email, "email", "", "email address")
	generateCmd.Flags().StringVar(&genFlags.Website, "website", "", "website (blank uses the configured default)")
	generateCmd.Flags().StringVar(&genFlags.LogoPath, "logo", "", "logo image path (blank probes the configured search paths)")
	generateCmd.Flags().BoolVar(&genInteractive, "interactive", false, "collect fields through prompts")
	generateCmd.Flags().StringVar(&genProfile, "profile", "", "load fields from a saved profile")
	generateCmd.Flags().StringVarP(&genOutput, "output", "o", "signature.png", "output PNG path")

	serveCmd.Flags().StringVar(&servePort, "port", "8080", "listen port for the web UI")
	configInitCmd.Flags().StringVarP(&configInitOut, "output", "o", "gosignature.yaml", "where to write the config file")

	profileCmd.AddCommand(profileSaveCmd, profileShowCmd, profileListCmd, profileDeleteCmd)
	configCmd.AddCommand(configInitCmd, configShowCmd)
	rootCmd.AddCommand(generateCmd, profileCmd, configCmd, serveCmd)
}

func loadConfig() (*config.Config, error) {
	return config.Load(flagConfig)
}

func openStore() (*profile.Store, error) {
	return profile.NewStore(flagProfilesDir)
}

// ── generate ──

var (
	genFlags       signature.Input
	genInteractive bool
	genProfile     string
	genOutput      string
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Render a signature PNG",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		var data *signature.SignatureData
		switch {
		case genProfile != "":
			store, err := openStore()
			if err != nil {
				return err
			}
			data, err = store.Load(genProfile, cfg.DefaultWebsite)
			if err != nil {
				return err
			}
		case genInteractive:
			data, err = collectInteractive(cfg.DefaultWebsite)
			if err != nil {
				return err
			}
		default:
			data, err = signature.New(genFlags, cfg.DefaultWebsite)
			if err != nil {
				return err
			}
		}

		pngBytes, err := render.Generate(data, cfg, log)
		if err != nil {
			return err
		}

		if dir := filepath.Dir(genOutput); dir != "." {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return fmt.Errorf("create output dir: %w", err)
			}
		}
		if err := os.WriteFile(genOutput, pngBytes, 0o644); err != nil {
			return fmt.Errorf("write %s: %w", genOutput, err)
		}

		fmt.Printf("Signature written to %s\n", genOutput)
		return nil
	},
}

// collectInteractive prompts for every field, re-prompting until each one
// validates. Optional fields accept an empty answer.
func collectInteractive(defaultWebsite string) (*signature.SignatureData, error) {
	prompts := []struct {
		label    string
		target   *string
		validate promptui.ValidateFunc
	}{
		{"Name*", &genFlags.Name, func(s string) error { _, err := signature.ValidateName(s); return err }},
		{"Position*", &genFlags.Position, func(s string) error { _, err := signature.ValidateRequired("position", s); return err }},
		{"Address*", &genFlags.Address, func(s string) error { _, err := signature.ValidateRequired("address", s); return err }},
		{"Phone (optional)", &genFlags.Phone, func(s string) error { _, err := signature.ValidatePhone("phone", s); return err }},
		{"Mobile (optional)", &genFlags.Mobile, func(s string) error { _, err := signature.ValidatePhone("mobile", s); return err }},
		{"Email*", &genFlags.Email, func(s string) error { _, err := signature.ValidateEmail(s); return err }},
		{fmt.Sprintf("Website (blank for %s)", defaultWebsite), &genFlags.Website, func(s string) error { _, err := signature.ValidateURL(s); return err }},
		{"Logo path (blank to search)", &genFlags.LogoPath, func(s string) error { _, err := signature.ValidateLogoPath(s); return err }},
	}

	for _, p := range prompts {
		prompt := promptui.Prompt{
			Label:    p.label,
			Default:  *p.target,
			Validate: p.validate,
		}
		value, err := prompt.Run()
		if err != nil {
			return nil, err
		}
		*p.target = value
	}

	return signature.New(genFlags, defaultWebsite)
}

// ── profile ──

var profileCmd = &cobra.Command{
	Use:   "profile",
	Short: "Manage saved signature profiles",
}

var profileSaveCmd = &cobra.Command{
	Use:   "save <name>",
	Short: "Collect signature fields and save them under a profile name",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		store, err := openStore()
		if err != nil {
			return err
		}

		name := args[0]
		if store.Exists(name) && !confirm(fmt.Sprintf("Profile %q exists, overwrite?", name)) {
			fmt.Println("Aborted.")
			return nil
		}

		data, err := collectInteractive(cfg.DefaultWebsite)
		if err != nil {
			return err
		}

		if err := store.Save(name, data); err != nil {
			return err
		}
		fmt.Printf("Profile %q saved to %s\n", name, store.Dir())
		return nil
	},
}

var profileShowCmd = &cobra.Command{
	Use:   "show <name>",
	Short: "Print a saved profile",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		store, err := openStore()
		if err != nil {
			return err
		}
		data, err := store.Load(args[0], cfg.DefaultWebsite)
		if err != nil {
			return err
		}

		record := data.ToProfile(args[0])
		out, err := yaml.Marshal(record)
		if err != nil {
			return err
		}
		fmt.Print(string(out))
		return nil
	},
}

var profileListCmd = &cobra.Command{
	Use:   "list",
	Short: "List saved profiles",
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := openStore()
		if err != nil {
			return err
		}
		names, err := store.List()
		if err != nil {
			return err
		}
		if len(names) == 0 {
			fmt.Println("No profiles saved.")
			return nil
		}
		for _, name := range names {
			fmt.Println(name)
		}
		return nil
	},
}

var profileDeleteCmd = &cobra.Command{
	Use:   "delete <name>",
	Short: "Delete a saved profile",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := openStore()
		if err != nil {
			return err
		}
		if !confirm(fmt.Sprintf("Delete profile %q?", args[0])) {
			fmt.Println("Aborted.")
			return nil
		}
		if err := store.Delete(args[0]); err != nil {
			return err
		}
		fmt.Printf("Profile %q deleted\n", args[0])
		return nil
	},
}

// ── config ──

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage configuration",
}

var configInitOut string

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write the effective configuration to a YAML file",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		if err := cfg.WriteFile(configInitOut); err != nil {
			return err
		}
		fmt.Printf("Configuration written to %s\n", configInitOut)
		return nil
	},
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the effective configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		out, err := yaml.Marshal(cfg.Map())
		if err != nil {
			return err
		}
		fmt.Print(string(out))
		return nil
	},
}

// ── serve ──

var servePort string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the web form UI",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		store, err := openStore()
		if err != nil {
			return err
		}
		return server.RunServe(servePort, cfg, store, log)
	},
}

// confirm asks a y/n question through a select prompt.
func confirm(message string) bool {
	ask := promptui.Select{
		Label: fmt.Sprintf("%s [y/n]", message),
		Items: []string{"y", "n"},
	}
	_, result, err := ask.Run()
	if err != nil {
		return false
	}
	return result == "y"
}
