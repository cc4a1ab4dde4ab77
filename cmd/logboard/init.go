package main

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"text/template"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/nginsight/logboard/scaffold"
)

// kitData holds the template variables passed to every scaffold template.
type kitData struct {
	SiteName  string
	Addr      string
	AccessLog string
	Sources   string
	Window    int
	TrackRate int
}

var initCmd = &cobra.Command{
	Use:   "init [dir]",
	Short: "Write a deployment kit: config file, tracking snippet, systemd unit",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runInit,
}

func init() {
	rootCmd.AddCommand(initCmd)
}

func runInit(cmd *cobra.Command, args []string) error {
	dir := "."
	if len(args) == 1 {
		dir = args[0]
	}

	name := viper.GetString("name")
	if name == "logboard" && dir != "." {
		name = toTitle(filepath.Base(dir))
	}

	data := kitData{
		SiteName:  name,
		Addr:      viper.GetString("addr"),
		AccessLog: viper.GetString("access_log"),
		Sources:   viper.GetString("sources"),
		Window:    viper.GetInt("window"),
		TrackRate: viper.GetInt("track_rate"),
	}

	root := "templates"
	err := fs.WalkDir(scaffold.Templates, root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}

		// Compute the output path, stripping the .tmpl suffix.
		relPath, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}
		outPath := filepath.Join(dir, strings.TrimSuffix(relPath, ".tmpl"))

		if _, err := os.Stat(outPath); err == nil {
			return fmt.Errorf("%s already exists", outPath)
		}

		content, err := scaffold.Templates.ReadFile(path)
		if err != nil {
			return fmt.Errorf("read %s: %w", path, err)
		}

		tmpl, err := template.New(filepath.Base(path)).Parse(string(content))
		if err != nil {
			return fmt.Errorf("parse template %s: %w", path, err)
		}

		if err := os.MkdirAll(filepath.Dir(outPath), 0o755); err != nil {
			return err
		}
		f, err := os.Create(outPath)
		if err != nil {
			return fmt.Errorf("create %s: %w", outPath, err)
		}
		defer f.Close()

		if err := tmpl.Execute(f, data); err != nil {
			return fmt.Errorf("execute template %s: %w", path, err)
		}

		fmt.Printf("  created %s\n", outPath)
		return nil
	})
	if err != nil {
		return err
	}

	fmt.Println()
	fmt.Println("Done! Next steps:")
	fmt.Println()
	fmt.Println("  1. Review logboard.yaml and point access_log at your server's log.")
	fmt.Println("  2. Paste snippet.html into the pages you want counted.")
	fmt.Println("  3. Install logboard.service if you run under systemd.")
	fmt.Println()
	fmt.Println("Then start the server with 'logboard serve --config logboard.yaml'.")
	return nil
}

// toTitle converts a hyphenated or lowercase name to a title-case string.
// e.g. "my-site" -> "My Site"
func toTitle(s string) string {
	parts := strings.Split(s, "-")
	for i, p := range parts {
		if len(p) > 0 {
			parts[i] = strings.ToUpper(p[:1]) + p[1:]
		}
	}
	return strings.Join(parts, " ")
}
