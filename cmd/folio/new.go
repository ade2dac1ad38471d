package main

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"text/template"

	"github.com/spf13/cobra"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/eringen/folio/project"
	"github.com/eringen/folio/scaffold"
)

// scaffoldData holds the template variables passed to every scaffold template.
type scaffoldData struct {
	Dir   string
	Title string
}

var newCmd = &cobra.Command{
	Use:   "new <name>",
	Short: "Create a project directory with a starter document",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runNew(args[0])
	},
}

func init() {
	rootCmd.AddCommand(newCmd)
}

func runNew(dirName string) error {
	if _, err := os.Stat(dirName); err == nil {
		return fmt.Errorf("directory %q already exists", dirName)
	}
	data := scaffoldData{Dir: dirName, Title: toTitle(filepath.Base(dirName))}

	fmt.Printf("Creating new folio project: %s\n\n", dirName)

	root := "templates"
	err := fs.WalkDir(scaffold.Templates, root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		relPath, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}
		outPath := filepath.Join(dirName, relPath)
		outPath = strings.TrimSuffix(outPath, ".tmpl")
		if filepath.Base(outPath) == "dotenv" {
			outPath = filepath.Join(filepath.Dir(outPath), ".env.example")
		}

		if d.IsDir() {
			return os.MkdirAll(outPath, 0o755)
		}

		content, err := scaffold.Templates.ReadFile(path)
		if err != nil {
			return fmt.Errorf("read %s: %w", path, err)
		}
		if strings.HasSuffix(path, ".tmpl") {
			tmpl, err := template.New(filepath.Base(path)).Parse(string(content))
			if err != nil {
				return fmt.Errorf("parse template %s: %w", path, err)
			}
			var b strings.Builder
			if err := tmpl.Execute(&b, data); err != nil {
				return fmt.Errorf("execute template %s: %w", path, err)
			}
			content = []byte(b.String())
		}
		if err := os.WriteFile(outPath, content, 0o644); err != nil {
			return fmt.Errorf("create %s: %w", outPath, err)
		}
		fmt.Printf("  created %s\n", outPath)
		return nil
	})
	if err != nil {
		return err
	}

	s := project.NewState()
	s.Form.Name = data.Title
	doc, err := project.Export(s)
	if err != nil {
		return err
	}
	docPath := filepath.Join(dirName, "project.json")
	if err := os.WriteFile(docPath, doc, 0o644); err != nil {
		return fmt.Errorf("create %s: %w", docPath, err)
	}
	fmt.Printf("  created %s\n", docPath)

	fmt.Println()
	fmt.Println("Done! Next steps:")
	fmt.Println()
	fmt.Printf("  cd %s\n", dirName)
	fmt.Println("  folio watch project.json -o site")
	fmt.Println()
	fmt.Println("Or run 'folio serve' and import project.json in the editor.")
	fmt.Println("Set FOLIO_GEMINI_API_KEY in .env to draft the narrative with Gemini.")
	return nil
}

// toTitle converts a hyphenated or lowercase name to a title-case string.
// e.g. "my-app" -> "My App", "myapp" -> "Myapp"
func toTitle(s string) string {
	parts := strings.FieldsFunc(s, func(r rune) bool { return r == '-' || r == '_' })
	return cases.Title(language.English).String(strings.Join(parts, " "))
}
