package export

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"gopkg.in/yaml.v3"
)

// RendererConfig controls how the site renderer writes output files.
type RendererConfig struct {
	Format    string // "raw-md", "hugo", or "docusaurus"
	OutputDir string // root output directory
	SiteTitle string
}

// Render writes the given documents to disk in the configured format.
func Render(documents []Document, cfg RendererConfig) error {
	switch cfg.Format {
	case "raw-md":
		return renderRawMarkdown(documents, cfg)
	case "hugo":
		return renderHugo(documents, cfg)
	case "docusaurus":
		return renderDocusaurus(documents, cfg)
	default:
		return fmt.Errorf("unsupported render format: %s", cfg.Format)
	}
}

// renderRawMarkdown writes each document as-is under OutputDir.
func renderRawMarkdown(documents []Document, cfg RendererConfig) error {
	for _, doc := range documents {
		if err := writeDoc(filepath.Join(cfg.OutputDir, doc.Path), doc.Content); err != nil {
			return err
		}
	}
	return nil
}

type hugoFrontMatter struct {
	Title  string `yaml:"title"`
	Weight int    `yaml:"weight"`
}

// renderHugo writes documents with YAML front matter under OutputDir/content/
// and generates a hugo.toml at OutputDir.
func renderHugo(documents []Document, cfg RendererConfig) error {
	for i, doc := range documents {
		fm, err := frontMatter(hugoFrontMatter{Title: doc.Title, Weight: i + 1})
		if err != nil {
			return err
		}
		if err := writeDoc(filepath.Join(cfg.OutputDir, "content", doc.Path), fm+doc.Content); err != nil {
			return err
		}
	}

	configContent := fmt.Sprintf(`baseURL = "/"
languageCode = "en-us"
title = %s
theme = "hugo-book"

[markup.goldmark.renderer]
unsafe = true
`, strconv.Quote(cfg.SiteTitle))
	return writeDoc(filepath.Join(cfg.OutputDir, "hugo.toml"), configContent)
}

type docusaurusFrontMatter struct {
	SidebarPosition int    `yaml:"sidebar_position"`
	SidebarLabel    string `yaml:"sidebar_label"`
}

// renderDocusaurus writes documents with YAML front matter under
// OutputDir/docs/ and generates a docusaurus.config.js at OutputDir.
func renderDocusaurus(documents []Document, cfg RendererConfig) error {
	for i, doc := range documents {
		fm, err := frontMatter(docusaurusFrontMatter{SidebarPosition: i + 1, SidebarLabel: doc.Title})
		if err != nil {
			return err
		}
		if err := writeDoc(filepath.Join(cfg.OutputDir, "docs", doc.Path), fm+doc.Content); err != nil {
			return err
		}
	}

	configContent := fmt.Sprintf(`// @ts-check

/** @type {import('@docusaurus/types').Config} */
const config = {
  title: %s,
  url: 'https://your-project-url.example.com',
  baseUrl: '/',
  themes: ['@docusaurus/theme-mermaid'],
  markdown: {
    mermaid: true,
  },
  presets: [
    [
      'classic',
      /** @type {import('@docusaurus/preset-classic').Options} */
      ({
        docs: {
          routeBasePath: '/',
        },
      }),
    ],
  ],
};

module.exports = config;
`, strconv.Quote(cfg.SiteTitle))
	return writeDoc(filepath.Join(cfg.OutputDir, "docusaurus.config.js"), configContent)
}

func frontMatter(v any) (string, error) {
	data, err := yaml.Marshal(v)
	if err != nil {
		return "", fmt.Errorf("encoding front matter: %w", err)
	}
	return "---\n" + string(data) + "---\n\n", nil
}

// writeDoc creates parent directories and writes content to the given path.
func writeDoc(path, content string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating directory %s: %w", dir, err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}
