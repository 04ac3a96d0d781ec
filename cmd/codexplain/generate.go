package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/julianshen/codexplain/internal/config"
	"github.com/julianshen/codexplain/internal/logger"
	"github.com/julianshen/codexplain/internal/runner"
	"github.com/julianshen/codexplain/internal/tutorial"
)

func generateCmd() *cobra.Command {
	var (
		repoFlag     string
		languageFlag string
		includeFlag  []string
		excludeFlag  []string
		maxSizeFlag  int
		showFlag     bool
		outputFlag   string
	)

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate a tutorial from a repository",
		Long: "Submit a repository to the backend and print the new tutorial's id, or the whole\n" +
			"tutorial with --show. The repository URL may also be piped on stdin.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, _, err := loadConfig()
			if err != nil {
				return err
			}
			logger.Initialize(debugFlag, verboseFlag)
			ctx := commandContext(cmd)

			repo, err := runner.ResolveRepoURL(repoFlag, stdinReader(cmd))
			if err != nil {
				return err
			}

			req, err := requestFromConfig(cfg.Generate)
			if err != nil {
				return err
			}
			req.RepoURL = repo
			if cmd.Flags().Changed("language") {
				if req.Language, err = tutorial.ParseLanguage(languageFlag); err != nil {
					return err
				}
			}
			if cmd.Flags().Changed("include") {
				req.IncludePatterns = includeFlag
			}
			if cmd.Flags().Changed("exclude") {
				req.ExcludePatterns = excludeFlag
			}
			if cmd.Flags().Changed("max-file-size") {
				req.MaxFileSize = maxSizeFlag
			}

			history, err := openHistory(cfg)
			if err != nil {
				logger.Warn(ctx, "history unavailable", "error", err)
			}
			var recorder runner.Recorder
			if history != nil {
				defer history.Close()
				recorder = history
			}

			hr := runner.NewHeadlessRunner(newClient(cfg), recorder)
			result, err := hr.Generate(ctx, req, showFlag)
			if err != nil {
				return err
			}
			if result.Tutorial != nil && history != nil {
				if err := history.SetTitle(result.TutorialID, result.Tutorial.Title); err != nil {
					logger.Warn(ctx, "recording title", "id", result.TutorialID, "error", err)
				}
			}

			if err := printResult(cmd, cfg, outputFlag, result); err != nil {
				return err
			}
			if result.Error != "" {
				return fmt.Errorf("generation failed: %s", result.Error)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&repoFlag, "repo", "", "repository URL to explain")
	cmd.Flags().StringVar(&languageFlag, "language", "", "tutorial language: english, spanish, french or german")
	cmd.Flags().StringSliceVar(&includeFlag, "include", nil, "include glob (repeatable)")
	cmd.Flags().StringSliceVar(&excludeFlag, "exclude", nil, "exclude glob (repeatable)")
	cmd.Flags().IntVar(&maxSizeFlag, "max-file-size", tutorial.DefaultMaxFileSize, "skip files larger than this many bytes")
	cmd.Flags().BoolVar(&showFlag, "show", false, "fetch and print the tutorial once generated")
	cmd.Flags().StringVarP(&outputFlag, "output", "o", "markdown", "output format: markdown, json, yaml")

	return cmd
}

// requestFromConfig seeds a request with the [generate] defaults.
func requestFromConfig(defaults config.GenerateConfig) (tutorial.GenerationRequest, error) {
	req := tutorial.NewGenerationRequest()
	if defaults.Language != "" {
		lang, err := tutorial.ParseLanguage(defaults.Language)
		if err != nil {
			return req, fmt.Errorf("generate.language: %w", err)
		}
		req.Language = lang
	}
	if defaults.IncludePatterns != nil {
		req.IncludePatterns = append([]string(nil), defaults.IncludePatterns...)
	}
	if defaults.ExcludePatterns != nil {
		req.ExcludePatterns = append([]string(nil), defaults.ExcludePatterns...)
	}
	if defaults.MaxFileSize > 0 {
		req.MaxFileSize = defaults.MaxFileSize
	}
	return req, nil
}

// stdinReader returns the command's input when it is not an interactive
// terminal, nil otherwise.
func stdinReader(cmd *cobra.Command) io.Reader {
	in := cmd.InOrStdin()
	f, ok := in.(*os.File)
	if !ok {
		return in
	}
	if stat, err := f.Stat(); err == nil && stat.Mode()&os.ModeCharDevice == 0 {
		return f
	}
	return nil
}
