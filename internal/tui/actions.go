package tui

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"os/exec"
	"runtime"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/julianshen/codexplain/internal/export"
	"github.com/julianshen/codexplain/internal/tutorial"
)

// ErrActionUnavailable is returned by actions that have no binding.
var ErrActionUnavailable = errors.New("action not available")

// Sharer publishes a tutorial and returns a description of where it went,
// typically a link.
type Sharer interface {
	Share(ctx context.Context, t *tutorial.Tutorial) (string, error)
}

// Downloader saves a tutorial locally and returns where it was written.
type Downloader interface {
	Download(ctx context.Context, t *tutorial.Tutorial) (string, error)
}

// Clipboard writes text to the system clipboard.
type Clipboard interface {
	WriteAll(text string) error
}

// Opener hands a URL to the platform's default handler.
type Opener interface {
	Open(url string) error
}

// NopActions implements Sharer and Downloader by reporting that neither
// is available.
type NopActions struct{}

func (NopActions) Share(context.Context, *tutorial.Tutorial) (string, error) {
	return "", ErrActionUnavailable
}

func (NopActions) Download(context.Context, *tutorial.Tutorial) (string, error) {
	return "", ErrActionUnavailable
}

// SystemClipboard is the Clipboard backed by the OS clipboard.
type SystemClipboard struct{}

func (SystemClipboard) WriteAll(text string) error { return clipboard.WriteAll(text) }

// SystemOpener runs open, xdg-open or rundll32 depending on the platform.
type SystemOpener struct{}

func (SystemOpener) Open(url string) error {
	var cmd *exec.Cmd
	switch runtime.GOOS {
	case "darwin":
		cmd = exec.Command("open", url)
	case "windows":
		cmd = exec.Command("rundll32", "url.dll,FileProtocolHandler", url)
	default:
		cmd = exec.Command("xdg-open", url)
	}
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("opening %s: %w", cmd.Path, err)
	}
	return nil
}

// LinkSharer shares a tutorial by copying its web link to the clipboard.
type LinkSharer struct {
	BaseURL   string
	Clipboard Clipboard
}

// Link returns the web address of t under BaseURL.
func (s LinkSharer) Link(t *tutorial.Tutorial) string {
	return strings.TrimSuffix(s.BaseURL, "/") + TutorialRoute(t.ID).Path()
}

func (s LinkSharer) Share(_ context.Context, t *tutorial.Tutorial) (string, error) {
	if t == nil || t.ID == "" {
		return "", ErrActionUnavailable
	}
	link := s.Link(t)
	if s.Clipboard != nil {
		if err := s.Clipboard.WriteAll(link); err != nil {
			return "", fmt.Errorf("copying share link: %w", err)
		}
	}
	return link, nil
}

// ExportDownloader saves tutorials with an export.Exporter.
type ExportDownloader struct {
	Exporter *export.Exporter
}

func (d ExportDownloader) Download(ctx context.Context, t *tutorial.Tutorial) (string, error) {
	if d.Exporter == nil || t == nil {
		return "", ErrActionUnavailable
	}
	return d.Exporter.Export(ctx, t)
}

// dataURI encodes text as a data: URI a browser shows as plain text.
func dataURI(text string) string {
	return "data:text/plain;charset=utf-8;base64," + base64.StdEncoding.EncodeToString([]byte(text))
}
