package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"

	"github.com/matzehuels/photogrid/pkg/errors"
	"github.com/matzehuels/photogrid/pkg/gallery"
)

// settleDelay is how long a new file must stay unchanged before a watched
// upload picks it up.
const settleDelay = 2 * time.Second

// uploadCommand creates the upload command.
func (c *CLI) uploadCommand() *cobra.Command {
	var (
		fields gallery.UploadFields
		watch  string
	)

	cmd := &cobra.Command{
		Use:   "upload [FILE...]",
		Short: "Upload pictures",
		Long: `Upload pictures to the gallery.

Every file is sent with the same metadata. The server requires at least
one --tag. With --watch DIR, photogrid keeps running and uploads every
JPEG that appears in DIR until interrupted.`,
		Example: `  photogrid upload scan01.jpg scan02.jpg --tag 5 --flm "Portra 400" --loc 9
  photogrid upload --watch ~/scans --tag 5 --wmk "(c) A"`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 && watch == "" {
				return fmt.Errorf("give files to upload or --watch DIR")
			}
			if len(fields.Tags) == 0 {
				return errors.New(errors.ErrCodeInvalidInput, "upload needs at least one --tag")
			}

			ctx := cmd.Context()
			cl, err := c.newClient(ctx)
			if err != nil {
				return err
			}
			defer cl.Close()

			for _, path := range args {
				if err := c.uploadFile(ctx, cl, fields, path); err != nil {
					return err
				}
			}
			if watch != "" {
				return c.watchUploads(ctx, cl, fields, watch)
			}
			return nil
		},
	}

	f := cmd.Flags()
	f.StringVar(&fields.TS, "ts", "", "timestamp")
	f.StringVar(&fields.TZ, "tz", "", "time zone")
	f.StringVar(&fields.Camera, "cam", "", "camera")
	f.StringVar(&fields.Film, "flm", "", "film")
	f.StringVar(&fields.Process, "pcs", "", "process")
	f.StringVar(&fields.Wmk, "wmk", "", "watermark")
	f.Int64Var(&fields.Loc, "loc", 0, "location id")
	f.StringVar(&fields.NewLoc, "loc-new", "", "create a location with this name under --loc")
	f.Int64SliceVar(&fields.Tags, "tag", nil, "tag id (repeatable, at least one)")
	f.StringVarP(&watch, "watch", "w", "", "watch DIR and upload new JPEG files")
	return cmd
}

func (c *CLI) uploadFile(ctx context.Context, cl *client, fields gallery.UploadFields, path string) error {
	f, err := os.Open(path)
	if err != nil {
		return errors.Wrap(errors.ErrCodeFileNotFound, err, "open %s", path)
	}
	defer f.Close()

	spinner := newSpinnerWithContext(ctx, "Uploading "+filepath.Base(path)+"...")
	spinner.Start()
	res, err := cl.Upload(ctx, fields, path, f)
	if err != nil {
		spinner.StopWithError("Upload failed: " + filepath.Base(path))
		return reauthHint(err)
	}
	spinner.Stop()

	ids := make([]string, len(res.IDs))
	for i, id := range res.IDs {
		ids[i] = fmt.Sprint(id)
	}
	printSuccess("%s %s %s", filepath.Base(path), StyleDim.Render(iconArrow), strings.Join(ids, ", "))
	if res.Log != "" {
		for _, line := range strings.Split(strings.TrimSpace(res.Log), "\n") {
			printDetail("%s", line)
		}
	}
	return nil
}

// isJPEG reports whether path looks like an uploadable picture.
func isJPEG(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".jpg", ".jpeg":
		return !strings.HasPrefix(filepath.Base(path), ".")
	}
	return false
}

// watchUploads uploads JPEGs created in dir until ctx ends. Files are
// uploaded once they have not been written to for settleDelay.
func (c *CLI) watchUploads(ctx context.Context, cl *client, fields gallery.UploadFields, dir string) error {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer w.Close()
	if err := w.Add(dir); err != nil {
		return errors.Wrap(errors.ErrCodeFileNotFound, err, "watch %s", dir)
	}

	logger := loggerFromContext(ctx)
	printInfo("Watching %s for new pictures (Ctrl-C to stop)", dir)

	pending := make(map[string]time.Time)
	done := make(map[string]bool)
	tick := time.NewTicker(settleDelay / 2)
	defer tick.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			if !isJPEG(ev.Name) || done[ev.Name] {
				continue
			}
			if ev.Has(fsnotify.Create) || ev.Has(fsnotify.Write) {
				pending[ev.Name] = time.Now()
				logger.Debug("file changed", "path", ev.Name, "op", ev.Op.String())
			}
			if ev.Has(fsnotify.Remove) || ev.Has(fsnotify.Rename) {
				delete(pending, ev.Name)
			}
		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			logger.Warn("watch error", "error", err)
		case now := <-tick.C:
			for path, last := range pending {
				if now.Sub(last) < settleDelay {
					continue
				}
				delete(pending, path)
				done[path] = true
				if err := c.uploadFile(ctx, cl, fields, path); err != nil {
					if errors.NeedsReauth(err) {
						return err
					}
					printWarning("%s: %s", filepath.Base(path), errors.UserMessage(err))
				}
			}
		}
	}
}
