// Command adminctl drives the admin panel operations from a terminal.
//
//	adminctl [-url URL] [-key KEY] list <section>
//	adminctl show <section> <id>
//	adminctl create <section> field=value...
//	adminctl update <section> <id> field=value...
//	adminctl delete <section> <id>
//
// create and update accept -image FILE to upload an image first.
package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	_ "github.com/joho/godotenv/autoload"

	"vidar/internal/client"
	"vidar/internal/config"
	"vidar/internal/logger"
)

func main() {
	cfg := config.Load()
	log := logger.New(cfg.AppEnv)

	fs := flag.NewFlagSet("adminctl", flag.ExitOnError)
	baseURL := fs.String("url", "http://localhost:"+cfg.Port, "server base URL")
	apiKey := fs.String("key", cfg.APIKey, "API key (defaults to API_KEY)")
	image := fs.String("image", "", "image file uploaded before create/update")
	_ = fs.Parse(os.Args[1:])

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	ctl := client.NewController(client.New(*baseURL, *apiKey))
	if err := run(ctx, ctl, fs.Args(), *image, os.Stdout); err != nil {
		if client.IsUnauthorized(err) {
			log.Error().Msg("unauthorized: check -key or API_KEY")
		} else {
			log.Error().Err(err).Msg("adminctl failed")
		}
		os.Exit(1)
	}
}

var errUsage = errors.New("usage: adminctl list|show|create|update|delete <section> [id] [field=value...]")

func run(ctx context.Context, ctl *client.Controller, args []string, image string, out io.Writer) error {
	if len(args) < 2 {
		return errUsage
	}
	section, err := client.ParseSection(args[1])
	if err != nil {
		return err
	}
	ctl.SwitchSection(section)

	switch args[0] {
	case "list":
		items, err := ctl.Load(ctx)
		if err != nil {
			return err
		}
		if len(items) == 0 {
			_, err = fmt.Fprintln(out, "No hay registros")
			return err
		}
		for _, it := range items {
			if _, err := fmt.Fprintf(out, "%s\t%s\t%s\n", it.ID, it.Title, it.Subtitle); err != nil {
				return err
			}
		}
		return nil

	case "show":
		if len(args) < 3 {
			return errUsage
		}
		rec, err := find(ctx, ctl, args[2])
		if err != nil {
			return err
		}
		form := ctl.StartEdit(rec)
		ctl.Cancel()
		return writeJSON(out, form)

	case "create", "update":
		fieldsFrom := 2
		if args[0] == "update" {
			if len(args) < 3 {
				return errUsage
			}
			rec, err := find(ctx, ctl, args[2])
			if err != nil {
				return err
			}
			ctl.StartEdit(rec)
			fieldsFrom = 3
		}
		form, err := parseFields(args[fieldsFrom:])
		if err != nil {
			return err
		}
		var img *client.Image
		if image != "" {
			f, err := os.Open(image)
			if err != nil {
				return fmt.Errorf("open image: %w", err)
			}
			defer f.Close()
			img = &client.Image{Name: image, Content: f}
		}
		rec, err := ctl.Submit(ctx, form, img)
		if err != nil {
			return err
		}
		return writeJSON(out, rec)

	case "delete":
		if len(args) < 3 {
			return errUsage
		}
		if err := ctl.Delete(ctx, args[2]); err != nil {
			return err
		}
		_, err := fmt.Fprintln(out, "deleted", args[2])
		return err
	}
	return errUsage
}

func find(ctx context.Context, ctl *client.Controller, id string) (client.Record, error) {
	recs, err := ctl.Records(ctx)
	if err != nil {
		return nil, err
	}
	for _, rec := range recs {
		if rec.ID() == id {
			return rec, nil
		}
	}
	return nil, fmt.Errorf("%s %s not found", ctl.Section(), id)
}

// parseFields turns field=value pairs into a form payload. Values stay strings, as a browser form sends them.
func parseFields(pairs []string) (map[string]any, error) {
	form := make(map[string]any, len(pairs))
	for _, p := range pairs {
		k, v, ok := strings.Cut(p, "=")
		if !ok || k == "" {
			return nil, fmt.Errorf("invalid field %q, want name=value", p)
		}
		form[k] = v
	}
	return form, nil
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
