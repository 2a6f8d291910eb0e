// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

// Command areactl is an interactive area workspace backed by an areamap server.
package main

import (
	"bufio"
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strings"

	"github.com/danielhkuo/areamap/apiclient"
	"github.com/danielhkuo/areamap/geo"
	"github.com/danielhkuo/areamap/logger"
	"github.com/danielhkuo/areamap/models"
	"github.com/danielhkuo/areamap/workspace"
)

const usage = `commands:
  load                 reload your areas
  click LAT LNG        add a point as if clicked on the map
  point LAT LNG        add a point through the coordinate inputs
  search QUERY         find a place and add it
  locate               add your approximate current location
  name NAME            set the name for the next area
  create               create an area from the pending points
  clear                drop pending points and current location
  unhighlight          clear the highlighted area
  select ID            highlight an area
  toggle ID            show or hide an area's coordinates
  delete ID            delete an area
  show                 print the workspace
  geojson              print the map overlays as GeoJSON
  help                 this text
  quit                 exit`

func main() {
	fs := flag.NewFlagSet("areactl", flag.ExitOnError)
	server := fs.String("server", "http://localhost:3000", "areamap server URL")
	user := fs.String("user", models.DefaultUserID, "owner of the areas")
	timeout := fs.Duration("locate-timeout", workspace.DefaultLocateTimeout, "how long to wait for a location")
	logLevel := fs.String("log-level", "warn", "log level")
	fs.Parse(os.Args[1:])

	logger.Setup(*logLevel, "text")

	client := apiclient.New(*server, nil)
	ws, err := workspace.New(workspace.Config{
		UserID:        *user,
		API:           client,
		Geocoder:      client,
		Locator:       client,
		LocateTimeout: *timeout,
	})
	if err != nil {
		slog.Error("workspace setup failed", "error", err)
		os.Exit(1)
	}
	defer ws.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := ws.Load(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "error:", ws.State().Error)
	}
	if err := run(ctx, ws, os.Stdin, os.Stdout); err != nil {
		slog.Error("session ended", "error", err)
		os.Exit(1)
	}
}

// run reads commands from in until quit or EOF.
func run(ctx context.Context, ws *workspace.Workspace, in io.Reader, out io.Writer) error {
	sc := bufio.NewScanner(in)
	fmt.Fprint(out, "> ")
	for sc.Scan() {
		if ctx.Err() != nil {
			return nil
		}
		cmd, arg, _ := strings.Cut(strings.TrimSpace(sc.Text()), " ")
		arg = strings.TrimSpace(arg)
		if cmd == "quit" || cmd == "exit" {
			return nil
		}
		if err := dispatch(ctx, ws, cmd, arg, out); err != nil {
			fmt.Fprintln(out, "error:", ws.State().Error)
		}
		fmt.Fprint(out, "> ")
	}
	return sc.Err()
}

func dispatch(ctx context.Context, ws *workspace.Workspace, cmd, arg string, out io.Writer) error {
	switch cmd {
	case "":
		return nil
	case "help":
		fmt.Fprintln(out, usage)
	case "load":
		if err := ws.Load(ctx); err != nil {
			return err
		}
		fmt.Fprintf(out, "%d areas\n", len(ws.State().Areas))
	case "click":
		lat, lng, _ := strings.Cut(arg, " ")
		p, ok := parsePair(lat, lng)
		if !ok {
			fmt.Fprintln(out, "usage: click LAT LNG")
			return nil
		}
		ws.View().Click(p)
	case "point":
		lat, lng, _ := strings.Cut(arg, " ")
		ws.SetLatitudeInput(lat)
		ws.SetLongitudeInput(lng)
		return ws.AddManualPoint()
	case "search":
		ws.SetSearchQuery(arg)
		return ws.SearchLocation(ctx)
	case "locate":
		return ws.UseCurrentLocation(ctx)
	case "name":
		ws.SetName(arg)
	case "create":
		if err := ws.CreateArea(ctx); err != nil {
			return err
		}
		s := ws.State()
		a := s.Areas[len(s.Areas)-1]
		fmt.Fprintf(out, "created %s (%s)\n", a.Name, a.ID)
	case "clear":
		ws.ClearMarkers()
	case "unhighlight":
		ws.ClearHighlight()
	case "select":
		if err := ws.SelectArea(arg); err != nil {
			fmt.Fprintln(out, "no such area:", arg)
		}
	case "toggle":
		ws.ToggleCoordinates(arg)
		printAreas(out, ws.State())
	case "delete":
		return ws.DeleteArea(ctx, arg)
	case "show":
		printState(out, ws.State())
	case "geojson":
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(ws.View().Scene().GeoJSON())
	default:
		fmt.Fprintf(out, "unknown command %q, try help\n", cmd)
	}
	return nil
}

func parsePair(lat, lng string) (geo.LatLng, bool) {
	var p geo.LatLng
	if _, err := fmt.Sscanf(lat+" "+lng, "%g %g", &p[0], &p[1]); err != nil {
		return p, false
	}
	return p, p.Finite()
}

func printState(out io.Writer, s workspace.State) {
	fmt.Fprintf(out, "user %s  centre %s  zoom %d\n", s.UserID, s.Center, s.Zoom)
	if s.CurrentLocation != nil {
		fmt.Fprintf(out, "you are at %s\n", *s.CurrentLocation)
	}
	fmt.Fprintf(out, "pending points (%d):\n", len(s.Markers))
	for i, m := range s.Markers {
		fmt.Fprintf(out, "  Marker %d: %s\n", i+1, m)
	}
	if s.Name != "" {
		fmt.Fprintf(out, "name: %s\n", s.Name)
	}
	if len(s.Highlighted) > 0 {
		fmt.Fprintf(out, "highlighted area: %d points\n", len(s.Highlighted))
	}
	printAreas(out, s)
	if s.Error != "" {
		fmt.Fprintln(out, "error:", s.Error)
	}
}

func printAreas(out io.Writer, s workspace.State) {
	if len(s.Areas) == 0 {
		fmt.Fprintln(out, "No areas created yet.")
		return
	}
	fmt.Fprintln(out, "areas:")
	for _, a := range s.Areas {
		fmt.Fprintf(out, "  %s  %s\n", a.ID, a.Name)
		if !s.IsOpen(a.ID) {
			continue
		}
		for _, c := range a.Coordinates {
			fmt.Fprintf(out, "    Latitude: %.6f, Longitude: %.6f\n", c.Lat(), c.Lng())
		}
	}
}
