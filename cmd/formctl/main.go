// Command formctl inspects and edits the controls of a YAML or JSON editor
// document without a display.
//
// Usage:
//
//	formctl [-config file] [-env file] [-events] [-values] <command> doc.(yaml|json) [args]
//
// Commands:
//
//	list                      one line per control run
//	get <conceptId>           values of every run of a concept
//	set <controlId> <value>   set a run's value and print the document
//	focus <controlId>         activate a run and print its shadow boxes
//	html                      render the document as HTML
//	text                      print the text of every zone; with -values
//	                          brackets and placeholders are left out
package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/tsawler/formctl/config"
	"github.com/tsawler/formctl/control"
	"github.com/tsawler/formctl/eventbus"
	"github.com/tsawler/formctl/headless"
	"github.com/tsawler/formctl/htmldoc"
	"github.com/tsawler/formctl/internal/logger"
	"github.com/tsawler/formctl/model"
)

const eventTopic = "formctl.events"

var errUsage = errors.New("usage: formctl [-config file] [-env file] [-events] [-values] <list|get|set|focus|html|text> doc.(yaml|json) [args]")

func main() {
	if err := run(os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(args []string, stdout, stderr io.Writer) error {
	fset := flag.NewFlagSet("formctl", flag.ContinueOnError)
	fset.SetOutput(stderr)
	configPath := fset.String("config", "", "config file (.toml, .yaml or .json)")
	envPath := fset.String("env", "", "dotenv file with FORMCTL_* overrides (default .env when present)")
	events := fset.Bool("events", false, "print controlChange events as they are published")
	values := fset.Bool("values", false, "text: print control values only")
	if err := fset.Parse(args); err != nil {
		return err
	}
	if fset.NArg() < 2 {
		return errUsage
	}

	if err := loadEnv(*envPath); err != nil {
		return err
	}
	cfg, err := config.Load(*configPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	log := logger.New(cfg.LoggerOptions())
	defer func() { _ = log.Sync() }()

	command, docPath := fset.Arg(0), fset.Arg(1)
	doc, err := headless.LoadDocument(docPath, cfg.FormatOptions())
	if err != nil {
		return err
	}

	bus := eventbus.New()
	if *events {
		stop, err := forwardEvents(bus, cfg, log, stdout)
		if err != nil {
			return err
		}
		defer stop()
	}

	ui := headless.NewUI()
	engine := headless.New(doc, headless.WithGeometry(cfg.Geometry()), headless.WithEventBus(bus))
	opts := append(ui.Options(),
		control.WithFormatOptions(cfg.FormatOptions()),
		control.WithLogger(log),
		control.WithRunChecks(cfg.Log.Level == "debug"),
	)
	ctl := control.New(engine, opts...)

	rest := fset.Args()[2:]
	switch command {
	case "list":
		return listControls(stdout, ctl)
	case "get":
		if len(rest) != 1 {
			return errUsage
		}
		return getValues(stdout, ctl, rest[0])
	case "set":
		if len(rest) != 2 {
			return errUsage
		}
		return setValue(stdout, ctl, doc, filepath.Ext(docPath), rest[0], rest[1])
	case "focus":
		if len(rest) != 1 {
			return errUsage
		}
		return focus(stdout, ctl, engine, ui, rest[0])
	case "html":
		return htmldoc.Render(stdout, doc)
	case "text":
		if *values {
			for _, z := range model.Zones {
				*doc.Zone(z) = model.FilterAssistElements(*doc.Zone(z))
			}
		}
		_, err := fmt.Fprintln(stdout, doc.ExtractText())
		return err
	default:
		return fmt.Errorf("unknown command %q: %w", command, errUsage)
	}
}

// loadEnv loads path, or .env when path is empty and the file exists.
func loadEnv(path string) error {
	if path == "" {
		if _, err := os.Stat(".env"); errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		path = ".env"
	}
	if err := godotenv.Load(path); err != nil {
		return fmt.Errorf("load env file: %w", err)
	}
	return nil
}

// forwardEvents publishes controlChange events to an in-process watermill
// pub/sub and prints every message it delivers. Publishing blocks until the
// printer acks, so output order follows emission order.
func forwardEvents(bus *eventbus.Bus, cfg *config.Config, log logger.Logger, w io.Writer) (func(), error) {
	var wmLog watermill.LoggerAdapter = watermill.NopLogger{}
	if cfg.Log.Level == "debug" {
		wmLog = watermill.NewStdLogger(true, false)
	}
	pubSub := gochannel.NewGoChannel(gochannel.Config{BlockPublishUntilSubscriberAck: true}, wmLog)

	messages, err := pubSub.Subscribe(context.Background(), eventTopic)
	if err != nil {
		return nil, fmt.Errorf("subscribe to %s: %w", eventTopic, err)
	}

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		for msg := range messages {
			fmt.Fprintf(w, "event %s %s\n", msg.Metadata.Get(eventbus.MetadataEvent), msg.Payload)
			msg.Ack()
		}
	}()

	pub := eventbus.NewPublisher(pubSub, eventTopic, log)
	unsubscribe := bus.On(eventbus.ControlChange, pub.Handler(eventbus.ControlChange))

	return func() {
		unsubscribe()
		if err := pubSub.Close(); err != nil {
			log.Warn("cli", "closing event pub/sub failed", map[string]interface{}{"error": err})
		}
		wg.Wait()
	}, nil
}

func listControls(w io.Writer, ctl *control.Control) error {
	for _, e := range ctl.List() {
		c := e.Control
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", e.ControlID, c.Type, c.ConceptID, displayValue(c))
	}
	return nil
}

// displayValue is the code for option controls and the value text otherwise.
func displayValue(c *model.Control) string {
	if c.Type.HasOptions() {
		return c.Code
	}
	return c.Value.Text()
}

func getValues(w io.Writer, ctl *control.Control, conceptID string) error {
	results, err := ctl.GetValueByConceptID(control.GetValueOption{ConceptID: conceptID})
	if err != nil {
		return err
	}
	for _, r := range results {
		fmt.Fprintf(w, "%s\t%s\t%s\n", r.Zone, r.Value, r.InnerText)
	}
	return nil
}

func setValue(w io.Writer, ctl *control.Control, doc *model.Document, ext, controlID, value string) error {
	ok, err := ctl.SetValueByConceptID(control.SetValueOption{ControlID: controlID, Value: value})
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("control %s was not updated", controlID)
	}
	ctl.Flush()

	out := model.NewDocument()
	for _, z := range model.Zones {
		*out.Zone(z) = model.Zip(*doc.Zone(z))
	}
	return encodeDocument(w, out, ext)
}

func encodeDocument(w io.Writer, doc *model.Document, ext string) error {
	switch strings.ToLower(ext) {
	case ".json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(doc)
	default:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(doc); err != nil {
			return fmt.Errorf("encode YAML document: %w", err)
		}
		return enc.Close()
	}
}

// focus places the caret on the first content element of a main-zone run,
// or on its prefix when the run shows only a placeholder, and activates it.
func focus(w io.Writer, ctl *control.Control, engine *headless.Engine, ui *headless.UI, controlID string) error {
	index := -1
	for i, e := range engine.Document().Main {
		if e.ControlID != controlID {
			continue
		}
		if index < 0 {
			index = i
		}
		if !e.ControlComponent.IsAssist() {
			index = i
			break
		}
	}
	if index < 0 {
		return fmt.Errorf("%w: %s", control.ErrUnknownControl, controlID)
	}

	engine.Range().SetRange(index, index)
	ctl.InitControl()
	ctl.Flush()

	for _, box := range ui.Boxes {
		r := box.Absolute(engine.Pages().Geometry())
		fmt.Fprintf(w, "box %s page %d x=%g y=%g w=%g h=%g\n", box.ID, box.PageNo, r.X, r.Y, r.Width, r.Height)
	}
	return nil
}
