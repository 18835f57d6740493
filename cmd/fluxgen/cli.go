package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/BaSui01/fluxgen/catalog"
	"github.com/BaSui01/fluxgen/config"
	"github.com/BaSui01/fluxgen/generation"
	"github.com/BaSui01/fluxgen/history"
	"github.com/BaSui01/fluxgen/optimizer"
	"github.com/BaSui01/fluxgen/pipeline"
	"github.com/BaSui01/fluxgen/refimage"
)

// =============================================================================
// 🖼️ generate 命令
// =============================================================================

// optionalInt 未设置时为 nil，区分"未指定"与 0
type optionalInt struct{ v *int }

func (o *optionalInt) String() string {
	if o.v == nil {
		return ""
	}
	return fmt.Sprint(*o.v)
}

func (o *optionalInt) Set(s string) error {
	var n int
	if _, err := fmt.Sscan(s, &n); err != nil {
		return err
	}
	o.v = &n
	return nil
}

type optionalFloat struct{ v *float64 }

func (o *optionalFloat) String() string {
	if o.v == nil {
		return ""
	}
	return fmt.Sprint(*o.v)
}

func (o *optionalFloat) Set(s string) error {
	var f float64
	if _, err := fmt.Sscan(s, &f); err != nil {
		return err
	}
	o.v = &f
	return nil
}

// cliOptions generate 命令的参数
type cliOptions struct {
	configPath  string
	prompt      string
	negative    string
	model       string
	style       string
	size        string
	width       int
	height      int
	seed        int64
	outputs     int
	quality     string
	steps       optionalInt
	guidance    optionalFloat
	noOptimize  bool
	enhance     bool
	noTranslate bool
	reference   string
	outDir      string
}

func parseGenerateFlags(args []string) (cliOptions, error) {
	var o cliOptions
	fs := flag.NewFlagSet("generate", flag.ContinueOnError)
	fs.StringVar(&o.configPath, "config", "", "Path to config file")
	fs.StringVar(&o.prompt, "prompt", "", "Prompt text (Chinese is translated)")
	fs.StringVar(&o.negative, "negative", "", "Negative prompt")
	fs.StringVar(&o.model, "model", catalog.DefaultModel, "Model id")
	fs.StringVar(&o.style, "style", catalog.StyleNone, "Style preset key")
	fs.StringVar(&o.size, "size", "", "Size preset key, overrides -width/-height")
	fs.IntVar(&o.width, "width", generation.DefaultWidth, "Width in pixels")
	fs.IntVar(&o.height, "height", generation.DefaultHeight, "Height in pixels")
	fs.Int64Var(&o.seed, "seed", generation.RandomSeed, "Seed, -1 for random")
	fs.IntVar(&o.outputs, "n", 1, "Number of images")
	fs.StringVar(&o.quality, "quality", string(catalog.QualityStandard), "economy, standard, ultra or auto")
	fs.Var(&o.steps, "steps", "Steps override")
	fs.Var(&o.guidance, "guidance", "Guidance override")
	fs.BoolVar(&o.noOptimize, "no-optimize", false, "Disable automatic step/guidance tuning")
	fs.BoolVar(&o.enhance, "enhance", false, "Append quality boosters to the prompt")
	fs.BoolVar(&o.noTranslate, "no-translate", false, "Send the prompt untranslated")
	fs.StringVar(&o.reference, "ref", "", "Reference image file (kontext)")
	fs.StringVar(&o.outDir, "out", ".", "Directory for generated images")
	if err := fs.Parse(args); err != nil {
		return o, err
	}
	if o.prompt == "" && fs.NArg() > 0 {
		o.prompt = strings.Join(fs.Args(), " ")
	}
	return o, nil
}

// request 把参数转换为 generation.Request
func (o cliOptions) request() (generation.Request, error) {
	req := generation.Request{
		Prompt:         o.prompt,
		Model:          o.model,
		Width:          o.width,
		Height:         o.height,
		Style:          o.style,
		Seed:           o.seed,
		NegativePrompt: o.negative,
		NumOutputs:     o.outputs,
		Steps:          o.steps.v,
		Guidance:       o.guidance.v,
		Enhance:        o.enhance,
	}

	if o.noOptimize {
		off := false
		req.AutoOptimize = &off
	}

	if o.quality == "auto" {
		req.QualityMode = optimizer.RecommendQualityMode(o.prompt, o.model)
	} else {
		mode, err := catalog.QualityModeOf(o.quality)
		if err != nil {
			return req, err
		}
		req.QualityMode = mode
	}

	if o.size != "" {
		size, err := catalog.SizeOf(o.size)
		if err != nil {
			return req, err
		}
		req.Width, req.Height = size.Width, size.Height
	}

	if o.reference != "" {
		data, err := os.ReadFile(o.reference)
		if err != nil {
			return req, fmt.Errorf("read reference image: %w", err)
		}
		ref, err := refimage.EncodeDataURL(data)
		if err != nil {
			return req, err
		}
		req.ReferenceImages = []string{ref}
	}
	return req, nil
}

func runGenerate(args []string) error {
	opts, err := parseGenerateFlags(args)
	if err != nil {
		return err
	}
	if strings.TrimSpace(opts.prompt) == "" {
		return errors.New("-prompt is required")
	}
	req, err := opts.request()
	if err != nil {
		return err
	}

	cfg, _, err := loadConfig(opts.configPath)
	if err != nil {
		return err
	}
	logger, _ := initLogger(cfg.Log)
	defer func() { _ = logger.Sync() }()

	ctx, cancel := context.WithTimeout(context.Background(),
		cfg.Provider.Timeout*time.Duration(max(req.NumOutputs, 1))+30*time.Second)
	defer cancel()

	app, err := NewApp(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer app.Close(context.Background())

	out, err := app.pipeline.Generate(ctx, pipeline.Input{
		Request:   req,
		Translate: cfg.Translation.Enabled && !opts.noTranslate,
	})
	if err != nil {
		return err
	}

	if t := out.Translation; t != nil && t.Prompt.Changed() {
		fmt.Printf("Translated (%s): %s\n", t.Prompt.Provider, t.Prompt.Translated)
	}

	if err := os.MkdirAll(opts.outDir, 0o755); err != nil {
		return err
	}
	for _, r := range out.Results {
		blob, err := app.media.Get(ctx, r.URL)
		if err != nil {
			return fmt.Errorf("read image %s: %w", r.URL, err)
		}
		name := filepath.Join(opts.outDir, fmt.Sprintf("%s-%d%s", r.Model, r.Seed, extensionFor(blob.MimeType)))
		if err := os.WriteFile(name, blob.Data, 0o644); err != nil {
			return err
		}
		fmt.Printf("%s  seed=%d steps=%d guidance=%g  %dx%d\n", name, r.Seed, r.Steps, r.Guidance, r.Width, r.Height)
	}
	return nil
}

func extensionFor(mimeType string) string {
	switch mimeType {
	case "image/jpeg":
		return ".jpg"
	case "image/png":
		return ".png"
	case "image/webp":
		return ".webp"
	case "image/gif":
		return ".gif"
	default:
		return ".bin"
	}
}

// =============================================================================
// 🗂️ history 命令
// =============================================================================

func runHistory(args []string) error {
	if len(args) == 0 {
		return errors.New("usage: fluxgen history <list|stats|export|import|delete|clear> [options]")
	}
	sub := args[0]

	fs := flag.NewFlagSet("history "+sub, flag.ContinueOnError)
	configPath := fs.String("config", "", "Path to config file")
	outPath := fs.String("out", "", "Export file (default: dated name in the current directory)")
	inPath := fs.String("in", "", "File to import")
	if err := fs.Parse(args[1:]); err != nil {
		return err
	}

	cfg, _, err := loadConfig(*configPath)
	if err != nil {
		return err
	}
	store, closeFn, err := openHistory(cfg)
	if err != nil {
		return err
	}
	defer closeFn()

	ctx := context.Background()
	switch sub {
	case "list":
		return printHistory(store.GetAll(ctx))
	case "stats":
		return json.NewEncoder(os.Stdout).Encode(store.Stats(ctx))
	case "export":
		doc, err := store.ExportAll(ctx)
		if err != nil {
			return err
		}
		path := *outPath
		if path == "" {
			path = history.ExportFileName(time.Now())
		}
		if err := os.WriteFile(path, doc, 0o644); err != nil {
			return err
		}
		fmt.Println(path)
		return nil
	case "import":
		if *inPath == "" {
			return errors.New("-in is required")
		}
		doc, err := os.ReadFile(*inPath)
		if err != nil {
			return err
		}
		n, err := store.Import(ctx, doc)
		if err != nil {
			return err
		}
		fmt.Printf("imported %d items\n", n)
		return nil
	case "delete":
		if fs.NArg() == 0 {
			return errors.New("usage: fluxgen history delete <id>...")
		}
		for _, id := range fs.Args() {
			if err := store.DeleteByID(ctx, id); err != nil {
				return err
			}
		}
		return nil
	case "clear":
		return store.Clear(ctx)
	default:
		return fmt.Errorf("unknown history command: %s", sub)
	}
}

// openHistory 只装配历史存储，不构建生成客户端
func openHistory(cfg *config.Config) (*history.Store, func(), error) {
	logger, _ := initLogger(cfg.Log)
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	app := &App{cfg: cfg, logger: logger}
	if err := app.connect(ctx); err != nil {
		return nil, nil, err
	}
	slot, err := history.NewSlot(ctx, cfg.History, history.Backends{
		Cache: app.cache,
		DB:    app.pool,
		Mongo: app.mongoDatabase(),
	})
	if err != nil {
		app.Close(context.Background())
		return nil, nil, err
	}
	store, err := newMediaStore(cfg.Media)
	if err != nil {
		app.Close(context.Background())
		return nil, nil, err
	}
	closeFn := func() {
		app.Close(context.Background())
		_ = logger.Sync()
	}
	return history.NewStore(slot, logger,
		history.WithCapacity(cfg.History.Capacity),
		history.WithRemoveHook(releaseMedia(store, logger)),
	), closeFn, nil
}

func printHistory(items []history.Item) error {
	tw := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tTIME\tMODEL\tSTYLE\tSEED\tPROMPT")
	for _, it := range items {
		prompt := it.Prompt
		if r := []rune(prompt); len(r) > 48 {
			prompt = string(r[:47]) + "…"
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%d\t%s\n", it.ID, it.Timestamp, it.Model, it.Style, it.Seed, prompt)
	}
	return tw.Flush()
}

// =============================================================================
// 🎨 styles 命令
// =============================================================================

func runStyles(args []string) error {
	fs := flag.NewFlagSet("styles", flag.ContinueOnError)
	category := fs.String("category", "", "Only list this category")
	if err := fs.Parse(args); err != nil {
		return err
	}

	tw := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	grouped := catalog.StylesByCategory()
	for _, cat := range catalog.Categories() {
		if *category != "" && cat.Key != *category {
			continue
		}
		fmt.Fprintf(tw, "%s %s\n", cat.Icon, cat.Name)
		for _, s := range grouped[cat.Key] {
			fmt.Fprintf(tw, "  %s\t%s %s\t%s\n", s.Key, s.Icon, s.Name, s.Description)
		}
	}

	fmt.Fprintln(tw, "\nModels")
	for _, m := range catalog.Models() {
		fmt.Fprintf(tw, "  %s\t%s\tmax %dpx\t%s\n", m.ID, m.Name, m.MaxSize, m.Description)
	}
	fmt.Fprintln(tw, "\nSizes")
	for _, s := range catalog.Sizes() {
		fmt.Fprintf(tw, "  %s\t%s\t%dx%d\n", s.Key, s.Name, s.Width, s.Height)
	}
	fmt.Fprintln(tw, "\nQuality modes")
	for _, q := range catalog.QualityModes() {
		fmt.Fprintf(tw, "  %s\t%s %s\t%s\n", q.Mode, q.Icon, q.Name, q.Description)
	}
	return tw.Flush()
}
