// Command jsel is the streaming JSON expression processor's CLI: it wires
// the byte reader, selection-language parser, evaluation context, process
// graph, and output sinks together behind one flag surface.
package main

import (
	"bufio"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"sort"
	"strings"
	"syscall"

	"github.com/arnodel/jsel/eval"
	"github.com/arnodel/jsel/function"
	"github.com/arnodel/jsel/internal/diag"
	"github.com/arnodel/jsel/jsonvalue"
	"github.com/arnodel/jsel/output"
	"github.com/arnodel/jsel/parser"
	"github.com/arnodel/jsel/process"
	"github.com/arnodel/jsel/value"
	"github.com/mattn/go-colorable"
	"github.com/mattn/go-isatty"
)

func fatalError(format string, args ...interface{}) {
	fmt.Fprintf(os.Stderr, format+"\n", args...)
	os.Exit(1)
}

// onErrorPolicy controls how recoverable JSON parse errors are handled.
type onErrorPolicy int

const (
	onErrorStderr onErrorPolicy = iota
	onErrorIgnore
	onErrorPanic
	onErrorStdout
)

func parseOnError(s string) (onErrorPolicy, error) {
	switch s {
	case "ignore":
		return onErrorIgnore, nil
	case "panic":
		return onErrorPanic, nil
	case "stderr":
		return onErrorStderr, nil
	case "stdout":
		return onErrorStdout, nil
	default:
		return 0, fmt.Errorf("invalid -on-error value %q (use ignore, panic, stderr, or stdout)", s)
	}
}

func main() {
	signal.Ignore(syscall.SIGPIPE)

	var onErrorStr string
	var outputStyle string
	var jsonStyleStr string
	var utf8Strings bool
	var textSeparator, textStringPrefix, textStringPostfix string
	var textHeader bool
	var textNull, textTrue, textFalse, textMissing string
	var textEscapes escapeList
	var choose, sortBy, setFlags stringList
	var filterExpr, groupByExpr, splitByExpr string
	var merge, unique bool
	var skip, take int
	var rowSeparator string
	var regexCacheSize int
	var availableFunctions bool
	var colorMode string

	flag.StringVar(&onErrorStr, "on-error", "stderr", "policy for recoverable JSON parse errors: ignore, panic, stderr, stdout")
	flag.StringVar(&outputStyle, "output-style", "json", "output sink: json, csv, text")
	flag.StringVar(&jsonStyleStr, "json-style", "pretty", "JSON style: one-line, concise, pretty")
	flag.BoolVar(&utf8Strings, "utf8-strings", false, "emit literal UTF-8 instead of \\uXXXX escapes for non-ASCII")
	flag.StringVar(&textSeparator, "text-separator", "\t", "text output: field separator")
	flag.StringVar(&textStringPrefix, "text-string-prefix", "", "text output: string value prefix")
	flag.StringVar(&textStringPostfix, "text-string-postfix", "", "text output: string value suffix")
	flag.BoolVar(&textHeader, "text-header", false, "text output: write a header row of titles")
	flag.StringVar(&textNull, "text-null-keyword", "null", "text output: spelling for null")
	flag.StringVar(&textTrue, "text-true-keyword", "true", "text output: spelling for true")
	flag.StringVar(&textFalse, "text-false-keyword", "false", "text output: spelling for false")
	flag.StringVar(&textMissing, "text-missing-value-keyword", "", "text output: spelling for a missing field")
	flag.Var(&textEscapes, "text-escape", "text output: CHAR=SEQ escape, repeatable")
	flag.Var(&choose, "choose", "named projection expression, repeatable (alias: -select)")
	flag.Var(&choose, "select", "alias for -choose")
	flag.StringVar(&filterExpr, "filter", "", "predicate expression (alias: -where)")
	flag.StringVar(&filterExpr, "where", "", "alias for -filter")
	flag.StringVar(&groupByExpr, "group-by", "", "grouping key expression")
	flag.Var(&sortBy, "sort-by", "sort key expression, optional trailing ASC/DESC, repeatable (alias: -order-by)")
	flag.Var(&sortBy, "order-by", "alias for -sort-by")
	flag.StringVar(&splitByExpr, "split-by", "", "array-yielding expression to explode records")
	flag.BoolVar(&merge, "merge", false, "collect all records into one")
	flag.BoolVar(&unique, "unique", false, "drop duplicate records")
	flag.IntVar(&skip, "skip", 0, "skip the first N records")
	flag.IntVar(&take, "take", -1, "forward at most N records (-1: unbounded)")
	flag.Var(&setFlags, "set", "name=value or @name=expr to predefine a variable or macro, repeatable")
	flag.StringVar(&rowSeparator, "row-separator", "\n", "separator written after each output row (json and text output styles only)")
	flag.IntVar(&regexCacheSize, "regular-expression-cache-size", 128, "bounded LRU size for compiled regexes (0 disables caching)")
	flag.BoolVar(&availableFunctions, "available-functions", false, "print the function reference and exit")
	flag.StringVar(&colorMode, "color", "auto", "colorize JSON pretty output: auto, always, never")

	flag.Usage = printUsage
	flag.Parse()

	if availableFunctions {
		printAvailableFunctions()
		return
	}

	onError, err := parseOnError(onErrorStr)
	if err != nil {
		fatalError("%s", err)
	}

	preset, err := buildPreSet(setFlags.values)
	if err != nil {
		fatalError("%s", err)
	}

	sink, err := buildSink(outputStyle, jsonStyleStr, utf8Strings, colorMode, rowSeparator, output.TextOptions{
		Separator:      textSeparator,
		StringPrefix:   textStringPrefix,
		StringSuffix:   textStringPostfix,
		NullKeyword:    textNull,
		TrueKeyword:    textTrue,
		FalseKeyword:   textFalse,
		MissingKeyword: textMissing,
		Escapes:        escapesToMap(textEscapes.entries),
		Header:         textHeader,
		RowSeparator:   rowSeparator,
	})
	if err != nil {
		fatalError("%s", err)
	}

	chain, err := buildChain(chainOptions{
		choose:  choose.values,
		filter:  filterExpr,
		groupBy: groupByExpr,
		sortBy:  sortBy.values,
		splitBy: splitByExpr,
		merge:   merge,
		unique:  unique,
		skip:    skip,
		take:    take,
		sink:    sink,
	})
	if err != nil {
		fatalError("%s", err)
	}
	entry := withPreSet(preset, chain)

	sources := expandPaths(flag.Args())
	run := &runner{
		entry:          entry,
		onError:        onError,
		regexCacheSize: regexCacheSize,
	}
	if err := run.run(sources); err != nil {
		fatalError("error: %s", err)
	}
	if run.failed && onError == onErrorPanic {
		os.Exit(1)
	}
}

// withPreSet threads preset in front of chain; preset is nil when -set was
// never given.
func withPreSet(preset *process.PreSet, chain process.Stage) process.Stage {
	if preset == nil {
		return chain
	}
	preset.Next = chain
	return preset
}

func printUsage() {
	fmt.Fprint(os.Stderr, `jsel - streaming JSON expression processor

USAGE:
  jsel [options] [file ...]

Reads a concatenation of JSON values from the given files (directories are
expanded recursively; no files means stdin), evaluates a selection-language
pipeline against each, and writes transformed records as JSON, CSV, or text.

OPTIONS:
`)
	flag.PrintDefaults()
	fmt.Fprint(os.Stderr, `
Use -available-functions to list every function the selection language
supports.
`)
}

func printAvailableFunctions() {
	w := bufio.NewWriter(os.Stdout)
	defer w.Flush()
	byGroup := map[string][]*function.Def{}
	var groups []string
	for _, d := range function.Default.Defs() {
		if _, seen := byGroup[d.Group]; !seen {
			groups = append(groups, d.Group)
		}
		byGroup[d.Group] = append(byGroup[d.Group], d)
	}
	sort.Strings(groups)
	for _, g := range groups {
		fmt.Fprintf(w, "## %s\n\n", g)
		for _, d := range byGroup[g] {
			names := append([]string{d.Name}, d.Aliases...)
			fmt.Fprintf(w, "  %s\n", strings.Join(names, ", "))
			if d.Doc != "" {
				fmt.Fprintf(w, "    %s\n", d.Doc)
			}
			for _, ex := range d.Examples {
				fmt.Fprintf(w, "    e.g. %s\n", ex)
			}
		}
		fmt.Fprintln(w)
	}
}

// expandPaths resolves the positional argument list into an ordered list
// of (path, isStdin) sources, recursively expanding directories. An
// empty list means stdin.
type source struct {
	path    string
	isStdin bool
}

func expandPaths(args []string) []source {
	if len(args) == 0 {
		return []source{{isStdin: true}}
	}
	var out []source
	for _, arg := range args {
		info, err := os.Stat(arg)
		if err != nil {
			fatalError("%s: %s", arg, err)
		}
		if !info.IsDir() {
			out = append(out, source{path: arg})
			continue
		}
		err = filepath.Walk(arg, func(p string, fi os.FileInfo, err error) error {
			if err != nil {
				return err
			}
			if !fi.IsDir() {
				out = append(out, source{path: p})
			}
			return nil
		})
		if err != nil {
			fatalError("%s: %s", arg, err)
		}
	}
	return out
}

// runner drives every source's decoder through entry in order, applying
// onError to recoverable parse errors.
type runner struct {
	entry          process.Stage
	onError        onErrorPolicy
	regexCacheSize int
	failed         bool
	globalIndex    int
}

func (r *runner) run(sources []source) error {
	decoders := make([]*jsonvalue.Decoder, 0, len(sources))
	closers := make([]io.Closer, 0, len(sources))
	defer func() {
		for _, c := range closers {
			c.Close()
		}
	}()
	for i, src := range sources {
		var in io.Reader
		name := src.path
		if src.isStdin {
			in = os.Stdin
			name = ""
		} else {
			f, err := os.Open(src.path)
			if err != nil {
				return err
			}
			closers = append(closers, f)
			in = f
		}
		decoders = append(decoders, jsonvalue.NewDecoder(in, name, i))
	}

	idx := 0
	next := func() (*eval.Context, bool, error) {
		for idx < len(decoders) {
			v, ic, err := decoders[idx].ReadValue()
			if err == io.EOF {
				idx++
				continue
			}
			if err != nil {
				if jsonvalue.IsRecoverable(err) {
					r.reportRecoverable(err)
					continue
				}
				return nil, false, err
			}
			ic.GlobalIndex = r.globalIndex
			r.globalIndex++
			return eval.New(v, ic, r.regexCacheSize), true, nil
		}
		return nil, false, nil
	}
	return process.Run(r.entry, next)
}

func (r *runner) reportRecoverable(err error) {
	r.failed = true
	switch r.onError {
	case onErrorIgnore:
	case onErrorPanic:
		diag.Errorf("parse", diag.Position{}, "%s", err)
	case onErrorStdout:
		fmt.Fprintln(os.Stdout, err)
	default: // onErrorStderr
		diag.Errorf("parse", diag.Position{}, "%s", err)
	}
}

func buildSink(outputStyle, jsonStyle string, utf8 bool, colorMode, rowSeparator string, textOpts output.TextOptions) (output.Sink, error) {
	switch outputStyle {
	case "json":
		style, err := parseJSONStyle(jsonStyle)
		if err != nil {
			return nil, err
		}
		sink := output.NewJSONSink(colorableStdout(colorMode), style, utf8)
		sink.RowSeparator = rowSeparator
		if style == output.Pretty && colorEnabled(colorMode) {
			sink.Colorizer = defaultColorizer()
		}
		return sink, nil
	case "csv":
		return output.NewCSVSink(os.Stdout), nil
	case "text":
		return output.NewTextSink(os.Stdout, textOpts), nil
	default:
		return nil, fmt.Errorf("invalid -output-style %q (use json, csv, or text)", outputStyle)
	}
}

func parseJSONStyle(s string) (output.JSONStyle, error) {
	switch s {
	case "one-line":
		return output.OneLine, nil
	case "concise":
		return output.Concise, nil
	case "pretty":
		return output.Pretty, nil
	default:
		return 0, fmt.Errorf("invalid -json-style %q (use one-line, concise, or pretty)", s)
	}
}

func colorEnabled(mode string) bool {
	switch mode {
	case "always":
		return true
	case "never":
		return false
	default:
		return isatty.IsTerminal(os.Stdout.Fd())
	}
}

func colorableStdout(mode string) io.Writer {
	if colorEnabled(mode) {
		return colorable.NewColorableStdout()
	}
	return os.Stdout
}

func defaultColorizer() *output.Colorizer {
	return &output.Colorizer{
		NullColor:   []byte("\033[32m"),
		BoolColor:   []byte("\033[32m"),
		NumberColor: []byte("\033[37m"),
		StringColor: []byte("\033[33m"),
		KeyColor:    []byte("\033[34;1m"),
		Reset:       []byte("\033[0m"),
	}
}

func escapesToMap(entries []escapeEntry) map[rune]string {
	if len(entries) == 0 {
		return nil
	}
	m := make(map[rune]string, len(entries))
	for _, e := range entries {
		m[e.Char] = e.Seq
	}
	return m
}

// buildPreSet turns --set arguments into a PreSet stage. "name=value" binds
// a variable parsed as a JSON literal; "@name=expr" binds a macro parsed as
// a selection-language expression.
func buildPreSet(args []string) (*process.PreSet, error) {
	if len(args) == 0 {
		return nil, nil
	}
	vars := map[string]value.Value{}
	macros := map[string]parser.Expression{}
	for _, arg := range args {
		idx := strings.IndexByte(arg, '=')
		if idx < 0 {
			return nil, fmt.Errorf("invalid -set %q: expected name=value or @name=expr", arg)
		}
		name, rhs := arg[:idx], arg[idx+1:]
		if strings.HasPrefix(name, "@") {
			expr, err := parser.ParseExpression(rhs)
			if err != nil {
				return nil, fmt.Errorf("invalid -set %q: %w", arg, err)
			}
			macros[strings.TrimPrefix(name, "@")] = expr
			continue
		}
		dec := jsonvalue.NewDecoder(strings.NewReader(rhs), "-set "+name, 0)
		v, _, err := dec.ReadValue()
		if err != nil {
			return nil, fmt.Errorf("invalid -set %q: %w", arg, err)
		}
		vars[name] = v
	}
	return &process.PreSet{Variables: vars, Macros: macros}, nil
}

type chainOptions struct {
	choose  []string
	filter  string
	groupBy string
	sortBy  []string
	splitBy string
	merge   bool
	unique  bool
	skip    int
	take    int
	sink    output.Sink
}

// buildChain wires the process graph outermost-to-innermost: pre-set
// (wired by the caller) then filter, select(s), split, unique, sort(s),
// group-by, limit, merge, sink.
func buildChain(opts chainOptions) (process.Stage, error) {
	var tail process.Stage = &output.Stage{Sink: opts.sink}
	if opts.merge {
		tail = &process.Merge{Next: tail}
	}
	if opts.take >= 0 || opts.skip > 0 {
		tail = &process.Limit{Skip: opts.skip, Take: opts.take, Next: tail}
	}
	if opts.groupBy != "" {
		expr, err := parser.ParseExpression(opts.groupBy)
		if err != nil {
			return nil, fmt.Errorf("invalid -group-by: %w", err)
		}
		tail = &process.GroupBy{KeyExpr: expr, Next: tail}
	}
	// Each Sort buffers and stably re-sorts everything by its own key, so
	// composing several of them applies the least significant key first
	// (outermost, closest to the input) and the most significant key last
	// (innermost, closest to the tail built so far): the final stable pass preserves
	// ties in the order the previous passes established. Wrapping in
	// first-specified-to-last order here makes the first -sort-by the
	// primary key.
	for i := 0; i < len(opts.sortBy); i++ {
		expr, desc, err := parser.ParseSortExpression(opts.sortBy[i])
		if err != nil {
			return nil, fmt.Errorf("invalid -sort-by %q: %w", opts.sortBy[i], err)
		}
		tail = &process.Sort{KeyExpr: expr, Descending: desc, Next: tail}
	}
	if opts.unique {
		tail = &process.Unique{Next: tail}
	}
	if opts.splitBy != "" {
		expr, err := parser.ParseExpression(opts.splitBy)
		if err != nil {
			return nil, fmt.Errorf("invalid -split-by: %w", err)
		}
		tail = &process.Split{Expr: expr, Next: tail}
	}
	if len(opts.choose) > 0 {
		projections := make([]process.Projection, len(opts.choose))
		for i, c := range opts.choose {
			sel, err := parser.ParseSelection(c)
			if err != nil {
				return nil, fmt.Errorf("invalid -choose %q: %w", c, err)
			}
			projections[i] = process.Projection{Name: sel.Name, Expr: sel.Root}
		}
		tail = &process.Select{Projections: projections, Next: tail}
	}
	if opts.filter != "" {
		expr, err := parser.ParseExpression(opts.filter)
		if err != nil {
			return nil, fmt.Errorf("invalid -filter: %w", err)
		}
		tail = &process.Filter{Predicate: expr, Next: tail}
	}
	return tail, nil
}
