package kindalang

import (
	"fmt"
	"io/fs"
	"log/slog"
	"maps"
	"os"
	"path/filepath"
	"runtime"
	"slices"
	"strings"
	"sync"
	"unicode/utf8"

	"github.com/Kinda-lang-dev/kinda-lang/syncs"
)

// SourceExt is the extension of dialect source files.
const SourceExt = ".knda"

// Transformer rewrites dialect source into plain Starlark, accumulating
// the set of runtime helpers the output needs. One Transformer per
// source file; it is not safe for concurrent use.
type Transformer struct {
	path    string
	logger  *slog.Logger
	helpers map[string]struct{}
}

func New(path string, logger *slog.Logger) *Transformer {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Transformer{
		path:    path,
		logger:  logger,
		helpers: make(map[string]struct{}),
	}
}

func (t *Transformer) mark(helper string) {
	t.helpers[helper] = struct{}{}
}

// Result is one transformed source file.
type Result struct {
	// Output is the complete emitted file: the load() header naming the
	// used helpers, then the transformed body.
	Output string
	// Body is the transformed source without the load() header. The
	// interpreter executes this directly with helpers predeclared.
	Body string
	// Helpers are the runtime helpers the body calls, sorted.
	Helpers []string
}

// TransformSource rewrites src line by line. The only hard failures are
// malformed conditional headers and unclosed brace blocks; everything
// unrecognized passes through unchanged.
func (t *Transformer) TransformSource(src string) (*Result, error) {
	if !utf8.ValidString(src) {
		return nil, parseErrorf(t.path, 0, "", "source is not valid UTF-8")
	}

	lines := strings.Split(src, "\n")
	if n := len(lines); n > 0 && lines[n-1] == "" {
		lines = lines[:n-1]
	}

	var out []string
	i := 0
	for i < len(lines) {
		line := lines[i]
		stripped := strings.TrimSpace(line)
		lineNo := i + 1

		if isConditionalHeader(stripped) {
			if err := t.validateConditional(stripped, lineNo); err != nil {
				return nil, err
			}
			header := t.transformLine(line)
			out = append(out, header)
			i++
			if strings.HasSuffix(stripped, "{") {
				next, err := t.processBraceBlock(lines, i, &out, indentPrefix(line)+"    ")
				if err != nil {
					return nil, err
				}
				i = next
			} else {
				i = t.processIndentBlock(lines, i, &out, line)
			}
			continue
		}

		transformed := t.transformLine(line)
		if transformed == line {
			t.warnAboutLine(stripped, lineNo)
		}
		out = append(out, transformed)
		i++
	}

	helpers := slices.Sorted(maps.Keys(t.helpers))
	body := strings.Join(out, "\n") + "\n"

	output := body
	if len(helpers) > 0 {
		quoted := make([]string, len(helpers))
		for i, h := range helpers {
			quoted[i] = `"` + h + `"`
		}
		output = fmt.Sprintf("load(%q, %s)\n\n", RuntimeModule, strings.Join(quoted, ", ")) + body
	}

	return &Result{Output: output, Body: body, Helpers: helpers}, nil
}

func indentPrefix(line string) string {
	return line[:indentWidth(line)]
}

// TransformFile reads and transforms a single source file. Nothing is
// written; a failed transform therefore leaves no partial output.
func TransformFile(path string, logger *slog.Logger) (*Result, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	t := New(path, logger)
	return t.TransformSource(string(content))
}

// OutputName maps a source file name to its emitted name:
// NAME.star.knda becomes NAME.star, anything else swaps .knda for .star.
func OutputName(name string) string {
	if strings.HasSuffix(name, ".star"+SourceExt) {
		return strings.TrimSuffix(name, SourceExt)
	}
	return strings.TrimSuffix(name, SourceExt) + ".star"
}

// TransformTree transforms a file or a directory tree of .knda files
// into outDir, mirroring the directory layout, then writes one runtime
// module containing exactly the helpers the transformed files use. It
// returns the emitted file paths. Files are transformed concurrently;
// on any failure nothing further is reported as written and the first
// error wins.
func TransformTree(inputPath, outDir string, logger *slog.Logger) ([]string, error) {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	info, err := os.Stat(inputPath)
	if err != nil {
		return nil, err
	}
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return nil, err
	}

	type job struct {
		src, dst string
	}
	var jobs []job
	if info.IsDir() {
		err := filepath.WalkDir(inputPath, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if d.IsDir() || !strings.HasSuffix(path, SourceExt) {
				return nil
			}
			rel, err := filepath.Rel(inputPath, path)
			if err != nil {
				return err
			}
			jobs = append(jobs, job{
				src: path,
				dst: filepath.Join(outDir, filepath.Dir(rel), OutputName(filepath.Base(rel))),
			})
			return nil
		})
		if err != nil {
			return nil, err
		}
	} else {
		jobs = append(jobs, job{
			src: inputPath,
			dst: filepath.Join(outDir, OutputName(filepath.Base(inputPath))),
		})
	}

	var (
		mu       sync.Mutex
		used     = make(map[string]struct{})
		written  []string
		firstErr error
	)
	sem := syncs.NewSemaphore(runtime.GOMAXPROCS(0))
	var wg sync.WaitGroup
	for _, j := range jobs {
		wg.Add(1)
		go func() {
			defer wg.Done()
			sem.Acquire()
			defer sem.Release()

			res, err := TransformFile(j.src, logger)
			if err == nil {
				if mkErr := os.MkdirAll(filepath.Dir(j.dst), 0o755); mkErr != nil {
					err = mkErr
				} else {
					err = os.WriteFile(j.dst, []byte(res.Output), 0o644)
				}
			}

			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				if firstErr == nil {
					firstErr = err
				}
				return
			}
			for _, h := range res.Helpers {
				used[h] = struct{}{}
			}
			written = append(written, j.dst)
			logger.Info("transformed",
				"src", j.src, "dst", j.dst, "helpers", len(res.Helpers))
		}()
	}
	wg.Wait()
	if firstErr != nil {
		return nil, firstErr
	}
	slices.Sort(written)

	if len(used) > 0 {
		path, err := WriteRuntime(slices.Sorted(maps.Keys(used)), outDir)
		if err != nil {
			return nil, err
		}
		written = append(written, path)
	}

	return written, nil
}
