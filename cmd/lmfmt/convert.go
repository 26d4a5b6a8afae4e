package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"
	"github.com/goccy/go-yaml"
	"github.com/scott-cotton/cli"

	"github.com/lmfmt/lmfmt"
	"github.com/lmfmt/lmfmt/debug"
	"github.com/lmfmt/lmfmt/encode"
	"github.com/lmfmt/lmfmt/normalize"
)

func convert(cfg *MainConfig, cc *cli.Context, args []string) error {
	defer func() {
		if cfg.CloseOut != nil {
			cfg.CloseOut()
		}
	}()
	args, err := cfg.Main.Parse(cc, args)
	if err != nil {
		return err
	}
	var program *vm.Program
	if cfg.E != "" {
		program, err = expr.Compile(cfg.E)
		if err != nil {
			return fmt.Errorf("%w: bad expression %q: %v", cli.ErrUsage, cfg.E, err)
		}
	}
	if len(args) == 0 {
		args = []string{"-"}
	}
	for i, file := range args {
		if err := convertFile(cfg, cc.Out, file, program); err != nil {
			return err
		}
		if i < len(args)-1 {
			if _, err := cc.Out.Write([]byte("\n---\n")); err != nil {
				return err
			}
		}
	}
	return nil
}

func convertFile(cfg *MainConfig, w io.Writer, file string, program *vm.Program) error {
	var (
		f   *os.File
		err error
	)
	if file != "-" {
		f, err = os.Open(file)
		if err != nil {
			return fmt.Errorf("could not open %q: %w", file, err)
		}
		defer f.Close()
	} else {
		f = os.Stdin
	}
	in, err := io.ReadAll(f)
	if err != nil {
		return fmt.Errorf("error reading %s: %w", file, err)
	}
	data, err := decodeInput(cfg, in)
	if err != nil {
		return fmt.Errorf("error decoding %s: %w", file, err)
	}
	if program != nil {
		data, err = vm.Run(program, data)
		if err != nil {
			return fmt.Errorf("error evaluating %q on %s: %w", cfg.E, file, err)
		}
	}
	if debug.Encode() {
		debug.Logf("converting %s (%d bytes in)\n", file, len(in))
	}
	return writeConverted(cfg, w, data)
}

func decodeInput(cfg *MainConfig, in []byte) (any, error) {
	var v any
	if cfg.Y {
		if err := yaml.Unmarshal(in, &v); err != nil {
			return nil, err
		}
		return v, nil
	}
	dec := json.NewDecoder(bytes.NewReader(in))
	dec.UseNumber()
	if err := dec.Decode(&v); err != nil {
		return nil, err
	}
	return v, nil
}

func writeConverted(cfg *MainConfig, w io.Writer, data any) error {
	if !cfg.useColor(w) {
		out := lmfmt.Format(data, cfg.formatOptions()...)
		_, err := io.WriteString(w, out+"\n")
		return err
	}
	// The character budget targets model consumption; colored output is
	// for humans, so it is rendered unbounded.
	node, err := normalize.Value(data)
	if err != nil {
		out := lmfmt.Format(data, cfg.formatOptions()...)
		_, werr := io.WriteString(w, out+"\n")
		return werr
	}
	if _, err := io.WriteString(w, lmfmt.Header); err != nil {
		return err
	}
	if err := encode.Encode(node, w, cfg.encOpts()...); err != nil {
		return err
	}
	_, err = io.WriteString(w, "\n")
	return err
}
