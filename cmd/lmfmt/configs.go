package main

import (
	"io"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/scott-cotton/cli"

	"github.com/lmfmt/lmfmt"
	"github.com/lmfmt/lmfmt/encode"
)

type MainConfig struct {
	Falsy bool   `cli:"name=falsy desc='keep null object fields and null array elements'"`
	Depth int    `cli:"name=depth desc='nesting depth before the max-depth marker'"`
	Sort  bool   `cli:"name=sort desc='sort object keys ascending'"`
	Chars int    `cli:"name=chars desc='global output character budget, 0 means unbounded'"`
	Y     bool   `cli:"name=y aliases=yaml desc='read input as yaml instead of json'"`
	Color bool   `cli:"name=color desc='colorize output'"`
	E     string `cli:"name=e desc='expression selecting the part of the input to convert'"`

	Out      string
	CloseOut func() error

	Main *cli.Command
}

func (cfg *MainConfig) formatOptions() []lmfmt.Option {
	res := []lmfmt.Option{
		lmfmt.IgnoreFalsy(!cfg.Falsy),
		lmfmt.MaxDepth(cfg.Depth),
	}
	if cfg.Sort {
		res = append(res, lmfmt.SortKeys(lmfmt.SortAsc))
	}
	if cfg.Chars > 0 {
		res = append(res, lmfmt.MaxChars(cfg.Chars))
	}
	return res
}

func (cfg *MainConfig) encOpts() []encode.EncodeOption {
	res := []encode.EncodeOption{
		encode.IgnoreFalsy(!cfg.Falsy),
		encode.MaxDepth(cfg.Depth),
		encode.EncodeColors(encode.NewColors()),
	}
	if cfg.Sort {
		res = append(res, encode.SortKeys(encode.SortAsc))
	}
	return res
}

func (cfg *MainConfig) useColor(w io.Writer) bool {
	if cfg.Color {
		return true
	}
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd())
}

func (cfg *MainConfig) outOpt(cc *cli.Context, a string) (any, error) {
	cfg.Out = a
	if a == "-" {
		return nil, nil
	}
	f, err := os.OpenFile(cfg.Out, os.O_CREATE|os.O_TRUNC|os.O_RDWR, 0644)
	if err != nil {
		return nil, err
	}
	cc.Out = f
	cfg.CloseOut = f.Close
	return nil, nil
}
