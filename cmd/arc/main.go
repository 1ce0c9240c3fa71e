// arc compresses and decompresses files with adaptive arithmetic coding.
package main

import (
	"fmt"
	"log"
	"os"

	"github.com/kasru/arc"
	"github.com/pkg/errors"
	"github.com/urfave/cli/v2"
)

func main() {
	log.SetFlags(log.LstdFlags | log.Lmicroseconds | log.Lshortfile)
	app := &cli.App{
		Name:  "arc",
		Usage: "adaptive arithmetic coding compressor",
		Commands: []*cli.Command{
			{
				Name:      "encode",
				Usage:     "compress a file",
				ArgsUsage: "<source> <destination>",
				Action:    encode,
			},
			{
				Name:      "decode",
				Usage:     "restore a file from a compressed artifact",
				ArgsUsage: "<source> <destination>",
				Action:    decode,
			},
		},
	}
	if err := app.Run(os.Args); err != nil {
		log.Fatalf("%+v", err)
	}
}

func encode(ctx *cli.Context) error {
	src, dst, err := paths(ctx)
	if err != nil {
		return err
	}
	f, err := os.Create(dst)
	if err != nil {
		return errors.Wrap(err, "")
	}
	defer f.Close()

	stats, err := arc.Compress(f, src)
	if err != nil {
		return err
	}
	report(stats)
	return nil
}

func decode(ctx *cli.Context) error {
	src, dst, err := paths(ctx)
	if err != nil {
		return err
	}
	in, err := os.Open(src)
	if err != nil {
		return errors.Wrap(err, "")
	}
	defer in.Close()
	out, err := os.Create(dst)
	if err != nil {
		return errors.Wrap(err, "")
	}
	defer out.Close()

	stats, err := arc.Decompress(out, in)
	if err != nil {
		return err
	}
	report(stats)
	return nil
}

func paths(ctx *cli.Context) (string, string, error) {
	if ctx.NArg() != 2 {
		return "", "", errors.Errorf("usage: arc %s <source> <destination>", ctx.Command.Name)
	}
	return ctx.Args().Get(0), ctx.Args().Get(1), nil
}

func report(s arc.Stats) {
	fmt.Printf("Size before compression: %dB\n", s.RawSize)
	fmt.Printf("Size after compression: %dB\n", s.CodedSize)
	fmt.Printf("Compression ratio: %.2f%%\n", s.Ratio()*100)
	fmt.Printf("Entropy: %.4f bits/symbol\n", s.Entropy)
}
