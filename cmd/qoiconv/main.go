// Command qoiconv converts image files to and from QOI, optionally
// exercising the parallel codec for large inputs.
package main

import (
	"flag"
	"fmt"
	"image"
	_ "image/jpeg"
	"image/png"
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/schollz/progressbar/v3"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"

	"github.com/qoiparallel/qoi"
)

func main() {
	var (
		inPath   = flag.String("in", "", "input image path (png, jpeg, bmp, tiff, or qoi)")
		outPath  = flag.String("out", "", "output path; encodes to qoi unless -decode is set")
		decode   = flag.Bool("decode", false, "decode a qoi file to png instead of encoding")
		parallel = flag.Bool("parallel", false, "force the parallel codec regardless of image size")
		workers  = flag.Int("workers", 0, "worker count for the parallel codec (0 = runtime.NumCPU())")
		verbose  = flag.Bool("v", false, "enable debug logging")
	)
	flag.Parse()

	if *verbose {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	} else {
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	}

	if *inPath == "" || *outPath == "" {
		fmt.Fprintln(os.Stderr, "usage: qoiconv -in <path> -out <path> [-decode] [-parallel] [-workers N]")
		os.Exit(2)
	}

	if err := run(*inPath, *outPath, *decode, *parallel, *workers); err != nil {
		log.Fatal().Err(err).Msg("qoiconv failed")
	}
}

func run(inPath, outPath string, decode, forceParallel bool, workers int) error {
	in, err := os.Open(inPath)
	if err != nil {
		return fmt.Errorf("opening input: %w", err)
	}
	defer in.Close()

	if decode {
		return decodeToPNG(in, outPath)
	}
	return encodeToQOI(in, outPath, forceParallel, workers)
}

func decodeToPNG(in *os.File, outPath string) error {
	data, err := io.ReadAll(in)
	if err != nil {
		return fmt.Errorf("reading input: %w", err)
	}
	options, err := qoi.NewOptions()
	if err != nil {
		return fmt.Errorf("building codec options: %w", err)
	}
	pixels, desc, err := qoi.DecodeAuto(data, 4, options)
	if err != nil {
		return fmt.Errorf("decoding qoi: %w", err)
	}
	img := image.NewNRGBA(image.Rect(0, 0, int(desc.Width), int(desc.Height)))
	copy(img.Pix, pixels)

	out, err := os.Create(outPath)
	if err != nil {
		return fmt.Errorf("creating output: %w", err)
	}
	defer out.Close()

	log.Info().Str("path", outPath).Int("width", img.Bounds().Dx()).Int("height", img.Bounds().Dy()).Msg("decoded")
	return png.Encode(out, img)
}

func encodeToQOI(in *os.File, outPath string, forceParallel bool, workers int) error {
	src, format, err := image.Decode(in)
	if err != nil {
		return fmt.Errorf("decoding input image: %w", err)
	}
	log.Debug().Str("format", format).Msg("source image decoded")

	bounds := src.Bounds()
	width, height := bounds.Dx(), bounds.Dy()
	pixels := make([]byte, width*height*4)
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			r, g, b, a := src.At(bounds.Min.X+x, bounds.Min.Y+y).RGBA()
			off := (y*width + x) * 4
			pixels[off] = byte(r >> 8)
			pixels[off+1] = byte(g >> 8)
			pixels[off+2] = byte(b >> 8)
			pixels[off+3] = byte(a >> 8)
		}
	}
	desc := qoi.ImageDescriptor{Width: uint32(width), Height: uint32(height), Channels: 4}

	opts := []qoi.Option{}
	if workers > 0 {
		opts = append(opts, qoi.WithWorkers(workers))
	}
	if forceParallel {
		opts = append(opts, qoi.WithParallelThreshold(0))
	}
	options, err := qoi.NewOptions(opts...)
	if err != nil {
		return fmt.Errorf("building codec options: %w", err)
	}

	bar := progressbar.NewOptions(width*height,
		progressbar.OptionSetDescription(" encoding"),
		progressbar.OptionSetWriter(os.Stderr),
		progressbar.OptionShowCount(),
		progressbar.OptionThrottle(65*time.Millisecond),
		progressbar.OptionSetWidth(15),
		progressbar.OptionOnCompletion(func() { fmt.Fprint(os.Stderr, "\n") }),
	)
	bar.RenderBlank()

	encoded, err := qoi.EncodeAuto(pixels, desc, options)
	if err != nil {
		return fmt.Errorf("encoding qoi: %w", err)
	}
	bar.Set(width * height)

	out, err := os.Create(outPath)
	if err != nil {
		return fmt.Errorf("creating output: %w", err)
	}
	defer out.Close()

	if _, err := out.Write(encoded); err != nil {
		return fmt.Errorf("writing output: %w", err)
	}
	log.Info().Str("path", outPath).Int("bytes", len(encoded)).Msg("encoded")
	return nil
}
