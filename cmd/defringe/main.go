// Copyright (C) 2026 The defringe authors
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with this program.  If not, see <https://www.gnu.org/licenses/>.

package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"runtime/pprof"
	"strconv"
	"strings"
	"time"

	"github.com/pbnjay/memory"

	"github.com/defringe/defringe/internal/defringe"
	"github.com/defringe/defringe/internal/frame"
	"github.com/defringe/defringe/internal/logf"
	"github.com/defringe/defringe/internal/rest"
)

const version = "0.1.0"

var totalMiBs = memory.TotalMemory() / 1024 / 1024

var cpuprofile = flag.String("cpuprofile", "", "write cpu profile to `file`")
var memprofile = flag.String("memprofile", "", "write memory profile to `file`")

var out = flag.String("out", "out.png", "save corrected image to `file` (.png, .jpg or .tif)")
var log = flag.String("log", "%auto", "save log output to `file`. `%auto` replaces suffix of output file with .log")

var lHor = flag.Int("lHor", 14, "half-window size along rows, >=1")
var lVer = flag.Int("lVer", 4, "half-window size along columns, >=1")
var rho = flag.String("rho", "-0.25,1.375,-0.125", "transient improvement prefilter coefficients for max,center,min")
var tau = flag.Float64("tau", 15.0/255, "chroma magnitude below which sign disagreement is ignored")
var alphaR = flag.Float64("alphaR", 0.5, "false color regularization for the red channel, >0")
var alphaB = flag.Float64("alphaB", 1.0, "false color regularization for the blue channel, >0")
var betaR = flag.Float64("betaR", 1.0, "arbitration contrast bias for the red channel, >=0")
var betaB = flag.Float64("betaB", 0.25, "arbitration contrast bias for the blue channel, >=0")
var gamma1 = flag.Float64("gamma1", 128.0/255, "upper envelope normalization bound for arbitration")
var gamma2 = flag.Float64("gamma2", 64.0/255, "lower envelope normalization bound for arbitration")

var pad = flag.Bool("pad", true, "replicate-pad the image by the window sizes before correcting, so borders are corrected too")
var jpgQuality = flag.Int("jpgQuality", 95, "quality for JPEG output, 1..100")
var dither = flag.Bool("dither", false, "randomized dithering when quantizing to 8 bits")
var fringeMap = flag.String("fringeMap", "", "save false-color map of the applied correction to `file`")
var fringeGain = flag.Float64("fringeGain", 4.0, "magnitude gain for the fringe map")

var port = flag.Int("port", 8080, "port for serve mode")

func main() {
	start := time.Now()
	flag.Usage = func() {
		fmt.Printf(`Defringe %s
This program comes with ABSOLUTELY NO WARRANTY.
This is free software, and you are welcome to redistribute it under certain conditions.
Refer to https://www.gnu.org/licenses/gpl-3.0.en.html for details.

Usage: %s [-flag value] (correct|serve|version) [input image]

Commands:
  correct Remove chromatic aberration fringing from the input image
  serve   Offer the correction as a REST API
  version Show version information

Flags:
`, version, os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()

	// Initialize logging to file in addition to stdout, if selected
	if *log == "%auto" {
		if *out != "" {
			*log = strings.TrimSuffix(*out, filepath.Ext(*out)) + ".log"
		} else {
			*log = ""
		}
	}

	// Enable CPU profiling if flagged
	if *cpuprofile != "" {
		f, err := os.Create(*cpuprofile)
		if err != nil {
			logf.Fatalf("Could not create CPU profile: %s\n", err.Error())
		}
		defer f.Close()
		if err := pprof.StartCPUProfile(f); err != nil {
			logf.Fatalf("Could not start CPU profile: %s\n", err.Error())
		}
		defer pprof.StopCPUProfile()
	}

	args := flag.Args()
	if len(args) < 1 {
		flag.Usage()
		return
	}

	var err error
	switch args[0] {
	case "correct":
		if *log != "" {
			if err := logf.AlsoToFile(*log); err != nil {
				logf.Fatalf("Unable to open logfile '%s'\n", *log)
			}
		}
		err = cmdCorrect(args[1:])

	case "serve":
		if *log != "" {
			if err := logf.AlsoToRotatingFile(*log, 100, 3); err != nil {
				logf.Fatalf("Unable to open logfile '%s'\n", *log)
			}
		}
		logf.Printf("Serving on port %d with %d MiB physical memory\n", *port, totalMiBs)
		err = rest.Serve(*port)

	case "version":
		fmt.Printf("Version %s\n", version)

	case "help", "?":
		flag.Usage()

	default:
		fmt.Printf("Unknown command '%s'\n\n", args[0])
		flag.Usage()
		return
	}

	elapsed := time.Now().Sub(start)
	logf.Printf("\nDone after %v\n", elapsed)

	// Store memory profile if flagged
	if *memprofile != "" {
		f, err := os.Create(*memprofile)
		if err != nil {
			logf.Fatalf("Could not create memory profile: %s\n", err.Error())
		}
		defer f.Close()
		runtime.GC() // get up-to-date statistics
		if err := pprof.Lookup("allocs").WriteTo(f, 0); err != nil {
			logf.Fatalf("Could not write allocation profile: %s\n", err.Error())
		}
	}

	if err != nil {
		logf.Printf("Error: %s\n", err.Error())
		os.Exit(-1)
	}
}

// Parses flags into correction parameters
func paramsFromFlags() (*defringe.Params, error) {
	p := defringe.NewParams()
	p.LHor, p.LVer = *lHor, *lVer
	p.Tau = float32(*tau)
	p.AlphaR, p.AlphaB = float32(*alphaR), float32(*alphaB)
	p.BetaR, p.BetaB = float32(*betaR), float32(*betaB)
	p.Gamma1, p.Gamma2 = float32(*gamma1), float32(*gamma2)

	parts := strings.Split(*rho, ",")
	if len(parts) != 3 {
		return nil, fmt.Errorf("invalid rho '%s', need exactly 3 comma-separated coefficients", *rho)
	}
	for i, part := range parts {
		v, err := strconv.ParseFloat(strings.TrimSpace(part), 32)
		if err != nil {
			return nil, fmt.Errorf("invalid rho coefficient '%s': %s", part, err.Error())
		}
		p.Rho[i] = float32(v)
	}
	return p, nil
}

// Corrects a single image file and writes the result
func cmdCorrect(args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("correct needs exactly one input image, got %d", len(args))
	}
	params, err := paramsFromFlags()
	if err != nil {
		return err
	}

	img, err := frame.ReadImageFromFile(args[0])
	if err != nil {
		return err
	}
	logf.Printf("Read %dx%d image from '%s', %d MiB physical memory, %d cores\n",
		img.Width, img.Height, args[0], totalMiBs, runtime.NumCPU())

	if *pad {
		img = img.Pad(params.LHor, params.LVer)
	}

	corrected, chroma, err := defringe.CorrectWithChroma(img, params, logf.Writer())
	if err != nil {
		return err
	}

	const numSamples = 1 << 16
	statsR := frame.NewChromaStats(chroma.KR, numSamples)
	statsB := frame.NewChromaStats(chroma.KB, numSamples)
	logf.Printf("Applied chroma r: mean %.5f stddev %.5f maxAbs %.5f\n", statsR.Mean, statsR.StdDev, statsR.MaxAbs)
	logf.Printf("Applied chroma b: mean %.5f stddev %.5f maxAbs %.5f\n", statsB.Mean, statsB.StdDev, statsB.MaxAbs)

	if *fringeMap != "" {
		fm := frame.FringeMap(chroma.KR, chroma.KB, float32(*fringeGain))
		if *pad {
			fm = fm.Crop(params.LHor, params.LVer)
		}
		if err := fm.WriteToFile(*fringeMap, frame.WriteOptions{JpegQuality: *jpgQuality}); err != nil {
			return err
		}
		logf.Printf("Saved fringe map to '%s'\n", *fringeMap)
	}

	if *pad {
		corrected = corrected.Crop(params.LHor, params.LVer)
	}
	opts := frame.WriteOptions{JpegQuality: *jpgQuality, Dither: *dither}
	if err := corrected.WriteToFile(*out, opts); err != nil {
		return err
	}
	logf.Printf("Saved corrected image to '%s'\n", *out)
	return nil
}
