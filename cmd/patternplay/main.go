package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/cbegin/tidalcore-go"
	"github.com/cbegin/tidalcore-go/internal/rational"
	"github.com/cbegin/tidalcore-go/internal/voice"
)

const defaultPattern = "bd sd hh cp"

func main() {
	var (
		patternPath   = flag.String("file", "", "path to a mini-notation file")
		patternInline = flag.String("pattern", "", "inline mini-notation string")
		fromCycle     = flag.Float64("from", 0, "query window start, in cycles")
		cycles        = flag.Float64("cycles", 1, "query window width, in cycles")
		fastRate      = flag.Float64("fast", 1, "speed multiplier applied before querying")
	)
	flag.Parse()

	text, err := resolvePatternInput(*patternPath, *patternInline)
	if err != nil {
		log.Fatal(err)
	}

	p := pattern.Parse(text, nil)
	if *fastRate != 1 {
		p = pattern.Fast(rational.FromFloat64(*fastRate))(p)
	}

	from := rational.FromFloat64(*fromCycle)
	to := from.Add(rational.FromFloat64(*cycles))
	events := p.Query(from, to, pattern.DefaultQueryContext())

	for _, ev := range events {
		printEvent(ev)
	}
}

func resolvePatternInput(path, inline string) (string, error) {
	if strings.TrimSpace(inline) != "" {
		return inline, nil
	}
	if strings.TrimSpace(path) != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return "", err
		}
		return string(data), nil
	}
	return defaultPattern, nil
}

func printEvent(ev pattern.Event) {
	v := voice.Project(ev.Data)
	onset := "~"
	if ev.IsOnset() {
		onset = "*"
	}
	fmt.Printf("%s part=[%s,%s) sound=%q note=%g gain=%g\n",
		onset, ev.Part.Begin, ev.Part.End, v.Sound, v.Note, v.Gain)
}
