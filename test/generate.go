package main

import (
	"fmt"
	"log"
	"os"
	"strconv"

	"github.com/optable/cuckoo/test/keys"
)

const (
	usage = `%s number_of_keys upper_bound (0 for the full uint64 range) output_file (%s)

example:
 %s 100000 1000000
`
	defaultCardinality = 100000
	defaultOutput      = "keys.txt"
)

type config struct {
	cardinality int
	bound       uint64
	output      string
}

func formatUsage() string {
	name := os.Args[0]
	return fmt.Sprintf(usage, name, defaultOutput, name)
}

// global conf
var conf config

func formatArgs() string {
	return fmt.Sprintf("generating %d keys below %d to %s", conf.cardinality, conf.bound, conf.output)
}

func init() {
	// we have default values for everything
	conf.cardinality = defaultCardinality
	conf.output = defaultOutput
	if len(os.Args) > 1 {
		if n, err := strconv.Atoi(os.Args[1]); err == nil {
			conf.cardinality = n
		} else {
			log.Fatal(err)
		}
	}
	if len(os.Args) > 2 {
		if bound, err := strconv.ParseUint(os.Args[2], 10, 64); err == nil {
			conf.bound = bound
		} else {
			log.Fatal(err)
		}
	}
	if len(os.Args) > 3 {
		conf.output = os.Args[3]
	}
}

func main() {
	println(formatUsage())
	println(formatArgs())

	f, err := os.Create(conf.output)
	if err != nil {
		log.Fatal(err)
	}
	defer f.Close()

	for key := range keys.Random(conf.cardinality, conf.bound) {
		if _, err := f.Write(keys.Format(key)); err != nil {
			log.Fatal(err)
		}
	}
}
